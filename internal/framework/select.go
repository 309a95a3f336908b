package framework

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-chi/chi/v5"
	"github.com/labstack/echo/v4"
)

// Names lists the framework names accepted by Select
var Names = []string{"gin", "chi", "echo", "http", "handler"}

// Select binds app using the contract configured by name. It is called once
// when the invocation handler is built.
func Select(name string, app any) (Dispatcher, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "gin":
		engine, ok := app.(*gin.Engine)
		if !ok {
			return nil, wrongType("gin", "*gin.Engine", app)
		}
		return Bind[*gin.Engine](Gin{}, engine)
	case "chi":
		mux, ok := app.(*chi.Mux)
		if !ok {
			return nil, wrongType("chi", "*chi.Mux", app)
		}
		return Bind[*chi.Mux](Chi{}, mux)
	case "echo":
		e, ok := app.(*echo.Echo)
		if !ok {
			return nil, wrongType("echo", "*echo.Echo", app)
		}
		return Bind[*echo.Echo](Echo{}, e)
	case "http":
		srv, ok := app.(*http.Server)
		if !ok {
			return nil, wrongType("http", "*http.Server", app)
		}
		return Bind[*http.Server](HTTPServer{}, srv)
	case "handler", "":
		h, ok := app.(http.Handler)
		if !ok {
			return nil, wrongType("handler", "http.Handler", app)
		}
		return Bind[http.Handler](Handler{}, h)
	default:
		return nil, &DispatchError{
			Framework: name,
			Reason:    fmt.Sprintf("unknown framework, expected one of %s", strings.Join(Names, ", ")),
		}
	}
}

func wrongType(framework, want string, app any) error {
	return &DispatchError{
		Framework: framework,
		Reason:    fmt.Sprintf("app is %T, expected %s", app, want),
	}
}
