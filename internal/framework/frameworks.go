package framework

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-chi/chi/v5"
	"github.com/labstack/echo/v4"
)

// Gin dispatches through gin.Engine.ServeHTTP
type Gin struct{}

func (Gin) Name() string { return "gin" }

func (Gin) Validate(app *gin.Engine) error {
	if app == nil {
		return &DispatchError{Framework: "gin", Reason: "engine is nil"}
	}
	return nil
}

func (Gin) SendRequest(app *gin.Engine, w http.ResponseWriter, r *http.Request) {
	app.ServeHTTP(w, r)
}

// Chi dispatches through the chi.Mux handler tree
type Chi struct{}

func (Chi) Name() string { return "chi" }

func (Chi) Validate(app *chi.Mux) error {
	if app == nil {
		return &DispatchError{Framework: "chi", Reason: "mux is nil"}
	}
	// The mux builds its handler chain on the first route registration
	if len(app.Routes()) == 0 {
		return &DispatchError{Framework: "chi", Reason: "mux has no routes"}
	}
	return nil
}

func (Chi) SendRequest(app *chi.Mux, w http.ResponseWriter, r *http.Request) {
	app.ServeHTTP(w, r)
}

// Echo dispatches through echo.Echo.ServeHTTP, which acquires a context from
// the instance pool and runs the middleware chain.
type Echo struct{}

func (Echo) Name() string { return "echo" }

func (Echo) Validate(app *echo.Echo) error {
	if app == nil {
		return &DispatchError{Framework: "echo", Reason: "instance is nil"}
	}
	if app.Router() == nil {
		return &DispatchError{Framework: "echo", Reason: "instance has no router"}
	}
	return nil
}

func (Echo) SendRequest(app *echo.Echo, w http.ResponseWriter, r *http.Request) {
	app.ServeHTTP(w, r)
}

// HTTPServer reaches the handler nested inside an *http.Server. A server with
// no Handler would fall back to http.DefaultServeMux on a listener; here that
// is treated as a wiring mistake.
type HTTPServer struct{}

func (HTTPServer) Name() string { return "http" }

func (HTTPServer) Validate(app *http.Server) error {
	if app == nil {
		return &DispatchError{Framework: "http", Reason: "server is nil"}
	}
	if app.Handler == nil {
		return &DispatchError{Framework: "http", Reason: "server has no Handler"}
	}
	return nil
}

func (HTTPServer) SendRequest(app *http.Server, w http.ResponseWriter, r *http.Request) {
	app.Handler.ServeHTTP(w, r)
}

// Handler dispatches to any http.Handler
type Handler struct{}

func (Handler) Name() string { return "handler" }

func (Handler) Validate(app http.Handler) error {
	if app == nil {
		return &DispatchError{Framework: "handler", Reason: "handler is nil"}
	}
	return nil
}

func (Handler) SendRequest(app http.Handler, w http.ResponseWriter, r *http.Request) {
	app.ServeHTTP(w, r)
}
