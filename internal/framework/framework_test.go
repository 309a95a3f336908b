package framework

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/go-chi/chi/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newGin() *gin.Engine {
	engine := gin.New()
	engine.POST("/collaborators", func(c *gin.Context) {
		c.Status(http.StatusCreated)
	})
	return engine
}

func newChi() *chi.Mux {
	mux := chi.NewRouter()
	mux.Post("/collaborators", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	})
	return mux
}

func newEcho() *echo.Echo {
	e := echo.New()
	e.POST("/collaborators", func(c echo.Context) error {
		return c.NoContent(http.StatusCreated)
	})
	return e
}

func newMux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/collaborators", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		w.WriteHeader(http.StatusCreated)
	})
	return mux
}

func TestSelectDispatchesOnce(t *testing.T) {
	tests := []struct {
		name string
		app  any
	}{
		{"gin", newGin()},
		{"chi", newChi()},
		{"echo", newEcho()},
		{"http", &http.Server{Handler: newMux()}},
		{"handler", newMux()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := Select(tt.name, tt.app)
			require.NoError(t, err)
			assert.Equal(t, tt.name, d.Name())

			w := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodPost, "/collaborators", nil)
			d.Dispatch(w, r)
			assert.Equal(t, http.StatusCreated, w.Code)

			w = httptest.NewRecorder()
			r = httptest.NewRequest(http.MethodGet, "/missing", nil)
			d.Dispatch(w, r)
			assert.Equal(t, http.StatusNotFound, w.Code)
		})
	}
}

func TestSelectFailsAtWiringTime(t *testing.T) {
	tests := []struct {
		name      string
		framework string
		app       any
	}{
		{"nil gin engine", "gin", (*gin.Engine)(nil)},
		{"chi without routes", "chi", chi.NewRouter()},
		{"nil echo", "echo", (*echo.Echo)(nil)},
		{"server without handler", "http", &http.Server{}},
		{"nil handler", "handler", nil},
		{"wrong type for gin", "gin", newChi()},
		{"wrong type for echo", "echo", newGin()},
		{"wrong type for http", "http", newMux()},
		{"unknown framework", "hapi", newMux()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := Select(tt.framework, tt.app)
			assert.Nil(t, d)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrFrameworkDispatch)

			var dispatchErr *DispatchError
			require.ErrorAs(t, err, &dispatchErr)
			assert.NotEmpty(t, dispatchErr.Reason)
		})
	}
}

func TestSelectNameIsCaseInsensitive(t *testing.T) {
	d, err := Select(" GIN ", newGin())
	require.NoError(t, err)
	assert.Equal(t, "gin", d.Name())

	d, err = Select("", newMux())
	require.NoError(t, err)
	assert.Equal(t, "handler", d.Name())
}

type countingContract struct {
	calls int
}

func (c *countingContract) Name() string { return "counting" }

func (c *countingContract) Validate(app http.HandlerFunc) error {
	if app == nil {
		return &DispatchError{Framework: "counting", Reason: "nil"}
	}
	return nil
}

func (c *countingContract) SendRequest(app http.HandlerFunc, w http.ResponseWriter, r *http.Request) {
	c.calls++
	app(w, r)
}

func TestBindCustomContract(t *testing.T) {
	contract := &countingContract{}
	d, err := Bind[http.HandlerFunc](contract, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	require.NoError(t, err)

	w := httptest.NewRecorder()
	d.Dispatch(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, 1, contract.calls)
	assert.Equal(t, http.StatusNoContent, w.Code)

	_, err = Bind[http.HandlerFunc](contract, nil)
	assert.ErrorIs(t, err, ErrFrameworkDispatch)
}
