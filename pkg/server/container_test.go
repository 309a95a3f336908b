package server

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/aws/aws-lambda-go/events"
	"github.com/gin-gonic/gin"

	"serverless-adapter/internal/framework"
	"serverless-adapter/internal/shape"
	"serverless-adapter/internal/testutil"
)

// TestNewContainer verifies that the container can be created successfully
func TestNewContainer(t *testing.T) {
	cfg := testConfig("gin")

	container, err := NewContainer(cfg, gin.New())
	if err != nil {
		t.Fatalf("Failed to create container: %v", err)
	}

	if container.Handler == nil {
		t.Error("Handler is nil")
	}
	if container.Dispatcher == nil || container.Dispatcher.Name() != "gin" {
		t.Errorf("Unexpected dispatcher: %v", container.Dispatcher)
	}
	if container.Config != cfg {
		t.Error("Config not kept")
	}

	kinds := container.Registry.Kinds()
	if len(kinds) != 3 {
		t.Fatalf("Expected 3 registered adapters, got %d", len(kinds))
	}
	for _, kind := range []shape.Kind{shape.KindALB, shape.KindAPIGatewayV1, shape.KindAPIGatewayV2} {
		if _, ok := container.Registry.Lookup(kind); !ok {
			t.Errorf("No adapter registered for %s", kind)
		}
	}
}

// TestNewContainerWiringErrors verifies that bad bindings fail before serving
func TestNewContainerWiringErrors(t *testing.T) {
	tests := []struct {
		name      string
		framework string
		app       any
	}{
		{"wrong type", "gin", http.NewServeMux()},
		{"server without handler", "http", &http.Server{}},
		{"unknown framework", "martini", gin.New()},
		{"nil engine", "gin", (*gin.Engine)(nil)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewContainer(testConfig(tt.framework), tt.app)
			if err == nil {
				t.Fatal("Expected wiring error")
			}
			if !errors.Is(err, framework.ErrFrameworkDispatch) {
				t.Errorf("Expected ErrFrameworkDispatch, got %v", err)
			}
		})
	}
}

// TestContainerBinaryContentTypes verifies configured binary types reach the encoder
func TestContainerBinaryContentTypes(t *testing.T) {
	cfg := testConfig("handler")
	cfg.Adapter.BinaryContentTypes = []string{"application/x-custom"}

	app := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/x-custom")
		_, _ = w.Write([]byte("abc"))
	})

	container, err := NewContainer(cfg, app)
	if err != nil {
		t.Fatalf("Failed to create container: %v", err)
	}

	reply, err := container.Handler.Invoke(context.Background(), testutil.APIGatewayV1Event("GET", "/file", nil, nil, nil))
	if err != nil {
		t.Fatalf("Invoke failed: %v", err)
	}

	res := reply.(events.APIGatewayProxyResponse)
	if !res.IsBase64Encoded {
		t.Error("Expected configured content type to be base64 encoded")
	}
	if res.Body != "YWJj" {
		t.Errorf("Expected body YWJj, got %s", res.Body)
	}
}
