package server

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"

	"github.com/aws/aws-lambda-go/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"serverless-adapter/internal/config"
	"serverless-adapter/internal/testutil"
)

func TestContainerManagerBuildsOnce(t *testing.T) {
	builds := 0
	cm := NewContainerManager(func(cfg *config.Config) (any, error) {
		builds++
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		}), nil
	})

	require.NoError(t, cm.Initialize(testConfig("handler")))
	require.NoError(t, cm.Initialize(testConfig("gin")))
	assert.False(t, cm.IsWarm())

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			reply, err := cm.Invoke(context.Background(), testutil.APIGatewayV2Event("GET", "/", nil, nil, nil))
			assert.NoError(t, err)
			assert.Equal(t, http.StatusNoContent, reply.(events.APIGatewayV2HTTPResponse).StatusCode)
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, builds)
	assert.True(t, cm.IsWarm())
	assert.Equal(t, int64(5), cm.Invocations())
}

func TestContainerManagerInitError(t *testing.T) {
	boom := errors.New("boom")
	cm := NewContainerManager(func(cfg *config.Config) (any, error) {
		return nil, boom
	})

	assert.ErrorIs(t, cm.Initialize(testConfig("handler")), boom)

	reply, err := cm.Invoke(context.Background(), testutil.ALBEvent("GET", "/", nil))
	assert.ErrorIs(t, err, boom)
	assert.Nil(t, reply)
	assert.False(t, cm.IsWarm())
}

func TestContainerManagerLoadsConfig(t *testing.T) {
	t.Setenv("FRAMEWORK", "handler")
	t.Setenv("LOG_LEVEL", "warn")
	t.Setenv("AWS_LAMBDA_FUNCTION_NAME", "")
	t.Setenv("AWS_LAMBDA_RUNTIME_API", "")

	var seen *config.Config
	cm := NewContainerManager(func(cfg *config.Config) (any, error) {
		seen = cfg
		return http.NotFoundHandler(), nil
	})

	container, err := cm.GetContainer()
	require.NoError(t, err)
	require.NotNil(t, seen)
	assert.Equal(t, "handler", seen.Adapter.Framework)
	assert.Equal(t, "handler", container.Dispatcher.Name())

	reply, err := cm.Invoke(context.Background(), testutil.APIGatewayV1Event("GET", "/missing", nil, nil, nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, reply.(events.APIGatewayProxyResponse).StatusCode)
}
