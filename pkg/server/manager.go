package server

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"serverless-adapter/internal/config"
)

// AppFactory builds the application the adapter wraps
type AppFactory func(cfg *config.Config) (any, error)

// ContainerManager builds the container on the first invocation of an
// execution environment and reuses it while the environment stays warm.
type ContainerManager struct {
	factory AppFactory

	initOnce  sync.Once
	initErr   error
	container *Container

	mu          sync.Mutex
	lastUsed    time.Time
	invocations int64
}

// NewContainerManager returns a manager that builds apps with factory
func NewContainerManager(factory AppFactory) *ContainerManager {
	return &ContainerManager{factory: factory}
}

// Initialize builds the container from cfg. Only the first call has an effect.
func (cm *ContainerManager) Initialize(cfg *config.Config) error {
	cm.initOnce.Do(func() {
		app, err := cm.factory(cfg)
		if err != nil {
			cm.initErr = err
			return
		}

		container, err := NewContainer(cfg, app)
		if err != nil {
			cm.initErr = err
			return
		}
		cm.container = container
	})

	return cm.initErr
}

// GetContainer returns the container, loading configuration on first use
func (cm *ContainerManager) GetContainer() (*Container, error) {
	cm.initOnce.Do(func() {
		cfg, err := config.GetOptimizedConfig()
		if err != nil {
			cm.initErr = err
			return
		}
		if err := config.ConfigureLogging(cfg.Log); err != nil {
			cm.initErr = err
			return
		}

		app, err := cm.factory(cfg)
		if err != nil {
			cm.initErr = err
			return
		}
		cm.container, cm.initErr = NewContainer(cfg, app)
	})

	return cm.container, cm.initErr
}

// Invoke is the function passed to lambda.Start
func (cm *ContainerManager) Invoke(ctx context.Context, payload json.RawMessage) (any, error) {
	container, err := cm.GetContainer()
	if err != nil {
		logrus.WithError(err).Error("Failed to initialize adapter")
		return nil, err
	}

	cm.mu.Lock()
	cm.invocations++
	coldStart := cm.invocations == 1
	idle := time.Duration(0)
	if !cm.lastUsed.IsZero() {
		idle = time.Since(cm.lastUsed)
	}
	cm.lastUsed = time.Now()
	cm.mu.Unlock()

	if coldStart {
		sc := config.GetServerlessConfig()
		logrus.WithFields(logrus.Fields{
			"framework":       container.Dispatcher.Name(),
			"deployment_mode": config.GetDeploymentMode(),
			"function_name":   sc.FunctionName,
			"function_region": sc.Region,
			"memory_mb":       sc.MemoryMB,
		}).Info("Cold start")
	} else {
		logrus.WithField("idle_ms", idle.Milliseconds()).Debug("Warm invocation")
	}

	return container.Handler.Invoke(ctx, payload)
}

// IsWarm reports whether the container has served at least one invocation
func (cm *ContainerManager) IsWarm() bool {
	cm.mu.Lock()
	defer cm.mu.Unlock()
	return cm.invocations > 0
}

// Invocations returns the number of invocations served by this environment
func (cm *ContainerManager) Invocations() int64 {
	cm.mu.Lock()
	defer cm.mu.Unlock()
	return cm.invocations
}
