package server

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"serverless-adapter/internal/adapters/aws"
	"serverless-adapter/internal/config"
	"serverless-adapter/internal/framework"
	"serverless-adapter/internal/synth"
)

// Container holds the wired adapter for one application instance
type Container struct {
	Config     *config.Config
	Dispatcher framework.Dispatcher
	Registry   *aws.Registry
	Handler    *Handler
}

// NewContainer binds app with the configured framework contract and builds
// the invocation handler. An app the contract cannot dispatch to fails here,
// before any request is served.
func NewContainer(cfg *config.Config, app any) (*Container, error) {
	dispatcher, err := framework.Select(cfg.Adapter.Framework, app)
	if err != nil {
		return nil, fmt.Errorf("failed to bind framework: %w", err)
	}

	registry := aws.DefaultRegistry(aws.NewBodyEncoder(cfg.Adapter.BinaryContentTypes...))

	handler := NewHandler(dispatcher, registry, HandlerOptions{
		Synth: synth.Options{
			StripBasePath: cfg.Adapter.StripBasePath,
		},
		ExposeErrors: cfg.Adapter.ExposeErrors,
		Logger:       logrus.StandardLogger(),
	})

	return &Container{
		Config:     cfg,
		Dispatcher: dispatcher,
		Registry:   registry,
		Handler:    handler,
	}, nil
}
