package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"serverless-adapter/internal/config"
	"serverless-adapter/internal/services"
)

// NewApp builds the demo application in the shape the configured framework
// contract expects. Its signature matches server.AppFactory.
func NewApp(cfg *config.Config) (any, error) {
	return NewAppWithService(cfg, services.NewRecordService())
}

// NewAppWithService is NewApp with an explicit record service
func NewAppWithService(cfg *config.Config, recordService services.RecordService) (any, error) {
	switch strings.ToLower(cfg.Adapter.Framework) {
	case "gin", "":
		return NewGinApp(cfg, recordService), nil
	case "chi":
		return NewChiApp(recordService), nil
	case "echo":
		return NewEchoApp(recordService), nil
	case "http":
		return &http.Server{
			Addr:    ":" + cfg.Port,
			Handler: NewGinApp(cfg, recordService),
		}, nil
	case "handler":
		return http.Handler(NewGinApp(cfg, recordService)), nil
	default:
		return nil, fmt.Errorf("no demo application for framework %q", cfg.Adapter.Framework)
	}
}
