package config

import (
	"os"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("FRAMEWORK", "")
	t.Setenv("LOG_LEVEL", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Port != "8081" {
		t.Errorf("Expected Port=8081, got %s", cfg.Port)
	}
	if cfg.Log.Format != "json" {
		t.Errorf("Expected json log format, got %s", cfg.Log.Format)
	}
	if cfg.Adapter.ExposeErrors {
		t.Error("Expected ExposeErrors to default to false")
	}
	if cfg.RateLimit.Burst != 20 {
		t.Errorf("Expected RateLimit.Burst=20, got %d", cfg.RateLimit.Burst)
	}
}

func TestLoadUnreadableDotEnv(t *testing.T) {
	chdir(t, t.TempDir())
	if err := os.Mkdir(".env", 0o755); err != nil {
		t.Fatalf("Failed to create .env directory: %v", err)
	}

	if _, err := Load(); err == nil {
		t.Error("Expected error for an unreadable .env file")
	}
}

func TestLoadWithoutDotEnv(t *testing.T) {
	chdir(t, t.TempDir())

	if _, err := Load(); err != nil {
		t.Errorf("Missing .env must not fail: %v", err)
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("FRAMEWORK", "Chi")
	t.Setenv("STRIP_BASE_PATH", "/v1")
	t.Setenv("BINARY_CONTENT_TYPES", "image/*, application/pdf ,,")
	t.Setenv("EXPOSE_ERRORS", "true")
	t.Setenv("RATE_LIMIT_RPS", "12.5")
	t.Setenv("ENVIRONMENT", "production")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Adapter.Framework != "chi" {
		t.Errorf("Expected framework chi, got %s", cfg.Adapter.Framework)
	}
	if cfg.Adapter.StripBasePath != "/v1" {
		t.Errorf("Expected StripBasePath=/v1, got %s", cfg.Adapter.StripBasePath)
	}
	if len(cfg.Adapter.BinaryContentTypes) != 2 ||
		cfg.Adapter.BinaryContentTypes[0] != "image/*" ||
		cfg.Adapter.BinaryContentTypes[1] != "application/pdf" {
		t.Errorf("Unexpected BinaryContentTypes: %v", cfg.Adapter.BinaryContentTypes)
	}
	if !cfg.Adapter.ExposeErrors {
		t.Error("Expected ExposeErrors=true")
	}
	if cfg.RateLimit.RequestsPerSecond != 12.5 {
		t.Errorf("Expected RequestsPerSecond=12.5, got %f", cfg.RateLimit.RequestsPerSecond)
	}
	if !cfg.IsProduction() {
		t.Error("Expected production environment")
	}
}

func TestServerlessMode(t *testing.T) {
	t.Setenv("AWS_LAMBDA_FUNCTION_NAME", "")
	t.Setenv("AWS_LAMBDA_RUNTIME_API", "")

	if IsServerlessMode() {
		t.Fatal("Expected server mode without Lambda environment")
	}
	if GetDeploymentMode() != "server" {
		t.Errorf("Expected server deployment mode, got %s", GetDeploymentMode())
	}

	cfg := &Config{Log: LogConfig{Format: "text"}}
	if AdaptConfigForServerless(cfg).Log.Format != "text" {
		t.Error("Server mode must not change the log format")
	}

	t.Setenv("AWS_LAMBDA_FUNCTION_NAME", "adapter-fn")
	t.Setenv("AWS_REGION", "eu-west-1")

	sc := GetServerlessConfig()
	if !sc.IsLambda || sc.FunctionName != "adapter-fn" || sc.Region != "eu-west-1" {
		t.Errorf("Unexpected serverless config: %+v", sc)
	}
	if GetDeploymentMode() != "serverless" {
		t.Errorf("Expected serverless deployment mode, got %s", GetDeploymentMode())
	}
	if AdaptConfigForServerless(cfg).Log.Format != "json" {
		t.Error("Serverless mode must switch to JSON logs")
	}
}

func TestConfigureLogger(t *testing.T) {
	logger := logrus.New()

	if err := configureLogger(logger, LogConfig{Level: "debug", Format: "text"}); err != nil {
		t.Fatalf("configureLogger failed: %v", err)
	}
	if logger.GetLevel() != logrus.DebugLevel {
		t.Errorf("Expected debug level, got %s", logger.GetLevel())
	}
	if _, ok := logger.Formatter.(*logrus.TextFormatter); !ok {
		t.Errorf("Expected text formatter, got %T", logger.Formatter)
	}

	if err := configureLogger(logger, LogConfig{}); err != nil {
		t.Fatalf("configureLogger failed: %v", err)
	}
	if _, ok := logger.Formatter.(*logrus.JSONFormatter); !ok {
		t.Errorf("Expected json formatter, got %T", logger.Formatter)
	}

	if err := configureLogger(logger, LogConfig{Level: "loud"}); err == nil {
		t.Error("Expected error for invalid level")
	}
	if err := configureLogger(logger, LogConfig{Format: "xml"}); err == nil {
		t.Error("Expected error for invalid format")
	}
}

// chdir changes the working directory for the duration of the test, like
// testing.T.Chdir (Go 1.24+), restoring the original directory on cleanup.
func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd failed: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Chdir failed: %v", err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(wd); err != nil {
			t.Fatalf("restoring working directory: %v", err)
		}
	})
}
