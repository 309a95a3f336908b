package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"serverless-adapter/internal/config"
	"serverless-adapter/internal/eventfile"
	"serverless-adapter/internal/handlers"
	"serverless-adapter/pkg/server"
)

type runOptions struct {
	framework     string
	stripBasePath string
	exposeErrors  bool
	timeout       time.Duration
	compact       bool
}

func newRunCmd() *cobra.Command {
	opts := &runOptions{}

	cmd := &cobra.Command{
		Use:   "run [event-file...]",
		Short: "Invoke the demo application with one or more events",
		Long: `Run loads each event file, detects its shape and dispatches it to the
demo application through the adapter. Use "-" to read an event from stdin.`,
		Example: `  invoke run testdata/v2-post.yaml
  invoke run --framework chi --strip-base-path /api alb.json
  cat event.json | invoke run -`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEvents(cmd, opts, args)
		},
	}

	cmd.Flags().StringVar(&opts.framework, "framework", "", "Framework contract (gin, chi, echo, http, handler); defaults to FRAMEWORK")
	cmd.Flags().StringVar(&opts.stripBasePath, "strip-base-path", "", "Base path removed before dispatch; defaults to STRIP_BASE_PATH")
	cmd.Flags().BoolVar(&opts.exposeErrors, "expose-errors", false, "Include error details in error replies")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", 30*time.Second, "Invocation deadline")
	cmd.Flags().BoolVar(&opts.compact, "compact", false, "Print replies on a single line")

	return cmd
}

func runEvents(cmd *cobra.Command, opts *runOptions, files []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if err := config.ConfigureLogging(cfg.Log); err != nil {
		return err
	}
	logrus.SetOutput(cmd.ErrOrStderr())

	if cmd.Flags().Changed("framework") {
		cfg.Adapter.Framework = opts.framework
	}
	if cmd.Flags().Changed("strip-base-path") {
		cfg.Adapter.StripBasePath = opts.stripBasePath
	}
	if cmd.Flags().Changed("expose-errors") {
		cfg.Adapter.ExposeErrors = opts.exposeErrors
	}

	app, err := handlers.NewApp(cfg)
	if err != nil {
		return err
	}
	container, err := server.NewContainer(cfg, app)
	if err != nil {
		return err
	}

	for _, file := range files {
		payload, err := readEvent(cmd.InOrStdin(), file)
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), opts.timeout)
		reply, err := container.Handler.Invoke(ctx, payload)
		cancel()
		if err != nil {
			return fmt.Errorf("invocation of %s failed: %w", file, err)
		}

		if err := writeReply(cmd.OutOrStdout(), reply, opts.compact); err != nil {
			return err
		}
	}

	return nil
}

func readEvent(stdin io.Reader, file string) ([]byte, error) {
	if file != "-" {
		return eventfile.Load(file)
	}

	data, err := io.ReadAll(stdin)
	if err != nil {
		return nil, fmt.Errorf("failed to read event from stdin: %w", err)
	}
	payload, err := eventfile.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode event from stdin: %w", err)
	}
	return payload, nil
}

func writeReply(w io.Writer, reply any, compact bool) error {
	enc := json.NewEncoder(w)
	if !compact {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(reply)
}
