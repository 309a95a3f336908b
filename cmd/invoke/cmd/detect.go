package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"serverless-adapter/internal/shape"
)

func newDetectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "detect [event-file...]",
		Short: "Print the detected shape of each event",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, file := range args {
				payload, err := readEvent(cmd.InOrStdin(), file)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", file, shape.Detect(payload))
			}
			return nil
		},
	}
}
