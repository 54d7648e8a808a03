package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/gabapcia/gasviz/internal/vizproc"

	"github.com/urfave/cli/v3"
)

// startPipelineCommand returns a CLI command that starts the continuous
// pipeline: latest-block polling, layout computation and scene rendering.
//
// Usage example:
//
//	gasviz start
//
// The process runs indefinitely until it receives an interrupt (SIGINT or SIGTERM).
func startPipelineCommand(vp vizproc.Service) *cli.Command {
	return &cli.Command{
		Name:        "start",
		Description: "Starts the block layout pipeline including latest-block polling and scene rendering.",
		Usage:       "Initializes and runs the full pipeline. Terminates gracefully on Ctrl+C or termination signals.",
		Action: func(ctx context.Context, c *cli.Command) error {
			quit := make(chan os.Signal, 1)
			defer close(quit)

			signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

			if err := vp.Start(ctx); err != nil {
				return err
			}
			defer vp.Close()

			<-quit
			return nil
		},
	}
}
