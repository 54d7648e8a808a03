// Package cli exposes the gasviz command-line interface.
package cli

import (
	"context"
	"os"

	"github.com/gabapcia/gasviz/internal/blockfetch"
	"github.com/gabapcia/gasviz/internal/vizproc"

	"github.com/urfave/cli/v3"
)

// Run initializes and executes the gasviz CLI application.
//
// It registers all available commands, including:
//
//   - `start`: Runs the continuous fetch/layout/render pipeline.
//   - `snapshot`: Fetches the latest block once and prints its layout.
//
// Parameters:
//   - ctx: Context used to control the lifecycle of the CLI application.
//   - vp: The vizproc service driving the continuous pipeline.
//   - chain: The blockchain client used by one-shot commands.
func Run(ctx context.Context, vp vizproc.Service, chain blockfetch.Blockchain) error {
	app := &cli.Command{
		EnableShellCompletion: true,
		Name:                  "gasviz",
		Description:           "Command-line interface for the gasviz block layout pipeline.",
		Usage:                 "gasviz [command] [flags]",
		Commands: []*cli.Command{
			startPipelineCommand(vp),
			snapshotCommand(chain, os.Stdout),
		},
	}

	return app.Run(ctx, os.Args)
}
