package cli

import (
	"context"
	"io"

	"github.com/gabapcia/gasviz/internal/blockfetch"
	"github.com/gabapcia/gasviz/internal/gaslayout"
	"github.com/gabapcia/gasviz/internal/infra/scene/jsonl"
	"github.com/gabapcia/gasviz/internal/vizproc"

	"github.com/urfave/cli/v3"
)

// snapshotCommand returns a CLI command that fetches the latest block once,
// computes its layout and writes the scene document to the given writer.
//
// Usage example:
//
//	gasviz snapshot
//
// The snapshot bypasses the dedup gate: it always prints whatever block the
// node currently reports as latest.
func snapshotCommand(chain blockfetch.Blockchain, out io.Writer) *cli.Command {
	return &cli.Command{
		Name:        "snapshot",
		Description: "Fetches the latest block once and prints its layout as a JSON document.",
		Usage:       "One-shot fetch and layout. Useful for inspecting the scene without running the pipeline.",
		Action: func(ctx context.Context, c *cli.Command) error {
			block, err := chain.FetchLatestBlock(ctx)
			if err != nil {
				return err
			}

			layout, err := gaslayout.Layout(vizproc.MapFetchedToLayoutBlock(block))
			if err != nil {
				return err
			}

			return jsonl.NewRenderer(out).RenderBlock(ctx, layout)
		},
	}
}
