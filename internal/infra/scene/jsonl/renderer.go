// Package jsonl renders block layouts as JSON Lines, one scene document per
// block, so downstream visualizers can stream them without framing logic.
package jsonl

import (
	"context"
	"encoding/json"
	"io"
	"sync"

	"github.com/gabapcia/gasviz/internal/gaslayout"
)

type renderer struct {
	mu  sync.Mutex
	out io.Writer
}

// Ensure renderer implements the gaslayout.Renderer interface at compile time.
var _ gaslayout.Renderer = (*renderer)(nil)

// RenderBlock writes the layout as a single JSON line. Writes are serialized
// so concurrent blocks never interleave on the stream.
func (r *renderer) RenderBlock(ctx context.Context, layout gaslayout.BlockLayout) error {
	data, err := json.Marshal(layout)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	if _, err := r.out.Write(data); err != nil {
		return err
	}
	_, err = r.out.Write([]byte("\n"))
	return err
}

// NewRenderer creates a renderer that emits one JSON document per block
// layout to the provided writer.
func NewRenderer(out io.Writer) *renderer {
	return &renderer{
		out: out,
	}
}
