package gaslayout

import "context"

// Renderer is the out-of-scope scene collaborator. It receives one finished
// BlockLayout per newly observed block and is responsible for materializing,
// animating, and eventually removing the visual entities. The layout engine
// knows nothing about cameras, shading, or scene-graph parenting beyond the
// container/child relationship encoded in BlockLayout.
type Renderer interface {
	// RenderBlock realizes the geometry for one block. It is called at most
	// once per block number.
	RenderBlock(ctx context.Context, layout BlockLayout) error
}
