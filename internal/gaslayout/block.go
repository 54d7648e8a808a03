// Package gaslayout turns observed blockchain blocks into deterministic 3D
// layout primitives: a unit container representing the gas limit, a nested
// fill bar proportional to gas usage, one marker per transaction stacked
// along the vertical axis, and line segments connecting consecutive markers.
//
// The package also owns the dedup gate: a block number is laid out and handed
// to the renderer at most once, tracked through an injected KnownBlockStore.
package gaslayout

import "cogentcore.org/core/math32"

// Transaction is a single transaction inside a block, reduced to the fields
// the layout needs.
type Transaction struct {
	Index uint64 // position of the transaction within its block
	Gas   uint64 // gas allotted to the transaction
}

// Block is a parsed blockchain block. It is created once per distinct block
// number and never mutated afterwards.
type Block struct {
	Number       uint64 // unique block identifier
	GasLimit     uint64 // gas capacity of the block
	GasUsed      uint64 // gas consumed by the block
	Transactions []Transaction
}

// Element is a positioned and scaled visual primitive. Coordinates are
// relative to the block's container; the renderer decides world placement.
type Element struct {
	Position math32.Vector3 `json:"position"`
	Scale    math32.Vector3 `json:"scale"`
}

// Marker is the visual unit for one transaction. Ratio is the transaction's
// true share of the block's gas limit; ClampedRatio is the display size after
// applying the visual floor and ceiling. Stacking offsets always use Ratio,
// never ClampedRatio.
type Marker struct {
	Element
	Index        uint64  `json:"index"`
	Gas          uint64  `json:"gas"`
	Ratio        float32 `json:"ratio"`
	ClampedRatio float32 `json:"clampedRatio"`
}

// Segment is a line between two points, connecting consecutive transaction
// markers. The first segment of a block originates at the axis origin.
type Segment struct {
	From math32.Vector3 `json:"from"`
	To   math32.Vector3 `json:"to"`
}

// BlockLayout is the full set of geometric primitives derived from one block.
// Fill and Markers are children of Container in the consuming scene graph.
type BlockLayout struct {
	Number    uint64    `json:"number"`
	Container Element   `json:"container"`
	Fill      Element   `json:"fill"`
	Markers   []Marker  `json:"markers,omitempty"`
	Segments  []Segment `json:"segments,omitempty"`
}
