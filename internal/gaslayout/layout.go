package gaslayout

import (
	"errors"
	"fmt"

	"cogentcore.org/core/math32"
)

// Layout invariant violations. Any of these fails the whole block: no partial
// geometry is ever produced, and the caller must not mark the block as known
// so that a corrected refetch of the same number can be retried.
var (
	// ErrZeroGasLimit indicates a block whose gas limit parsed to zero,
	// which would make every ratio a division by zero.
	ErrZeroGasLimit = errors.New("block gas limit is zero")

	// ErrGasUsedExceedsLimit indicates gas consumption above the block's capacity.
	ErrGasUsedExceedsLimit = errors.New("block gas used exceeds gas limit")

	// ErrTransactionGasExceedsLimit indicates a single transaction claiming
	// more gas than the whole block allows.
	ErrTransactionGasExceedsLimit = errors.New("transaction gas exceeds block gas limit")

	// ErrTransactionIndexMismatch indicates the transaction list is not in
	// index order, so marker stacking would not match the chain ordering.
	ErrTransactionIndexMismatch = errors.New("transaction index does not match list position")
)

const (
	// containerSize is the reference edge length of the gas limit container.
	// All other dimensions are expressed as fractions of it.
	containerSize float32 = 1.0

	// markerSpacing is the vertical gap left between stacked transaction
	// markers, and between the container top and the first marker.
	markerSpacing float32 = 0.05

	// minMarkerRatio is the visual floor for marker display size. It only
	// affects the marker's scale; stacking offsets use the true ratio.
	minMarkerRatio float32 = 0.05

	// maxMarkerRatio caps marker display size at the container itself.
	maxMarkerRatio float32 = 1.0
)

// Layout computes the geometric primitives for a block.
//
// The container is a unit element centered at the origin. The fill scales
// the vertical axis by gasUsed/gasLimit and sits bottom-aligned inside the
// container. Markers stack downward from just below the container top: each
// transaction occupies a span equal to its unclamped gas ratio, followed by
// markerSpacing, so markers never overlap as long as the ratios sum to at
// most one. Segments chain the axis origin to the first marker and each
// marker to the next.
func Layout(b Block) (BlockLayout, error) {
	if b.GasLimit == 0 {
		return BlockLayout{}, fmt.Errorf("block %d: %w", b.Number, ErrZeroGasLimit)
	}

	if b.GasUsed > b.GasLimit {
		return BlockLayout{}, fmt.Errorf("block %d: %w (used %d, limit %d)",
			b.Number, ErrGasUsedExceedsLimit, b.GasUsed, b.GasLimit)
	}

	fillRatio := float32(b.GasUsed) / float32(b.GasLimit)

	layout := BlockLayout{
		Number: b.Number,
		Container: Element{
			Position: math32.Vector3{},
			Scale:    math32.Vector3Scalar(containerSize),
		},
		Fill: Element{
			// bottom-aligned: the fill's lower face matches the container's
			Position: math32.Vec3(0, (fillRatio-containerSize)/2, 0),
			Scale:    math32.Vec3(containerSize, fillRatio*containerSize, containerSize),
		},
	}

	if len(b.Transactions) == 0 {
		return layout, nil
	}

	layout.Markers = make([]Marker, 0, len(b.Transactions))
	layout.Segments = make([]Segment, 0, len(b.Transactions))

	var (
		offset = containerSize/2 - markerSpacing
		prev   math32.Vector3 // axis origin
	)

	for i, tx := range b.Transactions {
		if tx.Index != uint64(i) {
			return BlockLayout{}, fmt.Errorf("block %d: %w (index %d at position %d)",
				b.Number, ErrTransactionIndexMismatch, tx.Index, i)
		}

		if tx.Gas > b.GasLimit {
			return BlockLayout{}, fmt.Errorf("block %d: %w (tx %d gas %d, limit %d)",
				b.Number, ErrTransactionGasExceedsLimit, tx.Index, tx.Gas, b.GasLimit)
		}

		var (
			ratio   = float32(tx.Gas) / float32(b.GasLimit)
			clamped = math32.Clamp(ratio, minMarkerRatio, maxMarkerRatio)
		)

		// the marker's span along the axis is the unclamped ratio; the
		// clamped value only sizes the rendered element
		offset -= ratio
		position := math32.Vec3(0, offset+ratio/2, 0)
		offset -= markerSpacing

		layout.Markers = append(layout.Markers, Marker{
			Index:        tx.Index,
			Gas:          tx.Gas,
			Ratio:        ratio,
			ClampedRatio: clamped,
			Element: Element{
				Position: position,
				Scale:    math32.Vector3Scalar(clamped),
			},
		})

		layout.Segments = append(layout.Segments, Segment{From: prev, To: position})
		prev = position
	}

	return layout, nil
}
