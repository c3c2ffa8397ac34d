package rigid

import (
	"errors"
	"fmt"
)

// Sizing errors.
var (
	// ErrBodiesPerGroup indicates a bodies-per-group value that is not a
	// power of two in [1, MaxBodiesPerGroup].
	ErrBodiesPerGroup = errors.New("rigid: invalid bodies per group")

	// ErrScratchBudget indicates no group width fits the scratch budget.
	ErrScratchBudget = errors.New("rigid: scratch budget too small")
)

// MaxBodiesPerGroup is the largest accepted bodies-per-group value.
// Larger batches degrade occupancy and inflate the fixed-size
// bookkeeping tables without measurable gain.
const MaxBodiesPerGroup = 16

// Default sizing limits, used when the corresponding config field is zero.
const (
	DefaultPreferredWidth = 32
	DefaultMaxWidth       = 1024
	DefaultScratchBudget  = 48 * 1024
)

// SizingConfig is the explicit input to sizing resolution. It replaces
// any cached hardware query: callers resolve it once at startup and
// thread the result through as a value.
type SizingConfig struct {
	// PreferredWidth is the caller-preferred group width.
	PreferredWidth int
	// MaxWidth is the hardware/resource ceiling on group width.
	MaxWidth int
	// BodiesPerGroup is the number of bodies one group reduces
	// concurrently. Must be a power of two, at most MaxBodiesPerGroup.
	BodiesPerGroup int
	// ScratchBudget is the fast-scratch byte budget per group.
	ScratchBudget int
	// ScratchPerLane is the scratch bytes one lane needs.
	ScratchPerLane int
}

// Sizing is a resolved execution shape: GroupWidth lanes per group,
// partitioned into BodiesPerGroup windows of Window lanes each. All
// three are powers of two.
type Sizing struct {
	GroupWidth     int
	BodiesPerGroup int
	Window         int
}

// ResolveSizing picks the group width as the largest power of two not
// exceeding the preferred width and the ceiling, then halves it until
// the per-group scratch requirement fits the budget.
func ResolveSizing(cfg SizingConfig) (Sizing, error) {
	if cfg.PreferredWidth <= 0 {
		cfg.PreferredWidth = DefaultPreferredWidth
	}
	if cfg.MaxWidth <= 0 {
		cfg.MaxWidth = DefaultMaxWidth
	}
	if cfg.BodiesPerGroup <= 0 {
		cfg.BodiesPerGroup = 1
	}
	if cfg.ScratchBudget <= 0 {
		cfg.ScratchBudget = DefaultScratchBudget
	}

	bpg := cfg.BodiesPerGroup
	if bpg > MaxBodiesPerGroup || !isPow2(bpg) {
		return Sizing{}, fmt.Errorf("%w: %d (want a power of two <= %d)",
			ErrBodiesPerGroup, bpg, MaxBodiesPerGroup)
	}

	limit := cfg.PreferredWidth
	if cfg.MaxWidth < limit {
		limit = cfg.MaxWidth
	}
	width := floorPow2(limit)

	if cfg.ScratchPerLane > 0 {
		for width >= 1 && width*cfg.ScratchPerLane > cfg.ScratchBudget {
			width /= 2
		}
	}
	if width < bpg {
		return Sizing{}, fmt.Errorf("%w: width %d after fitting budget %d, need at least %d lanes",
			ErrScratchBudget, width, cfg.ScratchBudget, bpg)
	}

	return Sizing{
		GroupWidth:     width,
		BodiesPerGroup: bpg,
		Window:         width / bpg,
	}, nil
}

func isPow2(n int) bool {
	return n > 0 && n&(n-1) == 0
}

func floorPow2(n int) int {
	p := 1
	for p*2 <= n {
		p *= 2
	}
	return p
}
