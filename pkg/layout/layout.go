// Package layout maps a viewport width to the table container layout.
package layout

// Breakpoint is the widest viewport, in logical pixels, that still uses the
// narrow layout.
const Breakpoint = 600

// DefaultCellWidth is the assumed width of one terminal column in logical
// pixels.
const DefaultCellWidth = 8

// Layout is the container sizing rule for a viewport.
type Layout int

const (
	// Narrow fills the whole viewport.
	Narrow Layout = iota
	// Wide takes half of the viewport, centered.
	Wide
)

func (l Layout) String() string {
	if l == Wide {
		return "wide"
	}
	return "narrow"
}

// ForWidth returns Narrow for widths up to and including Breakpoint, Wide
// above it.
func ForWidth(width int) Layout {
	if width <= Breakpoint {
		return Narrow
	}
	return Wide
}

// ForColumns converts a terminal width to logical pixels and picks a layout.
// A non-positive cellWidth falls back to DefaultCellWidth.
func ForColumns(columns, cellWidth int) Layout {
	if cellWidth <= 0 {
		cellWidth = DefaultCellWidth
	}
	return ForWidth(columns * cellWidth)
}

// Percent is the share of the viewport the container occupies.
func (l Layout) Percent() int {
	if l == Wide {
		return 50
	}
	return 100
}

// ContainerWidth is the container width for a viewport of total units.
func (l Layout) ContainerWidth(total int) int {
	if total <= 0 {
		return 0
	}
	w := total * l.Percent() / 100
	if w < 1 {
		w = 1
	}
	return w
}
