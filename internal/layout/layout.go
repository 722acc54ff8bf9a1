// Package layout computes menu geometry: the bottom-up width pass and the
// top-down position pass that places menus across the monitor layout.
package layout

// Box is an axis-aligned rectangle in layout coordinates.
type Box struct {
	X, Y          int
	Width, Height int
}

// Contains reports whether the point lies inside the box.
func (b Box) Contains(x, y int) bool {
	return x >= b.X && x < b.X+b.Width && y >= b.Y && y < b.Y+b.Height
}

// Monitor is one output with its usable area (the full area minus panels and
// other reserved space).
type Monitor struct {
	Name       string
	UsableArea Box
}

// Layout is the ordered set of monitors menus can be placed on.
type Layout struct {
	monitors []Monitor
}

// New returns a layout over the given monitors.
func New(monitors ...Monitor) *Layout {
	return &Layout{monitors: monitors}
}

// Single returns a one-monitor layout of the given size anchored at the
// origin, the common case for the terminal front-end.
func Single(width, height int) *Layout {
	return New(Monitor{
		Name:       "primary",
		UsableArea: Box{Width: width, Height: height},
	})
}

// MonitorAt resolves the monitor containing the point, or nil when the point
// lies outside every usable area.
func (l *Layout) MonitorAt(x, y int) *Monitor {
	for i := range l.monitors {
		if l.monitors[i].UsableArea.Contains(x, y) {
			return &l.monitors[i]
		}
	}
	return nil
}

// Monitors returns the configured monitors.
func (l *Layout) Monitors() []Monitor {
	return l.monitors
}
