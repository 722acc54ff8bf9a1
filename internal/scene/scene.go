// Package scene abstracts the visual nodes the menu engine instructs. The
// engine only ever enables, positions and resizes nodes; drawing them is the
// concern of whichever front-end owns the Scene implementation.
package scene

// Node is a handle to one visual element (a menu surface, an item background
// or an item state overlay). Implementations are not required to be safe for
// concurrent use; the engine drives them from a single goroutine.
type Node interface {
	SetEnabled(enabled bool)
	Enabled() bool
	SetPosition(x, y int)
	Position() (x, y int)
	Resize(width, height int)
	Size() (width, height int)
	Destroy()
}

// Scene allocates nodes. NewNode may return nil to signal allocation failure;
// callers degrade by skipping the element rather than failing the operation.
type Scene interface {
	NewNode(parent Node) Node
}
