package domain

// Style is an opaque variant tag applied when an element is revealed.
// Surfaces map variants to their own visuals; the engine only sequences them.
type Style string

const (
	// StyleHidden is the initial state of every element after a load.
	StyleHidden Style = "hidden"
	// StyleActive marks a node freshly revealed (pulse emphasis).
	StyleActive Style = "active"
	// StyleSettled marks a node at rest after the reveal pulse.
	StyleSettled Style = "settled"
	// StyleRevealed marks a visible edge.
	StyleRevealed Style = "revealed"
)
