package html

// Options controls how parsed HTML is converted to the dom tree
type Options struct {
	// KeepWhitespace keeps whitespace-only text nodes, which are dropped by default
	KeepWhitespace bool
}
