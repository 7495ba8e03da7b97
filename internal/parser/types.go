package parser

// Span locates the first double-quoted literal on a line.
type Span struct {
	// Start is the byte offset of the opening quote.
	Start int
	// End is the byte offset just past the closing quote.
	End int
	// Text is the content between the quotes.
	Text string
}

// Entry is one source line with whatever the line patterns found in it.
type Entry struct {
	// Index is the 0-based position of the line in its file.
	Index int
	// Raw is the line exactly as read, without the trailing newline.
	Raw string
	// ID is the first argument of an add(...) call, trimmed. Empty when HasID is false.
	ID    string
	HasID bool
	// Quote is nil for pass-through lines.
	Quote *Span
}

// PassThrough reports whether the line carries no quoted literal and is copied verbatim.
func (e Entry) PassThrough() bool {
	return e.Quote == nil
}
