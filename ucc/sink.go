package ucc

import "io"

// Sink accepts output fragments, in emission order. Any io.StringWriter will
// do: strings.Builder, bytes.Buffer, bufio.Writer, os.File.
type Sink = io.StringWriter

// SinkFunc adapts a callback to a Sink.
type SinkFunc func(fragment string)

// WriteString passes s to the callback.
func (f SinkFunc) WriteString(s string) (int, error) {
	f(s)
	return len(s), nil
}

// discard is used when a caller passes a nil Sink.
type discard struct{}

func (discard) WriteString(s string) (int, error) { return len(s), nil }
