package progrock

import (
	"fmt"

	"github.com/vito/progrock"
)

// Span wraps a progrock vertex recorder.
type Span struct {
	vertex *progrock.VertexRecorder
}

// SetAttribute records a key value pair on the vertex output.
func (s *Span) SetAttribute(key string, value any) {
	fmt.Fprintf(s.vertex.Stdout(), "%s=%v\n", key, value)
}

// End marks the vertex as done.
func (s *Span) End() {
	s.vertex.Done(nil)
}
