package markup

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/alnah/go-helpmaker/internal/logging"
)

// Sentinel errors for reconstruction.
var (
	// ErrUnmatchedEnd indicates an end tag with no matching open element.
	ErrUnmatchedEnd = errors.New("end tag has no matching start tag")

	// ErrUnclosedElements indicates the event source ended with open elements.
	ErrUnclosedElements = errors.New("elements left open at end of input")
)

// Handler consumes markup events.
type Handler interface {
	OnStart(name string, attrs []Attr) error
	OnSelfClosing(name string, attrs []Attr) error
	OnText(data string) error
	OnEnd(name string) error
}

// Compile-time interface checks.
var (
	_ Handler = (*Reconstructor)(nil)
	_ Handler = (*MetadataExtractor)(nil)
)

// Reconstructor writes a stream of markup events back out as text.
// It is not safe for concurrent use.
type Reconstructor struct {
	sink       io.Writer
	logger     *slog.Logger
	stack      []*Element
	mismatches int
}

// NewReconstructor creates a Reconstructor writing to sink.
// A nil logger discards mismatch warnings.
func NewReconstructor(sink io.Writer, logger *slog.Logger) *Reconstructor {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Reconstructor{sink: sink, logger: logger}
}

// OnStart opens a new element.
func (r *Reconstructor) OnStart(name string, attrs []Attr) error {
	r.stack = append(r.stack, NewElement(name, attrs))
	return nil
}

// OnSelfClosing flushes a complete element without data.
func (r *Reconstructor) OnSelfClosing(name string, attrs []Attr) error {
	return r.flush(NewElement(name, attrs))
}

// OnText appends data to the innermost open element, or writes it to the
// sink when no element is open.
func (r *Reconstructor) OnText(data string) error {
	if top := r.top(); top != nil {
		top.AppendData(data)
		return nil
	}
	return r.write(data)
}

// OnEnd closes the innermost element named name. Elements popped on the way
// are flushed with their data and reported as mismatches.
func (r *Reconstructor) OnEnd(name string) error {
	for len(r.stack) > 0 {
		el := r.pop()
		if el.Name == name {
			return r.flush(el)
		}

		r.mismatches++
		r.logger.Warn("mismatched end tag",
			slog.String("expected", name),
			slog.String("found", el.Name),
			slog.Int("depth", len(r.stack)))
		if err := r.flush(el); err != nil {
			return err
		}
	}
	return fmt.Errorf("%w: </%s>", ErrUnmatchedEnd, name)
}

// Close reports elements that were never closed. It does not close them.
func (r *Reconstructor) Close() error {
	if len(r.stack) == 0 {
		return nil
	}
	names := make([]string, len(r.stack))
	for i, el := range r.stack {
		names[i] = el.Name
	}
	return fmt.Errorf("%w: %v", ErrUnclosedElements, names)
}

// Depth returns the number of open elements.
func (r *Reconstructor) Depth() int {
	return len(r.stack)
}

// Mismatches returns the number of repaired end tags.
func (r *Reconstructor) Mismatches() int {
	return r.mismatches
}

// flush serializes el and folds it into the innermost open element,
// or writes it to the sink when the stack is empty.
func (r *Reconstructor) flush(el *Element) error {
	s := el.String()
	if top := r.top(); top != nil {
		top.AppendData(s)
		return nil
	}
	return r.write(s)
}

func (r *Reconstructor) top() *Element {
	if len(r.stack) == 0 {
		return nil
	}
	return r.stack[len(r.stack)-1]
}

func (r *Reconstructor) pop() *Element {
	last := len(r.stack) - 1
	el := r.stack[last]
	r.stack[last] = nil
	r.stack = r.stack[:last]
	return el
}

func (r *Reconstructor) write(s string) error {
	if _, err := io.WriteString(r.sink, s); err != nil {
		return fmt.Errorf("writing markup: %w", err)
	}
	return nil
}
