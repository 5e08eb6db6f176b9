package components

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
)

// Writer emits markup for hand-built components. The first write error
// sticks and later writes are dropped.
type Writer struct {
	w   io.Writer
	err error
}

func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// Raw writes trusted markup as-is
func (h *Writer) Raw(s string) {
	if h.err != nil {
		return
	}
	_, h.err = io.WriteString(h.w, s)
}

// Text writes escaped text
func (h *Writer) Text(s string) {
	h.Raw(templ.EscapeString(s))
}

// Printf formats trusted markup; string arguments are escaped
func (h *Writer) Printf(format string, args ...interface{}) {
	escaped := make([]interface{}, len(args))
	for i, a := range args {
		if s, ok := a.(string); ok {
			escaped[i] = templ.EscapeString(s)
		} else {
			escaped[i] = a
		}
	}
	h.Raw(fmt.Sprintf(format, escaped...))
}

// Component renders a nested component
func (h *Writer) Component(ctx context.Context, c templ.Component) {
	if h.err != nil || c == nil {
		return
	}
	h.err = c.Render(ctx, h.w)
}

func (h *Writer) Err() error {
	return h.err
}

// Build wraps a rendering function as a templ component
func Build(fn func(ctx context.Context, h *Writer)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := NewWriter(w)
		fn(ctx, h)
		return h.Err()
	})
}

// BoolAttr returns the bare attribute when on
func BoolAttr(name string, on bool) string {
	if !on {
		return ""
	}
	return " " + name
}
