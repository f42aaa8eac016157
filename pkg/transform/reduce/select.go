package reduce

import (
	"context"

	e "github.com/wdm0006/eprime/pkg/eprime"
)

// Select reduces the frame to exactly the named columns, in that order.
// A requested column absent from the frame is a MissingColumnError.
type Select struct {
	Columns []string
}

func (t *Select) Name() string { return "select" }

func (t *Select) Apply(ctx context.Context, f *e.Frame) (*e.Frame, error) {
	return f.Select(t.Columns)
}
