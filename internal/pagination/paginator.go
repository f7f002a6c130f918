package pagination

import (
	"context"
	"fmt"

	"github.com/google/cel-go/cel"
)

const thisVar = "this"

// Request carries the listing parameters of a collection GET.
type Request struct {
	// Filter is a CEL expression over this, the payload of one item, that
	// must evaluate to a bool.
	Filter      string
	MaxPageSize int
	PageToken   string
}

// FilterError reports a filter expression that cannot be compiled or
// evaluated.
type FilterError struct {
	cause error
}

// Error satisfies [error].
func (ferr FilterError) Error() string {
	return "invalid filter: " + ferr.cause.Error()
}

// Unwrap returns the underlying cause of the filter error.
func (ferr FilterError) Unwrap() error {
	return ferr.cause
}

// Paginator applies filtering and pagination to listings whose items are
// ordered by ascending ID.
type Paginator struct {
	env *cel.Env
}

// NewPaginator creates a Paginator with a CEL environment exposing this as a
// map of the item's payload fields.
func NewPaginator() (*Paginator, error) {
	env, err := cel.NewEnv(cel.Variable(thisVar, cel.MapType(cel.StringType, cel.DynType)))
	if err != nil {
		return nil, fmt.Errorf("failed to create paginator CEL environment: %w", err)
	}
	return &Paginator{env: env}, nil
}

// Page is one page of a listing.
type Page[E any] struct {
	Items []E
	// NextPageToken is empty on the last page.
	NextPageToken string
}

// Apply runs the cursor of req.PageToken, then the filter, then the page size
// over items. id returns an item's ID and fields its payload for the filter.
func Apply[E any](
	ctx context.Context,
	p *Paginator,
	req Request,
	items []E,
	id func(E) int64,
	fields func(E) map[string]any,
) (Page[E], error) {
	var page Page[E]
	if req.PageToken != "" {
		tkn, err := FromToken(req.PageToken)
		if err != nil {
			return page, err
		}
		items = applyToken(items, tkn, id)
	}

	items, err := applyFilter(ctx, p, req.Filter, items, fields)
	if err != nil {
		return page, err
	}

	size := req.MaxPageSize
	if size <= 0 || len(items) <= size {
		page.Items = items
		return page, nil
	}
	page.Items = items[:size]
	page.NextPageToken, err = ToToken(Token{After: id(items[size-1])})
	return page, err
}

func applyToken[E any](items []E, tkn Token, id func(E) int64) []E {
	for idx, item := range items {
		// the cursor item may have been deleted, resume at the next ID
		if id(item) > tkn.After {
			return items[idx:]
		}
	}
	return nil
}

func applyFilter[E any](
	ctx context.Context,
	p *Paginator,
	expr string,
	items []E,
	fields func(E) map[string]any,
) ([]E, error) {
	if expr == "" || len(items) == 0 {
		return items, nil
	}
	prog, err := p.compile(expr)
	if err != nil {
		return nil, FilterError{cause: err}
	}
	out := make([]E, 0, len(items))
	for _, item := range items {
		val, _, err := prog.ContextEval(ctx, map[string]any{thisVar: fields(item)})
		if err != nil {
			return nil, FilterError{cause: err}
		}
		keep, ok := val.Value().(bool)
		if !ok {
			return nil, FilterError{cause: fmt.Errorf("filter expression must return bool but got %s", val.Type().TypeName())}
		}
		if keep {
			out = append(out, item)
		}
	}
	return out, nil
}

func (p *Paginator) compile(expr string) (cel.Program, error) {
	ast, issues := p.env.Compile(expr)
	if err := issues.Err(); err != nil {
		return nil, fmt.Errorf("failed to compile filter: %w", err)
	}
	outType := ast.OutputType()
	if !outType.IsExactType(cel.BoolType) && !outType.IsExactType(cel.DynType) {
		return nil, fmt.Errorf("filter expression must return bool but got %s", outType.String())
	}
	return p.env.Program(ast)
}
