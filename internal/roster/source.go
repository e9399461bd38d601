package roster

import (
	"context"
	"errors"
)

// ErrNoMoreViews signals that a source is exhausted.
var ErrNoMoreViews = errors.New("roster: no more detail views")

// Source yields successive inmate detail views.
type Source interface {
	// Next returns the next detail view, or ErrNoMoreViews when the roster
	// has been fully walked. Any other error is a fetch failure for that
	// view; callers may keep iterating.
	Next(ctx context.Context) (View, error)
}

// SliceSource serves a fixed list of views. Used by tests and dry runs.
type SliceSource struct {
	views []View
	pos   int
}

func NewSliceSource(views ...View) *SliceSource {
	return &SliceSource{views: views}
}

func (s *SliceSource) Next(ctx context.Context) (View, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.pos >= len(s.views) {
		return nil, ErrNoMoreViews
	}
	view := s.views[s.pos]
	s.pos++
	return view, nil
}
