package reflection

import (
	"context"
	"sync"
)

// Rotator applies transitions to a stored state. Each call is a full
// load-transition-save under one lock, so concurrent callers never advance
// from the same state.
type Rotator struct {
	mu    sync.Mutex
	store StateStore
}

func NewRotator(store StateStore) *Rotator {
	return &Rotator{store: store}
}

// State returns the stored state.
func (r *Rotator) State(ctx context.Context) (State, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.store.Load(ctx)
}

// Current returns the prompt the user should answer next.
func (r *Rotator) Current(ctx context.Context) (Prompt, error) {
	s, err := r.State(ctx)
	if err != nil {
		return Prompt{}, err
	}
	return s.CurrentPrompt(), nil
}

// Skip advances to the next group and returns its prompt.
func (r *Rotator) Skip(ctx context.Context) (Prompt, State, error) {
	s, err := r.Apply(ctx, func(s State) (State, error) { return s.AdvanceGroup(), nil })
	return s.CurrentPrompt(), s, err
}

// Replace overwrites the stored state after validating it.
func (r *Rotator) Replace(ctx context.Context, s State) error {
	if err := s.Validate(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.store.Save(ctx, s)
}

// Answer runs save with the current prompt and, if it succeeds, records
// the answer. Nothing advances when save fails.
func (r *Rotator) Answer(ctx context.Context, save func(Prompt) error) (State, error) {
	return r.Apply(ctx, func(s State) (State, error) {
		if err := save(s.CurrentPrompt()); err != nil {
			return s, err
		}
		return s.RecordAnswer(), nil
	})
}

// Apply runs fn on the stored state and saves the result. When fn fails
// the stored state is left as is.
func (r *Rotator) Apply(ctx context.Context, fn func(State) (State, error)) (State, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	cur, err := r.store.Load(ctx)
	if err != nil {
		return State{}, err
	}
	next, err := fn(cur)
	if err != nil {
		return cur, err
	}
	if err := r.store.Save(ctx, next); err != nil {
		return cur, err
	}
	return next, nil
}
