package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/rustyeddy/ledger/reflection"
	"github.com/rustyeddy/ledger/tracing"
)

func (l *Ledger) CurrentPrompt(ctx context.Context) (reflection.Prompt, error) {
	return l.rotator.Current(ctx)
}

// SkipPrompt moves on to the next group without answering.
func (l *Ledger) SkipPrompt(ctx context.Context) (reflection.Prompt, error) {
	p, s, err := l.rotator.Skip(ctx)
	if err != nil {
		return reflection.Prompt{}, err
	}
	l.log.Debug("prompt skipped", zap.Int("group", s.CurrentGroupIndex))
	return p, nil
}

func (l *Ledger) PromptState(ctx context.Context) (reflection.State, error) {
	return l.rotator.State(ctx)
}

func (l *Ledger) SetPromptState(ctx context.Context, s reflection.State) error {
	return l.rotator.Replace(ctx, s)
}

// SaveReflection stores answer against the current prompt and, once
// stored, advances the rotation. It returns the stored reflection and the
// prompt that comes next.
func (l *Ledger) SaveReflection(ctx context.Context, answer string) (_ reflection.Reflection, _ reflection.Prompt, err error) {
	ctx, span := tracing.Start(ctx, "ledger.SaveReflection")
	defer func() { tracing.End(span, err) }()

	var saved reflection.Reflection
	next, err := l.rotator.Answer(ctx, func(p reflection.Prompt) error {
		r, err := reflection.New(l.ids.New(), l.now(), p, answer)
		if err != nil {
			return err
		}
		if err := l.store.InsertReflection(ctx, r); err != nil {
			return err
		}
		saved = r
		return nil
	})
	if err != nil {
		return reflection.Reflection{}, reflection.Prompt{}, err
	}

	l.log.Info("reflection saved", zap.String("id", saved.ID), zap.String("group", saved.Group))
	return saved, next.CurrentPrompt(), nil
}

func (l *Ledger) Reflections(ctx context.Context) ([]reflection.Reflection, error) {
	return l.store.ListReflections(ctx)
}

// UpdateReflection replaces the answer. The prompt and group never change.
func (l *Ledger) UpdateReflection(ctx context.Context, id, answer string) (reflection.Reflection, error) {
	answer = strings.TrimSpace(answer)
	if answer == "" {
		return reflection.Reflection{}, reflection.ErrEmptyAnswer
	}
	return l.store.UpdateReflectionAnswer(ctx, id, answer)
}

func (l *Ledger) DeleteReflection(ctx context.Context, id string) error {
	if err := l.store.DeleteReflection(ctx, id); err != nil {
		return err
	}
	l.log.Info("reflection deleted", zap.String("id", id))
	return nil
}
