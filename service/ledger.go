// Package service ties the journal store, the instrument registry and the
// reflection rotator into the operations exposed by the HTTP API and CLI.
package service

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/rustyeddy/ledger/journal"
	"github.com/rustyeddy/ledger/market"
	"github.com/rustyeddy/ledger/pkg/id"
	"github.com/rustyeddy/ledger/reflection"
	"github.com/rustyeddy/ledger/store"
)

// Store is the persistence the ledger needs. *store.SQLite implements it.
type Store interface {
	InsertTrade(ctx context.Context, t journal.Trade) (journal.Trade, error)
	GetTrade(ctx context.Context, id string) (journal.Trade, error)
	ListTrades(ctx context.Context, q store.Query) (store.Page, error)
	AllTrades(ctx context.Context) ([]journal.Trade, error)
	ListTradesBetween(ctx context.Context, start, end time.Time) ([]journal.Trade, error)

	InsertReflection(ctx context.Context, r reflection.Reflection) error
	ListReflections(ctx context.Context) ([]reflection.Reflection, error)
	UpdateReflectionAnswer(ctx context.Context, id, answer string) (reflection.Reflection, error)
	DeleteReflection(ctx context.Context, id string) error

	Ping(ctx context.Context) error
}

// Options configures a Ledger. Store and PromptState are required.
type Options struct {
	Store           Store
	PromptState     reflection.StateStore
	Registry        *market.Registry
	StartingBalance decimal.Decimal
	Logger          *zap.Logger
	IDs             *id.Generator
	Now             func() time.Time
}

// Ledger is safe for concurrent use.
type Ledger struct {
	store           Store
	registry        *market.Registry
	calc            *journal.Calculator
	rotator         *reflection.Rotator
	startingBalance decimal.Decimal
	log             *zap.Logger
	ids             *id.Generator
	now             func() time.Time
}

func New(opts Options) (*Ledger, error) {
	if opts.Store == nil {
		return nil, errors.New("service: store is required")
	}
	if opts.PromptState == nil {
		return nil, errors.New("service: prompt state store is required")
	}
	if opts.Registry == nil {
		opts.Registry = market.DefaultRegistry()
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.IDs == nil {
		opts.IDs = id.NewGenerator(opts.Now)
	}

	return &Ledger{
		store:           opts.Store,
		registry:        opts.Registry,
		calc:            journal.NewCalculator(opts.Registry),
		rotator:         reflection.NewRotator(opts.PromptState),
		startingBalance: opts.StartingBalance,
		log:             opts.Logger,
		ids:             opts.IDs,
		now:             opts.Now,
	}, nil
}

func (l *Ledger) Registry() *market.Registry { return l.registry }

func (l *Ledger) StartingBalance() decimal.Decimal { return l.startingBalance }

func (l *Ledger) Ping(ctx context.Context) error { return l.store.Ping(ctx) }

// ExportCSV writes the trades matching f, oldest first. A zero Filter
// exports the whole log.
func (l *Ledger) ExportCSV(ctx context.Context, w io.Writer, f journal.Filter) error {
	trades, err := l.exportTrades(ctx, f)
	if err != nil {
		return err
	}
	return journal.WriteCSV(w, trades)
}

// ExportOrg writes the trades matching f as Org-mode blocks, oldest first.
func (l *Ledger) ExportOrg(ctx context.Context, w io.Writer, f journal.Filter) error {
	trades, err := l.exportTrades(ctx, f)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, journal.FormatTradesOrg(trades))
	return err
}

func (l *Ledger) exportTrades(ctx context.Context, f journal.Filter) ([]journal.Trade, error) {
	trades, err := l.store.AllTrades(ctx)
	if err != nil {
		return nil, err
	}
	return f.Apply(trades), nil
}
