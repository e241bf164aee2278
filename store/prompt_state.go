package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rustyeddy/ledger/reflection"
)

// PromptState is the rotation state of one account, stored as JSON in the
// prompt_state table. It implements reflection.StateStore.
type PromptState struct {
	s       *SQLite
	account string
}

func (s *SQLite) PromptStateStore(account string) *PromptState {
	return &PromptState{s: s, account: account}
}

// Load returns the initial state when the account has none stored.
func (p *PromptState) Load(ctx context.Context) (reflection.State, error) {
	var raw string
	err := p.s.db.QueryRowContext(ctx, `SELECT state FROM prompt_state WHERE account = ?`, p.account).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return reflection.Initial(), nil
	}
	if err != nil {
		return reflection.State{}, fmt.Errorf("load prompt state %q: %w", p.account, err)
	}
	return reflection.Decode([]byte(raw))
}

func (p *PromptState) Save(ctx context.Context, st reflection.State) error {
	b, err := reflection.Encode(st)
	if err != nil {
		return err
	}
	_, err = p.s.db.ExecContext(ctx, `
		INSERT INTO prompt_state (account, state, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(account) DO UPDATE SET state = excluded.state, updated_at = excluded.updated_at`,
		p.account, string(b), formatTime(p.s.now().UTC()),
	)
	if err != nil {
		return fmt.Errorf("save prompt state %q: %w", p.account, err)
	}
	return nil
}
