package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/rustyeddy/ledger/journal"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// Query selects one page of the trade log, newest first.
type Query struct {
	Page   int
	Limit  int
	Filter journal.Filter
}

// Page is one page of trades plus the size of the whole filtered log.
type Page struct {
	Trades     []journal.Trade `json:"trades"`
	Total      int             `json:"total"`
	Page       int             `json:"page"`
	Limit      int             `json:"limit"`
	TotalPages int             `json:"totalPages"`
}

const tradeColumns = `trade_id, traded_at, ticker, direction, entry_price, exit_price, quantity,
	stop_loss, take_profit, notes, pnl, is_profitable`

// InsertTrade stores t. An empty ID is replaced with the next sequential
// id ("001", "002", ...). A supplied all-digit id must fit in an int64 so
// sequential assignment can continue past it. The stored trade is returned.
func (s *SQLite) InsertTrade(ctx context.Context, t journal.Trade) (journal.Trade, error) {
	if err := checkTradeID(t.ID); err != nil {
		return journal.Trade{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return journal.Trade{}, fmt.Errorf("insert trade: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if t.ID == "" {
		if t.ID, err = nextTradeID(ctx, tx); err != nil {
			return journal.Trade{}, err
		}
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO trades
		(trade_id, traded_at, traded_unix, ticker, direction, entry_price, exit_price, quantity,
		 stop_loss, take_profit, notes, pnl, is_profitable)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID, formatTime(t.Time), t.Time.UnixNano(), t.Ticker, string(t.Direction),
		t.EntryPrice, t.ExitPrice, t.Quantity,
		nullFloat(t.StopLoss), nullFloat(t.TakeProfit), t.Notes,
		t.PnL.String(), t.IsProfitable,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return journal.Trade{}, fmt.Errorf("trade %q: %w", t.ID, ErrDuplicate)
		}
		return journal.Trade{}, fmt.Errorf("insert trade %q: %w", t.ID, err)
	}
	if err := tx.Commit(); err != nil {
		return journal.Trade{}, fmt.Errorf("insert trade %q: %w", t.ID, err)
	}
	return t, nil
}

// nextTradeID is one past the largest all-digit trade id.
func nextTradeID(ctx context.Context, tx *sql.Tx) (string, error) {
	var last sql.NullInt64
	err := tx.QueryRowContext(ctx, `
		SELECT MAX(CAST(trade_id AS INTEGER)) FROM trades
		WHERE trade_id <> '' AND trade_id NOT GLOB '*[^0-9]*'`).Scan(&last)
	if err != nil {
		return "", fmt.Errorf("next trade id: %w", err)
	}
	if last.Int64 == math.MaxInt64 {
		return "", fmt.Errorf("next trade id: sequence exhausted at %d", last.Int64)
	}
	return fmt.Sprintf("%03d", last.Int64+1), nil
}

func checkTradeID(id string) error {
	if id == "" || strings.Trim(id, "0123456789") != "" {
		return nil
	}
	if _, err := strconv.ParseInt(id, 10, 64); err != nil {
		return &journal.ValidationError{Field: "id", Value: id, Reason: "numeric id out of range"}
	}
	return nil
}

// GetTrade returns a single trade by id.
func (s *SQLite) GetTrade(ctx context.Context, id string) (journal.Trade, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+tradeColumns+` FROM trades WHERE trade_id = ?`, id)
	t, err := scanTrade(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return journal.Trade{}, &NotFoundError{Kind: "trade", ID: id}
		}
		return journal.Trade{}, err
	}
	return t, nil
}

// ListTrades returns one page of the filtered log, newest first.
func (s *SQLite) ListTrades(ctx context.Context, q Query) (Page, error) {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit < 1 {
		q.Limit = DefaultPageSize
	}
	if q.Limit > MaxPageSize {
		q.Limit = MaxPageSize
	}

	where, args := filterClause(q.Filter)

	var total int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM trades`+where, args...).Scan(&total); err != nil {
		return Page{}, fmt.Errorf("count trades: %w", err)
	}

	trades, err := s.queryTrades(ctx, `SELECT `+tradeColumns+` FROM trades`+where+`
		ORDER BY traded_unix DESC, seq DESC LIMIT ? OFFSET ?`,
		append(args, q.Limit, (q.Page-1)*q.Limit)...)
	if err != nil {
		return Page{}, err
	}

	return Page{
		Trades:     trades,
		Total:      total,
		Page:       q.Page,
		Limit:      q.Limit,
		TotalPages: (total + q.Limit - 1) / q.Limit,
	}, nil
}

// AllTrades returns every trade oldest first.
func (s *SQLite) AllTrades(ctx context.Context) ([]journal.Trade, error) {
	return s.queryTrades(ctx, `SELECT `+tradeColumns+` FROM trades ORDER BY traded_unix ASC, seq ASC`)
}

// ListTradesBetween returns trades whose time is within [start, end),
// oldest first.
func (s *SQLite) ListTradesBetween(ctx context.Context, start, end time.Time) ([]journal.Trade, error) {
	return s.queryTrades(ctx, `SELECT `+tradeColumns+` FROM trades
		WHERE traded_unix >= ? AND traded_unix < ?
		ORDER BY traded_unix ASC, seq ASC`, start.UnixNano(), end.UnixNano())
}

func (s *SQLite) queryTrades(ctx context.Context, query string, args ...any) ([]journal.Trade, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query trades: %w", err)
	}
	defer rows.Close()

	out := []journal.Trade{}
	for rows.Next() {
		t, err := scanTrade(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func scanTrade(row scanner) (journal.Trade, error) {
	var (
		t          journal.Trade
		at, dir    string
		stop, take sql.NullFloat64
		pnl        string
	)
	err := row.Scan(
		&t.ID,
		&at,
		&t.Ticker,
		&dir,
		&t.EntryPrice,
		&t.ExitPrice,
		&t.Quantity,
		&stop,
		&take,
		&t.Notes,
		&pnl,
		&t.IsProfitable,
	)
	if err != nil {
		return journal.Trade{}, err
	}

	if t.Time, err = parseTime(at); err != nil {
		return journal.Trade{}, err
	}
	if t.Direction, err = journal.ParseDirection(dir); err != nil {
		return journal.Trade{}, fmt.Errorf("trade %q: %w", t.ID, err)
	}
	if err := t.PnL.Scan(pnl); err != nil {
		return journal.Trade{}, fmt.Errorf("trade %q: pnl %q: %w", t.ID, pnl, err)
	}
	if stop.Valid {
		t.StopLoss = &stop.Float64
	}
	if take.Valid {
		t.TakeProfit = &take.Float64
	}
	return t, nil
}

// filterClause matches journal.Filter. The hour is read from the stored
// RFC3339 text so AM/PM follows the trader's own clock.
func filterClause(f journal.Filter) (string, []any) {
	var (
		conds []string
		args  []any
	)
	if f.Direction != "" {
		conds = append(conds, "direction = ?")
		args = append(args, string(f.Direction))
	}
	switch f.Period {
	case "AM":
		conds = append(conds, "CAST(substr(traded_at, 12, 2) AS INTEGER) < 12")
	case "PM":
		conds = append(conds, "CAST(substr(traded_at, 12, 2) AS INTEGER) >= 12")
	}
	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func nullFloat(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}
