// Package journal keeps a local, append-only audit trail of the
// mutations this client performed against the backend: goal edits,
// contributions, achievements and deletes. It exists for auditing and
// export only; derived state such as current_amount is never read back
// from here, the backend stays authoritative.
package journal

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"finzen/internal/core"
	"finzen/internal/log"

	_ "modernc.org/sqlite"
)

// Actions recorded in the journal.
const (
	ActionCreate     = "create"
	ActionUpdate     = "update"
	ActionDelete     = "delete"
	ActionContribute = "contribute"
	ActionAchieve    = "achieve"
	ActionPayment    = "payment"
)

var ErrNotFound = errors.New("journal entry not found")

// Entry is one recorded mutation. AmountCents is zero for mutations that
// carry no amount (deletes, achievements).
type Entry struct {
	ID             int64
	Resource       string
	Action         string
	Reference      string
	AmountCents    int64
	IsQuotaPayment bool
	Notes          string
	OccurredOn     core.Date
	CreatedAt      time.Time
	SyncedAt       *time.Time
}

type Store struct {
	db *sql.DB
}

func Open(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create journal directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open journal database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping journal database: %w", err)
	}
	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run journal migrations: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Append records a mutation and returns the entry id.
func (s *Store) Append(ctx context.Context, e Entry) (int64, error) {
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO journal_entries
			(resource, action, reference, amount_cents, is_quota_payment, notes, occurred_on)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		e.Resource, e.Action, e.Reference, e.AmountCents, e.IsQuotaPayment, e.Notes, e.OccurredOn.String())
	if err != nil {
		return 0, fmt.Errorf("append journal entry: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("journal entry id: %w", err)
	}

	slog.InfoContext(ctx, "journal entry recorded",
		log.FieldEntryID, id,
		log.FieldResource, e.Resource,
		log.FieldAction, e.Action,
		log.FieldReference, e.Reference,
		log.FieldAmountCents, e.AmountCents)
	return id, nil
}

func (s *Store) GetByID(ctx context.Context, id int64) (Entry, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, resource, action, reference, amount_cents, is_quota_payment,
		       notes, occurred_on, created_at, synced_at
		FROM journal_entries WHERE id = ?`, id)
	e, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Entry{}, ErrNotFound
	}
	if err != nil {
		return Entry{}, fmt.Errorf("get journal entry %d: %w", id, err)
	}
	return e, nil
}

// ListUnsynced returns the oldest entries not yet exported, up to limit.
func (s *Store) ListUnsynced(ctx context.Context, limit int) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, resource, action, reference, amount_cents, is_quota_payment,
		       notes, occurred_on, created_at, synced_at
		FROM journal_entries
		WHERE synced_at IS NULL
		ORDER BY id
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list unsynced entries: %w", err)
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scan journal entry: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// MarkSynced stamps an entry as exported. Idempotent.
func (s *Store) MarkSynced(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE journal_entries
		SET synced_at = COALESCE(synced_at, datetime('now'))
		WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("mark entry %d synced: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("mark entry %d synced: %w", id, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(row rowScanner) (Entry, error) {
	var (
		e          Entry
		occurredOn string
		createdAt  string
		syncedAt   sql.NullString
	)
	if err := row.Scan(&e.ID, &e.Resource, &e.Action, &e.Reference, &e.AmountCents,
		&e.IsQuotaPayment, &e.Notes, &occurredOn, &createdAt, &syncedAt); err != nil {
		return Entry{}, err
	}
	if t, err := time.ParseInLocation("2006-01-02", occurredOn, time.UTC); err == nil {
		e.OccurredOn = core.Date{Time: t}
	}
	if t, err := time.ParseInLocation("2006-01-02 15:04:05", createdAt, time.UTC); err == nil {
		e.CreatedAt = t
	}
	if syncedAt.Valid {
		if t, err := time.ParseInLocation("2006-01-02 15:04:05", syncedAt.String, time.UTC); err == nil {
			e.SyncedAt = &t
		}
	}
	return e, nil
}
