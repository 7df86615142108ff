package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/dangolden/bidsmart/internal/client/models"
	"github.com/dangolden/bidsmart/internal/dbx"
	"github.com/dangolden/bidsmart/internal/logging"
)

// SQLiteRepository stores the session as a single JSON record in the
// client_state table.
type SQLiteRepository struct {
	db  *sql.DB
	log logging.Logger

	// now is a test seam for expiry checks.
	now func() time.Time
}

func NewSQLiteRepository(db *sql.DB, log logging.Logger) *SQLiteRepository {
	return &SQLiteRepository{db: db, log: log, now: time.Now}
}

func (r *SQLiteRepository) Get(ctx context.Context) *models.VerifiedSession {
	var value []byte
	err := r.db.QueryRowContext(ctx, `SELECT value FROM client_state WHERE key = ?`, StorageKey).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil
	}
	if err != nil {
		r.log.Warn(ctx, "session read failed", "error", err)
		return nil
	}

	var s models.VerifiedSession
	if err := json.Unmarshal(value, &s); err != nil {
		r.log.Warn(ctx, "stored session is corrupted, clearing", "error", err)
		r.Clear(ctx)
		return nil
	}

	if s.Expired(r.now()) {
		r.Clear(ctx)
		return nil
	}

	return &s
}

func (r *SQLiteRepository) Set(ctx context.Context, s *models.VerifiedSession) {
	value, err := json.Marshal(s)
	if err != nil {
		r.log.Warn(ctx, "session marshal failed", "error", err)
		return
	}

	// Delete-then-insert in one transaction keeps exactly one session
	// resident even if the schema ever loses its primary key.
	err = dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM client_state WHERE key = ?`, StorageKey); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx, `INSERT INTO client_state (key, value) VALUES (?, ?)`, StorageKey, value)
		return err
	})
	if err != nil {
		r.log.Warn(ctx, "session write failed", "error", err)
	}
}

func (r *SQLiteRepository) Clear(ctx context.Context) {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM client_state WHERE key = ?`, StorageKey); err != nil {
		r.log.Warn(ctx, "session clear failed", "error", err)
	}
}
