// internal/session/store.go
// Where a session record lives: a remote keyed store or the link itself

package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

var ErrNotFound = errors.New("session not found")

// Store abstracts saving and loading a session record by id. Save is
// an idempotent upsert: saving twice with the same id overwrites.
type Store interface {
	Save(ctx context.Context, record *SessionRecord, preferredID string) (string, error)
	Load(ctx context.Context, id string) (*SessionRecord, error)
}

// PostgresStore is the remote keyed store backing short share links.
type PostgresStore struct {
	db *sqlx.DB
}

func NewPostgresStore(db *sqlx.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Save(ctx context.Context, record *SessionRecord, preferredID string) (string, error) {
	id := preferredID
	if id == "" {
		id = newShortID(6)
	}

	payload, err := json.Marshal(record)
	if err != nil {
		return "", fmt.Errorf("failed to serialize session: %w", err)
	}

	query := `
        INSERT INTO sessions (short_id, session_data, created_at, expires_at)
        VALUES ($1, $2, $3, $4)
        ON CONFLICT (short_id)
        DO UPDATE SET session_data = $2, expires_at = $4
    `

	createdAt := record.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	_, err = s.db.ExecContext(ctx, query, id, payload, createdAt, createdAt.Add(SessionTTL))
	if err != nil {
		return "", fmt.Errorf("failed to save session: %w", err)
	}
	return id, nil
}

func (s *PostgresStore) Load(ctx context.Context, id string) (*SessionRecord, error) {
	var payload []byte
	query := `
        SELECT session_data FROM sessions
        WHERE short_id = $1 AND expires_at > NOW()
    `

	err := s.db.GetContext(ctx, &payload, query, id)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	var record SessionRecord
	if err := json.Unmarshal(payload, &record); err != nil {
		return nil, fmt.Errorf("corrupt session payload: %w", err)
	}
	return &record, nil
}

// DeleteExpired removes records past their expiry window. Best-effort;
// Load refuses expired rows regardless.
func (s *PostgresStore) DeleteExpired(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE expires_at < NOW()`)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// EmbeddedStore carries the whole record inside the id itself, so a
// link keeps working with no backing service at all. Save returns the
// encoded token as the id; Load decodes it.
type EmbeddedStore struct {
	codec Codec
}

func NewEmbeddedStore(codec Codec) *EmbeddedStore {
	return &EmbeddedStore{codec: codec}
}

func (s *EmbeddedStore) Save(ctx context.Context, record *SessionRecord, preferredID string) (string, error) {
	return s.codec.Encode(record)
}

func (s *EmbeddedStore) Load(ctx context.Context, id string) (*SessionRecord, error) {
	record, err := s.codec.Decode(id)
	if err != nil {
		return nil, ErrNotFound
	}
	return record, nil
}

// TimeoutStore bounds every call against the wrapped store. A slow
// remote then degrades to the embedded-token fallback instead of
// blocking the workflow.
type TimeoutStore struct {
	inner   Store
	timeout time.Duration
}

func NewTimeoutStore(inner Store, timeout time.Duration) *TimeoutStore {
	return &TimeoutStore{inner: inner, timeout: timeout}
}

func (s *TimeoutStore) Save(ctx context.Context, record *SessionRecord, preferredID string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	return s.inner.Save(ctx, record, preferredID)
}

func (s *TimeoutStore) Load(ctx context.Context, id string) (*SessionRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	return s.inner.Load(ctx, id)
}

// memoryStore is an in-process Store used by tests.
type memoryStore struct {
	records map[string]*SessionRecord
	fail    bool
}

func newMemoryStore() *memoryStore {
	return &memoryStore{records: make(map[string]*SessionRecord)}
}

func (s *memoryStore) Save(ctx context.Context, record *SessionRecord, preferredID string) (string, error) {
	if s.fail {
		return "", errors.New("store unavailable")
	}
	id := preferredID
	if id == "" {
		id = newShortID(6)
	}
	clone := *record
	s.records[id] = &clone
	return id, nil
}

func (s *memoryStore) Load(ctx context.Context, id string) (*SessionRecord, error) {
	if s.fail {
		return nil, errors.New("store unavailable")
	}
	record, ok := s.records[id]
	if !ok {
		return nil, ErrNotFound
	}
	if record.Expired(time.Now()) {
		return nil, ErrNotFound
	}
	clone := *record
	return &clone, nil
}
