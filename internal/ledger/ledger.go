package ledger

import (
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var ErrNotFound = errors.New("ledger: entry not found")

// Service is the append-only transaction history. Entries are written inside
// the caller's transaction and never deleted; only status may change, and
// only through UpdateStatus.
type Service struct {
	db *sql.DB
}

func New(db *sql.DB) *Service {
	return &Service{db: db}
}

// Record appends one entry, filling in id and timestamps.
func (s *Service) Record(tx *sql.Tx, e *Entry) error {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	now := time.Now().Unix()
	e.CreatedAt = now
	e.UpdatedAt = now

	if e.Metadata == nil {
		e.Metadata = map[string]string{}
	}
	meta, err := json.Marshal(e.Metadata)
	if err != nil {
		return err
	}

	_, err = tx.Exec(`
	INSERT INTO transactions(id,uid,amount,type,status,metadata,created_at,updated_at)
	VALUES (?,?,?,?,?,?,?,?)
	`, e.ID, e.UID, e.Amount.String(), e.Kind, e.Status, string(meta), e.CreatedAt, e.UpdatedAt)

	return err
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanEntry(row rowScanner) (*Entry, error) {
	var e Entry
	var amount, meta string

	err := row.Scan(&e.ID, &e.UID, &amount, &e.Kind, &e.Status, &meta, &e.CreatedAt, &e.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	e.Amount, err = decimal.NewFromString(amount)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(meta), &e.Metadata); err != nil {
		return nil, err
	}
	return &e, nil
}

const selectEntry = `SELECT id,uid,amount,type,status,metadata,created_at,updated_at FROM transactions`

func (s *Service) Get(id string) (*Entry, error) {
	return scanEntry(s.db.QueryRow(selectEntry+` WHERE id=?`, id))
}

// GetTx reads an entry inside an open transaction, for review flows that
// must decide on the same snapshot they mutate.
func (s *Service) GetTx(tx *sql.Tx, id string) (*Entry, error) {
	return scanEntry(tx.QueryRow(selectEntry+` WHERE id=?`, id))
}

// List returns entries newest first, narrowed by any filters set.
func (s *Service) List(f Filter) ([]*Entry, error) {
	query := selectEntry + ` WHERE 1=1`
	var args []interface{}

	if f.UID != 0 {
		query += ` AND uid=?`
		args = append(args, f.UID)
	}
	if f.Kind != "" {
		query += ` AND type=?`
		args = append(args, f.Kind)
	}
	if f.Status != "" {
		query += ` AND status=?`
		args = append(args, f.Status)
	}

	limit := f.Limit
	if limit <= 0 {
		limit = 100
	}
	query += ` ORDER BY created_at DESC, id LIMIT ?`
	args = append(args, limit)

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// UpdateStatus moves a pending entry to completed or rejected. The entry
// itself is immutable otherwise.
func (s *Service) UpdateStatus(tx *sql.Tx, id, status string) error {
	res, err := tx.Exec(`
	UPDATE transactions SET status=?, updated_at=? WHERE id=?
	`, status, time.Now().Unix(), id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
