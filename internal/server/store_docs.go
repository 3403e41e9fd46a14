package server

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"errors"
	"strings"
	"time"
)

// DocStore implements Store on SQLite with JSONB data columns: dedicated
// tables for admins and registrations (both carry unique indexes on their
// natural keys), and a shared documents table for caller-named collections so
// dynamic names never reach a SQL identifier.
type DocStore struct {
	db *sql.DB
}

// NewDocStore wraps an already-migrated database.
func NewDocStore(db *sql.DB) *DocStore {
	return &DocStore{db: db}
}

func (s *DocStore) CreateAdmin(ctx context.Context, a Admin) error {
	data, err := json.Marshal(a)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO admins (id, email, data) VALUES (?, ?, jsonb(?))`,
		a.ID, a.Email, string(data),
	)
	if isUniqueViolation(err) {
		return ErrConflict
	}
	return err
}

func (s *DocStore) AdminByEmail(ctx context.Context, email string) (Admin, error) {
	var data string
	err := s.db.QueryRowContext(ctx,
		`SELECT json(data) FROM admins WHERE email = ?`, email,
	).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return Admin{}, ErrNotFound
	}
	if err != nil {
		return Admin{}, err
	}
	var a Admin
	if err := json.Unmarshal([]byte(data), &a); err != nil {
		return Admin{}, err
	}
	return a, nil
}

func (s *DocStore) SetAdminVerified(ctx context.Context, email string, verified bool) error {
	result, err := s.db.ExecContext(ctx,
		`UPDATE admins
		 SET data = jsonb_set(data, '$.isVerified', json(?), '$.updatedAt', ?)
		 WHERE email = ?`,
		boolJSON(verified), nowUTC(), email,
	)
	if err != nil {
		return err
	}
	n, _ := result.RowsAffected()
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *DocStore) ListAdmins(ctx context.Context) ([]AdminSummary, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT json(data) FROM admins ORDER BY rowid`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	admins := []AdminSummary{}
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, err
		}
		var a Admin
		if err := json.Unmarshal([]byte(data), &a); err != nil {
			return nil, err
		}
		admins = append(admins, a.Summary())
	}
	return admins, rows.Err()
}

func (s *DocStore) CreateRegistration(ctx context.Context, reg Registration) error {
	data, err := json.Marshal(reg)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO registrations (id, player_email, tournament_name, data)
		 VALUES (?, ?, ?, jsonb(?))`,
		reg.ID, reg.PlayerEmail, reg.TournamentName, string(data),
	)
	if isUniqueViolation(err) {
		return ErrConflict
	}
	return err
}

func (s *DocStore) RegistrationExists(ctx context.Context, playerEmail, tournamentName string) (bool, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM registrations WHERE player_email = ? AND tournament_name = ?`,
		playerEmail, tournamentName,
	).Scan(&count)
	return count > 0, err
}

func (s *DocStore) ListRegistrations(ctx context.Context) ([]Registration, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT json(data) FROM registrations ORDER BY rowid`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	regs := []Registration{}
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, err
		}
		var reg Registration
		if err := json.Unmarshal([]byte(data), &reg); err != nil {
			return nil, err
		}
		regs = append(regs, reg)
	}
	return regs, rows.Err()
}

// InsertMany persists all documents or none: the batch runs inside one
// transaction so a malformed document aborts the whole upload.
func (s *DocStore) InsertMany(ctx context.Context, collection string, docs []map[string]any) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, doc := range docs {
		data, err := json.Marshal(doc)
		if err != nil {
			return err
		}
		_, err = tx.ExecContext(ctx,
			`INSERT INTO documents (id, collection, data) VALUES (?, ?, jsonb(?))`,
			newID(), collection, string(data),
		)
		if err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (s *DocStore) FindAll(ctx context.Context, collection string) ([]map[string]any, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT json(data) FROM documents WHERE collection = ? ORDER BY rowid`, collection,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	docs := []map[string]any{}
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, err
		}
		var doc map[string]any
		if err := json.Unmarshal([]byte(data), &doc); err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, rows.Err()
}

// FindOneByField returns the first document whose named top-level field equals
// value. field is always a code-supplied business-key name, never user input.
func (s *DocStore) FindOneByField(ctx context.Context, collection, field, value string) (map[string]any, error) {
	var data string
	err := s.db.QueryRowContext(ctx,
		`SELECT json(data) FROM documents
		 WHERE collection = ? AND json_extract(data, ?) = ?
		 ORDER BY rowid LIMIT 1`,
		collection, "$."+field, value,
	).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	var doc map[string]any
	if err := json.Unmarshal([]byte(data), &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

func boolJSON(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

func newID() string {
	b := make([]byte, 16)
	rand.Read(b)
	return hex.EncodeToString(b)
}

func nowUTC() string {
	return time.Now().UTC().Format("2006-01-02T15:04:05.000Z")
}

var _ Store = (*DocStore)(nil)
