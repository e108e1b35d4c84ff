package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/lokesh7385/mudra/internal/action"
)

// Binding routes one action kind to a plugin action.
type Binding struct {
	ID           string          `json:"id"`
	Action       action.Kind     `json:"action"`
	PluginName   string          `json:"plugin"`
	PluginAction string          `json:"plugin_action"`
	Params       json.RawMessage `json:"params,omitempty"`
	Enabled      bool            `json:"enabled"`
	CreatedAt    time.Time       `json:"created_at"`
}

// BindingRepository provides CRUD operations for bindings.
type BindingRepository struct {
	db *sql.DB
}

// Bindings returns the binding repository for this store.
func (s *Store) Bindings() *BindingRepository {
	return &BindingRepository{db: s.db}
}

const bindingColumns = `id, action, plugin_name, plugin_action, params, enabled, created_at`

// Create inserts b, assigning a new ID when b.ID is empty. Returns
// ErrConflict if the action already has a binding.
func (r *BindingRepository) Create(b *Binding) error {
	if b.ID == "" {
		b.ID = uuid.New().String()
	}
	b.CreatedAt = time.Now().UTC()

	_, err := r.db.Exec(
		`INSERT INTO bindings (`+bindingColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		b.ID, b.Action.String(), b.PluginName, b.PluginAction, params(b.Params), b.Enabled, b.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("binding for %s: %w", b.Action, ErrConflict)
		}
		return err
	}
	return nil
}

// GetByID retrieves a binding by its ID.
func (r *BindingRepository) GetByID(id string) (*Binding, error) {
	row := r.db.QueryRow(`SELECT `+bindingColumns+` FROM bindings WHERE id = ?`, id)
	b, err := scanBinding(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return b, err
}

// GetByAction retrieves the binding for an action kind.
// Returns nil, nil if the action has no stored binding.
func (r *BindingRepository) GetByAction(k action.Kind) (*Binding, error) {
	row := r.db.QueryRow(`SELECT `+bindingColumns+` FROM bindings WHERE action = ?`, k.String())
	b, err := scanBinding(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return b, err
}

// List returns every stored binding ordered by action name.
func (r *BindingRepository) List() ([]*Binding, error) {
	rows, err := r.db.Query(`SELECT ` + bindingColumns + ` FROM bindings ORDER BY action`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bindings []*Binding
	for rows.Next() {
		b, err := scanBinding(rows)
		if err != nil {
			return nil, err
		}
		bindings = append(bindings, b)
	}

	return bindings, rows.Err()
}

// Update overwrites the binding with b.ID.
func (r *BindingRepository) Update(b *Binding) error {
	result, err := r.db.Exec(
		`UPDATE bindings SET action = ?, plugin_name = ?, plugin_action = ?, params = ?, enabled = ?
		 WHERE id = ?`,
		b.Action.String(), b.PluginName, b.PluginAction, params(b.Params), b.Enabled, b.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("binding for %s: %w", b.Action, ErrConflict)
		}
		return err
	}
	return expectOne(result)
}

// Delete removes a binding by its ID.
func (r *BindingRepository) Delete(id string) error {
	result, err := r.db.Exec(`DELETE FROM bindings WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return expectOne(result)
}

type scanner interface {
	Scan(dest ...any) error
}

func scanBinding(s scanner) (*Binding, error) {
	b := &Binding{}
	var kind, raw string
	var enabled int

	if err := s.Scan(&b.ID, &kind, &b.PluginName, &b.PluginAction, &raw, &enabled, &b.CreatedAt); err != nil {
		return nil, err
	}

	k, err := action.ParseKind(kind)
	if err != nil {
		return nil, fmt.Errorf("binding %s: %w", b.ID, err)
	}
	b.Action = k
	b.Params = json.RawMessage(raw)
	b.Enabled = enabled != 0
	return b, nil
}

func params(p json.RawMessage) string {
	if len(p) == 0 {
		return "{}"
	}
	return string(p)
}

func expectOne(result sql.Result) error {
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func isUniqueViolation(err error) bool {
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
