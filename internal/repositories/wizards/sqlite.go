package wizards

import (
	"context"
	"database/sql"
	stderrors "errors"
	"path/filepath"
	"strings"

	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"

	"github.com/KirkDiggler/rpg-arcana/internal/entities/wizard"
	"github.com/KirkDiggler/rpg-arcana/internal/errors"
)

const createWizardsTable = `CREATE TABLE IF NOT EXISTS wizards (
	id         TEXT PRIMARY KEY,
	name       TEXT NOT NULL,
	data       BLOB NOT NULL,
	created_at INTEGER NOT NULL,
	updated_at INTEGER NOT NULL
)`

// SQLiteConfig contains configuration for the SQLite wizard repository.
type SQLiteConfig struct {
	// Path is the database file. ":memory:" keeps the data in memory.
	Path string
}

// Validate validates the SQLiteConfig.
func (cfg *SQLiteConfig) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	if strings.TrimSpace(cfg.Path) == "" {
		return errors.InvalidArgument("path cannot be empty")
	}
	return nil
}

// SQLiteRepository stores wizard snapshots in a single SQLite table
type SQLiteRepository struct {
	db *sql.DB
}

var _ Repository = (*SQLiteRepository)(nil)

// NewSQLite opens the database and creates the wizards table if needed
func NewSQLite(ctx context.Context, cfg *SQLiteConfig) (*SQLiteRepository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	dsn := cfg.Path
	if dsn != ":memory:" {
		dsn = filepath.Clean(dsn) + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open sqlite database")
	}
	// A single connection keeps ":memory:" databases alive between calls
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "failed to ping sqlite database")
	}
	if _, err := db.ExecContext(ctx, createWizardsTable); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "failed to create wizards table")
	}

	return &SQLiteRepository{db: db}, nil
}

// Close closes the database handle
func (r *SQLiteRepository) Close() error {
	if r == nil || r.db == nil {
		return nil
	}
	return r.db.Close()
}

// Create stores a new wizard
func (r *SQLiteRepository) Create(ctx context.Context, input CreateInput) (*CreateOutput, error) {
	if err := validateData(input.WizardData); err != nil {
		return nil, err
	}

	data, err := encode(input.WizardData)
	if err != nil {
		return nil, err
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO wizards (id, name, data, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`,
		input.WizardData.ID,
		input.WizardData.Name,
		data,
		input.WizardData.CreatedAt.UTC().UnixMilli(),
		input.WizardData.UpdatedAt.UTC().UnixMilli(),
	)
	if err != nil {
		if isPrimaryKeyViolation(err) {
			return nil, errors.AlreadyExistsf("wizard with ID %s already exists", input.WizardData.ID)
		}
		return nil, errors.Wrap(err, "failed to create wizard")
	}

	return &CreateOutput{WizardData: input.WizardData}, nil
}

// Get retrieves a wizard by ID
func (r *SQLiteRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if err := validateID(input.ID); err != nil {
		return nil, err
	}

	var raw []byte
	err := r.db.QueryRowContext(ctx, `SELECT data FROM wizards WHERE id = ?`, input.ID).Scan(&raw)
	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, errors.NotFoundf("wizard with ID %s not found", input.ID)
		}
		return nil, errors.Wrap(err, "failed to get wizard")
	}

	data, err := decode(raw)
	if err != nil {
		return nil, err
	}
	return &GetOutput{WizardData: data}, nil
}

// Update replaces an existing wizard
func (r *SQLiteRepository) Update(ctx context.Context, input UpdateInput) (*UpdateOutput, error) {
	if err := validateData(input.WizardData); err != nil {
		return nil, err
	}

	data, err := encode(input.WizardData)
	if err != nil {
		return nil, err
	}

	result, err := r.db.ExecContext(ctx,
		`UPDATE wizards SET name = ?, data = ?, updated_at = ? WHERE id = ?`,
		input.WizardData.Name,
		data,
		input.WizardData.UpdatedAt.UTC().UnixMilli(),
		input.WizardData.ID,
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed to update wizard")
	}
	if err := requireOneRow(result, input.WizardData.ID); err != nil {
		return nil, err
	}

	return &UpdateOutput{WizardData: input.WizardData}, nil
}

// Delete removes a wizard by ID
func (r *SQLiteRepository) Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error) {
	if err := validateID(input.ID); err != nil {
		return nil, err
	}

	result, err := r.db.ExecContext(ctx, `DELETE FROM wizards WHERE id = ?`, input.ID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to delete wizard")
	}
	if err := requireOneRow(result, input.ID); err != nil {
		return nil, err
	}

	return &DeleteOutput{}, nil
}

// List returns every stored wizard ordered by ID
func (r *SQLiteRepository) List(ctx context.Context, _ ListInput) (*ListOutput, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT data FROM wizards ORDER BY id`)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list wizards")
	}
	defer func() { _ = rows.Close() }()

	list := make([]*wizard.Data, 0)
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, errors.Wrap(err, "failed to scan wizard")
		}
		data, err := decode(raw)
		if err != nil {
			return nil, err
		}
		list = append(list, data)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to list wizards")
	}

	return &ListOutput{Wizards: list}, nil
}

func requireOneRow(result sql.Result, id string) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "failed to read affected rows")
	}
	if affected == 0 {
		return errors.NotFoundf("wizard with ID %s not found", id)
	}
	return nil
}

func isPrimaryKeyViolation(err error) bool {
	var sqliteErr *msqlite.Error
	if stderrors.As(err, &sqliteErr) {
		switch sqliteErr.Code() {
		case sqlite3lib.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3lib.SQLITE_CONSTRAINT_UNIQUE:
			return true
		}
	}
	return strings.Contains(strings.ToLower(err.Error()), "unique constraint failed")
}
