package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"stocklens/internal/errors"
	"stocklens/internal/models"
)

// SQLiteDirectory implements SymbolDirectory using SQLite.
type SQLiteDirectory struct {
	db *sql.DB
}

// NewSQLiteDirectory opens (or creates) the symbol directory database.
func NewSQLiteDirectory(dbPath string) (*SQLiteDirectory, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	dir := &SQLiteDirectory{db: db}
	if err := dir.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return dir, nil
}

func (s *SQLiteDirectory) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS symbols (
		symbol TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		exchange TEXT NOT NULL,
		sector TEXT,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_symbols_name ON symbols(name);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Upsert inserts or replaces directory entries.
func (s *SQLiteDirectory) Upsert(ctx context.Context, instruments []models.Instrument) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "begin upsert")
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO symbols (symbol, name, exchange, sector, updated_at)
		VALUES (?, ?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(symbol) DO UPDATE SET
			name = excluded.name,
			exchange = excluded.exchange,
			sector = excluded.sector,
			updated_at = CURRENT_TIMESTAMP`)
	if err != nil {
		return errors.Wrap(err, "prepare upsert")
	}
	defer stmt.Close()

	for _, ins := range instruments {
		if _, err := stmt.ExecContext(ctx, ins.Symbol, ins.Name, ins.Exchange, ins.Sector); err != nil {
			return errors.Wrapf(err, "upsert %s", ins.Symbol)
		}
	}
	return tx.Commit()
}

// Get looks up one symbol.
func (s *SQLiteDirectory) Get(ctx context.Context, symbol string) (*models.Instrument, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT symbol, name, exchange, COALESCE(sector, '') FROM symbols WHERE symbol = ?`,
		strings.ToUpper(symbol))

	var ins models.Instrument
	if err := row.Scan(&ins.Symbol, &ins.Name, &ins.Exchange, &ins.Sector); err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.ErrSymbolNotFound
		}
		return nil, errors.Wrap(err, "get symbol")
	}
	return &ins, nil
}

// Search matches symbols and names by substring.
func (s *SQLiteDirectory) Search(ctx context.Context, query string, limit int) ([]models.Instrument, error) {
	if limit <= 0 {
		limit = 20
	}
	pattern := "%" + strings.ToUpper(query) + "%"
	rows, err := s.db.QueryContext(ctx, `
		SELECT symbol, name, exchange, COALESCE(sector, '')
		FROM symbols
		WHERE symbol LIKE ? OR UPPER(name) LIKE ?
		ORDER BY symbol
		LIMIT ?`, pattern, pattern, limit)
	if err != nil {
		return nil, errors.Wrap(err, "search symbols")
	}
	defer rows.Close()

	var out []models.Instrument
	for rows.Next() {
		var ins models.Instrument
		if err := rows.Scan(&ins.Symbol, &ins.Name, &ins.Exchange, &ins.Sector); err != nil {
			return nil, errors.Wrap(err, "scan symbol")
		}
		out = append(out, ins)
	}
	return out, rows.Err()
}

// Close closes the underlying database.
func (s *SQLiteDirectory) Close() error {
	return s.db.Close()
}
