// Package store provides the static symbol directory.
package store

import (
	"context"

	"stocklens/internal/models"
)

// SymbolDirectory defines the interface for the symbol catalog.
type SymbolDirectory interface {
	Upsert(ctx context.Context, instruments []models.Instrument) error
	Get(ctx context.Context, symbol string) (*models.Instrument, error)
	Search(ctx context.Context, query string, limit int) ([]models.Instrument, error)
	Close() error
}
