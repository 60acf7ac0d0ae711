// Package store is the remote-store contract the inventory core writes
// through. Every call is fallible and callers branch on the returned error;
// nothing is applied locally before the store confirms.
package store

import (
	"context"
	"encoding/json"

	"github.com/podstock/stocksync/internal/domain"
)

// Store defines the interface for remote collection operations
//
//go:generate mockgen -source=store.go -destination=../mocks/store.go -package=mocks -mock_names=Store=MockStore
type Store interface {
	// ListIdentifiers retrieves all identifiers ordered by (category, number)
	ListIdentifiers(ctx context.Context) ([]domain.Identifier, error)
	// ListItems retrieves all items ordered by name
	ListItems(ctx context.Context) ([]domain.Item, error)
	// ListTransactions retrieves all transactions ordered by date descending
	ListTransactions(ctx context.Context) ([]domain.Transaction, error)
	// ListOpeningBalances retrieves all opening balances (no ordering contract)
	ListOpeningBalances(ctx context.Context) ([]domain.OpeningBalance, error)

	// CreateIdentifier inserts a new identifier
	CreateIdentifier(ctx context.Context, identifier domain.Identifier) error
	// CreateItem inserts a new item
	CreateItem(ctx context.Context, item domain.Item) error
	// CreateTransaction inserts a new transaction
	CreateTransaction(ctx context.Context, transaction domain.Transaction) error
	// UpsertOpeningBalance inserts or replaces the opening balance for an identifier
	UpsertOpeningBalance(ctx context.Context, balance domain.OpeningBalance) error

	// InsertRow inserts a raw row into a syncable collection. Inserts are
	// idempotent on the row's primary key so a replayed write that was
	// already applied is a no-op rather than an error.
	InsertRow(ctx context.Context, collection domain.Collection, row json.RawMessage) error
	// UpdateRow applies a raw patch to the row with the given id
	UpdateRow(ctx context.Context, collection domain.Collection, id string, patch json.RawMessage) error
	// DeleteRow deletes the row with the given id
	DeleteRow(ctx context.Context, collection domain.Collection, id string) error
}
