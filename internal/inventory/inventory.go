// Package inventory owns the canonical in-memory snapshot of identifiers,
// items, transactions, and opening balances, and coordinates write-through
// mutations against the remote store.
package inventory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/podstock/stocksync/internal/balance"
	"github.com/podstock/stocksync/internal/domain"
	"github.com/podstock/stocksync/internal/notify"
	"github.com/podstock/stocksync/internal/store"
)

// StateStore is the snapshot owner. Reads are never blocked by in-flight
// writes; no mutation is applied locally before the remote store confirms
// it, so there is no rollback machinery. Two near-simultaneous mutations
// race at the remote store's discretion and the next re-fetch wins.
type StateStore struct {
	store store.Store
	sink  notify.Sink
	actor string

	mu              sync.RWMutex
	ready           bool
	identifiers     []domain.Identifier
	items           []domain.Item
	transactions    []domain.Transaction
	openingBalances []domain.OpeningBalance
	balances        map[string]domain.Balance
}

// New creates a state store writing through st, attributing writes to actor
func New(st store.Store, sink notify.Sink, actor string) *StateStore {
	return &StateStore{
		store:    st,
		sink:     sink,
		actor:    actor,
		balances: make(map[string]domain.Balance),
	}
}

// Load issues the four collection fetches and marks the snapshot ready once
// all four complete, regardless of completion order. A failed fetch is
// surfaced and leaves that collection at its previous value (empty on first
// load); the snapshot still becomes ready.
func (s *StateStore) Load(ctx context.Context) {
	var wg sync.WaitGroup
	for _, fetch := range []func(context.Context) error{
		s.RefetchIdentifiers,
		s.RefetchItems,
		s.RefetchTransactions,
		s.RefetchOpeningBalances,
	} {
		wg.Add(1)
		go func(fetch func(context.Context) error) {
			defer wg.Done()
			// Fetch errors are surfaced inside the refetch itself.
			_ = fetch(ctx)
		}(fetch)
	}
	wg.Wait()

	s.mu.Lock()
	s.ready = true
	s.mu.Unlock()
	s.Recompute()
}

// Ready reports whether the initial load has completed. Until then the
// collections must not be trusted.
func (s *StateStore) Ready() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ready
}

// RefetchIdentifiers reloads the identifiers collection, ordered by
// (category, number)
func (s *StateStore) RefetchIdentifiers(ctx context.Context) error {
	identifiers, err := s.store.ListIdentifiers(ctx)
	if err != nil {
		s.sink.Notify("Error fetching identifiers", err.Error(), notify.SeverityError)
		return err
	}

	s.mu.Lock()
	s.identifiers = identifiers
	s.mu.Unlock()
	return nil
}

// RefetchItems reloads the items collection, ordered by name, and recomputes
// balances since prices feed the valuation
func (s *StateStore) RefetchItems(ctx context.Context) error {
	items, err := s.store.ListItems(ctx)
	if err != nil {
		s.sink.Notify("Error fetching items", err.Error(), notify.SeverityError)
		return err
	}

	s.mu.Lock()
	s.items = items
	s.mu.Unlock()
	s.Recompute()
	return nil
}

// RefetchTransactions reloads the transactions collection, ordered by date
// descending for presentation, and recomputes balances
func (s *StateStore) RefetchTransactions(ctx context.Context) error {
	transactions, err := s.store.ListTransactions(ctx)
	if err != nil {
		s.sink.Notify("Error fetching transactions", err.Error(), notify.SeverityError)
		return err
	}

	s.mu.Lock()
	s.transactions = transactions
	s.mu.Unlock()
	s.Recompute()
	return nil
}

// RefetchOpeningBalances reloads the opening balances and recomputes balances
func (s *StateStore) RefetchOpeningBalances(ctx context.Context) error {
	openingBalances, err := s.store.ListOpeningBalances(ctx)
	if err != nil {
		s.sink.Notify("Error fetching opening balances", err.Error(), notify.SeverityError)
		return err
	}

	s.mu.Lock()
	s.openingBalances = openingBalances
	s.mu.Unlock()
	s.Recompute()
	return nil
}

// Recompute rebuilds the derived balances from the current snapshot. It is
// the single explicit recompute entry point; there is no incremental update
// and no dependency tracking. The engine requires transactions ascending by
// date, so a sorted copy of the snapshot is handed to it.
func (s *StateStore) Recompute() {
	s.mu.RLock()
	openingBalances := s.openingBalances
	items := s.items
	ascending := make([]domain.Transaction, len(s.transactions))
	copy(ascending, s.transactions)
	s.mu.RUnlock()

	sort.SliceStable(ascending, func(i, j int) bool {
		return ascending[i].Date.Before(ascending[j].Date)
	})

	balances := balance.Compute(openingBalances, ascending, items)

	s.mu.Lock()
	s.balances = balances
	s.mu.Unlock()
}

// CreateIdentifier writes a new identifier through to the remote store and
// re-fetches the identifiers collection on success
func (s *StateStore) CreateIdentifier(ctx context.Context, category domain.Category, number int64) error {
	if !domain.IsValidCategory(category) {
		err := fmt.Errorf("%w: %s", domain.ErrInvalidCategory, category)
		s.sink.Notify("Error creating identifier", err.Error(), notify.SeverityError)
		return err
	}

	identifier := domain.Identifier{
		ID:        uuid.NewString(),
		Category:  category,
		Number:    number,
		CreatedBy: s.actor,
	}

	if err := s.store.CreateIdentifier(ctx, identifier); err != nil {
		s.sink.Notify("Error creating identifier", err.Error(), notify.SeverityError)
		return err
	}

	_ = s.RefetchIdentifiers(ctx)
	s.sink.Notify("Success", "Identifier created successfully", notify.SeverityInfo)
	return nil
}

// CreateItem writes a new item through to the remote store and re-fetches
// the items collection on success
func (s *StateStore) CreateItem(ctx context.Context, item domain.Item) error {
	item.ID = uuid.NewString()
	item.CreatedBy = s.actor

	if err := s.store.CreateItem(ctx, item); err != nil {
		s.sink.Notify("Error creating item", err.Error(), notify.SeverityError)
		return err
	}

	_ = s.RefetchItems(ctx)
	s.sink.Notify("Success", "Item created successfully", notify.SeverityInfo)
	return nil
}

// CreateTransaction writes a new transaction through to the remote store and
// re-fetches the transactions collection on success
func (s *StateStore) CreateTransaction(ctx context.Context, transaction domain.Transaction) error {
	if !domain.IsValidStatus(transaction.Status) {
		err := fmt.Errorf("%w: %s", domain.ErrInvalidStatus, transaction.Status)
		s.sink.Notify("Error creating transaction", err.Error(), notify.SeverityError)
		return err
	}

	transaction.ID = uuid.NewString()
	transaction.CreatedBy = s.actor

	if err := s.store.CreateTransaction(ctx, transaction); err != nil {
		s.sink.Notify("Error creating transaction", err.Error(), notify.SeverityError)
		return err
	}

	_ = s.RefetchTransactions(ctx)
	s.sink.Notify("Success", "Transaction created successfully", notify.SeverityInfo)
	return nil
}

// UpsertOpeningBalance writes the one-per-identifier baseline through to the
// remote store and re-fetches the opening balances collection on success
func (s *StateStore) UpsertOpeningBalance(ctx context.Context, identifierID string, quantity int64, cost decimal.Decimal) error {
	openingBalance := domain.OpeningBalance{
		ID:              uuid.NewString(),
		IdentifierID:    identifierID,
		OpeningQuantity: quantity,
		OpeningCost:     cost,
		CreatedBy:       s.actor,
	}

	if err := s.store.UpsertOpeningBalance(ctx, openingBalance); err != nil {
		s.sink.Notify("Error updating opening balance", err.Error(), notify.SeverityError)
		return err
	}

	_ = s.RefetchOpeningBalances(ctx)
	s.sink.Notify("Success", "Opening balance updated successfully", notify.SeverityInfo)
	return nil
}

// Identifiers returns the identifier snapshot in fetch order
func (s *StateStore) Identifiers() []domain.Identifier {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Identifier(nil), s.identifiers...)
}

// Items returns the item snapshot in fetch order
func (s *StateStore) Items() []domain.Item {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Item(nil), s.items...)
}

// Transactions returns the transaction snapshot, date descending
func (s *StateStore) Transactions() []domain.Transaction {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Transaction(nil), s.transactions...)
}

// OpeningBalances returns the opening balance snapshot
func (s *StateStore) OpeningBalances() []domain.OpeningBalance {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.OpeningBalance(nil), s.openingBalances...)
}

// Balances returns the derived balances keyed by identifier id
func (s *StateStore) Balances() map[string]domain.Balance {
	s.mu.RLock()
	defer s.mu.RUnlock()

	balances := make(map[string]domain.Balance, len(s.balances))
	for id, b := range s.balances {
		balances[id] = b
	}
	return balances
}
