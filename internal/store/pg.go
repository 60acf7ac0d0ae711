package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/podstock/stocksync/internal/domain"
	"github.com/podstock/stocksync/internal/store/schema"
)

type pgStore struct {
	db *gorm.DB
}

// NewPGStore creates a new PostgreSQL store instance
func NewPGStore(db *gorm.DB) Store {
	return &pgStore{db: db}
}

// Migrate creates or updates the four collection tables
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&schema.Identifier{},
		&schema.Item{},
		&schema.Transaction{},
		&schema.OpeningBalance{},
	)
}

// ConfigureConnectionPool configures the connection pool settings for a GORM
// database connection. Zero values fall back to reasonable defaults.
func ConfigureConnectionPool(db *gorm.DB, maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime =
		NormalizeConnectionPoolSettings(maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime)

	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetMaxIdleConns(maxIdleConns)
	sqlDB.SetConnMaxLifetime(connMaxLifetime)
	sqlDB.SetConnMaxIdleTime(connMaxIdleTime)

	return nil
}

// NormalizeConnectionPoolSettings applies defaults and clamps pool settings
// into safe values.
//
// Defaults (when zero):
//   - MaxOpenConns: 10
//   - MaxIdleConns: 2
//   - ConnMaxLifetime: 5 minutes
//   - ConnMaxIdleTime: 10 minutes
//
// Notes:
//   - database/sql treats MaxOpenConns=0 as "unlimited"
//   - database/sql treats MaxIdleConns=0 as "no idle connections"
func NormalizeConnectionPoolSettings(maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) (int, int, time.Duration, time.Duration) {
	if maxOpenConns == 0 {
		maxOpenConns = 10
	}
	if maxIdleConns == 0 {
		maxIdleConns = 2
	}
	if connMaxLifetime == 0 {
		connMaxLifetime = 5 * time.Minute
	}
	if connMaxIdleTime == 0 {
		connMaxIdleTime = 10 * time.Minute
	}

	if maxIdleConns > maxOpenConns {
		maxIdleConns = maxOpenConns
	}

	return maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime
}

// ListIdentifiers retrieves all identifiers ordered by (category, number)
func (s *pgStore) ListIdentifiers(ctx context.Context) ([]domain.Identifier, error) {
	var rows []schema.Identifier
	err := s.db.WithContext(ctx).
		Order("category ASC").
		Order("identifier_number ASC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list identifiers: %w", err)
	}

	identifiers := make([]domain.Identifier, 0, len(rows))
	for _, row := range rows {
		identifiers = append(identifiers, row.ToDomain())
	}
	return identifiers, nil
}

// ListItems retrieves all items ordered by name
func (s *pgStore) ListItems(ctx context.Context) ([]domain.Item, error) {
	var rows []schema.Item
	err := s.db.WithContext(ctx).Order("name ASC").Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}

	items := make([]domain.Item, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.ToDomain())
	}
	return items, nil
}

// ListTransactions retrieves all transactions ordered by date descending
func (s *pgStore) ListTransactions(ctx context.Context) ([]domain.Transaction, error) {
	var rows []schema.Transaction
	err := s.db.WithContext(ctx).Order("date DESC").Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}

	transactions := make([]domain.Transaction, 0, len(rows))
	for _, row := range rows {
		transactions = append(transactions, row.ToDomain())
	}
	return transactions, nil
}

// ListOpeningBalances retrieves all opening balances
func (s *pgStore) ListOpeningBalances(ctx context.Context) ([]domain.OpeningBalance, error) {
	var rows []schema.OpeningBalance
	err := s.db.WithContext(ctx).Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list opening balances: %w", err)
	}

	balances := make([]domain.OpeningBalance, 0, len(rows))
	for _, row := range rows {
		balances = append(balances, row.ToDomain())
	}
	return balances, nil
}

// CreateIdentifier inserts a new identifier
func (s *pgStore) CreateIdentifier(ctx context.Context, identifier domain.Identifier) error {
	row := schema.IdentifierFromDomain(identifier)
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return fmt.Errorf("failed to create identifier: %w", err)
	}
	return nil
}

// CreateItem inserts a new item
func (s *pgStore) CreateItem(ctx context.Context, item domain.Item) error {
	row := schema.ItemFromDomain(item)
	if err := s.db.WithContext(ctx).Omit("Identifier").Create(&row).Error; err != nil {
		return fmt.Errorf("failed to create item: %w", err)
	}
	return nil
}

// CreateTransaction inserts a new transaction
func (s *pgStore) CreateTransaction(ctx context.Context, transaction domain.Transaction) error {
	row := schema.TransactionFromDomain(transaction)
	if err := s.db.WithContext(ctx).Omit("Identifier").Create(&row).Error; err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}
	return nil
}

// UpsertOpeningBalance inserts or replaces the opening balance for an identifier
func (s *pgStore) UpsertOpeningBalance(ctx context.Context, balance domain.OpeningBalance) error {
	row := schema.OpeningBalanceFromDomain(balance)
	err := s.db.WithContext(ctx).
		Omit("Identifier").
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "identifier_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"opening_quantity": row.OpeningQuantity,
				"opening_cost":     row.OpeningCost,
				"created_by":       row.CreatedBy,
				"updated_at":       gorm.Expr("now()"),
			}),
		}).
		Create(&row).Error
	if err != nil {
		return fmt.Errorf("failed to upsert opening balance: %w", err)
	}
	return nil
}

// InsertRow inserts a raw row into a syncable collection. The insert is a
// no-op when a row with the same primary key already exists, which makes a
// replay of an already-applied write safe.
func (s *pgStore) InsertRow(ctx context.Context, collection domain.Collection, row json.RawMessage) error {
	if !domain.IsSyncable(collection) {
		return fmt.Errorf("%w: %s", domain.ErrCollectionNotSyncable, collection)
	}

	values, err := decodeRow(row)
	if err != nil {
		return err
	}

	err = s.db.WithContext(ctx).
		Table(string(collection)).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&values).Error
	if err != nil {
		return fmt.Errorf("failed to insert into %s: %w", collection, err)
	}
	return nil
}

// UpdateRow applies a raw patch to the row with the given id
func (s *pgStore) UpdateRow(ctx context.Context, collection domain.Collection, id string, patch json.RawMessage) error {
	if !domain.IsSyncable(collection) {
		return fmt.Errorf("%w: %s", domain.ErrCollectionNotSyncable, collection)
	}

	values, err := decodeRow(patch)
	if err != nil {
		return err
	}
	delete(values, "id")

	err = s.db.WithContext(ctx).
		Table(string(collection)).
		Where("id = ?", id).
		Updates(values).Error
	if err != nil {
		return fmt.Errorf("failed to update %s row %s: %w", collection, id, err)
	}
	return nil
}

// DeleteRow deletes the row with the given id
func (s *pgStore) DeleteRow(ctx context.Context, collection domain.Collection, id string) error {
	if !domain.IsSyncable(collection) {
		return fmt.Errorf("%w: %s", domain.ErrCollectionNotSyncable, collection)
	}

	// collection is validated against the fixed allow-list above
	err := s.db.WithContext(ctx).
		Exec(fmt.Sprintf("DELETE FROM %s WHERE id = ?", collection), id).Error
	if err != nil {
		return fmt.Errorf("failed to delete %s row %s: %w", collection, id, err)
	}
	return nil
}

func decodeRow(row json.RawMessage) (map[string]interface{}, error) {
	var values map[string]interface{}
	if err := json.Unmarshal(row, &values); err != nil {
		return nil, fmt.Errorf("failed to decode row payload: %w", err)
	}
	return values, nil
}
