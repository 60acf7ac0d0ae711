package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Category represents one of the two disjoint identifier-numbering ranges
type Category string

const (
	CategoryRange1 Category = "range1"
	CategoryRange2 Category = "range2"
)

// IsValidCategory checks if a category is valid
func IsValidCategory(category Category) bool {
	return category == CategoryRange1 || category == CategoryRange2
}

// TransactionStatus classifies how a transaction affects the balance
type TransactionStatus string

const (
	// StatusPending marks a transaction that is informational only and has no balance effect
	StatusPending TransactionStatus = "pending"
	// StatusArrived marks a received delivery that increases quantity and cost
	StatusArrived TransactionStatus = "arrived"
	// StatusCanceled marks a cancellation that decreases quantity and scales cost down
	StatusCanceled TransactionStatus = "canceled"
)

// IsValidStatus checks if a transaction status is valid
func IsValidStatus(status TransactionStatus) bool {
	return status == StatusPending || status == StatusArrived || status == StatusCanceled
}

// Collection names the remote-store collections the core reads and writes
type Collection string

const (
	CollectionIdentifiers     Collection = "identifiers"
	CollectionItems           Collection = "items"
	CollectionTransactions    Collection = "transactions"
	CollectionOpeningBalances Collection = "opening_balances"
)

// SyncableCollections is the fixed allow-list of collections the offline
// queue is permitted to replay against the remote store.
var SyncableCollections = []Collection{
	CollectionTransactions,
	CollectionItems,
	CollectionIdentifiers,
	CollectionOpeningBalances,
}

// IsSyncable reports whether queued writes against the collection may be replayed
func IsSyncable(collection Collection) bool {
	for _, c := range SyncableCollections {
		if c == collection {
			return true
		}
	}
	return false
}

// Identifier is the (category, number) key that groups all stock movement
// for one tracked line. Unique by (category, number).
type Identifier struct {
	ID        string    `json:"id"`
	Category  Category  `json:"category"`
	Number    int64     `json:"identifier_number"`
	CreatedBy string    `json:"created_by,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Item describes the priced good tracked under an identifier
type Item struct {
	ID                string          `json:"id"`
	IdentifierID      string          `json:"identifier_id"`
	Name              string          `json:"name"`
	UnitOfMeasurement string          `json:"unit_of_measurement"`
	UnitPrice         decimal.Decimal `json:"unit_price"`
	CreatedBy         string          `json:"created_by,omitempty"`
}

// Transaction is one append-mostly stock movement record.
// Pods is the quantity received (supplier delivery count).
type Transaction struct {
	ID            string            `json:"id"`
	IdentifierID  string            `json:"identifier_id"`
	Date          time.Time         `json:"date"`
	Pods          int64             `json:"pods"`
	Sales         int64             `json:"sales"`
	Cancellations int64             `json:"cancellations"`
	Status        TransactionStatus `json:"status"`
	CreatedBy     string            `json:"created_by,omitempty"`
}

// OpeningBalance is the one-time starting quantity/cost baseline for an
// identifier, prior to any transaction. At most one per identifier.
type OpeningBalance struct {
	ID              string          `json:"id"`
	IdentifierID    string          `json:"identifier_id"`
	OpeningQuantity int64           `json:"opening_quantity"`
	OpeningCost     decimal.Decimal `json:"opening_cost"`
	CreatedBy       string          `json:"created_by,omitempty"`
}

// Balance is the derived current quantity/cost snapshot for an identifier.
// It is never persisted; it is recomputed in full from the input collections.
type Balance struct {
	IdentifierID    string          `json:"identifier_id"`
	CurrentQuantity int64           `json:"current_quantity"`
	CurrentCost     decimal.Decimal `json:"current_cost"`
}
