package schema

import (
	"time"

	"github.com/podstock/stocksync/internal/domain"
)

// Transaction represents the transactions table - one append-mostly stock
// movement record per row
type Transaction struct {
	// ID is the client-generated UUID primary key
	ID string `gorm:"column:id;primaryKey;type:uuid"`
	// IdentifierID references the identifier this movement belongs to
	IdentifierID string `gorm:"column:identifier_id;not null;index"`
	// Date is the movement date transactions are ordered by
	Date time.Time `gorm:"column:date;not null;index;type:timestamptz"`
	// Pods is the quantity received into stock
	Pods int64 `gorm:"column:pods;not null;default:0"`
	// Sales is the quantity sold
	Sales int64 `gorm:"column:sales;not null;default:0"`
	// Cancellations is the quantity canceled
	Cancellations int64 `gorm:"column:cancellations;not null;default:0"`
	// Status is the balance-effect classification (pending, arrived, canceled)
	Status string `gorm:"column:status;not null"`
	// CreatedBy is the acting user attached to the write
	CreatedBy string `gorm:"column:created_by"`
	// CreatedAt is the timestamp when the transaction was recorded
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`

	// Associations
	Identifier Identifier `gorm:"foreignKey:IdentifierID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for the Transaction model
func (Transaction) TableName() string {
	return "transactions"
}

// ToDomain converts the row to its domain representation
func (t Transaction) ToDomain() domain.Transaction {
	return domain.Transaction{
		ID:            t.ID,
		IdentifierID:  t.IdentifierID,
		Date:          t.Date,
		Pods:          t.Pods,
		Sales:         t.Sales,
		Cancellations: t.Cancellations,
		Status:        domain.TransactionStatus(t.Status),
		CreatedBy:     t.CreatedBy,
	}
}

// TransactionFromDomain converts a domain transaction to its row representation
func TransactionFromDomain(t domain.Transaction) Transaction {
	return Transaction{
		ID:            t.ID,
		IdentifierID:  t.IdentifierID,
		Date:          t.Date,
		Pods:          t.Pods,
		Sales:         t.Sales,
		Cancellations: t.Cancellations,
		Status:        string(t.Status),
		CreatedBy:     t.CreatedBy,
	}
}
