package schema

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/podstock/stocksync/internal/domain"
)

// OpeningBalance represents the opening_balances table - the one-time
// starting quantity/cost baseline, at most one row per identifier
type OpeningBalance struct {
	// ID is the client-generated UUID primary key
	ID string `gorm:"column:id;primaryKey;type:uuid"`
	// IdentifierID references the identifier this baseline belongs to
	IdentifierID string `gorm:"column:identifier_id;not null;uniqueIndex"`
	// OpeningQuantity is the starting stock quantity
	OpeningQuantity int64 `gorm:"column:opening_quantity;not null;default:0"`
	// OpeningCost is the starting stock valuation
	OpeningCost decimal.Decimal `gorm:"column:opening_cost;not null;type:numeric(14,2)"`
	// CreatedBy is the acting user attached to the write
	CreatedBy string `gorm:"column:created_by"`
	// CreatedAt is the timestamp when the baseline was first recorded
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
	// UpdatedAt is the timestamp when the baseline was last upserted
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now();type:timestamptz"`

	// Associations
	Identifier Identifier `gorm:"foreignKey:IdentifierID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for the OpeningBalance model
func (OpeningBalance) TableName() string {
	return "opening_balances"
}

// ToDomain converts the row to its domain representation
func (b OpeningBalance) ToDomain() domain.OpeningBalance {
	return domain.OpeningBalance{
		ID:              b.ID,
		IdentifierID:    b.IdentifierID,
		OpeningQuantity: b.OpeningQuantity,
		OpeningCost:     b.OpeningCost,
		CreatedBy:       b.CreatedBy,
	}
}

// OpeningBalanceFromDomain converts a domain opening balance to its row representation
func OpeningBalanceFromDomain(b domain.OpeningBalance) OpeningBalance {
	return OpeningBalance{
		ID:              b.ID,
		IdentifierID:    b.IdentifierID,
		OpeningQuantity: b.OpeningQuantity,
		OpeningCost:     b.OpeningCost,
		CreatedBy:       b.CreatedBy,
	}
}
