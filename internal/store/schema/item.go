package schema

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/podstock/stocksync/internal/domain"
)

// Item represents the items table - the priced good tracked under an identifier
type Item struct {
	// ID is the client-generated UUID primary key
	ID string `gorm:"column:id;primaryKey;type:uuid"`
	// IdentifierID references the identifier this item belongs to
	IdentifierID string `gorm:"column:identifier_id;not null;index"`
	// Name is the display name used for ordering in listings
	Name string `gorm:"column:name;not null"`
	// UnitOfMeasurement is the unit the quantity is counted in
	UnitOfMeasurement string `gorm:"column:unit_of_measurement;not null"`
	// UnitPrice is the current price per unit; valuation always uses this value
	UnitPrice decimal.Decimal `gorm:"column:unit_price;not null;type:numeric(14,2)"`
	// CreatedBy is the acting user attached to the write
	CreatedBy string `gorm:"column:created_by"`
	// CreatedAt is the timestamp when the item was created
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`

	// Associations
	Identifier Identifier `gorm:"foreignKey:IdentifierID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for the Item model
func (Item) TableName() string {
	return "items"
}

// ToDomain converts the row to its domain representation
func (i Item) ToDomain() domain.Item {
	return domain.Item{
		ID:                i.ID,
		IdentifierID:      i.IdentifierID,
		Name:              i.Name,
		UnitOfMeasurement: i.UnitOfMeasurement,
		UnitPrice:         i.UnitPrice,
		CreatedBy:         i.CreatedBy,
	}
}

// ItemFromDomain converts a domain item to its row representation
func ItemFromDomain(i domain.Item) Item {
	return Item{
		ID:                i.ID,
		IdentifierID:      i.IdentifierID,
		Name:              i.Name,
		UnitOfMeasurement: i.UnitOfMeasurement,
		UnitPrice:         i.UnitPrice,
		CreatedBy:         i.CreatedBy,
	}
}
