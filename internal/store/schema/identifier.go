package schema

import (
	"time"

	"github.com/podstock/stocksync/internal/domain"
)

// Identifier represents the identifiers table. Rows are unique by
// (category, identifier_number).
type Identifier struct {
	// ID is the client-generated UUID primary key
	ID string `gorm:"column:id;primaryKey;type:uuid"`
	// Category is the numbering range this identifier belongs to
	Category string `gorm:"column:category;not null;uniqueIndex:idx_identifiers_category_number,priority:1"`
	// Number is the identifier number within its category
	Number int64 `gorm:"column:identifier_number;not null;uniqueIndex:idx_identifiers_category_number,priority:2"`
	// CreatedBy is the acting user attached to the write
	CreatedBy string `gorm:"column:created_by"`
	// CreatedAt is the timestamp when the identifier was created
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the Identifier model
func (Identifier) TableName() string {
	return "identifiers"
}

// ToDomain converts the row to its domain representation
func (i Identifier) ToDomain() domain.Identifier {
	return domain.Identifier{
		ID:        i.ID,
		Category:  domain.Category(i.Category),
		Number:    i.Number,
		CreatedBy: i.CreatedBy,
		CreatedAt: i.CreatedAt,
	}
}

// IdentifierFromDomain converts a domain identifier to its row representation
func IdentifierFromDomain(i domain.Identifier) Identifier {
	return Identifier{
		ID:        i.ID,
		Category:  string(i.Category),
		Number:    i.Number,
		CreatedBy: i.CreatedBy,
		CreatedAt: i.CreatedAt,
	}
}
