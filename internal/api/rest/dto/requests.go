package dto

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/podstock/stocksync/internal/domain"
	"github.com/podstock/stocksync/internal/offline"
)

// CreateIdentifierRequest represents the request body for creating an identifier
type CreateIdentifierRequest struct {
	Category         domain.Category `json:"category"`
	IdentifierNumber int64           `json:"identifier_number"`
}

// Validate validates the request body
func (r *CreateIdentifierRequest) Validate() error {
	if !domain.IsValidCategory(r.Category) {
		return fmt.Errorf("invalid category: %s", r.Category)
	}
	if r.IdentifierNumber <= 0 {
		return errors.New("identifier_number must be positive")
	}
	return nil
}

// CreateItemRequest represents the request body for creating an item
type CreateItemRequest struct {
	IdentifierID      string          `json:"identifier_id"`
	Name              string          `json:"name"`
	UnitOfMeasurement string          `json:"unit_of_measurement"`
	UnitPrice         decimal.Decimal `json:"unit_price"`
}

// Validate validates the request body
func (r *CreateItemRequest) Validate() error {
	if r.IdentifierID == "" {
		return errors.New("identifier_id is required")
	}
	if r.Name == "" {
		return errors.New("name is required")
	}
	if r.UnitPrice.IsNegative() {
		return errors.New("unit_price must not be negative")
	}
	return nil
}

// ToDomain converts the request into a domain item
func (r *CreateItemRequest) ToDomain() domain.Item {
	return domain.Item{
		IdentifierID:      r.IdentifierID,
		Name:              r.Name,
		UnitOfMeasurement: r.UnitOfMeasurement,
		UnitPrice:         r.UnitPrice,
	}
}

// CreateTransactionRequest represents the request body for recording a stock movement
type CreateTransactionRequest struct {
	IdentifierID  string                   `json:"identifier_id"`
	Date          time.Time                `json:"date"`
	Pods          int64                    `json:"pods"`
	Sales         int64                    `json:"sales"`
	Cancellations int64                    `json:"cancellations"`
	Status        domain.TransactionStatus `json:"status"`
}

// Validate validates the request body
func (r *CreateTransactionRequest) Validate() error {
	if r.IdentifierID == "" {
		return errors.New("identifier_id is required")
	}
	if r.Date.IsZero() {
		return errors.New("date is required")
	}
	if !domain.IsValidStatus(r.Status) {
		return fmt.Errorf("invalid status: %s", r.Status)
	}
	if r.Pods < 0 || r.Sales < 0 || r.Cancellations < 0 {
		return errors.New("pods, sales and cancellations must not be negative")
	}
	return nil
}

// ToDomain converts the request into a domain transaction
func (r *CreateTransactionRequest) ToDomain() domain.Transaction {
	return domain.Transaction{
		IdentifierID:  r.IdentifierID,
		Date:          r.Date,
		Pods:          r.Pods,
		Sales:         r.Sales,
		Cancellations: r.Cancellations,
		Status:        r.Status,
	}
}

// UpsertOpeningBalanceRequest represents the request body for setting the
// one-time starting baseline of an identifier
type UpsertOpeningBalanceRequest struct {
	IdentifierID    string          `json:"identifier_id"`
	OpeningQuantity int64           `json:"opening_quantity"`
	OpeningCost     decimal.Decimal `json:"opening_cost"`
}

// Validate validates the request body
func (r *UpsertOpeningBalanceRequest) Validate() error {
	if r.IdentifierID == "" {
		return errors.New("identifier_id is required")
	}
	if r.OpeningQuantity < 0 {
		return errors.New("opening_quantity must not be negative")
	}
	if r.OpeningCost.IsNegative() {
		return errors.New("opening_cost must not be negative")
	}
	return nil
}

// EnqueueChangeRequest represents the request body for buffering a raw write
// into the offline queue without going through the typed endpoints
type EnqueueChangeRequest struct {
	Collection domain.Collection `json:"collection"`
	Operation  offline.Op        `json:"operation"`
	Row        json.RawMessage   `json:"row,omitempty"`
	ID         string            `json:"id,omitempty"`
	Patch      json.RawMessage   `json:"patch,omitempty"`
}

// Validate validates the request body
func (r *EnqueueChangeRequest) Validate() error {
	if !domain.IsSyncable(r.Collection) {
		return fmt.Errorf("collection %q is not syncable", r.Collection)
	}
	switch r.Operation {
	case offline.OpInsert:
		if len(r.Row) == 0 {
			return errors.New("row is required for insert")
		}
	case offline.OpUpdate:
		if r.ID == "" {
			return errors.New("id is required for update")
		}
		if len(r.Patch) == 0 {
			return errors.New("patch is required for update")
		}
	case offline.OpDelete:
		if r.ID == "" {
			return errors.New("id is required for delete")
		}
	default:
		return fmt.Errorf("unknown operation: %s", r.Operation)
	}
	return nil
}
