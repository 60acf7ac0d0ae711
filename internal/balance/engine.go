// Package balance derives current stock quantities and valuations from
// opening balances, transactions, and item prices.
package balance

import (
	"github.com/shopspring/decimal"

	"github.com/podstock/stocksync/internal/domain"
)

// Compute folds opening balances and transactions into the current balance
// per identifier. It performs no I/O and is deterministic for a fixed input
// ordering.
//
// Precondition: transactions must be sorted ascending by date. The
// cancellation cost formula reads "current quantity + this cancellation" as
// the quantity before the cancellation, which only holds when transactions
// are applied in chronological order.
//
// Transactions referencing an identifier with no item price are valued at
// zero; a missing price is a documented default, not an error.
func Compute(
	openingBalances []domain.OpeningBalance,
	transactions []domain.Transaction,
	items []domain.Item,
) map[string]domain.Balance {
	balances := make(map[string]domain.Balance, len(openingBalances))

	for _, ob := range openingBalances {
		balances[ob.IdentifierID] = domain.Balance{
			IdentifierID:    ob.IdentifierID,
			CurrentQuantity: ob.OpeningQuantity,
			CurrentCost:     ob.OpeningCost,
		}
	}

	prices := priceIndex(items)

	for _, tx := range transactions {
		current, ok := balances[tx.IdentifierID]
		if !ok {
			current = domain.Balance{
				IdentifierID: tx.IdentifierID,
				CurrentCost:  decimal.Zero,
			}
		}

		switch tx.Status {
		case domain.StatusArrived:
			unitPrice := prices[tx.IdentifierID]
			current.CurrentQuantity += tx.Pods
			current.CurrentCost = current.CurrentCost.Add(
				unitPrice.Mul(decimal.NewFromInt(tx.Pods)))

		case domain.StatusCanceled:
			prevQuantity := current.CurrentQuantity
			current.CurrentQuantity -= tx.Cancellations
			if current.CurrentQuantity > 0 {
				// Scale cost down proportionally to the surviving quantity.
				current.CurrentCost = current.CurrentCost.
					Mul(decimal.NewFromInt(current.CurrentQuantity)).
					Div(decimal.NewFromInt(prevQuantity))
			} else {
				current.CurrentCost = decimal.Zero
			}

		case domain.StatusPending:
			// Informational only.
		}

		balances[tx.IdentifierID] = current
	}

	return balances
}

// priceIndex maps identifier id to the current unit price of its item.
// When several items reference the same identifier the first one wins,
// matching the remote store's name ordering.
func priceIndex(items []domain.Item) map[string]decimal.Decimal {
	prices := make(map[string]decimal.Decimal, len(items))
	for _, item := range items {
		if _, ok := prices[item.IdentifierID]; !ok {
			prices[item.IdentifierID] = item.UnitPrice
		}
	}
	return prices
}
