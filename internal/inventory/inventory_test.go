package inventory_test

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/podstock/stocksync/internal/domain"
	"github.com/podstock/stocksync/internal/inventory"
	"github.com/podstock/stocksync/internal/logger"
	"github.com/podstock/stocksync/internal/mocks"
	"github.com/podstock/stocksync/internal/notify"
)

func TestMain(m *testing.M) {
	if err := logger.Initialize(logger.Config{Debug: false}); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

type stateFixture struct {
	ctrl  *gomock.Controller
	store *mocks.MockStore
	sink  *mocks.MockSink
	state *inventory.StateStore
}

func newStateFixture(t *testing.T) *stateFixture {
	ctrl := gomock.NewController(t)
	f := &stateFixture{
		ctrl:  ctrl,
		store: mocks.NewMockStore(ctrl),
		sink:  mocks.NewMockSink(ctrl),
	}
	f.state = inventory.New(f.store, f.sink, "tester")
	return f
}

func day(n int) time.Time {
	return time.Date(2025, time.June, n, 0, 0, 0, 0, time.UTC)
}

func TestStateStore_LoadComputesBalances(t *testing.T) {
	f := newStateFixture(t)
	defer f.ctrl.Finish()

	ctx := context.Background()

	f.store.EXPECT().ListIdentifiers(ctx).Return([]domain.Identifier{
		{ID: "id-1", Category: domain.CategoryRange1, Number: 101},
	}, nil)
	f.store.EXPECT().ListItems(ctx).Return([]domain.Item{
		{ID: "item-1", IdentifierID: "id-1", Name: "pod", UnitPrice: decimal.NewFromFloat(1.50)},
	}, nil)
	f.store.EXPECT().ListTransactions(ctx).Return([]domain.Transaction{
		{ID: "tx-1", IdentifierID: "id-1", Date: day(1), Pods: 3, Status: domain.StatusArrived},
	}, nil)
	f.store.EXPECT().ListOpeningBalances(ctx).Return(nil, nil)

	assert.False(t, f.state.Ready())
	f.state.Load(ctx)

	assert.True(t, f.state.Ready())
	balances := f.state.Balances()
	require.Contains(t, balances, "id-1")
	assert.Equal(t, int64(3), balances["id-1"].CurrentQuantity)
	assert.True(t, balances["id-1"].CurrentCost.Equal(decimal.NewFromFloat(4.50)))
}

func TestStateStore_LoadSurfacesFetchFailure(t *testing.T) {
	f := newStateFixture(t)
	defer f.ctrl.Finish()

	ctx := context.Background()
	boom := errors.New("connection refused")

	f.store.EXPECT().ListIdentifiers(ctx).Return(nil, boom)
	f.store.EXPECT().ListItems(ctx).Return(nil, nil)
	f.store.EXPECT().ListTransactions(ctx).Return(nil, nil)
	f.store.EXPECT().ListOpeningBalances(ctx).Return(nil, nil)
	f.sink.EXPECT().Notify("Error fetching identifiers", boom.Error(), notify.SeverityError)

	f.state.Load(ctx)

	// The failed collection stays empty; the snapshot still becomes ready.
	assert.True(t, f.state.Ready())
	assert.Empty(t, f.state.Identifiers())
}

func TestStateStore_RecomputeSortsTransactionsAscending(t *testing.T) {
	f := newStateFixture(t)
	defer f.ctrl.Finish()

	ctx := context.Background()

	// Transactions arrive date-descending from the store; the cancellation
	// formula only holds when they are folded chronologically.
	f.store.EXPECT().ListIdentifiers(ctx).Return(nil, nil)
	f.store.EXPECT().ListItems(ctx).Return([]domain.Item{
		{ID: "item-1", IdentifierID: "id-1", Name: "pod", UnitPrice: decimal.NewFromInt(1)},
	}, nil)
	f.store.EXPECT().ListTransactions(ctx).Return([]domain.Transaction{
		{ID: "tx-2", IdentifierID: "id-1", Date: day(2), Cancellations: 5, Status: domain.StatusCanceled},
		{ID: "tx-1", IdentifierID: "id-1", Date: day(1), Pods: 10, Status: domain.StatusArrived},
	}, nil)
	f.store.EXPECT().ListOpeningBalances(ctx).Return(nil, nil)

	f.state.Load(ctx)

	balances := f.state.Balances()
	require.Contains(t, balances, "id-1")
	assert.Equal(t, int64(5), balances["id-1"].CurrentQuantity)
	assert.True(t, balances["id-1"].CurrentCost.Equal(decimal.NewFromInt(5)),
		"expected 5, got %s", balances["id-1"].CurrentCost)
}

func TestStateStore_CreateIdentifier(t *testing.T) {
	f := newStateFixture(t)
	defer f.ctrl.Finish()

	ctx := context.Background()

	f.store.EXPECT().CreateIdentifier(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, identifier domain.Identifier) error {
			assert.NotEmpty(t, identifier.ID)
			assert.Equal(t, domain.CategoryRange1, identifier.Category)
			assert.Equal(t, int64(42), identifier.Number)
			assert.Equal(t, "tester", identifier.CreatedBy)
			return nil
		})
	f.store.EXPECT().ListIdentifiers(ctx).Return([]domain.Identifier{
		{ID: "id-1", Category: domain.CategoryRange1, Number: 42},
	}, nil)
	f.sink.EXPECT().Notify("Success", "Identifier created successfully", notify.SeverityInfo)

	require.NoError(t, f.state.CreateIdentifier(ctx, domain.CategoryRange1, 42))
	assert.Len(t, f.state.Identifiers(), 1)
}

func TestStateStore_CreateIdentifierRejectsBadCategory(t *testing.T) {
	f := newStateFixture(t)
	defer f.ctrl.Finish()

	f.sink.EXPECT().Notify("Error creating identifier", gomock.Any(), notify.SeverityError)

	err := f.state.CreateIdentifier(context.Background(), domain.Category("range9"), 1)
	assert.ErrorIs(t, err, domain.ErrInvalidCategory)
}

func TestStateStore_CreateTransactionFailureLeavesStateUntouched(t *testing.T) {
	f := newStateFixture(t)
	defer f.ctrl.Finish()

	ctx := context.Background()
	boom := errors.New("permission denied")

	f.store.EXPECT().CreateTransaction(ctx, gomock.Any()).Return(boom)
	f.sink.EXPECT().Notify("Error creating transaction", boom.Error(), notify.SeverityError)

	err := f.state.CreateTransaction(ctx, domain.Transaction{
		IdentifierID: "id-1", Date: day(1), Pods: 2, Status: domain.StatusArrived,
	})
	require.Error(t, err)

	// No refetch happened and nothing was applied locally.
	assert.Empty(t, f.state.Transactions())
	assert.Empty(t, f.state.Balances())
}

func TestStateStore_CreateTransactionRejectsBadStatus(t *testing.T) {
	f := newStateFixture(t)
	defer f.ctrl.Finish()

	f.sink.EXPECT().Notify("Error creating transaction", gomock.Any(), notify.SeverityError)

	err := f.state.CreateTransaction(context.Background(), domain.Transaction{
		IdentifierID: "id-1", Status: domain.TransactionStatus("shipped"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidStatus)
}

func TestStateStore_CreateTransactionRefetchesAndRecomputes(t *testing.T) {
	f := newStateFixture(t)
	defer f.ctrl.Finish()

	ctx := context.Background()
	created := domain.Transaction{
		IdentifierID: "id-1", Date: day(1), Pods: 4, Status: domain.StatusArrived,
	}

	f.store.EXPECT().CreateTransaction(ctx, gomock.Any()).Return(nil)
	f.store.EXPECT().ListTransactions(ctx).Return([]domain.Transaction{
		{ID: "tx-1", IdentifierID: "id-1", Date: day(1), Pods: 4, Status: domain.StatusArrived},
	}, nil)
	f.sink.EXPECT().Notify("Success", "Transaction created successfully", notify.SeverityInfo)

	require.NoError(t, f.state.CreateTransaction(ctx, created))

	assert.Len(t, f.state.Transactions(), 1)
	balances := f.state.Balances()
	require.Contains(t, balances, "id-1")
	assert.Equal(t, int64(4), balances["id-1"].CurrentQuantity)
	// No item priced for id-1, so the arrival is valued at zero.
	assert.True(t, balances["id-1"].CurrentCost.IsZero())
}

func TestStateStore_UpsertOpeningBalance(t *testing.T) {
	f := newStateFixture(t)
	defer f.ctrl.Finish()

	ctx := context.Background()
	cost := decimal.NewFromFloat(99.90)

	f.store.EXPECT().UpsertOpeningBalance(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, ob domain.OpeningBalance) error {
			assert.Equal(t, "id-1", ob.IdentifierID)
			assert.Equal(t, int64(7), ob.OpeningQuantity)
			assert.True(t, ob.OpeningCost.Equal(cost))
			assert.Equal(t, "tester", ob.CreatedBy)
			return nil
		})
	f.store.EXPECT().ListOpeningBalances(ctx).Return([]domain.OpeningBalance{
		{ID: "ob-1", IdentifierID: "id-1", OpeningQuantity: 7, OpeningCost: cost},
	}, nil)
	f.sink.EXPECT().Notify("Success", "Opening balance updated successfully", notify.SeverityInfo)

	require.NoError(t, f.state.UpsertOpeningBalance(ctx, "id-1", 7, cost))

	balances := f.state.Balances()
	require.Contains(t, balances, "id-1")
	assert.Equal(t, int64(7), balances["id-1"].CurrentQuantity)
	assert.True(t, balances["id-1"].CurrentCost.Equal(cost))
}
