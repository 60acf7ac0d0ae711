package rest_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/podstock/stocksync/internal/adapter"
	"github.com/podstock/stocksync/internal/api/middleware"
	"github.com/podstock/stocksync/internal/api/rest"
	"github.com/podstock/stocksync/internal/connectivity"
	"github.com/podstock/stocksync/internal/domain"
	"github.com/podstock/stocksync/internal/inventory"
	"github.com/podstock/stocksync/internal/kv"
	"github.com/podstock/stocksync/internal/logger"
	"github.com/podstock/stocksync/internal/mocks"
	"github.com/podstock/stocksync/internal/offline"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	if err := logger.Initialize(logger.Config{Debug: false}); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

type apiFixture struct {
	ctrl   *gomock.Controller
	store  *mocks.MockStore
	sink   *mocks.MockSink
	signal *connectivity.Manual
	state  *inventory.StateStore
	queue  *offline.Queue
	router *gin.Engine
}

func newAPIFixture(t *testing.T, online bool) *apiFixture {
	ctrl := gomock.NewController(t)
	f := &apiFixture{
		ctrl:   ctrl,
		store:  mocks.NewMockStore(ctrl),
		sink:   mocks.NewMockSink(ctrl),
		signal: connectivity.NewManual(online),
	}
	f.sink.EXPECT().Notify(gomock.Any(), gomock.Any(), gomock.Any()).AnyTimes()
	f.state = inventory.New(f.store, f.sink, "tester")
	f.queue = offline.New(f.store, kv.NewMemoryStore(), f.signal, f.sink, adapter.NewClock(), adapter.NewJSON(), "")

	f.router = gin.New()
	f.router.Use(middleware.Actor("tester"))
	rest.SetupRoutes(f.router, rest.NewHandler(f.state, f.queue, f.signal))
	return f
}

// expectEmptyLoad wires list expectations so Load leaves an empty but ready snapshot
func (f *apiFixture) expectEmptyLoad() {
	f.store.EXPECT().ListIdentifiers(gomock.Any()).Return(nil, nil).AnyTimes()
	f.store.EXPECT().ListItems(gomock.Any()).Return(nil, nil).AnyTimes()
	f.store.EXPECT().ListTransactions(gomock.Any()).Return(nil, nil).AnyTimes()
	f.store.EXPECT().ListOpeningBalances(gomock.Any()).Return(nil, nil).AnyTimes()
}

func (f *apiFixture) do(method, path string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func TestHealthCheck(t *testing.T) {
	f := newAPIFixture(t, true)
	defer f.ctrl.Finish()

	w := f.do(http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
}

func TestListBalances_NotReady(t *testing.T) {
	f := newAPIFixture(t, true)
	defer f.ctrl.Finish()

	w := f.do(http.MethodGet, "/api/v1/balances", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "not_ready")
}

func TestListBalances_ComputedFromSnapshot(t *testing.T) {
	f := newAPIFixture(t, true)
	defer f.ctrl.Finish()

	f.store.EXPECT().ListIdentifiers(gomock.Any()).Return([]domain.Identifier{
		{ID: "id-1", Category: domain.CategoryRange1, Number: 100},
	}, nil).AnyTimes()
	f.store.EXPECT().ListItems(gomock.Any()).Return([]domain.Item{
		{ID: "item-1", IdentifierID: "id-1", Name: "Widget", UnitPrice: decimal.NewFromFloat(1.50)},
	}, nil).AnyTimes()
	f.store.EXPECT().ListTransactions(gomock.Any()).Return(nil, nil).AnyTimes()
	f.store.EXPECT().ListOpeningBalances(gomock.Any()).Return([]domain.OpeningBalance{
		{ID: "ob-1", IdentifierID: "id-1", OpeningQuantity: 3, OpeningCost: decimal.NewFromFloat(4.50)},
	}, nil).AnyTimes()

	f.state.Load(context.Background())

	w := f.do(http.MethodGet, "/api/v1/balances", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Balances map[string]domain.Balance `json:"balances"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Contains(t, body.Balances, "id-1")
	assert.Equal(t, int64(3), body.Balances["id-1"].CurrentQuantity)
	assert.True(t, body.Balances["id-1"].CurrentCost.Equal(decimal.NewFromFloat(4.50)))
}

func TestCreateIdentifier_Online(t *testing.T) {
	f := newAPIFixture(t, true)
	defer f.ctrl.Finish()

	f.expectEmptyLoad()
	f.state.Load(context.Background())

	f.store.EXPECT().CreateIdentifier(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, identifier domain.Identifier) error {
			assert.Equal(t, domain.CategoryRange1, identifier.Category)
			assert.Equal(t, int64(205), identifier.Number)
			assert.Equal(t, "tester", identifier.CreatedBy)
			return nil
		})

	w := f.do(http.MethodPost, "/api/v1/identifiers", gin.H{
		"category":          "range1",
		"identifier_number": 205,
	})
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestCreateIdentifier_InvalidCategory(t *testing.T) {
	f := newAPIFixture(t, true)
	defer f.ctrl.Finish()

	w := f.do(http.MethodPost, "/api/v1/identifiers", gin.H{
		"category":          "range9",
		"identifier_number": 205,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid category")
}

func TestCreateTransaction_OfflineBuffersIntoQueue(t *testing.T) {
	f := newAPIFixture(t, false)
	defer f.ctrl.Finish()

	w := f.do(http.MethodPost, "/api/v1/transactions", gin.H{
		"identifier_id": "id-1",
		"date":          "2026-08-30T00:00:00Z",
		"pods":          5,
		"status":        "arrived",
	})
	require.Equal(t, http.StatusAccepted, w.Code)

	pending := f.queue.Pending()
	require.Len(t, pending, 1)
	assert.Equal(t, domain.CollectionTransactions, pending[0].Collection)
	assert.Equal(t, offline.OpInsert, pending[0].Op)

	var row domain.Transaction
	require.NoError(t, json.Unmarshal(pending[0].Insert.Row, &row))
	assert.NotEmpty(t, row.ID)
	assert.Equal(t, "tester", row.CreatedBy)
	assert.Equal(t, int64(5), row.Pods)
}

func TestCreateItem_OfflineUsesActorHeader(t *testing.T) {
	f := newAPIFixture(t, false)
	defer f.ctrl.Finish()

	body, _ := json.Marshal(gin.H{
		"identifier_id": "id-1",
		"name":          "Widget",
		"unit_price":    "2.00",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/items", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(middleware.ActorHeader, "device-7")
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	require.Equal(t, http.StatusAccepted, w.Code)

	pending := f.queue.Pending()
	require.Len(t, pending, 1)

	var row domain.Item
	require.NoError(t, json.Unmarshal(pending[0].Insert.Row, &row))
	assert.Equal(t, "device-7", row.CreatedBy)
}

func TestSyncStatus(t *testing.T) {
	f := newAPIFixture(t, false)
	defer f.ctrl.Finish()

	_, err := f.queue.EnqueueDelete(domain.CollectionItems, "item-1")
	require.NoError(t, err)

	w := f.do(http.MethodGet, "/api/v1/sync/status", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Online            bool `json:"online"`
		HasPendingChanges bool `json:"has_pending_changes"`
		PendingCount      int  `json:"pending_count"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.False(t, body.Online)
	assert.True(t, body.HasPendingChanges)
	assert.Equal(t, 1, body.PendingCount)
}

func TestEnqueueChange_RejectsUnknownCollection(t *testing.T) {
	f := newAPIFixture(t, false)
	defer f.ctrl.Finish()

	w := f.do(http.MethodPost, "/api/v1/sync/queue", gin.H{
		"collection": "widgets",
		"operation":  "insert",
		"row":        gin.H{"id": "w-1"},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "not syncable")
}

func TestReplayQueue_DispatchesBufferedWrites(t *testing.T) {
	f := newAPIFixture(t, true)
	defer f.ctrl.Finish()

	_, err := f.queue.EnqueueUpdate(domain.CollectionItems, "item-1", json.RawMessage(`{"name":"Renamed"}`))
	require.NoError(t, err)

	f.store.EXPECT().UpdateRow(gomock.Any(), domain.CollectionItems, "item-1", gomock.Any()).Return(nil)

	w := f.do(http.MethodPost, "/api/v1/sync/replay", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"has_pending_changes":false`)
	assert.False(t, f.queue.HasPendingChanges())
}

func TestClearQueue(t *testing.T) {
	f := newAPIFixture(t, false)
	defer f.ctrl.Finish()

	_, err := f.queue.EnqueueDelete(domain.CollectionItems, "item-1")
	require.NoError(t, err)

	w := f.do(http.MethodDelete, "/api/v1/sync/queue", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.False(t, f.queue.HasPendingChanges())
}
