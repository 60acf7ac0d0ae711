package rest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/podstock/stocksync/internal/api/middleware"
	"github.com/podstock/stocksync/internal/api/rest/dto"
	"github.com/podstock/stocksync/internal/connectivity"
	"github.com/podstock/stocksync/internal/domain"
	"github.com/podstock/stocksync/internal/inventory"
	"github.com/podstock/stocksync/internal/offline"
)

// Handler defines the interface for REST API handlers
// This interface allows for easy mocking and testing
//
//go:generate mockgen -source=handler.go -destination=../../mocks/api_handler.go -package=mocks -mock_names=Handler=MockAPIHandler
type Handler interface {
	// ListIdentifiers returns the identifier snapshot
	// GET /api/v1/identifiers
	ListIdentifiers(c *gin.Context)

	// ListItems returns the item snapshot
	// GET /api/v1/items
	ListItems(c *gin.Context)

	// ListTransactions returns the transaction snapshot, newest first
	// GET /api/v1/transactions
	ListTransactions(c *gin.Context)

	// ListOpeningBalances returns the opening balance snapshot
	// GET /api/v1/opening-balances
	ListOpeningBalances(c *gin.Context)

	// ListBalances returns the derived balance per identifier
	// GET /api/v1/balances
	ListBalances(c *gin.Context)

	// CreateIdentifier creates a new identifier, or buffers it while offline
	// POST /api/v1/identifiers
	CreateIdentifier(c *gin.Context)

	// CreateItem creates a new item, or buffers it while offline
	// POST /api/v1/items
	CreateItem(c *gin.Context)

	// CreateTransaction records a stock movement, or buffers it while offline
	// POST /api/v1/transactions
	CreateTransaction(c *gin.Context)

	// UpsertOpeningBalance sets the starting baseline for an identifier,
	// or buffers it while offline
	// PUT /api/v1/opening-balances
	UpsertOpeningBalance(c *gin.Context)

	// GetSyncStatus reports connectivity and the buffered queue contents
	// GET /api/v1/sync/status
	GetSyncStatus(c *gin.Context)

	// EnqueueChange buffers a raw collection write into the offline queue
	// POST /api/v1/sync/queue
	EnqueueChange(c *gin.Context)

	// ReplayQueue replays the buffered queue against the remote store
	// POST /api/v1/sync/replay
	ReplayQueue(c *gin.Context)

	// ClearQueue drops all buffered entries without replaying them
	// DELETE /api/v1/sync/queue
	ClearQueue(c *gin.Context)

	// HealthCheck returns the health status of the API
	// GET /health
	HealthCheck(c *gin.Context)
}

// handler implements the Handler interface
type handler struct {
	state  *inventory.StateStore
	queue  *offline.Queue
	signal connectivity.Signal
}

// NewHandler creates a new REST API handler
func NewHandler(state *inventory.StateStore, queue *offline.Queue, signal connectivity.Signal) Handler {
	return &handler{
		state:  state,
		queue:  queue,
		signal: signal,
	}
}

// ListIdentifiers returns the identifier snapshot
func (h *handler) ListIdentifiers(c *gin.Context) {
	if !h.state.Ready() {
		respondNotReady(c)
		return
	}
	c.JSON(http.StatusOK, gin.H{"identifiers": h.state.Identifiers()})
}

// ListItems returns the item snapshot
func (h *handler) ListItems(c *gin.Context) {
	if !h.state.Ready() {
		respondNotReady(c)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": h.state.Items()})
}

// ListTransactions returns the transaction snapshot, newest first
func (h *handler) ListTransactions(c *gin.Context) {
	if !h.state.Ready() {
		respondNotReady(c)
		return
	}
	c.JSON(http.StatusOK, gin.H{"transactions": h.state.Transactions()})
}

// ListOpeningBalances returns the opening balance snapshot
func (h *handler) ListOpeningBalances(c *gin.Context) {
	if !h.state.Ready() {
		respondNotReady(c)
		return
	}
	c.JSON(http.StatusOK, gin.H{"opening_balances": h.state.OpeningBalances()})
}

// ListBalances returns the derived balance per identifier
func (h *handler) ListBalances(c *gin.Context) {
	if !h.state.Ready() {
		respondNotReady(c)
		return
	}
	c.JSON(http.StatusOK, gin.H{"balances": h.state.Balances()})
}

// CreateIdentifier creates a new identifier, or buffers it while offline
func (h *handler) CreateIdentifier(c *gin.Context) {
	var req dto.CreateIdentifierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, fmt.Sprintf("Invalid request body: %v", err))
		return
	}

	if err := req.Validate(); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	if !h.signal.Online() {
		h.bufferInsert(c, domain.CollectionIdentifiers, domain.Identifier{
			ID:        uuid.NewString(),
			Category:  req.Category,
			Number:    req.IdentifierNumber,
			CreatedBy: middleware.ActorFromContext(c),
			CreatedAt: time.Now().UTC(),
		})
		return
	}

	if err := h.state.CreateIdentifier(c.Request.Context(), req.Category, req.IdentifierNumber); err != nil {
		respondInternalError(c, err, "Failed to create identifier")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"identifiers": h.state.Identifiers()})
}

// CreateItem creates a new item, or buffers it while offline
func (h *handler) CreateItem(c *gin.Context) {
	var req dto.CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, fmt.Sprintf("Invalid request body: %v", err))
		return
	}

	if err := req.Validate(); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	if !h.signal.Online() {
		item := req.ToDomain()
		item.ID = uuid.NewString()
		item.CreatedBy = middleware.ActorFromContext(c)
		h.bufferInsert(c, domain.CollectionItems, item)
		return
	}

	if err := h.state.CreateItem(c.Request.Context(), req.ToDomain()); err != nil {
		respondInternalError(c, err, "Failed to create item")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"items": h.state.Items()})
}

// CreateTransaction records a stock movement, or buffers it while offline
func (h *handler) CreateTransaction(c *gin.Context) {
	var req dto.CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, fmt.Sprintf("Invalid request body: %v", err))
		return
	}

	if err := req.Validate(); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	if !h.signal.Online() {
		transaction := req.ToDomain()
		transaction.ID = uuid.NewString()
		transaction.CreatedBy = middleware.ActorFromContext(c)
		h.bufferInsert(c, domain.CollectionTransactions, transaction)
		return
	}

	if err := h.state.CreateTransaction(c.Request.Context(), req.ToDomain()); err != nil {
		respondInternalError(c, err, "Failed to create transaction")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"transactions": h.state.Transactions()})
}

// UpsertOpeningBalance sets the starting baseline for an identifier, or
// buffers it while offline
func (h *handler) UpsertOpeningBalance(c *gin.Context) {
	var req dto.UpsertOpeningBalanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, fmt.Sprintf("Invalid request body: %v", err))
		return
	}

	if err := req.Validate(); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	if !h.signal.Online() {
		h.bufferInsert(c, domain.CollectionOpeningBalances, domain.OpeningBalance{
			ID:              uuid.NewString(),
			IdentifierID:    req.IdentifierID,
			OpeningQuantity: req.OpeningQuantity,
			OpeningCost:     req.OpeningCost,
			CreatedBy:       middleware.ActorFromContext(c),
		})
		return
	}

	if err := h.state.UpsertOpeningBalance(c.Request.Context(), req.IdentifierID, req.OpeningQuantity, req.OpeningCost); err != nil {
		respondInternalError(c, err, "Failed to update opening balance")
		return
	}

	c.JSON(http.StatusOK, gin.H{"opening_balances": h.state.OpeningBalances()})
}

// bufferInsert serializes the row and appends it to the offline queue
func (h *handler) bufferInsert(c *gin.Context, collection domain.Collection, row any) {
	raw, err := json.Marshal(row)
	if err != nil {
		respondInternalError(c, err, "Failed to serialize row")
		return
	}

	entry, err := h.queue.EnqueueInsert(collection, raw)
	if err != nil {
		respondInternalError(c, err, "Failed to buffer change")
		return
	}

	c.JSON(http.StatusAccepted, gin.H{"queued": entry})
}

// GetSyncStatus reports connectivity and the buffered queue contents
func (h *handler) GetSyncStatus(c *gin.Context) {
	pending := h.queue.Pending()
	c.JSON(http.StatusOK, gin.H{
		"online":              h.signal.Online(),
		"has_pending_changes": len(pending) > 0,
		"pending_count":       len(pending),
		"pending":             pending,
	})
}

// EnqueueChange buffers a raw collection write into the offline queue
func (h *handler) EnqueueChange(c *gin.Context) {
	var req dto.EnqueueChangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, fmt.Sprintf("Invalid request body: %v", err))
		return
	}

	if err := req.Validate(); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	var entry offline.Entry
	var err error
	switch req.Operation {
	case offline.OpInsert:
		entry, err = h.queue.EnqueueInsert(req.Collection, req.Row)
	case offline.OpUpdate:
		entry, err = h.queue.EnqueueUpdate(req.Collection, req.ID, req.Patch)
	case offline.OpDelete:
		entry, err = h.queue.EnqueueDelete(req.Collection, req.ID)
	}
	if err != nil {
		respondInternalError(c, err, "Failed to buffer change")
		return
	}

	c.JSON(http.StatusAccepted, gin.H{"queued": entry})
}

// ReplayQueue replays the buffered queue against the remote store
func (h *handler) ReplayQueue(c *gin.Context) {
	if err := h.queue.Replay(c.Request.Context()); err != nil {
		respondInternalError(c, err, "Failed to replay queue")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"has_pending_changes": h.queue.HasPendingChanges(),
	})
}

// ClearQueue drops all buffered entries without replaying them
func (h *handler) ClearQueue(c *gin.Context) {
	if err := h.queue.Clear(); err != nil {
		respondInternalError(c, err, "Failed to clear queue")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"has_pending_changes": false,
	})
}

// HealthCheck returns the health status of the API
func (h *handler) HealthCheck(c *gin.Context) {
	c.JSON(200, gin.H{
		"status":  "ok",
		"service": "stocksync",
	})
}
