// Package offline buffers remote-store writes attempted while disconnected,
// persists them durably, and replays them in enqueue order when connectivity
// returns.
package offline

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/podstock/stocksync/internal/adapter"
	"github.com/podstock/stocksync/internal/connectivity"
	"github.com/podstock/stocksync/internal/domain"
	"github.com/podstock/stocksync/internal/kv"
	"github.com/podstock/stocksync/internal/logger"
	"github.com/podstock/stocksync/internal/notify"
	"github.com/podstock/stocksync/internal/store"
)

// DefaultQueueKey is the kv key the queue persists itself under
const DefaultQueueKey = "pending_sync_queue"

// Queue is the offline mutation queue. Writes are appended in order and the
// whole list is persisted on every change, so a crash or restart never loses
// queued writes. Replay dispatches entries sequentially against the remote
// store; ordering correctness forbids any parallel fan-out.
type Queue struct {
	mu      sync.Mutex
	entries []Entry

	store  store.Store
	kv     kv.Store
	signal connectivity.Signal
	sink   notify.Sink
	clock  adapter.Clock
	json   adapter.JSON
	key    string
}

// New creates a queue, restoring any persisted entries. Unparsable persisted
// content is discarded and the queue starts empty; corruption must not make
// the application unusable.
func New(
	st store.Store,
	kvStore kv.Store,
	signal connectivity.Signal,
	sink notify.Sink,
	clock adapter.Clock,
	jsonAdapter adapter.JSON,
	key string,
) *Queue {
	if key == "" {
		key = DefaultQueueKey
	}

	q := &Queue{
		store:  st,
		kv:     kvStore,
		signal: signal,
		sink:   sink,
		clock:  clock,
		json:   jsonAdapter,
		key:    key,
	}
	q.restore()

	return q
}

// Start subscribes the queue to connectivity transitions: going offline
// surfaces a one-time notification, coming back online triggers a replay.
func (q *Queue) Start(ctx context.Context) {
	q.signal.Subscribe(func(state connectivity.State) {
		switch state {
		case connectivity.Offline:
			q.sink.Notify("Offline Mode",
				"You're working offline. Changes will sync when reconnected.",
				notify.SeverityInfo)
		case connectivity.Online:
			go func() {
				if err := q.Replay(ctx); err != nil {
					logger.Error(err, zap.String("trigger", "reconnect"))
				}
			}()
		}
	})
}

// EnqueueInsert buffers an insert of a full row
func (q *Queue) EnqueueInsert(collection domain.Collection, row json.RawMessage) (Entry, error) {
	return q.enqueue(Entry{
		Collection: collection,
		Op:         OpInsert,
		Insert:     &InsertPayload{Row: row},
	})
}

// EnqueueUpdate buffers a patch against the row with the given id
func (q *Queue) EnqueueUpdate(collection domain.Collection, id string, patch json.RawMessage) (Entry, error) {
	return q.enqueue(Entry{
		Collection: collection,
		Op:         OpUpdate,
		Update:     &UpdatePayload{ID: id, Patch: patch},
	})
}

// EnqueueDelete buffers a delete of the row with the given id
func (q *Queue) EnqueueDelete(collection domain.Collection, id string) (Entry, error) {
	return q.enqueue(Entry{
		Collection: collection,
		Op:         OpDelete,
		Delete:     &DeletePayload{ID: id},
	})
}

// enqueue stamps, appends, and persists the entry. Enqueue never performs
// network I/O; dispatch happens only during replay.
func (q *Queue) enqueue(entry Entry) (Entry, error) {
	entry.ID = uuid.NewString()
	entry.EnqueuedAt = q.clock.Now().UTC()

	if err := entry.Validate(); err != nil {
		return Entry{}, err
	}

	q.mu.Lock()
	q.entries = append(q.entries, entry)
	err := q.persistLocked()
	q.mu.Unlock()
	if err != nil {
		return Entry{}, err
	}

	if !q.signal.Online() {
		q.sink.Notify("Saved Offline",
			"Changes saved locally and will sync when online.",
			notify.SeverityInfo)
	}

	return entry, nil
}

// Replay dispatches the queued entries strictly in enqueue order. The first
// dispatch failure aborts the remainder of the cycle and leaves the whole
// queue intact, already-dispatched entries included; only a fully successful
// cycle clears the queue. Entries whose collection is outside the allow-list
// are dropped with a logged reason instead of being carried forever.
func (q *Queue) Replay(ctx context.Context) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.entries) == 0 {
		return nil
	}

	dispatched := 0
	for _, entry := range q.entries {
		if !domain.IsSyncable(entry.Collection) {
			logger.Warn("dropping queued write for unknown collection",
				zap.String("entry_id", entry.ID),
				zap.String("collection", string(entry.Collection)))
			continue
		}

		if err := q.dispatch(ctx, entry); err != nil {
			q.sink.Notify("Sync Failed",
				"Some changes couldn't be synced. Will retry later.",
				notify.SeverityError)
			return fmt.Errorf("replay aborted at entry %s: %w", entry.ID, err)
		}
		dispatched++
	}

	q.entries = nil
	if err := q.persistLocked(); err != nil {
		return err
	}

	q.sink.Notify("Sync Complete",
		fmt.Sprintf("%d changes synced successfully.", dispatched),
		notify.SeverityInfo)
	return nil
}

// dispatch issues the remote-store call for one entry
func (q *Queue) dispatch(ctx context.Context, entry Entry) error {
	if err := entry.Validate(); err != nil {
		return err
	}

	switch entry.Op {
	case OpInsert:
		return q.store.InsertRow(ctx, entry.Collection, entry.Insert.Row)
	case OpUpdate:
		return q.store.UpdateRow(ctx, entry.Collection, entry.Update.ID, entry.Update.Patch)
	case OpDelete:
		return q.store.DeleteRow(ctx, entry.Collection, entry.Delete.ID)
	default:
		return fmt.Errorf("entry %s: unknown operation %q", entry.ID, entry.Op)
	}
}

// Clear drops all entries and erases the persisted queue. It is a manual
// recovery lever and is never invoked automatically.
func (q *Queue) Clear() error {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.entries = nil
	if err := q.kv.Remove(q.key); err != nil {
		return fmt.Errorf("failed to erase persisted queue: %w", err)
	}
	return nil
}

// Pending returns a copy of the queued entries in enqueue order
func (q *Queue) Pending() []Entry {
	q.mu.Lock()
	defer q.mu.Unlock()

	pending := make([]Entry, len(q.entries))
	copy(pending, q.entries)
	return pending
}

// HasPendingChanges reports whether any writes are waiting to be replayed
func (q *Queue) HasPendingChanges() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.entries) > 0
}

// persistLocked writes the whole queue to durable storage. An empty queue is
// persisted as an empty list so a reload after a successful replay stays
// empty. Caller must hold q.mu.
func (q *Queue) persistLocked() error {
	data, err := q.json.Marshal(q.entries)
	if err != nil {
		return fmt.Errorf("failed to encode queue: %w", err)
	}
	if err := q.kv.Set(q.key, string(data)); err != nil {
		return fmt.Errorf("failed to persist queue: %w", err)
	}
	return nil
}

// restore reloads the persisted queue, discarding unparsable content
func (q *Queue) restore() {
	blob, ok := q.kv.Get(q.key)
	if !ok || blob == "" {
		return
	}

	var entries []Entry
	if err := q.json.Unmarshal([]byte(blob), &entries); err != nil {
		logger.Warn("discarding corrupt persisted queue", zap.Error(err))
		return
	}
	q.entries = entries
}
