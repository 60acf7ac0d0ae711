package offline_test

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/podstock/stocksync/internal/adapter"
	"github.com/podstock/stocksync/internal/connectivity"
	"github.com/podstock/stocksync/internal/domain"
	"github.com/podstock/stocksync/internal/kv"
	"github.com/podstock/stocksync/internal/logger"
	"github.com/podstock/stocksync/internal/mocks"
	"github.com/podstock/stocksync/internal/notify"
	"github.com/podstock/stocksync/internal/offline"
)

func TestMain(m *testing.M) {
	if err := logger.Initialize(logger.Config{Debug: false}); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

type queueFixture struct {
	ctrl   *gomock.Controller
	store  *mocks.MockStore
	sink   *mocks.MockSink
	kv     *kv.MemoryStore
	signal *connectivity.Manual
	queue  *offline.Queue
}

func newQueueFixture(t *testing.T, online bool) *queueFixture {
	ctrl := gomock.NewController(t)
	f := &queueFixture{
		ctrl:   ctrl,
		store:  mocks.NewMockStore(ctrl),
		sink:   mocks.NewMockSink(ctrl),
		kv:     kv.NewMemoryStore(),
		signal: connectivity.NewManual(online),
	}
	f.queue = offline.New(f.store, f.kv, f.signal, f.sink, adapter.NewClock(), adapter.NewJSON(), "")
	return f
}

func TestQueue_EnqueueAssignsIDAndTimestamp(t *testing.T) {
	f := newQueueFixture(t, true)
	defer f.ctrl.Finish()

	entry, err := f.queue.EnqueueInsert(domain.CollectionTransactions, json.RawMessage(`{"id":"tx-1"}`))
	require.NoError(t, err)

	assert.NotEmpty(t, entry.ID)
	assert.False(t, entry.EnqueuedAt.IsZero())
	assert.True(t, f.queue.HasPendingChanges())
}

func TestQueue_EnqueueWhileOfflineNotifies(t *testing.T) {
	f := newQueueFixture(t, false)
	defer f.ctrl.Finish()

	f.sink.EXPECT().Notify("Saved Offline", gomock.Any(), notify.SeverityInfo)

	_, err := f.queue.EnqueueInsert(domain.CollectionItems, json.RawMessage(`{"id":"item-1"}`))
	require.NoError(t, err)
}

func TestQueue_ReplayDispatchesInEnqueueOrder(t *testing.T) {
	f := newQueueFixture(t, true)
	defer f.ctrl.Finish()

	rowA := json.RawMessage(`{"id":"a"}`)
	patchB := json.RawMessage(`{"pods":9}`)

	_, err := f.queue.EnqueueInsert(domain.CollectionTransactions, rowA)
	require.NoError(t, err)
	_, err = f.queue.EnqueueUpdate(domain.CollectionItems, "b", patchB)
	require.NoError(t, err)
	_, err = f.queue.EnqueueDelete(domain.CollectionIdentifiers, "c")
	require.NoError(t, err)

	gomock.InOrder(
		f.store.EXPECT().InsertRow(gomock.Any(), domain.CollectionTransactions, rowA).Return(nil),
		f.store.EXPECT().UpdateRow(gomock.Any(), domain.CollectionItems, "b", patchB).Return(nil),
		f.store.EXPECT().DeleteRow(gomock.Any(), domain.CollectionIdentifiers, "c").Return(nil),
	)
	f.sink.EXPECT().Notify("Sync Complete", "3 changes synced successfully.", notify.SeverityInfo)

	require.NoError(t, f.queue.Replay(context.Background()))
	assert.False(t, f.queue.HasPendingChanges())

	// The cleared state is persisted too.
	blob, ok := f.kv.Get(offline.DefaultQueueKey)
	require.True(t, ok)
	assert.Equal(t, "null", blob)
}

func TestQueue_ReplayAbortsOnFirstFailure(t *testing.T) {
	f := newQueueFixture(t, true)
	defer f.ctrl.Finish()

	rowA := json.RawMessage(`{"id":"a"}`)
	rowB := json.RawMessage(`{"id":"b"}`)
	rowC := json.RawMessage(`{"id":"c"}`)

	for _, row := range []json.RawMessage{rowA, rowB, rowC} {
		_, err := f.queue.EnqueueInsert(domain.CollectionTransactions, row)
		require.NoError(t, err)
	}

	boom := errors.New("insert failed")
	gomock.InOrder(
		f.store.EXPECT().InsertRow(gomock.Any(), domain.CollectionTransactions, rowA).Return(nil),
		f.store.EXPECT().InsertRow(gomock.Any(), domain.CollectionTransactions, rowB).Return(boom),
	)
	// C is never attempted this cycle.
	f.sink.EXPECT().Notify("Sync Failed", gomock.Any(), notify.SeverityError)

	err := f.queue.Replay(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)

	// All-or-nothing clear: the whole queue survives, A included.
	assert.Len(t, f.queue.Pending(), 3)
}

func TestQueue_ReplayDropsUnknownCollections(t *testing.T) {
	f := newQueueFixture(t, true)
	defer f.ctrl.Finish()

	row := json.RawMessage(`{"id":"a"}`)
	_, err := f.queue.EnqueueInsert(domain.Collection("users"), json.RawMessage(`{"id":"u"}`))
	require.NoError(t, err)
	_, err = f.queue.EnqueueInsert(domain.CollectionTransactions, row)
	require.NoError(t, err)

	f.store.EXPECT().InsertRow(gomock.Any(), domain.CollectionTransactions, row).Return(nil)
	f.sink.EXPECT().Notify("Sync Complete", "1 changes synced successfully.", notify.SeverityInfo)

	require.NoError(t, f.queue.Replay(context.Background()))
	assert.False(t, f.queue.HasPendingChanges())
}

func TestQueue_ReplayEmptyQueueIsSilent(t *testing.T) {
	f := newQueueFixture(t, true)
	defer f.ctrl.Finish()

	require.NoError(t, f.queue.Replay(context.Background()))
}

func TestQueue_DurableRoundTrip(t *testing.T) {
	f := newQueueFixture(t, true)
	defer f.ctrl.Finish()

	_, err := f.queue.EnqueueInsert(domain.CollectionTransactions, json.RawMessage(`{"id":"a","pods":3}`))
	require.NoError(t, err)
	_, err = f.queue.EnqueueDelete(domain.CollectionItems, "b")
	require.NoError(t, err)

	before := f.queue.Pending()

	// Simulate a restart against the same persisted blob.
	reloaded := offline.New(f.store, f.kv, f.signal, f.sink, adapter.NewClock(), adapter.NewJSON(), "")
	after := reloaded.Pending()

	require.Len(t, after, len(before))
	for i := range before {
		assert.Equal(t, before[i].ID, after[i].ID)
		assert.Equal(t, before[i].Collection, after[i].Collection)
		assert.Equal(t, before[i].Op, after[i].Op)
		assert.JSONEq(t, string(mustJSON(t, before[i])), string(mustJSON(t, after[i])))
	}
}

func TestQueue_CorruptPersistedQueueTreatedAsEmpty(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	kvStore := kv.NewMemoryStore()
	require.NoError(t, kvStore.Set(offline.DefaultQueueKey, "{{not json"))

	queue := offline.New(mocks.NewMockStore(ctrl), kvStore, connectivity.NewManual(true),
		mocks.NewMockSink(ctrl), adapter.NewClock(), adapter.NewJSON(), "")

	assert.False(t, queue.HasPendingChanges())
}

func TestQueue_ClearErasesPersistedState(t *testing.T) {
	f := newQueueFixture(t, true)
	defer f.ctrl.Finish()

	_, err := f.queue.EnqueueInsert(domain.CollectionTransactions, json.RawMessage(`{"id":"a"}`))
	require.NoError(t, err)

	require.NoError(t, f.queue.Clear())

	assert.False(t, f.queue.HasPendingChanges())
	_, ok := f.kv.Get(offline.DefaultQueueKey)
	assert.False(t, ok)
}

func TestQueue_OfflineEdgeNotifiesOnce(t *testing.T) {
	f := newQueueFixture(t, true)
	defer f.ctrl.Finish()

	f.queue.Start(context.Background())

	f.sink.EXPECT().Notify("Offline Mode", gomock.Any(), notify.SeverityInfo).Times(1)

	f.signal.SetOnline(false)
	f.signal.SetOnline(false) // no edge, no second notification
}

func TestQueue_ReconnectTriggersReplay(t *testing.T) {
	f := newQueueFixture(t, false)
	defer f.ctrl.Finish()

	f.sink.EXPECT().Notify("Saved Offline", gomock.Any(), notify.SeverityInfo)
	row := json.RawMessage(`{"id":"a"}`)
	_, err := f.queue.EnqueueInsert(domain.CollectionTransactions, row)
	require.NoError(t, err)

	f.queue.Start(context.Background())

	f.store.EXPECT().InsertRow(gomock.Any(), domain.CollectionTransactions, row).Return(nil)
	f.sink.EXPECT().Notify("Sync Complete", gomock.Any(), notify.SeverityInfo)

	f.signal.SetOnline(true)

	require.Eventually(t, func() bool {
		return !f.queue.HasPendingChanges()
	}, time.Second, 10*time.Millisecond)
}

func mustJSON(t *testing.T, v interface{}) []byte {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	return data
}
