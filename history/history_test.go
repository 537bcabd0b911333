package history

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/go-redis/redismock/v9"
	"github.com/inglify/inglify"
	"github.com/inglify/inglify/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sequentialIDs() func() (string, error) {
	n := 0
	return func() (string, error) {
		n++
		return fmt.Sprintf("id-%03d", n), nil
	}
}

func response(text string, ts int64) inglify.TranslationResponse {
	return inglify.TranslationResponse{
		Results:        []inglify.TranslationResult{{Tone: inglify.ToneFormal, Translation: "T:" + text}},
		OriginalText:   text,
		TargetLanguage: "en",
		Timestamp:      ts,
	}
}

func newTestStore() (*Store, *store.InMemoryStore) {
	kv := store.NewInMemoryStore(0)
	return New(kv, WithIDGenerator(sequentialIDs())), kv
}

func TestStore_AppendNewestFirst(t *testing.T) {
	s, _ := newTestStore()

	first, err := s.Append(response("satu", 1))
	require.NoError(t, err)
	second, err := s.Append(response("dua", 2))
	require.NoError(t, err)

	items, err := s.Items()
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, second.ID, items[0].ID)
	assert.Equal(t, first.ID, items[1].ID)
	assert.Equal(t, "dua", items[0].OriginalText)
	assert.Equal(t, "T:dua", items[0].Results[0].Translation)
}

func TestStore_CapEvictsOldest(t *testing.T) {
	s, _ := newTestStore()

	const n = 57
	for i := 1; i <= n; i++ {
		_, err := s.Append(response(fmt.Sprintf("text %d", i), int64(i)))
		require.NoError(t, err)
	}

	items, err := s.Items()
	require.NoError(t, err)
	require.Len(t, items, MaxItems)

	for i, item := range items {
		want := fmt.Sprintf("text %d", n-i)
		assert.Equal(t, want, item.OriginalText, "position %d", i)
	}
}

func TestStore_DeletePreservesOrder(t *testing.T) {
	s, _ := newTestStore()

	var ids []string
	for i := 1; i <= 4; i++ {
		item, err := s.Append(response(fmt.Sprintf("t%d", i), int64(i)))
		require.NoError(t, err)
		ids = append(ids, item.ID)
	}

	removed, err := s.Delete(ids[1])
	require.NoError(t, err)
	assert.True(t, removed)

	items, err := s.Items()
	require.NoError(t, err)
	got := make([]string, len(items))
	for i, item := range items {
		got[i] = item.ID
	}
	assert.Equal(t, []string{ids[3], ids[2], ids[0]}, got)

	removed, err = s.Delete("missing")
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestStore_Clear(t *testing.T) {
	s, kv := newTestStore()

	_, err := s.Append(response("a", 1))
	require.NoError(t, err)

	require.NoError(t, s.Clear())

	items, err := s.Items()
	require.NoError(t, err)
	assert.Empty(t, items)
	_, ok := kv.Get(StorageKey)
	assert.False(t, ok)
}

func TestStore_Get(t *testing.T) {
	s, _ := newTestStore()

	item, err := s.Append(response("cari", 5))
	require.NoError(t, err)

	got, ok, err := s.Get(item.ID)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "cari", got.OriginalText)

	_, ok, err = s.Get("nope")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStore_CorruptEntryIsLeftAlone(t *testing.T) {
	kv := store.NewInMemoryStore(0)
	require.NoError(t, kv.Set(StorageKey, "{broken"))

	s := New(kv, WithIDGenerator(sequentialIDs()))
	_, err := s.Items()
	assert.Error(t, err)

	_, err = s.Append(response("baru", 1))
	assert.Error(t, err)
	_, err = s.Delete("id-001")
	assert.Error(t, err)
	_, err = s.Import(strings.NewReader(`{"version":"1.0","items":[{"id":"x","timestamp":1}]}`))
	assert.Error(t, err)

	raw, ok := kv.Get(StorageKey)
	require.True(t, ok)
	assert.Equal(t, "{broken", raw)

	require.NoError(t, s.Clear())
	_, err = s.Append(response("baru", 1))
	assert.NoError(t, err)
}

func TestStore_RedisReadErrorDoesNotOverwrite(t *testing.T) {
	db, mock := redismock.NewClientMock()
	defer db.Close()

	kv := store.NewRedisStoreFromClient(db, 0, "test:")
	s := New(kv, WithIDGenerator(sequentialIDs()))

	mock.ExpectGet("test:" + StorageKey).SetErr(errors.New("i/o timeout"))

	_, err := s.Append(response("baru", 1))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "i/o timeout")

	// No SET was expected, so a write would fail the expectations.
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_RedisAppendAfterRead(t *testing.T) {
	db, mock := redismock.NewClientMock()
	defer db.Close()

	kv := store.NewRedisStoreFromClient(db, 0, "test:")
	s := New(kv, WithIDGenerator(sequentialIDs()))

	want, err := json.Marshal([]inglify.HistoryItem{inglify.NewHistoryItem("id-001", response("baru", 1))})
	require.NoError(t, err)

	mock.ExpectGet("test:" + StorageKey).RedisNil()
	mock.ExpectSet("test:"+StorageKey, string(want), 0).SetVal("OK")

	item, err := s.Append(response("baru", 1))
	require.NoError(t, err)
	assert.Equal(t, "id-001", item.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_IDGeneratorError(t *testing.T) {
	boom := errors.New("entropy")
	s := New(store.NewInMemoryStore(0), WithIDGenerator(func() (string, error) { return "", boom }))

	_, err := s.Append(response("x", 1))
	assert.ErrorIs(t, err, boom)
}

func TestStore_DefaultIDsAreUnique(t *testing.T) {
	s := New(store.NewInMemoryStore(0))

	a, err := s.Append(response("a", 1))
	require.NoError(t, err)
	b, err := s.Append(response("b", 2))
	require.NoError(t, err)

	assert.NotEmpty(t, a.ID)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestStore_Options(t *testing.T) {
	kv := store.NewInMemoryStore(0)
	s := New(kv, WithKey("custom"), WithMaxItems(2), WithIDGenerator(sequentialIDs()))

	for i := 0; i < 3; i++ {
		_, err := s.Append(response("x", int64(i)))
		require.NoError(t, err)
	}

	items, err := s.Items()
	require.NoError(t, err)
	assert.Len(t, items, 2)
	_, ok := kv.Get("custom")
	assert.True(t, ok)
	_, ok = kv.Get(StorageKey)
	assert.False(t, ok)
}
