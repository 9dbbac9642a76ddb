package memory

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigStore_Seeded(t *testing.T) {
	store := NewConfigStore(map[string]any{
		"backend.endpoint":   "http://localhost/search",
		"backend.result_key": "docs",
	})

	assert.Equal(t, "http://localhost/search", store.GetString("backend.endpoint"))
	assert.Equal(t, []string{"backend.endpoint", "backend.result_key"}, store.Keys())
	assert.Equal(t, ":memory:", store.Path())
}

func TestConfigStore_SetAndGet(t *testing.T) {
	store := NewConfigStore()

	require.NoError(t, store.Set("widget.min_query_length", 3))
	require.NoError(t, store.Set("widget.min_query_length", 4))

	val, ok := store.Get("widget.min_query_length")
	assert.True(t, ok)
	assert.Equal(t, 4, val)

	_, ok = store.Get("missing")
	assert.False(t, ok)
}

func TestConfigStore_TypedGetters(t *testing.T) {
	store := NewConfigStore(map[string]any{
		"a.string":   "hello",
		"a.int":      int64(7),
		"a.float":    2.5,
		"a.bool":     true,
		"a.duration": "150ms",
		"a.native":   2 * time.Second,
	})

	assert.Equal(t, "hello", store.GetString("a.string"))
	assert.Equal(t, 7, store.GetInt("a.int"))
	assert.Equal(t, 7.0, store.GetFloat("a.int"))
	assert.Equal(t, 2.5, store.GetFloat("a.float"))
	assert.True(t, store.GetBool("a.bool"))
	assert.Equal(t, 150*time.Millisecond, store.GetDuration("a.duration"))
	assert.Equal(t, 2*time.Second, store.GetDuration("a.native"))

	// Wrong types fall back to zero values
	assert.Equal(t, "", store.GetString("a.int"))
	assert.Equal(t, 0, store.GetInt("a.string"))
	assert.False(t, store.GetBool("a.string"))
	assert.Equal(t, time.Duration(0), store.GetDuration("a.string"))
}

func TestConfigStore_GetStringMap(t *testing.T) {
	store := NewConfigStore(map[string]any{
		"backend.parameters.lang":   "en",
		"backend.parameters.tenant": "acme",
		"backend.parameters.rows":   10,
		"backend.endpoint":          "http://x",
	})

	assert.Equal(t, map[string]string{"lang": "en", "tenant": "acme"}, store.GetStringMap("backend.parameters"))
	assert.Equal(t, map[string]string{"lang": "en", "tenant": "acme"}, store.GetStringMap("backend.parameters."))
}

func TestConfigStore_SaveLoadNoop(t *testing.T) {
	store := NewConfigStore()
	assert.NoError(t, store.Save())
	assert.NoError(t, store.Load())
}

func TestConfigStore_Concurrency(t *testing.T) {
	store := NewConfigStore()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			key := "backend.parameters.p" + string(rune('a'+id))
			_ = store.Set(key, "v")
			_ = store.GetStringMap("backend.parameters")
			_ = store.Keys()
		}(i)
	}
	wg.Wait()

	assert.Len(t, store.GetStringMap("backend.parameters"), 20)
}
