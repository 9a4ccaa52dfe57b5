// credstore/memory_test.go
package credstore

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMemoryStoreGetSetClear(t *testing.T) {
	store := NewMemoryStore()

	_, ok := store.Get(KeyAccessToken)
	assert.False(t, ok, "empty store should report the key as absent")

	store.Set(KeyAccessToken, "token-1")
	value, ok := store.Get(KeyAccessToken)
	assert.True(t, ok)
	assert.Equal(t, "token-1", value)

	store.Set(KeyAccessToken, "token-2")
	value, _ = store.Get(KeyAccessToken)
	assert.Equal(t, "token-2", value, "Set should replace the previous value")

	store.Clear(KeyAccessToken)
	_, ok = store.Get(KeyAccessToken)
	assert.False(t, ok, "cleared key should be absent")
}

func TestMemoryStoreEmptyValueIsAbsent(t *testing.T) {
	store := NewMemoryStore()
	store.Set(KeyRefreshToken, "")

	_, ok := store.Get(KeyRefreshToken)
	assert.False(t, ok, "an empty stored value should be reported as absent")
}

func TestTokenPairHelpers(t *testing.T) {
	store := NewMemoryStore()

	WriteTokenPair(store, TokenPair{AccessToken: "acc", RefreshToken: "ref"})
	pair := ReadTokenPair(store)
	assert.Equal(t, "acc", pair.AccessToken)
	assert.Equal(t, "ref", pair.RefreshToken)

	ClearTokenPair(store)
	pair = ReadTokenPair(store)
	assert.Empty(t, pair.AccessToken)
	assert.Empty(t, pair.RefreshToken)
}

func TestMemoryStoreConcurrentAccess(t *testing.T) {
	store := NewMemoryStore()
	var wg sync.WaitGroup

	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			store.Set(KeyAccessToken, "token")
		}()
		go func() {
			defer wg.Done()
			store.Get(KeyAccessToken)
		}()
	}
	wg.Wait()

	value, ok := store.Get(KeyAccessToken)
	assert.True(t, ok)
	assert.Equal(t, "token", value)
}
