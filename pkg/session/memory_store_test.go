package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aiquest/classifier/pkg/value"
)

func TestInMemoryStore_CreateGetSave(t *testing.T) {
	store := NewInMemoryStore(time.Hour, time.Minute, nil)
	defer store.Close()

	mid := "M1"
	sess, err := store.Create(&mid, "en")
	require.NoError(t, err)
	assert.Equal(t, "en", sess.Lang)
	assert.Equal(t, "M1", *sess.CurrentModuleID)

	sess.Answers["q1"] = value.Bool(true)
	require.NoError(t, store.Save(sess))

	loaded, err := store.Get(sess.ID)
	require.NoError(t, err)
	assert.Equal(t, value.Bool(true), loaded.Answers["q1"])
}

func TestInMemoryStore_UnknownIDFails(t *testing.T) {
	store := NewInMemoryStore(time.Hour, time.Minute, nil)
	defer store.Close()

	_, err := store.Get("does-not-exist")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestInMemoryStore_JanitorEvictsExpired(t *testing.T) {
	store := NewInMemoryStore(20*time.Millisecond, 10*time.Millisecond, nil)
	defer store.Close()

	sess, err := store.Create(nil, "en")
	require.NoError(t, err)

	// Get refreshes last access, so poll less often than the TTL to let
	// the session go idle long enough for the janitor to evict it.
	require.Eventually(t, func() bool {
		_, err := store.Get(sess.ID)
		return err != nil
	}, time.Second, 50*time.Millisecond)
}

func TestInMemoryStore_GetReturnsIndependentCopy(t *testing.T) {
	store := NewInMemoryStore(time.Hour, time.Minute, nil)
	defer store.Close()

	sess, err := store.Create(nil, "en")
	require.NoError(t, err)

	loaded, err := store.Get(sess.ID)
	require.NoError(t, err)
	loaded.Answers["q1"] = value.Bool(true)

	reloaded, err := store.Get(sess.ID)
	require.NoError(t, err)
	_, ok := reloaded.Answers["q1"]
	assert.False(t, ok)
}
