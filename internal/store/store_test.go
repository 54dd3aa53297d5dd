package store

import (
	"testing"

	"github.com/stretchr/testify/require"
	bolt "go.etcd.io/bbolt"

	"github.com/pixelfall/galleria/internal/log"
)

func TestStore_SetGetRemove(t *testing.T) {
	s, err := Open(t.TempDir(), log.NullLogger())
	require.NoError(t, err)
	defer s.Close()

	type payload struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}

	var got payload
	require.False(t, s.Get("missing", &got))

	s.Set("p", payload{Name: "cats", Count: 3})
	require.True(t, s.Get("p", &got))
	require.Equal(t, payload{Name: "cats", Count: 3}, got)

	s.Remove("p")
	require.False(t, s.Get("p", &payload{}))
}

func TestStore_PersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()

	s, err := Open(dir, log.NullLogger())
	require.NoError(t, err)
	s.Set("query", "mountain lake")
	require.NoError(t, s.Close())

	s2, err := Open(dir, log.NullLogger())
	require.NoError(t, err)
	defer s2.Close()

	var query string
	require.True(t, s2.Get("query", &query))
	require.Equal(t, "mountain lake", query)
}

func TestStore_MemoryOnlyMode(t *testing.T) {
	s, err := Open("", log.NullLogger())
	require.NoError(t, err)
	defer s.Close()

	s.Set("k", 42)

	var v int
	require.True(t, s.Get("k", &v))
	require.Equal(t, 42, v)

	s.Remove("k")
	require.False(t, s.Get("k", &v))
}

func TestStore_CorruptValueReportsAbsent(t *testing.T) {
	dir := t.TempDir()

	s, err := Open(dir, log.NullLogger())
	require.NoError(t, err)

	// Plant a non-JSON value behind the adapter's back.
	err = s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketState).Put([]byte("broken"), []byte("{not json"))
	})
	require.NoError(t, err)

	var v map[string]string
	require.False(t, s.Get("broken", &v))
	require.NoError(t, s.Close())
}

func TestStore_FailedWriteStillVisibleInSession(t *testing.T) {
	s, err := Open(t.TempDir(), log.NullLogger())
	require.NoError(t, err)

	// Kill the database so every write fails from here on.
	require.NoError(t, s.db.Close())

	require.NotPanics(t, func() {
		s.Set("k", "still here")
	})

	// The overlay keeps the attempted change for the rest of the session.
	var v string
	require.True(t, s.Get("k", &v))
	require.Equal(t, "still here", v)
}

func TestStore_UnencodableValueIgnored(t *testing.T) {
	s, err := Open("", log.NullLogger())
	require.NoError(t, err)
	defer s.Close()

	require.NotPanics(t, func() {
		s.Set("bad", func() {}) // not JSON-encodable
	})
	require.False(t, s.Get("bad", &struct{}{}))
}
