package db

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func providers(t *testing.T) map[string]DatabaseProvider {
	t.Helper()
	boltProvider, err := NewBoltProvider(t.TempDir())
	require.NoError(t, err)
	levelProvider, err := NewLevelDBProvider(t.TempDir())
	require.NoError(t, err)
	return map[string]DatabaseProvider{
		"bolt":    boltProvider,
		"leveldb": levelProvider,
	}
}

func TestProviderRoundtrip(t *testing.T) {
	for name, provider := range providers(t) {
		t.Run(name, func(t *testing.T) {
			defer provider.Close()

			require.NoError(t, provider.Put([]byte("k1"), []byte("v1")))

			value, err := provider.Get([]byte("k1"))
			require.NoError(t, err)
			require.Equal(t, []byte("v1"), value)

			found, err := provider.Has([]byte("k1"))
			require.NoError(t, err)
			require.True(t, found)

			require.NoError(t, provider.Delete([]byte("k1")))
			found, err = provider.Has([]byte("k1"))
			require.NoError(t, err)
			require.False(t, found)
		})
	}
}

func TestProviderMissingKeyIsNil(t *testing.T) {
	for name, provider := range providers(t) {
		t.Run(name, func(t *testing.T) {
			defer provider.Close()

			value, err := provider.Get([]byte("missing"))
			require.NoError(t, err)
			require.Nil(t, value)
		})
	}
}

func TestProviderBatchWrite(t *testing.T) {
	for name, provider := range providers(t) {
		t.Run(name, func(t *testing.T) {
			defer provider.Close()

			batch := provider.Batch()
			batch.Put([]byte("a"), []byte("1"))
			batch.Put([]byte("b"), []byte("2"))
			require.NoError(t, batch.Write())
			batch.Close()

			value, err := provider.Get([]byte("b"))
			require.NoError(t, err)
			require.Equal(t, []byte("2"), value)
		})
	}
}
