package store

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/reflectoken/rtk/types"
)

func newTestStore(t *testing.T, storeType StoreType) AccountStore {
	t.Helper()
	accStore, err := CreateAccountStore(&StoreConfig{Type: storeType, Directory: t.TempDir()})
	require.NoError(t, err)
	t.Cleanup(accStore.MustClose)
	return accStore
}

func TestAccountStoreRoundtrip(t *testing.T) {
	for _, storeType := range []StoreType{BoltStoreType, LevelDBStoreType} {
		t.Run(string(storeType), func(t *testing.T) {
			accStore := newTestStore(t, storeType)

			account := &types.Account{Address: "addr1", Lamports: 1000, Data: []byte{1, 2, 3}}
			require.NoError(t, accStore.Store(account))

			loaded, err := accStore.GetByAddr("addr1")
			require.NoError(t, err)
			require.Equal(t, account.Lamports, loaded.Lamports)
			require.Equal(t, account.Data, loaded.Data)

			exists, err := accStore.ExistsByAddr("addr1")
			require.NoError(t, err)
			require.True(t, exists)
		})
	}
}

func TestAccountStoreMissingAccountIsNil(t *testing.T) {
	accStore := newTestStore(t, BoltStoreType)

	loaded, err := accStore.GetByAddr("nobody")
	require.NoError(t, err)
	require.Nil(t, loaded)

	exists, err := accStore.ExistsByAddr("nobody")
	require.NoError(t, err)
	require.False(t, exists)
}

func TestAccountStoreBatch(t *testing.T) {
	accStore := newTestStore(t, BoltStoreType)

	accounts := []*types.Account{
		{Address: "a", Lamports: 1},
		{Address: "b", Lamports: 2},
	}
	require.NoError(t, accStore.StoreBatch(accounts))

	for _, account := range accounts {
		loaded, err := accStore.GetByAddr(account.Address)
		require.NoError(t, err)
		require.Equal(t, account.Lamports, loaded.Lamports)
	}
}

func TestStoreConfigValidate(t *testing.T) {
	cases := []struct {
		config StoreConfig
		ok     bool
	}{
		{StoreConfig{Type: BoltStoreType, Directory: "d"}, true},
		{StoreConfig{Type: LevelDBStoreType, Directory: "d"}, true},
		{StoreConfig{Type: "", Directory: "d"}, false},
		{StoreConfig{Type: BoltStoreType, Directory: ""}, false},
		{StoreConfig{Type: "redis", Directory: "d"}, false},
	}
	for _, tc := range cases {
		err := tc.config.Validate()
		if tc.ok {
			require.NoError(t, err)
		} else {
			require.Error(t, err)
		}
	}
}
