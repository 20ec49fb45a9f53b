package jsonrpc

import (
	"context"
	"crypto/ed25519"
	"crypto/rand"
	"math"
	"testing"

	"github.com/creachadair/jrpc2"
	"github.com/stretchr/testify/require"

	"github.com/reflectoken/rtk/common"
	"github.com/reflectoken/rtk/program"
	"github.com/reflectoken/rtk/runtime"
	"github.com/reflectoken/rtk/store"
	"github.com/reflectoken/rtk/token"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	accStore, err := store.CreateAccountStore(&store.StoreConfig{
		Type:      store.BoltStoreType,
		Directory: t.TempDir(),
	})
	require.NoError(t, err)
	t.Cleanup(accStore.MustClose)

	host := runtime.NewHost(accStore, program.New(program.DefaultRent), "RTKProgram11111111111111111111")
	return NewServer(host, ":0")
}

func rentExempt() uint64 {
	return program.DefaultRent.MinimumBalance(token.EmptyPackedLen())
}

func TestInitializeAndBalance(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()

	result, err := s.Initialize(ctx, &initializeParams{
		StorageAddress: "storage1",
		TotalSupply:    3,
		FundLamports:   rentExempt(),
	})
	require.NoError(t, err)
	require.True(t, result.Ok)

	balance, err := s.Balance(ctx, &balanceParams{StorageAddress: "storage1", HolderIndex: 2})
	require.NoError(t, err)
	require.Equal(t, uint64(0), balance.Balance)

	supply, err := s.Supply(ctx, &supplyParams{StorageAddress: "storage1"})
	require.NoError(t, err)
	require.Equal(t, uint64(3), supply.TotalSupply)
	require.Equal(t, "0", supply.Circulating)
}

func TestInitializeUnderfunded(t *testing.T) {
	s := newTestServer(t)

	_, err := s.Initialize(context.Background(), &initializeParams{
		StorageAddress: "storage1",
		TotalSupply:    3,
		FundLamports:   rentExempt() - 1,
	})
	require.Error(t, err)

	rpcErr, ok := err.(*jrpc2.Error)
	require.True(t, ok)
	require.Equal(t, jrpc2.Code(-32005), rpcErr.Code) // insufficient_funds
}

func TestInitializeOversizedSupply(t *testing.T) {
	s := newTestServer(t)

	// a supply this large cannot even size the storage account buffer
	_, err := s.Initialize(context.Background(), &initializeParams{
		StorageAddress: "storage1",
		TotalSupply:    math.MaxUint64,
		FundLamports:   rentExempt(),
	})
	require.Error(t, err)

	rpcErr, ok := err.(*jrpc2.Error)
	require.True(t, ok)
	require.Equal(t, jrpc2.Code(-32003), rpcErr.Code) // invalid_argument
}

func TestSignedTransfer(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()

	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)
	senderAddr := runtime.AddressFromPubKey(pub)

	_, err = s.Initialize(ctx, &initializeParams{
		StorageAddress: "storage1", TotalSupply: 3, FundLamports: rentExempt(),
	})
	require.NoError(t, err)

	_, err = s.CreateAccount(ctx, &createAccountParams{Address: senderAddr, HolderIndex: 0})
	require.NoError(t, err)
	_, err = s.CreateAccount(ctx, &createAccountParams{Address: "recipient1", HolderIndex: 1})
	require.NoError(t, err)

	// zero-amount transfer is a legal no-op; it exercises the full signed path
	sig := ed25519.Sign(priv, program.EncodeTransfer(0))
	_, err = s.Transfer(ctx, &transferParams{
		StorageAddress:   "storage1",
		SenderAddress:    senderAddr,
		RecipientAddress: "recipient1",
		Amount:           0,
		SenderPubkey:     common.EncodeBytesToBase58(pub),
		Signature:        common.EncodeBytesToBase58(sig),
	})
	require.NoError(t, err)
}

func TestUnsignedTransferIsUnauthorized(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()

	_, err := s.Initialize(ctx, &initializeParams{
		StorageAddress: "storage1", TotalSupply: 2, FundLamports: rentExempt(),
	})
	require.NoError(t, err)
	_, err = s.CreateAccount(ctx, &createAccountParams{Address: "sender1", HolderIndex: 0})
	require.NoError(t, err)
	_, err = s.CreateAccount(ctx, &createAccountParams{Address: "recipient1", HolderIndex: 1})
	require.NoError(t, err)

	_, err = s.Transfer(ctx, &transferParams{
		StorageAddress:   "storage1",
		SenderAddress:    "sender1",
		RecipientAddress: "recipient1",
		Amount:           1,
	})
	require.Error(t, err)

	rpcErr, ok := err.(*jrpc2.Error)
	require.True(t, ok)
	require.Equal(t, jrpc2.Code(-32004), rpcErr.Code) // unauthorized
}

func TestGetAccountMissing(t *testing.T) {
	s := newTestServer(t)

	_, err := s.GetAccount(context.Background(), &accountParams{Address: "ghost"})
	require.Error(t, err)

	rpcErr, ok := err.(*jrpc2.Error)
	require.True(t, ok)
	require.Equal(t, jrpc2.Code(-32008), rpcErr.Code) // account_not_found
}
