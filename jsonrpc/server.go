package jsonrpc

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/creachadair/jrpc2"
	"github.com/creachadair/jrpc2/handler"
	"github.com/creachadair/jrpc2/jhttp"

	"github.com/reflectoken/rtk/common"
	"github.com/reflectoken/rtk/errors"
	"github.com/reflectoken/rtk/logx"
	"github.com/reflectoken/rtk/program"
	"github.com/reflectoken/rtk/runtime"
	"github.com/reflectoken/rtk/token"
)

// --- Error mapping ---

var rpcCodes = map[errors.ProgramErrorCode]int32{
	errors.ErrCodeInternal:            -32000,
	errors.ErrCodeMalformedInput:      -32001,
	errors.ErrCodeUnknownInstruction:  -32002,
	errors.ErrCodeInvalidArgument:     -32003,
	errors.ErrCodeUnauthorized:        -32004,
	errors.ErrCodeInsufficientFunds:   -32005,
	errors.ErrCodeIndexOutOfRange:     -32006,
	errors.ErrCodeInsufficientBalance: -32007,
	errors.ErrCodeAccountNotFound:     -32008,
}

func toJRPC2Error(err error) error {
	if err == nil {
		return nil
	}
	if pe, ok := err.(*errors.ProgramError); ok {
		code, found := rpcCodes[pe.Code]
		if !found {
			code = rpcCodes[errors.ErrCodeInternal]
		}
		return jrpc2.Errorf(jrpc2.Code(code), "%s", pe.Message).WithData(pe)
	}
	return jrpc2.Errorf(jrpc2.Code(rpcCodes[errors.ErrCodeInternal]), "%s", err.Error())
}

// --- Params/Results ---

type initializeParams struct {
	StorageAddress string `json:"storage_address"`
	TotalSupply    uint64 `json:"total_supply"`
	// FundLamports funds the storage account when the host has to create it;
	// underfunding surfaces the program's insufficient_funds error.
	FundLamports uint64 `json:"fund_lamports"`
}

type initializeResult struct {
	Ok             bool   `json:"ok"`
	StorageAddress string `json:"storage_address"`
	TotalSupply    uint64 `json:"total_supply"`
}

type transferParams struct {
	StorageAddress   string `json:"storage_address"`
	SenderAddress    string `json:"sender_address"`
	RecipientAddress string `json:"recipient_address"`
	Amount           uint64 `json:"amount"`
	// SenderPubkey/Signature prove the sender authorized this transfer; the
	// signature covers the encoded instruction bytes. Both are base58.
	SenderPubkey string `json:"sender_pubkey"`
	Signature    string `json:"signature"`
}

type transferResult struct {
	Ok     bool   `json:"ok"`
	Amount uint64 `json:"amount"`
}

type createAccountParams struct {
	Address     string `json:"address"`
	HolderIndex uint64 `json:"holder_index"`
	Lamports    uint64 `json:"lamports"`
}

type createAccountResult struct {
	Ok      bool   `json:"ok"`
	Address string `json:"address"`
}

type accountParams struct {
	Address string `json:"address"`
}

type accountResult struct {
	Address  string `json:"address"`
	Lamports uint64 `json:"lamports"`
	DataLen  int    `json:"data_len"`
}

type balanceParams struct {
	StorageAddress string `json:"storage_address"`
	HolderIndex    uint64 `json:"holder_index"`
}

type balanceResult struct {
	HolderIndex uint64 `json:"holder_index"`
	Balance     uint64 `json:"balance"`
}

type supplyParams struct {
	StorageAddress string `json:"storage_address"`
}

type supplyResult struct {
	TotalSupply uint64 `json:"total_supply"`
	// Circulating is decimal-encoded; the audit sum is 256-bit
	Circulating string `json:"circulating"`
}

// --- Server ---

type Server struct {
	host    *runtime.Host
	httpSrv *http.Server
	bridge  jhttp.Bridge
}

func NewServer(host *runtime.Host, listenAddr string) *Server {
	s := &Server{host: host}

	s.bridge = jhttp.NewBridge(handler.Map{
		"tx.initialize":   handler.New(s.Initialize),
		"tx.transfer":     handler.New(s.Transfer),
		"account.create":  handler.New(s.CreateAccount),
		"account.get":     handler.New(s.GetAccount),
		"account.balance": handler.New(s.Balance),
		"ledger.supply":   handler.New(s.Supply),
	}, nil)

	mux := http.NewServeMux()
	mux.Handle("/rpc", s.bridge)
	s.httpSrv = &http.Server{
		Addr:         listenAddr,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}
	return s
}

// Serve blocks until the listener fails or Shutdown is called.
func (s *Server) Serve() error {
	logx.Info("JSONRPC", fmt.Sprintf("Serving on %s", s.httpSrv.Addr))
	err := s.httpSrv.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

func (s *Server) Shutdown(ctx context.Context) error {
	defer s.bridge.Close()
	return s.httpSrv.Shutdown(ctx)
}

// --- Handlers ---

func (s *Server) Initialize(ctx context.Context, params *initializeParams) (*initializeResult, error) {
	if params.StorageAddress == "" {
		return nil, toJRPC2Error(errors.NewError(errors.ErrCodeMalformedInput, "storage_address is required"))
	}

	// the host creates and funds the storage account on first use; rent
	// enforcement stays inside the program
	existing, err := s.host.GetAccount(params.StorageAddress)
	if err != nil {
		return nil, toJRPC2Error(err)
	}
	if existing == nil {
		dataLen, ok := token.PackedLenFor(params.TotalSupply)
		if !ok {
			return nil, toJRPC2Error(errors.NewError(errors.ErrCodeInvalidArgument,
				fmt.Sprintf("total_supply %d exceeds the representable record size", params.TotalSupply)))
		}
		if err := s.host.CreateAccount(params.StorageAddress, params.FundLamports, dataLen); err != nil {
			return nil, toJRPC2Error(err)
		}
	}

	err = s.host.Invoke(ctx, program.EncodeInitialize(params.TotalSupply), []runtime.AccountMeta{
		{Address: params.StorageAddress, IsWritable: true},
	})
	if err != nil {
		return nil, toJRPC2Error(err)
	}
	return &initializeResult{Ok: true, StorageAddress: params.StorageAddress, TotalSupply: params.TotalSupply}, nil
}

func (s *Server) Transfer(ctx context.Context, params *transferParams) (*transferResult, error) {
	instruction := program.EncodeTransfer(params.Amount)

	isSigner := false
	if params.SenderPubkey != "" && params.Signature != "" {
		pubKey, err := common.DecodeBase58ToBytes(params.SenderPubkey)
		if err != nil {
			return nil, toJRPC2Error(errors.NewError(errors.ErrCodeMalformedInput, "sender_pubkey is not valid base58"))
		}
		sig, err := common.DecodeBase58ToBytes(params.Signature)
		if err != nil {
			return nil, toJRPC2Error(errors.NewError(errors.ErrCodeMalformedInput, "signature is not valid base58"))
		}
		isSigner = runtime.VerifySenderSignature(params.SenderAddress, pubKey, instruction, sig)
	}

	err := s.host.Invoke(ctx, instruction, []runtime.AccountMeta{
		{Address: params.StorageAddress, IsWritable: true},
		{Address: params.SenderAddress, IsSigner: isSigner, IsWritable: true},
		{Address: params.RecipientAddress, IsWritable: true},
	})
	if err != nil {
		return nil, toJRPC2Error(err)
	}
	return &transferResult{Ok: true, Amount: params.Amount}, nil
}

func (s *Server) CreateAccount(ctx context.Context, params *createAccountParams) (*createAccountResult, error) {
	if params.Address == "" {
		return nil, toJRPC2Error(errors.NewError(errors.ErrCodeMalformedInput, "address is required"))
	}
	if err := s.host.CreateHolderAccount(params.Address, params.HolderIndex, params.Lamports); err != nil {
		return nil, toJRPC2Error(err)
	}
	return &createAccountResult{Ok: true, Address: params.Address}, nil
}

func (s *Server) GetAccount(ctx context.Context, params *accountParams) (*accountResult, error) {
	account, err := s.host.GetAccount(params.Address)
	if err != nil {
		return nil, toJRPC2Error(err)
	}
	if account == nil {
		return nil, toJRPC2Error(errors.NewError(errors.ErrCodeAccountNotFound,
			fmt.Sprintf("account %s does not exist", params.Address)))
	}
	return &accountResult{Address: account.Address, Lamports: account.Lamports, DataLen: len(account.Data)}, nil
}

func (s *Server) Balance(ctx context.Context, params *balanceParams) (*balanceResult, error) {
	balance, err := s.host.BalanceAt(params.StorageAddress, params.HolderIndex)
	if err != nil {
		return nil, toJRPC2Error(err)
	}
	return &balanceResult{HolderIndex: params.HolderIndex, Balance: balance}, nil
}

func (s *Server) Supply(ctx context.Context, params *supplyParams) (*supplyResult, error) {
	ledger, err := s.host.LedgerAt(params.StorageAddress)
	if err != nil {
		return nil, toJRPC2Error(err)
	}
	return &supplyResult{
		TotalSupply: ledger.TotalSupply,
		Circulating: ledger.CirculatingSupply().Dec(),
	}, nil
}
