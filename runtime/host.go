package runtime

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	rtkerrors "github.com/reflectoken/rtk/errors"
	"github.com/reflectoken/rtk/logx"
	"github.com/reflectoken/rtk/program"
	"github.com/reflectoken/rtk/store"
	"github.com/reflectoken/rtk/token"
	"github.com/reflectoken/rtk/types"
)

var ErrAccountExisted = errors.New("account existed")

// AccountMeta names an account an invocation touches and the capabilities the
// submitter claims for it. The host attests IsSigner only after verifying the
// submitter's signature at the serving edge.
type AccountMeta struct {
	Address    string
	IsSigner   bool
	IsWritable bool
}

// Host is the execution environment around the program: it owns the account
// store, materializes handles for each invocation, and persists writable
// accounts only when the dispatch succeeds. Invocations are processed one at
// a time; the lock is the host's account-locking guarantee.
type Host struct {
	mu           sync.Mutex
	accountStore store.AccountStore
	program      *program.Program
	programAddr  string
}

func NewHost(accountStore store.AccountStore, prog *program.Program, programAddr string) *Host {
	return &Host{
		accountStore: accountStore,
		program:      prog,
		programAddr:  programAddr,
	}
}

// Invoke runs one atomic invocation: load the named accounts, dispatch, and
// flush writable accounts back to the store. On any error nothing persists.
func (h *Host) Invoke(ctx context.Context, instructionData []byte, metas []AccountMeta) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	invocationID := uuid.NewString()

	// handle 0 is the program's own identity; the dispatcher skips it
	handles := make([]*types.AccountHandle, 0, len(metas)+1)
	handles = append(handles, &types.AccountHandle{Address: h.programAddr})

	for _, meta := range metas {
		account, err := h.accountStore.GetByAddr(meta.Address)
		if err != nil {
			return fmt.Errorf("could not load account %s: %w", meta.Address, err)
		}
		if account == nil {
			return rtkerrors.NewError(rtkerrors.ErrCodeAccountNotFound,
				fmt.Sprintf("account %s does not exist", meta.Address))
		}
		handles = append(handles, account.Handle(meta.IsSigner, meta.IsWritable))
	}

	if err := h.program.Dispatch(instructionData, handles); err != nil {
		logx.Warn("RUNTIME", fmt.Sprintf("Invocation %s failed: %v", invocationID, err))
		return err
	}

	// flush writable handles; the dispatch already succeeded, so this is the
	// commit point of the invocation
	dirty := make([]*types.Account, 0, len(metas))
	for _, handle := range handles[1:] {
		if !handle.IsWritable {
			continue
		}
		dirty = append(dirty, &types.Account{
			Address:  handle.Address,
			Lamports: handle.Lamports,
			Data:     handle.Data,
		})
	}
	if len(dirty) > 0 {
		if err := h.accountStore.StoreBatch(dirty); err != nil {
			return fmt.Errorf("could not persist invocation %s: %w", invocationID, err)
		}
	}

	logx.Info("RUNTIME", fmt.Sprintf("Invocation %s committed (%d accounts flushed)", invocationID, len(dirty)))
	return nil
}

// CreateAccount creates a funded account with a zeroed data buffer of
// dataLen bytes. Funding accounts is host business, not program business.
func (h *Host) CreateAccount(addr string, lamports uint64, dataLen int) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	existed, err := h.accountStore.ExistsByAddr(addr)
	if err != nil {
		return fmt.Errorf("could not check existence of account: %w", err)
	}
	if existed {
		return ErrAccountExisted
	}

	account := &types.Account{
		Address:  addr,
		Lamports: lamports,
		Data:     make([]byte, dataLen),
	}
	if err := h.accountStore.Store(account); err != nil {
		return fmt.Errorf("failed to store account: %w", err)
	}
	return nil
}

// CreateHolderAccount creates an account carrying an identity record that
// binds addr to a ledger holder index.
func (h *Host) CreateHolderAccount(addr string, holderIndex uint64, lamports uint64) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	existed, err := h.accountStore.ExistsByAddr(addr)
	if err != nil {
		return fmt.Errorf("could not check existence of account: %w", err)
	}
	if existed {
		return ErrAccountExisted
	}

	data := make([]byte, program.IdentityRecordLen)
	if err := program.WriteIdentityRecord(data, holderIndex); err != nil {
		return err
	}
	account := &types.Account{
		Address:  addr,
		Lamports: lamports,
		Data:     data,
	}
	if err := h.accountStore.Store(account); err != nil {
		return fmt.Errorf("failed to store account: %w", err)
	}
	return nil
}

// GetAccount returns the account for addr (nil if not exist)
func (h *Host) GetAccount(addr string) (*types.Account, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.accountStore.GetByAddr(addr)
}

// LedgerAt decodes the ledger persisted in the storage account at addr.
func (h *Host) LedgerAt(addr string) (*token.ReflectionToken, error) {
	account, err := h.GetAccount(addr)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, rtkerrors.NewError(rtkerrors.ErrCodeAccountNotFound,
			fmt.Sprintf("storage account %s does not exist", addr))
	}
	ledger, err := token.Unmarshal(account.Data)
	if err != nil {
		return nil, rtkerrors.NewError(rtkerrors.ErrCodeMalformedInput,
			fmt.Sprintf("storage account %s: %v", addr, err))
	}
	return ledger, nil
}

// BalanceAt returns the balance of one holder index in the ledger at addr.
func (h *Host) BalanceAt(addr string, index uint64) (uint64, error) {
	ledger, err := h.LedgerAt(addr)
	if err != nil {
		return 0, err
	}
	balance, err := ledger.BalanceOf(index)
	if err != nil {
		return 0, rtkerrors.NewError(rtkerrors.ErrCodeIndexOutOfRange,
			fmt.Sprintf("holder index %d out of range for %d holders", index, len(ledger.Balances)))
	}
	return balance, nil
}
