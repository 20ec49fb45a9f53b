package program

import (
	"bytes"
	"encoding/binary"
	stderrors "errors"
	"fmt"

	"github.com/reflectoken/rtk/errors"
	"github.com/reflectoken/rtk/logx"
	"github.com/reflectoken/rtk/token"
	"github.com/reflectoken/rtk/types"
)

// Account positions within a dispatch. The first handle is the program's own
// identity and is skipped; the second is the ledger storage account. Transfer
// additionally takes the sender and recipient handles.
const (
	storageAccountPos   = 1
	minAccounts         = 2
	transferAccounts    = 4
	senderAccountPos    = 2
	recipientAccountPos = 3
)

// Identity record layout inside a holder account's own data buffer: bytes
// 0..8 are a record header (version, reserved), bytes 8..16 hold the
// holder's ledger index as LE u64. Binding the index to account-owned data
// ties a transfer to host-authenticated identities rather than numbers in
// the instruction buffer.
const (
	IdentityRecordLen     = 16
	IdentityRecordVersion = 1

	holderIndexOffset = 8
)

// WriteIdentityRecord fills buf with a holder identity record for index.
func WriteIdentityRecord(buf []byte, index uint64) error {
	if len(buf) < IdentityRecordLen {
		return fmt.Errorf("identity record needs %d bytes, buffer has %d", IdentityRecordLen, len(buf))
	}
	binary.LittleEndian.PutUint64(buf[0:holderIndexOffset], IdentityRecordVersion)
	binary.LittleEndian.PutUint64(buf[holderIndexOffset:IdentityRecordLen], index)
	return nil
}

// Program dispatches instruction buffers against ledger storage accounts.
// It holds no state between invocations beyond the rent parameters.
type Program struct {
	rent Rent
}

func New(rent Rent) *Program {
	return &Program{rent: rent}
}

// Dispatch decodes instructionData, validates the supplied account handles
// and applies the requested operation. The storage account's bytes are only
// written as the final action of a fully validated operation; every failure
// leaves them untouched.
func (p *Program) Dispatch(instructionData []byte, accounts []*types.AccountHandle) error {
	if len(accounts) < minAccounts {
		return errors.NewError(errors.ErrCodeMalformedInput,
			fmt.Sprintf("need at least %d account handles, got %d", minAccounts, len(accounts)))
	}
	if len(instructionData) < tagWidth {
		return errors.NewError(errors.ErrCodeMalformedInput,
			fmt.Sprintf("instruction buffer is %d bytes, tag needs %d", len(instructionData), tagWidth))
	}

	storage := accounts[storageAccountPos]
	tag := instructionData[:tagWidth]
	switch {
	case bytes.Equal(tag, initializeTag):
		return p.initialize(instructionData, storage)
	case bytes.Equal(tag, transferTag):
		return p.transfer(instructionData, storage, accounts)
	default:
		return errors.NewError(errors.ErrCodeUnknownInstruction,
			fmt.Sprintf("unknown instruction tag %q", tag))
	}
}

func (p *Program) initialize(instructionData []byte, storage *types.AccountHandle) error {
	if len(instructionData) < initializeLen {
		return errors.NewError(errors.ErrCodeMalformedInput,
			fmt.Sprintf("initialize instruction is %d bytes, want %d", len(instructionData), initializeLen))
	}
	if !storage.IsWritable {
		return errors.NewError(errors.ErrCodeUnauthorized,
			fmt.Sprintf("storage account %s must be writable", storage.Address))
	}

	required := p.rent.MinimumBalance(token.EmptyPackedLen())
	if storage.Lamports < required {
		return errors.NewError(errors.ErrCodeInsufficientFunds,
			fmt.Sprintf("storage account %s holds %d lamports, rent exemption needs %d",
				storage.Address, storage.Lamports, required))
	}

	// bound the supply by the storage buffer before allocating the balance table
	totalSupply := binary.LittleEndian.Uint64(instructionData[supplyOffset : supplyOffset+8])
	if totalSupply > token.MaxHolders(len(storage.Data)) {
		return errors.NewError(errors.ErrCodeMalformedInput,
			fmt.Sprintf("storage buffer of %s is %d bytes, cannot hold %d balance slots",
				storage.Address, len(storage.Data), totalSupply))
	}
	ledger := token.New(totalSupply)
	if err := p.flush(ledger, storage); err != nil {
		return err
	}
	logx.Info("PROGRAM", fmt.Sprintf("Initialized ledger in %s with supply %d", storage.Address, totalSupply))
	return nil
}

func (p *Program) transfer(instructionData []byte, storage *types.AccountHandle, accounts []*types.AccountHandle) error {
	if len(accounts) < transferAccounts {
		return errors.NewError(errors.ErrCodeMalformedInput,
			fmt.Sprintf("transfer needs %d account handles, got %d", transferAccounts, len(accounts)))
	}
	if len(instructionData) < transferLen {
		return errors.NewError(errors.ErrCodeMalformedInput,
			fmt.Sprintf("transfer instruction is %d bytes, want %d", len(instructionData), transferLen))
	}

	sender := accounts[senderAccountPos]
	recipient := accounts[recipientAccountPos]

	if !sender.IsSigner || !sender.IsWritable {
		return errors.NewError(errors.ErrCodeUnauthorized,
			fmt.Sprintf("sender %s must sign and be writable", sender.Address))
	}
	if !recipient.IsWritable {
		return errors.NewError(errors.ErrCodeUnauthorized,
			fmt.Sprintf("recipient %s must be writable", recipient.Address))
	}
	if !storage.IsWritable {
		return errors.NewError(errors.ErrCodeUnauthorized,
			fmt.Sprintf("storage account %s must be writable", storage.Address))
	}

	senderIndex, err := holderIndex(sender)
	if err != nil {
		return err
	}
	recipientIndex, err := holderIndex(recipient)
	if err != nil {
		return err
	}

	ledger, err := token.Unmarshal(storage.Data)
	if err != nil {
		return errors.NewError(errors.ErrCodeMalformedInput,
			fmt.Sprintf("storage account %s: %v", storage.Address, err))
	}

	holders := uint64(len(ledger.Balances))
	if senderIndex >= holders || recipientIndex >= holders {
		return errors.NewError(errors.ErrCodeInvalidArgument,
			fmt.Sprintf("holder indices %d, %d out of bounds for %d holders", senderIndex, recipientIndex, holders))
	}

	amount := binary.LittleEndian.Uint64(instructionData[amountOffset : amountOffset+8])
	if err := ledger.Transfer(senderIndex, recipientIndex, amount); err != nil {
		switch {
		case stderrors.Is(err, token.ErrIndexOutOfRange):
			return errors.NewError(errors.ErrCodeIndexOutOfRange, err.Error())
		case stderrors.Is(err, token.ErrInsufficientBalance):
			return errors.NewError(errors.ErrCodeInsufficientBalance,
				fmt.Sprintf("holder %d cannot cover %d", senderIndex, amount))
		default:
			return errors.NewError(errors.ErrCodeInternal, err.Error())
		}
	}

	if err := p.flush(ledger, storage); err != nil {
		return err
	}
	logx.Info("PROGRAM", fmt.Sprintf("Transferred %d from holder %d to holder %d", amount, senderIndex, recipientIndex))
	return nil
}

// flush serializes the ledger into the storage handle's buffer. The size
// check precedes the copy so a failed flush never partially writes.
func (p *Program) flush(ledger *token.ReflectionToken, storage *types.AccountHandle) error {
	record := ledger.Marshal()
	if len(storage.Data) < len(record) {
		return errors.NewError(errors.ErrCodeMalformedInput,
			fmt.Sprintf("storage buffer of %s is %d bytes, ledger record needs %d",
				storage.Address, len(storage.Data), len(record)))
	}
	copy(storage.Data, record)
	return nil
}

func holderIndex(handle *types.AccountHandle) (uint64, error) {
	if len(handle.Data) < IdentityRecordLen {
		return 0, errors.NewError(errors.ErrCodeMalformedInput,
			fmt.Sprintf("identity record of %s is %d bytes, want %d", handle.Address, len(handle.Data), IdentityRecordLen))
	}
	return binary.LittleEndian.Uint64(handle.Data[holderIndexOffset:IdentityRecordLen]), nil
}
