package types

// Account is the persisted host-side record backing one on-ledger account:
// a native-currency balance plus an opaque data buffer. The ledger itself
// lives inside the storage account's Data; holder accounts carry an identity
// record there instead.
type Account struct {
	Address  string `json:"address"`
	Lamports uint64 `json:"lamports"`
	Data     []byte `json:"data"`
}

// AccountHandle is one invocation's view of an account: the persisted state
// plus the capability flags the host attests for this invocation. Data is an
// invocation-scoped copy; the host flushes it back only when the dispatch
// succeeds.
type AccountHandle struct {
	Address    string
	IsSigner   bool
	IsWritable bool
	Lamports   uint64
	Data       []byte
}

// Handle builds an invocation handle over a copy of the account's data.
func (a *Account) Handle(isSigner, isWritable bool) *AccountHandle {
	data := make([]byte, len(a.Data))
	copy(data, a.Data)
	return &AccountHandle{
		Address:    a.Address,
		IsSigner:   isSigner,
		IsWritable: isWritable,
		Lamports:   a.Lamports,
		Data:       data,
	}
}
