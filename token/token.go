package token

import (
	"errors"

	"github.com/holiman/uint256"
)

// ReflectionIndex is the balance slot every transfer fee accrues to.
const ReflectionIndex = 0

// reflectionDivisor derives the fee as one tenth of the transferred amount,
// truncating integer division.
const reflectionDivisor = 10

var (
	ErrIndexOutOfRange     = errors.New("holder index out of range")
	ErrInsufficientBalance = errors.New("insufficient balance")
)

// ReflectionToken is the balance table for one token instance. Index i holds
// the balance of holder i. TotalSupply is fixed at creation and equals the
// number of balance slots.
type ReflectionToken struct {
	TotalSupply uint64   `json:"total_supply"`
	Balances    []uint64 `json:"balances"`
}

// New constructs a ledger with totalSupply zeroed balance slots. A zero
// supply is legal and yields an empty ledger.
func New(totalSupply uint64) *ReflectionToken {
	return &ReflectionToken{
		TotalSupply: totalSupply,
		Balances:    make([]uint64, totalSupply),
	}
}

// Transfer moves amount from sender to recipient, redirecting one tenth of it
// to ReflectionIndex. Adjustments are ordered debit sender, credit recipient,
// credit reflection; preconditions are checked before the first one, so
// either all three apply or none do.
func (t *ReflectionToken) Transfer(senderIndex, recipientIndex uint64, amount uint64) error {
	holders := uint64(len(t.Balances))
	if senderIndex >= holders || recipientIndex >= holders {
		return ErrIndexOutOfRange
	}
	if t.Balances[senderIndex] < amount {
		return ErrInsufficientBalance
	}

	reflection := amount / reflectionDivisor
	delivered := amount - reflection

	t.Balances[senderIndex] -= amount
	t.Balances[recipientIndex] += delivered
	t.Balances[ReflectionIndex] += reflection
	return nil
}

// BalanceOf returns the balance at the given holder index.
func (t *ReflectionToken) BalanceOf(index uint64) (uint64, error) {
	if index >= uint64(len(t.Balances)) {
		return 0, ErrIndexOutOfRange
	}
	return t.Balances[index], nil
}

// CirculatingSupply sums every balance slot. The accumulator is 256-bit so
// the audit cannot overflow no matter what the slots hold.
func (t *ReflectionToken) CirculatingSupply() *uint256.Int {
	sum := uint256.NewInt(0)
	for _, balance := range t.Balances {
		sum.Add(sum, uint256.NewInt(balance))
	}
	return sum
}
