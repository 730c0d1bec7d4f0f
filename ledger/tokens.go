package ledger

import (
	"errors"

	"github.com/ethereum/go-ethereum/common"
)

// TokenLedger is the external fungible-token collaborator. The engine only
// needs spendable-balance checks and transfers; everything else about the
// token (metadata, supply policy, general transfers) lives outside.
type TokenLedger interface {
	// SpendableOf returns the spendable balance of an address.
	SpendableOf(addr common.Address) uint64

	// Transfer moves amount from one address to another. It fails when the
	// sender's spendable balance is below amount, without any effect.
	Transfer(from, to common.Address, amount uint64) error

	// Mint credits an address out of thin air. Used for genesis
	// allocations on dev networks.
	Mint(addr common.Address, amount uint64)
}

// ErrTransferUnderflow is returned by MemLedger.Transfer when the sender
// cannot cover the amount. Engine operations check balances before
// transferring, so seeing this from inside the engine means a precondition
// was skipped.
var ErrTransferUnderflow = errors.New("transfer exceeds spendable balance")

// MemLedger is an in-memory TokenLedger for dev networks and tests.
type MemLedger struct {
	balances map[common.Address]uint64
}

var _ TokenLedger = (*MemLedger)(nil)

// NewMemLedger creates an empty in-memory token ledger.
func NewMemLedger() *MemLedger {
	return &MemLedger{
		balances: make(map[common.Address]uint64),
	}
}

// SpendableOf returns the balance of addr, 0 for unknown addresses.
func (l *MemLedger) SpendableOf(addr common.Address) uint64 {
	return l.balances[addr]
}

// Transfer moves amount between balances, all-or-nothing.
func (l *MemLedger) Transfer(from, to common.Address, amount uint64) error {
	if l.balances[from] < amount {
		return ErrTransferUnderflow
	}
	l.balances[from] -= amount
	l.balances[to] += amount
	return nil
}

// Mint credits addr with amount.
func (l *MemLedger) Mint(addr common.Address, amount uint64) {
	l.balances[addr] += amount
}
