package ledger

import (
	"sync"

	"github.com/shopspring/decimal"
)

// Ledger holds one cash balance per participant. The only mutation the
// matching path performs is Settle, which applies the buyer debit and
// seller credit inside a single critical section.
type Ledger struct {
	mu       sync.RWMutex
	balances map[string]decimal.Decimal
}

func NewLedger() *Ledger {
	return &Ledger{
		balances: make(map[string]decimal.Decimal),
	}
}

func (l *Ledger) CreateAccount(account string, initial decimal.Decimal) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.balances[account]; ok {
		return ErrAccountExists
	}
	l.balances[account] = initial
	return nil
}

func (l *Ledger) Deposit(account string, amount decimal.Decimal) error {
	if amount.IsNegative() {
		return ErrNegativeAmount
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	bal, ok := l.balances[account]
	if !ok {
		return ErrAccountNotFound
	}
	l.balances[account] = bal.Add(amount)
	return nil
}

func (l *Ledger) Balance(account string) (decimal.Decimal, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	bal, ok := l.balances[account]
	if !ok {
		return decimal.Zero, ErrAccountNotFound
	}
	return bal, nil
}

// Settle moves amount from buyer to seller. Both mutations apply
// together or not at all: unknown accounts fail before any write.
func (l *Ledger) Settle(buyer, seller string, amount decimal.Decimal) error {
	if amount.IsNegative() {
		return ErrNegativeAmount
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	buyerBal, ok := l.balances[buyer]
	if !ok {
		return ErrAccountNotFound
	}
	sellerBal, ok := l.balances[seller]
	if !ok {
		return ErrAccountNotFound
	}

	l.balances[buyer] = buyerBal.Sub(amount)
	l.balances[seller] = sellerBal.Add(amount)
	return nil
}
