package ledger

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestSettleMovesBothBalances(t *testing.T) {
	l := NewLedger()
	_ = l.CreateAccount("buyer", decimal.NewFromInt(10000))
	_ = l.CreateAccount("seller", decimal.NewFromInt(2000))

	amount := decimal.NewFromFloat(4470)
	if err := l.Settle("buyer", "seller", amount); err != nil {
		t.Fatalf("settle failed: %v", err)
	}

	buyerBal, _ := l.Balance("buyer")
	sellerBal, _ := l.Balance("seller")

	if !buyerBal.Equal(decimal.NewFromInt(5530)) {
		t.Errorf("expected buyer balance 5530, got %s", buyerBal)
	}
	if !sellerBal.Equal(decimal.NewFromInt(6470)) {
		t.Errorf("expected seller balance 6470, got %s", sellerBal)
	}

	// sum of balances is invariant across a settlement
	if sum := buyerBal.Add(sellerBal); !sum.Equal(decimal.NewFromInt(12000)) {
		t.Errorf("balance sum changed: %s", sum)
	}
}

func TestSettleUnknownAccountLeavesNoHalfState(t *testing.T) {
	l := NewLedger()
	_ = l.CreateAccount("buyer", decimal.NewFromInt(100))

	if err := l.Settle("buyer", "ghost", decimal.NewFromInt(50)); err != ErrAccountNotFound {
		t.Fatalf("expected ErrAccountNotFound, got %v", err)
	}

	bal, _ := l.Balance("buyer")
	if !bal.Equal(decimal.NewFromInt(100)) {
		t.Errorf("buyer balance must be untouched, got %s", bal)
	}
}

func TestCreateAccountTwice(t *testing.T) {
	l := NewLedger()
	if err := l.CreateAccount("a", decimal.Zero); err != nil {
		t.Fatalf("first create failed: %v", err)
	}
	if err := l.CreateAccount("a", decimal.Zero); err != ErrAccountExists {
		t.Fatalf("expected ErrAccountExists, got %v", err)
	}
}

func TestDeposit(t *testing.T) {
	l := NewLedger()
	_ = l.CreateAccount("a", decimal.NewFromInt(10))

	if err := l.Deposit("a", decimal.NewFromInt(5)); err != nil {
		t.Fatalf("deposit failed: %v", err)
	}
	bal, _ := l.Balance("a")
	if !bal.Equal(decimal.NewFromInt(15)) {
		t.Errorf("expected 15, got %s", bal)
	}

	if err := l.Deposit("a", decimal.NewFromInt(-1)); err != ErrNegativeAmount {
		t.Fatalf("expected ErrNegativeAmount, got %v", err)
	}
	if err := l.Deposit("missing", decimal.NewFromInt(1)); err != ErrAccountNotFound {
		t.Fatalf("expected ErrAccountNotFound, got %v", err)
	}
}
