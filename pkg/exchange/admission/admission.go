package admission

import "github.com/tradecore/exchange/pkg/exchange/model"

// Rule validates a candidate order before it may touch the book.
// Rules have no side effects; a rejection leaves book and ledger
// untouched.
type Rule interface {
	Check(req *model.SubmitOrder) error
}
