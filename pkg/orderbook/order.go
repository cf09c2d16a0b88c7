package orderbook

type Side string

const (
	BUY  Side = "BUY"
	SELL Side = "SELL"
)

// Opposite returns the counter side.
func (s Side) Opposite() Side {
	if s == BUY {
		return SELL
	}
	return BUY
}

type OrderCategory string

const (
	LIMIT  OrderCategory = "LIMIT"
	MARKET OrderCategory = "MARKET"
)

type TimeInForce string

const (
	GTC TimeInForce = "GTC"
	IOC TimeInForce = "IOC"
)

type Order struct {
	ID       string
	Symbol   string
	Account  string
	Side     Side
	Price    float64 // meaningless for MARKET
	Qty      int64   // remaining quantity, decremented by matching
	OrigQty  int64   // original quantity, kept for audit
	Category OrderCategory
	TIF      TimeInForce // empty means GTC

	seq uint64 // arrival sequence, assigned by the book
}

// Seq returns the arrival sequence number assigned when the order
// entered its book. Zero until then.
func (o *Order) Seq() uint64 {
	return o.seq
}
