package orderbook

// MatchResult describes one executed trade. Price is always the price
// of the order that was already resting in the book when the incoming
// order arrived.
type MatchResult struct {
	Symbol      string
	BuyOrderID  string
	SellOrderID string
	BuyAccount  string
	SellAccount string
	Price       float64
	Qty         int64
	TakerSide   Side // side of the incoming order that triggered the match
	Seq         uint64
}
