package helpers

import "time"

// Request/Response DTOs
type CreateAuctionRequest struct {
	ItemName    string    `json:"item_name" binding:"required"`
	Description string    `json:"description" binding:"required"`
	StartingBid *float64  `json:"starting_bid" binding:"required,gte=0"` // pointer so an explicit 0 passes required
	ClosingTime time.Time `json:"closing_time" binding:"required"`
}

type PlaceBidRequest struct {
	Bid float64 `json:"bid" binding:"required,gt=0"`
}

// BidRejectedResponse carries the state the caller bid against when a bid is
// rejected as too low or the auction has closed.
type BidRejectedResponse struct {
	CurrentBid float64 `json:"current_bid"`
	Winner     string  `json:"winner,omitempty"`
	IsClosed   bool    `json:"is_closed"`
}
