package models

import "time"

// User represents a registered account
type User struct {
	UserID         string `json:"user_id"`
	Username       string `json:"username"`
	PasswordDigest string `json:"-"`
}

// Auction represents an auction item together with its bidding state
type Auction struct {
	AuctionID     string    `json:"auction_id"`
	ItemName      string    `json:"item_name"`
	Description   string    `json:"description"`
	StartingBid   float64   `json:"starting_bid"`
	CurrentBid    float64   `json:"current_bid"`
	HighestBidder string    `json:"highest_bidder"` // user ID of the leading bidder, empty until a bid is accepted
	ClosingTime   time.Time `json:"closing_time"`
	IsClosed      bool      `json:"is_closed"`
	CreatedAt     time.Time `json:"created_at"`
}
