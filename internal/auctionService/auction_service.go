package auction

import (
	"errors"
	"fmt"
	"time"

	"github.com/Karmugilan015/aution-platform/internal/auctionerrors"
	"github.com/Karmugilan015/aution-platform/internal/models"
	"github.com/Karmugilan015/aution-platform/internal/repository"
	"github.com/Karmugilan015/aution-platform/utils"
)

// EffectiveState is an auction's true open/closed status computed from its
// closing time, possibly ahead of what is persisted.
type EffectiveState string

const (
	StateOpen   EffectiveState = "open"
	StateClosed EffectiveState = "closed"
)

// maxBidAttempts bounds the compare-and-swap retry loop when concurrent
// bidders race on the same auction.
const maxBidAttempts = 3

// Evaluate computes an auction's effective state at the given instant. The
// returned dirty flag is true when the stored record still says open but the
// closing time has passed, meaning the caller must persist the transition.
// Evaluate never touches the store.
func Evaluate(auction models.Auction, now time.Time) (EffectiveState, bool) {
	if auction.IsClosed {
		return StateClosed, false
	}
	if !now.Before(auction.ClosingTime) {
		return StateClosed, true
	}
	return StateOpen, false
}

// AuctionService implements the auction lifecycle: creation, lazy expiry on
// every read or bid, and the bid acceptance rules.
type AuctionService struct {
	store repository.AuctionStore
	now   func() time.Time
}

// NewAuctionService creates a new AuctionService instance
func NewAuctionService(store repository.AuctionStore) *AuctionService {
	return &AuctionService{
		store: store,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// CreateAuction validates the input and stores a new open auction whose
// current bid starts at the starting bid.
func (s *AuctionService) CreateAuction(itemName, description string, startingBid float64, closingTime time.Time) (models.Auction, error) {
	if itemName == "" || description == "" {
		return models.Auction{}, fmt.Errorf("service: %w - missing item name or description", auctionerrors.ErrInvalidInput)
	}
	if startingBid < 0 {
		return models.Auction{}, fmt.Errorf("service: %w - negative starting bid", auctionerrors.ErrInvalidInput)
	}
	if closingTime.IsZero() {
		return models.Auction{}, fmt.Errorf("service: %w - missing closing time", auctionerrors.ErrInvalidInput)
	}

	auction := models.Auction{
		AuctionID:   utils.GenerateID(),
		ItemName:    itemName,
		Description: description,
		StartingBid: startingBid,
		CurrentBid:  startingBid,
		ClosingTime: closingTime.UTC(),
		CreatedAt:   s.now(),
	}

	if err := s.store.CreateAuction(auction); err != nil {
		return models.Auction{}, fmt.Errorf("service: failed to create auction for item %s: %w", itemName, err)
	}

	return auction, nil
}

// GetAuction returns a single auction, persisting the Open->Closed transition
// when the closing time has passed. Viewing an expired auction writes.
func (s *AuctionService) GetAuction(auctionID string) (models.Auction, error) {
	if auctionID == "" {
		return models.Auction{}, fmt.Errorf("service: %w - empty auction ID", auctionerrors.ErrInvalidInput)
	}

	auction, err := s.store.GetAuction(auctionID)
	if err != nil {
		return models.Auction{}, fmt.Errorf("service: failed to get auction %s: %w", auctionID, err)
	}

	auction, _, err = s.settle(auction)
	if err != nil {
		return models.Auction{}, err
	}
	return auction, nil
}

// ListAuctions returns all auctions, settling any that expired since their
// last access so listings never show an expired auction as open.
func (s *AuctionService) ListAuctions() ([]models.Auction, error) {
	auctions, err := s.store.ListAuctions()
	if err != nil {
		return nil, fmt.Errorf("service: failed to list auctions: %w", err)
	}

	for i := range auctions {
		settled, _, err := s.settle(auctions[i])
		if err != nil {
			return nil, err
		}
		auctions[i] = settled
	}
	return auctions, nil
}

// PlaceBid applies the bid rules in strict order: expired auctions are closed
// and reject the bid, amounts at or below the current bid are rejected, and
// an accepted bid is written with a compare-and-swap so a concurrent lower
// bid can never overwrite a higher one. On ErrAuctionClosed and ErrBidTooLow
// the returned auction carries the state the caller bid against.
func (s *AuctionService) PlaceBid(auctionID, bidderID string, amount float64) (models.Auction, error) {
	if auctionID == "" || bidderID == "" {
		return models.Auction{}, fmt.Errorf("service: %w - missing auctionID or bidderID", auctionerrors.ErrInvalidInput)
	}
	if amount <= 0 {
		return models.Auction{}, fmt.Errorf("service: %w - non-positive bid amount", auctionerrors.ErrInvalidInput)
	}

	for attempt := 0; attempt < maxBidAttempts; attempt++ {
		auction, err := s.store.GetAuction(auctionID)
		if err != nil {
			return models.Auction{}, fmt.Errorf("service: failed to get auction %s: %w", auctionID, err)
		}

		auction, state, err := s.settle(auction)
		if err != nil {
			return models.Auction{}, err
		}
		if state == StateClosed {
			return auction, fmt.Errorf("service: %w", auctionerrors.ErrAuctionClosed)
		}
		if amount <= auction.CurrentBid {
			return auction, fmt.Errorf("service: %w - current highest bid is %.2f", auctionerrors.ErrBidTooLow, auction.CurrentBid)
		}

		err = s.store.CompareAndSwapBid(auctionID, auction.CurrentBid, amount, bidderID)
		if err == nil {
			auction.CurrentBid = amount
			auction.HighestBidder = bidderID
			return auction, nil
		}
		if !errors.Is(err, auctionerrors.ErrBidConflict) {
			return models.Auction{}, fmt.Errorf("service: failed to record bid for auction %s by user %s: %w", auctionID, bidderID, err)
		}
		// lost the race, re-read and try again
	}

	return models.Auction{}, fmt.Errorf("service: %w after %d attempts", auctionerrors.ErrBidConflict, maxBidAttempts)
}

// CloseExpired settles every stored auction once and reports how many
// Open->Closed transitions it persisted. Safe to run on a ticker.
func (s *AuctionService) CloseExpired() (int, error) {
	auctions, err := s.store.ListAuctions()
	if err != nil {
		return 0, fmt.Errorf("service: failed to list auctions: %w", err)
	}

	closed := 0
	for _, auction := range auctions {
		_, dirty := Evaluate(auction, s.now())
		if !dirty {
			continue
		}
		if err := s.store.MarkAuctionClosed(auction.AuctionID); err != nil {
			return closed, fmt.Errorf("service: failed to close auction %s: %w", auction.AuctionID, err)
		}
		closed++
	}
	return closed, nil
}

// settle evaluates an auction and persists the closing transition when dirty.
func (s *AuctionService) settle(auction models.Auction) (models.Auction, EffectiveState, error) {
	state, dirty := Evaluate(auction, s.now())
	if dirty {
		if err := s.store.MarkAuctionClosed(auction.AuctionID); err != nil {
			return auction, state, fmt.Errorf("service: failed to close auction %s: %w", auction.AuctionID, err)
		}
		auction.IsClosed = true
	}
	return auction, state, nil
}
