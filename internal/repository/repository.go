package repository

import (
	"fmt"
	"sync"

	"github.com/Karmugilan015/aution-platform/internal/auctionerrors"
	model "github.com/Karmugilan015/aution-platform/internal/models"
)

// AuctionStore defines the auction record storage interface
type AuctionStore interface {
	CreateAuction(auction model.Auction) error
	GetAuction(auctionID string) (model.Auction, error)
	ListAuctions() ([]model.Auction, error)
	// MarkAuctionClosed flips is_closed to true. Idempotent; the flag never reverts.
	MarkAuctionClosed(auctionID string) error
	// CompareAndSwapBid records a new leading bid only if the stored current
	// bid still equals expectedBid and the auction is not closed. Returns
	// ErrBidConflict when another writer got there first.
	CompareAndSwapBid(auctionID string, expectedBid, amount float64, bidderID string) error
}

// UserStore defines the credential storage interface
type UserStore interface {
	CreateUser(user model.User) error
	GetUserByUsername(username string) (model.User, error)
	GetUserByID(userID string) (model.User, error)
}

// MemoryStore is a concurrency-safe in-memory implementation of AuctionStore
// and UserStore, used by tests and benchmarks.
type MemoryStore struct {
	mu        sync.RWMutex
	auctions  map[string]model.Auction // key: auctionID
	users     map[string]model.User    // key: userID
	usernames map[string]string        // key: username -> value: userID
}

// NewMemoryStore creates a new in-memory store instance
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		auctions:  make(map[string]model.Auction),
		users:     make(map[string]model.User),
		usernames: make(map[string]string),
	}
}

// CreateAuction stores a new auction record
func (s *MemoryStore) CreateAuction(auction model.Auction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.auctions[auction.AuctionID] = auction
	return nil
}

// GetAuction returns the auction with the given ID
func (s *MemoryStore) GetAuction(auctionID string) (model.Auction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	auction, ok := s.auctions[auctionID]
	if !ok {
		return model.Auction{}, fmt.Errorf("get auction %s: %w", auctionID, auctionerrors.ErrAuctionNotFound)
	}
	return auction, nil
}

// ListAuctions returns all stored auctions
func (s *MemoryStore) ListAuctions() ([]model.Auction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	auctions := make([]model.Auction, 0, len(s.auctions))
	for _, auction := range s.auctions {
		auctions = append(auctions, auction)
	}
	return auctions, nil
}

// MarkAuctionClosed sets the closed flag on an auction
func (s *MemoryStore) MarkAuctionClosed(auctionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	auction, ok := s.auctions[auctionID]
	if !ok {
		return fmt.Errorf("mark auction %s closed: %w", auctionID, auctionerrors.ErrAuctionNotFound)
	}
	auction.IsClosed = true
	s.auctions[auctionID] = auction
	return nil
}

// CompareAndSwapBid atomically records a new leading bid
func (s *MemoryStore) CompareAndSwapBid(auctionID string, expectedBid, amount float64, bidderID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	auction, ok := s.auctions[auctionID]
	if !ok {
		return fmt.Errorf("record bid for auction %s: %w", auctionID, auctionerrors.ErrAuctionNotFound)
	}
	if auction.IsClosed || auction.CurrentBid != expectedBid {
		return fmt.Errorf("record bid for auction %s: %w", auctionID, auctionerrors.ErrBidConflict)
	}

	auction.CurrentBid = amount
	auction.HighestBidder = bidderID
	s.auctions[auctionID] = auction
	return nil
}

// CreateUser stores a new user, enforcing username uniqueness
func (s *MemoryStore) CreateUser(user model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.usernames[user.Username]; exists {
		return fmt.Errorf("create user %s: %w", user.Username, auctionerrors.ErrUsernameTaken)
	}

	s.users[user.UserID] = user
	s.usernames[user.Username] = user.UserID
	return nil
}

// GetUserByUsername returns the user with the given username
func (s *MemoryStore) GetUserByUsername(username string) (model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	userID, ok := s.usernames[username]
	if !ok {
		return model.User{}, fmt.Errorf("get user %s: %w", username, auctionerrors.ErrUserNotFound)
	}
	return s.users[userID], nil
}

// GetUserByID returns the user with the given ID
func (s *MemoryStore) GetUserByID(userID string) (model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[userID]
	if !ok {
		return model.User{}, fmt.Errorf("get user %s: %w", userID, auctionerrors.ErrUserNotFound)
	}
	return user, nil
}

// AddAuction adds an auction to the store. This method is intended for tests only.
func (s *MemoryStore) AddAuction(auction model.Auction) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.auctions[auction.AuctionID] = auction
}
