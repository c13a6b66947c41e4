// Package sqlite provides a SQLite-backed implementation of the repository
// AuctionStore and UserStore interfaces.
package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)

	"github.com/Karmugilan015/aution-platform/internal/auctionerrors"
	model "github.com/Karmugilan015/aution-platform/internal/models"
	"github.com/Karmugilan015/aution-platform/internal/repository"
)

// Ensure Store implements both repository interfaces
var (
	_ repository.AuctionStore = (*Store)(nil)
	_ repository.UserStore    = (*Store)(nil)
)

// Store implements the repository interfaces using SQLite.
type Store struct {
	db *sql.DB
}

// New creates a new Store with the given database path.
// It creates the parent directories and runs migrations automatically.
func New(dbPath string) (*Store, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// CreateAuction persists a new auction record.
func (s *Store) CreateAuction(auction model.Auction) error {
	_, err := s.db.Exec(`
		INSERT INTO auctions (auction_id, item_name, description, starting_bid, current_bid, highest_bidder, closing_time, is_closed, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		auction.AuctionID,
		auction.ItemName,
		auction.Description,
		auction.StartingBid,
		auction.CurrentBid,
		auction.HighestBidder,
		auction.ClosingTime.UTC().Unix(),
		boolToInt(auction.IsClosed),
		auction.CreatedAt.UTC().Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to create auction: %w", err)
	}
	return nil
}

// GetAuction retrieves an auction by ID.
func (s *Store) GetAuction(auctionID string) (model.Auction, error) {
	row := s.db.QueryRow(`
		SELECT auction_id, item_name, description, starting_bid, current_bid, highest_bidder, closing_time, is_closed, created_at
		FROM auctions WHERE auction_id = ?`, auctionID)

	auction, err := scanAuction(row)
	if err == sql.ErrNoRows {
		return model.Auction{}, fmt.Errorf("get auction %s: %w", auctionID, auctionerrors.ErrAuctionNotFound)
	}
	if err != nil {
		return model.Auction{}, fmt.Errorf("failed to get auction: %w", err)
	}
	return auction, nil
}

// ListAuctions retrieves all auctions, newest first.
func (s *Store) ListAuctions() ([]model.Auction, error) {
	rows, err := s.db.Query(`
		SELECT auction_id, item_name, description, starting_bid, current_bid, highest_bidder, closing_time, is_closed, created_at
		FROM auctions ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list auctions: %w", err)
	}
	defer rows.Close()

	var auctions []model.Auction
	for rows.Next() {
		auction, err := scanAuction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan auction: %w", err)
		}
		auctions = append(auctions, auction)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate auctions: %w", err)
	}
	return auctions, nil
}

// MarkAuctionClosed flips is_closed to true. Idempotent.
func (s *Store) MarkAuctionClosed(auctionID string) error {
	res, err := s.db.Exec(`UPDATE auctions SET is_closed = 1 WHERE auction_id = ?`, auctionID)
	if err != nil {
		return fmt.Errorf("failed to mark auction closed: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to mark auction closed: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("mark auction %s closed: %w", auctionID, auctionerrors.ErrAuctionNotFound)
	}
	return nil
}

// CompareAndSwapBid records a new leading bid with a conditional update: the
// write succeeds only while the auction is open and the stored current bid
// still matches the value the caller read.
func (s *Store) CompareAndSwapBid(auctionID string, expectedBid, amount float64, bidderID string) error {
	res, err := s.db.Exec(`
		UPDATE auctions SET current_bid = ?, highest_bidder = ?
		WHERE auction_id = ? AND is_closed = 0 AND current_bid = ?`,
		amount, bidderID, auctionID, expectedBid)
	if err != nil {
		return fmt.Errorf("failed to record bid: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to record bid: %w", err)
	}
	if affected == 0 {
		// Distinguish a missing auction from a lost race.
		if _, getErr := s.GetAuction(auctionID); getErr != nil {
			return getErr
		}
		return fmt.Errorf("record bid for auction %s: %w", auctionID, auctionerrors.ErrBidConflict)
	}
	return nil
}

// CreateUser inserts a new user. The UNIQUE constraint on username acts as a
// backstop behind the service-level duplicate check.
func (s *Store) CreateUser(user model.User) error {
	_, err := s.db.Exec(`
		INSERT INTO users (user_id, username, password_digest)
		VALUES (?, ?, ?)`,
		user.UserID, user.Username, user.PasswordDigest)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return fmt.Errorf("create user %s: %w", user.Username, auctionerrors.ErrUsernameTaken)
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// GetUserByUsername retrieves a user by username.
func (s *Store) GetUserByUsername(username string) (model.User, error) {
	user := model.User{}
	err := s.db.QueryRow(`
		SELECT user_id, username, password_digest FROM users WHERE username = ?`, username).
		Scan(&user.UserID, &user.Username, &user.PasswordDigest)
	if err == sql.ErrNoRows {
		return model.User{}, fmt.Errorf("get user %s: %w", username, auctionerrors.ErrUserNotFound)
	}
	if err != nil {
		return model.User{}, fmt.Errorf("failed to get user by username: %w", err)
	}
	return user, nil
}

// GetUserByID retrieves a user by ID.
func (s *Store) GetUserByID(userID string) (model.User, error) {
	user := model.User{}
	err := s.db.QueryRow(`
		SELECT user_id, username, password_digest FROM users WHERE user_id = ?`, userID).
		Scan(&user.UserID, &user.Username, &user.PasswordDigest)
	if err == sql.ErrNoRows {
		return model.User{}, fmt.Errorf("get user %s: %w", userID, auctionerrors.ErrUserNotFound)
	}
	if err != nil {
		return model.User{}, fmt.Errorf("failed to get user by ID: %w", err)
	}
	return user, nil
}

// scanner abstracts *sql.Row and *sql.Rows for scanAuction.
type scanner interface {
	Scan(dest ...any) error
}

func scanAuction(row scanner) (model.Auction, error) {
	var (
		auction     model.Auction
		closingTime int64
		isClosed    int
		createdAt   int64
	)
	err := row.Scan(
		&auction.AuctionID,
		&auction.ItemName,
		&auction.Description,
		&auction.StartingBid,
		&auction.CurrentBid,
		&auction.HighestBidder,
		&closingTime,
		&isClosed,
		&createdAt,
	)
	if err != nil {
		return model.Auction{}, err
	}
	auction.ClosingTime = time.Unix(closingTime, 0).UTC()
	auction.IsClosed = isClosed != 0
	auction.CreatedAt = time.Unix(createdAt, 0).UTC()
	return auction, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
