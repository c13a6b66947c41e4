package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Karmugilan015/aution-platform/internal/auctionerrors"
	model "github.com/Karmugilan015/aution-platform/internal/models"
	"github.com/Karmugilan015/aution-platform/internal/token"
	"github.com/Karmugilan015/aution-platform/services/auction/helpers"
	"github.com/Karmugilan015/aution-platform/utils"
)

type AuctionServiceInterface interface {
	CreateAuction(itemName, description string, startingBid float64, closingTime time.Time) (model.Auction, error)
	GetAuction(auctionID string) (model.Auction, error)
	ListAuctions() ([]model.Auction, error)
	PlaceBid(auctionID, bidderID string, amount float64) (model.Auction, error)
}

type AuctionHandler struct {
	service AuctionServiceInterface
}

func NewAuctionHandler(service AuctionServiceInterface) *AuctionHandler {
	return &AuctionHandler{service: service}
}

// CreateAuctionHandler handles POST /auction
func (h *AuctionHandler) CreateAuctionHandler(c *gin.Context) {
	var req helpers.CreateAuctionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "CreateAuctionHandler", err)
		return
	}

	auction, err := h.service.CreateAuction(req.ItemName, req.Description, *req.StartingBid, req.ClosingTime)
	if err != nil {
		helpers.RespondServiceError(c, "CreateAuctionHandler", err)
		return
	}

	utils.JSONResponse(c, http.StatusCreated, auction, "auction created successfully")
	helpers.LogSuccess("CreateAuctionHandler", "auction created successfully", map[string]any{
		"auction_id":   auction.AuctionID,
		"item_name":    auction.ItemName,
		"starting_bid": auction.StartingBid,
		"closing_time": auction.ClosingTime,
		"created_by":   c.GetString(token.ContextUserID),
	})
}

// ListAuctionsHandler handles GET /auctions
func (h *AuctionHandler) ListAuctionsHandler(c *gin.Context) {
	auctions, err := h.service.ListAuctions()
	if err != nil {
		helpers.RespondServiceError(c, "ListAuctionsHandler", err)
		return
	}

	if auctions == nil {
		auctions = []model.Auction{}
	}

	utils.JSONResponse(c, http.StatusOK, auctions, "auctions retrieved successfully")
	helpers.LogSuccess("ListAuctionsHandler", "auctions retrieved successfully", map[string]any{
		"count": len(auctions),
	})
}

// GetAuctionHandler handles GET /auctions/:auction_id
// Viewing an auction past its closing time persists the closed state.
func (h *AuctionHandler) GetAuctionHandler(c *gin.Context) {
	auctionID := c.Param("auction_id")
	auction, err := h.service.GetAuction(auctionID)
	if err != nil {
		helpers.RespondServiceError(c, "GetAuctionHandler", err)
		return
	}

	utils.JSONResponse(c, http.StatusOK, auction, "auction retrieved successfully")
	helpers.LogSuccess("GetAuctionHandler", "auction retrieved successfully", map[string]any{
		"auction_id": auction.AuctionID,
		"is_closed":  auction.IsClosed,
	})
}

// PlaceBidHandler handles POST /bid/:auction_id
func (h *AuctionHandler) PlaceBidHandler(c *gin.Context) {
	var req helpers.PlaceBidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "PlaceBidHandler", err)
		return
	}

	auctionID := c.Param("auction_id")
	bidderID := c.GetString(token.ContextUserID)

	auction, err := h.service.PlaceBid(auctionID, bidderID, req.Bid)
	if err != nil {
		// Rejections by the bid rules are expected outcomes carrying the
		// state the caller bid against, not server errors.
		switch {
		case errors.Is(err, auctionerrors.ErrAuctionClosed):
			utils.JSONResponse(c, http.StatusBadRequest, helpers.BidRejectedResponse{
				CurrentBid: auction.CurrentBid,
				Winner:     auction.HighestBidder,
				IsClosed:   true,
			}, "auction already closed")
		case errors.Is(err, auctionerrors.ErrBidTooLow):
			utils.JSONResponse(c, http.StatusBadRequest, helpers.BidRejectedResponse{
				CurrentBid: auction.CurrentBid,
			}, "bid amount too low")
		default:
			helpers.RespondServiceError(c, "PlaceBidHandler", err)
		}
		return
	}

	utils.JSONResponse(c, http.StatusOK, auction, "bid accepted")
	helpers.LogSuccess("PlaceBidHandler", "bid accepted", map[string]any{
		"auction_id":  auction.AuctionID,
		"bidder_id":   bidderID,
		"current_bid": auction.CurrentBid,
	})
}
