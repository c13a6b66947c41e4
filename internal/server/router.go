package server

import (
	"github.com/gin-gonic/gin"

	"github.com/Karmugilan015/aution-platform/internal/token"
	accounthandler "github.com/Karmugilan015/aution-platform/services/account/handler"
	auctionhandler "github.com/Karmugilan015/aution-platform/services/auction/handler"
)

// SetupRouter configures all Gin routes for the application
func SetupRouter(
	accountService accounthandler.AccountServiceInterface,
	auctionService auctionhandler.AuctionServiceInterface,
	tokens *token.JWTManager,
) *gin.Engine {
	router := gin.New() // New router without default middleware for full control over middleware and logging

	router.Use(gin.Recovery())          // recover from panics
	router.Use(RequestLoggerMiddleware) // custom request logging

	accountHandler := accounthandler.NewAccountHandler(accountService)
	auctionHandler := auctionhandler.NewAuctionHandler(auctionService)

	router.POST("/signup", accountHandler.SignupHandler)
	router.POST("/signin", accountHandler.SigninHandler)

	router.GET("/auctions", auctionHandler.ListAuctionsHandler)
	router.GET("/auctions/:auction_id", auctionHandler.GetAuctionHandler)

	authed := router.Group("", RequireAuth(tokens))
	{
		authed.POST("/auction", auctionHandler.CreateAuctionHandler)
		authed.POST("/bid/:auction_id", auctionHandler.PlaceBidHandler)
	}

	return router
}
