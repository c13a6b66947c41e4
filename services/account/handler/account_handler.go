package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	model "github.com/Karmugilan015/aution-platform/internal/models"
	"github.com/Karmugilan015/aution-platform/services/account/helpers"
	"github.com/Karmugilan015/aution-platform/utils"
)

type AccountServiceInterface interface {
	Signup(username, password string) (model.User, error)
	Signin(username, password string) (string, error)
}

type AccountHandler struct {
	service AccountServiceInterface
}

func NewAccountHandler(service AccountServiceInterface) *AccountHandler {
	return &AccountHandler{service: service}
}

// SignupHandler handles POST /signup
func (h *AccountHandler) SignupHandler(c *gin.Context) {
	var req helpers.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "SignupHandler", err)
		return
	}

	user, err := h.service.Signup(req.Username, req.Password)
	if err != nil {
		helpers.RespondServiceError(c, "SignupHandler", err)
		return
	}

	utils.JSONResponse(c, http.StatusCreated, user, "user created successfully")
	helpers.LogSuccess("SignupHandler", "user created successfully", map[string]any{
		"user_id":  user.UserID,
		"username": user.Username,
	})
}

// SigninHandler handles POST /signin
func (h *AccountHandler) SigninHandler(c *gin.Context) {
	var req helpers.SigninRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "SigninHandler", err)
		return
	}

	token, err := h.service.Signin(req.Username, req.Password)
	if err != nil {
		helpers.RespondServiceError(c, "SigninHandler", err)
		return
	}

	utils.JSONResponse(c, http.StatusOK, helpers.SigninResponse{Token: token}, "signed in successfully")
	helpers.LogSuccess("SigninHandler", "signed in successfully", map[string]any{
		"username": req.Username,
	})
}
