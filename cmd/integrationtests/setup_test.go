package integrationtests

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	account "github.com/Karmugilan015/aution-platform/internal/accountService"
	auction "github.com/Karmugilan015/aution-platform/internal/auctionService"
	"github.com/Karmugilan015/aution-platform/internal/repository"
	"github.com/Karmugilan015/aution-platform/internal/server"
	"github.com/Karmugilan015/aution-platform/internal/token"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

const testJWTSecret = "integration-test-secret"

// SetupTestRouter initializes the full router with an in-memory store.
func SetupTestRouter() (*gin.Engine, *repository.MemoryStore) {
	gin.SetMode(gin.TestMode)

	store := repository.NewMemoryStore()
	tokens := token.NewJWTManager(testJWTSecret, time.Hour)
	accountSvc := account.NewAccountService(store, tokens)
	auctionSvc := auction.NewAuctionService(store)

	return server.SetupRouter(accountSvc, auctionSvc, tokens), store
}

// ExecuteRequestAndParse executes an HTTP request on the given router and
// parses the response envelope. An empty authToken sends no Authorization
// header.
func ExecuteRequestAndParse(t *testing.T, router *gin.Engine, method, url, authToken string, body any) (map[string]any, *httptest.ResponseRecorder) {
	t.Helper()

	var reqBody []byte
	var err error

	switch v := body.(type) {
	case nil:
	case []byte:
		reqBody = v
	case string:
		reqBody = []byte(v)
	default:
		reqBody, err = json.Marshal(v)
		require.NoError(t, err, "failed to marshal body")
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, url, bytes.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	if authToken != "" {
		req.Header.Set("Authorization", "Bearer "+authToken)
	}
	router.ServeHTTP(w, req)

	var resp map[string]any
	if len(w.Body.Bytes()) > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), "failed to unmarshal response")
	}
	return resp, w
}

// ExecuteRequestRawAuth is like ExecuteRequestAndParse but sends the token
// without the "Bearer" prefix, as some older clients do.
func ExecuteRequestRawAuth(t *testing.T, router *gin.Engine, method, url, authToken string, body any) (map[string]any, *httptest.ResponseRecorder) {
	t.Helper()

	reqBody, err := json.Marshal(body)
	require.NoError(t, err, "failed to marshal body")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, url, bytes.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", authToken)
	router.ServeHTTP(w, req)

	var resp map[string]any
	if len(w.Body.Bytes()) > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), "failed to unmarshal response")
	}
	return resp, w
}

// SignupAndSignin registers a user and returns a valid bearer token.
func SignupAndSignin(t *testing.T, router *gin.Engine, username, password string) string {
	t.Helper()

	creds := map[string]any{"username": username, "password": password}

	_, w := ExecuteRequestAndParse(t, router, http.MethodPost, "/signup", "", creds)
	require.Equal(t, http.StatusCreated, w.Code)

	resp, w := ExecuteRequestAndParse(t, router, http.MethodPost, "/signin", "", creds)
	require.Equal(t, http.StatusOK, w.Code)

	tokenString := resp["data"].(map[string]any)["token"].(string)
	require.NotEmpty(t, tokenString)
	return tokenString
}

// CreateAuction creates an auction through the API and returns its ID.
func CreateAuction(t *testing.T, router *gin.Engine, authToken string, startingBid float64, closingTime time.Time) string {
	t.Helper()

	resp, w := ExecuteRequestAndParse(t, router, http.MethodPost, "/auction", authToken, map[string]any{
		"item_name":    "vintage radio",
		"description":  "bakelite, working",
		"starting_bid": startingBid,
		"closing_time": closingTime.Format(time.RFC3339),
	})
	require.Equal(t, http.StatusCreated, w.Code)

	return resp["data"].(map[string]any)["auction_id"].(string)
}
