package handler_test

import (
	"bytes"
	"crypto/ecdsa"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/web3_voting/handler"
	"github.com/web3_voting/model"
	"github.com/web3_voting/repository"
	"github.com/web3_voting/router"
	"github.com/web3_voting/service"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupServer(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, model.AutoMigrate(db))

	nonceRepo := repository.NewNonceRepository(db)
	voteRepo := repository.NewVoteRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	nonceSvc := service.NewNonceService(nonceRepo)

	return router.SetupRouter(
		handler.NewHealthHandler(db),
		handler.NewNonceHandler(nonceSvc),
		handler.NewProjectHandler(service.NewProjectService(projectRepo, voteRepo)),
		handler.NewVoteHandler(service.NewVoteService(nonceSvc, voteRepo)),
	)
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var resp map[string]interface{}
	if w.Body.Len() > 0 && w.Body.Bytes()[0] == '{' {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	}
	return w, resp
}

func signVote(t *testing.T, key *ecdsa.PrivateKey, projectID, nonce string) string {
	t.Helper()
	sig, err := crypto.Sign(accounts.TextHash([]byte(service.VoteMessage(projectID, nonce))), key)
	require.NoError(t, err)
	sig[crypto.RecoveryIDOffset] += 27
	return "0x" + hex.EncodeToString(sig)
}

func TestIssueNonceEndpoint(t *testing.T) {
	r := setupServer(t)

	w, resp := doJSON(t, r, http.MethodPost, "/api/nonce", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Address required", resp["error"])

	w, resp = doJSON(t, r, http.MethodPost, "/api/nonce?address=0xABCdef0123456789abcDEF0123456789ABCDEF01", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "0xabcdef0123456789abcdef0123456789abcdef01", resp["address"])
	assert.Len(t, resp["nonce"], 32)
}

func TestVotingFlow(t *testing.T) {
	r := setupServer(t)
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	address := strings.ToLower(crypto.PubkeyToAddress(key.PublicKey).Hex())

	// create a project
	w, resp := doJSON(t, r, http.MethodPost, "/api/projects", gin.H{"name": "DeFi Thing", "chain": "Ethereum"})
	require.Equal(t, http.StatusOK, w.Code)
	projectID, ok := resp["id"].(string)
	require.True(t, ok)
	assert.Equal(t, "Project created", resp["message"])

	// request a nonce
	w, resp = doJSON(t, r, http.MethodPost, "/api/nonce?address="+address, nil)
	require.Equal(t, http.StatusOK, w.Code)
	nonce := resp["nonce"].(string)

	// cast the vote
	w, resp = doJSON(t, r, http.MethodPost, "/api/vote", gin.H{
		"project_id": projectID,
		"address":    address,
		"signature":  signVote(t, key, projectID, nonce),
		"nonce":      nonce,
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", resp["status"])
	assert.Equal(t, "Vote recorded", resp["message"])

	// duplicate vote with a fresh nonce is acknowledged, not an error
	w, resp = doJSON(t, r, http.MethodPost, "/api/nonce?address="+address, nil)
	require.Equal(t, http.StatusOK, w.Code)
	nonce = resp["nonce"].(string)
	w, resp = doJSON(t, r, http.MethodPost, "/api/vote", gin.H{
		"project_id": projectID,
		"address":    address,
		"signature":  signVote(t, key, projectID, nonce),
		"nonce":      nonce,
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Vote already recorded", resp["message"])

	// per-project count
	w, resp = doJSON(t, r, http.MethodGet, "/api/projects/"+projectID+"/votes", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, projectID, resp["project_id"])
	assert.EqualValues(t, 1, resp["votes"])

	// listing carries the aggregated count
	req := httptest.NewRequest(http.MethodGet, "/api/projects", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	var list []map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list, 1)
	assert.Equal(t, projectID, list[0]["id"])
	assert.EqualValues(t, 1, list[0]["votes"])
}

func TestCastVoteEndpoint_Rejections(t *testing.T) {
	r := setupServer(t)
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	address := strings.ToLower(crypto.PubkeyToAddress(key.PublicKey).Hex())

	t.Run("unknown nonce", func(t *testing.T) {
		w, resp := doJSON(t, r, http.MethodPost, "/api/vote", gin.H{
			"project_id": "proj1",
			"address":    address,
			"signature":  signVote(t, key, "proj1", "bogus"),
			"nonce":      "bogus",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Invalid or used nonce", resp["error"])
	})

	t.Run("malformed signature", func(t *testing.T) {
		_, resp := doJSON(t, r, http.MethodPost, "/api/nonce?address="+address, nil)
		nonce := resp["nonce"].(string)

		w, resp := doJSON(t, r, http.MethodPost, "/api/vote", gin.H{
			"project_id": "proj1",
			"address":    address,
			"signature":  "0xdeadbeef",
			"nonce":      nonce,
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, resp["error"], "Invalid signature")
	})

	t.Run("signature from another key", func(t *testing.T) {
		otherKey, err := crypto.GenerateKey()
		require.NoError(t, err)

		_, resp := doJSON(t, r, http.MethodPost, "/api/nonce?address="+address, nil)
		nonce := resp["nonce"].(string)

		w, resp := doJSON(t, r, http.MethodPost, "/api/vote", gin.H{
			"project_id": "proj1",
			"address":    address,
			"signature":  signVote(t, otherKey, "proj1", nonce),
			"nonce":      nonce,
		})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "Signature verification failed", resp["error"])
	})

	t.Run("missing fields", func(t *testing.T) {
		w, _ := doJSON(t, r, http.MethodPost, "/api/vote", gin.H{"project_id": "proj1"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestHealthEndpoints(t *testing.T) {
	r := setupServer(t)

	w, resp := doJSON(t, r, http.MethodGet, "/", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Web3 Voting API running", resp["message"])

	w, resp = doJSON(t, r, http.MethodGet, "/test", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "connected", resp["connection_status"])
	assert.Contains(t, resp["tables"], "votes")
}
