package httpserver

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/soca-bot/ledger/internal/ledgerrepo"
	"github.com/soca-bot/ledger/pkg/configpkg"
	"github.com/soca-bot/ledger/pkg/web"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()

	config := configpkg.Config{
		BonusAmount:     1000,
		PayWaitWindow:   15 * time.Second,
		ClaimWaitWindow: 30 * time.Second,
	}

	server, err := New(ledgerrepo.NewRepoMem(), nil, zerolog.Nop(), config)
	require.NoError(t, err)

	return server
}

func command(t *testing.T, server *Server, userID, cmd string, args gin.H) web.Result {
	t.Helper()

	return post(t, server, "/interactions/commands", gin.H{
		"command": cmd,
		"user_id": userID,
		"args":    args,
	})
}

func signal(t *testing.T, server *Server, userID, customID string) web.Result {
	t.Helper()

	return post(t, server, "/interactions/signals", gin.H{
		"custom_id": customID,
		"user_id":   userID,
	})
}

func post(t *testing.T, server *Server, url string, body gin.H) web.Result {
	t.Helper()

	data, err := json.Marshal(body)
	require.NoError(t, err)

	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(data))
	require.NoError(t, err)

	recorder := httptest.NewRecorder()
	server.ServeHTTP(recorder, req)
	require.Equal(t, http.StatusOK, recorder.Code)

	var result web.Result
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &result))

	return result
}

func TestLedgerJourney(t *testing.T) {
	server := newTestServer(t)

	// First login grants the daily bonus; the second one is idempotent.
	result := command(t, server, "alice", "login", nil)
	require.Equal(t, "bonus-first-time", result.Status)
	require.Equal(t, int64(1000), *result.NewBalance)

	result = command(t, server, "alice", "login", nil)
	require.Equal(t, "bonus-already-claimed", result.Status)

	result = command(t, server, "alice", "money", nil)
	require.Equal(t, int64(1000), *result.NewBalance)

	// Shared account lifecycle: create, deposit, check, withdraw.
	result = command(t, server, "alice", "create", gin.H{"account": "team", "password": "pw"})
	require.Equal(t, "account-created", result.Status)

	result = command(t, server, "alice", "transfer", gin.H{"account": "team", "amount": 300})
	require.Equal(t, "deposited", result.Status)
	require.Equal(t, int64(700), *result.NewBalance)

	result = command(t, server, "bob", "check", gin.H{"account": "team", "password": "pw"})
	require.Equal(t, "account-balance", result.Status)
	require.Equal(t, int64(300), *result.NewBalance)

	result = command(t, server, "bob", "check", gin.H{"account": "team", "password": "nope"})
	require.Equal(t, "unauthorized", result.Status)

	result = command(t, server, "alice", "withdraw", gin.H{"account": "team", "amount": 100, "password": "pw"})
	require.Equal(t, "withdrawn", result.Status)
	require.Equal(t, int64(800), *result.NewBalance)
}

func TestPayOverHTTP(t *testing.T) {
	server := newTestServer(t)

	command(t, server, "alice", "login", nil)

	result := command(t, server, "alice", "pay", gin.H{"target": "bob", "amount": 250})
	require.Equal(t, "pay-pending", result.Status)
	require.Len(t, result.Controls, 2)

	confirmID := result.Controls[0].CustomID

	// Only the initiator may work the controls.
	outcome := signal(t, server, "bob", confirmID)
	require.Equal(t, "unauthorized", outcome.Status)

	outcome = signal(t, server, "alice", confirmID)
	require.Equal(t, "paid", outcome.Status)
	require.Equal(t, int64(750), *outcome.NewBalance)

	balance := command(t, server, "bob", "money", nil)
	require.Equal(t, int64(250), *balance.NewBalance)

	// The controls are spent once resolved.
	outcome = signal(t, server, "alice", confirmID)
	require.Equal(t, "expired", outcome.Status)
}

func TestPing(t *testing.T) {
	server := newTestServer(t)

	req, err := http.NewRequest(http.MethodGet, "/ping", nil)
	require.NoError(t, err)

	recorder := httptest.NewRecorder()
	server.ServeHTTP(recorder, req)
	require.Equal(t, http.StatusOK, recorder.Code)
}
