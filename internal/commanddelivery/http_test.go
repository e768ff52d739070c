package commanddelivery

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"

	"github.com/soca-bot/ledger/internal/domain"
	"github.com/soca-bot/ledger/pkg/errorspkg"
	"github.com/soca-bot/ledger/pkg/web"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.ReleaseMode)
	os.Exit(m.Run())
}

type mocks struct {
	wallets  *MockWalletService
	accounts *MockAccountService
	confirms *MockConfirmService
}

func newTestServer(t *testing.T) (*gin.Engine, mocks) {
	t.Helper()

	ctrl := gomock.NewController(t)
	m := mocks{
		wallets:  NewMockWalletService(ctrl),
		accounts: NewMockAccountService(ctrl),
		confirms: NewMockConfirmService(ctrl),
	}

	h := NewHandler(m.wallets, m.accounts, m.confirms)
	h.now = func() time.Time {
		return time.Date(2024, time.March, 1, 23, 30, 0, 0, time.UTC)
	}

	server := gin.New()
	server.POST("/interactions/commands", h.Command)
	server.POST("/interactions/signals", h.SignalHandler)

	return server, m
}

func post(t *testing.T, server *gin.Engine, url string, body any) *httptest.ResponseRecorder {
	t.Helper()

	data, err := json.Marshal(body)
	require.NoError(t, err)

	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(data))
	require.NoError(t, err)

	recorder := httptest.NewRecorder()
	server.ServeHTTP(recorder, req)

	return recorder
}

func decodeResult(t *testing.T, recorder *httptest.ResponseRecorder) web.Result {
	t.Helper()

	var result web.Result
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &result))

	return result
}

func TestCommand(t *testing.T) {
	// 23:30 UTC on March 1st is already March 2nd in UTC+9.
	const today = "2024-03-02"

	testCases := []struct {
		name          string
		requestBody   gin.H
		buildStubs    func(m mocks)
		checkResponse func(t *testing.T, recorder *httptest.ResponseRecorder)
	}{
		{
			name:        "LoginFirstTime",
			requestBody: gin.H{"command": "login", "user_id": "alice"},
			buildStubs: func(m mocks) {
				m.wallets.EXPECT().
					ClaimDailyBonus(gomock.Any(), "alice", today).
					Return(domain.BonusResult{Status: domain.BonusFirstTime, Balance: 1000}, nil)
			},
			checkResponse: func(t *testing.T, recorder *httptest.ResponseRecorder) {
				require.Equal(t, http.StatusOK, recorder.Code)

				result := decodeResult(t, recorder)
				require.Equal(t, "bonus-first-time", result.Status)
				require.Equal(t, int64(1000), *result.NewBalance)
			},
		},
		{
			name:        "LoginAlreadyClaimed",
			requestBody: gin.H{"command": "login", "user_id": "alice"},
			buildStubs: func(m mocks) {
				m.wallets.EXPECT().
					ClaimDailyBonus(gomock.Any(), "alice", today).
					Return(domain.BonusResult{Status: domain.BonusAlreadyClaimed, Balance: 1000}, nil)
			},
			checkResponse: func(t *testing.T, recorder *httptest.ResponseRecorder) {
				require.Equal(t, http.StatusOK, recorder.Code)

				result := decodeResult(t, recorder)
				require.Equal(t, "bonus-already-claimed", result.Status)
				require.Nil(t, result.NewBalance)
			},
		},
		{
			name:        "Money",
			requestBody: gin.H{"command": "money", "user_id": "alice"},
			buildStubs: func(m mocks) {
				m.wallets.EXPECT().
					GetBalance(gomock.Any(), "alice").
					Return(int64(2500), nil)
			},
			checkResponse: func(t *testing.T, recorder *httptest.ResponseRecorder) {
				require.Equal(t, http.StatusOK, recorder.Code)

				result := decodeResult(t, recorder)
				require.Equal(t, "balance", result.Status)
				require.Equal(t, int64(2500), *result.NewBalance)
				require.True(t, result.Ephemeral)
			},
		},
		{
			name: "CreateAccount",
			requestBody: gin.H{
				"command": "create",
				"user_id": "alice",
				"args":    gin.H{"account": "team", "password": "hunter2"},
			},
			buildStubs: func(m mocks) {
				m.accounts.EXPECT().
					Create(gomock.Any(), "team", "alice", "hunter2").
					Return(domain.Account{Name: "team", Owner: "alice"}, nil)
			},
			checkResponse: func(t *testing.T, recorder *httptest.ResponseRecorder) {
				require.Equal(t, http.StatusOK, recorder.Code)
				require.Equal(t, "account-created", decodeResult(t, recorder).Status)
			},
		},
		{
			name: "CreateAccountNameTaken",
			requestBody: gin.H{
				"command": "create",
				"user_id": "alice",
				"args":    gin.H{"account": "team"},
			},
			buildStubs: func(m mocks) {
				m.accounts.EXPECT().
					Create(gomock.Any(), "team", "alice", "").
					Return(domain.Account{}, domain.ErrAccountExists)
			},
			checkResponse: func(t *testing.T, recorder *httptest.ResponseRecorder) {
				require.Equal(t, http.StatusOK, recorder.Code)
				require.Equal(t, "account-exists", decodeResult(t, recorder).Status)
			},
		},
		{
			name: "Deposit",
			requestBody: gin.H{
				"command": "transfer",
				"user_id": "alice",
				"args":    gin.H{"account": "team", "amount": 300},
			},
			buildStubs: func(m mocks) {
				m.accounts.EXPECT().
					Deposit(gomock.Any(), "team", "alice", int64(300)).
					Return(domain.TransferResult{Amount: 300, FromBalance: 700, ToBalance: 300}, nil)
			},
			checkResponse: func(t *testing.T, recorder *httptest.ResponseRecorder) {
				require.Equal(t, http.StatusOK, recorder.Code)

				result := decodeResult(t, recorder)
				require.Equal(t, "deposited", result.Status)
				require.Equal(t, int64(700), *result.NewBalance)
				require.Equal(t, int64(300), *result.Amount)
			},
		},
		{
			name: "DepositInsufficientFunds",
			requestBody: gin.H{
				"command": "transfer",
				"user_id": "alice",
				"args":    gin.H{"account": "team", "amount": 300},
			},
			buildStubs: func(m mocks) {
				m.accounts.EXPECT().
					Deposit(gomock.Any(), "team", "alice", int64(300)).
					Return(domain.TransferResult{}, domain.ErrInsufficientFunds)
			},
			checkResponse: func(t *testing.T, recorder *httptest.ResponseRecorder) {
				require.Equal(t, http.StatusOK, recorder.Code)
				require.Equal(t, "insufficient-funds", decodeResult(t, recorder).Status)
			},
		},
		{
			name: "WithdrawUnauthorized",
			requestBody: gin.H{
				"command": "withdraw",
				"user_id": "mallory",
				"args":    gin.H{"account": "team", "amount": 100, "password": "wrong"},
			},
			buildStubs: func(m mocks) {
				m.accounts.EXPECT().
					Withdraw(gomock.Any(), "team", "mallory", int64(100), "wrong").
					Return(domain.TransferResult{}, domain.ErrUnauthorized)
			},
			checkResponse: func(t *testing.T, recorder *httptest.ResponseRecorder) {
				require.Equal(t, http.StatusOK, recorder.Code)
				require.Equal(t, "unauthorized", decodeResult(t, recorder).Status)
			},
		},
		{
			name: "CheckBalance",
			requestBody: gin.H{
				"command": "check",
				"user_id": "alice",
				"args":    gin.H{"account": "team", "password": "hunter2"},
			},
			buildStubs: func(m mocks) {
				m.accounts.EXPECT().
					CheckBalance(gomock.Any(), "team", "alice", "hunter2").
					Return(int64(450), nil)
			},
			checkResponse: func(t *testing.T, recorder *httptest.ResponseRecorder) {
				require.Equal(t, http.StatusOK, recorder.Code)

				result := decodeResult(t, recorder)
				require.Equal(t, "account-balance", result.Status)
				require.Equal(t, int64(450), *result.NewBalance)
				require.True(t, result.Ephemeral)
			},
		},
		{
			name: "PayProposal",
			requestBody: gin.H{
				"command": "pay",
				"user_id": "alice",
				"args":    gin.H{"target": "bob", "amount": 300},
			},
			buildStubs: func(m mocks) {
				m.confirms.EXPECT().
					ProposePay(gomock.Any(), "alice", "bob", int64(300)).
					Return(domain.PendingTransfer{
						ID:           "abc",
						Kind:         domain.KindDirectPayment,
						Initiator:    "alice",
						Counterparty: "bob",
						Amount:       300,
						Deadline:     time.Now().Add(15 * time.Second),
					}, nil)
			},
			checkResponse: func(t *testing.T, recorder *httptest.ResponseRecorder) {
				require.Equal(t, http.StatusOK, recorder.Code)

				result := decodeResult(t, recorder)
				require.Equal(t, "pay-pending", result.Status)
				require.Len(t, result.Controls, 2)
				require.Equal(t, "pay:abc:confirm", result.Controls[0].CustomID)
				require.Equal(t, "pay:abc:cancel", result.Controls[1].CustomID)
			},
		},
		{
			name: "ClaimProposal",
			requestBody: gin.H{
				"command": "claim",
				"user_id": "alice",
				"args":    gin.H{"target": "bob", "amount": 250},
			},
			buildStubs: func(m mocks) {
				m.confirms.EXPECT().
					ProposeClaim(gomock.Any(), "alice", "bob", int64(250)).
					Return(domain.PendingTransfer{
						ID:           "xyz",
						Kind:         domain.KindPaymentRequest,
						Initiator:    "alice",
						Counterparty: "bob",
						Amount:       250,
						Deadline:     time.Now().Add(30 * time.Second),
					}, nil)
			},
			checkResponse: func(t *testing.T, recorder *httptest.ResponseRecorder) {
				require.Equal(t, http.StatusOK, recorder.Code)

				result := decodeResult(t, recorder)
				require.Equal(t, "claim-pending", result.Status)
				require.Len(t, result.Controls, 2)
				require.Equal(t, "claim:xyz:alice:250:accept", result.Controls[0].CustomID)
				require.Equal(t, "claim:xyz:alice:250:deny", result.Controls[1].CustomID)
			},
		},
		{
			name: "PayInvalidAmount",
			requestBody: gin.H{
				"command": "pay",
				"user_id": "alice",
				"args":    gin.H{"target": "bob", "amount": -5},
			},
			buildStubs: func(m mocks) {
				m.confirms.EXPECT().
					ProposePay(gomock.Any(), "alice", "bob", int64(-5)).
					Return(domain.PendingTransfer{}, domain.ErrInvalidAmount)
			},
			checkResponse: func(t *testing.T, recorder *httptest.ResponseRecorder) {
				require.Equal(t, http.StatusOK, recorder.Code)
				require.Equal(t, "invalid-amount", decodeResult(t, recorder).Status)
			},
		},
		{
			name:        "StoreUnavailable",
			requestBody: gin.H{"command": "money", "user_id": "alice"},
			buildStubs: func(m mocks) {
				m.wallets.EXPECT().
					GetBalance(gomock.Any(), "alice").
					Return(int64(0), errorspkg.ErrStoreUnavailable)
			},
			checkResponse: func(t *testing.T, recorder *httptest.ResponseRecorder) {
				require.Equal(t, http.StatusOK, recorder.Code)
				require.Equal(t, "try-again", decodeResult(t, recorder).Status)
			},
		},
		{
			name:        "UnknownCommand",
			requestBody: gin.H{"command": "frobnicate", "user_id": "alice"},
			buildStubs:  func(m mocks) {},
			checkResponse: func(t *testing.T, recorder *httptest.ResponseRecorder) {
				require.Equal(t, http.StatusNotFound, recorder.Code)
			},
		},
		{
			name:        "MissingUserID",
			requestBody: gin.H{"command": "money"},
			buildStubs:  func(m mocks) {},
			checkResponse: func(t *testing.T, recorder *httptest.ResponseRecorder) {
				require.Equal(t, http.StatusBadRequest, recorder.Code)
			},
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			server, m := newTestServer(t)
			tc.buildStubs(m)

			recorder := post(t, server, "/interactions/commands", tc.requestBody)
			tc.checkResponse(t, recorder)
		})
	}
}

func TestSignal(t *testing.T) {
	testCases := []struct {
		name          string
		requestBody   gin.H
		buildStubs    func(m mocks)
		checkResponse func(t *testing.T, recorder *httptest.ResponseRecorder)
	}{
		{
			name:        "PayConfirmed",
			requestBody: gin.H{"custom_id": "pay:abc:confirm", "user_id": "alice"},
			buildStubs: func(m mocks) {
				m.confirms.EXPECT().
					Resolve(gomock.Any(), "pay:abc:confirm", "alice").
					Return(domain.Outcome{
						Proposal: domain.PendingTransfer{ID: "abc", Kind: domain.KindDirectPayment},
						State:    domain.StateConfirmed,
						Transfer: domain.TransferResult{Amount: 300, FromBalance: 700},
					}, nil)
			},
			checkResponse: func(t *testing.T, recorder *httptest.ResponseRecorder) {
				require.Equal(t, http.StatusOK, recorder.Code)

				result := decodeResult(t, recorder)
				require.Equal(t, "paid", result.Status)
				require.Equal(t, int64(700), *result.NewBalance)
			},
		},
		{
			name:        "ClaimAccepted",
			requestBody: gin.H{"custom_id": "claim:xyz:alice:250:accept", "user_id": "bob"},
			buildStubs: func(m mocks) {
				m.confirms.EXPECT().
					Resolve(gomock.Any(), "claim:xyz:alice:250:accept", "bob").
					Return(domain.Outcome{
						Proposal: domain.PendingTransfer{ID: "xyz", Kind: domain.KindPaymentRequest},
						State:    domain.StateConfirmed,
						Transfer: domain.TransferResult{Amount: 250, FromBalance: 750},
					}, nil)
			},
			checkResponse: func(t *testing.T, recorder *httptest.ResponseRecorder) {
				require.Equal(t, http.StatusOK, recorder.Code)

				result := decodeResult(t, recorder)
				require.Equal(t, "claim-paid", result.Status)
				require.Equal(t, int64(750), *result.NewBalance)
			},
		},
		{
			name:        "Cancelled",
			requestBody: gin.H{"custom_id": "pay:abc:cancel", "user_id": "alice"},
			buildStubs: func(m mocks) {
				m.confirms.EXPECT().
					Resolve(gomock.Any(), "pay:abc:cancel", "alice").
					Return(domain.Outcome{
						Proposal: domain.PendingTransfer{ID: "abc", Kind: domain.KindDirectPayment},
						State:    domain.StateCancelled,
					}, nil)
			},
			checkResponse: func(t *testing.T, recorder *httptest.ResponseRecorder) {
				require.Equal(t, http.StatusOK, recorder.Code)
				require.Equal(t, "cancelled", decodeResult(t, recorder).Status)
			},
		},
		{
			name:        "Expired",
			requestBody: gin.H{"custom_id": "pay:gone:confirm", "user_id": "alice"},
			buildStubs: func(m mocks) {
				m.confirms.EXPECT().
					Resolve(gomock.Any(), "pay:gone:confirm", "alice").
					Return(domain.Outcome{}, domain.ErrExpired)
			},
			checkResponse: func(t *testing.T, recorder *httptest.ResponseRecorder) {
				require.Equal(t, http.StatusOK, recorder.Code)
				require.Equal(t, "expired", decodeResult(t, recorder).Status)
			},
		},
		{
			name:        "WrongResponder",
			requestBody: gin.H{"custom_id": "pay:abc:confirm", "user_id": "mallory"},
			buildStubs: func(m mocks) {
				m.confirms.EXPECT().
					Resolve(gomock.Any(), "pay:abc:confirm", "mallory").
					Return(domain.Outcome{}, domain.ErrUnauthorized)
			},
			checkResponse: func(t *testing.T, recorder *httptest.ResponseRecorder) {
				require.Equal(t, http.StatusOK, recorder.Code)
				require.Equal(t, "unauthorized", decodeResult(t, recorder).Status)
			},
		},
		{
			name:        "MissingCustomID",
			requestBody: gin.H{"user_id": "alice"},
			buildStubs:  func(m mocks) {},
			checkResponse: func(t *testing.T, recorder *httptest.ResponseRecorder) {
				require.Equal(t, http.StatusBadRequest, recorder.Code)
			},
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			server, m := newTestServer(t)
			tc.buildStubs(m)

			recorder := post(t, server, "/interactions/signals", tc.requestBody)
			tc.checkResponse(t, recorder)
		})
	}
}
