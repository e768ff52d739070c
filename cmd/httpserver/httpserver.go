// Package httpserver manages server creation and api routing.
package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/soca-bot/ledger/internal/accountservice"
	"github.com/soca-bot/ledger/internal/commanddelivery"
	"github.com/soca-bot/ledger/internal/confirmservice"
	"github.com/soca-bot/ledger/internal/domain"
	"github.com/soca-bot/ledger/internal/ledgerrepo"
	"github.com/soca-bot/ledger/internal/middleware"
	"github.com/soca-bot/ledger/internal/notifier"
	"github.com/soca-bot/ledger/internal/transferservice"
	"github.com/soca-bot/ledger/internal/walletservice"
	"github.com/soca-bot/ledger/pkg/configpkg"
	"github.com/soca-bot/ledger/pkg/web"
)

// Server holds the store, the router and the configuration.
type Server struct {
	Store  ledgerrepo.Store
	Engine *gin.Engine
	Config configpkg.Config
}

// ServeHTTP implements the http.Handler interface for the Server type.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Engine.ServeHTTP(w, r)
}

// New creates Server type with instantiated services and routes.
func New(store ledgerrepo.Store, sink notifier.Sink, logger zerolog.Logger, config configpkg.Config) (*Server, error) {
	if store == nil {
		return nil, errors.New("store is required")
	}

	if sink == nil {
		sink = notifier.NewLogSink(logger)
	}

	transferService := transferservice.New(store)
	walletService := walletservice.New(store, config.BonusAmount)
	accountService := accountservice.New(store, transferService, sink)
	confirmService := confirmservice.New(
		walletService, transferService, sink, logger,
		config.PayWaitWindow, config.ClaimWaitWindow,
	)

	handler := commanddelivery.NewHandler(walletService, accountService, confirmService)

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(middleware.RequestLogger(logger))
	engine.Use(gin.Recovery())

	engine.POST("/interactions/commands", handler.Command)
	engine.POST("/interactions/signals", handler.SignalHandler)

	engine.GET("/ping", func(gctx *gin.Context) {
		// A wallet read exercises the full store round-trip; an absent
		// wallet still proves the store answered.
		_, err := store.GetWallet(gctx.Request.Context(), "ping")
		if err != nil && !errors.Is(err, domain.ErrNoWalletData) {
			gctx.JSON(http.StatusServiceUnavailable, web.Error(err))
			return
		}

		gctx.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	server := &Server{
		Store:  store,
		Engine: engine,
		Config: config,
	}

	return server, nil
}
