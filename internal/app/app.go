package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/rizkyfalih/crown-league/internal/config"
	"github.com/rizkyfalih/crown-league/internal/interfaces/httpapi"
	"github.com/rizkyfalih/crown-league/internal/platform/logging"
	"github.com/rizkyfalih/crown-league/internal/usecase"
)

// NewHTTPServer builds the league engine and the HTTP server exposing it.
// The world is generated eagerly so a misconfigured engine fails at startup.
func NewHTTPServer(ctx context.Context, cfg config.Config, logger *logging.Logger) (*http.Server, *usecase.League, error) {
	if logger == nil {
		logger = logging.Default()
	}

	league, err := usecase.NewLeague(ctx, cfg, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("build league: %w", err)
	}

	handler := httpapi.NewHandler(league, logger)
	router := httpapi.NewRouter(handler, logger, cfg.CORSAllowedOrigins)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	if server.Addr == "" {
		return nil, nil, fmt.Errorf("http server addr cannot be empty")
	}

	return server, league, nil
}
