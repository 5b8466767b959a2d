// Package server exposes the word store and drill history over HTTP, with
// the same surface the web client consumes: word pool fetches with
// optional shuffle and mistake prioritisation, the unit/section structure,
// and history reads and writes.
package server

import (
	"log/slog"
	"math/rand"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"

	"github.com/jsvoboda/lexidrill/internal/store"
)

// Server is the HTTP API over a Store.
type Server struct {
	echo   *echo.Echo
	store  *store.Store
	logger *slog.Logger
	rng    *rand.Rand
}

// New creates the API server. The random source drives pool shuffling.
func New(st *store.Store, logger *slog.Logger, rng *rand.Rand) *Server {
	s := &Server{
		echo:   echo.New(),
		store:  st,
		logger: logger,
		rng:    rng,
	}

	s.echo.HideBanner = true
	s.echo.Use(middleware.Recover())
	s.echo.Use(middleware.CORS())
	s.echo.Use(s.requestLogger())

	api := s.echo.Group("/api")
	api.GET("/words", s.listWords)
	api.GET("/structure", s.structure)
	api.GET("/languages", s.languages)
	api.GET("/history", s.listHistory)
	api.POST("/history", s.appendHistory)

	return s
}

// Start blocks serving HTTP on addr.
func (s *Server) Start(addr string) error {
	return s.echo.Start(addr)
}

// Handler exposes the router, for tests.
func (s *Server) Handler() http.Handler {
	return s.echo
}

func (s *Server) requestLogger() echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:    true,
		LogStatus: true,
		LogMethod: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			s.logger.Info("request",
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
			)
			return nil
		},
	})
}

func (s *Server) listWords(c echo.Context) error {
	opts := store.PoolOptions{
		Filter: store.PoolFilter{
			Unit:    c.QueryParam("unit"),
			Section: c.QueryParam("section"),
			Lang:    c.QueryParam("lang"),
		},
		Shuffle:            c.QueryParam("random") == "true",
		PrioritizeMistakes: c.QueryParam("prioritizeMistakes") == "true",
	}
	if raw := c.QueryParam("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 0 {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid limit")
		}
		opts.Limit = limit
	}

	words, err := s.store.Words().FetchPool(c.Request().Context(), opts, s.rng)
	if err != nil {
		return errors.Wrap(err, "fetch words")
	}
	return c.JSON(http.StatusOK, words)
}

func (s *Server) structure(c echo.Context) error {
	structure, err := s.store.Words().Structure(c.Request().Context(), c.QueryParam("lang"))
	if err != nil {
		return errors.Wrap(err, "fetch structure")
	}
	return c.JSON(http.StatusOK, structure)
}

func (s *Server) languages(c echo.Context) error {
	langs, err := s.store.Words().Languages(c.Request().Context())
	if err != nil {
		return errors.Wrap(err, "fetch languages")
	}
	return c.JSON(http.StatusOK, langs)
}

func (s *Server) listHistory(c echo.Context) error {
	entries, err := s.store.History().List(c.Request().Context())
	if err != nil {
		return errors.Wrap(err, "fetch history")
	}
	return c.JSON(http.StatusOK, entries)
}

func (s *Server) appendHistory(c echo.Context) error {
	var res store.Result
	if err := c.Bind(&res); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid history entry")
	}
	if res.Type == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "missing result type")
	}

	if err := s.store.History().Append(c.Request().Context(), res); err != nil {
		return errors.Wrap(err, "append history")
	}

	entries, err := s.store.History().List(c.Request().Context())
	if err != nil {
		return errors.Wrap(err, "count history")
	}
	return c.JSON(http.StatusOK, map[string]any{
		"success": true,
		"count":   len(entries),
	})
}
