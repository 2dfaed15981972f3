// Package api exposes generation, certification and the statistical suite
// over HTTP.
package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"randcert-go/pkg/certify"
	"randcert-go/pkg/congruential"
	"randcert-go/pkg/log"
	"randcert-go/pkg/reportstore"
)

type Server struct {
	Api       *echo.Echo
	certifier *certify.Certifier
	store     *reportstore.Store
	settings  certify.GeneratorSettings
}

// New wires the routes. store may be nil, in which case the report
// endpoints answer 503.
func New(certifier *certify.Certifier, store *reportstore.Store, settings certify.GeneratorSettings) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:  true,
		LogURI:     true,
		LogStatus:  true,
		LogLatency: true,
		LogError:   true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Error != nil {
				ev = log.Warn().Err(v.Error)
			}
			ev.Str("method", v.Method).Str("uri", v.URI).Int("status", v.Status).Dur("latency", v.Latency).Msg("api request")
			return nil
		},
	}))

	s := &Server{Api: e, certifier: certifier, store: store, settings: settings}
	v1 := e.Group("/v1")
	v1.GET("/health", s.Health)
	v1.POST("/generate", s.Generate)
	v1.POST("/certify", s.Certify)
	v1.POST("/tests", s.Tests)
	v1.GET("/reports", s.ListReports)
	v1.GET("/reports/:id", s.GetReport)
	return s
}

// Run blocks serving on addr until Shutdown.
func (s *Server) Run(addr string) error {
	log.Info().Str("addr", addr).Msg("api listening")
	if err := s.Api.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.Api.Shutdown(ctx)
}

// GeneratorRequest selects a configuration. Omitted parameters fall back to
// the server settings.
type GeneratorRequest struct {
	Count       int     `json:"count"`
	Multiplier  *uint64 `json:"multiplier,omitempty"`
	Increment   *uint64 `json:"increment,omitempty"`
	Modulus     *uint64 `json:"modulus,omitempty"`
	PoolSize    *int    `json:"pool_size,omitempty"`
	InitialSeed *int    `json:"initial_seed,omitempty"`
}

func (r GeneratorRequest) config(settings certify.GeneratorSettings) congruential.Config {
	if r.Multiplier != nil {
		settings.Multiplier = *r.Multiplier
	}
	if r.Increment != nil {
		settings.Increment = *r.Increment
	}
	if r.Modulus != nil {
		settings.Modulus = *r.Modulus
	}
	if r.InitialSeed != nil {
		settings.InitialSeed = *r.InitialSeed
	}
	cfg := settings.For(r.Count)
	if r.PoolSize != nil {
		cfg.PoolSize = *r.PoolSize
	}
	return cfg
}

type TestsRequest struct {
	Values  []uint64 `json:"values"`
	Modulus uint64   `json:"modulus"`
}

// httpError maps domain errors onto status codes.
func httpError(err error) error {
	var cfgErr *congruential.ConfigurationError
	switch {
	case errors.As(err, &cfgErr):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, congruential.ErrOutOfRange):
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, reportstore.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, context.Canceled):
		return echo.NewHTTPError(http.StatusServiceUnavailable, err.Error())
	}
	return echo.NewHTTPError(http.StatusInternalServerError, err.Error()).SetInternal(err)
}

func (s *Server) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) Generate(c echo.Context) error {
	var req GeneratorRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	sample, err := certify.Generate(req.config(s.settings))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, sample)
}

func (s *Server) Certify(c echo.Context) error {
	var req GeneratorRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	report, err := s.certifier.Certify(c.Request().Context(), req.config(s.settings))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, report)
}

func (s *Server) Tests(c echo.Context) error {
	var req TestsRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	res, err := certify.TestValues(c.Request().Context(), req.Values, req.Modulus)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, res)
}

func (s *Server) ListReports(c echo.Context) error {
	if s.store == nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "report store disabled")
	}
	limit := 20
	if q := c.QueryParam("limit"); q != "" {
		n, err := strconv.Atoi(q)
		if err != nil || n < 0 {
			return echo.NewHTTPError(http.StatusBadRequest, "limit must be a non-negative integer")
		}
		limit = n
	}
	reports, err := s.store.List(limit)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, reports)
}

func (s *Server) GetReport(c echo.Context) error {
	if s.store == nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "report store disabled")
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed report id")
	}
	report, err := s.store.Get(id)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, report)
}
