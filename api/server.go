// Package api exposes a seating session over HTTP.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"airplane-seating-cli/model"
	"airplane-seating-cli/service"
)

type handler struct {
	svc service.Seating
}

// New builds the echo instance with every route registered.
func New(svc service.Seating, logger *log.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = httpErrorHandler

	e.Use(RequestLogger(logger))
	e.Use(middleware.Recover())

	RegisterRoutes(e, svc)
	return e
}

func RegisterRoutes(e *echo.Echo, svc service.Seating) {
	h := &handler{svc: svc}

	e.GET("/healthz", health)

	v1 := e.Group("/v1")
	v1.GET("/seats", h.seats)
	v1.GET("/availability", h.availability)
	v1.POST("/bookings", h.assign)
	v1.POST("/state/save", h.save)
	v1.POST("/state/load", h.load)
	v1.POST("/state/reset", h.reset)
}

// Serve runs e on addr until ctx is cancelled, then shuts down gracefully.
func Serve(ctx context.Context, e *echo.Echo, addr string) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- e.Start(addr)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return e.Shutdown(shutdownCtx)
	}
}

func health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

type seatsResponse struct {
	Sort  string              `json:"sort"`
	Seats []model.SeatSummary `json:"seats"`
}

func (h *handler) seats(c echo.Context) error {
	key, err := model.ParseSortKey(c.QueryParam("sort"))
	if err != nil {
		return writeDomainError(c, err)
	}
	rows, err := h.svc.Seats(c.Request().Context(), key)
	if err != nil {
		return writeDomainError(c, err)
	}
	if raw := c.QueryParam("class"); raw != "" {
		class, err := model.ParseFareClass(raw)
		if err != nil {
			return writeDomainError(c, err)
		}
		rows = model.FilterClass(rows, class)
	}
	return c.JSON(http.StatusOK, seatsResponse{Sort: key.String(), Seats: rows})
}

func (h *handler) availability(c echo.Context) error {
	avail, err := h.svc.Availability(c.Request().Context())
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, avail)
}

type assignRequest struct {
	Class      string   `json:"class"`
	Count      int      `json:"count"`
	Passengers []string `json:"passengers"`
}

func (h *handler) assign(c echo.Context) error {
	var req assignRequest
	dec := json.NewDecoder(c.Request().Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		return writeError(c, http.StatusBadRequest, service.CodeInvalidRequestBody, "invalid request body")
	}
	if strings.TrimSpace(req.Class) == "" {
		return writeError(c, http.StatusBadRequest, service.CodeInvalidRequestBody, "class is required")
	}
	class, err := model.ParseFareClass(req.Class)
	if err != nil {
		return writeDomainError(c, err)
	}

	booking, err := h.svc.Assign(c.Request().Context(), model.AssignmentRequest{
		Class: class,
		Count: req.Count,
		Names: req.Passengers,
	})
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusCreated, booking)
}

func (h *handler) save(c echo.Context) error {
	if err := h.svc.Save(c.Request().Context()); err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]bool{"saved": true})
}

func (h *handler) load(c echo.Context) error {
	found, err := h.svc.Load(c.Request().Context())
	if err != nil {
		return writeDomainError(c, err)
	}
	if !found {
		return writeError(c, http.StatusNotFound, service.CodeStateNotFound, "no saved seating state")
	}
	return c.JSON(http.StatusOK, map[string]bool{"loaded": true})
}

func (h *handler) reset(c echo.Context) error {
	if err := h.svc.Reset(c.Request().Context()); err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]bool{"reset": true})
}
