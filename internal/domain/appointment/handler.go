package appointment

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/medconnect/medconnect/internal/platform/auth"
	"github.com/medconnect/medconnect/pkg/pagination"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(g *echo.Group, authMW echo.MiddlewareFunc) {
	authed := g.Group("", authMW)
	authed.POST("/book", h.Book, auth.RequireRole(auth.RolePatient))
	authed.PUT("/:id/status", h.SetStatus, auth.RequireRole(auth.RoleDoctor))
	authed.DELETE("/:id", h.Cancel, auth.RequireRole(auth.RolePatient))
	authed.GET("/doctor", h.ListForDoctor, auth.RequireRole(auth.RoleDoctor))
	authed.GET("/patient", h.ListForPatient, auth.RequireRole(auth.RolePatient))
	authed.GET("/admin", h.ListAll, auth.RequireRole(auth.RoleAdmin))
}

type bookRequest struct {
	DoctorID int64  `json:"doctor_id"`
	Date     string `json:"date"`
	TimeSlot string `json:"time_slot"`
}

type statusRequest struct {
	Status string `json:"status"`
}

func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}

func (h *Handler) Book(c echo.Context) error {
	ident, _ := auth.IdentityFromContext(c.Request().Context())

	var in bookRequest
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	date, err := parseDate(in.Date)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid date")
	}

	a, err := h.svc.Book(c.Request().Context(), ident.UserID, in.DoctorID, date, in.TimeSlot)
	switch {
	case errors.Is(err, ErrDoctorNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "doctor not found")
	case errors.Is(err, ErrValidation):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case err != nil:
		return echo.NewHTTPError(http.StatusInternalServerError, "could not book appointment")
	}
	return c.JSON(http.StatusCreated, a)
}

func (h *Handler) SetStatus(c echo.Context) error {
	ident, _ := auth.IdentityFromContext(c.Request().Context())

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var in statusRequest
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	err = h.svc.SetStatus(c.Request().Context(), ident.UserID, id, in.Status)
	switch {
	case errors.Is(err, ErrInvalidStatus):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "appointment not found")
	case errors.Is(err, ErrForbidden):
		return echo.NewHTTPError(http.StatusForbidden, "appointment belongs to another doctor")
	case err != nil:
		return echo.NewHTTPError(http.StatusInternalServerError, "could not update appointment")
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "appointment " + in.Status})
}

func (h *Handler) Cancel(c echo.Context) error {
	ident, _ := auth.IdentityFromContext(c.Request().Context())

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	err = h.svc.Cancel(c.Request().Context(), ident.UserID, id)
	switch {
	case errors.Is(err, ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "appointment not found")
	case errors.Is(err, ErrForbidden):
		return echo.NewHTTPError(http.StatusForbidden, "appointment belongs to another patient")
	case err != nil:
		return echo.NewHTTPError(http.StatusInternalServerError, "could not cancel appointment")
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "appointment cancelled"})
}

func (h *Handler) ListForDoctor(c echo.Context) error {
	ident, _ := auth.IdentityFromContext(c.Request().Context())

	items, err := h.svc.ListForDoctor(c.Request().Context(), ident.UserID)
	if errors.Is(err, ErrNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "doctor profile not found")
	}
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "could not list appointments")
	}
	if items == nil {
		items = []*Appointment{}
	}
	return c.JSON(http.StatusOK, items)
}

func (h *Handler) ListForPatient(c echo.Context) error {
	ident, _ := auth.IdentityFromContext(c.Request().Context())

	items, err := h.svc.ListForPatient(c.Request().Context(), ident.UserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "could not list appointments")
	}
	if items == nil {
		items = []*Appointment{}
	}
	return c.JSON(http.StatusOK, items)
}

func (h *Handler) ListAll(c echo.Context) error {
	pg := pagination.FromContext(c)
	items, total, err := h.svc.ListAll(c.Request().Context(), pg.Limit, pg.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "could not list appointments")
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}
