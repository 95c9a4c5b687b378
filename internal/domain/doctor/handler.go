package doctor

import (
	"errors"
	"net/http"
	"strconv"

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
	g.GET("/approved", h.ListApproved)

	authed := g.Group("", authMW)
	authed.GET("/me", h.Me, auth.RequireRole(auth.RoleDoctor))
	authed.POST("/create", h.Upsert, auth.RequireRole(auth.RoleDoctor))
	authed.PUT("/approve/:id", h.Approve, auth.RequireRole(auth.RoleAdmin))
	authed.GET("/all", h.ListAll, auth.RequireRole(auth.RoleAdmin))
}

func (h *Handler) Me(c echo.Context) error {
	ident, _ := auth.IdentityFromContext(c.Request().Context())
	d, err := h.svc.GetByUserID(c.Request().Context(), ident.UserID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "doctor profile not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "could not load profile")
	}
	return c.JSON(http.StatusOK, d)
}

func (h *Handler) Upsert(c echo.Context) error {
	ident, _ := auth.IdentityFromContext(c.Request().Context())

	var in ProfileInput
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	d, err := h.svc.Upsert(c.Request().Context(), ident.UserID, in)
	switch {
	case errors.Is(err, ErrValidation):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case err != nil:
		return echo.NewHTTPError(http.StatusInternalServerError, "could not save profile")
	}
	return c.JSON(http.StatusOK, d)
}

func (h *Handler) Approve(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if err := h.svc.Approve(c.Request().Context(), id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "doctor not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "could not approve doctor")
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "doctor approved"})
}

func (h *Handler) ListApproved(c echo.Context) error {
	items, err := h.svc.ListApproved(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "could not list doctors")
	}
	if items == nil {
		items = []*Doctor{}
	}
	return c.JSON(http.StatusOK, items)
}

func (h *Handler) ListAll(c echo.Context) error {
	pg := pagination.FromContext(c)
	items, total, err := h.svc.ListAll(c.Request().Context(), pg.Limit, pg.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "could not list doctors")
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}
