package admin

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/medconnect/medconnect/internal/platform/auth"
)

type Handler struct {
	stats StatsRepository
}

func NewHandler(stats StatsRepository) *Handler {
	return &Handler{stats: stats}
}

func (h *Handler) RegisterRoutes(g *echo.Group, authMW echo.MiddlewareFunc) {
	g.GET("/dashboard", h.Dashboard, authMW, auth.RequireRole(auth.RoleAdmin))
}

type dashboardResponse struct {
	Message string `json:"message"`
	Stats   Stats  `json:"stats"`
}

func (h *Handler) Dashboard(c echo.Context) error {
	ident, _ := auth.IdentityFromContext(c.Request().Context())

	stats, err := h.stats.Counts(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "could not load dashboard")
	}
	return c.JSON(http.StatusOK, dashboardResponse{
		Message: "Welcome Admin " + ident.Name,
		Stats:   stats,
	})
}
