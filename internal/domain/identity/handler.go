package identity

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/medconnect/medconnect/internal/platform/auth"
)

// maxImageBytes caps profile image uploads.
const maxImageBytes = 5 << 20

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(g *echo.Group, authMW echo.MiddlewareFunc) {
	g.POST("/register", h.Register)
	g.POST("/login", h.Login)

	authed := g.Group("", authMW)
	authed.GET("/me", h.Me)
	authed.GET("/profile", h.Profile)
	authed.PUT("/update-profile", h.UpdateProfile)
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// UserOut is the public shape of a user record.
type UserOut struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// ProfileOut additionally carries the profile image, base64-encoded by the
// JSON marshaller.
type ProfileOut struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Role         string    `json:"role"`
	ProfileImage []byte    `json:"profile_image,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

func userOut(u *User) UserOut {
	return UserOut{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role, CreatedAt: u.CreatedAt}
}

func profileOut(u *User) ProfileOut {
	return ProfileOut{
		ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role,
		ProfileImage: u.ProfileImage, CreatedAt: u.CreatedAt,
	}
}

func (h *Handler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	u, err := h.svc.Register(c.Request().Context(), req.Name, req.Email, req.Password, req.Role)
	switch {
	case errors.Is(err, ErrDuplicateEmail):
		return echo.NewHTTPError(http.StatusBadRequest, "email already registered")
	case errors.Is(err, ErrValidation):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case err != nil:
		return echo.NewHTTPError(http.StatusInternalServerError, "could not register user")
	}
	return c.JSON(http.StatusCreated, userOut(u))
}

func (h *Handler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	token, err := h.svc.Login(c.Request().Context(), req.Email, req.Password)
	switch {
	case errors.Is(err, ErrInvalidCredentials):
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid credentials")
	case err != nil:
		return echo.NewHTTPError(http.StatusInternalServerError, "could not log in")
	}
	return c.JSON(http.StatusOK, tokenResponse{AccessToken: token, TokenType: "bearer"})
}

func (h *Handler) Me(c echo.Context) error {
	ident, _ := auth.IdentityFromContext(c.Request().Context())
	u, err := h.svc.GetByID(c.Request().Context(), ident.UserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "user not found")
	}
	return c.JSON(http.StatusOK, userOut(u))
}

func (h *Handler) Profile(c echo.Context) error {
	ident, _ := auth.IdentityFromContext(c.Request().Context())
	u, err := h.svc.GetByID(c.Request().Context(), ident.UserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "user not found")
	}
	return c.JSON(http.StatusOK, profileOut(u))
}

// UpdateProfile accepts a multipart form with optional name, email, and
// password fields plus an optional profile_image file. Absent or empty
// fields leave the stored value untouched.
func (h *Handler) UpdateProfile(c echo.Context) error {
	ident, _ := auth.IdentityFromContext(c.Request().Context())

	var upd ProfileUpdate
	if v := c.FormValue("name"); v != "" {
		upd.Name = &v
	}
	if v := c.FormValue("email"); v != "" {
		upd.Email = &v
	}
	if v := c.FormValue("password"); v != "" {
		upd.Password = &v
	}

	if fh, err := c.FormFile("profile_image"); err == nil {
		if fh.Size > maxImageBytes {
			return echo.NewHTTPError(http.StatusBadRequest, "profile image too large")
		}
		f, err := fh.Open()
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "could not read profile image")
		}
		defer f.Close()
		data, err := io.ReadAll(io.LimitReader(f, maxImageBytes))
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "could not read profile image")
		}
		upd.Image = data
	}

	u, err := h.svc.UpdateProfile(c.Request().Context(), ident.UserID, upd)
	switch {
	case errors.Is(err, ErrDuplicateEmail):
		return echo.NewHTTPError(http.StatusBadRequest, "email already registered")
	case errors.Is(err, ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "user not found")
	case err != nil:
		return echo.NewHTTPError(http.StatusInternalServerError, "could not update profile")
	}
	return c.JSON(http.StatusOK, profileOut(u))
}
