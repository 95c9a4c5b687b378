package identity

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/medconnect/medconnect/internal/platform/auth"
)

func newTestHandler() (*Handler, *Service, *echo.Echo) {
	svc, _ := newTestService()
	return NewHandler(svc), svc, echo.New()
}

func jsonRequest(e *echo.Echo, method, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestHandler_Register(t *testing.T) {
	h, _, e := newTestHandler()
	c, rec := jsonRequest(e, http.MethodPost, `{"name":"Alice","email":"alice@x.com","password":"pw123"}`)

	if err := h.Register(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d", rec.Code)
	}

	var out UserOut
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if out.Role != auth.RolePatient {
		t.Errorf("expected default role patient, got %s", out.Role)
	}
}

func TestHandler_Register_DuplicateEmail(t *testing.T) {
	h, _, e := newTestHandler()
	c, _ := jsonRequest(e, http.MethodPost, `{"name":"Alice","email":"alice@x.com","password":"pw"}`)
	if err := h.Register(c); err != nil {
		t.Fatalf("first register failed: %v", err)
	}

	c, _ = jsonRequest(e, http.MethodPost, `{"name":"Eve","email":"alice@x.com","password":"pw"}`)
	err := h.Register(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for duplicate email, got %v", err)
	}
}

func TestHandler_Login_InvalidCredentials(t *testing.T) {
	h, _, e := newTestHandler()
	c, _ := jsonRequest(e, http.MethodPost, `{"email":"ghost@x.com","password":"pw"}`)
	err := h.Login(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}

func TestHandler_Login_IssuesToken(t *testing.T) {
	h, _, e := newTestHandler()
	c, _ := jsonRequest(e, http.MethodPost, `{"name":"Alice","email":"alice@x.com","password":"pw123"}`)
	if err := h.Register(c); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	c, rec := jsonRequest(e, http.MethodPost, `{"email":"alice@x.com","password":"pw123"}`)
	if err := h.Login(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var out tokenResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if out.AccessToken == "" || out.TokenType != "bearer" {
		t.Errorf("unexpected token response: %+v", out)
	}
}

func TestHandler_Me(t *testing.T) {
	h, svc, e := newTestHandler()
	u, _ := svc.Register(nil, "Alice", "alice@x.com", "pw", "")

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(auth.WithIdentity(req.Context(), auth.Identity{UserID: u.ID, Role: u.Role}))
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Me(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var out UserOut
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if out.Email != "alice@x.com" {
		t.Errorf("unexpected email %s", out.Email)
	}
}

func TestHandler_UpdateProfile_Multipart(t *testing.T) {
	h, svc, e := newTestHandler()
	u, _ := svc.Register(nil, "Alice", "alice@x.com", "pw", "")

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	mw.WriteField("name", "Alice Updated")
	fw, _ := mw.CreateFormFile("profile_image", "avatar.png")
	fw.Write([]byte{0x89, 0x50, 0x4e, 0x47})
	mw.Close()

	req := httptest.NewRequest(http.MethodPut, "/", &buf)
	req.Header.Set(echo.HeaderContentType, mw.FormDataContentType())
	req = req.WithContext(auth.WithIdentity(req.Context(), auth.Identity{UserID: u.ID, Role: u.Role}))
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.UpdateProfile(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var out ProfileOut
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if out.Name != "Alice Updated" {
		t.Errorf("expected updated name, got %s", out.Name)
	}
	if out.Email != "alice@x.com" {
		t.Errorf("absent field must stay untouched, got %s", out.Email)
	}
	if len(out.ProfileImage) == 0 {
		t.Error("expected profile image bytes in response")
	}
}
