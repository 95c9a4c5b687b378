package appointment

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/medconnect/medconnect/internal/domain/doctor"
	"github.com/medconnect/medconnect/internal/platform/auth"
	"github.com/medconnect/medconnect/pkg/pagination"
)

func newTestHandler() (*Handler, *Service, *mockDirectory, *echo.Echo) {
	svc, _, dir := newTestService()
	return NewHandler(svc), svc, dir, echo.New()
}

func authedRequest(e *echo.Echo, method, target, body string, ident auth.Identity) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req = req.WithContext(auth.WithIdentity(req.Context(), ident))
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestHandler_Book(t *testing.T) {
	h, _, dir, e := newTestHandler()
	dir.add(&doctor.Doctor{ID: 1, UserID: 10, Approved: true})

	c, rec := authedRequest(e, http.MethodPost, "/",
		`{"doctor_id":1,"date":"2025-01-01","time_slot":"10:00"}`,
		auth.Identity{UserID: 5, Role: auth.RolePatient})

	if err := h.Book(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var out Appointment
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if out.Status != StatusPending {
		t.Errorf("status = %s, want pending", out.Status)
	}
}

func TestHandler_Book_UnapprovedDoctor404(t *testing.T) {
	h, _, dir, e := newTestHandler()
	dir.add(&doctor.Doctor{ID: 1, UserID: 10, Approved: false})

	c, _ := authedRequest(e, http.MethodPost, "/",
		`{"doctor_id":1,"date":"2025-01-01","time_slot":"10:00"}`,
		auth.Identity{UserID: 5, Role: auth.RolePatient})

	err := h.Book(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %v", err)
	}
}

func TestHandler_Book_BadDate(t *testing.T) {
	h, _, _, e := newTestHandler()
	c, _ := authedRequest(e, http.MethodPost, "/",
		`{"doctor_id":1,"date":"tomorrow","time_slot":"10:00"}`,
		auth.Identity{UserID: 5, Role: auth.RolePatient})

	err := h.Book(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestHandler_SetStatus(t *testing.T) {
	h, svc, dir, e := newTestHandler()
	dir.add(&doctor.Doctor{ID: 1, UserID: 10, Approved: true})
	if _, err := svc.Book(context.Background(), 5, 1, testDate, "10:00"); err != nil {
		t.Fatalf("Book: %v", err)
	}

	c, rec := authedRequest(e, http.MethodPut, "/", `{"status":"confirmed"}`,
		auth.Identity{UserID: 10, Role: auth.RoleDoctor})
	c.SetParamNames("id")
	c.SetParamValues("1")

	if err := h.SetStatus(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestHandler_SetStatus_Forbidden(t *testing.T) {
	h, svc, dir, e := newTestHandler()
	dir.add(&doctor.Doctor{ID: 1, UserID: 10, Approved: true})
	dir.add(&doctor.Doctor{ID: 2, UserID: 20, Approved: true})
	if _, err := svc.Book(context.Background(), 5, 1, testDate, "10:00"); err != nil {
		t.Fatalf("Book: %v", err)
	}

	c, _ := authedRequest(e, http.MethodPut, "/", `{"status":"confirmed"}`,
		auth.Identity{UserID: 20, Role: auth.RoleDoctor})
	c.SetParamNames("id")
	c.SetParamValues("1")

	err := h.SetStatus(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %v", err)
	}
}

func TestHandler_Cancel(t *testing.T) {
	h, svc, dir, e := newTestHandler()
	dir.add(&doctor.Doctor{ID: 1, UserID: 10, Approved: true})
	if _, err := svc.Book(context.Background(), 5, 1, testDate, "10:00"); err != nil {
		t.Fatalf("Book: %v", err)
	}

	c, rec := authedRequest(e, http.MethodDelete, "/", "",
		auth.Identity{UserID: 5, Role: auth.RolePatient})
	c.SetParamNames("id")
	c.SetParamValues("1")

	if err := h.Cancel(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestHandler_ListForDoctor_NoProfile(t *testing.T) {
	h, _, _, e := newTestHandler()
	c, _ := authedRequest(e, http.MethodGet, "/", "",
		auth.Identity{UserID: 10, Role: auth.RoleDoctor})

	err := h.ListForDoctor(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %v", err)
	}
}

func TestHandler_ListForPatient_EmptyIsArray(t *testing.T) {
	h, _, _, e := newTestHandler()
	c, rec := authedRequest(e, http.MethodGet, "/", "",
		auth.Identity{UserID: 5, Role: auth.RolePatient})

	if err := h.ListForPatient(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := strings.TrimSpace(rec.Body.String()); got != "[]" {
		t.Errorf("expected empty JSON array, got %q", got)
	}
}

func TestHandler_ListAll_Paginated(t *testing.T) {
	h, svc, dir, e := newTestHandler()
	dir.add(&doctor.Doctor{ID: 1, UserID: 10, Approved: true})
	for i := 0; i < 3; i++ {
		if _, err := svc.Book(context.Background(), int64(i+1), 1, testDate, "10:00"); err != nil {
			t.Fatalf("Book: %v", err)
		}
	}

	c, rec := authedRequest(e, http.MethodGet, "/?limit=2", "",
		auth.Identity{UserID: 1, Role: auth.RoleAdmin})

	if err := h.ListAll(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var out pagination.Response
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if out.Total != 3 || !out.HasMore {
		t.Errorf("unexpected pagination envelope: %+v", out)
	}
}
