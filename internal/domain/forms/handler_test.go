package forms

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
)

func newTestHandler() (*Handler, *echo.Echo) {
	h := NewHandler(newTestService())
	e := echo.New()
	return h, e
}

func TestHandler_CreateForm(t *testing.T) {
	h, e := newTestHandler()

	body := `{"name":"Intake","fields":[{"label":"Complaint","kind":"textarea","required":true}]}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/forms", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.CreateForm(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"status":"draft"`) {
		t.Errorf("expected default draft status, got %s", rec.Body.String())
	}
}

func TestHandler_CreateForm_InvalidField(t *testing.T) {
	h, e := newTestHandler()

	body := `{"name":"Intake","fields":[{"label":"Gender","kind":"select"}]}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/forms", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.CreateForm(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestHandler_ListForms(t *testing.T) {
	h, e := newTestHandler()

	h.svc.CreateForm(nil, &Form{Name: "Intake"})
	h.svc.CreateForm(nil, &Form{Name: "Discharge"})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/forms", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.ListForms(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(rec.Body.String(), `"total":2`) {
		t.Errorf("expected total 2, got %s", rec.Body.String())
	}
}
