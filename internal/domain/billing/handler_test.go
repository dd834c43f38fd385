package billing

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
)

func newTestHandler() (*Handler, *echo.Echo) {
	svc, _, _, _ := newTestService()
	h := NewHandler(svc)
	e := echo.New()
	return h, e
}

func TestHandler_CreateTax(t *testing.T) {
	h, e := newTestHandler()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/taxes", strings.NewReader(`{"name":"GST","rate":18}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.CreateTax(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d", rec.Code)
	}
}

func TestHandler_CreateTax_Conflict(t *testing.T) {
	h, e := newTestHandler()

	h.svc.CreateTax(nil, &Tax{Name: "GST", Rate: 18})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/taxes", strings.NewReader(`{"name":"gst","rate":12}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.CreateTax(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %v", err)
	}
}

func TestHandler_UpdateTaxGroup_Conflict(t *testing.T) {
	h, e := newTestHandler()

	h.svc.CreateTaxGroup(nil, &TaxGroup{Name: "Standard"})
	other := &TaxGroup{Name: "Reduced"}
	h.svc.CreateTaxGroup(nil, other)

	req := httptest.NewRequest(http.MethodPut, "/", strings.NewReader(`{"name":"standard"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(other.ID.String())

	err := h.UpdateTaxGroup(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %v", err)
	}
}

func TestHandler_CreateFinanceRecord_InvalidKind(t *testing.T) {
	h, e := newTestHandler()

	body := `{"kind":"transfer","category":"misc","amount":100,"date":"2025-03-10"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/finance-records", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.CreateFinanceRecord(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestHandler_ListTaxes(t *testing.T) {
	h, e := newTestHandler()

	h.svc.CreateTax(nil, &Tax{Name: "GST", Rate: 18})
	h.svc.CreateTax(nil, &Tax{Name: "VAT", Rate: 5})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/taxes", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.ListTaxes(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"total":2`) {
		t.Errorf("expected total 2 in response, got %s", rec.Body.String())
	}
}
