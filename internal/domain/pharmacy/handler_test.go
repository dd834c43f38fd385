package pharmacy

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/clinicdesk/clinicdesk/internal/platform/middleware"
)

func newTestHandler() (*Handler, *echo.Echo) {
	h := NewHandler(newTestService())
	e := echo.New()
	return h, e
}

func TestHandler_CreateBrand(t *testing.T) {
	h, e := newTestHandler()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/brands", strings.NewReader(`{"name":"Acme"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.CreateBrand(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d", rec.Code)
	}
}

func TestHandler_CreateBrand_Conflict(t *testing.T) {
	h, e := newTestHandler()

	h.svc.CreateBrand(nil, &Brand{Name: "Acme"})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/brands", strings.NewReader(`{"name":"ACME"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.CreateBrand(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %v", err)
	}
}

func TestHandler_UpdateBrand_Conflict(t *testing.T) {
	h, e := newTestHandler()

	h.svc.CreateBrand(nil, &Brand{Name: "Acme"})
	other := &Brand{Name: "Globex"}
	h.svc.CreateBrand(nil, other)

	req := httptest.NewRequest(http.MethodPut, "/", strings.NewReader(`{"name":"acme"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(other.ID.String())

	err := h.UpdateBrand(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %v", err)
	}
}

func TestHandler_CreateMedicine(t *testing.T) {
	h, e := newTestHandler()

	body := `{"name":"Paracetamol 500mg","price":20,"stock":100}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/medicines", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.CreateMedicine(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d", rec.Code)
	}
}

func TestHandler_UpdatePurchase_LegacyFormPost(t *testing.T) {
	h, e := newTestHandler()
	e.Pre(middleware.MethodOverride())
	e.PUT("/api/v1/purchases/:id", h.UpdatePurchase)

	medicine := uuid.New()
	existing := &Purchase{
		SupplierID: uuid.New(),
		Items:      []PurchaseItem{{MedicineID: medicine, Quantity: 1, UnitPrice: 10}},
		Total:      10,
		Date:       "2024-04-01",
	}
	if err := h.svc.CreatePurchase(nil, existing); err != nil {
		t.Fatalf("seed purchase: %v", err)
	}

	newSupplier := uuid.New()
	itemsJSON, _ := json.Marshal([]PurchaseItem{{MedicineID: medicine, Quantity: 3, UnitPrice: 14}})

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	w.WriteField("_method", "PUT")
	w.WriteField("supplier_id", newSupplier.String())
	w.WriteField("date", "2024-05-01")
	w.WriteField("total", "42.5")
	w.WriteField("items", string(itemsJSON))
	w.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/purchases/"+existing.ID.String(), &buf)
	req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	got, err := h.svc.GetPurchase(nil, existing.ID)
	if err != nil {
		t.Fatalf("GetPurchase: %v", err)
	}
	if got.SupplierID != newSupplier {
		t.Errorf("supplier_id = %s, want %s", got.SupplierID, newSupplier)
	}
	if got.Date != "2024-05-01" {
		t.Errorf("date = %q, want 2024-05-01", got.Date)
	}
	if got.Total != 42.5 {
		t.Errorf("total = %v, want 42.5", got.Total)
	}
	if len(got.Items) != 1 || got.Items[0].Quantity != 3 {
		t.Errorf("unexpected items: %+v", got.Items)
	}
}

func TestHandler_UpdatePurchase_LegacyFormBadItems(t *testing.T) {
	h, e := newTestHandler()
	e.Pre(middleware.MethodOverride())
	e.PUT("/api/v1/purchases/:id", h.UpdatePurchase)

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	w.WriteField("_method", "PUT")
	w.WriteField("date", "2024-05-01")
	w.WriteField("items", "not-json")
	w.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/purchases/"+uuid.New().String(), &buf)
	req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}
