package lab

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

func newTestHandler() (*Handler, *echo.Echo) {
	h := NewHandler(newTestService())
	e := echo.New()
	return h, e
}

func TestHandler_CreateLabBooking(t *testing.T) {
	h, e := newTestHandler()

	body := fmt.Sprintf(`{"patient_id":%q,"tests":[%q],"date":"2024-05-01","total":350}`,
		uuid.New(), uuid.New())
	req := httptest.NewRequest(http.MethodPost, "/api/v1/lab-bookings", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.CreateLabBooking(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d", rec.Code)
	}
}

func TestHandler_MarkLabBookingPaid(t *testing.T) {
	h, e := newTestHandler()

	b := &LabBooking{PatientID: uuid.New(), TestIDs: []string{"t"}, Date: "2024-05-01", Total: 100}
	h.svc.CreateLabBooking(nil, b)

	req := httptest.NewRequest(http.MethodPost, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(b.ID.String())

	if err := h.MarkLabBookingPaid(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
	got, _ := h.svc.GetLabBooking(nil, b.ID)
	if !got.Paid {
		t.Error("expected booking marked paid")
	}
}

func TestHandler_MarkLabBookingPaid_NotFound(t *testing.T) {
	h, e := newTestHandler()

	req := httptest.NewRequest(http.MethodPost, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(uuid.New().String())

	if err := h.MarkLabBookingPaid(c); err == nil {
		t.Error("expected error for unknown booking")
	}
}

func TestHandler_ListLabTests(t *testing.T) {
	h, e := newTestHandler()

	h.svc.CreateLabTest(nil, &LabTest{Name: "CBC", Price: 350})
	h.svc.CreateLabTest(nil, &LabTest{Name: "Lipid Profile", Price: 700})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/lab-tests", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.ListLabTests(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var resp struct {
		Data  []LabTest `json:"data"`
		Total int       `json:"total"`
	}
	json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp.Total != 2 {
		t.Errorf("expected total 2, got %d", resp.Total)
	}
}
