package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
)

func newTestClient(handler http.HandlerFunc) (*Client, *httptest.Server) {
	srv := httptest.NewServer(handler)
	c := New(Credentials{BaseURL: srv.URL, Token: "test-token", ClinicID: "clinic-1"})
	return c, srv
}

func TestList_Headers(t *testing.T) {
	var gotAuth, gotClinic string
	c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotClinic = r.Header.Get("X-Clinic-ID")
		fmt.Fprint(w, `{"data":[]}`)
	})
	defer srv.Close()

	if _, err := c.List(context.Background(), "/api/v1/doctors", nil); err != nil {
		t.Fatalf("List: %v", err)
	}
	if gotAuth != "Bearer test-token" {
		t.Errorf("expected bearer token header, got %q", gotAuth)
	}
	if gotClinic != "clinic-1" {
		t.Errorf("expected clinic header, got %q", gotClinic)
	}
}

func TestList_EnvelopeShapes(t *testing.T) {
	want := []Record{
		{"id": "a", "name": "Acme"},
		{"id": "b", "name": "Globex"},
	}
	cases := []struct {
		name string
		body string
	}{
		{"wrapped", `{"data":[{"id":"a","name":"Acme"},{"id":"b","name":"Globex"}]}`},
		{"bare array", `[{"id":"a","name":"Acme"},{"id":"b","name":"Globex"}]`},
		{"keyed by id", `{"a":{"id":"a","name":"Acme"},"b":{"id":"b","name":"Globex"}}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprint(w, tc.body)
			})
			defer srv.Close()

			got, err := c.List(context.Background(), "/api/v1/brands", nil)
			if err != nil {
				t.Fatalf("List: %v", err)
			}
			if !reflect.DeepEqual(got, want) {
				t.Errorf("got %v, want %v", got, want)
			}
		})
	}
}

func TestList_MalformedShapesDegradeToEmpty(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"data not an array", `{"data":"oops"}`},
		{"scalar", `42`},
		{"array of scalars", `[1,2,3]`},
		{"not json", `<html>`},
		{"mixed keyed object", `{"a":{"id":"a"},"total":5}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprint(w, tc.body)
			})
			defer srv.Close()

			got, err := c.List(context.Background(), "/api/v1/brands", nil)
			if err != nil {
				t.Fatalf("malformed shape must not error: %v", err)
			}
			if len(got) != 0 {
				t.Errorf("expected empty collection, got %v", got)
			}
		})
	}
}

func TestCreate(t *testing.T) {
	c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		var payload Record
		json.NewDecoder(r.Body).Decode(&payload)
		payload["id"] = "new-id"
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(payload)
	})
	defer srv.Close()

	rec, err := c.Create(context.Background(), "/api/v1/brands", Record{"name": "Acme"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if rec["id"] != "new-id" || rec["name"] != "Acme" {
		t.Errorf("unexpected record: %v", rec)
	}
}

func TestDelete_APIError(t *testing.T) {
	c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"message":"brand not found"}`)
	})
	defer srv.Close()

	err := c.Delete(context.Background(), "/api/v1/brands", "missing")
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %v", err)
	}
	if apiErr.Status != http.StatusNotFound || apiErr.Message != "brand not found" {
		t.Errorf("unexpected error: %+v", apiErr)
	}
}

func TestUpdateOverride_MultipartMethodField(t *testing.T) {
	var gotMethod, gotOverride, gotName string
	c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		r.ParseMultipartForm(1 << 20)
		gotOverride = r.FormValue("_method")
		gotName = r.FormValue("name")
		fmt.Fprint(w, `{"id":"x","name":"Acme"}`)
	})
	defer srv.Close()

	if _, err := c.UpdateOverride(context.Background(), "/api/v1/brands", "x", Record{"name": "Acme"}); err != nil {
		t.Fatalf("UpdateOverride: %v", err)
	}
	if gotMethod != http.MethodPost {
		t.Errorf("expected POST carrier, got %s", gotMethod)
	}
	if gotOverride != http.MethodPut {
		t.Errorf("expected _method=PUT, got %q", gotOverride)
	}
	if gotName != "Acme" {
		t.Errorf("expected name field, got %q", gotName)
	}
}

func TestUpdateOverride_StructuredFieldsJSONEncoded(t *testing.T) {
	var gotItems, gotTotal string
	c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		r.ParseMultipartForm(1 << 20)
		gotItems = r.FormValue("items")
		gotTotal = r.FormValue("total")
		fmt.Fprint(w, `{"id":"x"}`)
	})
	defer srv.Close()

	payload := Record{
		"total": 42.5,
		"items": []interface{}{
			map[string]interface{}{"medicine_id": "m1", "quantity": float64(3)},
		},
	}
	if _, err := c.UpdateOverride(context.Background(), "/api/v1/purchases", "x", payload); err != nil {
		t.Fatalf("UpdateOverride: %v", err)
	}
	if gotTotal != "42.5" {
		t.Errorf("expected total as text, got %q", gotTotal)
	}

	var items []map[string]interface{}
	if err := json.Unmarshal([]byte(gotItems), &items); err != nil {
		t.Fatalf("items field is not valid JSON: %q", gotItems)
	}
	if len(items) != 1 || items[0]["quantity"] != float64(3) {
		t.Errorf("unexpected items payload: %v", items)
	}
}

func TestDeleteOverride(t *testing.T) {
	var gotOverride string
	c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		r.ParseMultipartForm(1 << 20)
		gotOverride = r.FormValue("_method")
		w.WriteHeader(http.StatusNoContent)
	})
	defer srv.Close()

	if err := c.DeleteOverride(context.Background(), "/api/v1/brands", "x"); err != nil {
		t.Fatalf("DeleteOverride: %v", err)
	}
	if gotOverride != http.MethodDelete {
		t.Errorf("expected _method=DELETE, got %q", gotOverride)
	}
}

func TestSetStatus(t *testing.T) {
	var gotPath string
	var gotBody Record
	c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		json.NewDecoder(r.Body).Decode(&gotBody)
		fmt.Fprint(w, `{}`)
	})
	defer srv.Close()

	if err := c.SetStatus(context.Background(), "/api/v1/users", "u1", "inactive"); err != nil {
		t.Fatalf("SetStatus: %v", err)
	}
	if gotPath != "/api/v1/users/u1/status" {
		t.Errorf("unexpected path %q", gotPath)
	}
	if gotBody["status"] != "inactive" {
		t.Errorf("unexpected body %v", gotBody)
	}
}

func TestGet_UnwrapsDataEnvelope(t *testing.T) {
	c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"data":{"id":"a","name":"Acme"}}`)
	})
	defer srv.Close()

	rec, err := c.Get(context.Background(), "/api/v1/brands", "a")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if rec["name"] != "Acme" {
		t.Errorf("unexpected record: %v", rec)
	}
}
