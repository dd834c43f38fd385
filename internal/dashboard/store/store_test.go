package store

import (
	"context"
	"fmt"
	"net/url"
	"sync"
	"testing"

	"github.com/clinicdesk/clinicdesk/pkg/client"
)

// mockGateway scripts gateway responses without a network.
type mockGateway struct {
	mu        sync.Mutex
	lists     [][]client.Record
	listErr   error
	listCalls int
	created   client.Record
	createErr error
	deleteErr error
	// when set, List announces its call index on started and blocks until
	// its release channel is closed
	started chan int
	release []chan struct{}
}

func (m *mockGateway) List(_ context.Context, _ string, _ url.Values) ([]client.Record, error) {
	m.mu.Lock()
	call := m.listCalls
	m.listCalls++
	m.mu.Unlock()

	if m.started != nil {
		m.started <- call
		<-m.release[call]
	}
	if m.listErr != nil {
		return nil, m.listErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if call < len(m.lists) {
		return m.lists[call], nil
	}
	return m.lists[len(m.lists)-1], nil
}

func (m *mockGateway) Create(_ context.Context, _ string, payload client.Record) (client.Record, error) {
	if m.createErr != nil {
		return nil, m.createErr
	}
	rec := client.Record{"id": "created-id"}
	for k, v := range payload {
		rec[k] = v
	}
	m.created = rec
	return rec, nil
}

func (m *mockGateway) Update(_ context.Context, _, id string, payload client.Record) (client.Record, error) {
	rec := client.Record{"id": id}
	for k, v := range payload {
		rec[k] = v
	}
	return rec, nil
}

func (m *mockGateway) UpdateOverride(ctx context.Context, path, id string, payload client.Record) (client.Record, error) {
	return m.Update(ctx, path, id, payload)
}

func (m *mockGateway) Delete(_ context.Context, _, _ string) error       { return m.deleteErr }
func (m *mockGateway) DeleteOverride(_ context.Context, _, _ string) error { return m.deleteErr }

func (m *mockGateway) SetStatus(_ context.Context, _, _, _ string) error { return nil }

func (m *mockGateway) PostAction(_ context.Context, _, _, _ string) error { return nil }

func records(names ...string) []client.Record {
	out := make([]client.Record, len(names))
	for i, n := range names {
		out[i] = client.Record{"id": fmt.Sprintf("id-%s", n), "name": n}
	}
	return out
}

func TestList_ReplacesWholesale(t *testing.T) {
	gw := &mockGateway{lists: [][]client.Record{records("a", "b"), records("c")}}
	s := New(gw, "/api/v1/brands")

	if err := s.List(context.Background(), nil); err != nil {
		t.Fatalf("List: %v", err)
	}
	if got := s.Records(); len(got) != 2 {
		t.Fatalf("expected 2 records, got %d", len(got))
	}
	if err := s.List(context.Background(), nil); err != nil {
		t.Fatalf("List: %v", err)
	}
	got := s.Records()
	if len(got) != 1 || got[0]["name"] != "c" {
		t.Errorf("expected wholesale replacement, got %v", got)
	}
}

func TestList_FailureLeavesCollection(t *testing.T) {
	gw := &mockGateway{lists: [][]client.Record{records("a", "b")}}
	s := New(gw, "/api/v1/brands")

	if err := s.List(context.Background(), nil); err != nil {
		t.Fatalf("List: %v", err)
	}
	gw.listErr = fmt.Errorf("gateway down")
	if err := s.List(context.Background(), nil); err == nil {
		t.Fatal("expected error")
	}
	if got := s.Records(); len(got) != 2 {
		t.Errorf("failed List must not clear the cache, got %v", got)
	}
	if s.Err() == nil {
		t.Error("expected last error to be recorded")
	}
}

func TestList_Idempotent(t *testing.T) {
	gw := &mockGateway{lists: [][]client.Record{records("a", "b"), records("a", "b")}}
	s := New(gw, "/api/v1/brands")

	s.List(context.Background(), nil)
	first := s.Records()
	s.List(context.Background(), nil)
	second := s.Records()
	if len(first) != len(second) {
		t.Fatalf("expected identical collections, got %d and %d", len(first), len(second))
	}
	for i := range first {
		if first[i]["id"] != second[i]["id"] {
			t.Errorf("record %d differs: %v vs %v", i, first[i], second[i])
		}
	}
}

func TestList_StaleCompletionDiscarded(t *testing.T) {
	gw := &mockGateway{
		lists:   [][]client.Record{records("old"), records("new")},
		started: make(chan int, 2),
		release: []chan struct{}{make(chan struct{}), make(chan struct{})},
	}
	s := New(gw, "/api/v1/brands")

	done0 := make(chan struct{})
	done1 := make(chan struct{})
	go func() {
		s.List(context.Background(), nil)
		close(done0)
	}()
	<-gw.started // slow call in flight
	go func() {
		s.List(context.Background(), nil)
		close(done1)
	}()
	<-gw.started

	close(gw.release[1]) // newer call completes first
	<-done1
	close(gw.release[0]) // older response arrives late
	<-done0

	got := s.Records()
	if len(got) != 1 || got[0]["name"] != "new" {
		t.Errorf("stale completion must be discarded, got %v", got)
	}
}

func TestCreate_AppendsAndListRefreshes(t *testing.T) {
	gw := &mockGateway{lists: [][]client.Record{records("a"), records("a", "b")}}
	s := New(gw, "/api/v1/brands")
	s.List(context.Background(), nil)

	rec, err := s.Create(context.Background(), client.Record{"name": "b"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if rec["id"] != "created-id" {
		t.Errorf("expected server-assigned id, got %v", rec["id"])
	}
	if got := s.Records(); len(got) != 2 {
		t.Errorf("expected optimistic append, got %v", got)
	}
	s.List(context.Background(), nil)
	got := s.Records()
	if len(got) != 2 || got[1]["name"] != "b" {
		t.Errorf("expected refreshed collection containing new record, got %v", got)
	}
}

func TestUpdate_MergesByID(t *testing.T) {
	gw := &mockGateway{lists: [][]client.Record{records("a", "b")}}
	s := New(gw, "/api/v1/brands")
	s.List(context.Background(), nil)

	if _, err := s.Update(context.Background(), "id-a", client.Record{"name": "renamed"}); err != nil {
		t.Fatalf("Update: %v", err)
	}
	got := s.Records()
	if got[0]["name"] != "renamed" {
		t.Errorf("expected merged patch, got %v", got[0])
	}
	if got[1]["name"] != "b" {
		t.Errorf("other records must be untouched, got %v", got[1])
	}
}

func TestUpdate_MissingIDIsNoOp(t *testing.T) {
	gw := &mockGateway{lists: [][]client.Record{records("a")}}
	s := New(gw, "/api/v1/brands")
	s.List(context.Background(), nil)

	if _, err := s.Update(context.Background(), "id-zzz", client.Record{"name": "x"}); err != nil {
		t.Fatalf("Update: %v", err)
	}
	got := s.Records()
	if len(got) != 1 || got[0]["name"] != "a" {
		t.Errorf("cache must be unchanged, got %v", got)
	}
}

func TestDelete_RemovesByID(t *testing.T) {
	gw := &mockGateway{lists: [][]client.Record{records("a", "b")}}
	s := New(gw, "/api/v1/brands")
	s.List(context.Background(), nil)

	if err := s.Delete(context.Background(), "id-a"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	got := s.Records()
	if len(got) != 1 || got[0]["id"] != "id-b" {
		t.Errorf("expected id-a removed, got %v", got)
	}
}

func TestSetStatus_PatchesOnlyStatus(t *testing.T) {
	gw := &mockGateway{lists: [][]client.Record{{
		{"id": "u1", "name": "Pat", "status": "active"},
	}}}
	s := New(gw, "/api/v1/users")
	s.List(context.Background(), nil)

	if err := s.SetStatus(context.Background(), "u1", "inactive"); err != nil {
		t.Fatalf("SetStatus: %v", err)
	}
	got := s.Records()[0]
	if got["status"] != "inactive" || got["name"] != "Pat" {
		t.Errorf("expected status-only patch, got %v", got)
	}
}

func TestBuildLookup(t *testing.T) {
	lk := BuildLookup([]client.Record{
		{"id": "d1", "name": "Dr. Lee"},
		{"id": float64(7), "name": "Dr. Cho"},
		{"name": "no id"},
	})
	if len(lk) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(lk))
	}
	if lk["d1"]["name"] != "Dr. Lee" {
		t.Errorf("string id lookup failed: %v", lk)
	}
	if lk["7"]["name"] != "Dr. Cho" {
		t.Errorf("numeric id lookup failed: %v", lk)
	}
}
