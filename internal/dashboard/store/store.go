// Package store holds the client-side collection cache for one gateway
// resource. A store owns its collection exclusively; screens read projections
// and issue operations, they never mutate the cache directly.
package store

import (
	"context"
	"fmt"
	"net/url"
	"sync"

	"github.com/clinicdesk/clinicdesk/pkg/client"
)

// Gateway is the slice of the client the store needs. *client.Client
// satisfies it.
type Gateway interface {
	List(ctx context.Context, path string, query url.Values) ([]client.Record, error)
	Create(ctx context.Context, path string, payload client.Record) (client.Record, error)
	Update(ctx context.Context, path, id string, payload client.Record) (client.Record, error)
	UpdateOverride(ctx context.Context, path, id string, payload client.Record) (client.Record, error)
	Delete(ctx context.Context, path, id string) error
	DeleteOverride(ctx context.Context, path, id string) error
	SetStatus(ctx context.Context, path, id, status string) error
	PostAction(ctx context.Context, path, id, action string) error
}

// Store caches one resource's collection.
type Store struct {
	gw          Gateway
	path        string
	useOverride bool

	mu      sync.Mutex
	records []client.Record
	loading int
	lastErr error
	seq     uint64
	applied uint64
}

func New(gw Gateway, path string) *Store {
	return &Store{gw: gw, path: path}
}

// NewWithOverride builds a store for a legacy resource whose update and
// delete go through POST with a _method override field.
func NewWithOverride(gw Gateway, path string) *Store {
	return &Store{gw: gw, path: path, useOverride: true}
}

func (s *Store) Path() string { return s.path }

// Records returns a copy of the cached collection.
func (s *Store) Records() []client.Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]client.Record, len(s.records))
	copy(out, s.records)
	return out
}

func (s *Store) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading > 0
}

func (s *Store) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// List refetches the collection. On success the cache is replaced wholesale;
// on failure the previous collection stays in place. Each call carries a
// sequence number and a completion older than the newest applied one is
// discarded, so an out-of-order response can never clobber newer data.
func (s *Store) List(ctx context.Context, query url.Values) error {
	s.mu.Lock()
	s.seq++
	seq := s.seq
	s.loading++
	s.mu.Unlock()

	records, err := s.gw.List(ctx, s.path, query)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading--
	if err != nil {
		s.lastErr = err
		return err
	}
	if seq < s.applied {
		return nil
	}
	s.applied = seq
	s.records = records
	s.lastErr = nil
	return nil
}

// Create POSTs the payload and optimistically appends the returned record.
// The caller is expected to List afterwards; the append only bridges the gap.
func (s *Store) Create(ctx context.Context, payload client.Record) (client.Record, error) {
	rec, err := s.gw.Create(ctx, s.path, payload)
	if err != nil {
		s.setErr(err)
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(rec) > 0 {
		s.records = append(s.records, rec)
	}
	s.lastErr = nil
	return rec, nil
}

// Update PUTs the payload and merges its fields into the cached element with
// the same id. A miss is a no-op on the cache.
func (s *Store) Update(ctx context.Context, id string, payload client.Record) (client.Record, error) {
	var rec client.Record
	var err error
	if s.useOverride {
		rec, err = s.gw.UpdateOverride(ctx, s.path, id, payload)
	} else {
		rec, err = s.gw.Update(ctx, s.path, id, payload)
	}
	if err != nil {
		s.setErr(err)
		return nil, err
	}
	merged := payload
	if len(rec) > 0 {
		merged = rec
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, cached := range s.records {
		if IDString(cached) == id {
			for k, v := range merged {
				cached[k] = v
			}
			break
		}
	}
	s.lastErr = nil
	return merged, nil
}

// Delete removes the record remotely, then drops the cached element by id.
func (s *Store) Delete(ctx context.Context, id string) error {
	var err error
	if s.useOverride {
		err = s.gw.DeleteOverride(ctx, s.path, id)
	} else {
		err = s.gw.Delete(ctx, s.path, id)
	}
	if err != nil {
		s.setErr(err)
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.records[:0]
	for _, cached := range s.records {
		if IDString(cached) != id {
			kept = append(kept, cached)
		}
	}
	s.records = kept
	s.lastErr = nil
	return nil
}

// SetStatus hits the status sub-endpoint and patches only the status field
// of the cached element.
func (s *Store) SetStatus(ctx context.Context, id, status string) error {
	if err := s.gw.SetStatus(ctx, s.path, id, status); err != nil {
		s.setErr(err)
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, cached := range s.records {
		if IDString(cached) == id {
			cached["status"] = status
			break
		}
	}
	s.lastErr = nil
	return nil
}

// Action POSTs to a named sub-endpoint such as mark-paid. The cache is not
// patched; callers refresh with List.
func (s *Store) Action(ctx context.Context, id, action string) error {
	if err := s.gw.PostAction(ctx, s.path, id, action); err != nil {
		s.setErr(err)
		return err
	}
	return nil
}

func (s *Store) setErr(err error) {
	s.mu.Lock()
	s.lastErr = err
	s.mu.Unlock()
}

// Lookup maps record ids to records for foreign-key joins.
type Lookup map[string]client.Record

// BuildLookup indexes a collection by id string.
func BuildLookup(records []client.Record) Lookup {
	m := make(Lookup, len(records))
	for _, rec := range records {
		if id := IDString(rec); id != "" {
			m[id] = rec
		}
	}
	return m
}

// Lookup builds a lookup map from the current cache.
func (s *Store) Lookup() Lookup {
	return BuildLookup(s.Records())
}

// IDString renders a record's id as a string. Gateway ids are uuid strings
// but decoded JSON can also surface numeric ids, so both are handled.
func IDString(rec client.Record) string {
	switch v := rec["id"].(type) {
	case string:
		return v
	case float64:
		if v == float64(int64(v)) {
			return fmt.Sprintf("%d", int64(v))
		}
		return fmt.Sprintf("%v", v)
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", v)
	}
}
