// Package screen drives one resource's dashboard view: a filtered read-only
// projection of the store's collection plus the modal lifecycle for add,
// edit and delete. All consistency comes from refetching the list after
// every successful mutation.
package screen

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/clinicdesk/clinicdesk/internal/dashboard/resources"
	"github.com/clinicdesk/clinicdesk/internal/dashboard/store"
	"github.com/clinicdesk/clinicdesk/pkg/client"
)

// State is the screen's modal lifecycle position.
type State int

const (
	StateBrowsing State = iota
	StateComposing
	StateConfirmingDelete
)

func (s State) String() string {
	switch s {
	case StateComposing:
		return "composing"
	case StateConfirmingDelete:
		return "confirming-delete"
	default:
		return "browsing"
	}
}

// Screen controls one resource's view over its store and lookup stores.
type Screen struct {
	desc    resources.Descriptor
	primary *store.Store
	lookups map[string]*store.Store
	log     zerolog.Logger

	mu        sync.Mutex
	state     State
	search    string
	draft     client.Record
	editingID string
	deleteID  string
	notice    string
}

type Option func(*Screen)

func WithLogger(log zerolog.Logger) Option {
	return func(s *Screen) { s.log = log }
}

// New builds a screen and its stores from a resource descriptor.
func New(gw store.Gateway, desc resources.Descriptor, opts ...Option) *Screen {
	s := &Screen{
		desc:    desc,
		lookups: make(map[string]*store.Store, len(desc.Lookups)),
		log:     zerolog.Nop(),
	}
	if desc.UseOverride {
		s.primary = store.NewWithOverride(gw, desc.Path)
	} else {
		s.primary = store.New(gw, desc.Path)
	}
	for name, path := range desc.Lookups {
		s.lookups[name] = store.New(gw, path)
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Store exposes the primary store, mainly for tests and the CLI.
func (s *Screen) Store() *store.Store { return s.primary }

// Mount lists the primary resource and every lookup concurrently. Lookup
// failures are logged and tolerated; the primary list error is returned.
func (s *Screen) Mount(ctx context.Context) error {
	var wg sync.WaitGroup
	var primaryErr error

	wg.Add(1)
	go func() {
		defer wg.Done()
		primaryErr = s.primary.List(ctx, nil)
	}()
	for name, lk := range s.lookups {
		wg.Add(1)
		go func(name string, lk *store.Store) {
			defer wg.Done()
			if err := lk.List(ctx, nil); err != nil {
				s.log.Warn().Err(err).Str("lookup", name).Msg("lookup list failed")
			}
		}(name, lk)
	}
	wg.Wait()
	return primaryErr
}

// Refresh refetches the primary collection only.
func (s *Screen) Refresh(ctx context.Context) error {
	return s.primary.List(ctx, nil)
}

func (s *Screen) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Screen) Notice() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.notice
}

func (s *Screen) SetSearch(q string) {
	s.mu.Lock()
	s.search = q
	s.mu.Unlock()
}

// Visible filters the collection by the live search string: a
// case-insensitive substring match over the descriptor's search text. An
// empty search returns everything. The filter reads the cache and never
// mutates it.
func (s *Screen) Visible() []client.Record {
	s.mu.Lock()
	search := strings.ToLower(strings.TrimSpace(s.search))
	s.mu.Unlock()

	all := s.primary.Records()
	if search == "" {
		return all
	}
	lookups := s.lookupMaps()
	filtered := make([]client.Record, 0, len(all))
	for _, rec := range all {
		if strings.Contains(strings.ToLower(s.desc.SearchText(rec, lookups)), search) {
			filtered = append(filtered, rec)
		}
	}
	return filtered
}

func (s *Screen) lookupMaps() map[string]store.Lookup {
	maps := make(map[string]store.Lookup, len(s.lookups))
	for name, lk := range s.lookups {
		maps[name] = lk.Lookup()
	}
	return maps
}

// ResolveName renders a foreign key through the named lookup, with the
// NotAssigned fallback for unknown ids.
func (s *Screen) ResolveName(lookup, id string) string {
	lk, ok := s.lookups[lookup]
	if !ok {
		return resources.NotAssigned
	}
	return resources.DisplayName(lk.Lookup(), id)
}

// StartAdd opens the compose modal with an empty draft.
func (s *Screen) StartAdd() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = StateComposing
	s.editingID = ""
	s.draft = client.Record{}
	s.notice = ""
}

// StartEdit opens the compose modal seeded field by field from the selected
// record, falling back to empty strings for missing fields.
func (s *Screen) StartEdit(id string) bool {
	var selected client.Record
	for _, rec := range s.primary.Records() {
		if store.IDString(rec) == id {
			selected = rec
			break
		}
	}
	if selected == nil {
		return false
	}
	draft := client.Record{}
	for _, f := range s.desc.Fields {
		if v, ok := selected[f]; ok && v != nil {
			draft[f] = v
		} else {
			draft[f] = ""
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = StateComposing
	s.editingID = id
	s.draft = draft
	s.notice = ""
	return true
}

// SetField writes one draft field while composing.
func (s *Screen) SetField(key string, value interface{}) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateComposing {
		return
	}
	s.draft[key] = value
}

// Draft returns a copy of the in-progress draft.
func (s *Screen) Draft() client.Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := client.Record{}
	for k, v := range s.draft {
		out[k] = v
	}
	return out
}

// Cancel discards the draft and returns to browsing.
func (s *Screen) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = StateBrowsing
	s.draft = nil
	s.editingID = ""
}

// Submit validates the draft locally and, only if validation passes, calls
// the store. A validation failure makes zero network calls and keeps the
// modal open. A gateway failure also keeps the modal and draft so the user
// does not lose input. Success closes the modal and refetches the list.
func (s *Screen) Submit(ctx context.Context) error {
	s.mu.Lock()
	if s.state != StateComposing {
		s.mu.Unlock()
		return nil
	}
	draft := s.draft
	editingID := s.editingID
	s.mu.Unlock()

	if s.desc.Normalize != nil {
		s.desc.Normalize(draft)
	}
	if s.desc.Validate != nil {
		if err := s.desc.Validate(draft, s.primary.Records(), editingID); err != nil {
			s.setNotice(err.Error())
			return err
		}
	}

	var err error
	if editingID == "" {
		_, err = s.primary.Create(ctx, draft)
	} else {
		_, err = s.primary.Update(ctx, editingID, draft)
	}
	if err != nil {
		s.setNotice(errNotice(err))
		return err
	}

	s.mu.Lock()
	s.state = StateBrowsing
	s.draft = nil
	s.editingID = ""
	s.notice = ""
	s.mu.Unlock()
	return s.Refresh(ctx)
}

// RequestDelete opens the confirmation modal holding only the target id.
// No network call happens until Confirm.
func (s *Screen) RequestDelete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = StateConfirmingDelete
	s.deleteID = id
}

// DeleteID returns the pending delete target, empty when none.
func (s *Screen) DeleteID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.deleteID
}

// CancelDelete clears the pending id without any network call.
func (s *Screen) CancelDelete() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = StateBrowsing
	s.deleteID = ""
}

// ConfirmDelete deletes the pending record and refetches the list.
func (s *Screen) ConfirmDelete(ctx context.Context) error {
	s.mu.Lock()
	if s.state != StateConfirmingDelete || s.deleteID == "" {
		s.mu.Unlock()
		return nil
	}
	id := s.deleteID
	s.mu.Unlock()

	if err := s.primary.Delete(ctx, id); err != nil {
		s.setNotice(errNotice(err))
		return err
	}
	s.mu.Lock()
	s.state = StateBrowsing
	s.deleteID = ""
	s.notice = ""
	s.mu.Unlock()
	return s.Refresh(ctx)
}

// SetStatus hits the resource's status sub-endpoint, then refetches.
func (s *Screen) SetStatus(ctx context.Context, id, status string) error {
	if !s.desc.HasStatus {
		return nil
	}
	if err := s.primary.SetStatus(ctx, id, status); err != nil {
		s.setNotice(errNotice(err))
		return err
	}
	return s.Refresh(ctx)
}

func (s *Screen) setNotice(msg string) {
	s.mu.Lock()
	s.notice = msg
	s.mu.Unlock()
}

func errNotice(err error) string {
	var apiErr *client.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return err.Error()
}
