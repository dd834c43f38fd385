// Package resources describes each dashboard resource once: its gateway
// path, how a row is searched, how a draft is validated, and which sibling
// collections it joins against. The generic store and screen are
// parameterized by these descriptors instead of being copied per resource.
package resources

import (
	"fmt"
	"strings"

	"github.com/clinicdesk/clinicdesk/internal/dashboard/store"
	"github.com/clinicdesk/clinicdesk/pkg/client"
)

// NotAssigned is the fallback label for a foreign key that resolves to
// nothing in its lookup map.
const NotAssigned = "Not assigned"

// Descriptor is one resource's dashboard contract.
type Descriptor struct {
	// Name is the resource's plural identifier, e.g. "appointments".
	Name string
	// Path is the gateway collection path, e.g. "/api/v1/appointments".
	Path string
	// HasStatus marks resources with a PUT /:id/status sub-endpoint.
	HasStatus bool
	// UseOverride routes update/delete through the legacy POST +
	// _method multipart surface.
	UseOverride bool
	// Lookups maps a lookup name to the sibling collection path it is
	// fetched from, e.g. "doctors" -> "/api/v1/doctors".
	Lookups map[string]string
	// Fields are the draft fields copied from a record when editing.
	Fields []string
	// SearchText concatenates a record's displayed fields for the
	// browse filter.
	SearchText func(rec client.Record, lookups map[string]store.Lookup) string
	// Normalize cleans a draft in place before validation, e.g.
	// trimming appointment slots.
	Normalize func(draft client.Record)
	// Validate inspects a draft against the sibling collection before
	// any network call. editingID is empty for a create.
	Validate func(draft client.Record, siblings []client.Record, editingID string) error
}

// Str reads a record field as a string, with empty-string fallback.
func Str(rec client.Record, key string) string {
	if rec == nil {
		return ""
	}
	switch v := rec[key].(type) {
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

// DisplayName resolves a foreign key against a lookup map, falling back to
// NotAssigned for blank or unknown ids.
func DisplayName(lk store.Lookup, id string) string {
	if id == "" {
		return NotAssigned
	}
	rec, ok := lk[id]
	if !ok {
		return NotAssigned
	}
	if name := Str(rec, "name"); name != "" {
		return name
	}
	return NotAssigned
}

// requireFields errors on the first empty required field.
func requireFields(draft client.Record, fields ...string) error {
	for _, f := range fields {
		if strings.TrimSpace(Str(draft, f)) == "" {
			return fmt.Errorf("%s is required", f)
		}
	}
	return nil
}

// uniqueName rejects a draft whose name case-insensitively collides with a
// sibling record other than the one being edited. A stale local collection
// makes this a UX check only; the gateway enforces uniqueness.
func uniqueName(draft client.Record, siblings []client.Record, editingID string) error {
	name := strings.TrimSpace(Str(draft, "name"))
	if name == "" {
		return fmt.Errorf("name is required")
	}
	for _, sib := range siblings {
		if store.IDString(sib) == editingID {
			continue
		}
		if strings.EqualFold(Str(sib, "name"), name) {
			return fmt.Errorf("name %q already exists", name)
		}
	}
	return nil
}

// stringSlice reads a record field as a string slice. JSON decoding yields
// []interface{}, so both shapes are accepted.
func stringSlice(rec client.Record, key string) []string {
	switch v := rec[key].(type) {
	case []string:
		return v
	case []interface{}:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}
