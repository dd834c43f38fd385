package resources

import (
	"fmt"
	"strings"

	"github.com/clinicdesk/clinicdesk/internal/dashboard/store"
	"github.com/clinicdesk/clinicdesk/pkg/client"
)

const apiBase = "/api/v1"

// All returns every dashboard resource descriptor, keyed by name.
func All() map[string]Descriptor {
	descriptors := []Descriptor{
		Appointments(),
		Doctors(),
		Users(),
		Roles(),
		Patients(),
		LabTests(),
		LabBookings(),
		LabResults(),
		Medicines(),
		Purchases(),
		Brands(),
		Suppliers(),
		Taxes(),
		TaxGroups(),
		FinanceRecords(),
		Commissions(),
		CommissionSettings(),
		Forms(),
	}
	m := make(map[string]Descriptor, len(descriptors))
	for _, d := range descriptors {
		m[d.Name] = d
	}
	return m
}

func Appointments() Descriptor {
	return Descriptor{
		Name:      "appointments",
		Path:      apiBase + "/appointments",
		HasStatus: true,
		Lookups: map[string]string{
			"doctors":  apiBase + "/doctors",
			"patients": apiBase + "/patients",
		},
		Fields: []string{"patient_id", "doctor_id", "date", "time", "type", "note", "status"},
		SearchText: func(rec client.Record, lookups map[string]store.Lookup) string {
			return strings.Join([]string{
				DisplayName(lookups["patients"], Str(rec, "patient_id")),
				DisplayName(lookups["doctors"], Str(rec, "doctor_id")),
				Str(rec, "date"),
				Str(rec, "type"),
				Str(rec, "status"),
			}, " ")
		},
		Normalize: func(draft client.Record) {
			slots := stringSlice(draft, "time")
			cleaned := make([]string, 0, len(slots))
			for _, s := range slots {
				if t := strings.TrimSpace(s); t != "" {
					cleaned = append(cleaned, t)
				}
			}
			draft["time"] = cleaned
		},
		Validate: func(draft client.Record, _ []client.Record, _ string) error {
			if err := requireFields(draft, "patient_id", "doctor_id", "date"); err != nil {
				return err
			}
			if len(stringSlice(draft, "time")) == 0 {
				return fmt.Errorf("at least one time slot is required")
			}
			return nil
		},
	}
}

func Doctors() Descriptor {
	return Descriptor{
		Name:   "doctors",
		Path:   apiBase + "/doctors",
		Fields: []string{"name", "email", "phone", "specialty", "commission_rate", "status"},
		SearchText: func(rec client.Record, _ map[string]store.Lookup) string {
			return Str(rec, "name") + " " + Str(rec, "email") + " " + Str(rec, "specialty")
		},
		Validate: func(draft client.Record, _ []client.Record, _ string) error {
			return requireFields(draft, "name", "email")
		},
	}
}

func Users() Descriptor {
	return Descriptor{
		Name:      "users",
		Path:      apiBase + "/users",
		HasStatus: true,
		Lookups: map[string]string{
			"roles": apiBase + "/roles",
		},
		Fields: []string{"name", "email", "role_id", "status"},
		SearchText: func(rec client.Record, lookups map[string]store.Lookup) string {
			return Str(rec, "name") + " " + Str(rec, "email") + " " +
				DisplayName(lookups["roles"], Str(rec, "role_id"))
		},
		Validate: func(draft client.Record, _ []client.Record, _ string) error {
			return requireFields(draft, "name", "email")
		},
	}
}

func Roles() Descriptor {
	return Descriptor{
		Name:   "roles",
		Path:   apiBase + "/roles",
		Fields: []string{"name", "permissions"},
		SearchText: func(rec client.Record, _ map[string]store.Lookup) string {
			return Str(rec, "name")
		},
		Validate: func(draft client.Record, _ []client.Record, _ string) error {
			return requireFields(draft, "name")
		},
	}
}

func Patients() Descriptor {
	return Descriptor{
		Name:   "patients",
		Path:   apiBase + "/patients",
		Fields: []string{"name", "email", "phone", "gender", "birth_date", "address", "blood_group"},
		SearchText: func(rec client.Record, _ map[string]store.Lookup) string {
			return Str(rec, "name") + " " + Str(rec, "phone") + " " + Str(rec, "email")
		},
		Validate: func(draft client.Record, _ []client.Record, _ string) error {
			return requireFields(draft, "name", "phone")
		},
	}
}

func LabTests() Descriptor {
	return Descriptor{
		Name:   "lab-tests",
		Path:   apiBase + "/lab-tests",
		Fields: []string{"name", "price", "unit", "reference_range"},
		SearchText: func(rec client.Record, _ map[string]store.Lookup) string {
			return Str(rec, "name") + " " + Str(rec, "price")
		},
		Validate: func(draft client.Record, _ []client.Record, _ string) error {
			return requireFields(draft, "name")
		},
	}
}

func LabBookings() Descriptor {
	return Descriptor{
		Name: "lab-bookings",
		Path: apiBase + "/lab-bookings",
		Lookups: map[string]string{
			"patients": apiBase + "/patients",
		},
		Fields: []string{"patient_id", "tests", "date", "total", "paid"},
		SearchText: func(rec client.Record, lookups map[string]store.Lookup) string {
			return DisplayName(lookups["patients"], Str(rec, "patient_id")) + " " +
				Str(rec, "date") + " " + Str(rec, "total")
		},
		Validate: func(draft client.Record, _ []client.Record, _ string) error {
			if err := requireFields(draft, "patient_id", "date"); err != nil {
				return err
			}
			if len(stringSlice(draft, "tests")) == 0 {
				return fmt.Errorf("at least one test is required")
			}
			return nil
		},
	}
}

func LabResults() Descriptor {
	return Descriptor{
		Name:   "lab-results",
		Path:   apiBase + "/lab-results",
		Fields: []string{"booking_id", "test_id", "value", "note"},
		SearchText: func(rec client.Record, _ map[string]store.Lookup) string {
			return Str(rec, "value") + " " + Str(rec, "note")
		},
		Validate: func(draft client.Record, _ []client.Record, _ string) error {
			return requireFields(draft, "booking_id", "test_id", "value")
		},
	}
}

func Medicines() Descriptor {
	return Descriptor{
		Name: "medicines",
		Path: apiBase + "/medicines",
		Lookups: map[string]string{
			"brands":    apiBase + "/brands",
			"suppliers": apiBase + "/suppliers",
		},
		Fields: []string{"name", "brand_id", "supplier_id", "price", "stock", "expiry"},
		SearchText: func(rec client.Record, lookups map[string]store.Lookup) string {
			return Str(rec, "name") + " " +
				DisplayName(lookups["brands"], Str(rec, "brand_id")) + " " +
				DisplayName(lookups["suppliers"], Str(rec, "supplier_id"))
		},
		Validate: func(draft client.Record, _ []client.Record, _ string) error {
			return requireFields(draft, "name")
		},
	}
}

func Purchases() Descriptor {
	return Descriptor{
		Name:        "purchases",
		Path:        apiBase + "/purchases",
		UseOverride: true,
		Lookups: map[string]string{
			"suppliers": apiBase + "/suppliers",
		},
		Fields: []string{"supplier_id", "items", "total", "date"},
		SearchText: func(rec client.Record, lookups map[string]store.Lookup) string {
			return DisplayName(lookups["suppliers"], Str(rec, "supplier_id")) + " " +
				Str(rec, "date") + " " + Str(rec, "total")
		},
		Validate: func(draft client.Record, _ []client.Record, _ string) error {
			return requireFields(draft, "supplier_id", "date")
		},
	}
}

func Brands() Descriptor {
	return Descriptor{
		Name:   "brands",
		Path:   apiBase + "/brands",
		Fields: []string{"name"},
		SearchText: func(rec client.Record, _ map[string]store.Lookup) string {
			return Str(rec, "name")
		},
		Validate: uniqueName,
	}
}

func Suppliers() Descriptor {
	return Descriptor{
		Name:   "suppliers",
		Path:   apiBase + "/suppliers",
		Fields: []string{"name", "email", "phone", "address"},
		SearchText: func(rec client.Record, _ map[string]store.Lookup) string {
			return Str(rec, "name") + " " + Str(rec, "phone")
		},
		Validate: func(draft client.Record, _ []client.Record, _ string) error {
			return requireFields(draft, "name")
		},
	}
}

func Taxes() Descriptor {
	return Descriptor{
		Name:   "taxes",
		Path:   apiBase + "/taxes",
		Fields: []string{"name", "rate"},
		SearchText: func(rec client.Record, _ map[string]store.Lookup) string {
			return Str(rec, "name") + " " + Str(rec, "rate")
		},
		Validate: func(draft client.Record, siblings []client.Record, editingID string) error {
			if err := uniqueName(draft, siblings, editingID); err != nil {
				return err
			}
			return requireFields(draft, "rate")
		},
	}
}

func TaxGroups() Descriptor {
	return Descriptor{
		Name: "tax-groups",
		Path: apiBase + "/tax-groups",
		Lookups: map[string]string{
			"taxes": apiBase + "/taxes",
		},
		Fields: []string{"name", "tax_ids"},
		SearchText: func(rec client.Record, _ map[string]store.Lookup) string {
			return Str(rec, "name")
		},
		Validate: uniqueName,
	}
}

func FinanceRecords() Descriptor {
	return Descriptor{
		Name:   "finance-records",
		Path:   apiBase + "/finance-records",
		Fields: []string{"kind", "category", "amount", "date", "note"},
		SearchText: func(rec client.Record, _ map[string]store.Lookup) string {
			return Str(rec, "kind") + " " + Str(rec, "category") + " " + Str(rec, "date")
		},
		Validate: func(draft client.Record, _ []client.Record, _ string) error {
			if err := requireFields(draft, "category", "date"); err != nil {
				return err
			}
			kind := Str(draft, "kind")
			if kind != "income" && kind != "expense" {
				return fmt.Errorf("kind must be income or expense")
			}
			return nil
		},
	}
}

func Commissions() Descriptor {
	return Descriptor{
		Name:      "commissions",
		Path:      apiBase + "/commissions",
		HasStatus: true,
		Lookups: map[string]string{
			"doctors": apiBase + "/doctors",
		},
		Fields: []string{"doctor_id", "appointment_id", "amount", "status"},
		SearchText: func(rec client.Record, lookups map[string]store.Lookup) string {
			return DisplayName(lookups["doctors"], Str(rec, "doctor_id")) + " " +
				Str(rec, "amount") + " " + Str(rec, "status")
		},
		Validate: func(draft client.Record, _ []client.Record, _ string) error {
			return requireFields(draft, "doctor_id", "amount")
		},
	}
}

func CommissionSettings() Descriptor {
	return Descriptor{
		Name: "commission-settings",
		Path: apiBase + "/commission-settings",
		Lookups: map[string]string{
			"doctors": apiBase + "/doctors",
		},
		Fields: []string{"doctor_id", "rate", "kind"},
		SearchText: func(rec client.Record, lookups map[string]store.Lookup) string {
			return DisplayName(lookups["doctors"], Str(rec, "doctor_id")) + " " + Str(rec, "kind")
		},
		Validate: func(draft client.Record, _ []client.Record, _ string) error {
			return requireFields(draft, "doctor_id", "rate")
		},
	}
}

func Forms() Descriptor {
	return Descriptor{
		Name:   "forms",
		Path:   apiBase + "/forms",
		Fields: []string{"name", "fields", "status"},
		SearchText: func(rec client.Record, _ map[string]store.Lookup) string {
			return Str(rec, "name") + " " + Str(rec, "status")
		},
		Validate: func(draft client.Record, _ []client.Record, _ string) error {
			return requireFields(draft, "name")
		},
	}
}
