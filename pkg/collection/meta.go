package collection

import (
	"sort"
	"strings"

	"tableflip.dev/bizdesk/pkg/record"
	"tableflip.dev/bizdesk/pkg/store"
)

// Meta describes how a collection is keyed, validated and searched.
type Meta struct {
	Key          string   `json:"key"`
	Title        string   `json:"title,omitempty"`
	IDField      string   `json:"idField"`
	Required     []string `json:"required,omitempty"`
	SearchFields []string `json:"searchFields,omitempty"`
	// Dated collections carry Start Date / End Date and a Remaining Days countdown.
	Dated bool `json:"dated,omitempty"`
	// Aliases are short names accepted in place of Key, matched ignoring case.
	Aliases []string `json:"aliases,omitempty"`
}

var known = map[string]Meta{
	KeyClients: {
		Key:          KeyClients,
		Aliases:      []string{"clients"},
		Title:        "Clients",
		IDField:      FieldClientID,
		Required:     []string{FieldClientName, "Purpose", FieldContactNo, FieldStartDate, FieldEndDate, FieldRemainingDays},
		SearchFields: []string{FieldClientName, FieldContactNo},
		Dated:        true,
	},
	KeyEmployees: {
		Key:          KeyEmployees,
		Aliases:      []string{"employees"},
		Title:        "Employees",
		IDField:      FieldEmpID,
		Required:     []string{FieldEmpName, "Emp Role", FieldContactNo},
		SearchFields: []string{FieldEmpName, "Emp Role"},
	},
	KeyProjects: {
		Key:          KeyProjects,
		Aliases:      []string{"projects"},
		Title:        "Projects",
		IDField:      record.DefaultIDField,
		Required:     []string{"name", "status"},
		SearchFields: []string{"name", "status"},
	},
	KeyClientsData: {
		Key:          KeyClientsData,
		Aliases:      []string{"clients_data", "gmb"},
		Title:        "Google My Business clients",
		IDField:      record.DefaultIDField,
		Required:     []string{"clientName", "amount", "date"},
		SearchFields: []string{"clientName"},
	},
	KeyDomains: {
		Key:          KeyDomains,
		Aliases:      []string{"domains"},
		Title:        "Domains",
		IDField:      record.DefaultIDField,
		Required:     []string{"domainName", "status", "expiration"},
		SearchFields: []string{"domainName", "status"},
	},
	KeyHosting: {
		Key:          KeyHosting,
		Aliases:      []string{"hosting"},
		Title:        "Hosting",
		IDField:      record.DefaultIDField,
		Required:     []string{"hostingName", "plan", "status", "expiration"},
		SearchFields: []string{"hostingName", "plan", "status"},
	},
	KeySSL: {
		Key:          KeySSL,
		Aliases:      []string{"ssl"},
		Title:        "SSL certificates",
		IDField:      record.DefaultIDField,
		Required:     []string{"sslName", "provider", "status", "expiration"},
		SearchFields: []string{"sslName", "provider", "status"},
	},
	KeyMonthlyPayments: {
		Key:          KeyMonthlyPayments,
		Aliases:      []string{"payments", "monthly_payments"},
		Title:        "Monthly payments",
		IDField:      record.DefaultIDField,
		Required:     []string{"amount", "date", "clientName"},
		SearchFields: []string{"clientName"},
	},
}

// Resolve maps a collection key or one of its aliases onto the stored key.
// Names that match nothing are returned unchanged.
func Resolve(name string) string {
	if _, ok := known[name]; ok {
		return name
	}
	n := strings.TrimSpace(name)
	for key, m := range known {
		if strings.EqualFold(n, key) || strings.EqualFold(n, strings.TrimPrefix(key, "@")) {
			return key
		}
		for _, a := range m.Aliases {
			if strings.EqualFold(n, a) {
				return key
			}
		}
	}
	return name
}

// Lookup returns the metadata for key or an alias of it. Unknown keys get a
// generic Meta using the default id field.
func Lookup(key string) (Meta, bool) {
	if m, ok := known[Resolve(key)]; ok {
		return m, true
	}
	return Meta{Key: key, IDField: record.DefaultIDField}, false
}

// Known lists the registered collections sorted by key.
func Known() []Meta {
	metas := make([]Meta, 0, len(known))
	for _, m := range known {
		metas = append(metas, m)
	}
	sort.Slice(metas, func(i, j int) bool { return metas[i].Key < metas[j].Key })
	return metas
}

// IsCollectionKey reports whether key is the stored key of a registered
// collection rather than a session value such as userRole. Aliases do not
// count.
func IsCollectionKey(key string) bool {
	_, ok := known[key]
	return ok
}

// ParseFields splits a comma separated field list, dropping blanks.
func ParseFields(raw string) []string {
	var fields []string
	for _, f := range strings.Split(raw, ",") {
		if f = strings.TrimSpace(f); f != "" {
			fields = append(fields, f)
		}
	}
	return fields
}

// Open binds a Store for m with its id field, plus any extra options.
func (m Meta) Open(kv store.KV, opts ...Option) *Store {
	return New(kv, m.Key, append([]Option{WithIDField(m.IDField)}, opts...)...)
}
