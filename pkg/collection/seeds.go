package collection

import (
	"tableflip.dev/bizdesk/pkg/record"
)

// Seed returns a fresh copy of the default contents for key or its alias, or
// nil when the collection has no seed.
func Seed(key string) []record.Record {
	seed, ok := seeds[Resolve(key)]
	if !ok {
		return nil
	}
	return record.CloneAll(seed)
}

// ReseedsOnEmpty reports whether the app's screen for key replaces an emptied
// collection with its seed. Only the employee list does.
func ReseedsOnEmpty(key string) bool {
	return Resolve(key) == KeyEmployees
}

var seeds = map[string][]record.Record{
	KeyEmployees: {
		employee("EMP1001", "John Doe", "Software Engineer", "+91 9876543210"),
		employee("EMP1002", "Priya Sharma", "UI/UX Designer", "+91 9988776655"),
		employee("EMP1003", "Amit Verma", "Project Manager", "+91 9123456780"),
		employee("EMP1004", "Sara Khan", "QA Tester", "+91 9090909090"),
	},
	KeyHosting: {
		{"id": "1", "hostingName": "example.com Hosting", "plan": "Basic Plan", "status": "Active", "expiration": "2025-12-20"},
		{"id": "2", "hostingName": "mybusiness.in Hosting", "plan": "Premium Plan", "status": "Expired", "expiration": "2024-09-14"},
	},
	KeyDomains: {
		{"id": "1", "domainName": "example.com", "status": "Active", "expiration": "2025-12-20"},
		{"id": "2", "domainName": "mybusiness.in", "status": "Expired", "expiration": "2024-09-14"},
	},
	KeySSL: {
		{"id": "1", "sslName": "example.com SSL", "provider": "GoDaddy", "status": "Active", "expiration": "2025-12-20"},
		{"id": "2", "sslName": "mybusiness.in SSL", "provider": "Namecheap", "status": "Expired", "expiration": "2024-09-14"},
	},
	KeyClientsData: {
		{"id": "1", "clientName": "Ramesh Digital Studio", "amount": "2500", "date": "2025-11-02"},
		{"id": "2", "clientName": "Suresh Electronics", "amount": "4000", "date": "2025-11-05"},
		{"id": "3", "clientName": "Sai Medicals", "amount": "3000", "date": "2025-10-28"},
	},
}

func employee(id, name, role, contact string) record.Record {
	return record.Record{
		FieldEmpID:     id,
		FieldEmpName:   name,
		"Emp Role":     role,
		FieldContactNo: contact,
		"profileImage": nil,
	}
}
