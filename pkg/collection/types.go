// Package collection persists named record collections as JSON arrays in a
// key-value store and knows the collections the app ships with.
package collection

// Well-known collection keys.
const (
	KeyClients         = "Clients"
	KeyEmployees       = "Employees"
	KeyProjects        = "ProjectsData"
	KeyClientsData     = "@clients_data"
	KeyDomains         = "@domains_list"
	KeyHosting         = "@hosting_list"
	KeySSL             = "@ssl_list"
	KeyMonthlyPayments = "@monthly_payments"
)

// KeyUsers holds the auth server's accounts. It is never exposed through the
// record surfaces.
const KeyUsers = "@users"

// Reserved reports whether key is kept away from listing, reading and editing.
func Reserved(key string) bool {
	return key == KeyUsers
}

// Well-known record fields.
const (
	FieldClientID      = "Client Id"
	FieldClientName    = "Client Name"
	FieldContactNo     = "Contact No"
	FieldEmpID         = "Emp Id"
	FieldEmpName       = "Emp Name"
	FieldStartDate     = "Start Date"
	FieldEndDate       = "End Date"
	FieldRemainingDays = "Remaining Days"
)
