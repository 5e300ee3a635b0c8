// Package schema defines the expected CSV columns for each record layout.
package schema

import "github.com/JonMunkholm/policy-cleaner/internal/core"

// Column names of the life insurance policy export.
const (
	PolicyHolderName = "policy_holder_name"
	LastName         = "last_name"
	Age              = "age"
	Email            = "email"
	Phone            = "phone"
	Address          = "address"
	PolicyAmount     = "policy_amount"
	PolicyTerm       = "policy_term"
	PolicyStatus     = "policy_status"
	BeneficiaryName  = "beneficiary_name"
	DateOfBirth      = "date_of_birth"
	PolicyStartDate  = "policy_start_date"
)

// PolicyFieldSpecs defines the expected CSV columns for policy holder records.
// Every column must be present in the header; values may still be empty.
var PolicyFieldSpecs = []core.FieldSpec{
	{Name: PolicyHolderName, Type: core.FieldText, Required: true},
	{Name: LastName, Type: core.FieldText, Required: true},
	{Name: Age, Type: core.FieldInteger, Required: true},
	{Name: Email, Type: core.FieldText, Required: true},
	{Name: Phone, Type: core.FieldText, Required: true},
	{Name: Address, Type: core.FieldText, Required: true},
	{Name: PolicyAmount, Type: core.FieldNumeric, Required: true},
	{Name: PolicyTerm, Type: core.FieldInteger, Required: true},
	{Name: PolicyStatus, Type: core.FieldText, Required: true},
	{Name: BeneficiaryName, Type: core.FieldText, Required: true},
	{Name: DateOfBirth, Type: core.FieldDate, Required: true},
	{Name: PolicyStartDate, Type: core.FieldDate, Required: true},
}

// PolicyColumns returns the column names in canonical order.
func PolicyColumns() []string {
	cols := make([]string, len(PolicyFieldSpecs))
	for i, spec := range PolicyFieldSpecs {
		cols[i] = spec.Name
	}
	return cols
}
