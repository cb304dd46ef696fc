package domain

// SalaryStructure itemizes one payroll entry.
type SalaryStructure struct {
	Basic          float64
	Housing        float64
	Utility        float64
	Transport      float64
	Bonus          float64
	Reimbursements float64
	Deductions     float64
	Taxes          float64
}

// SalaryStructureFields lists the addressable structure components, in the
// order they appear on a payslip. Aggregation queries only accept these.
var SalaryStructureFields = []string{
	"basic", "housing", "utility", "transport",
	"bonus", "reimbursements", "deductions", "taxes",
}

// Field returns the named component, reporting whether the name is known.
func (s SalaryStructure) Field(name string) (float64, bool) {
	switch name {
	case "basic":
		return s.Basic, true
	case "housing":
		return s.Housing, true
	case "utility":
		return s.Utility, true
	case "transport":
		return s.Transport, true
	case "bonus":
		return s.Bonus, true
	case "reimbursements":
		return s.Reimbursements, true
	case "deductions":
		return s.Deductions, true
	case "taxes":
		return s.Taxes, true
	default:
		return 0, false
	}
}

// Payroll is one staff member's payroll entry for a pay period (YYYY-MM).
type Payroll struct {
	ID             string
	StaffID        string
	StaffFullName  string
	OrganizationID string
	PayPeriod      string
	Structure      SalaryStructure
	NetSalary      float64
}
