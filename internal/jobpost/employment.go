package jobpost

import "github.com/Alifouanne/job-forge/pkg/utils"

// Employment types accepted on job postings.
const (
	EmploymentFullTime   = "full-time"
	EmploymentPartTime   = "part-time"
	EmploymentContract   = "contract"
	EmploymentInternship = "internship"
)

// EmploymentTypes lists every accepted employment type.
var EmploymentTypes = []string{
	EmploymentFullTime,
	EmploymentPartTime,
	EmploymentContract,
	EmploymentInternship,
}

// ValidEmploymentType reports whether s is an accepted employment type.
func ValidEmploymentType(s string) bool {
	return utils.Contains(EmploymentTypes, s)
}
