package employee

import (
	"strings"

	"github.com/cmlabs-hris/hrms-lite/internal/pkg/validator"
)

type CreateEmployeeRequest struct {
	EmployeeID string `json:"employee_id"`
	FullName   string `json:"full_name"`
	Email      string `json:"email"`
	Department string `json:"department"`
}

// Validate checks the form the same way the registration form does: required
// fields first, then the email format. Values are trimmed in place.
func (r *CreateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	r.EmployeeID = strings.TrimSpace(r.EmployeeID)
	r.FullName = strings.TrimSpace(r.FullName)
	r.Email = strings.TrimSpace(r.Email)
	r.Department = strings.TrimSpace(r.Department)

	if validator.IsEmpty(r.EmployeeID) {
		errs.Add("employee_id", "Employee ID is required")
	}
	if validator.IsEmpty(r.FullName) {
		errs.Add("full_name", "Full name is required")
	}
	if validator.IsEmpty(r.Email) {
		errs.Add("email", "Email is required")
	}
	if validator.IsEmpty(r.Department) {
		errs.Add("department", "Department is required")
	}
	if len(errs) > 0 {
		return errs
	}

	if !validator.IsValidEmail(r.Email) {
		errs.Add("email", "Please enter a valid email address")
	}

	return errs.Err()
}

func (r CreateEmployeeRequest) ToEntity() Employee {
	return Employee{
		EmployeeID: r.EmployeeID,
		FullName:   r.FullName,
		Email:      r.Email,
		Department: r.Department,
	}
}

type EmployeeResponse struct {
	ID         int64  `json:"id,omitempty"`
	EmployeeID string `json:"employee_id"`
	FullName   string `json:"full_name"`
	Email      string `json:"email"`
	Department string `json:"department"`
}

func NewEmployeeResponse(e Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:         e.ID,
		EmployeeID: e.EmployeeID,
		FullName:   e.FullName,
		Email:      e.Email,
		Department: e.Department,
	}
}
