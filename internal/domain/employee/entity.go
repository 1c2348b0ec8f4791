package employee

type Employee struct {
	// ID is the upstream surrogate key, zero when unknown
	ID         int64
	EmployeeID string
	FullName   string
	Email      string
	Department string
}

// DisplayName is what views show next to attendance records
func (e Employee) DisplayName() string {
	if e.FullName == "" {
		return e.EmployeeID
	}
	return e.FullName
}
