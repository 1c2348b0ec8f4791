package attendance

import (
	"context"
	"log/slog"
	"slices"

	"github.com/cmlabs-hris/hrms-lite/internal/domain/attendance"
	"github.com/cmlabs-hris/hrms-lite/internal/domain/employee"
	"github.com/cmlabs-hris/hrms-lite/internal/pkg/gather"
)

// Aggregate fetches every employee's attendance and joins it with the
// employee's display name, newest date first. An employee whose fetch fails
// contributes nothing and is listed in Omitted. The only error returned is
// ctx's, when the caller gave up before every fetch ran.
func Aggregate(ctx context.Context, employees []employee.Employee, fetch attendance.FetchFunc, concurrency int) (attendance.AggregateResult, error) {
	res, err := gather.Collect(ctx, len(employees), concurrency, func(ctx context.Context, i int) ([]attendance.Attendance, error) {
		return fetch(ctx, employees[i].EmployeeID)
	})
	if err != nil {
		return attendance.AggregateResult{}, err
	}

	for _, f := range res.Failures {
		slog.Warn("Skipping employee attendance", "employee_id", employees[f.Index].EmployeeID, "error", f.Err)
	}

	result := attendance.AggregateResult{
		Records: []attendance.AggregatedRecord{},
		Omitted: []string{},
	}
	for i, emp := range employees {
		if !res.OK[i] {
			result.Omitted = append(result.Omitted, emp.EmployeeID)
			continue
		}
		for _, record := range res.Values[i] {
			record.EmployeeID = emp.EmployeeID
			result.Records = append(result.Records, attendance.AggregatedRecord{
				Attendance:   record,
				EmployeeName: emp.DisplayName(),
			})
		}
	}

	// Ties keep directory order, then upstream record order.
	slices.SortStableFunc(result.Records, func(a, b attendance.AggregatedRecord) int {
		return b.Date.Compare(a.Date)
	})

	return result, nil
}
