package attendance

import (
	"context"
	"errors"
	"testing"

	"github.com/cmlabs-hris/hrms-lite/internal/domain/attendance"
	"github.com/cmlabs-hris/hrms-lite/internal/domain/employee"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testEmployees = []employee.Employee{
	{EmployeeID: "E1", FullName: "Ada Lovelace"},
	{EmployeeID: "E2", FullName: "Alan Turing"},
	{EmployeeID: "E3", FullName: "Grace Hopper"},
}

func testRecords() map[string][]attendance.Attendance {
	return map[string][]attendance.Attendance{
		"E1": {
			rec("E1", "2024-06-01", attendance.StatusPresent),
			rec("E1", "2024-06-03", attendance.StatusAbsent),
		},
		"E2": {
			rec("E2", "2024-06-03", attendance.StatusPresent),
		},
		"E3": {
			rec("E3", "2024-05-30", attendance.StatusPresent),
			rec("E3", "2024-06-02", attendance.StatusPresent),
		},
	}
}

func TestAggregate_SortsNewestFirstAndJoinsNames(t *testing.T) {
	res, err := Aggregate(context.Background(), testEmployees, fetchFrom(testRecords(), nil), 2)

	require.NoError(t, err)
	require.Len(t, res.Records, 5)
	assert.Empty(t, res.Omitted)

	for i := 1; i < len(res.Records); i++ {
		assert.False(t, res.Records[i].Date.After(res.Records[i-1].Date), "records must be newest first")
	}

	// equal dates keep directory order
	assert.Equal(t, "E1", res.Records[0].EmployeeID)
	assert.Equal(t, "Ada Lovelace", res.Records[0].EmployeeName)
	assert.Equal(t, "E2", res.Records[1].EmployeeID)
	assert.Equal(t, "Alan Turing", res.Records[1].EmployeeName)
	assert.Equal(t, day("2024-05-30"), res.Records[4].Date)
	assert.Equal(t, "Grace Hopper", res.Records[4].EmployeeName)
}

func TestAggregate_FailedEmployeeContributesNothing(t *testing.T) {
	failures := map[string]error{"E2": errors.New("boom")}

	res, err := Aggregate(context.Background(), testEmployees, fetchFrom(testRecords(), failures), 3)

	require.NoError(t, err)
	assert.Len(t, res.Records, 4)
	assert.Equal(t, []string{"E2"}, res.Omitted)
	for _, r := range res.Records {
		assert.NotEqual(t, "E2", r.EmployeeID)
	}
}

func TestAggregate_OnlyEmployeeFails(t *testing.T) {
	employees := []employee.Employee{{EmployeeID: "E1", FullName: "Ada Lovelace"}}
	failures := map[string]error{"E1": errors.New("boom")}

	res, err := Aggregate(context.Background(), employees, fetchFrom(nil, failures), 1)

	require.NoError(t, err)
	assert.Empty(t, res.Records)
	assert.Equal(t, []string{"E1"}, res.Omitted)
}

func TestAggregate_Idempotent(t *testing.T) {
	fetch := fetchFrom(testRecords(), nil)

	first, err := Aggregate(context.Background(), testEmployees, fetch, 3)
	require.NoError(t, err)
	second, err := Aggregate(context.Background(), testEmployees, fetch, 1)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestAggregate_NoEmployees(t *testing.T) {
	res, err := Aggregate(context.Background(), nil, fetchFrom(nil, nil), 4)

	require.NoError(t, err)
	assert.Empty(t, res.Records)
	assert.Empty(t, res.Omitted)
}

func TestAggregate_TagsRecordsWithDirectoryID(t *testing.T) {
	employees := []employee.Employee{{EmployeeID: "E1"}}
	records := map[string][]attendance.Attendance{
		"E1": {{Date: day("2024-06-01"), Status: attendance.StatusPresent}},
	}

	res, err := Aggregate(context.Background(), employees, fetchFrom(records, nil), 1)

	require.NoError(t, err)
	require.Len(t, res.Records, 1)
	assert.Equal(t, "E1", res.Records[0].EmployeeID)
	assert.Equal(t, "E1", res.Records[0].EmployeeName, "display name falls back to the id")
}

func TestAggregate_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Aggregate(ctx, testEmployees, fetchFrom(testRecords(), nil), 1)

	assert.ErrorIs(t, err, context.Canceled)
}
