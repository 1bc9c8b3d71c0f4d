package hr

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/hrapi/backend/internal/domain/hr"
	"github.com/hrapi/backend/internal/infrastructure/config"
	"github.com/hrapi/backend/internal/infrastructure/persistence"
	"github.com/hrapi/backend/internal/testutil"
	"github.com/stretchr/testify/require"
)

type noSource struct{}

func (noSource) GetConnectionDescriptor(context.Context, string) (string, error) { return "", nil }

// newTestStore provisions a private in-memory SQLite tenant store
func newTestStore(t *testing.T) hr.Store {
	t.Helper()
	factory := persistence.NewStoreFactory(noSource{}, config.TenantStoreConfig{MaxOpenConns: 1, MaxIdleConns: 1})
	t.Cleanup(func() { _ = factory.Close() })

	descriptor := testutil.SQLiteDescriptor("hr")
	store, err := factory.ProvisionStore(context.Background(), uuid.New(), descriptor)
	require.NoError(t, err)
	return store
}

type references struct {
	department *hr.Department
	position   *hr.Position
	annual     *hr.LeaveType
}

func seedReferences(t *testing.T, store hr.Store) references {
	t.Helper()
	ctx := context.Background()

	dept, err := hr.NewDepartment(store.TenantID(), "Engineering", "ENG", "")
	require.NoError(t, err)
	require.NoError(t, store.Departments().Add(ctx, dept))

	pos, err := hr.NewPosition(store.TenantID(), "Developer", "DEV", "")
	require.NoError(t, err)
	pos.DepartmentID = &dept.ID
	require.NoError(t, store.Positions().Add(ctx, pos))

	annual, err := hr.NewLeaveType(store.TenantID(), "Annual Leave", "AL", 25)
	require.NoError(t, err)
	require.NoError(t, store.LeaveTypes().Add(ctx, annual))

	return references{department: dept, position: pos, annual: annual}
}

func employeeInput(refs references, number, email string) EmployeeInput {
	return EmployeeInput{
		EmployeeNumber: number,
		FirstName:      "Grace",
		LastName:       "Hopper",
		Email:          email,
		HireDate:       day(2021, time.June, 1),
		DepartmentID:   refs.department.ID,
		PositionID:     refs.position.ID,
	}
}

func addEmployee(t *testing.T, store hr.Store, refs references, number, email string) *hr.Employee {
	t.Helper()
	e, err := hr.NewEmployee(store.TenantID(), employeeInput(refs, number, email))
	require.NoError(t, err)
	require.NoError(t, store.Employees().Add(context.Background(), e))
	return e
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
