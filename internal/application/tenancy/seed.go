package tenancy

import (
	"context"
	"fmt"

	"github.com/hrapi/backend/internal/domain/hr"
)

type seedDepartment struct {
	name, code, description string
}

type seedPosition struct {
	title, code, description, department string
}

type seedLeaveType struct {
	name, code string
	days       int
}

var defaultDepartments = []seedDepartment{
	{"Human Resources", "HR", "Human Resources Department"},
	{"Information Technology", "IT", "IT Department"},
	{"Finance", "FIN", "Finance Department"},
	{"Marketing", "MKT", "Marketing Department"},
	{"Sales", "SAL", "Sales Department"},
}

var defaultPositions = []seedPosition{
	{"Software Developer", "DEV", "Develops software applications", "IT"},
	{"HR Manager", "HRM", "Manages human resources", "HR"},
	{"Financial Analyst", "FA", "Analyzes financial data", "FIN"},
	{"Marketing Specialist", "MS", "Handles marketing activities", "MKT"},
	{"Sales Representative", "SR", "Manages sales activities", "SAL"},
}

var defaultLeaveTypes = []seedLeaveType{
	{"Annual Leave", "AL", 25},
	{"Sick Leave", "SL", 10},
	{"Personal Leave", "PL", 5},
	{"Maternity Leave", "ML", 90},
}

// SeedSummary counts the reference rows written by SeedReferenceData
type SeedSummary struct {
	Departments int `json:"departments"`
	Positions   int `json:"positions"`
	LeaveTypes  int `json:"leave_types"`
}

// Empty reports whether nothing was seeded
func (s SeedSummary) Empty() bool {
	return s.Departments == 0 && s.Positions == 0 && s.LeaveTypes == 0
}

// SeedReferenceData writes the default departments, positions and leave
// types in one transaction. A store that already has departments is left as is.
func SeedReferenceData(ctx context.Context, store hr.Store) (SeedSummary, error) {
	var summary SeedSummary

	existing, err := store.Departments().GetAll(ctx)
	if err != nil {
		return summary, fmt.Errorf("check existing departments: %w", err)
	}
	if len(existing) > 0 {
		return summary, nil
	}

	err = store.Transaction(ctx, func(tx hr.Store) error {
		summary = SeedSummary{}
		tenantID := tx.TenantID()
		byCode := make(map[string]*hr.Department, len(defaultDepartments))

		for _, d := range defaultDepartments {
			dept, err := hr.NewDepartment(tenantID, d.name, d.code, d.description)
			if err != nil {
				return err
			}
			if err := tx.Departments().Add(ctx, dept); err != nil {
				return fmt.Errorf("seed department %s: %w", d.code, err)
			}
			byCode[d.code] = dept
			summary.Departments++
		}

		for _, p := range defaultPositions {
			pos, err := hr.NewPosition(tenantID, p.title, p.code, p.description)
			if err != nil {
				return err
			}
			if dept, ok := byCode[p.department]; ok {
				deptID := dept.ID
				pos.DepartmentID = &deptID
			}
			if err := tx.Positions().Add(ctx, pos); err != nil {
				return fmt.Errorf("seed position %s: %w", p.code, err)
			}
			summary.Positions++
		}

		for _, l := range defaultLeaveTypes {
			lt, err := hr.NewLeaveType(tenantID, l.name, l.code, l.days)
			if err != nil {
				return err
			}
			if err := tx.LeaveTypes().Add(ctx, lt); err != nil {
				return fmt.Errorf("seed leave type %s: %w", l.code, err)
			}
			summary.LeaveTypes++
		}
		return nil
	})
	if err != nil {
		return SeedSummary{}, err
	}
	return summary, nil
}
