package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/anush47/salaryapp-backend-go/internal/domain/employee"
	"github.com/anush47/salaryapp-backend-go/internal/pkg/database"
)

type employeeRepository struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepository{db: db}
}

const employeeColumns = `
	id, company_id, member_no, nic, name, basic, divide_by, ot_method,
	shifts, working_days, probabilities, payment_structure, overrides,
	calendar, active, created_at, updated_at
`

func (r *employeeRepository) GetByID(ctx context.Context, id string, companyID string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + employeeColumns + ` FROM employees WHERE id = $1 AND company_id = $2`

	e, err := scanEmployee(q.QueryRow(ctx, query, id, companyID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee: %w", err)
	}
	return e, nil
}

func (r *employeeRepository) GetActiveByCompanyID(ctx context.Context, companyID string) ([]employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + employeeColumns + `
		FROM employees
		WHERE company_id = $1 AND active = true
		ORDER BY member_no`

	rows, err := q.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list active employees: %w", err)
	}
	defer rows.Close()

	return collectEmployees(rows)
}

func (r *employeeRepository) GetByIDs(ctx context.Context, ids []string, companyID string) ([]employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + employeeColumns + `
		FROM employees
		WHERE company_id = $1 AND id = ANY($2)
		ORDER BY member_no`

	rows, err := q.Query(ctx, query, companyID, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees by ids: %w", err)
	}
	defer rows.Close()

	return collectEmployees(rows)
}

func scanEmployee(row pgx.Row) (employee.Employee, error) {
	var e employee.Employee
	var shifts, workingDays, probabilities, structure, overrides []byte

	err := row.Scan(
		&e.ID, &e.CompanyID, &e.MemberNo, &e.NIC, &e.Name, &e.Basic, &e.DivideBy, &e.OTMethod,
		&shifts, &workingDays, &probabilities, &structure, &overrides,
		&e.Calendar, &e.Active, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return employee.Employee{}, err
	}

	if err := unmarshalConfig(shifts, &e.Shifts); err != nil {
		return employee.Employee{}, fmt.Errorf("failed to decode employee shifts: %w", err)
	}
	if err := unmarshalConfig(workingDays, &e.WorkingDays); err != nil {
		return employee.Employee{}, fmt.Errorf("failed to decode employee working days: %w", err)
	}
	if err := unmarshalConfig(probabilities, &e.Probabilities); err != nil {
		return employee.Employee{}, fmt.Errorf("failed to decode employee probabilities: %w", err)
	}
	if err := unmarshalConfig(structure, &e.Structure); err != nil {
		return employee.Employee{}, fmt.Errorf("failed to decode employee payment structure: %w", err)
	}
	if err := unmarshalConfig(overrides, &e.Overrides); err != nil {
		return employee.Employee{}, fmt.Errorf("failed to decode employee overrides: %w", err)
	}

	return e, nil
}

func collectEmployees(rows pgx.Rows) ([]employee.Employee, error) {
	var employees []employee.Employee
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate employees: %w", err)
	}
	return employees, nil
}
