package postgresql

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/anush47/salaryapp-backend-go/internal/domain/period"
	"github.com/anush47/salaryapp-backend-go/internal/domain/salary"
	"github.com/anush47/salaryapp-backend-go/internal/pkg/database"
)

type salaryRepository struct {
	db *database.DB
}

func NewSalaryRepository(db *database.DB) salary.SalaryRepository {
	return &salaryRepository{db: db}
}

const salaryColumns = `
	s.id, s.company_id, s.employee_id, s.period, s.basic, s.holiday_pay,
	s.in_out, s.ot_amount, s.ot_reason, s.no_pay_amount, s.no_pay_reason,
	s.payment_structure, s.earnings_base, s.advance_amount, s.final_salary,
	s.remark, s.created_at, s.updated_at, e.name, e.member_no
`

const salaryJoin = ` FROM salaries s JOIN employees e ON e.id = s.employee_id `

func (r *salaryRepository) Create(ctx context.Context, s salary.Salary) (salary.Salary, error) {
	q := GetQuerier(ctx, r.db)

	inOut, structure, err := marshalSalaryJSON(s)
	if err != nil {
		return salary.Salary{}, err
	}

	query := `
		INSERT INTO salaries (
			id, company_id, employee_id, period, basic, holiday_pay,
			in_out, ot_amount, ot_reason, no_pay_amount, no_pay_reason,
			payment_structure, earnings_base, advance_amount, final_salary, remark
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		RETURNING id, created_at, updated_at
	`

	id := uuid.NewString()
	err = q.QueryRow(ctx, query,
		id, s.CompanyID, s.EmployeeID, s.Period.String(), s.Basic, s.HolidayPay,
		inOut, s.OT.Amount, s.OT.Reason, s.NoPay.Amount, s.NoPay.Reason,
		structure, s.EarningsBase, s.AdvanceAmount, s.FinalSalary, s.Remark,
	).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		// The (employee, period) unique index is the idempotency guard; a
		// concurrent duplicate insert lands here.
		if strings.Contains(err.Error(), "uk_salaries_employee_period") {
			return salary.Salary{}, salary.ErrSalaryAlreadyExists
		}
		return salary.Salary{}, fmt.Errorf("failed to create salary: %w", err)
	}

	return s, nil
}

func (r *salaryRepository) GetByID(ctx context.Context, id string, companyID string) (salary.Salary, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT` + salaryColumns + salaryJoin + `WHERE s.id = $1 AND s.company_id = $2`

	s, err := scanSalary(q.QueryRow(ctx, query, id, companyID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return salary.Salary{}, salary.ErrSalaryNotFound
		}
		return salary.Salary{}, fmt.Errorf("failed to get salary: %w", err)
	}
	return s, nil
}

func (r *salaryRepository) GetByEmployeePeriod(ctx context.Context, employeeID string, p period.Period, companyID string) (salary.Salary, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT` + salaryColumns + salaryJoin + `
		WHERE s.employee_id = $1 AND s.period = $2 AND s.company_id = $3`

	s, err := scanSalary(q.QueryRow(ctx, query, employeeID, p.String(), companyID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return salary.Salary{}, salary.ErrSalaryNotFound
		}
		return salary.Salary{}, fmt.Errorf("failed to get salary: %w", err)
	}
	return s, nil
}

func (r *salaryRepository) ListByCompanyPeriod(ctx context.Context, companyID string, p period.Period) ([]salary.Salary, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT` + salaryColumns + salaryJoin + `
		WHERE s.company_id = $1 AND s.period = $2
		ORDER BY e.member_no`

	rows, err := q.Query(ctx, query, companyID, p.String())
	if err != nil {
		return nil, fmt.Errorf("failed to list salaries: %w", err)
	}
	defer rows.Close()

	return collectSalaries(rows)
}

func (r *salaryRepository) List(ctx context.Context, companyID string, filter salary.Filter) ([]salary.Salary, int64, error) {
	q := GetQuerier(ctx, r.db)

	where := ` WHERE s.company_id = $1`
	args := []interface{}{companyID}
	if filter.Period != "" {
		args = append(args, filter.Period)
		where += fmt.Sprintf(" AND s.period = $%d", len(args))
	}
	if filter.EmployeeID != "" {
		args = append(args, filter.EmployeeID)
		where += fmt.Sprintf(" AND s.employee_id = $%d", len(args))
	}

	var total int64
	countQuery := `SELECT COUNT(*)` + salaryJoin + where
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count salaries: %w", err)
	}

	offset := (filter.Page - 1) * filter.Limit
	args = append(args, filter.Limit, offset)
	query := `SELECT` + salaryColumns + salaryJoin + where +
		fmt.Sprintf(" ORDER BY s.period DESC, e.member_no LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list salaries: %w", err)
	}
	defer rows.Close()

	salaries, err := collectSalaries(rows)
	if err != nil {
		return nil, 0, err
	}
	return salaries, total, nil
}

func (r *salaryRepository) Update(ctx context.Context, s salary.Salary) (salary.Salary, error) {
	q := GetQuerier(ctx, r.db)

	inOut, structure, err := marshalSalaryJSON(s)
	if err != nil {
		return salary.Salary{}, err
	}

	query := `
		UPDATE salaries SET
			basic = $3, holiday_pay = $4, in_out = $5,
			ot_amount = $6, ot_reason = $7, no_pay_amount = $8, no_pay_reason = $9,
			payment_structure = $10, earnings_base = $11, advance_amount = $12,
			final_salary = $13, remark = $14, updated_at = NOW()
		WHERE id = $1 AND company_id = $2
		RETURNING updated_at
	`

	err = q.QueryRow(ctx, query,
		s.ID, s.CompanyID, s.Basic, s.HolidayPay, inOut,
		s.OT.Amount, s.OT.Reason, s.NoPay.Amount, s.NoPay.Reason,
		structure, s.EarningsBase, s.AdvanceAmount, s.FinalSalary, s.Remark,
	).Scan(&s.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return salary.Salary{}, salary.ErrSalaryNotFound
		}
		return salary.Salary{}, fmt.Errorf("failed to update salary: %w", err)
	}

	return s, nil
}

func (r *salaryRepository) Delete(ctx context.Context, id string, companyID string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM salaries WHERE id = $1 AND company_id = $2`, id, companyID)
	if err != nil {
		return fmt.Errorf("failed to delete salary: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return salary.ErrSalaryNotFound
	}
	return nil
}

func marshalSalaryJSON(s salary.Salary) (inOut, structure []byte, err error) {
	if inOut, err = json.Marshal(s.InOut); err != nil {
		return nil, nil, fmt.Errorf("failed to encode in/out events: %w", err)
	}
	if structure, err = json.Marshal(s.Structure); err != nil {
		return nil, nil, fmt.Errorf("failed to encode payment structure: %w", err)
	}
	return inOut, structure, nil
}

func scanSalary(row pgx.Row) (salary.Salary, error) {
	var s salary.Salary
	var periodStr string
	var inOut, structure []byte

	err := row.Scan(
		&s.ID, &s.CompanyID, &s.EmployeeID, &periodStr, &s.Basic, &s.HolidayPay,
		&inOut, &s.OT.Amount, &s.OT.Reason, &s.NoPay.Amount, &s.NoPay.Reason,
		&structure, &s.EarningsBase, &s.AdvanceAmount, &s.FinalSalary,
		&s.Remark, &s.CreatedAt, &s.UpdatedAt, &s.EmployeeName, &s.MemberNo,
	)
	if err != nil {
		return salary.Salary{}, err
	}

	if s.Period, err = period.Parse(periodStr); err != nil {
		return salary.Salary{}, fmt.Errorf("failed to parse stored period: %w", err)
	}
	if err := unmarshalConfig(inOut, &s.InOut); err != nil {
		return salary.Salary{}, fmt.Errorf("failed to decode in/out events: %w", err)
	}
	if err := unmarshalConfig(structure, &s.Structure); err != nil {
		return salary.Salary{}, fmt.Errorf("failed to decode payment structure: %w", err)
	}

	return s, nil
}

func collectSalaries(rows pgx.Rows) ([]salary.Salary, error) {
	var salaries []salary.Salary
	for rows.Next() {
		s, err := scanSalary(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan salary: %w", err)
		}
		salaries = append(salaries, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate salaries: %w", err)
	}
	return salaries, nil
}
