package postgresql

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/anush47/salaryapp-backend-go/internal/domain/company"
	"github.com/anush47/salaryapp-backend-go/internal/pkg/database"
)

type companyRepository struct {
	db *database.DB
}

func NewCompanyRepository(db *database.DB) company.CompanyRepository {
	return &companyRepository{db: db}
}

func (r *companyRepository) GetByID(ctx context.Context, id string) (company.Company, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, employer_no, address, etf_rate,
			   shifts, working_days, probabilities, payment_structure, calendar,
			   active, created_at, updated_at
		FROM companies
		WHERE id = $1
	`

	var c company.Company
	var shifts, workingDays, probabilities, structure []byte
	err := q.QueryRow(ctx, query, id).Scan(
		&c.ID, &c.Name, &c.EmployerNo, &c.Address, &c.EtfRate,
		&shifts, &workingDays, &probabilities, &structure, &c.Calendar,
		&c.Active, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return company.Company{}, company.ErrCompanyNotFound
		}
		return company.Company{}, fmt.Errorf("failed to get company: %w", err)
	}

	if err := unmarshalConfig(shifts, &c.Shifts); err != nil {
		return company.Company{}, fmt.Errorf("failed to decode company shifts: %w", err)
	}
	if err := unmarshalConfig(workingDays, &c.WorkingDays); err != nil {
		return company.Company{}, fmt.Errorf("failed to decode company working days: %w", err)
	}
	if err := unmarshalConfig(probabilities, &c.Probabilities); err != nil {
		return company.Company{}, fmt.Errorf("failed to decode company probabilities: %w", err)
	}
	if err := unmarshalConfig(structure, &c.Structure); err != nil {
		return company.Company{}, fmt.Errorf("failed to decode company payment structure: %w", err)
	}

	return c, nil
}

// unmarshalConfig decodes a JSONB configuration column, treating NULL as
// the zero value.
func unmarshalConfig(data []byte, v interface{}) error {
	if len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, v)
}
