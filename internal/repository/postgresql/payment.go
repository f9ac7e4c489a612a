package postgresql

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/anush47/salaryapp-backend-go/internal/domain/payment"
	"github.com/anush47/salaryapp-backend-go/internal/domain/period"
	"github.com/anush47/salaryapp-backend-go/internal/pkg/database"
)

type paymentRepository struct {
	db *database.DB
}

func NewPaymentRepository(db *database.DB) payment.PaymentRepository {
	return &paymentRepository{db: db}
}

const paymentColumns = `
	id, company_id, period, epf_amount, epf_surcharges, epf_reference_no,
	epf_payment_method, epf_cheque_no, epf_pay_day,
	etf_amount, etf_surcharges, etf_payment_method, etf_cheque_no, etf_pay_day,
	remark, created_at, updated_at
`

func (r *paymentRepository) Create(ctx context.Context, p payment.Payment) (payment.Payment, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO payments (
			id, company_id, period, epf_amount, epf_surcharges, epf_reference_no,
			epf_payment_method, epf_cheque_no, epf_pay_day,
			etf_amount, etf_surcharges, etf_payment_method, etf_cheque_no, etf_pay_day,
			remark
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING id, created_at, updated_at
	`

	id := uuid.NewString()
	err := q.QueryRow(ctx, query,
		id, p.CompanyID, p.Period.String(), p.EPFAmount, p.EPFSurcharges, p.EPFReferenceNo,
		p.EPFPaymentMethod, p.EPFChequeNo, p.EPFPayDay,
		p.ETFAmount, p.ETFSurcharges, p.ETFPaymentMethod, p.ETFChequeNo, p.ETFPayDay,
		p.Remark,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		// The (company, period) unique index keeps the batch singular.
		if strings.Contains(err.Error(), "uk_payments_company_period") {
			return payment.Payment{}, payment.ErrPaymentAlreadyExists
		}
		return payment.Payment{}, fmt.Errorf("failed to create payment: %w", err)
	}

	return p, nil
}

func (r *paymentRepository) GetByID(ctx context.Context, id string, companyID string) (payment.Payment, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT` + paymentColumns + `FROM payments WHERE id = $1 AND company_id = $2`

	p, err := scanPayment(q.QueryRow(ctx, query, id, companyID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return payment.Payment{}, payment.ErrPaymentNotFound
		}
		return payment.Payment{}, fmt.Errorf("failed to get payment: %w", err)
	}
	return p, nil
}

func (r *paymentRepository) GetByCompanyPeriod(ctx context.Context, companyID string, pd period.Period) (payment.Payment, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT` + paymentColumns + `FROM payments WHERE company_id = $1 AND period = $2`

	p, err := scanPayment(q.QueryRow(ctx, query, companyID, pd.String()))
	if err != nil {
		if err == pgx.ErrNoRows {
			return payment.Payment{}, payment.ErrPaymentNotFound
		}
		return payment.Payment{}, fmt.Errorf("failed to get payment: %w", err)
	}
	return p, nil
}

func (r *paymentRepository) ListByCompany(ctx context.Context, companyID string) ([]payment.Payment, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT` + paymentColumns + `FROM payments WHERE company_id = $1 ORDER BY period DESC`

	rows, err := q.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	defer rows.Close()

	var payments []payment.Payment
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payment: %w", err)
		}
		payments = append(payments, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate payments: %w", err)
	}
	return payments, nil
}

func (r *paymentRepository) UpdateAmounts(ctx context.Context, id string, companyID string, update payment.Payment) (payment.Payment, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE payments SET
			epf_amount = $3, etf_amount = $4, updated_at = NOW()
		WHERE id = $1 AND company_id = $2
		RETURNING` + paymentColumns

	p, err := scanPayment(q.QueryRow(ctx, query, id, companyID, update.EPFAmount, update.ETFAmount))
	if err != nil {
		if err == pgx.ErrNoRows {
			return payment.Payment{}, payment.ErrPaymentNotFound
		}
		return payment.Payment{}, fmt.Errorf("failed to update payment amounts: %w", err)
	}
	return p, nil
}

func (r *paymentRepository) Update(ctx context.Context, p payment.Payment) (payment.Payment, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE payments SET
			epf_surcharges = $3, epf_reference_no = $4, epf_payment_method = $5,
			epf_cheque_no = $6, epf_pay_day = $7,
			etf_surcharges = $8, etf_payment_method = $9, etf_cheque_no = $10,
			etf_pay_day = $11, remark = $12, updated_at = NOW()
		WHERE id = $1 AND company_id = $2
		RETURNING` + paymentColumns

	updated, err := scanPayment(q.QueryRow(ctx, query,
		p.ID, p.CompanyID,
		p.EPFSurcharges, p.EPFReferenceNo, p.EPFPaymentMethod, p.EPFChequeNo, p.EPFPayDay,
		p.ETFSurcharges, p.ETFPaymentMethod, p.ETFChequeNo, p.ETFPayDay, p.Remark,
	))
	if err != nil {
		if err == pgx.ErrNoRows {
			return payment.Payment{}, payment.ErrPaymentNotFound
		}
		return payment.Payment{}, fmt.Errorf("failed to update payment: %w", err)
	}
	return updated, nil
}

func (r *paymentRepository) Delete(ctx context.Context, id string, companyID string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM payments WHERE id = $1 AND company_id = $2`, id, companyID)
	if err != nil {
		return fmt.Errorf("failed to delete payment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return payment.ErrPaymentNotFound
	}
	return nil
}

func scanPayment(row pgx.Row) (payment.Payment, error) {
	var p payment.Payment
	var periodStr string

	err := row.Scan(
		&p.ID, &p.CompanyID, &periodStr, &p.EPFAmount, &p.EPFSurcharges, &p.EPFReferenceNo,
		&p.EPFPaymentMethod, &p.EPFChequeNo, &p.EPFPayDay,
		&p.ETFAmount, &p.ETFSurcharges, &p.ETFPaymentMethod, &p.ETFChequeNo, &p.ETFPayDay,
		&p.Remark, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return payment.Payment{}, err
	}

	if p.Period, err = period.Parse(periodStr); err != nil {
		return payment.Payment{}, fmt.Errorf("failed to parse stored period: %w", err)
	}
	return p, nil
}

type periodLocker struct {
	db *database.DB
}

// NewPeriodLocker serializes payment generation on a transaction-scoped
// advisory lock keyed by (company, period).
func NewPeriodLocker(db *database.DB) payment.PeriodLocker {
	return &periodLocker{db: db}
}

func (l *periodLocker) WithPeriodLock(ctx context.Context, companyID string, p period.Period, fn func(ctx context.Context) error) error {
	return WithTransaction(ctx, l.db, func(ctx context.Context) error {
		q := GetQuerier(ctx, l.db)
		key := companyID + ":" + p.String()
		if _, err := q.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, key); err != nil {
			return fmt.Errorf("failed to acquire period lock: %w", err)
		}
		return fn(ctx)
	})
}
