package postgresql

import (
	"context"
	"fmt"

	"github.com/anush47/salaryapp-backend-go/internal/domain/period"
	"github.com/anush47/salaryapp-backend-go/internal/domain/purchase"
	"github.com/anush47/salaryapp-backend-go/internal/pkg/database"
)

type purchaseRepository struct {
	db *database.DB
}

func NewPurchaseRepository(db *database.DB) purchase.PurchaseRepository {
	return &purchaseRepository{db: db}
}

func (r *purchaseRepository) IsApproved(ctx context.Context, companyID string, p period.Period) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT EXISTS (
			SELECT 1 FROM purchases
			WHERE company_id = $1 AND period = $2 AND status = $3
		)
	`

	var approved bool
	err := q.QueryRow(ctx, query, companyID, p.String(), purchase.StatusApproved).Scan(&approved)
	if err != nil {
		return false, fmt.Errorf("failed to check purchase: %w", err)
	}
	return approved, nil
}
