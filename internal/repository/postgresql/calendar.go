package postgresql

import (
	"context"
	"fmt"

	"github.com/anush47/salaryapp-backend-go/internal/domain/calendar"
	"github.com/anush47/salaryapp-backend-go/internal/domain/period"
	"github.com/anush47/salaryapp-backend-go/internal/pkg/database"
)

type calendarRepository struct {
	db *database.DB
}

func NewCalendarRepository(db *database.DB) calendar.CalendarRepository {
	return &calendarRepository{db: db}
}

func (r *calendarRepository) GetHolidays(ctx context.Context, name string, p period.Period) (calendar.HolidaySet, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT date, name, type, calendar
		FROM holidays
		WHERE calendar = $1 AND date >= $2 AND date <= $3
		ORDER BY date
	`

	rows, err := q.Query(ctx, query, name, p.Start(), p.End())
	if err != nil {
		return nil, fmt.Errorf("failed to list holidays: %w", err)
	}
	defer rows.Close()

	set := make(calendar.HolidaySet)
	for rows.Next() {
		var h calendar.Holiday
		if err := rows.Scan(&h.Date, &h.Name, &h.Type, &h.Calendar); err != nil {
			return nil, fmt.Errorf("failed to scan holiday: %w", err)
		}
		set[h.Date.Format("2006-01-02")] = h
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate holidays: %w", err)
	}

	return set, nil
}
