package salary

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"math/rand"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/anush47/salaryapp-backend-go/internal/domain/attendance"
	"github.com/anush47/salaryapp-backend-go/internal/domain/calendar"
	"github.com/anush47/salaryapp-backend-go/internal/domain/company"
	"github.com/anush47/salaryapp-backend-go/internal/domain/employee"
	"github.com/anush47/salaryapp-backend-go/internal/domain/period"
	"github.com/anush47/salaryapp-backend-go/internal/domain/purchase"
	"github.com/anush47/salaryapp-backend-go/internal/domain/salary"
)

// generateConcurrency bounds the per-employee fan-out within one request.
const generateConcurrency = 8

type SalaryServiceImpl struct {
	salaryRepo   salary.SalaryRepository
	employeeRepo employee.EmployeeRepository
	companyRepo  company.CompanyRepository
	calendarRepo calendar.CalendarRepository
	purchaseRepo purchase.PurchaseRepository
}

func NewSalaryService(
	salaryRepo salary.SalaryRepository,
	employeeRepo employee.EmployeeRepository,
	companyRepo company.CompanyRepository,
	calendarRepo calendar.CalendarRepository,
	purchaseRepo purchase.PurchaseRepository,
) salary.SalaryService {
	return &SalaryServiceImpl{
		salaryRepo:   salaryRepo,
		employeeRepo: employeeRepo,
		companyRepo:  companyRepo,
		calendarRepo: calendarRepo,
		purchaseRepo: purchaseRepo,
	}
}

func (s *SalaryServiceImpl) Generate(ctx context.Context, req salary.GenerateRequest) (salary.GenerateResponse, error) {
	if err := req.Validate(); err != nil {
		return salary.GenerateResponse{}, err
	}

	p, err := period.Parse(req.Period)
	if err != nil {
		return salary.GenerateResponse{}, err
	}

	approved, err := s.purchaseRepo.IsApproved(ctx, req.CompanyID, p)
	if err != nil {
		return salary.GenerateResponse{}, fmt.Errorf("failed to check purchase: %w", err)
	}
	if !approved {
		return salary.GenerateResponse{}, purchase.ErrPeriodNotPurchased
	}

	comp, err := s.companyRepo.GetByID(ctx, req.CompanyID)
	if err != nil {
		return salary.GenerateResponse{}, err
	}

	roster, err := s.employeeRepo.GetActiveByCompanyID(ctx, req.CompanyID)
	if err != nil {
		return salary.GenerateResponse{}, fmt.Errorf("failed to load roster: %w", err)
	}

	targets := roster
	if len(req.EmployeeIDs) > 0 {
		targets, err = s.employeeRepo.GetByIDs(ctx, req.EmployeeIDs, req.CompanyID)
		if err != nil {
			return salary.GenerateResponse{}, fmt.Errorf("failed to load employees: %w", err)
		}
	}
	if len(targets) == 0 {
		return salary.GenerateResponse{}, salary.ErrNoEmployees
	}

	var warnings []attendance.Warning
	events := map[string][]attendance.InOutEvent{}
	if req.InOutCSV != "" {
		rosterEntries := make([]attendance.RosterEntry, 0, len(roster))
		for _, e := range roster {
			rosterEntries = append(rosterEntries, attendance.RosterEntry{
				EmployeeID: e.ID,
				MemberNo:   e.MemberNo,
				Name:       e.Name,
				Active:     e.Active,
			})
		}
		records, parseWarnings, err := attendance.ParseCSV(req.InOutCSV, rosterEntries, p)
		if err != nil {
			return salary.GenerateResponse{}, err
		}
		paired, pairWarnings, err := attendance.PairEvents(records, rosterEntries)
		if err != nil {
			return salary.GenerateResponse{}, err
		}
		events = paired
		warnings = append(warnings, parseWarnings...)
		warnings = append(warnings, pairWarnings...)
	}

	holidaySets, err := s.loadHolidaySets(ctx, comp, targets, p)
	if err != nil {
		return salary.GenerateResponse{}, err
	}

	baseSeed := time.Now().UnixNano()
	if req.Seed != nil {
		baseSeed = *req.Seed
	}

	// Partial results are discarded on timeout, never half-persisted.
	workCtx, cancel := context.WithTimeout(ctx, 30*time.Second+200*time.Millisecond*time.Duration(len(targets)))
	defer cancel()

	var (
		mu       sync.Mutex
		salaries []salary.Salary
		exists   []string
		failed   []salary.GenerationFailure
	)

	g, gctx := errgroup.WithContext(workCtx)
	g.SetLimit(generateConcurrency)
	for _, emp := range targets {
		g.Go(func() error {
			result, err := s.generateOne(gctx, emp, comp, p, events[emp.ID], holidaySets, baseSeed, req.Update)

			mu.Lock()
			defer mu.Unlock()
			switch {
			case errors.Is(err, salary.ErrSalaryAlreadyExists):
				exists = append(exists, emp.ID)
			case err != nil:
				// One employee failing must not abort the batch.
				failed = append(failed, salary.GenerationFailure{EmployeeID: emp.ID, Message: err.Error()})
			default:
				salaries = append(salaries, result)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return salary.GenerateResponse{}, err
	}
	if err := workCtx.Err(); err != nil {
		return salary.GenerateResponse{}, fmt.Errorf("generation timed out: %w", err)
	}

	sort.Slice(salaries, func(i, j int) bool { return salaries[i].EmployeeID < salaries[j].EmployeeID })
	sort.Strings(exists)

	resp := salary.GenerateResponse{
		Salaries: mapToResponses(salaries),
		Exists:   exists,
		Failed:   failed,
		Warnings: warnings,
	}
	if resp.Exists == nil {
		resp.Exists = []string{}
	}
	return resp, nil
}

func (s *SalaryServiceImpl) generateOne(
	ctx context.Context,
	emp employee.Employee,
	comp company.Company,
	p period.Period,
	events []attendance.InOutEvent,
	holidaySets map[string]calendar.HolidaySet,
	baseSeed int64,
	update bool,
) (salary.Salary, error) {
	if !emp.Active {
		return salary.Salary{}, employee.ErrEmployeeInactive
	}
	if !emp.OTMethod.IsValid() {
		return salary.Salary{}, employee.ErrInvalidOTMethod
	}

	existing, err := s.salaryRepo.GetByEmployeePeriod(ctx, emp.ID, p, emp.CompanyID)
	switch {
	case err == nil && !update:
		return salary.Salary{}, salary.ErrSalaryAlreadyExists
	case err != nil && !errors.Is(err, salary.ErrSalaryNotFound):
		return salary.Salary{}, fmt.Errorf("failed to check existing salary: %w", err)
	}
	hasExisting := err == nil

	defaults := comp.Defaults()
	shifts := emp.EffectiveShifts(defaults)
	days := emp.EffectiveWorkingDays(defaults)
	holidays := holidaySets[emp.EffectiveCalendar(defaults)]
	rate := emp.HourlyRate()

	var computed []attendance.InOutEvent
	switch emp.OTMethod {
	case employee.OTMethodRandom:
		rng := rand.New(rand.NewSource(employeeSeed(baseSeed, emp.ID)))
		computed, err = Simulate(shifts, days, emp.EffectiveProbabilities(defaults), holidays, p, rate, rng)
		if err != nil {
			return salary.Salary{}, err
		}
	case employee.OTMethodCalc:
		if len(events) == 0 {
			return salary.Salary{}, attendance.ErrAttendanceDataMissing
		}
		fallthrough
	default:
		for _, ev := range events {
			day := time.Date(ev.In.Year(), ev.In.Month(), ev.In.Day(), 0, 0, 0, 0, time.UTC)
			firstIn := ev.In
			dc, err := ResolveDay(shifts, days, holidays, day, &firstIn)
			if err != nil {
				return salary.Salary{}, err
			}
			computed = append(computed, CalculateEvent(dc, ev, rate, emp.OTMethod))
		}
	}

	record := Aggregate(emp, p, computed, emp.EffectiveStructure(defaults))

	if hasExisting && update {
		// Recomputation from raw events; manually-entered fields survive.
		record.ID = existing.ID
		record.Remark = existing.Remark
		record.AdvanceAmount = existing.AdvanceAmount
		record.CreatedAt = existing.CreatedAt
		Recompute(&record)
		return s.salaryRepo.Update(ctx, record)
	}

	created, err := s.salaryRepo.Create(ctx, record)
	if err != nil {
		return salary.Salary{}, err
	}
	return created, nil
}

// loadHolidaySets fetches each holiday calendar referenced by the batch once.
func (s *SalaryServiceImpl) loadHolidaySets(ctx context.Context, comp company.Company, employees []employee.Employee, p period.Period) (map[string]calendar.HolidaySet, error) {
	names := map[string]bool{}
	defaults := comp.Defaults()
	for _, e := range employees {
		names[e.EffectiveCalendar(defaults)] = true
	}

	sets := make(map[string]calendar.HolidaySet, len(names))
	for name := range names {
		set, err := s.calendarRepo.GetHolidays(ctx, name, p)
		if err != nil {
			return nil, fmt.Errorf("failed to load %q holiday calendar: %w", name, err)
		}
		sets[name] = set
	}
	return sets, nil
}

// employeeSeed derives a stable per-employee seed so simulation results do
// not depend on batch ordering or fan-out interleaving.
func employeeSeed(base int64, employeeID string) int64 {
	h := fnv.New64a()
	h.Write([]byte(employeeID))
	return base ^ int64(h.Sum64())
}

func (s *SalaryServiceImpl) Get(ctx context.Context, id string, companyID string) (salary.SalaryResponse, error) {
	record, err := s.salaryRepo.GetByID(ctx, id, companyID)
	if err != nil {
		return salary.SalaryResponse{}, err
	}
	return mapToResponse(record), nil
}

func (s *SalaryServiceImpl) List(ctx context.Context, companyID string, filter salary.Filter) (salary.ListResponse, error) {
	if filter.Limit <= 0 {
		filter.Limit = 20
	}
	if filter.Page <= 0 {
		filter.Page = 1
	}

	records, totalCount, err := s.salaryRepo.List(ctx, companyID, filter)
	if err != nil {
		return salary.ListResponse{}, err
	}

	return salary.ListResponse{
		Data:       mapToResponses(records),
		TotalCount: totalCount,
		Page:       filter.Page,
		Limit:      filter.Limit,
	}, nil
}

func (s *SalaryServiceImpl) Update(ctx context.Context, companyID string, req salary.UpdateRequest) (salary.SalaryResponse, error) {
	if err := req.Validate(); err != nil {
		return salary.SalaryResponse{}, err
	}

	record, err := s.salaryRepo.GetByID(ctx, req.ID, companyID)
	if err != nil {
		return salary.SalaryResponse{}, err
	}

	applyUpdate(&record, req)

	updated, err := s.salaryRepo.Update(ctx, record)
	if err != nil {
		return salary.SalaryResponse{}, err
	}
	return mapToResponse(updated), nil
}

func (s *SalaryServiceImpl) Delete(ctx context.Context, id string, companyID string) error {
	return s.salaryRepo.Delete(ctx, id, companyID)
}

// ========== HELPERS ==========

func mapToResponse(r salary.Salary) salary.SalaryResponse {
	resp := salary.SalaryResponse{
		ID:            r.ID,
		EmployeeID:    r.EmployeeID,
		Period:        r.Period.String(),
		Basic:         r.Basic,
		HolidayPay:    r.HolidayPay,
		InOut:         r.InOut,
		OT:            r.OT,
		NoPay:         r.NoPay,
		Structure:     r.Structure,
		EarningsBase:  r.EarningsBase,
		EPFAmount:     r.EPFAmount(),
		AdvanceAmount: r.AdvanceAmount,
		FinalSalary:   r.FinalSalary,
		Remark:        r.Remark,
	}
	if r.EmployeeName != nil {
		resp.EmployeeName = *r.EmployeeName
	}
	if r.MemberNo != nil {
		resp.MemberNo = *r.MemberNo
	}
	return resp
}

func mapToResponses(records []salary.Salary) []salary.SalaryResponse {
	result := make([]salary.SalaryResponse, 0, len(records))
	for _, r := range records {
		result = append(result, mapToResponse(r))
	}
	return result
}
