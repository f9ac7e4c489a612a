package salary

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anush47/salaryapp-backend-go/internal/domain/calendar"
	"github.com/anush47/salaryapp-backend-go/internal/domain/company"
	"github.com/anush47/salaryapp-backend-go/internal/domain/employee"
	"github.com/anush47/salaryapp-backend-go/internal/domain/period"
	"github.com/anush47/salaryapp-backend-go/internal/domain/purchase"
	"github.com/anush47/salaryapp-backend-go/internal/domain/salary"
)

// ========== IN-MEMORY FAKES ==========

type fakeSalaryRepo struct {
	mu      sync.Mutex
	nextID  int
	records map[string]salary.Salary // key: employeeID|period
}

func newFakeSalaryRepo() *fakeSalaryRepo {
	return &fakeSalaryRepo{records: map[string]salary.Salary{}}
}

func salaryKey(employeeID string, p period.Period) string {
	return employeeID + "|" + p.String()
}

func (r *fakeSalaryRepo) Create(ctx context.Context, s salary.Salary) (salary.Salary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := salaryKey(s.EmployeeID, s.Period)
	if _, ok := r.records[key]; ok {
		return salary.Salary{}, salary.ErrSalaryAlreadyExists
	}
	r.nextID++
	s.ID = fmt.Sprintf("sal-%d", r.nextID)
	r.records[key] = s
	return s, nil
}

func (r *fakeSalaryRepo) GetByID(ctx context.Context, id string, companyID string) (salary.Salary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.records {
		if s.ID == id && s.CompanyID == companyID {
			return s, nil
		}
	}
	return salary.Salary{}, salary.ErrSalaryNotFound
}

func (r *fakeSalaryRepo) GetByEmployeePeriod(ctx context.Context, employeeID string, p period.Period, companyID string) (salary.Salary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.records[salaryKey(employeeID, p)]; ok && s.CompanyID == companyID {
		return s, nil
	}
	return salary.Salary{}, salary.ErrSalaryNotFound
}

func (r *fakeSalaryRepo) ListByCompanyPeriod(ctx context.Context, companyID string, p period.Period) ([]salary.Salary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []salary.Salary
	for _, s := range r.records {
		if s.CompanyID == companyID && s.Period == p {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *fakeSalaryRepo) List(ctx context.Context, companyID string, filter salary.Filter) ([]salary.Salary, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []salary.Salary
	for _, s := range r.records {
		if s.CompanyID != companyID {
			continue
		}
		if filter.Period != "" && s.Period.String() != filter.Period {
			continue
		}
		if filter.EmployeeID != "" && s.EmployeeID != filter.EmployeeID {
			continue
		}
		out = append(out, s)
	}
	return out, int64(len(out)), nil
}

func (r *fakeSalaryRepo) Update(ctx context.Context, s salary.Salary) (salary.Salary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := salaryKey(s.EmployeeID, s.Period)
	if _, ok := r.records[key]; !ok {
		return salary.Salary{}, salary.ErrSalaryNotFound
	}
	r.records[key] = s
	return s, nil
}

func (r *fakeSalaryRepo) Delete(ctx context.Context, id string, companyID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for key, s := range r.records {
		if s.ID == id && s.CompanyID == companyID {
			delete(r.records, key)
			return nil
		}
	}
	return salary.ErrSalaryNotFound
}

type fakeEmployeeRepo struct {
	employees map[string]employee.Employee
}

func (r *fakeEmployeeRepo) GetByID(ctx context.Context, id string, companyID string) (employee.Employee, error) {
	if e, ok := r.employees[id]; ok && e.CompanyID == companyID {
		return e, nil
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (r *fakeEmployeeRepo) GetActiveByCompanyID(ctx context.Context, companyID string) ([]employee.Employee, error) {
	var out []employee.Employee
	for _, e := range r.employees {
		if e.CompanyID == companyID && e.Active {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *fakeEmployeeRepo) GetByIDs(ctx context.Context, ids []string, companyID string) ([]employee.Employee, error) {
	var out []employee.Employee
	for _, id := range ids {
		if e, ok := r.employees[id]; ok && e.CompanyID == companyID {
			out = append(out, e)
		}
	}
	return out, nil
}

type fakeCompanyRepo struct {
	company company.Company
}

func (r *fakeCompanyRepo) GetByID(ctx context.Context, id string) (company.Company, error) {
	if r.company.ID != id {
		return company.Company{}, company.ErrCompanyNotFound
	}
	return r.company, nil
}

type fakeCalendarRepo struct {
	holidays calendar.HolidaySet
}

func (r *fakeCalendarRepo) GetHolidays(ctx context.Context, name string, p period.Period) (calendar.HolidaySet, error) {
	return r.holidays, nil
}

type fakePurchaseRepo struct {
	approved bool
}

func (r *fakePurchaseRepo) IsApproved(ctx context.Context, companyID string, p period.Period) (bool, error) {
	return r.approved, nil
}

// ========== FIXTURE ==========

type fixture struct {
	salaries  *fakeSalaryRepo
	employees *fakeEmployeeRepo
	purchases *fakePurchaseRepo
	service   salary.SalaryService
}

func newFixture(emps ...employee.Employee) *fixture {
	comp := company.Company{
		ID:         "comp-1",
		Name:       "Colombo Traders",
		EmployerNo: "A/12345",
		EtfRate:    decimal.NewFromFloat(0.03),
		Shifts:     []employee.Shift{dayShift},
		WorkingDays: employee.WorkingDays{
			Monday: employee.DayTypeFull, Tuesday: employee.DayTypeFull,
			Wednesday: employee.DayTypeFull, Thursday: employee.DayTypeFull,
			Friday: employee.DayTypeFull,
			Saturday: employee.DayTypeHalf, Sunday: employee.DayTypeOff,
		},
		Calendar: "default",
		Active:   true,
	}

	f := &fixture{
		salaries:  newFakeSalaryRepo(),
		employees: &fakeEmployeeRepo{employees: map[string]employee.Employee{}},
		purchases: &fakePurchaseRepo{approved: true},
	}
	for _, e := range emps {
		f.employees.employees[e.ID] = e
	}
	f.service = NewSalaryService(f.salaries, f.employees, &fakeCompanyRepo{company: comp}, &fakeCalendarRepo{}, f.purchases)
	return f
}

func rosterEmployee(id string, memberNo int, method employee.OTMethod) employee.Employee {
	return employee.Employee{
		ID:        id,
		CompanyID: "comp-1",
		MemberNo:  memberNo,
		Name:      "Employee " + id,
		Basic:     decimal.NewFromInt(21000),
		DivideBy:  240,
		OTMethod:  method,
		Active:    true,
	}
}

// ========== TESTS ==========

func TestGenerateNotPurchased(t *testing.T) {
	f := newFixture(rosterEmployee("emp-1", 101, employee.OTMethodNone))
	f.purchases.approved = false

	_, err := f.service.Generate(context.Background(), salary.GenerateRequest{
		CompanyID: "comp-1",
		Period:    "2024-03",
	})
	assert.ErrorIs(t, err, purchase.ErrPeriodNotPurchased)
	assert.Empty(t, f.salaries.records, "nothing may persist behind the gate")
}

func TestGenerateNoOtFullRoster(t *testing.T) {
	f := newFixture(
		rosterEmployee("emp-1", 101, employee.OTMethodNone),
		rosterEmployee("emp-2", 102, employee.OTMethodNone),
	)

	resp, err := f.service.Generate(context.Background(), salary.GenerateRequest{
		CompanyID: "comp-1",
		Period:    "2024-03",
	})
	require.NoError(t, err)
	require.Len(t, resp.Salaries, 2)
	assert.Empty(t, resp.Exists)
	assert.Empty(t, resp.Failed)

	// No attendance rows on noOt means no no-pay: basic carries through.
	for _, s := range resp.Salaries {
		assert.True(t, s.FinalSalary.Equal(decimal.NewFromInt(21000)), "got %s", s.FinalSalary)
		assert.True(t, s.EPFAmount.Equal(decimal.NewFromInt(1680)))
	}
}

func TestGenerateIdempotent(t *testing.T) {
	f := newFixture(rosterEmployee("emp-1", 101, employee.OTMethodNone))

	req := salary.GenerateRequest{CompanyID: "comp-1", Period: "2024-03"}

	first, err := f.service.Generate(context.Background(), req)
	require.NoError(t, err)
	require.Len(t, first.Salaries, 1)

	// The second run confirms the record as existing data, not an error.
	second, err := f.service.Generate(context.Background(), req)
	require.NoError(t, err)
	assert.Empty(t, second.Salaries)
	assert.Equal(t, []string{"emp-1"}, second.Exists)
	assert.Len(t, f.salaries.records, 1)
}

func TestGenerateConcurrentSingleWinner(t *testing.T) {
	f := newFixture(rosterEmployee("emp-1", 101, employee.OTMethodNone))

	req := salary.GenerateRequest{CompanyID: "comp-1", Period: "2024-03"}

	const runs = 8
	var wg sync.WaitGroup
	created := make([]int, runs)
	for i := 0; i < runs; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			resp, err := f.service.Generate(context.Background(), req)
			if err == nil {
				created[i] = len(resp.Salaries)
			}
		}(i)
	}
	wg.Wait()

	total := 0
	for _, n := range created {
		total += n
	}
	assert.Equal(t, 1, total, "exactly one concurrent run may create the record")
	assert.Len(t, f.salaries.records, 1)
}

func TestGenerateCalcRequiresAttendance(t *testing.T) {
	f := newFixture(
		rosterEmployee("emp-1", 101, employee.OTMethodCalc),
		rosterEmployee("emp-2", 102, employee.OTMethodNone),
	)

	resp, err := f.service.Generate(context.Background(), salary.GenerateRequest{
		CompanyID: "comp-1",
		Period:    "2024-03",
	})
	require.NoError(t, err, "one employee failing must not abort the batch")

	require.Len(t, resp.Failed, 1)
	assert.Equal(t, "emp-1", resp.Failed[0].EmployeeID)
	require.Len(t, resp.Salaries, 1)
	assert.Equal(t, "emp-2", resp.Salaries[0].EmployeeID)
}

func TestGenerateCalcFromCSV(t *testing.T) {
	f := newFixture(rosterEmployee("emp-1", 101, employee.OTMethodCalc))

	csv := "employee,timestamp\n" +
		"emp-1,2024-03-04T08:00:00\n" +
		"emp-1,2024-03-04T19:00:00\n" // 11h gross, 10h net, 2h OT

	resp, err := f.service.Generate(context.Background(), salary.GenerateRequest{
		CompanyID: "comp-1",
		Period:    "2024-03",
		InOutCSV:  csv,
	})
	require.NoError(t, err)
	require.Len(t, resp.Salaries, 1)

	s := resp.Salaries[0]
	rate := decimal.NewFromInt(21000).Div(decimal.NewFromInt(240)) // 87.5
	assert.True(t, s.OT.Amount.Equal(rate.Mul(decimal.NewFromInt(2)).Round(2)), "got %s", s.OT.Amount)
	require.Len(t, s.InOut, 1)
	assert.True(t, s.InOut[0].OTHours.Equal(decimal.NewFromInt(2)))
}

func TestGenerateRandomDeterministicSeed(t *testing.T) {
	seed := int64(12345)

	run := func() salary.SalaryResponse {
		f := newFixture(rosterEmployee("emp-1", 101, employee.OTMethodRandom))
		resp, err := f.service.Generate(context.Background(), salary.GenerateRequest{
			CompanyID: "comp-1",
			Period:    "2024-03",
			Seed:      &seed,
		})
		require.NoError(t, err)
		require.Len(t, resp.Salaries, 1)
		return resp.Salaries[0]
	}

	first, second := run(), run()
	assert.True(t, first.FinalSalary.Equal(second.FinalSalary))
	assert.True(t, first.OT.Amount.Equal(second.OT.Amount))
	assert.True(t, first.NoPay.Amount.Equal(second.NoPay.Amount))
	assert.Equal(t, len(first.InOut), len(second.InOut))
}

func TestGenerateUpdatePreservesManualFields(t *testing.T) {
	f := newFixture(rosterEmployee("emp-1", 101, employee.OTMethodNone))
	ctx := context.Background()

	req := salary.GenerateRequest{CompanyID: "comp-1", Period: "2024-03"}
	first, err := f.service.Generate(ctx, req)
	require.NoError(t, err)
	id := first.Salaries[0].ID

	remark := "paid early"
	advance := decimal.NewFromInt(5000)
	_, err = f.service.Update(ctx, "comp-1", salary.UpdateRequest{
		ID:            id,
		Remark:        &remark,
		AdvanceAmount: &advance,
	})
	require.NoError(t, err)

	req.Update = true
	resp, err := f.service.Generate(ctx, req)
	require.NoError(t, err)
	require.Len(t, resp.Salaries, 1)

	s := resp.Salaries[0]
	assert.Equal(t, id, s.ID, "update reuses the existing record")
	assert.Equal(t, "paid early", s.Remark)
	assert.True(t, s.AdvanceAmount.Equal(advance))
	assert.Len(t, f.salaries.records, 1)
}

func TestGenerateScopedEmployeeIDs(t *testing.T) {
	f := newFixture(
		rosterEmployee("emp-1", 101, employee.OTMethodNone),
		rosterEmployee("emp-2", 102, employee.OTMethodNone),
	)

	resp, err := f.service.Generate(context.Background(), salary.GenerateRequest{
		CompanyID:   "comp-1",
		Period:      "2024-03",
		EmployeeIDs: []string{"emp-2"},
	})
	require.NoError(t, err)
	require.Len(t, resp.Salaries, 1)
	assert.Equal(t, "emp-2", resp.Salaries[0].EmployeeID)
}

func TestGenerateNoEmployees(t *testing.T) {
	f := newFixture()

	_, err := f.service.Generate(context.Background(), salary.GenerateRequest{
		CompanyID: "comp-1",
		Period:    "2024-03",
	})
	assert.ErrorIs(t, err, salary.ErrNoEmployees)
}

func TestUpdateRecomputesDerivedFields(t *testing.T) {
	f := newFixture(rosterEmployee("emp-1", 101, employee.OTMethodNone))
	ctx := context.Background()

	first, err := f.service.Generate(ctx, salary.GenerateRequest{CompanyID: "comp-1", Period: "2024-03"})
	require.NoError(t, err)
	id := first.Salaries[0].ID

	noPay := decimal.NewFromInt(1000)
	updated, err := f.service.Update(ctx, "comp-1", salary.UpdateRequest{ID: id, NoPayAmount: &noPay})
	require.NoError(t, err)

	assert.True(t, updated.FinalSalary.Equal(decimal.NewFromInt(20000)), "got %s", updated.FinalSalary)
	assert.True(t, updated.EPFAmount.Equal(decimal.NewFromInt(1600)), "got %s", updated.EPFAmount)
}

func TestDeleteThenRegenerate(t *testing.T) {
	f := newFixture(rosterEmployee("emp-1", 101, employee.OTMethodNone))
	ctx := context.Background()

	first, err := f.service.Generate(ctx, salary.GenerateRequest{CompanyID: "comp-1", Period: "2024-03"})
	require.NoError(t, err)

	require.NoError(t, f.service.Delete(ctx, first.Salaries[0].ID, "comp-1"))

	resp, err := f.service.Generate(ctx, salary.GenerateRequest{CompanyID: "comp-1", Period: "2024-03"})
	require.NoError(t, err)
	assert.Len(t, resp.Salaries, 1, "a deleted record regenerates cleanly")
}
