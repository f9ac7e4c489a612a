package salary

import (
	"math/rand"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anush47/salaryapp-backend-go/internal/domain/attendance"
	"github.com/anush47/salaryapp-backend-go/internal/domain/employee"
	"github.com/anush47/salaryapp-backend-go/internal/domain/period"
	"github.com/anush47/salaryapp-backend-go/internal/domain/salary"
)

func testEmployee() employee.Employee {
	return employee.Employee{
		ID:        "emp-1",
		CompanyID: "comp-1",
		MemberNo:  101,
		Name:      "Kamal Perera",
		Basic:     decimal.NewFromInt(21000),
		DivideBy:  240,
		OTMethod:  employee.OTMethodNone,
		Active:    true,
	}
}

func TestAggregateBasicOnly(t *testing.T) {
	// Full attendance, one plain EPF deduction: the final salary stays at
	// basic because the unflagged EPF entry never subtracts.
	emp := testEmployee()
	p, err := period.Parse("2024-03")
	require.NoError(t, err)

	var structure employee.PaymentStructure
	structure.SetEPF(decimal.Zero)

	got := Aggregate(emp, p, nil, structure)

	assert.True(t, got.FinalSalary.Equal(decimal.NewFromInt(21000)), "got %s", got.FinalSalary)
	assert.True(t, got.EarningsBase.Equal(decimal.NewFromInt(21000)))
	assert.True(t, got.EPFAmount().Equal(decimal.NewFromInt(1680)), "0.08 * 21000, got %s", got.EPFAmount())
}

func TestAggregateSumsPortions(t *testing.T) {
	emp := testEmployee()
	p, err := period.Parse("2024-03")
	require.NoError(t, err)

	rate := emp.HourlyRate() // 87.5
	events := []attendance.InOutEvent{
		{OT: decimal.NewFromInt(175), OTHours: decimal.NewFromInt(2)},
		{OT: decimal.NewFromFloat(87.5), OTHours: decimal.NewFromInt(1)},
		{NoPay: decimal.NewFromInt(175)},
		{WorkingHours: decimal.NewFromInt(4), Holiday: true},
	}

	got := Aggregate(emp, p, events, employee.PaymentStructure{})

	assert.True(t, got.OT.Amount.Equal(decimal.NewFromFloat(262.5)), "got %s", got.OT.Amount)
	assert.Equal(t, "3 overtime hours", got.OT.Reason)
	assert.True(t, got.NoPay.Amount.Equal(decimal.NewFromInt(175)))
	assert.True(t, got.HolidayPay.Equal(rate.Mul(decimal.NewFromInt(4))), "got %s", got.HolidayPay)

	// finalSalary = basic + holidayPay + ot - noPay
	want := decimal.NewFromInt(21000).
		Add(got.HolidayPay).
		Add(got.OT.Amount).
		Sub(got.NoPay.Amount)
	assert.True(t, got.FinalSalary.Equal(want.Round(2)), "got %s want %s", got.FinalSalary, want)
}

func TestRecomputeInvariants(t *testing.T) {
	// Randomized structures: the two derived fields must always satisfy
	// their formulas regardless of the component mix.
	rng := rand.New(rand.NewSource(99))
	p, err := period.Parse("2024-03")
	require.NoError(t, err)

	for i := 0; i < 200; i++ {
		emp := testEmployee()
		emp.Basic = decimal.NewFromInt(int64(10000 + rng.Intn(90000)))

		structure := employee.PaymentStructure{}
		for j := 0; j < rng.Intn(4); j++ {
			structure.Additions = append(structure.Additions, employee.Component{
				Name:                "add",
				Amount:              employee.NewAmount(decimal.NewFromInt(int64(rng.Intn(5000)))),
				AffectTotalEarnings: rng.Intn(2) == 0,
			})
		}
		for j := 0; j < rng.Intn(4); j++ {
			structure.Deductions = append(structure.Deductions, employee.Component{
				Name:                "ded",
				Amount:              employee.NewAmount(decimal.NewFromInt(int64(rng.Intn(3000)))),
				AffectTotalEarnings: rng.Intn(2) == 0,
			})
		}

		events := []attendance.InOutEvent{
			{OT: decimal.NewFromInt(int64(rng.Intn(5000)))},
			{NoPay: decimal.NewFromInt(int64(rng.Intn(3000)))},
		}

		s := Aggregate(emp, p, events, structure)

		wantBase := emp.Basic.
			Add(s.HolidayPay).
			Add(s.Structure.EarningsAffectingAdditions()).
			Sub(s.Structure.EarningsAffectingDeductions()).
			Sub(s.NoPay.Amount)
		if wantBase.IsNegative() {
			wantBase = decimal.Zero
		}
		require.True(t, s.EarningsBase.Equal(wantBase.Round(2)), "iteration %d: base %s want %s", i, s.EarningsBase, wantBase)
		require.True(t, s.EPFAmount().Equal(salary.EPFRate.Mul(s.EarningsBase).Round(2)), "iteration %d", i)

		wantFinal := emp.Basic.
			Add(s.HolidayPay).
			Add(s.OT.Amount).
			Add(s.Structure.AdditionsTotal()).
			Sub(s.Structure.PayableDeductionsTotal()).
			Sub(s.NoPay.Amount).
			Round(2)
		require.True(t, s.FinalSalary.Equal(wantFinal), "iteration %d: final %s want %s", i, s.FinalSalary, wantFinal)
	}
}

func TestRecomputeAfterUpdate(t *testing.T) {
	emp := testEmployee()
	p, err := period.Parse("2024-03")
	require.NoError(t, err)

	s := Aggregate(emp, p, nil, employee.PaymentStructure{})

	noPay := decimal.NewFromInt(1000)
	advance := decimal.NewFromInt(5000)
	remark := "adjusted after review"
	applyUpdate(&s, salary.UpdateRequest{
		NoPayAmount:   &noPay,
		AdvanceAmount: &advance,
		Remark:        &remark,
	})

	assert.True(t, s.FinalSalary.Equal(decimal.NewFromInt(20000)), "got %s", s.FinalSalary)
	assert.True(t, s.EarningsBase.Equal(decimal.NewFromInt(20000)))
	assert.True(t, s.EPFAmount().Equal(decimal.NewFromInt(1600)), "EPF follows the new base, got %s", s.EPFAmount())

	// The advance is tracked on the record but already paid out; it does
	// not reduce the computed final salary.
	assert.True(t, s.AdvanceAmount.Equal(advance))
	assert.Equal(t, remark, s.Remark)
}

func TestRangeAmountsExcludedFromTotals(t *testing.T) {
	emp := testEmployee()
	p, err := period.Parse("2024-03")
	require.NoError(t, err)

	structure := employee.PaymentStructure{
		Additions: []employee.Component{
			{Name: "Performance", Amount: employee.NewRangeAmount(decimal.NewFromInt(1000), decimal.NewFromInt(5000)), AffectTotalEarnings: true},
			{Name: "Fixed Allowance", Amount: employee.NewAmount(decimal.NewFromInt(2000))},
		},
	}

	s := Aggregate(emp, p, nil, structure)

	assert.True(t, s.FinalSalary.Equal(decimal.NewFromInt(23000)), "range addition never sums, got %s", s.FinalSalary)
	assert.True(t, s.EarningsBase.Equal(decimal.NewFromInt(21000)))
}
