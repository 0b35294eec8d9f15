package payrollrun

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/Starlord12336/payrol-ltracking-sub002/internal/domain/configuration"
	"github.com/Starlord12336/payrol-ltracking-sub002/internal/domain/employee"
	"github.com/Starlord12336/payrol-ltracking-sub002/internal/domain/payrollrun"
	"github.com/Starlord12336/payrol-ltracking-sub002/internal/domain/penalty"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func sp(v string) *string {
	return &v
}

type fakeRunRepository struct {
	runs    map[string]payrollrun.RunRecord
	details map[string][]payrollrun.Detail
}

func newFakeRunRepository() *fakeRunRepository {
	return &fakeRunRepository{
		runs:    make(map[string]payrollrun.RunRecord),
		details: make(map[string][]payrollrun.Detail),
	}
}

func (f *fakeRunRepository) CreateRunWithDetails(ctx context.Context, run payrollrun.RunRecord, details []payrollrun.Detail) (payrollrun.RunRecord, error) {
	run.CreatedAt = time.Now()
	f.runs[run.ID] = run
	f.details[run.ID] = details
	return run, nil
}

func (f *fakeRunRepository) GetRunByID(ctx context.Context, id string) (payrollrun.RunRecord, error) {
	run, ok := f.runs[id]
	if !ok {
		return payrollrun.RunRecord{}, payrollrun.ErrRunNotFound
	}
	return run, nil
}

func (f *fakeRunRepository) ListRuns(ctx context.Context, filter payrollrun.RunFilter) ([]payrollrun.RunRecord, error) {
	var result []payrollrun.RunRecord
	for _, run := range f.runs {
		if filter.PeriodMonth != nil && run.PeriodMonth != *filter.PeriodMonth {
			continue
		}
		if filter.PeriodYear != nil && run.PeriodYear != *filter.PeriodYear {
			continue
		}
		result = append(result, run)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (f *fakeRunRepository) ListDetails(ctx context.Context, runID string) ([]payrollrun.Detail, error) {
	return f.details[runID], nil
}

// fakeConfigStore answers the approved-configuration reads the generator
// performs.
type fakeConfigStore struct {
	items map[string]configuration.Item
}

func newFakeConfigStore() *fakeConfigStore {
	return &fakeConfigStore{items: make(map[string]configuration.Item)}
}

func (f *fakeConfigStore) put(id string, kind configuration.Kind, status configuration.Status, payload configuration.Payload) {
	f.items[id] = configuration.Item{ID: id, Kind: kind, Status: status, Payload: payload}
}

func (f *fakeConfigStore) Create(ctx context.Context, item configuration.Item) (configuration.Item, error) {
	return configuration.Item{}, nil
}

func (f *fakeConfigStore) GetByID(ctx context.Context, kind configuration.Kind, id string) (configuration.Item, error) {
	item, ok := f.items[id]
	if !ok || item.Kind != kind {
		return configuration.Item{}, configuration.ErrItemNotFound
	}
	return item, nil
}

func (f *fakeConfigStore) ListByKind(ctx context.Context, kind configuration.Kind) ([]configuration.Item, error) {
	var result []configuration.Item
	for _, item := range f.items {
		if item.Kind == kind {
			result = append(result, item)
		}
	}
	return result, nil
}

func (f *fakeConfigStore) ListApproved(ctx context.Context, kind configuration.Kind) ([]configuration.Item, error) {
	var result []configuration.Item
	for _, item := range f.items {
		if item.Kind == kind && item.Status == configuration.StatusApproved {
			result = append(result, item)
		}
	}
	return result, nil
}

func (f *fakeConfigStore) MarkSubmitted(ctx context.Context, kind configuration.Kind, id string) (configuration.Item, error) {
	return configuration.Item{}, configuration.ErrInvalidStateTransition
}

func (f *fakeConfigStore) Approve(ctx context.Context, kind configuration.Kind, id string, approverID string) (configuration.Item, error) {
	return configuration.Item{}, configuration.ErrInvalidStateTransition
}

func (f *fakeConfigStore) Reject(ctx context.Context, kind configuration.Kind, id string, reason string) (configuration.Item, error) {
	return configuration.Item{}, configuration.ErrInvalidStateTransition
}

func (f *fakeConfigStore) ResetToDraft(ctx context.Context, kind configuration.Kind, id string, payload configuration.Payload) (configuration.Item, error) {
	return configuration.Item{}, configuration.ErrInvalidStateTransition
}

func (f *fakeConfigStore) Delete(ctx context.Context, kind configuration.Kind, id string, expected configuration.Status) error {
	return configuration.ErrItemNotFound
}

func (f *fakeConfigStore) GetActiveCompanySettings(ctx context.Context) (configuration.Item, error) {
	return configuration.Item{}, configuration.ErrNoActiveSettings
}

type fakeEmployeeRepository struct {
	employees []employee.Employee
}

func (f *fakeEmployeeRepository) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	for _, e := range f.employees {
		if e.ID == id {
			return e, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (f *fakeEmployeeRepository) List(ctx context.Context) ([]employee.Employee, error) {
	return f.employees, nil
}

type fakePenaltyRepository struct {
	penalties map[string][]penalty.Penalty
}

func (f *fakePenaltyRepository) ListByEmployee(ctx context.Context, employeeID string) ([]penalty.Penalty, error) {
	return f.penalties[employeeID], nil
}

// fakeBenefitFinder returns configured amounts per employee.
type fakeBenefitFinder struct {
	signingBonuses      map[string]decimal.Decimal
	terminationBenefits map[string]decimal.Decimal
}

func (f *fakeBenefitFinder) FindApprovedSigningBonus(ctx context.Context, employeeID string) (decimal.Decimal, bool, error) {
	amount, ok := f.signingBonuses[employeeID]
	return amount, ok, nil
}

func (f *fakeBenefitFinder) FindApprovedTerminationBenefit(ctx context.Context, employeeID string) (decimal.Decimal, bool, error) {
	amount, ok := f.terminationBenefits[employeeID]
	return amount, ok, nil
}

type generatorFixture struct {
	runRepo   *fakeRunRepository
	configs   *fakeConfigStore
	employees *fakeEmployeeRepository
	penalties *fakePenaltyRepository
	benefits  *fakeBenefitFinder
	svc       GeneratorService
}

func newGeneratorFixture(employees ...employee.Employee) *generatorFixture {
	f := &generatorFixture{
		runRepo:   newFakeRunRepository(),
		configs:   newFakeConfigStore(),
		employees: &fakeEmployeeRepository{employees: employees},
		penalties: &fakePenaltyRepository{penalties: make(map[string][]penalty.Penalty)},
		benefits: &fakeBenefitFinder{
			signingBonuses:      make(map[string]decimal.Decimal),
			terminationBenefits: make(map[string]decimal.Decimal),
		},
	}
	f.svc = NewGeneratorService(f.runRepo, f.configs, f.employees, f.penalties, f.benefits)
	return f
}

func (f *generatorFixture) detailFor(t *testing.T, runID, employeeID string) payrollrun.Detail {
	t.Helper()
	for _, detail := range f.runRepo.details[runID] {
		if detail.EmployeeID == employeeID {
			return detail
		}
	}
	t.Fatalf("no detail row for employee %s", employeeID)
	return payrollrun.Detail{}
}

func TestGeneratorService_GenerateDraft(t *testing.T) {
	ctx := context.Background()
	f := newGeneratorFixture(
		employee.Employee{ID: "emp-1", EmploymentStatus: employee.EmploymentStatusActive, PayGradeID: sp("grade-a")},
	)
	f.configs.put("grade-a", configuration.KindPayGrade, configuration.StatusApproved, configuration.PayGrade{
		Name:          "Engineer",
		MonthlySalary: d("10000"),
	})
	f.configs.put("tax-1", configuration.KindTaxRule, configuration.StatusApproved, configuration.TaxRule{
		Name: "Income Tax", Rate: d("0.10"), SalaryFrom: d("0"), SalaryTo: d("5000"),
	})
	f.configs.put("tax-2", configuration.KindTaxRule, configuration.StatusApproved, configuration.TaxRule{
		Name: "Surcharge", Rate: d("0.05"), SalaryFrom: d("5000"), SalaryTo: d("99999"),
	})
	f.configs.put("ins-1", configuration.KindInsuranceBracket, configuration.StatusApproved, configuration.InsuranceBracket{
		Name: "Health", SalaryFrom: d("0"), SalaryTo: d("5000"), FixedAmount: d("200"),
	})
	f.penalties.penalties["emp-1"] = []penalty.Penalty{
		{ID: "pen-1", EmployeeID: "emp-1", Amount: d("50"), Reason: "late arrival"},
	}

	run, err := f.svc.GenerateDraft(ctx, payrollrun.GenerateDraftRequest{PeriodMonth: 3, PeriodYear: 2026}, "user-spec")
	require.NoError(t, err)

	assert.Equal(t, string(payrollrun.RunStatusDraft), run.Status)
	assert.Equal(t, 1, run.EmployeeCount)
	assert.Equal(t, 0, run.ExceptionCount)
	assert.Equal(t, "user-spec", run.InitiatedBy)

	// Every approved rule contributes regardless of salary range: 15% tax on
	// 10000 plus the 200 bracket contribution, then the 50 penalty.
	detail := f.detailFor(t, run.ID, "emp-1")
	assert.True(t, detail.TaxTotal.Equal(d("1500")), "tax: got %s", detail.TaxTotal)
	assert.True(t, detail.InsuranceTotal.Equal(d("200")))
	assert.True(t, detail.Net.Equal(d("8300")))
	assert.True(t, detail.Final.Equal(d("8250")))
	assert.False(t, detail.IsException)
	assert.Equal(t, payrollrun.EventRegular, detail.EventCategory)
	assert.True(t, run.TotalNetPay.Equal(d("8250")))
}

func TestGeneratorService_ExcludesSuspendedAndInactive(t *testing.T) {
	ctx := context.Background()
	f := newGeneratorFixture(
		employee.Employee{ID: "emp-active", EmploymentStatus: employee.EmploymentStatusActive},
		employee.Employee{ID: "emp-suspended", EmploymentStatus: employee.EmploymentStatusSuspended},
		employee.Employee{ID: "emp-inactive", EmploymentStatus: employee.EmploymentStatusInactive},
		employee.Employee{ID: "emp-probation", EmploymentStatus: employee.EmploymentStatusProbation},
		employee.Employee{ID: "emp-retired", EmploymentStatus: employee.EmploymentStatusRetired},
	)

	run, err := f.svc.GenerateDraft(ctx, payrollrun.GenerateDraftRequest{PeriodMonth: 3, PeriodYear: 2026}, "user-spec")
	require.NoError(t, err)

	assert.Equal(t, 3, run.EmployeeCount)

	var included []string
	for _, detail := range f.runRepo.details[run.ID] {
		included = append(included, detail.EmployeeID)
	}
	assert.ElementsMatch(t, []string{"emp-active", "emp-probation", "emp-retired"}, included)
}

func TestGeneratorService_NegativeFinalIsException(t *testing.T) {
	ctx := context.Background()
	f := newGeneratorFixture(
		employee.Employee{ID: "emp-1", EmploymentStatus: employee.EmploymentStatusActive, PayGradeID: sp("grade-a")},
	)
	f.configs.put("grade-a", configuration.KindPayGrade, configuration.StatusApproved, configuration.PayGrade{
		Name: "Junior", MonthlySalary: d("1000"),
	})
	f.configs.put("tax-1", configuration.KindTaxRule, configuration.StatusApproved, configuration.TaxRule{
		Name: "Income Tax", Rate: d("0.90"), SalaryFrom: d("0"), SalaryTo: d("99999"),
	})
	f.configs.put("ins-1", configuration.KindInsuranceBracket, configuration.StatusApproved, configuration.InsuranceBracket{
		Name: "Health", SalaryFrom: d("0"), SalaryTo: d("99999"), FixedAmount: d("200"),
	})

	run, err := f.svc.GenerateDraft(ctx, payrollrun.GenerateDraftRequest{PeriodMonth: 3, PeriodYear: 2026}, "user-spec")
	require.NoError(t, err)

	assert.Equal(t, 1, run.ExceptionCount)

	detail := f.detailFor(t, run.ID, "emp-1")
	assert.True(t, detail.Final.Equal(d("-100")))
	assert.True(t, detail.IsException)
	assert.True(t, run.TotalNetPay.Equal(d("-100")))
}

func TestGeneratorService_DraftConfigurationIsIgnored(t *testing.T) {
	ctx := context.Background()
	f := newGeneratorFixture(
		employee.Employee{ID: "emp-1", EmploymentStatus: employee.EmploymentStatusActive, PayGradeID: sp("grade-a")},
	)
	f.configs.put("grade-a", configuration.KindPayGrade, configuration.StatusApproved, configuration.PayGrade{
		Name: "Engineer", MonthlySalary: d("10000"),
	})
	// A draft tax rule and a rejected bracket must not affect the run.
	f.configs.put("tax-draft", configuration.KindTaxRule, configuration.StatusDraft, configuration.TaxRule{
		Name: "Pending Tax", Rate: d("0.50"), SalaryFrom: d("0"), SalaryTo: d("99999"),
	})
	f.configs.put("ins-rejected", configuration.KindInsuranceBracket, configuration.StatusRejected, configuration.InsuranceBracket{
		Name: "Old Bracket", SalaryFrom: d("0"), SalaryTo: d("99999"), FixedAmount: d("500"),
	})

	run, err := f.svc.GenerateDraft(ctx, payrollrun.GenerateDraftRequest{PeriodMonth: 3, PeriodYear: 2026}, "user-spec")
	require.NoError(t, err)

	detail := f.detailFor(t, run.ID, "emp-1")
	assert.True(t, detail.TaxTotal.IsZero())
	assert.True(t, detail.InsuranceTotal.IsZero())
	assert.True(t, detail.Final.Equal(d("10000")))
}

func TestGeneratorService_BenefitsPerEventCategory(t *testing.T) {
	ctx := context.Background()
	f := newGeneratorFixture(
		employee.Employee{ID: "emp-probation", EmploymentStatus: employee.EmploymentStatusProbation},
		employee.Employee{ID: "emp-active", EmploymentStatus: employee.EmploymentStatusActive},
		employee.Employee{ID: "emp-terminated", EmploymentStatus: employee.EmploymentStatusTerminated},
		employee.Employee{ID: "emp-retired", EmploymentStatus: employee.EmploymentStatusRetired},
	)
	f.benefits.signingBonuses["emp-probation"] = d("2000")
	// An approved bonus link on an active employee stays unused.
	f.benefits.signingBonuses["emp-active"] = d("2000")
	f.benefits.terminationBenefits["emp-terminated"] = d("9000")

	run, err := f.svc.GenerateDraft(ctx, payrollrun.GenerateDraftRequest{PeriodMonth: 3, PeriodYear: 2026}, "user-spec")
	require.NoError(t, err)

	probation := f.detailFor(t, run.ID, "emp-probation")
	assert.Equal(t, payrollrun.EventProbation, probation.EventCategory)
	require.NotNil(t, probation.SigningBonus)
	assert.True(t, probation.SigningBonus.Equal(d("2000")))

	active := f.detailFor(t, run.ID, "emp-active")
	assert.Equal(t, payrollrun.EventRegular, active.EventCategory)
	assert.Nil(t, active.SigningBonus)

	terminated := f.detailFor(t, run.ID, "emp-terminated")
	assert.Equal(t, payrollrun.EventTermination, terminated.EventCategory)
	require.NotNil(t, terminated.TerminationBenefit)
	assert.True(t, terminated.TerminationBenefit.Equal(d("9000")))

	// A retired employee without an approved link gets no amount, not zero.
	retired := f.detailFor(t, run.ID, "emp-retired")
	assert.Equal(t, payrollrun.EventRetirement, retired.EventCategory)
	assert.Nil(t, retired.TerminationBenefit)
}

func TestGeneratorService_UnapprovedPayGradeYieldsZeroGross(t *testing.T) {
	ctx := context.Background()
	f := newGeneratorFixture(
		employee.Employee{ID: "emp-1", EmploymentStatus: employee.EmploymentStatusActive, PayGradeID: sp("grade-draft")},
		employee.Employee{ID: "emp-2", EmploymentStatus: employee.EmploymentStatusActive},
	)
	f.configs.put("grade-draft", configuration.KindPayGrade, configuration.StatusDraft, configuration.PayGrade{
		Name: "Unreviewed", MonthlySalary: d("7000"),
	})

	run, err := f.svc.GenerateDraft(ctx, payrollrun.GenerateDraftRequest{PeriodMonth: 3, PeriodYear: 2026}, "user-spec")
	require.NoError(t, err)

	assert.True(t, f.detailFor(t, run.ID, "emp-1").Gross.IsZero())
	assert.True(t, f.detailFor(t, run.ID, "emp-2").Gross.IsZero())
}

func TestGeneratorService_GenerateDraft_InvalidPeriod(t *testing.T) {
	ctx := context.Background()
	f := newGeneratorFixture()

	_, err := f.svc.GenerateDraft(ctx, payrollrun.GenerateDraftRequest{PeriodMonth: 13, PeriodYear: 2026}, "user-spec")
	require.Error(t, err)

	_, err = f.svc.GenerateDraft(ctx, payrollrun.GenerateDraftRequest{PeriodMonth: 1, PeriodYear: 1999}, "user-spec")
	require.Error(t, err)
}

func TestGeneratorService_ListRunsFilter(t *testing.T) {
	ctx := context.Background()
	f := newGeneratorFixture(
		employee.Employee{ID: "emp-1", EmploymentStatus: employee.EmploymentStatusActive},
	)

	_, err := f.svc.GenerateDraft(ctx, payrollrun.GenerateDraftRequest{PeriodMonth: 2, PeriodYear: 2026}, "user-spec")
	require.NoError(t, err)
	_, err = f.svc.GenerateDraft(ctx, payrollrun.GenerateDraftRequest{PeriodMonth: 3, PeriodYear: 2026}, "user-spec")
	require.NoError(t, err)

	month := 3
	runs, err := f.svc.ListRuns(ctx, payrollrun.RunFilter{PeriodMonth: &month})
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, 3, runs[0].PeriodMonth)

	runs, err = f.svc.ListRuns(ctx, payrollrun.RunFilter{})
	require.NoError(t, err)
	assert.Len(t, runs, 2)
}

func TestGeneratorService_ListDetails_UnknownRun(t *testing.T) {
	ctx := context.Background()
	f := newGeneratorFixture()

	_, err := f.svc.ListDetails(ctx, "missing-run")
	assert.ErrorIs(t, err, payrollrun.ErrRunNotFound)
}
