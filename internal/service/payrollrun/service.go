package payrollrun

import (
	"context"
	"errors"
	"fmt"

	"github.com/Starlord12336/payrol-ltracking-sub002/internal/domain/configuration"
	"github.com/Starlord12336/payrol-ltracking-sub002/internal/domain/employee"
	"github.com/Starlord12336/payrol-ltracking-sub002/internal/domain/payrollrun"
	"github.com/Starlord12336/payrol-ltracking-sub002/internal/domain/penalty"
	benefitService "github.com/Starlord12336/payrol-ltracking-sub002/internal/service/benefit"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type GeneratorService interface {
	// GenerateDraft produces one run record plus one detail row per eligible
	// employee, reading only approved configuration.
	GenerateDraft(ctx context.Context, req payrollrun.GenerateDraftRequest, initiatorID string) (payrollrun.RunResponse, error)

	GetRun(ctx context.Context, id string) (payrollrun.RunResponse, error)
	ListRuns(ctx context.Context, filter payrollrun.RunFilter) ([]payrollrun.RunResponse, error)
	ListDetails(ctx context.Context, runID string) ([]payrollrun.DetailResponse, error)
}

type GeneratorServiceImpl struct {
	runRepo      payrollrun.Repository
	configRepo   configuration.Repository
	employeeRepo employee.Repository
	penaltyRepo  penalty.Repository
	benefits     benefitService.Finder
}

func NewGeneratorService(
	runRepo payrollrun.Repository,
	configRepo configuration.Repository,
	employeeRepo employee.Repository,
	penaltyRepo penalty.Repository,
	benefits benefitService.Finder,
) GeneratorService {
	return &GeneratorServiceImpl{
		runRepo:      runRepo,
		configRepo:   configRepo,
		employeeRepo: employeeRepo,
		penaltyRepo:  penaltyRepo,
		benefits:     benefits,
	}
}

// rates holds the run-wide aggregates read once per generation: the summed
// rate of every approved tax rule and the summed fixed amount of every
// approved insurance bracket. No bracket matching is performed.
type rates struct {
	taxRate        decimal.Decimal
	insuranceTotal decimal.Decimal
}

func (s *GeneratorServiceImpl) loadRates(ctx context.Context) (rates, error) {
	var r rates

	taxRules, err := s.configRepo.ListApproved(ctx, configuration.KindTaxRule)
	if err != nil {
		return rates{}, fmt.Errorf("failed to list approved tax rules: %w", err)
	}
	for _, item := range taxRules {
		rule, ok := item.Payload.(configuration.TaxRule)
		if !ok {
			return rates{}, fmt.Errorf("tax rule %s has malformed payload", item.ID)
		}
		r.taxRate = r.taxRate.Add(rule.Rate)
	}

	brackets, err := s.configRepo.ListApproved(ctx, configuration.KindInsuranceBracket)
	if err != nil {
		return rates{}, fmt.Errorf("failed to list approved insurance brackets: %w", err)
	}
	for _, item := range brackets {
		bracket, ok := item.Payload.(configuration.InsuranceBracket)
		if !ok {
			return rates{}, fmt.Errorf("insurance bracket %s has malformed payload", item.ID)
		}
		r.insuranceTotal = r.insuranceTotal.Add(bracket.FixedAmount)
	}

	return r, nil
}

func (s *GeneratorServiceImpl) GenerateDraft(ctx context.Context, req payrollrun.GenerateDraftRequest, initiatorID string) (payrollrun.RunResponse, error) {
	if err := req.Validate(); err != nil {
		return payrollrun.RunResponse{}, err
	}

	runID := req.RunID
	if runID == "" {
		runID = uuid.New().String()
	}

	employees, err := s.employeeRepo.List(ctx)
	if err != nil {
		return payrollrun.RunResponse{}, fmt.Errorf("failed to list employees: %w", err)
	}

	runRates, err := s.loadRates(ctx)
	if err != nil {
		return payrollrun.RunResponse{}, err
	}

	// All detail rows are built in memory first; a failure on any employee
	// aborts the generation with nothing persisted.
	var (
		details        []payrollrun.Detail
		exceptionCount int
		totalNetPay    decimal.Decimal
	)

	for _, emp := range employees {
		if !emp.EligibleForPayroll() {
			continue
		}

		detail, err := s.buildDetail(ctx, runID, emp, runRates)
		if err != nil {
			return payrollrun.RunResponse{}, fmt.Errorf("failed to resolve employee %s: %w", emp.ID, err)
		}

		if detail.IsException {
			exceptionCount++
		}
		totalNetPay = totalNetPay.Add(detail.Final)
		details = append(details, detail)
	}

	run := payrollrun.RunRecord{
		ID:             runID,
		PeriodMonth:    req.PeriodMonth,
		PeriodYear:     req.PeriodYear,
		Status:         payrollrun.RunStatusDraft,
		EmployeeCount:  len(details),
		ExceptionCount: exceptionCount,
		TotalNetPay:    totalNetPay,
		InitiatedBy:    initiatorID,
	}

	created, err := s.runRepo.CreateRunWithDetails(ctx, run, details)
	if err != nil {
		return payrollrun.RunResponse{}, err
	}

	return payrollrun.ToRunResponse(created), nil
}

func (s *GeneratorServiceImpl) buildDetail(ctx context.Context, runID string, emp employee.Employee, runRates rates) (payrollrun.Detail, error) {
	gross, err := s.resolveGross(ctx, emp)
	if err != nil {
		return payrollrun.Detail{}, err
	}

	penalties, err := s.penaltyRepo.ListByEmployee(ctx, emp.ID)
	if err != nil {
		return payrollrun.Detail{}, fmt.Errorf("failed to list penalties: %w", err)
	}
	penaltiesTotal := decimal.Zero
	for _, p := range penalties {
		penaltiesTotal = penaltiesTotal.Add(p.Amount)
	}

	taxTotal := gross.Mul(runRates.taxRate)

	result := payrollrun.Calculate(payrollrun.CalcInput{
		Gross:          gross,
		TaxTotal:       taxTotal,
		InsuranceTotal: runRates.insuranceTotal,
		PenaltiesTotal: penaltiesTotal,
	})

	detail := payrollrun.Detail{
		ID:             uuid.New().String(),
		RunID:          runID,
		EmployeeID:     emp.ID,
		Gross:          gross,
		TaxTotal:       taxTotal,
		InsuranceTotal: runRates.insuranceTotal,
		PenaltiesTotal: penaltiesTotal,
		Net:            result.Net,
		Final:          result.Final,
		IsException:    result.IsException,
		EventCategory:  payrollrun.EventRegular,
	}

	// Signing bonus applies only during probation; termination and resignation
	// benefits only after retirement or termination. In every other case the
	// fields stay absent, not zero.
	switch emp.EmploymentStatus {
	case employee.EmploymentStatusProbation:
		detail.EventCategory = payrollrun.EventProbation
		amount, found, err := s.benefits.FindApprovedSigningBonus(ctx, emp.ID)
		if err != nil {
			return payrollrun.Detail{}, err
		}
		if found {
			detail.SigningBonus = &amount
		}
	case employee.EmploymentStatusRetired, employee.EmploymentStatusTerminated:
		if emp.EmploymentStatus == employee.EmploymentStatusRetired {
			detail.EventCategory = payrollrun.EventRetirement
		} else {
			detail.EventCategory = payrollrun.EventTermination
		}
		amount, found, err := s.benefits.FindApprovedTerminationBenefit(ctx, emp.ID)
		if err != nil {
			return payrollrun.Detail{}, err
		}
		if found {
			detail.TerminationBenefit = &amount
		}
	}

	detail.Breakdown = payrollrun.Breakdown{
		Gross:              detail.Gross,
		TaxTotal:           detail.TaxTotal,
		InsuranceTotal:     detail.InsuranceTotal,
		PenaltiesTotal:     detail.PenaltiesTotal,
		Net:                detail.Net,
		Final:              detail.Final,
		SigningBonus:       detail.SigningBonus,
		TerminationBenefit: detail.TerminationBenefit,
	}

	return detail, nil
}

// resolveGross reads the employee's approved pay grade; gross is zero when no
// grade is assigned or the grade cannot be resolved.
func (s *GeneratorServiceImpl) resolveGross(ctx context.Context, emp employee.Employee) (decimal.Decimal, error) {
	if emp.PayGradeID == nil || *emp.PayGradeID == "" {
		return decimal.Zero, nil
	}

	item, err := s.configRepo.GetByID(ctx, configuration.KindPayGrade, *emp.PayGradeID)
	if err != nil {
		if errors.Is(err, configuration.ErrItemNotFound) {
			return decimal.Zero, nil
		}
		return decimal.Zero, fmt.Errorf("failed to resolve pay grade %s: %w", *emp.PayGradeID, err)
	}
	if item.Status != configuration.StatusApproved {
		return decimal.Zero, nil
	}

	grade, ok := item.Payload.(configuration.PayGrade)
	if !ok {
		return decimal.Zero, fmt.Errorf("pay grade %s has malformed payload", item.ID)
	}
	return grade.MonthlySalary, nil
}

func (s *GeneratorServiceImpl) GetRun(ctx context.Context, id string) (payrollrun.RunResponse, error) {
	run, err := s.runRepo.GetRunByID(ctx, id)
	if err != nil {
		return payrollrun.RunResponse{}, err
	}

	return payrollrun.ToRunResponse(run), nil
}

func (s *GeneratorServiceImpl) ListRuns(ctx context.Context, filter payrollrun.RunFilter) ([]payrollrun.RunResponse, error) {
	runs, err := s.runRepo.ListRuns(ctx, filter)
	if err != nil {
		return nil, err
	}

	return payrollrun.ToRunResponses(runs), nil
}

func (s *GeneratorServiceImpl) ListDetails(ctx context.Context, runID string) ([]payrollrun.DetailResponse, error) {
	if _, err := s.runRepo.GetRunByID(ctx, runID); err != nil {
		return nil, err
	}

	details, err := s.runRepo.ListDetails(ctx, runID)
	if err != nil {
		return nil, err
	}

	return payrollrun.ToDetailResponses(details), nil
}
