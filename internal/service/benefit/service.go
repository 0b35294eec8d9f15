package benefit

import (
	"context"
	"errors"
	"fmt"

	"github.com/Starlord12336/payrol-ltracking-sub002/internal/domain/approval"
	"github.com/Starlord12336/payrol-ltracking-sub002/internal/domain/benefit"
	"github.com/Starlord12336/payrol-ltracking-sub002/internal/domain/configuration"
	"github.com/Starlord12336/payrol-ltracking-sub002/internal/domain/employee"
	"github.com/Starlord12336/payrol-ltracking-sub002/internal/domain/leave"
	"github.com/shopspring/decimal"
)

// Finder resolves approved per-employee benefit amounts for the draft
// generator.
type Finder interface {
	FindApprovedSigningBonus(ctx context.Context, employeeID string) (decimal.Decimal, bool, error)
	FindApprovedTerminationBenefit(ctx context.Context, employeeID string) (decimal.Decimal, bool, error)
}

// LinkerService manages per-employee benefit links. A link's approval is
// independent of its template's approval: approving the template grants
// nothing to any employee.
type LinkerService interface {
	Finder

	CreateLink(ctx context.Context, req benefit.CreateLinkRequest, actor approval.Actor) (benefit.LinkResponse, error)
	GetLink(ctx context.Context, id string) (benefit.LinkResponse, error)
	ListLinksByEmployee(ctx context.Context, employeeID string) ([]benefit.LinkResponse, error)
	ApproveLink(ctx context.Context, id string, actor approval.Actor, approverID string) (benefit.LinkResponse, error)
	RejectLink(ctx context.Context, id string, actor approval.Actor, reason string) (benefit.LinkResponse, error)
	MarkLinkPaid(ctx context.Context, id string, actor approval.Actor) (benefit.LinkResponse, error)
	DeleteLink(ctx context.Context, id string, actor approval.Actor) error
}

type LinkerServiceImpl struct {
	benefitRepo  benefit.Repository
	configRepo   configuration.Repository
	employeeRepo employee.Repository
	leaveService leave.Service
}

func NewLinkerService(
	benefitRepo benefit.Repository,
	configRepo configuration.Repository,
	employeeRepo employee.Repository,
	leaveService leave.Service,
) LinkerService {
	return &LinkerServiceImpl{
		benefitRepo:  benefitRepo,
		configRepo:   configRepo,
		employeeRepo: employeeRepo,
		leaveService: leaveService,
	}
}

func templateKind(linkType benefit.LinkType) configuration.Kind {
	if linkType == benefit.LinkTypeTerminationBenefit {
		return configuration.KindTerminationBenefit
	}
	return configuration.KindSigningBonus
}

func (s *LinkerServiceImpl) CreateLink(ctx context.Context, req benefit.CreateLinkRequest, actor approval.Actor) (benefit.LinkResponse, error) {
	if err := req.Validate(); err != nil {
		return benefit.LinkResponse{}, err
	}
	if !actor.Has(approval.CapabilityPayrollSpecialist) && !actor.Has(approval.CapabilityHRSpecialist) {
		return benefit.LinkResponse{}, approval.ErrPermissionDenied
	}

	linkType := benefit.LinkType(req.Type)

	if _, err := s.employeeRepo.GetByID(ctx, req.EmployeeID); err != nil {
		return benefit.LinkResponse{}, err
	}
	template, err := s.configRepo.GetByID(ctx, templateKind(linkType), req.TemplateID)
	if err != nil {
		return benefit.LinkResponse{}, err
	}

	link := benefit.Link{
		EmployeeID:           req.EmployeeID,
		TemplateID:           req.TemplateID,
		Type:                 linkType,
		TerminationRequestID: req.TerminationRequestID,
		Status:               benefit.StatusPending,
		GivenAmount:          req.GivenAmount,
	}

	if linkType == benefit.LinkTypeTerminationBenefit {
		if err := s.fillTerminationBreakdown(ctx, &link, template, req); err != nil {
			return benefit.LinkResponse{}, err
		}
	}

	created, err := s.benefitRepo.Create(ctx, link)
	if err != nil {
		return benefit.LinkResponse{}, err
	}

	return benefit.ToResponse(created), nil
}

// fillTerminationBreakdown resolves the three-part breakdown. Severance
// defaults to the template amount, gratuity to zero, and leave encashment is
// computed by the leave collaborator when not supplied. The parts must sum to
// the total.
func (s *LinkerServiceImpl) fillTerminationBreakdown(ctx context.Context, link *benefit.Link, template configuration.Item, req benefit.CreateLinkRequest) error {
	severance := decimal.Zero
	if req.SeverancePay != nil {
		severance = *req.SeverancePay
	} else if amount, ok := configuration.Amount(template.Payload); ok {
		severance = amount
	}

	gratuity := decimal.Zero
	if req.EndOfServiceGratuity != nil {
		gratuity = *req.EndOfServiceGratuity
	}

	var encashment decimal.Decimal
	if req.LeaveEncashment != nil {
		encashment = *req.LeaveEncashment
	} else {
		dailyRate := severance.Div(decimal.NewFromInt(int64(s.workingDays(ctx))))
		computed, err := s.leaveService.CalculateLeaveEncashment(ctx, link.EmployeeID, dailyRate)
		if err != nil {
			return fmt.Errorf("failed to compute leave encashment: %w", err)
		}
		encashment = computed
	}

	total := encashment.Add(severance).Add(gratuity)
	if link.GivenAmount != nil && !link.GivenAmount.Equal(total) {
		return benefit.ErrBreakdownMismatch
	}

	link.LeaveEncashment = &encashment
	link.SeverancePay = &severance
	link.EndOfServiceGratuity = &gratuity
	link.TotalAmount = &total
	return nil
}

// workingDays reads the active company settings; 30 when none is approved yet.
func (s *LinkerServiceImpl) workingDays(ctx context.Context) int {
	item, err := s.configRepo.GetActiveCompanySettings(ctx)
	if err != nil {
		return 30
	}
	settings, ok := item.Payload.(configuration.CompanySettings)
	if !ok || settings.WorkingDays <= 0 {
		return 30
	}
	return settings.WorkingDays
}

func (s *LinkerServiceImpl) GetLink(ctx context.Context, id string) (benefit.LinkResponse, error) {
	link, err := s.benefitRepo.GetByID(ctx, id)
	if err != nil {
		return benefit.LinkResponse{}, err
	}

	return benefit.ToResponse(link), nil
}

func (s *LinkerServiceImpl) ListLinksByEmployee(ctx context.Context, employeeID string) ([]benefit.LinkResponse, error) {
	links, err := s.benefitRepo.ListByEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	return benefit.ToResponses(links), nil
}

func (s *LinkerServiceImpl) ApproveLink(ctx context.Context, id string, actor approval.Actor, approverID string) (benefit.LinkResponse, error) {
	if !actor.Has(approval.CapabilityPayrollManager) && !actor.Has(approval.CapabilityHRManager) {
		return benefit.LinkResponse{}, approval.ErrPermissionDenied
	}
	if approverID == "" {
		approverID = actor.ID
	}

	link, err := s.benefitRepo.Approve(ctx, id, approverID)
	if err != nil {
		return benefit.LinkResponse{}, err
	}

	return benefit.ToResponse(link), nil
}

func (s *LinkerServiceImpl) RejectLink(ctx context.Context, id string, actor approval.Actor, reason string) (benefit.LinkResponse, error) {
	if !actor.Has(approval.CapabilityPayrollManager) && !actor.Has(approval.CapabilityHRManager) {
		return benefit.LinkResponse{}, approval.ErrPermissionDenied
	}

	req := benefit.RejectLinkRequest{Reason: reason}
	if err := req.Validate(); err != nil {
		return benefit.LinkResponse{}, err
	}

	link, err := s.benefitRepo.Reject(ctx, id, reason)
	if err != nil {
		return benefit.LinkResponse{}, err
	}

	return benefit.ToResponse(link), nil
}

func (s *LinkerServiceImpl) MarkLinkPaid(ctx context.Context, id string, actor approval.Actor) (benefit.LinkResponse, error) {
	if !actor.Has(approval.CapabilityPayrollManager) {
		return benefit.LinkResponse{}, approval.ErrPermissionDenied
	}

	link, err := s.benefitRepo.MarkPaid(ctx, id)
	if err != nil {
		return benefit.LinkResponse{}, err
	}

	return benefit.ToResponse(link), nil
}

func (s *LinkerServiceImpl) DeleteLink(ctx context.Context, id string, actor approval.Actor) error {
	if !actor.Has(approval.CapabilityPayrollSpecialist) && !actor.Has(approval.CapabilityHRSpecialist) {
		return approval.ErrPermissionDenied
	}

	return s.benefitRepo.Delete(ctx, id, benefit.StatusPending)
}

// FindApprovedSigningBonus resolves the employee's approved signing-bonus
// amount: the link's given amount when overridden, otherwise the linked
// template's current amount, never a frozen snapshot.
func (s *LinkerServiceImpl) FindApprovedSigningBonus(ctx context.Context, employeeID string) (decimal.Decimal, bool, error) {
	return s.findApproved(ctx, employeeID, benefit.LinkTypeSigningBonus)
}

// FindApprovedTerminationBenefit resolves the employee's approved
// termination/resignation benefit amount under the same override rules.
func (s *LinkerServiceImpl) FindApprovedTerminationBenefit(ctx context.Context, employeeID string) (decimal.Decimal, bool, error) {
	return s.findApproved(ctx, employeeID, benefit.LinkTypeTerminationBenefit)
}

func (s *LinkerServiceImpl) findApproved(ctx context.Context, employeeID string, linkType benefit.LinkType) (decimal.Decimal, bool, error) {
	link, err := s.benefitRepo.GetByEmployeeAndType(ctx, employeeID, linkType, benefit.StatusApproved)
	if err != nil {
		if errors.Is(err, benefit.ErrLinkNotFound) {
			return decimal.Zero, false, nil
		}
		return decimal.Zero, false, err
	}

	if link.GivenAmount != nil {
		return *link.GivenAmount, true, nil
	}

	template, err := s.configRepo.GetByID(ctx, templateKind(linkType), link.TemplateID)
	if err != nil {
		return decimal.Zero, false, fmt.Errorf("failed to resolve benefit template %s: %w", link.TemplateID, err)
	}

	if amount, ok := configuration.Amount(template.Payload); ok {
		return amount, true, nil
	}
	if link.TotalAmount != nil {
		return *link.TotalAmount, true, nil
	}
	return decimal.Zero, false, nil
}
