package approval

import (
	"context"
	"fmt"

	"github.com/Starlord12336/payrol-ltracking-sub002/internal/domain/approval"
	"github.com/Starlord12336/payrol-ltracking-sub002/internal/domain/configuration"
)

// WorkflowService runs the shared approval lifecycle over every configuration
// kind. All nine kinds share one state machine; the per-kind descriptor
// supplies the capabilities and delete rules.
type WorkflowService interface {
	CreateItem(ctx context.Context, req configuration.CreateItemRequest, actor approval.Actor) (configuration.ItemResponse, error)
	GetItem(ctx context.Context, kind configuration.Kind, id string) (configuration.ItemResponse, error)
	ListItems(ctx context.Context, kind configuration.Kind) ([]configuration.ItemResponse, error)

	Submit(ctx context.Context, kind configuration.Kind, id string, actor approval.Actor) (configuration.ItemResponse, error)
	Approve(ctx context.Context, kind configuration.Kind, id string, actor approval.Actor, approverID string) (configuration.ItemResponse, error)
	Reject(ctx context.Context, kind configuration.Kind, id string, actor approval.Actor, reason string) (configuration.ItemResponse, error)
	EditAfterRejection(ctx context.Context, req configuration.EditItemRequest, actor approval.Actor) (configuration.ItemResponse, error)
	Delete(ctx context.Context, kind configuration.Kind, id string, actor approval.Actor) error
	DeleteApproved(ctx context.Context, kind configuration.Kind, id string, actor approval.Actor, approverID string) error

	GetActiveCompanySettings(ctx context.Context) (configuration.ItemResponse, error)
}

type WorkflowServiceImpl struct {
	configRepo configuration.Repository
}

func NewWorkflowService(configRepo configuration.Repository) WorkflowService {
	return &WorkflowServiceImpl{configRepo: configRepo}
}

func descriptorFor(kind configuration.Kind) (approval.Descriptor, error) {
	d, ok := approval.DescriptorFor(kind)
	if !ok {
		return approval.Descriptor{}, configuration.ErrInvalidKind
	}
	return d, nil
}

func (s *WorkflowServiceImpl) CreateItem(ctx context.Context, req configuration.CreateItemRequest, actor approval.Actor) (configuration.ItemResponse, error) {
	if err := req.Validate(); err != nil {
		return configuration.ItemResponse{}, err
	}

	desc, err := descriptorFor(req.Kind)
	if err != nil {
		return configuration.ItemResponse{}, err
	}
	if !actor.Has(desc.Specialist) {
		return configuration.ItemResponse{}, approval.ErrPermissionDenied
	}

	payload, err := configuration.UnmarshalPayload(req.Kind, req.Payload)
	if err != nil {
		return configuration.ItemResponse{}, err
	}
	if err := payload.Validate(); err != nil {
		return configuration.ItemResponse{}, err
	}

	created, err := s.configRepo.Create(ctx, configuration.Item{
		Kind:      req.Kind,
		Payload:   payload,
		Status:    configuration.StatusDraft,
		CreatedBy: actor.ID,
	})
	if err != nil {
		return configuration.ItemResponse{}, err
	}

	return configuration.ToResponse(created), nil
}

func (s *WorkflowServiceImpl) GetItem(ctx context.Context, kind configuration.Kind, id string) (configuration.ItemResponse, error) {
	item, err := s.configRepo.GetByID(ctx, kind, id)
	if err != nil {
		return configuration.ItemResponse{}, err
	}

	return configuration.ToResponse(item), nil
}

func (s *WorkflowServiceImpl) ListItems(ctx context.Context, kind configuration.Kind) ([]configuration.ItemResponse, error) {
	if _, err := descriptorFor(kind); err != nil {
		return nil, err
	}

	items, err := s.configRepo.ListByKind(ctx, kind)
	if err != nil {
		return nil, err
	}

	return configuration.ToResponses(items), nil
}

// Submit marks a draft item as awaiting review. Fails if the item is not a
// draft or was already submitted.
func (s *WorkflowServiceImpl) Submit(ctx context.Context, kind configuration.Kind, id string, actor approval.Actor) (configuration.ItemResponse, error) {
	desc, err := descriptorFor(kind)
	if err != nil {
		return configuration.ItemResponse{}, err
	}
	if !actor.Has(desc.Specialist) {
		return configuration.ItemResponse{}, approval.ErrPermissionDenied
	}

	item, err := s.configRepo.MarkSubmitted(ctx, kind, id)
	if err != nil {
		return configuration.ItemResponse{}, err
	}

	return configuration.ToResponse(item), nil
}

// Approve transitions a submitted item to approved. Repeating it on an
// already-approved item fails with ErrInvalidStateTransition; the transition
// is never silently re-applied.
func (s *WorkflowServiceImpl) Approve(ctx context.Context, kind configuration.Kind, id string, actor approval.Actor, approverID string) (configuration.ItemResponse, error) {
	desc, err := descriptorFor(kind)
	if err != nil {
		return configuration.ItemResponse{}, err
	}
	if !actor.Has(desc.Approver) {
		return configuration.ItemResponse{}, approval.ErrPermissionDenied
	}
	if approverID == "" {
		approverID = actor.ID
	}

	item, err := s.configRepo.Approve(ctx, kind, id, approverID)
	if err != nil {
		return configuration.ItemResponse{}, err
	}

	// Approving company settings supersedes the previously active instance by
	// construction: the active settings is the most recently approved one, so
	// no other record is touched.
	return configuration.ToResponse(item), nil
}

func (s *WorkflowServiceImpl) Reject(ctx context.Context, kind configuration.Kind, id string, actor approval.Actor, reason string) (configuration.ItemResponse, error) {
	desc, err := descriptorFor(kind)
	if err != nil {
		return configuration.ItemResponse{}, err
	}
	if !actor.Has(desc.Approver) {
		return configuration.ItemResponse{}, approval.ErrPermissionDenied
	}

	req := configuration.RejectItemRequest{Reason: reason}
	if err := req.Validate(); err != nil {
		return configuration.ItemResponse{}, err
	}

	item, err := s.configRepo.Reject(ctx, kind, id, reason)
	if err != nil {
		return configuration.ItemResponse{}, err
	}

	return configuration.ToResponse(item), nil
}

// EditAfterRejection replaces the payload of a rejected item and returns it
// to draft, clearing rejection metadata so it can be resubmitted.
func (s *WorkflowServiceImpl) EditAfterRejection(ctx context.Context, req configuration.EditItemRequest, actor approval.Actor) (configuration.ItemResponse, error) {
	if err := req.Validate(); err != nil {
		return configuration.ItemResponse{}, err
	}

	desc, err := descriptorFor(req.Kind)
	if err != nil {
		return configuration.ItemResponse{}, err
	}
	if !actor.Has(desc.Specialist) {
		return configuration.ItemResponse{}, approval.ErrPermissionDenied
	}

	payload, err := configuration.UnmarshalPayload(req.Kind, req.Payload)
	if err != nil {
		return configuration.ItemResponse{}, err
	}
	if err := payload.Validate(); err != nil {
		return configuration.ItemResponse{}, err
	}

	item, err := s.configRepo.ResetToDraft(ctx, req.Kind, req.ID, payload)
	if err != nil {
		return configuration.ItemResponse{}, err
	}

	return configuration.ToResponse(item), nil
}

// Delete removes a draft item.
func (s *WorkflowServiceImpl) Delete(ctx context.Context, kind configuration.Kind, id string, actor approval.Actor) error {
	desc, err := descriptorFor(kind)
	if err != nil {
		return err
	}
	if !actor.Has(desc.Specialist) {
		return approval.ErrPermissionDenied
	}

	return s.configRepo.Delete(ctx, kind, id, configuration.StatusDraft)
}

// DeleteApproved removes an approved item; only kinds that allow privileged
// deletion permit it, and the approver's identity must be supplied.
func (s *WorkflowServiceImpl) DeleteApproved(ctx context.Context, kind configuration.Kind, id string, actor approval.Actor, approverID string) error {
	desc, err := descriptorFor(kind)
	if err != nil {
		return err
	}
	if !desc.PrivilegedDelete {
		return approval.ErrDeleteNotAllowed
	}
	if !actor.Has(desc.Approver) {
		return approval.ErrPermissionDenied
	}
	if approverID == "" {
		return fmt.Errorf("approver identity is required for privileged delete: %w", approval.ErrPermissionDenied)
	}

	return s.configRepo.Delete(ctx, kind, id, configuration.StatusApproved)
}

func (s *WorkflowServiceImpl) GetActiveCompanySettings(ctx context.Context) (configuration.ItemResponse, error) {
	item, err := s.configRepo.GetActiveCompanySettings(ctx)
	if err != nil {
		return configuration.ItemResponse{}, err
	}

	return configuration.ToResponse(item), nil
}
