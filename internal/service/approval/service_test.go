package approval

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"testing"
	"time"

	"github.com/Starlord12336/payrol-ltracking-sub002/internal/domain/approval"
	"github.com/Starlord12336/payrol-ltracking-sub002/internal/domain/configuration"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeConfigurationRepository mirrors the conditional-update semantics of the
// PostgreSQL repository: transitions check the stored state and fail with
// ErrInvalidStateTransition when it no longer matches.
type fakeConfigurationRepository struct {
	items  map[string]configuration.Item
	nextID int
	now    time.Time
}

func newFakeConfigurationRepository() *fakeConfigurationRepository {
	return &fakeConfigurationRepository{
		items: make(map[string]configuration.Item),
		now:   time.Date(2026, 1, 15, 9, 0, 0, 0, time.UTC),
	}
}

func (f *fakeConfigurationRepository) tick() time.Time {
	f.now = f.now.Add(time.Minute)
	return f.now
}

func (f *fakeConfigurationRepository) Create(ctx context.Context, item configuration.Item) (configuration.Item, error) {
	f.nextID++
	item.ID = fmt.Sprintf("item-%d", f.nextID)
	item.CreatedAt = f.tick()
	item.UpdatedAt = item.CreatedAt
	f.items[item.ID] = item
	return item, nil
}

func (f *fakeConfigurationRepository) GetByID(ctx context.Context, kind configuration.Kind, id string) (configuration.Item, error) {
	item, ok := f.items[id]
	if !ok || item.Kind != kind {
		return configuration.Item{}, configuration.ErrItemNotFound
	}
	return item, nil
}

func (f *fakeConfigurationRepository) ListByKind(ctx context.Context, kind configuration.Kind) ([]configuration.Item, error) {
	var result []configuration.Item
	for _, item := range f.items {
		if item.Kind == kind {
			result = append(result, item)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (f *fakeConfigurationRepository) ListApproved(ctx context.Context, kind configuration.Kind) ([]configuration.Item, error) {
	var result []configuration.Item
	for _, item := range f.items {
		if item.Kind == kind && item.Status == configuration.StatusApproved {
			result = append(result, item)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (f *fakeConfigurationRepository) MarkSubmitted(ctx context.Context, kind configuration.Kind, id string) (configuration.Item, error) {
	item, ok := f.items[id]
	if !ok || item.Kind != kind {
		return configuration.Item{}, configuration.ErrItemNotFound
	}
	if item.Status != configuration.StatusDraft || item.SubmittedAt != nil {
		return configuration.Item{}, configuration.ErrInvalidStateTransition
	}
	now := f.tick()
	item.SubmittedAt = &now
	item.UpdatedAt = now
	f.items[id] = item
	return item, nil
}

func (f *fakeConfigurationRepository) Approve(ctx context.Context, kind configuration.Kind, id string, approverID string) (configuration.Item, error) {
	item, ok := f.items[id]
	if !ok || item.Kind != kind {
		return configuration.Item{}, configuration.ErrItemNotFound
	}
	if item.Status != configuration.StatusDraft || item.SubmittedAt == nil {
		return configuration.Item{}, configuration.ErrInvalidStateTransition
	}
	now := f.tick()
	item.Status = configuration.StatusApproved
	item.ApprovedBy = &approverID
	item.ApprovedAt = &now
	item.UpdatedAt = now
	f.items[id] = item
	return item, nil
}

func (f *fakeConfigurationRepository) Reject(ctx context.Context, kind configuration.Kind, id string, reason string) (configuration.Item, error) {
	item, ok := f.items[id]
	if !ok || item.Kind != kind {
		return configuration.Item{}, configuration.ErrItemNotFound
	}
	if item.Status != configuration.StatusDraft || item.SubmittedAt == nil {
		return configuration.Item{}, configuration.ErrInvalidStateTransition
	}
	item.Status = configuration.StatusRejected
	item.RejectionReason = &reason
	item.UpdatedAt = f.tick()
	f.items[id] = item
	return item, nil
}

func (f *fakeConfigurationRepository) ResetToDraft(ctx context.Context, kind configuration.Kind, id string, payload configuration.Payload) (configuration.Item, error) {
	item, ok := f.items[id]
	if !ok || item.Kind != kind {
		return configuration.Item{}, configuration.ErrItemNotFound
	}
	if item.Status != configuration.StatusRejected {
		return configuration.Item{}, configuration.ErrInvalidStateTransition
	}
	item.Status = configuration.StatusDraft
	item.Payload = payload
	item.SubmittedAt = nil
	item.RejectionReason = nil
	item.UpdatedAt = f.tick()
	f.items[id] = item
	return item, nil
}

func (f *fakeConfigurationRepository) Delete(ctx context.Context, kind configuration.Kind, id string, expected configuration.Status) error {
	item, ok := f.items[id]
	if !ok || item.Kind != kind {
		return configuration.ErrItemNotFound
	}
	if item.Status != expected {
		return configuration.ErrInvalidStateTransition
	}
	delete(f.items, id)
	return nil
}

func (f *fakeConfigurationRepository) GetActiveCompanySettings(ctx context.Context) (configuration.Item, error) {
	var active *configuration.Item
	for _, item := range f.items {
		if item.Kind != configuration.KindCompanySettings || item.Status != configuration.StatusApproved {
			continue
		}
		item := item
		if active == nil || item.ApprovedAt.After(*active.ApprovedAt) {
			active = &item
		}
	}
	if active == nil {
		return configuration.Item{}, configuration.ErrNoActiveSettings
	}
	return *active, nil
}

var (
	specialistActor = approval.ActorForRole("user-spec", "payroll_specialist")
	managerActor    = approval.ActorForRole("user-mgr", "payroll_manager")
	hrManagerActor  = approval.ActorForRole("user-hr-mgr", "hr_manager")
	adminActor      = approval.ActorForRole("user-admin", "system_admin")
)

func payGradePayload(t *testing.T, name, salary string) json.RawMessage {
	t.Helper()
	raw, err := json.Marshal(map[string]interface{}{
		"name":           name,
		"monthly_salary": salary,
	})
	require.NoError(t, err)
	return raw
}

func companySettingsPayload(t *testing.T, companyName string) json.RawMessage {
	t.Helper()
	raw, err := json.Marshal(map[string]interface{}{
		"company_name": companyName,
		"currency":     "USD",
		"pay_day":      25,
		"working_days": 22,
		"timezone":     "UTC",
		"fiscal_month": 1,
	})
	require.NoError(t, err)
	return raw
}

func createDraft(t *testing.T, svc WorkflowService, kind configuration.Kind, payload json.RawMessage, actor approval.Actor) configuration.ItemResponse {
	t.Helper()
	item, err := svc.CreateItem(context.Background(), configuration.CreateItemRequest{
		Kind:    kind,
		Payload: payload,
	}, actor)
	require.NoError(t, err)
	return item
}

func TestWorkflowService_CreateItem(t *testing.T) {
	ctx := context.Background()
	svc := NewWorkflowService(newFakeConfigurationRepository())

	item, err := svc.CreateItem(ctx, configuration.CreateItemRequest{
		Kind:    configuration.KindPayGrade,
		Payload: payGradePayload(t, "Senior Engineer", "9500"),
	}, specialistActor)
	require.NoError(t, err)

	assert.Equal(t, string(configuration.StatusDraft), item.Status)
	assert.False(t, item.AwaitingReview)
	assert.Equal(t, "user-spec", item.CreatedBy)

	grade, ok := item.Payload.(configuration.PayGrade)
	require.True(t, ok)
	assert.Equal(t, "Senior Engineer", grade.Name)
}

func TestWorkflowService_CreateItem_PermissionDenied(t *testing.T) {
	ctx := context.Background()
	svc := NewWorkflowService(newFakeConfigurationRepository())

	hrSpecialist := approval.ActorForRole("user-hr", "hr_specialist")
	_, err := svc.CreateItem(ctx, configuration.CreateItemRequest{
		Kind:    configuration.KindPayGrade,
		Payload: payGradePayload(t, "Junior Engineer", "4000"),
	}, hrSpecialist)

	assert.ErrorIs(t, err, approval.ErrPermissionDenied)
}

func TestWorkflowService_CreateItem_InvalidPayload(t *testing.T) {
	ctx := context.Background()
	svc := NewWorkflowService(newFakeConfigurationRepository())

	_, err := svc.CreateItem(ctx, configuration.CreateItemRequest{
		Kind:    configuration.KindPayGrade,
		Payload: payGradePayload(t, "", "-100"),
	}, specialistActor)

	require.Error(t, err)
}

func TestWorkflowService_ApproveRequiresSubmission(t *testing.T) {
	ctx := context.Background()
	svc := NewWorkflowService(newFakeConfigurationRepository())

	item := createDraft(t, svc, configuration.KindPayGrade, payGradePayload(t, "Lead", "12000"), specialistActor)

	_, err := svc.Approve(ctx, configuration.KindPayGrade, item.ID, managerActor, "")
	assert.ErrorIs(t, err, configuration.ErrInvalidStateTransition)
}

func TestWorkflowService_ApproveIsNotIdempotent(t *testing.T) {
	ctx := context.Background()
	svc := NewWorkflowService(newFakeConfigurationRepository())

	item := createDraft(t, svc, configuration.KindPayGrade, payGradePayload(t, "Lead", "12000"), specialistActor)

	submitted, err := svc.Submit(ctx, configuration.KindPayGrade, item.ID, specialistActor)
	require.NoError(t, err)
	assert.True(t, submitted.AwaitingReview)

	approved, err := svc.Approve(ctx, configuration.KindPayGrade, item.ID, managerActor, "")
	require.NoError(t, err)
	assert.Equal(t, string(configuration.StatusApproved), approved.Status)
	require.NotNil(t, approved.ApprovedBy)
	assert.Equal(t, "user-mgr", *approved.ApprovedBy)

	_, err = svc.Approve(ctx, configuration.KindPayGrade, item.ID, managerActor, "")
	assert.ErrorIs(t, err, configuration.ErrInvalidStateTransition)
}

func TestWorkflowService_SubmitTwiceFails(t *testing.T) {
	ctx := context.Background()
	svc := NewWorkflowService(newFakeConfigurationRepository())

	item := createDraft(t, svc, configuration.KindPayGrade, payGradePayload(t, "Lead", "12000"), specialistActor)

	_, err := svc.Submit(ctx, configuration.KindPayGrade, item.ID, specialistActor)
	require.NoError(t, err)

	_, err = svc.Submit(ctx, configuration.KindPayGrade, item.ID, specialistActor)
	assert.ErrorIs(t, err, configuration.ErrInvalidStateTransition)
}

func TestWorkflowService_ApproverCapabilityPerKind(t *testing.T) {
	ctx := context.Background()
	svc := NewWorkflowService(newFakeConfigurationRepository())

	hrSpecialist := approval.ActorForRole("user-hr", "hr_specialist")
	bracket, err := json.Marshal(map[string]interface{}{
		"name":         "Tier 1",
		"salary_from":  "0",
		"salary_to":    "5000",
		"fixed_amount": "150",
	})
	require.NoError(t, err)

	item, err := svc.CreateItem(ctx, configuration.CreateItemRequest{
		Kind:    configuration.KindInsuranceBracket,
		Payload: bracket,
	}, hrSpecialist)
	require.NoError(t, err)

	_, err = svc.Submit(ctx, configuration.KindInsuranceBracket, item.ID, hrSpecialist)
	require.NoError(t, err)

	// Insurance brackets are approved by HR management, not payroll.
	_, err = svc.Approve(ctx, configuration.KindInsuranceBracket, item.ID, managerActor, "")
	assert.ErrorIs(t, err, approval.ErrPermissionDenied)

	approved, err := svc.Approve(ctx, configuration.KindInsuranceBracket, item.ID, hrManagerActor, "")
	require.NoError(t, err)
	assert.Equal(t, string(configuration.StatusApproved), approved.Status)
}

func TestWorkflowService_RejectEditResubmitCycle(t *testing.T) {
	ctx := context.Background()
	svc := NewWorkflowService(newFakeConfigurationRepository())

	item := createDraft(t, svc, configuration.KindPayGrade, payGradePayload(t, "Analyst", "3000"), specialistActor)

	_, err := svc.Submit(ctx, configuration.KindPayGrade, item.ID, specialistActor)
	require.NoError(t, err)

	rejected, err := svc.Reject(ctx, configuration.KindPayGrade, item.ID, managerActor, "salary below band minimum")
	require.NoError(t, err)
	assert.Equal(t, string(configuration.StatusRejected), rejected.Status)
	require.NotNil(t, rejected.RejectionReason)
	assert.Equal(t, "salary below band minimum", *rejected.RejectionReason)

	edited, err := svc.EditAfterRejection(ctx, configuration.EditItemRequest{
		Kind:    configuration.KindPayGrade,
		ID:      item.ID,
		Payload: payGradePayload(t, "Analyst", "4500"),
	}, specialistActor)
	require.NoError(t, err)
	assert.Equal(t, string(configuration.StatusDraft), edited.Status)
	assert.False(t, edited.AwaitingReview)
	assert.Nil(t, edited.RejectionReason)

	// The corrected draft goes through the full cycle again.
	_, err = svc.Submit(ctx, configuration.KindPayGrade, item.ID, specialistActor)
	require.NoError(t, err)
	approved, err := svc.Approve(ctx, configuration.KindPayGrade, item.ID, managerActor, "")
	require.NoError(t, err)
	assert.Equal(t, string(configuration.StatusApproved), approved.Status)
}

func TestWorkflowService_RejectRequiresReason(t *testing.T) {
	ctx := context.Background()
	svc := NewWorkflowService(newFakeConfigurationRepository())

	item := createDraft(t, svc, configuration.KindPayGrade, payGradePayload(t, "Analyst", "3000"), specialistActor)
	_, err := svc.Submit(ctx, configuration.KindPayGrade, item.ID, specialistActor)
	require.NoError(t, err)

	_, err = svc.Reject(ctx, configuration.KindPayGrade, item.ID, managerActor, "")
	require.Error(t, err)
	assert.NotErrorIs(t, err, configuration.ErrInvalidStateTransition)
}

func TestWorkflowService_CompanySettingsSupersession(t *testing.T) {
	ctx := context.Background()
	svc := NewWorkflowService(newFakeConfigurationRepository())

	approveSettings := func(companyName string) configuration.ItemResponse {
		item := createDraft(t, svc, configuration.KindCompanySettings, companySettingsPayload(t, companyName), specialistActor)
		_, err := svc.Submit(ctx, configuration.KindCompanySettings, item.ID, specialistActor)
		require.NoError(t, err)
		approved, err := svc.Approve(ctx, configuration.KindCompanySettings, item.ID, adminActor, "")
		require.NoError(t, err)
		return approved
	}

	first := approveSettings("Acme Corp")
	second := approveSettings("Acme Corp International")

	active, err := svc.GetActiveCompanySettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, second.ID, active.ID)
	assert.NotEqual(t, first.ID, active.ID)

	settings, ok := active.Payload.(configuration.CompanySettings)
	require.True(t, ok)
	assert.Equal(t, "Acme Corp International", settings.CompanyName)
}

func TestWorkflowService_GetActiveCompanySettings_NoneApproved(t *testing.T) {
	ctx := context.Background()
	svc := NewWorkflowService(newFakeConfigurationRepository())

	_, err := svc.GetActiveCompanySettings(ctx)
	assert.ErrorIs(t, err, configuration.ErrNoActiveSettings)
}

func TestWorkflowService_DeleteDraftOnly(t *testing.T) {
	ctx := context.Background()
	svc := NewWorkflowService(newFakeConfigurationRepository())

	item := createDraft(t, svc, configuration.KindPayGrade, payGradePayload(t, "Intern", "1500"), specialistActor)
	_, err := svc.Submit(ctx, configuration.KindPayGrade, item.ID, specialistActor)
	require.NoError(t, err)
	_, err = svc.Approve(ctx, configuration.KindPayGrade, item.ID, managerActor, "")
	require.NoError(t, err)

	err = svc.Delete(ctx, configuration.KindPayGrade, item.ID, specialistActor)
	assert.ErrorIs(t, err, configuration.ErrInvalidStateTransition)
}

func TestWorkflowService_DeleteApproved(t *testing.T) {
	ctx := context.Background()
	svc := NewWorkflowService(newFakeConfigurationRepository())

	payType, err := json.Marshal(map[string]interface{}{
		"name":     "Monthly",
		"schedule": "monthly",
	})
	require.NoError(t, err)

	item, err := svc.CreateItem(ctx, configuration.CreateItemRequest{
		Kind:    configuration.KindPayType,
		Payload: payType,
	}, specialistActor)
	require.NoError(t, err)
	_, err = svc.Submit(ctx, configuration.KindPayType, item.ID, specialistActor)
	require.NoError(t, err)
	_, err = svc.Approve(ctx, configuration.KindPayType, item.ID, managerActor, "")
	require.NoError(t, err)

	// Specialists cannot remove approved pay types.
	err = svc.DeleteApproved(ctx, configuration.KindPayType, item.ID, specialistActor, specialistActor.ID)
	assert.ErrorIs(t, err, approval.ErrPermissionDenied)

	err = svc.DeleteApproved(ctx, configuration.KindPayType, item.ID, managerActor, managerActor.ID)
	require.NoError(t, err)

	_, err = svc.GetItem(ctx, configuration.KindPayType, item.ID)
	assert.ErrorIs(t, err, configuration.ErrItemNotFound)
}

func TestWorkflowService_DeleteApproved_NotAllowedForKind(t *testing.T) {
	ctx := context.Background()
	svc := NewWorkflowService(newFakeConfigurationRepository())

	item := createDraft(t, svc, configuration.KindPayGrade, payGradePayload(t, "Staff", "5000"), specialistActor)
	_, err := svc.Submit(ctx, configuration.KindPayGrade, item.ID, specialistActor)
	require.NoError(t, err)
	_, err = svc.Approve(ctx, configuration.KindPayGrade, item.ID, managerActor, "")
	require.NoError(t, err)

	err = svc.DeleteApproved(ctx, configuration.KindPayGrade, item.ID, managerActor, managerActor.ID)
	assert.ErrorIs(t, err, approval.ErrDeleteNotAllowed)
}
