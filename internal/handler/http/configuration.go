package http

import (
	"encoding/json"
	"net/http"

	"github.com/Starlord12336/payrol-ltracking-sub002/internal/domain/approval"
	"github.com/Starlord12336/payrol-ltracking-sub002/internal/domain/configuration"
	"github.com/Starlord12336/payrol-ltracking-sub002/internal/handler/http/response"
	"github.com/Starlord12336/payrol-ltracking-sub002/internal/pkg/jwt"
	workflow "github.com/Starlord12336/payrol-ltracking-sub002/internal/service/approval"
	"github.com/go-chi/chi/v5"
)

type ConfigurationHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)

	Submit(w http.ResponseWriter, r *http.Request)
	Approve(w http.ResponseWriter, r *http.Request)
	Reject(w http.ResponseWriter, r *http.Request)
	Edit(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	DeleteApproved(w http.ResponseWriter, r *http.Request)

	GetActiveCompanySettings(w http.ResponseWriter, r *http.Request)
}

type configurationHandlerImpl struct {
	workflowService workflow.WorkflowService
	jwtService      jwt.Service
}

func NewConfigurationHandler(workflowService workflow.WorkflowService, jwtService jwt.Service) ConfigurationHandler {
	return &configurationHandlerImpl{
		workflowService: workflowService,
		jwtService:      jwtService,
	}
}

func (h *configurationHandlerImpl) actor(r *http.Request) (approval.Actor, error) {
	claims, err := h.jwtService.ClaimsFromContext(r.Context())
	if err != nil {
		return approval.Actor{}, err
	}
	return approval.ActorForRole(claims.UserID, claims.Role), nil
}

func kindParam(r *http.Request) (configuration.Kind, bool) {
	kind := chi.URLParam(r, "kind")
	if !configuration.IsValidKind(kind) {
		return "", false
	}
	return configuration.Kind(kind), true
}

func (h *configurationHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	kind, ok := kindParam(r)
	if !ok {
		response.BadRequest(w, "Unknown configuration kind", nil)
		return
	}

	var req configuration.CreateItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.Kind = kind

	actor, err := h.actor(r)
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	result, err := h.workflowService.CreateItem(r.Context(), req, actor)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Configuration item created", result)
}

func (h *configurationHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	kind, ok := kindParam(r)
	if !ok {
		response.BadRequest(w, "Unknown configuration kind", nil)
		return
	}
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Item ID is required", nil)
		return
	}

	result, err := h.workflowService.GetItem(r.Context(), kind, id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *configurationHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	kind, ok := kindParam(r)
	if !ok {
		response.BadRequest(w, "Unknown configuration kind", nil)
		return
	}

	result, err := h.workflowService.ListItems(r.Context(), kind)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *configurationHandlerImpl) Submit(w http.ResponseWriter, r *http.Request) {
	kind, ok := kindParam(r)
	if !ok {
		response.BadRequest(w, "Unknown configuration kind", nil)
		return
	}
	id := chi.URLParam(r, "id")

	actor, err := h.actor(r)
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	result, err := h.workflowService.Submit(r.Context(), kind, id, actor)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *configurationHandlerImpl) Approve(w http.ResponseWriter, r *http.Request) {
	kind, ok := kindParam(r)
	if !ok {
		response.BadRequest(w, "Unknown configuration kind", nil)
		return
	}
	id := chi.URLParam(r, "id")

	actor, err := h.actor(r)
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	result, err := h.workflowService.Approve(r.Context(), kind, id, actor, actor.ID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *configurationHandlerImpl) Reject(w http.ResponseWriter, r *http.Request) {
	kind, ok := kindParam(r)
	if !ok {
		response.BadRequest(w, "Unknown configuration kind", nil)
		return
	}
	id := chi.URLParam(r, "id")

	var req configuration.RejectItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	actor, err := h.actor(r)
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	result, err := h.workflowService.Reject(r.Context(), kind, id, actor, req.Reason)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *configurationHandlerImpl) Edit(w http.ResponseWriter, r *http.Request) {
	kind, ok := kindParam(r)
	if !ok {
		response.BadRequest(w, "Unknown configuration kind", nil)
		return
	}

	var req configuration.EditItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.Kind = kind
	req.ID = chi.URLParam(r, "id")

	actor, err := h.actor(r)
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	result, err := h.workflowService.EditAfterRejection(r.Context(), req, actor)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *configurationHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	kind, ok := kindParam(r)
	if !ok {
		response.BadRequest(w, "Unknown configuration kind", nil)
		return
	}
	id := chi.URLParam(r, "id")

	actor, err := h.actor(r)
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	if err := h.workflowService.Delete(r.Context(), kind, id, actor); err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, map[string]string{"message": "Configuration item deleted"})
}

func (h *configurationHandlerImpl) DeleteApproved(w http.ResponseWriter, r *http.Request) {
	kind, ok := kindParam(r)
	if !ok {
		response.BadRequest(w, "Unknown configuration kind", nil)
		return
	}
	id := chi.URLParam(r, "id")

	actor, err := h.actor(r)
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	if err := h.workflowService.DeleteApproved(r.Context(), kind, id, actor, actor.ID); err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, map[string]string{"message": "Approved configuration item deleted"})
}

func (h *configurationHandlerImpl) GetActiveCompanySettings(w http.ResponseWriter, r *http.Request) {
	result, err := h.workflowService.GetActiveCompanySettings(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
