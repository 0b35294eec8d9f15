package http

import (
	"encoding/json"
	"net/http"

	"github.com/Starlord12336/payrol-ltracking-sub002/internal/domain/approval"
	benefitDomain "github.com/Starlord12336/payrol-ltracking-sub002/internal/domain/benefit"
	"github.com/Starlord12336/payrol-ltracking-sub002/internal/handler/http/response"
	"github.com/Starlord12336/payrol-ltracking-sub002/internal/pkg/jwt"
	benefitService "github.com/Starlord12336/payrol-ltracking-sub002/internal/service/benefit"
	"github.com/go-chi/chi/v5"
)

type BenefitHandler interface {
	CreateLink(w http.ResponseWriter, r *http.Request)
	GetLink(w http.ResponseWriter, r *http.Request)
	ListLinksByEmployee(w http.ResponseWriter, r *http.Request)
	ApproveLink(w http.ResponseWriter, r *http.Request)
	RejectLink(w http.ResponseWriter, r *http.Request)
	MarkLinkPaid(w http.ResponseWriter, r *http.Request)
	DeleteLink(w http.ResponseWriter, r *http.Request)
}

type benefitHandlerImpl struct {
	linkerService benefitService.LinkerService
	jwtService    jwt.Service
}

func NewBenefitHandler(linkerService benefitService.LinkerService, jwtService jwt.Service) BenefitHandler {
	return &benefitHandlerImpl{
		linkerService: linkerService,
		jwtService:    jwtService,
	}
}

func (h *benefitHandlerImpl) actor(r *http.Request) (approval.Actor, error) {
	claims, err := h.jwtService.ClaimsFromContext(r.Context())
	if err != nil {
		return approval.Actor{}, err
	}
	return approval.ActorForRole(claims.UserID, claims.Role), nil
}

func (h *benefitHandlerImpl) CreateLink(w http.ResponseWriter, r *http.Request) {
	var req benefitDomain.CreateLinkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	actor, err := h.actor(r)
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	result, err := h.linkerService.CreateLink(r.Context(), req, actor)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Benefit link created", result)
}

func (h *benefitHandlerImpl) GetLink(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Link ID is required", nil)
		return
	}

	result, err := h.linkerService.GetLink(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *benefitHandlerImpl) ListLinksByEmployee(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")
	if employeeID == "" {
		response.BadRequest(w, "Employee ID is required", nil)
		return
	}

	result, err := h.linkerService.ListLinksByEmployee(r.Context(), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *benefitHandlerImpl) ApproveLink(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	actor, err := h.actor(r)
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	result, err := h.linkerService.ApproveLink(r.Context(), id, actor, actor.ID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *benefitHandlerImpl) RejectLink(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req benefitDomain.RejectLinkRequest
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

	result, err := h.linkerService.RejectLink(r.Context(), id, actor, req.Reason)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *benefitHandlerImpl) MarkLinkPaid(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	actor, err := h.actor(r)
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	result, err := h.linkerService.MarkLinkPaid(r.Context(), id, actor)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *benefitHandlerImpl) DeleteLink(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	actor, err := h.actor(r)
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	if err := h.linkerService.DeleteLink(r.Context(), id, actor); err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, map[string]string{"message": "Benefit link deleted"})
}
