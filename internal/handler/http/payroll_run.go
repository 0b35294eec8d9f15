package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/Starlord12336/payrol-ltracking-sub002/internal/domain/payrollrun"
	"github.com/Starlord12336/payrol-ltracking-sub002/internal/handler/http/response"
	"github.com/Starlord12336/payrol-ltracking-sub002/internal/pkg/jwt"
	runService "github.com/Starlord12336/payrol-ltracking-sub002/internal/service/payrollrun"
	"github.com/go-chi/chi/v5"
)

type PayrollRunHandler interface {
	GenerateDraft(w http.ResponseWriter, r *http.Request)
	GetRun(w http.ResponseWriter, r *http.Request)
	ListRuns(w http.ResponseWriter, r *http.Request)
	ListDetails(w http.ResponseWriter, r *http.Request)
}

type payrollRunHandlerImpl struct {
	generatorService runService.GeneratorService
	jwtService       jwt.Service
}

func NewPayrollRunHandler(generatorService runService.GeneratorService, jwtService jwt.Service) PayrollRunHandler {
	return &payrollRunHandlerImpl{
		generatorService: generatorService,
		jwtService:       jwtService,
	}
}

func (h *payrollRunHandlerImpl) GenerateDraft(w http.ResponseWriter, r *http.Request) {
	var req payrollrun.GenerateDraftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	claims, err := h.jwtService.ClaimsFromContext(r.Context())
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	result, err := h.generatorService.GenerateDraft(r.Context(), req, claims.UserID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Payroll draft generated", result)
}

func (h *payrollRunHandlerImpl) GetRun(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Run ID is required", nil)
		return
	}

	result, err := h.generatorService.GetRun(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *payrollRunHandlerImpl) ListRuns(w http.ResponseWriter, r *http.Request) {
	var filter payrollrun.RunFilter

	if v := r.URL.Query().Get("period_month"); v != "" {
		month, err := strconv.Atoi(v)
		if err != nil || month < 1 || month > 12 {
			response.BadRequest(w, "Invalid period_month", nil)
			return
		}
		filter.PeriodMonth = &month
	}
	if v := r.URL.Query().Get("period_year"); v != "" {
		year, err := strconv.Atoi(v)
		if err != nil {
			response.BadRequest(w, "Invalid period_year", nil)
			return
		}
		filter.PeriodYear = &year
	}

	result, err := h.generatorService.ListRuns(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *payrollRunHandlerImpl) ListDetails(w http.ResponseWriter, r *http.Request) {
	runID := chi.URLParam(r, "id")
	if runID == "" {
		response.BadRequest(w, "Run ID is required", nil)
		return
	}

	result, err := h.generatorService.ListDetails(r.Context(), runID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
