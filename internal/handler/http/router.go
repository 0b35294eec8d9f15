package http

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/Starlord12336/payrol-ltracking-sub002/internal/domain/approval"
	"github.com/Starlord12336/payrol-ltracking-sub002/internal/handler/http/middleware"
	"github.com/Starlord12336/payrol-ltracking-sub002/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

func NewRouter(
	jwtService jwt.Service,
	configurationHandler ConfigurationHandler,
	benefitHandler BenefitHandler,
	payrollRunHandler PayrollRunHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "compensation-config"),
		slog.String("version", "v1.0.0"),
		slog.String("env", "development"),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Route("/configurations", func(r chi.Router) {
				r.Get("/company-settings/active", configurationHandler.GetActiveCompanySettings)

				r.Route("/{kind}", func(r chi.Router) {
					r.Get("/", configurationHandler.List)
					r.Post("/", configurationHandler.Create)

					r.Route("/{id}", func(r chi.Router) {
						r.Get("/", configurationHandler.Get)
						r.Put("/", configurationHandler.Edit)
						r.Delete("/", configurationHandler.Delete)
						r.Post("/submit", configurationHandler.Submit)
						r.Post("/approve", configurationHandler.Approve)
						r.Post("/reject", configurationHandler.Reject)
						r.Delete("/approved", configurationHandler.DeleteApproved)
					})
				})
			})

			r.Route("/benefit-links", func(r chi.Router) {
				r.Post("/", benefitHandler.CreateLink)
				r.Get("/employee/{employeeID}", benefitHandler.ListLinksByEmployee)

				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", benefitHandler.GetLink)
					r.Delete("/", benefitHandler.DeleteLink)
					r.Post("/approve", benefitHandler.ApproveLink)
					r.Post("/reject", benefitHandler.RejectLink)
					r.Post("/mark-paid", benefitHandler.MarkLinkPaid)
				})
			})

			r.Route("/payroll-runs", func(r chi.Router) {
				r.Get("/", payrollRunHandler.ListRuns)

				// Draft generation is a payroll specialist action.
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireCapability(approval.CapabilityPayrollSpecialist))
					r.Post("/generate", payrollRunHandler.GenerateDraft)
				})

				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", payrollRunHandler.GetRun)
					r.Get("/details", payrollRunHandler.ListDetails)
				})
			})
		})
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok\n"))
	})

	return r
}
