package main

import (
	"fmt"
	"net/http"

	"github.com/Starlord12336/payrol-ltracking-sub002/internal/config"
	appHTTP "github.com/Starlord12336/payrol-ltracking-sub002/internal/handler/http"
	"github.com/Starlord12336/payrol-ltracking-sub002/internal/pkg/database"
	"github.com/Starlord12336/payrol-ltracking-sub002/internal/pkg/jwt"
	"github.com/Starlord12336/payrol-ltracking-sub002/internal/repository/postgresql"
	workflowService "github.com/Starlord12336/payrol-ltracking-sub002/internal/service/approval"
	benefitService "github.com/Starlord12336/payrol-ltracking-sub002/internal/service/benefit"
	leaveService "github.com/Starlord12336/payrol-ltracking-sub002/internal/service/leave"
	payrollRunService "github.com/Starlord12336/payrol-ltracking-sub002/internal/service/payrollrun"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	dsn := cfg.DatabaseURL()
	db, err := database.NewPostgreSQLDB(dsn)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	configRepo := postgresql.NewConfigurationRepository(db)
	benefitRepo := postgresql.NewBenefitRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	penaltyRepo := postgresql.NewPenaltyRepository(db)
	leaveRepo := postgresql.NewLeaveRepository(db)
	runRepo := postgresql.NewPayrollRunRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret)
	workflowSvc := workflowService.NewWorkflowService(configRepo)
	leaveSvc := leaveService.NewBalanceService(leaveRepo)
	linkerSvc := benefitService.NewLinkerService(benefitRepo, configRepo, employeeRepo, leaveSvc)
	generatorSvc := payrollRunService.NewGeneratorService(runRepo, configRepo, employeeRepo, penaltyRepo, linkerSvc)

	configurationHandler := appHTTP.NewConfigurationHandler(workflowSvc, jwtService)
	benefitHandler := appHTTP.NewBenefitHandler(linkerSvc, jwtService)
	payrollRunHandler := appHTTP.NewPayrollRunHandler(generatorSvc, jwtService)

	router := appHTTP.NewRouter(
		jwtService,
		configurationHandler,
		benefitHandler,
		payrollRunHandler,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
