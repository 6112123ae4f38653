package main

import (
	"fmt"
	"net/http"

	"github.com/workpulse/attendance-backend-go/internal/config"
	appHTTP "github.com/workpulse/attendance-backend-go/internal/handler/http"
	"github.com/workpulse/attendance-backend-go/internal/pkg/cron"
	"github.com/workpulse/attendance-backend-go/internal/pkg/database"
	"github.com/workpulse/attendance-backend-go/internal/pkg/jwt"
	"github.com/workpulse/attendance-backend-go/internal/repository/postgresql"
	attendanceService "github.com/workpulse/attendance-backend-go/internal/service/attendance"
	supplementaryService "github.com/workpulse/attendance-backend-go/internal/service/supplementary"
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

	supplementaryRepo := postgresql.NewSupplementaryRepository(db)
	clockEventRepo := postgresql.NewClockEventRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	holidayRepo := postgresql.NewHolidayRepository(db)
	leaveRepo := postgresql.NewLeaveRepository(db)
	settingsRepo := postgresql.NewCompanySettingsRepository(db, cfg.Engine)
	recoveryRepo := postgresql.NewRecoveryDayRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)

	classifier := supplementaryService.NewClassifier(holidayRepo)
	supplementarySvc := supplementaryService.NewSupplementaryService(
		db,
		supplementaryRepo,
		employeeRepo,
		leaveRepo,
		clockEventRepo,
		recoveryRepo,
		settingsRepo,
		classifier,
		cfg.Engine.ReconcileTenantTimeout,
	)
	clockSvc := attendanceService.NewClockService(clockEventRepo, supplementarySvc)

	scheduler := cron.NewScheduler()
	supplementaryJobs := cron.NewSupplementaryJobs(supplementarySvc, cfg.Engine.ReconcileWindowDays)
	supplementaryJobs.RegisterJobs(scheduler)
	scheduler.Start()
	defer scheduler.Stop()

	attendanceHandler := appHTTP.NewAttendanceHandler(clockSvc)
	supplementaryHandler := appHTTP.NewSupplementaryHandler(supplementarySvc)

	router := appHTTP.NewRouter(
		JWTService,
		attendanceHandler,
		supplementaryHandler,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
