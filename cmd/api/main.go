package main

import (
	"fmt"
	"net/http"

	"github.com/rosterlab/shift-backend-go/internal/config"
	appHTTP "github.com/rosterlab/shift-backend-go/internal/handler/http"
	"github.com/rosterlab/shift-backend-go/internal/pkg/calendar"
	"github.com/rosterlab/shift-backend-go/internal/pkg/database"
	"github.com/rosterlab/shift-backend-go/internal/pkg/jwt"
	"github.com/rosterlab/shift-backend-go/internal/repository/postgresql"
	attendanceService "github.com/rosterlab/shift-backend-go/internal/service/attendance"
	authService "github.com/rosterlab/shift-backend-go/internal/service/auth"
	compOffService "github.com/rosterlab/shift-backend-go/internal/service/compoff"
	overtimeService "github.com/rosterlab/shift-backend-go/internal/service/overtime"
	scheduleService "github.com/rosterlab/shift-backend-go/internal/service/schedule"
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

	userRepo := postgresql.NewUserRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	roleRepo := postgresql.NewRoleRepository(db)
	scheduleRepo := postgresql.NewScheduleRepository(db)
	approvalRepo := postgresql.NewApprovalRepository(db)
	trackingRepo := postgresql.NewTrackingRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	compOffEntryRepo := postgresql.NewCompOffEntryRepository(db)
	compOffRequestRepo := postgresql.NewCompOffRequestRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)
	cal := calendar.New()
	settlementCalc := overtimeService.NewSettlementCalculator(cfg.Policy.MaxDailyHours)

	authSvc := authService.NewAuthService(userRepo, jwtService)
	scheduleSvc := scheduleService.NewScheduleService(
		db,
		cfg.Policy,
		cal,
		scheduleRepo,
		employeeRepo,
		approvalRepo,
		trackingRepo,
	)
	overtimeSvc := overtimeService.NewOvertimeService(db, cfg.Policy, approvalRepo, trackingRepo, employeeRepo)
	attendanceSvc := attendanceService.NewAttendanceService(
		db,
		cfg.Policy,
		settlementCalc,
		attendanceRepo,
		scheduleRepo,
		approvalRepo,
		overtimeSvc,
		roleRepo,
	)
	compOffSvc := compOffService.NewCompOffService(
		db,
		cal,
		compOffEntryRepo,
		compOffRequestRepo,
		scheduleRepo,
		employeeRepo,
	)

	authHandler := appHTTP.NewAuthHandler(authSvc, jwtService)
	scheduleHandler := appHTTP.NewScheduleHandler(scheduleSvc)
	overtimeHandler := appHTTP.NewOvertimeHandler(overtimeSvc)
	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)
	compOffHandler := appHTTP.NewCompOffHandler(compOffSvc)
	calendarHandler := appHTTP.NewCalendarHandler(cal)

	router := appHTTP.NewRouter(
		jwtService,
		authHandler,
		scheduleHandler,
		overtimeHandler,
		attendanceHandler,
		compOffHandler,
		calendarHandler,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
