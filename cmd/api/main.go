package main

import (
	"fmt"
	"net/http"

	"github.com/kirana-hr/kirana-backend-go/internal/config"
	appHTTP "github.com/kirana-hr/kirana-backend-go/internal/handler/http"
	"github.com/kirana-hr/kirana-backend-go/internal/pkg/database"
	"github.com/kirana-hr/kirana-backend-go/internal/pkg/jwt"
	"github.com/kirana-hr/kirana-backend-go/internal/repository/postgresql"
	attendanceService "github.com/kirana-hr/kirana-backend-go/internal/service/attendance"
	authService "github.com/kirana-hr/kirana-backend-go/internal/service/auth"
	calendarService "github.com/kirana-hr/kirana-backend-go/internal/service/calendar"
	employeeService "github.com/kirana-hr/kirana-backend-go/internal/service/employee"
	leaveService "github.com/kirana-hr/kirana-backend-go/internal/service/leave"
	payrollService "github.com/kirana-hr/kirana-backend-go/internal/service/payroll"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Close()

	userRepo := postgresql.NewUserRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	leaveTypeRepo := postgresql.NewLeaveTypeRepository(db)
	leaveRequestRepo := postgresql.NewLeaveRequestRepository(db)
	holidayRepo := postgresql.NewHolidayRepository(db)
	weeklyOffRepo := postgresql.NewWeeklyOffRepository(db)
	payrollRepo := postgresql.NewPayrollRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)

	reconciler := payrollService.NewReconciler(attendanceRepo, leaveRequestRepo, holidayRepo, weeklyOffRepo)

	authSvc := authService.NewAuthService(userRepo, jwtService)
	employeeSvc := employeeService.NewEmployeeService(employeeRepo)
	attendanceSvc := attendanceService.NewAttendanceService(attendanceRepo, employeeRepo)
	leaveSvc := leaveService.NewLeaveService(leaveTypeRepo, leaveRequestRepo, employeeRepo)
	calendarSvc := calendarService.NewCalendarService(holidayRepo, weeklyOffRepo, employeeRepo)
	payrollSvc := payrollService.NewPayrollService(db, payrollRepo, employeeRepo, reconciler)

	authHandler := appHTTP.NewAuthHandler(authSvc, jwtService)
	employeeHandler := appHTTP.NewEmployeeHandler(employeeSvc)
	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)
	leaveHandler := appHTTP.NewLeaveHandler(leaveSvc)
	calendarHandler := appHTTP.NewCalendarHandler(calendarSvc)
	payrollHandler := appHTTP.NewPayrollHandler(payrollSvc)

	router := appHTTP.NewRouter(
		cfg.App.FrontendURL,
		jwtService,
		authHandler,
		employeeHandler,
		attendanceHandler,
		leaveHandler,
		calendarHandler,
		payrollHandler,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
