package main

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/cleandash/scheduler-backend-go/internal/config"
	appHTTP "github.com/cleandash/scheduler-backend-go/internal/handler/http"
	"github.com/cleandash/scheduler-backend-go/internal/pkg/cron"
	"github.com/cleandash/scheduler-backend-go/internal/pkg/database"
	"github.com/cleandash/scheduler-backend-go/internal/pkg/jwt"
	"github.com/cleandash/scheduler-backend-go/internal/pkg/logging"
	"github.com/cleandash/scheduler-backend-go/internal/repository/postgresql"
	attendanceService "github.com/cleandash/scheduler-backend-go/internal/service/attendance"
	"github.com/cleandash/scheduler-backend-go/internal/service/calendar"
	recurrenceService "github.com/cleandash/scheduler-backend-go/internal/service/recurrence"
	shiftService "github.com/cleandash/scheduler-backend-go/internal/service/shift"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	logging.Setup(cfg.App.Env)

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	shiftRepo := postgresql.NewShiftRepository(db)
	accountRepo := postgresql.NewAccountRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)

	lateThreshold := time.Duration(cfg.Scheduler.LateThresholdMinutes) * time.Minute
	shiftSvc := shiftService.NewShiftService(shiftRepo, accountRepo, employeeRepo, lateThreshold)
	recurrenceSvc := recurrenceService.NewRecurrenceService(shiftRepo, accountRepo, employeeRepo, cfg.Scheduler.HorizonDays)
	attendanceSvc := attendanceService.NewAttendanceService(shiftRepo, accountRepo, lateThreshold, cfg.Scheduler.MaxAccuracyM)
	viewSvc := calendar.NewViewService(shiftRepo, calendar.DefaultConfig(), lateThreshold)

	shiftHandler := appHTTP.NewShiftHandler(shiftSvc)
	schedulerHandler := appHTTP.NewSchedulerHandler(viewSvc)
	recurrenceHandler := appHTTP.NewRecurrenceHandler(recurrenceSvc)
	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)

	router := appHTTP.NewRouter(
		cfg.App.Env,
		JWTService,
		shiftHandler,
		schedulerHandler,
		recurrenceHandler,
		attendanceHandler,
	)

	extendInterval, err := time.ParseDuration(cfg.Scheduler.ExtendInterval)
	if err != nil {
		log.Fatal("Invalid SCHEDULE_EXTEND_INTERVAL: ", err)
	}

	scheduler := cron.NewScheduler()
	cron.NewHorizonJobs(recurrenceSvc, extendInterval).RegisterJobs(scheduler)
	scheduler.Start()
	defer scheduler.Stop()

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
