package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/onsite-hris/onsite-backend-go/internal/config"
	appHTTP "github.com/onsite-hris/onsite-backend-go/internal/handler/http"
	"github.com/onsite-hris/onsite-backend-go/internal/pkg/cron"
	"github.com/onsite-hris/onsite-backend-go/internal/pkg/database"
	"github.com/onsite-hris/onsite-backend-go/internal/pkg/jwt"
	"github.com/onsite-hris/onsite-backend-go/internal/pkg/storage"
	"github.com/onsite-hris/onsite-backend-go/internal/repository/postgresql"
	attendanceService "github.com/onsite-hris/onsite-backend-go/internal/service/attendance"
	confirmationService "github.com/onsite-hris/onsite-backend-go/internal/service/confirmation"
	employeeService "github.com/onsite-hris/onsite-backend-go/internal/service/employee"
	"github.com/onsite-hris/onsite-backend-go/internal/service/file"
	notificationService "github.com/onsite-hris/onsite-backend-go/internal/service/notification"
	permitService "github.com/onsite-hris/onsite-backend-go/internal/service/permit"
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
	defer db.Close()

	attendanceRepo := postgresql.NewAttendanceRepository(db)
	checkRepo := postgresql.NewCheckRepository(db)
	overtimeRepo := postgresql.NewOvertimeRepository(db)
	activityRepo := postgresql.NewActivityRepository(db)
	confirmationRepo := postgresql.NewConfirmationRepository(db)
	permitRepo := postgresql.NewPermitRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	txRunner := postgresql.NewTxRunner(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret)

	var fileStorage storage.FileStorage
	switch cfg.Storage.Type {
	case "local":
		fileStorage, err = storage.NewLocalStorage(
			cfg.Storage.BasePath,
			cfg.Storage.BaseURL,
		)
		if err != nil {
			log.Fatal("Failed to initialize local storage:", err)
		}
	case "gdrive":
		fileStorage = storage.NewDriveStorage(
			cfg.Storage.DriveClientID,
			cfg.Storage.DriveClientSecret,
			cfg.Storage.DriveRefreshToken,
			cfg.Storage.DriveFolderID,
		)
	default:
		log.Fatal("Unsupported storage type: ", cfg.Storage.Type)
	}

	fileService := file.NewFileService(fileStorage)
	attendanceSvc := attendanceService.NewAttendanceService(
		txRunner,
		attendanceRepo,
		checkRepo,
		overtimeRepo,
		activityRepo,
		confirmationRepo,
		permitRepo,
	)
	confirmationSvc := confirmationService.NewConfirmationService(
		txRunner,
		confirmationRepo,
		attendanceRepo,
		checkRepo,
		overtimeRepo,
		permitRepo,
	)
	permitSvc := permitService.NewPermitService(
		txRunner,
		permitRepo,
		attendanceRepo,
		fileService,
	)
	notificationSvc := notificationService.NewNotificationService(
		attendanceRepo,
		confirmationRepo,
		permitRepo,
		employeeRepo,
		fileService,
	)
	employeeSvc := employeeService.NewEmployeeService(employeeRepo, cfg.Sync.KeyHash)

	scheduler := cron.NewScheduler()
	cron.NewAttendanceJobs(attendanceRepo, employeeRepo).RegisterJobs(scheduler)
	scheduler.Start()
	defer scheduler.Stop()

	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc, fileService)
	permitHandler := appHTTP.NewPermitHandler(permitSvc, fileService)
	confirmationHandler := appHTTP.NewConfirmationHandler(confirmationSvc, fileService)
	notificationHandler := appHTTP.NewNotificationHandler(notificationSvc)
	dashboardHandler := appHTTP.NewDashboardHandler(attendanceSvc)
	employeeHandler := appHTTP.NewEmployeeHandler(employeeSvc)

	uploadsBasePath := ""
	if cfg.Storage.Type == "local" {
		uploadsBasePath = cfg.Storage.BasePath
	}

	router := appHTTP.NewRouter(
		JWTService,
		attendanceHandler,
		permitHandler,
		confirmationHandler,
		notificationHandler,
		dashboardHandler,
		employeeHandler,
		appHTTP.RouterConfig{
			Env:             cfg.App.Env,
			AllowedOrigins:  cfg.App.AllowedOrigins,
			UploadsBasePath: uploadsBasePath,
		},
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
