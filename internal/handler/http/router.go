package http

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"

	"github.com/onsite-hris/onsite-backend-go/internal/handler/http/middleware"
	"github.com/onsite-hris/onsite-backend-go/internal/pkg/jwt"
)

type RouterConfig struct {
	Env             string
	AllowedOrigins  []string
	UploadsBasePath string
}

func NewRouter(
	jwtService jwt.Service,
	attendanceHandler AttendanceHandler,
	permitHandler PermitHandler,
	confirmationHandler ConfirmationHandler,
	notificationHandler NotificationHandler,
	dashboardHandler DashboardHandler,
	employeeHandler EmployeeHandler,
	cfg RouterConfig,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "onsite-hris"),
		slog.String("version", "v1.0.0"),
		slog.String("env", cfg.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
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

	// Locally stored uploads; the Drive backend serves its own URLs.
	if cfg.UploadsBasePath != "" {
		fileServer := http.StripPrefix("/uploads/", http.FileServer(http.Dir(cfg.UploadsBasePath)))
		r.Get("/uploads/*", fileServer.ServeHTTP)
	}

	r.Route("/api/v1", func(r chi.Router) {

		// HR system push, authenticated by the sync key in the body.
		r.Post("/employees/sync", employeeHandler.Sync)

		// Requires an HR SSO access token
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			// Onsite workers
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireOnsite)

				r.Route("/attendances", func(r chi.Router) {
					r.Post("/check-in", attendanceHandler.CheckIn)
					r.Post("/check-out", attendanceHandler.CheckOut)

					r.Route("/{attendanceID}/activities", func(r chi.Router) {
						r.Post("/", attendanceHandler.AddActivity)
						r.Get("/", attendanceHandler.ListActivities)
					})
				})
				r.Put("/activities/{activityID}/finish", attendanceHandler.FinishActivity)

				r.Post("/overtimes", attendanceHandler.RequestOvertime)

				r.Route("/permits", func(r chi.Router) {
					r.Post("/", permitHandler.Create)
					r.Get("/my", permitHandler.ListMine)
				})

				r.Post("/confirmations", confirmationHandler.Create)

				r.Route("/dashboard", func(r chi.Router) {
					r.Get("/daily", dashboardHandler.DailySummary)
					r.Get("/weekly", dashboardHandler.WeeklyRecap)
				})

				r.Get("/notifications/my", notificationHandler.MyFeed)
			})

			// Coordinators
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireCoordinator)

				r.Post("/overtimes/{overtimeID}/approval", confirmationHandler.OvertimeApproval)
				r.Post("/confirmations/{confirmationID}/approval", confirmationHandler.Approval)
				r.Post("/permits/{permitID}/approval", permitHandler.Approval)

				r.Get("/notifications", notificationHandler.CoordinatorFeed)
				r.Get("/dashboard/summary", dashboardHandler.CoordinatorSummary)

				r.Route("/employees", func(r chi.Router) {
					r.Get("/", employeeHandler.List)
					r.Get("/{nik}", employeeHandler.Get)
				})
			})
		})
	})
	return r
}
