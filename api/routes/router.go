package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/nishantpawar/institute-backend/api/controllers"
	"github.com/nishantpawar/institute-backend/api/middleware"
	"github.com/nishantpawar/institute-backend/internal/auth"
	"github.com/nishantpawar/institute-backend/internal/courses"
	"github.com/nishantpawar/institute-backend/internal/feedback"
	"github.com/nishantpawar/institute-backend/internal/media"
	"github.com/nishantpawar/institute-backend/internal/notify"
	"github.com/nishantpawar/institute-backend/internal/recorded"
	"github.com/nishantpawar/institute-backend/internal/sitesettings"
	"github.com/nishantpawar/institute-backend/pkg/config"
	"github.com/nishantpawar/institute-backend/pkg/logger"
)

// Deps carries everything the router wires into handlers.
type Deps struct {
	Config   *config.Config
	Logger   *logger.Logger
	Registry *prometheus.Registry

	Probes map[string]controllers.Pinger

	RateLimitStore middleware.RateLimiterStore

	AuthService         auth.Service
	CourseService       courses.Service
	RecordedService     recorded.Service
	FeedbackService     feedback.Service
	NotifyService       notify.Service
	MediaService        media.Service
	SiteSettingsService sitesettings.Service
}

// NewRouter assembles the HTTP surface.
func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.CORS.ExtraOrigins),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRate.LoginWindow,
		cfg.AuthRate.LoginIPLimit,
		cfg.AuthRate.LoginEmailLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, deps.Probes))
	})

	if deps.Registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{}))
	}

	r.Route("/otp", func(r chi.Router) {
		r.Post("/send-otp", controllers.SendOTP(deps.AuthService, logg))
		r.Post("/verify-otp", controllers.VerifyOTP(deps.AuthService, logg))
	})

	r.With(middleware.AuthRateLimit(loginPolicy, deps.RateLimitStore, logg)).
		Post("/user/login", controllers.Login(deps.AuthService, logg))

	r.Route("/course", func(r chi.Router) {
		r.Get("/get", controllers.SampleCourses(deps.CourseService, logg))
		r.Get("/search", controllers.SearchCourses(deps.CourseService, logg))
		r.Get("/{id}", controllers.GetCourse(deps.CourseService, logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, logg), middleware.RequireAdmin(logg))
			r.Get("/", controllers.ListCourses(deps.CourseService, logg))
			r.Post("/add", controllers.CreateCourse(deps.CourseService, logg))
			r.Put("/update/{id}", controllers.UpdateCourse(deps.CourseService, logg))
			r.Delete("/{id}", controllers.DeleteCourse(deps.CourseService, logg))
		})
	})

	r.Route("/recorded", func(r chi.Router) {
		r.Get("/get", controllers.ListRecordedCourses(deps.RecordedService, logg))
		r.Get("/{id}", controllers.GetRecordedCourse(deps.RecordedService, logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, logg), middleware.RequireAdmin(logg))
			r.Post("/create", controllers.CreateRecordedCourse(deps.RecordedService, logg))
			r.Put("/update/{id}", controllers.UpdateRecordedCourse(deps.RecordedService, logg))
			r.Delete("/{id}", controllers.DeleteRecordedCourse(deps.RecordedService, logg))
		})
	})

	r.Route("/feedback", func(r chi.Router) {
		r.Get("/course/{courseId}", controllers.ListCourseFeedback(deps.FeedbackService, logg))
		r.Get("/recorded/{courseId}", controllers.ListRecordedCourseFeedback(deps.FeedbackService, logg))

		r.With(middleware.Auth(cfg.JWT, logg)).
			Post("/submit", controllers.SubmitFeedback(deps.FeedbackService, logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, logg), middleware.RequireAdmin(logg))
			r.Get("/get", controllers.ListAllFeedback(deps.FeedbackService, logg))
			r.Patch("/resolve/{id}", controllers.ResolveFeedback(deps.FeedbackService, logg))
		})
	})

	r.Route("/notify", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg), middleware.RequireAdmin(logg))
		r.Post("/", controllers.CreateNotification(deps.NotifyService, logg))
		r.Get("/", controllers.ListNotifications(deps.NotifyService, logg))
		r.Get("/{id}", controllers.GetNotification(deps.NotifyService, logg))
		r.Delete("/{id}", controllers.DeleteNotification(deps.NotifyService, logg))
	})

	r.With(middleware.Auth(cfg.JWT, logg), middleware.RequireAdmin(logg)).
		Post("/media/upload-url", controllers.SignedUploadURL(deps.MediaService, logg))

	r.Route("/site-settings", func(r chi.Router) {
		r.Get("/", controllers.GetSiteSettings(deps.SiteSettingsService, logg))
		r.With(middleware.Auth(cfg.JWT, logg), middleware.RequireAdmin(logg)).
			Put("/", controllers.UpdateSiteSettings(deps.SiteSettingsService, logg))
	})

	return r
}
