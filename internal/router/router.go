package router

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	"github.com/tabibi/patient-api/internal/handler"
	appointmenthandler "github.com/tabibi/patient-api/internal/handler/appointment"
	authhandler "github.com/tabibi/patient-api/internal/handler/auth"
	doctorhandler "github.com/tabibi/patient-api/internal/handler/doctor"
	patienthandler "github.com/tabibi/patient-api/internal/handler/patient"
	prescriptionhandler "github.com/tabibi/patient-api/internal/handler/prescription"
	"github.com/tabibi/patient-api/internal/middleware"
	"github.com/tabibi/patient-api/internal/model"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)
)

func requestMetrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}

		httpRequestsTotal.WithLabelValues(
			c.Request.Method,
			path,
			strconv.Itoa(c.Writer.Status()),
		).Inc()
		httpRequestDuration.WithLabelValues(c.Request.Method, path).
			Observe(time.Since(start).Seconds())
	}
}

// Handlers bundles everything the router mounts.
type Handlers struct {
	Health       *handler.HealthHandler
	Auth         *authhandler.Handler
	Doctor       *doctorhandler.Handler
	Appointment  *appointmenthandler.Handler
	Patient      *patienthandler.Handler
	Prescription *prescriptionhandler.Handler
}

// Config tunes router-level middleware.
type Config struct {
	RequestsPerSecond float64
	Burst             int
}

// New assembles the HTTP surface: public auth and doctor discovery routes,
// and token-protected patient-facing routes.
func New(h Handlers, authMW *middleware.AuthMiddleware, cfg Config) *gin.Engine {
	middleware.RegisterCustomValidators()

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(middleware.DefaultCORSConfig()))
	r.Use(middleware.Timeout(middleware.DefaultTimeoutConfig()))
	r.Use(middleware.ErrorHandler())
	r.Use(requestMetrics())

	if cfg.RequestsPerSecond > 0 {
		limiter := middleware.NewRateLimiter(middleware.RateLimiterConfig{
			Rate:  rate.Limit(cfg.RequestsPerSecond),
			Burst: cfg.Burst,
		})
		r.Use(limiter.RateLimit())
	}

	r.GET("/health/live", h.Health.Live)
	r.GET("/health/ready", h.Health.Ready)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := r.Group("/api/v1")

	auth := v1.Group("/auth")
	{
		auth.POST("/register", h.Auth.Register)
		auth.POST("/login", h.Auth.Login)
		auth.POST("/refresh", h.Auth.Refresh)
		auth.GET("/callback", h.Auth.Callback)
	}

	doctors := v1.Group("/doctors")
	{
		doctors.GET("", h.Doctor.List)
		doctors.POST("/complete-profile",
			authMW.Authenticate(),
			authMW.RequireRole(model.UserRoleDoctor),
			h.Doctor.CompleteProfile)
		doctors.GET("/:id", h.Doctor.Get)
		doctors.GET("/:id/schedule", h.Doctor.Schedule)
	}

	protected := v1.Group("")
	protected.Use(authMW.Authenticate())
	{
		appointments := protected.Group("/appointments")
		{
			appointments.POST("", h.Appointment.Book)
			appointments.GET("", h.Appointment.List)
			appointments.GET("/:id", h.Appointment.Get)
			appointments.POST("/:id/cancel", h.Appointment.Cancel)
		}

		patients := protected.Group("/patients")
		{
			patients.GET("/me", h.Patient.Me)
			patients.PUT("/me", h.Patient.Update)
			patients.GET("/me/dashboard", h.Patient.Dashboard)
		}

		prescriptions := protected.Group("/prescriptions")
		{
			prescriptions.GET("", h.Prescription.List)
			prescriptions.GET("/:id", h.Prescription.Get)
		}
	}

	return r
}
