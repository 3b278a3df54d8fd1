package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vollmed/clinic-api/internal/domain"
	"github.com/vollmed/clinic-api/internal/handler/middleware"
	"github.com/vollmed/clinic-api/pkg/auth"
	"github.com/vollmed/clinic-api/pkg/metrics"
)

type RouterDeps struct {
	JWTManager  *auth.JWTManager
	Collector   *metrics.Collector
	Auth        *AuthHandler
	Doctor      *DoctorHandler
	Patient     *PatientHandler
	Appointment *AppointmentHandler
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.Metrics(deps.Collector))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(metrics.MetricsHandler()))

	api := r.Group("/api/v1")

	api.POST("/auth/login", deps.Auth.Login)
	api.POST("/auth/refresh", deps.Auth.Refresh)

	protected := api.Group("", middleware.Authenticate(deps.JWTManager))

	staff := middleware.RequireRoles(domain.RoleAdmin, domain.RoleReceptionist)

	protected.POST("/auth/users", middleware.RequireRoles(domain.RoleAdmin), deps.Auth.RegisterUser)

	doctors := protected.Group("/doctors")
	{
		doctors.GET("", deps.Doctor.List)
		doctors.GET("/:id", deps.Doctor.Get)
		doctors.POST("", staff, deps.Doctor.Register)
		doctors.PUT("/:id", staff, deps.Doctor.Update)
		doctors.DELETE("/:id", staff, deps.Doctor.Deactivate)
	}

	patients := protected.Group("/patients")
	{
		patients.GET("", staff, deps.Patient.List)
		patients.GET("/:id", deps.Patient.Get)
		patients.POST("", staff, deps.Patient.Register)
		patients.PUT("/:id", staff, deps.Patient.Update)
		patients.DELETE("/:id", staff, deps.Patient.Deactivate)
	}

	appointments := protected.Group("/appointments")
	{
		appointments.POST("", deps.Appointment.Book)
		appointments.DELETE("", deps.Appointment.Cancel)
		appointments.GET("/:id", deps.Appointment.Get)
	}

	return r
}
