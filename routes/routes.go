package routes

import (
	"net/http"
	"time"

	"sanjudas/handlers"
	"sanjudas/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// HandlerBundle groups the handlers wired at startup.
type HandlerBundle struct {
	Wizard       *handlers.WizardHandler
	Appointments *handlers.AppointmentHandler
}

// RegisterAppointmentRoutes sets up the appointment lifecycle endpoints.
func RegisterAppointmentRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/appointments")
	{
		api.Use(middleware.PatientAuthMiddleware())
		api.GET("", hb.Appointments.List)
		api.GET("/last", hb.Appointments.Last)
		api.POST("/:folio/cancel", hb.Appointments.Cancel)
		api.POST("/:folio/pay", hb.Appointments.Pay)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "san judas appointment gateway"})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterHealthRoute(r)
	RegisterWizardRoutes(r, hb)
	RegisterAppointmentRoutes(r, hb)
}
