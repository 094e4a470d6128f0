package routes

import (
	"sanjudas/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterWizardRoutes registers all endpoints for the booking wizard.
func RegisterWizardRoutes(r *gin.Engine, hb *HandlerBundle) {
	wizard := r.Group("/api/wizard")
	{
		wizard.Use(middleware.PatientAuthMiddleware())
		wizard.POST("/session", hb.Wizard.StartSession)
		wizard.PUT("/session/:sessionID/specialty", hb.Wizard.SelectSpecialty)
		wizard.PUT("/session/:sessionID/doctor", hb.Wizard.SelectDoctor)
		wizard.PUT("/session/:sessionID/date", hb.Wizard.SelectDate)
		wizard.PUT("/session/:sessionID/time", hb.Wizard.SelectTime)
		wizard.PUT("/session/:sessionID/back", hb.Wizard.Back)
		wizard.GET("/session/:sessionID", hb.Wizard.GetSession)
		wizard.POST("/session/:sessionID/confirm", hb.Wizard.Confirm)
		wizard.DELETE("/session/:sessionID", hb.Wizard.AbandonSession)
	}
}
