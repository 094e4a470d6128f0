package handlers

import (
	"net/http"

	"sanjudas/middleware"
	"sanjudas/models"
	"sanjudas/services/appointment"
	"sanjudas/utils"

	"github.com/gin-gonic/gin"
)

// AppointmentHandler exposes the appointment lifecycle tracker.
type AppointmentHandler struct {
	Service appointment.Service
}

func NewAppointmentHandler(svc appointment.Service) *AppointmentHandler {
	return &AppointmentHandler{Service: svc}
}

// List returns the patient's appointments. At most one filter dimension is
// honored per request; status wins over date range, which wins over doctor.
func (h *AppointmentHandler) List(c *gin.Context) {
	session, ok := middleware.SessionFromContext(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "Insufficient authorization", "")
		return
	}

	filter := models.AppointmentFilter{
		FromDate: c.Query("desde"),
		ToDate:   c.Query("hasta"),
		DoctorID: c.Query("idDoctor"),
	}
	if raw := c.Query("estatus"); raw != "" {
		status, err := models.ParseStatus(raw)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "invalid status filter", err.Error())
			return
		}
		filter.Status = status
	}

	list, err := h.Service.List(c.Request.Context(), session, filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"appointments": list})
}

// Last returns the patient's next upcoming appointment, or null when none.
func (h *AppointmentHandler) Last(c *gin.Context) {
	session, ok := middleware.SessionFromContext(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "Insufficient authorization", "")
		return
	}

	last, err := h.Service.Last(c.Request.Context(), session)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"appointment": last})
}

// Cancel cancels an appointment; the response carries any server-computed
// refund.
func (h *AppointmentHandler) Cancel(c *gin.Context) {
	session, ok := middleware.SessionFromContext(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "Insufficient authorization", "")
		return
	}

	result, err := h.Service.Cancel(c.Request.Context(), session, c.Param("folio"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Pay posts a (possibly partial) payment against an appointment.
func (h *AppointmentHandler) Pay(c *gin.Context) {
	session, ok := middleware.SessionFromContext(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "Insufficient authorization", "")
		return
	}
	var input struct {
		Amount float64 `json:"amount"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	result, err := h.Service.Pay(c.Request.Context(), session, c.Param("folio"), input.Amount)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
