package handlers

import (
	"net/http"

	"sanjudas/middleware"
	"sanjudas/services/wizard"
	"sanjudas/utils"

	"github.com/gin-gonic/gin"
)

// WizardHandler exposes the booking wizard state machine.
type WizardHandler struct {
	Service wizard.Service
}

func NewWizardHandler(svc wizard.Service) *WizardHandler {
	return &WizardHandler{Service: svc}
}

// StartSession opens a new wizard session at specialty selection.
func (h *WizardHandler) StartSession(c *gin.Context) {
	session, ok := middleware.SessionFromContext(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "Insufficient authorization", "")
		return
	}

	resp, err := h.Service.Start(c.Request.Context(), session)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// SelectSpecialty handles the step-1 selection event.
func (h *WizardHandler) SelectSpecialty(c *gin.Context) {
	session, ok := middleware.SessionFromContext(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "Insufficient authorization", "")
		return
	}
	var input struct {
		SpecialtyID string `json:"specialtyId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	resp, err := h.Service.SelectSpecialty(c.Request.Context(), session, c.Param("sessionID"), input.SpecialtyID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// SelectDoctor handles the step-2 selection event.
func (h *WizardHandler) SelectDoctor(c *gin.Context) {
	session, ok := middleware.SessionFromContext(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "Insufficient authorization", "")
		return
	}
	var input struct {
		DoctorID string `json:"doctorId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	resp, err := h.Service.SelectDoctor(c.Request.Context(), session, c.Param("sessionID"), input.DoctorID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// SelectDate handles the step-3 selection event.
func (h *WizardHandler) SelectDate(c *gin.Context) {
	session, ok := middleware.SessionFromContext(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "Insufficient authorization", "")
		return
	}
	var input struct {
		Date string `json:"date" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	resp, err := h.Service.SelectDate(c.Request.Context(), session, c.Param("sessionID"), input.Date)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// SelectTime handles the step-4 selection event.
func (h *WizardHandler) SelectTime(c *gin.Context) {
	session, ok := middleware.SessionFromContext(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "Insufficient authorization", "")
		return
	}
	var input struct {
		Time string `json:"time" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	resp, err := h.Service.SelectTime(c.Request.Context(), session, c.Param("sessionID"), input.Time)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Back moves the wizard one step backwards.
func (h *WizardHandler) Back(c *gin.Context) {
	resp, err := h.Service.Back(c.Request.Context(), c.Param("sessionID"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetSession returns the current wizard state.
func (h *WizardHandler) GetSession(c *gin.Context) {
	resp, err := h.Service.Get(c.Request.Context(), c.Param("sessionID"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Confirm submits the completed draft as a create-appointment request.
func (h *WizardHandler) Confirm(c *gin.Context) {
	session, ok := middleware.SessionFromContext(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "Insufficient authorization", "")
		return
	}

	created, err := h.Service.Submit(c.Request.Context(), session, c.Param("sessionID"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"appointment": created})
}

// AbandonSession discards the wizard session and its draft.
func (h *WizardHandler) AbandonSession(c *gin.Context) {
	if err := h.Service.Abandon(c.Request.Context(), c.Param("sessionID")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
