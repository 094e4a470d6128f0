package handlers

import (
	"errors"
	"net/http"

	"sanjudas/hospital"
	"sanjudas/middleware"
	"sanjudas/services/wizard"
	"sanjudas/utils"

	"github.com/gin-gonic/gin"
)

// respondError maps the error taxonomy onto HTTP responses. Every component
// boundary catches its own errors; by the time one reaches here it only needs
// translating, never handling.
func respondError(c *gin.Context, err error) {
	var authErr *hospital.AuthError
	if errors.As(err, &authErr) {
		// Session-expired: clear the stored session context so the client's
		// logout collaborator starts from a clean slate.
		if session, ok := middleware.SessionFromContext(c); ok {
			_ = utils.ClearPatientSession(utils.GetSessionCacheClient(), session.PatientID)
		}
		utils.JSONSessionExpired(c, authErr.Message)
		return
	}

	var validationErr *hospital.ValidationError
	if errors.As(err, &validationErr) {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", validationErr.Message)
		return
	}

	var conflictErr *hospital.ConflictError
	if errors.As(err, &conflictErr) {
		// Business-rule rejections are surfaced verbatim, never retried.
		utils.JSONError(c, http.StatusConflict, conflictErr.Message, "")
		return
	}

	var notFoundErr *hospital.NotFoundError
	if errors.As(err, &notFoundErr) {
		utils.JSONError(c, http.StatusNotFound, "Not found", notFoundErr.Error())
		return
	}

	var wizardErr *wizard.WizardError
	if errors.As(err, &wizardErr) {
		switch wizardErr.Code {
		case "sessionNotFound":
			utils.JSONError(c, http.StatusNotFound, wizardErr.Message, "")
		case "busy", "submitInFlight":
			utils.JSONError(c, http.StatusTooManyRequests, wizardErr.Message, "")
		case "noSlots":
			// Distinct signal so the calendar clears the date and stays put.
			c.JSON(http.StatusConflict, gin.H{"error": wizardErr.Message, "code": wizardErr.Code})
		default:
			utils.JSONError(c, http.StatusBadRequest, wizardErr.Message, "")
		}
		return
	}

	var fetchErr *hospital.FetchError
	if errors.As(err, &fetchErr) {
		// Recoverable by retry; prior state is untouched.
		utils.JSONError(c, http.StatusBadGateway, "Hospital backend unavailable, please retry", fetchErr.Error())
		return
	}

	utils.JSONError(c, http.StatusInternalServerError, "Internal error", err.Error())
}
