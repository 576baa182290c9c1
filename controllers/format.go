package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/blogem/campus-feedback/models"
	"github.com/blogem/campus-feedback/services"
)

func formatScore(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// submitStatus maps a submission error to its HTTP status and user-facing flash
func submitStatus(err error) (int, *models.FlashMessage) {
	switch {
	case errors.Is(err, services.ErrEmptyFeedback):
		return http.StatusBadRequest, models.NewFlash("warning", "Please enter some feedback before submitting!")
	case errors.Is(err, services.ErrInvalidFeedback):
		return http.StatusBadRequest, models.NewFlash("error", err.Error())
	case errors.Is(err, services.ErrClassification):
		return http.StatusBadGateway, models.NewFlash("error", "Could not analyse your feedback, please retry.")
	case errors.Is(err, services.ErrStorage):
		return http.StatusServiceUnavailable, models.NewFlash("error", "Could not save, please retry.")
	default:
		return http.StatusInternalServerError, models.NewFlash("error", "Something went wrong, please retry.")
	}
}
