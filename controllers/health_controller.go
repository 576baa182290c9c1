package controllers

import (
	"net/http"

	"github.com/blogem/campus-feedback/services"
)

// HealthController reports liveness
type HealthController struct {
	services *services.Services
}

// NewHealthController creates a new health controller
func NewHealthController(services *services.Services) *HealthController {
	return &HealthController{services: services}
}

// Check handles GET /health
func (c *HealthController) Check(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":     "healthy",
		"service":    "campus-feedback",
		"classifier": c.services.Feedback.ClassifierName(),
	})
}
