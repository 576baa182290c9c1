package controllers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/blogem/campus-feedback/models"
	"github.com/blogem/campus-feedback/services"
)

// maxJSONBody bounds API request bodies
const maxJSONBody = 64 << 10

// APIController handles the public JSON API
type APIController struct {
	services *services.Services
	logger   *zap.Logger
}

// NewAPIController creates a new API controller
func NewAPIController(services *services.Services, logger *zap.Logger) *APIController {
	return &APIController{
		services: services,
		logger:   logger,
	}
}

type apiResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// SubmitFeedback handles POST /api/feedback
func (c *APIController) SubmitFeedback(w http.ResponseWriter, r *http.Request) {
	var form models.FeedbackForm
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxJSONBody)).Decode(&form); err != nil {
		writeJSON(w, http.StatusBadRequest, apiResponse{Message: "invalid JSON body"})
		return
	}

	record, err := c.services.Feedback.Submit(r.Context(), &form)
	if err != nil {
		status, flash := submitStatus(err)
		writeJSON(w, status, apiResponse{Message: flash.Message})
		return
	}

	writeJSON(w, http.StatusCreated, apiResponse{Success: true, Data: record})
}

// Summary handles GET /api/summary
func (c *APIController) Summary(w http.ResponseWriter, r *http.Request) {
	data := c.services.Feedback.Dashboard(r.Context())
	if data.Degraded {
		writeJSON(w, http.StatusOK, apiResponse{Success: true, Message: "feedback could not be loaded", Data: data})
		return
	}
	writeJSON(w, http.StatusOK, apiResponse{Success: true, Data: data})
}
