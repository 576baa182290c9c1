package controllers

import (
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/blogem/campus-feedback/models"
	"github.com/blogem/campus-feedback/services"
)

// DashboardController handles the public form and aggregate view
type DashboardController struct {
	services *services.Services
	logger   *zap.Logger
}

// NewDashboardController creates a new dashboard controller
func NewDashboardController(services *services.Services, logger *zap.Logger) *DashboardController {
	return &DashboardController{
		services: services,
		logger:   logger,
	}
}

type dashboardPage struct {
	Title       string
	CurrentPage string
	Flash       *models.FlashMessage
	Form        models.FeedbackForm
	Categories  []models.Category
	Sentiments  []models.Sentiment
	Data        *services.DashboardData
}

// Index handles GET /
func (c *DashboardController) Index(w http.ResponseWriter, r *http.Request) {
	c.render(w, r, http.StatusOK, popFlash(r), models.FeedbackForm{Category: string(models.CategoryClassroom)})
}

// Submit handles POST /feedback
func (c *DashboardController) Submit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}

	form := models.FeedbackForm{
		Name:     r.FormValue("name"),
		Category: r.FormValue("category"),
		Feedback: r.FormValue("feedback"),
	}

	record, err := c.services.Feedback.Submit(r.Context(), &form)
	if err != nil {
		status, flash := submitStatus(err)
		c.render(w, r, status, flash, form)
		return
	}

	setFlash(r, models.NewFlash("success",
		fmt.Sprintf("Feedback submitted! Sentiment: %s %s", record.Sentiment, record.Sentiment.Emoji())))

	// Redirect after successful submission
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (c *DashboardController) render(w http.ResponseWriter, r *http.Request, status int, flash *models.FlashMessage, form models.FeedbackForm) {
	data := c.services.Feedback.Dashboard(r.Context())
	if data.Degraded && flash == nil {
		flash = models.NewFlash("warning", "Could not load feedback, showing an empty dashboard.")
	}

	page := dashboardPage{
		Title:       "Campus Feedback",
		CurrentPage: "dashboard",
		Flash:       flash,
		Form:        form,
		Categories:  models.Categories,
		Sentiments:  models.Sentiments,
		Data:        data,
	}

	if err := renderTemplateWithStatus(w, status, "dashboard", "templates/dashboard.html", page); err != nil {
		c.logger.Error("Failed to render dashboard", zap.Error(err))
	}
}
