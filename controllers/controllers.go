package controllers

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"

	"gitea.com/go-chi/session"
	"go.uber.org/zap"

	"github.com/blogem/campus-feedback/authenticator"
	"github.com/blogem/campus-feedback/models"
	"github.com/blogem/campus-feedback/services"
)

//go:embed templates/*.html
var templateFS embed.FS

const flashSessionKey = "flash"

var templateFuncs = template.FuncMap{
	"add": func(a, b int) int { return a + b },
	"sub": func(a, b int) int { return a - b },
	"eq":  func(a, b interface{}) bool { return a == b },
	"barWidth": func(count, max int) int {
		if max == 0 {
			return 0
		}
		return count * 100 / max
	},
	"score": formatScore,
}

// renderTemplate creates a template set and renders it with the provided data
func renderTemplate(w http.ResponseWriter, templateName string, pageTemplate string, data interface{}) error {
	return renderTemplateWithStatus(w, http.StatusOK, templateName, pageTemplate, data)
}

// renderTemplateWithStatus creates a template set and renders it with the provided data and status code.
// Output is buffered so a failing template never sends a partial page.
func renderTemplateWithStatus(w http.ResponseWriter, statusCode int, templateName string, pageTemplate string, data interface{}) error {
	tmpl, err := template.New(templateName).Funcs(templateFuncs).ParseFS(templateFS, "templates/layout.html", pageTemplate)
	if err != nil {
		http.Error(w, "Failed to parse template: "+err.Error(), http.StatusInternalServerError)
		return err
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout.html", data); err != nil {
		http.Error(w, "Failed to render template: "+err.Error(), http.StatusInternalServerError)
		return err
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(statusCode)
	_, err = buf.WriteTo(w)
	return err
}

// setFlash stores a message to show on the next page view
func setFlash(r *http.Request, flash *models.FlashMessage) {
	_ = session.GetSession(r).Set(flashSessionKey, *flash)
}

// popFlash returns and clears the pending flash message, if any
func popFlash(r *http.Request) *models.FlashMessage {
	sess := session.GetSession(r)
	flash, ok := sess.Get(flashSessionKey).(models.FlashMessage)
	if !ok {
		return nil
	}
	_ = sess.Delete(flashSessionKey)
	return &flash
}

// Controllers holds all controller instances
type Controllers struct {
	Dashboard *DashboardController
	Admin     *AdminController
	API       *APIController
	Health    *HealthController
}

// NewControllers creates and initializes all controller instances
func NewControllers(services *services.Services, verifier authenticator.Verifier, logger *zap.Logger) *Controllers {
	return &Controllers{
		Dashboard: NewDashboardController(services, logger),
		Admin:     NewAdminController(services, verifier, logger),
		API:       NewAPIController(services, logger),
		Health:    NewHealthController(services),
	}
}
