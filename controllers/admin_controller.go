package controllers

import (
	"errors"
	"net/http"
	"net/url"

	"go.uber.org/zap"

	"github.com/blogem/campus-feedback/authenticator"
	"github.com/blogem/campus-feedback/middleware"
	"github.com/blogem/campus-feedback/models"
	"github.com/blogem/campus-feedback/services"
	"github.com/blogem/campus-feedback/userctx"
)

const (
	exportFilename = "campus_feedback.csv"
	recentAuditMax = 10
)

// AdminController handles the password-gated admin view
type AdminController struct {
	services *services.Services
	verifier authenticator.Verifier
	logger   *zap.Logger
}

// NewAdminController creates a new admin controller
func NewAdminController(services *services.Services, verifier authenticator.Verifier, logger *zap.Logger) *AdminController {
	return &AdminController{
		services: services,
		verifier: verifier,
		logger:   logger,
	}
}

type adminPage struct {
	Title       string
	CurrentPage string
	Flash       *models.FlashMessage
	Table       *services.AdminTable
	Categories  []models.Category
	Sentiments  []models.Sentiment
	SortFields  []models.SortField
	ExportQuery string
	Audit       []models.AuditLogEntry
}

// Index handles GET /admin. Anonymous clients get the login form.
func (c *AdminController) Index(w http.ResponseWriter, r *http.Request) {
	if userctx.GetActor(r.Context()) != userctx.AdminActor {
		c.renderLogin(w, http.StatusOK, popFlash(r))
		return
	}

	filter := models.ParseAdminFilter(r.URL.Query())
	table := c.services.Admin.Records(r.Context(), filter)

	flash := popFlash(r)
	if table.Degraded && flash == nil {
		flash = models.NewFlash("warning", "Could not load feedback, showing an empty table.")
	}

	audit, err := c.services.Admin.RecentAudit(r.Context(), recentAuditMax)
	if err != nil {
		c.logger.Warn("Failed to load audit log", zap.Error(err))
	}

	page := adminPage{
		Title:       "Admin View",
		CurrentPage: "admin",
		Flash:       flash,
		Table:       table,
		Categories:  models.Categories,
		Sentiments:  models.Sentiments,
		SortFields:  models.SortFields,
		ExportQuery: exportQuery(table.Filter),
		Audit:       audit,
	}

	if err := renderTemplate(w, "admin", "templates/admin.html", page); err != nil {
		c.logger.Error("Failed to render admin view", zap.Error(err))
	}
}

// Login handles POST /admin/login
func (c *AdminController) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}

	err := middleware.AdminLoginGate(w, r, c.verifier).Login(r.FormValue("password"))
	switch {
	case errors.Is(err, authenticator.ErrInvalidPassword):
		userctx.RecordAuditAction(r.Context(), models.AuditActionLoginFailed, userctx.AnonymousActor)
		c.logger.Warn("Failed admin login", zap.String("ip", middleware.ClientIP(r)))
		c.renderLogin(w, http.StatusUnauthorized, models.NewFlash("error", "Incorrect password!"))
		return
	case err != nil:
		c.logger.Error("Failed to update admin session", zap.Error(err))
		http.Error(w, "Failed to sign in", http.StatusInternalServerError)
		return
	}

	userctx.RecordAuditAction(r.Context(), models.AuditActionLogin, userctx.AdminActor)
	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}

// Logout handles POST /admin/logout
func (c *AdminController) Logout(w http.ResponseWriter, r *http.Request) {
	actor := userctx.GetActor(r.Context())
	if err := middleware.AdminGate(r, c.verifier).Logout(); err != nil {
		c.logger.Error("Failed to clear admin session", zap.Error(err))
		http.Error(w, "Failed to sign out", http.StatusInternalServerError)
		return
	}

	userctx.RecordAuditAction(r.Context(), models.AuditActionLogout, actor)
	setFlash(r, models.NewFlash("info", "Signed out."))
	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}

// Export handles GET /admin/export.csv. It writes every record in the table's sort order.
func (c *AdminController) Export(w http.ResponseWriter, r *http.Request) {
	filter := models.ParseAdminFilter(r.URL.Query())
	filter.Sentiments = nil
	filter.Categories = nil

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+exportFilename+`"`)

	n, err := c.services.Admin.ExportCSV(r.Context(), w, filter)
	if err != nil {
		c.logger.Error("Failed to export feedback", zap.Error(err))
		if errors.Is(err, services.ErrLoad) {
			w.Header().Del("Content-Disposition")
			http.Error(w, "Could not load feedback, please retry.", http.StatusServiceUnavailable)
		}
		return
	}

	userctx.RecordAuditAction(r.Context(), models.AuditActionExport, "")
	c.logger.Info("Feedback exported", zap.Int("rows", n))
}

func (c *AdminController) renderLogin(w http.ResponseWriter, status int, flash *models.FlashMessage) {
	page := adminPage{
		Title:       "Admin Login",
		CurrentPage: "admin",
		Flash:       flash,
	}
	if err := renderTemplateWithStatus(w, status, "admin_login", "templates/admin_login.html", page); err != nil {
		c.logger.Error("Failed to render admin login", zap.Error(err))
	}
}

func exportQuery(filter models.AdminFilter) string {
	order := "asc"
	if filter.Descending {
		order = "desc"
	}
	return url.Values{"sort": {string(filter.SortBy)}, "order": {order}}.Encode()
}
