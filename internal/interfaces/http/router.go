package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/emmebi/gestione-ore/internal/application/auth"
	"github.com/emmebi/gestione-ore/internal/application/registry"
	"github.com/emmebi/gestione-ore/internal/application/report"
	"github.com/emmebi/gestione-ore/internal/application/timeentry"
)

// RouterDeps dipendenze per il router.
type RouterDeps struct {
	AuthUC        *auth.AuthUseCase
	RegistryUC    *registry.UseCase
	TimeEntryUC   *timeentry.UseCase
	ReportUC      *report.UseCase
	ExcelExporter report.Exporter
	PDFExporter   report.Exporter
	SessionSecret string
}

// Router registra le rotte dell'API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (pubblico)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/login/admin", authHandler.LoginAdmin)
	authGroup.Post("/login/employee", authHandler.LoginEmployee)

	// Rotte protette (richiedono Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.SessionSecret))

	// Cantieri: l'elenco serve anche al dipendente per comporre la giornata
	sites := protected.Group("/sites")
	siteHandler := NewSiteHandler(deps.RegistryUC)
	sites.Get("/", siteHandler.List)

	// Inserimento ore (il dipendente lavora sempre sulla propria giornata)
	days := protected.Group("/days")
	timeEntryHandler := NewTimeEntryHandler(deps.TimeEntryUC)
	days.Get("/:date", timeEntryHandler.GetDay)
	days.Put("/:date/status", timeEntryHandler.SetStatus)
	days.Post("/:date/activities/cantiere", timeEntryHandler.AddSiteActivity)
	days.Post("/:date/activities/pst", timeEntryHandler.AddGenericActivity)
	days.Patch("/:date/activities/:activityId", timeEntryHandler.UpdateActivity)
	days.Delete("/:date/activities/:activityId", timeEntryHandler.RemoveActivity)
	days.Post("/:date/save", timeEntryHandler.SaveDay)
	days.Get("/:date/state", timeEntryHandler.SaveStateHandler)

	// Da qui in poi solo amministratore
	admin := protected.Group("/", RequireAdmin())

	admin.Put("/auth/master-password", authHandler.ChangeMasterPassword)

	employees := admin.Group("/employees")
	employeeHandler := NewEmployeeHandler(deps.RegistryUC)
	employees.Get("/", employeeHandler.List)
	employees.Post("/", employeeHandler.Create)
	employees.Put("/:id", employeeHandler.Update)
	employees.Delete("/:id", employeeHandler.Delete)

	sites.Post("/", RequireAdmin(), siteHandler.Create)
	sites.Put("/:id", RequireAdmin(), siteHandler.Update)
	sites.Delete("/:id", RequireAdmin(), siteHandler.Delete)

	// Revisione giornate e report
	adminArea := admin.Group("/admin")
	adminArea.Get("/employees/:id/days/:date", timeEntryHandler.AdminGetDay)
	adminArea.Put("/employees/:id/days/:date", timeEntryHandler.AdminReplaceDay)

	reportHandler := NewReportHandler(deps.ReportUC, deps.ExcelExporter, deps.PDFExporter)
	adminArea.Get("/riepilogo", reportHandler.Riepilogo)
	adminArea.Get("/riepilogo/:year/:month", reportHandler.RiepilogoMonth)
	adminArea.Get("/export/:year/:month", reportHandler.ExportMonth)
	adminArea.Get("/statistics", reportHandler.Statistics)
}
