package routes

import (
	"time"

	"turmeric-trace/domain"
	"turmeric-trace/internal/api/handlers"
	"turmeric-trace/internal/middleware"
	"turmeric-trace/pkg/user"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Config struct {
	App                 *fiber.App
	UserHandler         handlers.UserHandler
	FarmHandler         handlers.FarmHandler
	LabHandler          handlers.LabHandler
	FactoryHandler      handlers.FactoryHandler
	AdminHandler        handlers.AdminHandler
	NotificationHandler handlers.NotificationHandler
	AttachmentHandler   handlers.AttachmentHandler
	CatalogHandler      handlers.CatalogHandler
	Middleware          middleware.Middleware
	UserService         user.UserService
	Metrics             prometheus.Gatherer
	RequestTimeout      time.Duration
}

func (c *Config) Setup() {
	if c.RequestTimeout <= 0 {
		c.RequestTimeout = 30 * time.Second
	}

	c.App.Use(c.Middleware.CORSMiddleware())
	c.App.Use(c.Middleware.RequestScope(c.RequestTimeout))
	c.GuestRoute()
	c.Auth()
	c.User()
	c.Farmer()
	c.Inspector()
	c.Factory()
	c.Admin()
	c.Shared()
	c.Public()
}

func (c *Config) auth() fiber.Handler {
	return c.Middleware.AuthMiddleware(c.UserService)
}

func (c *Config) GuestRoute() {
	c.App.Get("/api/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "pong"})
	})
	if c.Metrics != nil {
		c.App.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(c.Metrics, promhttp.HandlerOpts{})))
	}
}

func (c *Config) Auth() {
	auth := c.App.Group("/api/v1/auth")
	{
		auth.Post("/login", c.UserHandler.Login)
		auth.Post("/reset-password", c.UserHandler.ResetPassword)
		auth.Post("/logout", c.auth(), c.UserHandler.Logout)
	}
}

func (c *Config) User() {
	user := c.App.Group("/api/v1/users", c.auth())
	{
		user.Get("/me", c.UserHandler.Me)
		user.Get("/preferences", c.UserHandler.GetPreferences)
		user.Put("/preferences", c.UserHandler.SavePreferences)
	}
}

func (c *Config) Farmer() {
	farmer := c.App.Group("/api/v1/farmer", c.auth(), c.Middleware.RoleGate(domain.RoleFarmer))
	farmer.Get("/dashboard", c.FarmHandler.GetDashboard)
	farmer.Get("/crop-types", c.FarmHandler.GetCropTypes)

	farmer.Get("/farms", c.FarmHandler.GetFarms)
	farmer.Post("/farms", c.FarmHandler.CreateFarm)
	farmer.Put("/farms/:id", c.FarmHandler.UpdateFarm)
	farmer.Delete("/farms/:id", c.FarmHandler.DeleteFarm)

	farmer.Get("/batches", c.FarmHandler.GetBatches)
	farmer.Post("/batches", c.FarmHandler.CreateBatch)
	farmer.Put("/batches/:id", c.FarmHandler.UpdateBatch)
	farmer.Delete("/batches/:id", c.FarmHandler.DeleteBatch)

	farmer.Get("/harvests", c.FarmHandler.GetHarvests)
	farmer.Post("/harvests", c.FarmHandler.CreateHarvest)

	farmer.Post("/lab-submissions", c.FarmHandler.SubmitToLab)
	farmer.Post("/factory-submissions", c.FarmHandler.SubmitToFactory)
}

func (c *Config) Inspector() {
	inspector := c.App.Group("/api/v1/inspector", c.auth(), c.Middleware.RoleGate(domain.RoleQualityInspector))
	inspector.Get("/dashboard", c.LabHandler.GetDashboard)
	inspector.Get("/submissions", c.LabHandler.GetSubmissions)
	inspector.Get("/submissions/:id", c.LabHandler.GetSubmission)
	inspector.Put("/submissions/:id", c.LabHandler.RecordResult)
	inspector.Get("/history", c.LabHandler.GetHistory)
}

func (c *Config) Factory() {
	factory := c.App.Group("/api/v1/factory", c.auth(), c.Middleware.RoleGate(domain.RoleFactory))
	factory.Get("/dashboard", c.FactoryHandler.GetDashboard)

	factory.Get("/submissions", c.FactoryHandler.GetSubmissions)
	factory.Put("/submissions/:id", c.FactoryHandler.DecideSubmission)

	factory.Get("/processings", c.FactoryHandler.GetProcessings)
	factory.Post("/processings", c.FactoryHandler.CreateProcessing)
	factory.Put("/processings/:id", c.FactoryHandler.UpdateProcessing)
	factory.Delete("/processings/:id", c.FactoryHandler.DeleteProcessing)

	// Special operations
	factory.Post("/processings/:id/export", c.FactoryHandler.Export)
	factory.Post("/processings/:id/qr", c.FactoryHandler.PublishQR)
	factory.Post("/processings/:id/share", c.FactoryHandler.ShareTrace)

	factory.Get("/exports", c.FactoryHandler.GetExports)
	factory.Get("/exports.csv", c.FactoryHandler.DownloadExports)
}

func (c *Config) Admin() {
	admin := c.App.Group("/api/v1/admin", c.auth(), c.Middleware.RoleGate(domain.RoleAdmin))
	admin.Get("/dashboard", c.AdminHandler.GetDashboard)
	admin.Get("/users", c.AdminHandler.GetUsers)
	admin.Post("/notifications", c.AdminHandler.CreateNotification)

	admin.Get("/references/:collection", c.AdminHandler.GetReferences)
	admin.Post("/references/:collection", c.AdminHandler.CreateReference)
	admin.Put("/references/:collection/:id", c.AdminHandler.UpdateReference)
	admin.Delete("/references/:collection/:id", c.AdminHandler.DeleteReference)
}

// Shared holds routes every dashboard role can reach. Auth is attached per
// route because a group handler would also cover /api/v1/public.
func (c *Config) Shared() {
	shared := c.App.Group("/api/v1")
	shared.Get("/notifications", c.auth(), c.NotificationHandler.GetNotifications)
	shared.Post("/notifications/dismiss-all", c.auth(), c.NotificationHandler.DismissAll)
	shared.Post("/notifications/:id/dismiss", c.auth(), c.NotificationHandler.Dismiss)

	shared.Get("/attachments/:id", c.auth(), c.AttachmentHandler.Download)
	shared.Get("/references/:collection", c.auth(), c.AdminHandler.GetReferences)
}

func (c *Config) Public() {
	public := c.App.Group("/api/v1/public")
	public.Get("/catalog", c.CatalogHandler.GetCatalog)
	public.Get("/trace/:code", c.CatalogHandler.Trace)
	public.Get("/trace/:code/qr.png", c.CatalogHandler.TraceQR)
}
