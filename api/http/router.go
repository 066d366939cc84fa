package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/dwatsonpk/storefront/api/http/handlers"
	securityjwt "github.com/dwatsonpk/storefront/pkg/security/jwt"
)

// Handlers groups everything the router mounts.
type Handlers struct {
	Auth    *handlers.AuthHandler
	Health  *handlers.HealthHandler
	Catalog *handlers.CatalogHandler
	Cart    *handlers.CartHandler
	Orders  *handlers.OrderHandler
	Media   *handlers.MediaHandler
	CMS     *handlers.CMSHandler
	Reports *handlers.ReportHandler
	Contact *handlers.ContactHandler
	Pages   *handlers.PagesHandler
}

// Register wires all HTTP routes onto the given Fiber app. API routes are
// mounted first; the static frontend and its catch-all go last so they never
// shadow the API.
func Register(app *fiber.App, h Handlers, authMW fiber.Handler) {
	api := app.Group("/api")

	// Health and readiness endpoints for probes/monitoring
	api.Get("/health", h.Health.Health)
	api.Get("/ready", h.Health.Ready)

	a := api.Group("/auth")
	a.Post("/register", h.Auth.Register)
	a.Post("/login", h.Auth.Login)
	a.Get("/me", authMW, h.Auth.Me)

	// Public storefront reads
	pub := api.Group("/public")
	pub.Get("/departments", h.Catalog.ListDepartments)
	pub.Get("/categories", h.Catalog.ListCategories)
	pub.Get("/products", h.Catalog.ListProducts)
	pub.Get("/products/:id", h.Catalog.GetProduct)

	api.Get("/sections", h.CMS.ListSections)
	api.Get("/sections/:key", h.CMS.GetSection)
	api.Get("/sliders", h.CMS.ListSliders)
	api.Get("/banners", h.CMS.ListBanners)
	api.Get("/media/:id/url", h.Media.ResolveURL)
	api.Post("/contact", h.Contact.Submit)

	// Authenticated customer surface
	cart := api.Group("/cart", authMW)
	cart.Get("/", h.Cart.Get)
	cart.Post("/items", h.Cart.AddItem)
	cart.Put("/items/:productId", h.Cart.SetQuantity)
	cart.Delete("/items/:productId", h.Cart.RemoveItem)
	cart.Delete("/", h.Cart.Clear)

	orders := api.Group("/orders", authMW)
	orders.Post("/", h.Orders.Checkout)
	orders.Get("/", h.Orders.ListMine)
	orders.Get("/:id", h.Orders.GetMine)

	// Admin panel
	admin := api.Group("/admin", authMW, securityjwt.RequireAdmin())
	admin.Get("/departments", h.Catalog.AdminListDepartments)
	admin.Post("/departments", h.Catalog.CreateDepartment)
	admin.Put("/departments/:id", h.Catalog.UpdateDepartment)
	admin.Delete("/departments/:id", h.Catalog.DeleteDepartment)

	admin.Get("/categories", h.Catalog.AdminListCategories)
	admin.Post("/categories", h.Catalog.CreateCategory)
	admin.Put("/categories/:id", h.Catalog.UpdateCategory)
	admin.Delete("/categories/:id", h.Catalog.DeleteCategory)

	admin.Get("/products", h.Catalog.AdminListProducts)
	admin.Post("/products", h.Catalog.CreateProduct)
	admin.Put("/products/:id", h.Catalog.UpdateProduct)
	admin.Delete("/products/:id", h.Catalog.DeleteProduct)

	admin.Get("/orders", h.Orders.AdminList)
	admin.Get("/orders/:id", h.Orders.AdminGet)
	admin.Put("/orders/:id/status", h.Orders.AdminUpdateStatus)

	admin.Post("/media", h.Media.Upload)
	admin.Get("/media", h.Media.List)
	admin.Delete("/media/:id", h.Media.Delete)

	admin.Get("/sections", h.CMS.AdminListSections)
	admin.Get("/sections/:key", h.CMS.AdminGetSection)
	admin.Put("/sections/:key", h.CMS.UpsertSection)
	admin.Delete("/sections/:key", h.CMS.DeleteSection)

	admin.Get("/sliders", h.CMS.AdminListSliders)
	admin.Post("/sliders", h.CMS.CreateSlider)
	admin.Put("/sliders/:id", h.CMS.UpdateSlider)
	admin.Delete("/sliders/:id", h.CMS.DeleteSlider)

	admin.Get("/banners", h.CMS.AdminListBanners)
	admin.Post("/banners", h.CMS.CreateBanner)
	admin.Put("/banners/:id", h.CMS.UpdateBanner)
	admin.Delete("/banners/:id", h.CMS.DeleteBanner)

	admin.Get("/reports/sales", h.Reports.Sales)
	admin.Get("/reports/top-products", h.Reports.TopProducts)
	admin.Get("/reports/customers", h.Reports.Customers)

	admin.Get("/contact", h.Contact.AdminList)

	// Static storefront pages
	if h.Pages != nil && h.Pages.Enabled() {
		registerPages(app, h.Pages)
	}
}

func registerPages(app *fiber.App, pages *handlers.PagesHandler) {
	app.Get("/admin", pages.Page("admin.html"))
	app.Get("/cart", pages.Page("cart.html"))
	app.Get("/products", pages.Page("products.html"))
	app.Get("/about", pages.Page("about.html"))
	app.Get("/contact", pages.Page("contact.html"))
	app.Get("/login", pages.Page("login.html"))
	app.Get("/register", pages.Page("register.html"))
	app.Get("/department/:id", pages.DetailPage("department.html"))
	app.Get("/category/:id", pages.DetailPage("category.html"))
	app.Get("/product/:id", pages.DetailPage("product.html"))
	app.Static("/", pages.Dir())
	app.Use(pages.Index)
}
