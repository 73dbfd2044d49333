package handler

import (
	"github.com/storefront/backend/internal/application/dispatch"
	appcatalog "github.com/storefront/backend/internal/application/catalog"
	appdiscount "github.com/storefront/backend/internal/application/discount"
	appidentity "github.com/storefront/backend/internal/application/identity"
	"github.com/storefront/backend/internal/domain/identity"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/interfaces/http/middleware"
	"github.com/storefront/backend/internal/interfaces/http/router"
	"go.uber.org/zap"
)

// Routes maps every endpoint onto its dispatcher request
type Routes struct {
	dispatcher *dispatch.Dispatcher
	tokens     middleware.TokenValidator
	system     *SystemHandler
	logger     *zap.Logger
}

// NewRoutes creates the route table
func NewRoutes(d *dispatch.Dispatcher, tokens middleware.TokenValidator, system *SystemHandler, log *zap.Logger) *Routes {
	return &Routes{dispatcher: d, tokens: tokens, system: system, logger: log}
}

// Groups returns every route group, ready to be registered on a router
func (r *Routes) Groups() []router.RouteRegistrar {
	return []router.RouteRegistrar{
		r.Authentication(),
		r.Users(),
		r.Products(),
		r.Discounts(),
		r.Statuses(),
		r.System(),
	}
}

// Authentication serves registration, login and the public owner lookup
func (r *Routes) Authentication() *router.DomainGroup {
	d := r.dispatcher
	return router.NewDomainGroup("authentication", "/authentication").
		POST("/register", Handle[appidentity.RegisterCommand, appidentity.AuthenticationResponse](
			d, FromBody(RegisterRequest.command), Same)).
		POST("/login", Handle[appidentity.LoginQuery, appidentity.AuthenticationResponse](
			d, FromBody(LoginRequest.query), Same)).
		GET("/getuserbyid/:id", Handle[appidentity.GetUserSummaryQuery, appidentity.UserSummaryResponse](
			d, FromID("id", func(id int64) appidentity.GetUserSummaryQuery {
				return appidentity.GetUserSummaryQuery{ID: id}
			}), Same))
}

// Users serves user management. Reads need any signed-in user, writes need an admin.
func (r *Routes) Users() *router.DomainGroup {
	d := r.dispatcher
	admin := middleware.RequireRole(identity.RoleAdmin)
	return router.NewDomainGroup("users", "/users").
		Use(middleware.Authenticate(r.tokens, r.logger)).
		GET("", Handle[appidentity.ListUsersQuery, []appidentity.UserResponse](
			d, NoParams[appidentity.ListUsersQuery](), Same)).
		GET("/:id", Handle[appidentity.GetUserByIDQuery, appidentity.UserResponse](
			d, FromID("id", func(id int64) appidentity.GetUserByIDQuery {
				return appidentity.GetUserByIDQuery{ID: id}
			}), Same)).
		POST("", admin, Handle[appidentity.AddUserCommand, appidentity.UserResponse](
			d, FromBody(AddUserRequest.command), Same)).
		PUT("", admin, Handle[appidentity.UpdateUserCommand, appidentity.UserResponse](
			d, FromBody(UpdateUserRequest.command), Same)).
		DELETE("/:id", admin, Handle[appidentity.DeleteUserCommand, shared.Unit](
			d, FromID("id", func(id int64) appidentity.DeleteUserCommand {
				return appidentity.DeleteUserCommand{ID: id}
			}), Empty))
}

// Products serves the catalog. Reads need any signed-in user, writes need an admin.
func (r *Routes) Products() *router.DomainGroup {
	d := r.dispatcher
	admin := middleware.RequireRole(identity.RoleAdmin)
	return router.NewDomainGroup("catalog", "/products").
		Use(middleware.Authenticate(r.tokens, r.logger)).
		GET("", Handle[appcatalog.ListProductsQuery, []appcatalog.ProductResponse](
			d, NoParams[appcatalog.ListProductsQuery](), Same)).
		GET("/:id", Handle[appcatalog.GetProductByIDQuery, appcatalog.ProductResponse](
			d, FromID("id", func(id int64) appcatalog.GetProductByIDQuery {
				return appcatalog.GetProductByIDQuery{ID: id}
			}), Same)).
		GET("/:id/owner", Handle[appcatalog.GetProductOwnerQuery, appcatalog.OwnerResponse](
			d, FromID("id", func(id int64) appcatalog.GetProductOwnerQuery {
				return appcatalog.GetProductOwnerQuery{ID: id}
			}), Same)).
		POST("", admin, Handle[appcatalog.AddProductCommand, appcatalog.ProductResponse](
			d, FromBody(AddProductRequest.command), Same)).
		PUT("", admin, Handle[appcatalog.UpdateProductCommand, appcatalog.ProductResponse](
			d, FromBody(UpdateProductRequest.command), Same)).
		DELETE("/:id", admin, Handle[appcatalog.DeleteProductCommand, shared.Unit](
			d, FromID("id", func(id int64) appcatalog.DeleteProductCommand {
				return appcatalog.DeleteProductCommand{ID: id}
			}), Empty))
}

// Discounts serves the companion discount lookup
func (r *Routes) Discounts() *router.DomainGroup {
	return router.NewDomainGroup("discount", "/discount").
		GET("/:productId", Handle[appdiscount.GetDiscountQuery, appdiscount.DiscountResponse](
			r.dispatcher, FromID("productId", func(id int64) appdiscount.GetDiscountQuery {
				return appdiscount.GetDiscountQuery{ProductID: id}
			}), Same))
}

// Statuses serves the companion status lookup
func (r *Routes) Statuses() *router.DomainGroup {
	return router.NewDomainGroup("status", "/status").
		GET("/:productId", Handle[appdiscount.GetStatusQuery, appdiscount.StatusResponse](
			r.dispatcher, FromID("productId", func(id int64) appdiscount.GetStatusQuery {
				return appdiscount.GetStatusQuery{ProductID: id}
			}), Same))
}

// System serves the health and info endpoints
func (r *Routes) System() *router.DomainGroup {
	return router.NewDomainGroup("system", "").
		GET("/health", r.system.Health).
		GET("/info", r.system.Info)
}
