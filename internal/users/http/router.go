package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/integra-admin/integra/internal/users/domain"
	"github.com/integra-admin/integra/internal/users/service"
	"github.com/integra-admin/integra/pkg/httpx"
	"github.com/integra-admin/integra/pkg/metricsx"
	"github.com/integra-admin/integra/pkg/slogx"

	_ "github.com/integra-admin/integra/api/users" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Pinger reports whether a backing dependency is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	buildVersion string
	startTime    time.Time
	logger       *slog.Logger
	metrics      *metricsx.Metrics
	db           Pinger

	Gate                *service.AccessGate
	RegistrationService *service.RegistrationService
	LoginService        *service.LoginService
	DirectoryService    *service.DirectoryService
	RolesService        *service.RolesService
}

func NewRouter(buildVersion string, db Pinger, metrics *metricsx.Metrics, logger *slog.Logger) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		buildVersion: buildVersion,
		startTime:    time.Now(),
		logger:       logger,
		metrics:      metrics,
		db:           db,
	}

	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAccounts()
	r.registerDirectory()
	r.registerRoles()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Integra Users API
//	@version		0.1.0
//	@description	Account registration, login and role-gated user directory for Integra Admin.
//	@description
//	@description				Login issues an HS256 JWT carrying the account id and its roles.
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				JWT access token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

// handle registers h with per-route metrics. Instrumentation sits inside the
// mux so the matched pattern is known.
func (r *Router) handle(pattern string, h http.Handler, mws ...httpx.Middleware) {
	chain := append([]httpx.Middleware{r.metrics.Instrument}, mws...)
	r.Mux.Handle(pattern, httpx.Chain(h, chain...))
}

func (r *Router) admin() httpx.Middleware {
	return r.Gate.Require(domain.RoleAdmin)
}

func (r *Router) registerAccounts() {
	register := &RegisterHandler{Service: r.RegistrationService}
	sponsor := &SponsorUserHandler{Service: r.RegistrationService}
	login := &LoginHandler{LoginService: r.LoginService}

	r.handle("POST /api/users/register", register)
	r.handle("POST /api/users/login", login)
	r.handle("POST /api/users/create-sponsor-user", sponsor, r.admin())
}

func (r *Router) registerDirectory() {
	h := &DirectoryHandler{DirectoryService: r.DirectoryService}

	r.handle("GET /api/users/all-sponsors", http.HandlerFunc(h.HandleSponsors), r.admin())
	r.handle("GET /api/users/all-users", http.HandlerFunc(h.HandleAll), r.admin())
}

func (r *Router) registerRoles() {
	h := &RolesHandler{RolesService: r.RolesService}

	r.handle("GET /api/roles", http.HandlerFunc(h.HandleList), r.admin())
	r.handle("POST /api/users/{username}/roles", http.HandlerFunc(h.HandleAssign), r.admin())
}

func (r *Router) registerSystem() {
	r.handle("GET /livez", LivezHandler(r.startTime, r.buildVersion))
	r.handle("GET /readyz", ReadyzHandler(r.startTime, r.buildVersion, r.db))
	r.Mux.Handle("GET /metrics", r.metrics.Handler())
}
