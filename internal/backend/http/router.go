package http

import (
	"log/slog"
	"net/http"
	"time"

	httpSwagger "github.com/swaggo/http-swagger"
	_ "github.com/zerohunger/backend/api/backend" // Swagger docs
	"github.com/zerohunger/backend/internal/backend/service"
	"github.com/zerohunger/backend/internal/backend/store"
	"github.com/zerohunger/backend/pkg/httpx"
	"github.com/zerohunger/backend/pkg/jwtx"
	"github.com/zerohunger/backend/pkg/slogx"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	buildVersion  string
	startTime     time.Time
	secureCookies bool
	logger        *slog.Logger

	store    store.Store
	Accounts *service.AccountService
	Sessions *jwtx.SessionManager

	routes RouteTable
}

func NewRouter(
	buildVersion string,
	st store.Store,
	accounts *service.AccountService,
	sessions *jwtx.SessionManager,
	secureCookies bool,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:           http.NewServeMux(),
		buildVersion:  buildVersion,
		startTime:     time.Now(),
		secureCookies: secureCookies,
		logger:        logger,
		store:         st,
		Accounts:      accounts,
		Sessions:      sessions,
	}

	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

// Routes builds the full table: the API routes in their declared order,
// then the system routes.
func (r *Router) Routes() (RouteTable, error) {
	admin, err := NewAdminHandler(r.Accounts, r.Sessions, r.secureCookies)
	if err != nil {
		return nil, err
	}
	users := &UserHandler{Accounts: r.Accounts}

	table := RouteTable{
		{Name: "admin", Pattern: "/admin/", Handler: admin},
		{
			Name: "api-test", Method: http.MethodGet, Pattern: "/api/test",
			Handler: httpx.Chain(TestHandler(), httpx.RateLimitByIP(httpx.LenientLimit)),
		},
		{
			Name: "create-user", Method: http.MethodPost, Pattern: "/api/create-user",
			Handler: httpx.Chain(http.HandlerFunc(users.HandleCreate), httpx.RateLimitByIP(httpx.StrictLimit)),
		},
		{
			Name: "get-user", Method: http.MethodGet, Pattern: "/api/get-user",
			Handler: httpx.Chain(http.HandlerFunc(users.HandleGet), httpx.RateLimitByIP(httpx.LenientLimit)),
		},
	}

	return append(table, r.systemRoutes()...), nil
}

func (r *Router) systemRoutes() RouteTable {
	return RouteTable{
		{
			Name: "livez", Method: http.MethodGet, Pattern: "/livez",
			Handler: httpx.Chain(LivezHandler(r.startTime, r.buildVersion), httpx.RateLimitByIP(httpx.LenientLimit)),
		},
		{
			Name: "readyz", Method: http.MethodGet, Pattern: "/readyz",
			Handler: httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store), httpx.RateLimitByIP(httpx.LenientLimit)),
		},
		{
			Name: "swagger", Pattern: "/swagger/",
			Handler: httpx.Chain(httpSwagger.Handler(), httpx.RateLimitByIP(httpx.PublicLimit)),
		},
	}
}

// ApplyRoutes registers the route table on the mux. Call it once.
func (r *Router) ApplyRoutes() error {
	table, err := r.Routes()
	if err != nil {
		return err
	}
	if err := table.Register(r.Mux); err != nil {
		return err
	}
	r.routes = table
	return nil
}

// RouteTable returns the table registered by ApplyRoutes.
func (r *Router) RouteTable() RouteTable { return r.routes }

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			ZeroHunger API
//	@version		0.1.0
//	@description	Backend for the ZeroHunger food donation platform: account management and the staff console.
//
//	@contact.name	ZeroHunger Team
//
//	@license.name	MIT
//	@license.url	https://opensource.org/licenses/MIT
//
//	@host			localhost:8080
//	@BasePath		/
//
//	@schemes		http https
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}
