package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "pet-marketplace/docs"
	"pet-marketplace/internal/adapters/storage/kvrepo"
	mem "pet-marketplace/internal/adapters/storage/memory"
	"pet-marketplace/internal/domain/analytics"
	"pet-marketplace/internal/domain/messages"
	"pet-marketplace/internal/domain/pets"
	"pet-marketplace/internal/domain/seed"
	"pet-marketplace/internal/domain/users"
	"pet-marketplace/internal/middleware"
	"pet-marketplace/internal/platform/logger"
	"pet-marketplace/internal/platform/metrics"
	"pet-marketplace/internal/platform/respond"
	"pet-marketplace/internal/ports/auth"
	"pet-marketplace/internal/ports/kv"
)

type Options struct {
	Logger logger.Logger

	// Si es nil se usa el KV en memoria.
	Store kv.Store

	// Identity crea cuentas y emite tokens. Puede ser nil (modo dev): signup/signin devuelven 500.
	Identity auth.IdentityProvider
	// AuthVerifier puede ser nil (modo dev, X-Debug-User-ID).
	AuthVerifier auth.AuthVerifier

	// Opcional: si viene, se expone /metrics.
	Metrics *metrics.Metrics

	AllowedOrigins []string
	RequestTimeout time.Duration

	// TrustProxyHeaders habilita chimw.RealIP; sin proxy el rate limit usa la IP del socket.
	TrustProxyHeaders bool

	// RateLimitRPS <= 0 desactiva el límite en /auth/signup y /auth/signin.
	RateLimitRPS   float64
	RateLimitBurst int

	AnalyticsLocation *time.Location

	SeedEndpoint bool
	// Si es nil se usa el fixture embebido.
	SeedFixture *seed.Fixture
}

// App es el router ya armado más los servicios que main necesita fuera de HTTP.
type App struct {
	Handler http.Handler
	Seed    *seed.Service
}

func New(opts Options) (*App, error) {
	log := opts.Logger
	if log == nil {
		log = logger.NewDiscard()
	}

	store := opts.Store
	if store == nil {
		store = mem.NewKVStore()
	}

	fixture := opts.SeedFixture
	if fixture == nil {
		def, err := seed.DefaultFixture()
		if err != nil {
			return nil, err
		}
		fixture = &def
	}

	// Repos sobre el KV
	userRepo := kvrepo.NewUserRepo(store)
	petRepo := kvrepo.NewPetRepo(store)
	msgRepo := kvrepo.NewMessageRepo(store)

	// Services por módulo
	usersSvc := users.NewService(userRepo, opts.Identity, log.With(map[string]any{"module": "users"}))
	petsSvc := pets.NewService(petRepo, userRepo, log.With(map[string]any{"module": "pets"}))
	msgSvc := messages.NewService(msgRepo, userRepo, log.With(map[string]any{"module": "messages"}))
	analyticsSvc := analytics.NewService(petRepo, userRepo, log.With(map[string]any{"module": "analytics"}), opts.AnalyticsLocation)
	seedSvc := seed.NewService(usersSvc, petsSvc, *fixture, log.With(map[string]any{"module": "seed"}))

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	if opts.TrustProxyHeaders {
		r.Use(chimw.RealIP)
	}
	r.Use(middleware.RequestLog(log))
	r.Use(middleware.Recover(log))
	r.Use(middleware.CORS(opts.AllowedOrigins))
	if opts.Metrics != nil {
		r.Use(opts.Metrics.Middleware)
	}
	if opts.RequestTimeout > 0 {
		r.Use(chimw.Timeout(opts.RequestTimeout))
	}

	r.Use(middleware.AuthContext(opts.AuthVerifier))

	r.Get("/health", healthHandler)
	if opts.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", opts.Metrics.Handler())
	}
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	var authLimit func(http.Handler) http.Handler
	if opts.RateLimitRPS > 0 {
		authLimit = middleware.NewRateLimiter(opts.RateLimitRPS, opts.RateLimitBurst, log).Handler
	}

	// Rutas por módulo
	guard := usersSvc.Guard()
	users.RegisterRoutes(r, usersSvc, authLimit)
	pets.RegisterRoutes(r, petsSvc, guard)
	messages.RegisterRoutes(r, msgSvc, guard)
	analytics.RegisterRoutes(r, analyticsSvc, guard)
	if opts.SeedEndpoint {
		seed.RegisterRoutes(r, seedSvc)
	}

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		respond.Message(w, http.StatusNotFound, "not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		respond.Message(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	return &App{Handler: r, Seed: seedSvc}, nil
}

// healthHandler godoc
// @Summary Health check
// @Tags ops
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthHandler(w http.ResponseWriter, _ *http.Request) {
	respond.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
