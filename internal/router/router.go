package router

import (
	"database/sql"
	"fmt"
	"net/http"
	"time"

	_ "pet-plates/docs"
	mem "pet-plates/internal/adapters/storage/memory"
	pg "pet-plates/internal/adapters/storage/postgres"
	"pet-plates/internal/domain/caretakers"
	"pet-plates/internal/domain/meals"
	"pet-plates/internal/domain/pets"
	"pet-plates/internal/domain/planner"
	"pet-plates/internal/middleware"
	"pet-plates/internal/platform/logger"
	"pet-plates/internal/platform/metrics"
	"pet-plates/internal/ports/auth"
	"pet-plates/internal/ports/cache"
	"pet-plates/internal/recipes"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
	"golang.org/x/time/rate"
)

type Options struct {
	AuthVerifier auth.AuthVerifier // puede ser nil (modo dev)

	// Opcional: si viene, usa Postgres. Si no, in-memory.
	DB *sql.DB

	// Cache de sugerencias. nil => no se guardan sugerencias.
	Cache    cache.Cache
	CacheTTL time.Duration

	// nil => generador con los datos embebidos y config por defecto.
	Generator *recipes.Generator
	MaxBatch  int

	Logger  logger.Logger    // nil => nop
	Metrics *metrics.Metrics // nil => registry propio

	// Limita los POST de generación. nil => sin límite.
	Limiter *rate.Limiter
}

func NewRouter(opts Options) (http.Handler, error) {
	log := opts.Logger
	if log == nil {
		log = logger.NewNop()
	}

	m := opts.Metrics
	if m == nil {
		var err error
		if m, err = metrics.New(); err != nil {
			return nil, err
		}
	}

	gen := opts.Generator
	if gen == nil {
		var err error
		if gen, err = recipes.NewDefaultGenerator(recipes.DefaultConfig()); err != nil {
			return nil, fmt.Errorf("load recipe data: %w", err)
		}
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestID)

	// AuthContext antes del log para que el log vea el user_id
	r.Use(middleware.AuthContext(opts.AuthVerifier, log))
	r.Use(middleware.RequestLog(log, m))
	r.Use(middleware.Recover(log))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Method(http.MethodGet, "/metrics", m.Handler())
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	var (
		petRepo   pets.Repository
		mealRepo  meals.Repository
		grantRepo caretakers.Repository
	)
	if opts.DB != nil {
		petRepo = pg.NewPetsRepo(opts.DB)
		mealRepo = pg.NewMealsRepo(opts.DB)
		grantRepo = pg.NewCaretakersRepo(opts.DB)
	} else {
		petRepo = mem.NewPetRepo()
		mealRepo = mem.NewMealRepo()
		grantRepo = mem.NewCaretakerRepo()
	}

	// Services por módulo
	caretakersSvc := caretakers.NewService(grantRepo)
	petsSvc := pets.NewService(petRepo).WithAccess(caretakersSvc)
	mealsSvc := meals.NewService(mealRepo).WithAnalyzer(gen)
	plannerSvc := planner.NewService(gen, petsSvc, mealsSvc, planner.Options{
		Cache:    opts.Cache,
		CacheTTL: opts.CacheTTL,
		Metrics:  m,
		Logger:   log,
		MaxBatch: opts.MaxBatch,
	})

	// Rutas por módulo
	pets.RegisterRoutes(r, petsSvc)
	caretakers.RegisterRoutes(r, caretakersSvc, petsSvc)
	meals.RegisterRoutes(r, mealsSvc, petsSvc)
	planner.RegisterRoutes(r, plannerSvc, opts.Limiter)

	return r, nil
}
