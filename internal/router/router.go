package router

import (
	"context"
	"database/sql"
	"net/http"
	"strings"

	_ "petmate/docs"
	"petmate/internal/adapters/auth/jwtauth"
	"petmate/internal/adapters/notify"
	mem "petmate/internal/adapters/storage/memory"
	pg "petmate/internal/adapters/storage/postgres"
	"petmate/internal/config"
	"petmate/internal/domain/matches"
	"petmate/internal/domain/pets"
	"petmate/internal/domain/users"
	"petmate/internal/middleware"
	"petmate/internal/platform/logger"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Options struct {
	Config config.Config

	// Opcional: si viene, usa Postgres. Si no, in-memory.
	DB *sql.DB

	Logger logger.Logger

	// Opcional: por defecto los códigos de reseteo van al log.
	Mailer users.Mailer
}

// NewRouter arma repos, servicios y rutas de todos los módulos.
func NewRouter(opts Options) (http.Handler, error) {
	cfg := opts.Config
	log := opts.Logger
	if log == nil {
		log = logger.NewNop()
	}

	var (
		userRepo     users.Repository
		resetRepo    users.ResetRepository
		denylist     jwtauth.Denylist
		petRepo      pets.Repository
		decisionRepo matches.DecisionRepository
		matchRepo    matches.MatchRepository
	)

	if db := opts.DB; db != nil {
		userRepo = pg.NewUsersRepo(db)
		resetRepo = pg.NewResetsRepo(db)
		denylist = pg.NewTokenDenylist(db)
		petRepo = pg.NewPetsRepo(db)
		decisionRepo = pg.NewDecisionsRepo(db)
		matchRepo = pg.NewMatchesRepo(db)
	} else {
		userRepo = mem.NewUserRepo()
		resetRepo = mem.NewPasswordResetRepo()
		denylist = mem.NewTokenDenylist()
		petRepo = mem.NewPetRepo()
		decisionRepo = mem.NewDecisionRepo()
		matchRepo = mem.NewMatchRepo()
	}

	secret := []byte(strings.TrimSpace(cfg.JWTSecret))
	if len(secret) == 0 {
		// sin secreto configurado los tokens no sobreviven a un reinicio
		log.Warn("JWT_SECRET not set, using random secret", nil)
		secret = jwtauth.RandomSecret()
	}
	tokens, err := jwtauth.NewManager(jwtauth.Config{
		Secret: secret,
		Issuer: cfg.JWTIssuer,
		TTL:    cfg.TokenTTL,
	}, denylist)
	if err != nil {
		return nil, err
	}

	mailer := opts.Mailer
	if mailer == nil {
		mailer = notify.NewLogMailer(log)
	}

	// Services por módulo
	usersSvc := users.NewService(users.Deps{
		Repo:     userRepo,
		Resets:   resetRepo,
		Tokens:   tokens,
		Mailer:   mailer,
		Log:      log,
		ResetTTL: cfg.ResetTokenTTL,
	})
	petsSvc := pets.NewService(petRepo, usersSvc, log)
	matchesSvc := matches.NewService(petsSvc, usersSvc, decisionRepo, matchRepo, log)

	fixture := cfg.FeedSource == config.FeedSourceFixture
	recommender := matches.NewRecommender(petsSvc, decisionRepo, matches.RecommenderOptions{
		Limit:        cfg.FeedLimit,
		Fixture:      fixture,
		FixtureDelay: cfg.FeedFixtureDelay,
	})
	if fixture {
		if err := matches.SeedFixtures(context.Background(), petsSvc); err != nil {
			return nil, err
		}
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.Recover(log))

	r.Use(middleware.AuthContext(tokens, cfg.AuthDevMode))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	// Rutas por módulo
	users.RegisterRoutes(r, usersSvc)
	pets.RegisterRoutes(r, petsSvc)
	matches.RegisterRoutes(r, matchesSvc, recommender)

	log.Info("router ready", map[string]any{
		"storage":     storageName(opts.DB),
		"feed_source": string(cfg.FeedSource),
		"dev_auth":    cfg.AuthDevMode,
	})
	return r, nil
}

func storageName(db *sql.DB) string {
	if db != nil {
		return "postgres"
	}
	return "memory"
}
