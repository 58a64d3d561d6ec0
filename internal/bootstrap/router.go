package bootstrap

import (
	"database/sql"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/rdboard/rd-tracker-backend/config"
	httpapi "github.com/rdboard/rd-tracker-backend/internal/api/http"
	"github.com/rdboard/rd-tracker-backend/internal/api/http/middleware"
	"github.com/rdboard/rd-tracker-backend/internal/auth"
	authmw "github.com/rdboard/rd-tracker-backend/internal/auth/middleware"
	"github.com/rdboard/rd-tracker-backend/internal/events"
	memhttp "github.com/rdboard/rd-tracker-backend/internal/members/http"
	memrepo "github.com/rdboard/rd-tracker-backend/internal/members/repository"
	memsvc "github.com/rdboard/rd-tracker-backend/internal/members/service"
	reqhttp "github.com/rdboard/rd-tracker-backend/internal/requirements/http"
	reqrepo "github.com/rdboard/rd-tracker-backend/internal/requirements/repository"
	reqsvc "github.com/rdboard/rd-tracker-backend/internal/requirements/service"
)

type RouterDeps struct {
	Config *config.Config
	Log    *zap.Logger
	Pool   *pgxpool.Pool
	SQL    *sql.DB
	Redis  *redis.Client
	// Verifier enables Firebase token checks; nil falls back to OptionalUser.
	Verifier authmw.TokenVerifier
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	cfg := dep.Config

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID(dep.Log))
	r.Use(middleware.Metrics())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-User-Id", "X-Request-Id"},
		ExposeHeaders:    []string{"X-Request-Id", "Content-Disposition"},
		AllowCredentials: true,
	}))

	healthHandler := httpapi.NewHealthHandler(cfg.App.ServiceName, cfg.App.Version, dep.Pool, dep.Redis)
	healthHandler.RegisterRoutes(r)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api/v1")
	api.Use(middleware.NewRateLimiter(cfg.Server.RateLimitRPS, cfg.Server.RateLimitBurst).Handler())
	if dep.Verifier != nil {
		api.Use(authmw.FirebaseAuthMiddleware(dep.Verifier))
	} else {
		api.Use(auth.OptionalUser())
	}

	memberStore := memrepo.NewCachedMemberStore(
		memrepo.NewMemberRepository(dep.SQL),
		dep.Redis,
		cfg.Redis.MemberCacheTTL,
		dep.Log,
	)
	memberService := memsvc.NewMemberService(memberStore)

	bus := events.NewBus(dep.Redis)
	requirementService := reqsvc.NewRequirementService(
		reqrepo.NewRequirementRepository(dep.SQL),
		reqrepo.NewHistoryRepository(dep.SQL),
		reqrepo.NewCommentRepository(dep.SQL),
		memberService,
		bus,
		dep.Log,
	)

	reqHandler := reqhttp.New(requirementService, bus, dep.Log)
	reqHandler.Register(api.Group("/requirements"))
	reqHandler.RegisterStages(api.Group("/stages"))

	memhttp.New(memberService, dep.Log).Register(api.Group("/members"))

	return r
}
