package app

import (
	"log/slog"

	"github.com/filmnest/core/internal/config"
	http_auth "github.com/filmnest/core/internal/delivery/http/auth"
	http_blog "github.com/filmnest/core/internal/delivery/http/blog"
	http_init "github.com/filmnest/core/internal/delivery/http/init"
	http_media "github.com/filmnest/core/internal/delivery/http/media"
	http_auth_middleware "github.com/filmnest/core/internal/delivery/http/middleware/auth"
	http_ratelimit_middleware "github.com/filmnest/core/internal/delivery/http/middleware/ratelimit"
	http_review "github.com/filmnest/core/internal/delivery/http/review"
	http_watchlist "github.com/filmnest/core/internal/delivery/http/watchlist"
	ws_review "github.com/filmnest/core/internal/delivery/ws/review"
	infra_pg_init "github.com/filmnest/core/internal/infra/postgres/init"
	infra_postgres_media "github.com/filmnest/core/internal/infra/postgres/media"
	infra_postgres_review "github.com/filmnest/core/internal/infra/postgres/review"
	infra_postgres_user "github.com/filmnest/core/internal/infra/postgres/user"
	infra_postgres_watchlist "github.com/filmnest/core/internal/infra/postgres/watchlist"
	infra_redis_init "github.com/filmnest/core/internal/infra/redis/init"
	infra_session_cache "github.com/filmnest/core/internal/infra/redis/session"
	service_auth "github.com/filmnest/core/internal/service/auth"
	usecase_account "github.com/filmnest/core/internal/usecase/account"
	usecase_blog "github.com/filmnest/core/internal/usecase/blog"
	usecase_media "github.com/filmnest/core/internal/usecase/media"
	usecase_review "github.com/filmnest/core/internal/usecase/review"
	usecase_watchlist "github.com/filmnest/core/internal/usecase/watchlist"
)

func Go(cfg *config.Config) {
	redisConn := infra_redis_init.MustEstablishConn(cfg.Redis)
	infra_pg_init.MustMigrate(cfg.Postgres)
	pgConn := infra_pg_init.MustEstablishConn(cfg.Postgres)

	mediaRepository := infra_postgres_media.New(pgConn)
	reviewRepository := infra_postgres_review.New(pgConn)
	watchlistRepository := infra_postgres_watchlist.New(pgConn)
	userRepository := infra_postgres_user.New(pgConn)

	sessionCache := infra_session_cache.New(redisConn, "session_cache")
	tokenService := service_auth.New(cfg.Auth.JWTSecret, sessionCache, cfg.Auth.SessionTTL)
	authMiddleware := http_auth_middleware.New(tokenService)

	hub := ws_review.New(slog.Default())

	mediaUC := usecase_media.New(mediaRepository)
	watchlistUC := usecase_watchlist.New(watchlistRepository)
	reviewUC := usecase_review.New(reviewRepository, hub)
	accountUC := usecase_account.New(userRepository, watchlistRepository, reviewRepository, tokenService)
	blogUC := usecase_blog.New()

	controllerPool := http_init.NewControllerPool(
		cfg.HTTP.AllowedOrigins,
		http_ratelimit_middleware.New(5, 10),
	)
	controllerPool.Add(http_media.New(mediaUC))
	controllerPool.Add(http_watchlist.New(watchlistUC, authMiddleware))
	controllerPool.Add(http_review.New(reviewUC, authMiddleware))
	controllerPool.Add(http_auth.New(accountUC, authMiddleware))
	controllerPool.Add(http_blog.New(blogUC))
	controllerPool.Add(ws_review.NewController(hub))

	controllerPool.Register()
	controllerPool.RunAll(cfg.HTTP.Port)
}
