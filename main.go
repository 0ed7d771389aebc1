// file: main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Nikesh-Uprety/AOHF-ROOT/config"
	"github.com/Nikesh-Uprety/AOHF-ROOT/controllers"
	"github.com/Nikesh-Uprety/AOHF-ROOT/database"
	"github.com/Nikesh-Uprety/AOHF-ROOT/routes"
	"github.com/Nikesh-Uprety/AOHF-ROOT/services"
	"github.com/Nikesh-Uprety/AOHF-ROOT/store"
	"github.com/Nikesh-Uprety/AOHF-ROOT/utils"
	"github.com/redis/go-redis/v9"
)

func main() {
	logger, err := utils.InitLogger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	sugar := logger.Sugar()

	cfg := config.Load()

	// 存储层：MySQL 或内存（本地开发）
	var st store.Store
	switch cfg.DBDriver {
	case "memory":
		st = store.NewMemoryStore()
		cfg.SeedData = true
		sugar.Info("using in-memory store")
	default:
		db, err := database.Connect(cfg.MySQLDSN)
		if err != nil {
			sugar.Fatalf("failed to connect to database: %v", err)
		}
		gs := store.NewGormStore(db)
		if err := gs.AutoMigrate(); err != nil {
			sugar.Fatalf("failed to migrate database: %v", err)
		}
		st = gs
		sugar.Info("database connection established")
	}

	if cfg.SeedData {
		if err := store.Seed(context.Background(), st); err != nil {
			sugar.Fatalf("failed to seed data: %v", err)
		}
	}

	// Redis 可选，连接失败时降级运行（无排行榜缓存、无登出黑名单）
	var rdb *redis.Client
	if cfg.RedisAddr != "" {
		rdb, err = database.InitRedis(cfg.RedisAddr, cfg.RedisPassword)
		if err != nil {
			sugar.Warnf("redis unavailable, running without cache: %v", err)
			rdb = nil
		} else {
			sugar.Info("redis connection established")
		}
	}

	jwtMgr := utils.NewJWTManager(cfg.JWTSecret)
	emailSvc := services.NewEmailService(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword, cfg.BaseURL, sugar)
	scoringSvc := services.NewScoringService(st, sugar)
	statsSvc := services.NewStatsService(st)

	r := routes.SetupRouter(routes.RouterDeps{
		JWT:        jwtMgr,
		Redis:      rdb,
		Auth:       controllers.NewAuthController(st, jwtMgr, emailSvc, rdb, sugar),
		Challenge:  controllers.NewChallengeController(st, scoringSvc),
		Scoreboard: controllers.NewScoreboardController(st, statsSvc, rdb),
		Admin:      controllers.NewAdminController(st),
	})

	srv := &http.Server{Addr: cfg.Addr, Handler: r}

	go func() {
		sugar.Infof("starting server on %s", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			sugar.Fatalf("failed to run server: %v", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	sugar.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		sugar.Warnf("server shutdown: %v", err)
	}
}
