package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	apirest "github.com/kasuganosora/pokebattle/api/rest"
	apiws "github.com/kasuganosora/pokebattle/api/ws"
	"github.com/kasuganosora/pokebattle/cache"
	"github.com/kasuganosora/pokebattle/config"
	dbadapter "github.com/kasuganosora/pokebattle/db"
	"github.com/kasuganosora/pokebattle/game/ai"
	"github.com/kasuganosora/pokebattle/game/arena"
	mw "github.com/kasuganosora/pokebattle/middleware"
	"github.com/kasuganosora/pokebattle/model"
	"github.com/kasuganosora/pokebattle/record"
	"github.com/kasuganosora/pokebattle/resource"
	"github.com/kasuganosora/pokebattle/scheduler"
)

const finishedBattleRetention = 30 * time.Minute

func main() {
	cfgPath := "config/config.yaml"
	if len(os.Args) > 1 {
		cfgPath = os.Args[1]
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	// ---- Logger ----
	var logger *zap.Logger
	var logErr error
	if cfg.Server.Debug {
		logger, logErr = zap.NewDevelopment()
	} else {
		logger, logErr = zap.NewProduction()
	}
	if logErr != nil {
		log.Fatalf("logger: %v", logErr)
	}
	defer logger.Sync()

	// ---- Battle data ----
	loader := resource.NewLoader(cfg.Data.Path)
	if err := loader.Load(); err != nil {
		log.Fatalf("resource data: %v", err)
	}
	logger.Info("battle data loaded",
		zap.Int("species", len(loader.Species)),
		zap.Int("moves", len(loader.Moves)))

	presets, err := ai.LoadPresets(cfg.Data.PresetsPath)
	if err != nil {
		log.Fatalf("trainer presets: %v", err)
	}
	logger.Info("trainer presets loaded", zap.Int("trainers", len(presets)))

	// ---- Database ----
	db, err := dbadapter.Open(cfg.Database)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	if err := model.AutoMigrate(db); err != nil {
		log.Fatalf("db migrate: %v", err)
	}
	logger.Info("database initialized", zap.String("mode", cfg.Database.Mode))

	// ---- Records ----
	var records *record.Service
	if cfg.Battle.RecordBattles {
		records = record.New(db, logger)
		defer records.Stop(context.Background())
	}

	// ---- Cache / PubSub ----
	cacheCfg := cache.Config{
		RedisAddr:      cfg.Cache.RedisAddr,
		RedisPassword:  cfg.Cache.RedisPassword,
		RedisDB:        cfg.Cache.RedisDB,
		LocalGC:        cfg.Cache.LocalGCInterval,
		LocalPubSubBuf: cfg.Cache.LocalPubSubBuf,
	}
	kv, err := cache.NewCache(cacheCfg)
	if err != nil {
		log.Fatalf("cache: %v", err)
	}
	pubsub, err := cache.NewPubSub(cacheCfg)
	if err != nil {
		log.Fatalf("pubsub: %v", err)
	}
	logger.Info("cache initialized", zap.Bool("redis", cfg.Cache.RedisAddr != ""))

	// ---- Arena ----
	manager := arena.NewManager(arena.Options{
		Loader:        loader,
		Presets:       presets,
		PubSub:        pubsub,
		Cache:         kv,
		Records:       records,
		Logger:        logger,
		MaxTurns:      cfg.Battle.MaxTurns,
		MaxConcurrent: cfg.Battle.MaxConcurrent,
	})

	// ---- Scheduler ----
	sched := scheduler.New(logger)
	defer sched.Stop()
	sched.AddTicker("arena_sweep", 5*time.Minute, func() {
		if n := manager.Sweep(finishedBattleRetention); n > 0 {
			logger.Info("swept finished battles", zap.Int("count", n))
		}
	})

	// ---- HTTP ----
	if !cfg.Server.Debug {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(mw.TraceID(), mw.Logger(logger), mw.Recovery(logger))
	r.Use(mw.RateLimit(cfg.Security.RateLimitRPS, cfg.Security.RateLimitBurst))

	r.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	apirest.Register(r,
		apirest.NewBattleHandler(manager, logger),
		apirest.NewPresetHandler(presets),
		apirest.NewRecordHandler(records, manager, logger))

	wsH := apiws.NewHandler(manager, pubsub, cfg.Security, logger)
	r.GET("/ws/battles/:id", wsH.Stream)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: r,
	}
	go func() {
		logger.Info("server listening", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	// ---- Graceful shutdown ----
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("shutdown error", zap.Error(err))
	}
}
