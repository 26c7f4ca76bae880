package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dbspend360/dbspend360/internal/api"
	"github.com/dbspend360/dbspend360/internal/cache"
	"github.com/dbspend360/dbspend360/internal/config"
	"github.com/dbspend360/dbspend360/internal/insight"
	"github.com/dbspend360/dbspend360/internal/refresher"
	"github.com/dbspend360/dbspend360/internal/store"
	"github.com/dbspend360/dbspend360/internal/workspace"
)

func main() {
	// Load configuration from environment
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appCfg, err := config.LoadAppConfig(cfg.ConfigDir, cfg.Environment)
	if err != nil {
		log.Fatalf("Failed to load app config: %v", err)
	}

	// Initialize store
	log.Println("Connecting to cost record store...")
	st, err := store.NewStore(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer st.Close()

	// Optional response cache
	var respCache *cache.Cache
	if cfg.RedisAddr != "" {
		respCache = cache.New(cfg.RedisAddr, appCfg.CacheTTL())
		defer respCache.Close()
	} else {
		log.Println("REDIS_ADDR not set, response memoization disabled")
	}

	// Optional workspace client and insight service
	var ws *workspace.Client
	var insights *insight.Service
	if cfg.WorkspaceConfigured() {
		ws = workspace.New(cfg.DatabricksHost, cfg.DatabricksToken)
		insights = insight.NewService(ws, cfg.InsightModel)
	} else {
		log.Println("DATABRICKS_HOST/TOKEN not set, cluster details and insights disabled")
	}

	// Preset summary refresher needs both store and cache
	rootCtx, rootCancel := context.WithCancel(context.Background())
	defer rootCancel()

	if respCache != nil {
		r := refresher.NewRefresher(&refresher.Config{
			Interval:     appCfg.RefreshInterval(),
			QueryTimeout: appCfg.QueryTimeout(),
		}, st, respCache)
		go func() {
			if err := r.Start(rootCtx); err != nil && err != context.Canceled {
				log.Printf("Refresher stopped: %v", err)
			}
		}()
		defer r.Stop()
	}

	// Create server config
	serverCfg := api.DefaultServerConfig()
	serverCfg.Port = cfg.Port

	log.Printf("Server configured:")
	log.Printf("  Port: %d", serverCfg.Port)
	log.Printf("  Environment: %s", cfg.Environment)
	log.Printf("  Platform: %s", appCfg.Cloud.Platform)
	log.Printf("  Insights enabled: %v", appCfg.Features.Insights && insights != nil)

	// Create API server
	server := api.NewServer(serverCfg, st, respCache, ws, insights, appCfg)

	// Start server in a goroutine
	go func() {
		if err := server.Start(); err != nil {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	rootCancel()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}
