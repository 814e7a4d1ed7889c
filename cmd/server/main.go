package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"time"

	_ "user-management/docs"
	"user-management/internal/config"
	"user-management/internal/domain/user"
	api "user-management/internal/http"
	"user-management/internal/metrics"
	"user-management/internal/platform/database"
	jwtpkg "user-management/internal/platform/jwt"
	"user-management/internal/repository/postgres"
	"user-management/internal/worker"
)

// @title           User Management API
// @version         1.0
// @description     User management backend with login and CRUD on user records
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in              header
// @name            Authorization
func main() {
	cfg := config.Load()

	db, err := database.NewPostgres(cfg.DB_DSN)
	if err != nil {
		log.Fatalf("db connect error: %v", err)
	}
	defer db.Close()

	metrics.Register()

	userRepo := postgres.NewUserRepo(db)
	userSvc := user.NewService(userRepo)

	jwtMgr := jwtpkg.NewManager(cfg.JWTSecret, "")
	tokenTTL := time.Duration(cfg.TokenTTLMin) * time.Minute

	auditCh := make(chan worker.Event, 100)
	auditWorker := worker.NewAuditWorker(auditCh)

	router := api.NewRouter(userSvc, jwtMgr, tokenTTL, auditCh, db)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go auditWorker.Run(ctx)

	go func() {
		log.Printf("server listening on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen error: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt)

	<-stop
	log.Println("shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("server shutdown error: %v", err)
	}

	log.Println("server stopped")
}
