package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/guardtrack/patrol-backend-go/internal/config"
	"github.com/guardtrack/patrol-backend-go/internal/domain/visit"
	appHTTP "github.com/guardtrack/patrol-backend-go/internal/handler/http"
	"github.com/guardtrack/patrol-backend-go/internal/pkg/cron"
	"github.com/guardtrack/patrol-backend-go/internal/pkg/database"
	"github.com/guardtrack/patrol-backend-go/internal/pkg/jwt"
	"github.com/guardtrack/patrol-backend-go/internal/pkg/sse"
	"github.com/guardtrack/patrol-backend-go/internal/repository/postgresql"
	assignmentService "github.com/guardtrack/patrol-backend-go/internal/service/assignment"
	authService "github.com/guardtrack/patrol-backend-go/internal/service/auth"
	masterService "github.com/guardtrack/patrol-backend-go/internal/service/master"
	notificationService "github.com/guardtrack/patrol-backend-go/internal/service/notification"
	recordService "github.com/guardtrack/patrol-backend-go/internal/service/patrolrecord"
	visitService "github.com/guardtrack/patrol-backend-go/internal/service/visit"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		os.Exit(1)
	}
	defer db.Close()

	branchRepo := postgresql.NewBranchRepository(db)
	guardRepo := postgresql.NewGuardRepository(db)
	shiftRepo := postgresql.NewShiftRepository(db)
	checkpointRepo := postgresql.NewCheckpointRepository(db)
	patrolRepo := postgresql.NewPatrolRepository(db)
	assignmentRepo := postgresql.NewAssignmentRepository(db)
	visitRepo := postgresql.NewVisitRepository(db)
	recordRepo := postgresql.NewPatrolRecordRepository(db)
	notificationRepo := postgresql.NewNotificationRepository(db)

	jwtSvc := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)
	hub := sse.NewHub()

	notificationSvc := notificationService.NewNotificationService(notificationRepo, hub, notificationService.Config{
		BatchSize:     cfg.Notification.BatchSize,
		FlushInterval: cfg.Notification.FlushInterval,
		WorkerCount:   cfg.Notification.WorkerCount,
		QueueSize:     cfg.Notification.QueueSize,
	})
	defer notificationSvc.Stop()

	policy := visit.Policy{
		EarlyGraceMinutes: cfg.Patrol.EarlyGraceMinutes,
		OnTimeMinutes:     cfg.Patrol.OnTimeMinutes,
		LateMinutes:       cfg.Patrol.LateMinutes,
	}

	authSvc := authService.NewAuthService(guardRepo, jwtSvc)
	masterSvc := masterService.NewMasterService(branchRepo, checkpointRepo, patrolRepo, shiftRepo, guardRepo)
	assignmentSvc := assignmentService.NewAssignmentService(
		db, assignmentRepo, guardRepo, patrolRepo, shiftRepo, visitRepo, recordRepo, notificationSvc,
	)
	visitSvc := visitService.NewVisitService(
		visitRepo, guardRepo, checkpointRepo, assignmentRepo, recordRepo, policy,
	)
	lifecycleSvc := recordService.NewLifecycleService(recordRepo, guardRepo, assignmentRepo)

	authHandler := appHTTP.NewAuthHandler(authSvc, jwtSvc)
	masterHandler := appHTTP.NewMasterHandler(masterSvc)
	assignmentHandler := appHTTP.NewAssignmentHandler(assignmentSvc)
	visitHandler := appHTTP.NewVisitHandler(visitSvc)
	recordHandler := appHTTP.NewPatrolRecordHandler(lifecycleSvc)
	notificationHandler := appHTTP.NewNotificationHandler(notificationSvc, jwtSvc, hub)

	router := appHTTP.NewRouter(
		appHTTP.RouterConfig{
			AppName:        cfg.App.Name,
			AppVersion:     "v1.0.0",
			AppEnv:         cfg.App.Env,
			AllowedOrigins: cfg.App.AllowedOrigins,
		},
		jwtSvc,
		authHandler,
		masterHandler,
		assignmentHandler,
		visitHandler,
		recordHandler,
		notificationHandler,
	)

	scheduler := cron.NewScheduler()
	patrolJobs := cron.NewPatrolJobs(visitRepo, recordRepo, assignmentRepo, notificationSvc, cfg.Patrol.LateMinutes)
	patrolJobs.RegisterJobs(scheduler)
	scheduler.Start()
	defer scheduler.Stop()

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.App.Port),
		Handler: router,
	}

	go func() {
		slog.Info("Server starting", "port", cfg.App.Port, "env", cfg.App.Env)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("Shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		slog.Error("Forced shutdown", "error", err)
	}
}
