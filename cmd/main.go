package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	restcontext "github.com/notescan/notescan-server/internal/api/rest/context"
	"github.com/notescan/notescan-server/internal/api/rest/handler"
	"github.com/notescan/notescan-server/internal/api/rest/middleware"
	"github.com/notescan/notescan-server/internal/api/rest/router"
	"github.com/notescan/notescan-server/internal/config"
	"github.com/notescan/notescan-server/internal/logger"
	"github.com/notescan/notescan-server/internal/model"
	"github.com/notescan/notescan-server/internal/ocr"
	"github.com/notescan/notescan-server/internal/repository/postgres"
	"github.com/notescan/notescan-server/internal/server"
	"github.com/notescan/notescan-server/internal/service"
	storage "github.com/notescan/notescan-server/internal/storage/minio"
	"github.com/notescan/notescan-server/internal/token"
)

var (
	buildVersion = "N/A" // set by ldflags
	buildDate    = "N/A" // set by ldflags
	buildCommit  = "N/A" // set by ldflags
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, os.Interrupt)
	defer stop()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	logger := logger.New(cfg.LogLevel)

	db, err := postgres.NewConnection(ctx, cfg.Database.DSN)
	if err != nil {
		logger.Fatal("failed to initialize storage", "error", err)
	}
	defer db.Close()

	userRepo := postgres.NewUserRepository(db)
	noteRepo := postgres.NewNoteRepository(db)
	tokenManager := token.NewJWT(cfg.JWT.Secret)

	tokenService := service.NewTokenService(tokenManager, logger)
	authService := service.NewAuth(userRepo, tokenService, logger)
	ctxMgr := restcontext.NewManager()

	minioClient, err := minio.New(cfg.Storage.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.Storage.AccessKey, cfg.Storage.SecretKey, ""),
		Secure: cfg.Storage.UseSSL,
	})
	if err != nil {
		logger.Fatal("failed to create minio client", "error", err)
	}
	storageClient, err := storage.NewClient(ctx, minioClient, cfg.Storage.Bucket)
	if err != nil {
		logger.Fatal("failed to initialize storage client", "error", err)
	}

	noteService := service.NewNote(noteRepo, storageClient, logger)
	ocrClient := ocr.NewClient(cfg.OCR.BaseURL, logger)
	ingestionService := service.NewIngestion(noteService, noteRepo, ocrClient, storageClient, logger)

	engine := router.New(router.Config{
		Health:         handler.NewHealth(db),
		Auth:           handler.NewAuth(authService, logger),
		Note:           handler.NewNote(noteService, ctxMgr, logger),
		Ingestion:      handler.NewIngestion(ingestionService, ctxMgr, logger),
		Authenticate:   middleware.NewAuthenticate(tokenService, ctxMgr, logger),
		AllowedOrigins: cfg.HTTP.AllowedOrigins,
		Logger:         logger,
	})

	httpServer := server.NewHTTPServer(engine, fmt.Sprintf(":%s", cfg.HTTP.Port))

	var sl model.SecurityLayer
	if cfg.HTTP.EnableHTTPS {
		sl = server.NewTLSListener(cfg.HTTP.CertFileName, cfg.HTTP.PrivateKeyFileName)
	} else {
		sl = server.NewPlainListener()
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func(s model.Server) {
		defer wg.Done()
		logger.Info("Starting server on", "address", s.Address())
		err := s.Start(sl)
		if err != nil {
			logger.Error("failed to start server", "error", err)
		}
	}(httpServer)

	logAppVersion()

	<-ctx.Done()
	logger.Info("received interruption signal, shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := httpServer.Stop(shutdownCtx); err != nil {
		logger.Error("error during server shutdown", "error", err, "address", httpServer.Address())
	}

	wg.Wait()
	logger.Info("shutdown complete")
}

func logAppVersion() {
	tmpl := `
Build version: %s
Build date: %s
Build commit: %s
`

	fmt.Printf(tmpl, buildVersion, buildDate, buildCommit)
}
