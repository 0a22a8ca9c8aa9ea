package main

import (
	"context"
	"io"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/afero"
	"gopkg.in/natefinch/lumberjack.v2"

	"wishloop/config"
	"wishloop/handlers"
	"wishloop/internal/auth"
	"wishloop/internal/database"
	"wishloop/services/alerts"
	"wishloop/services/claims"
	"wishloop/services/comments"
	"wishloop/services/friends"
	"wishloop/services/items"
	"wishloop/services/scrape"
	"wishloop/services/uploads"
	"wishloop/services/wishlists"
	"wishloop/utils"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("[main] no .env file loaded: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("[main] failed to load configuration: %v", err)
	}

	if cfg.LogFile != "" {
		log.SetOutput(io.MultiWriter(os.Stdout, &lumberjack.Logger{
			Filename:   cfg.LogFile,
			MaxSize:    50, // MB
			MaxBackups: 3,
			MaxAge:     28, // days
		}))
	}

	db, err := database.NewDB(database.Config{DatabasePath: cfg.DatabasePath})
	if err != nil {
		log.Fatalf("[main] failed to open database: %v", err)
	}
	defer db.Close()

	evaluator := alerts.NewEvaluator(db, alerts.NewLogNotifier())
	defer evaluator.Wait()

	wishlistSvc := wishlists.NewService(db)
	itemSvc := items.NewService(db, evaluator)
	claimSvc := claims.NewService(db)
	alertSvc := alerts.NewService(db)
	friendSvc := friends.NewService(db)
	commentSvc := comments.NewService(db)
	scrapeSvc := scrape.NewService(nil)

	uploadSvc, err := uploads.NewService(afero.NewOsFs(), cfg.UploadDir)
	if err != nil {
		log.Fatalf("[main] failed to prepare upload storage: %v", err)
	}

	authSvc, err := auth.New(cfg)
	if err != nil {
		log.Fatalf("[main] failed to configure auth: %v", err)
	}
	if cfg.DevAuth {
		go func() {
			devAuth, derr := authSvc.DevAuth()
			if derr != nil {
				log.Printf("[main] failed to start dev auth server: %v", derr)
				return
			}
			devAuth.Run(context.Background())
		}()
	}

	r := utils.NewRouter()
	authRoutes, avatarRoutes := authSvc.Handlers()
	r.PathPrefix("/auth").Handler(authRoutes)
	r.PathPrefix("/avatar").Handler(avatarRoutes)

	m := authSvc.Middleware()
	api := handlers.NewAPI(db, wishlistSvc, itemSvc, claimSvc, alertSvc, friendSvc, commentSvc, scrapeSvc, uploadSvc)
	api.Register(r, &m)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Printf("[main] wishloop listening on :%s", cfg.Port)
	if err := srv.ListenAndServe(); err != nil {
		log.Fatalf("[main] server stopped: %v", err)
	}
}
