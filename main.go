package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/Rakhulsr/go-kindergarten/app/cmd"
	"github.com/Rakhulsr/go-kindergarten/app/configs"
	"github.com/Rakhulsr/go-kindergarten/app/models/other"
	"github.com/Rakhulsr/go-kindergarten/app/routes"
	"github.com/Rakhulsr/go-kindergarten/app/utils/renderer"
)

func main() {
	if len(os.Args) > 1 {
		cmd.RunCli()
		return
	}

	env := configs.LoadENV
	other.SchoolName = env.AppName

	keys, err := configs.LoadSessionKeysFromEnv()
	if err != nil {
		log.Fatalf("Session keys: %v. Run `generate-keys` and copy the output into .env.", err)
	}

	db, err := configs.OpenConnection()
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}
	log.Println("✅ Database connected.")

	rdb, err := configs.OpenRedis(context.Background())
	if err != nil {
		log.Fatal("Redis connection failed:", err)
	}

	router := routes.NewRouter(routes.Options{
		DB:          db,
		Redis:       rdb,
		Render:      renderer.New(),
		SessionKeys: [][]byte{keys.AuthKey, keys.EncKey},
		CSRFKey:     keys.CSRFKey,
		Secure:      env.IsProduction(),
		Location:    configs.ReportLocation(),
		Uploader:    configs.NewImageUploader(),
		Notifier:    configs.NewOrderNotifier(),
		UploadDir:   env.UploadDir,
		StaticDir:   "public",
		AccessLog:   true,
	})

	server := &http.Server{
		Addr:              env.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
	}

	go func() {
		log.Printf("🚀 Server starting on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Println("Shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Printf("Graceful shutdown failed: %v", err)
	}
	if rdb != nil {
		_ = rdb.Close()
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	log.Println("Server stopped.")
}
