package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/greenbasket/greenbasket/config"
	"github.com/greenbasket/greenbasket/internal/adminapi"
	"github.com/greenbasket/greenbasket/internal/app"
	"github.com/greenbasket/greenbasket/internal/checkout"
	"github.com/greenbasket/greenbasket/internal/reporting"
	"github.com/greenbasket/greenbasket/internal/shopapi"
	"github.com/greenbasket/greenbasket/internal/webserver"
)

var (
	cfile    = flag.String("c", "greenbasket.yml", "config file path")
	initDB   = flag.Bool("initdb", false, "run database migration and exit")
	showVer  = flag.Bool("v", false, "print version and exit")
	BuildVer = "dev"
)

func main() {
	flag.Parse()

	if *showVer {
		fmt.Println("greenbasket", BuildVer)
		return
	}

	cfg, err := config.LoadConfig(*cfile)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	application := app.NewApplication(cfg)
	application.Init(cfg)
	defer application.Release()

	if *initDB {
		if err := application.MigrateDB(); err != nil {
			zap.S().Fatalf("database migration failed: %v", err)
		}
		zap.S().Info("database migration complete")
		return
	}

	co := checkout.NewService(application.DB(), application.DeliveryFee())
	rpt := reporting.NewService(application.DB(), application.LowStockThreshold())

	srv := webserver.NewServer(cfg, application.DB())
	shopapi.Register(srv, co, rpt)
	adminapi.Register(srv, rpt)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		zap.S().Fatalf("server error: %v", err)
	case sig := <-sigCh:
		zap.S().Infof("received signal %s, shutting down", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			zap.S().Errorf("shutdown: %v", err)
		}
	}
}
