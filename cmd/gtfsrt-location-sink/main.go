package main

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"

	lib "github.com/theoremus-urban-solutions/gtfsrt-location-sink"
	"github.com/theoremus-urban-solutions/gtfsrt-location-sink/store"
)

func main() {
	if err := lib.LoadAppConfig(); err != nil {
		log.Fatalf("load config: %v", err)
	}
	if err := lib.InitLogging(lib.Config.Log); err != nil {
		log.Fatalf("init logging: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	db, err := store.Open(ctx, lib.Config.Store)
	cancel()
	if err != nil {
		log.Fatalf("open store: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Errorf("close store: %v", err)
		}
	}()
	log.Infof("store connected (%s backend)", backendName(lib.Config.Store.Backend))

	rec := lib.NewReconciler(db)
	lib.StartServer(rec)
	lib.HandleGracefulShutdown()
}

func backendName(b string) string {
	if b == "" {
		return "mongo"
	}
	return b
}
