package gtfsrtsink

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"
)

var server *http.Server

// StartServer binds the ingress endpoint and the health probe. In
// production mode the listener terminates TLS with the configured key and
// certificate material; listen failures are fatal, the process must not
// look healthy without a listener.
func StartServer(rec *Reconciler) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST "+Config.Server.Route, handleFeedPost(rec))
	mux.HandleFunc("GET /health", handleHealth)

	addr := fmt.Sprintf(":%d", Config.Server.Port)
	server = &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	if Config.Server.Mode == "production" {
		tlsConf, err := loadServerTLS(Config.Server)
		if err != nil {
			log.Fatalf("load TLS material: %v", err)
		}
		server.TLSConfig = tlsConf
		go func() {
			if err := server.ListenAndServeTLS("", ""); err != nil && err != http.ErrServerClosed {
				log.Fatalf("server error: %v", err)
			}
		}()
	} else {
		go func() {
			if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Fatalf("server error: %v", err)
			}
		}()
	}
	log.Infof("listening on %s route %s", addr, Config.Server.Route)
}

func HandleGracefulShutdown() {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	<-sigs
	log.Info("shutdown signal received")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if server != nil {
		if err := server.Shutdown(ctx); err != nil {
			log.Errorf("server shutdown error: %v", err)
		} else {
			log.Info("server shut down successfully")
		}
	}
}
