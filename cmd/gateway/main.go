package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jcelliott/lumber"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	gateway "github.com/MirOrlov/foodgram"
)

func main() {

	var configFile = ""
	var listen = ""
	var adminAddr = "0.0.0.0:9090"
	var logLevel = "INFO"
	var healthPulse = 0

	flag.StringVar(&configFile, "config", configFile, "path to YAML gateway configuration (default: built-in foodgram table)")
	flag.StringVar(&listen, "listen", listen, "listen address (overrides config)")
	flag.StringVar(&adminAddr, "admin", adminAddr, "admin/metrics listen address")
	flag.StringVar(&logLevel, "log-level", logLevel, "log level: TRACE, DEBUG, INFO, WARN, ERROR, FATAL")
	flag.IntVar(&healthPulse, "health-pulse", healthPulse, "seconds between upstream health checks (0 disables)")
	flag.Parse()

	lumber.Level(lumber.LvlInt(logLevel))

	config := gateway.DefaultConfig()
	if configFile != "" {
		var err error
		config, err = gateway.LoadConfig(configFile)
		if err != nil {
			lumber.Fatal("Failed to load config - %s", err.Error())
			os.Exit(1)
		}
	}
	if listen != "" {
		config.Listen = listen
	}
	if healthPulse != 0 {
		config.HealthPulse = healthPulse
	}

	gateway.InitMetrics()

	if err := config.Apply(); err != nil {
		lumber.Fatal("Failed to apply config - %s", err.Error())
		os.Exit(1)
	}

	if err := gateway.StartHTTP(config.Listen); err != nil {
		lumber.Fatal("Failed to start http - %s", err.Error())
		os.Exit(1)
	}
	lumber.Info("[GATEWAY] Listening on %s", config.Listen)

	if config.HealthPulse > 0 {
		go gateway.StartHealth(config.HealthPulse)
	}

	// admin/metrics server lives on its own mux so it never shadows the
	// routing table
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/healthz", func(rw http.ResponseWriter, req *http.Request) { rw.Write([]byte("ok")) })

	admin := &http.Server{Addr: adminAddr, Handler: mux}
	go func() {
		lumber.Info("[GATEWAY] Admin listening on %s", adminAddr)
		if err := admin.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			lumber.Error("Admin server failed - %s", err.Error())
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	lumber.Info("[GATEWAY] Shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	admin.Shutdown(ctx)
	if err := gateway.StopHTTP(ctx); err != nil {
		lumber.Error("Failed to stop cleanly - %s", err.Error())
	}
}
