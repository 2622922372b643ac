// Package server contains minerhub HTTP server.
package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-home-io/minerhub/plugins/common"
	"github.com/go-home-io/minerhub/providers"
	"github.com/go-home-io/minerhub/systems"
	"github.com/go-home-io/minerhub/systems/entity"
	"github.com/go-home-io/minerhub/systems/flow"
	"github.com/go-home-io/minerhub/worker"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
)

const (
	// Logger system representation.
	logSystem = "server"
	// Discovery requests timeout.
	discoveryTimeout = 2 * time.Minute
)

// MinerHubServer describes hub node.
type MinerHubServer struct {
	Settings providers.ISettingsProvider
	Logger   common.ILoggerProvider

	registry   entity.IRegistry
	entries    worker.IEntryManager
	flows      flow.IManager
	wsSettings websocket.Upgrader
	http       *http.Server
}

// NewServer constructs a new hub server.
func NewServer(settings providers.ISettingsProvider) (*MinerHubServer, error) {
	registry := entity.NewRegistry(&entity.ConstructRegistry{
		Logger:  settings.PluginLogger(systems.SysEntity.String(), "registry"),
		FanOut:  settings.FanOut(),
		Storage: settings.Storage(),
	})

	entries := worker.NewEntryManager(settings, registry)
	server := &MinerHubServer{
		Logger:   settings.SystemLogger(),
		Settings: settings,
		registry: registry,
		entries:  entries,
		flows: flow.NewManager(&flow.ConstructManager{
			Logger:   settings.PluginLogger(systems.SysFlow.String(), "setup"),
			Factory:  settings.MinerFactory(),
			OnCreate: entries.Add,
		}),
		wsSettings: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}

	server.http = &http.Server{
		Addr:    fmt.Sprintf(":%d", settings.HubSettings().Port),
		Handler: server.router(),
	}

	return server, nil
}

// Start launches hub server.
func (s *MinerHubServer) Start() {
	s.entries.Load(context.Background())

	go func() {
		err := s.http.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			s.Logger.Fatal("Failed to start server", err, common.LogSystemToken, logSystem)
		}
	}()

	s.Logger.Info(fmt.Sprintf("Started server on port %d", s.Settings.HubSettings().Port),
		common.LogSystemToken, logSystem)

	if s.Settings.HubSettings().Discovery {
		go s.logDiscovered()
	}

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	for range c {
		s.Logger.Info("Received stop command, exiting", common.LogSystemToken, logSystem)
		s.Stop()
		os.Exit(0)
	}
}

// Stop unloads all entries and shuts HTTP server down.
func (s *MinerHubServer) Stop() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	s.http.Shutdown(ctx) // nolint: errcheck
	s.entries.Stop()
	s.Settings.FanOut().Stop()
}

// Builds HTTP handler with all API registered.
func (s *MinerHubServer) router() http.Handler {
	router := mux.NewRouter()
	s.registerAPI(router)

	w := &logWriter{logger: s.Logger}
	return handlers.RecoveryHandler(handlers.RecoveryLogger(w), handlers.PrintRecoveryStack(false))(
		handlers.LoggingHandler(w, router))
}

// All API registration.
func (s *MinerHubServer) registerAPI(router *mux.Router) {
	publicRouter := router.PathPrefix("/pub").Subrouter()
	publicRouter.HandleFunc("/ping", s.ping).Methods(http.MethodGet)

	apiRouter := router.PathPrefix(routeAPI).Subrouter()
	apiRouter.HandleFunc("/entity", s.getEntities).Methods(http.MethodGet)
	apiRouter.HandleFunc(fmt.Sprintf("/entity/{%s}/history", urlEntityID), s.getEntityHistory).
		Methods(http.MethodGet)
	apiRouter.HandleFunc("/entry", s.getEntries).Methods(http.MethodGet)
	apiRouter.HandleFunc("/flow", s.startFlow).Methods(http.MethodPost)
	apiRouter.HandleFunc(fmt.Sprintf("/flow/{%s}", urlFlowID), s.stepFlow).Methods(http.MethodPost)
	apiRouter.HandleFunc("/discovery", s.getDiscovery).Methods(http.MethodGet)
	apiRouter.HandleFunc("/ws", s.handleWS)
	apiRouter.Use(s.authMiddleware)
}

// Reports miners found in local networks which are not configured yet.
func (s *MinerHubServer) logDiscovered() {
	ctx, cancel := context.WithTimeout(context.Background(), discoveryTimeout)
	defer cancel()

	for _, v := range s.unconfigured(s.Settings.Discovery().Discover(ctx)) {
		s.Logger.Info("Discovered not configured miner", common.LogDeviceHostToken, v,
			common.LogSystemToken, logSystem)
	}
}

// Filters out IPs of already configured entries.
func (s *MinerHubServer) unconfigured(ips []string) []string {
	known := make(map[string]bool)
	for _, v := range s.entries.List() {
		known[v.IP] = true
	}

	res := make([]string, 0)
	for _, v := range ips {
		if !known[v] {
			res = append(res, v)
		}
	}

	return res
}
