package server

import (
	"context"
	"net/http"
)

// Discovery response.
type discoveryResponse struct {
	HasDevices bool     `json:"has_devices"`
	Miners     []string `json:"miners,omitempty"`
}

// Performs quick check whether system is OK.
func (s *MinerHubServer) ping(writer http.ResponseWriter, _ *http.Request) {
	respondOk(writer)
}

// Responds with known config entries.
func (s *MinerHubServer) getEntries(writer http.ResponseWriter, _ *http.Request) {
	respond(writer, s.entries.List())
}

// Checks whether local networks have miners.
// Full scan is performed only if "scan" query param is set.
func (s *MinerHubServer) getDiscovery(writer http.ResponseWriter, request *http.Request) {
	ctx, cancel := context.WithTimeout(request.Context(), discoveryTimeout)
	defer cancel()

	if "" == request.URL.Query().Get("scan") {
		respond(writer, &discoveryResponse{HasDevices: s.Settings.Discovery().HasDevices(ctx)})
		return
	}

	miners := s.unconfigured(s.Settings.Discovery().Discover(ctx))
	respond(writer, &discoveryResponse{HasDevices: len(miners) > 0, Miners: miners})
}
