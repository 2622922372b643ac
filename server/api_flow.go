package server

import (
	"net/http"

	"github.com/go-home-io/minerhub/plugins/common"
	"github.com/go-home-io/minerhub/plugins/miner"
	"github.com/go-home-io/minerhub/systems/flow"
	"github.com/gorilla/mux"
)

// Starts a new setup flow.
func (s *MinerHubServer) startFlow(writer http.ResponseWriter, request *http.Request) {
	input, err := readInput(request)
	if err != nil {
		respondError(writer, http.StatusBadRequest, err)
		return
	}

	res, err := s.flows.Start(request.Context(), input)
	if err != nil {
		s.Logger.Error("Failed to start setup flow", err, common.LogUserNameToken, getContextUser(request))
		respondError(writer, http.StatusInternalServerError, err)
		return
	}

	s.Logger.Info("User started setup flow", common.LogFlowToken, res.FlowID,
		common.LogUserNameToken, getContextUser(request))
	respond(writer, res)
}

// Submits a setup flow step.
func (s *MinerHubServer) stepFlow(writer http.ResponseWriter, request *http.Request) {
	id := mux.Vars(request)[string(urlFlowID)]
	input, err := readInput(request)
	if err != nil {
		respondError(writer, http.StatusBadRequest, err)
		return
	}

	res, err := s.flows.Step(request.Context(), id, input)
	if err != nil {
		switch err.(type) {
		case *flow.ErrFlowNotFound, *flow.ErrFlowFinished:
			respondError(writer, http.StatusNotFound, err)
		default:
			s.Logger.Error("Setup flow step failed", err, common.LogFlowToken, id)
			respondError(writer, http.StatusInternalServerError, err)
		}

		return
	}

	if flow.ResultCreateEntry == res.Type {
		s.Logger.Info("User created a new entry", common.LogFlowToken, id,
			common.LogUserNameToken, getContextUser(request))
		res = redact(res)
	}

	respond(writer, res)
}

// Returns copy of the result without secret entry fields.
func redact(res *flow.Result) *flow.Result {
	if nil == res.Entry {
		return res
	}

	entry := &miner.ConfigEntry{
		ID:    res.Entry.ID,
		Title: res.Entry.Title,
		Data:  make(map[string]string, len(res.Entry.Data)),
	}

	for k, v := range res.Entry.Data {
		if !miner.IsSecretKey(k) {
			entry.Data[k] = v
		}
	}

	cp := *res
	cp.Entry = entry
	return &cp
}
