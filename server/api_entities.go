package server

import (
	"net/http"

	"github.com/go-home-io/minerhub/plugins/common"
	"github.com/go-home-io/minerhub/systems/entity"
	"github.com/gorilla/mux"
)

// Entity history response.
type historyResponse struct {
	ID      string             `json:"id"`
	History map[int64]*float64 `json:"history"`
}

// Responds with all registered entities.
func (s *MinerHubServer) getEntities(writer http.ResponseWriter, _ *http.Request) {
	all := s.registry.All()
	res := make([]*entity.View, 0, len(all))
	for _, v := range all {
		res = append(res, entity.NewView(v))
	}

	respond(writer, res)
}

// Responds with the last day of entity states.
func (s *MinerHubServer) getEntityHistory(writer http.ResponseWriter, request *http.Request) {
	id := mux.Vars(request)[string(urlEntityID)]
	if _, ok := s.registry.Get(id); !ok {
		s.Logger.Debug("Requested unknown entity", common.LogEntityToken, id,
			common.LogUserNameToken, getContextUser(request))
		respondError(writer, http.StatusNotFound, &ErrUnknownEntity{ID: id})
		return
	}

	respond(writer, &historyResponse{ID: id, History: s.Settings.Storage().History(id)})
}
