package server

import (
	"net/http"

	"github.com/go-home-io/minerhub/plugins/common"
	"github.com/go-home-io/minerhub/systems/entity"
	"github.com/gorilla/websocket"
)

// Handles WS upgrade request.
func (s *MinerHubServer) handleWS(writer http.ResponseWriter, request *http.Request) {
	usr := getContextUser(request)
	c, err := s.wsSettings.Upgrade(writer, request, nil)
	if err != nil {
		s.Logger.Error("Failed to establish a WS connection", err, common.LogUserNameToken, usr)
		return
	}

	go s.processWSConnection(c, usr)
}

// Processes outgoing WS messages.
// Every write happens in this goroutine.
func (s *MinerHubServer) processWSConnection(conn *websocket.Conn, usr string) {
	defer conn.Close() // nolint: errcheck

	stop := make(chan bool, 1)
	pings := make(chan int, 5)
	go s.processIncomingWSMessages(conn, stop, pings, usr)

	subID, updates := s.Settings.FanOut().SubscribeEntityUpdates()
	defer s.Settings.FanOut().UnSubscribeEntityUpdates(subID)

	for {
		select {
		case <-stop:
			return
		case mt := <-pings:
			if err := conn.WriteMessage(mt, []byte("pong")); err != nil {
				return
			}
		case msg, ok := <-updates:
			if !ok {
				return
			}

			e, found := s.registry.Get(msg.ID)
			if !found {
				continue
			}

			if err := conn.WriteJSON(entity.NewView(e)); err != nil {
				s.Logger.Debug("Failed to send WS message", common.LogUserNameToken, usr,
					common.LogErrorToken, err.Error())
				return
			}
		}
	}
}

// Processes incoming WS messages.
// Only pings are expected from clients.
func (s *MinerHubServer) processIncomingWSMessages(conn *websocket.Conn, stop chan bool, pings chan int,
	usr string) {
	for {
		mt, message, err := conn.ReadMessage()
		if err != nil {
			s.Logger.Info("Closing WS connection for user", common.LogUserNameToken, usr)
			stop <- true
			return
		}

		// Ping request comes as a un-wrapped string
		if "ping" == string(message) {
			select {
			case pings <- mt:
			default:
			}
		}
	}
}
