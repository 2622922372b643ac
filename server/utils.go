package server

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/go-home-io/minerhub/plugins/common"
	"github.com/pkg/errors"
)

// Plain HTTP_200 API response.
func respondOk(writer http.ResponseWriter) {
	writer.Header().Set("Content-Type", "application/json")
	writer.WriteHeader(http.StatusOK)
	io.WriteString(writer, `{ "status": "OK" }`) // nolint: errcheck
}

// Generic API respond.
func respond(writer http.ResponseWriter, data interface{}) {
	d, err := json.Marshal(data)
	if err != nil {
		respondError(writer, http.StatusInternalServerError, err)
		return
	}

	writer.Header().Set("Content-Type", "application/json")
	writer.WriteHeader(http.StatusOK)
	writer.Write(d) // nolint: errcheck
}

// Return HTTP_FORBIDDEN status.
func respondUnAuth(writer http.ResponseWriter) {
	writer.Header().Set("WWW-Authenticate", `Basic realm="minerhub"`)
	http.Error(writer, "Forbidden", http.StatusUnauthorized)
}

// Plain error API response.
func respondError(writer http.ResponseWriter, status int, err error) {
	d, _ := json.Marshal(map[string]string{"status": "ERROR", "problem": err.Error()}) // nolint: gosec
	writer.Header().Set("Content-Type", "application/json")
	writer.WriteHeader(status)
	writer.Write(d) // nolint: errcheck
}

// Decodes request body as a flat string map.
// Empty body is allowed.
func readInput(request *http.Request) (map[string]string, error) {
	input := make(map[string]string)
	if nil == request.Body {
		return input, nil
	}

	err := json.NewDecoder(request.Body).Decode(&input)
	if err != nil && err != io.EOF {
		return nil, &ErrBadRequest{}
	}

	return input, nil
}

// Adapter which sends access logs and recovered panics to the system logger.
type logWriter struct {
	logger common.ILoggerProvider
}

// Write accepts a single access log line.
func (w *logWriter) Write(p []byte) (int, error) {
	w.logger.Debug("REST invocation", common.LogURLToken, strings.TrimSpace(string(p)),
		common.LogSystemToken, logSystem)
	return len(p), nil
}

// Println accepts recovered panic.
func (w *logWriter) Println(v ...interface{}) {
	w.logger.Error("Recovered from panic", errors.New(fmt.Sprint(v...)), common.LogSystemToken, logSystem)
}

// Authz middleware.
func (s *MinerHubServer) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, err := s.Settings.Security().GetUser(r.Header)
		if err != nil {
			s.Logger.Warn("Unauthorized access attempt", common.LogURLToken, r.RequestURI,
				common.LogSystemToken, logSystem)
			respondUnAuth(w)
			return
		}

		ctx := context.WithValue(r.Context(), ctxtUserName, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// Gets current user out of context.
func getContextUser(request *http.Request) string {
	usr, _ := request.Context().Value(ctxtUserName).(string)
	return usr
}
