package miner

import (
	"crypto/md5" // nolint: gosec
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const (
	rpcVersionResponse = `{"STATUS":[{"STATUS":"S","When":1,"Code":22,"Msg":"CGMiner versions"}],` +
		`"VERSION":[{"BMMiner":"2.0.0","API":"3.1","Miner":"16.8.1.3",` +
		`"CompileTime":"Fri Nov 17 17:37:49 CST 2017","Type":"Antminer S9"}],"id":1}`
	rpcSummaryResponse = `{"STATUS":[{"STATUS":"S","When":1,"Code":11,"Msg":"Summary"}],` +
		`"SUMMARY":[{"Elapsed":100,"GHS 5s":"13501.12","GHS av":13480.00}],"id":1}`
	rpcStatsResponse = `{"STATUS":[{"STATUS":"S","When":1,"Code":70,"Msg":"CGMiner stats"}],` +
		`"STATS":[{"BMMiner":"2.0.0","Miner":"16.8.1.3","Type":"Antminer S9"}` +
		`{"STATS":0,"ID":"BC50","Elapsed":100,"miner_count":3,` +
		`"temp6":58,"temp7":60,"temp8":0,"temp2_6":74,"temp2_7":76,"temp2_8":0,` +
		`"chain_rate1":"","chain_rate6":"4611.30","chain_rate7":"4500.70","chain_rate8":"",` +
		`"total_rateideal":13500.0}],"id":1}`

	webSystemInfoResponse = `{"minertype":"Antminer S9","nettype":"DHCP","netdevice":"eth0",` +
		`"macaddr":"d0:7e:fa:11:22:33","hostname":"antMiner","ipaddress":"10.0.0.5",` +
		`"system_filesystem_version":"Thu Jul 26 2018"}`
	webMinerStatusResponse = `{"summary":{"elapsed":"100","ghs5s":"13501.12","ghsav":"13480.00"},` +
		`"pools":[],"devs":[{"index":"6","chain_acn":"63","temp":"58","temp2":"74","chain_rate":"4611.30"},` +
		`{"index":"7","temp":"60","temp2":"76","chain_rate":"4500.70"},` +
		`{"index":"8","temp":"0","temp2":"0","chain_rate":""}]}`
	webStatsResponse = `{"STATUS":{"STATUS":"S","when":1,"Msg":"stats"},"INFO":{"type":"Antminer S19"},` +
		`"STATS":[{"elapsed":100,"rate_5s":95012.6,"rate_ideal":95000,"rate_unit":"GH/s","chain_num":3,` +
		`"chain":[{"index":0,"rate_real":31670.2,"temp_pcb":[50,52,61,63],"temp_chip":[65,67,76,78]},` +
		`{"index":1,"rate_real":31671.1,"temp_pcb":[51,53,60,64],"temp_chip":[66,68,75,79]},` +
		`{"index":2,"rate_real":31671.2,"temp_pcb":[49,50,58,62],"temp_chip":[64,65,73,77]}]}]}`
	webConfResponse = `{"bitmain-fan-ctrl":false,"bitmain-power-limit":"1400"}`
)

// Starts fake cgminer API server.
// Every reply is terminated with a zero byte, as cgminer does.
func fakeRPC(t *testing.T, responses map[string]string) (int, func()) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	go func() {
		for {
			conn, err := l.Accept()
			if err != nil {
				return
			}

			go func(c net.Conn) {
				defer c.Close() // nolint: errcheck
				req := struct {
					Command string `json:"command"`
				}{}
				if err := json.NewDecoder(c).Decode(&req); err != nil {
					return
				}

				c.Write([]byte(responses[req.Command] + "\x00")) // nolint: errcheck
			}(conn)
		}
	}()

	return l.Addr().(*net.TCPAddr).Port, func() { l.Close() } // nolint: errcheck
}

// Returns a port nobody listens on.
func closedPort(t *testing.T) int {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := l.Addr().(*net.TCPAddr).Port
	l.Close() // nolint: errcheck
	return port
}

// Parses client's Authorization header.
func parseAuthorization(header string) map[string]string {
	res := make(map[string]string)
	for _, part := range strings.Split(strings.TrimPrefix(header, "Digest "), ",") {
		kv := strings.SplitN(strings.TrimSpace(part), "=", 2)
		if 2 == len(kv) {
			res[kv[0]] = strings.Trim(kv[1], "\"")
		}
	}

	return res
}

// Returns hex MD5 of the string.
func md5Hash(s string) string {
	return fmt.Sprintf("%x", md5.Sum([]byte(s))) // nolint: gosec
}

// Starts fake stock firmware web server protected by digest auth.
func fakeWeb(t *testing.T, username, password string, responses map[string]string) (int, func()) {
	const realm = "antMiner Configuration"
	const nonce = "5b3c1f0e"

	mux := http.NewServeMux()
	for k, v := range responses {
		body := v
		mux.HandleFunc("/cgi-bin"+k, func(w http.ResponseWriter, r *http.Request) {
			a := parseAuthorization(r.Header.Get("Authorization"))
			ha1 := md5Hash(fmt.Sprintf("%s:%s:%s", username, realm, password))
			ha2 := md5Hash(fmt.Sprintf("%s:%s", r.Method, a["uri"]))
			expected := md5Hash(fmt.Sprintf("%s:%s:%s:%s:%s:%s", ha1, nonce, a["nc"], a["cnonce"], a["qop"], ha2))

			if a["username"] != username || a["response"] != expected {
				w.Header().Set("WWW-Authenticate",
					fmt.Sprintf(`Digest realm="%s", nonce="%s", qop="auth"`, realm, nonce))
				w.WriteHeader(http.StatusUnauthorized)
				return
			}

			w.Write([]byte(body)) // nolint: errcheck
		})
	}

	srv := httptest.NewServer(mux)
	return srv.Listener.Addr().(*net.TCPAddr).Port, srv.Close
}
