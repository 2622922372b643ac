package miner

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/go-home-io/minerhub/plugins/helpers"
	"github.com/pkg/errors"
)

// Cleans up raw cgminer responses.
// Strips the terminating zero byte left by the API client, some firmwares also
// glue STATS objects without a comma.
func sanitize(raw []byte) []byte {
	raw = bytes.TrimRight(raw, "\x00 \r\n\t")
	return bytes.Replace(raw, []byte("}{"), []byte("},{"), -1)
}

// Selects a single json object from the payload.
func decodeObject(payload []byte, selector string) (map[string]interface{}, error) {
	raw, err := helpers.JQ(payload, selector)
	if err != nil {
		return nil, errors.Wrapf(err, "selector %s", selector)
	}

	decoder := json.NewDecoder(bytes.NewReader(raw))
	decoder.UseNumber()
	obj := make(map[string]interface{})
	if err := decoder.Decode(&obj); err != nil {
		return nil, errors.Wrapf(err, "selector %s", selector)
	}

	return obj, nil
}

// Converts raw API value into a float.
// Dash separated lists and arrays yield the maximum value.
func toFloat(v interface{}) *float64 {
	switch t := v.(type) {
	case float64:
		return &t
	case int:
		f := float64(t)
		return &f
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return nil
		}
		return &f
	case string:
		return parseNumberList(t)
	case []interface{}:
		var res *float64
		for _, e := range t {
			res = maxFloat(res, toFloat(e))
		}
		return res
	}

	return nil
}

// Parses "58", "58-60-61" or "1350 W" values.
func parseNumberList(s string) *float64 {
	fields := strings.Fields(strings.TrimSpace(s))
	if 0 == len(fields) {
		return nil
	}

	var res *float64
	for _, p := range strings.Split(fields[0], "-") {
		f, err := strconv.ParseFloat(p, 64)
		if err != nil {
			continue
		}

		res = maxFloat(res, &f)
	}

	return res
}

// Returns bigger of two optional values.
func maxFloat(a, b *float64) *float64 {
	if nil == a {
		return b
	}

	if nil == b || *a >= *b {
		return a
	}

	return b
}

// Returns the first known value of the listed keys.
func firstFloat(obj map[string]interface{}, keys ...string) *float64 {
	for _, k := range keys {
		if v := toFloat(obj[k]); v != nil {
			return v
		}
	}

	return nil
}

// Returns string representation of the raw value.
func toString(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(t)
	default:
		return fmt.Sprint(t)
	}
}

// Converts hashrate into TH/s.
func toTeraHash(v *float64, unit string) *float64 {
	if nil == v {
		return nil
	}

	var r float64
	switch strings.ToUpper(strings.TrimSpace(unit)) {
	case "TH/S", "THS":
		r = *v
	case "MH/S", "MHS":
		r = *v / 1000000
	default:
		r = *v / 1000
	}

	r = roundTo(r, 3)
	return &r
}

// Rounds value to the given precision.
func roundTo(val float64, precision int) float64 {
	p := math.Pow(10, float64(precision))
	return math.Round(val*p) / p
}

// Returns sorted numeric suffixes of keys with the given prefix.
func indexedKeys(obj map[string]interface{}, prefix string) []int {
	res := make([]int, 0)
	for k := range obj {
		if !strings.HasPrefix(k, prefix) {
			continue
		}

		n, err := strconv.Atoi(strings.TrimPrefix(k, prefix))
		if err != nil {
			continue
		}

		res = append(res, n)
	}

	sort.Ints(res)
	return res
}

// Splits reported miner type into make and model.
func splitType(minerType string) (string, string) {
	parts := strings.SplitN(strings.TrimSpace(minerType), " ", 2)
	if "" == parts[0] {
		return "", ""
	}

	if 1 == len(parts) {
		return parts[0], ""
	}

	return parts[0], strings.TrimSpace(parts[1])
}

// Normalizes MAC address.
func normalizeMAC(mac string) string {
	return strings.ToUpper(strings.TrimSpace(mac))
}
