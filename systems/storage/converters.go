package storage

import (
	"math"

	"github.com/go-home-io/minerhub/plugins/common"
)

// Single stored value.
type point struct {
	timestamp int64
	value     float64
	known     bool
}

// Converts entity update into a stored value.
func toPoint(msg *common.MsgEntityUpdate) *point {
	p := &point{timestamp: msg.Timestamp}
	if nil != msg.Value && !math.IsNaN(*msg.Value) {
		p.value = *msg.Value
		p.known = true
	}

	return p
}

// Restores entity value from a stored one.
func fromPoint(p *point) *float64 {
	if !p.known {
		return nil
	}

	v := p.value
	return &v
}

// Appends a new value. Repeated value replaces the previous one
// only if the previous one is followed by a different value.
func appendPoint(points []*point, p *point) []*point {
	n := len(points)
	if n > 0 && points[n-1].timestamp > p.timestamp {
		return points
	}

	if n > 1 && same(points[n-1], p) && same(points[n-2], p) {
		points[n-1] = p
		return points
	}

	return append(points, p)
}

// Drops values older than from.
func trim(points []*point, from int64) []*point {
	ii := 0
	for ii < len(points) && points[ii].timestamp < from {
		ii++
	}

	if 0 == ii {
		return points
	}

	return append(make([]*point, 0, len(points)-ii), points[ii:]...)
}

func same(a *point, b *point) bool {
	return a.known == b.known && a.value == b.value
}
