package discovery

import (
	"context"
	"net"
	"strconv"
	"sync"
	"time"
)

// Port scanner with bounded concurrency.
type portScanner struct {
	timeout     time.Duration
	concurrency int
}

// Checks whether any of the ports is open.
func (ps *portScanner) isOpen(ctx context.Context, host string, ports []int) bool {
	dialer := &net.Dialer{Timeout: ps.timeout}
	for _, p := range ports {
		conn, err := dialer.DialContext(ctx, "tcp", net.JoinHostPort(host, strconv.Itoa(p)))
		if err != nil {
			continue
		}

		conn.Close() // nolint: errcheck
		return true
	}

	return false
}

// Returns hosts with at least one open port, in the input order.
func (ps *portScanner) scan(ctx context.Context, hosts []string, ports []int) []string {
	open := make([]bool, len(hosts))
	sem := make(chan struct{}, ps.concurrency)
	wg := sync.WaitGroup{}

	for ii, h := range hosts {
		if ctx.Err() != nil {
			break
		}

		wg.Add(1)
		sem <- struct{}{}
		go func(idx int, host string) {
			defer wg.Done()
			defer func() { <-sem }()
			open[idx] = ps.isOpen(ctx, host, ports)
		}(ii, h)
	}

	wg.Wait()

	res := make([]string, 0)
	for ii, h := range hosts {
		if open[ii] {
			res = append(res, h)
		}
	}

	return res
}
