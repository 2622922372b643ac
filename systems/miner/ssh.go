package miner

import (
	"context"
	"net"
	"strings"
	"time"

	"github.com/go-home-io/minerhub/plugins/miner"
	"github.com/pkg/errors"
	"golang.org/x/crypto/ssh"
)

// Default SSH port.
const sshPort = 22

// Remote commands.
const (
	sshHostnameCmd = "cat /proc/sys/kernel/hostname"
	sshMACCmd      = "cat /sys/class/net/eth0/address"
)

// Remote shell interface client.
type sshClient struct {
	address string
	config  *ssh.ClientConfig
}

// Constructs a new SSH client.
func newSSHClient(address string, creds *miner.Credentials, timeout time.Duration) *sshClient {
	return &sshClient{
		address: address,
		config: &ssh.ClientConfig{
			User:            creds.Username,
			Auth:            []ssh.AuthMethod{ssh.Password(creds.PasswordOrEmpty())},
			HostKeyCallback: ssh.InsecureIgnoreHostKey(), // nolint: gosec
			Timeout:         timeout,
		},
	}
}

// Executes a single command and returns trimmed output.
func (s *sshClient) run(ctx context.Context, cmd string) (string, error) {
	type result struct {
		out string
		err error
	}

	done := make(chan result, 1)
	go func() {
		out, err := s.exec(cmd)
		done <- result{out: out, err: err}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-done:
		return r.out, r.err
	}
}

// Opens connection and runs the command.
func (s *sshClient) exec(cmd string) (string, error) {
	client, err := ssh.Dial("tcp", s.address, s.config)
	if err != nil {
		return "", errors.Wrap(err, "ssh dial failed")
	}
	defer client.Close() // nolint: errcheck

	session, err := client.NewSession()
	if err != nil {
		return "", errors.Wrap(err, "ssh session failed")
	}
	defer session.Close() // nolint: errcheck

	out, err := session.Output(cmd)
	if err != nil {
		return "", errors.Wrapf(err, "ssh command %s failed", cmd)
	}

	return strings.TrimSpace(string(out)), nil
}

// Requests hostname.
func (s *sshClient) hostname(ctx context.Context) (string, error) {
	return s.run(ctx, sshHostnameCmd)
}

// Requests MAC address of the primary adapter.
func (s *sshClient) mac(ctx context.Context) (string, error) {
	return s.run(ctx, sshMACCmd)
}

// Checks whether SSH port is open.
func portOpen(ctx context.Context, address string, timeout time.Duration) bool {
	d := &net.Dialer{Timeout: timeout}
	conn, err := d.DialContext(ctx, "tcp", address)
	if err != nil {
		return false
	}

	conn.Close() // nolint: errcheck
	return true
}
