// Package deploy pushes a rendered site to a remote host over SSH.
//
// Authentication goes through the local SSH agent; no key files are read or
// passwords prompted. The output directory is streamed as a gzipped tar into
// an extraction command on the remote side.
package deploy

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/user"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/ssh"
	"golang.org/x/crypto/ssh/agent"

	"github.com/chaofengc/scholar/internal/site"
)

// connectTimeout bounds the TCP and SSH handshake.
const connectTimeout = 15 * time.Second

// Client deploys over SSH using keys held by the local agent.
type Client struct {
	agentConn net.Conn
	signers   []ssh.Signer
	log       zerolog.Logger
}

// NewClient connects to the SSH agent and collects its signers.
func NewClient(log zerolog.Logger) (*Client, error) {
	authSock := os.Getenv("SSH_AUTH_SOCK")
	if authSock == "" {
		return nil, fmt.Errorf("SSH agent not running. Start with `eval $(ssh-agent)` and add keys with `ssh-add`")
	}

	conn, err := net.Dial("unix", authSock)
	if err != nil {
		return nil, fmt.Errorf("cannot connect to SSH agent at %s: %w", authSock, err)
	}

	agentClient := agent.NewClient(conn)
	keys, err := agentClient.List()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("listing SSH agent keys: %w", err)
	}
	if len(keys) == 0 {
		conn.Close()
		return nil, fmt.Errorf("SSH agent has no keys. Add keys with `ssh-add`")
	}

	signers, err := agentClient.Signers()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("getting SSH agent signers: %w", err)
	}

	return &Client{agentConn: conn, signers: signers, log: log}, nil
}

// Close releases the agent connection.
func (c *Client) Close() error {
	if c.agentConn != nil {
		return c.agentConn.Close()
	}
	return nil
}

// Push uploads srcDir to the target path, replacing its previous contents.
func (c *Client) Push(ctx context.Context, target site.DeployTarget, srcDir string) error {
	if target.Host == "" || target.Path == "" {
		return fmt.Errorf("deploy target needs host and path in %s", site.ConfigFile)
	}

	username := target.User
	if username == "" {
		if u, err := user.Current(); err == nil {
			username = u.Username
		}
	}

	// InsecureIgnoreHostKey disables host key verification. This is acceptable
	// for pushing a public site to a host the user already controls. For
	// untrusted networks, use a known_hosts file instead.
	clientConfig := &ssh.ClientConfig{
		User:            username,
		Auth:            []ssh.AuthMethod{ssh.PublicKeys(c.signers...)},
		HostKeyCallback: ssh.InsecureIgnoreHostKey(),
		Timeout:         connectTimeout,
	}

	addr := net.JoinHostPort(target.Host, strconv.Itoa(target.SSHPort()))
	client, err := ssh.Dial("tcp", addr, clientConfig)
	if err != nil {
		return wrapDialError(err, target.Host)
	}
	defer client.Close()

	session, err := client.NewSession()
	if err != nil {
		return fmt.Errorf("creating SSH session on %s: %w", target.Host, err)
	}
	defer session.Close()

	stdin, err := session.StdinPipe()
	if err != nil {
		return fmt.Errorf("opening upload stream: %w", err)
	}

	cmd := uploadCommand(target.Path)
	if err := session.Start(cmd); err != nil {
		return fmt.Errorf("starting remote extraction on %s: %w", target.Host, err)
	}

	c.log.Info().Str("host", target.Host).Str("path", target.Path).Msg("uploading site")
	packErr := Pack(ctx, srcDir, stdin)
	closeErr := stdin.Close()
	waitErr := session.Wait()

	if packErr != nil {
		return fmt.Errorf("packing %s: %w", srcDir, packErr)
	}
	if closeErr != nil {
		return fmt.Errorf("finishing upload: %w", closeErr)
	}
	if waitErr != nil {
		return fmt.Errorf("remote extraction failed on %s: %w", target.Host, waitErr)
	}
	return nil
}

// uploadCommand builds the remote shell command that receives the archive.
// The previous deployment is cleared so deleted pages do not linger.
func uploadCommand(remotePath string) string {
	q := shellQuote(remotePath)
	return fmt.Sprintf("mkdir -p %s && rm -rf %s/* && tar -xzf - -C %s", q, q, q)
}

// shellQuote single-quotes a path for the remote shell.
func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

// wrapDialError produces actionable error messages for common SSH failures.
func wrapDialError(err error, host string) error {
	errStr := err.Error()
	switch {
	case strings.Contains(errStr, "no supported methods remain"):
		return fmt.Errorf("SSH authentication failed for %s. Check ~/.ssh/config and ensure your key is authorized", host)
	case strings.Contains(errStr, "i/o timeout") || strings.Contains(errStr, "connection timed out"):
		return fmt.Errorf("connection to %s timed out", host)
	case strings.Contains(errStr, "connection refused"):
		return fmt.Errorf("connection refused by %s — is SSH running on the server?", host)
	default:
		return fmt.Errorf("SSH error connecting to %s: %w", host, err)
	}
}
