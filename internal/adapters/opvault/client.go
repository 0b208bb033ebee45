// Package opvault wraps the 1Password op CLI: it locates the binary, picks
// up the session token the hook placed in the environment, and decodes item
// payloads.
package opvault

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"go.husk.sh/husk/internal/core/domain"
	"go.husk.sh/husk/internal/core/ports"
	"go.trai.ch/zerr"
)

// cliName is the executable the client shells out to.
const cliName = "op"

// Which locates the op executable on PATH.
func Which() (string, error) {
	path, err := exec.LookPath(cliName)
	if err != nil {
		return "", zerr.Wrap(err, domain.ErrVaultCLIMissing.Error())
	}
	return path, nil
}

// Client implements ports.VaultClient. The binary and session token are
// resolved per call, so a signin performed earlier in the session is picked
// up without reconstructing the client.
type Client struct {
	logger  ports.Logger
	command string
}

// Option configures a Client.
type Option func(*Client)

// WithCommand pins the op executable path instead of searching PATH.
func WithCommand(path string) Option {
	return func(c *Client) {
		c.command = path
	}
}

// NewClient creates a Client. Locating the binary is deferred until the
// first call so construction never fails on machines without op.
func NewClient(logger ports.Logger, opts ...Option) *Client {
	c := &Client{logger: logger}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var _ ports.VaultClient = (*Client)(nil)

// Item fetches and decodes the vault item with the given uuid.
func (c *Client) Item(ctx context.Context, uuid string) (*domain.VaultItem, error) {
	command := c.command
	if command == "" {
		var err error
		if command, err = Which(); err != nil {
			return nil, err
		}
	}

	token, err := SessionFromEnv(os.Environ())
	if err != nil {
		return nil, err
	}

	c.logger.Debug("fetching vault item " + uuid)

	cmd := exec.CommandContext(ctx, command, "get", "item", "--session", token, uuid) //nolint:gosec // resolved op path
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		getErr := zerr.Wrap(err, domain.ErrVaultItemGet.Error())
		getErr = zerr.With(getErr, "uuid", uuid)
		getErr = zerr.With(getErr, "stderr", strings.TrimSpace(stderr.String()))
		getErr = zerr.With(getErr, "exit_code", strconv.Itoa(exitCode(err)))
		return nil, getErr
	}

	item, err := decodeItem(stdout.Bytes())
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrVaultItemParse.Error()), "uuid", uuid)
	}
	return item, nil
}

// Password fetches the item and extracts its password detail.
func (c *Client) Password(ctx context.Context, uuid string) (string, error) {
	item, err := c.Item(ctx, uuid)
	if err != nil {
		return "", err
	}
	return item.Password()
}

func exitCode(err error) int {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	return -1
}
