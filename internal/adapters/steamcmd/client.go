package steamcmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/bnema/workshop-sync/internal/domain"
	"github.com/bnema/workshop-sync/internal/ports"
	"github.com/rs/zerolog"
)

// DefaultAppID is RimWorld's Steam application id.
const DefaultAppID uint64 = 294100

const (
	DefaultLoginTimeout    = 2 * time.Minute
	DefaultDownloadTimeout = 30 * time.Minute

	LoginCommand       = "login anonymous"
	LoginSuccessMarker = "Waiting for user info...OK"
)

type DownloadState int

const (
	DownloadIdle DownloadState = iota
	DownloadRequested
	DownloadSucceeded
	DownloadFailed
)

func (s DownloadState) String() string {
	switch s {
	case DownloadIdle:
		return "idle"
	case DownloadRequested:
		return "requested"
	case DownloadSucceeded:
		return "succeeded"
	case DownloadFailed:
		return "failed"
	default:
		return fmt.Sprintf("DownloadState(%d)", int(s))
	}
}

// MatchDownloadLine classifies one line of output received while a download
// of id is in flight. Lines about other items never change the state.
func MatchDownloadLine(line string, id domain.ItemID) DownloadState {
	switch {
	case strings.HasPrefix(line, fmt.Sprintf("Success. Downloaded item %s to", id)):
		return DownloadSucceeded
	case strings.HasPrefix(line, fmt.Sprintf("ERROR! Download item %s failed", id)):
		return DownloadFailed
	default:
		return DownloadRequested
	}
}

func DownloadCommand(appID uint64, id domain.ItemID) string {
	return fmt.Sprintf("workshop_download_item %d %s", appID, id)
}

type ClientConfig struct {
	AppID uint64
	// Zero timeouts leave the read loops unbounded.
	LoginTimeout    time.Duration
	DownloadTimeout time.Duration
	Logger          zerolog.Logger
}

// Client speaks the steamcmd console protocol over a line session.
type Client struct {
	session ports.LineSession
	cfg     ClientConfig
}

var _ ports.WorkshopClient = (*Client)(nil)

func NewClient(session ports.LineSession, cfg ClientConfig) *Client {
	if cfg.AppID == 0 {
		cfg.AppID = DefaultAppID
	}

	return &Client{session: session, cfg: cfg}
}

func (c *Client) Login(ctx context.Context) error {
	ctx, cancel := bounded(ctx, c.cfg.LoginTimeout)
	defer cancel()

	c.cfg.Logger.Info().Msg("waiting for steamcmd login")
	if err := c.session.SendLine(ctx, LoginCommand); err != nil {
		return fmt.Errorf("send login: %w", err)
	}

	for {
		line, err := c.session.ReadLine(ctx)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return fmt.Errorf("%w: steamcmd exited before confirming login", domain.ErrLoginFailed)
			}
			return c.readError(ctx, err, "login", c.cfg.LoginTimeout)
		}

		c.logLine(c.cfg.Logger, line)
		if line == LoginSuccessMarker {
			c.cfg.Logger.Info().Msg("logged into steamcmd")
			return nil
		}
	}
}

func (c *Client) Download(ctx context.Context, item domain.Item) error {
	ctx, cancel := bounded(ctx, c.cfg.DownloadTimeout)
	defer cancel()

	logger := c.cfg.Logger.With().Stringer("mod_id", item.ID).Logger()
	if err := c.session.SendLine(ctx, DownloadCommand(c.cfg.AppID, item.ID)); err != nil {
		return fmt.Errorf("send download request: %w", err)
	}

	state := DownloadRequested
	for state == DownloadRequested {
		line, err := c.session.ReadLine(ctx)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return fmt.Errorf("%w: steamcmd exited while downloading %s", domain.ErrChannelRead, item.ID)
			}
			return c.readError(ctx, err, "download "+item.ID.String(), c.cfg.DownloadTimeout)
		}

		c.logLine(logger, line)
		state = MatchDownloadLine(line, item.ID)
	}

	if state == DownloadFailed {
		return &domain.DownloadError{ItemID: item.ID, Name: item.Name}
	}
	return nil
}

func (c *Client) readError(ctx context.Context, err error, op string, timeout time.Duration) error {
	if errors.Is(context.Cause(ctx), domain.ErrProtocolTimeout) {
		return fmt.Errorf("%w: %s not confirmed within %s", domain.ErrProtocolTimeout, op, timeout)
	}
	return fmt.Errorf("%s: %w", op, err)
}

func (c *Client) logLine(logger zerolog.Logger, line string) {
	logger.Debug().Msgf("steamcmd -> %s", line)
}

func bounded(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeoutCause(ctx, timeout, domain.ErrProtocolTimeout)
}
