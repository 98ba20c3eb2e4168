package steamcmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"sync"
	"time"

	"github.com/bnema/workshop-sync/internal/domain"
	"github.com/bnema/workshop-sync/internal/ports"
	"github.com/rs/zerolog"
)

const (
	DefaultPath         = "steamcmd"
	DefaultCloseTimeout = 10 * time.Second

	quitCommand = "quit"
	lineBuffer  = 64
)

type SessionConfig struct {
	Path         string
	Args         []string
	CloseTimeout time.Duration
	Logger       zerolog.Logger
}

type lineResult struct {
	line string
	err  error
}

// Session is a line-buffered conversation with a running steamcmd process.
// It is not safe for concurrent use: callers issue one request and read its
// answer before sending the next.
type Session struct {
	stdin        io.WriteCloser
	writer       *bufio.Writer
	lines        chan lineResult
	done         chan struct{}
	wait         func() error
	kill         func() error
	closeTimeout time.Duration
	logger       zerolog.Logger
	closeOnce    sync.Once
	closeErr     error
}

var _ ports.LineSession = (*Session)(nil)

// Open starts the download client with piped stdin and stdout. Stderr is
// forwarded to the logger.
func Open(ctx context.Context, cfg SessionConfig) (*Session, error) {
	path := cfg.Path
	if path == "" {
		path = DefaultPath
	}

	resolved, err := exec.LookPath(path)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %w", domain.ErrProcessLaunch, path, err)
	}

	cmd := exec.CommandContext(ctx, resolved, cfg.Args...)
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("%w: stdin pipe: %w", domain.ErrProcessLaunch, err)
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("%w: stdout pipe: %w", domain.ErrProcessLaunch, err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return nil, fmt.Errorf("%w: stderr pipe: %w", domain.ErrProcessLaunch, err)
	}

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("%w %q: %w", domain.ErrProcessLaunch, resolved, err)
	}
	cfg.Logger.Debug().Str("path", resolved).Int("pid", cmd.Process.Pid).Msg("steamcmd started")

	session := newSession(stdin, stdout, cmd.Wait, cmd.Process.Kill, cfg)
	go session.forward(stderr)

	return session, nil
}

func newSession(stdin io.WriteCloser, stdout io.Reader, wait func() error, kill func() error, cfg SessionConfig) *Session {
	if cfg.CloseTimeout <= 0 {
		cfg.CloseTimeout = DefaultCloseTimeout
	}

	s := &Session{
		stdin:        stdin,
		writer:       bufio.NewWriter(stdin),
		lines:        make(chan lineResult, lineBuffer),
		done:         make(chan struct{}),
		wait:         wait,
		kill:         kill,
		closeTimeout: cfg.CloseTimeout,
		logger:       cfg.Logger,
	}
	go s.pump(stdout)

	return s
}

func (s *Session) SendLine(ctx context.Context, line string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if _, err := s.writer.WriteString(line + "\n"); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrChannelWrite, err)
	}
	if err := s.writer.Flush(); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrChannelWrite, err)
	}

	return nil
}

// ReadLine returns the next output line without its line terminator. It
// returns io.EOF once the process closed stdout.
func (s *Session) ReadLine(ctx context.Context) (string, error) {
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res, ok := <-s.lines:
		if !ok {
			return "", io.EOF
		}
		if res.err != nil {
			return "", fmt.Errorf("%w: %w", domain.ErrChannelRead, res.err)
		}
		return res.line, nil
	}
}

// Close asks the client to quit and waits for it to exit, killing it after
// the close timeout.
func (s *Session) Close() error {
	s.closeOnce.Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.closeTimeout)
		defer cancel()

		if err := s.SendLine(ctx, quitCommand); err != nil {
			s.logger.Debug().Err(err).Msg("send quit to steamcmd")
		}
		_ = s.stdin.Close()
		close(s.done)

		exited := make(chan error, 1)
		go func() { exited <- s.wait() }()

		select {
		case err := <-exited:
			if err != nil {
				s.logger.Debug().Err(err).Msg("steamcmd exited")
			}
		case <-ctx.Done():
			s.logger.Warn().Dur("timeout", s.closeTimeout).Msg("steamcmd did not exit, killing it")
			if err := s.kill(); err != nil {
				s.closeErr = fmt.Errorf("kill steamcmd: %w", err)
			}
		}
	})

	return s.closeErr
}

func (s *Session) pump(stdout io.Reader) {
	defer close(s.lines)

	reader := bufio.NewReader(stdout)
	for {
		line, err := reader.ReadString('\n')
		if line != "" && !s.deliver(lineResult{line: trimLineEnd(line)}) {
			return
		}
		if err != nil {
			if !errors.Is(err, io.EOF) {
				s.deliver(lineResult{err: err})
			}
			return
		}
	}
}

func (s *Session) deliver(res lineResult) bool {
	select {
	case s.lines <- res:
		return true
	case <-s.done:
		return false
	}
}

func (s *Session) forward(stderr io.Reader) {
	scanner := bufio.NewScanner(stderr)
	for scanner.Scan() {
		s.logger.Debug().Str("stream", "stderr").Msg(scanner.Text())
	}
}

func trimLineEnd(line string) string {
	line = strings.TrimSuffix(line, "\n")
	return strings.TrimSuffix(line, "\r")
}
