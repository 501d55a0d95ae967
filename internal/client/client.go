// Package client drives a session from a line-oriented terminal
package client

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/lox/blackjack/internal/display"
	"github.com/lox/blackjack/internal/session"
)

// Client reads one answer per line and feeds it to the session
type Client struct {
	session *session.Session
	display display.Display
	in      io.Reader
	logger  *log.Logger
}

// New creates a line-mode client
func New(s *session.Session, d display.Display, in io.Reader, logger *log.Logger) *Client {
	return &Client{
		session: s,
		display: d,
		in:      in,
		logger:  logger.WithPrefix("client"),
	}
}

// Run prompts and reads until the session ends, input closes, or ctx is
// cancelled. Closing input or cancelling counts as quitting.
func (c *Client) Run(ctx context.Context) error {
	lines := make(chan string)
	readErr := make(chan error, 1)
	done := make(chan struct{})
	defer close(done)

	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(c.in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-done:
				return
			}
		}
		readErr <- scanner.Err()
	}()

	for !c.session.Done() {
		c.display.Prompt(c.session.Prompt())

		select {
		case <-ctx.Done():
			c.logger.Info("Interrupted")
			c.session.Quit()
			return nil

		case line, ok := <-lines:
			if !ok {
				c.logger.Info("Input closed")
				c.session.Quit()
				if err := <-readErr; err != nil {
					return fmt.Errorf("reading input: %w", err)
				}
				return nil
			}

			c.logger.Debug("Input", "phase", c.session.Phase(), "line", line)
			if err := c.session.Handle(line); err != nil {
				return fmt.Errorf("session ended: %w", err)
			}
		}
	}

	return nil
}
