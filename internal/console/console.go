// Package console runs the interactive line-per-request recommendation session.
package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/listenupapp/bookrec/internal/domain"
	"github.com/listenupapp/bookrec/internal/id"
	"github.com/listenupapp/bookrec/internal/logger"
	"github.com/listenupapp/bookrec/internal/present"
	"github.com/listenupapp/bookrec/internal/profile"
	"github.com/listenupapp/bookrec/internal/recommend"
)

// DefaultExitToken ends a session when typed on its own line.
const DefaultExitToken = "exit"

// Prompt is printed before every input line.
const Prompt = "> "

// Farewell is printed when the session ends, whether by exit token or end of input.
const Farewell = "Goodbye!"

// UnavailableMessage is shown when the catalog cannot answer a query.
const UnavailableMessage = "The catalog is unavailable right now, please try again."

// maxLineBytes bounds a single input line.
const maxLineBytes = 64 * 1024

// Recommender answers one parsed profile.
type Recommender interface {
	Recommend(ctx context.Context, p domain.UserProfile) (*recommend.Result, error)
}

// Options configures a Session.
type Options struct {
	In        io.Reader
	Out       io.Writer
	ExitToken string // compared case-insensitively after trimming (default: exit)
}

// Session reads profile lines and writes recommendations until the exit token or EOF.
type Session struct {
	recommender Recommender
	logger      *logger.Logger
	in          io.Reader
	out         io.Writer
	exitToken   string
}

// New creates a console session.
func New(recommender Recommender, log *logger.Logger, opts Options) *Session {
	if log == nil {
		log = logger.Discard()
	}
	exitToken := strings.TrimSpace(opts.ExitToken)
	if exitToken == "" {
		exitToken = DefaultExitToken
	}
	return &Session{
		recommender: recommender,
		logger:      log,
		in:          opts.In,
		out:         opts.Out,
		exitToken:   exitToken,
	}
}

// Greeting returns the text shown when the session starts.
func (s *Session) Greeting() string {
	return fmt.Sprintf("Enter your age and favourite genres, for example: %s\nType %q to quit.", present.Example, s.exitToken)
}

// Run processes lines until the exit token, end of input or context cancellation.
// Query failures are reported to the user and the session continues; only I/O
// errors and cancellation end it early.
func (s *Session) Run(ctx context.Context) error {
	if _, err := fmt.Fprintln(s.out, s.Greeting()); err != nil {
		return err
	}

	scanner := bufio.NewScanner(s.in)
	scanner.Buffer(make([]byte, 0, 4096), maxLineBytes)

	farewell := Farewell
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if _, err := io.WriteString(s.out, Prompt); err != nil {
			return err
		}
		if !scanner.Scan() {
			// The prompt is still open on the current line.
			farewell = "\n" + Farewell
			break
		}

		line := strings.TrimSpace(scanner.Text())
		if strings.EqualFold(line, s.exitToken) {
			break
		}
		if err := s.handleLine(ctx, line); err != nil {
			return err
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	_, err := fmt.Fprintln(s.out, farewell)
	return err
}

// handleLine answers one input line. The returned error is a write failure only.
func (s *Session) handleLine(ctx context.Context, line string) error {
	reqLog := s.logger.ForRequest(id.NewRequestID())
	start := time.Now()

	res, err := s.recommender.Recommend(ctx, profile.Parse(line))
	if err != nil {
		reqLog.ErrorContext(ctx, "recommendation failed", "error", err)
		_, werr := fmt.Fprintln(s.out, UnavailableMessage)
		return werr
	}

	reqLog.InfoContext(ctx, "recommendation served",
		"outcome", res.Outcome.String(),
		"results", len(res.Recommendations),
		"duration", time.Since(start),
	)
	return present.Render(s.out, res)
}
