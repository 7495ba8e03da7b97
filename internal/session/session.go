// Package session drives one editing run over an input file: it resumes from
// the result log, auto-fills remembered texts and prompts for the rest.
package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"line-translator/internal/editor"
	"line-translator/internal/parser"
	"line-translator/internal/persist"
	"line-translator/internal/resume"
	"line-translator/internal/textutil"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// ErrInputMissing is returned by Open when the input file does not exist.
var ErrInputMissing = errors.New("input file not found")

// LineEditor produces a decision for one prompt.
type LineEditor interface {
	Edit(p editor.Prompt) (editor.Decision, error)
}

// Options configures a session.
type Options struct {
	InputFile  string
	ResultFile string
	// Out receives status messages. Defaults to os.Stdout.
	Out io.Writer
}

// Session is the state of one run. Everything except Lines is rebuilt from
// the result log on every run.
type Session struct {
	Lines     []string
	Log       *persist.ResultLog
	Memo      map[string]string
	Start     int
	Marker    string
	HasMarker bool

	resultFile string
	out        io.Writer
}

// Summary reports what a run did.
type Summary struct {
	// RunID tags every log line of the run.
	RunID       string
	Total       int
	Start       int
	Next        int
	Written     int
	Edited      int
	AutoFilled  int
	Skipped     int
	PassThrough int
	Cancelled   bool
	NothingToDo bool
}

// Open loads the input, reads the result log if present and computes the
// resume point and memo.
func Open(opts Options) (*Session, error) {
	if _, err := os.Stat(opts.InputFile); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrInputMissing, opts.InputFile)
		}
		return nil, fmt.Errorf("stat input: %w", err)
	}

	lines, err := parser.ReadLines(opts.InputFile)
	if err != nil {
		return nil, fmt.Errorf("load input: %w", err)
	}

	logLines, err := parser.ReadLinesIfExists(opts.ResultFile)
	if err != nil {
		return nil, fmt.Errorf("load result log: %w", err)
	}

	marker, hasMarker := resume.LastIdentifier(logLines)
	out := opts.Out
	if out == nil {
		out = os.Stdout
	}

	s := &Session{
		Lines:      lines,
		Memo:       resume.BuildMemo(logLines),
		Start:      resume.StartIndex(lines, marker, hasMarker),
		Marker:     marker,
		HasMarker:  hasMarker,
		resultFile: opts.ResultFile,
		out:        out,
	}

	log.Debug().
		Int("lines", len(lines)).
		Int("log_lines", len(logLines)).
		Int("memo", len(s.Memo)).
		Str("marker", marker).
		Int("start", s.Start).
		Msg("Session opened")

	return s, nil
}

// Run processes lines from Start to the end. Each decided line is on disk
// before the next one is shown. Cancellation, by the editor or through ctx,
// stops the loop between lines and is not an error.
func (s *Session) Run(ctx context.Context, ed LineEditor) (Summary, error) {
	sum := Summary{RunID: ulid.Make().String(), Total: len(s.Lines), Start: s.Start, Next: s.Start}
	lg := log.With().Str("run", sum.RunID).Logger()

	if s.Start >= len(s.Lines) {
		sum.NothingToDo = true
		fmt.Fprintln(s.out, "Nothing to do: all lines already processed.")
		return sum, nil
	}

	if s.HasMarker {
		fmt.Fprintf(s.out, "Resuming at line %d/%d (last processed: %s)\n", s.Start+1, len(s.Lines), s.Marker)
	} else {
		fmt.Fprintf(s.out, "Starting at line %d/%d\n", s.Start+1, len(s.Lines))
	}

	rl, err := persist.Open(s.resultFile)
	if err != nil {
		return sum, err
	}
	s.Log = rl
	defer func() {
		if err := rl.Close(); err != nil {
			lg.Warn().Err(err).Str("path", s.resultFile).Msg("Failed to close result log")
		}
		s.Log = nil
	}()

	for idx := s.Start; idx < len(s.Lines); idx++ {
		if ctx.Err() != nil {
			sum.Cancelled = true
			break
		}

		e := parser.ParseLine(idx, s.Lines[idx])
		d, auto, err := s.decide(e, ed)
		if errors.Is(err, editor.ErrInterrupted) {
			sum.Cancelled = true
			break
		}
		if err != nil {
			return sum, fmt.Errorf("line %d: %w", idx+1, err)
		}

		wrote, err := s.Log.Commit(e, d)
		if err != nil {
			return sum, fmt.Errorf("line %d: %w", idx+1, err)
		}
		sum.Next = idx + 1

		switch {
		case e.PassThrough():
			sum.PassThrough++
		case auto:
			sum.AutoFilled++
		case d.Action == editor.ActionSkip:
			sum.Skipped++
		default:
			sum.Edited++
		}
		if wrote {
			sum.Written++
		}

		if d.Action == editor.ActionReplace && !e.PassThrough() {
			s.Memo[e.Quote.Text] = d.Text
		}

		if !e.PassThrough() {
			lg.Debug().
				Int("line", idx+1).
				Str("id", e.ID).
				Str("action", d.Action.String()).
				Bool("auto", auto).
				Str("text", textutil.Truncate(e.Quote.Text, 40)).
				Msg("Line decided")
		}
	}

	s.report(lg, sum)
	return sum, nil
}

// decide returns the memo value for texts seen before and asks the editor otherwise.
func (s *Session) decide(e parser.Entry, ed LineEditor) (editor.Decision, bool, error) {
	if e.PassThrough() {
		return editor.Keep(), false, nil
	}
	if v, ok := s.Memo[e.Quote.Text]; ok {
		return editor.Replace(v), true, nil
	}

	d, err := ed.Edit(editor.Prompt{Entry: e, Position: e.Index + 1, Total: len(s.Lines)})
	return d, false, err
}

func (s *Session) report(lg zerolog.Logger, sum Summary) {
	lg.Info().
		Int("written", sum.Written).
		Int("edited", sum.Edited).
		Int("auto_filled", sum.AutoFilled).
		Int("skipped", sum.Skipped).
		Int("pass_through", sum.PassThrough).
		Bool("cancelled", sum.Cancelled).
		Msg("Session finished")

	if sum.Cancelled {
		fmt.Fprintf(s.out, "\nStopped at line %d/%d. %d lines saved to %s; run again to resume.\n",
			sum.Next+1, sum.Total, sum.Written, s.resultFile)
		return
	}
	fmt.Fprintf(s.out, "\nDone. %d lines written to %s (%d edited, %d auto-filled, %d skipped). Good job!\n",
		sum.Written, s.resultFile, sum.Edited, sum.AutoFilled, sum.Skipped)
}
