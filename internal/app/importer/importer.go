package importer

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/cockroachdb/errors"
	zlog "github.com/rs/zerolog/log"
)

var (
	ErrMalformedLine   = errors.New("malformed script line")
	ErrUnknownCommand  = errors.New("unknown script command")
	ErrMissingArgument = errors.New("missing script argument")
)

// AdminActor is the only actor whose lines are executed.
const AdminActor = "admin"

// LineError is the failure of one script line.
type LineError struct {
	Line int
	Text string
	Err  error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *LineError) Unwrap() error {
	return e.Err
}

// Report summarizes a script run.
type Report struct {
	Executed int
	Skipped  int
	Failures []*LineError
}

// Failed returns the number of failed lines.
func (r Report) Failed() int {
	return len(r.Failures)
}

// Importer runs admin scripts against a Target.
//
// A script line reads "actor, command words <arg <arg ...". Blank lines and
// lines starting with "#" are ignored. A failing line is reported and the run
// goes on with the next one.
type Importer struct {
	env      Env
	commands map[string]Command
}

// Option configures an Importer.
type Option func(*Importer)

// WithDefaultRandomSize sets the random playlist size used when a script omits it.
func WithDefaultRandomSize(n int) Option {
	return func(im *Importer) {
		im.env.DefaultRandomSize = n
	}
}

// New creates an Importer with every registered command.
func New(target Target, opts ...Option) *Importer {
	im := &Importer{
		env:      Env{Target: target, DefaultRandomSize: 10},
		commands: make(map[string]Command),
	}
	for name, factory := range GetRegistered() {
		im.commands[name] = factory()
	}
	for _, opt := range opts {
		opt(im)
	}
	return im
}

// RunFile runs the script stored at path.
func (im *Importer) RunFile(ctx context.Context, path string) (Report, error) {
	f, err := os.Open(path)
	if err != nil {
		return Report{}, errors.Wrapf(err, "failed to open script %s", path)
	}
	defer f.Close()

	return im.Run(ctx, f)
}

// Run executes every line of r. The returned error is only set when reading
// fails or ctx is done; line failures go to the report.
func (im *Importer) Run(ctx context.Context, r io.Reader) (Report, error) {
	var report Report

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		lineNo++
		text := scanner.Text()
		trimmed := strings.TrimSpace(text)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}

		executed, err := im.runLine(trimmed)
		switch {
		case err != nil:
			zlog.Warn().Msgf("script line failed: line=%d err=%v", lineNo, err)
			report.Failures = append(report.Failures, &LineError{Line: lineNo, Text: text, Err: err})
		case executed:
			report.Executed++
		default:
			report.Skipped++
		}
	}
	if err := scanner.Err(); err != nil {
		return report, errors.Wrap(err, "failed to read script")
	}

	zlog.Info().Msgf("script imported: executed=%d skipped=%d failed=%d", report.Executed, report.Skipped, report.Failed())
	return report, nil
}

// runLine executes a single non-blank line. It reports false for lines of
// other actors, which are skipped.
func (im *Importer) runLine(line string) (bool, error) {
	actor, rest, ok := strings.Cut(line, ",")
	if !ok {
		return false, errors.Mark(errors.Newf("no actor separator in %q", line), ErrMalformedLine)
	}
	if strings.TrimSpace(actor) != AdminActor {
		zlog.Debug().Msgf("script line skipped: actor=%s", strings.TrimSpace(actor))
		return false, nil
	}

	parts := strings.Split(rest, "<")
	name := strings.Join(strings.Fields(parts[0]), " ")
	cmd, ok := im.commands[name]
	if !ok {
		return false, errors.Mark(errors.Newf("unknown command %q", name), ErrUnknownCommand)
	}

	args := make([]string, 0, len(parts)-1)
	for _, p := range parts[1:] {
		args = append(args, strings.TrimSpace(p))
	}
	settings, err := bind(cmd, args)
	if err != nil {
		return false, err
	}
	if err := cmd.Execute(im.env, settings); err != nil {
		return false, errors.Wrapf(err, "%s", name)
	}
	return true, nil
}

// bind maps positional arguments onto the command's named parameters.
func bind(cmd Command, args []string) (map[string]any, error) {
	settings := make(map[string]any)
	for i, p := range cmd.Params() {
		if p.Variadic {
			rest := []string{}
			if i < len(args) {
				rest = append(rest, args[i:]...)
			}
			settings[p.Name] = rest
			break
		}
		if i >= len(args) {
			if p.Optional {
				continue
			}
			return nil, errors.Mark(errors.Newf("%s: missing argument %q", cmd.Name(), p.Name), ErrMissingArgument)
		}
		if p.List {
			settings[p.Name] = splitList(args[i])
			continue
		}
		settings[p.Name] = args[i]
	}
	return settings, nil
}

func splitList(s string) []string {
	if s == "" {
		return []string{}
	}
	items := strings.Split(s, "|")
	for i := range items {
		items[i] = strings.TrimSpace(items[i])
	}
	return items
}
