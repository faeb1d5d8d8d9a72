package decoder

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/text/unicode/norm"

	"github.com/arthur-debert/orgrun/pkg/errors"
	"github.com/arthur-debert/orgrun/pkg/logging"
	"github.com/arthur-debert/orgrun/pkg/types"
)

const (
	// DefaultProgressOffset smooths the progress curve while the total is unknown
	DefaultProgressOffset = 50.0
	// DefaultProgressCap keeps the estimate below 100 until the run ends
	DefaultProgressCap = 98.0

	// StderrMarker prefixes the drained stderr block
	StderrMarker = "STDERR:\n"

	maxLineSize = 1024 * 1024
)

// Options tune a decode pass.
type Options struct {
	ProgressOffset float64
	ProgressCap    float64
	Logger         *zerolog.Logger
}

// DefaultOptions returns the stock progress constants.
func DefaultOptions() Options {
	return Options{ProgressOffset: DefaultProgressOffset, ProgressCap: DefaultProgressCap}
}

func (o Options) normalized() Options {
	if o.ProgressOffset <= 0 {
		o.ProgressOffset = DefaultProgressOffset
	}
	if o.ProgressCap <= 0 || o.ProgressCap >= 100 {
		o.ProgressCap = DefaultProgressCap
	}
	if o.Logger == nil {
		l := logging.GetLogger("decoder")
		o.Logger = &l
	}
	return o
}

// Progress returns the estimate after n processed items.
func (o Options) Progress(n int) float64 {
	o = o.normalized()
	f := float64(n)
	return math.Min(f/(f+o.ProgressOffset)*100, o.ProgressCap)
}

// pass holds the state of one Decode call.
type pass struct {
	opts Options
	cb   types.Callbacks

	currentRule string
	processed   int
	lastItem    string
	results     []types.Result
}

// classifier handles a trimmed line and reports whether it matched.
type classifier struct {
	name   string
	handle func(p *pass, line string) bool
}

// classifiers run in priority order; the first match wins.
var classifiers = []classifier{
	{"rule", (*pass).ruleHeader},
	{"item", (*pass).itemMarker},
	{"operation", (*pass).operation},
	{"skipped", (*pass).skipped},
	{"error", (*pass).errorLine},
	{"echo", (*pass).echo},
	{"simulation", (*pass).simulationHint},
}

// Decode reads stdout line by line until EOF or until ctx is done, then
// drains stderr (which may be nil) as a single block. After a read error the
// rest of stdout is discarded rather than left unread. The results are never
// nil and keep stream order.
func Decode(ctx context.Context, stdout, stderr io.Reader, cb types.Callbacks, opts Options) []types.Result {
	p := &pass{opts: opts.normalized(), cb: cb, results: []types.Result{}}
	logger := p.opts.Logger

	if stdout != nil {
		scanner := bufio.NewScanner(stdout)
		scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
		for scanner.Scan() {
			if ctx.Err() != nil {
				logger.Debug().Int("processed", p.processed).Msg("Decoding cancelled")
				break
			}
			p.line(scanner.Text())
		}
		if err := scanner.Err(); err != nil && ctx.Err() == nil {
			serr := errors.Wrap(err, errors.ErrStreamError, "error reading engine output")
			logger.Warn().Err(serr).Msg("Treating output stream as closed")
			// Keep a reader on the pipe so the engine never sees EPIPE.
			if n, err := io.Copy(io.Discard, stdout); err != nil {
				logger.Debug().Err(err).Int64("discarded", n).Msg("Stopped discarding engine output")
			} else {
				logger.Debug().Int64("discarded", n).Msg("Discarded engine output after stream error")
			}
		}
	}

	p.drainStderr(stderr)

	logger.Debug().
		Int("processed", p.processed).
		Int("results", len(p.results)).
		Msg("Decoding finished")
	return p.results
}

func (p *pass) line(raw string) {
	line := strings.TrimSpace(raw)
	if line == "" {
		return
	}
	for _, c := range classifiers {
		if c.handle(p, line) {
			return
		}
	}
	p.cb.Emit(line, types.TagInfo)
}

func (p *pass) ruleHeader(line string) bool {
	m := ruleHeaderRe.FindStringSubmatch(line)
	if m == nil {
		return false
	}
	p.currentRule = m[1]
	p.cb.Emit(line, types.TagHeading)
	return true
}

func (p *pass) itemMarker(line string) bool {
	m := itemMarkerRe.FindStringSubmatch(line)
	if m == nil {
		return false
	}
	p.processed++
	p.lastItem = cleanPath(m[1])
	p.cb.Emit("Processing: "+p.lastItem, types.TagInfo)
	p.cb.Report(p.opts.Progress(p.processed), fmt.Sprintf("Processed %d files...", p.processed))
	return true
}

func (p *pass) operation(line string) bool {
	for _, v := range compiledVerbs {
		m := v.re.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		r := types.Result{
			Source: cleanPath(m[1]),
			Status: v.status,
			Rule:   p.currentRule,
		}
		if v.hasDest {
			r.Destination = cleanPath(m[2])
		}
		p.results = append(p.results, r)
		p.cb.Emit(line, v.tag)
		return true
	}
	return false
}

func (p *pass) skipped(line string) bool {
	if !skippedRe.MatchString(line) {
		return false
	}
	p.results = append(p.results, types.Result{
		Source: p.lastItem,
		Status: types.StatusSkipped,
		Rule:   p.currentRule,
	})
	p.cb.Emit(line, types.TagSkipped)
	return true
}

func (p *pass) errorLine(line string) bool {
	if !errorRe.MatchString(line) {
		return false
	}
	if m := quotedPathRe.FindStringSubmatch(line); m != nil {
		p.results = append(p.results, types.Result{
			Source: cleanPath(m[1]),
			Status: types.StatusError,
			Rule:   p.currentRule,
		})
	}
	p.cb.Emit(line, types.TagError)
	return true
}

func (p *pass) echo(line string) bool {
	if !strings.Contains(strings.ToLower(line), "echo:") {
		return false
	}
	p.cb.Emit(line, types.TagEcho)
	return true
}

func (p *pass) simulationHint(line string) bool {
	if !strings.Contains(strings.ToLower(line), "simulat") {
		return false
	}
	p.cb.Emit(line, types.TagHeading)
	return true
}

func (p *pass) drainStderr(stderr io.Reader) {
	if stderr == nil {
		return
	}
	data, err := io.ReadAll(stderr)
	if err != nil {
		serr := errors.Wrap(err, errors.ErrStreamError, "error reading engine stderr")
		p.opts.Logger.Warn().Err(serr).Msg("Stderr truncated")
	}
	block := strings.TrimSpace(string(data))
	if block == "" {
		return
	}
	p.cb.Emit(StderrMarker+block, types.TagError)
}

// cleanPath trims quotes and whitespace and normalizes to NFC.
func cleanPath(s string) string {
	return norm.NFC.String(unquote(s))
}
