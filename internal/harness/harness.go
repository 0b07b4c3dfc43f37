package harness

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/roach88/rsqlb/internal/querydef"
	"github.com/roach88/rsqlb/rsql"
)

// Harness runs scenarios.
type Harness struct {
	logger *slog.Logger
}

// Option configures a Harness.
type Option func(*Harness)

// WithLogger sets the logger used for per-case debug records.
func WithLogger(logger *slog.Logger) Option {
	return func(h *Harness) {
		h.logger = logger
	}
}

// New creates a Harness. Logs are discarded unless WithLogger is given.
func New(opts ...Option) *Harness {
	h := &Harness{
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Run executes a scenario with a default Harness.
func Run(scenario *Scenario) (*Result, error) {
	return New().Run(scenario)
}

// Run renders every case and evaluates its assertions.
//
// Rendering failures are case outcomes, not errors: the returned error is
// non-nil only when the scenario itself is unusable.
func (h *Harness) Run(scenario *Scenario) (*Result, error) {
	if scenario == nil {
		return nil, fmt.Errorf("scenario is nil")
	}
	if err := validateScenario(scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	result := NewResult()
	for i, c := range scenario.Cases {
		cr := h.runCase(c)
		h.logger.Debug("case finished",
			"scenario", scenario.Name,
			"case", cr.Name,
			"index", i,
			"pass", cr.Pass,
			"query", cr.Query,
			"error_code", cr.ErrorCode,
		)
		result.Add(cr)
	}
	return result, nil
}

func (h *Harness) runCase(c Case) CaseResult {
	query, name, err := render(c)

	cr := CaseResult{Name: c.Name, Pass: true}
	if cr.Name == "" {
		cr.Name = name
	}
	if err != nil {
		cr.ErrorCode = ErrorCode(err)
		cr.Error = err.Error()
	} else {
		cr.Query = query
	}

	for _, msg := range EvaluateAssertions(cr, c.Assertions) {
		cr.addError(msg)
	}
	return cr
}

// render returns the query and the best available name for the case.
func render(c Case) (query, name string, err error) {
	def := c.Definition
	if c.File != "" {
		name = strings.TrimSuffix(filepath.Base(c.File), filepath.Ext(c.File))
		def, err = querydef.Load(c.File)
		if err != nil {
			return "", name, err
		}
	} else if err := querydef.Validate(def); err != nil {
		return "", def.Name, err
	}

	query, err = querydef.Render(def)
	return query, def.Name, err
}

// ErrorCode returns the most specific code carried by err: a querydef code
// when present, otherwise an rsql code, otherwise "".
func ErrorCode(err error) string {
	if code := querydef.Code(err); code != "" {
		return code
	}
	return string(rsql.CodeOf(err))
}
