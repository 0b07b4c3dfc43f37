package harness

// Result is the outcome of a scenario run.
type Result struct {
	// Pass is true when every case passed.
	Pass bool `json:"pass"`

	// Cases holds one entry per scenario case, in order.
	Cases []CaseResult `json:"cases"`
}

// CaseResult is the outcome of one case.
type CaseResult struct {
	Name string `json:"name"`

	// Query is the rendered query; empty when rendering failed.
	Query string `json:"query,omitempty"`

	// ErrorCode and Error describe a rendering failure.
	ErrorCode string `json:"error_code,omitempty"`
	Error     string `json:"error,omitempty"`

	Pass bool `json:"pass"`

	// Errors contains assertion failure messages.
	Errors []string `json:"errors,omitempty"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:  true,
		Cases: []CaseResult{},
	}
}

// Add appends a case result, failing the scenario if the case failed.
func (r *Result) Add(c CaseResult) {
	r.Cases = append(r.Cases, c)
	if !c.Pass {
		r.Pass = false
	}
}

// Errors flattens the failures of every case, prefixed by case name.
func (r *Result) Errors() []string {
	var errs []string
	for _, c := range r.Cases {
		for _, e := range c.Errors {
			errs = append(errs, c.Name+": "+e)
		}
	}
	return errs
}

// addError records an assertion failure and marks the case failed.
func (c *CaseResult) addError(err string) {
	c.Errors = append(c.Errors, err)
	c.Pass = false
}
