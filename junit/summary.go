package junit

// Summary is a serializable snapshot of the statistics of a report.
type Summary struct {
	Name     string         `json:"name,omitempty" yaml:"name,omitempty"`
	Tests    int            `json:"tests" yaml:"tests"`
	Failures int            `json:"failures" yaml:"failures"`
	Errors   int            `json:"errors" yaml:"errors"`
	Skipped  int            `json:"skipped" yaml:"skipped"`
	Time     float64        `json:"time" yaml:"time"`
	Suites   []SuiteSummary `json:"suites,omitempty" yaml:"suites,omitempty"`
}

// SuiteSummary ...
type SuiteSummary struct {
	Name     string   `json:"name" yaml:"name"`
	Tests    int      `json:"tests" yaml:"tests"`
	Failures int      `json:"failures" yaml:"failures"`
	Errors   int      `json:"errors" yaml:"errors"`
	Skipped  int      `json:"skipped" yaml:"skipped"`
	Time     float64  `json:"time" yaml:"time"`
	Failed   []string `json:"failed,omitempty" yaml:"failed,omitempty"`
}

// Summarize recomputes the statistics of r and returns them.
func Summarize(r *Report) Summary {
	r.UpdateStatistics()

	summary := Summary{Name: r.Name()}
	for _, suite := range r.TestSuites() {
		s := SuiteSummary{Name: suite.Name()}
		s.Tests, _ = suite.Tests()
		s.Failures, _ = suite.Failures()
		s.Errors, _ = suite.Errors()
		s.Skipped, _ = suite.Skipped()
		s.Time, _ = suite.Time()

		for _, c := range suite.TestCases() {
			if c.IsFailure() || c.IsError() {
				s.Failed = append(s.Failed, caseID(c))
			}
		}

		summary.Tests += s.Tests
		summary.Failures += s.Failures
		summary.Errors += s.Errors
		summary.Skipped += s.Skipped
		summary.Suites = append(summary.Suites, s)
	}
	summary.Time, _ = r.Time()

	return summary
}

func caseID(c *TestCase) string {
	if c.ClassName() == "" {
		return c.Name()
	}
	return c.ClassName() + "." + c.Name()
}
