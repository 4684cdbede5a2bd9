package junit

import "fmt"

// Merge folds reports, in order, into a new report of the first report's schema.
// Equal suites are merged, statistics are computed once at the end and a non-empty name
// overrides the name of the merged report.
// The suites of the given reports are moved into the result.
func Merge(reports []*Report, name string) *Report {
	schema := JUnit
	if len(reports) > 0 {
		schema = reports[0].schema
	}

	merged := schema.NewReport("")
	for _, r := range reports {
		merged.fold(r.TestSuites())
	}
	merged.UpdateStatistics()

	if name != "" {
		merged.SetName(name)
	}
	return merged
}

// VerifyError names the first test case that neither passed nor was skipped.
type VerifyError struct {
	Suite string
	Case  string
}

func (e *VerifyError) Error() string {
	return fmt.Sprintf("test case %q of suite %q did not pass", e.Case, e.Suite)
}

// Verify returns a *VerifyError for the first test case in reports that neither passed nor was skipped.
// It inspects the test cases, not the counters of the documents.
func Verify(reports ...*Report) error {
	for _, r := range reports {
		for _, suite := range r.TestSuites() {
			if err := verifySuite(suite); err != nil {
				return err
			}
		}
	}
	return nil
}

func verifySuite(suite *TestSuite) error {
	for _, c := range suite.directTestCases() {
		if !c.IsPassed() && !c.IsSkipped() {
			return &VerifyError{Suite: suite.Name(), Case: c.Name()}
		}
	}
	for _, nested := range suite.TestSuites() {
		if err := verifySuite(nested); err != nil {
			return err
		}
	}
	return nil
}
