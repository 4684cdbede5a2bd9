package junit

import (
	"bytes"
	"io"

	"github.com/bitrise-io/junitparser/xmltree"
)

const testSuitesTag = "testsuites"

// Report is the root of a JUnit XML document: a testsuites element, or a bare testsuite
// that was wrapped into one on parse.
type Report struct {
	*Element
	schema *Schema

	filepath string
	// promoted is set when the document root was a bare testsuite.
	promoted bool
}

// Schema returns the dialect of the report.
func (r *Report) Schema() *Schema {
	return r.schema
}

// Filepath returns the path the report was read from.
func (r *Report) Filepath() string {
	return r.filepath
}

// Name ...
func (r *Report) Name() string {
	return nameAttr.Value(r)
}

// SetName ...
func (r *Report) SetName(name string) {
	nameAttr.Set(r, name)
}

// Time ...
func (r *Report) Time() (float64, bool) {
	return timeAttr.Get(r)
}

// Tests ...
func (r *Report) Tests() (int, bool) {
	return testsAttr.Get(r)
}

// Failures ...
func (r *Report) Failures() (int, bool) {
	return failuresAttr.Get(r)
}

// Errors ...
func (r *Report) Errors() (int, bool) {
	return errorsAttr.Get(r)
}

// Skipped returns the skipped counter, schemas that do not report it always return false.
func (r *Report) Skipped() (int, bool) {
	if !r.schema.ReportSkipped {
		return 0, false
	}
	return skippedAttr.Get(r)
}

// TestSuites returns the test suites of the report in document order.
func (r *Report) TestSuites() []*TestSuite {
	var suites []*TestSuite
	for _, n := range r.node.ChildrenByTag(testSuiteTag) {
		suites = append(suites, r.schema.WrapTestSuite(n))
	}
	return suites
}

// Len returns the number of test suites.
func (r *Report) Len() int {
	return len(r.node.ChildrenByTag(testSuiteTag))
}

// AddTestSuite adds suite to the report. If the report already holds an equal suite,
// the test cases and nested suites of suite are moved into it, otherwise suite is appended.
// The statistics are not recomputed.
func (r *Report) AddTestSuite(suite *TestSuite) {
	for _, existing := range r.TestSuites() {
		if existing.Equal(suite) {
			existing.fold(suite)
			return
		}
	}
	r.appendTestSuite(suite)
}

// RemoveTestSuite removes the first suite equal to suite.
func (r *Report) RemoveTestSuite(suite *TestSuite) bool {
	return r.Remove(suite)
}

// UpdateStatistics recomputes the statistics of every suite, then the report totals.
func (r *Report) UpdateStatistics() {
	var tests, failures, errors, skipped int
	var time float64

	for _, suite := range r.TestSuites() {
		suite.UpdateStatistics()

		n, _ := suite.Tests()
		tests += n
		n, _ = suite.Failures()
		failures += n
		n, _ = suite.Errors()
		errors += n
		n, _ = suite.Skipped()
		skipped += n
		t, _ := suite.Time()
		time += t
	}

	testsAttr.Set(r, tests)
	failuresAttr.Set(r, failures)
	errorsAttr.Set(r, errors)
	if r.schema.ReportSkipped {
		skippedAttr.Set(r, skipped)
	}
	timeAttr.Set(r, round3(time))
}

// Add returns a new report holding copies of the suites of both reports, equal suites merged.
func (r *Report) Add(other *Report) *Report {
	merged := r.schema.NewReport("")
	merged.fold(cloneSuites(r.TestSuites()))
	merged.fold(cloneSuites(other.TestSuites()))
	return merged
}

// Merge adds copies of the suites of other to r, equal suites merged, and recomputes the statistics.
func (r *Report) Merge(other *Report) {
	r.fold(cloneSuites(other.TestSuites()))
	r.UpdateStatistics()
}

// Clone returns a detached deep copy of the report.
func (r *Report) Clone() *Report {
	c := r.schema.wrapReport(r.node.Clone())
	c.filepath = r.filepath
	c.promoted = r.promoted
	return c
}

// Write writes the report back to the file it was read from.
func (r *Report) Write(pretty bool) error {
	if r.filepath == "" {
		return ErrMissingFilepath
	}
	return r.WriteFile(r.filepath, pretty)
}

// WriteFile writes the report to path.
func (r *Report) WriteFile(path string, pretty bool) error {
	var buf bytes.Buffer
	if err := r.Encode(&buf, pretty); err != nil {
		return err
	}
	return fileManager.WriteBytes(path, buf.Bytes())
}

// Encode writes the UTF-8 XML declaration and the report.
// A report read from a bare testsuite is written as a bare testsuite again while it holds that single suite.
func (r *Report) Encode(w io.Writer, pretty bool) error {
	return encodeDocument(w, r.root(), pretty)
}

// root returns the node written for the report.
func (r *Report) root() *xmltree.Node {
	if !r.promoted {
		return r.node
	}

	suites := r.node.ChildrenByTag(testSuiteTag)
	if len(suites) != 1 || len(r.node.Children()) != 1 {
		return r.node
	}
	for _, a := range r.node.Attrs() {
		if _, ok := statisticsKinds[a.Name]; !ok {
			return r.node
		}
	}
	return suites[0]
}

// fold adds every suite without recomputing the statistics.
func (r *Report) fold(suites []*TestSuite) {
	for _, suite := range suites {
		r.AddTestSuite(suite)
	}
}

func (r *Report) appendTestSuite(suite *TestSuite) {
	r.Append(suite)
}

func cloneSuites(suites []*TestSuite) []*TestSuite {
	clones := make([]*TestSuite, 0, len(suites))
	for _, s := range suites {
		clones = append(clones, s.Clone())
	}
	return clones
}
