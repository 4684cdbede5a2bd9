package junit

import (
	"github.com/bitrise-io/junitparser/xmltree"
)

const testSuiteTag = "testsuite"

// TestSuite is a named group of test cases with aggregated statistics.
// Two suites are the same suite when their name, hostname, timestamp and properties match,
// regardless of their test cases.
type TestSuite struct {
	*Element
	schema *Schema
}

// Schema returns the dialect the suite was created with.
func (s *TestSuite) Schema() *Schema {
	return s.schema
}

// Name ...
func (s *TestSuite) Name() string {
	return nameAttr.Value(s)
}

// SetName ...
func (s *TestSuite) SetName(name string) {
	nameAttr.Set(s, name)
}

// Hostname ...
func (s *TestSuite) Hostname() string {
	return hostnameAttr.Value(s)
}

// SetHostname ...
func (s *TestSuite) SetHostname(hostname string) {
	hostnameAttr.Set(s, hostname)
}

// Timestamp ...
func (s *TestSuite) Timestamp() string {
	return timestampAttr.Value(s)
}

// SetTimestamp ...
func (s *TestSuite) SetTimestamp(timestamp string) {
	timestampAttr.Set(s, timestamp)
}

// Time ...
func (s *TestSuite) Time() (float64, bool) {
	return timeAttr.Get(s)
}

// SetTime ...
func (s *TestSuite) SetTime(seconds float64) {
	timeAttr.Set(s, seconds)
}

// Tests ...
func (s *TestSuite) Tests() (int, bool) {
	return testsAttr.Get(s)
}

// SetTests ...
func (s *TestSuite) SetTests(n int) {
	testsAttr.Set(s, n)
}

// Failures ...
func (s *TestSuite) Failures() (int, bool) {
	return failuresAttr.Get(s)
}

// SetFailures ...
func (s *TestSuite) SetFailures(n int) {
	failuresAttr.Set(s, n)
}

// Errors ...
func (s *TestSuite) Errors() (int, bool) {
	return errorsAttr.Get(s)
}

// SetErrors ...
func (s *TestSuite) SetErrors(n int) {
	errorsAttr.Set(s, n)
}

// Skipped ...
func (s *TestSuite) Skipped() (int, bool) {
	return skippedAttr.Get(s)
}

// SetSkipped ...
func (s *TestSuite) SetSkipped(n int) {
	skippedAttr.Set(s, n)
}

// TestCases returns the test cases of the suite in document order.
// When the schema has nested cases, the cases of the directly nested suites follow the suite's own cases.
func (s *TestSuite) TestCases() []*TestCase {
	cases := s.directTestCases()
	if !s.schema.NestedCases {
		return cases
	}

	for _, nested := range s.TestSuites() {
		cases = append(cases, nested.directTestCases()...)
	}
	return cases
}

// Len returns the number of test cases.
func (s *TestSuite) Len() int {
	return len(s.TestCases())
}

// AddTestCase appends a test case and recomputes the statistics.
func (s *TestSuite) AddTestCase(c *TestCase) {
	s.appendTestCase(c)
	s.UpdateStatistics()
}

// AddTestCases appends every test case and recomputes the statistics once.
func (s *TestSuite) AddTestCases(cases ...*TestCase) {
	for _, c := range cases {
		s.appendTestCase(c)
	}
	s.UpdateStatistics()
}

// RemoveTestCase removes the first test case equal to c and recomputes the statistics.
func (s *TestSuite) RemoveTestCase(c *TestCase) bool {
	removed := s.Remove(c)
	if removed {
		s.UpdateStatistics()
	}
	return removed
}

// UpdateStatistics recomputes tests, failures, errors, skipped and time from the test cases.
// Every final result of a case is counted, so a case that failed and was skipped counts in both.
func (s *TestSuite) UpdateStatistics() {
	var tests, failures, errors, skipped int
	var time float64

	for _, c := range s.TestCases() {
		tests++
		for _, r := range c.Results() {
			switch r.Kind() {
			case KindFailure:
				failures++
			case KindError:
				errors++
			case KindSkipped:
				skipped++
			}
		}
		if t, ok := c.Time(); ok {
			time += t
		}
	}

	s.SetTests(tests)
	s.SetFailures(failures)
	s.SetErrors(errors)
	s.SetSkipped(skipped)
	s.SetTime(round3(time))
}

// Properties returns the properties of the suite, or nil if it has none.
func (s *TestSuite) Properties() []*Property {
	n := s.node.FirstChild(propertiesTag)
	if n == nil {
		return nil
	}
	return WrapProperties(n).Items()
}

// AddProperty adds a property, creating the property bag on first use.
func (s *TestSuite) AddProperty(name, value string) *Property {
	n := s.node.FirstChild(propertiesTag)
	if n == nil {
		n = xmltree.New(propertiesTag)
		s.node.AppendChild(n)
	}
	return WrapProperties(n).AddProperty(name, value)
}

// RemoveProperty removes the first property equal to p.
func (s *TestSuite) RemoveProperty(p *Property) bool {
	n := s.node.FirstChild(propertiesTag)
	if n == nil {
		return false
	}
	return WrapProperties(n).Remove(p)
}

// TestSuites returns the directly nested test suites.
func (s *TestSuite) TestSuites() []*TestSuite {
	var suites []*TestSuite
	for _, n := range s.node.ChildrenByTag(testSuiteTag) {
		suites = append(suites, s.schema.WrapTestSuite(n))
	}
	return suites
}

// AddTestSuite nests a test suite.
func (s *TestSuite) AddTestSuite(suite *TestSuite) {
	s.Append(suite)
}

// SystemOut ...
func (s *TestSuite) SystemOut() string {
	return s.childText(systemOutTag)
}

// SetSystemOut ...
func (s *TestSuite) SetSystemOut(text string) {
	s.setChildText(systemOutTag, text)
}

// SystemErr ...
func (s *TestSuite) SystemErr() string {
	return s.childText(systemErrTag)
}

// SetSystemErr ...
func (s *TestSuite) SetSystemErr(text string) {
	s.setChildText(systemErrTag, text)
}

// Equal reports whether both suites have the same name, hostname, timestamp and properties.
func (s *TestSuite) Equal(other *TestSuite) bool {
	if s == nil || other == nil {
		return s == other
	}
	return sameAttr(s, other, string(nameAttr)) &&
		sameAttr(s, other, string(hostnameAttr)) &&
		sameAttr(s, other, string(timestampAttr)) &&
		equalProperties(s.Properties(), other.Properties())
}

// Matches ...
func (s *TestSuite) Matches(n *xmltree.Node) bool {
	return n.Tag() == testSuiteTag && s.Equal(s.schema.WrapTestSuite(n))
}

// Add returns the union of both suites without modifying them.
// Equal suites are merged into a copy of s, different suites are returned as the two suites of a new report.
// Exactly one of the return values is non-nil.
func (s *TestSuite) Add(other *TestSuite) (*TestSuite, *Report) {
	if !s.Equal(other) {
		r := s.schema.NewReport("")
		r.appendTestSuite(s.Clone())
		r.appendTestSuite(other.Clone())
		return nil, r
	}

	merged := s.Clone()
	merged.fold(other.Clone())
	merged.UpdateStatistics()
	return merged, nil
}

// Merge adds the test cases and nested suites of other to s when the suites are equal and returns nil.
// Otherwise s is left as it is and a new report holding copies of both suites is returned.
// other is not modified.
func (s *TestSuite) Merge(other *TestSuite) *Report {
	if !s.Equal(other) {
		r := s.schema.NewReport("")
		r.appendTestSuite(s.Clone())
		r.appendTestSuite(other.Clone())
		return r
	}

	s.fold(other.Clone())
	s.UpdateStatistics()
	return nil
}

// Clone returns a detached deep copy of the suite.
func (s *TestSuite) Clone() *TestSuite {
	return s.schema.WrapTestSuite(s.node.Clone())
}

// fold moves the direct test cases and nested suites of other into s without recomputing the statistics.
func (s *TestSuite) fold(other *TestSuite) {
	for _, c := range other.directTestCases() {
		s.appendTestCase(c)
	}
	for _, nested := range other.TestSuites() {
		s.AddTestSuite(nested)
	}
}

func (s *TestSuite) appendTestCase(c *TestCase) {
	s.Append(c)
}

func (s *TestSuite) directTestCases() []*TestCase {
	var cases []*TestCase
	for _, n := range s.node.ChildrenByTag(testCaseTag) {
		cases = append(cases, WrapTestCase(n))
	}
	return cases
}
