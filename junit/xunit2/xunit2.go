// Package xunit2 implements the JUnit XML dialect of the Jenkins xunit plugin, also written by pytest,
// Maven Surefire and Erlang/OTP: extra suite attributes, rerun and flaky results, nested suites,
// and no skipped counter on the report.
package xunit2

import (
	"fmt"
	"io"

	"github.com/bitrise-io/junitparser/junit"
	"github.com/bitrise-io/junitparser/xmltree"
)

// Schema is the xunit2 dialect.
var Schema = &junit.Schema{Name: "xunit2", NestedCases: true, ReportSkipped: false}

const (
	groupAttr   = junit.StringAttr("group")
	idAttr      = junit.StringAttr("id")
	packageAttr = junit.StringAttr("package")
	fileAttr    = junit.StringAttr("file")
	logAttr     = junit.StringAttr("log")
	urlAttr     = junit.StringAttr("url")
	versionAttr = junit.StringAttr("version")
)

// Report ...
type Report struct {
	*junit.Report
}

// NewReport ...
func NewReport(name string) *Report {
	return &Report{Report: Schema.NewReport(name)}
}

// FromRoot ...
func FromRoot(root *xmltree.Node) (*Report, error) {
	return wrapReport(Schema.FromRoot(root))
}

// FromReader ...
func FromReader(r io.Reader) (*Report, error) {
	return wrapReport(Schema.FromReader(r))
}

// FromBytes ...
func FromBytes(data []byte) (*Report, error) {
	return wrapReport(Schema.FromBytes(data))
}

// FromString ...
func FromString(text string) (*Report, error) {
	return wrapReport(Schema.FromString(text))
}

// FromFile ...
func FromFile(path string) (*Report, error) {
	return wrapReport(Schema.FromFile(path))
}

func wrapReport(r *junit.Report, err error) (*Report, error) {
	if err != nil {
		return nil, err
	}
	return &Report{Report: r}, nil
}

// TestSuites ...
func (r *Report) TestSuites() []*TestSuite {
	var suites []*TestSuite
	for _, s := range r.Report.TestSuites() {
		suites = append(suites, &TestSuite{TestSuite: s})
	}
	return suites
}

// AddTestSuite ...
func (r *Report) AddTestSuite(suite *TestSuite) {
	r.Report.AddTestSuite(suite.TestSuite)
}

// TestSuite ...
type TestSuite struct {
	*junit.TestSuite
}

// NewTestSuite ...
func NewTestSuite(name string) *TestSuite {
	return &TestSuite{TestSuite: Schema.NewTestSuite(name)}
}

// Group ...
func (s *TestSuite) Group() string { return groupAttr.Value(s) }

// SetGroup ...
func (s *TestSuite) SetGroup(v string) { groupAttr.Set(s, v) }

// ID ...
func (s *TestSuite) ID() string { return idAttr.Value(s) }

// SetID ...
func (s *TestSuite) SetID(v string) { idAttr.Set(s, v) }

// Package ...
func (s *TestSuite) Package() string { return packageAttr.Value(s) }

// SetPackage ...
func (s *TestSuite) SetPackage(v string) { packageAttr.Set(s, v) }

// File ...
func (s *TestSuite) File() string { return fileAttr.Value(s) }

// SetFile ...
func (s *TestSuite) SetFile(v string) { fileAttr.Set(s, v) }

// Log ...
func (s *TestSuite) Log() string { return logAttr.Value(s) }

// SetLog ...
func (s *TestSuite) SetLog(v string) { logAttr.Set(s, v) }

// URL ...
func (s *TestSuite) URL() string { return urlAttr.Value(s) }

// SetURL ...
func (s *TestSuite) SetURL(v string) { urlAttr.Set(s, v) }

// Version ...
func (s *TestSuite) Version() string { return versionAttr.Value(s) }

// SetVersion ...
func (s *TestSuite) SetVersion(v string) { versionAttr.Set(s, v) }

// TestCases returns the suite's own cases followed by the cases of its nested suites.
func (s *TestSuite) TestCases() []*TestCase {
	var cases []*TestCase
	for _, c := range s.TestSuite.TestCases() {
		cases = append(cases, &TestCase{TestCase: c})
	}
	return cases
}

// AddTestCase ...
func (s *TestSuite) AddTestCase(c *TestCase) {
	s.TestSuite.AddTestCase(c.TestCase)
}

// TestSuites ...
func (s *TestSuite) TestSuites() []*TestSuite {
	var suites []*TestSuite
	for _, nested := range s.TestSuite.TestSuites() {
		suites = append(suites, &TestSuite{TestSuite: nested})
	}
	return suites
}

// AddTestSuite ...
func (s *TestSuite) AddTestSuite(suite *TestSuite) {
	s.TestSuite.AddTestSuite(suite.TestSuite)
}

// TestCase is a test case that may carry rerun and flaky results besides its final result.
type TestCase struct {
	*junit.TestCase
}

// NewTestCase ...
func NewTestCase(name, classname string) *TestCase {
	return &TestCase{TestCase: junit.NewTestCase(name, classname)}
}

// Group ...
func (c *TestCase) Group() string { return groupAttr.Value(c) }

// SetGroup ...
func (c *TestCase) SetGroup(v string) { groupAttr.Set(c, v) }

// RerunFailures ...
func (c *TestCase) RerunFailures() []*junit.Result {
	return c.InterimResults(junit.KindRerunFailure)
}

// RerunErrors ...
func (c *TestCase) RerunErrors() []*junit.Result {
	return c.InterimResults(junit.KindRerunError)
}

// FlakyFailures ...
func (c *TestCase) FlakyFailures() []*junit.Result {
	return c.InterimResults(junit.KindFlakyFailure)
}

// FlakyErrors ...
func (c *TestCase) FlakyErrors() []*junit.Result {
	return c.InterimResults(junit.KindFlakyError)
}

// AddInterimResult appends a rerun or flaky result. A case can hold any number of them.
func (c *TestCase) AddInterimResult(r *junit.Result) error {
	if r.Kind().Final() {
		return fmt.Errorf("%s is not an interim result", r.Kind())
	}
	c.AddResult(r)
	return nil
}

// NewRerunFailure ...
func NewRerunFailure(message, typ string) *junit.Result {
	return junit.NewResult(junit.KindRerunFailure, message, typ)
}

// NewRerunError ...
func NewRerunError(message, typ string) *junit.Result {
	return junit.NewResult(junit.KindRerunError, message, typ)
}

// NewFlakyFailure ...
func NewFlakyFailure(message, typ string) *junit.Result {
	return junit.NewResult(junit.KindFlakyFailure, message, typ)
}

// NewFlakyError ...
func NewFlakyError(message, typ string) *junit.Result {
	return junit.NewResult(junit.KindFlakyError, message, typ)
}
