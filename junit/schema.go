package junit

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/bitrise-io/go-utils/v2/fileutil"
	"github.com/bitrise-io/junitparser/xmltree"
)

// ParseFunc turns a document into its root node.
type ParseFunc func(r io.Reader) (*xmltree.Node, error)

// Schema describes the differences between the JUnit XML dialects written by test runners.
type Schema struct {
	Name string
	// NestedCases makes test suites list the cases of their nested suites after their own.
	NestedCases bool
	// ReportSkipped makes reports aggregate the skipped counter.
	ReportSkipped bool
}

// JUnit is the Ant JUnit dialect.
var JUnit = &Schema{Name: "junit", ReportSkipped: true}

var fileManager = fileutil.NewFileManager()

// NewReport creates an empty report.
func (s *Schema) NewReport(name string) *Report {
	r := s.wrapReport(xmltree.New(testSuitesTag))
	if name != "" {
		r.SetName(name)
	}
	return r
}

// NewTestSuite creates an empty test suite.
func (s *Schema) NewTestSuite(name string) *TestSuite {
	suite := s.WrapTestSuite(xmltree.New(testSuiteTag))
	if name != "" {
		suite.SetName(name)
	}
	return suite
}

// WrapTestSuite ...
func (s *Schema) WrapTestSuite(n *xmltree.Node) *TestSuite {
	suite := &TestSuite{
		Element: &Element{node: n, kinds: statisticsKinds},
		schema:  s,
	}
	suite.aggregate = suite.UpdateStatistics
	return suite
}

// FromRoot binds a report to a parsed root element.
// A bare testsuite root is wrapped in a testsuites element, any other root fails with ErrInvalidFormat.
func (s *Schema) FromRoot(root *xmltree.Node) (*Report, error) {
	switch root.Tag() {
	case testSuitesTag:
		return s.wrapReport(root), nil
	case testSuiteTag:
		wrapper := xmltree.New(testSuitesTag)
		wrapper.AppendChild(root)

		r := s.wrapReport(wrapper)
		r.promoted = true
		return r, nil
	default:
		return nil, fmt.Errorf("%w: unexpected root element <%s>", ErrInvalidFormat, root.Tag())
	}
}

// FromReaderWith parses a report with a custom parse function.
// Parse errors are returned as they are.
func (s *Schema) FromReaderWith(r io.Reader, parse ParseFunc) (*Report, error) {
	root, err := parse(r)
	if err != nil {
		return nil, err
	}
	return s.FromRoot(root)
}

// FromReader ...
func (s *Schema) FromReader(r io.Reader) (*Report, error) {
	return s.FromReaderWith(r, xmltree.Parse)
}

// FromBytes ...
func (s *Schema) FromBytes(data []byte) (*Report, error) {
	return s.FromReader(bytes.NewReader(data))
}

// FromString ...
func (s *Schema) FromString(text string) (*Report, error) {
	return s.FromReader(strings.NewReader(text))
}

// FromFile parses the report at path and remembers the path for Report.Write.
func (s *Schema) FromFile(path string) (*Report, error) {
	f, err := fileManager.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = f.Close()
	}()

	r, err := s.FromReader(f)
	if err != nil {
		return nil, err
	}
	r.filepath = path
	return r, nil
}

func (s *Schema) wrapReport(n *xmltree.Node) *Report {
	r := &Report{
		Element: &Element{node: n, kinds: statisticsKinds},
		schema:  s,
	}
	r.aggregate = r.UpdateStatistics
	return r
}

// FromRoot binds a JUnit report to root.
func FromRoot(root *xmltree.Node) (*Report, error) {
	return JUnit.FromRoot(root)
}

// FromReaderWith ...
func FromReaderWith(r io.Reader, parse ParseFunc) (*Report, error) {
	return JUnit.FromReaderWith(r, parse)
}

// FromReader ...
func FromReader(r io.Reader) (*Report, error) {
	return JUnit.FromReader(r)
}

// FromBytes ...
func FromBytes(data []byte) (*Report, error) {
	return JUnit.FromBytes(data)
}

// FromString ...
func FromString(text string) (*Report, error) {
	return JUnit.FromString(text)
}

// FromFile ...
func FromFile(path string) (*Report, error) {
	return JUnit.FromFile(path)
}

// NewReport ...
func NewReport(name string) *Report {
	return JUnit.NewReport(name)
}

// NewTestSuite ...
func NewTestSuite(name string) *TestSuite {
	return JUnit.NewTestSuite(name)
}

// WrapTestSuite ...
func WrapTestSuite(n *xmltree.Node) *TestSuite {
	return JUnit.WrapTestSuite(n)
}
