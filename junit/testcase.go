package junit

import (
	"github.com/bitrise-io/junitparser/xmltree"
)

const testCaseTag = "testcase"

// TestCase is a single test execution with its outcomes and captured output.
type TestCase struct {
	*Element
}

// NewTestCase creates a test case. Empty name and classname are not written.
func NewTestCase(name, classname string) *TestCase {
	c := WrapTestCase(xmltree.New(testCaseTag))
	if name != "" {
		c.SetName(name)
	}
	if classname != "" {
		c.SetClassName(classname)
	}
	return c
}

// WrapTestCase ...
func WrapTestCase(n *xmltree.Node) *TestCase {
	return &TestCase{Element: &Element{node: n, kinds: testCaseKinds}}
}

// Name ...
func (c *TestCase) Name() string {
	return nameAttr.Value(c)
}

// SetName ...
func (c *TestCase) SetName(name string) {
	nameAttr.Set(c, name)
}

// ClassName ...
func (c *TestCase) ClassName() string {
	return classNameAttr.Value(c)
}

// SetClassName ...
func (c *TestCase) SetClassName(classname string) {
	classNameAttr.Set(c, classname)
}

// Time returns the duration in seconds.
func (c *TestCase) Time() (float64, bool) {
	return timeAttr.Get(c)
}

// SetTime ...
func (c *TestCase) SetTime(seconds float64) {
	timeAttr.Set(c, seconds)
}

// Results returns the final results (failure, error, skipped) in document order.
func (c *TestCase) Results() []*Result {
	var results []*Result
	for _, r := range c.allResults() {
		if r.Kind().Final() {
			results = append(results, r)
		}
	}
	return results
}

// SingleResult returns the only final result of the case, or nil if it passed.
// It fails with ErrMultipleResults when the case carries more than one.
func (c *TestCase) SingleResult() (*Result, error) {
	results := c.Results()
	switch len(results) {
	case 0:
		return nil, nil
	case 1:
		return results[0], nil
	default:
		return nil, ErrMultipleResults
	}
}

// SetResults replaces every final result of the case with results.
func (c *TestCase) SetResults(results ...*Result) {
	for _, r := range c.Results() {
		c.node.RemoveChild(r.node)
	}
	c.AddResult(results...)
}

// AddResult appends results, final or interim, to the case.
func (c *TestCase) AddResult(results ...*Result) {
	for _, r := range results {
		c.Append(r)
	}
}

// InterimResults returns the rerun and flaky results of the given kinds in document order.
// Without kinds every interim result is returned.
func (c *TestCase) InterimResults(kinds ...ResultKind) []*Result {
	var results []*Result
	for _, r := range c.allResults() {
		if r.Kind().Final() {
			continue
		}
		if len(kinds) == 0 || containsKind(kinds, r.Kind()) {
			results = append(results, r)
		}
	}
	return results
}

// IsPassed reports whether the case has no final result.
func (c *TestCase) IsPassed() bool {
	return len(c.Results()) == 0
}

// IsFailure ...
func (c *TestCase) IsFailure() bool {
	return c.hasResult(KindFailure)
}

// IsError ...
func (c *TestCase) IsError() bool {
	return c.hasResult(KindError)
}

// IsSkipped ...
func (c *TestCase) IsSkipped() bool {
	return c.hasResult(KindSkipped)
}

// SystemOut ...
func (c *TestCase) SystemOut() string {
	return c.childText(systemOutTag)
}

// SetSystemOut ...
func (c *TestCase) SetSystemOut(text string) {
	c.setChildText(systemOutTag, text)
}

// SystemErr ...
func (c *TestCase) SystemErr() string {
	return c.childText(systemErrTag)
}

// SetSystemErr ...
func (c *TestCase) SetSystemErr(text string) {
	c.setChildText(systemErrTag, text)
}

// Children returns the results and captured outputs of the case in document order.
// Elements of unknown tags are skipped.
func (c *TestCase) Children() []Elem {
	var children []Elem
	for _, n := range c.node.Children() {
		if r, ok := WrapResult(n); ok {
			children = append(children, r)
			continue
		}
		if n.Tag() == systemOutTag || n.Tag() == systemErrTag {
			children = append(children, &Output{Element: WrapElement(n)})
		}
	}
	return children
}

// Equal reports whether both cases serialize to the same structure.
func (c *TestCase) Equal(other *TestCase) bool {
	if c == nil || other == nil {
		return c == other
	}
	return c.Hash() == other.Hash()
}

// Matches ...
func (c *TestCase) Matches(n *xmltree.Node) bool {
	return n.Tag() == testCaseTag && c.Hash() == n.Hash()
}

// Clone returns a detached deep copy of the case.
func (c *TestCase) Clone() *TestCase {
	return WrapTestCase(c.node.Clone())
}

func (c *TestCase) allResults() []*Result {
	var results []*Result
	for _, n := range c.node.Children() {
		if r, ok := WrapResult(n); ok {
			results = append(results, r)
		}
	}
	return results
}

func (c *TestCase) hasResult(kind ResultKind) bool {
	for _, r := range c.Results() {
		if r.Kind() == kind {
			return true
		}
	}
	return false
}

func containsKind(kinds []ResultKind, kind ResultKind) bool {
	for _, k := range kinds {
		if k == kind {
			return true
		}
	}
	return false
}
