package junit

import "fmt"

// XMLError reports a document or operation that violates the JUnit XML format.
type XMLError struct {
	msg string
}

func (e *XMLError) Error() string {
	return e.msg
}

var (
	// ErrInvalidFormat is returned when the root element is neither testsuites nor testsuite.
	ErrInvalidFormat = &XMLError{msg: "invalid format"}
	// ErrMultipleResults is returned by TestCase.SingleResult when a case carries more than one final result.
	ErrMultipleResults = &XMLError{msg: "only one result allowed per test case"}
	// ErrMissingFilepath is returned by Report.Write when the report was not read from a file.
	ErrMissingFilepath = &XMLError{msg: "no filepath to write to"}
)

// TypeError is returned when a typed attribute is set to a value of the wrong kind.
type TypeError struct {
	Attr  string
	Want  AttrKind
	Value interface{}
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("attribute %s: expected %s value, got %T (%v)", e.Attr, e.Want, e.Value, e.Value)
}
