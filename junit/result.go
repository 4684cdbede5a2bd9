package junit

import (
	"github.com/bitrise-io/junitparser/xmltree"
)

// ResultKind is the outcome a Result element records.
type ResultKind int

// Final results decide the outcome of a test case. Interim results record reruns and flaky attempts.
const (
	KindFailure ResultKind = iota
	KindError
	KindSkipped
	KindRerunFailure
	KindRerunError
	KindFlakyFailure
	KindFlakyError
)

var resultTags = map[ResultKind]string{
	KindFailure:      "failure",
	KindError:        "error",
	KindSkipped:      "skipped",
	KindRerunFailure: "rerunFailure",
	KindRerunError:   "rerunError",
	KindFlakyFailure: "flakyFailure",
	KindFlakyError:   "flakyError",
}

// String returns the element tag of the kind.
func (k ResultKind) String() string {
	return resultTags[k]
}

// Final ...
func (k ResultKind) Final() bool {
	return k == KindFailure || k == KindError || k == KindSkipped
}

// ResultKindOf returns the kind whose element tag is tag.
func ResultKindOf(tag string) (ResultKind, bool) {
	for k, t := range resultTags {
		if t == tag {
			return k, true
		}
	}
	return 0, false
}

const (
	systemOutTag  = "system-out"
	systemErrTag  = "system-err"
	stackTraceTag = "stackTrace"
)

// Result is a failure, error or skipped outcome of a test case, or an interim rerun/flaky outcome.
type Result struct {
	*Element
	kind ResultKind
}

// NewResult creates a result of the given kind. Empty message and type are not written.
func NewResult(kind ResultKind, message, typ string) *Result {
	r := &Result{Element: NewElement(kind.String()), kind: kind}
	if message != "" {
		r.SetMessage(message)
	}
	if typ != "" {
		r.SetType(typ)
	}
	return r
}

// NewFailure ...
func NewFailure(message, typ string) *Result {
	return NewResult(KindFailure, message, typ)
}

// NewError ...
func NewError(message, typ string) *Result {
	return NewResult(KindError, message, typ)
}

// NewSkipped ...
func NewSkipped(message, typ string) *Result {
	return NewResult(KindSkipped, message, typ)
}

// WrapResult returns a result view over n, or false if n is not a result element.
func WrapResult(n *xmltree.Node) (*Result, bool) {
	kind, ok := ResultKindOf(n.Tag())
	if !ok {
		return nil, false
	}
	return &Result{Element: WrapElement(n), kind: kind}, true
}

// Kind ...
func (r *Result) Kind() ResultKind {
	return r.kind
}

// Message ...
func (r *Result) Message() string {
	return messageAttr.Value(r)
}

// SetMessage ...
func (r *Result) SetMessage(message string) {
	messageAttr.Set(r, message)
}

// Type ...
func (r *Result) Type() string {
	return typeAttr.Value(r)
}

// SetType ...
func (r *Result) SetType(typ string) {
	typeAttr.Set(r, typ)
}

// StackTrace returns the stackTrace child of an interim result.
func (r *Result) StackTrace() string {
	return r.childText(stackTraceTag)
}

// SetStackTrace ...
func (r *Result) SetStackTrace(trace string) {
	r.setChildText(stackTraceTag, trace)
}

// SystemOut returns the system-out child of an interim result.
func (r *Result) SystemOut() string {
	return r.childText(systemOutTag)
}

// SetSystemOut ...
func (r *Result) SetSystemOut(text string) {
	r.setChildText(systemOutTag, text)
}

// SystemErr returns the system-err child of an interim result.
func (r *Result) SystemErr() string {
	return r.childText(systemErrTag)
}

// SetSystemErr ...
func (r *Result) SetSystemErr(text string) {
	r.setChildText(systemErrTag, text)
}

// Equal reports whether both results have the same kind, type and message.
// The body text is not compared.
func (r *Result) Equal(other *Result) bool {
	if r == nil || other == nil {
		return r == other
	}
	return r.kind == other.kind &&
		sameAttr(r, other, string(typeAttr)) &&
		sameAttr(r, other, string(messageAttr))
}

// Matches ...
func (r *Result) Matches(n *xmltree.Node) bool {
	other, ok := WrapResult(n)
	return ok && r.Equal(other)
}

// Output is a captured system-out or system-err stream.
type Output struct {
	*Element
}

// NewSystemOut ...
func NewSystemOut(text string) *Output {
	o := &Output{Element: NewElement(systemOutTag)}
	o.SetText(text)
	return o
}

// NewSystemErr ...
func NewSystemErr(text string) *Output {
	o := &Output{Element: NewElement(systemErrTag)}
	o.SetText(text)
	return o
}

// IsSystemOut ...
func (o *Output) IsSystemOut() bool {
	return o.Tag() == systemOutTag
}

func sameAttr(a, b Elem, name string) bool {
	va, oka := a.Elem().Attribute(name)
	vb, okb := b.Elem().Attribute(name)
	return oka == okb && va == vb
}
