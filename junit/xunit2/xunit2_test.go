package xunit2

import (
	"bytes"
	"testing"

	"github.com/bitrise-io/junitparser/junit"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromFile(t *testing.T) {
	r, err := FromFile("testdata/pytest.xml")
	require.NoError(t, err)
	require.Equal(t, Schema, r.Schema())

	suites := r.TestSuites()
	require.Len(t, suites, 1)

	suite := suites[0]
	assert.Equal(t, "unit", suite.Group())
	assert.Equal(t, "1", suite.ID())
	assert.Equal(t, "tests", suite.Package())
	assert.Equal(t, "tests/test_app.py", suite.File())
	assert.Equal(t, "run.log", suite.Log())
	assert.Equal(t, "http://ci/1", suite.URL())
	assert.Equal(t, "8.1", suite.Version())

	var names []string
	for _, c := range suite.TestCases() {
		names = append(names, c.Name())
	}
	want := []string{"test_ok", "test_flaky", "test_rerun", "test_skip"}
	if diff := cmp.Diff(want, names); diff != "" {
		t.Errorf("TestCases() mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, "fast", suite.TestCases()[0].Group())
	require.Len(t, suite.TestSuites(), 1)
}

func TestTestCase_InterimResults(t *testing.T) {
	r, err := FromFile("testdata/pytest.xml")
	require.NoError(t, err)

	cases := r.TestSuites()[0].TestCases()

	flaky := cases[1]
	require.True(t, flaky.IsPassed())
	require.Len(t, flaky.FlakyFailures(), 1)
	require.Len(t, flaky.FlakyErrors(), 1)
	require.Empty(t, flaky.RerunFailures())

	first := flaky.FlakyFailures()[0]
	assert.Equal(t, "first attempt", first.Message())
	assert.Equal(t, "AssertionError", first.Type())
	assert.Equal(t, "assert 1 == 2", first.StackTrace())
	assert.Equal(t, "attempt 1", first.SystemOut())
	assert.Equal(t, "", first.SystemErr())

	rerun := cases[2]
	require.True(t, rerun.IsFailure())
	require.Len(t, rerun.RerunFailures(), 1)
	require.Len(t, rerun.RerunErrors(), 1)
	require.Len(t, rerun.Results(), 1)
}

func TestTestCase_AddInterimResult(t *testing.T) {
	c := NewTestCase("test", "pkg")

	rerun := NewRerunFailure("rerun", "AssertionError")
	rerun.SetStackTrace("trace")
	require.NoError(t, c.AddInterimResult(rerun))
	require.NoError(t, c.AddInterimResult(NewRerunError("", "")))
	require.NoError(t, c.AddInterimResult(NewFlakyFailure("", "")))
	require.NoError(t, c.AddInterimResult(NewFlakyError("", "")))
	require.Error(t, c.AddInterimResult(junit.NewFailure("", "")))

	require.True(t, c.IsPassed())
	require.Len(t, c.InterimResults(), 4)
	require.Equal(t, `<testcase name="test" classname="pkg"><rerunFailure message="rerun" type="AssertionError"><stackTrace>trace</stackTrace></rerunFailure><rerunError></rerunError><flakyFailure></flakyFailure><flakyError></flakyError></testcase>`, string(c.Bytes()))
}

func TestReport_UpdateStatistics(t *testing.T) {
	r, err := FromFile("testdata/pytest.xml")
	require.NoError(t, err)

	tests, ok := r.Tests()
	require.True(t, ok)
	assert.Equal(t, 4, tests)

	failures, _ := r.Failures()
	assert.Equal(t, 1, failures)
	time, _ := r.Time()
	assert.Equal(t, 0.5, time)

	_, ok = r.Skipped()
	require.False(t, ok)
	_, ok = r.Attribute("skipped")
	require.False(t, ok)

	suiteSkipped, ok := r.TestSuites()[0].Skipped()
	require.True(t, ok)
	assert.Equal(t, 1, suiteSkipped)
}

func TestReport_Build(t *testing.T) {
	r := NewReport("xunit2")

	outer := NewTestSuite("outer")
	outer.SetPackage("pkg")
	outer.AddTestCase(NewTestCase("a", ""))

	inner := NewTestSuite("inner")
	skipped := NewTestCase("b", "")
	skipped.AddResult(junit.NewSkipped("", ""))
	inner.AddTestCase(skipped)
	outer.AddTestSuite(inner)
	outer.UpdateStatistics()

	r.AddTestSuite(outer)
	r.UpdateStatistics()

	var buf bytes.Buffer
	require.NoError(t, r.Encode(&buf, false))

	parsed, err := FromBytes(buf.Bytes())
	require.NoError(t, err)
	require.Len(t, parsed.TestSuites(), 1)
	require.Equal(t, "pkg", parsed.TestSuites()[0].Package())
	require.Equal(t, 2, parsed.TestSuites()[0].Len())

	tests, _ := parsed.Tests()
	require.Equal(t, 2, tests)
	_, ok := parsed.Attribute("skipped")
	require.False(t, ok)
}
