package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bitrise-io/go-utils/v2/fileutil"
	"github.com/bitrise-io/go-utils/v2/log"
	"github.com/bitrise-io/junitparser/junit"
	"github.com/bitrise-io/junitparser/mocks"
	"github.com/bitrise-io/junitparser/output"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

const (
	reportA = `<testsuites><testsuite name="a"><testcase name="t1" classname="pkg"/><testcase name="t2" classname="pkg"><failure message="m"/></testcase></testsuite></testsuites>`
	reportB = `<testsuite name="b"><testcase name="t3"/><testcase name="t4"><skipped/></testcase></testsuite>`
	passing = `<testsuites><testsuite name="c"><testcase name="t5"/><testcase name="t6"><skipped/></testcase></testsuite></testsuites>`
)

func newTestApp(docs map[string]string) (*App, *mocks.Opener, *bytes.Buffer) {
	opener := new(mocks.Opener)
	for ref, doc := range docs {
		opener.On("Open", mock.Anything, ref).Return(io.NopCloser(strings.NewReader(doc)), nil).Once()
	}

	stdout := &bytes.Buffer{}
	logger := log.NewLogger()
	writer := output.NewWriter(new(mocks.PathModifier), new(mocks.PathChecker), fileutil.NewFileManager(), stdout, nil, logger)
	return New(logger, opener, writer, stdout), opener, stdout
}

func TestRun_Merge(t *testing.T) {
	app, opener, stdout := newTestApp(map[string]string{"a.xml": reportA, "b.xml": reportB})

	err := app.Run(context.Background(), []string{"merge", "--suite-name", "all", "a.xml", "b.xml", "-"})
	require.NoError(t, err)
	opener.AssertExpectations(t)

	merged, err := junit.FromBytes(stdout.Bytes())
	require.NoError(t, err)
	require.Equal(t, "all", merged.Name())
	require.Equal(t, 2, merged.Len())

	tests, _ := merged.Tests()
	failures, _ := merged.Failures()
	skipped, _ := merged.Skipped()
	assert.Equal(t, []int{4, 1, 1}, []int{tests, failures, skipped})
}

func TestRun_MergeToFile(t *testing.T) {
	dir := t.TempDir()
	dest := filepath.Join(dir, "merged.xml")

	opener := new(mocks.Opener)
	opener.On("Open", mock.Anything, "a.xml").Return(io.NopCloser(strings.NewReader(reportA)), nil)
	modifier := new(mocks.PathModifier)
	modifier.On("AbsPath", "merged.xml").Return(dest, nil)
	checker := new(mocks.PathChecker)
	checker.On("IsDirExists", dest).Return(false, nil)

	stdout := &bytes.Buffer{}
	logger := log.NewLogger()
	writer := output.NewWriter(modifier, checker, fileutil.NewFileManager(), stdout, nil, logger)
	app := New(logger, opener, writer, stdout)

	require.NoError(t, app.Run(context.Background(), []string{"merge", "--pretty", "a.xml", "merged.xml"}))
	modifier.AssertExpectations(t)
	require.Empty(t, stdout.String())

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(string(data), `<?xml version="1.0" encoding="UTF-8"?>`+"\n<testsuites"))
	require.Contains(t, string(data), "\n\t<testsuite name=\"a\"")
}

func TestRun_MergeGlob(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.xml", "b.xml"} {
		require.NoError(t, fileutil.NewFileManager().WriteBytes(filepath.Join(dir, name), []byte("ignored")))
	}

	app, opener, stdout := newTestApp(map[string]string{
		filepath.Join(dir, "a.xml"): reportA,
		filepath.Join(dir, "b.xml"): reportB,
	})
	require.NoError(t, app.Run(context.Background(), []string{"merge", "--glob", filepath.Join(dir, "*.xml"), "-"}))
	opener.AssertExpectations(t)

	merged, err := junit.FromBytes(stdout.Bytes())
	require.NoError(t, err)
	require.Equal(t, 2, merged.Len())

	app, _, _ = newTestApp(nil)
	err = app.Run(context.Background(), []string{"merge", "--glob", filepath.Join(dir, "*.json"), "-"})
	require.EqualError(t, err, "no reports match ["+filepath.Join(dir, "*.json")+"]")
}

func TestRun_Verify(t *testing.T) {
	app, _, _ := newTestApp(map[string]string{"c.xml": passing})
	require.NoError(t, app.Run(context.Background(), []string{"verify", "c.xml"}))

	app, _, _ = newTestApp(map[string]string{"c.xml": passing, "a.xml": reportA})
	err := app.Run(context.Background(), []string{"verify", "c.xml", "a.xml"})
	require.Error(t, err)

	var verifyErr *junit.VerifyError
	require.True(t, errors.As(err, &verifyErr))
	assert.Equal(t, &junit.VerifyError{Suite: "a", Case: "t2"}, verifyErr)
	assert.Equal(t, 1, ExitCode(err))
}

func wantSummary() junit.Summary {
	return junit.Summary{
		Tests:    4,
		Failures: 1,
		Skipped:  1,
		Suites: []junit.SuiteSummary{
			{Name: "a", Tests: 2, Failures: 1, Failed: []string{"pkg.t2"}},
			{Name: "b", Tests: 2, Skipped: 1},
		},
	}
}

func TestRun_Summary(t *testing.T) {
	tests := []struct {
		format string
		decode func([]byte, any) error
	}{
		{format: "json", decode: json.Unmarshal},
		{format: "yaml", decode: yaml.Unmarshal},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			app, _, stdout := newTestApp(map[string]string{"a.xml": reportA, "b.xml": reportB})
			require.NoError(t, app.Run(context.Background(), []string{"summary", "--format", tt.format, "a.xml", "b.xml"}))

			var got junit.Summary
			require.NoError(t, tt.decode(stdout.Bytes(), &got))
			if diff := cmp.Diff(wantSummary(), got); diff != "" {
				t.Errorf("summary mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRun_SummaryText(t *testing.T) {
	app, _, stdout := newTestApp(map[string]string{"a.xml": reportA, "b.xml": reportB})
	require.NoError(t, app.Run(context.Background(), []string{"summary", "a.xml", "b.xml"}))

	want := `4 tests, 1 failures, 0 errors, 1 skipped in 0s
a: 2 tests, 1 failures, 0 errors, 0 skipped in 0s
  FAILED pkg.t2
b: 2 tests, 0 failures, 0 errors, 1 skipped in 0s
`
	require.Equal(t, want, stdout.String())
}

func TestRun_Usage(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		wantCode int
		wantOut  string
	}{
		{name: "version", args: []string{"--version"}, wantCode: 0, wantOut: "junitparser dev\n"},
		{name: "short version", args: []string{"-v"}, wantCode: 0, wantOut: "junitparser dev\n"},
		{name: "no command", args: nil, wantCode: 2},
		{name: "unknown command", args: []string{"split"}, wantCode: 2},
		{name: "unknown flag", args: []string{"merge", "--bogus", "a.xml", "-"}, wantCode: 2},
		{name: "missing output", args: []string{"merge", "a.xml"}, wantCode: 2},
		{name: "invalid format", args: []string{"summary", "--format", "html", "a.xml"}, wantCode: 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, _, stdout := newTestApp(nil)
			err := app.Run(context.Background(), tt.args)
			require.Equal(t, tt.wantCode, ExitCode(err), "error: %v", err)
			if tt.wantOut != "" {
				require.Equal(t, tt.wantOut, stdout.String())
			}
		})
	}
}

func TestRun_Help(t *testing.T) {
	app, _, stdout := newTestApp(nil)
	require.NoError(t, app.Run(context.Background(), []string{"--help"}))
	require.Contains(t, stdout.String(), "Usage:")
	require.Contains(t, stdout.String(), "merge")
}

func TestRun_Errors(t *testing.T) {
	app, _, _ := newTestApp(map[string]string{"bad.xml": "<testsuites><testsuite>"})
	err := app.Run(context.Background(), []string{"verify", "bad.xml"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to parse bad.xml")
	require.Equal(t, 1, ExitCode(err))

	opener := new(mocks.Opener)
	opener.On("Open", mock.Anything, "missing.xml").Return(nil, errors.New("failed to open missing.xml"))
	app = New(log.NewLogger(), opener, nil, io.Discard)
	err = app.Run(context.Background(), []string{"summary", "missing.xml"})
	require.EqualError(t, err, "failed to open missing.xml")
	require.Equal(t, 1, ExitCode(err))
}
