package junit

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestMerge(t *testing.T) {
	normal, err := FromFile("testdata/normal.xml")
	require.NoError(t, err)
	noCounters, err := FromFile("testdata/no_counters.xml")
	require.NoError(t, err)
	passing, err := FromFile("testdata/passing.xml")
	require.NoError(t, err)

	merged := Merge([]*Report{normal, noCounters, passing}, "merged")

	require.Equal(t, "merged", merged.Name())

	// suite1 of normal.xml has a hostname, a timestamp and properties: it is not folded with the other suite1s
	var names []string
	var counts []int
	for _, s := range merged.TestSuites() {
		names = append(names, s.Name())
		counts = append(counts, s.Len())
	}
	require.Equal(t, []string{"suite1", "suite1", "suite2"}, names)
	require.Equal(t, []int{4, 5, 1}, counts)
	require.Equal(t, statistics{Tests: 10, Failures: 3, Errors: 1, Skipped: 3, Time: 2.1}, reportStatistics(merged))
}

func TestMerge_FoldsSameSuites(t *testing.T) {
	a, err := FromString(`<testsuites><testsuite name="s1"><testcase name="t1"/></testsuite><testsuite name="s2"><testcase name="t2"><error/></testcase></testsuite></testsuites>`)
	require.NoError(t, err)
	b, err := FromString(`<testsuite name="s1"><testcase name="t3"><failure/></testcase></testsuite>`)
	require.NoError(t, err)
	c, err := FromString(`<testsuites><testsuite name="s3"><testcase name="t4" time="0.25"><skipped/></testcase></testsuite></testsuites>`)
	require.NoError(t, err)

	merged := Merge([]*Report{a, b, c}, "")

	require.Equal(t, []string{"s1/t1:", "s1/t3:failure", "s2/t2:error", "s3/t4:skipped"}, describe(merged))
	require.Equal(t, statistics{Tests: 4, Failures: 1, Errors: 1, Skipped: 1, Time: 0.25}, reportStatistics(merged))
	_, hasName := merged.Attribute("name")
	require.False(t, hasName)
}

func TestMerge_Empty(t *testing.T) {
	merged := Merge(nil, "")
	require.Equal(t, 0, merged.Len())
	require.Equal(t, statistics{}, reportStatistics(merged))
}

func TestVerify(t *testing.T) {
	tests := []struct {
		name    string
		docs    []string
		wantErr *VerifyError
	}{
		{
			name:    "failure",
			docs:    []string{`<testsuites><testsuite name="s"><testcase name="t"><failure/></testcase></testsuite></testsuites>`},
			wantErr: &VerifyError{Suite: "s", Case: "t"},
		},
		{
			name: "passed and skipped",
			docs: []string{`<testsuites><testsuite name="s"><testcase name="t1"/><testcase name="t2"><skipped/></testcase></testsuite></testsuites>`},
		},
		{
			name: "error in the second report",
			docs: []string{
				`<testsuite name="s1"><testcase name="t1"/></testsuite>`,
				`<testsuite name="s2"><testcase name="t2"/><testcase name="t3"><error/></testcase></testsuite>`,
			},
			wantErr: &VerifyError{Suite: "s2", Case: "t3"},
		},
		{
			name:    "failure in a nested suite",
			docs:    []string{`<testsuite name="outer"><testsuite name="inner"><testcase name="t"><failure/></testcase></testsuite></testsuite>`},
			wantErr: &VerifyError{Suite: "inner", Case: "t"},
		},
		{
			name:    "counters are not trusted",
			docs:    []string{`<testsuite name="s" failures="0"><testcase name="t"><failure/></testcase></testsuite>`},
			wantErr: &VerifyError{Suite: "s", Case: "t"},
		},
		{
			name:    "skipped and failed",
			docs:    []string{`<testsuite name="s"><testcase name="t"><skipped/><failure/></testcase></testsuite>`},
			wantErr: nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var reports []*Report
			for _, doc := range tt.docs {
				r, err := FromString(doc)
				require.NoError(t, err)
				reports = append(reports, r)
			}

			err := Verify(reports...)
			if tt.wantErr == nil {
				require.NoError(t, err)
				return
			}

			var verifyErr *VerifyError
			require.ErrorAs(t, err, &verifyErr)
			require.Equal(t, tt.wantErr, verifyErr)
		})
	}
}

func TestSummarize(t *testing.T) {
	r, err := FromFile("testdata/normal.xml")
	require.NoError(t, err)

	want := Summary{
		Name:     "all",
		Tests:    4,
		Failures: 1,
		Errors:   1,
		Skipped:  1,
		Time:     1.5,
		Suites: []SuiteSummary{
			{
				Name:     "suite1",
				Tests:    4,
				Failures: 1,
				Errors:   1,
				Skipped:  1,
				Time:     1.5,
				Failed:   []string{"pkg.Suite1.fails", "pkg.Suite1.errors"},
			},
		},
	}
	if diff := cmp.Diff(want, Summarize(r)); diff != "" {
		t.Errorf("Summarize() mismatch (-want +got):\n%s", diff)
	}
}
