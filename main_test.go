package main

import "testing"

func Test_run(t *testing.T) {
	tests := []struct {
		name string
		args []string
		envs map[string]string
		want int
	}{
		{
			name: "Prints the version",
			args: []string{"--version"},
			want: 0,
		},
		{
			name: "Missing command",
			args: nil,
			want: 2,
		},
		{
			name: "Missing report",
			args: []string{"verify", "testdata/missing.xml"},
			want: 1,
		},
		{
			name: "Invalid configuration",
			args: []string{"--version"},
			envs: map[string]string{"JUNITPARSER_MAX_SOURCE_SIZE": "huge"},
			want: 1,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for key, value := range tt.envs {
				t.Setenv(key, value)
			}
			if got := run(tt.args); got != tt.want {
				t.Errorf("run() = %v, want %v", got, tt.want)
			}
		})
	}
}
