package cli

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ardnew/lleval/log"
)

func TestLogConfig_Scan(t *testing.T) {
	t.Cleanup(func() {
		log.Config(
			log.WithLevel(log.DefaultLevel),
			log.WithFormat(log.DefaultFormat),
			log.WithTimeLayout(log.DefaultTimeLayout),
			log.WithPretty(true),
			log.WithCaller(false),
		)
	})

	tests := []struct {
		name string
		args []string
		want logConfig
	}{
		{
			name: "separate values",
			args: []string{"eval", "--log-level", "trace", "x;", "--log-format", "json"},
			want: logConfig{Level: "trace", Format: "json", Pretty: true},
		},
		{
			name: "assigned values",
			args: []string{"--log-level=warn", "--log-time-layout=Kitchen"},
			want: logConfig{Level: "warn", TimeLayout: "Kitchen", Pretty: true},
		},
		{
			name: "negated booleans",
			args: []string{"--no-log-pretty", "--log-caller"},
			want: logConfig{Caller: true},
		},
		{
			name: "assigned booleans",
			args: []string{"--log-pretty=false", "--no-log-caller=false"},
			want: logConfig{Caller: true},
		},
		{
			name: "invalid boolean ignored",
			args: []string{"--log-pretty=maybe"},
			want: logConfig{Pretty: true},
		},
		{
			name: "value looks like flag",
			args: []string{"--log-level", "--log-caller"},
			want: logConfig{Caller: true, Pretty: true},
		},
		{
			name: "stops at terminator",
			args: []string{"--", "--log-level", "debug"},
			want: logConfig{Pretty: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := logConfig{Pretty: true}
			got.scan(tt.args)

			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("scan(%q) mismatch (-want +got):\n%s", tt.args, diff)
			}
		})
	}
}

func TestScanBool(t *testing.T) {
	tests := []struct {
		name, value string
		assigned    bool
		want, ok    bool
	}{
		{"--log-pretty", "", false, true, true},
		{"--no-log-pretty", "", false, false, true},
		{"--log-pretty", "false", true, false, true},
		{"--no-log-pretty", "false", true, true, true},
		{"--log-caller", "nope", true, false, false},
	}

	for _, tt := range tests {
		got, ok := scanBool(tt.name, tt.value, tt.assigned)
		if got != tt.want || ok != tt.ok {
			t.Errorf("scanBool(%q, %q, %v) = (%v, %v), want (%v, %v)",
				tt.name, tt.value, tt.assigned, got, ok, tt.want, tt.ok)
		}
	}
}
