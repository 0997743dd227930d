package cli

import (
	"testing"
	"time"
)

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		name string
		in   time.Duration
		want string
	}{
		{name: "milliseconds", in: 12*time.Millisecond + 400*time.Microsecond, want: "12ms"},
		{name: "seconds keep one decimal", in: 2300 * time.Millisecond, want: "2.3s"},
		{name: "minutes round to seconds", in: 90*time.Second + 300*time.Millisecond, want: "1m30s"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			if got := formatDuration(tt.in); got != tt.want {
				t.Fatalf("formatDuration(%v) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
