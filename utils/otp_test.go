package authUtils

import (
	"testing"
	"time"
)

func TestGenerateOTPFormat(t *testing.T) {
	t.Parallel()

	for i := 0; i < 100; i++ {
		code, err := GenerateOTP()
		if err != nil {
			t.Fatalf("GenerateOTP: %v", err)
		}
		if len(code) != 6 {
			t.Fatalf("code %q has length %d, want 6", code, len(code))
		}
		for _, r := range code {
			if r < '0' || r > '9' {
				t.Fatalf("code %q contains non-digit %q", code, r)
			}
		}
	}
}

func TestGenerateOTPDistribution(t *testing.T) {
	t.Parallel()

	// 10k draws from a million-value space: any single value repeating
	// more than a handful of times points at a broken generator.
	seen := map[string]int{}
	for i := 0; i < 10000; i++ {
		code, err := GenerateOTP()
		if err != nil {
			t.Fatalf("GenerateOTP: %v", err)
		}
		seen[code]++
		if seen[code] > 4 {
			t.Fatalf("code %q drawn %d times in 10000 draws", code, seen[code])
		}
	}
}

func TestOTPExpiry(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)
	if got, want := OTPExpiry(now), now.Add(5*time.Minute); !got.Equal(want) {
		t.Errorf("OTPExpiry = %v, want %v", got, want)
	}
}

func TestIsOTPValid(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)

	cases := []struct {
		name   string
		expiry *time.Time
		want   bool
	}{
		{"nil expiry", nil, false},
		{"before expiry", timePtr(now.Add(time.Minute)), true},
		{"exactly at expiry", timePtr(now), true},
		{"one second past expiry", timePtr(now.Add(-time.Second)), false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsOTPValid(tc.expiry, now); got != tc.want {
				t.Errorf("IsOTPValid = %v, want %v", got, tc.want)
			}
		})
	}
}

func timePtr(t time.Time) *time.Time { return &t }
