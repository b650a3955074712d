package batchutil

import "testing"

func TestSlurmTimeToSeconds(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{" ", ""},
		{"10", "600"},
		{"10:30", "630"},
		{"100:30", "6030"},
		{"2:10:5", "7805"},
		{"2:10:05", "7805"},
		{"2-2:10:30", "180630"},
		{"2-2", "180000"},
		{"2-2:10", "180600"},
	}

	for _, tc := range cases {
		got, err := SlurmTimeToSeconds(tc.in)
		if err != nil {
			t.Errorf("SlurmTimeToSeconds(%q) returned error: %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("SlurmTimeToSeconds(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestSlurmTimeToSecondsInvalid(t *testing.T) {
	for _, in := range []string{"2-0-4", "xvi", "1:2:3:4"} {
		if _, err := SlurmTimeToSeconds(in); err == nil {
			t.Errorf("SlurmTimeToSeconds(%q) expected error, got nil", in)
		}
	}
}
