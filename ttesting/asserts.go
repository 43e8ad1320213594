// Package ttesting contains assertion helpers shared by the package tests.
//
// Each assertion runs as a named subtest so that a failing field in a decoded
// record is reported by name.
package ttesting

import (
	"strings"
	"testing"
)

func AssertEqualInt(t *testing.T, name string, got, want int) {
	t.Run(name, func(t *testing.T) {
		if got != want {
			t.Errorf("got %d; want %d", got, want)
		}
	})
}

func AssertEqualInt64(t *testing.T, name string, got, want int64) {
	t.Run(name, func(t *testing.T) {
		if got != want {
			t.Errorf("got %d; want %d", got, want)
		}
	})
}

func AssertEqualUint64(t *testing.T, name string, got, want uint64) {
	t.Run(name, func(t *testing.T) {
		if got != want {
			t.Errorf("got %d; want %d", got, want)
		}
	})
}

func AssertEqualBool(t *testing.T, name string, got, want bool) {
	t.Run(name, func(t *testing.T) {
		if got != want {
			t.Errorf("got %t; want %t", got, want)
		}
	})
}

func AssertEqualString(t *testing.T, name string, got, want string) {
	t.Run(name, func(t *testing.T) {
		if got != want {
			t.Errorf("got %q; want %q", got, want)
		}
	})
}

// AssertEqualStrings compares two string slices element by element.
func AssertEqualStrings(t *testing.T, name string, got, want []string) {
	t.Run(name, func(t *testing.T) {
		if len(got) != len(want) {
			t.Fatalf("got %d elements [%s]; want %d [%s]", len(got), strings.Join(got, ","), len(want), strings.Join(want, ","))
		}
		for i := range got {
			if got[i] != want[i] {
				t.Errorf("element %d: got %q; want %q", i, got[i], want[i])
			}
		}
	})
}

// AssertErrorContains fails unless err is non-nil and its message contains
// every one of the passed substrings.
func AssertErrorContains(t *testing.T, name string, err error, substrings ...string) {
	t.Run(name, func(t *testing.T) {
		if err == nil {
			t.Fatalf("got nil error; want one containing %q", substrings)
		}
		for _, s := range substrings {
			if !strings.Contains(err.Error(), s) {
				t.Errorf("error %q does not contain %q", err.Error(), s)
			}
		}
	})
}
