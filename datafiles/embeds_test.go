package datafiles

import (
	"bytes"
	"io/fs"
	"testing"
)

func TestDumps(t *testing.T) {
	names, err := fs.Glob(Dumps(), "*.sql")
	if err != nil {
		t.Fatalf("listing dumps: %v", err)
	}
	if len(names) != 7 {
		t.Errorf("got %d dumps %v; want 7", len(names), names)
	}
	for _, name := range names {
		data, err := ReadFile(name)
		if err != nil {
			t.Errorf("reading %s: %v", name, err)
			continue
		}
		if !bytes.Contains(data, []byte("INSERT INTO `")) {
			t.Errorf("%s has no INSERT statement", name)
		}
	}
}
