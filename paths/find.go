// Package paths derives file names used by the converter: where a dump named
// on the command line lives, and where its output goes by default.
package paths

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/golang/glog"
)

// Find locates the passed dump and returns a path to open it at.
//
// A name that exists as given is returned unchanged. Otherwise a relative
// name is looked up in each of dirs in order. If nothing is found, the name is
// returned unchanged so that opening it reports a meaningful error.
func Find(fileName string, dirs ...string) string {
	if exists(fileName) || filepath.IsAbs(fileName) {
		return fileName
	}
	for _, dir := range dirs {
		if dir == "" {
			continue
		}
		path := filepath.Join(dir, fileName)
		if exists(path) {
			glog.Infof("paths.Find(%q)=%s", fileName, path)
			return path
		}
	}
	return fileName
}

func exists(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && !fi.IsDir()
}

// SplitDirs splits a list of directories separated by the OS path list
// separator, as in $PATH.
func SplitDirs(list string) []string {
	if list == "" {
		return nil
	}
	return filepath.SplitList(list)
}

// Output returns the default output path for input: input with its
// extension replaced by ext, which includes the leading dot. A name without
// an extension gets ext appended.
//
// For example, Output("enwiki-latest-page.sql", ".csv") is
// "enwiki-latest-page.csv".
func Output(input, ext string) string {
	base := filepath.Base(input)
	old := filepath.Ext(base)
	if old == base || (strings.HasPrefix(base, ".") && strings.Count(base, ".") == 1) {
		// Dot files such as ".dump" have no extension.
		old = ""
	}
	return strings.TrimSuffix(input, old) + ext
}
