// Package paths locates game datafiles (.shp sprites and .pal
// palettes) across the places they commonly live, so tools work out of
// the box whether run from a checkout, an install, or next to
// extracted game assets.
package paths

import (
	"io"
	"os"
	"path/filepath"

	"github.com/golang/glog"
	"github.com/pkg/errors"
)

// DataDirEnv names the environment variable that, when set, is
// searched first.
const DataDirEnv = "GO_SHP_DATA"

func possiblePaths(fileName string) []string {
	dirs := []string{
		".",
		"datafiles",
		"Palettes",
	}
	if env := os.Getenv(DataDirEnv); env != "" {
		dirs = append([]string{env}, dirs...)
	}
	if gopath := os.Getenv("GOPATH"); gopath != "" {
		dirs = append(dirs, filepath.Join(gopath, "src", "badc0de.net", "pkg", "go-shp", "datafiles"))
	}

	paths := make([]string, 0, len(dirs))
	for _, d := range dirs {
		paths = append(paths, filepath.Join(d, fileName))
	}
	return paths
}

// Find locates the passed datafile shortname and returns an absolute
// or relative path to find the datafile at, or "" if it is nowhere to
// be found.
//
// For example, for "unittem.pal" it may return "datafiles/unittem.pal".
func Find(fileName string) string {
	for _, path := range possiblePaths(fileName) {
		if f, err := os.Open(path); err == nil {
			f.Close()
			glog.Infof("paths.Find(%q)=%s", fileName, path)
			return path
		}
	}
	return ""
}

// Open locates the passed file in the same locations that Find would
// look, and opens it.
func Open(fileName string) (interface {
	io.ReadCloser
	io.Seeker
}, error) {
	path := Find(fileName)
	if path == "" {
		return nil, errors.Errorf("go-shp/paths: %q not found in any known location", fileName)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "go-shp/paths: opening %q", path)
	}
	return f, nil
}
