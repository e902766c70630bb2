package pal

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/golang/glog"
)

// Entry is one named palette within a catalog group.
type Entry struct {
	Name    string
	Palette *Palette
}

// Group is an ordered list of palettes that shipped together, keyed by
// the directory they were found in ("" for the catalog root).
type Group struct {
	Name    string
	Entries []Entry
}

// LoadCatalog walks a directory of .pal files and groups them by their
// subdirectory, e.g. Palettes/RA2/unittem.pal lands in group "RA2".
// Groups and entries come back sorted by name so menus are stable
// across runs. Unreadable or malformed files are skipped with a
// warning; an empty directory yields an empty catalog, not an error.
func LoadCatalog(dir string) ([]Group, error) {
	byGroup := map[string][]Entry{}

	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.EqualFold(filepath.Ext(path), ".pal") {
			return nil
		}

		b, err := os.ReadFile(path)
		if err != nil {
			glog.Warningf("pal: skipping %s: %v", path, err)
			return nil
		}
		p, err := FromBytes(b)
		if err != nil {
			glog.Warningf("pal: skipping %s: %v", path, err)
			return nil
		}

		rel, err := filepath.Rel(dir, path)
		if err != nil {
			rel = path
		}
		group := filepath.Dir(rel)
		if group == "." {
			group = ""
		}
		name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		byGroup[group] = append(byGroup[group], Entry{Name: name, Palette: p})
		return nil
	})
	if err != nil {
		return nil, err
	}

	var groups []Group
	for name, entries := range byGroup {
		sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })
		groups = append(groups, Group{Name: name, Entries: entries})
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i].Name < groups[j].Name })

	glog.V(2).Infof("pal: catalog from %s: %d groups", dir, len(groups))
	return groups, nil
}
