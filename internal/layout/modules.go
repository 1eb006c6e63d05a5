// Package layout locates installed artifact content under an installation's
// modules directory.
//
// Content for groupId:artifactId lives in modules/<group path>/<artifactId>/
// using the repository file name (artifactId-version[-classifier].ext).
package layout

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/conn-castle/distup/internal/gav"
	"github.com/conn-castle/distup/internal/messages"
)

// System is the filesystem surface the layout needs.
type System interface {
	ReadDir(name string) ([]fs.DirEntry, error)
}

// RealSystem implements System using the OS filesystem.
type RealSystem struct{}

// ReadDir reads the named directory.
func (RealSystem) ReadDir(name string) ([]fs.DirEntry, error) {
	return os.ReadDir(name)
}

// Modules resolves artifact locations under one modules directory.
type Modules struct {
	dir string
	sys System
}

// NewModules returns a layout rooted at dir. A nil sys uses the OS filesystem.
func NewModules(dir string, sys System) *Modules {
	if sys == nil {
		sys = RealSystem{}
	}
	return &Modules{dir: dir, sys: sys}
}

// Dir is the directory holding every installed version of key.
func (m *Modules) Dir(key gav.Key) string {
	return filepath.Join(m.dir, filepath.FromSlash(gav.GroupPath(key.GroupID)), key.ArtifactID)
}

// PathFor is where the content of a is installed.
func (m *Modules) PathFor(a gav.Artifact) string {
	return filepath.Join(m.Dir(a.Key()), a.FileName())
}

// Find returns the installed files belonging to the identity of a, in any
// version. An empty result means the artifact is not part of the installed layout.
func (m *Modules) Find(a gav.Artifact) ([]string, error) {
	if err := a.Validate(); err != nil {
		return nil, fmt.Errorf(messages.LayoutListFmt, a.Key(), err)
	}
	dir := m.Dir(a.Key())
	entries, err := m.sys.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf(messages.LayoutListFmt, a.Key(), err)
	}
	prefix := a.ArtifactID + "-"
	suffix := "." + a.Ext()
	var found []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.HasPrefix(name, prefix) || !strings.HasSuffix(name, suffix) {
			continue
		}
		if a.Classifier != "" && !strings.HasSuffix(strings.TrimSuffix(name, suffix), "-"+a.Classifier) {
			continue
		}
		found = append(found, filepath.Join(dir, name))
	}
	sort.Strings(found)
	return found, nil
}
