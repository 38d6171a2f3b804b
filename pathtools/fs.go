// Copyright 2016 Google Inc. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package pathtools

import (
	"os"
	"path/filepath"
	"sort"
	"syscall"
)

var OsFs FileSystem = osFs{}

// MockFs returns an in-memory FileSystem populated with files.  Every parent
// directory of a file, and the current directory, is implicitly present.
func MockFs(files map[string][]byte) FileSystem {
	fs := &mockFs{
		files: make(map[string][]byte, len(files)),
		dirs:  map[string]bool{".": true},
	}

	for f, b := range files {
		fs.files[filepath.Clean(f)] = b
		fs.addParents(f)
	}

	return fs
}

// FileSystem is the subset of disk operations the generator performs.  It is
// implemented by OsFs and by MockFs for tests.
type FileSystem interface {
	// Exists returns whether name exists and whether it is a directory.
	Exists(name string) (exists bool, isDir bool, err error)
	MkdirAll(name string, perm os.FileMode) error
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte, perm os.FileMode) error
	// EvalSymlinks returns name with all symbolic links resolved.
	EvalSymlinks(name string) (string, error)
}

// osFs implements FileSystem using the local disk.
type osFs struct{}

func (osFs) Exists(name string) (bool, bool, error) {
	stat, err := os.Stat(name)
	if err == nil {
		return true, stat.IsDir(), nil
	} else if os.IsNotExist(err) {
		return false, false, nil
	} else {
		return false, false, err
	}
}

func (osFs) MkdirAll(name string, perm os.FileMode) error { return os.MkdirAll(name, perm) }
func (osFs) ReadFile(name string) ([]byte, error)         { return os.ReadFile(name) }
func (osFs) WriteFile(name string, data []byte, perm os.FileMode) error {
	return os.WriteFile(name, data, perm)
}

func (osFs) EvalSymlinks(name string) (string, error) {
	path, err := filepath.EvalSymlinks(name)
	if err != nil {
		return "", err
	}
	return filepath.Abs(path)
}

type mockFs struct {
	files map[string][]byte
	dirs  map[string]bool
}

func (m *mockFs) addParents(name string) {
	dir := filepath.Dir(filepath.Clean(name))
	for dir != "." && dir != "/" {
		m.dirs[dir] = true
		dir = filepath.Dir(dir)
	}
	m.dirs[dir] = true
}

func (m *mockFs) Exists(name string) (bool, bool, error) {
	name = filepath.Clean(name)
	if _, ok := m.files[name]; ok {
		return ok, false, nil
	}
	if _, ok := m.dirs[name]; ok {
		return ok, true, nil
	}
	return false, false, nil
}

func (m *mockFs) MkdirAll(name string, perm os.FileMode) error {
	name = filepath.Clean(name)
	for dir := name; dir != "." && dir != "/"; dir = filepath.Dir(dir) {
		if _, ok := m.files[dir]; ok {
			return &os.PathError{
				Op:   "mkdir",
				Path: dir,
				Err:  syscall.ENOTDIR,
			}
		}
	}
	m.dirs[name] = true
	m.addParents(name)
	return nil
}

func (m *mockFs) ReadFile(name string) ([]byte, error) {
	if f, ok := m.files[filepath.Clean(name)]; ok {
		return append([]byte(nil), f...), nil
	}

	return nil, &os.PathError{
		Op:   "open",
		Path: name,
		Err:  os.ErrNotExist,
	}
}

func (m *mockFs) WriteFile(name string, data []byte, perm os.FileMode) error {
	name = filepath.Clean(name)
	if m.dirs[name] {
		return &os.PathError{
			Op:   "open",
			Path: name,
			Err:  syscall.EISDIR,
		}
	}
	if !m.dirs[filepath.Dir(name)] {
		return &os.PathError{
			Op:   "open",
			Path: name,
			Err:  os.ErrNotExist,
		}
	}
	m.files[name] = append([]byte(nil), data...)
	return nil
}

func (m *mockFs) EvalSymlinks(name string) (string, error) {
	name = filepath.Clean(name)
	if _, ok := m.files[name]; !ok && !m.dirs[name] {
		return "", &os.PathError{
			Op:   "lstat",
			Path: name,
			Err:  os.ErrNotExist,
		}
	}
	if filepath.IsAbs(name) {
		return name, nil
	}
	return filepath.Join("/", name), nil
}

// Files returns the sorted names of all files in a FileSystem returned by
// MockFs.
func Files(fs FileSystem) []string {
	m, ok := fs.(*mockFs)
	if !ok {
		return nil
	}
	var files []string
	for f := range m.files {
		files = append(files, f)
	}
	sort.Strings(files)
	return files
}
