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
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"syscall"
	"testing"
)

func TestMockFs_Exists(t *testing.T) {
	fs := MockFs(map[string][]byte{
		"a/b/c": nil,
		"d":     []byte("d"),
	})

	testCases := []struct {
		name          string
		exists, isDir bool
	}{
		{"a", true, true},
		{"a/b", true, true},
		{"a/b/c", true, false},
		{"a/b/c/", true, false},
		{"d", true, false},
		{"e", false, false},
	}

	for _, test := range testCases {
		t.Run(test.name, func(t *testing.T) {
			exists, isDir, err := fs.Exists(test.name)
			if err != nil {
				t.Fatalf("unexpected error: %s", err)
			}
			if exists != test.exists || isDir != test.isDir {
				t.Errorf("want: %v %v, got %v %v", test.exists, test.isDir, exists, isDir)
			}
		})
	}
}

func TestMockFs_MkdirAll(t *testing.T) {
	fs := MockFs(map[string][]byte{
		"out": nil,
	})

	if err := fs.MkdirAll("build/release", 0755); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if _, isDir, _ := fs.Exists("build"); !isDir {
		t.Errorf("expected build to be a directory")
	}

	err := fs.MkdirAll("out/release", 0755)
	if !errors.Is(err, syscall.ENOTDIR) {
		t.Errorf("want ENOTDIR, got %v", err)
	}
}

func TestMockFs_WriteFile(t *testing.T) {
	fs := MockFs(nil)

	err := fs.WriteFile("missing/file", []byte("x"), 0644)
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("want ErrNotExist, got %v", err)
	}

	if err := fs.MkdirAll("out", 0755); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if err := fs.WriteFile("out/file", []byte("contents"), 0644); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}

	got, err := fs.ReadFile("out/file")
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if string(got) != "contents" {
		t.Errorf("want %q, got %q", "contents", got)
	}

	if want := []string{"out/file"}; !reflect.DeepEqual(Files(fs), want) {
		t.Errorf("want %v, got %v", want, Files(fs))
	}
}

func TestOsFs_MkdirAllCollision(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "out")
	if err := os.WriteFile(file, nil, 0644); err != nil {
		t.Fatal(err)
	}

	if err := OsFs.MkdirAll(file, 0755); err == nil {
		t.Errorf("expected an error creating a directory over a file")
	}
}

func TestJoinWithFlag(t *testing.T) {
	testCases := []struct {
		paths []string
		want  string
	}{
		{nil, ""},
		{[]string{"thirdparty"}, "-I thirdparty"},
		{[]string{"thirdparty", "include"}, "-I thirdparty -I include"},
	}

	for _, test := range testCases {
		if got := JoinWithFlag("-I", test.paths); got != test.want {
			t.Errorf("JoinWithFlag(%v) = %q; want: %q", test.paths, got, test.want)
		}
	}
}
