// Package testutil provides shared test helpers for building archives and
// document trees.
package testutil

import (
	"archive/tar"
	"bytes"
	"io"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

// Entry is a single archive entry. Entries with a trailing slash in Name
// are directories; Linkname makes a symlink unless Typeflag says otherwise.
type Entry struct {
	Name     string
	Body     string
	Linkname string
	Typeflag byte
}

// Files turns a path → content map into entries, sorted by path.
func Files(files map[string]string) []Entry {
	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)

	entries := make([]Entry, 0, len(names))
	for _, name := range names {
		entries = append(entries, Entry{Name: name, Body: files[name]})
	}
	return entries
}

// TarGz writes entries as a gzip-compressed tar archive and returns its path.
func TarGz(t *testing.T, entries []Entry) string {
	t.Helper()

	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	writeTar(t, zw, entries)
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	return writeTemp(t, "archive.tar.gz", buf.Bytes())
}

// TarZst writes entries as a zstd-compressed tar archive and returns its path.
func TarZst(t *testing.T, entries []Entry) string {
	t.Helper()

	var buf bytes.Buffer
	zw, err := zstd.NewWriter(&buf)
	if err != nil {
		t.Fatal(err)
	}
	writeTar(t, zw, entries)
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	return writeTemp(t, "archive.tar.zst", buf.Bytes())
}

// TarGzBytes returns the bytes of a gzip-compressed tar archive.
func TarGzBytes(t *testing.T, entries []Entry) []byte {
	t.Helper()

	data, err := os.ReadFile(TarGz(t, entries))
	if err != nil {
		t.Fatal(err)
	}
	return data
}

// WriteTree creates files under root from a path → content map.
func WriteTree(t *testing.T, root string, files map[string]string) {
	t.Helper()

	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}
}

// ReadFile returns the content of a file, failing the test on error.
func ReadFile(t *testing.T, path string) string {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	return string(data)
}

func writeTar(t *testing.T, w io.Writer, entries []Entry) {
	t.Helper()

	tw := tar.NewWriter(w)
	for _, e := range entries {
		hdr := &tar.Header{Name: e.Name, Mode: 0644, Size: int64(len(e.Body))}
		switch {
		case e.Typeflag != 0:
			hdr.Typeflag = e.Typeflag
			hdr.Linkname = e.Linkname
			hdr.Size = 0
			if e.Typeflag == tar.TypeXGlobalHeader {
				hdr.PAXRecords = map[string]string{"comment": "generated"}
			}
		case e.Linkname != "":
			hdr.Typeflag = tar.TypeSymlink
			hdr.Linkname = e.Linkname
			hdr.Size = 0
		case len(e.Name) > 0 && e.Name[len(e.Name)-1] == '/':
			hdr.Typeflag = tar.TypeDir
			hdr.Mode = 0755
			hdr.Size = 0
		default:
			hdr.Typeflag = tar.TypeReg
		}
		if err := tw.WriteHeader(hdr); err != nil {
			t.Fatal(err)
		}
		if hdr.Size > 0 {
			if _, err := tw.Write([]byte(e.Body)); err != nil {
				t.Fatal(err)
			}
		}
	}
	if err := tw.Close(); err != nil {
		t.Fatal(err)
	}
}

func writeTemp(t *testing.T, name string, data []byte) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}
	return path
}
