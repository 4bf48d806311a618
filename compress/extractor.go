// Package compress provides a docsync.ArchiveExtractor for tar archives
// compressed with gzip or zstd, using github.com/klauspost/compress.
package compress

import (
	"archive/tar"
	"bufio"
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fwojciec/docsync"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

var (
	gzipMagic = []byte{0x1f, 0x8b}
	zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}
)

// Ensure Extractor implements docsync.ArchiveExtractor at compile time.
var _ docsync.ArchiveExtractor = (*Extractor)(nil)

// Extractor unpacks .tar.gz and .tar.zst archives.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract unpacks archivePath into destDir, which is created if needed.
func (e *Extractor) Extract(ctx context.Context, archivePath, destDir string) error {
	f, err := os.Open(archivePath)
	if err != nil {
		return docsync.WrapError(docsync.EEXTRACT, err, "failed to open archive %s", archivePath)
	}
	defer f.Close()

	r, closeFn, err := decompress(bufio.NewReader(f))
	if err != nil {
		return err
	}
	defer closeFn()

	dest, err := filepath.Abs(destDir)
	if err != nil {
		return docsync.WrapError(docsync.EEXTRACT, err, "invalid destination %s", destDir)
	}
	if err := os.MkdirAll(dest, 0755); err != nil {
		return docsync.WrapError(docsync.EEXTRACT, err, "filesystem error during extraction")
	}

	tr := tar.NewReader(r)
	for {
		if err := ctx.Err(); err != nil {
			return docsync.WrapError(docsync.EEXTRACT, err, "extraction interrupted")
		}

		hdr, err := tr.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return docsync.WrapError(docsync.EEXTRACT, err, "failed to extract archive")
		}

		if err := writeEntry(dest, hdr, tr); err != nil {
			return err
		}
	}
}

// decompress sniffs the compression format from the leading magic bytes.
func decompress(br *bufio.Reader) (io.Reader, func(), error) {
	head, err := br.Peek(len(zstdMagic))
	if err != nil && len(head) < len(gzipMagic) {
		return nil, nil, docsync.WrapError(docsync.EEXTRACT, err, "failed to extract archive: archive too short")
	}

	switch {
	case bytes.HasPrefix(head, gzipMagic):
		zr, err := gzip.NewReader(br)
		if err != nil {
			return nil, nil, docsync.WrapError(docsync.EEXTRACT, err, "failed to extract archive")
		}
		return zr, func() { _ = zr.Close() }, nil
	case bytes.HasPrefix(head, zstdMagic):
		zr, err := zstd.NewReader(br)
		if err != nil {
			return nil, nil, docsync.WrapError(docsync.EEXTRACT, err, "failed to extract archive")
		}
		return zr, zr.Close, nil
	default:
		return nil, nil, docsync.Errorf(docsync.EEXTRACT, "failed to extract archive: unsupported compression format")
	}
}

func writeEntry(dest string, hdr *tar.Header, r io.Reader) error {
	switch hdr.Typeflag {
	case tar.TypeXGlobalHeader, tar.TypeXHeader:
		return nil
	}

	target, err := entryPath(dest, hdr.Name)
	if err != nil {
		return err
	}
	if target == dest {
		return nil
	}
	if err := checkParents(dest, target); err != nil {
		return err
	}

	switch hdr.Typeflag {
	case tar.TypeDir:
		if err := os.MkdirAll(target, 0755); err != nil {
			return docsync.WrapError(docsync.EEXTRACT, err, "filesystem error during extraction")
		}
	case tar.TypeReg:
		if err := writeFile(target, hdr.FileInfo().Mode(), r); err != nil {
			return docsync.WrapError(docsync.EEXTRACT, err, "filesystem error during extraction")
		}
	case tar.TypeSymlink:
		if filepath.IsAbs(hdr.Linkname) {
			return docsync.Errorf(docsync.EEXTRACT, "failed to extract archive: symlink %q points outside the destination", hdr.Name)
		}
		if err := mkParent(target); err != nil {
			return err
		}
		ok, err := linkStaysInside(dest, filepath.Dir(target), hdr.Linkname)
		if err != nil {
			return err
		}
		if !ok {
			return docsync.Errorf(docsync.EEXTRACT, "failed to extract archive: symlink %q points outside the destination", hdr.Name)
		}
		if err := os.Symlink(hdr.Linkname, target); err != nil {
			return docsync.WrapError(docsync.EEXTRACT, err, "filesystem error during extraction")
		}
	case tar.TypeLink:
		source, err := entryPath(dest, hdr.Linkname)
		if err != nil {
			return err
		}
		if err := checkParents(dest, source); err != nil {
			return err
		}
		fi, err := os.Lstat(source)
		if err != nil {
			return docsync.WrapError(docsync.EEXTRACT, err, "failed to extract archive: hard link %q has no source", hdr.Name)
		}
		if !fi.Mode().IsRegular() {
			return docsync.Errorf(docsync.EEXTRACT, "failed to extract archive: hard link %q must point at a regular file", hdr.Name)
		}
		if err := mkParent(target); err != nil {
			return err
		}
		if err := os.Link(source, target); err != nil {
			return docsync.WrapError(docsync.EEXTRACT, err, "filesystem error during extraction")
		}
	default:
		return docsync.Errorf(docsync.EEXTRACT, "failed to extract archive: unsupported entry type %q for %q", hdr.Typeflag, hdr.Name)
	}
	return nil
}

// entryPath maps an archive entry name to a path inside dest, rejecting
// absolute names and names that escape dest.
func entryPath(dest, name string) (string, error) {
	clean := filepath.Clean(filepath.FromSlash(name))
	if filepath.IsAbs(clean) || strings.HasPrefix(name, "/") {
		return "", docsync.Errorf(docsync.EEXTRACT, "failed to extract archive: absolute path %q", name)
	}
	target := filepath.Join(dest, clean)
	if !inside(dest, target) {
		return "", docsync.Errorf(docsync.EEXTRACT, "failed to extract archive: path traversal in %q", name)
	}
	return target, nil
}

// checkParents rejects entries whose existing parent directories resolve
// outside dest, which would let a symlink earlier in the archive redirect
// later writes.
func checkParents(dest, target string) error {
	parent := filepath.Dir(target)
	for parent != dest && inside(dest, parent) {
		if _, err := os.Lstat(parent); err == nil {
			resolved, err := filepath.EvalSymlinks(parent)
			if err != nil {
				return docsync.WrapError(docsync.EEXTRACT, err, "filesystem error during extraction")
			}
			realDest, err := filepath.EvalSymlinks(dest)
			if err != nil {
				return docsync.WrapError(docsync.EEXTRACT, err, "filesystem error during extraction")
			}
			if !inside(realDest, resolved) {
				return docsync.Errorf(docsync.EEXTRACT, "failed to extract archive: %q escapes the destination through a symlink", target)
			}
			return nil
		}
		parent = filepath.Dir(parent)
	}
	return nil
}

// linkStaysInside reports whether linkname, created in dir, resolves inside
// dest. Components are walked the way the kernel walks them: symlinks
// already on disk are followed before ".." is applied.
func linkStaysInside(dest, dir, linkname string) (bool, error) {
	realDest, err := filepath.EvalSymlinks(dest)
	if err != nil {
		return false, docsync.WrapError(docsync.EEXTRACT, err, "filesystem error during extraction")
	}
	cur, err := filepath.EvalSymlinks(dir)
	if err != nil {
		return false, docsync.WrapError(docsync.EEXTRACT, err, "filesystem error during extraction")
	}

	for _, part := range strings.Split(filepath.ToSlash(linkname), "/") {
		switch part {
		case "", ".":
			continue
		case "..":
			cur = filepath.Dir(cur)
		default:
			cur = filepath.Join(cur, part)
			fi, err := os.Lstat(cur)
			if err != nil || fi.Mode()&os.ModeSymlink == 0 {
				continue
			}
			resolved, err := filepath.EvalSymlinks(cur)
			if err != nil {
				return false, nil
			}
			cur = resolved
		}
		if !inside(realDest, cur) {
			return false, nil
		}
	}
	return inside(realDest, cur), nil
}

// writeFile creates target as a regular file. An existing symlink at
// target is replaced, never written through.
func writeFile(target string, mode os.FileMode, r io.Reader) error {
	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return err
	}
	if fi, err := os.Lstat(target); err == nil && fi.Mode()&os.ModeSymlink != 0 {
		if err := os.Remove(target); err != nil {
			return err
		}
	}
	perm := os.FileMode(0644)
	if mode&0111 != 0 {
		perm = 0755
	}
	f, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, perm)
	if err != nil {
		return err
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func mkParent(target string) error {
	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return docsync.WrapError(docsync.EEXTRACT, err, "filesystem error during extraction")
	}
	return nil
}

func inside(base, path string) bool {
	rel, err := filepath.Rel(base, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
