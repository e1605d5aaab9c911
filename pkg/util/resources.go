// pkg/util/resources.go
// Copyright(c) 2026 osd contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package util

import (
	"bytes"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zstd"
)

var resourcesFS fs.StatFS

// Unfortunately, unlike io.ReadCloser, the zstd Decoder's Close() method
// doesn't return an error, so we need to make our own custom ReadCloser
// interface.
type ResourceReadCloser interface {
	io.Reader
	Close()
}

type bytesReadCloser struct {
	*bytes.Reader
}

func (bytesReadCloser) Close() {}

// LoadResource provides a ResourceReadCloser to access the specified file
// from the resources directory; if it's zstd compressed, the Reader will
// handle decompression transparently. A missing file here may just be a
// skin or icon the configuration doesn't reference, so errors are returned
// for the caller to decide how much they matter.
func LoadResource(path string) (ResourceReadCloser, error) {
	fsys, err := getResourcesFS()
	if err != nil {
		return nil, err
	}

	f, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, err
	}
	br := bytesReadCloser{bytes.NewReader(f)}

	if filepath.Ext(path) == ".zst" {
		zr, err := zstd.NewReader(br, zstd.WithDecoderConcurrency(0))
		if err != nil {
			return nil, err
		}
		return zr, nil
	}

	return br, nil
}

// SetResourcesDir points resource loading at the given directory rather
// than the automatically located one.
func SetResourcesDir(dir string) error {
	fsys, ok := os.DirFS(dir).(fs.StatFS)
	if !ok {
		panic("FS from DirFS is not a StatFS?")
	}
	if _, err := fsys.Stat("."); err != nil {
		return err
	}
	resourcesFS = fsys
	return nil
}

func getResourcesFS() (fs.StatFS, error) {
	if resourcesFS != nil {
		return resourcesFS, nil
	}

	// Look next to the executable first and then fall back to the CWD and
	// the two directories above it, which helps during development.
	var candidates []string
	if path, err := os.Executable(); err == nil {
		candidates = append(candidates, filepath.Join(filepath.Dir(path), "resources"))
	}
	if wd, err := os.Getwd(); err == nil {
		dir := wd
		for i := 0; i < 3; i++ {
			candidates = append(candidates, filepath.Join(dir, "resources"))
			dir = filepath.Join(dir, "..")
		}
	}

	for _, dir := range candidates {
		fsys, ok := os.DirFS(dir).(fs.StatFS)
		if !ok {
			panic("FS from DirFS is not a StatFS?")
		}
		if _, err := fsys.Stat("navball_skins"); err == nil {
			resourcesFS = fsys
			return resourcesFS, nil
		}
	}

	return nil, fmt.Errorf("unable to find resources directory")
}
