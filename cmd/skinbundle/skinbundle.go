// skinbundle.go
// Copyright(c) 2026 osd contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// skinbundle walks a directory of navball skin textures and packs them
// into a single compressed bundle: each PNG is hashed, pre-scaled to the
// requested sphere sizes, and written out as msgpack+zstd. A JSON
// manifest recording the source files and their hashes is written
// alongside so a deployment can verify that its bundle matches the
// skins it was built from.

package main

import (
	"bytes"
	"cmp"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"flag"
	"fmt"
	"image"
	"image/png"
	"log"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/klauspost/compress/zstd"
	"github.com/nfnt/resize"
	"github.com/vmihailenco/msgpack/v5"
	"golang.org/x/sync/errgroup"
)

var (
	skinDir      = flag.String("dir", "resources/navball_skins", "directory of skin PNGs to bundle")
	outFile      = flag.String("o", "navball_skins.bundle.zst", "bundle file to write")
	manifestFile = flag.String("manifest", "manifest.json", "JSON manifest file to write")
	sizeList     = flag.String("sizes", "150,300", "comma-separated sphere diameters to pre-scale to")
)

const bundleVersion = 1

// BundleSkin is one pre-scaled texture in the bundle.
type BundleSkin struct {
	File   string // source filename, relative to the skin directory
	SHA256 string // hash of the source file
	Width  int
	Height int
	PNG    []byte
}

// Bundle is the toplevel msgpack record in the bundle file.
type Bundle struct {
	Version int
	Created time.Time
	Skins   []BundleSkin
}

func isTemporaryFile(name string) bool {
	base := filepath.Base(name)
	return strings.HasPrefix(base, ".") ||
		(strings.HasPrefix(base, "#") && strings.HasSuffix(base, "#")) ||
		strings.HasSuffix(base, "~")
}

func parseSizes(s string) ([]int, error) {
	var sizes []int
	for _, f := range strings.Split(s, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(f))
		if err != nil {
			return nil, fmt.Errorf("%q: %v", f, err)
		}
		if n <= 0 {
			return nil, fmt.Errorf("%d: size must be positive", n)
		}
		sizes = append(sizes, n)
	}
	return sizes, nil
}

// prescale returns the equirectangular source brought to 2*size x size,
// freshly encoded as a PNG.
func prescale(img image.Image, size int) ([]byte, error) {
	scaled := resize.Resize(uint(2*size), uint(size), img, resize.MitchellNetravali)
	var buf bytes.Buffer
	if err := png.Encode(&buf, scaled); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func bundleFile(path string, sizes []int) ([]BundleSkin, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	hash := sha256.Sum256(b)
	hexHash := hex.EncodeToString(hash[:])

	img, err := png.Decode(bytes.NewReader(b))
	if err != nil {
		return nil, err
	}

	var skins []BundleSkin
	for _, size := range sizes {
		enc, err := prescale(img, size)
		if err != nil {
			return nil, err
		}
		skins = append(skins, BundleSkin{
			File:   filepath.Base(path),
			SHA256: hexHash,
			Width:  2 * size,
			Height: size,
			PNG:    enc,
		})
	}
	return skins, nil
}

func main() {
	flag.Parse()

	sizes, err := parseSizes(*sizeList)
	if err != nil {
		log.Fatalf("-sizes: %v", err)
	}

	// Walk the skin directory and send the paths of all non-temporary
	// PNGs to filesChan.
	var eg errgroup.Group
	filesChan := make(chan string, 1)
	eg.Go(func() error {
		defer close(filesChan)

		return filepath.Walk(*skinDir, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}

			if info.IsDir() || isTemporaryFile(path) || !strings.EqualFold(filepath.Ext(path), ".png") {
				return nil
			}

			filesChan <- path

			return nil
		})
	})

	type result struct {
		path  string
		hash  string
		skins []BundleSkin
	}
	resultsChan := make(chan result)

	// Launch hashing/scaling workers.
	const numWorkers = 16
	for i := 0; i < numWorkers; i++ {
		eg.Go(func() error {
			for path := range filesChan {
				skins, err := bundleFile(path, sizes)
				if err != nil {
					return fmt.Errorf("%s: %v", path, err)
				}

				fmt.Printf("Bundled %s at %d sizes\n", path, len(sizes))

				resultsChan <- result{path: path, hash: skins[0].SHA256, skins: skins}
			}
			return nil
		})
	}

	// Close the results channel once all workers have finished.
	go func() {
		if err := eg.Wait(); err != nil {
			log.Fatalf("%v", err)
		}
		close(resultsChan)
	}()

	// Harvest results as they come in and build the bundle and manifest.
	bundle := Bundle{Version: bundleVersion, Created: time.Now().UTC()}
	manifest := make(map[string]string)
	for r := range resultsChan {
		relPath, err := filepath.Rel(*skinDir, r.path)
		if err != nil {
			log.Fatalf("%s: %v", r.path, err)
		}

		manifest[relPath] = r.hash
		bundle.Skins = append(bundle.Skins, r.skins...)
	}

	// Arrival order depends on worker scheduling; sort so that repeated
	// runs over the same sources produce identical bundles.
	slices.SortFunc(bundle.Skins, func(a, b BundleSkin) int {
		if c := cmp.Compare(a.File, b.File); c != 0 {
			return c
		}
		return cmp.Compare(a.Height, b.Height)
	})

	f, err := os.Create(*outFile)
	if err != nil {
		log.Fatalf("%s: %v", *outFile, err)
	}
	zw, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedBestCompression))
	if err != nil {
		log.Fatalf("%s: %v", *outFile, err)
	}
	if err := msgpack.NewEncoder(zw).Encode(bundle); err != nil {
		log.Fatalf("%s: %v", *outFile, err)
	}
	if err := zw.Close(); err != nil {
		log.Fatalf("%s: %v", *outFile, err)
	}
	if err := f.Close(); err != nil {
		log.Fatalf("%s: %v", *outFile, err)
	}

	// Generate and write the manifest.
	manifestData, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		log.Fatalf("Failed to marshal manifest: %v", err)
	}
	if err := os.WriteFile(*manifestFile, manifestData, 0644); err != nil {
		log.Fatalf("%s: failed to write manifest: %v", *manifestFile, err)
	}

	fmt.Printf("Wrote %q with %d textures from %d skins\n",
		*outFile, len(bundle.Skins), len(manifest))
}
