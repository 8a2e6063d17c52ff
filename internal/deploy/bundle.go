package deploy

import (
	"archive/tar"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/rs/zerolog/log"
)

// skipDirs are never bundled.
var skipDirs = map[string]bool{
	".git":      true,
	"_examples": true,
	"testdata":  true,
}

func skipFile(name string) bool {
	return name == ".env" || strings.HasSuffix(name, "_test.go")
}

// Bundle writes a gzip tarball of paths (files or directories, relative to
// root) to w. Entries are sorted by path; missing paths are skipped.
func Bundle(w io.Writer, root string, paths []string) error {
	files, err := collect(root, paths)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("bundle: nothing to package under %s", root)
	}

	gz := gzip.NewWriter(w)
	tw := tar.NewWriter(gz)
	for _, rel := range files {
		if err := addFile(tw, root, rel); err != nil {
			return err
		}
	}
	if err := tw.Close(); err != nil {
		return fmt.Errorf("bundle: close tar: %w", err)
	}
	if err := gz.Close(); err != nil {
		return fmt.Errorf("bundle: close gzip: %w", err)
	}
	return nil
}

func collect(root string, paths []string) ([]string, error) {
	seen := make(map[string]bool)
	var files []string

	for _, p := range paths {
		start := filepath.Join(root, filepath.Clean(p))
		info, err := os.Stat(start)
		if err != nil {
			if os.IsNotExist(err) {
				log.Warn().Str("path", p).Msg("bundle: skipping missing path")
				continue
			}
			return nil, fmt.Errorf("bundle: %w", err)
		}
		if !info.IsDir() {
			rel, err := filepath.Rel(root, start)
			if err != nil {
				return nil, err
			}
			if !seen[rel] && !skipFile(info.Name()) {
				seen[rel] = true
				files = append(files, rel)
			}
			continue
		}

		err = filepath.WalkDir(start, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if skipDirs[d.Name()] {
					return filepath.SkipDir
				}
				return nil
			}
			if !d.Type().IsRegular() || skipFile(d.Name()) {
				return nil
			}
			rel, err := filepath.Rel(root, path)
			if err != nil {
				return err
			}
			if !seen[rel] {
				seen[rel] = true
				files = append(files, rel)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("bundle: walk %s: %w", p, err)
		}
	}

	sort.Strings(files)
	return files, nil
}

func addFile(tw *tar.Writer, root, rel string) error {
	path := filepath.Join(root, rel)
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("bundle: %w", err)
	}

	hdr, err := tar.FileInfoHeader(info, "")
	if err != nil {
		return fmt.Errorf("bundle: header %s: %w", rel, err)
	}
	hdr.Name = filepath.ToSlash(rel)
	hdr.ModTime = hdr.ModTime.UTC()
	if err := tw.WriteHeader(hdr); err != nil {
		return fmt.Errorf("bundle: write header %s: %w", rel, err)
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("bundle: %w", err)
	}
	defer f.Close()
	if _, err := io.Copy(tw, f); err != nil {
		return fmt.Errorf("bundle: copy %s: %w", rel, err)
	}
	return nil
}
