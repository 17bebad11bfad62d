package files_manager

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"
)

var imageExts = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".bmp":  true,
	".tif":  true,
	".tiff": true,
	".webp": true,
}

// IsImagePath reports whether path has an extension the decoders accept.
func IsImagePath(path string) bool {
	return imageExts[strings.ToLower(filepath.Ext(path))]
}

// CheckInput verifies that path exists. The returned error wraps
// os.ErrNotExist when it does not.
func CheckInput(path string) (isDir bool, err error) {
	if path == "" {
		return false, errors.New("input path is empty")
	}
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, fmt.Errorf("file not found: %s: %w", path, os.ErrNotExist)
		}
		return false, err
	}
	return info.IsDir(), nil
}

// CheckProvidedDirs rejects an output directory that is the input directory
// or sits inside it, and an input directory that sits inside the output.
func CheckProvidedDirs(inputDir, outputDir string) error {
	in, err := filepath.Abs(inputDir)
	if err != nil {
		return err
	}
	out, err := filepath.Abs(outputDir)
	if err != nil {
		return err
	}
	if SamePath(in, out) || within(in, out) || within(out, in) {
		return fmt.Errorf("output directory %s must not be the input directory %s or nested with it", outputDir, inputDir)
	}
	return nil
}

// within reports whether child is parent or lies below it. Both paths must
// be absolute and clean.
func within(parent, child string) bool {
	rel, err := filepath.Rel(parent, child)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// SamePath reports whether a and b name the same file. Existing files are
// compared with os.SameFile so links and case-insensitive filesystems are
// caught too.
func SamePath(a, b string) bool {
	ai, errA := os.Stat(a)
	bi, errB := os.Stat(b)
	if errA == nil && errB == nil {
		return os.SameFile(ai, bi)
	}
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	return errA == nil && errB == nil && absA == absB
}

// GetImagePaths lists the images directly inside dir, sorted by name.
// Sub-directories and AppleDouble "._" files are skipped.
func GetImagePaths(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	paths := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || strings.HasPrefix(entry.Name(), "._") {
			continue
		}
		if IsImagePath(entry.Name()) {
			paths = append(paths, filepath.Join(dir, entry.Name()))
		}
	}
	sort.Strings(paths)
	return paths, nil
}

// OutputPath maps inPath into outDir. An empty ext keeps the input extension.
func OutputPath(outDir, inPath, ext string) string {
	base := filepath.Base(inPath)
	if ext == "" {
		return filepath.Join(outDir, base)
	}
	name := strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(outDir, name+"."+strings.TrimPrefix(ext, "."))
}

// WriteAtomic streams write into a temporary file next to path and renames
// it into place once write and the sync succeed. On any failure the
// temporary file is removed and path is left untouched.
func WriteAtomic(path string, write func(w io.Writer) error) (err error) {
	dir, base := filepath.Split(path)
	if dir == "" {
		dir = "."
	}
	tmpPath := filepath.Join(dir, "."+base+"."+uuid.NewString()+".tmp")

	f, err := os.OpenFile(tmpPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer func() {
		if err != nil {
			f.Close()
			os.Remove(tmpPath)
		}
	}()

	if err = write(f); err != nil {
		return err
	}
	if err = f.Sync(); err != nil {
		return fmt.Errorf("failed to sync %s: %w", tmpPath, err)
	}
	if err = f.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", tmpPath, err)
	}
	if err = os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to rename file: %w", err)
	}
	return nil
}

// WriteFileAtomic is WriteAtomic for an in-memory payload.
func WriteFileAtomic(path string, data []byte) error {
	return WriteAtomic(path, func(w io.Writer) error {
		_, err := w.Write(data)
		return err
	})
}
