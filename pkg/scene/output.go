package scene

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
)

// Save writes f to path, encoded by the file extension: .tga (optionally
// run-length encoded), .png or .bmp.
func Save(f Frame, path string, rle bool) error {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".png" {
		return f.SavePNG(path)
	}
	if ext != ".tga" && ext != ".bmp" {
		return fmt.Errorf("%w: output %q", ErrUnsupportedFormat, path)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	defer file.Close()

	w := bufio.NewWriter(file)
	if ext == ".tga" {
		err = f.WriteTGA(w, rle)
	} else {
		err = bmp.Encode(w, f.ToImage())
	}
	if err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return file.Close()
}
