// Package image loads wallpapers and reduces them to colour samples.
package image

import (
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format
	_ "image/jpeg" // Register JPEG format
	_ "image/png"  // Register PNG format
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/afero"
	_ "golang.org/x/image/bmp"  // Register BMP format
	_ "golang.org/x/image/tiff" // Register TIFF format
	_ "golang.org/x/image/webp" // Register WebP format
)

// ImageDecodeError is returned when an image cannot be opened or decoded.
type ImageDecodeError struct {
	Path string
	Err  error
}

func (e *ImageDecodeError) Error() string {
	return fmt.Sprintf("failed to decode image %s: %v", e.Path, e.Err)
}

func (e *ImageDecodeError) Unwrap() error {
	return e.Err
}

// Loader handles loading images from various sources.
type Loader interface {
	// Load loads an image from the given path.
	Load(path string) (image.Image, error)
}

// FileLoader loads images from a filesystem.
type FileLoader struct {
	fs afero.Fs
}

// NewFileLoader creates a FileLoader reading from fs. A nil fs means the
// operating system filesystem.
func NewFileLoader(fs afero.Fs) *FileLoader {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &FileLoader{fs: fs}
}

// Load loads an image from a file path.
// Supported formats: JPEG, PNG, GIF, WebP, BMP, TIFF.
func (l *FileLoader) Load(path string) (image.Image, error) {
	if path == "" {
		return nil, &ImageDecodeError{Path: path, Err: fmt.Errorf("image path cannot be empty")}
	}

	file, err := l.fs.Open(path)
	if err != nil {
		return nil, &ImageDecodeError{Path: path, Err: err}
	}
	defer file.Close()

	img, format, err := image.Decode(file)
	if err != nil {
		return nil, &ImageDecodeError{Path: path, Err: fmt.Errorf("format %q: %w", format, err)}
	}
	if img.Bounds().Empty() {
		return nil, &ImageDecodeError{Path: path, Err: fmt.Errorf("image has no pixels")}
	}

	return img, nil
}

// ValidateImagePath checks that path names a readable local file in a
// supported format. Directories and URLs are rejected.
func ValidateImagePath(fs afero.Fs, path string) error {
	if path == "" {
		return fmt.Errorf("image path cannot be empty")
	}
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return fmt.Errorf("remote images are not supported, download it first: %s", path)
	}
	if fs == nil {
		fs = afero.NewOsFs()
	}

	info, err := fs.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("image file not found: %s", path)
		}
		return fmt.Errorf("failed to access image path: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("path is a directory, not a file: %s", path)
	}

	file, err := fs.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open image file: %w", err)
	}
	defer file.Close()

	if _, _, err := image.DecodeConfig(file); err != nil {
		return fmt.Errorf("unsupported or invalid image format: %w", err)
	}
	return nil
}

// SupportedImageExtensions returns a list of supported image file extensions.
func SupportedImageExtensions() []string {
	return []string{".jpg", ".jpeg", ".png", ".gif", ".webp", ".bmp", ".tif", ".tiff"}
}

// IsImageFile checks if a file has a supported image extension.
func IsImageFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return slices.Contains(SupportedImageExtensions(), ext)
}
