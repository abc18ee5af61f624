package image

import (
	"fmt"
	"image"
	"image/color"
	"path/filepath"

	"github.com/disintegration/imaging"
	"github.com/spf13/afero"
)

// WallpaperFile is the file name written by SaveWallpaper.
const WallpaperFile = "wallpaper.png"

// SaveWallpaper writes the flattened image to dir/wallpaper.png and returns
// the written path.
func SaveWallpaper(fs afero.Fs, img image.Image, dir string, bg color.Color) (string, error) {
	if err := fs.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create wallpaper directory: %w", err)
	}

	path := filepath.Join(dir, WallpaperFile)
	f, err := fs.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create wallpaper file: %w", err)
	}
	defer f.Close()

	if err := imaging.Encode(f, Flatten(img, bg), imaging.PNG); err != nil {
		return "", fmt.Errorf("failed to encode wallpaper: %w", err)
	}
	return path, nil
}
