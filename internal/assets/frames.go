// Package assets loads the animation frame sets the tray icon cycles
// through. Frames are ICO blobs ready for the tray renderer; PNG sources
// are converted at load time.
package assets

import (
	"bytes"
	"errors"
	"fmt"
	"image/png"
	"os"
	"path/filepath"

	ico "github.com/Kodeworks/golang-image-ico"
)

// FrameCount is the fixed number of frames per theme. Both theme variants
// share the same index space, so a theme swap never needs index realignment.
const FrameCount = 5

// Theme selects which frame variant to load.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// ThemeForDarkMode maps the persisted dark_mode flag to a Theme.
func ThemeForDarkMode(dark bool) Theme {
	if dark {
		return ThemeDark
	}
	return ThemeLight
}

// FrameSet is an immutable, fully loaded sequence of frames. It is swapped
// whole on theme change, never mutated in place.
type FrameSet struct {
	theme  Theme
	frames [][]byte
}

// Theme returns the theme this set was loaded for.
func (fs *FrameSet) Theme() Theme {
	return fs.theme
}

// Len returns the number of frames.
func (fs *FrameSet) Len() int {
	return len(fs.frames)
}

// Frame returns the ICO bytes for the given index.
func (fs *FrameSet) Frame(i int) []byte {
	return fs.frames[i]
}

// LoadFrameSet reads all frames for a theme from dir. Frame files are named
// <theme>_cat_<i>.ico; a .png with the same stem is accepted and converted.
// Any missing or undecodable frame fails the whole load, so callers never
// see a partial set.
func LoadFrameSet(dir string, theme Theme) (*FrameSet, error) {
	frames := make([][]byte, 0, FrameCount)
	for i := 0; i < FrameCount; i++ {
		frame, err := loadFrame(dir, theme, i)
		if err != nil {
			return nil, fmt.Errorf("frame %d of theme %s: %w", i, theme, err)
		}
		frames = append(frames, frame)
	}
	return &FrameSet{theme: theme, frames: frames}, nil
}

func loadFrame(dir string, theme Theme, index int) ([]byte, error) {
	stem := fmt.Sprintf("%s_cat_%d", theme, index)

	icoPath := filepath.Join(dir, stem+".ico")
	raw, err := os.ReadFile(icoPath)
	if err == nil {
		if len(raw) == 0 {
			return nil, fmt.Errorf("%s is empty", icoPath)
		}
		return raw, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	// Fall back to PNG and convert to ICO bytes for the tray.
	pngPath := filepath.Join(dir, stem+".png")
	raw, err = os.ReadFile(pngPath)
	if err != nil {
		return nil, err
	}
	img, err := png.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", pngPath, err)
	}
	var buf bytes.Buffer
	if err := ico.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode %s as ico: %w", pngPath, err)
	}
	return buf.Bytes(), nil
}
