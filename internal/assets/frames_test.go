package assets

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

// writePNGFrames writes FrameCount synthetic PNG frames for a theme.
func writePNGFrames(t *testing.T, dir string, theme Theme) {
	t.Helper()
	for i := 0; i < FrameCount; i++ {
		img := image.NewRGBA(image.Rect(0, 0, 16, 16))
		for y := 0; y < 16; y++ {
			for x := 0; x < 16; x++ {
				img.Set(x, y, color.RGBA{R: uint8(i * 40), G: uint8(x * 10), B: uint8(y * 10), A: 255})
			}
		}
		var buf bytes.Buffer
		if err := png.Encode(&buf, img); err != nil {
			t.Fatalf("encode frame %d: %v", i, err)
		}
		name := filepath.Join(dir, fmt.Sprintf("%s_cat_%d.png", theme, i))
		if err := os.WriteFile(name, buf.Bytes(), 0o644); err != nil {
			t.Fatalf("write frame %d: %v", i, err)
		}
	}
}

func TestLoadFrameSetFromPNG(t *testing.T) {
	dir := t.TempDir()
	writePNGFrames(t, dir, ThemeLight)

	fs, err := LoadFrameSet(dir, ThemeLight)
	if err != nil {
		t.Fatalf("LoadFrameSet: %v", err)
	}
	if fs.Len() != FrameCount {
		t.Fatalf("len = %d, want %d", fs.Len(), FrameCount)
	}
	if fs.Theme() != ThemeLight {
		t.Fatalf("theme = %v", fs.Theme())
	}
	for i := 0; i < fs.Len(); i++ {
		if len(fs.Frame(i)) == 0 {
			t.Fatalf("frame %d is empty", i)
		}
	}
}

func TestLoadFrameSetPrefersICO(t *testing.T) {
	dir := t.TempDir()
	writePNGFrames(t, dir, ThemeDark)

	// An .ico beside the PNG must win and be returned verbatim.
	raw := []byte{0, 0, 1, 0, 1, 0, 0xde, 0xad}
	if err := os.WriteFile(filepath.Join(dir, "dark_cat_0.ico"), raw, 0o644); err != nil {
		t.Fatal(err)
	}

	fs, err := LoadFrameSet(dir, ThemeDark)
	if err != nil {
		t.Fatalf("LoadFrameSet: %v", err)
	}
	if !bytes.Equal(fs.Frame(0), raw) {
		t.Fatal("ico frame not returned verbatim")
	}
}

func TestLoadFrameSetMissingFrameFails(t *testing.T) {
	dir := t.TempDir()
	writePNGFrames(t, dir, ThemeLight)
	if err := os.Remove(filepath.Join(dir, "light_cat_3.png")); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadFrameSet(dir, ThemeLight); err == nil {
		t.Fatal("expected error on missing frame")
	}
}

func TestThemeToggleIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	writePNGFrames(t, dir, ThemeLight)
	writePNGFrames(t, dir, ThemeDark)

	first, err := LoadFrameSet(dir, ThemeLight)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFrameSet(dir, ThemeDark); err != nil {
		t.Fatal(err)
	}
	again, err := LoadFrameSet(dir, ThemeLight)
	if err != nil {
		t.Fatal(err)
	}

	for i := 0; i < FrameCount; i++ {
		if !bytes.Equal(first.Frame(i), again.Frame(i)) {
			t.Fatalf("frame %d differs after toggling themes twice", i)
		}
	}
}

func TestThemeForDarkMode(t *testing.T) {
	if ThemeForDarkMode(true) != ThemeDark || ThemeForDarkMode(false) != ThemeLight {
		t.Fatal("theme mapping wrong")
	}
}
