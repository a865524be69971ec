package graphics

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"time"

	"github.com/golang/glog"
	"golang.org/x/image/draw"

	"cyclenes/internal/ppu"
)

// FrameImage converts an ARGB framebuffer to an RGBA image
func FrameImage(frame *ppu.Frame) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, ppu.ScreenWidth, ppu.ScreenHeight))
	for i, argb := range frame {
		img.Pix[i*4] = uint8(argb >> 16)
		img.Pix[i*4+1] = uint8(argb >> 8)
		img.Pix[i*4+2] = uint8(argb)
		img.Pix[i*4+3] = 0xFF
	}
	return img
}

// ScaleImage enlarges src by an integer factor without smoothing
func ScaleImage(src image.Image, scale int) image.Image {
	if scale <= 1 {
		return src
	}
	b := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx()*scale, b.Dy()*scale))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, b, draw.Src, nil)
	return dst
}

// SaveScreenshot writes frame as a PNG, scaled by an integer factor
func SaveScreenshot(frame *ppu.Frame, path string, scale int) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("screenshot: %w", err)
	}

	err = png.Encode(f, ScaleImage(FrameImage(frame), scale))
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("screenshot: %w", err)
	}

	glog.Infof("[SCREENSHOT] saved %s", path)
	return nil
}

// ScreenshotPath returns a timestamped file name in dir named after the ROM
func ScreenshotPath(dir, romName string, now time.Time) string {
	base := "cyclenes"
	if romName != "" {
		base = filepath.Base(romName)
		base = base[:len(base)-len(filepath.Ext(base))]
	}
	return filepath.Join(dir, fmt.Sprintf("%s_%s.png", base, now.Format("20060102_150405.000")))
}
