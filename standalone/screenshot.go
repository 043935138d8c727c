//go:build !libretro

package standalone

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"time"

	"github.com/user-none/efuse/standalone/storage"
)

// ScreenshotManager saves the native emulator picture as PNG files.
type ScreenshotManager struct {
	notification *Notification
	dir          func() (string, error)
	now          func() time.Time
}

// NewScreenshotManager creates a new screenshot manager
func NewScreenshotManager(notification *Notification) *ScreenshotManager {
	return &ScreenshotManager{
		notification: notification,
		dir:          storage.GetScreenshotDir,
		now:          time.Now,
	}
}

// TakeScreenshot saves an RGBA frame and returns the file written.
func (m *ScreenshotManager) TakeScreenshot(pixels []byte, width, height int) (string, error) {
	if width == 0 || height == 0 || len(pixels) < width*height*4 {
		return "", fmt.Errorf("no frame to capture")
	}

	screenshotDir, err := m.dir()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(screenshotDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create screenshot directory: %w", err)
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	copy(img.Pix, pixels[:width*height*4])

	// Unix timestamp, with milliseconds so rapid captures don't collide
	fullPath := filepath.Join(screenshotDir, fmt.Sprintf("%d.png", m.now().UnixMilli()))

	f, err := os.Create(fullPath)
	if err != nil {
		return "", fmt.Errorf("failed to create screenshot file: %w", err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		return "", fmt.Errorf("failed to encode screenshot: %w", err)
	}

	if m.notification != nil {
		m.notification.ShowShort("Screenshot saved")
	}
	return fullPath, nil
}
