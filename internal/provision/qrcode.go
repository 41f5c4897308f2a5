package provision

import (
	"fmt"
	"path/filepath"
	"strings"

	qrcode "github.com/skip2/go-qrcode"
)

// DefaultQRSize is the PNG edge length in pixels.
const DefaultQRSize = 512

// QRWriter renders content as a QR code image at path.
type QRWriter interface {
	Write(content, path string) error
}

// PNGWriter writes QR codes as PNG files.
type PNGWriter struct {
	Size int
}

// Write encodes content with medium error correction.
func (w PNGWriter) Write(content, path string) error {
	size := w.Size
	if size <= 0 {
		size = DefaultQRSize
	}
	if err := qrcode.WriteFile(content, qrcode.Medium, size, path); err != nil {
		return fmt.Errorf("write qr code %s: %w", path, err)
	}
	return nil
}

// QRFileName returns the PNG file name for a household.
func QRFileName(h Household) string {
	name := strings.Join(h.Names(), "_")
	name = strings.NewReplacer("/", "-", "\\", "-", " ", "-").Replace(name)
	return filepath.Base(name) + ".png"
}
