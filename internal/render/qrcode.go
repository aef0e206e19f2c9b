package render

import (
	"image"

	"github.com/rook-computer/codeshot/internal/theme"
	"github.com/skip2/go-qrcode"
	xdraw "golang.org/x/image/draw"
)

const defaultQRCodeSizePx = 256

// GenerateQRCodeImage returns a borderless QR code for payload in fg on bg.
// If payload is empty, it returns (nil, nil).
func GenerateQRCodeImage(payload string, sizePx int, fg, bg theme.Color) (image.Image, error) {
	if payload == "" {
		return nil, nil
	}
	if sizePx <= 0 {
		sizePx = defaultQRCodeSizePx
	}

	qrCode, err := qrcode.New(payload, qrcode.Medium)
	if err != nil {
		return nil, err
	}
	qrCode.DisableBorder = true
	qrCode.ForegroundColor = fg.Pixel()
	qrCode.BackgroundColor = bg.Pixel()

	return qrCode.Image(sizePx), nil
}

// DrawImageInRect scales img into rect with nearest-neighbor sampling, which
// keeps QR modules crisp.
func DrawImageInRect(s *Surface, rect image.Rectangle, img image.Image) {
	if img == nil || rect.Empty() {
		return
	}
	xdraw.NearestNeighbor.Scale(s.img, rect.Intersect(s.Bounds()), img, img.Bounds(), xdraw.Src, nil)
}
