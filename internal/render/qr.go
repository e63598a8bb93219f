package render

import (
	"image"

	"github.com/skip2/go-qrcode"
)

const defaultQRSizePx = 256

// QRCode returns a QR code image for the given payload.
// If payload is empty, it returns (nil, nil).
func QRCode(payload string, sizePx int) (image.Image, error) {
	if payload == "" {
		return nil, nil
	}
	if sizePx <= 0 {
		sizePx = defaultQRSizePx
	}

	code, err := qrcode.New(payload, qrcode.Medium)
	if err != nil {
		return nil, err
	}

	return code.Image(sizePx), nil
}
