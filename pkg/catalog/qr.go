package catalog

import (
	"net/url"
	"strings"

	qrcode "github.com/skip2/go-qrcode"
)

const qrSize = 256

// TraceURL is the public trace page for a batch code.
func TraceURL(appURL, batchCode string) string {
	return strings.TrimRight(appURL, "/") + "/trace/" + url.PathEscape(batchCode)
}

// RenderQR encodes content as a PNG QR code.
func RenderQR(content string) ([]byte, error) {
	return qrcode.Encode(content, qrcode.Medium, qrSize)
}
