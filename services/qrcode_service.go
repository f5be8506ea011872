// services/qrcode_service.go
package services

import (
	"fmt"

	"github.com/skip2/go-qrcode"
)

// applicationURL is the base every public link is built from. main resolves
// it once at startup; the default only serves local testing.
var applicationURL = "http://localhost:8080"

// SetApplicationURL pins the base URL for public display links.
func SetApplicationURL(u string) {
	if u != "" {
		applicationURL = u
	}
}

// PublicDisplayURL is the direct link for one configuration's public
// display, the same URL the embed iframe points at.
func PublicDisplayURL(configID string) string {
	return fmt.Sprintf("%s/display/%s", applicationURL, configID)
}

// EmbedCode returns the iframe snippet admins paste into their site.
func EmbedCode(configID string) string {
	return fmt.Sprintf(`<iframe src="%s" width="100%%" height="600px" style="border:1px solid #ccc;"></iframe>`,
		PublicDisplayURL(configID))
}

// GenerateQRCode renders a configuration's public link as a PNG QR code.
func GenerateQRCode(configID string, size int) ([]byte, error) {
	png, err := qrcode.Encode(PublicDisplayURL(configID), qrcode.Medium, size)
	if err != nil {
		return nil, err
	}
	return png, nil
}
