package utils

import (
	"encoding/base64"
	"fmt"
	"net/http"
	"strings"
)

// DecodeBase64Image accepts either a data URI such as
// "data:image/png;base64,iVBOR..." or a bare base64 string and returns
// the raw payload with its detected content type.
func DecodeBase64Image(data string) ([]byte, string, error) {
	if strings.HasPrefix(data, "data:") {
		idx := strings.Index(data, ";base64,")
		if idx == -1 {
			return nil, "", fmt.Errorf("malformed image data URI")
		}
		data = data[idx+len(";base64,"):]
	}

	data = strings.ReplaceAll(data, "\n", "")
	data = strings.ReplaceAll(data, "\r", "")

	payload, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return nil, "", fmt.Errorf("decode base64 image: %w", err)
	}

	contentType := http.DetectContentType(payload)
	if !strings.HasPrefix(contentType, "image/") {
		return nil, "", fmt.Errorf("unsupported content type %s", contentType)
	}

	return payload, contentType, nil
}
