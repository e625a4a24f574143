package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// base64 of the 8-byte PNG file signature
const pngBase64 = "iVBORw0KGgo="

func TestDecodeBase64Image(t *testing.T) {
	t.Run("data URI", func(t *testing.T) {
		payload, contentType, err := DecodeBase64Image("data:image/png;base64," + pngBase64)

		require.NoError(t, err)
		assert.Equal(t, "image/png", contentType)
		assert.Equal(t, []byte{0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a}, payload)
	})

	t.Run("bare base64", func(t *testing.T) {
		_, contentType, err := DecodeBase64Image(pngBase64)

		require.NoError(t, err)
		assert.Equal(t, "image/png", contentType)
	})

	t.Run("payload with embedded newlines", func(t *testing.T) {
		_, contentType, err := DecodeBase64Image("iVBORw0K\nGgo=")

		require.NoError(t, err)
		assert.Equal(t, "image/png", contentType)
	})

	t.Run("malformed data URI", func(t *testing.T) {
		_, _, err := DecodeBase64Image("data:image/png,no-marker")
		assert.Error(t, err)
	})

	t.Run("invalid base64", func(t *testing.T) {
		_, _, err := DecodeBase64Image("not base64 at all!!!")
		assert.Error(t, err)
	})

	t.Run("non-image payload", func(t *testing.T) {
		// "hello world" decodes fine but sniffs as text/plain
		_, _, err := DecodeBase64Image("aGVsbG8gd29ybGQ=")
		assert.Error(t, err)
	})
}
