package ocr

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectImageMIME(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want string
	}{
		{"jpeg", []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00}, "image/jpeg"},
		{"png", []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A}, "image/png"},
		{"pdf", []byte("%PDF-1.4"), ""},
		{"text", []byte("not an image"), ""},
		{"empty", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, detectImageMIME(tt.data))
		})
	}
}

func TestReadImage(t *testing.T) {
	payload := append([]byte{0xFF, 0xD8, 0xFF}, bytes.Repeat([]byte{0x00}, 16)...)

	data, mime, err := readImage("TestOp", bytes.NewReader(payload))
	require.NoError(t, err)
	assert.Equal(t, payload, data)
	assert.Equal(t, "image/jpeg", mime)
}

func TestReadImageTooLarge(t *testing.T) {
	oversized := make([]byte, MaxImageSizeBytes+1)
	copy(oversized, jpegMagic)

	_, _, err := readImage("TestOp", bytes.NewReader(oversized))
	assert.ErrorIs(t, err, ErrImageTooLarge)
}

func TestReadImageUnrecognizedFormat(t *testing.T) {
	_, _, err := readImage("TestOp", bytes.NewReader([]byte("GIF89a")))
	assert.ErrorIs(t, err, ErrInvalidImage)
}

func TestNewUnknownMethod(t *testing.T) {
	_, err := New(context.Background(), "tesseract")
	assert.ErrorIs(t, err, ErrUnknownMethod)
}

func TestOCRErrorMessage(t *testing.T) {
	err := WrapOCRError("ExtractImage", ErrOCRFailed, "backend unavailable")
	assert.ErrorIs(t, err, ErrOCRFailed)
	assert.Contains(t, err.Error(), "ExtractImage")
	assert.Contains(t, err.Error(), "backend unavailable")
}
