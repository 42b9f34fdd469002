package util

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 最小合法 PNG 文件头
var pngHeader = []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A, 0, 0, 0, 0}

func TestValidateMimeType(t *testing.T) {
	mime, err := ValidateMimeType(bytes.NewReader(pngHeader), []string{"image/"})
	require.NoError(t, err)
	assert.Equal(t, "image/png", mime)
}

func TestValidateMimeTypeRejected(t *testing.T) {
	_, err := ValidateMimeType(bytes.NewReader(pngHeader), []string{"video/"})
	assert.Error(t, err)
}

func TestValidateMimeTypeExactMatch(t *testing.T) {
	mime, err := ValidateMimeType(bytes.NewReader([]byte("plain text content")), []string{"text/plain; charset=utf-8"})
	require.NoError(t, err)
	assert.Contains(t, mime, "text/plain")
}

func TestDetectFileType(t *testing.T) {
	tests := []struct {
		mime string
		want string
	}{
		{"image/png", FileTypeImage},
		{"image/jpeg", FileTypeImage},
		{"video/mp4", FileTypeVideo},
		{"application/x-mpegURL", FileTypeVideo},
		{"application/pdf", FileTypeDocument},
		{"text/plain", FileTypeDocument},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, DetectFileType(tt.mime), tt.mime)
	}
}

func TestIsImageIsVideo(t *testing.T) {
	assert.True(t, IsImage("image/gif"))
	assert.False(t, IsImage("video/mp4"))
	assert.True(t, IsVideo("video/webm"))
	assert.False(t, IsVideo("application/pdf"))
}
