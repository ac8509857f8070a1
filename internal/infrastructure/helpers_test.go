package infrastructure

import (
	"testing"

	"github.com/DRSN-tech/lignum-storefront/pkg/e"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetExtensionFromMIME(t *testing.T) {
	tests := []struct {
		mime string
		want string
	}{
		{"image/jpeg", "jpg"},
		{"image/jpg", "jpg"},
		{"image/png", "png"},
		{"image/webp", "webp"},
	}
	for _, tt := range tests {
		t.Run(tt.mime, func(t *testing.T) {
			got, err := GetExtensionFromMIME(tt.mime)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := GetExtensionFromMIME("image/gif")
	require.ErrorIs(t, err, e.ErrUnsupportedMediaType)
}

func TestObjectKey(t *testing.T) {
	assert.Equal(t, "oak-table", Slug("  Oak   Table! "))
	assert.Equal(t, "oak-table/front-view-abc.jpg", ObjectKey("Oak Table", "Front View.JPG", "abc", "jpg"))
}
