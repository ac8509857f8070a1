package infrastructure

import (
	"path"
	"strings"

	"github.com/DRSN-tech/lignum-storefront/pkg/e"
)

// GetExtensionFromMIME возвращает расширение файла по MIME-типу изображения.
// Поддерживает jpeg, jpg, png, webp. Возвращает ошибку e.ErrUnsupportedMediaType для неподдерживаемых типов.
func GetExtensionFromMIME(mime string) (string, error) {
	switch mime {
	case "image/jpeg", "image/jpg":
		return "jpg", nil
	case "image/png":
		return "png", nil
	case "image/webp":
		return "webp", nil
	default:
		return "bin", e.ErrUnsupportedMediaType
	}
}

// Slug приводит название товара к виду, пригодному для ключа объекта: "Oak Table" -> "oak-table".
func Slug(name string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			dash = false
		case !dash && b.Len() > 0:
			b.WriteByte('-')
			dash = true
		}
	}

	return strings.TrimSuffix(b.String(), "-")
}

// ObjectKey собирает ключ объекта MinIO для изображения товара.
func ObjectKey(productName, imageName, imageID, ext string) string {
	base := strings.TrimSuffix(imageName, path.Ext(imageName))
	return Slug(productName) + "/" + Slug(base) + "-" + imageID + "." + ext
}
