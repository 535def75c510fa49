package domain

import (
	"fmt"
	"strings"
)

// MediaKind назначение загружаемого изображения
type MediaKind string

const (
	MediaCover   MediaKind = "cover"
	MediaGallery MediaKind = "gallery"
	MediaStaff   MediaKind = "staff"
)

// IsValid тип из списка известных
func (k MediaKind) IsValid() bool {
	return k == MediaCover || k == MediaGallery || k == MediaStaff
}

var imageExtensions = map[string]string{
	"image/jpeg": "jpg",
	"image/png":  "png",
	"image/webp": "webp",
}

// ImageExtension расширение файла для допустимого content type
func ImageExtension(contentType string) (string, bool) {
	ext, ok := imageExtensions[strings.ToLower(contentType)]
	return ext, ok
}

// BusinessMediaPrefix префикс ключей объектов бизнеса
func BusinessMediaPrefix(businessID int64) string {
	return fmt.Sprintf("businesses/%d/", businessID)
}

// BusinessMediaKey ключ объекта: businesses/{id}/{kind}/{name}.{ext}
func BusinessMediaKey(businessID int64, kind MediaKind, name, ext string) string {
	return fmt.Sprintf("%s%s/%s.%s", BusinessMediaPrefix(businessID), kind, name, ext)
}

// BelongsToBusiness ключ лежит под префиксом бизнеса
func BelongsToBusiness(key string, businessID int64) bool {
	return strings.HasPrefix(key, BusinessMediaPrefix(businessID)) && !strings.Contains(key, "..")
}
