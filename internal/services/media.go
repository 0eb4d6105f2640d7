package services

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/jagruti-foundation/apiserver/types"
)

// Upload carries a fully read multipart file on its way to object
// storage. Handlers enforce size limits while reading.
type Upload struct {
	Filename string
	Data     []byte
}

var imageExtensions = map[string]string{
	".jpeg": "image/jpeg",
	".jpg":  "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".webp": "image/webp",
}

var videoExtensions = map[string]string{
	".mp4":  "video/mp4",
	".webm": "video/webm",
	".mov":  "video/quicktime",
}

// ValidatePDF rejects uploads that are not PDF files.
func ValidatePDF(u Upload) error {
	if len(u.Data) == 0 {
		return errors.New("empty file")
	}
	if ext(u.Filename) != ".pdf" {
		return errors.New("only PDF files are allowed")
	}
	return nil
}

// ValidateImage rejects uploads that are not supported image files.
func ValidateImage(u Upload) error {
	if len(u.Data) == 0 {
		return errors.New("empty file")
	}
	if _, ok := imageExtensions[ext(u.Filename)]; !ok {
		return errors.New("only image files are allowed")
	}
	return nil
}

// ValidateGalleryMedia rejects media that does not match the declared
// gallery type: images for photo entries, video files for video entries.
func ValidateGalleryMedia(u Upload, galleryType types.GalleryType) error {
	if len(u.Data) == 0 {
		return errors.New("empty file")
	}
	switch galleryType {
	case types.GalleryPhoto:
		if _, ok := imageExtensions[ext(u.Filename)]; !ok {
			return errors.New("photo entries require an image file")
		}
	case types.GalleryVideo:
		if _, ok := videoExtensions[ext(u.Filename)]; !ok {
			return errors.New("video entries require a video file")
		}
	default:
		return errors.New("invalid gallery type")
	}
	return nil
}

// ContentType derives the MIME type of an upload from its extension.
func (u Upload) ContentType() string {
	e := ext(u.Filename)
	if e == ".pdf" {
		return "application/pdf"
	}
	if ct, ok := imageExtensions[e]; ok {
		return ct
	}
	if ct, ok := videoExtensions[e]; ok {
		return ct
	}
	return "application/octet-stream"
}

// objectKey builds a collision-free storage key under the given prefix,
// preserving the original extension.
func objectKey(prefix, filename string) string {
	return fmt.Sprintf("%s/%s%s", prefix, uuid.NewString(), ext(filename))
}

func ext(filename string) string {
	return strings.ToLower(filepath.Ext(strings.TrimSpace(filename)))
}
