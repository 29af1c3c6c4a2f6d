package domain

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"

	"github.com/alcymedia/casting-caly/api/internal/apperr"
)

// PhotoCountMessage is shown when the photo count is outside [MinPhotos, MaxPhotos].
var PhotoCountMessage = fmt.Sprintf("É necessário enviar entre %d e %d fotos.", MinPhotos, MaxPhotos)

// PhotoContentTypes are the raster formats the dashboard and the PDF export can decode.
var PhotoContentTypes = []string{"image/jpeg", "image/png", "image/gif", "image/webp", "image/bmp"}

var cvContentTypes = []string{
	"application/pdf",
	"application/msword",
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	// legacy .doc files are often sniffed as the generic OLE container
	"application/x-ole-storage",
}

// CheckPhotoCount rejects fewer than MinPhotos or more than MaxPhotos photos.
func CheckPhotoCount(n int) error {
	if n < MinPhotos || n > MaxPhotos {
		return apperr.Validation("fotos", PhotoCountMessage)
	}
	return nil
}

// SniffPhoto detects the photo content type from its bytes. Only raster formats
// are accepted, and the declared canvas must stay within MaxPhotoPixels.
func SniffPhoto(file *UploadFile) error {
	detected := mimetype.Detect(file.Data)
	if !IsPhotoContentType(detected.String()) {
		return apperr.Validation("fotos", fmt.Sprintf("O ficheiro %q não é uma imagem (jpg, png, jpeg).", file.Name))
	}
	cfg, _, err := image.DecodeConfig(bytes.NewReader(file.Data))
	if err != nil {
		return apperr.Validation("fotos", fmt.Sprintf("O ficheiro %q não é uma imagem válida.", file.Name))
	}
	if int64(cfg.Width)*int64(cfg.Height) > MaxPhotoPixels {
		return apperr.Validation("fotos", fmt.Sprintf("A imagem %q tem dimensões demasiado grandes.", file.Name))
	}
	file.ContentType = detected.String()
	return nil
}

// IsPhotoContentType reports whether contentType is one of PhotoContentTypes.
func IsPhotoContentType(contentType string) bool {
	mediaType, _, _ := strings.Cut(contentType, ";")
	mediaType = strings.TrimSpace(mediaType)
	for _, allowed := range PhotoContentTypes {
		if mediaType == allowed {
			return true
		}
	}
	return false
}

// SniffCV accepts PDF, DOC or DOCX documents.
func SniffCV(file *UploadFile) error {
	detected := mimetype.Detect(file.Data)
	for _, allowed := range cvContentTypes {
		if detected.Is(allowed) {
			file.ContentType = detected.String()
			return nil
		}
	}
	return apperr.Validation("cv", fmt.Sprintf("O CV %q deve estar em PDF, DOC ou DOCX.", file.Name))
}
