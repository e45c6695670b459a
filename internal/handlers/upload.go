package handlers

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gin-gonic/gin"

	"moviecatalog/internal/common"
	"moviecatalog/internal/importer"
)

const (
	sniffBytes        = 512
	multipartOverhead = 1 << 20
)

var supportedUploadMimeTypes = []string{"text/csv", "text/plain"}

// UploadCSV imports movies from the multipart "file" part, or from the
// configured import file when the request carries no file.
func (h *Handler) UploadCSV(c *gin.Context) {
	if h.maxUploadBytes > 0 && c.Request.Body != nil {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes+multipartOverhead)
	}

	file, header, err := c.Request.FormFile("file")
	switch {
	case err == nil:
		defer file.Close()
		h.importUpload(c, file, header)
	case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
		result, importErr := h.importer.ImportFile(c.Request.Context())
		h.respondImport(c, result, importErr)
	default:
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondTooLarge(c)
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid multipart upload"})
	}
}

func (h *Handler) importUpload(c *gin.Context, file multipart.File, header *multipart.FileHeader) {
	if h.maxUploadBytes > 0 && header.Size > h.maxUploadBytes {
		h.respondTooLarge(c)
		return
	}

	buffer := make([]byte, sniffBytes)
	bytesRead, err := io.ReadFull(file, buffer)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Error reading file"})
		return
	}
	if bytesRead == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "File is empty"})
		return
	}

	if _, err := file.Seek(0, io.SeekStart); err != nil {
		h.respondError(c, err, nil)
		return
	}

	detected := mimetype.Detect(buffer[:bytesRead])
	if !isSupportedUploadMime(detected) {
		c.JSON(http.StatusBadRequest, gin.H{
			"message":       "Unsupported file type. Upload a CSV file",
			"detected_mime": detected.String(),
			"original_name": header.Filename,
		})
		return
	}

	result, err := h.importer.Import(c.Request.Context(), file)
	h.respondImport(c, result, err)
}

func (h *Handler) respondImport(c *gin.Context, result importer.Result, err error) {
	if err != nil {
		h.respondError(c, err, map[error]string{
			common.ErrorValidation: "The csv file could not be parsed.",
			common.ErrorNotFound:   "The csv file does not exist.",
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Your csv movies has been added.",
		"added":   result.Added,
		"skipped": result.Skipped,
		"invalid": result.Invalid,
	})
}

func (h *Handler) respondTooLarge(c *gin.Context) {
	c.JSON(http.StatusRequestEntityTooLarge, gin.H{
		"message":          "File is too large",
		"max_upload_bytes": h.maxUploadBytes,
	})
}

// isSupportedUploadMime accepts text/csv, text/plain and anything whose
// detected type descends from them.
func isSupportedUploadMime(detected *mimetype.MIME) bool {
	for m := detected; m != nil; m = m.Parent() {
		for _, allowed := range supportedUploadMimeTypes {
			if m.Is(allowed) {
				return true
			}
		}
	}
	return false
}
