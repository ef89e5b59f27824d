package portalapi

import (
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"

	"github.com/target/mdbook-portal/internal/ports"
)

// UploadField is the multipart field name the server reads the archive from.
const UploadField = "file"

// multipartBody streams the upload as a single-field multipart form. Nothing
// is written until start is called; the writer goroutine it launches exits
// once the transport closes the reader.
func multipartBody(upload ports.Upload) (body io.Reader, contentType string, start func()) {
	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)

	start = func() {
		go func() {
			pw.CloseWithError(writeUpload(mw, upload))
		}()
	}
	return pr, mw.FormDataContentType(), start
}

func writeUpload(mw *multipart.Writer, upload ports.Upload) error {
	name := filepath.Base(upload.Filename)
	if name == "." || name == string(filepath.Separator) {
		name = "book.zip"
	}
	part, err := mw.CreateFormFile(UploadField, name)
	if err != nil {
		return fmt.Errorf("create form file: %w", err)
	}
	if upload.Body != nil {
		if _, err := io.Copy(part, upload.Body); err != nil {
			return fmt.Errorf("copy upload body: %w", err)
		}
	}
	if err := mw.Close(); err != nil {
		return fmt.Errorf("close multipart writer: %w", err)
	}
	return nil
}
