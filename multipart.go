package rsclient

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
)

// multipartForm builds a multipart body with the file part first and the
// remaining fields after it. Returns the body and its content type.
func multipartForm(fileField, filename string, content io.Reader, fields map[string]string) (io.Reader, string, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile(fileField, filename)
	if err != nil {
		return nil, "", fmt.Errorf("build multipart form: %w", err)
	}
	if _, err := io.Copy(part, content); err != nil {
		return nil, "", fmt.Errorf("read multipart content: %w", err)
	}
	for name, value := range fields {
		if err := writer.WriteField(name, value); err != nil {
			return nil, "", fmt.Errorf("build multipart form: %w", err)
		}
	}
	if err := writer.Close(); err != nil {
		return nil, "", fmt.Errorf("build multipart form: %w", err)
	}
	return &buf, writer.FormDataContentType(), nil
}
