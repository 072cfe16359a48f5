package hotelos

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"

	"hotelos_gateway/internal/domain"
)

// multipartRequest encodes files under one form field. Uploads are never retried.
func multipartRequest(op, path, field string, files []domain.FileUpload) (request, error) {
	if len(files) == 0 {
		return request{}, &domain.ValidationError{Status: http.StatusBadRequest, Message: "no file selected"}
	}
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for _, f := range files {
		h := make(textproto.MIMEHeader)
		name := strings.ReplaceAll(f.Filename, `"`, "")
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, field, name))
		ct := f.ContentType
		if ct == "" {
			ct = http.DetectContentType(f.Data)
		}
		h.Set("Content-Type", ct)
		part, err := w.CreatePart(h)
		if err != nil {
			return request{}, err
		}
		if _, err := part.Write(f.Data); err != nil {
			return request{}, err
		}
	}
	if err := w.Close(); err != nil {
		return request{}, err
	}
	return request{
		op:          op,
		method:      http.MethodPost,
		path:        path,
		raw:         buf.Bytes(),
		contentType: w.FormDataContentType(),
	}, nil
}
