// internal/domain/editor/multipart.go
package editor

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/textproto"
)

// MetadataField is the form field carrying the JSON metadata document.
const MetadataField = "metadata"

// ErrMalformedSubmission is returned when a multipart form does not carry a
// decodable metadata document.
var ErrMalformedSubmission = errors.New("malformed structure submission")

// WriteMultipart writes the metadata field followed by one file part per
// asset, in sorted key order. The caller closes w.
func (sub Submission) WriteMultipart(w *multipart.Writer) error {
	doc, err := json.Marshal(sub.Metadata)
	if err != nil {
		return fmt.Errorf("encode metadata: %w", err)
	}
	if err := w.WriteField(MetadataField, string(doc)); err != nil {
		return err
	}

	for _, key := range sub.AssetKeys() {
		a := sub.Assets[key]
		filename := a.Filename
		if filename == "" {
			filename = "photo"
		}
		ct := a.ContentType
		if ct == "" {
			ct = "application/octet-stream"
		}
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", mime.FormatMediaType("form-data", map[string]string{
			"name":     key,
			"filename": filename,
		}))
		h.Set("Content-Type", ct)
		part, err := w.CreatePart(h)
		if err != nil {
			return err
		}
		if _, err := part.Write(a.Data); err != nil {
			return fmt.Errorf("write asset %s: %w", key, err)
		}
	}
	return nil
}

// Encode renders the submission as a complete multipart/form-data body and
// returns it with the matching Content-Type header value.
func (sub Submission) Encode() (*bytes.Buffer, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	if err := sub.WriteMultipart(w); err != nil {
		return nil, "", err
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return &buf, w.FormDataContentType(), nil
}

// DecodeMultipart reads a submission back from a parsed multipart form.
// Every file part becomes an asset under its form field name; keys are not
// checked here (see Submission.Restore).
func DecodeMultipart(form *multipart.Form) (Submission, error) {
	if form == nil {
		return Submission{}, ErrMalformedSubmission
	}
	vals := form.Value[MetadataField]
	if len(vals) != 1 {
		return Submission{}, fmt.Errorf("%w: expected one %q field", ErrMalformedSubmission, MetadataField)
	}

	var sub Submission
	if err := json.Unmarshal([]byte(vals[0]), &sub.Metadata); err != nil {
		return Submission{}, fmt.Errorf("%w: %v", ErrMalformedSubmission, err)
	}

	sub.Assets = make(map[string]*Asset, len(form.File))
	for key, headers := range form.File {
		if len(headers) != 1 {
			return Submission{}, fmt.Errorf("%w: asset %s sent %d times", ErrMalformedSubmission, key, len(headers))
		}
		fh := headers[0]
		f, err := fh.Open()
		if err != nil {
			return Submission{}, fmt.Errorf("open asset %s: %w", key, err)
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			return Submission{}, fmt.Errorf("read asset %s: %w", key, err)
		}
		sub.Assets[key] = &Asset{
			Filename:    fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Data:        data,
		}
	}
	return sub, nil
}
