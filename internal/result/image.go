package result

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	_ "image/png" // register the PNG decoder for image.Decode
	"strings"
)

// ErrNoImageData is returned when an ImageRef carries no payload
var ErrNoImageData = errors.New("image reference has no data")

// ImageRef is a self-contained reference to a rendered diagram
type ImageRef struct {
	Title   string `json:"title"`
	DataURI string `json:"-"`
}

// MediaType returns the media type declared by the data URI, "image/png"
// when the reference is bare base64.
func (r *ImageRef) MediaType() string {
	if r == nil {
		return ""
	}
	header, _, ok := strings.Cut(r.DataURI, ",")
	if !ok || !strings.HasPrefix(header, "data:") {
		return "image/png"
	}
	mt, _, _ := strings.Cut(strings.TrimPrefix(header, "data:"), ";")
	if mt == "" {
		return "image/png"
	}
	return mt
}

// Bytes returns the original encoded image bytes
func (r *ImageRef) Bytes() ([]byte, error) {
	if r == nil || strings.TrimSpace(r.DataURI) == "" {
		return nil, ErrNoImageData
	}
	payload := r.DataURI
	if header, rest, ok := strings.Cut(payload, ","); ok && strings.HasPrefix(header, "data:") {
		if !strings.HasSuffix(header, ";base64") {
			return []byte(rest), nil
		}
		payload = rest
	}
	data, err := base64.StdEncoding.DecodeString(strings.TrimSpace(payload))
	if err != nil {
		return nil, fmt.Errorf("decode %q image payload: %w", r.Title, err)
	}
	return data, nil
}

// Decode returns the decoded image and its natural size
func (r *ImageRef) Decode() (image.Image, error) {
	data, err := r.Bytes()
	if err != nil {
		return nil, err
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode %q image: %w", r.Title, err)
	}
	return img, nil
}
