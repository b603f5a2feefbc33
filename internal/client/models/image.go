package models

import (
	"encoding/base64"
	"errors"
	"strings"
)

var ErrInvalidDataURI = errors.New("invalid data URI")

const dataURIPrefix = "data:"

// DataURI builds a browser-style data URI from a content type and already
// base64-encoded payload, e.g. "data:image/png;base64,iVBORw0...".
func DataURI(contentType, base64Data string) string {
	return dataURIPrefix + contentType + ";base64," + base64Data
}

// ParseDataURI is the inverse of DataURI: it recovers the content type and
// the raw (decoded) bytes. Editing a listing uses this to turn persisted
// images back into upload payloads.
func ParseDataURI(uri string) (contentType string, raw []byte, err error) {
	meta, data, ok := strings.Cut(uri, ",")
	if !ok || !strings.HasPrefix(meta, dataURIPrefix) {
		return "", nil, ErrInvalidDataURI
	}
	meta = strings.TrimPrefix(meta, dataURIPrefix)
	contentType = strings.TrimSuffix(meta, ";base64")
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	raw, err = base64.StdEncoding.DecodeString(data)
	if err != nil {
		return "", nil, ErrInvalidDataURI
	}
	return contentType, raw, nil
}
