package aws

import (
	"encoding/base64"
	"mime"
	"net/http"
	"strings"
	"unicode/utf8"
)

var textContentTypes = []string{
	"application/json",
	"application/javascript",
	"application/ecmascript",
	"application/xml",
	"application/xhtml+xml",
	"application/x-www-form-urlencoded",
	"application/graphql",
	"application/x-ndjson",
	"image/svg+xml",
}

var compressedEncodings = []string{"gzip", "deflate", "br", "compress", "zstd"}

// BodyEncoder decides whether a reply body must be base64-encoded
type BodyEncoder struct {
	binaryTypes []string
}

// NewBodyEncoder returns an encoder that also treats binaryTypes as binary.
// Entries may be exact media types or wildcards such as "image/*".
func NewBodyEncoder(binaryTypes ...string) *BodyEncoder {
	normalized := make([]string, 0, len(binaryTypes))
	for _, t := range binaryTypes {
		t = strings.ToLower(strings.TrimSpace(t))
		if t != "" {
			normalized = append(normalized, t)
		}
	}
	return &BodyEncoder{binaryTypes: normalized}
}

// IsBinary reports whether a body with these headers must be base64-encoded
func (b *BodyEncoder) IsBinary(headers http.Header, body []byte) bool {
	if encoding := strings.ToLower(headers.Get("Content-Encoding")); encoding != "" {
		for _, c := range compressedEncodings {
			if strings.Contains(encoding, c) {
				return true
			}
		}
	}

	contentType := headers.Get("Content-Type")
	if contentType == "" {
		return !utf8.Valid(body)
	}

	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		mediaType = strings.ToLower(strings.TrimSpace(strings.Split(contentType, ";")[0]))
	}

	for _, t := range b.binaryTypes {
		if matchMediaType(t, mediaType) {
			return true
		}
	}
	return !isTextMediaType(mediaType)
}

// Encode returns the reply body and whether it was base64-encoded
func (b *BodyEncoder) Encode(headers http.Header, body []byte) (string, bool) {
	if len(body) == 0 {
		return "", false
	}
	if b.IsBinary(headers, body) {
		return base64.StdEncoding.EncodeToString(body), true
	}
	return string(body), false
}

func isTextMediaType(mediaType string) bool {
	if strings.HasPrefix(mediaType, "text/") {
		return true
	}
	if strings.HasSuffix(mediaType, "+json") || strings.HasSuffix(mediaType, "+xml") {
		return true
	}
	for _, t := range textContentTypes {
		if mediaType == t {
			return true
		}
	}
	return false
}

func matchMediaType(pattern, mediaType string) bool {
	if prefix, ok := strings.CutSuffix(pattern, "/*"); ok {
		return strings.HasPrefix(mediaType, prefix+"/")
	}
	return pattern == mediaType
}
