// response/parse.go
package response

import "mime"

// ParseContentTypeHeader splits a Content-Type style header into its MIME type and
// parameters (e.g. charset).
func ParseContentTypeHeader(header string) (string, map[string]string) {
	return parseHeader(header)
}

// parseHeader wraps mime.ParseMediaType; a header it cannot parse is returned as-is
// with no parameters so lookups against known MIME types simply miss.
func parseHeader(header string) (string, map[string]string) {
	mediaType, params, err := mime.ParseMediaType(header)
	if err != nil {
		return header, map[string]string{}
	}
	return mediaType, params
}
