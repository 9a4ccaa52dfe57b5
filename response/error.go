// response/error.go
// Normalizes every failure the client can produce into the APIError shape and parses
// server error bodies by content type.
package response

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/CharlSquash/go-solosync-client/logger"
	"github.com/antchfx/xmlquery"
	"go.uber.org/zap"
	"golang.org/x/net/html"
)

// Generic messages for failures that carry no server response. The caller sees the
// same shape either way: message, optional data, optional status.
const (
	NetworkErrorMessage = "Network error: no response received from the server"
	SetupErrorMessage   = "Request error: the request could not be built or sent"
)

// APIError is the normalized error shape returned to callers for every failure class.
// Status is the HTTP status code when the server replied, 0 otherwise. Data carries
// the decoded server payload when one could be parsed.
type APIError struct {
	Status  int         `json:"status,omitempty"`
	Method  string      `json:"method,omitempty"`
	URL     string      `json:"url,omitempty"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Raw     string      `json:"raw_response,omitempty"`
}

// Error renders the APIError as JSON so callers that stringify the error still see
// the full normalized shape.
func (e *APIError) Error() string {
	if data, err := json.Marshal(e); err == nil {
		return string(data)
	}

	msg := e.Message
	if msg == "" {
		msg = http.StatusText(e.Status)
	}
	return fmt.Sprintf("API Error: Status=%d, Message=%s", e.Status, msg)
}

// IsAuthExpired reports whether the error is the authentication-failure class that
// the refresh coordinator intercepts. Every other class passes through untouched.
func (e *APIError) IsAuthExpired() bool {
	return e.Status == http.StatusUnauthorized
}

// NewTransportError normalizes a failure where the request was sent but no response
// arrived. The underlying error is preserved in Raw for debugging.
func NewTransportError(method, url string, err error) *APIError {
	return &APIError{
		Method:  method,
		URL:     url,
		Message: NetworkErrorMessage,
		Raw:     err.Error(),
	}
}

// NewSetupError normalizes a failure that occurred before the request was sent,
// e.g. a body that could not be serialized.
func NewSetupError(err error) *APIError {
	return &APIError{
		Message: SetupErrorMessage,
		Raw:     err.Error(),
	}
}

// HandleAPIErrorResponse normalizes an HTTP error response from the API. The message is
// the server-provided detail field when present, else a JSON rendering of the response
// body, else a generic "API Error: <status>" string.
func HandleAPIErrorResponse(resp *http.Response, log logger.Logger) *APIError {
	apiError := &APIError{
		Status:  resp.StatusCode,
		Message: fmt.Sprintf("API Error: %d", resp.StatusCode),
	}
	if resp.Request != nil {
		apiError.Method = resp.Request.Method
		apiError.URL = resp.Request.URL.String()
	}

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		apiError.Raw = "Failed to read response body"
		return apiError
	}

	mimeType, _ := parseHeader(resp.Header.Get("Content-Type"))
	switch mimeType {
	case "application/json":
		parseJSONResponse(bodyBytes, apiError)
	case "application/xml", "text/xml":
		parseXMLResponse(bodyBytes, apiError)
	case "text/html":
		parseHTMLResponse(bodyBytes, apiError)
	case "text/plain":
		parseTextResponse(bodyBytes, apiError)
	default:
		apiError.Raw = string(bodyBytes)
	}

	log.Warn("API error response",
		zap.String("method", apiError.Method),
		zap.String("url", apiError.URL),
		zap.Int("status", apiError.Status),
		zap.String("message", apiError.Message),
	)

	return apiError
}

// parseJSONResponse extracts the normalized message and payload from a JSON error body.
// The SoloSync API reports errors as {"detail": "..."}; bodies without a detail field
// are rendered back as compact JSON.
func parseJSONResponse(bodyBytes []byte, apiError *APIError) {
	apiError.Raw = string(bodyBytes)

	var payload map[string]interface{}
	if err := json.Unmarshal(bodyBytes, &payload); err != nil {
		return
	}
	apiError.Data = payload

	if detail, ok := payload["detail"].(string); ok && detail != "" {
		apiError.Message = detail
		return
	}

	if rendered, err := json.Marshal(payload); err == nil && len(payload) > 0 {
		apiError.Message = string(rendered)
	}
}

// parseXMLResponse collects the text of every leaf element in an XML error body.
func parseXMLResponse(bodyBytes []byte, apiError *APIError) {
	apiError.Raw = string(bodyBytes)

	doc, err := xmlquery.Parse(bytes.NewReader(bodyBytes))
	if err != nil {
		return
	}

	var messages []string
	for _, leaf := range xmlquery.Find(doc, "//*[not(*)]") {
		if text := strings.TrimSpace(leaf.InnerText()); text != "" {
			messages = append(messages, text)
		}
	}

	if len(messages) > 0 {
		apiError.Message = strings.Join(messages, "; ")
	}
}

// parseTextResponse updates the APIError structure based on a plain text error response.
func parseTextResponse(bodyBytes []byte, apiError *APIError) {
	bodyText := strings.TrimSpace(string(bodyBytes))
	apiError.Raw = string(bodyBytes)
	if bodyText != "" {
		apiError.Message = bodyText
	}
}

// parseHTMLResponse takes the text of each <p> element in an HTML error page as the
// message, the way framework error pages present the human-readable part.
func parseHTMLResponse(bodyBytes []byte, apiError *APIError) {
	apiError.Raw = string(bodyBytes)

	doc, err := html.Parse(bytes.NewReader(bodyBytes))
	if err != nil {
		return
	}

	var messages []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "p" {
			if text := strings.TrimSpace(htmlNodeText(n)); text != "" {
				messages = append(messages, text)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	if len(messages) > 0 {
		apiError.Message = strings.Join(messages, "; ")
	}
}

// htmlNodeText concatenates the text content beneath a node.
func htmlNodeText(n *html.Node) string {
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode {
			b.WriteString(strings.TrimSpace(c.Data))
			b.WriteString(" ")
			continue
		}
		b.WriteString(htmlNodeText(c))
	}
	return b.String()
}
