// response/success.go
// Decodes successful API responses: reads the body, logs the raw payload at debug
// level, and unmarshals by content type.
package response

import (
	"bytes"
	"encoding/json"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/CharlSquash/go-solosync-client/logger"
	"go.uber.org/zap"
)

// contentHandler decodes a response body from an io.Reader into out.
type contentHandler func(io.Reader, any, logger.Logger, string) error

// responseUnmarshallers picks the decoder for a given MIME type.
var responseUnmarshallers = map[string]contentHandler{
	"application/json": handlerUnmarshalJSON,
	"application/xml":  handlerUnmarshalXML,
	"text/xml":         handlerUnmarshalXML,
}

// HandleAPISuccessResponse reads the response body and unmarshals it into out based on the
// content type. A nil out or a bodyless status (204, or an empty body) is a no-op.
func HandleAPISuccessResponse(resp *http.Response, out any, log logger.Logger) error {
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return log.Error("Failed to read response body", zap.Error(err))
	}
	if len(bodyBytes) == 0 {
		return nil
	}

	log.Debug("Raw HTTP Response", zap.String("Body", string(bodyBytes)))

	bodyReader := bytes.NewReader(bodyBytes)
	contentType := resp.Header.Get("Content-Type")
	contentTypeNoParams, _ := parseHeader(contentType)

	if handler, ok := responseUnmarshallers[contentTypeNoParams]; ok {
		return handler(bodyReader, out, log, contentType)
	}

	if isBinaryData(contentType, resp.Header.Get("Content-Disposition")) {
		return handleBinaryData(bodyReader, out)
	}

	return log.Error(fmt.Sprintf("unexpected MIME type: %s", contentType), zap.String("content type", contentType))
}

func handlerUnmarshalJSON(reader io.Reader, out any, log logger.Logger, mimeType string) error {
	if err := json.NewDecoder(reader).Decode(out); err != nil {
		log.Warn("Failed to decode JSON response", zap.Error(err))
		return err
	}
	log.Debug("Decoded JSON response", zap.String("content type", mimeType))
	return nil
}

func handlerUnmarshalXML(reader io.Reader, out any, log logger.Logger, mimeType string) error {
	if err := xml.NewDecoder(reader).Decode(out); err != nil {
		log.Warn("Failed to decode XML response", zap.Error(err))
		return err
	}
	log.Debug("Decoded XML response", zap.String("content type", mimeType))
	return nil
}

// isBinaryData reports whether the response should be handed through unparsed, based
// on the MIME type or an attachment Content-Disposition.
func isBinaryData(contentType, contentDisposition string) bool {
	mimeType, _ := parseHeader(contentType)
	dispositionType, _ := parseHeader(contentDisposition)
	return mimeType == "application/octet-stream" || dispositionType == "attachment"
}

// handleBinaryData delivers an unparsed body into a *[]byte or streams it to an
// io.Writer; any other output type is a caller mistake.
func handleBinaryData(reader io.Reader, out any) error {
	switch out := out.(type) {
	case *[]byte:
		data, err := io.ReadAll(reader)
		if err != nil {
			return err
		}
		*out = data
		return nil

	case io.Writer:
		_, err := io.Copy(out, reader)
		return err

	default:
		return errors.New("binary response requires a *[]byte or io.Writer output")
	}
}
