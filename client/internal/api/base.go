package api

import (
	"encoding/json"
	"io"
	"net/http"

	xerrors "github.com/daytrack/daytrack/client/internal/errors"
	"github.com/daytrack/daytrack/client/internal/types"
)

// responseMessage pulls the backend's optional {message} payload out of a
// failed response body. Returns "" when the body is not that shape.
func responseMessage(body io.Reader) string {
	var er types.ErrorResponse
	if err := json.NewDecoder(body).Decode(&er); err != nil {
		return ""
	}
	return er.Message
}

// failure drains resp and builds a classified error for a non-2xx response.
func failure(resp *http.Response, operation string) error {
	msg := responseMessage(resp.Body)
	return xerrors.NewHTTPError(resp.StatusCode, msg, operation)
}
