package elastic

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/elastic/go-elasticsearch/v7/esapi"

	"github.com/kailas-cloud/hotelsearch/internal/db"
)

// ResponseError is a non-2xx response from the cluster.
type ResponseError struct {
	StatusCode int
	Type       string
	Reason     string
}

func (e *ResponseError) Error() string {
	if e.Type == "" {
		return fmt.Sprintf("status %d", e.StatusCode)
	}
	return fmt.Sprintf("status %d: %s: %s", e.StatusCode, e.Type, e.Reason)
}

// Unwrap maps well-known failures onto storage sentinels.
func (e *ResponseError) Unwrap() error {
	if e.Type == "index_not_found_exception" {
		return db.ErrIndexNotFound
	}
	return nil
}

type errorBody struct {
	Error struct {
		Type   string `json:"type"`
		Reason string `json:"reason"`
	} `json:"error"`
}

// responseError reads the error body of res. Bodies that are not engine
// errors (plain 404 results, proxies) still yield the status.
func responseError(res *esapi.Response) *ResponseError {
	out := &ResponseError{StatusCode: res.StatusCode}
	raw, err := io.ReadAll(res.Body)
	if err != nil || len(raw) == 0 {
		return out
	}
	var body errorBody
	if json.Unmarshal(raw, &body) == nil {
		out.Type = body.Error.Type
		out.Reason = body.Error.Reason
	}
	return out
}

// isNotFound reports whether err is a plain 404 for a missing document,
// as opposed to a missing index.
func isNotFound(err *ResponseError) bool {
	return err.StatusCode == http.StatusNotFound && !errors.Is(err, db.ErrIndexNotFound)
}
