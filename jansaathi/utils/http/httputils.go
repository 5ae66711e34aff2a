// jansaathi/utils/http/httputils.go
package httputils

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"

	"jansaathi/jansaathi/utils/types"
)

// WriteError emits the stable {"error": "..."} failure shape.
func WriteError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(types.ErrorResponse{Error: message})
}

// PostStreamWithAuth issues a streaming POST with a bearer credential and
// returns the raw response. The caller owns resp.Body and is responsible
// for mapping non-200 statuses; nothing is read or buffered here.
func PostStreamWithAuth(ctx context.Context, client *http.Client, url, token string, body interface{}) (*http.Response, error) {
	jsonBody, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonBody))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if client == nil {
		client = http.DefaultClient
	}
	return client.Do(req)
}
