package posts

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/crucial707/springboard/cmd/cli/config"
)

const sessionCookie = "BLOGSESSION"

var httpClient = &http.Client{Timeout: 15 * time.Second}

// apiError is the JSON error body of the API.
type apiError struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields"`
}

// apiRequest sends payload (when non-nil) as JSON with the stored session
// cookie and decodes a 2xx response into out (when non-nil).
func apiRequest(method, path string, payload, out any) error {
	value, err := config.ReadSession()
	if err != nil {
		return err
	}

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, config.APIURL()+path, body)
	if err != nil {
		return err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.AddCookie(&http.Cookie{Name: sessionCookie, Value: value})

	resp, err := httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return statusError(resp.StatusCode, data)
	}

	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

func statusError(status int, body []byte) error {
	var e apiError
	if json.Unmarshal(body, &e) != nil || e.Error == "" {
		return fmt.Errorf("status %d: %s", status, bytes.TrimSpace(body))
	}
	switch status {
	case http.StatusUnauthorized:
		return fmt.Errorf("session expired or missing: log in again (%s)", e.Error)
	case http.StatusForbidden:
		return fmt.Errorf("your account is not allowed to use the API (%s)", e.Error)
	}
	if len(e.Fields) > 0 {
		return fmt.Errorf("%s: %v", e.Error, e.Fields)
	}
	return fmt.Errorf("%s (status %d)", e.Error, status)
}
