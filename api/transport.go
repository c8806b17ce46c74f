package api

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/jpillora/backoff"
)

// maxRetries is the fixed transport-wide retry count. It is intentionally
// not configurable per call; callers wanting real retry policy should
// wrap the SDK themselves.
const maxRetries = 3

var httpClient = &http.Client{}

// retryableStatus reports whether a response status is worth retrying.
// Client errors other than 429 are never retried.
func retryableStatus(statusCode int) bool {
	return statusCode == http.StatusTooManyRequests || statusCode >= 500
}

// doRequest dispatches a request with the transport retry policy applied.
// build is invoked once per attempt so the request body can be re-read.
// It returns the final status code and the fully-read response body.
func doRequest(build func() (*http.Request, error)) (int, []byte, error) {
	b := &backoff.Backoff{
		Min:    100 * time.Millisecond,
		Max:    2 * time.Second,
		Jitter: true,
	}

	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			time.Sleep(b.Duration())
		}

		req, err := build()
		if err != nil {
			return 0, nil, err
		}

		resp, err := httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("error making request: %w", err)
			continue
		}

		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			lastErr = fmt.Errorf("error reading response: %w", err)
			continue
		}

		if retryableStatus(resp.StatusCode) && attempt < maxRetries {
			lastErr = ParseAPIError(resp.StatusCode, string(body))
			continue
		}

		return resp.StatusCode, body, nil
	}

	return 0, nil, lastErr
}

// statusSuccess reports whether the API signalled success. Ack/nack and
// consumer removal answer 204, everything else 200.
func statusSuccess(statusCode int) bool {
	return statusCode == http.StatusOK || statusCode == http.StatusNoContent
}
