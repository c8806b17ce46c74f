package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/sequinstream/sequin-go/context"
	"github.com/sequinstream/sequin-go/models"
)

type StreamsResponse struct {
	Streams []models.Stream `json:"data"`
}

// StreamCreateOptions holds the optional tuning parameters for a new
// stream. Zero values are omitted from the request so the server
// applies its own defaults.
type StreamCreateOptions struct {
	OneMessagePerKey  bool `json:"one_message_per_key,omitempty"`
	ProcessUnmodified bool `json:"process_unmodified,omitempty"`
	MaxStorageGB      int  `json:"max_storage_gb,omitempty"`
	RetainUpTo        int  `json:"retain_up_to,omitempty"`
	RetainAtLeast     int  `json:"retain_at_least,omitempty"`
}

type DeleteStreamResponse struct {
	ID      string `json:"id"`
	Deleted bool   `json:"deleted"`
}

// BuildFetchStreams builds the HTTP request for fetching streams
func BuildFetchStreams(ctx *context.Context) (*http.Request, error) {
	serverURL, err := context.GetServerURL(ctx)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequest("GET", serverURL+"/api/streams", nil)
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	return req, nil
}

// FetchStreams retrieves all streams from the API
func FetchStreams(ctx *context.Context) ([]models.Stream, error) {
	statusCode, body, err := doRequest(func() (*http.Request, error) {
		return BuildFetchStreams(ctx)
	})
	if err != nil {
		return nil, err
	}

	if statusCode != http.StatusOK {
		return nil, ParseAPIError(statusCode, string(body))
	}

	var streamsResponse StreamsResponse
	err = json.Unmarshal(body, &streamsResponse)
	if err != nil {
		return nil, fmt.Errorf("error unmarshaling JSON: %w", err)
	}

	return streamsResponse.Streams, nil
}

// BuildFetchStreamInfo builds the HTTP request for fetching a specific stream's information
func BuildFetchStreamInfo(ctx *context.Context, streamIDOrName string) (*http.Request, error) {
	serverURL, err := context.GetServerURL(ctx)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequest("GET", fmt.Sprintf("%s/api/streams/%s", serverURL, streamIDOrName), nil)
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	return req, nil
}

// FetchStreamInfo retrieves information for a specific stream from the API
func FetchStreamInfo(ctx *context.Context, streamIDOrName string) (*models.Stream, error) {
	if streamIDOrName == "" {
		return nil, NewValidationError("stream is required", nil)
	}

	statusCode, body, err := doRequest(func() (*http.Request, error) {
		return BuildFetchStreamInfo(ctx, streamIDOrName)
	})
	if err != nil {
		return nil, err
	}

	if statusCode != http.StatusOK {
		return nil, ParseAPIError(statusCode, string(body))
	}

	var stream models.Stream
	err = json.Unmarshal(body, &stream)
	if err != nil {
		return nil, fmt.Errorf("error unmarshaling JSON: %w", err)
	}

	return &stream, nil
}

// BuildAddStream builds the HTTP request for adding a new stream
func BuildAddStream(ctx *context.Context, name string, options *StreamCreateOptions) (*http.Request, error) {
	serverURL, err := context.GetServerURL(ctx)
	if err != nil {
		return nil, err
	}

	requestBody := struct {
		Name string `json:"name"`
		*StreamCreateOptions
	}{Name: name}
	if options != nil {
		requestBody.StreamCreateOptions = options
	}

	jsonBody, err := json.Marshal(requestBody)
	if err != nil {
		return nil, fmt.Errorf("error marshaling JSON: %w", err)
	}

	req, err := http.NewRequest("POST", serverURL+"/api/streams", bytes.NewBuffer(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	return req, nil
}

// AddStream creates a new stream with the given name and options
func AddStream(ctx *context.Context, name string, options *StreamCreateOptions) (*models.Stream, error) {
	if name == "" {
		return nil, NewValidationError("stream name is required", nil)
	}

	statusCode, body, err := doRequest(func() (*http.Request, error) {
		return BuildAddStream(ctx, name, options)
	})
	if err != nil {
		return nil, err
	}

	if statusCode != http.StatusOK {
		return nil, ParseAPIError(statusCode, string(body))
	}

	var stream models.Stream
	err = json.Unmarshal(body, &stream)
	if err != nil {
		return nil, fmt.Errorf("error unmarshaling JSON: %w", err)
	}

	return &stream, nil
}

// BuildRemoveStream builds the HTTP request for removing a stream
func BuildRemoveStream(ctx *context.Context, streamIDOrName string) (*http.Request, error) {
	serverURL, err := context.GetServerURL(ctx)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequest("DELETE", fmt.Sprintf("%s/api/streams/%s", serverURL, streamIDOrName), nil)
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}

	return req, nil
}

// RemoveStream deletes a stream by ID or name and returns the server's
// confirmation.
func RemoveStream(ctx *context.Context, streamIDOrName string) (*DeleteStreamResponse, error) {
	if streamIDOrName == "" {
		return nil, NewValidationError("stream is required", nil)
	}

	statusCode, body, err := doRequest(func() (*http.Request, error) {
		return BuildRemoveStream(ctx, streamIDOrName)
	})
	if err != nil {
		return nil, err
	}

	if !statusSuccess(statusCode) {
		return nil, ParseAPIError(statusCode, string(body))
	}

	deleted := DeleteStreamResponse{ID: streamIDOrName, Deleted: true}
	if len(body) > 0 {
		if err := json.Unmarshal(body, &deleted); err != nil {
			return nil, fmt.Errorf("error unmarshaling JSON: %w", err)
		}
	}

	return &deleted, nil
}
