package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/sequinstream/sequin-go/context"
)

// maxPublishBatch is the largest batch the API accepts in one publish.
const maxPublishBatch = 1000

// MessagePayload is one (key, data) pair to publish.
type MessagePayload struct {
	Key  string `json:"key"`
	Data string `json:"data"`
}

// NewJSONMessage builds a MessagePayload whose data is the JSON encoding
// of v, for callers with structured payloads.
func NewJSONMessage(key string, v interface{}) (MessagePayload, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return MessagePayload{}, fmt.Errorf("error marshaling message data: %w", err)
	}
	return MessagePayload{Key: key, Data: string(data)}, nil
}

type PublishResponse struct {
	Published int `json:"published"`
}

// BuildPublishMessages builds the HTTP request for publishing a batch of messages
func BuildPublishMessages(ctx *context.Context, streamIDOrName string, messages []MessagePayload) (*http.Request, error) {
	serverURL, err := context.GetServerURL(ctx)
	if err != nil {
		return nil, err
	}

	requestBody := struct {
		Messages []MessagePayload `json:"messages"`
	}{Messages: messages}

	jsonBody, err := json.Marshal(requestBody)
	if err != nil {
		return nil, fmt.Errorf("error marshaling JSON: %w", err)
	}

	url := fmt.Sprintf("%s/api/streams/%s/messages", serverURL, streamIDOrName)
	req, err := http.NewRequest("POST", url, bytes.NewBuffer(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	return req, nil
}

// PublishMessages publishes a batch of messages to a stream. The publish
// is atomic: either every message is accepted and the returned count
// equals len(messages), or none are.
func PublishMessages(ctx *context.Context, streamIDOrName string, messages []MessagePayload) (int, error) {
	if streamIDOrName == "" {
		return 0, NewValidationError("stream is required", nil)
	}
	if len(messages) == 0 {
		return 0, NewValidationError("at least one message is required", nil)
	}
	if len(messages) > maxPublishBatch {
		return 0, NewValidationError(
			fmt.Sprintf("batch size %d exceeds maximum of %d", len(messages), maxPublishBatch), nil)
	}
	for i, msg := range messages {
		if msg.Key == "" {
			return 0, NewValidationError(fmt.Sprintf("message %d is missing a key", i), nil)
		}
	}

	statusCode, body, err := doRequest(func() (*http.Request, error) {
		return BuildPublishMessages(ctx, streamIDOrName, messages)
	})
	if err != nil {
		return 0, err
	}

	if statusCode != http.StatusOK {
		return 0, ParseAPIError(statusCode, string(body))
	}

	var published PublishResponse
	err = json.Unmarshal(body, &published)
	if err != nil {
		return 0, fmt.Errorf("error unmarshaling JSON: %w", err)
	}

	return published.Published, nil
}

// PublishMessage publishes a single message to a stream
func PublishMessage(ctx *context.Context, streamIDOrName, key, data string) error {
	_, err := PublishMessages(ctx, streamIDOrName, []MessagePayload{{Key: key, Data: data}})
	return err
}
