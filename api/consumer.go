package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/sequinstream/sequin-go/context"
	"github.com/sequinstream/sequin-go/models"
)

const (
	defaultReceiveBatch = 10
	maxReceiveBatch     = 1000
)

type ConsumersResponse struct {
	Consumers []models.Consumer `json:"data"`
}

type ConsumerCreateOptions struct {
	Name             string `json:"name"`
	StreamID         string `json:"stream_id"`
	FilterKeyPattern string `json:"filter_key_pattern"`
	AckWaitMS        int    `json:"ack_wait_ms,omitempty"`
	MaxAckPending    int    `json:"max_ack_pending,omitempty"`
	MaxDeliver       int    `json:"max_deliver,omitempty"`
	MaxWaiting       int    `json:"max_waiting,omitempty"`
	HttpEndpointID   string `json:"http_endpoint_id,omitempty"`
}

// BuildFetchConsumers builds the HTTP request for fetching consumers
func BuildFetchConsumers(ctx *context.Context, streamIDOrName string) (*http.Request, error) {
	serverURL, err := context.GetServerURL(ctx)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequest("GET", fmt.Sprintf("%s/api/streams/%s/consumers", serverURL, streamIDOrName), nil)
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}

	return req, nil
}

// FetchConsumers retrieves all consumers for a stream from the API
func FetchConsumers(ctx *context.Context, streamIDOrName string) ([]models.Consumer, error) {
	if streamIDOrName == "" {
		return nil, NewValidationError("stream is required", nil)
	}

	statusCode, body, err := doRequest(func() (*http.Request, error) {
		return BuildFetchConsumers(ctx, streamIDOrName)
	})
	if err != nil {
		return nil, err
	}

	if statusCode != http.StatusOK {
		return nil, ParseAPIError(statusCode, string(body))
	}

	var consumersResponse ConsumersResponse
	err = json.Unmarshal(body, &consumersResponse)
	if err != nil {
		return nil, fmt.Errorf("error unmarshaling JSON: %w", err)
	}

	return consumersResponse.Consumers, nil
}

// BuildFetchConsumerInfo builds the HTTP request for fetching consumer info
func BuildFetchConsumerInfo(ctx *context.Context, streamIDOrName, consumerIDOrName string) (*http.Request, error) {
	serverURL, err := context.GetServerURL(ctx)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequest("GET", fmt.Sprintf("%s/api/streams/%s/consumers/%s", serverURL, streamIDOrName, consumerIDOrName), nil)
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}

	return req, nil
}

// FetchConsumerInfo retrieves information for a specific consumer from the API
func FetchConsumerInfo(ctx *context.Context, streamIDOrName, consumerIDOrName string) (*models.Consumer, error) {
	if streamIDOrName == "" || consumerIDOrName == "" {
		return nil, NewValidationError("stream and consumer are required", nil)
	}

	statusCode, body, err := doRequest(func() (*http.Request, error) {
		return BuildFetchConsumerInfo(ctx, streamIDOrName, consumerIDOrName)
	})
	if err != nil {
		return nil, err
	}

	if statusCode != http.StatusOK {
		return nil, ParseAPIError(statusCode, string(body))
	}

	var consumer models.Consumer
	err = json.Unmarshal(body, &consumer)
	if err != nil {
		return nil, fmt.Errorf("error unmarshaling JSON: %w", err)
	}

	return &consumer, nil
}

// BuildAddConsumer builds the HTTP request for adding a new consumer
func BuildAddConsumer(ctx *context.Context, options ConsumerCreateOptions) (*http.Request, error) {
	serverURL, err := context.GetServerURL(ctx)
	if err != nil {
		return nil, err
	}

	jsonBody, err := json.Marshal(options)
	if err != nil {
		return nil, fmt.Errorf("error marshaling JSON: %w", err)
	}

	req, err := http.NewRequest("POST", fmt.Sprintf("%s/api/streams/%s/consumers", serverURL, options.StreamID), bytes.NewBuffer(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	return req, nil
}

// AddConsumer adds a new consumer to a stream
func AddConsumer(ctx *context.Context, options ConsumerCreateOptions) (*models.Consumer, error) {
	if options.StreamID == "" {
		return nil, NewValidationError("stream is required", nil)
	}
	if options.Name == "" {
		return nil, NewValidationError("consumer name is required", nil)
	}
	if options.FilterKeyPattern == "" {
		return nil, NewValidationError("filter key pattern is required", nil)
	}

	statusCode, body, err := doRequest(func() (*http.Request, error) {
		return BuildAddConsumer(ctx, options)
	})
	if err != nil {
		return nil, err
	}

	if statusCode != http.StatusOK {
		return nil, ParseAPIError(statusCode, string(body))
	}

	var consumer models.Consumer
	err = json.Unmarshal(body, &consumer)
	if err != nil {
		return nil, fmt.Errorf("error unmarshaling JSON: %w", err)
	}

	return &consumer, nil
}

// BuildReceiveMessages builds the HTTP request for receiving the next batch of messages
func BuildReceiveMessages(ctx *context.Context, streamIDOrName, consumerIDOrName string, batchSize int) (*http.Request, error) {
	serverURL, err := context.GetServerURL(ctx)
	if err != nil {
		return nil, err
	}

	requestBody := struct {
		BatchSize int `json:"batch_size"`
	}{BatchSize: batchSize}

	jsonBody, err := json.Marshal(requestBody)
	if err != nil {
		return nil, fmt.Errorf("error marshaling JSON: %w", err)
	}

	url := fmt.Sprintf("%s/api/streams/%s/consumers/%s/receive", serverURL, streamIDOrName, consumerIDOrName)
	req, err := http.NewRequest("POST", url, bytes.NewBuffer(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	return req, nil
}

type ReceiveMessagesResponse struct {
	Data []models.MessageWithAckID `json:"data"`
}

// ReceiveMessages retrieves the next batch of messages for a consumer.
// A batch size of zero or less is treated as the default of 10. An empty
// result means no messages were available, not an error.
func ReceiveMessages(ctx *context.Context, streamIDOrName, consumerIDOrName string, batchSize int) ([]models.MessageWithAckID, error) {
	if streamIDOrName == "" || consumerIDOrName == "" {
		return nil, NewValidationError("stream and consumer are required", nil)
	}
	if batchSize <= 0 {
		batchSize = defaultReceiveBatch
	}
	if batchSize > maxReceiveBatch {
		return nil, NewValidationError(
			fmt.Sprintf("batch size %d exceeds maximum of %d", batchSize, maxReceiveBatch), nil)
	}

	size := batchSize
	statusCode, body, err := doRequest(func() (*http.Request, error) {
		return BuildReceiveMessages(ctx, streamIDOrName, consumerIDOrName, size)
	})
	if err != nil {
		return nil, err
	}

	if statusCode != http.StatusOK {
		return nil, ParseAPIError(statusCode, string(body))
	}

	var result ReceiveMessagesResponse
	err = json.Unmarshal(body, &result)
	if err != nil {
		return nil, fmt.Errorf("error unmarshaling JSON: %w", err)
	}

	return result.Data, nil
}

// ReceiveMessage retrieves the next message for a consumer, or nil when
// none is available.
func ReceiveMessage(ctx *context.Context, streamIDOrName, consumerIDOrName string) (*models.MessageWithAckID, error) {
	messages, err := ReceiveMessages(ctx, streamIDOrName, consumerIDOrName, 1)
	if err != nil {
		return nil, err
	}
	if len(messages) == 0 {
		return nil, nil
	}
	return &messages[0], nil
}

// BuildAckMessages builds the HTTP request for acknowledging messages
func BuildAckMessages(ctx *context.Context, streamIDOrName, consumerIDOrName string, ackIDs []string) (*http.Request, error) {
	return buildAckRequest(ctx, streamIDOrName, consumerIDOrName, "ack", ackIDs)
}

// BuildNackMessages builds the HTTP request for negative-acknowledging messages
func BuildNackMessages(ctx *context.Context, streamIDOrName, consumerIDOrName string, ackIDs []string) (*http.Request, error) {
	return buildAckRequest(ctx, streamIDOrName, consumerIDOrName, "nack", ackIDs)
}

func buildAckRequest(ctx *context.Context, streamIDOrName, consumerIDOrName, action string, ackIDs []string) (*http.Request, error) {
	serverURL, err := context.GetServerURL(ctx)
	if err != nil {
		return nil, err
	}

	requestBody := map[string][]string{"ack_ids": ackIDs}
	jsonBody, err := json.Marshal(requestBody)
	if err != nil {
		return nil, fmt.Errorf("error marshaling JSON: %w", err)
	}

	url := fmt.Sprintf("%s/api/streams/%s/consumers/%s/%s", serverURL, streamIDOrName, consumerIDOrName, action)
	req, err := http.NewRequest("POST", url, bytes.NewBuffer(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	return req, nil
}

// AckMessages acknowledges a batch of messages for a consumer. The batch
// is atomic: one invalid ack ID fails the whole batch and nothing is
// acknowledged.
func AckMessages(ctx *context.Context, streamIDOrName, consumerIDOrName string, ackIDs []string) error {
	if err := validateAckArgs(streamIDOrName, consumerIDOrName, ackIDs); err != nil {
		return err
	}

	statusCode, body, err := doRequest(func() (*http.Request, error) {
		return BuildAckMessages(ctx, streamIDOrName, consumerIDOrName, ackIDs)
	})
	if err != nil {
		return err
	}

	if !statusSuccess(statusCode) {
		return ParseAPIError(statusCode, string(body))
	}

	return nil
}

// AckMessage acknowledges a single message for a consumer
func AckMessage(ctx *context.Context, streamIDOrName, consumerIDOrName, ackID string) error {
	return AckMessages(ctx, streamIDOrName, consumerIDOrName, []string{ackID})
}

// NackMessages marks a batch of messages for redelivery. Same atomicity
// contract as AckMessages.
func NackMessages(ctx *context.Context, streamIDOrName, consumerIDOrName string, ackIDs []string) error {
	if err := validateAckArgs(streamIDOrName, consumerIDOrName, ackIDs); err != nil {
		return err
	}

	statusCode, body, err := doRequest(func() (*http.Request, error) {
		return BuildNackMessages(ctx, streamIDOrName, consumerIDOrName, ackIDs)
	})
	if err != nil {
		return err
	}

	if !statusSuccess(statusCode) {
		return ParseAPIError(statusCode, string(body))
	}

	return nil
}

// NackMessage marks a single message for redelivery
func NackMessage(ctx *context.Context, streamIDOrName, consumerIDOrName, ackID string) error {
	return NackMessages(ctx, streamIDOrName, consumerIDOrName, []string{ackID})
}

func validateAckArgs(streamIDOrName, consumerIDOrName string, ackIDs []string) error {
	if streamIDOrName == "" || consumerIDOrName == "" {
		return NewValidationError("stream and consumer are required", nil)
	}
	if len(ackIDs) == 0 {
		return NewValidationError("at least one ack ID is required", nil)
	}
	for i, id := range ackIDs {
		if id == "" {
			return NewValidationError(fmt.Sprintf("ack ID %d is empty", i), nil)
		}
	}
	return nil
}

// BuildRemoveConsumer builds the HTTP request for removing a consumer
func BuildRemoveConsumer(ctx *context.Context, streamIDOrName, consumerIDOrName string) (*http.Request, error) {
	serverURL, err := context.GetServerURL(ctx)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequest("DELETE", fmt.Sprintf("%s/api/streams/%s/consumers/%s", serverURL, streamIDOrName, consumerIDOrName), nil)
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}

	return req, nil
}

// RemoveConsumer removes a consumer from a stream
func RemoveConsumer(ctx *context.Context, streamIDOrName, consumerIDOrName string) error {
	if streamIDOrName == "" || consumerIDOrName == "" {
		return NewValidationError("stream and consumer are required", nil)
	}

	statusCode, body, err := doRequest(func() (*http.Request, error) {
		return BuildRemoveConsumer(ctx, streamIDOrName, consumerIDOrName)
	})
	if err != nil {
		return err
	}

	if !statusSuccess(statusCode) {
		return ParseAPIError(statusCode, string(body))
	}

	return nil
}
