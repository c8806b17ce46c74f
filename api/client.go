package api

import (
	"github.com/sequinstream/sequin-go/context"
	"github.com/sequinstream/sequin-go/models"
)

type Client struct{}

func NewClient() *Client {
	return &Client{}
}

var _ API = (*Client)(nil)

// Implement Stream methods
func (c *Client) FetchStreams(ctx *context.Context) ([]models.Stream, error) {
	return FetchStreams(ctx)
}

func (c *Client) FetchStreamInfo(ctx *context.Context, streamIDOrName string) (*models.Stream, error) {
	return FetchStreamInfo(ctx, streamIDOrName)
}

func (c *Client) AddStream(ctx *context.Context, name string, options *StreamCreateOptions) (*models.Stream, error) {
	return AddStream(ctx, name, options)
}

func (c *Client) RemoveStream(ctx *context.Context, streamIDOrName string) (*DeleteStreamResponse, error) {
	return RemoveStream(ctx, streamIDOrName)
}

// Implement Message methods
func (c *Client) PublishMessage(ctx *context.Context, streamIDOrName, key, data string) error {
	return PublishMessage(ctx, streamIDOrName, key, data)
}

func (c *Client) PublishMessages(ctx *context.Context, streamIDOrName string, messages []MessagePayload) (int, error) {
	return PublishMessages(ctx, streamIDOrName, messages)
}

// Implement Consumer methods
func (c *Client) FetchConsumers(ctx *context.Context, streamIDOrName string) ([]models.Consumer, error) {
	return FetchConsumers(ctx, streamIDOrName)
}

func (c *Client) FetchConsumerInfo(ctx *context.Context, streamIDOrName, consumerIDOrName string) (*models.Consumer, error) {
	return FetchConsumerInfo(ctx, streamIDOrName, consumerIDOrName)
}

func (c *Client) AddConsumer(ctx *context.Context, options ConsumerCreateOptions) (*models.Consumer, error) {
	return AddConsumer(ctx, options)
}

func (c *Client) RemoveConsumer(ctx *context.Context, streamIDOrName, consumerIDOrName string) error {
	return RemoveConsumer(ctx, streamIDOrName, consumerIDOrName)
}

func (c *Client) ReceiveMessage(ctx *context.Context, streamIDOrName, consumerIDOrName string) (*models.MessageWithAckID, error) {
	return ReceiveMessage(ctx, streamIDOrName, consumerIDOrName)
}

func (c *Client) ReceiveMessages(ctx *context.Context, streamIDOrName, consumerIDOrName string, batchSize int) ([]models.MessageWithAckID, error) {
	return ReceiveMessages(ctx, streamIDOrName, consumerIDOrName, batchSize)
}

func (c *Client) AckMessage(ctx *context.Context, streamIDOrName, consumerIDOrName, ackID string) error {
	return AckMessage(ctx, streamIDOrName, consumerIDOrName, ackID)
}

func (c *Client) AckMessages(ctx *context.Context, streamIDOrName, consumerIDOrName string, ackIDs []string) error {
	return AckMessages(ctx, streamIDOrName, consumerIDOrName, ackIDs)
}

func (c *Client) NackMessage(ctx *context.Context, streamIDOrName, consumerIDOrName, ackID string) error {
	return NackMessage(ctx, streamIDOrName, consumerIDOrName, ackID)
}

func (c *Client) NackMessages(ctx *context.Context, streamIDOrName, consumerIDOrName string, ackIDs []string) error {
	return NackMessages(ctx, streamIDOrName, consumerIDOrName, ackIDs)
}
