package api

import (
	"github.com/sequinstream/sequin-go/context"
	"github.com/sequinstream/sequin-go/models"
)

// API is the full client surface. CLI commands depend on this interface
// so tests can substitute a mock.
type API interface {
	// Stream methods
	FetchStreams(ctx *context.Context) ([]models.Stream, error)
	FetchStreamInfo(ctx *context.Context, streamIDOrName string) (*models.Stream, error)
	AddStream(ctx *context.Context, name string, options *StreamCreateOptions) (*models.Stream, error)
	RemoveStream(ctx *context.Context, streamIDOrName string) (*DeleteStreamResponse, error)

	// Message methods
	PublishMessage(ctx *context.Context, streamIDOrName, key, data string) error
	PublishMessages(ctx *context.Context, streamIDOrName string, messages []MessagePayload) (int, error)

	// Consumer methods
	FetchConsumers(ctx *context.Context, streamIDOrName string) ([]models.Consumer, error)
	FetchConsumerInfo(ctx *context.Context, streamIDOrName, consumerIDOrName string) (*models.Consumer, error)
	AddConsumer(ctx *context.Context, options ConsumerCreateOptions) (*models.Consumer, error)
	RemoveConsumer(ctx *context.Context, streamIDOrName, consumerIDOrName string) error
	ReceiveMessage(ctx *context.Context, streamIDOrName, consumerIDOrName string) (*models.MessageWithAckID, error)
	ReceiveMessages(ctx *context.Context, streamIDOrName, consumerIDOrName string, batchSize int) ([]models.MessageWithAckID, error)
	AckMessage(ctx *context.Context, streamIDOrName, consumerIDOrName, ackID string) error
	AckMessages(ctx *context.Context, streamIDOrName, consumerIDOrName string, ackIDs []string) error
	NackMessage(ctx *context.Context, streamIDOrName, consumerIDOrName, ackID string) error
	NackMessages(ctx *context.Context, streamIDOrName, consumerIDOrName string, ackIDs []string) error
}
