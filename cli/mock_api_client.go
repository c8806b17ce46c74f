package cli

import (
	"github.com/sequinstream/sequin-go/api"
	"github.com/sequinstream/sequin-go/context"
	"github.com/sequinstream/sequin-go/models"
)

type MockAPIClient struct {
	FetchStreamsFunc      func(ctx *context.Context) ([]models.Stream, error)
	FetchStreamInfoFunc   func(ctx *context.Context, streamIDOrName string) (*models.Stream, error)
	AddStreamFunc         func(ctx *context.Context, name string, options *api.StreamCreateOptions) (*models.Stream, error)
	RemoveStreamFunc      func(ctx *context.Context, streamIDOrName string) (*api.DeleteStreamResponse, error)
	PublishMessageFunc    func(ctx *context.Context, streamIDOrName, key, data string) error
	PublishMessagesFunc   func(ctx *context.Context, streamIDOrName string, messages []api.MessagePayload) (int, error)
	FetchConsumersFunc    func(ctx *context.Context, streamIDOrName string) ([]models.Consumer, error)
	FetchConsumerInfoFunc func(ctx *context.Context, streamIDOrName, consumerIDOrName string) (*models.Consumer, error)
	AddConsumerFunc       func(ctx *context.Context, options api.ConsumerCreateOptions) (*models.Consumer, error)
	RemoveConsumerFunc    func(ctx *context.Context, streamIDOrName, consumerIDOrName string) error
	ReceiveMessageFunc    func(ctx *context.Context, streamIDOrName, consumerIDOrName string) (*models.MessageWithAckID, error)
	ReceiveMessagesFunc   func(ctx *context.Context, streamIDOrName, consumerIDOrName string, batchSize int) ([]models.MessageWithAckID, error)
	AckMessageFunc        func(ctx *context.Context, streamIDOrName, consumerIDOrName, ackID string) error
	AckMessagesFunc       func(ctx *context.Context, streamIDOrName, consumerIDOrName string, ackIDs []string) error
	NackMessageFunc       func(ctx *context.Context, streamIDOrName, consumerIDOrName, ackID string) error
	NackMessagesFunc      func(ctx *context.Context, streamIDOrName, consumerIDOrName string, ackIDs []string) error
}

var _ api.API = (*MockAPIClient)(nil)

func (m *MockAPIClient) FetchStreams(ctx *context.Context) ([]models.Stream, error) {
	return m.FetchStreamsFunc(ctx)
}

func (m *MockAPIClient) FetchStreamInfo(ctx *context.Context, streamIDOrName string) (*models.Stream, error) {
	return m.FetchStreamInfoFunc(ctx, streamIDOrName)
}

func (m *MockAPIClient) AddStream(ctx *context.Context, name string, options *api.StreamCreateOptions) (*models.Stream, error) {
	return m.AddStreamFunc(ctx, name, options)
}

func (m *MockAPIClient) RemoveStream(ctx *context.Context, streamIDOrName string) (*api.DeleteStreamResponse, error) {
	return m.RemoveStreamFunc(ctx, streamIDOrName)
}

func (m *MockAPIClient) PublishMessage(ctx *context.Context, streamIDOrName, key, data string) error {
	return m.PublishMessageFunc(ctx, streamIDOrName, key, data)
}

func (m *MockAPIClient) PublishMessages(ctx *context.Context, streamIDOrName string, messages []api.MessagePayload) (int, error) {
	return m.PublishMessagesFunc(ctx, streamIDOrName, messages)
}

func (m *MockAPIClient) FetchConsumers(ctx *context.Context, streamIDOrName string) ([]models.Consumer, error) {
	return m.FetchConsumersFunc(ctx, streamIDOrName)
}

func (m *MockAPIClient) FetchConsumerInfo(ctx *context.Context, streamIDOrName, consumerIDOrName string) (*models.Consumer, error) {
	return m.FetchConsumerInfoFunc(ctx, streamIDOrName, consumerIDOrName)
}

func (m *MockAPIClient) AddConsumer(ctx *context.Context, options api.ConsumerCreateOptions) (*models.Consumer, error) {
	return m.AddConsumerFunc(ctx, options)
}

func (m *MockAPIClient) RemoveConsumer(ctx *context.Context, streamIDOrName, consumerIDOrName string) error {
	return m.RemoveConsumerFunc(ctx, streamIDOrName, consumerIDOrName)
}

func (m *MockAPIClient) ReceiveMessage(ctx *context.Context, streamIDOrName, consumerIDOrName string) (*models.MessageWithAckID, error) {
	return m.ReceiveMessageFunc(ctx, streamIDOrName, consumerIDOrName)
}

func (m *MockAPIClient) ReceiveMessages(ctx *context.Context, streamIDOrName, consumerIDOrName string, batchSize int) ([]models.MessageWithAckID, error) {
	return m.ReceiveMessagesFunc(ctx, streamIDOrName, consumerIDOrName, batchSize)
}

func (m *MockAPIClient) AckMessage(ctx *context.Context, streamIDOrName, consumerIDOrName, ackID string) error {
	return m.AckMessageFunc(ctx, streamIDOrName, consumerIDOrName, ackID)
}

func (m *MockAPIClient) AckMessages(ctx *context.Context, streamIDOrName, consumerIDOrName string, ackIDs []string) error {
	return m.AckMessagesFunc(ctx, streamIDOrName, consumerIDOrName, ackIDs)
}

func (m *MockAPIClient) NackMessage(ctx *context.Context, streamIDOrName, consumerIDOrName, ackID string) error {
	return m.NackMessageFunc(ctx, streamIDOrName, consumerIDOrName, ackID)
}

func (m *MockAPIClient) NackMessages(ctx *context.Context, streamIDOrName, consumerIDOrName string, ackIDs []string) error {
	return m.NackMessagesFunc(ctx, streamIDOrName, consumerIDOrName, ackIDs)
}
