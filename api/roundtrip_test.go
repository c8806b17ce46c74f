package api

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestRoundTrip walks the full lifecycle: create stream, create consumer
// with a filter, publish a matching message, receive it, ack it, then
// tear everything down.
func TestRoundTrip(t *testing.T) {
	ts := newTestServer(t)
	ctx := ts.context()

	stream, err := AddStream(ctx, "roundtrip", nil)
	require.NoError(t, err)

	consumer, err := AddConsumer(ctx, ConsumerCreateOptions{
		StreamID:         stream.ID,
		Name:             "roundtrip-consumer",
		FilterKeyPattern: "test.>",
	})
	require.NoError(t, err)

	published, err := PublishMessages(ctx, stream.ID, []MessagePayload{{Key: "test.1", Data: "hello"}})
	require.NoError(t, err)
	assert.Equal(t, 1, published)

	received, err := ReceiveMessages(ctx, stream.ID, consumer.ID, 0)
	require.NoError(t, err)
	require.Len(t, received, 1)
	assert.Equal(t, "test.1", received[0].Message.Key)
	assert.Equal(t, "hello", received[0].Message.Data)
	require.NotEmpty(t, received[0].AckID)

	require.NoError(t, AckMessages(ctx, stream.ID, consumer.ID, []string{received[0].AckID}))

	// Nothing left to receive once acked.
	received, err = ReceiveMessages(ctx, stream.ID, consumer.ID, 0)
	require.NoError(t, err)
	assert.Empty(t, received)

	require.NoError(t, RemoveConsumer(ctx, stream.ID, consumer.ID))

	deleted, err := RemoveStream(ctx, stream.ID)
	require.NoError(t, err)
	assert.True(t, deleted.Deleted)
	assert.Equal(t, stream.ID, deleted.ID)
}
