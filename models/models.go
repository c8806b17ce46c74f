package models

// Stream-related structures
type Stream struct {
	ID               string      `json:"id"`
	Name             string      `json:"name"`
	AccountID        string      `json:"account_id"`
	OneMessagePerKey bool        `json:"one_message_per_key"`
	Stats            StreamStats `json:"stats"`
	CreatedAt        Timestamp   `json:"inserted_at"`
	UpdatedAt        Timestamp   `json:"updated_at"`
}

type StreamStats struct {
	ConsumerCount int `json:"consumer_count"`
	MessageCount  int `json:"message_count"`
	StorageSize   int `json:"storage_size"`
}

// Message-related structures
type Message struct {
	Key       string    `json:"key"`
	StreamID  string    `json:"stream_id"`
	Data      string    `json:"data"`
	Seq       int       `json:"seq"`
	CreatedAt Timestamp `json:"inserted_at"`
	UpdatedAt Timestamp `json:"updated_at"`
}

// MessageWithAckID pairs a delivered message with the opaque token that
// ack/nack calls consume. The ack_id identifies one delivery, not the
// message itself, so it lives alongside the message rather than on it.
type MessageWithAckID struct {
	Message Message `json:"message"`
	AckID   string  `json:"ack_id"`
}

// Consumer-related structures
type Consumer struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	StreamID         string    `json:"stream_id"`
	FilterKeyPattern string    `json:"filter_key_pattern"`
	AckWaitMS        int       `json:"ack_wait_ms"`
	MaxAckPending    int       `json:"max_ack_pending"`
	MaxDeliver       int       `json:"max_deliver"`
	MaxWaiting       int       `json:"max_waiting"`
	HttpEndpointID   string    `json:"http_endpoint_id,omitempty"`
	Status           string    `json:"status"`
	CreatedAt        Timestamp `json:"inserted_at"`
	UpdatedAt        Timestamp `json:"updated_at"`
}

// HTTP-related structures
type ConsumerHttpEndpoint struct {
	ID      string            `json:"id"`
	BaseURL string            `json:"base_url"`
	Headers map[string]string `json:"headers"`
}
