package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"

	"github.com/sequinstream/sequin-go/context"
	"github.com/sequinstream/sequin-go/models"
)

// testServer is an in-memory stand-in for the real API, enough to
// exercise every operation the client issues.
type testServer struct {
	mu sync.Mutex

	streams   map[string]*models.Stream    // by ID
	messages  map[string][]models.Message  // stream ID -> messages in seq order
	consumers map[string]*models.Consumer  // by ID
	cursors   map[string]int               // consumer ID -> last delivered seq
	redeliver map[string][]models.Message  // consumer ID -> nacked messages
	pending   map[string]pendingDelivery   // ack ID -> outstanding delivery

	lastReceiveBatchSize int

	srv *httptest.Server
}

type pendingDelivery struct {
	consumerID string
	message    models.Message
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	ts := &testServer{
		streams:   make(map[string]*models.Stream),
		messages:  make(map[string][]models.Message),
		consumers: make(map[string]*models.Consumer),
		cursors:   make(map[string]int),
		redeliver: make(map[string][]models.Message),
		pending:   make(map[string]pendingDelivery),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/streams", ts.handleCreateStream)
	mux.HandleFunc("GET /api/streams", ts.handleListStreams)
	mux.HandleFunc("GET /api/streams/{stream}", ts.handleStreamInfo)
	mux.HandleFunc("DELETE /api/streams/{stream}", ts.handleDeleteStream)
	mux.HandleFunc("POST /api/streams/{stream}/messages", ts.handlePublish)
	mux.HandleFunc("POST /api/streams/{stream}/consumers", ts.handleCreateConsumer)
	mux.HandleFunc("GET /api/streams/{stream}/consumers", ts.handleListConsumers)
	mux.HandleFunc("GET /api/streams/{stream}/consumers/{consumer}", ts.handleConsumerInfo)
	mux.HandleFunc("DELETE /api/streams/{stream}/consumers/{consumer}", ts.handleDeleteConsumer)
	mux.HandleFunc("POST /api/streams/{stream}/consumers/{consumer}/receive", ts.handleReceive)
	mux.HandleFunc("POST /api/streams/{stream}/consumers/{consumer}/ack", ts.handleAck)
	mux.HandleFunc("POST /api/streams/{stream}/consumers/{consumer}/nack", ts.handleNack)

	ts.srv = httptest.NewServer(mux)
	t.Cleanup(ts.srv.Close)

	return ts
}

func (ts *testServer) context() *context.Context {
	return &context.Context{Name: "test", ServerURL: ts.srv.URL}
}

func (ts *testServer) findStream(idOrName string) *models.Stream {
	if s, ok := ts.streams[idOrName]; ok {
		return s
	}
	for _, s := range ts.streams {
		if s.Name == idOrName {
			return s
		}
	}
	return nil
}

func (ts *testServer) findConsumer(streamID, idOrName string) *models.Consumer {
	for _, c := range ts.consumers {
		if c.StreamID != streamID {
			continue
		}
		if c.ID == idOrName || c.Name == idOrName {
			return c
		}
	}
	return nil
}

func writeJSON(w http.ResponseWriter, statusCode int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(v)
}

func writeSummary(w http.ResponseWriter, statusCode int, format string, args ...interface{}) {
	writeJSON(w, statusCode, map[string]string{"summary": fmt.Sprintf(format, args...)})
}

func (ts *testServer) handleCreateStream(w http.ResponseWriter, r *http.Request) {
	ts.mu.Lock()
	defer ts.mu.Unlock()

	var req struct {
		Name             string `json:"name"`
		OneMessagePerKey bool   `json:"one_message_per_key"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Name == "" {
		writeSummary(w, http.StatusUnprocessableEntity, "name is required")
		return
	}

	for _, s := range ts.streams {
		if s.Name == req.Name {
			writeJSON(w, http.StatusUnprocessableEntity, map[string]interface{}{
				"summary":           "validation failed",
				"validation_errors": map[string]interface{}{"name": []string{"has already been taken"}},
			})
			return
		}
	}

	stream := &models.Stream{
		ID:               "stm_" + uuid.NewString(),
		Name:             req.Name,
		AccountID:        "acc_test",
		OneMessagePerKey: req.OneMessagePerKey,
	}
	ts.streams[stream.ID] = stream
	writeJSON(w, http.StatusOK, stream)
}

func (ts *testServer) handleListStreams(w http.ResponseWriter, r *http.Request) {
	ts.mu.Lock()
	defer ts.mu.Unlock()

	streams := []models.Stream{}
	for _, s := range ts.streams {
		streams = append(streams, *s)
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"data": streams})
}

func (ts *testServer) handleStreamInfo(w http.ResponseWriter, r *http.Request) {
	ts.mu.Lock()
	defer ts.mu.Unlock()

	stream := ts.findStream(r.PathValue("stream"))
	if stream == nil {
		writeSummary(w, http.StatusNotFound, "stream not found")
		return
	}
	stream.Stats = models.StreamStats{
		MessageCount:  len(ts.messages[stream.ID]),
		ConsumerCount: len(ts.streamConsumers(stream.ID)),
	}
	writeJSON(w, http.StatusOK, stream)
}

func (ts *testServer) streamConsumers(streamID string) []*models.Consumer {
	var consumers []*models.Consumer
	for _, c := range ts.consumers {
		if c.StreamID == streamID {
			consumers = append(consumers, c)
		}
	}
	return consumers
}

func (ts *testServer) handleDeleteStream(w http.ResponseWriter, r *http.Request) {
	ts.mu.Lock()
	defer ts.mu.Unlock()

	stream := ts.findStream(r.PathValue("stream"))
	if stream == nil {
		writeSummary(w, http.StatusNotFound, "stream not found")
		return
	}

	delete(ts.streams, stream.ID)
	delete(ts.messages, stream.ID)
	writeJSON(w, http.StatusOK, map[string]interface{}{"id": stream.ID, "deleted": true})
}

func (ts *testServer) handlePublish(w http.ResponseWriter, r *http.Request) {
	ts.mu.Lock()
	defer ts.mu.Unlock()

	stream := ts.findStream(r.PathValue("stream"))
	if stream == nil {
		writeSummary(w, http.StatusNotFound, "stream not found")
		return
	}

	var req struct {
		Messages []struct {
			Key  string `json:"key"`
			Data string `json:"data"`
		} `json:"messages"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeSummary(w, http.StatusBadRequest, "invalid body")
		return
	}

	// All-or-nothing: validate the whole batch before appending anything.
	for _, m := range req.Messages {
		if m.Key == "" {
			writeSummary(w, http.StatusUnprocessableEntity, "message key is required")
			return
		}
	}

	seq := len(ts.messages[stream.ID])
	for _, m := range req.Messages {
		seq++
		ts.messages[stream.ID] = append(ts.messages[stream.ID], models.Message{
			Key:      m.Key,
			StreamID: stream.ID,
			Data:     m.Data,
			Seq:      seq,
		})
	}

	writeJSON(w, http.StatusOK, map[string]int{"published": len(req.Messages)})
}

func (ts *testServer) handleCreateConsumer(w http.ResponseWriter, r *http.Request) {
	ts.mu.Lock()
	defer ts.mu.Unlock()

	stream := ts.findStream(r.PathValue("stream"))
	if stream == nil {
		writeSummary(w, http.StatusNotFound, "stream not found")
		return
	}

	var req ConsumerCreateOptions
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Name == "" || req.FilterKeyPattern == "" {
		writeSummary(w, http.StatusUnprocessableEntity, "name and filter_key_pattern are required")
		return
	}

	consumer := &models.Consumer{
		ID:               "cns_" + uuid.NewString(),
		Name:             req.Name,
		StreamID:         stream.ID,
		FilterKeyPattern: req.FilterKeyPattern,
		AckWaitMS:        req.AckWaitMS,
		MaxAckPending:    req.MaxAckPending,
		MaxDeliver:       req.MaxDeliver,
		MaxWaiting:       req.MaxWaiting,
		Status:           "active",
	}
	ts.consumers[consumer.ID] = consumer
	writeJSON(w, http.StatusOK, consumer)
}

func (ts *testServer) handleListConsumers(w http.ResponseWriter, r *http.Request) {
	ts.mu.Lock()
	defer ts.mu.Unlock()

	stream := ts.findStream(r.PathValue("stream"))
	if stream == nil {
		writeSummary(w, http.StatusNotFound, "stream not found")
		return
	}

	consumers := []models.Consumer{}
	for _, c := range ts.streamConsumers(stream.ID) {
		consumers = append(consumers, *c)
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"data": consumers})
}

func (ts *testServer) handleConsumerInfo(w http.ResponseWriter, r *http.Request) {
	ts.mu.Lock()
	defer ts.mu.Unlock()

	stream := ts.findStream(r.PathValue("stream"))
	if stream == nil {
		writeSummary(w, http.StatusNotFound, "stream not found")
		return
	}

	consumer := ts.findConsumer(stream.ID, r.PathValue("consumer"))
	if consumer == nil {
		writeSummary(w, http.StatusNotFound, "consumer not found")
		return
	}
	writeJSON(w, http.StatusOK, consumer)
}

func (ts *testServer) handleDeleteConsumer(w http.ResponseWriter, r *http.Request) {
	ts.mu.Lock()
	defer ts.mu.Unlock()

	stream := ts.findStream(r.PathValue("stream"))
	if stream == nil {
		writeSummary(w, http.StatusNotFound, "stream not found")
		return
	}

	consumer := ts.findConsumer(stream.ID, r.PathValue("consumer"))
	if consumer == nil {
		writeSummary(w, http.StatusNotFound, "consumer not found")
		return
	}

	delete(ts.consumers, consumer.ID)
	delete(ts.cursors, consumer.ID)
	delete(ts.redeliver, consumer.ID)
	w.WriteHeader(http.StatusNoContent)
}

func (ts *testServer) handleReceive(w http.ResponseWriter, r *http.Request) {
	ts.mu.Lock()
	defer ts.mu.Unlock()

	stream := ts.findStream(r.PathValue("stream"))
	if stream == nil {
		writeSummary(w, http.StatusNotFound, "stream not found")
		return
	}

	consumer := ts.findConsumer(stream.ID, r.PathValue("consumer"))
	if consumer == nil {
		writeSummary(w, http.StatusNotFound, "consumer not found")
		return
	}

	var req struct {
		BatchSize int `json:"batch_size"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeSummary(w, http.StatusBadRequest, "invalid body")
		return
	}
	ts.lastReceiveBatchSize = req.BatchSize

	data := []models.MessageWithAckID{}
	deliver := func(msg models.Message) {
		ackID := "ack_" + uuid.NewString()
		ts.pending[ackID] = pendingDelivery{consumerID: consumer.ID, message: msg}
		data = append(data, models.MessageWithAckID{Message: msg, AckID: ackID})
	}

	// Nacked messages go out first.
	for len(ts.redeliver[consumer.ID]) > 0 && len(data) < req.BatchSize {
		msg := ts.redeliver[consumer.ID][0]
		ts.redeliver[consumer.ID] = ts.redeliver[consumer.ID][1:]
		deliver(msg)
	}

	for _, msg := range ts.messages[stream.ID] {
		if len(data) >= req.BatchSize {
			break
		}
		if msg.Seq <= ts.cursors[consumer.ID] {
			continue
		}
		ts.cursors[consumer.ID] = msg.Seq
		if !matchKey(consumer.FilterKeyPattern, msg.Key) {
			continue
		}
		deliver(msg)
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"data": data})
}

func (ts *testServer) handleAck(w http.ResponseWriter, r *http.Request) {
	ts.ackNack(w, r, false)
}

func (ts *testServer) handleNack(w http.ResponseWriter, r *http.Request) {
	ts.ackNack(w, r, true)
}

func (ts *testServer) ackNack(w http.ResponseWriter, r *http.Request, redeliver bool) {
	ts.mu.Lock()
	defer ts.mu.Unlock()

	stream := ts.findStream(r.PathValue("stream"))
	if stream == nil {
		writeSummary(w, http.StatusNotFound, "stream not found")
		return
	}

	consumer := ts.findConsumer(stream.ID, r.PathValue("consumer"))
	if consumer == nil {
		writeSummary(w, http.StatusNotFound, "consumer not found")
		return
	}

	var req struct {
		AckIDs []string `json:"ack_ids"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || len(req.AckIDs) == 0 {
		writeSummary(w, http.StatusBadRequest, "ack_ids are required")
		return
	}

	// All-or-nothing: reject the batch before touching any delivery.
	for _, id := range req.AckIDs {
		delivery, ok := ts.pending[id]
		if !ok || delivery.consumerID != consumer.ID {
			writeSummary(w, http.StatusUnprocessableEntity, "unknown ack_id %s", id)
			return
		}
	}

	for _, id := range req.AckIDs {
		delivery := ts.pending[id]
		delete(ts.pending, id)
		if redeliver {
			ts.redeliver[consumer.ID] = append(ts.redeliver[consumer.ID], delivery.message)
		}
	}

	w.WriteHeader(http.StatusNoContent)
}

// matchKey implements the key filter grammar: tokens split on ".",
// "*" matches one token, ">" matches the remainder.
func matchKey(pattern, key string) bool {
	patternTokens := strings.Split(pattern, ".")
	keyTokens := strings.Split(key, ".")

	for i, pt := range patternTokens {
		if pt == ">" {
			return len(keyTokens) > i
		}
		if i >= len(keyTokens) {
			return false
		}
		if pt != "*" && pt != keyTokens[i] {
			return false
		}
	}

	return len(patternTokens) == len(keyTokens)
}

func (ts *testServer) pendingCount() int {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	return len(ts.pending)
}
