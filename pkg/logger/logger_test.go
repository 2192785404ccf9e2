package logger

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type captureInserter struct {
	mu   sync.Mutex
	docs []LogDocument
}

func (c *captureInserter) InsertMany(_ context.Context, documents []interface{}, _ ...*options.InsertManyOptions) (*mongo.InsertManyResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, d := range documents {
		c.docs = append(c.docs, d.(LogDocument))
	}
	return &mongo.InsertManyResult{}, nil
}

func TestMongoHandlerFlushesOnClose(t *testing.T) {
	sink := &captureInserter{}
	h := newMongoHandler(sink, slog.LevelInfo)

	log := slog.New(h).With("request_id", "abc123")
	log.Debug("dropped by level")
	log.Info("order created", "quantity", 2, "err", errors.New("boom"))
	log.WithGroup("item").Warn("image missing", "file", "a.jpg")

	h.Close()
	h.Close()

	require.Len(t, sink.docs, 2)
	first := sink.docs[0]
	assert.Equal(t, "order created", first.Msg)
	assert.Equal(t, "INFO", first.Level)
	assert.Equal(t, "abc123", first.RequestID)
	assert.EqualValues(t, 2, first.Attrs["quantity"])
	assert.Equal(t, "boom", first.Attrs["err"])

	assert.Equal(t, "a.jpg", sink.docs[1].Attrs["item.file"])
}

func TestMultiHandlerFansOut(t *testing.T) {
	var a, b bytes.Buffer
	log := slog.New(NewMultiHandler(
		slog.NewTextHandler(&a, nil),
		slog.NewTextHandler(&b, &slog.HandlerOptions{Level: slog.LevelError}),
	))

	log.Info("hello")
	assert.Contains(t, a.String(), "hello")
	assert.Empty(t, b.String())

	log.Error("bad")
	assert.Contains(t, b.String(), "bad")
}

func TestWithCtxFallsBackToBase(t *testing.T) {
	assert.Same(t, Base(), WithCtx(context.Background()))

	var buf bytes.Buffer
	reqLog := slog.New(slog.NewTextHandler(&buf, nil)).With("request_id", "r1")
	ctx := InjectLogger(context.Background(), reqLog)
	WithCtx(ctx).Info("scoped")

	assert.Contains(t, buf.String(), "request_id=r1")
}
