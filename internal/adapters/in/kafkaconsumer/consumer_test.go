package kafkaconsumer

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockReader struct{ mock.Mock }

func (m *MockReader) FetchMessage(ctx context.Context) (kafka.Message, error) {
	args := m.Called(ctx)
	msg, _ := args.Get(0).(kafka.Message)
	return msg, args.Error(1)
}

func (m *MockReader) CommitMessages(ctx context.Context, msgs ...kafka.Message) error {
	return m.Called(ctx, msgs).Error(0)
}

func (m *MockReader) Close() error {
	return m.Called().Error(0)
}

func testConsumer(reader messageReader) *Consumer {
	return newConsumer(reader, Config{
		Topic:       OrderChangedTopic,
		GroupID:     "test",
		MaxAttempts: 3,
		Backoff:     time.Millisecond,
	}, slog.New(slog.DiscardHandler))
}

func TestConsume_CommitsAfterHandler(t *testing.T) {
	ctx, cancel := context.WithCancel(t.Context())
	defer cancel()
	reader := new(MockReader)
	msg := kafka.Message{Offset: 7, Value: []byte(`{}`)}
	reader.On("FetchMessage", ctx).Return(msg, nil).Once()
	reader.On("CommitMessages", ctx, []kafka.Message{msg}).Return(nil).Once()
	reader.On("FetchMessage", ctx).Run(func(mock.Arguments) { cancel() }).Return(kafka.Message{}, context.Canceled)

	var handled [][]byte
	err := testConsumer(reader).Consume(ctx, func(_ context.Context, payload []byte) error {
		handled = append(handled, payload)
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, [][]byte{[]byte(`{}`)}, handled)
	reader.AssertExpectations(t)
}

func TestConsume_RetriesTransientFailures(t *testing.T) {
	ctx, cancel := context.WithCancel(t.Context())
	defer cancel()
	reader := new(MockReader)
	msg := kafka.Message{Offset: 1}
	reader.On("FetchMessage", ctx).Return(msg, nil).Once()
	reader.On("CommitMessages", ctx, []kafka.Message{msg}).Return(nil).Once()
	reader.On("FetchMessage", ctx).Run(func(mock.Arguments) { cancel() }).Return(kafka.Message{}, context.Canceled)

	var calls atomic.Int32
	err := testConsumer(reader).Consume(ctx, func(context.Context, []byte) error {
		if calls.Add(1) < 3 {
			return errors.New("database unavailable")
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, int32(3), calls.Load())
	reader.AssertExpectations(t)
}

func TestConsume_PermanentFailureIsNotRetried(t *testing.T) {
	ctx, cancel := context.WithCancel(t.Context())
	defer cancel()
	reader := new(MockReader)
	msg := kafka.Message{Offset: 2}
	reader.On("FetchMessage", ctx).Return(msg, nil).Once()
	reader.On("CommitMessages", ctx, []kafka.Message{msg}).Return(nil).Once()
	reader.On("FetchMessage", ctx).Run(func(mock.Arguments) { cancel() }).Return(kafka.Message{}, context.Canceled)

	var calls atomic.Int32
	err := testConsumer(reader).Consume(ctx, func(context.Context, []byte) error {
		calls.Add(1)
		return Permanent(errors.New("bad payload"))
	})

	require.NoError(t, err)
	assert.Equal(t, int32(1), calls.Load())
	reader.AssertExpectations(t)
}

func TestConsume_ReaderFailureStops(t *testing.T) {
	reader := new(MockReader)
	boom := errors.New("group coordinator not available")
	reader.On("FetchMessage", mock.Anything).Return(kafka.Message{}, boom)

	err := testConsumer(reader).Consume(t.Context(), func(context.Context, []byte) error { return nil })

	require.ErrorIs(t, err, boom)
}
