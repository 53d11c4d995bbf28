package memory

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type auditEvent struct {
	Topic       string
	ExecutionID string
}

func TestQueue(t *testing.T) {
	config := DefaultConfig()
	config.RetryDelay = 10 * time.Millisecond
	queue := NewQueue[auditEvent](config)

	ctx := context.Background()
	payload := auditEvent{Topic: "execution.completed", ExecutionID: "exec-1"}

	err := queue.Publish(ctx, &payload)
	assert.NoError(t, err)
	assert.Equal(t, 1, queue.Size())

	message, err := queue.Consume(ctx)
	assert.NoError(t, err)
	assert.NotNil(t, message)
	assert.Equal(t, 0, queue.Size())

	msgData := message.T()
	assert.Equal(t, payload.Topic, msgData.Topic)
	assert.Equal(t, payload.ExecutionID, msgData.ExecutionID)

	err = message.Ack()
	assert.NoError(t, err)

	// Double ack should error.
	err = message.Ack()
	assert.Error(t, err)
}

func TestQueueRetries(t *testing.T) {
	config := DefaultConfig()
	config.MaxRetries = 1
	config.RetryDelay = 10 * time.Millisecond
	queue := NewQueue[auditEvent](config)

	ctx := context.Background()
	payload := auditEvent{Topic: "execution.failed", ExecutionID: "exec-2"}

	err := queue.Publish(ctx, &payload)
	assert.NoError(t, err)

	message, err := queue.Consume(ctx)
	assert.NoError(t, err)
	err = message.Nack(nil)
	assert.NoError(t, err)

	time.Sleep(30 * time.Millisecond)

	// Retried copy arrives once.
	message, err = queue.Consume(ctx)
	assert.NoError(t, err)
	err = message.Nack(nil)
	assert.NoError(t, err)

	time.Sleep(30 * time.Millisecond)

	// Retries exhausted - message lands in the dead letter queue.
	assert.Equal(t, 0, queue.Size())
	assert.Equal(t, 1, queue.DLQSize())
}

func TestQueueConcurrency(t *testing.T) {
	config := DefaultConfig()
	config.RetryDelay = 10 * time.Millisecond
	queue := NewQueue[auditEvent](config)

	ctx := context.Background()
	producers := 5
	messagesPerProducer := 10

	var wg sync.WaitGroup
	wg.Add(producers * 2)

	var consumedCount int
	var consumedMu sync.Mutex

	for i := 0; i < producers; i++ {
		go func() {
			defer wg.Done()
			for j := 0; j < messagesPerProducer; j++ {
				message, err := queue.Consume(ctx)
				if err != nil {
					t.Errorf("consume: %v", err)
					continue
				}
				assert.NoError(t, message.Ack())
				consumedMu.Lock()
				consumedCount++
				consumedMu.Unlock()
			}
		}()
	}

	for i := 0; i < producers; i++ {
		go func(producerID int) {
			defer wg.Done()
			for j := 0; j < messagesPerProducer; j++ {
				payload := auditEvent{
					Topic:       "execution.completed",
					ExecutionID: fmt.Sprintf("p%d-m%d", producerID, j),
				}
				assert.NoError(t, queue.Publish(ctx, &payload))
			}
		}(i)
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("test timed out")
	}

	assert.Equal(t, producers*messagesPerProducer, consumedCount)
	assert.Equal(t, 0, queue.Size())
}

func TestQueueContextCancellation(t *testing.T) {
	queue := NewQueue[auditEvent](DefaultConfig())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	payload := auditEvent{ExecutionID: "exec-3"}
	err := queue.Publish(ctx, &payload)
	assert.Error(t, err)

	ctxWithTimeout, cancelTimeout := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancelTimeout()
	_, err = queue.Consume(ctxWithTimeout)
	assert.Error(t, err)

	// Queue remains usable after cancellation.
	err = queue.Publish(context.Background(), &payload)
	assert.NoError(t, err)
	message, err := queue.Consume(context.Background())
	assert.NoError(t, err)
	assert.NotNil(t, message)
}
