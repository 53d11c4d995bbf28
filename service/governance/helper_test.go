package governance_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/opsfabric/warden/model/decision"
	"github.com/opsfabric/warden/service/governance"
)

func TestAutoApprove(t *testing.T) {
	ctx := context.Background()
	workflow := newWorkflow(t)

	record, err := workflow.Create(ctx, restockInput())
	assert.NoError(t, err)

	stop := governance.AutoApprove(ctx, workflow, 5*time.Millisecond)
	defer stop()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		current, err := workflow.Get(ctx, record.ID)
		assert.NoError(t, err)
		if current.Status == decision.StatusExecuted {
			assert.Equal(t, decision.ActionApprove, current.Resolution())
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("decision was not auto-approved in time")
}

func TestAutoReject(t *testing.T) {
	ctx := context.Background()
	workflow := newWorkflow(t)

	record, err := workflow.Create(ctx, restockInput())
	assert.NoError(t, err)

	stop := governance.AutoReject(ctx, workflow, "outside business hours", 5*time.Millisecond)
	defer stop()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		current, err := workflow.Get(ctx, record.ID)
		assert.NoError(t, err)
		if current.Status == decision.StatusRejected {
			assert.True(t, current.IsTrainingData)
			assert.Equal(t, "outside business hours", current.ManagerFeedback)
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("decision was not auto-rejected in time")
}
