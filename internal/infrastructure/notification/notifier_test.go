package notification

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/turtacn/molsketch/internal/domain/sketch"
	"github.com/turtacn/molsketch/internal/infrastructure/messaging/kafka"
	"github.com/turtacn/molsketch/internal/testutil"
)

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) Publish(ctx context.Context, msg *kafka.Message) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

func (m *mockPublisher) Close() error {
	return m.Called().Error(0)
}

func sampleEvent() sketch.ChangeEvent {
	doc := sketch.NewDocument(
		[]sketch.Atom{{ID: 1, Element: sketch.Carbon}, {ID: 2, Element: sketch.Oxygen}},
		[]sketch.Bond{{ID: 3, Source: 1, Target: 2, Order: sketch.SingleBond}},
	)
	return sketch.ChangeEvent{
		SessionID:  "sess-1",
		Revision:   7,
		Effect:     sketch.EffectBondAdded.String(),
		Document:   doc,
		Notation:   "CO",
		OccurredAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}
}

func TestKafkaNotifier_PublishesKeyedMessage(t *testing.T) {
	pub := new(mockPublisher)
	n := NewKafkaNotifier(pub, "molsketch.structure-changes")
	ev := sampleEvent()

	pub.On("Publish", mock.Anything, mock.MatchedBy(func(msg *kafka.Message) bool {
		var decoded sketch.ChangeEvent
		if err := json.Unmarshal(msg.Value, &decoded); err != nil {
			return false
		}
		return msg.Topic == "molsketch.structure-changes" &&
			string(msg.Key) == "sess-1" &&
			msg.Headers["event_type"] == "sketch.structure_changed" &&
			msg.Headers["effect"] == "bond_added" &&
			msg.Timestamp.Equal(ev.OccurredAt) &&
			decoded.Notation == "CO" &&
			len(decoded.Document.Nodes) == 2
	})).Return(nil).Once()

	require.NoError(t, n.Notify(context.Background(), ev))
	assert.Equal(t, "kafka", n.Name())
	pub.AssertExpectations(t)
}

func TestKafkaNotifier_PropagatesErrors(t *testing.T) {
	pub := new(mockPublisher)
	pub.On("Publish", mock.Anything, mock.Anything).Return(errors.New("broker down"))
	pub.On("Close").Return(nil)

	n := NewKafkaNotifier(pub, "t")
	assert.EqualError(t, n.Notify(context.Background(), sampleEvent()), "broker down")
	assert.NoError(t, n.Close())
	pub.AssertExpectations(t)
}

func TestLogNotifier_LogsEvent(t *testing.T) {
	logger := testutil.NewMockLogger()
	n := NewLogNotifier(logger)

	require.NoError(t, n.Notify(context.Background(), sampleEvent()))
	msg, ok := logger.Find("info", "Structure changed")
	require.True(t, ok)

	smiles, _ := msg.Field("smiles")
	assert.Equal(t, "CO", smiles)
	atoms, _ := msg.Field("atoms")
	assert.Equal(t, 2, atoms)
	revision, _ := msg.Field("revision")
	assert.Equal(t, int64(7), revision)

	assert.Equal(t, "log", n.Name())
	assert.NoError(t, n.Close())
}

//Personal.AI order the ending
