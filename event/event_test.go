package event

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestMemorySink(t *testing.T) {
	var s MemorySink
	id := uuid.New()

	s.Record(Event{Kind: KindPurchase, ProductID: id, Amount: 10})
	s.Record(Event{Kind: KindPublicized, ProductID: id})
	s.Record(Event{Kind: KindPurchase, ProductID: id, Amount: 10})

	assert.Len(t, s.Events(), 3)
	assert.Len(t, s.ByKind(KindPurchase), 2)
	require.Len(t, s.ByKind(KindPublicized), 1)
	assert.Equal(t, id, s.ByKind(KindPublicized)[0].ProductID)
}

func TestEmit_NilSink(t *testing.T) {
	// Must not panic.
	Emit(nil, Event{Kind: KindPurchase})
}

func TestZapSink(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	s := NewZapSink(zap.New(core))

	id := uuid.New()
	s.Record(Event{Kind: KindCompensationClaimed, ProductID: id, Amount: 5})

	entries := logs.All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, string(KindCompensationClaimed), fields["kind"])
	assert.Equal(t, id.String(), fields["product"])
	assert.Equal(t, uint64(5), fields["amount"])
}
