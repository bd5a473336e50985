package graph

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordAccessors(t *testing.T) {
	rec := Record{
		"id":     int64(42),
		"name":   "Review",
		"weight": "2.5",
		"count":  int64(3),
		"ratio":  1.25,
		"none":   nil,
		"bad":    []int{1},
	}

	assert.Equal(t, "42", rec.String("id"))
	assert.Equal(t, "Review", rec.String("name"))
	assert.Equal(t, "1.25", rec.String("ratio"))
	assert.Equal(t, "", rec.String("none"))
	assert.Equal(t, "", rec.String("missing"))

	for key, want := range map[string]float64{"weight": 2.5, "count": 3, "ratio": 1.25} {
		got, ok := rec.Float(key)
		require.True(t, ok, key)
		assert.Equal(t, want, got, key)
	}
	for _, key := range []string{"none", "name", "bad", "missing"} {
		_, ok := rec.Float(key)
		assert.False(t, ok, key)
	}

	assert.True(t, rec.IsNull("none"))
	assert.True(t, rec.IsNull("missing"))
	assert.False(t, rec.IsNull("id"))
}

func TestMemoryClient_QueuesPerStatement(t *testing.T) {
	mem := NewMemoryClient().
		On("A", Result{Records: []Record{{"n": int64(1)}}}).
		On("A", Result{Records: []Record{{"n": int64(2)}}}).
		On("B", Result{Records: []Record{{"n": int64(3)}}})
	ctx := context.Background()

	res, err := mem.ExecuteRead(ctx, "B", nil)
	require.NoError(t, err)
	assert.Equal(t, "3", res.Records[0].String("n"))

	res, _ = mem.ExecuteRead(ctx, "A", map[string]any{"k": "v"})
	assert.Equal(t, "1", res.Records[0].String("n"))
	res, _ = mem.ExecuteRead(ctx, "A", nil)
	assert.Equal(t, "2", res.Records[0].String("n"))
	res, _ = mem.ExecuteRead(ctx, "A", nil)
	assert.Empty(t, res.Records)

	calls := mem.ReadCalls()
	require.Len(t, calls, 4)
	assert.Equal(t, "v", calls[1].Params["k"])
}

func TestMemoryClient_ParamsAreCopied(t *testing.T) {
	mem := NewMemoryClient()
	params := map[string]any{"flowId": "flow-1"}

	_, err := mem.ExecuteRead(context.Background(), "Q", params)
	require.NoError(t, err)
	params["flowId"] = "changed"

	assert.Equal(t, "flow-1", mem.ReadCalls()[0].Params["flowId"])
}

func TestMemoryClient_Errors(t *testing.T) {
	boom := errors.New("boom")
	mem := NewMemoryClient().WithError(boom).WithConnectivityError(boom)

	_, err := mem.ExecuteRead(context.Background(), "Q", nil)
	require.ErrorIs(t, err, boom)
	require.ErrorIs(t, mem.VerifyConnectivity(context.Background()), boom)
	assert.Empty(t, mem.ReadCalls())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = NewMemoryClient().ExecuteRead(ctx, "Q", nil)
	require.ErrorIs(t, err, context.Canceled)
}

func TestMemoryClient_Close(t *testing.T) {
	mem := NewMemoryClient()
	require.NoError(t, mem.Close(context.Background()))
	assert.True(t, mem.Closed())
}

func TestNewNeo4jClient_RequiresURI(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	_, err := NewNeo4jClient(ctx, Options{})
	require.ErrorIs(t, err, ErrMissingURI)
}
