package graph

import (
	"context"
	"maps"
	"sync"
)

// MemoryClient is an in-memory Client for exercising repository logic
// without a running graph database. Canned results are registered per
// Cypher statement and served in the order they were added.
type MemoryClient struct {
	mu           sync.Mutex
	readCalls    []ExecutedQuery
	results      map[string][]Result
	err          error
	connectivity error
	closed       bool
}

// ExecutedQuery captures a cypher statement and parameters executed against the graph.
type ExecutedQuery struct {
	Query  string
	Params map[string]any
}

// NewMemoryClient instantiates an empty in-memory client.
func NewMemoryClient() *MemoryClient {
	return &MemoryClient{results: make(map[string][]Result)}
}

// WithError configures the client to return the provided error for subsequent reads.
func (m *MemoryClient) WithError(err error) *MemoryClient {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
	return m
}

// WithConnectivityError forces VerifyConnectivity to return the supplied error.
func (m *MemoryClient) WithConnectivityError(err error) *MemoryClient {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.connectivity = err
	return m
}

// On queues res as the next answer to cypher. Statements with no queued
// result answer with an empty Result.
func (m *MemoryClient) On(cypher string, res Result) *MemoryClient {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.results[cypher] = append(m.results[cypher], res)
	return m
}

func (m *MemoryClient) ExecuteRead(ctx context.Context, cypher string, params map[string]any) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.err != nil {
		return Result{}, m.err
	}

	m.readCalls = append(m.readCalls, ExecutedQuery{
		Query:  cypher,
		Params: maps.Clone(params),
	})

	queued := m.results[cypher]
	if len(queued) == 0 {
		return Result{}, nil
	}
	m.results[cypher] = queued[1:]
	return queued[0], nil
}

func (m *MemoryClient) VerifyConnectivity(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.connectivity
}

func (m *MemoryClient) Close(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

// Closed reports whether Close was called.
func (m *MemoryClient) Closed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}

// ReadCalls returns a snapshot of executed read queries.
func (m *MemoryClient) ReadCalls() []ExecutedQuery {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]ExecutedQuery(nil), m.readCalls...)
}
