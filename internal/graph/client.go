package graph

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Client is the read-only contract the flow repository needs from the
// underlying graph database.
type Client interface {
	ExecuteRead(ctx context.Context, cypher string, params map[string]any) (Result, error)
	VerifyConnectivity(ctx context.Context) error
	Close(ctx context.Context) error
}

// Result is a simplified representation of a query response.
type Result struct {
	Records []Record
}

// Record groups key-value pairs returned from the graph engine.
type Record map[string]any

// IsNull reports whether key is absent or null.
func (r Record) IsNull(key string) bool {
	return r[key] == nil
}

// String renders the value under key as text. Bolt integers arrive as int64
// and are formatted in base 10; null becomes "".
func (r Record) String(key string) string {
	switch v := r[key].(type) {
	case string:
		return v
	case int64:
		return strconv.FormatInt(v, 10)
	case int:
		return strconv.Itoa(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case []byte:
		return string(v)
	case fmt.Stringer:
		return v.String()
	default:
		return ""
	}
}

// Float returns the numeric value under key. ok is false for null and
// non-numeric values.
func (r Record) Float(key string) (float64, bool) {
	switch v := r[key].(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int64:
		return float64(v), true
	case int:
		return float64(v), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

// Options configures a graph client implementation.
type Options struct {
	URI            string
	Database       string
	Username       string
	Password       string
	MaxConnections int
	// ConnectTimeout bounds establishing each Bolt socket.
	ConnectTimeout time.Duration
}

// ErrMissingURI indicates the graph URI is not provided.
var ErrMissingURI = errors.New("graph URI is required")
