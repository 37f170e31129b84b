package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	backend "github.com/redis/go-redis/v9"
)

// Source implements ports.SubjectSource by reading one Redis key.
//
// Strings are decoded as JSON when possible and returned verbatim otherwise.
// Hashes become map[string]any, lists and sets become []any, with every
// element decoded the same way. A missing key yields nil so an eventual
// assertion can wait for it to appear.
type Source struct {
	client *backend.Client
	key    string
	prefix string
}

type Option func(*Source)

// WithPrefix prepends prefix to the key.
func WithPrefix(prefix string) Option {
	return func(s *Source) {
		s.prefix = prefix
	}
}

// New creates a source with its own client.
func New(address, password string, db int, key string, opts ...Option) *Source {
	rdb := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(rdb, key, opts...)
}

// NewFromClient creates a source reading key through an existing client.
func NewFromClient(client *backend.Client, key string, opts ...Option) *Source {
	s := &Source{
		client: client,
		key:    key,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Key returns the full Redis key read by the source.
func (s *Source) Key() string {
	return s.prefix + s.key
}

// Fetch reads the current value of the key.
func (s *Source) Fetch(ctx context.Context) (any, error) {
	key := s.Key()
	kind, err := s.client.Type(ctx, key).Result()
	if err != nil {
		return nil, fmt.Errorf("redis type %s: %w", key, err)
	}

	switch kind {
	case "none":
		return nil, nil
	case "string":
		val, err := s.client.Get(ctx, key).Result()
		if errors.Is(err, backend.Nil) {
			return nil, nil
		}
		if err != nil {
			return nil, fmt.Errorf("redis get %s: %w", key, err)
		}
		return decode(val), nil
	case "hash":
		fields, err := s.client.HGetAll(ctx, key).Result()
		if err != nil {
			return nil, fmt.Errorf("redis hgetall %s: %w", key, err)
		}
		out := make(map[string]any, len(fields))
		for k, v := range fields {
			out[k] = decode(v)
		}
		return out, nil
	case "list":
		items, err := s.client.LRange(ctx, key, 0, -1).Result()
		if err != nil {
			return nil, fmt.Errorf("redis lrange %s: %w", key, err)
		}
		return decodeAll(items), nil
	case "set":
		items, err := s.client.SMembers(ctx, key).Result()
		if err != nil {
			return nil, fmt.Errorf("redis smembers %s: %w", key, err)
		}
		return decodeAll(items), nil
	default:
		return nil, fmt.Errorf("redis key %s has unsupported type %q", key, kind)
	}
}

// Close releases the underlying client.
func (s *Source) Close() error {
	return s.client.Close()
}

func decode(raw string) any {
	var v any
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return raw
	}
	return v
}

func decodeAll(items []string) []any {
	out := make([]any, len(items))
	for i, item := range items {
		out[i] = decode(item)
	}
	return out
}
