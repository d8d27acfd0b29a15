package store

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"
)

// Records layers JSON values over a Gateway with the app's failure policy:
// a value that cannot be decoded is dropped and its key removed, and failed
// writes are logged and otherwise ignored. Callers never see an error.
type Records struct {
	gw  Gateway
	log *zap.Logger
}

// NewRecords wraps gw. A nil logger is replaced with a no-op logger.
func NewRecords(gw Gateway, log *zap.Logger) *Records {
	if log == nil {
		log = zap.NewNop()
	}
	return &Records{gw: gw, log: log}
}

// Gateway returns the wrapped gateway.
func (r *Records) Gateway() Gateway { return r.gw }

// Load decodes the JSON value under key into v. It reports false when the key
// is missing, unreadable, or corrupt; in the corrupt case the key is deleted.
func (r *Records) Load(ctx context.Context, key string, v any) bool {
	data, ok, err := r.gw.Get(ctx, key)
	if err != nil {
		r.log.Error("read failed", zap.String("key", key), zap.Error(err))
		return false
	}
	if !ok {
		return false
	}
	if err := json.Unmarshal(data, v); err != nil {
		r.log.Warn("dropping corrupt record", zap.String("key", key), zap.Error(err))
		r.Remove(ctx, key)
		return false
	}
	return true
}

// Save encodes v as JSON under key.
func (r *Records) Save(ctx context.Context, key string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		r.log.Error("encode failed", zap.String("key", key), zap.Error(err))
		return
	}
	if err := r.gw.Set(ctx, key, data); err != nil {
		r.log.Error("write failed", zap.String("key", key), zap.Error(err))
	}
}

// LoadString returns the raw string stored under key.
func (r *Records) LoadString(ctx context.Context, key string) (string, bool) {
	data, ok, err := r.gw.Get(ctx, key)
	if err != nil {
		r.log.Error("read failed", zap.String("key", key), zap.Error(err))
		return "", false
	}
	if !ok {
		return "", false
	}
	return string(data), true
}

// SaveString stores s verbatim under key.
func (r *Records) SaveString(ctx context.Context, key, s string) {
	if err := r.gw.Set(ctx, key, []byte(s)); err != nil {
		r.log.Error("write failed", zap.String("key", key), zap.Error(err))
	}
}

// Remove deletes keys.
func (r *Records) Remove(ctx context.Context, keys ...string) {
	if err := r.gw.Delete(ctx, keys...); err != nil {
		r.log.Error("delete failed", zap.Strings("keys", keys), zap.Error(err))
	}
}

// Keys lists keys with the given prefix; errors yield an empty list.
func (r *Records) Keys(ctx context.Context, prefix string) []string {
	keys, err := r.gw.Keys(ctx, prefix)
	if err != nil {
		r.log.Error("list failed", zap.String("prefix", prefix), zap.Error(err))
		return nil
	}
	return keys
}
