package history

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/radieske/match-predictor/internal/web/storage"
)

// ErrCorrupt indica valor persistido que não é um array JSON de Record
var ErrCorrupt = errors.New("history: corrupt persisted value")

// Repository é a fronteira de persistência; Replace grava a lista inteira
type Repository interface {
	Load(ctx context.Context, sessionID string) ([]Record, error)
	Replace(ctx context.Context, sessionID string, list []Record) error
	Delete(ctx context.Context, sessionID string) error
}

// KVRepository serializa a lista em JSON sob "session:{sid}:predictionHistory"
type KVRepository struct{ KV storage.KV }

func NewKVRepository(kv storage.KV) *KVRepository { return &KVRepository{KV: kv} }

func (r *KVRepository) Load(ctx context.Context, sessionID string) ([]Record, error) {
	raw, err := r.KV.Get(ctx, storage.SessionKey(sessionID, Key))
	if errors.Is(err, storage.ErrNotFound) || (err == nil && raw == "") {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var list []Record
	if err := json.Unmarshal([]byte(raw), &list); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	return list, nil
}

func (r *KVRepository) Replace(ctx context.Context, sessionID string, list []Record) error {
	if list == nil {
		list = []Record{}
	}
	b, err := json.Marshal(list)
	if err != nil {
		return err
	}
	return r.KV.Set(ctx, storage.SessionKey(sessionID, Key), string(b))
}

func (r *KVRepository) Delete(ctx context.Context, sessionID string) error {
	return r.KV.Delete(ctx, storage.SessionKey(sessionID, Key))
}
