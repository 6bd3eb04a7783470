// Package storage oferece o armazenamento chave-valor durável usado pelas
// preferências de tema e pelo histórico de previsões.
package storage

import (
	"context"
	"errors"
)

// ErrNotFound indica ausência da chave (equivalente a getItem retornar null)
var ErrNotFound = errors.New("storage: key not found")

// KV é o contrato mínimo de um armazenamento chave-valor string->string
type KV interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	Ping(ctx context.Context) error
}

// SessionKey aplica o escopo da sessão do navegador à chave
func SessionKey(sessionID, key string) string {
	return "session:" + sessionID + ":" + key
}
