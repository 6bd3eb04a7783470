// Package theme persiste a preferência claro/escuro da sessão.
package theme

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/radieske/match-predictor/internal/shared/logger"
	"github.com/radieske/match-predictor/internal/web/storage"
	"github.com/radieske/match-predictor/internal/web/view"
)

type Theme string

const (
	Light Theme = "light"
	Dark  Theme = "dark"
)

// Key é a chave durável do tema
const Key = "theme"

// Parse lê o valor persistido; qualquer coisa diferente de "dark" vale como claro
func Parse(s string) Theme {
	if s == string(Dark) {
		return Dark
	}
	return Light
}

// Opposite inverte o tema
func (t Theme) Opposite() Theme {
	if t == Dark {
		return Light
	}
	return Dark
}

// Icon indica o próximo estado: sol quando escuro está ativo, lua quando claro
func (t Theme) Icon() string {
	if t == Dark {
		return "fas fa-sun"
	}
	return "fas fa-moon"
}

// Ops aplica o tema no documento
func (t Theme) Ops() []view.Op { return view.ThemeOps(string(t), t.Icon()) }

// Repository é a fronteira de persistência do tema
type Repository interface {
	Load(ctx context.Context, sessionID string) (Theme, error)
	Save(ctx context.Context, sessionID string, t Theme) error
}

// KVRepository guarda o tema como string simples sob "session:{sid}:theme"
type KVRepository struct{ KV storage.KV }

func NewKVRepository(kv storage.KV) *KVRepository { return &KVRepository{KV: kv} }

func (r *KVRepository) Load(ctx context.Context, sessionID string) (Theme, error) {
	v, err := r.KV.Get(ctx, storage.SessionKey(sessionID, Key))
	if errors.Is(err, storage.ErrNotFound) {
		return Light, nil
	}
	if err != nil {
		return Light, err
	}
	return Parse(v), nil
}

func (r *KVRepository) Save(ctx context.Context, sessionID string, t Theme) error {
	return r.KV.Set(ctx, storage.SessionKey(sessionID, Key), string(t))
}

// Store lê, alterna e aplica o tema
type Store struct {
	Repo Repository
	Sink view.Sink
	Log  *zap.Logger
}

func NewStore(repo Repository, sink view.Sink, log *zap.Logger) *Store {
	if sink == nil {
		sink = view.Discard{}
	}
	return &Store{Repo: repo, Sink: sink, Log: logger.Named(log, "theme")}
}

// Get devolve o tema salvo, claro por padrão (inclusive se o backend falhar)
func (s *Store) Get(ctx context.Context, sessionID string) Theme {
	t, err := s.Repo.Load(ctx, sessionID)
	if err != nil {
		s.Log.Warn("theme load failed", zap.String("session", sessionID), zap.Error(err))
		return Light
	}
	return t
}

// Apply envia o tema atual para o adaptador (inicialização da página)
func (s *Store) Apply(ctx context.Context, sessionID string) Theme {
	t := s.Get(ctx, sessionID)
	s.Sink.Push(sessionID, t.Ops()...)
	return t
}

// Toggle persiste o tema oposto e atualiza documento e ícone
func (s *Store) Toggle(ctx context.Context, sessionID string) (Theme, error) {
	next := s.Get(ctx, sessionID).Opposite()
	if err := s.Repo.Save(ctx, sessionID, next); err != nil {
		return s.Get(ctx, sessionID), err
	}
	s.Sink.Push(sessionID, next.Ops()...)
	return next, nil
}
