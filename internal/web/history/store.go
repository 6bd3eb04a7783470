package history

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/radieske/match-predictor/internal/shared/logger"
	"github.com/radieske/match-predictor/internal/web/logo"
	"github.com/radieske/match-predictor/internal/web/view"
)

// ErrNoEntry indica que a linha pedida no replay não está mais na lista
var ErrNoEntry = errors.New("history: no entry at index")

// LogoResolver resolve o visual de um time (implementado por logo.Resolver)
type LogoResolver interface {
	Resolve(ctx context.Context, teamName string) logo.Visual
}

// Store aplica append com descarte, limpeza e renderização completa
type Store struct {
	Repo  Repository
	Logos LogoResolver
	Sink  view.Sink
	Log   *zap.Logger

	// serializa read-modify-write por sessão dentro do processo; a entrada
	// sai do mapa quando ninguém mais a segura
	mu    sync.Mutex
	locks map[string]*sessionLock
}

type sessionLock struct {
	mu   sync.Mutex
	refs int // protegido por Store.mu
}

func NewStore(repo Repository, logos LogoResolver, sink view.Sink, log *zap.Logger) *Store {
	if sink == nil {
		sink = view.Discard{}
	}
	return &Store{
		Repo:  repo,
		Logos: logos,
		Sink:  sink,
		Log:   logger.Named(log, "history"),
		locks: make(map[string]*sessionLock),
	}
}

func (s *Store) lock(sessionID string) func() {
	s.mu.Lock()
	l, ok := s.locks[sessionID]
	if !ok {
		l = &sessionLock{}
		s.locks[sessionID] = l
	}
	l.refs++
	s.mu.Unlock()

	l.mu.Lock()
	return func() {
		l.mu.Unlock()
		s.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(s.locks, sessionID)
		}
		s.mu.Unlock()
	}
}

// heldLocks é usado nos testes
func (s *Store) heldLocks() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.locks)
}

// GetAll devolve a lista, mais recente primeiro. Valor corrompido é tratado
// como lista vazia (e será sobrescrito no próximo Add); falha do backend é erro.
func (s *Store) GetAll(ctx context.Context, sessionID string) ([]Record, error) {
	list, err := s.Repo.Load(ctx, sessionID)
	if errors.Is(err, ErrCorrupt) {
		s.Log.Warn("discarding corrupt history", zap.String("session", sessionID), zap.Error(err))
		return []Record{}, nil
	}
	if err != nil {
		return nil, err
	}
	if list == nil {
		list = []Record{}
	}
	return list, nil
}

// Get devolve o item do índice (0 = mais recente)
func (s *Store) Get(ctx context.Context, sessionID string, index int) (Record, error) {
	return s.Lookup(ctx, sessionID, index, "")
}

// Lookup localiza a linha clicada. O índice é o da renderização que a aba viu;
// se outra aba inseriu itens depois, o timestamp da linha decide. Sem
// timestamp vale só o índice.
func (s *Store) Lookup(ctx context.Context, sessionID string, index int, timestamp string) (Record, error) {
	list, err := s.GetAll(ctx, sessionID)
	if err != nil {
		return Record{}, err
	}
	inRange := index >= 0 && index < len(list)
	if timestamp == "" {
		if !inRange {
			return Record{}, ErrNoEntry
		}
		return list[index], nil
	}
	if inRange && list[index].Timestamp == timestamp {
		return list[index], nil
	}
	for _, r := range list {
		if r.Timestamp == timestamp {
			return r, nil
		}
	}
	return Record{}, ErrNoEntry
}

// Add insere no topo, mantém no máximo MaxEntries, grava e re-renderiza
func (s *Store) Add(ctx context.Context, sessionID string, r Record) error {
	unlock := s.lock(sessionID)
	list, err := s.GetAll(ctx, sessionID)
	if err == nil {
		err = s.Repo.Replace(ctx, sessionID, prepend(list, r))
	}
	unlock()
	if err != nil {
		return err
	}

	_, err = s.Render(ctx, sessionID)
	return err
}

// Clear remove a chave inteira e re-renderiza o placeholder
func (s *Store) Clear(ctx context.Context, sessionID string) error {
	unlock := s.lock(sessionID)
	err := s.Repo.Delete(ctx, sessionID)
	unlock()
	if err != nil {
		return err
	}

	_, err = s.Render(ctx, sessionID)
	return err
}

// Render reconstrói o view-model do zero e o envia ao adaptador
func (s *Store) Render(ctx context.Context, sessionID string) (view.History, error) {
	list, err := s.GetAll(ctx, sessionID)
	if err != nil {
		return view.History{}, err
	}

	h := s.Build(ctx, list)
	s.Sink.Push(sessionID, h.Ops()...)
	return h, nil
}

// Build é a transformação pura lista -> view-model (exceto a sondagem de logos)
func (s *Store) Build(ctx context.Context, list []Record) view.History {
	if len(list) == 0 {
		return view.History{Empty: true, Placeholder: view.EmptyHistoryMessage, Items: []view.HistoryItem{}}
	}

	items := make([]view.HistoryItem, len(list))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for i, r := range list {
		i, r := i, r
		items[i] = view.HistoryItem{
			Index:       i,
			HomeTeam:    r.HomeTeam,
			AwayTeam:    r.AwayTeam,
			Timestamp:   r.Timestamp,
			VS:          "vs",
			Result:      string(r.Result),
			ResultClass: view.ResultClass(string(r.Result)),
		}
		// cada goroutine escreve apenas no próprio item
		g.Go(func() error {
			items[i].HomeLogo = s.resolve(gctx, r.HomeTeam)
			items[i].AwayLogo = s.resolve(gctx, r.AwayTeam)
			return nil
		})
	}
	_ = g.Wait()

	return view.History{Items: items}
}

func (s *Store) resolve(ctx context.Context, team string) logo.Visual {
	if s.Logos == nil {
		return logo.Badge(team)
	}
	return s.Logos.Resolve(ctx, team)
}
