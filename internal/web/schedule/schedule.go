// Package schedule agenda as transições atrasadas da UI. Cada tarefa tem uma
// chave (sessão + elemento); agendar de novo na mesma chave cancela a pendente.
package schedule

import (
	"sync"
	"time"
)

// Scheduler executa fn após d. Uma tarefa não pode agendar nem cancelar a
// própria chave.
type Scheduler interface {
	After(key string, d time.Duration, fn func())
	Cancel(key string)
}

// Key monta a chave de uma tarefa de uma sessão
func Key(sessionID, element string) string { return sessionID + "|" + element }

// slot guarda a tarefa de uma chave. run serializa a execução com After e
// Cancel da mesma chave; gen invalida a tarefa que já disparou mas ainda
// não entrou em run.
type slot struct {
	run   sync.Mutex
	gen   uint64
	timer *time.Timer
	refs  int // tarefa pendente + chamadas em andamento; protegido por Timers.mu
}

// Timers é o Scheduler de produção, baseado em time.AfterFunc. Quando After
// ou Cancel retornam, a tarefa anterior da chave já terminou ou não vai rodar.
type Timers struct {
	mu    sync.Mutex
	slots map[string]*slot
}

func NewTimers() *Timers { return &Timers{slots: make(map[string]*slot)} }

func (s *Timers) After(key string, d time.Duration, fn func()) {
	sl := s.acquire(key) // referência passa a ser da nova tarefa
	sl.run.Lock()
	defer sl.run.Unlock()

	s.stopLocked(key, sl)
	g := sl.gen
	sl.timer = time.AfterFunc(d, func() {
		defer s.release(key, sl)
		sl.run.Lock()
		defer sl.run.Unlock()
		if sl.gen != g {
			return // substituída ou cancelada depois de disparar
		}
		sl.timer = nil
		fn()
	})
}

func (s *Timers) Cancel(key string) {
	s.mu.Lock()
	sl, ok := s.slots[key]
	if ok {
		sl.refs++
	}
	s.mu.Unlock()
	if !ok {
		return
	}

	sl.run.Lock()
	s.stopLocked(key, sl)
	sl.run.Unlock()
	s.release(key, sl)
}

// Pending retorna quantas chaves têm tarefa pendente ou em execução
func (s *Timers) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.slots)
}

// Stop cancela tudo; chamado no shutdown
func (s *Timers) Stop() {
	s.mu.Lock()
	keys := make([]string, 0, len(s.slots))
	for k := range s.slots {
		keys = append(keys, k)
	}
	s.mu.Unlock()

	for _, k := range keys {
		s.Cancel(k)
	}
}

func (s *Timers) acquire(key string) *slot {
	s.mu.Lock()
	defer s.mu.Unlock()
	sl, ok := s.slots[key]
	if !ok {
		sl = &slot{}
		s.slots[key] = sl
	}
	sl.refs++
	return sl
}

// release solta uma referência; o slot sai do mapa quando ninguém mais o usa
func (s *Timers) release(key string, sl *slot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sl.refs--
	if sl.refs == 0 && s.slots[key] == sl {
		delete(s.slots, key)
	}
}

// stopLocked invalida a tarefa atual da chave; exige sl.run
func (s *Timers) stopLocked(key string, sl *slot) {
	sl.gen++
	if sl.timer != nil && sl.timer.Stop() {
		// o callback nunca vai rodar: solta a referência dele
		s.release(key, sl)
	}
	sl.timer = nil
}
