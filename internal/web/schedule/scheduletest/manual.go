// Package scheduletest fornece um relógio virtual para testar transições agendadas.
package scheduletest

import (
	"sort"
	"sync"
	"time"

	"github.com/radieske/match-predictor/internal/web/schedule"
)

var _ schedule.Scheduler = (*Manual)(nil)

// Manual é um Scheduler de relógio virtual; o tempo só avança via Advance
type Manual struct {
	mu    sync.Mutex
	now   time.Duration
	seq   int
	tasks map[string]task
}

type task struct {
	due time.Duration
	seq int
	fn  func()
}

func NewManual() *Manual { return &Manual{tasks: make(map[string]task)} }

func (m *Manual) After(key string, d time.Duration, fn func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	m.tasks[key] = task{due: m.now + d, seq: m.seq, fn: fn}
}

func (m *Manual) Cancel(key string) {
	m.mu.Lock()
	delete(m.tasks, key)
	m.mu.Unlock()
}

// Pending lista as chaves pendentes em ordem de disparo
func (m *Manual) Pending() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.orderedLocked()
}

// Advance move o relógio e executa, em ordem, tudo que venceu (inclusive o que
// for agendado pelas próprias tarefas dentro da janela)
func (m *Manual) Advance(d time.Duration) {
	m.mu.Lock()
	m.now += d
	for {
		keys := m.orderedLocked()
		if len(keys) == 0 || m.tasks[keys[0]].due > m.now {
			break
		}
		tk := m.tasks[keys[0]]
		delete(m.tasks, keys[0])
		m.mu.Unlock()
		tk.fn()
		m.mu.Lock()
	}
	m.mu.Unlock()
}

func (m *Manual) orderedLocked() []string {
	keys := make([]string, 0, len(m.tasks))
	for k := range m.tasks {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		a, b := m.tasks[keys[i]], m.tasks[keys[j]]
		if a.due != b.due {
			return a.due < b.due
		}
		return a.seq < b.seq
	})
	return keys
}
