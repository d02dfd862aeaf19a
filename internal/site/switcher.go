package site

import (
	"sync"

	"acf/localization/internal/domain"

	log "github.com/sirupsen/logrus"
)

// Switcher tracks the site whose tables database reads are scoped to.
// Switch pushes the current site before changing it and Restore pops it,
// so nested switches unwind in order.
type Switcher interface {
	Current() domain.BlogID
	Switch(blogID domain.BlogID)
	Restore() bool
}

type stackSwitcher struct {
	mutex   sync.Mutex
	current domain.BlogID
	stack   []domain.BlogID
}

func NewSwitcher(initial domain.BlogID) Switcher {
	return &stackSwitcher{
		current: initial,
		stack:   make([]domain.BlogID, 0, 2),
	}
}

func (s *stackSwitcher) Current() domain.BlogID {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	return s.current
}

func (s *stackSwitcher) Switch(blogID domain.BlogID) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.stack = append(s.stack, s.current)
	s.current = blogID
	log.Debugf("Switched to blog %d", blogID)
}

// Restore returns to the site active before the last Switch. It reports
// false when there is nothing to restore.
func (s *stackSwitcher) Restore() bool {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if len(s.stack) == 0 {
		return false
	}

	s.current = s.stack[len(s.stack)-1]
	s.stack = s.stack[:len(s.stack)-1]
	log.Debugf("Restored blog %d", s.current)
	return true
}

// Enter switches to blogID unless it is already current and returns a
// release func undoing the switch. Callers defer the release.
func Enter(s Switcher, blogID domain.BlogID) (release func()) {
	if s.Current() == blogID {
		return func() {}
	}

	s.Switch(blogID)
	var once sync.Once
	return func() {
		once.Do(func() { s.Restore() })
	}
}
