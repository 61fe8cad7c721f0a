package notify

import (
	"math/rand"
	"sync"
	"time"

	"github.com/lucsky/cuid"

	"github.com/sobande/taskrr/internal/factories"
	"github.com/sobande/taskrr/internal/models"
)

// Store holds the session's classified notifications, newest first. Bridges
// deliver from their own goroutines, so mutations are mutex-guarded. Nothing
// is persisted; the list dies with the session.
type Store struct {
	mu    sync.RWMutex
	items []*models.Notification
	now   func() time.Time
}

func NewStore() *Store {
	return &Store{now: time.Now}
}

// Add classifies a raw payload and prepends the resulting notification.
func (s *Store) Add(p models.NotificationPayload) *models.Notification {
	verdict := Classify(p)

	id := p.ID
	if id == "" {
		id = cuid.New()
	}
	n := &models.Notification{
		ID:        id,
		Type:      verdict.Type,
		Title:     p.Title,
		Message:   p.Body,
		Timestamp: s.now(),
		Priority:  verdict.Priority,
		Data:      p.Data,
	}

	s.mu.Lock()
	s.items = append([]*models.Notification{n}, s.items...)
	s.mu.Unlock()
	return n
}

// AddTest generates one synthetic payload and feeds it through the normal
// add path.
func (s *Store) AddTest() *models.Notification {
	factory := factories.NotificationFactory{Rng: rand.New(rand.NewSource(s.now().UnixNano()))}
	return s.Add(factory.Payload())
}

// List returns a snapshot of the notifications, newest first.
func (s *Store) List() []models.Notification {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Notification, len(s.items))
	for i, n := range s.items {
		out[i] = *n
	}
	return out
}

func (s *Store) Get(id string) (models.Notification, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, n := range s.items {
		if n.ID == id {
			return *n, true
		}
	}
	return models.Notification{}, false
}

func (s *Store) MarkRead(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, n := range s.items {
		if n.ID == id {
			n.Read = true
			return true
		}
	}
	return false
}

func (s *Store) MarkAllRead() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, n := range s.items {
		n.Read = true
	}
}

// Delete removes exactly the notification with the given id, leaving the
// order of the rest unchanged.
func (s *Store) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, n := range s.items {
		if n.ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return true
		}
	}
	return false
}

func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = nil
}

func (s *Store) UnreadCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	count := 0
	for _, n := range s.items {
		if !n.Read {
			count++
		}
	}
	return count
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}
