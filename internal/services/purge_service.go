package services

import (
	"log"
	"sync"
	"time"

	"accountd/internal/models"
	"accountd/internal/repositories"
)

// PurgeService performs the marked-for-deletion -> deleted transition out of
// band. The durable record is the user row itself (flag + purge_after);
// in-process timers are rebuilt from it on startup, so a restart never loses
// a pending purge. The original request's response cycle is long over by the
// time a purge runs, so outcomes are only logged.
type PurgeService struct {
	users repositories.UserRepository
	liked repositories.LikedItemRepository
	delay time.Duration

	mu     sync.Mutex
	timers map[int]*time.Timer
}

func NewPurgeService(users repositories.UserRepository, liked repositories.LikedItemRepository, delay time.Duration) *PurgeService {
	return &PurgeService{
		users:  users,
		liked:  liked,
		delay:  delay,
		timers: make(map[int]*time.Timer),
	}
}

// Schedule arms a one-shot purge for the user. Scheduling the same user
// again replaces the pending timer, so the operation is idempotent.
func (s *PurgeService) Schedule(user *models.User) {
	wait := s.delay
	if user.PurgeAfter != nil {
		wait = time.Until(*user.PurgeAfter)
	}
	if wait < 0 {
		wait = 0
	}

	id, email := user.ID, user.Email

	s.mu.Lock()
	defer s.mu.Unlock()
	if t, ok := s.timers[id]; ok {
		t.Stop()
	}
	s.timers[id] = time.AfterFunc(wait, func() {
		s.run(id, email)
	})
	log.Printf("[purge] scheduled userID=%d in %s", id, wait.Truncate(time.Second))
}

// Cancel stops a pending purge. It reports whether a timer was armed.
func (s *PurgeService) Cancel(id int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.timers[id]
	if !ok {
		return false
	}
	t.Stop()
	delete(s.timers, id)
	return true
}

// Rescan re-arms purges for every user still marked in the store. Called on
// startup so purges survive restarts.
func (s *PurgeService) Rescan() error {
	users, err := s.users.ListMarkedForDeletion()
	if err != nil {
		return err
	}
	for _, u := range users {
		s.Schedule(u)
	}
	if len(users) > 0 {
		log.Printf("[purge] rescheduled %d pending deletion(s)", len(users))
	}
	return nil
}

// Stop disarms all pending timers. Rows stay marked, so the next Rescan
// picks them up again.
func (s *PurgeService) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, t := range s.timers {
		t.Stop()
		delete(s.timers, id)
	}
}

func (s *PurgeService) run(id int, email string) {
	s.mu.Lock()
	delete(s.timers, id)
	s.mu.Unlock()

	// Re-check the flag so a purge fired against a stale schedule is a no-op.
	user, err := s.users.GetByID(id)
	if err != nil {
		log.Printf("[purge] userID=%d lookup failed: %v", id, err)
		return
	}
	if user == nil || !user.MarkedForDeletion {
		log.Printf("[purge] userID=%d no longer marked, skipping", id)
		return
	}

	if err := s.liked.DeleteByEmail(email); err != nil {
		log.Printf("[purge] userID=%d liked items cleanup failed: %v", id, err)
		return
	}
	if err := s.users.Delete(id); err != nil {
		log.Printf("[purge] userID=%d delete failed: %v", id, err)
		return
	}
	log.Printf("[purge] userID=%d permanently removed", id)
}
