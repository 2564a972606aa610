package services

import (
	"sync"
	"time"

	"accountd/internal/models"
)

type memUserRepo struct {
	mu   sync.Mutex
	seq  int
	byID map[int]*models.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{byID: make(map[int]*models.User)}
}

func (r *memUserRepo) Create(user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	user.ID = r.seq
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	cp := *user
	r.byID[user.ID] = &cp
	return nil
}

func (r *memUserRepo) GetByID(id int) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *memUserRepo) GetByEmail(email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.byID {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memUserRepo) UpdatePassword(id int, passwordHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.byID[id]; ok {
		u.PasswordHash = passwordHash
	}
	return nil
}

func (r *memUserRepo) UpdateAvatar(id int, avatar string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.byID[id]; ok {
		u.Avatar = avatar
	}
	return nil
}

func (r *memUserRepo) SetVerified(id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.byID[id]; ok {
		u.IsVerified = true
	}
	return nil
}

func (r *memUserRepo) MarkForDeletion(id int, purgeAfter time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.byID[id]; ok {
		u.MarkedForDeletion = true
		t := purgeAfter
		u.PurgeAfter = &t
	}
	return nil
}

func (r *memUserRepo) ListMarkedForDeletion() ([]*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.User
	for _, u := range r.byID {
		if u.MarkedForDeletion {
			cp := *u
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *memUserRepo) Delete(id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.byID, id)
	return nil
}

type memOTPRepo struct {
	mu   sync.Mutex
	seq  int64
	rows []models.OTP
}

func newMemOTPRepo() *memOTPRepo { return &memOTPRepo{} }

func (r *memOTPRepo) Create(email, code string) (*models.OTP, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	otp := models.OTP{ID: r.seq, Email: email, Code: code, CreatedAt: time.Now()}
	r.rows = append(r.rows, otp)
	return &otp, nil
}

func (r *memOTPRepo) GetByEmailAndCode(email, code string) (*models.OTP, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := len(r.rows) - 1; i >= 0; i-- {
		if r.rows[i].Email == email && r.rows[i].Code == code {
			cp := r.rows[i]
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memOTPRepo) DeleteByEmail(email string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	kept := r.rows[:0]
	for _, row := range r.rows {
		if row.Email != email {
			kept = append(kept, row)
		}
	}
	r.rows = kept
	return nil
}

func (r *memOTPRepo) latestFor(email string) (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := len(r.rows) - 1; i >= 0; i-- {
		if r.rows[i].Email == email {
			return r.rows[i].Code, true
		}
	}
	return "", false
}

type memLikedRepo struct {
	mu     sync.Mutex
	counts map[string]int
}

func newMemLikedRepo() *memLikedRepo {
	return &memLikedRepo{counts: make(map[string]int)}
}

func (r *memLikedRepo) DeleteByEmail(email string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.counts, email)
	return nil
}

func (r *memLikedRepo) add(email string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.counts[email]++
}

func (r *memLikedRepo) count(email string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.counts[email]
}

type recordingEmail struct {
	mu       sync.Mutex
	otpSends []string
	notices  []string
}

func (e *recordingEmail) SendRegistrationOTP(email, otp, username string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.otpSends = append(e.otpSends, email)
	return nil
}

func (e *recordingEmail) SendDeletionNotice(email, username string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.notices = append(e.notices, email)
	return nil
}

type recordingScheduler struct {
	mu        sync.Mutex
	scheduled []int
}

func (s *recordingScheduler) Schedule(user *models.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scheduled = append(s.scheduled, user.ID)
}
