package handlers_test

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

type memLikedRepo struct{}

func (memLikedRepo) DeleteByEmail(email string) error { return nil }

type noopEmail struct{}

func (noopEmail) SendRegistrationOTP(email, otp, username string) error { return nil }
func (noopEmail) SendDeletionNotice(email, username string) error       { return nil }
