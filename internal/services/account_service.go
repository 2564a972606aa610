package services

import (
	"fmt"
	"log"
	"math/rand"
	"net/url"
	"strings"
	"time"

	"accountd/internal/models"
	"accountd/internal/repositories"
)

type AccountService interface {
	Register(req *models.RegisterRequest) (*models.User, error)
	Login(email, password string) (*models.User, error)
	GetInfo(id int) (*models.User, error)
	UpdatePassword(id int, oldPassword, newPassword, confirmNewPassword string) error
	UpdateAvatar(id int, avatar string) error
	Verify(email, code string) error
	ResendOTP(email string) error
	RequestDeletion(id int, email, otp string) error
}

// PurgeScheduler is how the account service hands a marked user over to the
// background deletion worker.
type PurgeScheduler interface {
	Schedule(user *models.User)
}

type accountService struct {
	users      repositories.UserRepository
	otps       repositories.OTPRepository
	auth       AuthService
	emails     EmailService
	purge      PurgeScheduler
	purgeDelay time.Duration
}

func NewAccountService(
	users repositories.UserRepository,
	otps repositories.OTPRepository,
	auth AuthService,
	emails EmailService,
	purge PurgeScheduler,
	purgeDelay time.Duration,
) AccountService {
	return &accountService{
		users:      users,
		otps:       otps,
		auth:       auth,
		emails:     emails,
		purge:      purge,
		purgeDelay: purgeDelay,
	}
}

func generateOTP() string {
	return fmt.Sprintf("%06d", rand.Intn(1000000))
}

func defaultAvatarURL(firstName, lastName string) string {
	name := strings.TrimSpace(firstName + " " + lastName)
	return "https://ui-avatars.com/api/?name=" + url.QueryEscape(name)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *accountService) Register(req *models.RegisterRequest) (*models.User, error) {
	email := normalizeEmail(req.Email)

	existing, err := s.users.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := s.auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username:     strings.TrimSpace(req.Username),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Phone:        req.Phone,
		Email:        email,
		PasswordHash: hash,
		Avatar:       defaultAvatarURL(req.FirstName, req.LastName),
	}
	if err := s.users.Create(user); err != nil {
		return nil, err
	}

	code := generateOTP()
	if _, err := s.otps.Create(email, code); err != nil {
		return nil, err
	}

	if s.emails != nil {
		if err := s.emails.SendRegistrationOTP(email, code, user.Username); err != nil {
			// fire-and-forget: a lost mail never fails the registration
			log.Printf("[account][register] warning: failed to send otp email to %s: %v", email, err)
		}
	}

	log.Printf("[account][register] created userID=%d email=%s", user.ID, email)
	return user, nil
}

func (s *accountService) Login(email, password string) (*models.User, error) {
	user, err := s.users.GetByEmail(normalizeEmail(email))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	if !s.auth.CheckPassword(user.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

func (s *accountService) GetInfo(id int) (*models.User, error) {
	user, err := s.users.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	if !user.IsVerified {
		return nil, ErrNotVerified
	}
	return user, nil
}

// UpdatePassword checks its preconditions in a fixed order: existence,
// verification, confirmation match, old password match.
func (s *accountService) UpdatePassword(id int, oldPassword, newPassword, confirmNewPassword string) error {
	user, err := s.users.GetByID(id)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}
	if !user.IsVerified {
		return ErrNotVerified
	}
	if newPassword != confirmNewPassword {
		return ErrPasswordMismatch
	}
	if !s.auth.CheckPassword(user.PasswordHash, oldPassword) {
		return ErrInvalidCredentials
	}

	hash, err := s.auth.HashPassword(newPassword)
	if err != nil {
		return err
	}
	return s.users.UpdatePassword(id, hash)
}

func (s *accountService) UpdateAvatar(id int, avatar string) error {
	user, err := s.users.GetByID(id)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}
	if !user.IsVerified {
		return ErrNotVerified
	}
	return s.users.UpdateAvatar(id, avatar)
}

func (s *accountService) Verify(email, code string) error {
	email = normalizeEmail(email)

	user, err := s.users.GetByEmail(email)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}
	if user.IsVerified {
		return ErrAlreadyVerified
	}

	otp, err := s.otps.GetByEmailAndCode(email, code)
	if err != nil {
		return err
	}
	if otp == nil {
		return ErrOTPMismatch
	}

	if err := s.users.SetVerified(user.ID); err != nil {
		return err
	}
	if err := s.otps.DeleteByEmail(email); err != nil {
		log.Printf("[account][verify] warning: failed to consume otps for %s: %v", email, err)
	}
	log.Printf("[account][verify] verified userID=%d", user.ID)
	return nil
}

// ResendOTP answers identically whether or not the email is registered, so
// the endpoint cannot be used to enumerate accounts.
func (s *accountService) ResendOTP(email string) error {
	email = normalizeEmail(email)

	user, err := s.users.GetByEmail(email)
	if err != nil {
		return err
	}
	if user == nil || user.IsVerified {
		log.Printf("[account][resend] skipped for %s", email)
		return nil
	}

	code := generateOTP()
	if _, err := s.otps.Create(email, code); err != nil {
		return err
	}
	if s.emails != nil {
		if err := s.emails.SendRegistrationOTP(email, code, user.Username); err != nil {
			log.Printf("[account][resend] warning: failed to send otp email to %s: %v", email, err)
		}
	}
	return nil
}

func (s *accountService) RequestDeletion(id int, email, otp string) error {
	user, err := s.users.GetByID(id)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}
	if !user.IsVerified {
		return ErrNotVerified
	}

	match, err := s.otps.GetByEmailAndCode(normalizeEmail(email), otp)
	if err != nil {
		return err
	}
	if match == nil {
		return ErrOTPMismatch
	}

	purgeAfter := time.Now().Add(s.purgeDelay)
	if err := s.users.MarkForDeletion(user.ID, purgeAfter); err != nil {
		return err
	}
	user.MarkedForDeletion = true
	user.PurgeAfter = &purgeAfter

	if s.emails != nil {
		if err := s.emails.SendDeletionNotice(user.Email, user.Username); err != nil {
			log.Printf("[account][delete] warning: failed to send deletion notice to %s: %v", user.Email, err)
		}
	}

	s.purge.Schedule(user)
	log.Printf("[account][delete] userID=%d marked, purge after %s", user.ID, purgeAfter.Format(time.RFC3339))
	return nil
}
