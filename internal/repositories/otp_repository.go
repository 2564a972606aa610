package repositories

import (
	"database/sql"
	"fmt"

	"accountd/internal/models"
)

type OTPRepository interface {
	Create(email, code string) (*models.OTP, error)
	GetByEmailAndCode(email, code string) (*models.OTP, error)
	DeleteByEmail(email string) error
}

type otpRepository struct {
	DB *sql.DB
}

func NewOTPRepository(db *sql.DB) OTPRepository {
	return &otpRepository{DB: db}
}

func (r *otpRepository) Create(email, code string) (*models.OTP, error) {
	const q = `
		INSERT INTO otps (email, code)
		VALUES ($1, $2)
		RETURNING id, created_at
	`
	otp := &models.OTP{Email: email, Code: code}
	if err := r.DB.QueryRow(q, email, code).Scan(&otp.ID, &otp.CreatedAt); err != nil {
		return nil, fmt.Errorf("otp create: %w", err)
	}
	return otp, nil
}

// GetByEmailAndCode matches on the exact pair. There is deliberately no
// expiry filter here: codes stay valid until consumed.
func (r *otpRepository) GetByEmailAndCode(email, code string) (*models.OTP, error) {
	const q = `
		SELECT id, email, code, created_at
		FROM otps
		WHERE email = $1 AND code = $2
		ORDER BY created_at DESC
		LIMIT 1
	`
	var otp models.OTP
	if err := r.DB.QueryRow(q, email, code).Scan(&otp.ID, &otp.Email, &otp.Code, &otp.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("otp get by email and code: %w", err)
	}
	return &otp, nil
}

func (r *otpRepository) DeleteByEmail(email string) error {
	if _, err := r.DB.Exec(`DELETE FROM otps WHERE email = $1`, email); err != nil {
		return fmt.Errorf("otp delete by email: %w", err)
	}
	return nil
}
