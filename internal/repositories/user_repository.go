package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"accountd/internal/models"
)

type UserRepository interface {
	Create(user *models.User) error
	GetByID(id int) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	UpdatePassword(id int, passwordHash string) error
	UpdateAvatar(id int, avatar string) error
	SetVerified(id int) error
	MarkForDeletion(id int, purgeAfter time.Time) error
	ListMarkedForDeletion() ([]*models.User, error)
	Delete(id int) error
}

type userRepository struct {
	DB *sql.DB
}

func NewUserRepository(db *sql.DB) UserRepository {
	return &userRepository{DB: db}
}

func (r *userRepository) Create(user *models.User) error {
	const q = `
		INSERT INTO users (
			username, first_name, last_name, phone, email,
			password_hash, avatar, is_verified, marked_for_deletion
		)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,FALSE)
		RETURNING id, created_at, updated_at
	`
	if err := r.DB.QueryRow(q,
		user.Username,
		user.FirstName,
		user.LastName,
		user.Phone,
		user.Email,
		user.PasswordHash,
		user.Avatar,
		user.IsVerified,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt); err != nil {
		return fmt.Errorf("user create: %w", err)
	}
	return nil
}

const userColumns = `
	id, username, first_name, last_name, phone, email,
	password_hash, avatar, is_verified, marked_for_deletion,
	purge_after, created_at, updated_at
`

func scanUser(row *sql.Row) (*models.User, error) {
	u := &models.User{}
	var purgeAfter sql.NullTime
	err := row.Scan(
		&u.ID, &u.Username, &u.FirstName, &u.LastName, &u.Phone, &u.Email,
		&u.PasswordHash, &u.Avatar, &u.IsVerified, &u.MarkedForDeletion,
		&purgeAfter, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("user scan: %w", err)
	}
	if purgeAfter.Valid {
		t := purgeAfter.Time
		u.PurgeAfter = &t
	}
	return u, nil
}

func (r *userRepository) GetByID(id int) (*models.User, error) {
	q := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return scanUser(r.DB.QueryRow(q, id))
}

func (r *userRepository) GetByEmail(email string) (*models.User, error) {
	q := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return scanUser(r.DB.QueryRow(q, email))
}

func (r *userRepository) UpdatePassword(id int, passwordHash string) error {
	const q = `UPDATE users SET password_hash=$1, updated_at=NOW() WHERE id=$2`
	if _, err := r.DB.Exec(q, passwordHash, id); err != nil {
		return fmt.Errorf("user update password: %w", err)
	}
	return nil
}

func (r *userRepository) UpdateAvatar(id int, avatar string) error {
	const q = `UPDATE users SET avatar=$1, updated_at=NOW() WHERE id=$2`
	if _, err := r.DB.Exec(q, avatar, id); err != nil {
		return fmt.Errorf("user update avatar: %w", err)
	}
	return nil
}

func (r *userRepository) SetVerified(id int) error {
	const q = `UPDATE users SET is_verified=TRUE, updated_at=NOW() WHERE id=$1`
	if _, err := r.DB.Exec(q, id); err != nil {
		return fmt.Errorf("user set verified: %w", err)
	}
	return nil
}

// MarkForDeletion is one-way: the flag is never cleared, only the row removed.
func (r *userRepository) MarkForDeletion(id int, purgeAfter time.Time) error {
	const q = `
		UPDATE users
		SET marked_for_deletion=TRUE, purge_after=$1, updated_at=NOW()
		WHERE id=$2
	`
	if _, err := r.DB.Exec(q, purgeAfter, id); err != nil {
		return fmt.Errorf("user mark for deletion: %w", err)
	}
	return nil
}

func (r *userRepository) ListMarkedForDeletion() ([]*models.User, error) {
	q := `SELECT ` + userColumns + ` FROM users WHERE marked_for_deletion = TRUE`
	rows, err := r.DB.Query(q)
	if err != nil {
		return nil, fmt.Errorf("user list marked: %w", err)
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		u := &models.User{}
		var purgeAfter sql.NullTime
		if err := rows.Scan(
			&u.ID, &u.Username, &u.FirstName, &u.LastName, &u.Phone, &u.Email,
			&u.PasswordHash, &u.Avatar, &u.IsVerified, &u.MarkedForDeletion,
			&purgeAfter, &u.CreatedAt, &u.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("user scan marked: %w", err)
		}
		if purgeAfter.Valid {
			t := purgeAfter.Time
			u.PurgeAfter = &t
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *userRepository) Delete(id int) error {
	if _, err := r.DB.Exec(`DELETE FROM users WHERE id=$1`, id); err != nil {
		return fmt.Errorf("user delete: %w", err)
	}
	return nil
}
