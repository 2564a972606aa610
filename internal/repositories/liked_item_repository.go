package repositories

import (
	"database/sql"
	"fmt"
)

// LikedItemRepository covers the externally-owned liked_items table. The
// account purge removes its rows by email; nothing else here touches it.
type LikedItemRepository interface {
	DeleteByEmail(email string) error
}

type likedItemRepository struct {
	DB *sql.DB
}

func NewLikedItemRepository(db *sql.DB) LikedItemRepository {
	return &likedItemRepository{DB: db}
}

func (r *likedItemRepository) DeleteByEmail(email string) error {
	if _, err := r.DB.Exec(`DELETE FROM liked_items WHERE email = $1`, email); err != nil {
		return fmt.Errorf("liked items delete by email: %w", err)
	}
	return nil
}
