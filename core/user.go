package core

import (
	"context"
	"time"
)

// User lending user
type User struct {
	ID        uint64    `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id"`
	UserID    string    `sql:"size:36;unique_index:user_idx" json:"user_id"`
	Address   string    `sql:"size:64;unique_index:address_idx" json:"address"`
	CreatedAt time.Time `sql:"default:CURRENT_TIMESTAMP" json:"created_at"`
}

// IUserStore user store interface
type IUserStore interface {
	Create(ctx context.Context, user *User) error
	Find(ctx context.Context, userID string) (*User, error)
	FindByAddress(ctx context.Context, address string) (*User, error)
	List(ctx context.Context, from uint64, limit int) ([]*User, error)
}
