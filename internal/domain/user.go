package domain

import "time"

type User struct {
	ID           string     `json:"id"`
	Username     string     `json:"username"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"`
	ResetToken   string     `json:"-"`
	ResetExpires *time.Time `json:"-"`
	PostIDs      []string   `json:"post_ids"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// HasPendingReset reports whether a password-reset request is outstanding.
// ResetToken and ResetExpires are always set and cleared together.
func (u *User) HasPendingReset() bool {
	return u.ResetToken != "" && u.ResetExpires != nil
}

type UserRepository interface {
	FindByID(id string) (*User, error)
	FindByUsername(username string) (*User, error)
	FindByEmail(email string) (*User, error)
	FindByUsernameOrEmail(username, email string) (*User, error)
	FindByResetToken(token string) (*User, error)
	Create(user *User) error
	Update(user *User) error
}

type UserService interface {
	Register(username, email, password string) (*User, error)
	GetUserByUsername(username string) (*User, error)
	VerifyCredential(username, password string) (*User, error)
}

type AuthService interface {
	Login(username, password string) (string, error)
}

type PasswordResetService interface {
	RequestReset(email string) error
	ConsumeReset(token, newPassword string) error
}
