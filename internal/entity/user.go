package entity

import (
	"math"
	"time"
)

type Role string

const (
	RoleUser      Role = "user"
	RoleModerator Role = "moderator"
	RoleAdmin     Role = "admin"
)

func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleModerator, RoleAdmin:
		return true
	}
	return false
}

// Privileged reports whether the role may act on other users' content.
func (r Role) Privileged() bool {
	return r == RoleModerator || r == RoleAdmin
}

const (
	// LockThreshold is the number of prior consecutive failures after
	// which the next failed login blocks the account (2 prior => block
	// on the 3rd attempt).
	LockThreshold = 2
	LockDuration  = time.Hour
)

type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Age       int       `json:"age,omitempty"`
	Photo     string    `json:"photo,omitempty"`
	Role      Role      `json:"role"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	PasswordHash  string `json:"-"`
	WrongPassword int    `json:"-"`
	Blocked       bool   `json:"-"`

	BlockedUntil         *time.Time `json:"-"`
	PasswordChangedAt    *time.Time `json:"-"`
	PasswordResetToken   string     `json:"-"`
	PasswordResetExpires *time.Time `json:"-"`
}

// UserRef is the public slice of a user embedded in posts, comments and
// reactions.
type UserRef struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Photo string `json:"photo,omitempty"`
}

func (u *User) Ref() UserRef {
	return UserRef{ID: u.ID, Name: u.Name, Photo: u.Photo}
}

// LockExpired reports whether a blocked user's lockout window has passed.
func (u *User) LockExpired(now time.Time) bool {
	return u.Blocked && u.BlockedUntil != nil && !now.Before(*u.BlockedUntil)
}

// ClearLock resets the lockout state. Called lazily on the next login
// attempt after the window expires; there is no background sweep.
func (u *User) ClearLock() {
	u.Blocked = false
	u.BlockedUntil = nil
	u.WrongPassword = 0
}

// RemainingLockMinutes is ceil(blockedUntil - now) in minutes, never
// below 1 while the lock is active.
func (u *User) RemainingLockMinutes(now time.Time) int {
	if u.BlockedUntil == nil {
		return 0
	}
	mins := int(math.Ceil(u.BlockedUntil.Sub(now).Minutes()))
	if mins < 1 {
		mins = 1
	}
	return mins
}

// RegisterFailedLogin advances the failure counter and reports whether
// this failure tripped the lockout.
func (u *User) RegisterFailedLogin(now time.Time) bool {
	if u.WrongPassword >= LockThreshold {
		until := now.Add(LockDuration)
		u.Blocked = true
		u.BlockedUntil = &until
		return true
	}
	u.WrongPassword++
	return false
}

// ChangedPasswordAfter reports whether the password was changed after
// the given token-issue time, which invalidates outstanding tokens.
func (u *User) ChangedPasswordAfter(issuedAt time.Time) bool {
	if u.PasswordChangedAt == nil {
		return false
	}
	return issuedAt.Before(*u.PasswordChangedAt)
}
