package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRegisterFailedLogin_CountsUpToThreshold(t *testing.T) {
	now := time.Now()
	user := &User{}

	assert.False(t, user.RegisterFailedLogin(now))
	assert.Equal(t, 1, user.WrongPassword)
	assert.False(t, user.Blocked)

	assert.False(t, user.RegisterFailedLogin(now))
	assert.Equal(t, 2, user.WrongPassword)
	assert.False(t, user.Blocked)
}

func TestRegisterFailedLogin_ThirdFailureBlocksForOneHour(t *testing.T) {
	now := time.Now()
	user := &User{WrongPassword: 2}

	locked := user.RegisterFailedLogin(now)

	assert.True(t, locked)
	assert.True(t, user.Blocked)
	assert.NotNil(t, user.BlockedUntil)
	assert.Equal(t, now.Add(time.Hour), *user.BlockedUntil)
}

func TestLockExpired(t *testing.T) {
	now := time.Now()
	past := now.Add(-time.Minute)
	future := now.Add(time.Minute)

	assert.False(t, (&User{}).LockExpired(now))
	assert.False(t, (&User{Blocked: true, BlockedUntil: &future}).LockExpired(now))
	assert.True(t, (&User{Blocked: true, BlockedUntil: &past}).LockExpired(now))
	assert.True(t, (&User{Blocked: true, BlockedUntil: &now}).LockExpired(now))
}

func TestClearLock(t *testing.T) {
	until := time.Now()
	user := &User{Blocked: true, BlockedUntil: &until, WrongPassword: 3}

	user.ClearLock()

	assert.False(t, user.Blocked)
	assert.Nil(t, user.BlockedUntil)
	assert.Zero(t, user.WrongPassword)
}

func TestRemainingLockMinutes_Ceils(t *testing.T) {
	now := time.Now()

	until := now.Add(59*time.Minute + 30*time.Second)
	user := &User{Blocked: true, BlockedUntil: &until}
	assert.Equal(t, 60, user.RemainingLockMinutes(now))

	until = now.Add(10 * time.Second)
	assert.Equal(t, 1, user.RemainingLockMinutes(now))

	assert.Zero(t, (&User{}).RemainingLockMinutes(now))
}

func TestChangedPasswordAfter(t *testing.T) {
	issued := time.Now()
	before := issued.Add(-time.Minute)
	after := issued.Add(time.Minute)

	assert.False(t, (&User{}).ChangedPasswordAfter(issued))
	assert.False(t, (&User{PasswordChangedAt: &before}).ChangedPasswordAfter(issued))
	assert.True(t, (&User{PasswordChangedAt: &after}).ChangedPasswordAfter(issued))
}

func TestRole_Valid(t *testing.T) {
	assert.True(t, RoleUser.Valid())
	assert.True(t, RoleModerator.Valid())
	assert.True(t, RoleAdmin.Valid())
	assert.False(t, Role("superuser").Valid())
}
