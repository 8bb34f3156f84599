package usecase

import (
	"testing"
	"time"

	"ripple/internal/apperr"
	"ripple/internal/entity"
	"ripple/pkg/jwt"
	"ripple/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

var testNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func newAuthUC(userRepo *MockUserRepository, mailer *MockMailer) *authUseCase {
	uc := NewAuthUseCase(userRepo, jwt.NewService("test-secret"), mailer, logger.New()).(*authUseCase)
	uc.now = func() time.Time { return testNow }
	return uc
}

func hashPassword(t *testing.T, password string) string {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	assert.NoError(t, err)
	return string(hashed)
}

func activeUser(t *testing.T, password string) *entity.User {
	return &entity.User{
		ID:           "user-1",
		Name:         "alice1",
		Email:        "alice@example.com",
		Age:          30,
		Role:         entity.RoleUser,
		IsActive:     true,
		PasswordHash: hashPassword(t, password),
	}
}

func TestSignup_Success(t *testing.T) {
	userRepo := new(MockUserRepository)
	userRepo.On("Create", mock.AnythingOfType("*entity.User")).Return(nil)

	uc := newAuthUC(userRepo, new(MockMailer))
	user, token, err := uc.Signup(SignupInput{
		Name:            "alice1",
		Email:           "alice@example.com",
		Age:             30,
		Password:        "secretpass1",
		PasswordConfirm: "secretpass1",
	})

	assert.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, entity.RoleUser, user.Role)
	assert.True(t, user.IsActive)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("secretpass1")))
	userRepo.AssertExpectations(t)
}

func TestSignup_Validation(t *testing.T) {
	uc := newAuthUC(new(MockUserRepository), new(MockMailer))

	cases := []struct {
		name  string
		input SignupInput
	}{
		{"name too short", SignupInput{Name: "ab1", Age: 30, Password: "secretpass1", PasswordConfirm: "secretpass1"}},
		{"name too long", SignupInput{Name: "abcdefghijklmnopqrstu", Age: 30, Password: "secretpass1", PasswordConfirm: "secretpass1"}},
		{"name not alphanumeric", SignupInput{Name: "alice bob", Age: 30, Password: "secretpass1", PasswordConfirm: "secretpass1"}},
		{"age too low", SignupInput{Name: "alice1", Age: 11, Password: "secretpass1", PasswordConfirm: "secretpass1"}},
		{"age too high", SignupInput{Name: "alice1", Age: 151, Password: "secretpass1", PasswordConfirm: "secretpass1"}},
		{"password too short", SignupInput{Name: "alice1", Age: 30, Password: "short", PasswordConfirm: "short"}},
		{"password mismatch", SignupInput{Name: "alice1", Age: 30, Password: "secretpass1", PasswordConfirm: "secretpass2"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := uc.Signup(tc.input)
			assert.True(t, apperr.IsKind(err, apperr.ValidationFailed))
		})
	}
}

func TestSignup_StoresLowercasedEmail(t *testing.T) {
	userRepo := new(MockUserRepository)
	userRepo.On("Create", mock.MatchedBy(func(u *entity.User) bool {
		return u.Email == "alice@example.com"
	})).Return(nil)

	uc := newAuthUC(userRepo, new(MockMailer))
	user, _, err := uc.Signup(SignupInput{
		Name:            "alice1",
		Email:           "  Alice@Example.COM ",
		Age:             30,
		Password:        "secretpass1",
		PasswordConfirm: "secretpass1",
	})

	assert.NoError(t, err)
	assert.Equal(t, "alice@example.com", user.Email)
	userRepo.AssertExpectations(t)
}

func TestLogin_Success(t *testing.T) {
	user := activeUser(t, "secretpass1")
	user.WrongPassword = 1

	userRepo := new(MockUserRepository)
	userRepo.On("GetByEmail", user.Email).Return(user, nil)
	userRepo.On("Update", user).Return(nil)

	uc := newAuthUC(userRepo, new(MockMailer))
	got, token, err := uc.Login(user.Email, "secretpass1")

	assert.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, 0, got.WrongPassword)
	userRepo.AssertExpectations(t)
}

func TestLogin_EmailIsCaseInsensitive(t *testing.T) {
	user := activeUser(t, "secretpass1")

	userRepo := new(MockUserRepository)
	userRepo.On("GetByEmail", "alice@example.com").Return(user, nil)
	userRepo.On("Update", user).Return(nil)

	uc := newAuthUC(userRepo, new(MockMailer))
	_, token, err := uc.Login("Alice@Example.COM", "secretpass1")

	assert.NoError(t, err)
	assert.NotEmpty(t, token)
	userRepo.AssertExpectations(t)
}

func TestLogin_WrongPasswordIncrementsCounter(t *testing.T) {
	user := activeUser(t, "secretpass1")

	userRepo := new(MockUserRepository)
	userRepo.On("GetByEmail", user.Email).Return(user, nil)
	userRepo.On("Update", user).Return(nil)

	uc := newAuthUC(userRepo, new(MockMailer))
	_, _, err := uc.Login(user.Email, "wrongpassword")

	assert.True(t, apperr.IsKind(err, apperr.InvalidCredentials))
	assert.Equal(t, 1, user.WrongPassword)
	assert.False(t, user.Blocked)
}

func TestLogin_ThirdFailureLocksAccount(t *testing.T) {
	user := activeUser(t, "secretpass1")
	user.WrongPassword = 2

	userRepo := new(MockUserRepository)
	userRepo.On("GetByEmail", user.Email).Return(user, nil)
	userRepo.On("Update", user).Return(nil)

	uc := newAuthUC(userRepo, new(MockMailer))
	_, _, err := uc.Login(user.Email, "wrongpassword")

	assert.True(t, apperr.IsKind(err, apperr.Locked))
	assert.True(t, user.Blocked)
	assert.Equal(t, testNow.Add(time.Hour), *user.BlockedUntil)

	var appErr *apperr.Error
	assert.ErrorAs(t, err, &appErr)
	assert.Equal(t, 60, appErr.RemainingMinutes)
}

func TestLogin_LockedRejectsBeforeCredentialCheck(t *testing.T) {
	user := activeUser(t, "secretpass1")
	until := testNow.Add(30*time.Minute + time.Second)
	user.Blocked = true
	user.BlockedUntil = &until

	userRepo := new(MockUserRepository)
	userRepo.On("GetByEmail", user.Email).Return(user, nil)

	uc := newAuthUC(userRepo, new(MockMailer))

	// Even the correct password is rejected while the lock holds.
	_, _, err := uc.Login(user.Email, "secretpass1")

	assert.True(t, apperr.IsKind(err, apperr.Locked))

	var appErr *apperr.Error
	assert.ErrorAs(t, err, &appErr)
	assert.Equal(t, 31, appErr.RemainingMinutes)
	userRepo.AssertNotCalled(t, "Update", mock.Anything)
}

func TestLogin_ExpiredLockClearsLazily(t *testing.T) {
	user := activeUser(t, "secretpass1")
	until := testNow.Add(-time.Minute)
	user.Blocked = true
	user.BlockedUntil = &until
	user.WrongPassword = 2

	userRepo := new(MockUserRepository)
	userRepo.On("GetByEmail", user.Email).Return(user, nil)
	userRepo.On("Update", user).Return(nil)

	uc := newAuthUC(userRepo, new(MockMailer))
	got, token, err := uc.Login(user.Email, "secretpass1")

	assert.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.False(t, got.Blocked)
	assert.Nil(t, got.BlockedUntil)
	assert.Equal(t, 0, got.WrongPassword)
}

func TestLogin_UnknownEmail(t *testing.T) {
	userRepo := new(MockUserRepository)
	userRepo.On("GetByEmail", "nobody@example.com").Return(nil, errRecordNotFound())

	uc := newAuthUC(userRepo, new(MockMailer))
	_, _, err := uc.Login("nobody@example.com", "whatever12")

	assert.True(t, apperr.IsKind(err, apperr.InvalidCredentials))
}

func TestForgotPassword_StoresHashedTokenAndMails(t *testing.T) {
	user := activeUser(t, "secretpass1")

	userRepo := new(MockUserRepository)
	userRepo.On("GetByEmail", user.Email).Return(user, nil)
	userRepo.On("Update", user).Return(nil)

	mailer := new(MockMailer)
	mailer.On("Send", user.Email, mock.Anything, mock.Anything).Return(nil)

	uc := newAuthUC(userRepo, mailer)
	err := uc.ForgotPassword(user.Email, "https://app.example.com/reset")

	assert.NoError(t, err)
	assert.Len(t, user.PasswordResetToken, 64)
	assert.Equal(t, testNow.Add(10*time.Minute), *user.PasswordResetExpires)

	// The mailed token is the raw one, never the stored hash.
	body := mailer.Calls[0].Arguments.String(2)
	assert.NotContains(t, body, user.PasswordResetToken)
	assert.Contains(t, body, "https://app.example.com/reset/")
	mailer.AssertExpectations(t)
}

func TestForgotPassword_MailFailureClearsToken(t *testing.T) {
	user := activeUser(t, "secretpass1")

	userRepo := new(MockUserRepository)
	userRepo.On("GetByEmail", user.Email).Return(user, nil)
	userRepo.On("Update", user).Return(nil)

	mailer := new(MockMailer)
	mailer.On("Send", user.Email, mock.Anything, mock.Anything).Return(assert.AnError)

	uc := newAuthUC(userRepo, mailer)
	err := uc.ForgotPassword(user.Email, "https://app.example.com/reset")

	assert.True(t, apperr.IsKind(err, apperr.Upstream))
	assert.Empty(t, user.PasswordResetToken)
	assert.Nil(t, user.PasswordResetExpires)
	userRepo.AssertNumberOfCalls(t, "Update", 2)
}

func TestResetPassword_InvalidToken(t *testing.T) {
	userRepo := new(MockUserRepository)
	userRepo.On("GetByResetToken", mock.Anything, testNow).Return(nil, errRecordNotFound())

	uc := newAuthUC(userRepo, new(MockMailer))
	_, _, err := uc.ResetPassword("bogus-token", "newpassword1", "newpassword1")

	assert.True(t, apperr.IsKind(err, apperr.ValidationFailed))
}

func TestResetPassword_Success(t *testing.T) {
	user := activeUser(t, "secretpass1")
	expires := testNow.Add(5 * time.Minute)
	user.PasswordResetToken = hashToken("raw-token")
	user.PasswordResetExpires = &expires

	userRepo := new(MockUserRepository)
	userRepo.On("GetByResetToken", hashToken("raw-token"), testNow).Return(user, nil)
	userRepo.On("Update", user).Return(nil)

	uc := newAuthUC(userRepo, new(MockMailer))
	got, token, err := uc.ResetPassword("raw-token", "newpassword1", "newpassword1")

	assert.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Empty(t, got.PasswordResetToken)
	assert.Nil(t, got.PasswordResetExpires)
	assert.Equal(t, testNow.Add(-time.Second), *got.PasswordChangedAt)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(got.PasswordHash), []byte("newpassword1")))
}

func TestUpdatePassword_WrongCurrent(t *testing.T) {
	user := activeUser(t, "secretpass1")

	userRepo := new(MockUserRepository)
	userRepo.On("GetByID", user.ID).Return(user, nil)

	uc := newAuthUC(userRepo, new(MockMailer))
	_, _, err := uc.UpdatePassword(user.ID, "wrongcurrent", "newpassword1", "newpassword1")

	assert.True(t, apperr.IsKind(err, apperr.InvalidCredentials))
	userRepo.AssertNotCalled(t, "Update", mock.Anything)
}

func TestUpdatePassword_Success(t *testing.T) {
	user := activeUser(t, "secretpass1")

	userRepo := new(MockUserRepository)
	userRepo.On("GetByID", user.ID).Return(user, nil)
	userRepo.On("Update", user).Return(nil)

	uc := newAuthUC(userRepo, new(MockMailer))
	got, token, err := uc.UpdatePassword(user.ID, "secretpass1", "newpassword1", "newpassword1")

	assert.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(got.PasswordHash), []byte("newpassword1")))
}

func TestCurrentUser_GoneUser(t *testing.T) {
	userRepo := new(MockUserRepository)
	userRepo.On("GetByID", "gone").Return(nil, errRecordNotFound())

	uc := newAuthUC(userRepo, new(MockMailer))
	_, err := uc.CurrentUser("gone", testNow)

	assert.True(t, apperr.IsKind(err, apperr.Unauthorized))
}

func TestCurrentUser_StaleToken(t *testing.T) {
	user := activeUser(t, "secretpass1")
	changed := testNow.Add(-time.Minute)
	user.PasswordChangedAt = &changed

	userRepo := new(MockUserRepository)
	userRepo.On("GetByID", user.ID).Return(user, nil)

	uc := newAuthUC(userRepo, new(MockMailer))
	_, err := uc.CurrentUser(user.ID, testNow.Add(-time.Hour))

	assert.True(t, apperr.IsKind(err, apperr.Unauthorized))
}

func TestCurrentUser_FreshToken(t *testing.T) {
	user := activeUser(t, "secretpass1")
	changed := testNow.Add(-time.Hour)
	user.PasswordChangedAt = &changed

	userRepo := new(MockUserRepository)
	userRepo.On("GetByID", user.ID).Return(user, nil)

	uc := newAuthUC(userRepo, new(MockMailer))
	got, err := uc.CurrentUser(user.ID, testNow)

	assert.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)
}
