package usecase

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"ripple/internal/apperr"
	"ripple/internal/entity"
	"ripple/internal/repo/persistent"
	"ripple/pkg/jwt"
	"ripple/pkg/logger"
	"ripple/pkg/mail"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const resetTokenTTL = 10 * time.Minute

type SignupInput struct {
	Name            string
	Email           string
	Age             int
	Password        string
	PasswordConfirm string
}

type AuthUseCase interface {
	Signup(input SignupInput) (*entity.User, string, error)
	Login(email, password string) (*entity.User, string, error)
	ForgotPassword(email, resetURLBase string) error
	ResetPassword(token, password, passwordConfirm string) (*entity.User, string, error)
	UpdatePassword(userID, currentPassword, password, passwordConfirm string) (*entity.User, string, error)
	CurrentUser(userID string, tokenIssuedAt time.Time) (*entity.User, error)
}

type authUseCase struct {
	userRepo   persistent.UserRepository
	jwtService *jwt.Service
	mailer     mail.Mailer
	logger     *logger.Logger
	now        func() time.Time
}

func NewAuthUseCase(userRepo persistent.UserRepository, jwtService *jwt.Service, mailer mail.Mailer, logger *logger.Logger) AuthUseCase {
	return &authUseCase{
		userRepo:   userRepo,
		jwtService: jwtService,
		mailer:     mailer,
		logger:     logger,
		now:        time.Now,
	}
}

func (uc *authUseCase) Signup(input SignupInput) (*entity.User, string, error) {
	if err := validateName(input.Name); err != nil {
		return nil, "", err
	}
	if err := validateAge(input.Age); err != nil {
		return nil, "", err
	}
	if err := validateNewPassword(input.Password, input.PasswordConfirm); err != nil {
		return nil, "", err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		uc.logger.Error("Failed to hash password: %v", err)
		return nil, "", apperr.New(apperr.Upstream, "failed to process registration")
	}

	// Role is always "user" at signup; privileged roles are granted by
	// an admin afterwards.
	user := &entity.User{
		Name:         input.Name,
		Email:        normalizeEmail(input.Email),
		Age:          input.Age,
		Role:         entity.RoleUser,
		IsActive:     true,
		PasswordHash: string(hashed),
	}

	if err := uc.userRepo.Create(user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, "", apperr.New(apperr.Conflict, "name or email is already taken")
		}
		uc.logger.Error("Failed to create user: %v", err)
		return nil, "", apperr.New(apperr.Upstream, "failed to create user")
	}

	token, err := uc.issueToken(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Login runs the lockout pre-check before touching credentials: a
// known-locked account is rejected without a hash comparison.
func (uc *authUseCase) Login(email, password string) (*entity.User, string, error) {
	user, err := uc.userRepo.GetByEmail(normalizeEmail(email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", apperr.New(apperr.InvalidCredentials, "incorrect email or password")
		}
		uc.logger.Error("Failed to load user for login: %v", err)
		return nil, "", apperr.New(apperr.Upstream, "failed to load user")
	}

	now := uc.now()
	if user.Blocked {
		if !user.LockExpired(now) {
			return nil, "", apperr.NewLocked(user.RemainingLockMinutes(now))
		}
		// Lazy unblock: the window passed, clear the lock and fall
		// through to the credential check.
		user.ClearLock()
		if err := uc.userRepo.Update(user); err != nil {
			uc.logger.Error("Failed to clear lockout for %s: %v", user.ID, err)
			return nil, "", apperr.New(apperr.Upstream, "failed to update user")
		}
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		locked := user.RegisterFailedLogin(now)
		if err := uc.userRepo.Update(user); err != nil {
			uc.logger.Error("Failed to record login failure for %s: %v", user.ID, err)
			return nil, "", apperr.New(apperr.Upstream, "failed to update user")
		}
		if locked {
			uc.logger.Warn("Account %s locked until %v", user.ID, user.BlockedUntil)
			return nil, "", apperr.NewLocked(user.RemainingLockMinutes(now))
		}
		return nil, "", apperr.New(apperr.InvalidCredentials, "incorrect email or password")
	}

	user.WrongPassword = 0
	if err := uc.userRepo.Update(user); err != nil {
		uc.logger.Error("Failed to reset failure counter for %s: %v", user.ID, err)
		return nil, "", apperr.New(apperr.Upstream, "failed to update user")
	}

	token, err := uc.issueToken(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func (uc *authUseCase) ForgotPassword(email, resetURLBase string) error {
	user, err := uc.userRepo.GetByEmail(normalizeEmail(email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.New(apperr.NotFound, "there is no user with that email address")
		}
		uc.logger.Error("Failed to load user for password reset: %v", err)
		return apperr.New(apperr.Upstream, "failed to load user")
	}

	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return apperr.New(apperr.Upstream, "failed to generate reset token")
	}
	resetToken := hex.EncodeToString(raw)

	// Only the hash is persisted; the raw token travels by email.
	expires := uc.now().Add(resetTokenTTL)
	user.PasswordResetToken = hashToken(resetToken)
	user.PasswordResetExpires = &expires

	if err := uc.userRepo.Update(user); err != nil {
		uc.logger.Error("Failed to store reset token for %s: %v", user.ID, err)
		return apperr.New(apperr.Upstream, "failed to store reset token")
	}

	resetURL := fmt.Sprintf("%s/%s", resetURLBase, resetToken)
	body := fmt.Sprintf("Forgot your password? Go to %s to choose a new one.\nIf you did not forget it, ignore this message.", resetURL)

	if err := uc.mailer.Send(user.Email, "Password reset token, valid for 10 minutes", body); err != nil {
		uc.logger.Error("Failed to send reset email to %s: %v", user.Email, err)

		// Best-effort cleanup so the undelivered token cannot linger.
		user.PasswordResetToken = ""
		user.PasswordResetExpires = nil
		if cleanupErr := uc.userRepo.Update(user); cleanupErr != nil {
			uc.logger.Error("Failed to clear reset token for %s: %v", user.ID, cleanupErr)
		}
		return apperr.New(apperr.Upstream, "there was an error sending the email, try again later")
	}

	return nil
}

func (uc *authUseCase) ResetPassword(token, password, passwordConfirm string) (*entity.User, string, error) {
	user, err := uc.userRepo.GetByResetToken(hashToken(token), uc.now())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", apperr.New(apperr.ValidationFailed, "reset token is invalid or has expired")
		}
		uc.logger.Error("Failed to look up reset token: %v", err)
		return nil, "", apperr.New(apperr.Upstream, "failed to load user")
	}

	if err := uc.setPassword(user, password, passwordConfirm); err != nil {
		return nil, "", err
	}
	user.PasswordResetToken = ""
	user.PasswordResetExpires = nil

	if err := uc.userRepo.Update(user); err != nil {
		uc.logger.Error("Failed to reset password for %s: %v", user.ID, err)
		return nil, "", apperr.New(apperr.Upstream, "failed to update user")
	}

	tokenStr, err := uc.issueToken(user)
	if err != nil {
		return nil, "", err
	}
	return user, tokenStr, nil
}

func (uc *authUseCase) UpdatePassword(userID, currentPassword, password, passwordConfirm string) (*entity.User, string, error) {
	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", apperr.New(apperr.Unauthorized, "this user no longer exists")
		}
		uc.logger.Error("Failed to load user %s: %v", userID, err)
		return nil, "", apperr.New(apperr.Upstream, "failed to load user")
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(currentPassword)) != nil {
		return nil, "", apperr.New(apperr.InvalidCredentials, "your current password is wrong")
	}

	if err := uc.setPassword(user, password, passwordConfirm); err != nil {
		return nil, "", err
	}
	if err := uc.userRepo.Update(user); err != nil {
		uc.logger.Error("Failed to update password for %s: %v", user.ID, err)
		return nil, "", apperr.New(apperr.Upstream, "failed to update user")
	}

	tokenStr, err := uc.issueToken(user)
	if err != nil {
		return nil, "", err
	}
	return user, tokenStr, nil
}

// CurrentUser resolves the bearer subject to a live account and rejects
// tokens issued before the last password change.
func (uc *authUseCase) CurrentUser(userID string, tokenIssuedAt time.Time) (*entity.User, error) {
	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.Unauthorized, "this user no longer exists")
		}
		uc.logger.Error("Failed to load user %s: %v", userID, err)
		return nil, apperr.New(apperr.Upstream, "failed to load user")
	}

	if user.ChangedPasswordAfter(tokenIssuedAt) {
		return nil, apperr.New(apperr.Unauthorized, "password was recently changed, please login again")
	}
	return user, nil
}

func (uc *authUseCase) setPassword(user *entity.User, password, passwordConfirm string) error {
	if err := validateNewPassword(password, passwordConfirm); err != nil {
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		uc.logger.Error("Failed to hash password: %v", err)
		return apperr.New(apperr.Upstream, "failed to process password")
	}

	// Stamped one second in the past so a token issued in the same
	// instant as the change still validates.
	changedAt := uc.now().Add(-time.Second)
	user.PasswordHash = string(hashed)
	user.PasswordChangedAt = &changedAt
	return nil
}

func (uc *authUseCase) issueToken(user *entity.User) (string, error) {
	token, err := uc.jwtService.GenerateToken(user.ID, string(user.Role))
	if err != nil {
		uc.logger.Error("Failed to generate token: %v", err)
		return "", apperr.New(apperr.Upstream, "failed to generate token")
	}
	return token, nil
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
