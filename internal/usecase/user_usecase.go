package usecase

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"ripple/internal/apperr"
	"ripple/internal/entity"
	"ripple/internal/repo/persistent"
	"ripple/pkg/logger"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// ObjectStore abstracts the photo bucket so tests can stub it out.
type ObjectStore interface {
	UploadFile(key string, file io.Reader, contentType string) (string, error)
}

type UpdateMeInput struct {
	Name  *string
	Email *string
}

type AdminCreateInput struct {
	Name            string
	Email           string
	Age             int
	Role            entity.Role
	Password        string
	PasswordConfirm string
}

type AdminUpdateInput struct {
	Name  *string
	Email *string
	Age   *int
	Role  *entity.Role
}

type UserUseCase interface {
	List(limit, offset int) ([]*entity.User, error)
	Get(id string) (*entity.User, error)
	UpdateMe(userID string, input UpdateMeInput) (*entity.User, error)
	UploadPhoto(userID string, file io.Reader, filename, contentType string) (*entity.User, error)
	DeactivateMe(userID string) error
	AdminCreate(input AdminCreateInput) (*entity.User, error)
	AdminUpdate(id string, input AdminUpdateInput) (*entity.User, error)
	Delete(id string) error
}

type userUseCase struct {
	userRepo persistent.UserRepository
	store    ObjectStore
	logger   *logger.Logger
}

func NewUserUseCase(userRepo persistent.UserRepository, store ObjectStore, logger *logger.Logger) UserUseCase {
	return &userUseCase{
		userRepo: userRepo,
		store:    store,
		logger:   logger,
	}
}

func (uc *userUseCase) List(limit, offset int) ([]*entity.User, error) {
	users, err := uc.userRepo.List(limit, offset)
	if err != nil {
		uc.logger.Error("Failed to list users: %v", err)
		return nil, apperr.New(apperr.Upstream, "failed to list users")
	}
	return users, nil
}

func (uc *userUseCase) Get(id string) (*entity.User, error) {
	return uc.load(id)
}

// UpdateMe changes profile fields only. Password changes go through the
// dedicated update-password flow; handlers reject those fields before
// calling here.
func (uc *userUseCase) UpdateMe(userID string, input UpdateMeInput) (*entity.User, error) {
	user, err := uc.load(userID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		if err := validateName(*input.Name); err != nil {
			return nil, err
		}
		user.Name = *input.Name
	}
	if input.Email != nil {
		user.Email = normalizeEmail(*input.Email)
	}

	return uc.save(user)
}

func (uc *userUseCase) UploadPhoto(userID string, file io.Reader, filename, contentType string) (*entity.User, error) {
	user, err := uc.load(userID)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("photos/%s%s", userID, filepath.Ext(filename))
	url, err := uc.store.UploadFile(key, file, contentType)
	if err != nil {
		uc.logger.Error("Failed to upload photo for %s: %v", userID, err)
		return nil, apperr.New(apperr.Upstream, "failed to upload photo")
	}

	user.Photo = url
	return uc.save(user)
}

// DeactivateMe soft-deletes the account; the record stays but every
// read scope skips it from now on.
func (uc *userUseCase) DeactivateMe(userID string) error {
	if err := uc.userRepo.Deactivate(userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.New(apperr.NotFound, "no user found with that ID")
		}
		uc.logger.Error("Failed to deactivate user %s: %v", userID, err)
		return apperr.New(apperr.Upstream, "failed to deactivate user")
	}
	return nil
}

func (uc *userUseCase) AdminCreate(input AdminCreateInput) (*entity.User, error) {
	if err := validateName(input.Name); err != nil {
		return nil, err
	}
	if err := validateAge(input.Age); err != nil {
		return nil, err
	}
	if err := validateNewPassword(input.Password, input.PasswordConfirm); err != nil {
		return nil, err
	}
	if !input.Role.Valid() {
		return nil, apperr.New(apperr.ValidationFailed, "invalid role %q", input.Role)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		uc.logger.Error("Failed to hash password: %v", err)
		return nil, apperr.New(apperr.Upstream, "failed to create user")
	}

	user := &entity.User{
		Name:         input.Name,
		Email:        normalizeEmail(input.Email),
		Age:          input.Age,
		Role:         input.Role,
		IsActive:     true,
		PasswordHash: string(hashed),
	}

	if err := uc.userRepo.Create(user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.New(apperr.Conflict, "name or email is already taken")
		}
		uc.logger.Error("Failed to create user: %v", err)
		return nil, apperr.New(apperr.Upstream, "failed to create user")
	}
	return user, nil
}

func (uc *userUseCase) AdminUpdate(id string, input AdminUpdateInput) (*entity.User, error) {
	user, err := uc.load(id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		if err := validateName(*input.Name); err != nil {
			return nil, err
		}
		user.Name = *input.Name
	}
	if input.Email != nil {
		user.Email = normalizeEmail(*input.Email)
	}
	if input.Age != nil {
		if err := validateAge(*input.Age); err != nil {
			return nil, err
		}
		user.Age = *input.Age
	}
	if input.Role != nil {
		if !input.Role.Valid() {
			return nil, apperr.New(apperr.ValidationFailed, "invalid role %q", *input.Role)
		}
		user.Role = *input.Role
	}

	return uc.save(user)
}

func (uc *userUseCase) Delete(id string) error {
	if err := uc.userRepo.Delete(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.New(apperr.NotFound, "no user found with that ID")
		}
		uc.logger.Error("Failed to delete user %s: %v", id, err)
		return apperr.New(apperr.Upstream, "failed to delete user")
	}
	return nil
}

func (uc *userUseCase) load(id string) (*entity.User, error) {
	user, err := uc.userRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.NotFound, "no user found with that ID")
		}
		uc.logger.Error("Failed to load user %s: %v", id, err)
		return nil, apperr.New(apperr.Upstream, "failed to load user")
	}
	return user, nil
}

func (uc *userUseCase) save(user *entity.User) (*entity.User, error) {
	if err := uc.userRepo.Update(user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.New(apperr.Conflict, "name or email is already taken")
		}
		uc.logger.Error("Failed to update user %s: %v", user.ID, err)
		return nil, apperr.New(apperr.Upstream, "failed to update user")
	}
	return user, nil
}
