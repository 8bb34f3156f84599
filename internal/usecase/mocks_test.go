package usecase

import (
	"io"
	"time"

	"ripple/internal/entity"

	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

func errRecordNotFound() error { return gorm.ErrRecordNotFound }

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(user *entity.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(id string) (*entity.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(email string) (*entity.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) GetByResetToken(tokenHash string, now time.Time) (*entity.User, error) {
	args := m.Called(tokenHash, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) List(limit, offset int) ([]*entity.User, error) {
	args := m.Called(limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.User), args.Error(1)
}

func (m *MockUserRepository) Update(user *entity.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) Deactivate(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

type MockPostRepository struct {
	mock.Mock
}

func (m *MockPostRepository) Create(post *entity.Post) error {
	args := m.Called(post)
	return args.Error(0)
}

func (m *MockPostRepository) GetByID(id string) (*entity.Post, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Post), args.Error(1)
}

func (m *MockPostRepository) List(limit, offset int) ([]*entity.Post, error) {
	args := m.Called(limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Post), args.Error(1)
}

func (m *MockPostRepository) UpdateContent(id, content string) error {
	args := m.Called(id, content)
	return args.Error(0)
}

func (m *MockPostRepository) Delete(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockPostRepository) ToggleReaction(postID, userID string, kind entity.ReactionKind) error {
	args := m.Called(postID, userID, kind)
	return args.Error(0)
}

func (m *MockPostRepository) AddComment(postID, commenterID, content string) (string, error) {
	args := m.Called(postID, commenterID, content)
	return args.String(0), args.Error(1)
}

func (m *MockPostRepository) GetComment(postID, commentID string) (*entity.Comment, error) {
	args := m.Called(postID, commentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Comment), args.Error(1)
}

func (m *MockPostRepository) UpdateComment(postID, commentID, content string) error {
	args := m.Called(postID, commentID, content)
	return args.Error(0)
}

func (m *MockPostRepository) DeleteComment(postID, commentID string) error {
	args := m.Called(postID, commentID)
	return args.Error(0)
}

func (m *MockPostRepository) ToggleCommentReaction(postID, commentID, userID string, kind entity.ReactionKind) error {
	args := m.Called(postID, commentID, userID, kind)
	return args.Error(0)
}

type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) Send(to, subject, body string) error {
	args := m.Called(to, subject, body)
	return args.Error(0)
}

type MockObjectStore struct {
	mock.Mock
}

func (m *MockObjectStore) UploadFile(key string, file io.Reader, contentType string) (string, error) {
	args := m.Called(key, file, contentType)
	return args.String(0), args.Error(1)
}
