package usecase

import (
	"errors"

	"ripple/internal/apperr"
	"ripple/internal/entity"
	"ripple/internal/repo/persistent"
	"ripple/pkg/logger"

	"gorm.io/gorm"
)

type PostUseCase interface {
	Create(publisher entity.UserRef, content string) (*entity.Post, error)
	Get(id string) (*entity.Post, error)
	List(limit, offset int) ([]*entity.Post, error)
	Update(postID, requesterID, content string) (*entity.Post, error)
	Delete(postID, requesterID string, requesterRole entity.Role) error

	ToggleReaction(postID, userID string, kind entity.ReactionKind) (*entity.Post, error)

	AddComment(postID, commenterID, content string) (*entity.Post, error)
	EditComment(postID, commentID, requesterID, content string) (*entity.Post, error)
	DeleteComment(postID, commentID, requesterID string, requesterRole entity.Role) (*entity.Post, error)
	ToggleCommentReaction(postID, commentID, userID string, kind entity.ReactionKind) (*entity.Post, error)
}

type postUseCase struct {
	postRepo persistent.PostRepository
	logger   *logger.Logger
}

func NewPostUseCase(postRepo persistent.PostRepository, logger *logger.Logger) PostUseCase {
	return &postUseCase{
		postRepo: postRepo,
		logger:   logger,
	}
}

func (uc *postUseCase) Create(publisher entity.UserRef, content string) (*entity.Post, error) {
	if err := validatePostContent(content); err != nil {
		return nil, err
	}

	post := &entity.Post{
		Publisher: publisher,
		Content:   content,
	}
	if err := uc.postRepo.Create(post); err != nil {
		uc.logger.Error("Failed to create post: %v", err)
		return nil, apperr.New(apperr.Upstream, "failed to create post")
	}
	return post, nil
}

func (uc *postUseCase) Get(id string) (*entity.Post, error) {
	return uc.load(id)
}

func (uc *postUseCase) List(limit, offset int) ([]*entity.Post, error) {
	posts, err := uc.postRepo.List(limit, offset)
	if err != nil {
		uc.logger.Error("Failed to list posts: %v", err)
		return nil, apperr.New(apperr.Upstream, "failed to list posts")
	}
	return posts, nil
}

func (uc *postUseCase) Update(postID, requesterID, content string) (*entity.Post, error) {
	if err := validatePostContent(content); err != nil {
		return nil, err
	}

	post, err := uc.load(postID)
	if err != nil {
		return nil, err
	}
	if post.Publisher.ID != requesterID {
		return nil, apperr.New(apperr.Forbidden, "you can only edit your own posts")
	}

	if err := uc.postRepo.UpdateContent(postID, content); err != nil {
		return nil, uc.storeErr(err, "no post found with that ID")
	}
	return uc.load(postID)
}

// Delete is open to the publisher and to privileged roles, who can take
// down anyone's post.
func (uc *postUseCase) Delete(postID, requesterID string, requesterRole entity.Role) error {
	post, err := uc.load(postID)
	if err != nil {
		return err
	}
	if post.Publisher.ID != requesterID && !requesterRole.Privileged() {
		return apperr.New(apperr.Forbidden, "you can only delete your own posts")
	}

	if err := uc.postRepo.Delete(postID); err != nil {
		return uc.storeErr(err, "no post found with that ID")
	}
	return nil
}

func (uc *postUseCase) ToggleReaction(postID, userID string, kind entity.ReactionKind) (*entity.Post, error) {
	if !kind.Valid() {
		return nil, apperr.New(apperr.ValidationFailed, "invalid reaction kind %q", kind)
	}

	if err := uc.postRepo.ToggleReaction(postID, userID, kind); err != nil {
		return nil, uc.storeErr(err, "no post found with that ID")
	}
	return uc.load(postID)
}

func (uc *postUseCase) AddComment(postID, commenterID, content string) (*entity.Post, error) {
	if err := validateCommentContent(content); err != nil {
		return nil, err
	}

	if _, err := uc.postRepo.AddComment(postID, commenterID, content); err != nil {
		return nil, uc.storeErr(err, "no post found with that ID")
	}
	return uc.load(postID)
}

// EditComment is restricted to the original commenter; even privileged
// roles cannot rewrite someone else's words.
func (uc *postUseCase) EditComment(postID, commentID, requesterID, content string) (*entity.Post, error) {
	if err := validateCommentContent(content); err != nil {
		return nil, err
	}

	comment, err := uc.loadComment(postID, commentID)
	if err != nil {
		return nil, err
	}
	if comment.Commenter.ID != requesterID {
		return nil, apperr.New(apperr.Forbidden, "you can only edit your own comments")
	}

	if err := uc.postRepo.UpdateComment(postID, commentID, content); err != nil {
		return nil, uc.storeErr(err, "no comment found with that ID")
	}
	return uc.load(postID)
}

func (uc *postUseCase) DeleteComment(postID, commentID, requesterID string, requesterRole entity.Role) (*entity.Post, error) {
	comment, err := uc.loadComment(postID, commentID)
	if err != nil {
		return nil, err
	}
	if comment.Commenter.ID != requesterID && !requesterRole.Privileged() {
		return nil, apperr.New(apperr.Forbidden, "you can only delete your own comments")
	}

	if err := uc.postRepo.DeleteComment(postID, commentID); err != nil {
		return nil, uc.storeErr(err, "no comment found with that ID")
	}
	return uc.load(postID)
}

func (uc *postUseCase) ToggleCommentReaction(postID, commentID, userID string, kind entity.ReactionKind) (*entity.Post, error) {
	if !kind.Valid() {
		return nil, apperr.New(apperr.ValidationFailed, "invalid reaction kind %q", kind)
	}

	if err := uc.postRepo.ToggleCommentReaction(postID, commentID, userID, kind); err != nil {
		return nil, uc.storeErr(err, "no comment found with that ID")
	}
	return uc.load(postID)
}

func (uc *postUseCase) load(id string) (*entity.Post, error) {
	post, err := uc.postRepo.GetByID(id)
	if err != nil {
		return nil, uc.storeErr(err, "no post found with that ID")
	}
	return post, nil
}

func (uc *postUseCase) loadComment(postID, commentID string) (*entity.Comment, error) {
	comment, err := uc.postRepo.GetComment(postID, commentID)
	if err != nil {
		return nil, uc.storeErr(err, "no comment found with that ID")
	}
	return comment, nil
}

func (uc *postUseCase) storeErr(err error, notFoundMsg string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.New(apperr.NotFound, "%s", notFoundMsg)
	}
	uc.logger.Error("Post storage failure: %v", err)
	return apperr.New(apperr.Upstream, "storage failure")
}
