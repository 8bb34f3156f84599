package persistent

import (
	"errors"

	"ripple/internal/entity"
	"ripple/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PostRepository interface {
	Create(post *entity.Post) error
	GetByID(id string) (*entity.Post, error)
	List(limit, offset int) ([]*entity.Post, error)
	UpdateContent(id, content string) error
	Delete(id string) error

	ToggleReaction(postID, userID string, kind entity.ReactionKind) error

	AddComment(postID, commenterID, content string) (commentID string, err error)
	GetComment(postID, commentID string) (*entity.Comment, error)
	UpdateComment(postID, commentID, content string) error
	DeleteComment(postID, commentID string) error
	ToggleCommentReaction(postID, commentID, userID string, kind entity.ReactionKind) error
}

type postRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

// withGraph preloads the publisher and every embedded comment/reaction
// user reference so responses come back fully populated.
func withGraph(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Publisher").
		Preload("Reacts", func(db *gorm.DB) *gorm.DB {
			return db.Order("reactions.created_at ASC")
		}).
		Preload("Reacts.User").
		Preload("Comments", func(db *gorm.DB) *gorm.DB {
			return db.Order("comments.created_at ASC")
		}).
		Preload("Comments.Commenter").
		Preload("Comments.Reacts", func(db *gorm.DB) *gorm.DB {
			return db.Order("reactions.created_at ASC")
		}).
		Preload("Comments.Reacts.User")
}

func (r *postRepository) Create(post *entity.Post) error {
	postModel := &model.PostModel{
		ID:          post.ID,
		PublisherID: post.Publisher.ID,
		Content:     post.Content,
	}
	if err := r.db.Create(postModel).Error; err != nil {
		return err
	}

	created, err := r.GetByID(postModel.ID)
	if err != nil {
		return err
	}
	*post = *created
	return nil
}

func (r *postRepository) GetByID(id string) (*entity.Post, error) {
	var postModel model.PostModel
	if err := withGraph(r.db).Where("id = ?", id).First(&postModel).Error; err != nil {
		return nil, err
	}
	return ToPostEntity(&postModel), nil
}

func (r *postRepository) List(limit, offset int) ([]*entity.Post, error) {
	var postModels []model.PostModel
	query := withGraph(r.db).Order("posts.created_at DESC")
	if limit > 0 {
		query = query.Limit(limit).Offset(offset)
	}
	if err := query.Find(&postModels).Error; err != nil {
		return nil, err
	}

	posts := make([]*entity.Post, len(postModels))
	for i := range postModels {
		posts[i] = ToPostEntity(&postModels[i])
	}
	return posts, nil
}

func (r *postRepository) UpdateContent(id, content string) error {
	result := r.db.Model(&model.PostModel{}).Where("id = ?", id).Update("content", content)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *postRepository) Delete(id string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&model.ReactionModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("comment_id IN (?)",
			tx.Model(&model.CommentModel{}).Select("id").Where("post_id = ?", id),
		).Delete(&model.ReactionModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", id).Delete(&model.CommentModel{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&model.PostModel{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// ToggleReaction applies the add/switch/remove decision inside one
// transaction with the reactor's row locked, so concurrent toggles from
// different users on the same post cannot lose each other's updates.
func (r *postRepository) ToggleReaction(postID, userID string, kind entity.ReactionKind) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Select("id").First(&model.PostModel{}, "id = ?", postID).Error; err != nil {
			return err
		}
		return toggle(tx, userID, kind, model.ReactionModel{UserID: userID, PostID: &postID, Kind: string(kind)},
			"post_id = ? AND comment_id IS NULL", postID)
	})
}

func (r *postRepository) ToggleCommentReaction(postID, commentID, userID string, kind entity.ReactionKind) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		err := tx.Select("id").
			First(&model.CommentModel{}, "id = ? AND post_id = ?", commentID, postID).Error
		if err != nil {
			return err
		}
		return toggle(tx, userID, kind, model.ReactionModel{UserID: userID, CommentID: &commentID, Kind: string(kind)},
			"comment_id = ?", commentID)
	})
}

func toggle(tx *gorm.DB, userID string, kind entity.ReactionKind, fresh model.ReactionModel, targetCond string, targetArg string) error {
	var existing model.ReactionModel
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where(targetCond, targetArg).
		Where("user_id = ?", userID).
		First(&existing).Error

	var existingKind *entity.ReactionKind
	switch {
	case err == nil:
		k := entity.ReactionKind(existing.Kind)
		existingKind = &k
	case errors.Is(err, gorm.ErrRecordNotFound):
		// first reaction from this user
	default:
		return err
	}

	switch entity.DecideToggle(existingKind, kind) {
	case entity.ToggleRemove:
		return tx.Delete(&existing).Error
	case entity.ToggleSwitch:
		if err := tx.Delete(&existing).Error; err != nil {
			return err
		}
		return tx.Create(&fresh).Error
	default:
		return tx.Create(&fresh).Error
	}
}

func (r *postRepository) AddComment(postID, commenterID, content string) (string, error) {
	commentModel := &model.CommentModel{
		PostID:      postID,
		CommenterID: commenterID,
		Content:     content,
	}

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Select("id").First(&model.PostModel{}, "id = ?", postID).Error; err != nil {
			return err
		}
		return tx.Create(commentModel).Error
	})
	if err != nil {
		return "", err
	}
	return commentModel.ID, nil
}

func (r *postRepository) GetComment(postID, commentID string) (*entity.Comment, error) {
	var commentModel model.CommentModel
	err := r.db.
		Preload("Commenter").
		Preload("Reacts", func(db *gorm.DB) *gorm.DB {
			return db.Order("reactions.created_at ASC")
		}).
		Preload("Reacts.User").
		Where("id = ? AND post_id = ?", commentID, postID).
		First(&commentModel).Error
	if err != nil {
		return nil, err
	}

	comment := ToCommentEntity(&commentModel)
	return &comment, nil
}

func (r *postRepository) UpdateComment(postID, commentID, content string) error {
	result := r.db.Model(&model.CommentModel{}).
		Where("id = ? AND post_id = ?", commentID, postID).
		Update("content", content)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *postRepository) DeleteComment(postID, commentID string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("comment_id = ?", commentID).Delete(&model.ReactionModel{}).Error; err != nil {
			return err
		}

		result := tx.Where("id = ? AND post_id = ?", commentID, postID).Delete(&model.CommentModel{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
