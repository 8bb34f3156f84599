package persistent

import (
	"ripple/internal/entity"
	"ripple/internal/model"
)

func ToUserEntity(m *model.UserModel) *entity.User {
	if m == nil {
		return nil
	}

	return &entity.User{
		ID:                   m.ID,
		Name:                 m.Name,
		Email:                m.Email,
		Age:                  m.Age,
		Photo:                m.Photo,
		Role:                 entity.Role(m.Role),
		IsActive:             m.IsActive,
		PasswordHash:         m.Password,
		WrongPassword:        m.WrongPassword,
		Blocked:              m.Blocked,
		BlockedUntil:         m.BlockedUntil,
		PasswordChangedAt:    m.PasswordChangedAt,
		PasswordResetToken:   m.PasswordResetToken,
		PasswordResetExpires: m.PasswordResetExpires,
		CreatedAt:            m.CreatedAt,
		UpdatedAt:            m.UpdatedAt,
	}
}

func ToUserModel(e *entity.User) *model.UserModel {
	if e == nil {
		return nil
	}

	return &model.UserModel{
		ID:                   e.ID,
		Name:                 e.Name,
		Email:                e.Email,
		Age:                  e.Age,
		Photo:                e.Photo,
		Role:                 string(e.Role),
		IsActive:             e.IsActive,
		Password:             e.PasswordHash,
		WrongPassword:        e.WrongPassword,
		Blocked:              e.Blocked,
		BlockedUntil:         e.BlockedUntil,
		PasswordChangedAt:    e.PasswordChangedAt,
		PasswordResetToken:   e.PasswordResetToken,
		PasswordResetExpires: e.PasswordResetExpires,
		CreatedAt:            e.CreatedAt,
		UpdatedAt:            e.UpdatedAt,
	}
}

func toUserRef(m *model.UserModel) entity.UserRef {
	if m == nil {
		return entity.UserRef{}
	}
	return entity.UserRef{ID: m.ID, Name: m.Name, Photo: m.Photo}
}

func ToReactionEntity(m *model.ReactionModel) entity.Reaction {
	return entity.Reaction{
		ID:        m.ID,
		User:      toUserRef(&m.User),
		Kind:      entity.ReactionKind(m.Kind),
		CreatedAt: m.CreatedAt,
	}
}

func ToCommentEntity(m *model.CommentModel) entity.Comment {
	reacts := make([]entity.Reaction, len(m.Reacts))
	for i := range m.Reacts {
		reacts[i] = ToReactionEntity(&m.Reacts[i])
	}

	return entity.Comment{
		ID:        m.ID,
		Commenter: toUserRef(&m.Commenter),
		Content:   m.Content,
		Reacts:    reacts,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func ToPostEntity(m *model.PostModel) *entity.Post {
	if m == nil {
		return nil
	}

	reacts := make([]entity.Reaction, len(m.Reacts))
	for i := range m.Reacts {
		reacts[i] = ToReactionEntity(&m.Reacts[i])
	}

	comments := make([]entity.Comment, len(m.Comments))
	for i := range m.Comments {
		comments[i] = ToCommentEntity(&m.Comments[i])
	}

	return &entity.Post{
		ID:        m.ID,
		Publisher: toUserRef(&m.Publisher),
		Content:   m.Content,
		Reacts:    reacts,
		Comments:  comments,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}
