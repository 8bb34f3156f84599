package http

import (
	"net/http"
	"path/filepath"
	"strconv"

	"ripple/internal/entity"
	"ripple/internal/usecase"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	userUseCase usecase.UserUseCase
}

func NewUserHandler(userUseCase usecase.UserUseCase) *UserHandler {
	return &UserHandler{
		userUseCase: userUseCase,
	}
}

type UpdateMeRequest struct {
	Name  *string `json:"name"`
	Email *string `json:"email" binding:"omitempty,email"`

	// Password changes must go through the update-password flow; these
	// fields exist so a misdirected request fails loudly instead of
	// silently ignoring them.
	Password        *string `json:"password"`
	PasswordConfirm *string `json:"password_confirm"`
}

type AdminCreateUserRequest struct {
	Name            string `json:"name" binding:"required"`
	Email           string `json:"email" binding:"required,email"`
	Age             int    `json:"age" binding:"required"`
	Role            string `json:"role" binding:"required"`
	Password        string `json:"password" binding:"required"`
	PasswordConfirm string `json:"password_confirm" binding:"required"`
}

type AdminUpdateUserRequest struct {
	Name  *string `json:"name"`
	Email *string `json:"email" binding:"omitempty,email"`
	Age   *int    `json:"age"`
	Role  *string `json:"role"`
}

// UpdateMe godoc
// @Summary      Update own profile
// @Description  Update name and email; password fields are rejected here
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body UpdateMeRequest true "Profile fields"
// @Success      200  {object}  entity.User
// @Failure      400  {object}  map[string]string
// @Router       /users/me [patch]
func (h *UserHandler) UpdateMe(c *gin.Context) {
	user := mustCurrentUser(c)
	if user == nil {
		return
	}

	var req UpdateMeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Password != nil || req.PasswordConfirm != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "this route is not for password updates, use /users/update-password"})
		return
	}

	updated, err := h.userUseCase.UpdateMe(user.ID, usecase.UpdateMeInput{
		Name:  req.Name,
		Email: req.Email,
	})
	if err != nil {
		respondErr(c, err)
		return
	}

	c.JSON(http.StatusOK, updated)
}

// UploadPhoto godoc
// @Summary      Upload a profile photo
// @Tags         users
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        photo formData file true "Photo image file"
// @Success      200  {object}  entity.User
// @Failure      400  {object}  map[string]string
// @Router       /users/me/photo [post]
func (h *UserHandler) UploadPhoto(c *gin.Context) {
	user := mustCurrentUser(c)
	if user == nil {
		return
	}

	file, err := c.FormFile("photo")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "photo file is required"})
		return
	}

	ext := filepath.Ext(file.Filename)
	if ext != ".jpg" && ext != ".jpeg" && ext != ".png" && ext != ".gif" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid image format, only jpg, jpeg, png and gif are allowed"})
		return
	}

	src, err := file.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to process file"})
		return
	}
	defer src.Close()

	contentType := file.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "image/jpeg"
	}

	updated, err := h.userUseCase.UploadPhoto(user.ID, src, file.Filename, contentType)
	if err != nil {
		respondErr(c, err)
		return
	}

	c.JSON(http.StatusOK, updated)
}

// DeactivateMe godoc
// @Summary      Deactivate own account
// @Description  Soft delete; the account disappears from all reads but the row is kept
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      204
// @Router       /users/me [delete]
func (h *UserHandler) DeactivateMe(c *gin.Context) {
	user := mustCurrentUser(c)
	if user == nil {
		return
	}

	if err := h.userUseCase.DeactivateMe(user.ID); err != nil {
		respondErr(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// ListUsers godoc
// @Summary      List users
// @Tags         users
// @Produce      json
// @Param        limit  query int false "Page size"
// @Param        offset query int false "Page offset"
// @Success      200  {object}  map[string]interface{}
// @Failure      403  {object}  map[string]string
// @Router       /users [get]
func (h *UserHandler) ListUsers(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	users, err := h.userUseCase.List(limit, offset)
	if err != nil {
		respondErr(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"users": users, "count": len(users)})
}

// GetUser godoc
// @Summary      Get a user by ID
// @Tags         users
// @Produce      json
// @Param        id path string true "User ID"
// @Success      200  {object}  entity.User
// @Failure      404  {object}  map[string]string
// @Router       /users/{id} [get]
func (h *UserHandler) GetUser(c *gin.Context) {
	user, err := h.userUseCase.Get(c.Param("id"))
	if err != nil {
		respondErr(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// CreateUser godoc
// @Summary      Create a user with an explicit role
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body AdminCreateUserRequest true "User data"
// @Success      201  {object}  entity.User
// @Failure      400  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Router       /users [post]
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req AdminCreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.userUseCase.AdminCreate(usecase.AdminCreateInput{
		Name:            req.Name,
		Email:           req.Email,
		Age:             req.Age,
		Role:            entity.Role(req.Role),
		Password:        req.Password,
		PasswordConfirm: req.PasswordConfirm,
	})
	if err != nil {
		respondErr(c, err)
		return
	}

	c.JSON(http.StatusCreated, user)
}

// UpdateUser godoc
// @Summary      Update any user
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "User ID"
// @Param        request body AdminUpdateUserRequest true "Fields to change"
// @Success      200  {object}  entity.User
// @Failure      404  {object}  map[string]string
// @Router       /users/{id} [patch]
func (h *UserHandler) UpdateUser(c *gin.Context) {
	var req AdminUpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var role *entity.Role
	if req.Role != nil {
		r := entity.Role(*req.Role)
		role = &r
	}

	user, err := h.userUseCase.AdminUpdate(c.Param("id"), usecase.AdminUpdateInput{
		Name:  req.Name,
		Email: req.Email,
		Age:   req.Age,
		Role:  role,
	})
	if err != nil {
		respondErr(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// DeleteUser godoc
// @Summary      Hard delete a user
// @Description  Allowed for moderators and admins
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "User ID"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Router       /users/{id} [delete]
func (h *UserHandler) DeleteUser(c *gin.Context) {
	if err := h.userUseCase.Delete(c.Param("id")); err != nil {
		respondErr(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
