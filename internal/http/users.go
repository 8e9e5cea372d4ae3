package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/libraryhub/libraryhub/internal/auth"
	"github.com/libraryhub/libraryhub/internal/database/users"
	"github.com/libraryhub/libraryhub/internal/entities"
)

// UserStore defines database operations for user management.
type UserStore interface {
	GetByID(id uint) (*entities.User, error)
	List() ([]entities.User, error)
	Update(user *entities.User) error
	Delete(id uint) error
}

// UsersController handles registration and user administration.
type UsersController struct {
	authService *auth.Service
	store       UserStore
}

func NewUsersController(authService *auth.Service, store UserStore) *UsersController {
	return &UsersController{authService: authService, store: store}
}

type registerRequest struct {
	Email    string `json:"email" binding:"required"`
	Username string `json:"username" binding:"required,max=25"`
	Password string `json:"password" binding:"required"`
}

type userUpdateRequest struct {
	Username *string `json:"username"`
	Role     *string `json:"role"`
	IsActive *bool   `json:"is_active"`
}

// Register creates a new user account.
// POST /users
func (uc *UsersController) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "email, username and password are required")
		return
	}

	user, err := uc.authService.Register(req.Email, req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrUserExists):
			respondConflict(c, "user already exists")
		case errors.Is(err, auth.ErrEmailInvalid),
			errors.Is(err, auth.ErrUsernameRequired),
			errors.Is(err, auth.ErrPasswordTooShort),
			errors.Is(err, auth.ErrPasswordTooLong):
			respondBadRequest(c, err.Error())
		default:
			respondInternalError(c, err, "register user")
		}
		return
	}

	c.JSON(http.StatusCreated, user)
}

// Me returns the currently authenticated user.
// GET /users/me
func (uc *UsersController) Me(c *gin.Context) {
	user, err := uc.store.GetByID(GetUserID(c))
	if err != nil {
		respondNotFound(c, "user")
		return
	}
	c.JSON(http.StatusOK, user)
}

// List returns all registered users. Admin only.
// GET /users
func (uc *UsersController) List(c *gin.Context) {
	all, err := uc.store.List()
	if err != nil {
		respondInternalError(c, err, "list users")
		return
	}
	c.JSON(http.StatusOK, all)
}

// Get returns a user by ID. Admin only.
// GET /users/:id
func (uc *UsersController) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	user, err := uc.store.GetByID(id)
	if err != nil {
		if errors.Is(err, users.ErrNotFound) {
			respondNotFound(c, "user")
			return
		}
		respondInternalError(c, err, "get user")
		return
	}
	c.JSON(http.StatusOK, user)
}

// Update partially updates a user. Owners may change their username;
// admins may also change role and active status.
// PATCH /users/:id
func (uc *UsersController) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req userUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	user, err := uc.store.GetByID(id)
	if err != nil {
		if errors.Is(err, users.ErrNotFound) {
			respondNotFound(c, "user")
			return
		}
		respondInternalError(c, err, "get user")
		return
	}

	isAdmin := auth.GetRole(c) == entities.UserRoleAdmin
	isOwner := GetUserID(c) == id
	if !isAdmin && !isOwner {
		respondForbidden(c, "not enough permissions")
		return
	}

	if req.Username != nil {
		user.Username = *req.Username
	}
	if isAdmin {
		if req.Role != nil {
			role := entities.UserRole(*req.Role)
			if role != entities.UserRoleUser && role != entities.UserRoleAdmin {
				respondBadRequest(c, "invalid role")
				return
			}
			user.Role = role
		}
		if req.IsActive != nil {
			user.IsActive = *req.IsActive
		}
	}

	if err := uc.store.Update(user); err != nil {
		respondInternalError(c, err, "update user")
		return
	}
	c.JSON(http.StatusOK, user)
}

// Delete removes a user. Owners may delete themselves; admins anyone.
// DELETE /users/:id
func (uc *UsersController) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if _, err := uc.store.GetByID(id); err != nil {
		if errors.Is(err, users.ErrNotFound) {
			respondNotFound(c, "user")
			return
		}
		respondInternalError(c, err, "get user")
		return
	}

	isAdmin := auth.GetRole(c) == entities.UserRoleAdmin
	isOwner := GetUserID(c) == id
	if !isAdmin && !isOwner {
		respondForbidden(c, "not enough permissions")
		return
	}

	if err := uc.store.Delete(id); err != nil {
		respondInternalError(c, err, "delete user")
		return
	}
	c.Status(http.StatusNoContent)
}
