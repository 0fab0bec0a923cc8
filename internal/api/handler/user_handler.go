package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/sentinelforce/agency-api/internal/core/domain"
	"github.com/sentinelforce/agency-api/internal/core/ports"
)

// UserHandler handles HTTP requests for user accounts.
type UserHandler struct {
	service ports.UserService
}

func NewUserHandler(service ports.UserService) *UserHandler {
	return &UserHandler{service: service}
}

// --- Request types ---

type createUserRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	PhotoURL string `json:"photoURL"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	Role     string `json:"role"`
	Password string `json:"password"`
	UID      string `json:"uid"`
	IsAdmin  *bool  `json:"isAdmin"`
}

// updateUserRequest keeps email and isAdmin raw so that any value the caller
// sends for them, null included, is caught and refused.
type updateUserRequest struct {
	Name          *string         `json:"name"`
	PhotoURL      *string         `json:"photoURL"`
	Phone         *string         `json:"phone"`
	Address       *string         `json:"address"`
	Role          *string         `json:"role"`
	EmailVerified *bool           `json:"emailVerified"`
	LastLogin     *time.Time      `json:"lastLogin"`
	Password      *string         `json:"password"`
	UID           *string         `json:"uid"`
	Email         json.RawMessage `json:"email" swaggertype:"string"`
	IsAdmin       json.RawMessage `json:"isAdmin" swaggertype:"boolean"`
}

type setAdminRequest struct {
	IsAdmin              any    `json:"isAdmin"`
	RequestingAdminEmail string `json:"requestingAdminEmail"`
}

// List handles GET /users?email=.
//
// @Summary      List all users
// @Tags         users
// @Produce      json
// @Param        email  query     string  true  "Email of the requesting admin"
// @Success      200    {array}   domain.PublicUser
// @Failure      400    {object}  ErrorResponse
// @Failure      403    {object}  ErrorResponse
// @Failure      500    {object}  ErrorResponse
// @Router       /users [get]
func (h *UserHandler) List(c echo.Context) error {
	users, err := h.service.List(c.Request().Context(), c.QueryParam("email"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, users)
}

// Get handles GET /users/:email.
//
// @Summary      Get a user by email
// @Tags         users
// @Produce      json
// @Param        email  path      string  true  "User email"
// @Success      200    {object}  domain.PublicUser
// @Failure      404    {object}  ErrorResponse
// @Router       /users/{email} [get]
func (h *UserHandler) Get(c echo.Context) error {
	email, err := pathParam(c, "email")
	if err != nil {
		return err
	}

	user, err := h.service.Get(c.Request().Context(), email)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// Create handles POST /users.
//
// @Summary      Register a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      createUserRequest  true  "User profile"
// @Success      201   {object}  domain.PublicUser
// @Failure      400   {object}  ErrorResponse
// @Router       /users [post]
func (h *UserHandler) Create(c echo.Context) error {
	var req createUserRequest
	if err := c.Bind(&req); err != nil {
		return invalidPayload()
	}

	user, err := h.service.Create(c.Request().Context(), ports.CreateUserInput{
		Email:    req.Email,
		Name:     req.Name,
		PhotoURL: req.PhotoURL,
		Phone:    req.Phone,
		Address:  req.Address,
		Role:     req.Role,
		Password: req.Password,
		UID:      req.UID,
		IsAdmin:  req.IsAdmin,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, user)
}

// Update handles PATCH /users/:email.
//
// @Summary      Update a user profile
// @Description  email and isAdmin cannot be changed here.
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        email  path      string             true  "User email"
// @Param        body   body      updateUserRequest  true  "Fields to overwrite"
// @Success      200    {object}  domain.PublicUser
// @Failure      403    {object}  ErrorResponse
// @Failure      404    {object}  ErrorResponse
// @Router       /users/{email} [patch]
func (h *UserHandler) Update(c echo.Context) error {
	email, err := pathParam(c, "email")
	if err != nil {
		return err
	}

	var req updateUserRequest
	if err := c.Bind(&req); err != nil {
		return invalidPayload()
	}

	patch := domain.UserPatch{
		Name:          req.Name,
		PhotoURL:      req.PhotoURL,
		Phone:         req.Phone,
		Address:       req.Address,
		Role:          req.Role,
		EmailVerified: req.EmailVerified,
		LastLogin:     req.LastLogin,
		Password:      req.Password,
		UID:           req.UID,
	}
	if len(req.Email) > 0 {
		var newEmail string
		if json.Unmarshal(req.Email, &newEmail) != nil {
			newEmail = string(req.Email)
		}
		patch.Email = &newEmail
	}
	if len(req.IsAdmin) > 0 {
		var isAdmin bool
		_ = json.Unmarshal(req.IsAdmin, &isAdmin)
		patch.IsAdmin = &isAdmin
	}

	user, err := h.service.Update(c.Request().Context(), email, patch)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// SetAdmin handles PATCH /users/admin/:id.
//
// @Summary      Grant or revoke admin status
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        id    path      string           true  "User id"
// @Param        body  body      setAdminRequest  true  "New status and requesting admin"
// @Success      200   {object}  domain.PublicUser
// @Failure      400   {object}  ErrorResponse
// @Failure      403   {object}  ErrorResponse
// @Failure      404   {object}  ErrorResponse
// @Router       /users/admin/{id} [patch]
func (h *UserHandler) SetAdmin(c echo.Context) error {
	var req setAdminRequest
	if err := c.Bind(&req); err != nil {
		return invalidPayload()
	}

	user, err := h.service.SetAdmin(c.Request().Context(), ports.SetAdminInput{
		TargetID:       c.Param("id"),
		IsAdmin:        req.IsAdmin,
		RequesterEmail: req.RequestingAdminEmail,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// RoleCheck handles GET /users/role-check/:email.
//
// @Summary      Role summary for a user
// @Tags         users
// @Produce      json
// @Param        email  path      string  true  "User email"
// @Success      200    {object}  domain.RoleSummary
// @Failure      404    {object}  ErrorResponse
// @Router       /users/role-check/{email} [get]
func (h *UserHandler) RoleCheck(c echo.Context) error {
	email, err := pathParam(c, "email")
	if err != nil {
		return err
	}

	summary, err := h.service.RoleCheck(c.Request().Context(), email)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, summary)
}
