// auth.go
//
// A study notes, topics and library locations web service
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of studynotes.
// studynotes is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// studynotes is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with studynotes.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/localnerve/studynotes/internal/services"
	"github.com/localnerve/studynotes/internal/utils"
	"gorm.io/gorm"
)

// AuthHandler handles registration, login, logout and the dashboard
type AuthHandler struct {
	DB       *gorm.DB
	Sessions *session.Store
}

type credentials struct {
	Username string `json:"username" form:"username"`
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

// Index handles GET /
func (h *AuthHandler) Index(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"service": "studynotes",
		"ok":      true,
	})
}

// LoginPage handles GET /login
func (h *AuthHandler) LoginPage(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"page":   "login",
		"fields": []string{"username", "email", "password"},
	})
}

// Login handles POST /login
// @Summary Log in
// @Description Exact-match credential login; establishes a 30-day session
// @Tags Auth
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Param body body credentials true "Credentials"
// @Success 302
// @Failure 401 {object} utils.ErrorResponseStruct
// @Router /login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var creds credentials
	if err := c.BodyParser(&creds); err != nil {
		return utils.ErrorResponse(c, "Invalid input", fiber.StatusBadRequest, "auth.validation.input")
	}

	user, err := services.Login(h.DB, creds.Username, creds.Email, creds.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			return utils.ErrorResponse(c, err.Error(), fiber.StatusUnauthorized, "auth.credentials")
		}
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "login")
	}

	if err := h.establishSession(c, user.ID, user.Username); err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "auth.session")
	}

	return c.Redirect("/dashboard", fiber.StatusFound)
}

// RegisterPage handles GET /register
func (h *AuthHandler) RegisterPage(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"page":   "register",
		"fields": []string{"username", "email", "password"},
	})
}

// Register handles POST /register
// @Summary Register an account
// @Description One account per email; logs the new user in immediately
// @Tags Auth
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Param body body credentials true "Account fields"
// @Success 302
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 409 {object} utils.ErrorResponseStruct
// @Router /register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var creds credentials
	if err := c.BodyParser(&creds); err != nil {
		return utils.ErrorResponse(c, "Invalid input", fiber.StatusBadRequest, "auth.validation.input")
	}

	user, err := services.Register(h.DB, creds.Username, creds.Email, creds.Password)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrMissingFields):
			return utils.ErrorResponse(c, err.Error(), fiber.StatusBadRequest, "auth.validation.fields")
		case errors.Is(err, services.ErrEmailRegistered):
			return utils.ErrorResponse(c, err.Error(), fiber.StatusConflict, "auth.validation.email")
		default:
			return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "register")
		}
	}

	// Auto-login after registration
	if err := h.establishSession(c, user.ID, user.Username); err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "auth.session")
	}

	return c.Redirect("/dashboard", fiber.StatusFound)
}

// Logout handles GET /logout
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if sess, err := h.Sessions.Get(c); err == nil {
		_ = sess.Destroy()
	}
	return c.Redirect("/", fiber.StatusFound)
}

// Dashboard handles GET /dashboard (session required)
// @Summary Current user's dashboard data
// @Tags Auth
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 302
// @Router /dashboard [get]
func (h *AuthHandler) Dashboard(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint64)

	username, _ := c.Locals("username").(string)
	email := ""
	if user, err := services.GetUser(h.DB, userID); err == nil {
		username = user.Username
		email = user.Email
	}

	return c.JSON(fiber.Map{
		"username": username,
		"email":    email,
	})
}

func (h *AuthHandler) establishSession(c *fiber.Ctx, userID uint64, username string) error {
	sess, err := h.Sessions.Get(c)
	if err != nil {
		return err
	}
	// Fresh id on login to avoid session fixation
	if err := sess.Regenerate(); err != nil {
		return err
	}
	sess.Set("user_id", userID)
	sess.Set("username", username)
	return sess.Save()
}
