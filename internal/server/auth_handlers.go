package server

import (
	"log/slog"

	"connectin/internal/middleware"
	"connectin/internal/service"

	"github.com/gofiber/fiber/v2"
)

// ShowRegister handles GET /register
func (s *Server) ShowRegister(c *fiber.Ctx) error {
	if s.currentUserID(c) != 0 {
		return c.Redirect("/feed", fiber.StatusSeeOther)
	}
	return s.render(c, "register", fiber.Map{"Title": "Join ConnectIn"})
}

// Register handles POST /register
func (s *Server) Register(c *fiber.Ctx) error {
	input := service.RegisterInput{
		Name:     c.FormValue("name"),
		Email:    c.FormValue("email"),
		Password: c.FormValue("password"),
	}

	user, err := s.authService.Register(c.UserContext(), input)
	if err != nil {
		return s.failRedirect(c, err, "/register")
	}

	middleware.Logger.InfoContext(c.UserContext(), "user registered",
		slog.Any("user_id", user.ID))
	return s.commit(c, Result().
		Success("Account created! Please log in.").
		Redirect("/login"))
}

// ShowLogin handles GET /login
func (s *Server) ShowLogin(c *fiber.Ctx) error {
	if s.currentUserID(c) != 0 {
		return c.Redirect("/feed", fiber.StatusSeeOther)
	}
	return s.render(c, "login", fiber.Map{"Title": "Sign In"})
}

// Login handles POST /login
func (s *Server) Login(c *fiber.Ctx) error {
	email := c.FormValue("email")
	password := c.FormValue("password")
	if email == "" || password == "" {
		return s.commit(c, Result().
			Error("Email and password are required").
			Redirect("/login"))
	}

	user, err := s.authService.Login(c.UserContext(), email, password)
	if err != nil {
		return s.failRedirect(c, err, "/login")
	}

	sess, err := s.sessions.Get(c)
	if err != nil {
		return s.failRedirect(c, err, "/login")
	}
	// Fresh session id on privilege change
	if err := sess.Regenerate(); err != nil {
		middleware.Logger.ErrorContext(c.UserContext(), "session regenerate failed",
			slog.String("error", err.Error()))
	}
	sess.Set(sessionUserKey, user.ID)
	sess.Set(sessionUserNameKey, user.Name)
	if err := sess.Save(); err != nil {
		return s.failRedirect(c, err, "/login")
	}

	middleware.Logger.InfoContext(c.UserContext(), "user logged in",
		slog.Any("user_id", user.ID))
	return c.Redirect("/feed", fiber.StatusSeeOther)
}

// Logout handles GET /logout
func (s *Server) Logout(c *fiber.Ctx) error {
	sess, err := s.sessions.Get(c)
	if err == nil {
		if err := sess.Destroy(); err != nil {
			middleware.Logger.ErrorContext(c.UserContext(), "session destroy failed",
				slog.String("error", err.Error()))
		}
	}
	return c.Redirect("/", fiber.StatusSeeOther)
}
