package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strconv"
	"strings"

	"connectin/internal/middleware"
	"connectin/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
)

const (
	sessionUserKey     = "user_id"
	sessionUserNameKey = "user_name"
	flashKey           = "flash"
)

// PageResult is the outcome a mutating handler hands back to the browser:
// which page to land on and which one-shot messages to show there.
type PageResult struct {
	messages map[string][]string
	target   string
}

// Result starts an empty PageResult.
func Result() *PageResult {
	return &PageResult{messages: map[string][]string{}}
}

// Error queues error messages for the next rendered page.
func (r *PageResult) Error(msgs ...string) *PageResult {
	r.messages["error"] = append(r.messages["error"], msgs...)
	return r
}

// Success queues success messages for the next rendered page.
func (r *PageResult) Success(msgs ...string) *PageResult {
	r.messages["success"] = append(r.messages["success"], msgs...)
	return r
}

// Redirect sets the page the browser is sent to.
func (r *PageResult) Redirect(target string) *PageResult {
	r.target = target
	return r
}

// commit stores the queued flash messages in the session and issues the
// redirect. Messages survive exactly one subsequent render.
func (s *Server) commit(c *fiber.Ctx, r *PageResult) error {
	if len(r.messages) > 0 {
		sess, err := s.sessions.Get(c)
		if err != nil {
			middleware.Logger.ErrorContext(c.UserContext(), "session unavailable, dropping flash",
				slog.String("error", err.Error()))
		} else {
			encoded, _ := json.Marshal(r.messages)
			sess.Set(flashKey, string(encoded))
			if err := sess.Save(); err != nil {
				middleware.Logger.ErrorContext(c.UserContext(), "failed to save session",
					slog.String("error", err.Error()))
			}
		}
	}
	return c.Redirect(r.target, fiber.StatusSeeOther)
}

// takeFlash pops queued flash messages from the session, if any.
func takeFlash(sess *session.Session) map[string][]string {
	raw, ok := sess.Get(flashKey).(string)
	if !ok || raw == "" {
		return nil
	}
	sess.Delete(flashKey)
	var messages map[string][]string
	if err := json.Unmarshal([]byte(raw), &messages); err != nil {
		return nil
	}
	return messages
}

// render renders a view inside the main layout, attaching the signed-in
// user and any pending flash messages. Handlers may pre-populate "Flash"
// in bind to show messages immediately without a redirect.
func (s *Server) render(c *fiber.Ctx, name string, bind fiber.Map) error {
	if bind == nil {
		bind = fiber.Map{}
	}
	sess, err := s.sessions.Get(c)
	if err == nil {
		if uid, ok := sessionUserID(sess); ok {
			bind["CurrentUserID"] = uid
			if userName, ok := sess.Get(sessionUserNameKey).(string); ok {
				bind["CurrentUserName"] = userName
			}
		}
		if _, present := bind["Flash"]; !present {
			if flash := takeFlash(sess); flash != nil {
				bind["Flash"] = flash
				if err := sess.Save(); err != nil {
					middleware.Logger.ErrorContext(c.UserContext(), "failed to save session",
						slog.String("error", err.Error()))
				}
			}
		}
	}
	return c.Render(name, bind, "layouts/main")
}

func (s *Server) renderNotFound(c *fiber.Ctx, message string) error {
	c.Status(fiber.StatusNotFound)
	return s.render(c, "404", fiber.Map{"Title": "Page Not Found", "Message": message})
}

// AuthRequired guards pages that need a signed-in user. Anonymous visitors
// are bounced to the login page with a hint.
func (s *Server) AuthRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, err := s.sessions.Get(c)
		if err != nil {
			return s.commit(c, Result().Error("Please login to continue").Redirect("/login"))
		}
		uid, ok := sessionUserID(sess)
		if !ok {
			return s.commit(c, Result().Error("Please login to continue").Redirect("/login"))
		}
		c.Locals("userID", uid)
		c.SetUserContext(context.WithValue(c.UserContext(), middleware.UserIDKey, uid))
		return c.Next()
	}
}

// currentUserID returns the signed-in user's id, or 0 for anonymous visitors.
func (s *Server) currentUserID(c *fiber.Ctx) uint {
	if uid, ok := c.Locals("userID").(uint); ok {
		return uid
	}
	sess, err := s.sessions.Get(c)
	if err != nil {
		return 0
	}
	uid, _ := sessionUserID(sess)
	return uid
}

// sessionUserID reads the signed-in user id from session data, tolerating
// the numeric widenings the storage codec may apply.
func sessionUserID(sess *session.Session) (uint, bool) {
	switch v := sess.Get(sessionUserKey).(type) {
	case uint:
		return v, true
	case uint64:
		return uint(v), true
	case int:
		if v > 0 {
			return uint(v), true
		}
	case int64:
		if v > 0 {
			return uint(v), true
		}
	case float64:
		if v > 0 {
			return uint(v), true
		}
	}
	return 0, false
}

// parseID parses a numeric path parameter.
func parseID(c *fiber.Ctx, name string) (uint, error) {
	raw := c.Params(name)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, models.NewNotFoundError("page", raw)
	}
	return uint(id), nil
}

// referrerOr mirrors the browser back to the profile page that initiated an
// engagement action, falling back to the given page otherwise.
func referrerOr(c *fiber.Ctx, fallback string) string {
	ref := c.Get(fiber.HeaderReferer)
	if ref != "" && strings.Contains(ref, "/u/") {
		return ref
	}
	return fallback
}

// flashMessages maps an error to what the user should read. Anything that
// is not a deliberate user-facing failure degrades to a generic message.
func flashMessages(err error) []string {
	var appErr *models.AppError
	if errors.As(err, &appErr) && appErr.Code != models.CodeStorage {
		return appErr.UserMessages()
	}
	return []string{"Something went wrong, please try again"}
}

// failRedirect logs unexpected failures and sends the user to target with
// an appropriate flash message.
func (s *Server) failRedirect(c *fiber.Ctx, err error, target string) error {
	var appErr *models.AppError
	if !errors.As(err, &appErr) || appErr.Code == models.CodeStorage {
		middleware.Logger.ErrorContext(c.UserContext(), "request failed",
			slog.String("path", c.Path()),
			slog.String("error", err.Error()))
	}
	return s.commit(c, Result().Error(flashMessages(err)...).Redirect(target))
}
