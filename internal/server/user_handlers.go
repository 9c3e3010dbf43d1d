package server

import (
	"fmt"
	"log/slog"

	"connectin/internal/middleware"
	"connectin/internal/models"
	"connectin/internal/service"

	"github.com/gofiber/fiber/v2"
)

// ShowProfile handles GET /u/:id. Profiles are public; the engagement
// controls only render for signed-in visitors.
func (s *Server) ShowProfile(c *fiber.Ctx) error {
	targetID, err := parseID(c, "id")
	if err != nil {
		return s.renderNotFound(c, "That profile does not exist")
	}
	viewerID := s.currentUserID(c)

	profile, err := s.userService.Profile(c.UserContext(), targetID, viewerID)
	if err != nil {
		if models.IsCode(err, models.CodeNotFound) {
			return s.renderNotFound(c, "That profile does not exist")
		}
		return s.failRedirect(c, err, "/feed")
	}

	return s.render(c, "profile", fiber.Map{
		"Title":        profile.User.Name,
		"Profile":      profile,
		"IsOwnProfile": viewerID != 0 && viewerID == targetID,
		"ProfilePath":  fmt.Sprintf("/u/%d", targetID),
	})
}

// EditProfile handles POST /u/:id/edit
func (s *Server) EditProfile(c *fiber.Ctx) error {
	targetID, err := parseID(c, "id")
	if err != nil {
		return s.renderNotFound(c, "That profile does not exist")
	}
	profilePath := fmt.Sprintf("/u/%d", targetID)

	avatarPath, err := s.saveUpload(c, "avatar")
	if err != nil {
		return s.failRedirect(c, err, profilePath)
	}

	input := service.UpdateProfileInput{
		ActorID:   s.currentUserID(c),
		TargetID:  targetID,
		Headline:  c.FormValue("headline"),
		Bio:       c.FormValue("bio"),
		Avatar:    avatarPath,
		HasAvatar: avatarPath != "",
	}
	if err := s.userService.UpdateProfile(c.UserContext(), input); err != nil {
		return s.failRedirect(c, err, profilePath)
	}

	return s.commit(c, Result().
		Success("Profile updated").
		Redirect(profilePath))
}

// ToggleFollow handles POST /u/:id/follow
func (s *Server) ToggleFollow(c *fiber.Ctx) error {
	followeeID, err := parseID(c, "id")
	if err != nil {
		return s.failRedirect(c, err, "/feed")
	}
	profilePath := fmt.Sprintf("/u/%d", followeeID)

	if _, err := s.followService.ToggleFollow(c.UserContext(), s.currentUserID(c), followeeID); err != nil {
		return s.failRedirect(c, err, profilePath)
	}
	return c.Redirect(profilePath, fiber.StatusSeeOther)
}

// DeleteAccount handles POST /account/delete
func (s *Server) DeleteAccount(c *fiber.Ctx) error {
	userID := s.currentUserID(c)

	if err := s.userService.DeleteAccount(c.UserContext(), userID); err != nil {
		return s.failRedirect(c, err, fmt.Sprintf("/u/%d", userID))
	}

	if sess, err := s.sessions.Get(c); err == nil {
		if err := sess.Destroy(); err != nil {
			middleware.Logger.ErrorContext(c.UserContext(), "session destroy failed",
				slog.String("error", err.Error()))
		}
	}

	middleware.Logger.InfoContext(c.UserContext(), "account deleted",
		slog.Any("user_id", userID))
	return s.commit(c, Result().
		Success("Your account has been deleted").
		Redirect("/"))
}
