package server

import (
	"log/slog"

	"connectin/internal/middleware"
	"connectin/internal/service"

	"github.com/gofiber/fiber/v2"
)

// Feed handles GET /feed
func (s *Server) Feed(c *fiber.Ctx) error {
	viewerID := s.currentUserID(c)

	posts, err := s.postService.Feed(c.UserContext(), viewerID)
	if err != nil {
		middleware.Logger.ErrorContext(c.UserContext(), "failed to load feed",
			slog.String("error", err.Error()))
		return s.render(c, "feed", fiber.Map{
			"Title": "Your Feed",
			"Posts": nil,
			"Flash": map[string][]string{"error": {"Could not load the feed, please try again"}},
		})
	}

	return s.render(c, "feed", fiber.Map{
		"Title": "Your Feed",
		"Posts": posts,
	})
}

// CreatePost handles POST /posts
func (s *Server) CreatePost(c *fiber.Ctx) error {
	userID := s.currentUserID(c)

	imagePath, err := s.saveUpload(c, "image")
	if err != nil {
		return s.failRedirect(c, err, "/feed")
	}

	input := service.CreatePostInput{
		UserID:  userID,
		Content: c.FormValue("content"),
		Image:   imagePath,
	}
	post, err := s.postService.CreatePost(c.UserContext(), input)
	if err != nil {
		return s.failRedirect(c, err, "/feed")
	}

	middleware.Logger.InfoContext(c.UserContext(), "post created",
		slog.Any("post_id", post.ID))
	return c.Redirect("/feed", fiber.StatusSeeOther)
}

// ToggleLike handles POST /posts/:id/like
func (s *Server) ToggleLike(c *fiber.Ctx) error {
	userID := s.currentUserID(c)
	target := referrerOr(c, "/feed")

	postID, err := parseID(c, "id")
	if err != nil {
		return s.failRedirect(c, err, target)
	}

	if _, err := s.postService.ToggleLike(c.UserContext(), userID, postID); err != nil {
		return s.failRedirect(c, err, target)
	}
	return c.Redirect(target, fiber.StatusSeeOther)
}

// AddComment handles POST /posts/:id/comment
func (s *Server) AddComment(c *fiber.Ctx) error {
	userID := s.currentUserID(c)
	target := referrerOr(c, "/feed")

	postID, err := parseID(c, "id")
	if err != nil {
		return s.failRedirect(c, err, target)
	}

	input := service.AddCommentInput{
		UserID:  userID,
		PostID:  postID,
		Content: c.FormValue("content"),
	}
	if _, err := s.commentService.AddComment(c.UserContext(), input); err != nil {
		return s.failRedirect(c, err, target)
	}
	return c.Redirect(target, fiber.StatusSeeOther)
}
