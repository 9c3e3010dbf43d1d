package server

import (
	"log/slog"

	"connectin/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

// Search handles GET /search
func (s *Server) Search(c *fiber.Ctx) error {
	query := c.Query("q")
	viewerID := s.currentUserID(c)

	results, err := s.searchService.Search(c.UserContext(), query, viewerID)
	if err != nil {
		middleware.Logger.ErrorContext(c.UserContext(), "search failed",
			slog.String("query", query),
			slog.String("error", err.Error()))
		return s.render(c, "search", fiber.Map{
			"Title": "Search",
			"Query": query,
			"Flash": map[string][]string{"error": {"Search is unavailable right now, please try again"}},
		})
	}

	return s.render(c, "search", fiber.Map{
		"Title": "Search",
		"Query": query,
		"Users": results.Users,
		"Posts": results.Posts,
	})
}
