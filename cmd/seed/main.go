package main

import (
	"flag"
	"log/slog"
	"os"

	"connectin/internal/config"
	"connectin/internal/database"
	"connectin/internal/middleware"
	"connectin/internal/seed"
)

func main() {
	opts := seed.DefaultOptions()
	flag.IntVar(&opts.Users, "users", opts.Users, "number of demo users to create")
	flag.IntVar(&opts.PostsPerUser, "posts", opts.PostsPerUser, "posts per user")
	flag.IntVar(&opts.FollowsPerUser, "follows", opts.FollowsPerUser, "follow edges per user")
	flag.IntVar(&opts.LikesPerUser, "likes", opts.LikesPerUser, "likes per user")
	flag.IntVar(&opts.CommentsPerUser, "comments", opts.CommentsPerUser, "comments per user")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		middleware.Logger.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		middleware.Logger.Error("failed to connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if err := seed.Run(db, opts); err != nil {
		middleware.Logger.Error("seeding failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	middleware.Logger.Info("demo data seeded",
		slog.Int("users", opts.Users),
		slog.String("password", seed.DemoPassword))
}
