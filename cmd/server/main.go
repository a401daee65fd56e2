package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	"Inkwell/internal/api/middleware"
	"Inkwell/internal/api/routes"
	"Inkwell/internal/auth"
	"Inkwell/internal/config"
	"Inkwell/internal/core/comments"
	"Inkwell/internal/core/posts"
	"Inkwell/internal/core/users"
	"Inkwell/internal/db/memory"
	"Inkwell/internal/db/migrations"
	postgresRepo "Inkwell/internal/db/postgres"
)

// repositories is the storage surface the services are built on
type repositories struct {
	users    users.UserRepository
	posts    posts.Repository
	comments comments.Repository
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Invalid configuration:", err)
	}

	tokens, err := auth.NewTokenService(auth.TokenConfig{
		Secret: cfg.TokenSecret,
		Issuer: cfg.TokenIssuer,
		TTL:    cfg.TokenTTL,
	})
	if err != nil {
		log.Fatal("Failed to create token service:", err)
	}

	repos, closeStore := openStorage(cfg)
	defer closeStore()

	authors, err := users.NewAuthorResolver(repos.users, cfg.AuthorCacheSize)
	if err != nil {
		log.Fatal("Failed to create author resolver:", err)
	}

	// Initialize services
	userService := users.NewUserService(repos.users, tokens, cfg.BcryptCost)
	postService := posts.NewPostService(repos.posts, repos.comments, authors, nil)
	commentService := comments.NewCommentService(repos.comments, authors, nil)

	r := routes.NewRouter(routes.Services{
		Users:    userService,
		Posts:    postService,
		Comments: commentService,
	}, middleware.NewBearerAuthMiddleware(tokens), cfg.CORSAllowedOrigins)

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		fmt.Printf("Inkwell starting on port %s (storage: %s)\n", cfg.Port, cfg.StorageBackend)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Server failed:", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Println("Shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("Graceful shutdown failed: %v", err)
	}
}

// openStorage selects the storage backend. The returned func releases it.
func openStorage(cfg config.Config) (repositories, func()) {
	if cfg.StorageBackend == config.StorageMemory {
		log.Println("WARNING: using in-memory storage, data is lost on restart")
		store := memory.NewStore()
		return repositories{
			users:    store.Users(),
			posts:    store.Posts(),
			comments: store.Comments(),
		}, func() {}
	}

	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database:", err)
	}

	log.Println("Connected to database")

	if err := migrations.Up(db); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	log.Println("Migrations completed successfully")

	return repositories{
			users:    postgresRepo.NewUserRepository(db),
			posts:    postgresRepo.NewPostRepository(db),
			comments: postgresRepo.NewCommentRepository(db),
		}, func() {
			if err := db.Close(); err != nil {
				log.Printf("Failed to close database: %v", err)
			}
		}
}
