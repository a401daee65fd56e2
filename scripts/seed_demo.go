//go:build ignore

// Seeds a development database with demo users, posts, likes and comments.
// Usage: go run scripts/seed_demo.go
package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"os"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"Inkwell/internal/config"
	"Inkwell/internal/core/comments"
	"Inkwell/internal/core/posts"
	"Inkwell/internal/core/users"
	"Inkwell/internal/db/migrations"
	postgresRepo "Inkwell/internal/db/postgres"
)

// Demo accounts share this password
const demoPassword = "inkwell-demo"

// seedTokens satisfies users.TokenIssuer; seeding never hands tokens out
type seedTokens struct{}

func (seedTokens) Issue(userID string) (string, error) { return "seed-" + userID, nil }

var userNames = []string{
	"sarah_jenkins", "michael_chen", "jessica_rodriguez", "david_nguyen",
	"emily_williams", "james_patel", "ashley_garcia", "robert_kim",
}

var postTitles = []string{
	"Notes from a week without meetings",
	"What I learned rewriting our build in a weekend",
	"A short defense of boring technology",
	"Reading list for the long winter",
	"Why my sourdough keeps failing",
}

var postBodies = []string{
	"Started as an experiment and turned into a habit. Here is what changed.",
	"Most of the speedup came from deleting things, not adding them.",
	"The tools nobody talks about are usually the ones that never page you.",
	"Five books, two essays and one very long paper I keep coming back to.",
	"Hydration, temperature, patience. Mostly patience.",
}

var commentBodies = []string{
	"This is exactly what I needed to read today.",
	"Couldn't agree more.",
	"Saving this for later, thanks for writing it up!",
	"Interesting take. I had the opposite experience.",
	"Would love a follow-up on this.",
	"Sharing with my team.",
}

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("Warning: failed to load .env: %v", err)
	}

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		dbURL = config.Default().DatabaseURL
	}

	db, err := sql.Open("postgres", dbURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := migrations.Up(db); err != nil {
		log.Fatalf("Failed to migrate: %v", err)
	}

	ctx := context.Background()
	userRepo := postgresRepo.NewUserRepository(db)
	commentRepo := postgresRepo.NewCommentRepository(db)
	authors, err := users.NewAuthorResolver(userRepo, users.DefaultAuthorCacheSize)
	if err != nil {
		log.Fatalf("Failed to create author resolver: %v", err)
	}

	userService := users.NewUserService(userRepo, seedTokens{}, 0)
	postService := posts.NewPostService(postgresRepo.NewPostRepository(db), commentRepo, authors, nil)
	commentService := comments.NewCommentService(commentRepo, authors, nil)

	log.Println("=== Creating Users ===")
	var userIDs []string
	for _, name := range userNames {
		id, err := ensureUser(ctx, userService, name)
		if err != nil {
			log.Printf("Warning: failed to create user %s: %v", name, err)
			continue
		}
		userIDs = append(userIDs, id)
	}
	if len(userIDs) == 0 {
		log.Fatal("No users available, aborting")
	}

	log.Println("\n=== Creating Posts ===")
	var postIDs []string
	for i, title := range postTitles {
		authorID := userIDs[i%len(userIDs)]
		view, err := postService.CreatePost(ctx, authorID, posts.CreatePostRequest{
			Title:   title,
			Content: postBodies[i%len(postBodies)],
		})
		if err != nil {
			log.Printf("Warning: failed to create post %q: %v", title, err)
			continue
		}
		postIDs = append(postIDs, view.ID)
		log.Printf("Created post by %s: %s", view.Author.Handle, title)
	}

	log.Println("\n=== Liking and Commenting ===")
	likes, commentCount := 0, 0
	for _, postID := range postIDs {
		for _, userID := range userIDs {
			// 50% chance of a like
			if rand.Float64() < 0.5 {
				if _, err := postService.ToggleLike(ctx, userID, postID); err != nil {
					log.Printf("Warning: failed to like post: %v", err)
				} else {
					likes++
				}
			}
			// 30% chance of a comment
			if rand.Float64() < 0.3 {
				content := commentBodies[rand.Intn(len(commentBodies))]
				if _, err := commentService.AddComment(ctx, userID, postID, comments.CreateCommentRequest{Content: content}); err != nil {
					log.Printf("Warning: failed to comment: %v", err)
				} else {
					commentCount++
				}
			}
		}
	}

	log.Println("\n=== Summary ===")
	log.Printf("Users: %d", len(userIDs))
	log.Printf("Posts: %d", len(postIDs))
	log.Printf("Likes: %d", likes)
	log.Printf("Comments: %d", commentCount)
	fmt.Printf("\nDone! Log in as any of the demo users with password %q.\n", demoPassword)
}

// ensureUser registers a demo user, reusing the account on reruns
func ensureUser(ctx context.Context, service users.UserService, handle string) (string, error) {
	resp, err := service.Register(ctx, users.RegisterRequest{
		Handle:      handle,
		Password:    demoPassword,
		DisplayName: handle,
	})
	if errors.Is(err, users.ErrHandleAlreadyTaken) {
		resp, err = service.Login(ctx, users.LoginRequest{Handle: handle, Password: demoPassword})
	}
	if err != nil {
		return "", err
	}
	log.Printf("User ready: %s (%s)", resp.User.Handle, resp.User.ID)
	return resp.User.ID, nil
}
