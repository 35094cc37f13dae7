package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/VitaminP8/blogspace/internal/auth"
	"github.com/VitaminP8/blogspace/internal/comment"
	"github.com/VitaminP8/blogspace/internal/config"
	"github.com/VitaminP8/blogspace/internal/handlers"
	"github.com/VitaminP8/blogspace/internal/like"
	"github.com/VitaminP8/blogspace/internal/post"
	"github.com/VitaminP8/blogspace/internal/seed"
	"github.com/VitaminP8/blogspace/internal/storage/memory"
	"github.com/VitaminP8/blogspace/internal/storage/postgres"
	"github.com/VitaminP8/blogspace/internal/storage/supabase"
	"github.com/VitaminP8/blogspace/internal/user"
	"github.com/VitaminP8/blogspace/models"
)

func main() {
	storageType := flag.String("storage", "memory", "storage backend: memory, postgres or supabase")
	addr := flag.String("addr", ":8080", "listen address")
	templatesDir := flag.String("templates", "web/templates", "directory with HTML templates")
	staticDir := flag.String("static", "web/static", "directory with static assets")
	seedDemo := flag.Bool("seed", false, "insert demo users and posts when the store is empty")
	flag.Parse()

	config.LoadEnv()

	var postStore post.PostStorage
	var commentStore comment.CommentStorage
	var userStore user.UserStorage
	var likeStore like.LikeStorage

	switch *storageType {
	case "postgres":
		if err := postgres.InitDB(); err != nil {
			log.Fatalf("failed to connect to database: %v", err)
		}
		err := postgres.DB.AutoMigrate(&models.User{}, &models.Post{}, &models.Comment{}, &models.Like{}).Error
		if err != nil {
			log.Fatalf("failed to migrate database: %v", err)
		}

		log.Println("using PostgreSQL storage")
		postStore = postgres.NewPostPostgresStorage()
		commentStore = postgres.NewCommentPostgresStorage()
		userStore = postgres.NewUserPostgresStorage()
		likeStore = postgres.NewLikePostgresStorage()

	case "supabase":
		client, err := supabase.NewFromEnv()
		if err != nil {
			log.Fatalf("failed to init supabase client: %v", err)
		}

		log.Println("using Supabase storage")
		postStore = supabase.NewPostSupabaseStorage(client)
		commentStore = supabase.NewCommentSupabaseStorage(client)
		userStore = supabase.NewUserSupabaseStorage(client)
		likeStore = supabase.NewLikeSupabaseStorage(client)

	case "memory":
		log.Println("using in-memory storage")
		postStore = memory.NewPostMemoryStorage()
		commentStore = memory.NewCommentMemoryStorage(postStore)
		userStore = memory.NewUserMemoryStorage()
		likeStore = memory.NewLikeMemoryStorage(postStore)

	default:
		log.Fatalf("unknown storage type: %s", *storageType)
	}

	if *seedDemo {
		if err := seed.SampleData(context.Background(), userStore, postStore); err != nil {
			log.Fatalf("failed to seed demo data: %v", err)
		}
		log.Println("demo data seeded")
	}

	h := handlers.New(userStore, postStore, commentStore, likeStore, *templatesDir)
	r := h.Routes(*staticDir)

	// The session middleware only decodes identity; per-route guards decide access.
	handler := handlers.WithRecover(handlers.RequestLogger(auth.Middleware(r)))

	server := &http.Server{
		Addr:    *addr,
		Handler: handler,
	}

	go func() {
		log.Printf("server listening on http://localhost%s/", *addr)
		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down...")

	if *storageType == "postgres" {
		postgres.CloseDB()
	}

	if err := server.Shutdown(context.Background()); err != nil {
		log.Fatalf("shutdown error: %v", err)
	}

	log.Println("server stopped cleanly")
}
