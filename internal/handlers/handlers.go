package handlers

import (
	"html/template"
	"log"
	"net/http"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"github.com/VitaminP8/blogspace/internal/auth"
	"github.com/VitaminP8/blogspace/internal/comment"
	"github.com/VitaminP8/blogspace/internal/like"
	"github.com/VitaminP8/blogspace/internal/post"
	"github.com/VitaminP8/blogspace/internal/user"
	"github.com/VitaminP8/blogspace/models"
)

type Handler struct {
	users    user.UserStorage
	posts    post.PostStorage
	comments comment.CommentStorage
	likes    like.LikeStorage
	tpls     *template.Template
}

func New(users user.UserStorage, posts post.PostStorage, comments comment.CommentStorage, likes like.LikeStorage, templatesDir string) *Handler {
	funcs := template.FuncMap{
		"formatDate": formatDate,
		"excerpt":    excerpt,
		"badgeClass": badgeClass,
	}
	tpls := template.Must(template.New("").Funcs(funcs).ParseGlob(filepath.Join(templatesDir, "*.html")))
	return &Handler{users: users, posts: posts, comments: comments, likes: likes, tpls: tpls}
}

// postCard is a post decorated with the counters every list screen shows.
type postCard struct {
	*models.Post
	LikeCount    int
	CommentCount int
}

func (h *Handler) render(w http.ResponseWriter, name string, data map[string]any) {
	if err := h.tpls.ExecuteTemplate(w, name, data); err != nil {
		log.Printf("render %s: %v", name, err)
	}
}

// base assembles the data every page shares: identity and the sidebar stats.
func (h *Handler) base(r *http.Request, title string) map[string]any {
	identity, logged := auth.IdentityFromContext(r.Context())
	totalPosts, _ := h.posts.CountPosts(r.Context())
	totalUsers, _ := h.users.CountUsers(r.Context())

	return map[string]any{
		"Title":      title,
		"Logged":     logged,
		"Identity":   identity,
		"Categories": models.Categories,
		"TotalPosts": totalPosts,
		"TotalUsers": totalUsers,
	}
}

func (h *Handler) card(r *http.Request, p *models.Post) postCard {
	likeCount, _ := h.likes.GetLikeCount(r.Context(), p.ID)
	commentCount, _ := h.comments.CountRootComments(r.Context(), p.ID)
	return postCard{Post: p, LikeCount: likeCount, CommentCount: commentCount}
}

func filterPosts(posts []*models.Post, search, category string) []*models.Post {
	if search != "" {
		needle := strings.ToLower(search)
		var kept []*models.Post
		for _, p := range posts {
			if strings.Contains(strings.ToLower(p.Title), needle) ||
				strings.Contains(strings.ToLower(p.Content), needle) {
				kept = append(kept, p)
			}
		}
		posts = kept
	}
	if category != "" && category != "All" {
		var kept []*models.Post
		for _, p := range posts {
			if p.Category == category {
				kept = append(kept, p)
			}
		}
		posts = kept
	}
	return posts
}

// -------- Pages

func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		h.NotFound(w, r)
		return
	}

	search := r.URL.Query().Get("q")
	category := r.URL.Query().Get("category")

	posts, err := h.posts.GetAllPosts(r.Context())
	if err != nil {
		log.Printf("home: get posts: %v", err)
	}
	posts = filterPosts(posts, search, category)

	// The home feed shows the first ten matches only.
	if len(posts) > 10 {
		posts = posts[:10]
	}

	cards := make([]postCard, 0, len(posts))
	for _, p := range posts {
		cards = append(cards, h.card(r, p))
	}

	data := h.base(r, "BlogSpace")
	data["Posts"] = cards
	data["Search"] = search
	data["Category"] = category
	h.render(w, "home", data)
}

func (h *Handler) Browse(w http.ResponseWriter, r *http.Request) {
	search := r.URL.Query().Get("q")
	category := r.URL.Query().Get("category")
	sortBy := r.URL.Query().Get("sort")

	posts, err := h.posts.GetAllPosts(r.Context())
	if err != nil {
		log.Printf("browse: get posts: %v", err)
	}
	posts = filterPosts(posts, search, category)

	cards := make([]postCard, 0, len(posts))
	for _, p := range posts {
		cards = append(cards, h.card(r, p))
	}

	switch sortBy {
	case "oldest":
		for i, j := 0, len(cards)-1; i < j; i, j = i+1, j-1 {
			cards[i], cards[j] = cards[j], cards[i]
		}
	case "views":
		sort.SliceStable(cards, func(i, j int) bool { return cards[i].Views > cards[j].Views })
	case "likes":
		sort.SliceStable(cards, func(i, j int) bool { return cards[i].LikeCount > cards[j].LikeCount })
	}

	data := h.base(r, "Browse All Posts")
	data["Posts"] = cards
	data["Search"] = search
	data["Category"] = category
	data["Sort"] = sortBy
	h.render(w, "browse", data)
}

func (h *Handler) AuthPage(w http.ResponseWriter, r *http.Request) {
	h.render(w, "auth", h.base(r, "Login / Sign Up"))
}

func (h *Handler) renderAuthError(w http.ResponseWriter, r *http.Request, tab, msg string) {
	data := h.base(r, "Login / Sign Up")
	data["Tab"] = tab
	data["Error"] = msg
	h.render(w, "auth", data)
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	username := strings.TrimSpace(r.FormValue("username"))
	password := r.FormValue("password")

	if username == "" || password == "" {
		h.renderAuthError(w, r, "login", "Please enter username and password")
		return
	}

	u, err := h.users.AuthenticateUser(r.Context(), username, password)
	if err != nil {
		h.renderAuthError(w, r, "login", "Invalid username or password")
		return
	}

	h.startSession(w, r, u, "login")
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	username := strings.TrimSpace(r.FormValue("username"))
	email := strings.TrimSpace(r.FormValue("email"))
	bio := strings.TrimSpace(r.FormValue("bio"))
	password := r.FormValue("password")
	confirm := r.FormValue("confirm")

	switch {
	case username == "" || email == "" || password == "":
		h.renderAuthError(w, r, "signup", "Please fill in all required fields")
		return
	case len(password) < 6:
		h.renderAuthError(w, r, "signup", "Password must be at least 6 characters")
		return
	case password != confirm:
		h.renderAuthError(w, r, "signup", "Passwords don't match")
		return
	case !strings.Contains(email, "@"):
		h.renderAuthError(w, r, "signup", "Please enter a valid email")
		return
	}

	_, err := h.users.RegisterUser(r.Context(), username, email, password, bio)
	if err != nil {
		log.Printf("register: %v", err)
		h.renderAuthError(w, r, "signup", "Username or email already exists")
		return
	}

	// Auto-login right after signup.
	u, err := h.users.AuthenticateUser(r.Context(), username, password)
	if err != nil {
		h.renderAuthError(w, r, "login", "Account created, please log in")
		return
	}

	h.startSession(w, r, u, "register")
}

func (h *Handler) startSession(w http.ResponseWriter, r *http.Request, u *models.User, action string) {
	token, err := auth.GenerateToken(u)
	if err != nil {
		log.Printf("%s: sign token: %v", action, err)
		h.renderAuthError(w, r, "login", "Something went wrong, please try again")
		return
	}

	auth.SetSessionCookie(w, token)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	auth.ClearSessionCookie(w)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *Handler) ViewPost(w http.ResponseWriter, r *http.Request) {
	id, ok := h.postID(w, r)
	if !ok {
		return
	}

	// Count the view first so the rendered post carries the new total.
	if err := h.posts.IncrementViewCount(r.Context(), id); err != nil {
		h.NotFound(w, r)
		return
	}

	p, err := h.posts.GetPostById(r.Context(), id)
	if err != nil {
		h.NotFound(w, r)
		return
	}

	comments, err := h.comments.GetComments(r.Context(), id)
	if err != nil {
		log.Printf("view post %d: get comments: %v", id, err)
	}

	identity, _ := auth.IdentityFromContext(r.Context())
	liked, _ := h.likes.HasUserLiked(r.Context(), id, identity.ID)

	data := h.base(r, p.Title)
	data["Post"] = h.card(r, p)
	data["Threads"] = comment.BuildThreads(comments)
	data["Liked"] = liked
	h.render(w, "post", data)
}

func (h *Handler) CreateComment(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	id, ok := h.postID(w, r)
	if !ok {
		return
	}

	content := strings.TrimSpace(r.FormValue("content"))
	if content == "" {
		http.Redirect(w, r, "/post/"+strconv.FormatUint(uint64(id), 10), http.StatusSeeOther)
		return
	}

	var parentID *uint
	if raw := r.FormValue("parent_id"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 32)
		if err == nil {
			pid := uint(parsed)
			parentID = &pid
		}
	}

	if _, err := h.comments.CreateComment(r.Context(), id, parentID, content); err != nil {
		log.Printf("create comment on post %d: %v", id, err)
	}

	http.Redirect(w, r, "/post/"+strconv.FormatUint(uint64(id), 10), http.StatusSeeOther)
}

// ToggleLike likes the post, or unlikes it when the user already has a like.
func (h *Handler) ToggleLike(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	id, ok := h.postID(w, r)
	if !ok {
		return
	}

	identity, _ := auth.IdentityFromContext(r.Context())
	liked, _ := h.likes.HasUserLiked(r.Context(), id, identity.ID)

	var err error
	if liked {
		err = h.likes.RemoveLike(r.Context(), id)
	} else {
		err = h.likes.AddLike(r.Context(), id)
	}
	if err != nil {
		log.Printf("toggle like on post %d: %v", id, err)
	}

	http.Redirect(w, r, "/post/"+strconv.FormatUint(uint64(id), 10), http.StatusSeeOther)
}

func (h *Handler) CreatePost(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet {
		h.render(w, "create", h.base(r, "Create New Post"))
		return
	}
	if r.Method != http.MethodPost {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	title := strings.TrimSpace(r.FormValue("title"))
	content := strings.TrimSpace(r.FormValue("content"))
	category := r.FormValue("category")

	renderError := func(msg string) {
		data := h.base(r, "Create New Post")
		data["Error"] = msg
		data["FormTitle"] = title
		data["FormContent"] = content
		data["FormCategory"] = category
		h.render(w, "create", data)
	}

	if title == "" {
		renderError("Please enter a title")
		return
	}
	if len(content) < 50 {
		renderError("Content must be at least 50 characters")
		return
	}

	p, err := h.posts.CreatePost(r.Context(), title, content, category)
	if err != nil {
		log.Printf("create post: %v", err)
		renderError("Error creating post")
		return
	}

	http.Redirect(w, r, "/post/"+strconv.FormatUint(uint64(p.ID), 10), http.StatusSeeOther)
}

func (h *Handler) MyPosts(w http.ResponseWriter, r *http.Request) {
	identity, _ := auth.IdentityFromContext(r.Context())

	posts, err := h.posts.GetUserPosts(r.Context(), identity.ID)
	if err != nil {
		log.Printf("my posts: %v", err)
	}

	cards := make([]postCard, 0, len(posts))
	for _, p := range posts {
		cards = append(cards, h.card(r, p))
	}

	data := h.base(r, "My Posts")
	data["Posts"] = cards
	h.render(w, "myposts", data)
}

func (h *Handler) EditPost(w http.ResponseWriter, r *http.Request) {
	id, ok := h.postID(w, r)
	if !ok {
		return
	}

	identity, _ := auth.IdentityFromContext(r.Context())

	p, err := h.posts.GetPostById(r.Context(), id)
	if err != nil {
		h.NotFound(w, r)
		return
	}
	if p.UserID != identity.ID {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	if r.Method == http.MethodGet {
		data := h.base(r, "Edit Post")
		data["Post"] = p
		h.render(w, "edit", data)
		return
	}
	if r.Method != http.MethodPost {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	title := strings.TrimSpace(r.FormValue("title"))
	content := strings.TrimSpace(r.FormValue("content"))
	category := r.FormValue("category")

	if title == "" || len(content) < 50 {
		data := h.base(r, "Edit Post")
		data["Post"] = p
		data["Error"] = "Title is required and content must be at least 50 characters"
		h.render(w, "edit", data)
		return
	}

	if err := h.posts.UpdatePost(r.Context(), id, title, content, category); err != nil {
		log.Printf("edit post %d: %v", id, err)
		data := h.base(r, "Edit Post")
		data["Post"] = p
		data["Error"] = "Error updating post"
		h.render(w, "edit", data)
		return
	}

	http.Redirect(w, r, "/myposts", http.StatusSeeOther)
}

func (h *Handler) DeletePost(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	id, ok := h.postID(w, r)
	if !ok {
		return
	}

	if err := h.posts.DeletePostById(r.Context(), id); err != nil {
		log.Printf("delete post %d: %v", id, err)
	}

	http.Redirect(w, r, "/myposts", http.StatusSeeOther)
}

func (h *Handler) Profile(w http.ResponseWriter, r *http.Request) {
	identity, _ := auth.IdentityFromContext(r.Context())

	u, err := h.users.GetUserById(r.Context(), identity.ID)
	if err != nil {
		h.NotFound(w, r)
		return
	}

	posts, _ := h.posts.GetUserPosts(r.Context(), identity.ID)

	renderProfile := func(errMsg, okMsg string) {
		data := h.base(r, "My Profile")
		data["User"] = u
		data["PostCount"] = len(posts)
		data["Error"] = errMsg
		data["Success"] = okMsg
		h.render(w, "profile", data)
	}

	if r.Method == http.MethodGet {
		renderProfile("", "")
		return
	}
	if r.Method != http.MethodPost {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	email := strings.TrimSpace(r.FormValue("email"))
	bio := strings.TrimSpace(r.FormValue("bio"))

	if err := h.users.UpdateProfile(r.Context(), identity.ID, email, bio); err != nil {
		log.Printf("profile update: %v", err)
		renderProfile("Error updating profile", "")
		return
	}

	u.Email = email
	u.Bio = bio
	renderProfile("", "Profile updated!")
}

func (h *Handler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	identity, _ := auth.IdentityFromContext(r.Context())

	u, err := h.users.GetUserById(r.Context(), identity.ID)
	if err != nil {
		h.NotFound(w, r)
		return
	}
	posts, _ := h.posts.GetUserPosts(r.Context(), identity.ID)

	renderProfile := func(errMsg, okMsg string) {
		data := h.base(r, "My Profile")
		data["User"] = u
		data["PostCount"] = len(posts)
		data["Error"] = errMsg
		data["Success"] = okMsg
		h.render(w, "profile", data)
	}

	oldPw := r.FormValue("old_password")
	newPw := r.FormValue("new_password")
	confirm := r.FormValue("confirm_password")

	switch {
	case oldPw == "" || newPw == "" || confirm == "":
		renderProfile("All fields required", "")
		return
	case newPw != confirm:
		renderProfile("Passwords don't match", "")
		return
	case len(newPw) < 6:
		renderProfile("Password must be at least 6 characters", "")
		return
	}

	if err := h.users.ChangePassword(r.Context(), identity.ID, oldPw, newPw); err != nil {
		renderProfile("Current password is incorrect", "")
		return
	}

	renderProfile("", "Password changed successfully!")
}

func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNotFound)
	h.render(w, "notfound", h.base(r, "Not Found"))
}

func (h *Handler) postID(w http.ResponseWriter, r *http.Request) (uint, bool) {
	raw := mux.Vars(r)["id"]
	parsed, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		h.NotFound(w, r)
		return 0, false
	}
	return uint(parsed), true
}

// -------- template helpers

func formatDate(t time.Time) string {
	return t.Format("Jan 02, 2006 at 3:04 PM")
}

// excerpt truncates by runes so a multibyte character at the boundary is
// never split.
func excerpt(content string, length int) string {
	runes := []rune(content)
	if len(runes) > length {
		return string(runes[:length]) + "..."
	}
	return content
}

var badgeClasses = map[string]string{
	"Technology":    "tech-badge",
	"Lifestyle":     "lifestyle-badge",
	"Travel":        "travel-badge",
	"Food":          "food-badge",
	"Health":        "health-badge",
	"Entertainment": "entertainment-badge",
	"Education":     "education-badge",
	"Business":      "business-badge",
	"Science":       "science-badge",
	"Other":         "other-badge",
}

func badgeClass(category string) string {
	if c, ok := badgeClasses[category]; ok {
		return c
	}
	return "other-badge"
}
