package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
)

// Routes builds the full route table. Writes go through POST only; home,
// browse and the auth page are the only pages served without a session.
func (h *Handler) Routes(staticDir string) *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/", h.Home)
	r.HandleFunc("/browse", h.Browse)
	r.HandleFunc("/auth", h.AuthPage).Methods(http.MethodGet)
	r.HandleFunc("/login", h.Login).Methods(http.MethodPost)
	r.HandleFunc("/register", h.Register).Methods(http.MethodPost)
	r.HandleFunc("/logout", h.Logout).Methods(http.MethodPost)
	r.HandleFunc("/post/{id:[0-9]+}", RequireAuth(h.ViewPost)).Methods(http.MethodGet)
	r.HandleFunc("/post/{id:[0-9]+}/comment", RequireAuth(h.CreateComment)).Methods(http.MethodPost)
	r.HandleFunc("/post/{id:[0-9]+}/like", RequireAuth(h.ToggleLike)).Methods(http.MethodPost)
	r.HandleFunc("/post/{id:[0-9]+}/edit", RequireAuth(h.EditPost)).Methods(http.MethodGet, http.MethodPost)
	r.HandleFunc("/post/{id:[0-9]+}/delete", RequireAuth(h.DeletePost)).Methods(http.MethodPost)
	r.HandleFunc("/create", RequireAuth(h.CreatePost)).Methods(http.MethodGet, http.MethodPost)
	r.HandleFunc("/myposts", RequireAuth(h.MyPosts)).Methods(http.MethodGet)
	r.HandleFunc("/profile", RequireAuth(h.Profile)).Methods(http.MethodGet, http.MethodPost)
	r.HandleFunc("/profile/password", RequireAuth(h.ChangePassword)).Methods(http.MethodPost)
	r.PathPrefix("/static/").Handler(
		http.StripPrefix("/static/", http.FileServer(http.Dir(staticDir))))
	r.NotFoundHandler = http.HandlerFunc(h.NotFound)
	return r
}
