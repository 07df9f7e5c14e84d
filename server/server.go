package server

import (
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/mechtronglobal/backend/config"
	"github.com/mechtronglobal/backend/server/handler/authn"
	contenth "github.com/mechtronglobal/backend/server/handler/content"
	"github.com/mechtronglobal/backend/server/handler/upload"
	"github.com/mechtronglobal/backend/server/middleware"
	"github.com/mechtronglobal/backend/server/resp"
	"github.com/mechtronglobal/backend/server/state"
)

type healthResponse struct {
	Status  string `json:"status"`
	Storage string `json:"storage"`
	Time    string `json:"time"`
}

func handleHealth(st *state.ServerState) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp.WriteOK(w, healthResponse{
			Status:  "ok",
			Storage: st.MediaStore.Kind(),
			Time:    time.Now().UTC().Format(time.RFC3339),
		})
	}
}

// NewRouter wires every route against the provided state. Mutating routes
// require a bearer token; reads and inquiry submission are public.
func NewRouter(st *state.ServerState) chi.Router {
	cfg := st.Cfg

	guard := func(next http.Handler) http.Handler {
		return middleware.RequireAuth(cfg, next)
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestLogging)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.Server.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", handleHealth(st))
		r.Post("/auth/login", authn.HandleLogin(st))

		r.Route("/projects", func(r chi.Router) {
			r.Get("/", contenth.HandleListProjects(st))
			r.Get("/{id}", contenth.HandleGetProject(st))
			r.Get("/slug/{slug}", contenth.HandleGetProjectBySlug(st))
			r.With(guard).Post("/", contenth.HandleCreateProject(st))
			r.With(guard).Put("/{id}", contenth.HandleUpdateProject(st))
			r.With(guard).Delete("/{id}", contenth.HandleDeleteProject(st))
		})

		r.Route("/services", func(r chi.Router) {
			r.Get("/", contenth.HandleListServices(st))
			r.Get("/{id}", contenth.HandleGetService(st))
			r.Get("/slug/{slug}", contenth.HandleGetServiceBySlug(st))
			r.With(guard).Post("/", contenth.HandleCreateService(st))
			r.With(guard).Put("/{id}", contenth.HandleUpdateService(st))
			r.With(guard).Delete("/{id}", contenth.HandleDeleteService(st))
		})

		r.Route("/testimonials", func(r chi.Router) {
			r.Get("/", contenth.HandleListTestimonials(st))
			r.With(guard).Post("/", contenth.HandleCreateTestimonial(st))
			r.With(guard).Put("/{id}", contenth.HandleUpdateTestimonial(st))
			r.With(guard).Delete("/{id}", contenth.HandleDeleteTestimonial(st))
		})

		r.Route("/inquiries", func(r chi.Router) {
			r.With(guard).Get("/", contenth.HandleListInquiries(st))
			r.Post("/", contenth.HandleCreateInquiry(st))
			r.With(guard).Patch("/{id}/status", contenth.HandleUpdateInquiryStatus(st))
			r.With(guard).Delete("/{id}", contenth.HandleDeleteInquiry(st))
		})

		r.Route("/site-settings", func(r chi.Router) {
			r.Get("/", contenth.HandleGetSettings(st))
			r.With(guard).Put("/", contenth.HandleUpdateSettings(st))
		})

		r.Route("/upload", func(r chi.Router) {
			r.Get("/config", upload.HandleConfig(st))
			r.With(guard).Post("/single", upload.HandleSingle(st))
			r.With(guard).Post("/multiple", upload.HandleMultiple(st))
			r.With(guard).Delete("/s3/*", upload.HandleRemoteDelete(st))
		})
	})

	if cfg.Media.Strategy == config.MediaStrategyLocal {
		prefix := strings.TrimSuffix(cfg.Media.Local.PublicPath, "/") + "/"
		fs := http.StripPrefix(prefix, http.FileServer(http.Dir(cfg.Media.Local.UploadsDir)))
		r.Get(prefix+"*", fs.ServeHTTP)
	}

	return r
}

func StartServer(st *state.ServerState) {
	bindAddress := fmt.Sprintf("%v:%v", st.Cfg.Server.Address, st.Cfg.Server.Port)
	log.Printf("serving http requests on %q (media strategy %q)", bindAddress, st.Cfg.Media.Strategy)
	log.Fatal(http.ListenAndServe(bindAddress, NewRouter(st)))
}
