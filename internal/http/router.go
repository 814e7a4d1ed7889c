package api

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"golang.org/x/time/rate"

	"user-management/internal/domain/user"
	jwtpkg "user-management/internal/platform/jwt"
	"user-management/internal/worker"
	"user-management/web"
)

type Handler struct {
	userSvc  *user.Service
	jwtMgr   *jwtpkg.Manager
	tokenTTL time.Duration
	auditCh  chan<- worker.Event
	db       *sql.DB
}

func NewRouter(
	userSvc *user.Service,
	jwtMgr *jwtpkg.Manager,
	tokenTTL time.Duration,
	auditCh chan<- worker.Event,
	db *sql.DB,
) http.Handler {
	h := &Handler{
		userSvc:  userSvc,
		jwtMgr:   jwtMgr,
		tokenTTL: tokenTTL,
		auditCh:  auditCh,
		db:       db,
	}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(60 * time.Second))
	r.Use(RequestLogger)
	r.Use(CORSMiddleware)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Get("/ready", h.handleReady)
	r.Get("/swagger/*", httpSwagger.WrapHandler)
	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	r.With(RateLimitLogin(rate.Every(time.Minute/10), 5)).Post("/login", h.handleLogin)

	r.Group(func(r chi.Router) {
		r.Use(AuthMiddleware(jwtMgr))
		r.Get("/me", h.handleMe)
	})

	r.Route("/users", func(r chi.Router) {
		r.Post("/", h.handleCreateUser)
		r.Get("/", h.handleListUsers)
		r.Put("/{id}", h.handleUpdateUser)
		r.Delete("/{id}", h.handleSoftDeleteUser)
		r.Patch("/status/{id}", h.handleToggleStatus)
		r.Patch("/{id}/profile-image", h.handleProfileImage)
	})

	r.Handle("/*", web.Handler())

	return r
}

// audit sends without blocking; a full channel drops the event rather than
// stalling the request.
func (h *Handler) audit(ev worker.Event) {
	if h.auditCh == nil {
		return
	}
	select {
	case h.auditCh <- ev:
	default:
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func parseIDParam(r *http.Request, name string) (int64, error) {
	idStr := chi.URLParam(r, name)
	return strconv.ParseInt(idStr, 10, 64)
}

func (h *Handler) handleReady(w http.ResponseWriter, r *http.Request) {
	if h.db == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"error":   "db_unavailable",
			"message": "database not configured",
		})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := h.db.PingContext(ctx); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"error":   "db_unavailable",
			"message": "database not ready",
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}
