package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/mikey/phishguard/internal/core"
	"github.com/mikey/phishguard/internal/pipeline"
)

const certInFeedURL = "https://www.cert-in.org.in/RssNews.jsp"

// maxQRUploadBytes bounds the multipart image upload.
const maxQRUploadBytes = 8 << 20

// Server exposes the analysis pipeline over HTTP
type Server struct {
	service    *pipeline.Service
	listenAddr string
	httpServer *http.Server
	feedClient *http.Client
	logger     *zap.Logger
}

// NewServer creates a new HTTP server
func NewServer(service *pipeline.Service, listenAddr string, logger *zap.Logger) *Server {
	return &Server{
		service:    service,
		listenAddr: listenAddr,
		feedClient: &http.Client{Timeout: 10 * time.Second},
		logger:     logger,
	}
}

// Start starts the HTTP server
func (s *Server) Start() error {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/", s.handleHealth)
	r.Post("/analyze", s.handleAnalyze)
	r.Post("/analyze/qr", s.handleAnalyzeQR)
	r.Get("/latest_cyber_attacks", s.handleLatestAttacks)

	s.httpServer = &http.Server{
		Addr:    s.listenAddr,
		Handler: r,
	}

	s.logger.Info("starting HTTP server", zap.String("address", s.listenAddr))

	// Start the server in a goroutine
	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("HTTP server error", zap.Error(err))
		}
	}()

	return nil
}

// Stop stops the HTTP server
func (s *Server) Stop() error {
	if s.httpServer == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	s.logger.Info("stopping HTTP server")
	return s.httpServer.Shutdown(ctx)
}

type analyzeRequest struct {
	Text string `json:"text"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"service": "phishguard",
	})
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	verdict, err := s.service.AnalyzeText(r.Context(), req.Text)
	if err != nil {
		if errors.Is(err, core.ErrEmptyInput) {
			writeError(w, http.StatusBadRequest, "text must not be empty")
			return
		}
		s.logger.Error("analysis failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "analysis failed")
		return
	}

	writeJSON(w, http.StatusOK, verdict)
}

func (s *Server) handleAnalyzeQR(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxQRUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "missing file field")
		return
	}
	defer file.Close()

	image, err := io.ReadAll(io.LimitReader(file, maxQRUploadBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to read upload")
		return
	}

	verdict := s.service.AnalyzeQR(r.Context(), image)
	writeJSON(w, http.StatusOK, verdict)
}

// handleLatestAttacks returns recent advisory titles from the CERT-In
// news feed. Any fetch or parse failure yields an empty list.
func (s *Server) handleLatestAttacks(w http.ResponseWriter, r *http.Request) {
	titles := s.fetchFeedTitles(r.Context(), 5)
	writeJSON(w, http.StatusOK, map[string][]string{"attacks": titles})
}

func (s *Server) fetchFeedTitles(ctx context.Context, limit int) []string {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, certInFeedURL, nil)
	if err != nil {
		return []string{}
	}

	resp, err := s.feedClient.Do(req)
	if err != nil {
		s.logger.Warn("failed to fetch advisory feed", zap.Error(err))
		return []string{}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		s.logger.Warn("advisory feed returned non-OK status",
			zap.Int("status", resp.StatusCode))
		return []string{}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return []string{}
	}

	return extractItemTitles(string(body), limit)
}

// extractItemTitles scans RSS text for per-item titles. The feed is not
// namespaced or nested, so a linear scan is enough.
func extractItemTitles(feed string, limit int) []string {
	titles := []string{}
	rest := feed
	for len(titles) < limit {
		itemIdx := strings.Index(rest, "<item>")
		if itemIdx < 0 {
			break
		}
		rest = rest[itemIdx+len("<item>"):]

		openIdx := strings.Index(rest, "<title>")
		closeIdx := strings.Index(rest, "</title>")
		if openIdx < 0 || closeIdx < 0 || closeIdx < openIdx {
			break
		}
		title := strings.TrimSpace(rest[openIdx+len("<title>") : closeIdx])
		if title != "" {
			titles = append(titles, title)
		}
		rest = rest[closeIdx+len("</title>"):]
	}
	return titles
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// Describe returns a short label for logs
func (s *Server) Describe() string {
	return fmt.Sprintf("http api on %s", s.listenAddr)
}
