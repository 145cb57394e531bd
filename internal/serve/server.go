// Package serve exposes the post-processing core over HTTP.
package serve

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dtnitsch/llm-doc-processor/models"
	"github.com/dtnitsch/llm-doc-processor/pkg/postprocess"
	"github.com/dtnitsch/llm-doc-processor/pkg/profiles"
)

// MaxBodyBytes caps a postprocess request body.
const MaxBodyBytes = 10 << 20

// PostprocessRequest is the body of POST /v1/postprocess.
type PostprocessRequest struct {
	Text    string `json:"text"`
	Profile string `json:"profile,omitempty"`
}

// PostprocessResponse is the reply of POST /v1/postprocess.
type PostprocessResponse struct {
	Profile      string                `json:"profile"`
	Text         string                `json:"text"`
	Metrics      models.QualityMetrics `json:"metrics"`
	QualityScore float64               `json:"quality_score"`
	Success      bool                  `json:"success"`
}

// ProfileSummary is one entry of GET /v1/profiles.
type ProfileSummary struct {
	Key             string              `json:"key"`
	Name            string              `json:"name"`
	DocumentType    models.DocumentType `json:"document_type"`
	Description     string              `json:"description,omitempty"`
	MinQualityScore float64             `json:"min_quality_score"`
}

type Server struct {
	logger *slog.Logger
}

func New(logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{logger: logger}
}

// Routes builds the router. Only built-in profiles are addressable by name;
// profile files on the server's disk are never read on behalf of a client.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/health", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Get("/profiles", s.handleProfiles)
		r.Post("/postprocess", s.handlePostprocess)
	})
	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleProfiles(w http.ResponseWriter, r *http.Request) {
	names := profiles.Names()
	out := make([]ProfileSummary, 0, len(names))
	for i, p := range profiles.List() {
		out = append(out, ProfileSummary{
			Key:             names[i],
			Name:            p.Name,
			DocumentType:    p.DocumentType,
			Description:     p.Description,
			MinQualityScore: p.MinQualityScore,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handlePostprocess(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodyBytes)

	var req PostprocessRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			http.Error(w, "Request body too large", http.StatusRequestEntityTooLarge)
			return
		}
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	name := strings.TrimSpace(req.Profile)
	if name == "" {
		name = profiles.DefaultName
	}
	profile, err := profiles.Get(name)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	pipeline, err := postprocess.New(profile)
	if err != nil {
		s.logger.Error("Failed to build pipeline", "profile", name, "error", err)
		http.Error(w, "Invalid profile", http.StatusInternalServerError)
		return
	}

	res := pipeline.Process(req.Text)
	score := res.Score()

	s.logger.Info("Postprocessed text",
		"request_id", middleware.GetReqID(r.Context()),
		"profile", profile.Name,
		"lines", res.Metrics.LinesProcessed,
		"quality_score", score)

	writeJSON(w, http.StatusOK, PostprocessResponse{
		Profile:      profile.Name,
		Text:         res.Text,
		Metrics:      res.Metrics,
		QualityScore: score,
		Success:      score >= profile.MinQualityScore,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
