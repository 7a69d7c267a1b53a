// Package main provides the HTTP API server for the scheme recommendation
// engine: profile-driven recommendations over the normalized scheme
// dataset, plus signup persistence and the admin view.
package main

import (
	"bytes"
	"context"
	"crypto/subtle"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/cors"
	"go.uber.org/zap"

	"scheme-recommendation-engine/internal/config"
	"scheme-recommendation-engine/internal/models"
	"scheme-recommendation-engine/internal/services/dataset"
	"scheme-recommendation-engine/internal/services/recommender"
	s3service "scheme-recommendation-engine/internal/services/s3"
	"scheme-recommendation-engine/internal/services/ses"
	"scheme-recommendation-engine/internal/services/store"
	"scheme-recommendation-engine/internal/utils"
)

// Server holds all dependencies
type Server struct {
	data     *dataset.Store
	rec      *recommender.Service
	signups  store.SignupStore
	notifier *ses.Service
	s3       *s3service.Service
	config   *config.Config
}

// maxDatasetBytes caps admin dataset uploads.
const maxDatasetBytes = 20 << 20

// Response represents a standard API response
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := utils.InitLogger(cfg.LogLevel, cfg.Stage); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer utils.Sync()

	ctx := context.Background()

	// Dataset source: S3 when a bucket is configured, local file otherwise
	var source dataset.Source
	var s3Svc *s3service.Service
	if cfg.UseS3() {
		s3Svc, err = s3service.NewService(ctx, cfg.S3Bucket)
		if err != nil {
			log.Fatalf("Failed to create S3 service: %v", err)
		}
		source = dataset.NewS3Source(s3Svc, cfg.S3Key)
	} else {
		source = dataset.NewFileSource(cfg.DataFile)
	}

	data := dataset.NewStore(source, nil)
	if _, err := data.Reload(ctx); err != nil {
		utils.Logger.Warn("Could not load dataset; serving empty table until reload",
			zap.String("source", source.Name()),
			zap.Error(err),
		)
	}

	// Signup store: Postgres when configured, local CSV otherwise
	var signups store.SignupStore
	if cfg.UsePostgres() {
		pg, err := store.NewPostgresStore(ctx, cfg.DatabaseURL())
		if err != nil {
			utils.Logger.Warn("Could not connect to Postgres; falling back to CSV signup store", zap.Error(err))
			signups = store.NewCSVStore(cfg.UsersFile)
		} else {
			signups = pg
		}
	} else {
		signups = store.NewCSVStore(cfg.UsersFile)
	}
	defer signups.Close()

	// Notifier is optional
	var notifier *ses.Service
	if cfg.SESSenderEmail != "" {
		notifier, err = ses.NewService(ctx, cfg.SESSenderEmail)
		if err != nil {
			utils.Logger.Warn("Could not initialize SES notifier", zap.Error(err))
		}
	}

	server := &Server{
		data:     data,
		rec:      recommender.NewService(data),
		signups:  signups,
		notifier: notifier,
		s3:       s3Svc,
		config:   cfg,
	}

	// Setup routes
	mux := http.NewServeMux()
	mux.HandleFunc("/health", server.healthHandler)
	mux.HandleFunc("/api/health", server.healthHandler)
	mux.HandleFunc("/api/recommend", server.recommendHandler)
	mux.HandleFunc("/api/recommend/export", server.exportHandler)
	mux.HandleFunc("/api/schemes", server.schemesHandler)
	mux.HandleFunc("/api/states", server.statesHandler)
	mux.HandleFunc("/api/reference", server.referenceHandler)
	mux.HandleFunc("/api/reload", server.reloadHandler)
	mux.HandleFunc("/api/signup", server.signupHandler)
	mux.HandleFunc("/api/admin/signups", server.adminSignupsHandler)
	mux.HandleFunc("/api/admin/dataset", server.adminDatasetHandler)
	mux.HandleFunc("/api/notify", server.notifyHandler)

	// Setup CORS
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})
	handler := c.Handler(mux)

	addr := fmt.Sprintf("0.0.0.0:%s", cfg.Port)
	utils.Logger.Info("Scheme Recommendation Engine API server listening",
		zap.String("addr", addr),
		zap.Int("dataset_rows", data.Len()),
	)

	if err := http.ListenAndServe(addr, handler); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	storeKind := "csv"
	storeOK := true
	if pg, ok := s.signups.(*store.PostgresStore); ok {
		storeKind = "postgres"
		storeOK = pg.HealthCheck(r.Context()) == nil
	}

	writeJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Scheme Recommendation Engine API is running",
		Data: map[string]interface{}{
			"status":          "healthy",
			"dataset_rows":    s.data.Len(),
			"loaded_at":       s.data.LoadedAt().Format(time.RFC3339),
			"signup_store":    storeKind,
			"signup_store_ok": storeOK,
			"timestamp":       time.Now().UTC().Format(time.RFC3339),
			"version":         "1.0.0",
		},
	})
}

func (s *Server) recommendHandler(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeRecommendRequest(w, r)
	if !ok {
		return
	}

	result, err := s.rec.Recommend(r.Context(), req.Profile, req.Query, req.Limit)
	if err != nil {
		writeRecommendError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, Response{Success: true, Data: result})
}

func (s *Server) exportHandler(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeRecommendRequest(w, r)
	if !ok {
		return
	}

	result, err := s.rec.Recommend(r.Context(), req.Profile, req.Query, req.Limit)
	if err != nil {
		writeRecommendError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="schemes_recommendations.csv"`)
	if err := writeResultCSV(w, result.Records); err != nil {
		utils.Logger.Error("Failed to write CSV export", zap.Error(err))
	}
}

// decodeRecommendRequest parses and validates the shared request body.
// Limit validation happens here, at the boundary: out-of-range values are
// rejected, never clamped.
func (s *Server) decodeRecommendRequest(w http.ResponseWriter, r *http.Request) (*models.RecommendRequest, bool) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return nil, false
	}

	var req models.RecommendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid request body"})
		return nil, false
	}
	if req.Limit == 0 {
		req.Limit = config.DefaultLimit
	}
	return &req, true
}

func writeRecommendError(w http.ResponseWriter, err error) {
	if errors.Is(err, models.ErrInvalidLimit) {
		writeJSON(w, http.StatusBadRequest, Response{Success: false, Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusInternalServerError, Response{Success: false, Error: "Recommendation failed"})
}

func (s *Server) schemesHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	records := s.data.Snapshot()
	if q := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("q"))); q != "" {
		filtered := make([]models.SchemeRecord, 0, len(records))
		for _, rec := range records {
			if strings.Contains(rec.SearchBlob, q) {
				filtered = append(filtered, rec)
			}
		}
		records = filtered
	}

	summaries := make([]models.SchemeSummary, len(records))
	for i := range records {
		summaries[i] = records[i].ToSummary()
	}

	writeJSON(w, http.StatusOK, Response{Success: true, Data: summaries})
}

func (s *Server) statesHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	writeJSON(w, http.StatusOK, Response{Success: true, Data: s.data.States()})
}

// referenceHandler serves the profile input suggestion lists for UI
// select boxes: states merged with dataset values, occupations,
// education levels and social categories.
func (s *Server) referenceHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	writeJSON(w, http.StatusOK, Response{Success: true, Data: map[string][]string{
		"states":           s.data.States(),
		"occupations":      models.Occupations,
		"education_levels": models.EducationLevels,
		"categories":       models.Categories,
	}})
}

func (s *Server) reloadHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	count, err := s.data.Reload(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, Response{Success: false, Error: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Dataset reloaded",
		Data:    map[string]int{"rows": count},
	})
}

func (s *Server) signupHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req models.SignupCreate
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid request body"})
		return
	}
	if err := models.ValidateSignup(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, Response{Success: false, Error: err.Error()})
		return
	}

	rec, err := s.signups.Save(r.Context(), &req)
	if err != nil {
		utils.Logger.Error("Failed to save signup", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, Response{Success: false, Error: "Failed to save details"})
		return
	}

	writeJSON(w, http.StatusOK, Response{Success: true, Message: "Details saved", Data: rec})
}

func (s *Server) adminSignupsHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if !s.isAdmin(r) {
		writeJSON(w, http.StatusUnauthorized, Response{Success: false, Error: models.ErrNotAuthorized.Error()})
		return
	}

	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}

	signups, err := s.signups.List(r.Context(), limit)
	if err != nil {
		utils.Logger.Error("Failed to list signups", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, Response{Success: false, Error: "Failed to load signups"})
		return
	}

	writeJSON(w, http.StatusOK, Response{Success: true, Data: signups})
}

// adminDatasetHandler replaces the scheme dataset: the uploaded CSV is
// written to the configured backing location (S3 object or local file)
// and then swapped in via Reload.
func (s *Server) adminDatasetHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if !s.isAdmin(r) {
		writeJSON(w, http.StatusUnauthorized, Response{Success: false, Error: models.ErrNotAuthorized.Error()})
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxDatasetBytes))
	if err != nil || len(bytes.TrimSpace(body)) == 0 {
		writeJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Empty dataset upload"})
		return
	}

	if s.s3 != nil {
		err = s.s3.UploadFile(r.Context(), s.config.S3Key, body, "text/csv")
	} else {
		err = os.WriteFile(s.config.DataFile, body, 0644)
	}
	if err != nil {
		utils.Logger.Error("Failed to store uploaded dataset", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, Response{Success: false, Error: "Failed to store dataset"})
		return
	}

	count, err := s.data.Reload(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, Response{Success: false, Error: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Dataset replaced",
		Data:    map[string]int{"rows": count},
	})
}

func (s *Server) isAdmin(r *http.Request) bool {
	supplied := r.Header.Get("X-Admin-Password")
	return subtle.ConstantTimeCompare([]byte(supplied), []byte(s.config.AdminPassword)) == 1
}

// NotifyRequest asks the server to email a signed-up user their
// recommendations.
type NotifyRequest struct {
	Email   string         `json:"email"`
	Profile models.Profile `json:"profile"`
	Query   string         `json:"query,omitempty"`
	Limit   int            `json:"limit,omitempty"`
}

func (s *Server) notifyHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if s.notifier == nil {
		writeJSON(w, http.StatusServiceUnavailable, Response{Success: false, Error: "Email notifications not configured"})
		return
	}

	var req NotifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid request body"})
		return
	}
	if req.Limit == 0 {
		req.Limit = config.DefaultLimit
	}

	signup, err := s.signups.FindByEmail(r.Context(), req.Email)
	if err != nil {
		writeJSON(w, http.StatusNotFound, Response{Success: false, Error: "No saved details for this email"})
		return
	}

	result, err := s.rec.Recommend(r.Context(), req.Profile, req.Query, req.Limit)
	if err != nil {
		writeRecommendError(w, err)
		return
	}
	if len(result.Records) == 0 {
		writeJSON(w, http.StatusOK, Response{Success: false, Error: "No schemes match this profile"})
		return
	}

	sendResult, err := s.notifier.SendRecommendationNotification(r.Context(), ses.NotificationParams{
		UserName:  signup.Name,
		UserEmail: signup.Email,
		Schemes:   result.Records,
	})
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, Response{Success: false, Error: "Failed to send email"})
		return
	}

	writeJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Notification sent",
		Data: map[string]interface{}{
			"message_id": sendResult.MessageID,
			"schemes":    len(result.Records),
		},
	})
}

// exportColumns is the column order for CSV export of results.
var exportColumns = []string{
	"display_name", "description", "eligibility", "benefits",
	"scheme_category", "level", "state", "department", "score",
}

// writeResultCSV renders ranked records as CSV. Export formatting is a
// presentation concern and stays out of the pipeline packages.
func writeResultCSV(w http.ResponseWriter, records []models.ScoredRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(exportColumns); err != nil {
		return err
	}
	for _, rec := range records {
		row := []string{
			rec.DisplayName,
			rec.Description,
			rec.EligibilityText,
			rec.BenefitsText,
			rec.CategoryTag,
			rec.LevelTag,
			rec.StateTag,
			rec.DepartmentTag,
			strconv.Itoa(rec.Score),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
