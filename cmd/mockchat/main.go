// Development stand-in for the remote chat service. Serves the two
// endpoints the client speaks, with canned persona replies and a
// per-user affection counter kept in memory.
package main

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/hanabira/hanachat/internal/domain"
)

const defaultPort = "8001"

type request struct {
	Message  string `json:"message"`
	UserName string `json:"user_name"`
}

// mockService holds per-user affection levels between rounds.
type mockService struct {
	mu     sync.Mutex
	levels map[string]int
}

func newMockService() *mockService {
	return &mockService{levels: make(map[string]int)}
}

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	port := os.Getenv("MOCKCHAT_PORT")
	if port == "" {
		port = defaultPort
	}

	svc := newMockService()

	r := chi.NewRouter()
	r.Use(loggingMiddleware)
	r.Get("/healthz", handleHealthz())
	r.Post("/chat", svc.handleChat())
	r.Post("/new-user", svc.handleNewUser())

	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	slog.Info("mockchat listening", "port", port)
	if err := srv.ListenAndServe(); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		slog.Info("request", "method", r.Method, "path", r.URL.Path, "duration", time.Since(start))
	})
}

func handleHealthz() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

func (s *mockService) handleChat() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
			return
		}

		delta := scoreMessage(req.Message)

		s.mu.Lock()
		oldLevel := s.levels[req.UserName]
		level := clamp(oldLevel+delta, domain.AffectionMin, domain.AffectionMax)
		s.levels[req.UserName] = level
		s.mu.Unlock()

		reply := domain.ChatReply{
			Reply:           replyFor(req.Message, level),
			AffectionLevel:  &level,
			AffectionChange: level - oldLevel,
		}
		fillEmotion(&reply, level)
		if event, ok := milestoneFor(oldLevel, level); ok {
			reply.Events = append(reply.Events, event)
		}

		respondJSON(w, http.StatusOK, reply)
	}
}

func (s *mockService) handleNewUser() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
			return
		}

		s.mu.Lock()
		delete(s.levels, req.UserName)
		s.mu.Unlock()

		slog.Info("user reset", "user", req.UserName)
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

// scoreMessage is a crude sentiment stand-in: warm words raise the
// level, harsh ones lower it, everything else drifts up slowly.
func scoreMessage(message string) int {
	lower := strings.ToLower(message)
	switch {
	case containsAny(lower, "love", "like you", "miss you", "beautiful"):
		return 3
	case containsAny(lower, "thank", "fun", "nice", "happy"):
		return 2
	case containsAny(lower, "hate", "stupid", "annoying", "go away"):
		return -3
	case containsAny(lower, "whatever", "boring"):
		return -1
	case len(message) > 40:
		return 1
	default:
		return 1
	}
}

func containsAny(s string, words ...string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}

func replyFor(message string, level int) string {
	switch {
	case level < 0:
		return "...did you need something?"
	case level <= 20:
		return "Oh, um. Hello. I was just reading."
	case level <= 40:
		return "You came by again! I saved a seat, just in case."
	case level <= 60:
		return "I was hoping you'd say that. Tell me more?"
	case level <= 80:
		return "Hehe, you always know what to say. I'm glad it's you."
	default:
		return "Being with you like this... I wouldn't trade it for anything."
	}
}

func fillEmotion(reply *domain.ChatReply, level int) {
	switch {
	case level < 0:
		reply.Emotion, reply.EmotionIntensity, reply.EmotionEmoji = "sad", 3, "😢"
	case level <= 20:
		reply.Emotion, reply.EmotionIntensity, reply.EmotionEmoji = "shy", 4, "😊"
	case level <= 60:
		reply.Emotion, reply.EmotionIntensity, reply.EmotionEmoji = "happy", 6, "😄"
	default:
		reply.Emotion, reply.EmotionIntensity, reply.EmotionEmoji = "fluttered", 8, "💕"
	}
	reply.EmotionReason = "mock"
	reply.EmotionConfidence = 0.9
}

// milestoneFor emits one milestone event when a round crosses a band
// boundary upward.
func milestoneFor(oldLevel, newLevel int) (domain.ReplyEvent, bool) {
	boundaries := []struct {
		at    int
		title string
		line  string
	}{
		{21, "Acquaintances", "I think... we're past introductions now."},
		{41, "Friends", "You can just call me by name, okay?"},
		{61, "Close Friends", "I tell you things I don't tell anyone."},
		{81, "Someone Special", "When you're not here, I keep looking at the door."},
	}
	for _, b := range boundaries {
		if oldLevel < b.at && newLevel >= b.at {
			return domain.ReplyEvent{
				Type:            domain.EventTypeMilestone,
				Title:           b.title,
				Message:         "Your relationship reached a new stage!",
				SpecialDialogue: []string{b.line},
			}, true
		}
	}
	return domain.ReplyEvent{}, false
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Error("encode response failed", "error", err)
	}
}
