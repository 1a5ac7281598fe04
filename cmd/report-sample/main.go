package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"golang.org/x/term"

	"github.com/nexosr/career-engine/internal/config"
	"github.com/nexosr/career-engine/internal/database"
	"github.com/nexosr/career-engine/internal/engine"
	"github.com/nexosr/career-engine/internal/logger"
	"github.com/nexosr/career-engine/internal/model"
	"github.com/nexosr/career-engine/internal/questionbank"
	"github.com/nexosr/career-engine/internal/scoring"
)

func main() {
	var (
		testType = flag.String("type", string(model.TestTypeCareerInterest), "Test type to simulate")
		selected = flag.Int("answer", 3, "Option index chosen for every question")
		age      = flag.Int("age", 17, "Age of the sample user")
		seed     = flag.Uint64("seed", 42, "Question selection seed")
		userID   = flag.String("user", "", "Run a stored assessment for this seeded user through Postgres and Redis")
	)
	flag.Parse()

	cfg := config.Load()
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)

	tt := model.TestType(*testType)
	if !tt.Valid() {
		fmt.Printf("Error: unknown test type %q\n", *testType)
		os.Exit(2)
	}

	// ─── API Key ───────────────────────────────────────────────────────
	if !cfg.ModelEnabled() && term.IsTerminal(int(syscall.Stdin)) {
		fmt.Print("LLM API key (empty for fallback only): ")
		key, err := term.ReadPassword(int(syscall.Stdin))
		fmt.Println()
		if err != nil {
			fmt.Println("Error reading API key")
			os.Exit(1)
		}
		cfg.LLMAPIKey = strings.TrimSpace(string(key))
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.LLMTimeout*time.Duration(cfg.LLMMaxRetries+2))
	defer cancel()

	started := time.Now()
	if *userID != "" {
		runStored(ctx, cfg, log, *userID, tt, *selected)
		fmt.Printf("elapsed=%s\n", time.Since(started).Round(time.Millisecond))
		return
	}

	synth, err := engine.NewSynthesizer(engine.NewModelClient(cfg, nil, log), nil, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to build report synthesizer")
	}

	// ─── Sample Assessment ─────────────────────────────────────────────
	items, err := questionbank.NewSeeded(*seed).Select(tt, cfg.QuestionsPerTest)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to select questions")
	}
	answers := answerAll(items, *selected)

	profile := model.UserProfile{
		ID:        "sample",
		Name:      "Sample User",
		Age:       *age,
		Segment:   model.SegmentForAge(*age),
		Interests: []string{"Technology", "Design"},
		Goals:     "Understand which careers fit my strengths",
	}
	session := &model.AssessmentSession{
		UserID:   profile.ID,
		TestType: tt,
		Items:    items,
		Answers:  answers,
		Status:   model.SessionStatusInProgress,
	}
	score := scoring.Score(tt, items, answers)

	rep, source := synth.SynthesizeWithSource(ctx, profile, session, score)

	out, _ := json.MarshalIndent(rep, "", "  ")
	fmt.Println(string(out))
	fmt.Printf("\nscore=%.1f source=%s elapsed=%s\n", score, source, time.Since(started).Round(time.Millisecond))
}

// runStored starts and submits a real assessment for userID, so the
// session, XP and cached report land in the configured stores.
func runStored(ctx context.Context, cfg *config.Config, log zerolog.Logger, userID string, tt model.TestType, selected int) {
	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	rdb, err := database.NewRedisClient(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()

	eng, err := engine.New(cfg, pool, rdb, prometheus.NewRegistry(), log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to build engine")
	}

	sess, err := eng.Assessments.StartAssessment(ctx, userID, tt)
	if err != nil {
		log.Fatal().Err(err).Str("user_id", userID).Msg("Failed to start assessment")
	}
	res, err := eng.Assessments.SubmitAssessment(ctx, sess.ID, userID, answerAll(sess.Items, selected))
	if err != nil {
		log.Fatal().Err(err).Str("session_id", sess.ID.String()).Msg("Failed to submit assessment")
	}

	out, _ := json.MarshalIndent(res, "", "  ")
	fmt.Println(string(out))
	fmt.Printf("\nsession=%s model_enabled=%t\n", sess.ID, eng.ModelEnabled)
}

func answerAll(items []model.Item, selected int) []model.Answer {
	answers := make([]model.Answer, len(items))
	for i, it := range items {
		answers[i] = model.Answer{QuestionID: it.ID, Selected: selected}
	}
	return answers
}
