package main // Entry point package

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/shakirali/vocabularyWizardAPI-sub000/internal/config"
	"github.com/shakirali/vocabularyWizardAPI-sub000/internal/database"
	"github.com/shakirali/vocabularyWizardAPI-sub000/internal/handler"
	"github.com/shakirali/vocabularyWizardAPI-sub000/internal/queue"
	"github.com/shakirali/vocabularyWizardAPI-sub000/internal/repository"
	"github.com/shakirali/vocabularyWizardAPI-sub000/internal/router"
	"github.com/shakirali/vocabularyWizardAPI-sub000/internal/service"
	"github.com/shakirali/vocabularyWizardAPI-sub000/internal/token"
)

// sweepInterval controls how often expired revoked-token entries are
// dropped from the in-memory blacklist.
const sweepInterval = 10 * time.Minute

func main() {
	_ = godotenv.Load() // .env is optional; real deployments use the environment
	cfg := config.Load()

	db, err := database.Open(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("database: %v", err)
	}

	blacklist := token.NewBlacklist()
	codec, err := token.NewCodec(cfg.SecretKey, cfg.Algorithm, cfg.AccessTTLMin, cfg.RefreshTTLDays, blacklist)
	if err != nil {
		log.Fatalf("token: %v", err)
	}

	users := repository.NewUserRepo(db)
	vocab := repository.NewVocabularyRepo(db)
	levels := repository.NewLevelRepo(db)
	progress := repository.NewProgressRepo(db)
	sentences := repository.NewSentenceRepo(db)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	if err := levels.Seed(ctx); err != nil {
		log.Fatalf("seed levels: %v", err)
	}
	cancel()

	rdb := config.NewRedisClient() // nil disables cache, rate limit and quiz sessions
	if rdb == nil {
		log.Printf("redis unavailable; response cache, rate limiting and quiz sessions disabled")
	}
	sessions := service.NewSessionStore(rdb)

	authSvc := service.NewAuthService(users, codec, blacklist)
	vocabSvc := service.NewVocabularyService(vocab)
	progressSvc := service.NewProgressService(progress, vocab)
	exerciseSvc := service.NewExerciseService(vocab, progress, sentences, sessions)

	cacheCfg := config.LoadCacheConfig()
	deps := router.Deps{
		Cfg:       cfg,
		Codec:     codec,
		Users:     users,
		Auth:      handler.NewAuthHandler(authSvc),
		Vocab:     handler.NewVocabularyHandler(vocabSvc, cacheCfg, rdb),
		Levels:    &handler.LevelHandler{Levels: levels},
		Progress:  handler.NewProgressHandler(progressSvc),
		Exercises: handler.NewExerciseHandler(exerciseSvc),
		RDB:       rdb,
	}

	// Background workers: blacklist sweeper and activity-event consumer.
	go func() {
		for range time.Tick(sweepInterval) {
			if n := blacklist.Sweep(); n > 0 {
				log.Printf("blacklist sweep removed %d entries (%d left)", n, blacklist.Len())
			}
		}
	}()
	go func() {
		if err := queue.StartPracticeConsumer(); err != nil {
			log.Printf("practice consumer stopped: %v", err)
		}
	}()

	e := echo.New()
	router.Register(e, deps)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
