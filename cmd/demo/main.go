package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"movielog/internal/config"
	"movielog/internal/identity"
	"movielog/internal/media"
	"movielog/internal/service"
	"movielog/internal/store"
	"movielog/pkg/localstore"
	"movielog/pkg/tmdb"
)

// Wiring example standing in for a real presentation layer: constructs the
// whole client stack, dumps the popular list and reports session changes.
func main() {
	_ = godotenv.Load() // best-effort
	cfg := config.FromEnv()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := identity.InitializeFirebase(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("firebase init failed")
	}
	authClient, err := identity.AuthClient(ctx, app)
	if err != nil {
		log.Fatal().Err(err).Msg("auth client init failed")
	}
	repo, err := store.Connect(ctx, app)
	if err != nil {
		log.Fatal().Err(err).Msg("firestore connect failed")
	}
	defer repo.Close()

	uploader, err := media.NewUploader(ctx, app, cfg.StorageBucket, repo.Users)
	if err != nil {
		log.Fatal().Err(err).Msg("storage init failed")
	}

	var local localstore.Store
	if cfg.ValkeyAddr != "" {
		vs, err := localstore.NewValkey(cfg.ValkeyAddr, cfg.ValkeyPassword)
		if err != nil {
			log.Error().Err(err).Msg("valkey connect failed, using in-memory store")
			local = localstore.NewInMemory()
		} else {
			defer vs.Close()
			local = vs
		}
	} else {
		local = localstore.NewInMemory()
	}
	prefs := localstore.NewPrefs(local)

	provider := identity.NewProvider(authClient, cfg.FirebaseWebAPIKey, repo.Users)
	svc := service.NewFromRepository(provider.Sessions(), provider, repo, uploader, prefs)

	unsubscribe := provider.Subscribe(func(s *identity.Session) {
		if s == nil {
			log.Info().Msg("signed out")
			return
		}
		log.Info().Str("uid", s.UID).Str("username", s.Username).Msg("signed in")
	})
	defer unsubscribe()

	catalog := tmdb.New(cfg.TMDBAPIKey)
	catalog.BaseURL = cfg.TMDBBaseURL
	catalog.ImageBaseURL = cfg.TMDBImageBaseURL
	catalog.Language = cfg.TMDBLanguage

	movies, err := catalog.Popular(ctx, 1)
	if err != nil {
		log.Fatal().Err(err).Msg("fetching popular movies failed")
	}
	for _, m := range movies {
		log.Info().Int("id", m.ID).Str("title", m.Title).Float64("vote", m.VoteAverage).Msg("popular")
	}

	if email, ok := svc.RememberedEmail(ctx); ok {
		log.Info().Str("email", email).Msg("remembered login email")
	}

	comments, err := svc.Comments(ctx, 550)
	if err != nil {
		log.Error().Err(err).Msg("listing comments failed")
	} else {
		log.Info().Int("count", len(comments)).Msg("comments on movie 550")
	}

	_, _ = os.Stderr.WriteString("done\n")
}
