package main

import (
	"context"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	contactsx "github.com/tanpawarit/agentic-todos/agent/contacts"
	contractx "github.com/tanpawarit/agentic-todos/agent/contract"
	duedatex "github.com/tanpawarit/agentic-todos/agent/duedate"
	llmx "github.com/tanpawarit/agentic-todos/agent/llm"
	orchestratorx "github.com/tanpawarit/agentic-todos/agent/orchestrator"
	reminderx "github.com/tanpawarit/agentic-todos/agent/reminder"
	todox "github.com/tanpawarit/agentic-todos/agent/todo"
	configx "github.com/tanpawarit/agentic-todos/pkg/config"
	_ "github.com/tanpawarit/agentic-todos/pkg/logger/autoload"
	qstashx "github.com/tanpawarit/agentic-todos/pkg/qstash"
)

type AppConfig struct {
	ListenAddr          string        `envconfig:"LISTEN_ADDR" default:":8080"`
	Timezone            string        `envconfig:"TIMEZONE" default:"America/Kentucky/Louisville"`
	MaxToolIterations   int           `envconfig:"MAX_TOOL_ITERATIONS" default:"10"`
	RequestTimeout      time.Duration `envconfig:"REQUEST_TIMEOUT" default:"2m"`
	TodoBackend         string        `envconfig:"TODO_BACKEND" default:"memory"`
	ReminderCallbackURL string        `envconfig:"REMINDER_CALLBACK_URL"`
}

func main() {
	appCfg := configx.MustNew[AppConfig]("")

	llmCfg := configx.MustNew[llmx.Config]("OPENAI")
	model := llmx.MustNewOpenAIModel(*llmCfg)

	loc, err := time.LoadLocation(appCfg.Timezone)
	if err != nil {
		log.Fatal().Err(err).Str("timezone", appCfg.Timezone).Msg("invalid timezone")
	}
	resolver := duedatex.NewResolver(loc)

	directory := contactsx.NewDirectory(contactsx.SeedContacts())
	store := buildTodoStore(appCfg.TodoBackend)
	scheduler := buildScheduler(appCfg.ReminderCallbackURL)

	o, err := orchestratorx.New(model, directory, store, resolver, scheduler, orchestratorx.Config{
		MaxIterations: appCfg.MaxToolIterations,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("build orchestrator")
	}

	log.Info().
		Str("addr", appCfg.ListenAddr).
		Str("backend", appCfg.TodoBackend).
		Str("timezone", appCfg.Timezone).
		Msg("listening")
	if err := http.ListenAndServe(appCfg.ListenAddr, newMux(o, appCfg.RequestTimeout)); err != nil {
		log.Fatal().Err(err).Msg("http server stopped")
	}
}

func buildTodoStore(backend string) contractx.TodoStore {
	switch backend {
	case "postgres":
		pgCfg := configx.MustNew[todox.PostgresConfig]("POSTGRES")
		store, err := todox.NewPostgresStore(*pgCfg)
		if err != nil {
			log.Fatal().Err(err).Msg("build postgres store")
		}
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := store.Init(ctx); err != nil {
			log.Fatal().Err(err).Msg("init postgres store")
		}
		return store
	case "redis":
		redisCfg := configx.MustNew[todox.UpstashRedisConfig]("UPSTASH_REDIS")
		store, err := todox.NewUpstashRedisStore(*redisCfg)
		if err != nil {
			log.Fatal().Err(err).Msg("build redis store")
		}
		return store
	case "", "memory":
		return todox.NewMemoryStore()
	default:
		log.Fatal().Str("backend", backend).Msg("unknown todo backend")
		return nil
	}
}

func buildScheduler(callbackURL string) contractx.ReminderScheduler {
	if callbackURL == "" {
		return nil
	}
	qstashCfg := configx.MustNew[qstashx.Config]("QSTASH")
	scheduler, err := reminderx.NewQStashScheduler(qstashx.MustNew(*qstashCfg), callbackURL)
	if err != nil {
		log.Fatal().Err(err).Msg("build reminder scheduler")
	}
	return scheduler
}
