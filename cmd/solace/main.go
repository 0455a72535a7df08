package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/comigor/solace/internal/config"
	"github.com/comigor/solace/internal/engine"
	"github.com/comigor/solace/internal/llm"
	"github.com/comigor/solace/internal/logger"
	"github.com/comigor/solace/internal/prompt"
	"github.com/comigor/solace/internal/sentiment"
	"github.com/comigor/solace/internal/store"
)

func main() {
	// Load .env if present; real env vars win.
	_ = godotenv.Load()

	sessionFlag := flag.String("session", "", "chat session id to resume")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		logger.L.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}
	logger.SetLevel(cfg.Log.Level)

	if cfg.LLM.APIKey == "" {
		fmt.Fprintln(os.Stderr, "no API key configured; set llm.api_key or GROQ_API_KEY")
		os.Exit(1)
	}

	st, err := store.Open(cfg.Storage.Path)
	if err != nil {
		logger.L.Error("failed to open store", "error", err)
		os.Exit(1)
	}
	defer st.Close()

	if err := prompt.Seed(st); err != nil {
		logger.L.Error("failed to seed personality prompts", "error", err)
		os.Exit(1)
	}

	tagger := sentiment.NewTagger()
	eng := engine.New(st, tagger, llm.NewClient(cfg.LLM))

	r := &repl{
		cfg:     cfg,
		store:   st,
		engine:  eng,
		tagger:  tagger,
		session: *sessionFlag,
		settings: engine.Settings{
			Model: llm.ModelConfig{
				Model:       cfg.LLM.Model,
				Temperature: cfg.Chat.Temperature,
				TopP:        cfg.Chat.TopP,
				MaxTokens:   cfg.Chat.MaxTokens,
			},
			Personality:   cfg.Chat.Personality,
			HistoryWindow: cfg.Chat.HistoryWindow,
		},
	}
	r.run(context.Background())
}

// repl owns the mutable settings surface; each turn gets a copy of the
// current settings value.
type repl struct {
	cfg      *config.Config
	store    *store.Store
	engine   *engine.Engine
	tagger   *sentiment.Tagger
	session  string
	settings engine.Settings
}

func (r *repl) run(ctx context.Context) {
	fmt.Println("solace: type a message, /help for commands")
	if r.session != "" {
		r.replayHistory()
	}

	s := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("you> ")
		if !s.Scan() {
			break
		}
		line := strings.TrimSpace(s.Text())
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "/") {
			if quit := r.command(line); quit {
				return
			}
			continue
		}
		r.turn(ctx, line)
	}
}

func (r *repl) turn(ctx context.Context, text string) {
	fmt.Print("assistant> ")
	turn, err := r.engine.Respond(ctx, r.session, text, r.settings, func(fragment string) {
		fmt.Print(fragment)
	})
	fmt.Println()
	r.session = turn.SessionID

	if err != nil {
		var upstream *llm.Error
		if errors.As(err, &upstream) {
			fmt.Printf("[error] the assistant is unavailable (%s); your message was saved, try again\n", upstream.Kind)
		} else {
			fmt.Println("[error] history unavailable; message not processed")
		}
		return
	}

	fmt.Printf("[mood: %s (%d%%)]\n", turn.Sentiment.Mood, int(turn.Sentiment.Confidence*100))
	printResources(turn.Resources)
}

func (r *repl) replayHistory() {
	history, err := r.store.History(r.session)
	if err != nil {
		fmt.Println("[error] history unavailable")
		return
	}
	for _, m := range history {
		fmt.Printf("%s> %s\n", m.Role, m.Content)
	}
}

func printResources(resources []sentiment.Resource) {
	if len(resources) == 0 {
		return
	}
	fmt.Println("you might find these helpful:")
	for _, res := range resources {
		fmt.Printf("  - %s: %s (%s)\n", res.Title, res.Description, res.URL)
		if res.Contact != "" {
			fmt.Printf("    contact: %s\n", res.Contact)
		}
	}
}
