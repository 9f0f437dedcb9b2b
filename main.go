package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"website_content_orchestrator/config"
	"website_content_orchestrator/generator"
	"website_content_orchestrator/recorder"
	"website_content_orchestrator/server"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	serve := flag.Bool("serve", false, "start the HTTP server")
	addr := flag.String("addr", "", "listen address when --serve (overrides config)")
	instruction := flag.String("instruction", "", "one-shot: generate for this instruction and print JSON")
	user := flag.String("user", "cli", "user id for one-shot mode")
	mode := flag.String("mode", "generate", "one-shot mode: generate or improve")
	useMock := flag.Bool("mock", false, "use the mock backend instead of the configured provider")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if *useMock {
		cfg.LLM.Provider = "mock"
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	llm, err := buildLLM(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	store := generator.NewConversationStore(cfg.Conversation.TTL)
	var rec generator.PromptRecorder = generator.NoopRecorder{}
	if cfg.Recorder.Endpoint != "" {
		rec = recorder.New(cfg.Recorder.Endpoint, cfg.Recorder.Timeout)
	}

	agent, err := generator.NewAgent(llm, store, rec, logger, generator.Options{
		RequestTimeout: cfg.LLM.Timeout,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if *serve {
		srv, err := server.New(agent, logger, cfg.Server.RequestTimeout)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		store.StartJanitor(ctx, cfg.Conversation.SweepInterval)

		listen := cfg.Server.Addr
		if *addr != "" {
			listen = *addr
		}
		logger.Info("starting server", slog.String("addr", listen))
		if err := http.ListenAndServe(listen, srv.Routes()); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	if *instruction == "" {
		fmt.Fprintln(os.Stderr, "--instruction is required (or use --serve)")
		os.Exit(1)
	}

	result, err := agent.Generate(context.Background(), generator.Request{
		Instruction: *instruction,
		UserID:      *user,
		Mode:        generator.Mode(*mode),
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	out, _ := json.MarshalIndent(result, "", "  ")
	fmt.Println(string(out))
}

func buildLLM(cfg *config.Config) (generator.LLMClient, error) {
	switch cfg.LLM.Provider {
	case "mock":
		return &generator.MockLLM{}, nil
	case "openai", "compatible":
		// "compatible" covers any OpenAI-style gateway; it just needs base_url.
		if cfg.LLM.Provider == "compatible" && cfg.LLM.BaseURL == "" {
			return nil, fmt.Errorf("llm provider compatible requires base_url")
		}
		return generator.NewOpenAILLMFromConfig(&generator.LLMSettings{
			Provider:    cfg.LLM.Provider,
			Model:       cfg.LLM.Model,
			APIKey:      cfg.LLM.ResolveAPIKey(),
			BaseURL:     cfg.LLM.BaseURL,
			Temperature: cfg.LLM.Temperature,
			MaxTokens:   cfg.LLM.MaxTokens,
		})
	default:
		return nil, fmt.Errorf("llm provider %s not supported", cfg.LLM.Provider)
	}
}
