package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/codexplain/codexplain-go/internal/cache"
	"github.com/codexplain/codexplain-go/internal/explainer"
	"github.com/codexplain/codexplain-go/internal/github"
	"github.com/codexplain/codexplain-go/internal/lang"
	"github.com/codexplain/codexplain-go/internal/llm"
	"github.com/codexplain/codexplain-go/internal/storage"
)

// pipeline bundles the explainer with the resources that need closing
// when the command finishes.
type pipeline struct {
	explainer *explainer.Explainer
	client    *llm.Client
	cache     *cache.Store
	history   storage.HistoryStore
}

func (p *pipeline) close() {
	if p.client != nil {
		p.client.Close()
	}
	if p.cache != nil {
		p.cache.Close()
	}
	if p.history != nil {
		p.history.Close()
	}
}

// buildPipeline wires the remote client, cache, history store, and custom
// rules into an Explainer according to the loaded config. Failures in
// optional layers degrade to running without them.
func buildPipeline(ctx context.Context, noRemote bool) (*pipeline, error) {
	p := &pipeline{}

	if noRemote {
		disabled := *cfg
		disabled.Provider = string(llm.ProviderNone)
		client, err := llm.NewClient(ctx, &disabled)
		if err != nil {
			return nil, err
		}
		p.client = client
	} else {
		client, err := llm.NewClient(ctx, cfg)
		if err != nil {
			return nil, err
		}
		p.client = client
	}

	opts := []explainer.Option{}

	if cfg.Cache.Enabled {
		store, err := cache.Open(cfg.Cache.Directory, cfg.Cache.TTL)
		if err != nil {
			logger.WithError(err).Warn("Response cache unavailable, continuing without it")
		} else {
			p.cache = store
			opts = append(opts, explainer.WithCache(store, cache.Key))
		}
	}

	if cfg.History.Enabled {
		store, err := storage.NewSQLiteStore(cfg.History.Path)
		if err != nil {
			logger.WithError(err).Warn("History store unavailable, continuing without it")
		} else {
			p.history = store
			opts = append(opts, explainer.WithHistory(store))
		}
	}

	if cfg.RulesFile != "" {
		rules, err := lang.LoadRules(cfg.RulesFile)
		if err != nil {
			logger.WithError(err).Warnf("Could not load rules file %s", cfg.RulesFile)
		} else {
			opts = append(opts, explainer.WithRules(rules))
		}
	}

	p.explainer = explainer.New(cfg, p.client, opts...)
	return p, nil
}

// readInput resolves the code to analyze from a GitHub reference, a local
// file argument, or stdin, in that order.
func readInput(ctx context.Context, args []string, githubRef string) (string, error) {
	if githubRef != "" {
		owner, repo, path, err := github.ParseRef(githubRef)
		if err != nil {
			return "", err
		}
		client := github.NewClient(cfg.GitHub.Token, cfg.GitHub.RateLimit)
		content, err := client.FetchFile(ctx, owner, repo, path)
		if err != nil {
			return "", fmt.Errorf("fetch %s: %w", githubRef, err)
		}
		return content, nil
	}

	if len(args) > 0 {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return "", fmt.Errorf("read %s: %w", args[0], err)
		}
		return string(data), nil
	}

	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	return string(data), nil
}

// resolveLanguage honors an explicit --language flag, falling back to
// detection when the flag is empty or names an unsupported language.
func resolveLanguage(ctx context.Context, e *explainer.Explainer, code, label string) lang.Language {
	if label != "" {
		if language := lang.Normalize(label); language != lang.Unknown {
			return language
		}
		logger.Warnf("Unsupported language %q, detecting instead", label)
	}
	return e.DetectLanguage(ctx, code)
}
