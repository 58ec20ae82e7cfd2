package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"sort"
	"sync"
	"time"

	"go-portfolio-backend/internal/domain"
	"go-portfolio-backend/internal/profilecheck"
	"go-portfolio-backend/pkg/portfolioclient"

	"github.com/caarlos0/env/v11"
)

// ErrInvalidProfile is returned after the report when validation failed.
var ErrInvalidProfile = errors.New("profile has validation errors")

type Config struct {
	File     string
	Watch    bool
	Push     bool
	Interval time.Duration
	Debounce time.Duration

	APIURL   string        `env:"PORTFOLIO_API_URL" envDefault:"http://localhost:8080/v1"`
	APIToken string        `env:"PORTFOLIO_API_TOKEN"`
	Timeout  time.Duration `env:"PORTFOLIO_API_TIMEOUT" envDefault:"15s"`
}

// ParseConfig reads the API settings from the environment, then flags.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	fs.BoolVar(&cfg.Watch, "watch", false, "re-check the file whenever it changes")
	fs.BoolVar(&cfg.Push, "push", false, "save every valid section through the API")
	fs.DurationVar(&cfg.Interval, "interval", 500*time.Millisecond, "file poll interval in watch mode")
	fs.DurationVar(&cfg.Debounce, "debounce", profilecheck.DefaultDebounce, "quiet period before re-checking")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	if fs.NArg() != 1 {
		return Config{}, errors.New("usage: profilecheck [-watch] [-push] profile.json")
	}
	cfg.File = fs.Arg(0)

	if cfg.Push && cfg.APIToken == "" {
		return Config{}, errors.New("-push requires PORTFOLIO_API_TOKEN")
	}
	return cfg, nil
}

// Run checks cfg.File once, or keeps checking it until ctx is done in watch mode.
func Run(ctx context.Context, cfg Config, out io.Writer) error {
	out = &lockedWriter{w: out}

	var client *portfolioclient.Client
	if cfg.Push {
		var err error
		client, err = portfolioclient.New(portfolioclient.Config{
			BaseURL: cfg.APIURL,
			Token:   cfg.APIToken,
			Timeout: cfg.Timeout,
		})
		if err != nil {
			return err
		}
	}

	profile, err := loadProfile(cfg.File)
	if err != nil {
		return err
	}

	if !cfg.Watch {
		result := profilecheck.ValidateCompleteProfile(profile)
		writeReport(out, profile, result)
		if client != nil {
			push(ctx, client, profile, result, out)
		}
		if !result.IsValid {
			return ErrInvalidProfile
		}
		return nil
	}

	return watch(ctx, cfg, profile, client, out)
}

func loadProfile(path string) (domain.Profile, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return domain.Profile{}, fmt.Errorf("read %s: %w", path, err)
	}

	violations, err := profilecheck.CheckDocumentShape(raw)
	if err != nil {
		return domain.Profile{}, fmt.Errorf("%s is not valid JSON: %w", path, err)
	}
	if len(violations) > 0 {
		return domain.Profile{}, fmt.Errorf("%s does not match the profile document shape: %v", path, violations)
	}

	var doc domain.ProfileDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return domain.Profile{}, fmt.Errorf("decode %s: %w", path, err)
	}
	return doc.ToProfile(), nil
}

func watch(ctx context.Context, cfg Config, initial domain.Profile, client *portfolioclient.Client, out io.Writer) error {
	var session *profilecheck.Session
	session = profilecheck.NewSession(initial,
		profilecheck.WithDebounce(cfg.Debounce),
		profilecheck.WithOnResult(func(result profilecheck.ProfileResult) {
			profile := session.Profile()
			writeReport(out, profile, result)
			if client != nil && ctx.Err() == nil {
				push(ctx, client, profile, result, out)
			}
		}),
	)
	defer session.Close()

	writeReport(out, initial, session.Result())
	if client != nil {
		push(ctx, client, initial, session.Result(), out)
	}

	lastMod := modTime(cfg.File)
	ticker := time.NewTicker(cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			mod := modTime(cfg.File)
			if mod.Equal(lastMod) {
				continue
			}
			lastMod = mod

			profile, err := loadProfile(cfg.File)
			if err != nil {
				fmt.Fprintf(out, "! %v\n", err)
				continue
			}
			session.Update(func(p *domain.Profile) { *p = profile })
		}
	}
}

func modTime(path string) time.Time {
	info, err := os.Stat(path)
	if err != nil {
		return time.Time{}
	}
	return info.ModTime()
}

func writeReport(out io.Writer, profile domain.Profile, result profilecheck.ProfileResult) {
	validity := profilecheck.CheckSectionValidity(result.SectionValidation)
	completion := profilecheck.CalculateCompletionPercentage(profile)

	ready := "no"
	if profilecheck.IsReady(validity, completion) {
		ready = "yes"
	}

	fmt.Fprintf(out, "Completion: %d%%\n", completion)
	fmt.Fprintf(out, "Ready for templates: %s\n", ready)
	for _, s := range domain.AllSections() {
		r, _ := result.SectionValidation.Get(s)
		state := "valid"
		switch {
		case !r.HasData:
			state = "empty"
		case !r.IsValid:
			state = fmt.Sprintf("invalid (%d)", len(r.Errors))
		}
		fmt.Fprintf(out, "  %-13s %s\n", s, state)
	}

	if len(result.Errors) == 0 {
		return
	}
	keys := make([]string, 0, len(result.Errors))
	for k := range result.Errors {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	fmt.Fprintln(out, "Errors:")
	for _, k := range keys {
		fmt.Fprintf(out, "  %s: %s\n", k, result.Errors[k][0])
	}
}

// push saves every section that has data and passed validation.
func push(ctx context.Context, client *portfolioclient.Client, profile domain.Profile, result profilecheck.ProfileResult, out io.Writer) {
	for _, s := range domain.AllSections() {
		r, _ := result.SectionValidation.Get(s)
		if !r.HasData {
			continue
		}
		if !r.IsValid {
			fmt.Fprintf(out, "skip %s: has validation errors\n", s)
			continue
		}

		res, err := pushSection(ctx, client, profile, s)
		if err != nil {
			fmt.Fprintf(out, "push %s failed: %v\n", s, err)
			continue
		}
		if res.Unchanged {
			fmt.Fprintf(out, "push %s: unchanged\n", s)
			continue
		}
		fmt.Fprintf(out, "push %s: saved (completion %d%%)\n", s, res.Completion)
	}
}

func pushSection(ctx context.Context, client *portfolioclient.Client, p domain.Profile, s domain.Section) (*domain.SectionSaveResult, error) {
	switch s {
	case domain.SectionPersonal:
		return client.SavePersonal(ctx, p.PersonalInfo)
	case domain.SectionProfessional:
		return client.SaveProfessional(ctx, p.Professional)
	case domain.SectionExperience:
		return client.SaveExperience(ctx, p.Experience)
	case domain.SectionEducation:
		return client.SaveEducation(ctx, p.Education)
	case domain.SectionProjects:
		return client.SaveProjects(ctx, p.Projects)
	}
	return nil, profilecheck.ErrUnknownSection
}

type lockedWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (l *lockedWriter) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.w.Write(p)
}
