// Package portfolioclient is a small client for the portfolio profile API.
package portfolioclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go-portfolio-backend/internal/domain"
)

const defaultTimeout = 15 * time.Second

// Config is passed explicitly to New; the client keeps no package-level state.
type Config struct {
	BaseURL string // e.g. http://localhost:8080/v1
	Token   string // bearer token
	Timeout time.Duration
}

type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

// APIError is returned for every non-2xx response.
type APIError struct {
	Status  int
	Message string
	Errors  domain.ValidationErrors
}

func (e *APIError) Error() string {
	if len(e.Errors) > 0 {
		return fmt.Sprintf("portfolio api: %d %s (%d field errors)", e.Status, e.Message, len(e.Errors))
	}
	return fmt.Sprintf("portfolio api: %d %s", e.Status, e.Message)
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   json.RawMessage `json:"error"`
}

func New(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("portfolioclient: base URL is required")
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		token:   cfg.Token,
		http:    &http.Client{Timeout: timeout},
	}, nil
}

func (c *Client) GetProfile(ctx context.Context) (*domain.ProfileView, error) {
	var out domain.ProfileView
	if err := c.do(ctx, http.MethodGet, "/profile", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Validate(ctx context.Context, req *domain.ValidateRequest) (*domain.ValidateResponse, error) {
	var out domain.ValidateResponse
	if err := c.do(ctx, http.MethodPost, "/profile/validate", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) SavePersonal(ctx context.Context, info domain.PersonalInfo) (*domain.SectionSaveResult, error) {
	return c.save(ctx, domain.SectionPersonal, info)
}

func (c *Client) SaveProfessional(ctx context.Context, prof domain.Professional) (*domain.SectionSaveResult, error) {
	return c.save(ctx, domain.SectionProfessional, prof)
}

func (c *Client) SaveExperience(ctx context.Context, entries []domain.Experience) (*domain.SectionSaveResult, error) {
	return c.save(ctx, domain.SectionExperience, domain.ExperienceSectionRequest{Experience: entries})
}

func (c *Client) SaveEducation(ctx context.Context, entries []domain.Education) (*domain.SectionSaveResult, error) {
	return c.save(ctx, domain.SectionEducation, domain.EducationSectionRequest{Education: entries})
}

func (c *Client) SaveProjects(ctx context.Context, entries []domain.Project) (*domain.SectionSaveResult, error) {
	return c.save(ctx, domain.SectionProjects, domain.ProjectsSectionRequest{Projects: entries})
}

func (c *Client) SelectTemplate(ctx context.Context, templateID string) (*domain.PublicPortfolio, error) {
	var out domain.PublicPortfolio
	if err := c.do(ctx, http.MethodPut, "/profile/template", domain.TemplateSelectRequest{TemplateID: templateID}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) save(ctx context.Context, section domain.Section, body any) (*domain.SectionSaveResult, error) {
	var out domain.SectionSaveResult
	if err := c.do(ctx, http.MethodPut, "/profile/"+string(section), body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("portfolioclient: encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("portfolioclient: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("portfolioclient: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("portfolioclient: read response: %w", err)
	}

	var env envelope
	decodeErr := json.Unmarshal(raw, &env)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
		if decodeErr == nil {
			if env.Message != "" {
				apiErr.Message = env.Message
			}
			// error details are only a field map for validation failures
			var fieldErrs domain.ValidationErrors
			if len(env.Error) > 0 && json.Unmarshal(env.Error, &fieldErrs) == nil {
				apiErr.Errors = fieldErrs
			}
		}
		return apiErr
	}

	if decodeErr != nil {
		return fmt.Errorf("portfolioclient: decode response: %w", decodeErr)
	}
	if out == nil || len(env.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("portfolioclient: decode data: %w", err)
	}
	return nil
}
