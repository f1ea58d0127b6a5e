package triviaapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/SAP-F-2025/trivia-browser/internal/models"
	"github.com/SAP-F-2025/trivia-browser/internal/validator"
)

const (
	apiPrefix       = "/api/v1"
	requestIDHeader = "X-Request-ID"
	maxErrorBody    = 4 << 10
)

// Client talks to the question store over its REST API
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
	validator  *validator.Validator
}

// NewClient creates a client for the question store at baseURL.
// A nil httpClient uses a client with the transport's default timeouts.
func NewClient(baseURL string, httpClient *http.Client, logger *slog.Logger, v *validator.Validator) *Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	if v == nil {
		v = validator.New()
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
		logger:     logger,
		validator:  v,
	}
}

// ListCategories fetches every category
func (c *Client) ListCategories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	if err := c.do(ctx, http.MethodGet, "/categories", nil, &categories); err != nil {
		return nil, err
	}
	if err := validator.Slice(c.validator, categories); err != nil {
		return nil, fmt.Errorf("invalid category payload: %w", err)
	}
	return categories, nil
}

// ListQuestions fetches the page-th slice of the catalog
func (c *Client) ListQuestions(ctx context.Context, page int) ([]models.Question, error) {
	path := "/questions?" + url.Values{"page": {strconv.Itoa(page)}}.Encode()
	return c.questions(ctx, http.MethodGet, path, nil)
}

// ListQuestionsByCategory fetches all questions in a category
func (c *Client) ListQuestionsByCategory(ctx context.Context, categoryID int) ([]models.Question, error) {
	return c.questions(ctx, http.MethodGet, fmt.Sprintf("/categories/%d/questions", categoryID), nil)
}

// SearchQuestions asks the store for questions containing term; the term is sent verbatim
func (c *Client) SearchQuestions(ctx context.Context, term string) ([]models.Question, error) {
	return c.questions(ctx, http.MethodPost, "/questions/search-term", models.SearchRequest{SearchTerm: &term})
}

// DeleteQuestion removes a question by id
func (c *Client) DeleteQuestion(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/questions/%d", id), nil, nil)
}

func (c *Client) questions(ctx context.Context, method, path string, body interface{}) ([]models.Question, error) {
	var questions []models.Question
	if err := c.do(ctx, method, path, body, &questions); err != nil {
		return nil, err
	}
	if err := validator.Slice(c.validator, questions); err != nil {
		return nil, fmt.Errorf("invalid question payload: %w", err)
	}
	if questions == nil {
		questions = []models.Question{}
	}
	return questions, nil
}

func (c *Client) do(ctx context.Context, method, path string, body interface{}, dest interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+apiPrefix+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	requestID := RequestIDFromContext(ctx)
	if requestID == "" {
		requestID = uuid.New().String()
	}
	req.Header.Set(requestIDHeader, requestID)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.WarnContext(ctx, "Question store request failed",
			"method", method, "path", path, "request_id", requestID, "error", err)
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	c.logger.DebugContext(ctx, "Question store request",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"request_id", requestID,
		"duration", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newStatusError(method, path, resp)
	}

	if dest == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("failed to decode %s %s response: %w", method, path, err)
	}
	return nil
}
