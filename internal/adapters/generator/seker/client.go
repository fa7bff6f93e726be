package seker

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/vncsmyrnk/pollbot/internal/core/domain"
	"github.com/vncsmyrnk/pollbot/internal/core/ports"
)

const promptTemplate = `Generate a survey about %q with %d-%d questions, each having %d-%d choices. ` +
	`Return the result as a JSON array of objects, where each object has 'question' and 'answers' fields.`

// Client talks to the course text-generation endpoint, which takes
// {"id", "text"} and answers {"response"} or a bare text body.
type Client struct {
	url        string
	studentID  string
	httpClient *http.Client
}

func NewClient(url, studentID string, timeout time.Duration) (ports.QuestionGenerator, error) {
	if studentID == "" {
		return nil, errors.New("student id must not be empty")
	}
	if url == "" {
		return nil, errors.New("generator url must not be empty")
	}
	return &Client{
		url:        url,
		studentID:  studentID,
		httpClient: &http.Client{Timeout: timeout},
	}, nil
}

type sendRequest struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

type sendResponse struct {
	Response string `json:"response"`
}

type errorResponse struct {
	ErrorCode int    `json:"error_code"`
	Message   string `json:"message"`
}

type generatedQuestion struct {
	Question string   `json:"question"`
	Answers  []string `json:"answers"`
}

func (c *Client) GenerateQuestions(ctx context.Context, topic string) ([]domain.QuestionDraft, error) {
	prompt := fmt.Sprintf(promptTemplate, topic, domain.MinQuestions, domain.MaxQuestions, domain.MinChoices, domain.MaxChoices)

	reply, err := c.SendMessage(ctx, prompt)
	if err != nil {
		return nil, err
	}

	var generated []generatedQuestion
	if err := json.Unmarshal([]byte(extractJSONArray(reply)), &generated); err != nil {
		return nil, fmt.Errorf("%w: response is not a JSON array: %v", domain.ErrGenerator, err)
	}

	drafts := make([]domain.QuestionDraft, 0, len(generated))
	for _, g := range generated {
		if strings.TrimSpace(g.Question) == "" || len(g.Answers) == 0 {
			continue
		}
		drafts = append(drafts, domain.QuestionDraft{Text: g.Question, Choices: g.Answers})
	}
	return drafts, nil
}

// SendMessage posts a prompt and returns the textual reply.
func (c *Client) SendMessage(ctx context.Context, text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("%w: no text provided", domain.ErrGenerator)
	}

	body, err := json.Marshal(sendRequest{ID: c.studentID, Text: text})
	if err != nil {
		return "", fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json; charset=utf-8")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrGenerator, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: failed to read response: %v", domain.ErrGenerator, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var apiErr errorResponse
		if json.Unmarshal(raw, &apiErr) == nil && apiErr.ErrorCode != 0 {
			return "", fmt.Errorf("%w: api error %d: %s", domain.ErrGenerator, apiErr.ErrorCode, apiErr.Message)
		}
		return "", fmt.Errorf("%w: unexpected status %d: %s", domain.ErrGenerator, resp.StatusCode, raw)
	}

	var sr sendResponse
	if err := json.Unmarshal(raw, &sr); err == nil && sr.Response != "" {
		return sr.Response, nil
	}
	return string(raw), nil
}

// extractJSONArray trims chatter or code fences around the array.
func extractJSONArray(s string) string {
	start := strings.Index(s, "[")
	end := strings.LastIndex(s, "]")
	if start < 0 || end < start {
		return s
	}
	return s[start : end+1]
}
