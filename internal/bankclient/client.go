package bankclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"certquiz/internal/bank"
)

var ErrServiceUnavailable = errors.New("quiz service unavailable")

type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if strings.TrimSpace(e.Message) == "" {
		return fmt.Sprintf("request failed with status %d", e.StatusCode)
	}
	return e.Message
}

type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
}

type topicItem struct {
	Name          string `json:"name"`
	QuestionCount int    `json:"question_count"`
}

type topicsResponse struct {
	Topics []topicItem `json:"topics"`
}

type questionItem struct {
	QuestionID   string   `json:"question_id"`
	Question     string   `json:"question"`
	Options      []string `json:"options"`
	CorrectIndex int      `json:"correct_index"`
	Explanation  string   `json:"explanation"`
	Category     string   `json:"category"`
}

type questionsResponse struct {
	Topic         string         `json:"topic"`
	QuestionCount int            `json:"question_count"`
	Questions     []questionItem `json:"questions"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func NewHTTPClient(baseURL string, httpClient *http.Client) *HTTPClient {
	baseURL = strings.TrimSpace(baseURL)
	baseURL = strings.TrimRight(baseURL, "/")
	if baseURL == "" {
		baseURL = "http://127.0.0.1:8080"
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &HTTPClient{
		baseURL:    baseURL,
		httpClient: httpClient,
	}
}

func (c *HTTPClient) ListTopics(ctx context.Context) ([]bank.TopicSummary, error) {
	var payload topicsResponse
	if err := c.getJSON(ctx, "/topics", &payload); err != nil {
		return nil, err
	}

	topics := make([]bank.TopicSummary, 0, len(payload.Topics))
	for _, item := range payload.Topics {
		topics = append(topics, bank.TopicSummary{
			Name:          item.Name,
			QuestionCount: item.QuestionCount,
		})
	}
	return topics, nil
}

func (c *HTTPClient) GetTopicQuestions(ctx context.Context, topic string) ([]bank.Question, error) {
	if strings.TrimSpace(topic) == "" {
		return nil, errors.New("topic is required")
	}

	var payload questionsResponse
	if err := c.getJSON(ctx, "/topics/"+url.PathEscape(topic)+"/questions", &payload); err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound {
			return nil, fmt.Errorf("%w: %q", bank.ErrTopicNotFound, topic)
		}
		return nil, err
	}

	questions := make([]bank.Question, 0, len(payload.Questions))
	for _, item := range payload.Questions {
		questions = append(questions, bank.Question{
			ID:           item.QuestionID,
			Prompt:       item.Question,
			Options:      item.Options,
			CorrectIndex: item.CorrectIndex,
			Explanation:  item.Explanation,
			Category:     item.Category,
		})
	}
	return questions, nil
}

// LoadBank downloads every topic. Questions are validated again by the
// bank, so a misbehaving server cannot start a session with a broken set.
func (c *HTTPClient) LoadBank(ctx context.Context) (*bank.Bank, error) {
	topics, err := c.ListTopics(ctx)
	if err != nil {
		return nil, err
	}

	b := bank.New()
	for _, topic := range topics {
		questions, err := c.GetTopicQuestions(ctx, topic.Name)
		if err != nil {
			return nil, err
		}
		if err := b.Add(topic.Name, questions); err != nil {
			return nil, err
		}
	}
	return b, nil
}

func (c *HTTPClient) getJSON(ctx context.Context, path string, responseBody any) error {
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	request.Header.Set("Accept", "application/json")

	response, err := c.httpClient.Do(request)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrServiceUnavailable, err)
	}
	defer response.Body.Close()

	if response.StatusCode < http.StatusOK || response.StatusCode >= http.StatusMultipleChoices {
		apiErr := APIError{StatusCode: response.StatusCode}
		var payload errorResponse
		if err := json.NewDecoder(response.Body).Decode(&payload); err == nil && strings.TrimSpace(payload.Error) != "" {
			apiErr.Message = payload.Error
		}
		if apiErr.Message == "" {
			apiErr.Message = response.Status
		}
		return &apiErr
	}

	if responseBody == nil {
		return nil
	}
	return json.NewDecoder(response.Body).Decode(responseBody)
}
