package httpapi

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"
)

func (a *API) HandleTopics(w http.ResponseWriter, _ *http.Request) {
	summaries := a.bank.Summaries()

	response := topicsResponse{
		Topics: make([]topicResponse, 0, len(summaries)),
	}
	for _, item := range summaries {
		response.Topics = append(response.Topics, topicResponse{
			Name:          item.Name,
			QuestionCount: item.QuestionCount,
		})
	}

	writeJSON(w, http.StatusOK, response)
}

func (a *API) HandleTopicQuestions(w http.ResponseWriter, r *http.Request) {
	topic := chi.URLParam(r, "topic")
	// chi routes on RawPath when it is set, leaving the segment escaped.
	if r.URL.RawPath != "" {
		if unescaped, err := url.PathUnescape(topic); err == nil {
			topic = unescaped
		}
	}
	topic = strings.TrimSpace(topic)
	if topic == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "topic is required"})
		return
	}

	questions, ok := a.bank.Questions(topic)
	if !ok {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "topic not found"})
		return
	}

	writeJSON(w, http.StatusOK, questionsResponse{
		Topic:         topic,
		QuestionCount: len(questions),
		Questions:     toQuestionResponses(questions),
	})
}
