package httpapi

import (
	"encoding/json"
	"net/http"

	"certquiz/internal/bank"
)

func toQuestionResponses(questions []bank.Question) []questionResponse {
	response := make([]questionResponse, 0, len(questions))
	for _, question := range questions {
		// correct_index and explanation are exposed because sessions are
		// scored by the client.
		response = append(response, questionResponse{
			QuestionID:   question.ID,
			Question:     question.Prompt,
			Options:      question.Options,
			CorrectIndex: question.CorrectIndex,
			Explanation:  question.Explanation,
			Category:     question.Category,
		})
	}
	return response
}

func writeJSON(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(payload)
}
