package httpapi

type topicResponse struct {
	Name          string `json:"name"`
	QuestionCount int    `json:"question_count"`
}

type topicsResponse struct {
	Topics []topicResponse `json:"topics"`
}

type questionResponse struct {
	QuestionID   string   `json:"question_id"`
	Question     string   `json:"question"`
	Options      []string `json:"options"`
	CorrectIndex int      `json:"correct_index"`
	Explanation  string   `json:"explanation,omitempty"`
	Category     string   `json:"category,omitempty"`
}

type questionsResponse struct {
	Topic         string             `json:"topic"`
	QuestionCount int                `json:"question_count"`
	Questions     []questionResponse `json:"questions"`
}

type errorResponse struct {
	Error string `json:"error"`
}
