package opentdb

import (
	"html"
	"math/rand"

	"certquiz/internal/bank"
)

// BuildQuestions converts raw payloads into bank questions. The correct
// answer is placed among the incorrect ones with rng, so the option order is
// fixed once imported. Records that do not form a valid question are
// skipped.
func BuildQuestions(raw []RawQuestion, rng *rand.Rand) []bank.Question {
	questions := make([]bank.Question, 0, len(raw))
	for _, item := range raw {
		question := buildQuestion(item, rng)
		if bank.Validate(question) != nil {
			continue
		}
		question.ID = bank.MakeQuestionID(question)
		questions = append(questions, question)
	}
	return questions
}

func buildQuestion(raw RawQuestion, rng *rand.Rand) bank.Question {
	type choice struct {
		text      string
		isCorrect bool
	}

	choices := make([]choice, 0, len(raw.IncorrectAnswers)+1)
	for _, incorrect := range raw.IncorrectAnswers {
		choices = append(choices, choice{
			text:      html.UnescapeString(incorrect),
			isCorrect: false,
		})
	}

	choices = append(choices, choice{
		text:      html.UnescapeString(raw.CorrectAnswer),
		isCorrect: true,
	})

	rng.Shuffle(len(choices), func(i, j int) {
		choices[i], choices[j] = choices[j], choices[i]
	})

	options := make([]string, len(choices))
	correctIndex := -1
	for idx, candidate := range choices {
		options[idx] = candidate.text
		if candidate.isCorrect {
			correctIndex = idx
		}
	}

	return bank.Question{
		Prompt:       html.UnescapeString(raw.Question),
		Options:      options,
		CorrectIndex: correctIndex,
		Category:     html.UnescapeString(raw.Category),
	}
}
