package ollama

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/archirag-cli/internal/core/domain"
)

// flashcardPayload is one card in the structured reply requested
// from the model.
type flashcardPayload struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// GenerateFlashcards asks the model to distil 3-5 question/answer study
// cards from the text. Uses the same retry policy as GenerateAnswer.
// Cards with a blank question or answer are dropped.
func (s *AnswerService) GenerateFlashcards(
	ctx context.Context, text string, cfg domain.Config,
) ([]domain.Flashcard, error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}

	model := cfg.AnswerModel
	if model == "" {
		model = s.model
	}

	reqBody := generateRequest{
		Model:  model,
		Prompt: buildFlashcardPrompt(text),
		Format: "json",
		Stream: false,
		Options: &options{
			Temperature: cfg.Temperature,
		},
	}

	raw, err := s.generateWithRetry(ctx, reqBody)
	if err != nil {
		return nil, err
	}

	return parseFlashcards(raw), nil
}

// parseFlashcards accepts both the requested object shape and the bare
// array some models reply with despite the format hint.
func parseFlashcards(raw string) []domain.Flashcard {
	var payload struct {
		Flashcards []flashcardPayload `json:"flashcards"`
	}
	if err := json.Unmarshal([]byte(raw), &payload); err != nil || len(payload.Flashcards) == 0 {
		var bare []flashcardPayload
		if json.Unmarshal([]byte(raw), &bare) == nil {
			payload.Flashcards = bare
		}
	}

	now := time.Now()
	cards := make([]domain.Flashcard, 0, len(payload.Flashcards))
	for _, c := range payload.Flashcards {
		question := strings.TrimSpace(c.Question)
		answer := strings.TrimSpace(c.Answer)
		if question == "" || answer == "" {
			continue
		}
		cards = append(cards, domain.Flashcard{
			ID:        uuid.NewString(),
			Question:  question,
			Answer:    answer,
			CreatedAt: now,
		})
	}

	return cards
}

// buildFlashcardPrompt frames the extraction request.
func buildFlashcardPrompt(text string) string {
	var b strings.Builder

	b.WriteString("Extract 3-5 key concepts from this text and turn them into question and answer study cards.\n\nText:\n")
	b.WriteString(text)
	b.WriteString("\n\nReply with a JSON object of the form\n")
	b.WriteString(`{"flashcards": [{"question": "...", "answer": "..."}]}`)

	return b.String()
}
