package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/archirag-cli/internal/core/domain"
)

// cannedAnswerer returns fixed replies and records what it was asked.
type cannedAnswerer struct {
	answer    domain.Answer
	cards     []domain.Flashcard
	gotQuery  string
	gotChunks int
	gotText   string
}

func (c *cannedAnswerer) GenerateAnswer(
	_ context.Context, query string, results []domain.SearchResult, _ domain.Config,
) (*domain.Answer, error) {
	c.gotQuery = query
	c.gotChunks = len(results)
	return &c.answer, nil
}

func (c *cannedAnswerer) GenerateFlashcards(
	_ context.Context, text string, _ domain.Config,
) ([]domain.Flashcard, error) {
	c.gotText = text
	return c.cards, nil
}

func TestAskCmd_Use(t *testing.T) {
	assert.Equal(t, "ask [question]", askCmd.Use)
}

func TestAskCmd_RequiresAnswerService(t *testing.T) {
	cleanup := setupTestServices(t)
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"ask", "anything"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.ErrorIs(t, err, domain.ErrAnswerUnavailable)
}

func TestAskCmd_PrintsAnswer(t *testing.T) {
	cleanup := setupTestServices(t)
	defer cleanup()

	answerer := &cannedAnswerer{
		answer: domain.Answer{
			Text:       "Cats hunt at night.",
			Confidence: 0.8,
			FollowUps:  []string{"What do cats eat?"},
		},
	}
	answerService = answerer
	defer func() { answerService = nil }()

	seedDocument(t, "bio.txt", "Cats are mammals. Cats hunt at night and sleep through the day.")

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"ask", "when do cats hunt and sleep"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Cats hunt at night.")
	assert.Contains(t, buf.String(), "Confidence: 80%")
	assert.Contains(t, buf.String(), "What do cats eat?")
	assert.Equal(t, "when do cats hunt and sleep", answerer.gotQuery)
	assert.Greater(t, answerer.gotChunks, 0)
}

func TestAskCmd_ShowsSources(t *testing.T) {
	cleanup := setupTestServices(t)
	defer cleanup()

	answerService = &cannedAnswerer{answer: domain.Answer{Text: "An answer."}}
	defer func() { answerService = nil }()

	seedDocument(t, "bio.txt", "Cats are mammals. Cats hunt at night and sleep through the day.")

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"ask", "--sources", "when do cats hunt and sleep"})
	defer func() {
		askShowSources = false
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Sources:")
	assert.Contains(t, buf.String(), "bio.txt")
}
