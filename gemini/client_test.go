package gemini_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vigil"
	"vigil/gemini"
)

func TestConvertRequest(t *testing.T) {
	t.Parallel()

	t.Run("system message becomes system instruction", func(t *testing.T) {
		t.Parallel()
		contents, config := gemini.ConvertRequest(vigil.ChatRequest{
			Messages: []vigil.ChatMessage{
				{Role: vigil.RoleSystem, Content: "be brief"},
				{Role: vigil.RoleUser, Content: "hi"},
			},
		})

		require.NotNil(t, config.SystemInstruction)
		require.Len(t, config.SystemInstruction.Parts, 1)
		assert.Equal(t, "be brief", config.SystemInstruction.Parts[0].Text)

		require.Len(t, contents, 1)
		assert.Equal(t, "user", contents[0].Role)
	})

	t.Run("assistant turns map to model role", func(t *testing.T) {
		t.Parallel()
		contents, _ := gemini.ConvertRequest(vigil.ChatRequest{
			Messages: []vigil.ChatMessage{
				{Role: vigil.RoleUser, Content: "question"},
				{Role: vigil.RoleAssistant, Content: "answer"},
				{Role: vigil.RoleUser, Content: "followup"},
			},
		})

		require.Len(t, contents, 3)
		assert.Equal(t, "user", contents[0].Role)
		assert.Equal(t, "model", contents[1].Role)
		assert.Equal(t, "answer", contents[1].Parts[0].Text)
		assert.Equal(t, "user", contents[2].Role)
	})

	t.Run("empty request", func(t *testing.T) {
		t.Parallel()
		contents, config := gemini.ConvertRequest(vigil.ChatRequest{})
		assert.Empty(t, contents)
		assert.Nil(t, config.SystemInstruction)
	})
}
