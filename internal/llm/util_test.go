package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanJSONBlock_JSONFence(t *testing.T) {
	input := "```json\n{\"role_focus\": []}\n```"

	assert.Equal(t, `{"role_focus": []}`, CleanJSONBlock(input))
}

func TestCleanJSONBlock_GenericFence(t *testing.T) {
	input := "```\n{\"a\": 1}\n```"

	assert.Equal(t, `{"a": 1}`, CleanJSONBlock(input))
}

func TestCleanJSONBlock_NoFence(t *testing.T) {
	input := `{"a": 1}`

	assert.Equal(t, input, CleanJSONBlock(input))
}

func TestCleanJSONBlock_SurroundingWhitespace(t *testing.T) {
	input := "  \n```json\n{}\n```  \n"

	assert.Equal(t, "{}", CleanJSONBlock(input))
}
