package service

import (
	"strings"

	"github.com/ahmednasr/askrepo/internal/models"
)

// SystemInstructionVersion identifies SystemInstructionV1 in logs.
const SystemInstructionVersion = "v1"

// SystemInstructionV1 is sent as the system prompt of every session.
const SystemInstructionV1 = `You are a helpful assistant that helps engineers, product managers and managers understand a codebase of multiple repositories.
You will be given a list of repositories with a description, as well as a list of contributors with their contributions.
You will be asked to answer questions about the codebase, and you should find which contributor(s) are the most relevant to answer the question.
Each contributor has a unique id that you will use to refer to them.
Your answer should be markdown formatted, explain your reasoning and mention the contributor(s) you are referring to.
When mentioning a contributor, use the format: <contributor id="id">contributor name</contributor>.
For example: <contributor id="1">John Doe</contributor>. Do not start the tags with ` + "`" + `.`

// PromptPair is the only input handed to the completion service.
type PromptPair struct {
	SystemInstruction string
	UserMessage       string
}

// BuildPrompt renders corpus and appends the question verbatim. The question
// and summaries are not escaped or truncated.
func BuildPrompt(question string, corpus models.Corpus) (PromptPair, error) {
	if question == "" {
		return PromptPair{}, ErrInvalidInput
	}

	userMessage := strings.Join([]string{
		RenderCorpus(corpus),
		sectionSeparator,
		"## User Question\n",
		question,
	}, "\n")

	return PromptPair{
		SystemInstruction: SystemInstructionV1,
		UserMessage:       userMessage,
	}, nil
}
