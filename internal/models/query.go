package models

// AskRequest is the payload for POST /api/llm_stream.
type AskRequest struct {
	Prompt string `json:"prompt" form:"prompt"` // the user's natural-language question
}
