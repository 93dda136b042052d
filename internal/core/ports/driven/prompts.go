package driven

// PromptStore provides access to LLM prompt templates.
// Implementations may load prompts from files, embed them in the binary,
// or fetch them from a remote configuration service.
type PromptStore interface {
	// Load returns the prompt template for the given name.
	// Implementations should fall back to a sensible default when the
	// prompt is missing, or return an error if it is required.
	Load(name string) (string, error)

	// Reload clears any cached prompts, forcing fresh loads on next access.
	Reload()
}

// Well-known prompt names used throughout the application.
const (
	// PromptChatSystem is the pipeline's system instruction block. It
	// describes the assistant's role and the mandatory output contract
	// (free-text answer plus the delimited structured table). The template
	// expects a %s placeholder for the retrieved context block.
	PromptChatSystem = "chat_system"
)
