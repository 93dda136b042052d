package services

import (
	"fmt"
	"strings"

	"github.com/q-sparc/sparc-chat/internal/core/domain"
	"github.com/q-sparc/sparc-chat/internal/core/ports/driven"
)

// Sentinel markers delimiting the structured table in model output.
// These are part of the caller-visible contract and must not change.
const (
	TableStartMarker = "Start_JSON"
	TableEndMarker   = "End_JSON"
)

// DefaultChatSystemPrompt is the embedded system instruction block, used
// when no prompt store override exists. The single %s placeholder receives
// the retrieved context block.
const DefaultChatSystemPrompt = `You are an expert assistant specializing in neuroscience and neural pathways.
Answer the user's question based on the following context and the chat history.
Be concise and clear, do not output thinking stages and do not repeat redundant results.
After completing the text answer, return the matching rows from the source database
in the following format. Use N/A for missing values and delete repeated rows:

Start_JSON "head": [
      "Neuron_ID",
      "A_L1_ID",
      "A_L1",
      "A_L2_ID",
      "A_L2",
      "A_L3_ID",
      "A_L3",
      "A_ID",
      "A",
      "C_ID",
      "C",
      "C_Type",
      "B_ID",
      "B",
      "Target_Organ_IRI",
      "Target_Organ"
    ],
"rows":[...,...,...]
End_JSON

CONTEXT:
%s
`

// fewShotExamples are fixed exemplar question/answer pairs included in every
// prompt to steer answer style and the structured-block format. They mirror
// the pathway-summary phrasing the assistant should produce.
var fewShotExamples = []driven.ChatMessage{
	{
		Role: driven.ChatRoleUser,
		Content: "Is there a connection from inferior mesenteric ganglion to the " +
			"urinary bladder in rats? Summarize the pathways based on the nerves involved.",
	},
	{
		Role: driven.ChatRoleAssistant,
		Content: `Yes, there is a connection from the inferior mesenteric ganglion to the urinary bladder in rats. The pathways are summarized as follows:

1. Via bladder nerve:
   - From inferior mesenteric ganglion to Dome of the Bladder
   - From inferior mesenteric ganglion to neck of urinary bladder
2. Via hypogastric nerve:
   - From inferior mesenteric ganglion to Dome of the Bladder
   - From inferior mesenteric ganglion to neck of urinary bladder
3. Via pelvic ganglion:
   - From inferior mesenteric ganglion to Dome of the Bladder
   - From inferior mesenteric ganglion to neck of urinary bladder.`,
	},
	{
		Role: driven.ChatRoleUser,
		Content: "To what organs does the pelvic ganglion project? Summarize the " +
			"connections categorized by end organs. Only list the end organs.",
	},
	{
		Role: driven.ChatRoleAssistant,
		Content: `The pelvic ganglion projects to several organs, which can be categorized as follows:

1. Bladder:
   - Dome of the bladder
   - Neck of the urinary bladder
2. Uterus:
   - Uterine myometrium
   - Blood vessel of the uterus
3. Cervix:
   - Smooth muscle of the cervix
   - Epithelium of the cervix
4. Vagina:
   - Smooth muscle of the vagina
   - Blood vessel of the vagina
5. Prostate:
   - Prostate gland smooth muscle
   - Prostate epithelium

These connections illustrate the diverse roles of the pelvic ganglion in innervating various reproductive and urinary structures.`,
	},
	{
		Role: driven.ChatRoleUser,
		Content: "What connections originate in the nucleus of the brain? " +
			"Categorize the pathways based on different brain nuclei.",
	},
	{
		Role: driven.ChatRoleAssistant,
		Content: "Based on the information provided, there are no results available from the " +
			"connectivity knowledge base regarding connections that originate from the nucleus " +
			"of the brain. Therefore, I am unable to categorize the pathways based on different " +
			"brain nuclei.",
	},
}

// FewShotExampleCount reports how many exemplar messages every prompt
// carries, for prompt-size accounting in callers.
func FewShotExampleCount() int {
	return len(fewShotExamples)
}

// FormatContext concatenates retrieved document texts into the context
// block, joined with a blank line, in index order.
func FormatContext(docs []domain.ConnectionDocument) string {
	texts := make([]string, len(docs))
	for i, doc := range docs {
		texts[i] = doc.Text
	}
	return strings.Join(texts, "\n\n")
}

// BuildPrompt renders the full message sequence for one generation call, in
// fixed order: system block (with context substituted), few-shot examples,
// prior session turns, and the new user input.
func BuildPrompt(
	systemTemplate string,
	history []domain.Turn,
	docs []domain.ConnectionDocument,
	input string,
) []driven.ChatMessage {
	if systemTemplate == "" {
		systemTemplate = DefaultChatSystemPrompt
	}

	messages := make([]driven.ChatMessage, 0, 2+len(fewShotExamples)+len(history))
	messages = append(messages, driven.ChatMessage{
		Role:    driven.ChatRoleSystem,
		Content: fmt.Sprintf(systemTemplate, FormatContext(docs)),
	})
	messages = append(messages, fewShotExamples...)
	for _, turn := range history {
		messages = append(messages, driven.ChatMessage{
			Role:    string(turn.Role),
			Content: turn.Content,
		})
	}
	messages = append(messages, driven.ChatMessage{
		Role:    driven.ChatRoleUser,
		Content: input,
	})
	return messages
}
