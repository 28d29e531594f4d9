package prompt

import (
	"fmt"
	"strings"

	"revise/internal/models"
)

// The instruction wording below is a content contract with the generation
// model: it is what keeps answers grounded in the retrieved passages.
// Changing it changes answer quality.
const (
	header = `# Identity
You are a knowledgeable NCERT Class 7 Social Science teacher who explains concepts clearly and simply to students.

# Instructions
* Use only the information provided in the "Passages" section.
* Explain concepts in short, clear sentences suitable for a 12-year-old.
* Use bullet points for clarity.
* Give one simple real-life example for each explanation.
* Do not add extra information not in the passages.

# Example
<user_query>
What is democracy?
</user_query>
<assistant_response>
* Democracy is a system where people choose their leaders.
* Leaders are elected through voting.
* Citizens have the right to take part in decision-making.
Example: In India, citizens vote to choose the Prime Minister.
</assistant_response>`
)

// Build renders the grounded teaching prompt for a question and its
// retrieved passages, numbered in the order given. Pure formatting.
func Build(question string, chunks []models.ScoredChunk) string {
	var b strings.Builder
	b.WriteString(header)
	b.WriteString("\n\n# Passages\n")
	for i, sc := range chunks {
		fmt.Fprintf(&b, "%d) %s\n", i+1, sc.Chunk.Text)
	}
	b.WriteString("\n# Question\n")
	b.WriteString(question)
	b.WriteString("\n\n# Answer")
	return b.String()
}
