package oracle

import (
	"strings"

	"github.com/agawojdecka/polarify/internal/domain"
)

// Fixed prompts sent with every classification request. The system
// instruction pins the response to a bare JSON object so the reply can be
// parsed directly as an id -> polarity mapping.
const (
	systemInstruction = "You are a sentiment classification engine. " +
		"You receive a list of opinions, each formatted as 'id: text' and separated by commas. " +
		"Assign every opinion a polarity score between -1.0 (most negative) and 1.0 (most positive). " +
		"Respond with a single JSON object mapping each opinion id to its polarity score, " +
		"for example {\"1\": 0.8, \"2\": -0.3}. Do not include any other text."

	contentPrompt = "Score the sentiment of the following opinions: "
)

// buildOpinionsPrompt serializes a batch as "id1: text1, id2: text2, ...".
func buildOpinionsPrompt(opinions []domain.Opinion) string {
	parts := make([]string, len(opinions))
	for i, opinion := range opinions {
		parts[i] = opinion.ID + ": " + opinion.Content
	}
	return contentPrompt + strings.Join(parts, ", ")
}
