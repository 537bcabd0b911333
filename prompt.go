package inglify

import (
	"fmt"
	"strings"
)

// BuildPrompt renders the model instruction for translating text into the
// target language in all six tones. The text is embedded verbatim.
func BuildPrompt(text, targetLanguage string) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "You are a professional translator. Please translate the following Indonesian text to %s in %d different tones/styles.\n\n",
		PromptLanguageName(targetLanguage), len(TranslationTones))
	fmt.Fprintf(&sb, "Original Indonesian text: \"%s\"\n\n", text)

	fmt.Fprintf(&sb, "Please provide translations in these %d tones:\n", len(TranslationTones))
	for _, tone := range TranslationTones {
		fmt.Fprintf(&sb, "%s: %s\n", tone.Name, tone.Description)
	}

	sb.WriteString("\nIMPORTANT: Return your response as a valid JSON object with this exact structure:\n")
	sb.WriteString("{\n  \"results\": [\n")
	for i, tone := range TranslationTones {
		fmt.Fprintf(&sb, "    {\n      \"tone\": \"%s\",\n      \"translation\": \"your %s translation here\"\n    }", tone.Name, tone.Name)
		if i < len(TranslationTones)-1 {
			sb.WriteString(",")
		}
		sb.WriteString("\n")
	}
	sb.WriteString("  ]\n}\n\n")

	sb.WriteString("Make sure each translation accurately reflects the specified tone while maintaining the original meaning. ")
	sb.WriteString("Return only the JSON object, no additional text.")

	return sb.String()
}
