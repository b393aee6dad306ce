package advice

import (
	"fmt"
	"strings"
)

const systemPrompt = "You are a careful general physician writing short home-care advice for a telehealth patient. " +
	"Do not change the diagnosis or add prescription medicines. Mention warning signs that need in-person care."

// Prompt renders req as the user message sent to a chat model.
func Prompt(req Request) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Provisional diagnosis: %s (%s).\n", orUnknown(req.Diagnosis), orUnknown(string(req.Severity)))
	if len(req.Symptoms) > 0 {
		tags := make([]string, 0, len(req.Symptoms))
		for _, s := range req.Symptoms {
			tags = append(tags, strings.ReplaceAll(string(s), "_", " "))
		}
		fmt.Fprintf(&b, "Symptoms: %s.\n", strings.Join(tags, ", "))
	}
	if len(req.Medicines) > 0 {
		fmt.Fprintf(&b, "Prescribed: %s.\n", strings.Join(req.Medicines, ", "))
	}
	fmt.Fprintf(&b, "Patient: %d years, %s.\n", req.Age, orUnknown(req.Gender))
	if req.Narrative != "" {
		fmt.Fprintf(&b, "Patient says: %q\n", req.Narrative)
	}
	fmt.Fprintf(&b, "Reply in %s in at most 120 words as plain text.", languageName(req.Language))
	return b.String()
}

func languageName(code string) string {
	switch strings.ToLower(code) {
	case "hi", "hindi":
		return "Hindi"
	default:
		return "English"
	}
}

func orUnknown(s string) string {
	if strings.TrimSpace(s) == "" {
		return "unknown"
	}
	return s
}
