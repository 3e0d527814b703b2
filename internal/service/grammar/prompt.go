package grammar

// promptTemplate is the fixed instruction wrapped around the input text.
// The model is asked for raw machine-readable JSON; this layer returns the
// completion verbatim and leaves interpreting that JSON to the client.
const promptTemplate = `Act as a strict JSON API for grammar correction.
Analyze the text below and return a RAW JSON object. Do not use markdown code blocks. Do not add explanations.

Instructions:
1. Provide a fully corrected version of the entire input text
2. For suggestions, focus on complete sentences or meaningful phrases, not individual words
3. Each suggestion should be a complete, properly formatted sentence alternative
4. Include explanations for why the suggested sentence is better

Response Schema:
{
  "corrected": "The fully corrected text",
  "suggestions": [
    {
      "original": "original sentence or phrase",
      "replacement": "complete corrected sentence",
      "explanation": "why this sentence structure is better"
    }
  ]
}

Input Text:
`

// BuildPrompt wraps the raw input text in the correction instruction.
func BuildPrompt(text string) string {
	return promptTemplate + text
}
