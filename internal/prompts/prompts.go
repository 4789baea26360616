// Package prompts holds the fixed instructions sent to language models.
package prompts

// SummarySystemPrompt is the system turn of every summarization request; the
// extracted document text is the user turn.
const SummarySystemPrompt = `You are a helpful assistant.
Your task is to provide a concise and accurate summary of the following text.
Please ensure the summary captures the key points, themes, or arguments presented, omitting less critical details and examples.
DO NOT INCLUDE ANY EXTRA TEXT THAN THE SUMMARY ITSELF.`
