package service

import (
	"fmt"
	"strings"

	"tutorflow/backend/internal/llm"
	"tutorflow/backend/internal/model"
)

// depthGuidance maps each depth to the verbosity instruction given to the model.
var depthGuidance = map[int]string{
	1: "Explain as simply as possible in a few short sentences, with one everyday analogy.",
	2: "Give a short explanation covering the key idea and one example.",
	3: "Give a balanced explanation with the main concepts, an example and common pitfalls.",
	4: "Give a detailed explanation including mechanisms, worked examples and edge cases.",
	5: "Give an exhaustive, exam-level explanation with derivations, examples and connections to related topics.",
}

func describeLearner(gc model.GenerationContext) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Course: %s\nTopic: %s\n", gc.CourseName, gc.TopicName)
	if gc.ChapterName != "" {
		fmt.Fprintf(&b, "Chapter: %s\n", gc.ChapterName)
	}
	if gc.Goal != "" {
		fmt.Fprintf(&b, "Student goal: %s\n", gc.Goal)
	}
	if gc.YearOfStudy != "" {
		fmt.Fprintf(&b, "Year of study: %s\n", gc.YearOfStudy)
	}
	if gc.ExamName != "" {
		fmt.Fprintf(&b, "Preparing for: %s\n", gc.ExamName)
	}
	return b.String()
}

func tutorSystemPrompt(gc model.GenerationContext) string {
	return "You are a patient tutor helping a student understand their course material.\n" +
		describeLearner(gc) +
		"Detail level: " + depthGuidance[model.ClampDepth(gc.Depth)]
}

func summaryProseRequest(gc model.GenerationContext) *llm.GenerateRequest {
	scope := gc.TopicName
	if gc.ChapterName != "" {
		scope = gc.ChapterName
	}
	return &llm.GenerateRequest{
		Messages: []llm.Message{
			{Role: "system", Content: "You write clear study overviews for students.\n" + describeLearner(gc) +
				"Detail level: " + depthGuidance[model.ClampDepth(gc.Depth)]},
			{Role: "user", Content: fmt.Sprintf("Write an overview of %q.", scope)},
		},
		Temperature: llm.Temperature(0.5),
	}
}

func summaryFollowUpRequest(prose string) *llm.GenerateRequest {
	return &llm.GenerateRequest{
		Messages: []llm.Message{
			{Role: "system", Content: "You write comprehension checks. Respond with only a JSON object of the form " +
				`{"question": string, "answerPills": [string], "correctIndex": number, "explanation": string, "starters": [string]}. ` +
				"Use at most 4 answerPills and at most 4 starters."},
			{Role: "user", Content: "Overview:\n" + prose},
		},
		Temperature: llm.Temperature(0.2),
	}
}

func historySummaryRequest(messages []model.ConversationMessage) *llm.GenerateRequest {
	var transcript strings.Builder
	for _, m := range messages {
		fmt.Fprintf(&transcript, "%s: %s\n", m.Role, m.Content)
	}
	return &llm.GenerateRequest{
		Messages: []llm.Message{
			{Role: "system", Content: "Summarize this tutoring conversation so far. Keep every concept the student has already covered and any misconceptions they showed. Be concise."},
			{Role: "user", Content: transcript.String()},
		},
		Temperature: llm.Temperature(0.2),
	}
}

func titleRequest(userQuery, assistantResponse string) *llm.GenerateRequest {
	return &llm.GenerateRequest{
		Messages: []llm.Message{
			{Role: "system", Content: "You are an expert at creating short, concise titles for conversations. Respond with only the title, and nothing else."},
			{Role: "user", Content: fmt.Sprintf("Based on the following conversation, what would be a good title?\n\n---\nUser: %s\n\nAssistant: %s\n---",
				truncate(userQuery, 150),
				truncate(assistantResponse, 200),
			)},
		},
		Temperature: llm.Temperature(0.3),
		MaxTokens:   24,
	}
}

// truncate shortens a string to a specified number of runes.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
