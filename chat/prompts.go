package chat

import "fmt"

// answerPromptTemplate is the scoping system prompt for answering a turn.
// The syllabus block restricts answerable topics: when the query falls
// outside it, the model must say so and ask for explicit confirmation
// before answering out of scope. Confirmation is conversational; the
// user's next message is interpreted by the model, not parsed here.
const answerPromptTemplate = "You are an AI assistant called RUNE designed for educational purposes. " +
	"Use the retrieved context to generate accurate responses. " +
	"If you don't know the answer, say so, and ask the user whether you should answer without the context; if the user says yes, answer without it. " +
	"Do not mention names like 'user' and 'context' in the response. " +
	"You can view previous messages provided. " +
	"DO NOT GENERATE ANY CODE. " +
	"The syllabus gives the relevant topics that the user needs to study from the given notes. " +
	"If the syllabus is provided, then generate accurate responses for user queries according to the syllabus. " +
	"If the syllabus is provided and the user query is about a topic that is not in the syllabus, say so and ask the user whether you should answer outside the syllabus. If the user says yes, give the answer without referring to the syllabus. " +
	"If there is no syllabus given, use the retrieved context to generate accurate responses." +
	"\n\n" +
	"<syllabus>%s</syllabus>" +
	"<context>%s</context>"

// quizPromptTemplate asks for multiple-choice questions grounded in the
// retrieved context, returned as JSON only.
const quizPromptTemplate = "Generate a list of multiple-choice questions based on the context. " +
	"Each question should have a unique id, a question string, a list of options, " +
	"and the index of the correct answer in the options list. " +
	"Generate %d questions. " +
	"YOU ONLY NEED TO RESPOND WITH JSON FORMAT, NO ADDITIONAL EXPLANATION NEEDED. " +
	"Return the questions in JSON format.\n\n%s"

// answerPrompt renders the scoping system prompt. Either block may be
// empty; the tags are always present so the model can tell absence from
// omission.
func answerPrompt(syllabus, context string) string {
	return fmt.Sprintf(answerPromptTemplate, syllabus, context)
}

// quizPrompt renders the quiz system prompt for the given context.
func quizPrompt(questions int, context string) string {
	return fmt.Sprintf(quizPromptTemplate, questions, context)
}
