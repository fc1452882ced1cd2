// Package openai implements the ai interfaces against any
// OpenAI-compatible API (OpenAI, Ollama, LocalAI, vLLM).
//
// All clients are built on langchaingo and authenticate with a dummy
// token by default, which local services ignore.
package openai
