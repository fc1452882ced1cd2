// Copyright 2026 Studium Labs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/studium-labs/studium"
	"github.com/studium-labs/studium/ai"
	"github.com/studium-labs/studium/core"
)

func main() {
	app := &cli.App{
		Name:  "studium",
		Usage: "Retrieval-augmented study assistant",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:   "new",
				Usage:  "Create a conversation and print its ID",
				Action: newCommand,
				Flags: append(backendFlags(),
					&cli.StringFlag{
						Name:     "user",
						Aliases:  []string{"u"},
						Usage:    "User identifier",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "title",
						Aliases:  []string{"t"},
						Usage:    "Conversation title",
						Required: true,
					},
				),
			},
			{
				Name:   "list",
				Usage:  "List a user's conversations",
				Action: listCommand,
				Flags: append(backendFlags(),
					&cli.StringFlag{
						Name:     "user",
						Aliases:  []string{"u"},
						Usage:    "User identifier",
						Required: true,
					},
				),
			},
			{
				Name:   "ingest",
				Usage:  "Ingest a document into a conversation and wait for completion",
				Action: ingestCommand,
				Flags: append(backendFlags(),
					&cli.Uint64Flag{
						Name:     "conversation",
						Aliases:  []string{"c"},
						Usage:    "Conversation ID",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "user",
						Aliases:  []string{"u"},
						Usage:    "User identifier",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "file",
						Aliases:  []string{"f"},
						Usage:    "Path to the document (pdf, txt, or md)",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "role",
						Usage: "Document role (notes or syllabus)",
						Value: "notes",
					},
					&cli.DurationFlag{
						Name:  "poll-interval",
						Usage: "How often to poll ingestion progress",
						Value: 250 * time.Millisecond,
					},
				),
			},
			{
				Name:   "chat",
				Usage:  "Send a message and stream the answer to stdout",
				Action: chatCommand,
				Flags: append(backendFlags(),
					&cli.Uint64Flag{
						Name:     "conversation",
						Aliases:  []string{"c"},
						Usage:    "Conversation ID",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "message",
						Aliases:  []string{"m"},
						Usage:    "Message to send",
						Required: true,
					},
				),
			},
			{
				Name:   "quiz",
				Usage:  "Generate quiz questions from a conversation's documents",
				Action: quizCommand,
				Flags: append(backendFlags(),
					&cli.Uint64Flag{
						Name:     "conversation",
						Aliases:  []string{"c"},
						Usage:    "Conversation ID",
						Required: true,
					},
					&cli.StringSliceFlag{
						Name:     "keyword",
						Aliases:  []string{"k"},
						Usage:    "Topic keyword (repeatable)",
						Required: true,
					},
				),
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func backendFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:     "db",
			Aliases:  []string{"d"},
			Usage:    "Path to BadgerDB database directory",
			Required: true,
		},
		&cli.StringFlag{
			Name:  "ai-host",
			Usage: "OpenAI-compatible service host URL for embeddings and chat",
			Value: "http://localhost:11434/v1",
		},
		&cli.StringFlag{
			Name:  "embedding-model",
			Usage: "Embedding model name",
		},
		&cli.StringFlag{
			Name:  "chat-model",
			Usage: "Chat model name",
		},
		&cli.StringFlag{
			Name:  "pg-dsn",
			Usage: "PostgreSQL DSN for pgvector chunk storage (defaults to embedded store)",
		},
	}
}

func openBackend(c *cli.Context) (*studium.Backend, error) {
	var configOpts []ai.ConfigOption
	if host := c.String("ai-host"); host != "" {
		configOpts = append(configOpts, ai.WithHost(host))
	}
	if model := c.String("embedding-model"); model != "" {
		configOpts = append(configOpts, ai.WithEmbeddingModel(model))
	}
	if model := c.String("chat-model"); model != "" {
		configOpts = append(configOpts, ai.WithChatModel(model))
	}

	aiConfig := ai.NewConfig(configOpts...)
	if err := aiConfig.Validate(); err != nil {
		return nil, fmt.Errorf("invalid AI configuration: %w", err)
	}

	opts := []studium.BackendOption{studium.WithAIConfig(aiConfig)}
	if dsn := c.String("pg-dsn"); dsn != "" {
		opts = append(opts, studium.WithPostgresVectors(dsn))
	}

	backend, err := studium.New(c.String("db"), opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to open backend: %w", err)
	}
	return backend, nil
}

func newCommand(c *cli.Context) error {
	ctx := context.Background()

	backend, err := openBackend(c)
	if err != nil {
		return err
	}
	defer backend.Close()

	conv, err := backend.NewConversation(ctx, c.String("user"), c.String("title"))
	if err != nil {
		return fmt.Errorf("failed to create conversation: %w", err)
	}

	fmt.Println(conv.Id)
	return nil
}

func listCommand(c *cli.Context) error {
	ctx := context.Background()

	backend, err := openBackend(c)
	if err != nil {
		return err
	}
	defer backend.Close()

	convs, err := backend.Conversations(ctx, c.String("user"))
	if err != nil {
		return fmt.Errorf("failed to list conversations: %w", err)
	}

	for _, conv := range convs {
		marker := " "
		if conv.Bookmarked {
			marker = "*"
		}
		fmt.Printf("%s %d\t%s\n", marker, conv.Id, conv.Title)
	}
	return nil
}

func ingestCommand(c *cli.Context) error {
	ctx := context.Background()

	role, err := parseRole(c.String("role"))
	if err != nil {
		return err
	}

	backend, err := openBackend(c)
	if err != nil {
		return err
	}
	defer backend.Close()

	// The pipeline removes its input file when processing ends, so hand
	// it a copy and leave the user's file alone.
	filePath, err := copyToTemp(c.String("file"))
	if err != nil {
		return fmt.Errorf("failed to stage file: %w", err)
	}

	jobId, err := backend.BeginIngestion(
		ctx,
		core.ID(c.Uint64("conversation")),
		c.String("user"),
		filePath,
		filepath.Base(c.String("file")),
		role,
	)
	if err != nil {
		return fmt.Errorf("failed to start ingestion: %w", err)
	}

	interval := c.Duration("poll-interval")
	for {
		snap, ok := backend.PollIngestion(jobId)
		if !ok {
			return fmt.Errorf("ingestion job %d disappeared", jobId)
		}

		fmt.Fprintf(os.Stderr, "\rprogress: %3d%%", snap.Progress)

		if snap.Completed() {
			fmt.Fprintln(os.Stderr)
			fmt.Println(jobId)
			return nil
		}
		if snap.Failed() {
			fmt.Fprintln(os.Stderr)
			return fmt.Errorf("ingestion failed: %s", snap.Error)
		}

		time.Sleep(interval)
	}
}

func chatCommand(c *cli.Context) error {
	ctx := context.Background()

	backend, err := openBackend(c)
	if err != nil {
		return err
	}
	defer backend.Close()

	_, err = backend.AnswerTurn(
		ctx,
		core.ID(c.Uint64("conversation")),
		c.String("message"),
		func(ctx context.Context, chunk []byte) error {
			_, err := os.Stdout.Write(chunk)
			return err
		},
	)
	if err != nil {
		return fmt.Errorf("failed to answer: %w", err)
	}

	fmt.Println()
	return nil
}

func quizCommand(c *cli.Context) error {
	ctx := context.Background()

	backend, err := openBackend(c)
	if err != nil {
		return err
	}
	defer backend.Close()

	quiz, err := backend.GenerateQuiz(ctx, core.ID(c.Uint64("conversation")), c.StringSlice("keyword"))
	if err != nil {
		return fmt.Errorf("failed to generate quiz: %w", err)
	}

	fmt.Println(quiz)
	return nil
}

func parseRole(s string) (core.DocumentRole, error) {
	switch strings.ToLower(s) {
	case "notes":
		return core.RoleNotes, nil
	case "syllabus":
		return core.RoleSyllabus, nil
	default:
		return 0, fmt.Errorf("invalid role %q: must be notes or syllabus", s)
	}
}

func copyToTemp(src string) (string, error) {
	data, err := os.ReadFile(src)
	if err != nil {
		return "", err
	}

	tmp, err := os.CreateTemp("", "studium-upload-*"+strings.ToLower(filepath.Ext(src)))
	if err != nil {
		return "", err
	}
	defer tmp.Close()

	if _, err := tmp.Write(data); err != nil {
		os.Remove(tmp.Name())
		return "", err
	}
	return tmp.Name(), nil
}

func setupLogger(c *cli.Context) error {
	// Get log level from flag and normalize to lowercase
	levelStr := strings.ToLower(c.String("log-level"))

	// Map string to slog.Level
	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	// Configure slog with the specified level
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
