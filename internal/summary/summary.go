// Package summary produces the short encouragement message shown with the
// monthly statistics.
package summary

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"text/template"
	"unicode/utf8"
)

// DefaultMessage is shown before any summary has been produced
const DefaultMessage = "Let's get started!"

// MaxLength caps a summary, in characters
const MaxLength = 30

var ErrNoActivity = errors.New("no missions completed this month")

// Summarizer writes a message about a child's completed missions
type Summarizer interface {
	Summarize(ctx context.Context, childName string, counts map[string]int) (string, error)
}

const summaryTemplate = `{{if .Name}}{{.Name}}: {{end}}{{.Total}} mission{{if ne .Total 1}}s{{end}} done!`

type summaryData struct {
	Name  string
	Total int
}

// TemplateSummarizer renders a fixed template. It never calls out of process.
type TemplateSummarizer struct {
	tmpl *template.Template
}

// NewTemplateSummarizer creates a new template summarizer
func NewTemplateSummarizer() *TemplateSummarizer {
	return &TemplateSummarizer{tmpl: template.Must(template.New("summary").Parse(summaryTemplate))}
}

// Summarize counts the month's completions. The name is left out when it
// would push the message past MaxLength.
func (s *TemplateSummarizer) Summarize(ctx context.Context, childName string, counts map[string]int) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	data := summaryData{Name: strings.TrimSpace(childName)}
	for _, count := range counts {
		data.Total += count
	}
	if data.Total == 0 {
		return "", ErrNoActivity
	}

	message, err := s.render(data)
	if err != nil {
		return "", err
	}
	if utf8.RuneCountInString(message) > MaxLength {
		data.Name = ""
		return s.render(data)
	}
	return message, nil
}

func (s *TemplateSummarizer) render(data summaryData) (string, error) {
	var buf bytes.Buffer
	if err := s.tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render summary: %w", err)
	}
	return buf.String(), nil
}

// truncate shortens message to MaxLength characters
func truncate(message string) string {
	message = strings.TrimSpace(message)
	if utf8.RuneCountInString(message) <= MaxLength {
		return message
	}
	runes := []rune(message)
	return strings.TrimSpace(string(runes[:MaxLength-1])) + "…"
}

// Cache holds the latest summary. A failed refresh keeps the previous message.
type Cache struct {
	mu         sync.RWMutex
	summarizer Summarizer
	message    string
}

// NewCache creates a cache showing DefaultMessage until the first refresh
func NewCache(summarizer Summarizer) *Cache {
	return &Cache{summarizer: summarizer, message: DefaultMessage}
}

// Message returns the latest summary
func (c *Cache) Message() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.message
}

// Refresh asks the summarizer for a new message
func (c *Cache) Refresh(ctx context.Context, childName string, counts map[string]int) error {
	message, err := c.summarizer.Summarize(ctx, childName, counts)
	if err != nil {
		if !errors.Is(err, ErrNoActivity) {
			log.Printf("Error refreshing summary: %v", err)
		}
		return err
	}

	c.mu.Lock()
	c.message = truncate(message)
	c.mu.Unlock()
	return nil
}
