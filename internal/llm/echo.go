package llm

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var itemCountPattern = regexp.MustCompile(`(?i)exactly (\d+)`)

// EchoAdapter is an offline stand-in that never calls a model. It answers
// outline requests with a numbered list and everything else with a paragraph
// built from the request, which makes it useful for trying the tool and for
// checking output formats without credentials.
type EchoAdapter struct{}

// NewEchoAdapter creates an echo adapter.
func NewEchoAdapter(Config) *EchoAdapter {
	return &EchoAdapter{}
}

func (a *EchoAdapter) Name() string {
	return "echo"
}

func (a *EchoAdapter) Model() string {
	return "echo"
}

func (a *EchoAdapter) IsAvailable() bool {
	return true
}

func (a *EchoAdapter) Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	subject := firstLine(userPrompt)
	if i := strings.LastIndex(subject, ": "); i >= 0 {
		subject = subject[i+2:]
	}

	if !strings.Contains(strings.ToLower(systemPrompt), "numbered list") {
		return fmt.Sprintf("This section covers %s. It is placeholder text produced without a language model.", subject), nil
	}

	count := 3
	if m := itemCountPattern.FindStringSubmatch(systemPrompt); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil && n > 0 {
			count = n
		}
	}

	var sb strings.Builder
	for i := 1; i <= count; i++ {
		switch i {
		case 1:
			fmt.Fprintf(&sb, "%d. Introduction to %s\n", i, subject)
		case count:
			fmt.Fprintf(&sb, "%d. Conclusion\n", i)
		default:
			fmt.Fprintf(&sb, "%d. Aspect %d of %s\n", i, i-1, subject)
		}
	}
	return strings.TrimSuffix(sb.String(), "\n"), nil
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexAny(s, "\r\n"); i >= 0 {
		return s[:i]
	}
	return s
}
