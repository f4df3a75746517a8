package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"
)

const maxSuggestions = 50

type TechstackService interface {
	// Suggest asks the text-generation collaborator for technologies
	// matching the role/level, optionally biased toward a search term.
	// The result is deduplicated, filtered and sorted, capped at 50.
	Suggest(ctx context.Context, role, level, search string) ([]string, error)
}

type techstackService struct {
	generator TextGenerator
	group     singleflight.Group
}

func NewTechstackService(generator TextGenerator) TechstackService {
	return &techstackService{generator: generator}
}

func (s *techstackService) Suggest(ctx context.Context, role, level, search string) ([]string, error) {
	role = strings.TrimSpace(role)
	level = strings.TrimSpace(level)
	search = strings.ToLower(strings.TrimSpace(search))

	if role == "" || level == "" {
		return nil, fmt.Errorf("role and level are required for AI suggestions: %w", ErrValidation)
	}

	// Typing in the creation form produces bursts of identical queries;
	// coalesce concurrent ones into a single collaborator call. The shared
	// call keeps the first caller's deadline but not its cancellation, so
	// one abandoned request cannot fail every rider.
	key := role + "\x00" + level + "\x00" + search
	result, err, _ := s.group.Do(key, func() (interface{}, error) {
		callCtx := context.WithoutCancel(ctx)
		if deadline, ok := ctx.Deadline(); ok {
			var cancel context.CancelFunc
			callCtx, cancel = context.WithDeadline(callCtx, deadline)
			defer cancel()
		}
		return s.suggest(callCtx, role, level, search)
	})
	if err != nil {
		return nil, err
	}
	return result.([]string), nil
}

func (s *techstackService) suggest(ctx context.Context, role, level, search string) ([]string, error) {
	prompt := fmt.Sprintf(`You are an expert technical recruiter. Given the job role %q and experience level %q, suggest a list of the most relevant and up-to-date technologies, frameworks, tools, and programming languages that should be included in the tech stack for this position. Return only a JSON array of technology names, no explanations or extra text. Example: ["React", "TypeScript", "Node.js", "AWS"]`, role, level)
	if search != "" {
		prompt += fmt.Sprintf("\nThe user is searching for: %q. Prioritize technologies that match or are related to this search term.", search)
	}

	text, err := s.generator.GenerateText(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("generating tech suggestions: %w", err)
	}

	entries, ok := extractStringArray(text)
	if !ok {
		log.Warn().Str("rawResponse", text).Msg("Suggest: AI did not return a parseable JSON array")
		return nil, fmt.Errorf("AI did not return a valid list: %w", ErrMalformedAIResponse)
	}

	seen := make(map[string]struct{}, len(entries))
	suggestions := make([]string, 0, len(entries))
	for _, entry := range entries {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		if _, dup := seen[entry]; dup {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(entry), search) {
			continue
		}
		seen[entry] = struct{}{}
		suggestions = append(suggestions, entry)
	}

	sort.Strings(suggestions)
	if len(suggestions) > maxSuggestions {
		suggestions = suggestions[:maxSuggestions]
	}
	return suggestions, nil
}
