package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/threadz/threadz-backend/config"
	"github.com/threadz/threadz-backend/internal/app/model"
	"github.com/threadz/threadz-backend/pkg/generation/openai"
	"github.com/threadz/threadz-backend/pkg/logger"
	"github.com/threadz/threadz-backend/pkg/util"
)

var ErrEmptyPrompt = errors.New("prompt is empty")

// GenerationClient is the upstream text-generation capability.
// *openai.Client satisfies it; tests substitute scripted fakes.
type GenerationClient interface {
	Complete(ctx context.Context, model, prompt string) (string, error)
}

// DesignService turns a free-text prompt into a purchasable design.
// Candidates are tried strictly in the configured order, one at a
// time; when every remote attempt fails the local heuristic fallback
// takes over, so Generate never dead-ends on an upstream outage.
type DesignService interface {
	Generate(ctx context.Context, prompt string) (*model.GenerationResult, error)
}

type designService struct {
	client  GenerationClient
	pricing PricingService
	models  []string
	backoff time.Duration
	sleep   func(time.Duration)
}

func NewDesignService(client GenerationClient, pricing PricingService, cfg config.GenerationConfig) DesignService {
	return &designService{
		client:  client,
		pricing: pricing,
		models:  cfg.Models,
		backoff: cfg.Backoff,
		sleep:   time.Sleep,
	}
}

// designPayload is the structured result requested from the model,
// emitted as fenced JSON that must be stripped before decoding.
type designPayload struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Style       string   `json:"style"`
	Colors      []string `json:"colors"`
	ImagePrompt string   `json:"imagePrompt"`
}

// styleImages maps the small enumerated style set to preview assets.
// Lookup is total: unrecognized styles resolve to the modern default.
var styleImages = map[string]string{
	"minimalist": "/assets/designs/minimalist-tee.png",
	"vintage":    "/assets/designs/vintage-tee.png",
	"geometric":  "/assets/designs/geometric-tee.png",
	"nature":     "/assets/designs/nature-tee.png",
	"modern":     "/assets/designs/modern-tee.png",
}

const defaultStyle = "modern"

// fallbackImages is the fixed local asset set the fallback path picks from.
var fallbackImages = []string{
	"/assets/designs/drop-01.png",
	"/assets/designs/drop-02.png",
	"/assets/designs/drop-03.png",
	"/assets/designs/drop-04.png",
}

// fallbackStyles pairs prompt keywords with a style and palette.
// Checked in order; first match wins.
var fallbackStyles = []struct {
	keyword string
	style   string
	colors  []string
}{
	{"minimal", "minimalist", []string{"white", "black", "gray"}},
	{"vintage", "vintage", []string{"cream", "brown", "burgundy"}},
	{"geometric", "geometric", []string{"black", "white", "red"}},
	{"nature", "nature", []string{"green", "brown", "beige"}},
}

var defaultFallbackColors = []string{"black", "electric blue"}

// Generate produces a design for the prompt. The only error is an
// empty prompt; every upstream failure is absorbed into the fallback.
func (s *designService) Generate(ctx context.Context, prompt string) (*model.GenerationResult, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return nil, ErrEmptyPrompt
	}

	instruction := s.buildInstruction(prompt)
	attempts := make([]model.Attempt, 0, len(s.models))

	for _, candidate := range s.models {
		if s.client == nil {
			break
		}

		raw, err := s.client.Complete(ctx, candidate, instruction)
		if err != nil {
			attempts = append(attempts, s.classifyFailure(candidate, err))
			continue
		}

		design, parseErr := s.parseDesign(raw, prompt)
		if parseErr != nil {
			// Unusable output from a healthy model: give up on the
			// remote path rather than burning the remaining candidates.
			attempts = append(attempts, model.Attempt{Model: candidate, Outcome: model.AttemptMalformed})
			logger.Warn("Malformed generation payload", map[string]interface{}{
				"model": candidate,
				"error": parseErr.Error(),
			})
			break
		}

		attempts = append(attempts, model.Attempt{Model: candidate, Outcome: model.AttemptSucceeded})
		logger.Info("Design generated", map[string]interface{}{
			"model":    candidate,
			"style":    design.Style,
			"attempts": len(attempts),
		})
		return &model.GenerationResult{
			Design:   design,
			Attempts: attempts,
		}, nil
	}

	design := s.fallbackDesign(prompt)
	logger.Info("Serving fallback design", map[string]interface{}{
		"style":    design.Style,
		"attempts": len(attempts),
	})
	return &model.GenerationResult{
		Design:   design,
		Attempts: attempts,
		Fallback: true,
	}, nil
}

// classifyFailure maps an attempt error to its outcome and applies the
// fixed backoff for throttling. No failure is surfaced to the caller.
func (s *designService) classifyFailure(candidate string, err error) model.Attempt {
	switch {
	case errors.Is(err, openai.ErrRateLimited):
		logger.Warn("Model rate limited, backing off before next candidate", map[string]interface{}{
			"model":   candidate,
			"backoff": s.backoff.String(),
		})
		s.sleep(s.backoff)
		return model.Attempt{Model: candidate, Outcome: model.AttemptRateLimited}

	case errors.Is(err, openai.ErrModelNotFound):
		logger.Warn("Model not available, trying next candidate", map[string]interface{}{
			"model": candidate,
		})
		return model.Attempt{Model: candidate, Outcome: model.AttemptModelNotFound}

	default:
		logger.Error("Generation attempt failed", err, map[string]interface{}{
			"model": candidate,
		})
		return model.Attempt{Model: candidate, Outcome: model.AttemptFailed}
	}
}

// buildInstruction wraps the user prompt in the designer persona and
// pins down the structured reply shape.
func (s *designService) buildInstruction(prompt string) string {
	var b strings.Builder

	b.WriteString("You are a streetwear designer for a custom-printed apparel brand. ")
	b.WriteString("A customer described the vibe they want on a tee.\n\n")
	b.WriteString("Customer prompt: " + prompt + "\n\n")
	b.WriteString("Reply with a single JSON object and nothing else, with exactly these fields:\n")
	b.WriteString(`{"title": "short punchy design title (max 5 words)",` + "\n")
	b.WriteString(` "description": "one sentence selling the design",` + "\n")
	b.WriteString(` "style": "one of: minimalist, vintage, geometric, nature, modern",` + "\n")
	b.WriteString(` "colors": ["2 to 4 print color names"],` + "\n")
	b.WriteString(` "imagePrompt": "a visual description of the artwork"}` + "\n")

	return b.String()
}

// parseDesign decodes the model reply into a priced Design. Decoding
// failure is a generation failure, not an error to the caller.
func (s *designService) parseDesign(raw, prompt string) (*model.Design, error) {
	cleaned := stripCodeFence(raw)

	var payload designPayload
	if err := json.Unmarshal([]byte(cleaned), &payload); err != nil {
		return nil, fmt.Errorf("failed to decode design payload: %w", err)
	}
	if payload.Title == "" || len(payload.Colors) == 0 {
		return nil, errors.New("design payload missing title or colors")
	}

	style := strings.ToLower(strings.TrimSpace(payload.Style))
	if _, ok := styleImages[style]; !ok {
		style = defaultStyle
	}

	return &model.Design{
		ID:           util.NewDesignID(),
		Title:        payload.Title,
		UnitPrice:    s.pricing.Price(payload.Colors),
		Image:        styleImages[style],
		Description:  payload.Description,
		Style:        style,
		Colors:       payload.Colors,
		SourcePrompt: prompt,
	}, nil
}

// fallbackDesign derives a design from the prompt text alone. It has
// no failure mode and the same shape as a remote-path design.
func (s *designService) fallbackDesign(prompt string) *model.Design {
	lower := strings.ToLower(prompt)

	style := defaultStyle
	colors := defaultFallbackColors
	for _, entry := range fallbackStyles {
		if strings.Contains(lower, entry.keyword) {
			style = entry.style
			colors = entry.colors
			break
		}
	}

	return &model.Design{
		ID:           util.NewDesignID(),
		Title:        fallbackTitle(prompt),
		UnitPrice:    s.pricing.Price(colors),
		Image:        util.PickRandom(fallbackImages),
		Description:  fmt.Sprintf("A %s take on \"%s\", printed on heavyweight cotton.", style, prompt),
		Style:        style,
		Colors:       colors,
		SourcePrompt: prompt,
	}
}

// fallbackTitle upper-cases the first three words of the prompt.
func fallbackTitle(prompt string) string {
	words := strings.Fields(prompt)
	if len(words) > 3 {
		words = words[:3]
	}
	return strings.ToUpper(strings.Join(words, " "))
}

// stripCodeFence removes a surrounding markdown code fence, with or
// without a language tag.
func stripCodeFence(raw string) string {
	cleaned := strings.TrimSpace(raw)
	if !strings.HasPrefix(cleaned, "```") {
		return cleaned
	}

	cleaned = strings.TrimPrefix(cleaned, "```")
	if idx := strings.Index(cleaned, "\n"); idx >= 0 {
		first := strings.TrimSpace(cleaned[:idx])
		// Drop a language tag like "json" on the opening fence line.
		if first != "" && !strings.HasPrefix(first, "{") {
			cleaned = cleaned[idx+1:]
		}
	}
	cleaned = strings.TrimSuffix(strings.TrimSpace(cleaned), "```")
	return strings.TrimSpace(cleaned)
}
