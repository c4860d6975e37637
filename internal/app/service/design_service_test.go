package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/threadz/threadz-backend/config"
	"github.com/threadz/threadz-backend/internal/app/model"
	"github.com/threadz/threadz-backend/pkg/generation/openai"
)

// scriptedClient replays one canned reply or error per model, and
// records the order models were attempted in.
type scriptedClient struct {
	replies map[string]string
	errs    map[string]error
	calls   []string
}

func (c *scriptedClient) Complete(ctx context.Context, model, prompt string) (string, error) {
	c.calls = append(c.calls, model)
	if err, ok := c.errs[model]; ok {
		return "", err
	}
	return c.replies[model], nil
}

const validReply = `{"title": "Midnight Peaks", "description": "A bold skyline print.", "style": "minimalist", "colors": ["white", "black"], "imagePrompt": "mountain ridgeline at night"}`

func setupDesignServiceTest(t *testing.T, client GenerationClient) (DesignService, *scriptedClient) {
	t.Helper()

	scripted, _ := client.(*scriptedClient)
	pricing := NewPricingService(testPricingConfig())
	svc := NewDesignService(client, pricing, config.GenerationConfig{
		Models:  []string{"model-a", "model-b", "model-c", "model-d"},
		Backoff: 50 * time.Millisecond,
	})

	// Count backoffs instead of sleeping through them
	svc.(*designService).sleep = func(time.Duration) {}

	return svc, scripted
}

func TestDesignService_Generate_EmptyPrompt(t *testing.T) {
	svc, _ := setupDesignServiceTest(t, &scriptedClient{})

	_, err := svc.Generate(context.Background(), "   ")
	assert.ErrorIs(t, err, ErrEmptyPrompt)
}

func TestDesignService_Generate_FirstModelSucceeds(t *testing.T) {
	client := &scriptedClient{
		replies: map[string]string{"model-a": validReply},
	}
	svc, scripted := setupDesignServiceTest(t, client)

	result, err := svc.Generate(context.Background(), "minimalist mountain tee")
	require.NoError(t, err)

	assert.False(t, result.Fallback)
	assert.Equal(t, []string{"model-a"}, scripted.calls)
	require.Len(t, result.Attempts, 1)
	assert.Equal(t, model.AttemptSucceeded, result.Attempts[0].Outcome)

	assert.Equal(t, "Midnight Peaks", result.Design.Title)
	assert.Equal(t, "minimalist", result.Design.Style)
	assert.Equal(t, "/assets/designs/minimalist-tee.png", result.Design.Image)
	assert.Equal(t, 999, result.Design.UnitPrice) // 899 + 1 extra color
	assert.Equal(t, "minimalist mountain tee", result.Design.SourcePrompt)
	assert.NotEmpty(t, result.Design.ID)
}

func TestDesignService_Generate_FallsThroughToLaterModel(t *testing.T) {
	client := &scriptedClient{
		errs: map[string]error{
			"model-a": fmt.Errorf("%w: slow down", openai.ErrRateLimited),
			"model-b": fmt.Errorf("%w: gone", openai.ErrModelNotFound),
		},
		replies: map[string]string{"model-c": validReply},
	}
	svc, scripted := setupDesignServiceTest(t, client)

	result, err := svc.Generate(context.Background(), "mountain tee")
	require.NoError(t, err)

	assert.False(t, result.Fallback)
	// Strict order, and model-d never attempted after model-c succeeds
	assert.Equal(t, []string{"model-a", "model-b", "model-c"}, scripted.calls)
	require.Len(t, result.Attempts, 3)
	assert.Equal(t, model.AttemptRateLimited, result.Attempts[0].Outcome)
	assert.Equal(t, model.AttemptModelNotFound, result.Attempts[1].Outcome)
	assert.Equal(t, model.AttemptSucceeded, result.Attempts[2].Outcome)
}

func TestDesignService_Generate_RateLimitBacksOff(t *testing.T) {
	client := &scriptedClient{
		errs: map[string]error{
			"model-a": fmt.Errorf("%w: slow down", openai.ErrRateLimited),
		},
		replies: map[string]string{"model-b": validReply},
	}
	pricing := NewPricingService(testPricingConfig())
	svc := NewDesignService(client, pricing, config.GenerationConfig{
		Models:  []string{"model-a", "model-b"},
		Backoff: 2 * time.Second,
	})

	var slept []time.Duration
	svc.(*designService).sleep = func(d time.Duration) { slept = append(slept, d) }

	result, err := svc.Generate(context.Background(), "mountain tee")
	require.NoError(t, err)

	assert.False(t, result.Fallback)
	assert.Equal(t, []time.Duration{2 * time.Second}, slept)
}

func TestDesignService_Generate_AllModelsFail_UsesFallback(t *testing.T) {
	client := &scriptedClient{
		errs: map[string]error{
			"model-a": fmt.Errorf("%w: slow down", openai.ErrRateLimited),
			"model-b": fmt.Errorf("%w: gone", openai.ErrModelNotFound),
			"model-c": errors.New("upstream exploded"),
			"model-d": fmt.Errorf("%w: nope", openai.ErrModelNotFound),
		},
	}
	svc, scripted := setupDesignServiceTest(t, client)

	result, err := svc.Generate(context.Background(), "minimalist mountain design tee")
	require.NoError(t, err)

	assert.True(t, result.Fallback)
	assert.Len(t, scripted.calls, 4)
	require.Len(t, result.Attempts, 4)
	assert.Equal(t, model.AttemptFailed, result.Attempts[2].Outcome)

	// Deterministic keyword fallback
	assert.Equal(t, "MINIMALIST MOUNTAIN DESIGN", result.Design.Title)
	assert.Equal(t, "minimalist", result.Design.Style)
	assert.Equal(t, []string{"white", "black", "gray"}, result.Design.Colors)
	assert.Equal(t, 1099, result.Design.UnitPrice) // 899 + 2 extras
	assert.Contains(t, fallbackImages, result.Design.Image)
}

func TestDesignService_Generate_MalformedReply_FallsBackImmediately(t *testing.T) {
	client := &scriptedClient{
		replies: map[string]string{"model-a": "sure! here's a design idea for you"},
	}
	svc, scripted := setupDesignServiceTest(t, client)

	result, err := svc.Generate(context.Background(), "vintage racing tee")
	require.NoError(t, err)

	assert.True(t, result.Fallback)
	// Remaining candidates are not burned on a healthy-but-unusable model
	assert.Equal(t, []string{"model-a"}, scripted.calls)
	require.Len(t, result.Attempts, 1)
	assert.Equal(t, model.AttemptMalformed, result.Attempts[0].Outcome)

	assert.Equal(t, "vintage", result.Design.Style)
	assert.Equal(t, []string{"cream", "brown", "burgundy"}, result.Design.Colors)
}

func TestDesignService_Generate_FencedReplyIsAccepted(t *testing.T) {
	client := &scriptedClient{
		replies: map[string]string{"model-a": "```json\n" + validReply + "\n```"},
	}
	svc, _ := setupDesignServiceTest(t, client)

	result, err := svc.Generate(context.Background(), "mountain tee")
	require.NoError(t, err)

	assert.False(t, result.Fallback)
	assert.Equal(t, "Midnight Peaks", result.Design.Title)
}

func TestDesignService_Generate_UnknownStyleDefaultsToModern(t *testing.T) {
	client := &scriptedClient{
		replies: map[string]string{
			"model-a": `{"title": "Odd One", "description": "d", "style": "brutalist", "colors": ["red"]}`,
		},
	}
	svc, _ := setupDesignServiceTest(t, client)

	result, err := svc.Generate(context.Background(), "brutalist tee")
	require.NoError(t, err)

	assert.Equal(t, "modern", result.Design.Style)
	assert.Equal(t, "/assets/designs/modern-tee.png", result.Design.Image)
}

func TestDesignService_Generate_NoClientUsesFallback(t *testing.T) {
	pricing := NewPricingService(testPricingConfig())
	svc := NewDesignService(nil, pricing, config.GenerationConfig{
		Models: []string{"model-a"},
	})

	result, err := svc.Generate(context.Background(), "nature trail shirt")
	require.NoError(t, err)

	assert.True(t, result.Fallback)
	assert.Len(t, result.Attempts, 0)
	assert.Equal(t, "nature", result.Design.Style)
}

func TestDesignService_FallbackTitle(t *testing.T) {
	assert.Equal(t, "MINIMALIST MOUNTAIN TEE", fallbackTitle("minimalist mountain tee"))
	assert.Equal(t, "A VERY LONG", fallbackTitle("a very long prompt about tees"))
	assert.Equal(t, "TEE", fallbackTitle("tee"))
}

func TestDesignService_FallbackDefaultsToModern(t *testing.T) {
	svc, _ := setupDesignServiceTest(t, &scriptedClient{
		errs: map[string]error{
			"model-a": errors.New("down"),
			"model-b": errors.New("down"),
			"model-c": errors.New("down"),
			"model-d": errors.New("down"),
		},
	})

	result, err := svc.Generate(context.Background(), "something completely different")
	require.NoError(t, err)

	assert.True(t, result.Fallback)
	assert.Equal(t, "modern", result.Design.Style)
	assert.Equal(t, []string{"black", "electric blue"}, result.Design.Colors)
	assert.Equal(t, 999, result.Design.UnitPrice) // 899 + 1 extra
}
