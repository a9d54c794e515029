package advisor

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alejo890gemini-rgb/loco-alitas-4/pkg/utils"
)

const (
	SummaryFallback   = "No se pudo generar el resumen del reporte. Por favor, intente de nuevo."
	AssistantFallback = "Lo siento, tuve un problema para procesar tu pregunta. Inténtalo de nuevo."
)

// DescriptionFallback is the placeholder used when no description could be generated.
func DescriptionFallback(dishName string) string {
	return fmt.Sprintf("A classic version of %s.", dishName)
}

// Fallback bounds every advisor call with a timeout and substitutes a default
// value on failure, so callers never see an advisory error.
type Fallback struct {
	advisor Advisor
	timeout time.Duration
}

// NewFallback wraps a. A non-positive timeout means calls are bounded only by the caller's context.
func NewFallback(a Advisor, timeout time.Duration) *Fallback {
	if a == nil {
		a = Disabled{}
	}
	return &Fallback{advisor: a, timeout: timeout}
}

func (f *Fallback) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if f.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, f.timeout)
}

func (f *Fallback) logFailure(err error, call string) {
	if errors.Is(err, ErrDisabled) {
		utils.LogDebug("Advisor disabled, using fallback", map[string]interface{}{"call": call})
		return
	}
	utils.LogWarn("Advisor call failed, using fallback", map[string]interface{}{"call": call, "error": err.Error()})
}

func (f *Fallback) GenerateDescription(ctx context.Context, dishName string) string {
	ctx, cancel := f.withTimeout(ctx)
	defer cancel()

	text, err := f.advisor.GenerateDescription(ctx, dishName)
	if err != nil || text == "" {
		if err != nil {
			f.logFailure(err, "generate_description")
		}
		return DescriptionFallback(dishName)
	}
	return text
}

// GenerateImage returns "" when no image could be produced.
func (f *Fallback) GenerateImage(ctx context.Context, dishName, description string) string {
	ctx, cancel := f.withTimeout(ctx)
	defer cancel()

	ref, err := f.advisor.GenerateImage(ctx, dishName, description)
	if err != nil {
		f.logFailure(err, "generate_image")
		return ""
	}
	return ref
}

func (f *Fallback) SuggestUpsell(ctx context.Context, current []OrderLine, menu []MenuEntry) []string {
	if len(current) == 0 {
		return []string{}
	}
	ctx, cancel := f.withTimeout(ctx)
	defer cancel()

	names, err := f.advisor.SuggestUpsell(ctx, current, menu)
	if err != nil {
		f.logFailure(err, "suggest_upsell")
		return []string{}
	}
	if names == nil {
		return []string{}
	}
	return names
}

func (f *Fallback) SummarizeSales(ctx context.Context, digest SalesDigest) string {
	ctx, cancel := f.withTimeout(ctx)
	defer cancel()

	text, err := f.advisor.SummarizeSales(ctx, digest)
	if err != nil || text == "" {
		if err != nil {
			f.logFailure(err, "summarize_sales")
		}
		return SummaryFallback
	}
	return text
}

func (f *Fallback) AnswerQuery(ctx context.Context, question string, ac AssistantContext) string {
	ctx, cancel := f.withTimeout(ctx)
	defer cancel()

	text, err := f.advisor.AnswerQuery(ctx, question, ac)
	if err != nil || text == "" {
		if err != nil {
			f.logFailure(err, "answer_query")
		}
		return AssistantFallback
	}
	return text
}
