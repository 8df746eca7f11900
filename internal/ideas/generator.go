// Package ideas asks a generative text model how a given agricultural waste
// can be turned into income.
package ideas

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

const promptTemplate = "You are an expert in agricultural waste management. Provide detailed information on how to generate income " +
	"from the given %s. Include estimated earnings, pros and cons of the suggested methods, and provide " +
	"historical statistics and trends for the last few years. Exclude any asterisks or unnecessary comments. " +
	"Include suggestions for potential graphs and charts that can be used to illustrate the data."

// TextService sends a prompt to a generative text model and returns the
// text of its answer.
type TextService interface {
	GenerateText(ctx context.Context, inputText, prompt string) (string, error)
}

// BuildPrompt embeds wasteType, unchanged, in the fixed instruction template.
func BuildPrompt(wasteType string) string {
	return fmt.Sprintf(promptTemplate, wasteType)
}

// Generator produces income ideas for a waste type.
type Generator struct {
	service TextService
	logger  *zap.Logger
}

// NewGenerator creates a new income idea generator
func NewGenerator(service TextService, logger *zap.Logger) *Generator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Generator{
		service: service,
		logger:  logger,
	}
}

// GenerateIncomeIdeas returns the model's answer verbatim. The response is
// not inspected; it may be any length or format.
func (g *Generator) GenerateIncomeIdeas(ctx context.Context, wasteType string) (string, error) {
	if strings.TrimSpace(wasteType) == "" {
		return "", ErrEmptyWasteType
	}

	prompt := BuildPrompt(wasteType)
	g.logger.Debug("Requesting income ideas",
		zap.String("waste_type", wasteType),
		zap.Int("prompt_length", len(prompt)))

	text, err := g.service.GenerateText(ctx, "", prompt)
	if err != nil {
		var svcErr *ServiceError
		if errors.As(err, &svcErr) {
			return "", err
		}
		return "", &ServiceError{Err: err}
	}

	g.logger.Info("Income ideas generated",
		zap.String("waste_type", wasteType),
		zap.Int("text_length", len(text)))

	return text, nil
}
