package ideas

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockTextService is a mock implementation of the TextService interface
type MockTextService struct {
	mock.Mock
}

func (m *MockTextService) GenerateText(ctx context.Context, inputText, prompt string) (string, error) {
	args := m.Called(ctx, inputText, prompt)
	return args.String(0), args.Error(1)
}

func TestBuildPromptEmbedsWasteTypeUnchanged(t *testing.T) {
	wasteTypes := []string{
		"Stubble",
		"Fruit/Veg Wastes",
		"Poultry Litter",
		"100% cotton %s %d",
		"  padded  ",
	}

	for _, wt := range wasteTypes {
		prompt := BuildPrompt(wt)
		assert.Contains(t, prompt, "from the given "+wt+". Include estimated earnings")
		assert.Contains(t, prompt, "Exclude any asterisks")
		assert.Contains(t, prompt, "graphs and charts")
	}
}

func TestGenerateIncomeIdeas(t *testing.T) {
	svc := new(MockTextService)
	gen := NewGenerator(svc, nil)
	ctx := context.Background()

	answer := "Stubble can be sold as biomass fuel...\n\n**not stripped**"
	svc.On("GenerateText", ctx, "", BuildPrompt("Stubble")).Return(answer, nil)

	text, err := gen.GenerateIncomeIdeas(ctx, "Stubble")

	require.NoError(t, err)
	assert.Equal(t, answer, text)
	svc.AssertExpectations(t)
}

func TestGenerateIncomeIdeasWrapsServiceFailures(t *testing.T) {
	svc := new(MockTextService)
	gen := NewGenerator(svc, nil)
	ctx := context.Background()

	cause := errors.New("401 API key not valid")
	svc.On("GenerateText", ctx, "", mock.AnythingOfType("string")).Return("", cause)

	text, err := gen.GenerateIncomeIdeas(ctx, "Straw")

	assert.Empty(t, text)
	var svcErr *ServiceError
	require.True(t, errors.As(err, &svcErr))
	assert.ErrorIs(t, err, cause)
	svc.AssertNumberOfCalls(t, "GenerateText", 1)
}

func TestGenerateIncomeIdeasKeepsExistingServiceError(t *testing.T) {
	svc := new(MockTextService)
	gen := NewGenerator(svc, nil)
	ctx := context.Background()

	original := &ServiceError{Model: "gemini-test", Err: errors.New("unreachable")}
	svc.On("GenerateText", ctx, "", mock.Anything).Return("", original)

	_, err := gen.GenerateIncomeIdeas(ctx, "Husks")

	assert.Same(t, original, err)
	assert.True(t, strings.Contains(err.Error(), "gemini-test"))
}

func TestGenerateIncomeIdeasRejectsEmptyWasteType(t *testing.T) {
	svc := new(MockTextService)
	gen := NewGenerator(svc, nil)

	_, err := gen.GenerateIncomeIdeas(context.Background(), " ")

	assert.ErrorIs(t, err, ErrEmptyWasteType)
	svc.AssertNotCalled(t, "GenerateText", mock.Anything, mock.Anything, mock.Anything)
}
