package interpreter

import (
	"context"
	"testing"

	"github.com/howl2go/v2/internal/domain/query"
	"github.com/howl2go/v2/internal/ports/outbound"
	"github.com/howl2go/v2/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeCompletion returns a canned response or error.
type fakeCompletion struct {
	response string
	err      error
	prompts  []string
}

func (f *fakeCompletion) Complete(ctx context.Context, system, prompt string, opts outbound.CompletionOptions) (string, error) {
	f.prompts = append(f.prompts, prompt)
	return f.response, f.err
}

func TestInterpretExtractsCriteria(t *testing.T) {
	fake := &fakeCompletion{response: `{"calories": {"max": 500}, "protein": {"min": 20}, "company": {"name": "KFC"}}`}
	i := New(fake, zap.NewNop())

	criteria, err := i.Interpret(context.Background(), "high protein meal under 500 calories from KFC")
	require.NoError(t, err)

	r, ok := criteria.Range(query.AttributeCalories)
	require.True(t, ok)
	assert.Equal(t, 500.0, *r.Max)

	p, ok := criteria.Range(query.AttributeProtein)
	require.True(t, ok)
	assert.Equal(t, 20.0, *p.Min)

	assert.Equal(t, "KFC", criteria.Texts[query.AttributeCompany].Name)
	require.Len(t, fake.prompts, 1)
	assert.Contains(t, fake.prompts[0], "high protein meal under 500 calories from KFC")
}

func TestInterpretStripsSurroundingProse(t *testing.T) {
	fake := &fakeCompletion{response: "Here is the extraction:\n```json\n{\"sodium\": {\"max\": 1000}}\n```\nLet me know if you need more."}
	i := New(fake, zap.NewNop())

	criteria, err := i.Interpret(context.Background(), "low sodium lunch")
	require.NoError(t, err)

	r, ok := criteria.Range(query.AttributeSodium)
	require.True(t, ok)
	assert.Equal(t, 1000.0, *r.Max)
}

func TestInterpretOffTopicYieldsEmptyCriteria(t *testing.T) {
	fake := &fakeCompletion{response: `{}`}
	i := New(fake, zap.NewNop())

	criteria, err := i.Interpret(context.Background(), "what's the weather like")
	require.NoError(t, err)
	assert.True(t, criteria.Empty())
}

func TestInterpretEmptyInput(t *testing.T) {
	i := New(&fakeCompletion{}, zap.NewNop())

	_, err := i.Interpret(context.Background(), "   ")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.CodeInvalidInput))
}

func TestInterpretNoCapability(t *testing.T) {
	i := New(nil, zap.NewNop())

	_, err := i.Interpret(context.Background(), "cheap burger")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.CodeCapabilityUnavailable))
}

func TestInterpretParseFailureCarriesRawResponse(t *testing.T) {
	fake := &fakeCompletion{response: "I'm sorry, I can't help with that."}
	i := New(fake, zap.NewNop())

	_, err := i.Interpret(context.Background(), "cheap burger")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.CodeInterpretationParse))
	assert.Equal(t, "I'm sorry, I can't help with that.", errors.RawResponse(err))
}

func TestInterpretCompletionFailure(t *testing.T) {
	fake := &fakeCompletion{err: errors.NewExternalServiceError("groq", assert.AnError)}
	i := New(fake, zap.NewNop())

	_, err := i.Interpret(context.Background(), "cheap burger")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.CodeCapabilityUnavailable))
}
