package anthropic

import (
	"errors"
	"net/http"
	"net/url"
	"testing"

	sdk "github.com/anthropics/anthropic-sdk-go"
	"github.com/stretchr/testify/assert"

	"github.com/bidsight/bidsight/internal/resilience"
)

// sdkError builds an sdk.Error with the non-nil Request/Response the SDK's
// Error() method dereferences unconditionally.
func sdkError(status int) *sdk.Error {
	return &sdk.Error{
		StatusCode: status,
		Request:    &http.Request{Method: http.MethodPost, URL: &url.URL{}},
		Response:   &http.Response{StatusCode: status},
	}
}

func TestMessageResponse_Text(t *testing.T) {
	resp := &MessageResponse{
		Content: []ContentBlock{
			{Type: "text", Text: "part one "},
			{Type: "tool_use", Text: "ignored"},
			{Type: "text", Text: "part two"},
		},
	}
	assert.Equal(t, "part one part two", resp.Text())

	var nilResp *MessageResponse
	assert.Equal(t, "", nilResp.Text())
}

func TestTokenUsage_EstimateCost(t *testing.T) {
	u := TokenUsage{InputTokens: 1_000_000, OutputTokens: 500_000}
	assert.InDelta(t, 0.80+2.00, u.EstimateCost("claude-haiku-4-5-20251001"), 1e-9)
	assert.Zero(t, u.EstimateCost("some-unknown-model"))
}

func TestClassifyAPIError(t *testing.T) {
	rateLimited := classifyAPIError(sdkError(429))
	assert.True(t, resilience.IsTransient(rateLimited))

	badKey := classifyAPIError(sdkError(401))
	assert.False(t, resilience.IsTransient(badKey))

	plain := errors.New("dial tcp: connection refused aborted midway")
	assert.Equal(t, plain, classifyAPIError(plain))
}
