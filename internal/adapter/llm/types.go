// Package llm holds types shared by completion provider adapters.
package llm

// UsageMetadata captures token usage reported by a completion API call.
type UsageMetadata struct {
	TokensIn  int // Input tokens consumed
	TokensOut int // Output tokens generated
}

// ProviderResponse is the standardized response from a completion provider
// client, live or static.
type ProviderResponse struct {
	Model        string
	Content      string
	FinishReason string
	Usage        UsageMetadata
}
