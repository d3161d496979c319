package openai

import (
	"context"

	"github.com/bkyoung/interview-pack/internal/adapter/llm"
)

// StaticClient returns a fixed interview pack without any network call. It is
// used when no API credential is configured so the tool stays usable for
// demos and offline work.
type StaticClient struct{}

// NewStaticClient constructs the offline fallback client.
func NewStaticClient() *StaticClient {
	return &StaticClient{}
}

// CreateCompletion returns the fallback pack. The content follows the same
// section structure as a live generation.
func (s *StaticClient) CreateCompletion(ctx context.Context, req Request) (llm.ProviderResponse, error) {
	return llm.ProviderResponse{
		Model:        req.Model,
		Content:      FallbackPack,
		FinishReason: "stop",
	}, nil
}

// FallbackPack is the fixed interview pack served when no credential is
// configured. It contains every section a live generation produces.
const FallbackPack = "**Introduction (Script, 1–2 mins)**\n" +
	"• Welcome and interview format overview.\n\n" +
	"**Background & Experience (5–8 mins)**\n" +
	"• Tell me about one project most similar to this role’s remit. – What was your exact scope? – What changed due to your work?\n\n" +
	"**Motivation (2–3 mins)**\n" +
	"• What draws you to this role and the problems we solve?\n\n" +
	"**Skills & Qualifications (6–8 mins)**\n" +
	"• Walk me through a recent example demonstrating a core JD must-have. – How did you measure success?\n\n" +
	"**Company Knowledge (2–3 mins)**\n" +
	"• Where could you contribute in your first 90 days and why?\n\n" +
	"**Role-Specific Questions (Core, 10–12 mins)**\n" +
	"• Describe the hardest problem in this role’s domain you have solved end to end.\n\n" +
	"**Behavioural (Values & Ways of Working, 6–8 mins)**\n" +
	"• Tell me about a time you influenced without authority. – What would you do differently next time?\n\n" +
	"**Scenario-Based / Problem-Solving (6–8 mins)**\n" +
	"• Scenario prompt with (Good:) and (Red flag:) cues.\n\n" +
	"**Candidate Questions (2–4 mins)**\n" +
	"• Three example questions a strong candidate might ask.\n\n" +
	"**Conclusion & Next Steps (Script, 1–2 mins)**\n" +
	"• Thank you and next steps script.\n\n" +
	"**Evaluation Rubric (Concise)**\n" +
	"• Criteria with 1/3/5 descriptors.\n\n" +
	"**Scorecard Template & Notes Page**\n" +
	"• Role | Interviewer | Date.\n"
