package llm

import (
	"context"
	"fmt"
	"math/rand/v2"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

var personaName = regexp.MustCompile(`My name is ([^,.]+)`)

// simulator answers with canned critiques instead of calling a provider.
type simulator struct {
	model string
	intn  func(n int) int
	newID func() string
}

func newSimulator(model string) *simulator {
	return &simulator{
		model: model,
		intn:  rand.IntN,
		newID: uuid.NewString,
	}
}

func (s *simulator) Generate(_ context.Context, req Request) (*Response, error) {
	name := "The Gator"
	if m := personaName.FindStringSubmatch(req.SystemPrompt); m != nil {
		name = m[1]
	}
	idea := strings.TrimSpace(strings.Replace(req.UserPrompt, "Startup Idea:", "", 1))

	responses := []string{
		fmt.Sprintf(`As %s, I find this idea "%s" quite intriguing. The market potential seems promising, though I'd suggest focusing more on the unique value proposition. Consider how you'll differentiate from existing solutions.`, name, idea),
		fmt.Sprintf(`%s here! I've analyzed your startup idea: "%s". The concept has merit, but I'm concerned about the execution challenges. Have you considered the regulatory hurdles and initial capital requirements?`, name, idea),
		fmt.Sprintf(`*adjusts glasses* Interesting proposal! "%s" targets a growing market, but your revenue model needs refinement. I recommend conducting thorough customer validation before proceeding further.`, idea),
		fmt.Sprintf(`From my perspective as %s, your idea "%s" shows promise. However, the competitive landscape is quite dense. You'll need a strong go-to-market strategy and clear differentiation to succeed.`, name, idea),
		fmt.Sprintf(`%s analysis: "%s" - This concept addresses a real problem, which is excellent. I'd recommend focusing on building a minimum viable product quickly to test key assumptions before seeking funding.`, name, idea),
	}
	content := responses[s.intn(len(responses))]

	return &Response{
		ID:      "sim_" + s.newID(),
		Content: content,
		Model:   s.model + "-simulation",
		Usage: Usage{
			InputTokens:  int64(len(req.SystemPrompt) + len(req.UserPrompt)),
			OutputTokens: int64(len(content)),
		},
		FinishReason: "end_turn",
		Simulated:    true,
	}, nil
}
