package llm

// Price is USD per million tokens.
type Price struct {
	Input  float64
	Output float64
}

// Cost returns the USD cost of the given token counts.
func (p Price) Cost(u Usage) float64 {
	return (float64(u.InputTokens)*p.Input + float64(u.OutputTokens)*p.Output) / 1_000_000
}

// PriceOf returns the list price for a model id. Only the models reachable
// through the default aliases and a few common alternatives are listed.
func PriceOf(model string) (Price, bool) {
	p, ok := prices[model]
	return p, ok
}

var prices = map[string]Price{
	"claude-haiku-4-5-20251001": {1, 5},
	"claude-haiku-4-5":          {1, 5},
	"claude-sonnet-4-20250514":  {3, 15},
	"claude-sonnet-4-5":         {3, 15},
	"gpt-4o":                    {2.5, 10},
	"gpt-4o-mini":               {0.15, 0.6},
	"gpt-4.1-mini":              {0.4, 1.6},
	"gemini-2.0-flash":          {0.1, 0.4},
	"gemini-2.5-flash":          {0.3, 2.5},
	"gemini-2.5-pro":            {1.25, 10},
}
