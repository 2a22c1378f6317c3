package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/abhisek/learnpad/internal/store"
)

// recording writes every call to the store's LLM call log.
type recording struct {
	Provider
	calls store.LLMCallRepo
	now   func() time.Time
}

// WithRecorder logs each Generate call to calls. Failures to write the log
// are reported with log.Printf and never fail the request.
func WithRecorder(p Provider, calls store.LLMCallRepo) Provider {
	return &recording{Provider: p, calls: calls, now: time.Now}
}

func (r *recording) Generate(ctx context.Context, req Request) (*Response, error) {
	start := r.now()
	resp, err := r.Provider.Generate(ctx, req)

	call := store.LLMCall{
		Provider:    r.Provider.Name(),
		Model:       r.Provider.ModelID(),
		Purpose:     PurposeFrom(ctx),
		LatencyMs:   r.now().Sub(start).Milliseconds(),
		Success:     err == nil,
		RequestBody: describeRequest(req),
		Timestamp:   start,
	}
	if resp != nil {
		call.Model = resp.Model
		call.InputTokens = resp.Usage.InputTokens
		call.OutputTokens = resp.Usage.OutputTokens
		call.ResponseBody = string(resp.Content)
	}
	if err != nil {
		call.ErrorMessage = err.Error()
	}

	if logErr := r.calls.Append(context.WithoutCancel(ctx), call); logErr != nil {
		log.Printf("llm: record call: %v", logErr)
	}
	return resp, err
}

func describeRequest(req Request) string {
	var b strings.Builder
	if req.System != "" {
		fmt.Fprintf(&b, "[system]\n%s\n\n", req.System)
	}
	fmt.Fprintf(&b, "[user]\n%s\n", req.Prompt)
	if req.Format != nil {
		if def, err := json.Marshal(req.Format.Schema); err == nil {
			fmt.Fprintf(&b, "\n[schema: %s]\n%s\n", req.Format.Name, def)
		}
	}
	return b.String()
}
