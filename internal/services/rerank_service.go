package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"jobradarBack/internal/models"
	"jobradarBack/internal/repositories"
)

// RerankEntityJobs et al. select the prompt wording per entity kind.
const (
	RerankEntityJobs      = "jobs"
	RerankEntityCompanies = "companies"
	RerankEntityProfiles  = "profiles"
)

// RerankRequest carries one re-rank call: the viewer, the already-filtered
// page of compact summaries, and (for profile ranking) the target job's
// requirements text. Summaries arrive from the caller; nothing is re-fetched.
type RerankRequest struct {
	UserID       int                    `json:"userId"`
	Entity       string                 `json:"-"`
	Summaries    []models.RerankSummary `json:"summaries"`
	Requirements string                 `json:"requirements,omitempty"`
}

// RerankOutcome is what callers render: the summaries in final display order
// plus the raw id lists. AIUsed is false on every fallback path.
type RerankOutcome struct {
	Ordered        []models.RerankSummary `json:"ordered"`
	RerankedIDs    []string               `json:"rerankedIds"`
	FilteredOutIDs []string               `json:"filteredOutIds"`
	AIUsed         bool                   `json:"aiUsed"`
}

type RerankService struct {
	OpenAI    *OpenAIClient
	QuotaRepo *repositories.QuotaRepository
	ErrorLog  *log.Logger
}

// rerankSchema constrains the model to exactly two id arrays.
var rerankSchema = map[string]interface{}{
	"type": "object",
	"properties": map[string]interface{}{
		"rerankedIds": map[string]interface{}{
			"type":  "array",
			"items": map[string]interface{}{"type": "string"},
		},
		"filteredOutIds": map[string]interface{}{
			"type":  "array",
			"items": map[string]interface{}{"type": "string"},
		},
	},
	"required":             []string{"rerankedIds", "filteredOutIds"},
	"additionalProperties": false,
}

// Rerank orders the request's summaries by relevance via the LLM. Quota
// exhaustion and model failures both degrade to a non-AI order; the caller
// never sees an error from this method.
func (s *RerankService) Rerank(ctx context.Context, req RerankRequest) RerankOutcome {
	fallback := RerankOutcome{
		Ordered:        req.Summaries,
		RerankedIDs:    summaryIDs(req.Summaries),
		FilteredOutIDs: []string{},
	}

	if len(req.Summaries) == 0 || req.UserID <= 0 {
		return fallback
	}

	allowed, err := s.QuotaRepo.Consume(ctx, repositories.QuotaScopeRerank, req.UserID, repositories.RerankQuotaLimit)
	if err != nil {
		s.logf("rerank quota check failed for user %d: %v", req.UserID, err)
		return fallback
	}
	if !allowed {
		// Companies reuse the last AI-ranked order instead of dropping
		// straight back to the query order.
		if req.Entity == RerankEntityCompanies {
			if cached, err := s.QuotaRepo.GetMatchedOrder(ctx, req.UserID); err == nil && len(cached) > 0 {
				ordered, ids := applyOrder(req.Summaries, cached, nil)
				fallback.Ordered = ordered
				fallback.RerankedIDs = ids
			}
		}
		return fallback
	}

	result, err := s.callModel(ctx, req)
	if err != nil {
		s.logf("rerank call failed for user %d: %v", req.UserID, err)
		return fallback
	}

	ordered, ids := applyOrder(req.Summaries, result.RerankedIDs, result.FilteredOutIDs)

	if err := s.QuotaRepo.CacheMatchedOrder(ctx, req.UserID, ids); err != nil {
		s.logf("rerank order cache failed for user %d: %v", req.UserID, err)
	}

	return RerankOutcome{
		Ordered:        ordered,
		RerankedIDs:    ids,
		FilteredOutIDs: result.FilteredOutIDs,
		AIUsed:         true,
	}
}

func (s *RerankService) callModel(ctx context.Context, req RerankRequest) (models.RerankResult, error) {
	summaries, err := json.Marshal(req.Summaries)
	if err != nil {
		return models.RerankResult{}, fmt.Errorf("marshal summaries: %w", err)
	}

	var prompt strings.Builder
	fmt.Fprintf(&prompt, "Rank the following %s by relevance for the user. ", entityNoun(req.Entity))
	prompt.WriteString("Return rerankedIds ordered from most to least relevant, using only ids from the input, ")
	prompt.WriteString("and filteredOutIds for entries that are clearly irrelevant.\n\n")
	if req.Requirements != "" {
		fmt.Fprintf(&prompt, "Target job requirements:\n%s\n\n", req.Requirements)
	}
	fmt.Fprintf(&prompt, "Entries:\n%s", summaries)

	var result models.RerankResult
	err = s.OpenAI.CompleteInto(ctx, ChatCompletionRequest{
		Messages: []ChatMessage{
			{Role: "system", Content: "You rank job-board entries for relevance. Answer with the requested JSON only."},
			{Role: "user", Content: prompt.String()},
		},
		SchemaName: "rerank_result",
		Schema:     rerankSchema,
	}, &result)
	if err != nil {
		return models.RerankResult{}, err
	}
	return result, nil
}

// applyOrder maps ids back to the original summaries: ids not present in the
// input are dropped (the model must not fabricate entries), as is anything in
// the exclusion list. The returned id slice matches the returned order.
func applyOrder(summaries []models.RerankSummary, order []string, filteredOut []string) ([]models.RerankSummary, []string) {
	byID := make(map[string]models.RerankSummary, len(summaries))
	for _, s := range summaries {
		byID[s.ID] = s
	}
	excluded := make(map[string]struct{}, len(filteredOut))
	for _, id := range filteredOut {
		excluded[id] = struct{}{}
	}

	ordered := make([]models.RerankSummary, 0, len(order))
	ids := make([]string, 0, len(order))
	seen := make(map[string]struct{}, len(order))
	for _, id := range order {
		if _, ok := excluded[id]; ok {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		summary, ok := byID[id]
		if !ok {
			continue
		}
		seen[id] = struct{}{}
		ordered = append(ordered, summary)
		ids = append(ids, id)
	}
	return ordered, ids
}

func summaryIDs(summaries []models.RerankSummary) []string {
	ids := make([]string, 0, len(summaries))
	for _, s := range summaries {
		ids = append(ids, s.ID)
	}
	return ids
}

func entityNoun(entity string) string {
	switch entity {
	case RerankEntityCompanies:
		return "companies"
	case RerankEntityProfiles:
		return "candidate profiles"
	default:
		return "job postings"
	}
}

func (s *RerankService) logf(format string, args ...interface{}) {
	if s.ErrorLog != nil {
		s.ErrorLog.Printf(format, args...)
	}
}
