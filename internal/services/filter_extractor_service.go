package services

import (
	"context"
	"fmt"
	"log"
	"strings"
	"unicode/utf8"

	"jobradarBack/internal/models"
	"jobradarBack/internal/repositories"
)

// MaxNaturalQueryLength bounds the free-text search box. Longer input is a
// client error, not something to truncate silently.
const MaxNaturalQueryLength = 100

var (
	ErrQueryTooLong  = fmt.Errorf("search query exceeds %d characters", MaxNaturalQueryLength)
	ErrEmptyQuery    = fmt.Errorf("search query is empty")
	ErrQuotaExceeded = models.ErrQuotaExceeded
)

// FilterExtractorService turns a short natural-language request into
// normalized filter criteria via a structured LLM call.
type FilterExtractorService struct {
	OpenAI    *OpenAIClient
	QuotaRepo *repositories.QuotaRepository
	ErrorLog  *log.Logger
}

var filterSchema = map[string]interface{}{
	"type": "object",
	"properties": map[string]interface{}{
		"jobType":         stringArraySchema("Employment types: Fulltime, Parttime, Contract or Internship"),
		"location":        stringArraySchema("Cities, countries or Remote"),
		"visaRequirement": stringArraySchema("Required, Not Required or Will Sponsor"),
		"platform":        stringArraySchema("Source job boards mentioned by name"),
		"companyName":     stringArraySchema("Company names mentioned by name"),
		"status":          stringArraySchema("Application statuses: applied, interviewing, offered or rejected"),
		"titleKeywords":   stringArraySchema("Keywords to match against job titles"),
		"minSalary":       stringSchema("Minimum yearly salary as a bare number, empty if not mentioned"),
		"minExperience":   stringSchema("Minimum years of experience as a bare number, empty if not mentioned"),
		"sortBy":          stringSchema("One of created_at, salary_min, salary_max, job_name, company, relevance; empty if not mentioned"),
		"sortOrder":       stringSchema("asc or desc, empty if not mentioned"),
		"tab":             stringSchema("all, saved or applied; empty if not mentioned"),
	},
	"required": []string{
		"jobType", "location", "visaRequirement", "platform", "companyName",
		"status", "titleKeywords", "minSalary", "minExperience",
		"sortBy", "sortOrder", "tab",
	},
	"additionalProperties": false,
}

func stringArraySchema(description string) map[string]interface{} {
	return map[string]interface{}{
		"type":        "array",
		"description": description,
		"items":       map[string]interface{}{"type": "string"},
	}
}

func stringSchema(description string) map[string]interface{} {
	return map[string]interface{}{"type": "string", "description": description}
}

const extractorSystemPrompt = `You convert job-search requests into filter parameters.
Fill only the fields the request clearly implies and leave the rest empty.
Never invent companies, platforms or locations the user did not mention.
If the request asks for the best or most relevant matches, set sortBy to "relevance".`

// Extract parses the query into criteria. It enforces the length cap and the
// per-day quota before spending a model call; quota exhaustion returns
// models.ErrQuotaExceeded.
func (s *FilterExtractorService) Extract(ctx context.Context, userID int, query string) (models.JobFilterCriteria, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return models.JobFilterCriteria{}, ErrEmptyQuery
	}
	if utf8.RuneCountInString(query) > MaxNaturalQueryLength {
		return models.JobFilterCriteria{}, ErrQueryTooLong
	}

	allowed, err := s.QuotaRepo.Consume(ctx, repositories.QuotaScopeNLSearch, userID, repositories.NLSearchDailyLimit)
	if err != nil {
		return models.JobFilterCriteria{}, fmt.Errorf("quota check: %w", err)
	}
	if !allowed {
		return models.JobFilterCriteria{}, models.ErrQuotaExceeded
	}

	var parsed models.ParsedNaturalLanguageFilters
	err = s.OpenAI.CompleteInto(ctx, ChatCompletionRequest{
		Messages: []ChatMessage{
			{Role: "system", Content: extractorSystemPrompt},
			{Role: "user", Content: query},
		},
		SchemaName: "job_search_filters",
		Schema:     filterSchema,
	}, &parsed)
	if err != nil {
		if s.ErrorLog != nil {
			s.ErrorLog.Printf("filter extraction failed for user %d: %v", userID, err)
		}
		return models.JobFilterCriteria{}, fmt.Errorf("filter extraction: %w", err)
	}

	criteria := models.CriteriaFromParsedFilters(parsed)
	criteria.UserID = userID
	return criteria, nil
}
