package models

import (
	"net/url"
	"strconv"
	"strings"
	"time"
)

// FilterDelimiter is the single delimiter for multi-value filter fields in
// query strings and AI-extracted filters. The clients historically mixed "|"
// and ","; every call path now goes through this constant.
const FilterDelimiter = ","

const (
	TabAll     = "all"
	TabSaved   = "saved"
	TabApplied = "applied"

	SortRelevance = "relevance"

	SortAsc  = "asc"
	SortDesc = "desc"
)

// sortColumns is the allowlist for ORDER BY targets. "relevance" is special:
// it triggers vector pre-filtering and AI re-ranking instead of a column sort.
var sortColumns = map[string]string{
	"created_at": "created_at",
	"salary_min": "salary_min",
	"salary_max": "salary_max",
	"job_name":   "job_name",
	"company":    "company_name",
}

// SplitFilterValues turns a delimited multi-value filter field into trimmed,
// non-empty segments. Empty input yields an empty slice, never nil handling
// burdens for callers. No case folding, no dedup.
func SplitFilterValues(raw string) []string {
	result := []string{}
	if raw == "" {
		return result
	}
	for _, part := range strings.Split(raw, FilterDelimiter) {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// JobFilterCriteria is the normalized search request consumed by the query
// composer. Empty slices mean "no constraint" on that dimension; all active
// dimensions are ANDed together.
type JobFilterCriteria struct {
	JobTypes          []string `json:"jobTypes"`
	VisaRequirements  []string `json:"visaRequirements"`
	Locations         []string `json:"locations"`
	Platforms         []string `json:"platforms"`
	CompanyNames      []string `json:"companyNames"`
	TitleKeywords     []string `json:"titleKeywords"`
	ApplicationStatus []string `json:"applicationStatus"`

	MinSalary     float64 `json:"minSalary"`
	MinExperience int     `json:"minExperience"`

	SortBy    string `json:"sortBy"`
	SortOrder string `json:"sortOrder"`

	// Inclusive page range, index-based.
	RangeStart int `json:"start"`
	RangeEnd   int `json:"end"`

	Tab    string `json:"tab"`
	UserID int    `json:"-"`

	// Relevance search inputs. Both must be present for the vector branch.
	Embedding    []float32  `json:"-"`
	CreatedAfter *time.Time `json:"-"`
}

// ParseJobFilterParams builds criteria from the search API's query string.
// Missing or malformed numeric fields fall back to zero values, which the
// composer treats as "no constraint".
func ParseJobFilterParams(q url.Values) JobFilterCriteria {
	c := JobFilterCriteria{
		JobTypes:          SplitFilterValues(q.Get("jobType")),
		VisaRequirements:  SplitFilterValues(q.Get("visa")),
		Locations:         SplitFilterValues(q.Get("location")),
		Platforms:         SplitFilterValues(q.Get("platform")),
		CompanyNames:      SplitFilterValues(q.Get("company")),
		TitleKeywords:     SplitFilterValues(q.Get("titleKeywords")),
		ApplicationStatus: SplitFilterValues(q.Get("status")),
		SortBy:            strings.TrimSpace(q.Get("sortBy")),
		SortOrder:         NormalizeSortOrder(q.Get("sortOrder")),
		Tab:               NormalizeTab(q.Get("tab")),
	}

	c.MinSalary, _ = strconv.ParseFloat(q.Get("minSalary"), 64)
	c.MinExperience, _ = strconv.Atoi(q.Get("minExperience"))

	c.RangeStart, _ = strconv.Atoi(q.Get("start"))
	if c.RangeStart < 0 {
		c.RangeStart = 0
	}
	end, err := strconv.Atoi(q.Get("end"))
	if err != nil || end < c.RangeStart {
		end = c.RangeStart + defaultPageSize - 1
	}
	c.RangeEnd = end

	return c
}

const defaultPageSize = 20

// SortColumn resolves the criteria's sort key against the allowlist. ok is
// false for "relevance", unknown columns and the empty string.
func (c JobFilterCriteria) SortColumn() (string, bool) {
	col, ok := sortColumns[c.SortBy]
	return col, ok
}

// IsRelevanceSort reports whether the caller asked for relevance ordering,
// regardless of whether the vector inputs are present.
func (c JobFilterCriteria) IsRelevanceSort() bool {
	return c.SortBy == SortRelevance
}

// HasVectorInputs reports whether the vector-similarity branch can run.
func (c JobFilterCriteria) HasVectorInputs() bool {
	return len(c.Embedding) > 0 && c.CreatedAfter != nil
}

func NormalizeSortOrder(order string) string {
	if strings.EqualFold(strings.TrimSpace(order), SortAsc) {
		return SortAsc
	}
	return SortDesc
}

func NormalizeTab(tab string) string {
	switch strings.TrimSpace(tab) {
	case TabSaved:
		return TabSaved
	case TabApplied:
		return TabApplied
	default:
		return TabAll
	}
}

// remoteSynonyms covers the spellings boards use for remote-friendly
// positions. Location filters are expanded with these before the
// array-overlap comparison.
var remoteSynonyms = []string{"Remote", "remote", "Work from home", "Anywhere"}

// ExpandLocations normalizes a location filter for the overlap comparison:
// each value is kept as-is and remote-indicating values pull in the full
// synonym set.
func ExpandLocations(locations []string) []string {
	if len(locations) == 0 {
		return nil
	}
	expanded := make([]string, 0, len(locations))
	seen := make(map[string]struct{}, len(locations))
	add := func(loc string) {
		if _, ok := seen[loc]; ok {
			return
		}
		seen[loc] = struct{}{}
		expanded = append(expanded, loc)
	}
	for _, loc := range locations {
		add(loc)
		if isRemoteToken(loc) {
			for _, syn := range remoteSynonyms {
				add(syn)
			}
		}
	}
	return expanded
}

func isRemoteToken(loc string) bool {
	lower := strings.ToLower(strings.TrimSpace(loc))
	return strings.Contains(lower, "remote") || strings.Contains(lower, "work from home")
}

// Closed sets for filter dimensions populated by the NL extractor. The model
// is loosely validated by its schema only, so values are clamped against
// these immediately after receipt; unknowns become "no constraint".
var (
	AllowedJobTypes = map[string]struct{}{
		"Fulltime": {}, "Parttime": {}, "Contract": {}, "Internship": {},
	}
	AllowedVisaRequirements = map[string]struct{}{
		"Required": {}, "Not Required": {}, "Will Sponsor": {},
	}
)

// ClampValues keeps only values present in the allowed set.
func ClampValues(values []string, allowed map[string]struct{}) []string {
	result := []string{}
	for _, v := range values {
		if _, ok := allowed[strings.TrimSpace(v)]; ok {
			result = append(result, strings.TrimSpace(v))
		}
	}
	return result
}

// CriteriaFromParsedFilters converts the extractor's raw filter shape into
// normalized criteria, clamping enum dimensions and dropping anything the
// composer would not understand. Free-form dimensions (location, company,
// title keywords, platform) pass through trimmed.
func CriteriaFromParsedFilters(p ParsedNaturalLanguageFilters) JobFilterCriteria {
	c := JobFilterCriteria{
		JobTypes:          ClampValues(p.JobType, AllowedJobTypes),
		VisaRequirements:  ClampValues(p.VisaRequirement, AllowedVisaRequirements),
		Locations:         trimValues(p.Location),
		Platforms:         trimValues(p.Platform),
		CompanyNames:      trimValues(p.CompanyName),
		TitleKeywords:     trimValues(p.TitleKeywords),
		ApplicationStatus: clampApplicationStatuses(p.Status),
		SortOrder:         NormalizeSortOrder(p.SortOrder),
		Tab:               NormalizeTab(p.Tab),
		RangeStart:        0,
		RangeEnd:          defaultPageSize - 1,
	}

	if p.SortBy == SortRelevance {
		c.SortBy = SortRelevance
	} else if _, ok := sortColumns[p.SortBy]; ok {
		c.SortBy = p.SortBy
	}

	c.MinSalary, _ = strconv.ParseFloat(strings.TrimSpace(p.MinSalary), 64)
	c.MinExperience, _ = strconv.Atoi(strings.TrimSpace(p.MinExperience))

	return c
}

func trimValues(values []string) []string {
	result := []string{}
	for _, v := range values {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func clampApplicationStatuses(values []string) []string {
	result := []string{}
	for _, v := range values {
		if IsValidApplicationStatus(strings.TrimSpace(v)) {
			result = append(result, strings.TrimSpace(v))
		}
	}
	return result
}
