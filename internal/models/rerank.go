package models

// RerankSummary is the compact projection of an entity sent to the LLM for
// ranking: the id plus a handful of descriptive attributes, never the full
// record. Fields irrelevant to the entity kind stay empty and are omitted.
type RerankSummary struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	JobType     string `json:"job_type,omitempty"`
	Location    string `json:"location,omitempty"`
	Salary      string `json:"salary,omitempty"`
	Experience  string `json:"experience,omitempty"`
	Company     string `json:"company,omitempty"`
	Industry    string `json:"industry,omitempty"`
	Description string `json:"description,omitempty"`
	Skills      string `json:"skills,omitempty"`
}

// RerankResult is the LLM's structured answer: an ordering of ids by
// relevance plus the ids it judged irrelevant. Ephemeral, never persisted.
type RerankResult struct {
	RerankedIDs    []string `json:"rerankedIds"`
	FilteredOutIDs []string `json:"filteredOutIds"`
}

// ParsedNaturalLanguageFilters is the raw (string) filter shape the NL
// extractor asks the model for. It mirrors the query-string form of
// JobFilterCriteria; fields the model cannot infer come back empty.
type ParsedNaturalLanguageFilters struct {
	JobType         []string `json:"jobType"`
	Location        []string `json:"location"`
	VisaRequirement []string `json:"visaRequirement"`
	Platform        []string `json:"platform"`
	CompanyName     []string `json:"companyName"`
	Status          []string `json:"status"`
	TitleKeywords   []string `json:"titleKeywords"`
	MinSalary       string   `json:"minSalary"`
	MinExperience   string   `json:"minExperience"`
	SortBy          string   `json:"sortBy"`
	SortOrder       string   `json:"sortOrder"`
	Tab             string   `json:"tab"`
}
