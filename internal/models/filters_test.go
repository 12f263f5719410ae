package models

import (
	"net/url"
	"reflect"
	"testing"
)

func TestSplitFilterValues(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{"empty", "", []string{}},
		{"single", "Fulltime", []string{"Fulltime"}},
		{"multiple", "Fulltime,Contract", []string{"Fulltime", "Contract"}},
		{"whitespace trimmed", " Fulltime , Contract ", []string{"Fulltime", "Contract"}},
		{"empty segments dropped", "Fulltime,,Contract,", []string{"Fulltime", "Contract"}},
		{"only delimiters", ",,,", []string{}},
		{"values with spaces kept", "New York,San Francisco", []string{"New York", "San Francisco"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitFilterValues(tt.raw)
			if got == nil {
				t.Fatal("expected non-nil slice")
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("SplitFilterValues(%q) = %v, want %v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestParseJobFilterParams(t *testing.T) {
	q := url.Values{}
	q.Set("jobType", "Fulltime,Contract")
	q.Set("location", "Berlin,Remote")
	q.Set("minSalary", "90000")
	q.Set("minExperience", "3")
	q.Set("sortBy", "created_at")
	q.Set("sortOrder", "asc")
	q.Set("tab", "saved")
	q.Set("start", "20")
	q.Set("end", "39")

	c := ParseJobFilterParams(q)

	if !reflect.DeepEqual(c.JobTypes, []string{"Fulltime", "Contract"}) {
		t.Errorf("JobTypes = %v", c.JobTypes)
	}
	if !reflect.DeepEqual(c.Locations, []string{"Berlin", "Remote"}) {
		t.Errorf("Locations = %v", c.Locations)
	}
	if c.MinSalary != 90000 {
		t.Errorf("MinSalary = %v", c.MinSalary)
	}
	if c.MinExperience != 3 {
		t.Errorf("MinExperience = %v", c.MinExperience)
	}
	if c.SortBy != "created_at" || c.SortOrder != SortAsc {
		t.Errorf("sort = %s %s", c.SortBy, c.SortOrder)
	}
	if c.Tab != TabSaved {
		t.Errorf("Tab = %s", c.Tab)
	}
	if c.RangeStart != 20 || c.RangeEnd != 39 {
		t.Errorf("range = %d..%d", c.RangeStart, c.RangeEnd)
	}
}

func TestParseJobFilterParamsDefaults(t *testing.T) {
	c := ParseJobFilterParams(url.Values{})

	if len(c.JobTypes) != 0 || len(c.Locations) != 0 {
		t.Errorf("expected empty filters, got %v %v", c.JobTypes, c.Locations)
	}
	if c.Tab != TabAll {
		t.Errorf("Tab = %s, want %s", c.Tab, TabAll)
	}
	if c.SortOrder != SortDesc {
		t.Errorf("SortOrder = %s, want %s", c.SortOrder, SortDesc)
	}
	if c.RangeStart != 0 || c.RangeEnd != 19 {
		t.Errorf("range = %d..%d, want 0..19", c.RangeStart, c.RangeEnd)
	}
}

func TestParseJobFilterParamsBadNumbers(t *testing.T) {
	q := url.Values{}
	q.Set("minSalary", "lots")
	q.Set("start", "-5")
	q.Set("end", "banana")

	c := ParseJobFilterParams(q)

	if c.MinSalary != 0 {
		t.Errorf("MinSalary = %v, want 0", c.MinSalary)
	}
	if c.RangeStart != 0 || c.RangeEnd != 19 {
		t.Errorf("range = %d..%d, want 0..19", c.RangeStart, c.RangeEnd)
	}
}

func TestSortColumn(t *testing.T) {
	tests := []struct {
		sortBy string
		col    string
		ok     bool
	}{
		{"created_at", "created_at", true},
		{"company", "company_name", true},
		{"relevance", "", false},
		{"", "", false},
		{"drop_table", "", false},
	}
	for _, tt := range tests {
		c := JobFilterCriteria{SortBy: tt.sortBy}
		col, ok := c.SortColumn()
		if col != tt.col || ok != tt.ok {
			t.Errorf("SortColumn(%q) = %q,%v want %q,%v", tt.sortBy, col, ok, tt.col, tt.ok)
		}
	}
}

func TestExpandLocations(t *testing.T) {
	got := ExpandLocations([]string{"Berlin", "Remote"})

	want := map[string]bool{"Berlin": true, "Remote": true, "remote": true, "Work from home": true, "Anywhere": true}
	if len(got) != len(want) {
		t.Fatalf("ExpandLocations = %v", got)
	}
	for _, loc := range got {
		if !want[loc] {
			t.Errorf("unexpected location %q", loc)
		}
	}
}

func TestExpandLocationsNoRemote(t *testing.T) {
	got := ExpandLocations([]string{"Berlin", "Munich"})
	if !reflect.DeepEqual(got, []string{"Berlin", "Munich"}) {
		t.Errorf("ExpandLocations = %v", got)
	}
}

func TestClampValues(t *testing.T) {
	got := ClampValues([]string{"Fulltime", "Full-time", "freelance", "Contract"}, AllowedJobTypes)
	if !reflect.DeepEqual(got, []string{"Fulltime", "Contract"}) {
		t.Errorf("ClampValues = %v", got)
	}
}

func TestCriteriaFromParsedFilters(t *testing.T) {
	p := ParsedNaturalLanguageFilters{
		JobType:         []string{"Fulltime", "Gig"},
		VisaRequirement: []string{"Will Sponsor", "Maybe"},
		Location:        []string{" Berlin "},
		TitleKeywords:   []string{"engineer"},
		Status:          []string{"applied", "ghosted"},
		MinSalary:       "120000",
		MinExperience:   "5",
		SortBy:          "relevance",
		SortOrder:       "up",
		Tab:             "nonsense",
	}

	c := CriteriaFromParsedFilters(p)

	if !reflect.DeepEqual(c.JobTypes, []string{"Fulltime"}) {
		t.Errorf("JobTypes = %v", c.JobTypes)
	}
	if !reflect.DeepEqual(c.VisaRequirements, []string{"Will Sponsor"}) {
		t.Errorf("VisaRequirements = %v", c.VisaRequirements)
	}
	if !reflect.DeepEqual(c.Locations, []string{"Berlin"}) {
		t.Errorf("Locations = %v", c.Locations)
	}
	if !reflect.DeepEqual(c.ApplicationStatus, []string{"applied"}) {
		t.Errorf("ApplicationStatus = %v", c.ApplicationStatus)
	}
	if c.MinSalary != 120000 || c.MinExperience != 5 {
		t.Errorf("numeric = %v %v", c.MinSalary, c.MinExperience)
	}
	if c.SortBy != SortRelevance {
		t.Errorf("SortBy = %q", c.SortBy)
	}
	if c.SortOrder != SortDesc {
		t.Errorf("SortOrder = %q", c.SortOrder)
	}
	if c.Tab != TabAll {
		t.Errorf("Tab = %q", c.Tab)
	}
}

func TestCriteriaFromParsedFiltersUnknownSort(t *testing.T) {
	c := CriteriaFromParsedFilters(ParsedNaturalLanguageFilters{SortBy: "vibes"})
	if c.SortBy != "" {
		t.Errorf("SortBy = %q, want empty", c.SortBy)
	}
}
