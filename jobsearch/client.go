package jobsearch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/careercompass/backend/config"
	"github.com/careercompass/backend/models"
	"github.com/careercompass/backend/utils"
)

// DefaultRole is searched when the profile has no recommended roles yet
const DefaultRole = "Software Engineer"

// recencyDays limits results to recently posted jobs
const recencyDays = 7

// Scoring weights: a posting earns titleWeight when its title contains the
// recommended role, plus up to techWeight proportional to how many of its
// listed technologies the user already has.
const (
	titleWeight = 50
	techWeight  = 50
)

// Client searches the TheirStack jobs API and scores postings against the
// user's skills. One search per recommended role, fanned out concurrently.
type Client struct {
	apiKey     string
	baseURL    string
	country    string
	maxResults int
	httpClient *http.Client
}

// NewClient creates a new job search client
func NewClient(cfg *config.Config) *Client {
	return &Client{
		apiKey:     cfg.TheirStackAPIKey,
		baseURL:    cfg.TheirStackBaseURL,
		country:    cfg.JobCountry,
		maxResults: cfg.MaxJobResults,
		httpClient: utils.NewHTTPClient(time.Duration(cfg.JobSearchTimeoutSeconds) * time.Second),
	}
}

// SearchPostings runs one search per role and returns deduplicated scored
// postings, flattened in role order. A failed search for one role is logged
// and contributes nothing; an error is returned only when every role failed.
func (c *Client) SearchPostings(ctx context.Context, roles []string, skills []string) ([]models.JobPosting, error) {
	if len(roles) == 0 {
		roles = []string{DefaultRole}
	}

	skillSet := make(map[string]struct{}, len(skills))
	for _, skill := range skills {
		skillSet[strings.ToLower(skill)] = struct{}{}
	}

	perRole := make([][]models.JobPosting, len(roles))
	errCount := 0

	var wg sync.WaitGroup
	var mu sync.Mutex

	for i, role := range roles {
		wg.Add(1)
		go func(idx int, roleTitle string) {
			defer wg.Done()

			postings, err := c.searchRole(ctx, roleTitle)
			if err != nil {
				log.Printf("[JobSearch] Search failed for role %q: %v", roleTitle, err)
				mu.Lock()
				errCount++
				mu.Unlock()
				return
			}

			scored := make([]models.JobPosting, 0, len(postings))
			for _, posting := range postings {
				posting.SkillMatch = scorePosting(roleTitle, posting, skillSet)
				scored = append(scored, posting)
			}
			perRole[idx] = scored
		}(i, role)
	}

	wg.Wait()

	if errCount == len(roles) {
		return nil, fmt.Errorf("job search failed for all %d roles", len(roles))
	}

	// Flatten preserving per-role order, dropping duplicates
	seen := make(map[string]bool)
	jobs := make([]models.JobPosting, 0)
	for _, postings := range perRole {
		for _, posting := range postings {
			key := posting.ApplicationURL
			if key == "" {
				key = posting.Company + "|" + posting.Title
			}
			if seen[key] {
				continue
			}
			seen[key] = true
			jobs = append(jobs, posting)
		}
	}

	log.Printf("[JobSearch] Returning %d postings across %d roles", len(jobs), len(roles))
	return jobs, nil
}

// searchRequest is the TheirStack v1 jobs search body
type searchRequest struct {
	JobTitleOr         []string `json:"job_title_or"`
	JobCountryCodeOr   []string `json:"job_country_code_or"`
	PostedAtMaxAgeDays int      `json:"posted_at_max_age_days"`
	Limit              int      `json:"limit"`
}

type searchResponse struct {
	Data []theirStackJob `json:"data"`
}

type theirStackJob struct {
	JobTitle           string                     `json:"job_title"`
	Company            string                     `json:"company"`
	Location           string                     `json:"location"`
	EmploymentStatuses models.FlexibleStringSlice `json:"employment_statuses"`
	Description        string                     `json:"description"`
	SalaryString       string                     `json:"salary_string"`
	DatePosted         string                     `json:"date_posted"`
	URL                string                     `json:"url"`
	FinalURL           string                     `json:"final_url"`
	TechnologySlugs    models.FlexibleStringSlice `json:"technology_slugs"`
}

func (c *Client) searchRole(ctx context.Context, role string) ([]models.JobPosting, error) {
	body := searchRequest{
		JobTitleOr:         []string{role},
		JobCountryCodeOr:   []string{c.country},
		PostedAtMaxAgeDays: recencyDays,
		Limit:              c.maxResults,
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/jobs/search", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("TheirStack API error (status %d): %s", resp.StatusCode, string(raw))
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var searchResp searchResponse
	if err := json.Unmarshal(raw, &searchResp); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	postings := make([]models.JobPosting, 0, len(searchResp.Data))
	for _, job := range searchResp.Data {
		applicationURL := job.FinalURL
		if applicationURL == "" {
			applicationURL = job.URL
		}

		jobType := ""
		if len(job.EmploymentStatuses) > 0 {
			jobType = job.EmploymentStatuses[0]
		}

		postings = append(postings, models.JobPosting{
			Title:          job.JobTitle,
			Company:        job.Company,
			Location:       job.Location,
			Type:           jobType,
			Description:    job.Description,
			Requirements:   job.TechnologySlugs,
			Salary:         job.SalaryString,
			PostedDate:     job.DatePosted,
			ApplicationURL: applicationURL,
		})
	}

	return postings, nil
}

// scorePosting computes the 0-100 skill match for one posting
func scorePosting(role string, posting models.JobPosting, skillSet map[string]struct{}) int {
	score := 0

	if role != "" && strings.Contains(strings.ToLower(posting.Title), strings.ToLower(role)) {
		score += titleWeight
	}

	if len(posting.Requirements) > 0 {
		matched := 0
		for _, tech := range posting.Requirements {
			if _, ok := skillSet[strings.ToLower(tech)]; ok {
				matched++
			}
		}
		score += matched * techWeight / len(posting.Requirements)
	}

	return score
}
