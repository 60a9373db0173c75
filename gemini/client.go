package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"cloud.google.com/go/vertexai/genai"

	"github.com/careercompass/backend/config"
	"github.com/careercompass/backend/models"
)

// Client wraps the Vertex AI Gemini client. It generates all derived career
// data: resume analysis, role recommendations, interview prep, resume
// feedback, networking insights and portfolio suggestions. It never persists
// anything; callers own storage.
type Client struct {
	client    *genai.Client
	model     *genai.GenerativeModel
	modelName string
}

// NewClient creates a new Gemini client
func NewClient(ctx context.Context, cfg *config.Config) (*Client, error) {
	client, err := genai.NewClient(ctx, cfg.ProjectID, cfg.Location)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := client.GenerativeModel(cfg.GeminiModel)

	// Configure model parameters
	model.SetTemperature(0.2) // Lower temperature for more consistent outputs
	model.SetTopP(0.8)
	model.SetMaxOutputTokens(8192)

	return &Client{
		client:    client,
		model:     model,
		modelName: cfg.GeminiModel,
	}, nil
}

// Close closes the Gemini client
func (c *Client) Close() error {
	return c.client.Close()
}

// AnalyzeResume extracts skills, experience and education from resume text
func (c *Client) AnalyzeResume(ctx context.Context, resumeText string) (*models.ResumeAnalysis, error) {
	prompt := fmt.Sprintf(`Analyze the resume and extract skills, experience, and education.
Return a JSON object with the following structure:

{
  "skills": ["skill1", "skill2"],
  "experience": [
    {
      "title": "Software Engineer",
      "company": "Company Name",
      "duration": "2020 - 2023",
      "description": ["achievement or responsibility"]
    }
  ],
  "education": [
    {
      "degree": "Bachelor of Science in Computer Science",
      "institution": "University Name",
      "year": "2020"
    }
  ]
}

RESUME TEXT:
%s

Return ONLY the JSON object, no markdown formatting, no explanation.`, resumeText)

	text, err := c.generate(ctx, prompt)
	if err != nil {
		return nil, err
	}

	var analysis models.ResumeAnalysis
	if err := c.decode(text, analysisShape, &analysis); err != nil {
		log.Printf("[Gemini] Failed to decode resume analysis: %v", err)
		return nil, err
	}

	log.Printf("[Gemini] Analyzed resume: skills=%d, experience=%d, education=%d",
		len(analysis.Skills), len(analysis.Experience), len(analysis.Education))

	return &analysis, nil
}

// RecommendRoles suggests career paths for the profile
func (c *Client) RecommendRoles(ctx context.Context, profile *models.CareerProfile) (*models.RoleRecommendations, error) {
	payload := profilePayload(profile)

	prompt := fmt.Sprintf(`Based on the profile, suggest career paths and recommendations.
Return a JSON object with the following structure:

{
  "recommendedRoles": [
    {
      "title": "Backend Engineer",
      "industry": "Technology",
      "matchPercentage": 85,
      "requiredSkills": ["skill1", "skill2"],
      "growthPotential": "High demand with strong salary growth",
      "requiredExperience": "3+ years building production services"
    }
  ]
}

matchPercentage must be an integer between 0 and 100.

PROFILE:
%s

Return ONLY the JSON object, no markdown formatting, no explanation.`, payload)

	text, err := c.generate(ctx, prompt)
	if err != nil {
		return nil, err
	}

	var recs models.RoleRecommendations
	if err := c.decode(text, recommendationsShape, &recs); err != nil {
		log.Printf("[Gemini] Failed to decode role recommendations: %v", err)
		return nil, err
	}

	return &recs, nil
}

// GenerateInterviewPrep produces interview questions grouped by category
func (c *Client) GenerateInterviewPrep(ctx context.Context, profile *models.CareerProfile) (*models.InterviewPrep, error) {
	payload := profilePayload(profile)

	prompt := fmt.Sprintf(`Based on the profile, generate interview preparation material tailored
to the candidate's skills and target roles.
Return a JSON object with the following structure:

{
  "categories": [
    {
      "name": "Behavioral",
      "description": "Questions about past experience and collaboration",
      "questions": [
        {
          "question": "Tell me about a challenging project you led.",
          "sampleAnswer": "A strong answer using the STAR method...",
          "tips": ["tip1", "tip2"],
          "commonMistakes": ["mistake1", "mistake2"]
        }
      ]
    }
  ]
}

PROFILE:
%s

Return ONLY the JSON object, no markdown formatting, no explanation.`, payload)

	text, err := c.generate(ctx, prompt)
	if err != nil {
		return nil, err
	}

	var prep models.InterviewPrep
	if err := c.decode(text, interviewPrepShape, &prep); err != nil {
		log.Printf("[Gemini] Failed to decode interview prep: %v", err)
		return nil, err
	}

	return &prep, nil
}

// ReviewResume produces section-by-section resume feedback with an impact score
func (c *Client) ReviewResume(ctx context.Context, profile *models.CareerProfile) (*models.ResumeFeedback, error) {
	prompt := fmt.Sprintf(`Review the resume below and provide structured, actionable feedback.
Return a JSON object with the following structure:

{
  "overview": {
    "strengths": ["strength1"],
    "improvements": ["improvement1"]
  },
  "sections": {
    "summary": {"feedback": "...", "suggestions": ["..."]},
    "experience": {"feedback": "...", "suggestions": ["..."]},
    "skills": {"feedback": "...", "suggestions": ["..."]},
    "education": {"feedback": "...", "suggestions": ["..."]}
  },
  "formatting": {
    "issues": ["issue1"],
    "recommendations": ["recommendation1"]
  },
  "impactScore": 72
}

impactScore must be an integer between 0 and 100.

RESUME TEXT:
%s

Return ONLY the JSON object, no markdown formatting, no explanation.`, profile.ResumeText)

	text, err := c.generate(ctx, prompt)
	if err != nil {
		return nil, err
	}

	var feedback models.ResumeFeedback
	if err := c.decode(text, feedbackShape, &feedback); err != nil {
		log.Printf("[Gemini] Failed to decode resume feedback: %v", err)
		return nil, err
	}

	return &feedback, nil
}

// SuggestNetworking produces LinkedIn-oriented networking insights
func (c *Client) SuggestNetworking(ctx context.Context, profile *models.CareerProfile) (*models.NetworkingInsights, error) {
	payload := profilePayload(profile)

	prompt := fmt.Sprintf(`Based on the profile, suggest professional networking opportunities:
relevant upcoming event types, LinkedIn groups, industry influencers to follow,
trending topics in the candidate's field, and content ideas they could post.
Return a JSON object with the following structure:

{
  "upcoming": [{"title": "...", "date": "...", "description": "...", "url": ""}],
  "groups": [{"name": "...", "focus": "...", "description": "..."}],
  "influencers": [{"name": "...", "title": "...", "reason": "..."}],
  "trendingTopics": ["topic1"],
  "contentIdeas": ["idea1"]
}

PROFILE:
%s

Return ONLY the JSON object, no markdown formatting, no explanation.`, payload)

	text, err := c.generate(ctx, prompt)
	if err != nil {
		return nil, err
	}

	var insights models.NetworkingInsights
	if err := c.decode(text, networkingShape, &insights); err != nil {
		log.Printf("[Gemini] Failed to decode networking insights: %v", err)
		return nil, err
	}

	return &insights, nil
}

// SuggestPortfolio produces portfolio project ideas and skill gaps
func (c *Client) SuggestPortfolio(ctx context.Context, profile *models.CareerProfile) (*models.PortfolioSuggestions, error) {
	payload := profilePayload(profile)

	prompt := fmt.Sprintf(`Based on the profile, suggest portfolio projects that would strengthen
the candidate's positioning for their recommended roles, and identify skill gaps
worth closing through a project.
Return a JSON object with the following structure:

{
  "suggestedProjects": [
    {
      "title": "...",
      "description": "...",
      "timeEstimate": "2-3 weeks",
      "technologies": ["tech1"],
      "learningOutcomes": ["outcome1"],
      "implementation": {"features": ["feature1"], "challenges": ["challenge1"]}
    }
  ],
  "skillGaps": [{"skill": "...", "projectType": "...", "importance": "high"}]
}

PROFILE:
%s

Return ONLY the JSON object, no markdown formatting, no explanation.`, payload)

	text, err := c.generate(ctx, prompt)
	if err != nil {
		return nil, err
	}

	var suggestions models.PortfolioSuggestions
	if err := c.decode(text, portfolioShape, &suggestions); err != nil {
		log.Printf("[Gemini] Failed to decode portfolio suggestions: %v", err)
		return nil, err
	}

	return &suggestions, nil
}

// Required top-level shape per template category

var analysisShape = map[string]fieldKind{
	"skills":     kindArray,
	"experience": kindArray,
	"education":  kindArray,
}

var recommendationsShape = map[string]fieldKind{
	"recommendedRoles": kindArray,
}

var interviewPrepShape = map[string]fieldKind{
	"categories": kindArray,
}

var feedbackShape = map[string]fieldKind{
	"overview":    kindObject,
	"sections":    kindObject,
	"formatting":  kindObject,
	"impactScore": kindNumber,
}

var networkingShape = map[string]fieldKind{
	"upcoming":       kindArray,
	"groups":         kindArray,
	"influencers":    kindArray,
	"trendingTopics": kindArray,
	"contentIdeas":   kindArray,
}

var portfolioShape = map[string]fieldKind{
	"suggestedProjects": kindArray,
	"skillGaps":         kindArray,
}

// generate runs the prompt and returns the concatenated text parts
func (c *Client) generate(ctx context.Context, prompt string) (string, error) {
	resp, err := c.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no response from Gemini")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if textPart, ok := part.(genai.Text); ok {
			sb.WriteString(string(textPart))
		}
	}
	return sb.String(), nil
}

// decode extracts the JSON object, validates the category shape and
// unmarshals into v
func (c *Client) decode(text string, required map[string]fieldKind, v any) error {
	span, err := extractJSONObject(text)
	if err != nil {
		return err
	}

	if err := validateShape(span, required); err != nil {
		return err
	}

	if err := json.Unmarshal(span, v); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidShape, err)
	}

	return nil
}

// profilePayload serializes the profile fields worth sending to the model.
// ResumeText dominates token budget, so derived slots are dropped.
func profilePayload(profile *models.CareerProfile) string {
	payload := map[string]any{
		"resumeText": profile.ResumeText,
		"skills":     profile.Skills,
		"experience": profile.Experience,
		"education":  profile.Education,
	}
	if profile.Recommendations != nil {
		payload["recommendedRoles"] = profile.Recommendations.RecommendedRoles
	}

	data, _ := json.Marshal(payload)
	return string(data)
}
