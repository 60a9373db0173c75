package models

import "encoding/json"

// FlexibleStringSlice can unmarshal from either a string or []string.
// LLM output occasionally collapses single-element lists into bare strings.
type FlexibleStringSlice []string

func (f *FlexibleStringSlice) UnmarshalJSON(data []byte) error {
	// Try to unmarshal as []string first
	var arr []string
	if err := json.Unmarshal(data, &arr); err == nil {
		*f = arr
		return nil
	}

	// Try to unmarshal as string
	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		if str != "" {
			*f = []string{str}
		} else {
			*f = []string{}
		}
		return nil
	}

	// If both fail, return empty slice
	*f = []string{}
	return nil
}

// RoleRecommendations is the persisted recommendations slot
type RoleRecommendations struct {
	RecommendedRoles []RecommendedRole `json:"recommendedRoles" firestore:"recommendedRoles"`
}

// RecommendedRole is one suggested career path
type RecommendedRole struct {
	Title              string              `json:"title" firestore:"title"`
	Industry           string              `json:"industry" firestore:"industry"`
	MatchPercentage    int                 `json:"matchPercentage" firestore:"matchPercentage"`
	RequiredSkills     FlexibleStringSlice `json:"requiredSkills" firestore:"requiredSkills"`
	GrowthPotential    string              `json:"growthPotential" firestore:"growthPotential"`
	RequiredExperience string              `json:"requiredExperience" firestore:"requiredExperience"`
}

// InterviewPrep is the persisted interview preparation slot
type InterviewPrep struct {
	Categories []InterviewCategory `json:"categories" firestore:"categories"`
}

// InterviewCategory groups questions by theme (behavioral, technical, ...)
type InterviewCategory struct {
	Name        string              `json:"name" firestore:"name"`
	Description string              `json:"description" firestore:"description"`
	Questions   []InterviewQuestion `json:"questions" firestore:"questions"`
}

// InterviewQuestion is one prepared question with guidance
type InterviewQuestion struct {
	Question       string              `json:"question" firestore:"question"`
	SampleAnswer   string              `json:"sampleAnswer" firestore:"sampleAnswer"`
	Tips           FlexibleStringSlice `json:"tips" firestore:"tips"`
	CommonMistakes FlexibleStringSlice `json:"commonMistakes" firestore:"commonMistakes"`
}

// ResumeFeedback is computed on demand and never persisted
type ResumeFeedback struct {
	Overview    FeedbackOverview   `json:"overview"`
	Sections    FeedbackSections   `json:"sections"`
	Formatting  FeedbackFormatting `json:"formatting"`
	ImpactScore int                `json:"impactScore"` // 0-100
}

type FeedbackOverview struct {
	Strengths    FlexibleStringSlice `json:"strengths"`
	Improvements FlexibleStringSlice `json:"improvements"`
}

type FeedbackSections struct {
	Summary    SectionFeedback `json:"summary"`
	Experience SectionFeedback `json:"experience"`
	Skills     SectionFeedback `json:"skills"`
	Education  SectionFeedback `json:"education"`
}

type SectionFeedback struct {
	Feedback    string              `json:"feedback"`
	Suggestions FlexibleStringSlice `json:"suggestions"`
}

type FeedbackFormatting struct {
	Issues          FlexibleStringSlice `json:"issues"`
	Recommendations FlexibleStringSlice `json:"recommendations"`
}

// NetworkingInsights is computed on demand and never persisted
type NetworkingInsights struct {
	Upcoming       []NetworkingEvent   `json:"upcoming"`
	Groups         []NetworkingGroup   `json:"groups"`
	Influencers    []Influencer        `json:"influencers"`
	TrendingTopics FlexibleStringSlice `json:"trendingTopics"`
	ContentIdeas   FlexibleStringSlice `json:"contentIdeas"`
}

type NetworkingEvent struct {
	Title       string `json:"title"`
	Date        string `json:"date,omitempty"`
	Description string `json:"description,omitempty"`
	URL         string `json:"url,omitempty"`
}

type NetworkingGroup struct {
	Name        string `json:"name"`
	Focus       string `json:"focus,omitempty"`
	Description string `json:"description,omitempty"`
}

type Influencer struct {
	Name   string `json:"name"`
	Title  string `json:"title,omitempty"`
	Reason string `json:"reason,omitempty"`
}

// PortfolioSuggestions is computed on demand and never persisted
type PortfolioSuggestions struct {
	SuggestedProjects []PortfolioProject `json:"suggestedProjects"`
	SkillGaps         []SkillGap         `json:"skillGaps"`
}

// PortfolioProject is one suggested portfolio project
type PortfolioProject struct {
	Title            string              `json:"title"`
	Description      string              `json:"description"`
	TimeEstimate     string              `json:"timeEstimate"`
	Technologies     FlexibleStringSlice `json:"technologies"`
	LearningOutcomes FlexibleStringSlice `json:"learningOutcomes"`
	Implementation   ProjectPlan         `json:"implementation"`
}

type ProjectPlan struct {
	Features   FlexibleStringSlice `json:"features"`
	Challenges FlexibleStringSlice `json:"challenges"`
}

// SkillGap names a skill worth building through a project
type SkillGap struct {
	Skill       string `json:"skill"`
	ProjectType string `json:"projectType"`
	Importance  string `json:"importance"`
}
