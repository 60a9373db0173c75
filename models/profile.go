package models

// CareerProfile is the stored record of one user's resume-derived data plus
// all lazily computed derived-data slots. At most one live profile exists per
// user; creating a new one replaces the old.
type CareerProfile struct {
	ID     int `json:"id" firestore:"id"`
	UserID int `json:"userId" firestore:"userId"`

	// Captured at upload; ResumeText is immutable for the profile's lifetime.
	ResumeText     string `json:"resumeText" firestore:"resumeText"`
	LinkedinURL    string `json:"linkedinUrl,omitempty" firestore:"linkedinUrl"`
	GithubUsername string `json:"githubUsername,omitempty" firestore:"githubUsername"`

	// AI-extracted at upload.
	Skills     []string         `json:"skills" firestore:"skills"`
	Experience []ExperienceEntry `json:"experience" firestore:"experience"`
	Education  []EducationEntry  `json:"education" firestore:"education"`

	// Derived-data slots, each populated lazily by its own endpoint.
	Recommendations *RoleRecommendations `json:"recommendations" firestore:"recommendations"`
	InterviewPrep   *InterviewPrep       `json:"interviewPrep" firestore:"interviewPrep"`
	AnalyzedSkills  map[string]any       `json:"analyzedSkills" firestore:"analyzedSkills"`
	TargetRoles     map[string]any       `json:"targetRoles" firestore:"targetRoles"`

	// Session that uploaded the resume; empty when the upload was anonymous.
	SessionID string `json:"-" firestore:"sessionId"`
}

// ExperienceEntry is one job entry extracted from the resume
type ExperienceEntry struct {
	Title       string              `json:"title" firestore:"title"`
	Company     string              `json:"company" firestore:"company"`
	Duration    string              `json:"duration,omitempty" firestore:"duration"`
	Description FlexibleStringSlice `json:"description,omitempty" firestore:"description"`
}

// EducationEntry is one degree entry extracted from the resume
type EducationEntry struct {
	Degree      string `json:"degree" firestore:"degree"`
	Institution string `json:"institution" firestore:"institution"`
	Year        string `json:"year,omitempty" firestore:"year"`
}

// ResumeAnalysis is the extraction result for a freshly uploaded resume
type ResumeAnalysis struct {
	Skills     []string          `json:"skills"`
	Experience []ExperienceEntry `json:"experience"`
	Education  []EducationEntry  `json:"education"`
}
