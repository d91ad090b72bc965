package profile

// Resume is the data collected by the resume workflow.
type Resume struct {
	PersonalInfo    ResumeContact      `json:"personal_info" yaml:"personal_info" mapstructure:"personal_info"`
	Summary         string             `json:"summary,omitempty" yaml:"summary,omitempty" mapstructure:"summary"`
	AreaOfExpertise []string           `json:"area_of_expertise,omitempty" yaml:"area_of_expertise,omitempty" mapstructure:"area_of_expertise"`
	KeyAchievements []string           `json:"key_achievements,omitempty" yaml:"key_achievements,omitempty" mapstructure:"key_achievements"`
	Experience      []ResumeExperience `json:"experience,omitempty" yaml:"experience,omitempty" mapstructure:"experience"`
	Education       []ResumeEducation  `json:"education,omitempty" yaml:"education,omitempty" mapstructure:"education"`
	Projects        []ResumeProject    `json:"projects,omitempty" yaml:"projects,omitempty" mapstructure:"projects"`
	Additional      []string           `json:"additional,omitempty" yaml:"additional,omitempty" mapstructure:"additional"`
}

// ResumeContact is the header block of a resume.
type ResumeContact struct {
	Name     string `json:"name" yaml:"name" mapstructure:"name"`
	Role     string `json:"role,omitempty" yaml:"role,omitempty" mapstructure:"role"`
	Email    string `json:"email,omitempty" yaml:"email,omitempty" mapstructure:"email"`
	Phone    string `json:"phone,omitempty" yaml:"phone,omitempty" mapstructure:"phone"`
	Location string `json:"location,omitempty" yaml:"location,omitempty" mapstructure:"location"`
	LinkedIn string `json:"linkedin,omitempty" yaml:"linkedin,omitempty" mapstructure:"linkedin"`
	GitHub   string `json:"github,omitempty" yaml:"github,omitempty" mapstructure:"github"`
	Website  string `json:"website,omitempty" yaml:"website,omitempty" mapstructure:"website"`
}

// ResumeExperience is one position held.
type ResumeExperience struct {
	Title       string   `json:"title" yaml:"title" mapstructure:"title"`
	Company     string   `json:"company" yaml:"company" mapstructure:"company"`
	Location    string   `json:"location,omitempty" yaml:"location,omitempty" mapstructure:"location"`
	Years       string   `json:"years,omitempty" yaml:"years,omitempty" mapstructure:"years"`
	StartDate   string   `json:"start_date,omitempty" yaml:"start_date,omitempty" mapstructure:"start_date"`
	EndDate     string   `json:"end_date,omitempty" yaml:"end_date,omitempty" mapstructure:"end_date"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty" mapstructure:"description"`
	Details     []string `json:"details,omitempty" yaml:"details,omitempty" mapstructure:"details"`
}

// ResumeEducation is one degree or course of study.
type ResumeEducation struct {
	Degree      string   `json:"degree" yaml:"degree" mapstructure:"degree"`
	Institution string   `json:"institution" yaml:"institution" mapstructure:"institution"`
	Location    string   `json:"location,omitempty" yaml:"location,omitempty" mapstructure:"location"`
	Years       string   `json:"years,omitempty" yaml:"years,omitempty" mapstructure:"years"`
	StartDate   string   `json:"start_date,omitempty" yaml:"start_date,omitempty" mapstructure:"start_date"`
	EndDate     string   `json:"end_date,omitempty" yaml:"end_date,omitempty" mapstructure:"end_date"`
	GPA         string   `json:"gpa,omitempty" yaml:"gpa,omitempty" mapstructure:"gpa"`
	Details     []string `json:"details,omitempty" yaml:"details,omitempty" mapstructure:"details"`
}

// ResumeProject is a project listed on a resume.
type ResumeProject struct {
	Name         string   `json:"name" yaml:"name" mapstructure:"name"`
	Role         string   `json:"role,omitempty" yaml:"role,omitempty" mapstructure:"role"`
	Description  string   `json:"description,omitempty" yaml:"description,omitempty" mapstructure:"description"`
	Technologies []string `json:"technologies,omitempty" yaml:"technologies,omitempty" mapstructure:"technologies"`
	Link         string   `json:"link,omitempty" yaml:"link,omitempty" mapstructure:"link"`
	Period       string   `json:"period,omitempty" yaml:"period,omitempty" mapstructure:"period"`
}

// Portfolio is the data collected by the portfolio workflow.
type Portfolio struct {
	PersonalInfo PersonalInfo          `json:"personal_info" yaml:"personal_info" mapstructure:"personal_info"`
	AboutMe      AboutMe               `json:"about_me" yaml:"about_me" mapstructure:"about_me"`
	Experience   []PortfolioExperience `json:"experience,omitempty" yaml:"experience,omitempty" mapstructure:"experience"`
	Education    []PortfolioEducation  `json:"education,omitempty" yaml:"education,omitempty" mapstructure:"education"`
	Projects     []PortfolioProject    `json:"projects,omitempty" yaml:"projects,omitempty" mapstructure:"projects"`
	Contact      Contact               `json:"contact" yaml:"contact" mapstructure:"contact"`
}

// PersonalInfo is the hero section of a portfolio.
type PersonalInfo struct {
	Name         string `json:"name" yaml:"name" mapstructure:"name"`
	Role         string `json:"role,omitempty" yaml:"role,omitempty" mapstructure:"role"`
	Introduction string `json:"introduction,omitempty" yaml:"introduction,omitempty" mapstructure:"introduction"`
	Location     string `json:"location,omitempty" yaml:"location,omitempty" mapstructure:"location"`
}

// AboutMe holds the biography and skill list.
type AboutMe struct {
	Biography string  `json:"biography,omitempty" yaml:"biography,omitempty" mapstructure:"biography"`
	Skills    []Skill `json:"skills,omitempty" yaml:"skills,omitempty" mapstructure:"skills"`
}

// Skill is a named skill with an optional proficiency level.
type Skill struct {
	Name  string `json:"name" yaml:"name" mapstructure:"name"`
	Level string `json:"level,omitempty" yaml:"level,omitempty" mapstructure:"level"`
}

// PortfolioExperience is one position shown on the experience timeline.
type PortfolioExperience struct {
	Position         string   `json:"position" yaml:"position" mapstructure:"position"`
	Company          string   `json:"company" yaml:"company" mapstructure:"company"`
	Period           string   `json:"period,omitempty" yaml:"period,omitempty" mapstructure:"period"`
	Description      string   `json:"description,omitempty" yaml:"description,omitempty" mapstructure:"description"`
	Responsibilities []string `json:"responsibilities,omitempty" yaml:"responsibilities,omitempty" mapstructure:"responsibilities"`
}

// PortfolioEducation is one entry on the education timeline.
type PortfolioEducation struct {
	Degree      string `json:"degree" yaml:"degree" mapstructure:"degree"`
	Institution string `json:"institution" yaml:"institution" mapstructure:"institution"`
	Period      string `json:"period,omitempty" yaml:"period,omitempty" mapstructure:"period"`
	Description string `json:"description,omitempty" yaml:"description,omitempty" mapstructure:"description"`
	GPA         string `json:"gpa,omitempty" yaml:"gpa,omitempty" mapstructure:"gpa"`
}

// PortfolioProject is one card in the projects grid.
type PortfolioProject struct {
	Name         string   `json:"name" yaml:"name" mapstructure:"name"`
	Description  string   `json:"description,omitempty" yaml:"description,omitempty" mapstructure:"description"`
	Technologies []string `json:"technologies,omitempty" yaml:"technologies,omitempty" mapstructure:"technologies"`
	GitHubURL    string   `json:"github_url,omitempty" yaml:"github_url,omitempty" mapstructure:"github_url"`
	LiveURL      string   `json:"live_url,omitempty" yaml:"live_url,omitempty" mapstructure:"live_url"`
}

// Contact holds the portfolio contact links.
type Contact struct {
	Email    string `json:"email,omitempty" yaml:"email,omitempty" mapstructure:"email"`
	Phone    string `json:"phone,omitempty" yaml:"phone,omitempty" mapstructure:"phone"`
	LinkedIn string `json:"linkedin,omitempty" yaml:"linkedin,omitempty" mapstructure:"linkedin"`
	GitHub   string `json:"github,omitempty" yaml:"github,omitempty" mapstructure:"github"`
	Twitter  string `json:"twitter,omitempty" yaml:"twitter,omitempty" mapstructure:"twitter"`
}
