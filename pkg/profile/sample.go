package profile

// SamplePortfolio returns a filled-in portfolio for previews and smoke tests.
func SamplePortfolio() (p Portfolio) {
	p = Portfolio{
		PersonalInfo: PersonalInfo{
			Name:         "John Doe",
			Role:         "Full Stack Developer",
			Introduction: "I build scalable web applications and the teams that ship them.",
			Location:     "San Francisco, CA",
		},
		AboutMe: AboutMe{
			Biography: "Passionate developer with 5+ years of experience in building scalable web applications. Specialized in Python, JavaScript, and cloud technologies.",
			Skills: []Skill{
				{Name: "Python", Level: "Expert"},
				{Name: "JavaScript", Level: "Expert"},
				{Name: "React", Level: "Advanced"},
				{Name: "Node.js", Level: "Advanced"},
				{Name: "AWS", Level: "Intermediate"},
				{Name: "Docker", Level: "Intermediate"},
			},
		},
		Education: []PortfolioEducation{
			{
				Degree:      "Bachelor of Science in Computer Science",
				Institution: "University of Technology",
				Period:      "2015-2019",
				Description: "Graduated with honors. Focused on software engineering and algorithms.",
				GPA:         "3.8",
			},
			{
				Degree:      "Master of Science in Data Science",
				Institution: "Tech Institute",
				Period:      "2019-2021",
				Description: "Specialized in machine learning and big data technologies.",
				GPA:         "3.9",
			},
		},
		Experience: []PortfolioExperience{
			{
				Position:    "Senior Developer",
				Company:     "Tech Corp",
				Period:      "2020-Present",
				Description: "Leading development of enterprise-scale applications",
				Responsibilities: []string{
					"Team leadership and mentorship",
					"Architecture design and implementation",
					"Code reviews and quality assurance",
					"Agile project management",
				},
			},
			{
				Position:    "Software Engineer",
				Company:     "Startup Inc",
				Period:      "2019-2020",
				Description: "Full-stack development for early-stage startup",
				Responsibilities: []string{
					"Frontend development with React",
					"Backend development with Node.js",
					"Database design and optimization",
					"DevOps and deployment",
				},
			},
		},
		Projects: []PortfolioProject{
			{
				Name:         "E-commerce Platform",
				Description:  "Full-stack e-commerce solution with payment integration",
				Technologies: []string{"React", "Node.js", "MongoDB", "Stripe"},
				GitHubURL:    "https://github.com/johndoe/ecommerce",
				LiveURL:      "https://ecommerce.example.com",
			},
			{
				Name:         "Task Management App",
				Description:  "Collaborative task management application",
				Technologies: []string{"Vue.js", "Python", "PostgreSQL", "Docker"},
				GitHubURL:    "https://github.com/johndoe/taskmanager",
				LiveURL:      "https://taskmanager.example.com",
			},
		},
		Contact: Contact{
			Email:    "john.doe@example.com",
			Phone:    "+1-555-0123",
			LinkedIn: "https://linkedin.com/in/johndoe",
			GitHub:   "https://github.com/johndoe",
			Twitter:  "https://twitter.com/johndoe",
		},
	}

	return p
}

// SampleResume returns a filled-in resume for previews and smoke tests.
func SampleResume() (r Resume) {
	r = Resume{
		PersonalInfo: ResumeContact{
			Name:     "John Doe",
			Role:     "Full Stack Developer",
			Email:    "john.doe@example.com",
			Phone:    "+1-555-0123",
			Location: "San Francisco, CA",
			LinkedIn: "https://linkedin.com/in/johndoe",
			GitHub:   "https://github.com/johndoe",
		},
		Summary: "Full stack developer with 5+ years of experience building scalable web applications on cloud infrastructure.",
		AreaOfExpertise: []string{
			"Web Application Architecture",
			"Cloud Infrastructure",
			"API Design",
			"Team Leadership",
		},
		KeyAchievements: []string{
			"Cut checkout latency by 40% through caching and query tuning",
			"Grew the engineering team from 3 to 12",
		},
		Experience: []ResumeExperience{
			{
				Title:       "Senior Developer",
				Company:     "Tech Corp",
				Location:    "San Francisco, CA",
				Years:       "2020-Present",
				Description: "Leading development of enterprise-scale applications",
				Details: []string{
					"Team leadership and mentorship",
					"Architecture design and implementation",
				},
			},
			{
				Title:       "Software Engineer",
				Company:     "Startup Inc",
				StartDate:   "2019",
				EndDate:     "2020",
				Description: "Frontend development with React\nBackend development with Node.js",
			},
		},
		Education: []ResumeEducation{
			{
				Degree:      "Bachelor of Science in Computer Science",
				Institution: "University of Technology",
				Years:       "2015-2019",
				GPA:         "3.8",
			},
		},
		Projects: []ResumeProject{
			{
				Name:         "E-commerce Platform",
				Role:         "Lead Developer",
				Description:  "Full-stack e-commerce solution with payment integration",
				Technologies: []string{"React", "Node.js", "MongoDB", "Stripe"},
				Link:         "https://github.com/johndoe/ecommerce",
				Period:       "2021",
			},
		},
		Additional: []string{
			"Languages: English, Spanish",
		},
	}

	return r
}
