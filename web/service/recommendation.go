package service

import (
	"strings"

	"github.com/careerconnect/careerconnect/database/model"
)

// RecommendationSection is one titled block of suggestions.
type RecommendationSection struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Items       []string `json:"items"`
}

type Recommendations struct {
	Sections []RecommendationSection `json:"sections"`
	Insight  string                  `json:"insight"`
}

type RecommendationService struct{}

type keywordRule struct {
	keywords []string
	items    []string
}

var skillRules = []keywordRule{
	{
		keywords: []string{"react", "javascript"},
		items: []string{
			"Explore advanced React patterns and state management (Redux/Zustand).",
			"Learn backend integration with Node.js or Express.",
			"Build a portfolio using MERN stack projects.",
		},
	},
	{
		keywords: []string{"python", "data"},
		items: []string{
			"Focus on Python libraries like Pandas and NumPy.",
			"Try basic Machine Learning using Scikit-learn.",
			"Build data visualization dashboards using Plotly or Tableau.",
		},
	},
	{
		keywords: []string{"cyber", "security"},
		items: []string{
			"Practice penetration testing on TryHackMe or HackTheBox.",
			"Learn about network protocols and security tools.",
			"Get familiar with OWASP Top 10 vulnerabilities.",
		},
	},
	{
		keywords: []string{"cloud"},
		items: []string{
			"Earn AWS Certified Cloud Practitioner certification.",
			"Learn about serverless computing and Docker containers.",
			"Practice deploying apps on AWS or Azure.",
		},
	},
}

var defaultSkillItems = []string{
	"Keep upgrading your skills: try learning a new programming language.",
	"Work on real-world projects to strengthen your resume.",
	"Stay consistent and build your GitHub profile.",
}

// Career paths are checked in order; cloud wins over cyber.
var careerRules = []keywordRule{
	{keywords: []string{"cloud"}, items: []string{"Cloud Engineer", "DevOps Specialist", "System Administrator"}},
	{keywords: []string{"cyber"}, items: []string{"Security Analyst", "Network Specialist", "Ethical Hacker"}},
}

var defaultCareerPaths = []string{"Frontend Developer", "Backend Developer", "Technical Associate"}

var learningPlan = []string{
	"Month 1: Revise your basics and improve problem-solving.",
	"Month 2: Deep dive into a specialization (Web / Cloud / Security).",
	"Month 3: Build a complete project and upload on GitHub.",
}

func matchRule(text string, rules []keywordRule, fallback []string) []string {
	lower := strings.ToLower(text)
	for _, r := range rules {
		for _, kw := range r.keywords {
			if strings.Contains(lower, kw) {
				return append([]string(nil), r.items...)
			}
		}
	}
	return append([]string(nil), fallback...)
}

// Recommend builds keyword-matched guidance from a profile. It is a pure
// function of the profile's skills, education, degree and name.
func (s *RecommendationService) Recommend(p model.Profile) Recommendations {
	name := p.FullName
	if name == "" {
		name = "there"
	}

	var skillItems []string
	if strings.TrimSpace(p.Skills) == "" {
		skillItems = []string{"Start adding your skills to get AI-based guidance!"}
	} else {
		skillItems = matchRule(p.Skills, skillRules, defaultSkillItems)
	}

	education := "edX: Problem Solving & Critical Thinking"
	if strings.Contains(strings.ToLower(p.Education), "computer") {
		education = "Coursera: System Design & Architecture"
	}
	degree := "LinkedIn Learning: Career Growth Strategies"
	if strings.Contains(strings.ToLower(p.Degree), "btech") {
		degree = "YouTube: JavaScript Mastery Projects"
	}

	focus := p.Skills
	if strings.TrimSpace(focus) == "" {
		focus = "technology and adaptability"
	}

	return Recommendations{
		Sections: []RecommendationSection{
			{
				Title:       "Personalized Skill Enhancement",
				Description: "Hi " + name + "! Based on your skills, here's what you can focus on next:",
				Items:       skillItems,
			},
			{
				Title:       "Recommended Learning Resources",
				Description: "Here are some AI-picked resources to match your background:",
				Items:       []string{education, degree, "roadmap.sh: structured learning paths for developers"},
			},
			{
				Title:       "Suggested Career Paths",
				Description: "AI recommends exploring these job paths based on your data:",
				Items:       matchRule(p.Skills, careerRules, defaultCareerPaths),
			},
			{
				Title:       "Next 3-Month Learning Plan",
				Description: "Here's how to grow step-by-step:",
				Items:       append([]string(nil), learningPlan...),
			},
		},
		Insight: "Individuals with skills in " + focus + " will see rapid career opportunities. Stay consistent, keep learning, and aim high!",
	}
}
