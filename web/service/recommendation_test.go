package service

import (
	"testing"

	"github.com/careerconnect/careerconnect/database/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecommend(t *testing.T) {
	svc := RecommendationService{}
	tests := []struct {
		name       string
		profile    model.Profile
		firstSkill string
		resources  []string
		careers    []string
	}{
		{
			name:       "empty profile",
			profile:    model.Profile{},
			firstSkill: "Start adding your skills to get AI-based guidance!",
			resources:  []string{"edX: Problem Solving & Critical Thinking", "LinkedIn Learning: Career Growth Strategies"},
			careers:    defaultCareerPaths,
		},
		{
			name:       "react and computer science",
			profile:    model.Profile{Skills: "React, CSS", Education: "Computer Science", Degree: "BTech"},
			firstSkill: "Explore advanced React patterns and state management (Redux/Zustand).",
			resources:  []string{"Coursera: System Design & Architecture", "YouTube: JavaScript Mastery Projects"},
			careers:    defaultCareerPaths,
		},
		{
			name:       "cloud security",
			profile:    model.Profile{Skills: "cloud security"},
			firstSkill: "Practice penetration testing on TryHackMe or HackTheBox.",
			resources:  []string{"edX: Problem Solving & Critical Thinking", "LinkedIn Learning: Career Growth Strategies"},
			careers:    []string{"Cloud Engineer", "DevOps Specialist", "System Administrator"},
		},
		{
			name:       "cyber only",
			profile:    model.Profile{Skills: "Cyber forensics"},
			firstSkill: "Practice penetration testing on TryHackMe or HackTheBox.",
			resources:  []string{"edX: Problem Solving & Critical Thinking", "LinkedIn Learning: Career Growth Strategies"},
			careers:    []string{"Security Analyst", "Network Specialist", "Ethical Hacker"},
		},
		{
			name:       "unmatched skills",
			profile:    model.Profile{Skills: "Painting"},
			firstSkill: defaultSkillItems[0],
			resources:  []string{"edX: Problem Solving & Critical Thinking", "LinkedIn Learning: Career Growth Strategies"},
			careers:    defaultCareerPaths,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := svc.Recommend(tt.profile)
			require.Len(t, r.Sections, 4)
			assert.Equal(t, tt.firstSkill, r.Sections[0].Items[0])
			assert.Equal(t, tt.resources, r.Sections[1].Items[:2])
			assert.Equal(t, tt.careers, r.Sections[2].Items)
			assert.Len(t, r.Sections[3].Items, 3)
		})
	}
}

func TestRecommendGreeting(t *testing.T) {
	svc := RecommendationService{}
	assert.Contains(t, svc.Recommend(model.Profile{}).Sections[0].Description, "Hi there!")
	r := svc.Recommend(model.Profile{FullName: "Ann", Skills: "Go"})
	assert.Contains(t, r.Sections[0].Description, "Hi Ann!")
	assert.Contains(t, r.Insight, "Go")
}
