package services

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/alimgiray/gitmentor/internal/models"
)

// outputRules is appended to every prompt; the reply is fed straight into a JSON decoder
const outputRules = `You MUST follow these rules strictly:
- Return ONLY valid JSON
- No markdown
- No code fences
- No explanations
- No extra text before or after the JSON object
- Use exactly the keys of the format above, no more and no less
- Speak directly to the user using "you" and "your"
- Do NOT refer to the user in third person`

type promptTemplate struct {
	persona    string
	schema     string
	guidelines []string
	dataLabel  string
}

var promptTemplates = map[models.Action]promptTemplate{
	models.ActionAnalyze: {
		persona: `You are a senior software engineer giving direct, honest feedback to the developer who owns this GitHub profile.

You are speaking TO the user, not about them.
This feedback will be read by the developer themselves.`,
		schema: `{
  "skillLevel": "beginner" | "intermediate" | "advanced",
  "currentReality": string,
  "whatYouAreDoingWell": string[],
  "whatIsHoldingYouBack": string[],
  "yourPotentialIfYouAct": string,
  "developerType": string
}`,
		guidelines: []string{
			"Be honest but human",
			"If the profile is empty or inactive, say it clearly but respectfully",
			"Explain consequences in a real-world way (how others perceive you)",
			"Avoid corporate, recruiter, or report-style language",
			"Sound like an experienced mentor talking to you directly",
		},
		dataLabel: "GitHub Profile (JSON)",
	},
	models.ActionSuggest: {
		persona: `You are a senior software engineer mentoring the developer who owns this GitHub profile.

Speak directly to the user.
Give advice that feels personal and actionable.`,
		schema: `{
  "focusSkills": string[],
  "projectIdeas": string[],
  "stopDoing": string[],
  "doubleDownOn": string[]
}`,
		guidelines: []string{
			"Make suggestions specifically for YOU based on this profile",
			"Avoid generic advice that could apply to anyone",
			"Be practical, not motivational",
		},
		dataLabel: "GitHub Profile (JSON)",
	},
	models.ActionImprove: {
		persona: `You are a senior software engineer reviewing YOUR repositories and engineering habits.

Speak directly to the user.
Assume the goal is to become job-ready and respected as an engineer.`,
		schema: `{
  "improvements": string[],
  "missingPractices": string[],
  "refactorSuggestions": string[]
}`,
		guidelines: []string{
			"Focus on code quality, structure, and real engineering habits",
			"Call out what YOU are missing clearly",
			`Avoid generic "best practices" talk`,
			"Be direct, not polite-for-the-sake-of-it",
		},
		dataLabel: "GitHub Profile (JSON)",
	},
	models.ActionRoast: {
		persona: `You are a blunt but fair senior software engineer giving a reality check to the developer who owns this GitHub profile.

Speak directly to the user using "you".
This is tough love, not personal attack.`,
		schema: `{
  "hardTruths": string[],
  "badSignalsYouAreSending": string[],
  "wakeUpCall": string
}`,
		guidelines: []string{
			"Use different analogies to roast the user",
			"Be savage and funny, not just plain analysis",
			"Be sharp, honest, and slightly uncomfortable",
			"No abuse",
			"Criticize choices and habits",
			"This should feel like something a brutally honest mentor would say to YOU",
		},
		dataLabel: "GitHub Profile (JSON)",
	},
	models.ActionJudge: {
		persona: `You are a strict but fair judge of engineering discipline, reading the most recent commits of the developer in front of you.

Speak directly to the user.
Base your verdict ONLY on the commit messages and dates below.`,
		schema: `{
  "verdict": "positive" | "neutral" | "negative",
  "commitDiscipline": string,
  "whatYourCommitsReveal": string,
  "redFlags": string[],
  "whatYouShouldFixImmediately": string[],
  "judgeClosingRemark": string
}`,
		guidelines: []string{
			"Judge message clarity, commit size hints, and consistency over time",
			"If there are no commits, say so and give a negative verdict",
			"Quote specific commit messages as evidence",
			"End with a short, memorable closing remark",
		},
		dataLabel: "Recent Commits (JSON)",
	},
}

// BuildPrompt renders the instruction for action, embedding profile as a single JSON block.
// The judge action embeds only the recent commits.
func BuildPrompt(action models.Action, profile *models.Profile) (string, error) {
	tmpl, ok := promptTemplates[action]
	if !ok {
		return "", &models.UnsupportedActionError{Action: string(action)}
	}
	if profile == nil {
		return "", &models.ValidationError{Field: "profile", Message: "profile is required"}
	}

	var payload interface{} = profile
	if action == models.ActionJudge {
		commits := profile.RecentCommits
		if commits == nil {
			commits = []models.ProfileCommit{}
		}
		payload = commits
	}

	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to serialize prompt data: %w", err)
	}

	var b strings.Builder
	b.WriteString(tmpl.persona)
	b.WriteString("\n\nReturn JSON in EXACTLY this format:\n")
	b.WriteString(tmpl.schema)
	b.WriteString("\n\nGuidelines:\n")
	for _, guideline := range tmpl.guidelines {
		b.WriteString("- ")
		b.WriteString(guideline)
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(outputRules)
	b.WriteString("\n\n")
	b.WriteString(tmpl.dataLabel)
	b.WriteString(":\n")
	b.Write(data)
	b.WriteString("\n")

	return b.String(), nil
}
