package gateway

import (
	"fmt"
	"strings"

	"github.com/docsmith/docsmith/internal/domain/document"
)

// Completion settings per operation. Generation uses the agent's own
// temperature and token budget; the judgment-style operations run cold.
const (
	validationTemperature  = 0.1
	validationMaxTokens    = 1000
	extractionTemperature  = 0.1
	extractionMaxTokens    = 800
	improvementTemperature = 0.3
	improvementMaxTokens   = 1000
	qualityTemperature     = 0.1
	qualityMaxTokens       = 800

	defaultGenerationMaxTokens = 4000
	qualityContentLimit        = 1500
)

const validationSystemPrompt = "You are an MVP specialist who validates prompts generously. " +
	"Approve prompts that have potential, even if they are not perfect. " +
	"An MVP is minimal and functional by nature."

const extractionSystemPrompt = "You are an expert in software project analysis."

const generationSystemPrompt = "You are an expert technical writer. Generate clear, " +
	"well-structured, and informative documentation in Markdown format."

const improvementSystemPrompt = "You are an expert at improving prompts for project documentation generation."

const qualitySystemPrompt = "You are an expert in technical documentation quality analysis."

func validationPrompt(prompt string) string {
	return fmt.Sprintf(`You are an expert in MVPs (Minimum Viable Products). Decide whether the following prompt contains ENOUGH information to generate a basic MVP.

VALIDATION CRITERIA:
- The prompt should mention at least one kind of application (web, mobile, API, etc.)
- It should carry a clear central idea of what will be built
- It does not need every technical detail; an MVP is minimal by nature
- Be GENEROUS: prefer approving prompts that show potential

PROMPT: %s

Reply ONLY with valid JSON:
{
    "is_valid": true/false,
    "confidence": 0.0-1.0,
    "project_type": "identified project type",
    "issues": ["critical problems only"],
    "suggestions": ["suggestions only if really needed"]
}`, prompt)
}

func extractionPrompt(prompt string) string {
	return fmt.Sprintf(`Extract the project metadata from the following prompt.

Prompt: %s

Return JSON with these fields:
{
    "project_name": "name of the project",
    "project_type": "kind of project (web_app, api, mobile_app, etc.)",
    "technologies": ["list", "of", "technologies"],
    "description": "project description",
    "target_audience": "target audience (optional)",
    "complexity_level": "simple, medium or complex",
    "estimated_duration": "estimated duration (optional)"
}`, prompt)
}

// mvpTopicSections are the fixed top-level sections required in topic-outline
// MVP mode. Exposed to tests through the built prompt text.
var mvpTopicSections = []string{
	"# 1. Project Overview",
	"# 2. Core Features",
	"# 3. Technical Architecture",
	"# 4. User Interface and Experience",
	"# 5. Implementation Plan",
	"# 6. Technical Considerations",
}

// isTopicOutlineMVP reports whether the prompt asks for a topic-outline MVP.
// The trigger is the literal pair "mvp" and "tópicos" (callers write the
// outline request in Portuguese).
func isTopicOutlineMVP(prompt string) bool {
	lower := strings.ToLower(prompt)
	return strings.Contains(lower, "mvp") && strings.Contains(lower, "tópicos")
}

func generationPrompt(prompt string, t document.Type, meta document.ProjectMetadata, customInstructions []string) string {
	techs := "to be defined"
	if len(meta.Technologies) > 0 {
		techs = strings.Join(meta.Technologies, ", ")
	}

	var b strings.Builder
	if isTopicOutlineMVP(prompt) {
		fmt.Fprintf(&b, `Generate a complete and detailed MVP (Minimum Viable Product) as a topic outline based on the following prompt:

%s

Project information:
- Name: %s
- Description: %s
- Type: %s
- Technologies: %s
- Complexity: %s
- Estimated duration: %s

REQUIRED STRUCTURE FOR THE TOPIC OUTLINE:

%s
- Main objective
- Problem it solves
- Target audience
- Value proposition

%s
- Detailed list of essential features
- Main user flows
- Priority use cases

%s
- Detailed technology stack
- Database structure
- Required APIs and endpoints
- External integrations

%s
- Main screens
- Navigation flows
- Essential UI components

%s
- Development timeline
- Feature prioritization
- Milestones and deliverables

%s
- Security
- Performance
- Scalability
- Maintainability

Generate EXTENSIVE and DETAILED content for every section (at least 2000 words in total).`,
			prompt, meta.ProjectName, meta.Description, meta.ProjectType, techs,
			meta.ComplexityLevel, meta.EstimatedDuration,
			mvpTopicSections[0], mvpTopicSections[1], mvpTopicSections[2],
			mvpTopicSections[3], mvpTopicSections[4], mvpTopicSections[5])
	} else {
		fmt.Fprintf(&b, `Generate a %s document based on the following prompt:

%s

Project information:
- Name: %s
- Description: %s
- Type: %s
- Technologies: %s
- Complexity: %s
- Estimated duration: %s

INSTRUCTIONS:
- Use appropriate Markdown formatting
- Include well-organized sections
- Add practical examples where relevant
- Keep the language clear and professional`,
			t, prompt, meta.ProjectName, meta.Description, meta.ProjectType, techs,
			meta.ComplexityLevel, meta.EstimatedDuration)
	}

	if len(customInstructions) > 0 {
		b.WriteString("\n\nCUSTOM INSTRUCTIONS:\n")
		for _, inst := range customInstructions {
			b.WriteString("- " + inst + "\n")
		}
	}
	return b.String()
}

func generationSystemMessage(agentInstructions []string, topicOutline bool) string {
	msg := generationSystemPrompt
	if len(agentInstructions) > 0 {
		msg += "\n\nAGENT-SPECIFIC INSTRUCTIONS:\n"
		for _, inst := range agentInstructions {
			msg += "- " + inst + "\n"
		}
	}
	if topicOutline {
		msg += "\n\nFOR THE TOPIC-OUTLINE MVP:\n" +
			"- Organize the content into clear sections with markdown headings\n" +
			"- Use lists and sub-topics to structure the ideas\n" +
			"- Include technical and functional detail\n" +
			"- Stay focused on a complete, detailed MVP\n" +
			"- Generate extensive, informative content (at least 2000 words)"
	}
	return msg
}

func improvementPrompt(prompt string, validation document.ValidationResult) string {
	return fmt.Sprintf(`Improve the following prompt for project documentation generation:

Original prompt: %s

Identified problems:
%s

Suggestions:
%s

Produce an improved prompt that is clearer and more complete.`,
		prompt,
		strings.Join(validation.MissingInformation, ", "),
		strings.Join(validation.Suggestions, ", "))
}

func qualityPrompt(content string) string {
	if r := []rune(content); len(r) > qualityContentLimit {
		content = string(r[:qualityContentLimit]) + "..."
	}
	return fmt.Sprintf(`Analyze the quality of the following project document:

%s

Rate these aspects on a 1-10 scale:
1. Clarity and organization
2. Completeness of information
3. Technical quality
4. Practical usefulness

Return the analysis as JSON with scores and comments:
{
    "overall_score": 0.0,
    "clarity": 0.0,
    "completeness": 0.0,
    "technical_quality": 0.0,
    "usefulness": 0.0,
    "comments": "detailed comments"
}`, content)
}
