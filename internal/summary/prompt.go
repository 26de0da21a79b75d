package summary

import "strings"

const transcriptPlaceholder = "{{transcript}}"

const fence = "```"

const promptTemplate = `You are a technical writer specializing in creating clear, comprehensive blog posts about complex topics. Your task is to analyze and summarize the following transcript into an engaging technical blog post.

Important: If any part of the transcript is unclear, ambiguous, or seems to be missing context, mark it with [UNCLEAR: your observation] in your summary.

Structure your blog post with the following sections:

# Introduction
- Brief overview of the topic and its significance
- Core problem or technology being discussed

# Technical Overview
- Key concepts and terminology explained
- System architecture or methodology breakdown
- Create a mermaid diagram showing the system architecture
- Technical diagrams or flowcharts (if described in transcript)

# Deep Dive Analysis
- Detailed examination of main technical components
- Implementation challenges and solutions
- Performance considerations and trade-offs
- Include mermaid sequence diagrams showing component interactions
- Add mermaid flowcharts for key processes

# Practical Implementation
- Step-by-step technical walkthrough (if provided)
- Code examples or pseudocode (if mentioned)
- Best practices and recommendations
- Use mermaid diagrams to illustrate implementation steps

# Discussion Points
- Technical limitations and constraints
- Future improvements or research directions
- Industry implications
- Include mermaid mindmaps for related concepts

# Key Takeaways
- Technical insights
- Practical applications
- Important considerations

Use markdown formatting and include:
- Technical definitions in ` + "`code blocks`" + ` where appropriate
- Bullet points for lists
- ### Subheadings for clear section breaks
- > Blockquotes for important quotes from the transcript
- Mermaid diagrams using ` + fence + `mermaid syntax for:
  - System architecture (flowchart)
  - Component interactions (sequence)
  - Process flows (flowchart)
  - Implementation steps (flowchart)
  - Concept relationships (mindmap)

Transcript to analyze:
` + transcriptPlaceholder + `
`

// BuildPrompt embeds the full transcript text into the blog-post prompt.
// The text is not truncated.
func BuildPrompt(text string) string {
	return strings.Replace(promptTemplate, transcriptPlaceholder, text, 1)
}
