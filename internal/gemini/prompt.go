package gemini

import (
	"encoding/json"
	"fmt"
	"strings"

	"personaforge/internal/profile"
)

// BuildAnalysisPrompt asks the model to classify a scraped profile into the
// Analysis shape. The profile is embedded as JSON so list fields survive
// verbatim; RawMarkdown is dropped to keep the prompt within budget.
func BuildAnalysisPrompt(p profile.Profile) string {
	compact := p
	compact.RawMarkdown = ""
	profileJSON, _ := json.MarshalIndent(compact, "", "  ")

	return fmt.Sprintf(`You are an expert at reading professional profiles and inferring how the person communicates and what design qualities they respond to.

PROFILE:
%s

Analyze this profile and respond with ONLY a JSON object in exactly this shape, no markdown fences, no commentary:
{
  "professionalContext": {
    "role": "their primary role",
    "industry": "their industry",
    "seniority": "junior | mid | senior | executive"
  },
  "communicationStyle": {
    "tone": "short free-text description of their tone",
    "verbosity": "low | medium | high"
  },
  "inferredDesignPreferences": {
    "visualStyle": "visual style they likely prefer",
    "uxPriority": "the UX quality they would prioritize"
  },
  "inferredContentPreferences": {
    "respondsTo": ["content qualities they respond to"],
    "avoids": ["content qualities they avoid"]
  }
}`, profileJSON)
}

// BuildPersonaPrompt asks the model to synthesize a persona from the
// analysis and the caller's design brief, surfacing conflicts between the
// inferred preferences and what the brief asks for.
func BuildPersonaPrompt(a Analysis, designBrief string) string {
	analysisJSON, _ := json.MarshalIndent(a, "", "  ")

	return fmt.Sprintf(`You are a design strategist. Combine the profile analysis below with the design brief to produce a working persona for design decisions.

PROFILE ANALYSIS:
%s

DESIGN BRIEF:
%s

Where the brief pulls against the inferred preferences, name the tension in briefConflicts (empty array if none). designGuidance.do and designGuidance.avoid must each contain at least two concrete, actionable items.

Respond with ONLY a JSON object in exactly this shape, no markdown fences, no commentary:
{
  "personaName": "a short memorable name for this persona",
  "summary": "2-3 sentence summary of who this persona is",
  "professionalContext": {"role": "...", "industry": "...", "seniority": "..."},
  "communicationStyle": {"tone": "...", "verbosity": "low | medium | high"},
  "designBiases": {"visualStyle": "...", "uxPriority": "..."},
  "contentBiases": {"respondsTo": ["..."], "avoids": ["..."]},
  "briefConflicts": ["..."],
  "designGuidance": {"do": ["..."], "avoid": ["..."]}
}`, analysisJSON, designBrief)
}

// BuildScriptPrompt asks the model for the audio briefing narration:
// second-person voice, 110-150 words, about 45-60 seconds spoken.
func BuildScriptPrompt(p Persona) string {
	var conflicts string
	if len(p.BriefConflicts) > 0 {
		conflicts = "Known tensions with the brief:\n- " + strings.Join(p.BriefConflicts, "\n- ")
	}

	return fmt.Sprintf(`Write a spoken briefing about the design persona "%s" for the designer who will use it.

PERSONA SUMMARY:
%s

Role: %s (%s, %s)
Tone: %s, verbosity %s
Visual style: %s
UX priority: %s
Responds to: %s
Avoids: %s
%s

Requirements:
- Address the listener directly in second person ("you are designing for...").
- 110 to 150 words, natural spoken rhythm, roughly 45-60 seconds read aloud.
- Plain text only: no headings, no bullet points, no stage directions.`,
		p.PersonaName,
		p.Summary,
		p.ProfessionalContext.Role,
		p.ProfessionalContext.Industry,
		p.ProfessionalContext.Seniority,
		p.CommunicationStyle.Tone,
		p.CommunicationStyle.Verbosity,
		p.DesignBiases.VisualStyle,
		p.DesignBiases.UXPriority,
		strings.Join(p.ContentBiases.RespondsTo, ", "),
		strings.Join(p.ContentBiases.Avoids, ", "),
		conflicts,
	)
}
