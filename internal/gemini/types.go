package gemini

// ProfessionalContext is a free-text classification of the subject's role.
type ProfessionalContext struct {
	Role      string `json:"role"`
	Industry  string `json:"industry"`
	Seniority string `json:"seniority"`
}

// CommunicationStyle captures tone and verbosity. Verbosity is one of
// "low", "medium", "high".
type CommunicationStyle struct {
	Tone      string `json:"tone"`
	Verbosity string `json:"verbosity"`
}

// DesignPreferences are inferred visual/UX leanings.
type DesignPreferences struct {
	VisualStyle string `json:"visualStyle"`
	UXPriority  string `json:"uxPriority"`
}

// ContentPreferences are inferred content leanings.
type ContentPreferences struct {
	RespondsTo []string `json:"respondsTo"`
	Avoids     []string `json:"avoids"`
}

// Analysis is the first-stage readout of a profile. It is derived per
// request and never persisted.
type Analysis struct {
	ProfessionalContext        ProfessionalContext `json:"professionalContext"`
	CommunicationStyle         CommunicationStyle  `json:"communicationStyle"`
	InferredDesignPreferences  DesignPreferences   `json:"inferredDesignPreferences"`
	InferredContentPreferences ContentPreferences  `json:"inferredContentPreferences"`
}

// DesignGuidance is actionable do/avoid advice. Both lists are required to
// be non-empty in a valid persona.
type DesignGuidance struct {
	Do    []string `json:"do"`
	Avoid []string `json:"avoid"`
}

// Persona is the behavioral/design-preference profile derived from an
// Analysis and a caller-supplied design brief.
type Persona struct {
	PersonaName         string              `json:"personaName"`
	Summary             string              `json:"summary"`
	ProfessionalContext ProfessionalContext `json:"professionalContext"`
	CommunicationStyle  CommunicationStyle  `json:"communicationStyle"`
	DesignBiases        DesignPreferences   `json:"designBiases"`
	ContentBiases       ContentPreferences  `json:"contentBiases"`
	BriefConflicts      []string            `json:"briefConflicts"`
	DesignGuidance      DesignGuidance      `json:"designGuidance"`
}
