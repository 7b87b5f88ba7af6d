package question

// PublicRegion is a hotspot region without its correctness flag or feedback.
type PublicRegion struct {
	ID    string  `json:"id"`
	Label string  `json:"label"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
}

// PublicQuestion is the payload delivered to clients; it never carries answers.
type PublicQuestion struct {
	ID         string         `json:"id"`
	Kind       Kind           `json:"kind"`
	Prompt     string         `json:"prompt"`
	Options    []string       `json:"options,omitempty"`
	Regions    []PublicRegion `json:"regions,omitempty"`
	Draggables []string       `json:"draggables,omitempty"`
	Targets    []string       `json:"targets,omitempty"`
}

// Public strips answer data from q.
func Public(q Question) PublicQuestion {
	out := PublicQuestion{
		ID:     q.QuestionID(),
		Kind:   q.QuestionKind(),
		Prompt: q.QuestionPrompt(),
	}
	switch v := q.(type) {
	case MultipleChoice:
		out.Options = append([]string(nil), v.Options...)
	case Hotspot:
		out.Regions = make([]PublicRegion, len(v.Regions))
		for i, r := range v.Regions {
			out.Regions[i] = PublicRegion{ID: r.ID, Label: r.Label, X: r.X, Y: r.Y}
		}
	case DragDrop:
		out.Draggables = append([]string(nil), v.Draggables...)
		out.Targets = make([]string, len(v.Targets))
		for i, t := range v.Targets {
			out.Targets[i] = t.Label
		}
	}
	return out
}
