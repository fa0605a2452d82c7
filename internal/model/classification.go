package model

// SOPDescriptor describes the standard operating procedure attached to
// a resolved category: the ordered process steps and the turn-around
// time target for the whole procedure.
type SOPDescriptor struct {
	Name     string
	Steps    []string
	TATHours float64
}

// GenericSOP is substituted whenever no descriptor exists for a
// resolved category path, so classification never fails on a missing
// procedure.
func GenericSOP() SOPDescriptor {
	return SOPDescriptor{
		Name:     "Standard Procedure",
		Steps:    []string{"Follow standard procedure"},
		TATHours: 72,
	}
}

// ClassificationResult is the read-only output of the classifier. It is
// recomputed fresh on every call and never cached across content
// changes.
type ClassificationResult struct {
	Scores       map[string]int
	MatchedTier  string
	CategoryPath []string
	SOP          SOPDescriptor
	Stage        int
}

// Category returns the leaf category name, or empty for a result with
// no path.
func (r ClassificationResult) Category() string {
	if len(r.CategoryPath) == 0 {
		return ""
	}
	return r.CategoryPath[len(r.CategoryPath)-1]
}

// TopLevel returns the root taxonomy node of the category path.
func (r ClassificationResult) TopLevel() string {
	if len(r.CategoryPath) == 0 {
		return ""
	}
	return r.CategoryPath[0]
}
