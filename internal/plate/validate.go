package plate

import "fmt"

// Validation statuses and match types
const (
	StatusPass = "PASS"
	StatusFail = "FAIL"

	MatchExact = "exact"
	MatchFuzzy = "fuzzy"
)

// DefaultConfidenceThreshold is the minimum OCR confidence a detection
// needs before any matching is attempted
const DefaultConfidenceThreshold = 0.2

// Result is the verdict for a single detection. It is created fresh per
// detection and never mutated after return.
//
// Invariants: MatchScore is 1.0 iff MatchType is "exact"; Match is non-nil
// iff MatchType is non-empty; a PASS always carries a reason naming the
// rule that fired.
type Result struct {
	DetectedPlate string  `json:"detected_plate"`
	Confidence    float64 `json:"confidence"`
	Status        string  `json:"validation_status"`
	Reason        string  `json:"validation_reason"`
	Match         *Record `json:"database_match,omitempty"`
	MatchType     string  `json:"match_type,omitempty"`
	MatchScore    float64 `json:"match_score"`
}

// Pass reports whether the result is a PASS
func (r Result) Pass() bool {
	return r.Status == StatusPass
}

// Policy decides whether a detected text is a plausible license plate.
// Two implementations exist: RegistryPolicy when an authoritative plate
// registry is available, and HeuristicPolicy when only a province name
// list is. Validation never fails: every detection yields a Result.
type Policy interface {
	Validate(text string, confidence float64) Result
}

// RegistryPolicy validates detections against the plate registry
type RegistryPolicy struct {
	Registry            *Registry
	ConfidenceThreshold float64
	FuzzyThreshold      float64
}

// NewRegistryPolicy creates a registry-backed policy with the default
// thresholds
func NewRegistryPolicy(registry *Registry) *RegistryPolicy {
	return &RegistryPolicy{
		Registry:            registry,
		ConfidenceThreshold: DefaultConfidenceThreshold,
		FuzzyThreshold:      DefaultFuzzyThreshold,
	}
}

// Validate applies confidence gating, then exact, then fuzzy matching
func (p *RegistryPolicy) Validate(text string, confidence float64) Result {
	result := Result{
		DetectedPlate: text,
		Confidence:    confidence,
		Status:        StatusFail,
	}

	if confidence < p.ConfidenceThreshold {
		result.Reason = fmt.Sprintf("Low confidence: %.3f < %v", confidence, p.ConfidenceThreshold)
		return result
	}

	if rec := p.Registry.ExactMatch(text); rec != nil {
		result.Status = StatusPass
		result.Reason = "Exact match in database"
		result.Match = rec
		result.MatchType = MatchExact
		result.MatchScore = 1.0
		return result
	}

	if rec, score := p.Registry.FuzzyMatch(text, p.FuzzyThreshold); rec != nil {
		result.Status = StatusPass
		result.Reason = fmt.Sprintf("Fuzzy match in database (similarity: %.2f)", score)
		result.Match = rec
		result.MatchType = MatchFuzzy
		result.MatchScore = score
		return result
	}

	result.Reason = "No match found in database"
	return result
}

// HeuristicPolicy validates detections by plate format and province names.
// It is deliberately permissive: beyond the confidence gate and the
// no-Thai-no-digits rejection, every path resolves to PASS. This is the
// documented fallback behavior for running without a registry.
type HeuristicPolicy struct {
	Provinces           *ProvinceList
	ConfidenceThreshold float64
	FuzzyThreshold      float64
}

// NewHeuristicPolicy creates a province-list policy with the default
// thresholds
func NewHeuristicPolicy(provinces *ProvinceList) *HeuristicPolicy {
	return &HeuristicPolicy{
		Provinces:           provinces,
		ConfidenceThreshold: DefaultConfidenceThreshold,
		FuzzyThreshold:      DefaultFuzzyThreshold,
	}
}

// Validate applies the format/province heuristics in order
func (p *HeuristicPolicy) Validate(text string, confidence float64) Result {
	result := Result{
		DetectedPlate: text,
		Confidence:    confidence,
		Status:        StatusFail,
	}

	// Step 1: confidence gate
	if confidence < p.ConfidenceThreshold {
		result.Reason = fmt.Sprintf("Low confidence: %.3f < %v", confidence, p.ConfidenceThreshold)
		return result
	}

	// Step 2: extract plate components
	components := ExtractComponents(text)

	// Step 3: reject text with neither Thai letters nor digits
	if !components.HasThai && !components.HasNumbers {
		result.Reason = "Invalid format: No Thai letters or numbers found"
		return result
	}

	// Step 4: any Thai run matching a province is a pass
	for _, thaiPart := range components.ThaiLetters {
		if ok, reason := p.Provinces.Match(thaiPart, p.FuzzyThreshold); ok {
			result.Status = StatusPass
			result.Reason = fmt.Sprintf("Valid license plate: %s", reason)
			return result
		}
	}

	// Step 5: Thai letters plus numbers look like a plate even without a
	// province hit
	if components.HasThai && components.HasNumbers {
		result.Status = StatusPass
		result.Reason = fmt.Sprintf("Valid format: Thai letters + numbers (confidence: %.3f)", confidence)
		return result
	}

	// Step 6: numbers only, possibly the license number fragment
	if components.HasNumbers && !components.HasThai {
		result.Status = StatusPass
		result.Reason = fmt.Sprintf("License number: %v (confidence: %.3f)", components.Numbers, confidence)
		return result
	}

	// Step 7: default to confidence-based acceptance
	result.Status = StatusPass
	result.Reason = fmt.Sprintf("High confidence: %.3f >= %v", confidence, p.ConfidenceThreshold)
	return result
}
