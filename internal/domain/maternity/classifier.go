package maternity

import (
	"strconv"
	"strings"
)

// Thresholds holds the tunable bands and keyword sets the classifier works
// from. Values come from configuration; DefaultThresholds documents the
// shipped defaults.
type Thresholds struct {
	// Hypertensive band. A reading at or above either bound is critical.
	SystolicCritical  int
	DiastolicCritical int

	// Borderline band. At or above either bound (but below the critical
	// band) needs attention.
	SystolicBorderline  int
	DiastolicBorderline int

	// Absolute weight change (kg) versus the previous record that is
	// treated as critical.
	WeightDeltaCritical float64

	// Ages outside [SafeAgeMin, SafeAgeMax] are a structural high-risk
	// factor.
	SafeAgeMin int
	SafeAgeMax int

	// Symptom keywords, matched case-insensitively as substrings.
	CriticalSymptoms []string
	ModerateSymptoms []string

	// Prior-complication markers searched for in medical history entries.
	ComplicationMarkers []string
}

// DefaultThresholds returns the shipped classifier configuration. The blood
// pressure bands follow the ACOG hypertension staging (140/90 severe, 130/85
// elevated).
func DefaultThresholds() Thresholds {
	return Thresholds{
		SystolicCritical:    140,
		DiastolicCritical:   90,
		SystolicBorderline:  130,
		DiastolicBorderline: 85,
		WeightDeltaCritical: 4.0,
		SafeAgeMin:          18,
		SafeAgeMax:          35,
		CriticalSymptoms: []string{
			"severe bleeding",
			"severe headache",
			"blurred vision",
			"seizure",
			"severe abdominal pain",
		},
		ModerateSymptoms: []string{
			"headache",
			"swelling",
			"dizziness",
			"persistent nausea",
			"reduced fetal movement",
		},
		ComplicationMarkers: []string{
			"preeclampsia",
			"eclampsia",
			"gestational diabetes",
			"hypertension",
			"miscarriage",
			"preterm",
		},
	}
}

// Classifier derives a health status and high-risk flag from a profile and
// its most recent readings. It holds no mutable state and never fails:
// unparseable input degrades to needs-attention rather than masking risk.
type Classifier struct {
	t Thresholds
}

func NewClassifier(t Thresholds) *Classifier {
	return &Classifier{t: t}
}

// Classify evaluates the rules in priority order (critical dominates) against
// the latest record; previous is consulted only for the weight-change rule
// and may be nil. A profile with no records at all is normal and not
// high-risk: missing data is not a danger signal.
func (c *Classifier) Classify(p *MotherProfile, latest, previous *HealthRecord) (HealthStatus, bool) {
	if latest == nil {
		return StatusNormal, false
	}

	status := c.status(p, latest, previous)
	highRisk := status == StatusCritical || c.structuralHighRisk(p)
	return status, highRisk
}

func (c *Classifier) status(p *MotherProfile, latest, previous *HealthRecord) HealthStatus {
	sys, dia, parsed := ParseBloodPressure(latest.BloodPressure)

	if parsed && (sys >= c.t.SystolicCritical || dia >= c.t.DiastolicCritical) {
		return StatusCritical
	}
	if matchAny(latest.Symptoms, c.t.CriticalSymptoms) {
		return StatusCritical
	}
	if previous != nil && abs(latest.Weight-previous.Weight) > c.t.WeightDeltaCritical {
		return StatusCritical
	}

	if parsed && (sys >= c.t.SystolicBorderline || dia >= c.t.DiastolicBorderline) {
		return StatusNeedsAttention
	}
	if matchAny(latest.Symptoms, c.t.ModerateSymptoms) {
		return StatusNeedsAttention
	}
	if matchAny(p.MedicalHistory, c.t.ComplicationMarkers) {
		return StatusNeedsAttention
	}
	// A reading was supplied but could not be parsed: flag it rather than
	// silently reporting normal.
	if !parsed && strings.TrimSpace(latest.BloodPressure) != "" {
		return StatusNeedsAttention
	}

	return StatusNormal
}

// structuralHighRisk checks factors independent of any single reading: age
// outside the safe band or a history of repeated complications.
func (c *Classifier) structuralHighRisk(p *MotherProfile) bool {
	if p.Age < c.t.SafeAgeMin || p.Age > c.t.SafeAgeMax {
		return true
	}
	count := 0
	for _, marker := range c.t.ComplicationMarkers {
		for _, entry := range p.MedicalHistory {
			if containsFold(entry, marker) {
				count++
				break
			}
		}
	}
	return count >= 2
}

// ParseBloodPressure splits a "systolic/diastolic" reading. It accepts
// surrounding whitespace and a trailing unit suffix (e.g. "120/80 mmHg").
func ParseBloodPressure(s string) (systolic, diastolic int, ok bool) {
	parts := strings.SplitN(strings.TrimSpace(s), "/", 2)
	if len(parts) != 2 {
		return 0, 0, false
	}
	sysStr := strings.TrimSpace(parts[0])
	diaStr := strings.TrimSpace(parts[1])
	if i := strings.IndexByte(diaStr, ' '); i >= 0 {
		// Trailing unit, e.g. "120/80 mmHg".
		diaStr = diaStr[:i]
	}
	sys, err := strconv.Atoi(sysStr)
	if err != nil || sys <= 0 {
		return 0, 0, false
	}
	dia, err := strconv.Atoi(diaStr)
	if err != nil || dia <= 0 {
		return 0, 0, false
	}
	return sys, dia, true
}

func matchAny(entries, keywords []string) bool {
	for _, entry := range entries {
		for _, kw := range keywords {
			if containsFold(entry, kw) {
				return true
			}
		}
	}
	return false
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}
