package chatbot

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/vcscsvcscs/healthguide/pkg/model"
	"go.uber.org/zap"
)

// Fixed replies
const (
	EmergencyReply = "This sounds like an emergency. Please call emergency services (911) immediately or go to the nearest emergency room."

	DoctorReferralReply = "It is advisable to consult a doctor."

	FallbackReply = "I'm not able to determine your condition based on the information provided. Could you please describe your symptoms in more detail?"

	HospitalReply = `
I'm concerned about your persistent symptoms. I recommend visiting a healthcare facility for proper diagnosis and treatment.

NEARBY HOSPITALS:
1. City General Hospital - 2.3 miles away
2. Community Medical Center - 3.1 miles away
3. University Health Clinic - 5.7 miles away

Please don't delay seeking medical attention. Would you like me to provide directions to any of these facilities?
`

	hospitalNote = "⚠ NOTE: This condition may require medical attention. Please consult a healthcare professional if symptoms worsen."
)

// maxCandidates bounds the disease names listed when several diseases match
const maxCandidates = 3

var (
	emergencyKeywords   = []string{"emergency", "severe pain", "can't breathe", "chest pain"}
	persistenceKeywords = []string{"still having", "not getting better", "persists", "worsening", "not working"}

	userDurationPattern = regexp.MustCompile(`(for|since)\s+(\d+)\s*(day|days|week|weeks|month|months)`)
	clauseSeparator     = regexp.MustCompile(`[.,;]|\band\b`)

	diseaseDurationPatterns = []struct {
		re         *regexp.Regexp
		multiplier int
	}{
		{regexp.MustCompile(`(\d+)(?:-(\d+))?\s*day`), 1},
		{regexp.MustCompile(`(\d+)(?:-(\d+))?\s*week`), 7},
		{regexp.MustCompile(`(\d+)(?:-(\d+))?\s*month`), 30},
	}
)

// ReplyKind classifies which rule produced a reply
type ReplyKind string

const (
	ReplyEmergency      ReplyKind = "emergency"
	ReplyHospital       ReplyKind = "hospital"
	ReplyDoctorReferral ReplyKind = "doctor_referral"
	ReplyRecommendation ReplyKind = "recommendation"
	ReplyCandidates     ReplyKind = "candidates"
	ReplyFallback       ReplyKind = "fallback"
)

// Reply is the matcher's answer to one message
type Reply struct {
	Kind    ReplyKind
	Text    string
	Matched []string
}

type indexedDisease struct {
	disease     model.Disease
	name        string
	symptoms    []string
	maxDuration int
}

// SymptomMatcher answers free-text symptom descriptions from a static disease table.
// It holds no per-conversation state and is safe for concurrent use.
type SymptomMatcher struct {
	diseases []indexedDisease
	logger   *zap.Logger
}

// NewSymptomMatcher creates a matcher over the embedded disease table
func NewSymptomMatcher(logger *zap.Logger) (*SymptomMatcher, error) {
	diseases, err := LoadDiseases()
	if err != nil {
		return nil, err
	}
	return NewSymptomMatcherWithDiseases(diseases, logger), nil
}

// NewSymptomMatcherWithDiseases creates a matcher over the given table. Table order breaks ties.
func NewSymptomMatcherWithDiseases(diseases []model.Disease, logger *zap.Logger) *SymptomMatcher {
	indexed := make([]indexedDisease, 0, len(diseases))
	for _, d := range diseases {
		symptoms := make([]string, len(d.Symptoms))
		for i, s := range d.Symptoms {
			symptoms[i] = strings.ToLower(s)
		}
		indexed = append(indexed, indexedDisease{
			disease:     d,
			name:        strings.ToLower(d.Name),
			symptoms:    symptoms,
			maxDuration: diseaseMaxDuration(d.Duration),
		})
	}

	return &SymptomMatcher{
		diseases: indexed,
		logger:   logger,
	}
}

// Diseases returns the reference table in match order
func (m *SymptomMatcher) Diseases() []model.Disease {
	out := make([]model.Disease, len(m.diseases))
	for i, d := range m.diseases {
		out[i] = d.disease
	}
	return out
}

// Respond returns the reply text for a message
func (m *SymptomMatcher) Respond(message string, ageGroup model.AgeGroup) string {
	return m.Classify(message, ageGroup).Text
}

// Classify evaluates the rules in priority order and reports which one answered
func (m *SymptomMatcher) Classify(message string, ageGroup model.AgeGroup) Reply {
	lower := strings.ToLower(message)

	if containsAny(lower, emergencyKeywords) {
		m.logger.Info("Emergency keywords detected in chat message")
		return Reply{Kind: ReplyEmergency, Text: EmergencyReply}
	}

	if containsAny(lower, persistenceKeywords) {
		return Reply{Kind: ReplyHospital, Text: HospitalReply}
	}

	userDuration := userDurationDays(lower)

	for _, d := range m.diseases {
		if !strings.Contains(lower, d.name) {
			continue
		}
		if exceedsDuration(userDuration, d) {
			return Reply{Kind: ReplyDoctorReferral, Text: DoctorReferralReply, Matched: []string{d.disease.Name}}
		}
		return Reply{
			Kind:    ReplyRecommendation,
			Text:    Recommendation(d.disease, ageGroup),
			Matched: []string{d.disease.Name},
		}
	}

	matched := m.matchSymptoms(splitClauses(lower))
	m.logger.Debug("Matched diseases by symptom",
		zap.Int("matches", len(matched)),
		zap.Int("user_duration_days", userDuration),
	)

	if len(matched) == 0 {
		return Reply{Kind: ReplyFallback, Text: FallbackReply}
	}

	names := make([]string, len(matched))
	for i, d := range matched {
		names[i] = d.disease.Name
	}

	for _, d := range matched {
		if exceedsDuration(userDuration, d) {
			return Reply{Kind: ReplyDoctorReferral, Text: DoctorReferralReply, Matched: names}
		}
	}

	if len(matched) == 1 {
		return Reply{
			Kind:    ReplyRecommendation,
			Text:    Recommendation(matched[0].disease, ageGroup),
			Matched: names,
		}
	}

	listed := names
	if len(listed) > maxCandidates {
		listed = listed[:maxCandidates]
	}
	return Reply{
		Kind: ReplyCandidates,
		Text: fmt.Sprintf("Based on your symptoms, you might be experiencing one of the following: %s. Can you provide more details about your symptoms?",
			strings.Join(listed, ", ")),
		Matched: names,
	}
}

// matchSymptoms returns the diseases sharing at least one symptom with the clauses,
// most overlapping first and in table order among equals
func (m *SymptomMatcher) matchSymptoms(clauses []string) []indexedDisease {
	type scored struct {
		disease indexedDisease
		count   int
	}

	var candidates []scored
	for _, d := range m.diseases {
		count := 0
		for _, symptom := range d.symptoms {
			for _, clause := range clauses {
				if strings.Contains(clause, symptom) || strings.Contains(symptom, clause) {
					count++
					break
				}
			}
		}
		if count > 0 {
			candidates = append(candidates, scored{disease: d, count: count})
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].count > candidates[j].count
	})

	out := make([]indexedDisease, len(candidates))
	for i, c := range candidates {
		out[i] = c.disease
	}
	return out
}

// Recommendation renders the treatment advice of a disease for an age group
func Recommendation(d model.Disease, ageGroup model.AgeGroup) string {
	medicines := make([]string, len(d.Medicines))
	for i, med := range d.Medicines {
		medicines[i] = fmt.Sprintf("%s: %s (take %s)", med.Name, med.Dosage.For(ageGroup), med.Timing)
	}

	note := ""
	if d.RequiresHospital {
		note = hospitalNote
	}

	var b strings.Builder
	fmt.Fprintf(&b, "\nBased on your symptoms, you may have %s.\n\n", d.Name)
	b.WriteString("RECOMMENDED TREATMENT:\n")
	b.WriteString("- Medicines:\n")
	b.WriteString(strings.Join(medicines, "\n"))
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "- Foods to eat: %s\n", strings.Join(d.FoodToEat, ", "))
	fmt.Fprintf(&b, "- Foods to avoid: %s\n\n", strings.Join(d.FoodToAvoid, ", "))
	fmt.Fprintf(&b, "- Expected duration: %s\n\n", d.Duration)
	b.WriteString(note)
	b.WriteString("\n")
	return b.String()
}

func containsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}

func splitClauses(message string) []string {
	var clauses []string
	for _, part := range clauseSeparator.Split(message, -1) {
		if part = strings.TrimSpace(part); part != "" {
			clauses = append(clauses, part)
		}
	}
	return clauses
}

// userDurationDays extracts "for 2 weeks" style durations in days, 0 when absent
func userDurationDays(message string) int {
	match := userDurationPattern.FindStringSubmatch(message)
	if match == nil {
		return 0
	}
	n, err := strconv.Atoi(match[2])
	if err != nil {
		return 0
	}

	switch {
	case strings.HasPrefix(match[3], "week"):
		return n * 7
	case strings.HasPrefix(match[3], "month"):
		return n * 30
	default:
		return n
	}
}

// diseaseMaxDuration reads the upper bound of a documented duration such as "7-10 days",
// 0 when it is not expressed in days, weeks or months
func diseaseMaxDuration(duration string) int {
	for _, p := range diseaseDurationPatterns {
		match := p.re.FindStringSubmatch(duration)
		if match == nil {
			continue
		}
		bound := match[1]
		if match[2] != "" {
			bound = match[2]
		}
		n, err := strconv.Atoi(bound)
		if err != nil {
			return 0
		}
		return n * p.multiplier
	}
	return 0
}

func exceedsDuration(userDays int, d indexedDisease) bool {
	return userDays > 0 && d.maxDuration > 0 && userDays > d.maxDuration
}
