// Package extract provides pure helpers that infer job-post fields from
// free-text utterances and merge them into a draft record. Everything here
// is deterministic and free of I/O so it can be unit tested without the
// language model.
package extract

import (
	"regexp"
	"strings"

	"github.com/hireloop/jobagent/domain"
)

var (
	// Role nouns that mark an utterance (or its first line) as a job title.
	titleKeywords = []string{
		"engineer", "developer", "manager", "designer", "analyst",
		"architect", "consultant", "specialist", "scientist", "lead",
		"director", "administrator", "recruiter", "accountant", "intern",
	}

	// Technologies recognized for the skills list.
	skillKeywords = []string{
		"go", "golang", "python", "java", "javascript", "typescript",
		"rust", "c++", "c#", "ruby", "php", "sql", "react", "angular",
		"vue", "node", "kubernetes", "docker", "terraform", "aws",
		"azure", "gcp", "linux", "git", "redis", "postgresql", "mysql",
		"mongodb", "kafka", "grpc", "graphql",
	}

	employmentTypes = map[string]string{
		"full-time":  "full-time",
		"full time":  "full-time",
		"fulltime":   "full-time",
		"part-time":  "part-time",
		"part time":  "part-time",
		"parttime":   "part-time",
		"contract":   "contract",
		"freelance":  "contract",
		"internship": "internship",
		"temporary":  "temporary",
	}

	locationRe = regexp.MustCompile(`(?i)\b(?:in|based in|located in|office in)\s+([A-Z][A-Za-z]+(?:[ -][A-Z][A-Za-z]+)*)`)
	salaryRe   = regexp.MustCompile(`(?i)([$€£]\s?\d[\d,.]*\s?k?(?:\s?[-–]\s?[$€£]?\s?\d[\d,.]*\s?k?)?|\b\d{2,3}\s?k\b(?:\s?[-–]\s?\d{2,3}\s?k\b)?)`)
	wordRe     = regexp.MustCompile(`[a-zA-Z+#]+`)
)

// Extract infers candidate field values from the utterance. Fields already
// confirmed in current are not re-inferred; the partial result only
// carries values Merge is allowed to apply.
func Extract(utterance string, current *domain.Record) domain.Record {
	var partial domain.Record
	lower := strings.ToLower(utterance)

	if current.Title == "" {
		if title := extractTitle(utterance); title != "" {
			partial.Title = title
		}
	}

	if current.Location == "" {
		if m := locationRe.FindStringSubmatch(utterance); m != nil {
			partial.Location = m[1]
		} else if strings.Contains(lower, "remote") {
			partial.Location = "remote"
		} else if strings.Contains(lower, "hybrid") {
			partial.Location = "hybrid"
		}
	}

	if current.EmploymentType == "" {
		for phrase, canonical := range employmentTypes {
			if strings.Contains(lower, phrase) {
				partial.EmploymentType = canonical
				break
			}
		}
	}

	if current.Salary == "" {
		if m := salaryRe.FindString(utterance); m != "" {
			partial.Salary = strings.TrimSpace(m)
		}
	}

	partial.Skills = extractSkills(lower)
	return partial
}

// extractTitle returns the first line of the utterance when it reads like
// a job title: short and carrying a recognized role noun.
func extractTitle(utterance string) string {
	line := utterance
	if idx := strings.IndexAny(line, "\n.!?"); idx >= 0 {
		line = line[:idx]
	}
	line = strings.TrimSpace(line)

	words := strings.Fields(line)
	if len(words) == 0 || len(words) > 8 {
		return ""
	}
	lower := strings.ToLower(line)
	for _, kw := range titleKeywords {
		if strings.Contains(lower, kw) {
			return line
		}
	}
	return ""
}

func extractSkills(lower string) []string {
	var found []string
	tokens := wordRe.FindAllString(lower, -1)
	seen := make(map[string]bool, len(tokens))
	for _, tok := range tokens {
		seen[tok] = true
	}
	for _, skill := range skillKeywords {
		if seen[skill] {
			found = append(found, skill)
		}
	}
	return found
}

// Merge folds a partial record into the current one. Scalars only fill
// empty fields; a confirmed value is never overwritten by a later
// low-confidence extraction. Skills are unioned duplicate-free; Extra keys
// fill only when absent.
func Merge(current domain.Record, partial domain.Record) domain.Record {
	merged := current.Clone()

	for _, field := range []string{
		domain.FieldTitle, domain.FieldDescription, domain.FieldLocation,
		domain.FieldEmploymentType, domain.FieldSalary,
	} {
		existing, _ := merged.Scalar(field)
		if existing != "" {
			continue
		}
		if v, _ := partial.Scalar(field); v != "" {
			merged.SetScalar(field, v)
		}
	}

	if len(partial.Skills) > 0 {
		have := make(map[string]bool, len(merged.Skills))
		for _, s := range merged.Skills {
			have[s] = true
		}
		for _, s := range partial.Skills {
			if !have[s] {
				merged.Skills = append(merged.Skills, s)
				have[s] = true
			}
		}
	}

	for k, v := range partial.Extra {
		if merged.Extra == nil {
			merged.Extra = make(map[string]any)
		}
		if _, ok := merged.Extra[k]; !ok {
			merged.Extra[k] = v
		}
	}
	return merged
}

// CompletenessScore returns the weighted fraction of populated required
// fields, in [0, 1]. Weights are configuration, not logic.
func CompletenessScore(record *domain.Record, weights map[string]float64) float64 {
	var total, populated float64
	for field, weight := range weights {
		if weight <= 0 {
			continue
		}
		total += weight
		if record.Populated(field) {
			populated += weight
		}
	}
	if total == 0 {
		return 0
	}
	return populated / total
}

// MatchesCompletionIntent reports whether the utterance contains any of
// the configured completion trigger phrases.
func MatchesCompletionIntent(utterance string, phrases []string) bool {
	lower := strings.ToLower(utterance)
	for _, phrase := range phrases {
		if phrase == "" {
			continue
		}
		if strings.Contains(lower, strings.ToLower(phrase)) {
			return true
		}
	}
	return false
}
