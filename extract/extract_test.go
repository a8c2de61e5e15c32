package extract

import (
	"reflect"
	"testing"

	"github.com/hireloop/jobagent/domain"
)

func TestExtractTitle(t *testing.T) {
	tests := []struct {
		name      string
		utterance string
		want      string
	}{
		{"plain title", "Senior Backend Engineer", "Senior Backend Engineer"},
		{"title with trailing sentence", "Senior Backend Engineer. We need someone soon", "Senior Backend Engineer"},
		{"no role noun", "we are hiring someone", ""},
		{"too long", "we are looking for a person who can do many many different things as an engineer here", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Extract(tt.utterance, &domain.Record{})
			if got.Title != tt.want {
				t.Fatalf("Extract(%q).Title = %q, want %q", tt.utterance, got.Title, tt.want)
			}
		})
	}
}

func TestExtractTitleNotReinferredWhenConfirmed(t *testing.T) {
	current := &domain.Record{Title: "Data Analyst"}
	got := Extract("Senior Backend Engineer", current)
	if got.Title != "" {
		t.Fatalf("expected no title candidate for confirmed record, got %q", got.Title)
	}
}

func TestExtractLocation(t *testing.T) {
	tests := []struct {
		utterance string
		want      string
	}{
		{"the office is in Berlin", "Berlin"},
		{"we are based in New York", "New York"},
		{"fully remote position", "remote"},
		{"hybrid, two days on site", "hybrid"},
		{"no location mentioned", ""},
	}
	for _, tt := range tests {
		got := Extract(tt.utterance, &domain.Record{})
		if got.Location != tt.want {
			t.Fatalf("Extract(%q).Location = %q, want %q", tt.utterance, got.Location, tt.want)
		}
	}
}

func TestExtractEmploymentTypeAndSalary(t *testing.T) {
	got := Extract("full time role paying $90,000 - $120,000", &domain.Record{})
	if got.EmploymentType != "full-time" {
		t.Fatalf("unexpected employment type: %q", got.EmploymentType)
	}
	if got.Salary == "" {
		t.Fatalf("expected salary to be extracted")
	}
}

func TestExtractSkills(t *testing.T) {
	got := Extract("must know Go, Kubernetes and PostgreSQL", &domain.Record{})
	want := []string{"go", "kubernetes", "postgresql"}
	if !reflect.DeepEqual(got.Skills, want) {
		t.Fatalf("Skills = %v, want %v", got.Skills, want)
	}
}

func TestExtractDeterministic(t *testing.T) {
	utterance := "Senior DevOps Engineer in Amsterdam, contract, docker and terraform"
	first := Extract(utterance, &domain.Record{})
	second := Extract(utterance, &domain.Record{})
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("extraction is not deterministic: %+v vs %+v", first, second)
	}
}

func TestMergeDoesNotOverwriteConfirmedScalars(t *testing.T) {
	current := domain.Record{Title: "Data Analyst", Location: "Lisbon"}
	partial := domain.Record{Title: "Senior Backend Engineer", Location: "Berlin", Salary: "$100k"}

	merged := Merge(current, partial)
	if merged.Title != "Data Analyst" {
		t.Fatalf("confirmed title overwritten: %q", merged.Title)
	}
	if merged.Location != "Lisbon" {
		t.Fatalf("confirmed location overwritten: %q", merged.Location)
	}
	if merged.Salary != "$100k" {
		t.Fatalf("empty salary not filled: %q", merged.Salary)
	}
}

func TestMergeUnionsSkills(t *testing.T) {
	current := domain.Record{Skills: []string{"go", "redis"}}
	partial := domain.Record{Skills: []string{"redis", "kubernetes"}}

	merged := Merge(current, partial)
	want := []string{"go", "redis", "kubernetes"}
	if !reflect.DeepEqual(merged.Skills, want) {
		t.Fatalf("Skills = %v, want %v", merged.Skills, want)
	}
}

func TestMergeLeavesCurrentUntouched(t *testing.T) {
	current := domain.Record{Skills: []string{"go"}}
	Merge(current, domain.Record{Skills: []string{"python"}})
	if len(current.Skills) != 1 {
		t.Fatalf("Merge mutated its input: %v", current.Skills)
	}
}

func TestMergeExtraFillsOnlyAbsentKeys(t *testing.T) {
	current := domain.Record{Extra: map[string]any{"team": "platform"}}
	partial := domain.Record{Extra: map[string]any{"team": "data", "visa": "sponsored"}}

	merged := Merge(current, partial)
	if merged.Extra["team"] != "platform" {
		t.Fatalf("existing extra key overwritten: %v", merged.Extra["team"])
	}
	if merged.Extra["visa"] != "sponsored" {
		t.Fatalf("new extra key not merged: %v", merged.Extra)
	}
}

func TestCompletenessScore(t *testing.T) {
	weights := map[string]float64{
		domain.FieldTitle:       0.5,
		domain.FieldDescription: 0.3,
		domain.FieldLocation:    0.2,
	}

	empty := domain.Record{}
	if score := CompletenessScore(&empty, weights); score != 0 {
		t.Fatalf("empty record score = %v, want 0", score)
	}

	partial := domain.Record{Title: "Engineer"}
	if score := CompletenessScore(&partial, weights); score != 0.5 {
		t.Fatalf("partial record score = %v, want 0.5", score)
	}

	full := domain.Record{Title: "Engineer", Description: "Builds things", Location: "remote"}
	if score := CompletenessScore(&full, weights); score != 1 {
		t.Fatalf("full record score = %v, want 1", score)
	}
}

func TestCompletenessScoreNoWeights(t *testing.T) {
	record := domain.Record{Title: "Engineer"}
	if score := CompletenessScore(&record, nil); score != 0 {
		t.Fatalf("score without weights = %v, want 0", score)
	}
}

func TestMatchesCompletionIntent(t *testing.T) {
	phrases := []string{"publish", "that's all"}

	if !MatchesCompletionIntent("yes, please publish this now", phrases) {
		t.Fatalf("expected completion intent match")
	}
	if !MatchesCompletionIntent("That's ALL from me", phrases) {
		t.Fatalf("expected case-insensitive match")
	}
	if MatchesCompletionIntent("add a salary range", phrases) {
		t.Fatalf("unexpected completion intent match")
	}
}
