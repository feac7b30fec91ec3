package db

import (
	"testing"

	"github.com/hireflux/ats-service/internal/types"
)

// =============================================================================
// StringArray Tests
// =============================================================================

func TestStringArray_Scan(t *testing.T) {
	t.Run("nil source becomes empty array", func(t *testing.T) {
		var a StringArray
		if err := a.Scan(nil); err != nil {
			t.Fatalf("Scan(nil) error: %v", err)
		}
		if len(a) != 0 {
			t.Errorf("len = %d, want 0", len(a))
		}
	})

	t.Run("jsonb bytes", func(t *testing.T) {
		var a StringArray
		if err := a.Scan([]byte(`["Go","PostgreSQL"]`)); err != nil {
			t.Fatalf("Scan error: %v", err)
		}
		if len(a) != 2 || a[0] != "Go" || a[1] != "PostgreSQL" {
			t.Errorf("Scan result = %v, want [Go PostgreSQL]", a)
		}
	})

	t.Run("non-byte source fails", func(t *testing.T) {
		var a StringArray
		if err := a.Scan(42); err == nil {
			t.Error("Scan(42) should return an error")
		}
	})
}

func TestStringArray_Value(t *testing.T) {
	t.Run("nil array serializes as empty", func(t *testing.T) {
		var a StringArray
		v, err := a.Value()
		if err != nil {
			t.Fatalf("Value error: %v", err)
		}
		if string(v.([]byte)) != "[]" {
			t.Errorf("Value = %s, want []", v)
		}
	})

	t.Run("values serialize as json", func(t *testing.T) {
		a := StringArray{"Go", "Docker"}
		v, err := a.Value()
		if err != nil {
			t.Fatalf("Value error: %v", err)
		}
		if string(v.([]byte)) != `["Go","Docker"]` {
			t.Errorf("Value = %s, want [\"Go\",\"Docker\"]", v)
		}
	})
}

// =============================================================================
// Converter Tests
// =============================================================================

func TestJob_Requirements(t *testing.T) {
	minYears := 3
	salaryMax := 150000
	j := &Job{
		Title:              "Backend Engineer",
		RequiredSkills:     StringArray{"Go", "PostgreSQL"},
		PreferredSkills:    StringArray{"Kubernetes"},
		ExperienceMinYears: &minYears,
		SalaryMax:          &salaryMax,
		Location:           "Berlin",
		LocationType:       types.LocationHybrid,
	}

	req := j.Requirements()
	if len(req.RequiredSkills) != 2 || req.RequiredSkills[0] != "Go" {
		t.Errorf("RequiredSkills = %v", req.RequiredSkills)
	}
	if len(req.PreferredSkills) != 1 {
		t.Errorf("PreferredSkills = %v", req.PreferredSkills)
	}
	if req.ExperienceMinYears == nil || *req.ExperienceMinYears != 3 {
		t.Error("ExperienceMinYears not carried over")
	}
	if req.ExperienceMaxYears != nil {
		t.Error("ExperienceMaxYears should stay nil")
	}
	if req.SalaryMax == nil || *req.SalaryMax != 150000 {
		t.Error("SalaryMax not carried over")
	}
	if req.Location != "Berlin" || req.LocationType != types.LocationHybrid {
		t.Errorf("Location = %q %q", req.Location, req.LocationType)
	}
}

func TestJob_IsOpen(t *testing.T) {
	tests := []struct {
		status   types.JobStatus
		expected bool
	}{
		{types.JobStatusOpen, true},
		{types.JobStatusDraft, false},
		{types.JobStatusClosed, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			j := &Job{Status: tt.status}
			if j.IsOpen() != tt.expected {
				t.Errorf("IsOpen() = %v, want %v", j.IsOpen(), tt.expected)
			}
		})
	}
}

func TestCandidateProfile_ScoringProfile(t *testing.T) {
	salaryMin := 90000
	p := &CandidateProfile{
		Skills:                StringArray{"Go", "Docker"},
		YearsExperience:       5,
		Location:              "Berlin",
		PreferredLocationType: types.LocationRemote,
		ExpectedSalaryMin:     &salaryMin,
		AvailabilityStatus:    types.AvailabilityActivelyLooking,
	}

	sp := p.ScoringProfile()
	if len(sp.Skills) != 2 || sp.YearsExperience != 5 {
		t.Errorf("profile fields not carried: %v", sp)
	}
	if sp.Location != "Berlin" || sp.PreferredLocationType != types.LocationRemote {
		t.Errorf("location fields not carried: %q %q", sp.Location, sp.PreferredLocationType)
	}
	if sp.ExpectedSalaryMin == nil || *sp.ExpectedSalaryMin != 90000 {
		t.Error("ExpectedSalaryMin not carried over")
	}
	if sp.AvailabilityStatus != types.AvailabilityActivelyLooking {
		t.Errorf("AvailabilityStatus = %q", sp.AvailabilityStatus)
	}
}

// =============================================================================
// Application FitResult Tests
// =============================================================================

func TestApplication_FitResult(t *testing.T) {
	t.Run("unscored returns nil", func(t *testing.T) {
		a := &Application{}
		if a.FitResult() != nil {
			t.Error("FitResult() should be nil for unscored application")
		}
	})

	t.Run("scored reconstructs result", func(t *testing.T) {
		fit := 82
		a := &Application{
			FitIndex:     &fit,
			FitBreakdown: []byte(`{"skillsMatch":{"score":90,"weight":0.3}}`),
			FitStrengths: StringArray{"Matches 3 of 3 required skills"},
			FitConcerns:  StringArray{},
		}

		result := a.FitResult()
		if result == nil {
			t.Fatal("FitResult() should not be nil")
		}
		if result.Overall != 82 {
			t.Errorf("Overall = %d, want 82", result.Overall)
		}
		fs, ok := result.Breakdown[types.FactorSkillsMatch]
		if !ok {
			t.Fatal("breakdown missing skillsMatch")
		}
		if fs.Score != 90 || fs.Weight != 0.3 {
			t.Errorf("skillsMatch = %+v", fs)
		}
		if len(result.Strengths) != 1 {
			t.Errorf("Strengths = %v", result.Strengths)
		}
	})

	t.Run("scored without breakdown", func(t *testing.T) {
		fit := 70
		a := &Application{FitIndex: &fit}
		result := a.FitResult()
		if result == nil || result.Overall != 70 {
			t.Fatal("FitResult() should carry the overall score")
		}
		if len(result.Breakdown) != 0 {
			t.Errorf("Breakdown = %v, want empty", result.Breakdown)
		}
	})
}

func TestNullIfEmpty(t *testing.T) {
	if nullIfEmpty("") != nil {
		t.Error("empty string should map to nil")
	}
	if v := nullIfEmpty("note"); v == nil || *v != "note" {
		t.Error("non-empty string should map to pointer")
	}
}
