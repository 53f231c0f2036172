// Package seed loads the built-in catalog of success profiles, learning
// content and a sample assessment, and writes it through the domain services.
package seed

import (
	"context"
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"succession-backend/internal/assessments"
	"succession-backend/internal/learning"
	"succession-backend/internal/profiles"
	"succession-backend/internal/shared/telemetry"
)

//go:embed catalog.yaml
var catalogYAML []byte

type Catalog struct {
	Profiles         []Profile  `yaml:"profiles"`
	SampleAssessment Assessment `yaml:"sampleAssessment"`
	Learning         []Content  `yaml:"learning"`
}

type Competency struct {
	Name   string  `yaml:"name"`
	Weight float64 `yaml:"weight"`
}

type Profile struct {
	RoleKey            string       `yaml:"roleKey"`
	Title              string       `yaml:"title"`
	Competencies       []Competency `yaml:"competencies"`
	MinPerformance     float64      `yaml:"minPerformance"`
	MinExperienceYears float64      `yaml:"minExperienceYears"`
	MinAdcScore        float64      `yaml:"minAdcScore"`
	Notes              string       `yaml:"notes"`
}

type Assessment struct {
	Performance     float64            `yaml:"performance" json:"performance"`
	ExperienceYears float64            `yaml:"experienceYears" json:"experienceYears"`
	AdcScore        float64            `yaml:"adcScore" json:"adcScore"`
	Competencies    map[string]float64 `yaml:"competencies" json:"competencies"`
}

type Content struct {
	ID              string   `yaml:"id"`
	Title           string   `yaml:"title"`
	Description     string   `yaml:"description"`
	Type            string   `yaml:"type"`
	DurationMinutes int      `yaml:"durationMinutes"`
	Competencies    []string `yaml:"competencies"`
	URL             string   `yaml:"url"`
}

// Load parses the embedded catalog.
func Load() (Catalog, error) {
	return Parse(catalogYAML)
}

func Parse(raw []byte) (Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return Catalog{}, fmt.Errorf("parse seed catalog: %w", err)
	}
	return c, nil
}

// ParseAssessment reads an assessment document. JSON input is accepted as YAML.
func ParseAssessment(raw []byte) (Assessment, error) {
	var a Assessment
	if err := yaml.Unmarshal(raw, &a); err != nil {
		return Assessment{}, fmt.Errorf("parse assessment: %w", err)
	}
	return a, nil
}

func (p Profile) Input() profiles.Input {
	comps := make([]profiles.Competency, 0, len(p.Competencies))
	for _, c := range p.Competencies {
		comps = append(comps, profiles.Competency{Name: c.Name, Weight: c.Weight})
	}
	return profiles.Input{
		Title:              p.Title,
		Competencies:       comps,
		MinPerformance:     p.MinPerformance,
		MinExperienceYears: p.MinExperienceYears,
		MinAdcScore:        p.MinAdcScore,
		Notes:              p.Notes,
	}
}

// Profile returns the catalog profile with roleKey.
func (c Catalog) Profile(roleKey string) (Profile, bool) {
	for _, p := range c.Profiles {
		if p.RoleKey == roleKey {
			return p, true
		}
	}
	return Profile{}, false
}

func (a Assessment) Input() assessments.Input {
	return assessments.Input{
		Performance:     a.Performance,
		ExperienceYears: a.ExperienceYears,
		AdcScore:        a.AdcScore,
		Competencies:    a.Competencies,
	}
}

func (c Content) Content() learning.Content {
	return learning.Content{
		ID:              c.ID,
		Title:           c.Title,
		Description:     c.Description,
		Type:            c.Type,
		DurationMinutes: c.DurationMinutes,
		Competencies:    c.Competencies,
		URL:             c.URL,
	}
}

type ProfileSaver interface {
	Save(ctx context.Context, roleKey string, in profiles.Input) (profiles.SuccessProfile, error)
}

type ContentSaver interface {
	SaveContent(ctx context.Context, c learning.Content) error
}

type AssessmentSaver interface {
	UpsertMine(ctx context.Context, userID string, in assessments.Input) (assessments.Assessment, error)
}

type Targets struct {
	Profiles    ProfileSaver
	Learning    ContentSaver
	Assessments AssessmentSaver
}

type Options struct {
	// SampleUserID receives the sample assessment when set.
	SampleUserID string
}

type Result struct {
	Profiles         int  `json:"profiles"`
	Content          int  `json:"content"`
	SampleAssessment bool `json:"sampleAssessment"`
}

// Apply writes the catalog. It is idempotent: every write is an upsert.
func Apply(ctx context.Context, c Catalog, t Targets, opts Options) (Result, error) {
	var res Result
	if t.Profiles != nil {
		for _, p := range c.Profiles {
			if _, err := t.Profiles.Save(ctx, p.RoleKey, p.Input()); err != nil {
				return res, fmt.Errorf("seed profile %s: %w", p.RoleKey, err)
			}
			res.Profiles++
		}
	}
	if t.Learning != nil {
		for _, item := range c.Learning {
			if err := t.Learning.SaveContent(ctx, item.Content()); err != nil {
				return res, fmt.Errorf("seed learning %s: %w", item.ID, err)
			}
			res.Content++
		}
	}
	if t.Assessments != nil && opts.SampleUserID != "" {
		if _, err := t.Assessments.UpsertMine(ctx, opts.SampleUserID, c.SampleAssessment.Input()); err != nil {
			return res, fmt.Errorf("seed sample assessment: %w", err)
		}
		res.SampleAssessment = true
	}
	telemetry.Info("seed.applied", map[string]any{
		"profiles":          res.Profiles,
		"content":           res.Content,
		"sample_assessment": res.SampleAssessment,
	})
	return res, nil
}
