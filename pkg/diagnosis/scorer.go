package diagnosis

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/mediconsult/platform/pkg/common/models"
	"github.com/mediconsult/platform/pkg/symptom"
)

const (
	DefaultMinConfidence = 25.0

	coverageWeight    = 60.0
	specificityWeight = 30.0
	breadthBonus      = 10.0
	breadthMatches    = 3
)

type profile struct {
	name     string
	symptoms map[models.SymptomTag]struct{}
	severity models.Severity
}

// Scorer ranks disease profiles against a symptom set. It holds no mutable
// state and may be shared across requests.
type Scorer struct {
	profiles  []profile
	threshold float64
}

func NewScorer(cat Catalog, threshold float64) (*Scorer, error) {
	if threshold < 0 || threshold >= 100 {
		return nil, fmt.Errorf("confidence threshold %.1f out of range [0,100)", threshold)
	}

	severe := toSet(cat.Severe)
	moderate := toSet(cat.Moderate)
	seen := make(map[string]struct{}, len(cat.Profiles))

	s := &Scorer{threshold: threshold}
	for _, p := range cat.Profiles {
		name := strings.TrimSpace(p.Name)
		if name == "" {
			return nil, fmt.Errorf("disease profile without a name")
		}
		key := strings.ToLower(name)
		if _, dup := seen[key]; dup {
			return nil, fmt.Errorf("duplicate disease profile %q", name)
		}
		seen[key] = struct{}{}

		compiled := profile{name: name, symptoms: make(map[models.SymptomTag]struct{}, len(p.Symptoms))}
		for _, raw := range p.Symptoms {
			tag := models.SymptomTag(strings.TrimSpace(raw))
			if !symptom.Known(tag) {
				return nil, fmt.Errorf("disease %s references unknown symptom %q", name, raw)
			}
			compiled.symptoms[tag] = struct{}{}
		}
		if len(compiled.symptoms) == 0 {
			return nil, fmt.Errorf("disease %s has no symptoms", name)
		}

		switch {
		case contains(severe, key):
			compiled.severity = models.SeveritySevere
		case contains(moderate, key):
			compiled.severity = models.SeverityModerate
		default:
			compiled.severity = models.SeverityMild
		}
		s.profiles = append(s.profiles, compiled)
	}
	if len(s.profiles) == 0 {
		return nil, fmt.Errorf("no disease profiles configured")
	}
	return s, nil
}

type candidate struct {
	profile *profile
	matched []models.SymptomTag
	score   float64
}

// Predict returns the best profile scoring strictly above the threshold, or nil
// when symptoms is empty or nothing qualifies.
func (s *Scorer) Predict(symptoms []models.SymptomTag) *models.Prediction {
	input := dedupe(symptoms)
	if s == nil || len(input) == 0 {
		return nil
	}

	var best *candidate
	for i := range s.profiles {
		p := &s.profiles[i]
		var matched []models.SymptomTag
		for _, tag := range input {
			if _, ok := p.symptoms[tag]; ok {
				matched = append(matched, tag)
			}
		}
		if len(matched) == 0 {
			continue
		}
		c := &candidate{profile: p, matched: matched, score: score(len(matched), len(p.symptoms), len(input))}
		if c.score <= s.threshold {
			continue
		}
		if best == nil || better(c, best) {
			best = c
		}
	}
	if best == nil {
		return nil
	}

	severity := best.profile.severity
	if severity == models.SeverityMild && len(best.matched) >= breadthMatches {
		severity = models.SeverityModerate
	}

	return &models.Prediction{
		Disease:         best.profile.name,
		Confidence:      best.score,
		MatchedSymptoms: best.matched,
		Severity:        severity,
	}
}

func score(matched, profileSize, inputSize int) float64 {
	v := coverageWeight*float64(matched)/float64(profileSize) +
		specificityWeight*float64(matched)/float64(inputSize)
	if matched >= breadthMatches {
		v += breadthBonus
	}
	return math.Round(v*10) / 10
}

func better(a, b *candidate) bool {
	if a.score != b.score {
		return a.score > b.score
	}
	if len(a.matched) != len(b.matched) {
		return len(a.matched) > len(b.matched)
	}
	return a.profile.name < b.profile.name
}

// dedupe returns a sorted copy without repeats so matched symptoms come out in
// a stable order.
func dedupe(tags []models.SymptomTag) []models.SymptomTag {
	set := make(map[models.SymptomTag]struct{}, len(tags))
	out := make([]models.SymptomTag, 0, len(tags))
	for _, t := range tags {
		if _, ok := set[t]; ok || t == "" {
			continue
		}
		set[t] = struct{}{}
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func toSet(names []string) map[string]struct{} {
	out := make(map[string]struct{}, len(names))
	for _, n := range names {
		out[strings.ToLower(strings.TrimSpace(n))] = struct{}{}
	}
	return out
}

func contains(set map[string]struct{}, key string) bool {
	_, ok := set[key]
	return ok
}
