package symptom

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"unicode"

	"github.com/mediconsult/platform/pkg/common/models"
	"golang.org/x/text/unicode/norm"
)

// Match records which alternative produced a tag.
type Match struct {
	Tag      models.SymptomTag `json:"tag"`
	Evidence string            `json:"evidence"`
	Rule     string            `json:"rule,omitempty"`
}

type alternative struct {
	source string
	re     *regexp.Regexp
	// grouped alternatives carry the keyword in submatch 1; the rest of the
	// match is the surrounding word guard.
	grouped bool
}

func (a alternative) find(text string) string {
	if !a.grouped {
		return a.re.FindString(text)
	}
	if m := a.re.FindStringSubmatch(text); m != nil {
		return m[1]
	}
	return ""
}

type compiledRule struct {
	tag  models.SymptomTag
	alts []alternative
}

type compiledCompound struct {
	name string
	when []alternative
	and  []alternative
	adds []models.SymptomTag
}

// Extractor maps free text to canonical symptom tags. It is immutable after
// construction and safe for concurrent use.
type Extractor struct {
	rules    []compiledRule
	compound []compiledCompound
}

func NewExtractor(cfg RulesConfig) (*Extractor, error) {
	e := &Extractor{}
	for _, rule := range cfg.Rules {
		tag := models.SymptomTag(strings.TrimSpace(rule.Tag))
		if !Known(tag) {
			return nil, fmt.Errorf("rule references unknown symptom %q", rule.Tag)
		}
		cr := compiledRule{tag: tag}
		for _, kw := range rule.Keywords {
			alt, err := compileKeyword(kw, false)
			if err != nil {
				return nil, fmt.Errorf("symptom %s: %w", tag, err)
			}
			if alt.re != nil {
				cr.alts = append(cr.alts, alt)
			}
		}
		for _, pattern := range rule.Patterns {
			re, err := regexp.Compile(pattern)
			if err != nil {
				return nil, fmt.Errorf("symptom %s: %w", tag, err)
			}
			cr.alts = append(cr.alts, alternative{source: pattern, re: re})
		}
		if len(cr.alts) == 0 {
			return nil, fmt.Errorf("symptom %s has no keywords or patterns", tag)
		}
		e.rules = append(e.rules, cr)
	}

	for _, rule := range cfg.Compound {
		cc := compiledCompound{name: rule.Name}
		var err error
		if cc.when, err = compileWords(rule.When); err != nil {
			return nil, fmt.Errorf("compound %s: %w", rule.Name, err)
		}
		if cc.and, err = compileWords(rule.And); err != nil {
			return nil, fmt.Errorf("compound %s: %w", rule.Name, err)
		}
		if len(cc.when) == 0 || len(rule.Adds) == 0 {
			return nil, fmt.Errorf("compound %s needs when and adds", rule.Name)
		}
		for _, add := range rule.Adds {
			tag := models.SymptomTag(strings.TrimSpace(add))
			if !Known(tag) {
				return nil, fmt.Errorf("compound %s adds unknown symptom %q", rule.Name, add)
			}
			cc.adds = append(cc.adds, tag)
		}
		e.compound = append(e.compound, cc)
	}
	return e, nil
}

// Extract returns the sorted, de-duplicated tags found in text. An empty result
// means nothing was recognised.
func (e *Extractor) Extract(text string) []models.SymptomTag {
	matches := e.Explain(text)
	tags := make([]models.SymptomTag, 0, len(matches))
	for _, m := range matches {
		tags = append(tags, m.Tag)
	}
	return tags
}

// Explain is Extract with the evidence for every tag, sorted by tag.
func (e *Extractor) Explain(text string) []Match {
	if e == nil {
		return nil
	}
	normalized := normalize(text)
	if normalized == "" {
		return nil
	}

	found := make(map[models.SymptomTag]Match)
	for _, rule := range e.rules {
		if _, ok := found[rule.tag]; ok {
			continue
		}
		for _, alt := range rule.alts {
			if hit := alt.find(normalized); hit != "" {
				found[rule.tag] = Match{Tag: rule.tag, Evidence: hit}
				break
			}
		}
	}

	for _, rule := range e.compound {
		first, ok := firstHit(rule.when, normalized)
		if !ok {
			continue
		}
		evidence := first
		if len(rule.and) > 0 {
			second, ok := firstHit(rule.and, normalized)
			if !ok {
				continue
			}
			evidence = first + " + " + second
		}
		for _, tag := range rule.adds {
			if _, ok := found[tag]; !ok {
				found[tag] = Match{Tag: tag, Evidence: evidence, Rule: rule.name}
			}
		}
	}

	out := make([]Match, 0, len(found))
	for _, m := range found {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Tag < out[j].Tag })
	return out
}

func firstHit(alts []alternative, text string) (string, bool) {
	for _, alt := range alts {
		if hit := alt.find(text); hit != "" {
			return hit, true
		}
	}
	return "", false
}

func compileWords(words []string) ([]alternative, error) {
	var out []alternative
	for _, w := range words {
		alt, err := compileKeyword(w, true)
		if err != nil {
			return nil, err
		}
		if alt.re != nil {
			out = append(out, alt)
		}
	}
	return out, nil
}

// compileKeyword turns a keyword into a matcher. regexp's \b only knows ASCII
// word characters, so non-ASCII keywords are guarded by explicit letter and
// mark classes instead. A trailing "*" keeps the keyword a stem.
func compileKeyword(keyword string, exact bool) (alternative, error) {
	kw := normalize(keyword)
	if kw == "" {
		return alternative{}, nil
	}
	stem := strings.HasSuffix(kw, "*")
	kw = strings.TrimSuffix(kw, "*")

	var expr string
	switch {
	case !isASCII(kw):
		expr = `(?:^|[^\p{L}\p{M}])(` + regexp.QuoteMeta(kw) + `)`
		if !stem {
			expr += `(?:$|[^\p{L}\p{M}])`
		}
	case stem:
		expr = `\b` + regexp.QuoteMeta(kw)
	case exact:
		expr = `\b` + regexp.QuoteMeta(kw) + `\b`
	default:
		expr = `\b` + regexp.QuoteMeta(kw) + `(?:s|es)?\b`
	}
	re, err := regexp.Compile(expr)
	if err != nil {
		return alternative{}, fmt.Errorf("keyword %q: %w", keyword, err)
	}
	return alternative{source: keyword, re: re, grouped: !isASCII(kw)}, nil
}

// normalize lower-cases, applies NFC so precomposed and combining Devanagari
// forms compare equal, and collapses whitespace.
func normalize(text string) string {
	text = norm.NFC.String(strings.ToLower(text))
	return strings.Join(strings.Fields(text), " ")
}

func isASCII(s string) bool {
	for _, r := range s {
		if r > unicode.MaxASCII {
			return false
		}
	}
	return true
}
