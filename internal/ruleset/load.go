package ruleset

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"itemize/internal/domain"
)

// overlay is the wire shape of a rule file. Scoring is a pointer so an
// overlay that omits it keeps the current constants.
type overlay struct {
	Version    string           `json:"version"`
	Characters []CharacterRule  `json:"characters"`
	Words      []WordRule       `json:"words"`
	Contexts   []ContextRule    `json:"context_rules"`
	Vendors    []VendorProfile  `json:"vendors"`
	Vocabulary []VocabularyTerm `json:"vocabulary"`
	Noise      []string         `json:"noise"`
	Scoring    *Scoring         `json:"scoring"`
}

// Builtin returns the compiled builtin RuleSet.
func Builtin() (*RuleSet, error) {
	rs := builtin()
	if err := rs.compile("builtin"); err != nil {
		return nil, err
	}
	return rs, nil
}

// Load builds a RuleSet from the builtin rules plus every *.json overlay in
// dir, merged in lexical filename order. An empty dir path returns the
// builtin set. Any malformed file or pattern fails the whole load; a corrupt
// RuleSet must never be used to process documents.
func Load(dir string) (*RuleSet, error) {
	rs := builtin()
	if dir != "" {
		entries, err := os.ReadDir(dir)
		if err != nil {
			return nil, configErr(dir, "reading overlay directory", err)
		}
		var names []string
		for _, e := range entries {
			if !e.IsDir() && strings.HasSuffix(e.Name(), ".json") {
				names = append(names, e.Name())
			}
		}
		sort.Strings(names)

		schema, err := compileSchema()
		if err != nil {
			return nil, err
		}
		for _, name := range names {
			path := filepath.Join(dir, name)
			if err := rs.mergeFile(path, schema); err != nil {
				return nil, err
			}
		}
	}
	if err := rs.compile(dir); err != nil {
		return nil, err
	}
	return rs, nil
}

func compileSchema() (*jsonschema.Schema, error) {
	c := jsonschema.NewCompiler()
	if err := c.AddResource("ruleset.schema.json", strings.NewReader(overlaySchema)); err != nil {
		return nil, configErr("builtin", "registering overlay schema", err)
	}
	schema, err := c.Compile("ruleset.schema.json")
	if err != nil {
		return nil, configErr("builtin", "compiling overlay schema", err)
	}
	return schema, nil
}

func (rs *RuleSet) mergeFile(path string, schema *jsonschema.Schema) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return configErr(path, "reading overlay", err)
	}

	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return configErr(path, "parsing overlay JSON", err)
	}
	if err := schema.Validate(doc); err != nil {
		return configErr(path, "overlay failed schema validation", err)
	}

	var ov overlay
	if err := json.Unmarshal(data, &ov); err != nil {
		return configErr(path, "decoding overlay", err)
	}

	if ov.Version != "" {
		rs.Version = ov.Version
	}
	rs.Characters = append(rs.Characters, ov.Characters...)
	rs.Words = append(rs.Words, ov.Words...)
	rs.Contexts = append(rs.Contexts, ov.Contexts...)
	rs.Vendors = append(rs.Vendors, ov.Vendors...)
	rs.Vocabulary = append(rs.Vocabulary, ov.Vocabulary...)
	rs.Noise = append(rs.Noise, ov.Noise...)
	if ov.Scoring != nil {
		rs.Scoring = *ov.Scoring
	}
	return nil
}

// compile validates rule data and precompiles every pattern. All regexes are
// compiled exactly once here, never per document.
func (rs *RuleSet) compile(source string) error {
	for i := range rs.Characters {
		r := &rs.Characters[i]
		if r.From == "" || r.To == "" {
			return configErr(source, fmt.Sprintf("character rule %d has empty from/to", i), nil)
		}
		if len(r.Contexts) == 0 {
			return configErr(source, fmt.Sprintf("character rule %q declares no context", r.From), nil)
		}
		for _, c := range r.Contexts {
			if _, ok := domain.ValidRuleContexts[string(c)]; !ok {
				return configErr(source, fmt.Sprintf("character rule %q has unknown context %q", r.From, c), nil)
			}
		}
	}

	froms := make(map[string]bool, len(rs.Words))
	for i := range rs.Words {
		w := &rs.Words[i]
		if w.Confidence < 0 || w.Confidence > 1 {
			return configErr(source, fmt.Sprintf("word rule %q confidence out of [0,1]", w.From), nil)
		}
		froms[w.From] = true
	}
	for i := range rs.Words {
		// a rule whose output is another rule's input would break
		// idempotence of the correction pass
		if froms[rs.Words[i].To] {
			return configErr(source, fmt.Sprintf("word rule %q rewrites to another rule's input %q", rs.Words[i].From, rs.Words[i].To), nil)
		}
	}

	for i := range rs.Contexts {
		cr := &rs.Contexts[i]
		var err error
		if cr.labelRe, err = regexp.Compile(cr.Label); err != nil {
			return configErr(source, fmt.Sprintf("context rule %d label pattern", i), err)
		}
		if cr.valueRe, err = regexp.Compile(cr.ValueShape); err != nil {
			return configErr(source, fmt.Sprintf("context rule %d value shape", i), err)
		}
		if cr.Confidence < 0 || cr.Confidence > 1 {
			return configErr(source, fmt.Sprintf("context rule %d confidence out of [0,1]", i), nil)
		}
		if cr.valueRe.MatchString(cr.Correction) {
			return configErr(source, fmt.Sprintf("context rule %d correction matches its own value shape", i), nil)
		}
	}

	for i := range rs.Vendors {
		v := &rs.Vendors[i]
		if v.Name == "" || len(v.Keywords) == 0 {
			return configErr(source, fmt.Sprintf("vendor profile %d needs a name and keywords", i), nil)
		}
		v.lineRes = v.lineRes[:0]
		for _, p := range v.LinePatterns {
			re, err := regexp.Compile(p)
			if err != nil {
				return configErr(source, fmt.Sprintf("vendor %q line pattern %q", v.Name, p), err)
			}
			v.lineRes = append(v.lineRes, re)
		}
	}

	for i := range rs.Vocabulary {
		if strings.TrimSpace(rs.Vocabulary[i].Canonical) == "" {
			return configErr(source, fmt.Sprintf("vocabulary term %d has empty canonical name", i), nil)
		}
	}

	s := rs.Scoring
	for name, v := range map[string]float64{
		"fuzzy_similarity_weight": s.FuzzySimilarityWeight,
		"fuzzy_quantity_weight":   s.FuzzyQuantityWeight,
		"fuzzy_price_weight":      s.FuzzyPriceWeight,
		"fuzzy_keyword_weight":    s.FuzzyKeywordWeight,
		"fuzzy_shape_weight":      s.FuzzyShapeWeight,
		"fuzzy_word_threshold":    s.FuzzyWordThreshold,
		"fuzzy_coverage_ratio":    s.FuzzyCoverageRatio,
		"structured_base":         s.StructuredBase,
		"two_line_confidence":     s.TwoLineConfidence,
		"merged_base":             s.MergedBase,
		"vendor_base":             s.VendorBase,
		"fuzzy_floor":             s.FuzzyFloor,
		"min_rule_confidence":     s.MinRuleConfidence,
		"overall_engine_weight":   s.OverallEngineWeight,
	} {
		if v < 0 || v > 1 {
			return configErr(source, fmt.Sprintf("scoring constant %s out of [0,1]", name), nil)
		}
	}
	return nil
}
