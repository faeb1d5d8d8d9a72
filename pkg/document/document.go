// Package document handles organize rule documents: the mapping with a
// "rules" sequence that the engine reads from its config file.
package document

import (
	"fmt"
	"reflect"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"

	"github.com/arthur-debert/orgrun/pkg/errors"
)

// RulesKey is the top-level key holding the rule sequence.
const RulesKey = "rules"

// Validate checks that data is a mapping whose "rules" entry is a sequence.
func Validate(data any) error {
	if data == nil {
		return errors.New(errors.ErrInvalidConfig, "config_data is empty")
	}

	v := reflect.ValueOf(data)
	for v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface {
		if v.IsNil() {
			return errors.New(errors.ErrInvalidConfig, "config_data is empty")
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Map {
		return errors.Newf(errors.ErrInvalidConfig, "config_data must be a mapping, got %s", v.Kind())
	}

	rules, ok := lookup(v, RulesKey)
	if !ok {
		return errors.New(errors.ErrInvalidConfig, "config_data has no 'rules' key")
	}
	for rules.Kind() == reflect.Interface && !rules.IsNil() {
		rules = rules.Elem()
	}
	if rules.Kind() != reflect.Slice && rules.Kind() != reflect.Array {
		return errors.Newf(errors.ErrInvalidConfig, "'rules' must be a sequence, got %s", rules.Kind())
	}
	return nil
}

// lookup finds key in a map with string-like keys.
func lookup(m reflect.Value, key string) (reflect.Value, bool) {
	iter := m.MapRange()
	for iter.Next() {
		k := iter.Key()
		for k.Kind() == reflect.Interface && !k.IsNil() {
			k = k.Elem()
		}
		if k.Kind() == reflect.String && k.String() == key {
			return iter.Value(), true
		}
	}
	return reflect.Value{}, false
}

// Load reads a YAML rule document from disk and validates it.
func Load(path string) (map[string]any, error) {
	raw, err := file.Provider(path).ReadBytes()
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrDocumentLoad, "cannot read rule document %s", path).
			WithDetail("path", path)
	}

	doc, err := yaml.Parser().Unmarshal(raw)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrDocumentLoad, "cannot parse rule document %s", path).
			WithDetail("path", path)
	}

	if err := Validate(doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// Summary describes a rule document for display.
type Summary struct {
	RuleCount int
	RuleNames []string
}

// Summarize lists rule names; unnamed rules are shown by position.
func Summarize(doc map[string]any) Summary {
	rules, _ := doc[RulesKey].([]any)
	s := Summary{RuleCount: len(rules)}
	for i, r := range rules {
		name := fmt.Sprintf("rule #%d", i+1)
		if m, ok := r.(map[string]any); ok {
			if n, ok := m["name"].(string); ok && n != "" {
				name = n
			}
		}
		s.RuleNames = append(s.RuleNames, name)
	}
	return s
}
