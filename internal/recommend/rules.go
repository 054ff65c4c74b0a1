// internal/recommend/rules.go
package recommend

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	apperrors "portfolio-backend/internal/common/errors"
	"portfolio-backend/internal/common/validation"
)

const rulesSchema = `{
	"type": "object",
	"minProperties": 1,
	"propertyNames": {"minLength": 1},
	"additionalProperties": {
		"type": "array",
		"minItems": 1,
		"items": {"type": "string", "minLength": 1}
	}
}`

var compiledRulesSchema = validation.MustCompile(rulesSchema)

// ServiceRule is one service identifier and its trigger keywords.
type ServiceRule struct {
	ID       string
	Keywords []string
}

// RuleTable maps services to keywords in declaration order. It is never
// mutated after LoadRules returns and may be shared across goroutines.
type RuleTable struct {
	services []ServiceRule
}

// LoadRules reads and parses the rule file at path.
func LoadRules(path string) (*RuleTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, apperrors.NewRulesInvalidError("read "+path, err)
	}
	return ParseRules(data)
}

// ParseRules validates data against the rule schema and decodes it,
// keeping the order in which services are declared.
func ParseRules(data []byte) (*RuleTable, error) {
	result, err := compiledRulesSchema.ValidateBytes(data)
	if err != nil {
		return nil, apperrors.NewRulesInvalidError("parse", err)
	}
	if !result.Valid {
		return nil, apperrors.NewRulesInvalidError(strings.Join(result.GetErrorMessages(), "; "), nil)
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	if err := expectDelim(dec, '{'); err != nil {
		return nil, apperrors.NewRulesInvalidError("decode", err)
	}

	table := &RuleTable{}
	seen := make(map[string]struct{})
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, apperrors.NewRulesInvalidError("decode", err)
		}
		id, _ := tok.(string)
		if strings.TrimSpace(id) == "" {
			return nil, apperrors.NewRulesInvalidError("service identifier must not be blank", nil)
		}
		if _, dup := seen[id]; dup {
			return nil, apperrors.NewRulesInvalidError(fmt.Sprintf("duplicate service %q", id), nil)
		}
		seen[id] = struct{}{}

		var keywords []string
		if err := dec.Decode(&keywords); err != nil {
			return nil, apperrors.NewRulesInvalidError(fmt.Sprintf("service %q", id), err)
		}
		rule := ServiceRule{ID: id, Keywords: make([]string, 0, len(keywords))}
		for _, kw := range keywords {
			if strings.TrimSpace(kw) == "" {
				return nil, apperrors.NewRulesInvalidError(fmt.Sprintf("service %q has a blank keyword", id), nil)
			}
			rule.Keywords = append(rule.Keywords, strings.ToLower(kw))
		}
		table.services = append(table.services, rule)
	}

	if err := expectDelim(dec, '}'); err != nil {
		return nil, apperrors.NewRulesInvalidError("decode", err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, apperrors.NewRulesInvalidError("trailing data after rule object", nil)
	}
	return table, nil
}

func expectDelim(dec *json.Decoder, want json.Delim) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != want {
		return fmt.Errorf("expected %q, got %v", want, tok)
	}
	return nil
}

// Services returns the rules in declaration order.
func (t *RuleTable) Services() []ServiceRule {
	out := make([]ServiceRule, len(t.services))
	copy(out, t.services)
	return out
}

// Len is the number of services.
func (t *RuleTable) Len() int {
	return len(t.services)
}

// Match returns every service with at least one keyword contained in the
// inquiry, compared case-insensitively, in declaration order.
func (t *RuleTable) Match(inquiry string) []string {
	text := strings.ToLower(inquiry)
	matched := []string{}
	if text == "" {
		return matched
	}
	for _, svc := range t.services {
		for _, kw := range svc.Keywords {
			if strings.Contains(text, kw) {
				matched = append(matched, svc.ID)
				break
			}
		}
	}
	return matched
}
