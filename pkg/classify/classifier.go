package classify

import (
	"sort"
	"strings"
	"sync"

	"github.com/goliatone/go-formfill/internal/textnorm"
	"github.com/goliatone/go-formfill/pkg/model"
)

// Matcher decides whether a rule applies to a field.
type Matcher func(field model.FieldDescriptor) bool

// Resolver picks the kind for a field once its rule matched.
type Resolver func(field model.FieldDescriptor) model.Kind

// Rule is one entry of the classification table.
type Rule struct {
	Name     string
	Priority int
	Match    Matcher
	Resolve  Resolver
	order    int
}

// Classifier evaluates rules from highest to lowest priority; ties fall back
// to registration order. It holds no per-call state.
type Classifier struct {
	mu    sync.RWMutex
	rules []Rule
}

// New constructs a classifier with the built-in rule table.
func New() *Classifier {
	c := &Classifier{}
	c.registerBuiltins()
	return c
}

// Empty returns a classifier without rules. Every field classifies as None.
func Empty() *Classifier {
	return &Classifier{}
}

// Register adds a rule that reports a fixed kind.
func (c *Classifier) Register(name string, priority int, match Matcher, kind model.Kind) {
	c.RegisterResolver(name, priority, match, func(model.FieldDescriptor) model.Kind { return kind })
}

// RegisterResolver adds a rule whose kind depends on the field.
func (c *Classifier) RegisterResolver(name string, priority int, match Matcher, resolve Resolver) {
	if c == nil || match == nil || resolve == nil {
		return
	}
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	c.rules = append(c.rules, Rule{
		Name:     trimmed,
		Priority: priority,
		Match:    match,
		Resolve:  resolve,
		order:    len(c.rules),
	})
}

// Classify returns the kind of field, or KindNone when no rule matches.
func (c *Classifier) Classify(field model.FieldDescriptor) model.Kind {
	kind, _ := c.Explain(field)
	return kind
}

// Explain returns the kind together with the name of the rule that produced
// it. The rule name is empty for KindNone. A rule whose kind the control's
// native type cannot hold is passed over, so type=tel is a phone whatever
// its name says.
func (c *Classifier) Explain(field model.FieldDescriptor) (model.Kind, string) {
	field = normalize(field)
	if !Fillable(field) {
		return model.KindNone, ""
	}
	for _, rule := range c.sorted() {
		if !rule.Match(field) {
			continue
		}
		kind := rule.Resolve(field)
		if kind == model.KindNone || !Representable(field, kind) {
			continue
		}
		return kind, rule.Name
	}
	return model.KindNone, ""
}

// Rules lists rule names in evaluation order.
func (c *Classifier) Rules() []string {
	rules := c.sorted()
	out := make([]string, 0, len(rules))
	for _, rule := range rules {
		out = append(out, rule.Name)
	}
	return out
}

func (c *Classifier) sorted() []Rule {
	if c == nil {
		return nil
	}
	c.mu.RLock()
	rules := append([]Rule(nil), c.rules...)
	c.mu.RUnlock()
	sort.SliceStable(rules, func(i, j int) bool {
		if rules[i].Priority == rules[j].Priority {
			return rules[i].order < rules[j].order
		}
		return rules[i].Priority > rules[j].Priority
	})
	return rules
}

func normalize(field model.FieldDescriptor) model.FieldDescriptor {
	field.NameToken = textnorm.Fold(field.NameToken)
	field.Type = strings.ToLower(strings.TrimSpace(field.Type))
	return field
}

// HasAny reports whether token contains any of the fragments.
func HasAny(token string, fragments ...string) bool {
	for _, fragment := range fragments {
		if fragment != "" && strings.Contains(token, fragment) {
			return true
		}
	}
	return false
}

// HasWord reports whether any of words is a whole segment of token.
func HasWord(token string, words ...string) bool {
	for _, word := range words {
		if textnorm.HasSegment(token, word) {
			return true
		}
	}
	return false
}

// Words builds a matcher over whole segments of the name token, for
// fragments too short to match as substrings.
func Words(words ...string) Matcher {
	return func(field model.FieldDescriptor) bool {
		return HasWord(field.NameToken, words...)
	}
}

// Tokens builds a matcher over the name token.
func Tokens(fragments ...string) Matcher {
	return func(field model.FieldDescriptor) bool {
		return HasAny(field.NameToken, fragments...)
	}
}

// Types builds a matcher over the native input type.
func Types(types ...string) Matcher {
	return func(field model.FieldDescriptor) bool {
		if field.Type == "" {
			return false
		}
		for _, t := range types {
			if field.Type == t {
				return true
			}
		}
		return false
	}
}

// Either matches when any matcher does.
func Either(matchers ...Matcher) Matcher {
	return func(field model.FieldDescriptor) bool {
		for _, m := range matchers {
			if m != nil && m(field) {
				return true
			}
		}
		return false
	}
}

// Both matches when every matcher does.
func Both(matchers ...Matcher) Matcher {
	return func(field model.FieldDescriptor) bool {
		for _, m := range matchers {
			if m == nil || !m(field) {
				return false
			}
		}
		return len(matchers) > 0
	}
}

// Not inverts a matcher.
func Not(m Matcher) Matcher {
	return func(field model.FieldDescriptor) bool {
		return m != nil && !m(field)
	}
}
