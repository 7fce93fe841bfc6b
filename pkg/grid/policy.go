package grid

import (
	"strings"

	"github.com/matzehuels/gridtile/pkg/errors"
)

// Policy describes how a widget's size along one axis may change.
// Fixed is the zero value and excludes every other flag.
type Policy uint8

// Policy flags.
const (
	Fixed         Policy = 0
	GrowAllowed   Policy = 1 << 0
	ShrinkAllowed Policy = 1 << 1
	Expand        Policy = 1 << 2
	Ignored       Policy = 1 << 3
)

// Common policy combinations.
const (
	Minimum          = GrowAllowed
	Maximum          = ShrinkAllowed
	Preferred        = GrowAllowed | ShrinkAllowed
	Expanding        = GrowAllowed | ShrinkAllowed | Expand
	MinimumExpanding = GrowAllowed | Expand
	IgnoredPolicy    = GrowAllowed | ShrinkAllowed | Ignored
)

var namedPolicies = map[string]Policy{
	"fixed":             Fixed,
	"minimum":           Minimum,
	"maximum":           Maximum,
	"preferred":         Preferred,
	"expanding":         Expanding,
	"minimum-expanding": MinimumExpanding,
	"ignored":           IgnoredPolicy,
}

var flagNames = []struct {
	flag Policy
	name string
}{
	{GrowAllowed, "grow"},
	{ShrinkAllowed, "shrink"},
	{Expand, "expand"},
	{Ignored, "ignore"},
}

// Has reports whether every bit of flag is set in p.
func (p Policy) Has(flag Policy) bool { return flag != Fixed && p&flag == flag }

// String returns the named form of p when one exists, otherwise the
// "|"-joined flag list.
func (p Policy) String() string {
	for name, np := range namedPolicies {
		if np == p && name != "minimum" && name != "maximum" {
			return name
		}
	}
	if p == Fixed {
		return "fixed"
	}
	var parts []string
	for _, f := range flagNames {
		if p.Has(f.flag) {
			parts = append(parts, f.name)
		}
	}
	return strings.Join(parts, "|")
}

// ParsePolicy parses a policy name ("preferred") or a "|"-separated flag
// list ("grow|expand"). The empty string parses as Preferred.
func ParsePolicy(s string) (Policy, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return Preferred, nil
	}
	if p, ok := namedPolicies[s]; ok {
		return p, nil
	}
	var p Policy
	for _, part := range strings.Split(s, "|") {
		part = strings.TrimSpace(part)
		found := false
		for _, f := range flagNames {
			if part == f.name {
				p |= f.flag
				found = true
				break
			}
		}
		if !found {
			return Fixed, errors.New(errors.ErrCodeInvalidPolicy, "unknown policy flag %q", part)
		}
	}
	return p, nil
}

// MarshalText implements encoding.TextMarshaler.
func (p Policy) MarshalText() ([]byte, error) { return []byte(p.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Policy) UnmarshalText(text []byte) error {
	v, err := ParsePolicy(string(text))
	if err != nil {
		return err
	}
	*p = v
	return nil
}
