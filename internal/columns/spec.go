package columns

import (
	"strconv"
	"strings"
)

// SpecKind identifies how a selector token was classified.
type SpecKind int

const (
	SpecIndex SpecKind = iota // 1-based, or negative from the end
	SpecRange                 // inclusive 1-based a-b
	SpecName                  // literal header match
)

func (k SpecKind) String() string {
	switch k {
	case SpecIndex:
		return "index"
	case SpecRange:
		return "range"
	case SpecName:
		return "name"
	default:
		return "unknown"
	}
}

// Spec is a classified selector token. Only the fields of its Kind are set.
type Spec struct {
	Kind  SpecKind
	Token string
	Index int
	Lo    int
	Hi    int
	Name  string
}

// ParseSpec classifies a token by attempted parse: integer, then range, then
// name. The first parse that succeeds wins, so a header literally named "5" or
// "1-2" can never be selected by name.
func ParseSpec(token string) Spec {
	if n, err := strconv.ParseInt(token, 10, strconv.IntSize); err == nil {
		return Spec{Kind: SpecIndex, Token: token, Index: int(n)}
	}
	if lo, hi, ok := parseRange(token); ok {
		return Spec{Kind: SpecRange, Token: token, Lo: lo, Hi: hi}
	}
	return Spec{Kind: SpecName, Token: token, Name: token}
}

// parseRange splits at the first '-' and requires two unsigned integers.
func parseRange(s string) (int, int, bool) {
	a, b, ok := strings.Cut(s, "-")
	if !ok {
		return 0, 0, false
	}
	lo, err := parseUint(a)
	if err != nil {
		return 0, 0, false
	}
	hi, err := parseUint(b)
	if err != nil {
		return 0, 0, false
	}
	return lo, hi, true
}

func parseUint(s string) (int, error) {
	n, err := strconv.ParseUint(strings.TrimPrefix(s, "+"), 10, strconv.IntSize-1)
	if err != nil {
		return 0, err
	}
	return int(n), nil
}

// SplitTokens flattens repeated selector flags: each value is split on ',' and
// every token is whitespace-trimmed. Order is preserved.
func SplitTokens(values []string) []string {
	var out []string
	for _, v := range values {
		for _, tok := range strings.Split(v, ",") {
			out = append(out, strings.TrimSpace(tok))
		}
	}
	return out
}
