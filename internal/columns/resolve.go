// Package columns resolves user column selectors against a header and projects
// records onto the resolved indices.
package columns

// Resolve turns selector tokens into zero-based field indices against h.
// No tokens selects every column in header order. Tokens are resolved in the
// order given and their results concatenated, so repeats and overlaps are kept.
// The first token that fails aborts the whole call with a *ColumnError.
func Resolve(h *Header, tokens []string) ([]int, error) {
	width := h.Len()
	if len(tokens) == 0 {
		all := make([]int, width)
		for i := range all {
			all[i] = i
		}
		return all, nil
	}
	var out []int
	for _, tok := range tokens {
		idx, err := resolveSpec(h, ParseSpec(tok))
		if err != nil {
			return nil, err
		}
		out = append(out, idx...)
	}
	return out, nil
}

func resolveSpec(h *Header, s Spec) ([]int, error) {
	width := h.Len()
	switch s.Kind {
	case SpecIndex:
		switch {
		case s.Index == 0:
			return nil, &ColumnError{Kind: ErrColumnZero, Token: s.Token, Width: width}
		case s.Index > width || s.Index < -width:
			return nil, &ColumnError{Kind: ErrColumnOutOfRange, Token: s.Token, Column: s.Index, Width: width}
		case s.Index > 0:
			return []int{s.Index - 1}, nil
		default:
			return []int{width + s.Index}, nil
		}
	case SpecRange:
		if s.Lo >= s.Hi {
			return nil, &ColumnError{Kind: ErrRangeNotIncreasing, Token: s.Token, Lo: s.Lo, Hi: s.Hi, Width: width}
		}
		if s.Hi > width {
			return nil, &ColumnError{Kind: ErrRangeOutOfBounds, Token: s.Token, Lo: s.Lo, Hi: s.Hi, Width: width}
		}
		if s.Lo == 0 {
			return nil, &ColumnError{Kind: ErrColumnZero, Token: s.Token, Width: width}
		}
		out := make([]int, 0, s.Hi-s.Lo+1)
		for i := s.Lo; i <= s.Hi; i++ {
			out = append(out, i-1)
		}
		return out, nil
	default:
		i, ok := h.Lookup(s.Name)
		if !ok {
			return nil, &ColumnError{Kind: ErrColumnNotFound, Token: s.Token, Name: s.Name, Width: width}
		}
		return []int{i}, nil
	}
}
