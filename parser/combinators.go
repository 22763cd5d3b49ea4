package parser

// opt runs p; if it fails without advancing the cursor, opt succeeds with
// the zero value and no error. A failure that DID advance the cursor (a
// partial match inside p) still propagates, since partial progress means
// the input committed to this alternative.
func opt[T any](s *state, p func(*state) (T, error)) (T, bool, error) {
	start := s.mark()
	v, err := p(s)
	if err != nil {
		if s.mark() == start {
			var zero T
			return zero, false, nil
		}
		return v, false, err
	}
	return v, true, nil
}

// many0 applies p until it fails without consuming input, collecting zero
// or more results.
func many0[T any](s *state, p func(*state) (T, error)) ([]T, error) {
	var out []T
	for {
		start := s.mark()
		v, err := p(s)
		if err != nil {
			if s.mark() == start {
				return out, nil
			}
			return nil, err
		}
		out = append(out, v)
	}
}

// many1 requires at least one successful application of p.
func many1[T any](s *state, p func(*state) (T, error)) ([]T, error) {
	first, err := p(s)
	if err != nil {
		return nil, err
	}
	rest, err := many0(s, p)
	if err != nil {
		return nil, err
	}
	return append([]T{first}, rest...), nil
}

// separatedList1 parses p one or more times, separated by sep, requiring at
// least one element.
func separatedList1[T any](s *state, p func(*state) (T, error), sep func(*state) error) ([]T, error) {
	first, err := p(s)
	if err != nil {
		return nil, err
	}
	out := []T{first}
	for {
		start := s.mark()
		if err := sep(s); err != nil {
			s.reset(start)
			break
		}
		v, err := p(s)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// separatedList0 is separatedList1 that tolerates zero elements.
func separatedList0[T any](s *state, p func(*state) (T, error), sep func(*state) error) ([]T, error) {
	start := s.mark()
	out, err := separatedList1(s, p, sep)
	if err != nil {
		if s.mark() == start {
			return nil, nil
		}
		return nil, err
	}
	return out, nil
}

// alt tries each alternative in declaration order, rewinding between
// attempts, and returns the first that succeeds. If every alternative fails
// without consuming input, alt returns the last error; an alternative that
// partially consumed input before failing propagates its error immediately
// (no cross-alternative recovery past partial progress).
func alt[T any](s *state, alternatives ...func(*state) (T, error)) (T, error) {
	start := s.mark()
	var lastErr error
	for _, p := range alternatives {
		v, err := p(s)
		if err == nil {
			return v, nil
		}
		if s.mark() != start {
			return v, err
		}
		lastErr = err
		s.reset(start)
	}
	var zero T
	return zero, lastErr
}
