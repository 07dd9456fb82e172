package rsmq

const (
	minDurationMs int64 = 0
	maxDurationMs int64 = 9_999_999_000

	minMaxSize int64 = 1024
	maxMaxSize int64 = 65536
	unlimited  int64 = -1

	maxNameLen = 160
)

// validateName implements the *intended* predicate for queue names: reject
// empty, over-long or ill-charactered names. The upstream JS/Rust
// implementations this library is wire-compatible with contain a
// short-circuited version of this check (`name.is_empty() && name.len() >
// 160`, which can never be true) that silently accepts almost anything;
// this implementation fixes that instead of reproducing the bug.
func validateName(name string) error {
	if len(name) == 0 || len(name) > maxNameLen {
		return &InvalidFormatError{Name: name}
	}
	for _, c := range name {
		if !isNameChar(c) {
			return &InvalidFormatError{Name: name}
		}
	}
	return nil
}

func isNameChar(c rune) bool {
	switch {
	case c >= 'a' && c <= 'z':
		return true
	case c >= 'A' && c <= 'Z':
		return true
	case c >= '0' && c <= '9':
		return true
	case c == '_' || c == '-':
		return true
	default:
		return false
	}
}

func numberInRange(field string, value, min, max int64) error {
	if value < min || value > max {
		return &InvalidValueError{Field: field, Value: value, Min: min, Max: max}
	}
	return nil
}

func validateDuration(field string, ms int64) error {
	return numberInRange(field, ms, minDurationMs, maxDurationMs)
}

// validateMaxSize allows either the closed range [1024, 65536] or the
// unlimited sentinel -1.
func validateMaxSize(value int64) error {
	if value == unlimited {
		return nil
	}
	return numberInRange("maxsize", value, minMaxSize, maxMaxSize)
}
