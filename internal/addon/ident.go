package addon

import (
	"fmt"
	"strings"
)

// Identifiers are "msa:" followed by three zero-padded decimal fields of
// FieldWidth digits each, in title, season, episode order:
//
//	msa:007001002  -> title 7, season 1, episode 2
//
// Clients persist these tokens, so the layout is fixed. The largest value a
// field can carry is MaxFieldValue.
const (
	IDPrefix      = "msa:"
	FieldWidth    = 3
	MaxFieldValue = 999

	idLength = len(IDPrefix) + 3*FieldWidth
)

// MovieSentinel is the season and episode value used in movie identifiers.
const MovieSentinel = 1

// ID is the decoded form of an identifier token.
type ID struct {
	Title   uint
	Season  uint
	Episode uint
}

// MovieID returns the identifier addressing a title as a whole.
func MovieID(title uint) ID {
	return ID{Title: title, Season: MovieSentinel, Episode: MovieSentinel}
}

// String returns the token form of id, or a descriptive placeholder when a
// field overflows.
func (id ID) String() string {
	token, err := Encode(id)
	if err != nil {
		return fmt.Sprintf("%s<%d/%d/%d>", IDPrefix, id.Title, id.Season, id.Episode)
	}
	return token
}

// Encode returns the token for id. Every field must be at most MaxFieldValue.
func Encode(id ID) (string, error) {
	for _, f := range []struct {
		name  string
		value uint
	}{
		{"title", id.Title},
		{"season", id.Season},
		{"episode", id.Episode},
	} {
		if f.value > MaxFieldValue {
			return "", fmt.Errorf("%w: %s %d exceeds %d", ErrFieldOverflow, f.name, f.value, MaxFieldValue)
		}
	}
	return fmt.Sprintf("%s%03d%03d%03d", IDPrefix, id.Title, id.Season, id.Episode), nil
}

// Decode parses a token produced by Encode. Anything that is not exactly the
// prefix followed by 3*FieldWidth ASCII digits is rejected.
func Decode(token string) (ID, error) {
	if len(token) != idLength {
		return ID{}, fmt.Errorf("%w: %q: want %d characters, got %d", ErrMalformedIdentifier, token, idLength, len(token))
	}
	digits, ok := strings.CutPrefix(token, IDPrefix)
	if !ok {
		return ID{}, fmt.Errorf("%w: %q: missing %q prefix", ErrMalformedIdentifier, token, IDPrefix)
	}

	var fields [3]uint
	for i := 0; i < len(digits); i++ {
		c := digits[i]
		if c < '0' || c > '9' {
			return ID{}, fmt.Errorf("%w: %q: invalid character %q", ErrMalformedIdentifier, token, c)
		}
		fields[i/FieldWidth] = fields[i/FieldWidth]*10 + uint(c-'0')
	}

	return ID{Title: fields[0], Season: fields[1], Episode: fields[2]}, nil
}
