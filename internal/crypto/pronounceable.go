package crypto

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"slices"
	"strconv"
)

const (
	consonantChars = "bcdfghjklmnpqrstvwxyz"
	vowelChars     = "aeiou"

	// DefaultSpecialChars is used when no special alphabet is supplied.
	DefaultSpecialChars = "!@#$%^&*"

	// MinBaseLength is the shortest pronounceable part a password may have.
	MinBaseLength = 4

	digitFragmentLength   = 2
	specialFragmentLength = 1
)

var (
	ErrConfiguration     = errors.New("invalid configuration")
	ErrLengthNotPositive = fmt.Errorf("%w: password length must be positive", ErrConfiguration)
	ErrBaseTooShort      = fmt.Errorf("%w: base too short, increase total length", ErrConfiguration)
)

// PronounceableOptions configures GeneratePronounceable.
type PronounceableOptions struct {
	Length       int
	Digits       bool
	Special      bool
	SpecialChars string
}

// BaseLength returns how many characters the pronounceable part gets once the
// digit and special fragments are reserved.
func (o PronounceableOptions) BaseLength() int {
	n := o.Length
	if o.Digits {
		n -= digitFragmentLength
	}
	if o.Special {
		n -= specialFragmentLength
	}
	return n
}

// Validate reports whether the options describe a password that can be built.
func (o PronounceableOptions) Validate() error {
	if o.Length <= 0 {
		return ErrLengthNotPositive
	}
	if o.BaseLength() < MinBaseLength {
		return ErrBaseTooShort
	}
	return nil
}

// IsConfigurationError reports whether err was caused by unusable options.
func IsConfigurationError(err error) bool {
	return errors.Is(err, ErrConfiguration)
}

// GenerateBase returns length characters alternating between consonants and
// vowels. Which of the two comes first is chosen at random.
func GenerateBase(r *rand.Rand, length int) string {
	if length <= 0 {
		return ""
	}

	startWithConsonant := r.IntN(2) == 0

	buf := make([]byte, length)
	for i := range buf {
		if (i%2 == 0) == startWithConsonant {
			buf[i] = pick(r, consonantChars)
		} else {
			buf[i] = pick(r, vowelChars)
		}
	}
	return string(buf)
}

// GeneratePronounceable builds a pronounceable password and splices the
// optional digit and special fragments into it. Options are validated before
// anything is drawn from r.
func GeneratePronounceable(r *rand.Rand, opts PronounceableOptions) (string, error) {
	if err := opts.Validate(); err != nil {
		return "", err
	}

	specialChars := opts.SpecialChars
	if specialChars == "" {
		specialChars = DefaultSpecialChars
	}

	password := []rune(GenerateBase(r, opts.BaseLength()))

	var fragments [][]rune
	if opts.Digits {
		fragments = append(fragments, []rune(strconv.Itoa(10+r.IntN(90))))
	}
	if opts.Special {
		specials := []rune(specialChars)
		fragments = append(fragments, []rune{specials[r.IntN(len(specials))]})
	}

	r.Shuffle(len(fragments), func(i, j int) {
		fragments[i], fragments[j] = fragments[j], fragments[i]
	})

	// Each index is drawn against the password as it stands, so a later
	// fragment may split an earlier one.
	for _, fragment := range fragments {
		pos := r.IntN(len(password) + 1)
		password = slices.Insert(password, pos, fragment...)
	}

	return string(password), nil
}

func pick(r *rand.Rand, charset string) byte {
	return charset[r.IntN(len(charset))]
}
