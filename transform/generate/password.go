package generate

import (
	"regexp"
	"strings"

	"github.com/pstuifzand/go-textutils/transform/operr"
)

const (
	lowerChars   = "abcdefghijklmnopqrstuvwxyz"
	upperChars   = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	numberChars  = "0123456789"
	symbolChars  = "!@#$%^&*()_+-=[]{}|;:,.<>?"
	similarChars = "il1Lo0O"
	// ambiguousChars are symbols that are easy to mistype or misread
	ambiguousChars = "{}[]()/\\'\"`~,;.<>"
)

// PasswordOptions configures Password
type PasswordOptions struct {
	Length           int
	Uppercase        bool
	Numbers          bool
	Symbols          bool
	ExcludeSimilar   bool
	ExcludeAmbiguous bool
	// Charset replaces the character pool entirely when set
	Charset string
	Count   int
}

// DefaultPasswordOptions is a single 16 character password from every class
func DefaultPasswordOptions() PasswordOptions {
	return PasswordOptions{Length: 16, Uppercase: true, Numbers: true, Symbols: true, Count: 1}
}

// Pool returns the characters a password is drawn from
func (o PasswordOptions) Pool() string {
	if o.Charset != "" {
		return o.Charset
	}
	lower, upper, numbers, symbols := lowerChars, upperChars, numberChars, symbolChars
	if o.ExcludeSimilar {
		lower = without(lower, similarChars)
		upper = without(upper, similarChars)
		numbers = without(numbers, similarChars)
	}
	if o.ExcludeAmbiguous {
		symbols = without(symbols, ambiguousChars)
	}
	pool := lower
	if o.Uppercase {
		pool += upper
	}
	if o.Numbers {
		pool += numbers
	}
	if o.Symbols {
		pool += symbols
	}
	return pool
}

func without(s, chars string) string {
	return strings.Map(func(r rune) rune {
		if strings.ContainsRune(chars, r) {
			return -1
		}
		return r
	}, s)
}

// Password returns opts.Count passwords, one per line
func (g *Generator) Password(opts PasswordOptions) (string, error) {
	const op = "password-generator"
	if opts.Length < 4 || opts.Length > 128 {
		return "", operr.Config(op, "Password length must be between 4 and 128, got %d.", opts.Length)
	}
	if err := checkCount(op, opts.Count); err != nil {
		return "", err
	}
	pool := []rune(opts.Pool())
	if len(pool) == 0 {
		return "", operr.Config(op, "The character set is empty.")
	}

	out := make([]string, opts.Count)
	for i := range out {
		var b strings.Builder
		for j := 0; j < opts.Length; j++ {
			k, err := g.intn(op, len(pool))
			if err != nil {
				return "", err
			}
			b.WriteRune(pool[k])
		}
		out[i] = b.String()
	}
	return strings.Join(out, "\n"), nil
}

// PassphraseOptions configures Passphrase
type PassphraseOptions struct {
	Words     int
	Separator string
	Count     int
}

// Passphrase returns opts.Count passphrases of random dictionary words
func (g *Generator) Passphrase(opts PassphraseOptions) (string, error) {
	const op = "password-generator"
	if opts.Words < 2 || opts.Words > 12 {
		return "", operr.Config(op, "Passphrase word count must be between 2 and 12, got %d.", opts.Words)
	}
	if err := checkCount(op, opts.Count); err != nil {
		return "", err
	}

	out := make([]string, opts.Count)
	for i := range out {
		picked := make([]string, opts.Words)
		for j := range picked {
			k, err := g.intn(op, len(wordList))
			if err != nil {
				return "", err
			}
			picked[j] = wordList[k]
		}
		out[i] = strings.Join(picked, opts.Separator)
	}
	return strings.Join(out, "\n"), nil
}

var (
	upperRe  = regexp.MustCompile(`[A-Z]`)
	lowerRe  = regexp.MustCompile(`[a-z]`)
	digitRe  = regexp.MustCompile(`[0-9]`)
	symbolRe = regexp.MustCompile(`[^A-Za-z0-9]`)
)

// StrengthLabels names the Strength scores
var StrengthLabels = []string{"Very Weak", "Weak", "Medium", "Strong", "Very Strong"}

// Strength scores a password from 0 (very weak) to 4 (very strong)
func Strength(password string) int {
	if password == "" {
		return 0
	}
	score := 0
	if len([]rune(password)) >= 8 {
		score++
	}
	if len([]rune(password)) >= 12 {
		score++
	}
	if upperRe.MatchString(password) && lowerRe.MatchString(password) {
		score++
	}
	if digitRe.MatchString(password) {
		score++
	}
	if symbolRe.MatchString(password) {
		score++
	}
	if score > 4 {
		score = 4
	}
	return score
}
