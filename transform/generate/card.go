package generate

import (
	"fmt"
	"strings"
	"time"

	"github.com/pstuifzand/go-textutils/transform/operr"
)

// CardType selects the issuer prefix and number length of a test card
type CardType string

const (
	Visa       CardType = "visa"
	Mastercard CardType = "mastercard"
	Amex       CardType = "amex"
)

// CardOptions configures Cards
type CardOptions struct {
	Type   CardType
	CVV    bool
	Expiry bool
	Count  int
}

// DefaultCardOptions is one Visa number with CVV and expiry
func DefaultCardOptions() CardOptions {
	return CardOptions{Type: Visa, CVV: true, Expiry: true, Count: 1}
}

// Cards returns Luhn-valid test card numbers, one per line, optionally
// followed by a CVV and an expiry month/year in the next five years.
func (g *Generator) Cards(opts CardOptions) (string, error) {
	const op = "credit-card-generator"
	if err := checkCount(op, opts.Count); err != nil {
		return "", err
	}

	var prefixes []string
	length, cvvDigits := 16, 3
	switch opts.Type {
	case Visa, "":
		prefixes = []string{"4"}
	case Mastercard:
		prefixes = []string{"51", "52", "53", "54", "55"}
	case Amex:
		prefixes = []string{"34", "37"}
		length, cvvDigits = 15, 4
	default:
		return "", operr.Config(op, "Unknown card type %q. Use visa, mastercard or amex.", opts.Type)
	}

	now := g.now()
	out := make([]string, opts.Count)
	for i := range out {
		k, err := g.intn(op, len(prefixes))
		if err != nil {
			return "", err
		}
		var b strings.Builder
		b.WriteString(prefixes[k])
		for b.Len() < length-1 {
			d, err := g.intn(op, 10)
			if err != nil {
				return "", err
			}
			b.WriteByte(byte('0' + d))
		}
		number := b.String()
		fields := []string{number + string(byte('0'+luhnCheckDigit(number)))}

		if opts.CVV {
			low := 1
			for j := 1; j < cvvDigits; j++ {
				low *= 10
			}
			v, err := g.intn(op, 9*low)
			if err != nil {
				return "", err
			}
			fields = append(fields, fmt.Sprint(low+v))
		}
		if opts.Expiry {
			month, err := g.intn(op, 12)
			if err != nil {
				return "", err
			}
			years, err := g.intn(op, 5)
			if err != nil {
				return "", err
			}
			fields = append(fields, fmt.Sprintf("%d/%d", month+1, now.Year()+years+1))
		}
		out[i] = strings.Join(fields, ",")
	}
	return strings.Join(out, "\n"), nil
}

// luhnCheckDigit returns the digit that makes number+digit pass the Luhn check
func luhnCheckDigit(number string) int {
	sum := 0
	for i := len(number) - 1; i >= 0; i-- {
		d := int(number[i] - '0')
		// the rightmost payload digit is doubled once the check digit is appended
		if (len(number)-i)%2 == 1 {
			d *= 2
			if d > 9 {
				d -= 9
			}
		}
		sum += d
	}
	return (10 - sum%10) % 10
}

// LuhnValid reports whether a digit string passes the Luhn checksum
func LuhnValid(number string) bool {
	if len(number) < 2 {
		return false
	}
	for _, c := range number {
		if c < '0' || c > '9' {
			return false
		}
	}
	return luhnCheckDigit(number[:len(number)-1]) == int(number[len(number)-1]-'0')
}

func (g *Generator) now() time.Time {
	if g != nil && g.Now != nil {
		return g.Now()
	}
	return time.Now()
}
