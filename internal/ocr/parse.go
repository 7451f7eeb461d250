package ocr

import (
	"errors"
	"regexp"
	"strings"

	"fintrack/internal/core"
)

var (
	ErrNoText   = errors.New("no text recognized in image")
	ErrNoAmount = errors.New("no amount found in receipt text")
)

var amountPattern = regexp.MustCompile(`\d+[.,]\d{2}`)

// totalKeywords mark lines that carry the charged amount. Checked in order;
// the more specific phrases come first so "grand total" beats "total".
var totalKeywords = []string{"grand total", "amount due", "balance due", "total"}

// ParseReceiptText turns raw OCR output into a receipt. The first non-empty
// line becomes the description (receipts lead with the merchant name). The
// amount comes from the last "total"-style line when one exists, otherwise
// the largest decimal value on the receipt, which tolerates layouts where
// item prices appear above an unlabeled sum.
func ParseReceiptText(text string) (Receipt, error) {
	var (
		description string
		totalCents  int64
		maxCents    int64
		foundTotal  bool
		foundAny    bool
	)

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if description == "" {
			description = line
		}

		matches := amountPattern.FindAllString(line, -1)
		if len(matches) == 0 {
			continue
		}
		lower := strings.ToLower(line)
		for _, m := range matches {
			cents, err := core.ParseDecimalToCents(m)
			if err != nil {
				continue
			}
			foundAny = true
			if cents > maxCents {
				maxCents = cents
			}
			for _, kw := range totalKeywords {
				if strings.Contains(lower, kw) {
					totalCents = cents
					foundTotal = true
					break
				}
			}
		}
	}

	if description == "" {
		return Receipt{}, ErrNoText
	}
	if !foundAny {
		return Receipt{}, ErrNoAmount
	}

	amount := maxCents
	if foundTotal {
		amount = totalCents
	}
	return Receipt{
		Amount:      core.Money{Cents: amount},
		Description: description,
	}, nil
}
