package billing

import (
	"fmt"
	"strconv"

	"github.com/printflow/printflow-api/pkg/apperror"
)

// sequenceDigits is the fixed width of the invoice number suffix.
const sequenceDigits = 6

// FormatInvoiceNumber renders a branch-scoped invoice number, e.g.
// "NBO-000042".
func FormatInvoiceNumber(branchCode string, sequence int) string {
	return fmt.Sprintf("%s-%0*d", branchCode, sequenceDigits, sequence)
}

// ParseSequence extracts the numeric suffix from a stored invoice number.
// A number whose last six characters are not digits is corrupt data: the
// caller must abort rather than guess a sequence that may collide.
func ParseSequence(invoiceNumber string) (int, error) {
	if len(invoiceNumber) < sequenceDigits {
		return 0, apperror.NewFormatError(fmt.Sprintf("invoice number %q has no %d-digit sequence", invoiceNumber, sequenceDigits))
	}
	suffix := invoiceNumber[len(invoiceNumber)-sequenceDigits:]
	seq, err := strconv.Atoi(suffix)
	if err != nil || seq < 0 {
		return 0, apperror.NewFormatError(fmt.Sprintf("invoice number %q has a malformed sequence %q", invoiceNumber, suffix))
	}
	return seq, nil
}

// NextInvoiceNumber produces the number following lastNumber for a branch.
// An empty lastNumber starts the branch at 1. The caller must hold the
// branch serialization lock; this function only parses and formats.
func NextInvoiceNumber(branchCode, lastNumber string) (string, error) {
	seq := 0
	if lastNumber != "" {
		parsed, err := ParseSequence(lastNumber)
		if err != nil {
			return "", err
		}
		seq = parsed
	}
	return FormatInvoiceNumber(branchCode, seq+1), nil
}
