// Package ocr extracts transaction data from receipt images.
package ocr

import (
	"context"

	"fintrack/internal/core"
)

// Receipt is the data pulled out of a scanned receipt: the amount charged
// and a short description, typically the merchant name.
type Receipt struct {
	Amount      core.Money
	Description string
}

// ReceiptReader is the port for outbound OCR adapters.
type ReceiptReader interface {
	ReadReceipt(ctx context.Context, image []byte) (Receipt, error)
}
