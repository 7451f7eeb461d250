// Package vision reads receipts through the Google Cloud Vision API.
package vision

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	goption "google.golang.org/api/option"
	gvision "google.golang.org/api/vision/v1"

	"fintrack/internal/ocr"
)

type Client struct {
	svc *gvision.Service
}

var _ ocr.ReceiptReader = (*Client)(nil)

// NewFromEnv creates a Vision client using service account credentials.
// Reads OCR_SERVICE_ACCOUNT_JSON, OCR_SERVICE_ACCOUNT_FILE, or
// GOOGLE_APPLICATION_CREDENTIALS, in that order.
func NewFromEnv(ctx context.Context) (*Client, error) {
	credentialsJSON, err := loadCredentials(ctx)
	if err != nil {
		return nil, err
	}

	svc, err := gvision.NewService(ctx,
		goption.WithCredentialsJSON(credentialsJSON),
		goption.WithScopes(gvision.CloudVisionScope))
	if err != nil {
		return nil, fmt.Errorf("create vision service: %w", err)
	}

	slog.InfoContext(ctx, "Google Vision service created", "component", "ocr")
	return &Client{svc: svc}, nil
}

func loadCredentials(ctx context.Context) ([]byte, error) {
	inline := strings.TrimSpace(os.Getenv("OCR_SERVICE_ACCOUNT_JSON"))
	file := strings.TrimSpace(os.Getenv("OCR_SERVICE_ACCOUNT_FILE"))
	if inline == "" && file == "" {
		file = strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"))
	}

	switch {
	case inline != "":
		return []byte(inline), nil
	case file != "":
		data, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("read service account file: %w", err)
		}
		slog.InfoContext(ctx, "Read OCR credentials from file", "path", file, "size", len(data))
		return data, nil
	default:
		return nil, errors.New("missing service account credentials (set OCR_SERVICE_ACCOUNT_JSON, OCR_SERVICE_ACCOUNT_FILE, or GOOGLE_APPLICATION_CREDENTIALS)")
	}
}

// ReadReceipt runs text detection on the image and parses the result.
func (c *Client) ReadReceipt(ctx context.Context, image []byte) (ocr.Receipt, error) {
	if c.svc == nil {
		return ocr.Receipt{}, errors.New("vision service not initialized")
	}
	if len(image) == 0 {
		return ocr.Receipt{}, errors.New("empty image")
	}

	req := &gvision.BatchAnnotateImagesRequest{
		Requests: []*gvision.AnnotateImageRequest{{
			Image: &gvision.Image{
				Content: base64.StdEncoding.EncodeToString(image),
			},
			Features: []*gvision.Feature{{Type: "TEXT_DETECTION"}},
		}},
	}

	resp, err := c.svc.Images.Annotate(req).Context(ctx).Do()
	if err != nil {
		return ocr.Receipt{}, fmt.Errorf("annotate image: %w", err)
	}
	if len(resp.Responses) == 0 {
		return ocr.Receipt{}, ocr.ErrNoText
	}
	r := resp.Responses[0]
	if r.Error != nil {
		return ocr.Receipt{}, fmt.Errorf("vision API error: %s", r.Error.Message)
	}

	text := ""
	if r.FullTextAnnotation != nil {
		text = r.FullTextAnnotation.Text
	} else if len(r.TextAnnotations) > 0 {
		text = r.TextAnnotations[0].Description
	}
	if strings.TrimSpace(text) == "" {
		return ocr.Receipt{}, ocr.ErrNoText
	}

	receipt, err := ocr.ParseReceiptText(text)
	if err != nil {
		return ocr.Receipt{}, err
	}

	slog.DebugContext(ctx, "Receipt parsed",
		"component", "ocr",
		"amount_cents", receipt.Amount.Cents,
		"description", receipt.Description)
	return receipt, nil
}
