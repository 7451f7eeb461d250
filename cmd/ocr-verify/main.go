package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"

	"fintrack/internal/ocr/vision"
)

// ocr-verify checks Vision API credentials by running a single receipt
// image through text detection. Run it once after provisioning a service
// account to confirm the deployment can scan receipts.
func main() {
	imagePath := flag.String("image", "", "path to a receipt image (jpg/png)")
	timeout := flag.Duration("timeout", 30*time.Second, "request timeout")
	flag.Parse()

	_ = godotenv.Load()

	if *imagePath == "" {
		fmt.Fprintln(os.Stderr, "usage: ocr-verify -image <receipt.jpg>")
		os.Exit(2)
	}

	image, err := os.ReadFile(*imagePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "read image: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	client, err := vision.NewFromEnv(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "initialize Vision client: %v\n", err)
		fmt.Fprintln(os.Stderr, "set OCR_SERVICE_ACCOUNT_JSON, OCR_SERVICE_ACCOUNT_FILE or GOOGLE_APPLICATION_CREDENTIALS")
		os.Exit(1)
	}

	receipt, err := client.ReadReceipt(ctx, image)
	if err != nil {
		fmt.Fprintf(os.Stderr, "scan receipt: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Credentials OK.")
	fmt.Printf("  description: %s\n", receipt.Description)
	fmt.Printf("  amount:      %s\n", receipt.Amount)
	os.Exit(0)
}
