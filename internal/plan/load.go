package plan

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"strings"

	tfjson "github.com/hashicorp/terraform-json"
)

type Options struct {
	// TerraformBin is the executable used to convert binary plan files.
	TerraformBin string

	// MaxBytes caps the raw plan text kept in the document. Content beyond
	// the ceiling is head/tail truncated, never an error.
	MaxBytes int

	// Stdin is read when source is empty or "-".
	Stdin io.Reader
}

// Load reads a plan from a file path or stdin. Binary Terraform plan files
// are converted with `terraform show`; JSON plan output is parsed into
// resource changes; anything else is kept as plain text.
func Load(ctx context.Context, source string, opts Options) (*Document, error) {
	if opts.TerraformBin == "" {
		opts.TerraformBin = "terraform"
	}

	if source == "" || source == "-" {
		if opts.Stdin == nil {
			return nil, inputErr("no plan source: no file given and stdin unavailable", nil)
		}
		raw, err := io.ReadAll(opts.Stdin)
		if err != nil {
			return nil, inputErr("failed to read plan from stdin", err)
		}
		return fromText(string(raw), opts.MaxBytes)
	}

	info, err := os.Stat(source)
	if err != nil {
		return nil, inputErr("plan file not found: "+source, err)
	}
	if info.IsDir() {
		return nil, inputErr("plan source is a directory: "+source, nil)
	}

	raw, err := os.ReadFile(source)
	if err != nil {
		return nil, inputErr("failed to read plan file: "+source, err)
	}

	// Binary plan files produced by `terraform plan -out` are zip archives.
	if len(raw) >= 2 && raw[0] == 'P' && raw[1] == 'K' {
		return convertBinaryPlan(ctx, source, opts)
	}

	return fromText(string(raw), opts.MaxBytes)
}

func fromText(raw string, maxBytes int) (*Document, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, inputErr("plan input is empty", nil)
	}

	doc := &Document{Format: FormatText, Raw: raw}

	if strings.HasPrefix(strings.TrimLeft(raw, " \t\r\n"), "{") {
		var parsed tfjson.Plan
		if err := json.Unmarshal([]byte(raw), &parsed); err == nil && parsed.FormatVersion != "" {
			doc.Format = FormatJSON
			doc.Parsed = &parsed
			doc.Changes = extractChanges(&parsed)
		}
	}

	doc.Raw, doc.Truncated = Truncate(doc.Raw, maxBytes)
	return doc, nil
}
