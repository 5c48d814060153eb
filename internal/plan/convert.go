package plan

import (
	"context"
	"path/filepath"

	"github.com/hashicorp/terraform-exec/tfexec"
)

// convertBinaryPlan renders a binary plan file through `terraform show`,
// producing both the human-readable text and, when possible, the JSON
// representation used for resource-change extraction. A JSON conversion
// failure degrades to text-only analysis rather than failing the load.
func convertBinaryPlan(ctx context.Context, path string, opts Options) (*Document, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, inputErr("failed to resolve plan path: "+path, err)
	}

	tf, err := tfexec.NewTerraform(filepath.Dir(abs), opts.TerraformBin)
	if err != nil {
		return nil, inputErr("failed to set up terraform executor", err)
	}

	human, err := tf.ShowPlanFileRaw(ctx, abs)
	if err != nil {
		return nil, inputErr("failed to convert plan file to text", err)
	}

	doc, err := fromText(human, opts.MaxBytes)
	if err != nil {
		return nil, err
	}

	if parsed, err := tf.ShowPlanFile(ctx, abs); err == nil && parsed != nil {
		doc.Parsed = parsed
		doc.Changes = extractChanges(parsed)
	}

	return doc, nil
}
