package quote

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/nidhireddyjanga/rfp-ai-system/internal/model"
)

// WriteQuote writes one RFP's quote to pricing_output_<rfp_id>.json in dir.
func WriteQuote(dir string, q *model.Quote) (string, error) {
	data, err := json.MarshalIndent(q, "", "  ")
	if err != nil {
		return "", eris.Wrapf(err, "quote: marshal quote for rfp %s", q.RFPID)
	}

	path := filepath.Join(dir, fmt.Sprintf("pricing_output_%s.json", q.RFPID))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", eris.Wrapf(err, "quote: write %s", path)
	}

	zap.L().Info("quote: wrote quote file",
		zap.String("rfp_id", q.RFPID),
		zap.String("path", path),
	)
	return path, nil
}

// WriteBatch writes the combined batch result to
// pricing_output_combined.json in dir.
func WriteBatch(dir string, batch *model.BatchResult) (string, error) {
	data, err := json.MarshalIndent(batch, "", "  ")
	if err != nil {
		return "", eris.Wrap(err, "quote: marshal batch result")
	}

	path := filepath.Join(dir, "pricing_output_combined.json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", eris.Wrapf(err, "quote: write %s", path)
	}

	zap.L().Info("quote: wrote combined file",
		zap.Int("rfps", len(batch.RFPs)),
		zap.String("path", path),
	)
	return path, nil
}
