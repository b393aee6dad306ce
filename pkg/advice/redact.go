package advice

import (
	"context"

	"github.com/mediconsult/platform/pkg/dlp"
)

// Redacting masks identifiers in the narrative before calling next.
func Redacting(next Provider, detector *dlp.Detector) Provider {
	return ProviderFunc(func(ctx context.Context, req Request) (string, error) {
		req.Narrative, _ = detector.Redact(req.Narrative)
		return next.Generate(ctx, req)
	})
}
