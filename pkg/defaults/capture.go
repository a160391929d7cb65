package defaults

import (
	"context"

	"github.com/arthur-debert/macstage/pkg/errors"
	"github.com/arthur-debert/macstage/pkg/filesystem"
	"github.com/arthur-debert/macstage/pkg/logging"
)

// CaptureOptions configures one preference capture
type CaptureOptions struct {
	Store    PreferenceStore
	FS       filesystem.FS
	Builtins []string
	// AppDirs are scanned one level deep for *.app bundles
	AppDirs []string
	Match   string
	// Destination is replaced with the encoded document. Empty skips writing.
	Destination string
}

// Capture enumerates domains, extracts each one in turn and writes the
// resulting document to Destination
func Capture(ctx context.Context, opts CaptureOptions) (*Document, error) {
	logger := logging.GetLogger("defaults.capture")
	done := logging.LogOperationStart(logger, "capture preferences")
	defer done()

	if opts.Store == nil {
		return nil, errors.New(errors.ErrInvalidInput, "capture requires a preference store")
	}
	if opts.FS == nil {
		return nil, errors.New(errors.ErrInvalidInput, "capture requires a filesystem")
	}

	domains := EnumerateDomains(ctx, opts.Store, EnumerateOptions{
		Builtins:     opts.Builtins,
		Applications: ScanApplications(opts.FS, opts.AppDirs),
		Match:        opts.Match,
	})

	doc := &Document{}
	for _, d := range domains {
		if err := ctx.Err(); err != nil {
			return nil, errors.Wrap(err, errors.ErrInternal, "capture cancelled")
		}
		doc.Append(d.ID, Extract(ctx, opts.Store, d.ID))
	}

	logger.Info().
		Int("domains", len(doc.Groups)).
		Int("entries", doc.EntryCount()).
		Msg("Captured preferences")

	if opts.Destination == "" {
		return doc, nil
	}
	if err := WriteDocument(opts.FS, opts.Destination, doc); err != nil {
		return nil, err
	}
	return doc, nil
}
