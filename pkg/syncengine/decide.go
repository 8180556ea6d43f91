package syncengine

import (
	"github.com/spf13/afero"

	"github.com/kadegen/granolasync/internal/apperr"
	"github.com/kadegen/granolasync/pkg/convert"
	"github.com/kadegen/granolasync/pkg/frontmatter"
)

// decideAction implements the action-decision rule: absent rendered
// file -> Create; malformed or absent frontmatter -> Update (treat as
// missing provenance); else compare remote freshness against the
// frontmatter's own recorded freshness.
func decideAction(fs afero.Fs, renderedPath string, meta convert.DocumentMetadata) (Action, error) {
	exists, err := afero.Exists(fs, renderedPath)
	if err != nil {
		return ActionSkip, apperr.Wrap(apperr.KindFilesystem, "stat rendered document", err)
	}
	if !exists {
		return ActionCreate, nil
	}

	data, err := afero.ReadFile(fs, renderedPath)
	if err != nil {
		return ActionSkip, apperr.Wrap(apperr.KindFilesystem, "read rendered document", err)
	}

	fm, _, err := frontmatter.Read(data)
	if err != nil || fm == nil {
		return ActionUpdate, nil
	}

	remoteSource := meta.UpdatedAt
	if remoteSource == "" {
		remoteSource = meta.CreatedAt
	}
	remoteTS, err := convert.ParseTimestamp(remoteSource)
	if err != nil {
		return ActionSkip, apperr.Wrap(apperr.KindParse, "parse remote freshness timestamp", err)
	}

	localTS := fm.FreshnessTimestamp()

	if remoteTS.After(localTS) {
		return ActionUpdate, nil
	}
	return ActionSkip, nil
}
