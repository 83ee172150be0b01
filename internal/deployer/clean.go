package deployer

import (
	"os"
	"path/filepath"

	"github.com/merkle-open/nitro-frontify-deployer/internal/errors"
)

// Clean recursively deletes the target directory. It is idempotent: cleaning
// an absent target succeeds.
func (d *Deployer) Clean() error {
	target := d.opts.TargetDirectory
	if target == "" || target == string(filepath.Separator) {
		return errors.NewConfigError("refusing to clean target directory " + target)
	}

	return os.RemoveAll(target)
}
