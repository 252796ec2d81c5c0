package envelope

import (
	"fmt"

	"github.com/Masterminds/semver/v3"
)

// CheckCompatibility reports whether a document declaring the given schema
// version can be consumed by this engine. Compatibility is MAJOR-equality
// only; minor/patch drift is expected to be forward-compatible at the field
// level. An incompatible version is advisory: preview and import both
// record it as a warning and carry on.
func CheckCompatibility(declared string) (bool, error) {
	v, err := semver.NewVersion(declared)
	if err != nil {
		return false, fmt.Errorf("parse schema version %q: %w", declared, err)
	}
	return v.Major() == semver.MustParse(SchemaVersion).Major(), nil
}
