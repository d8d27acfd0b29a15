package store

import (
	"context"
	"fmt"

	"golang.org/x/mod/semver"
)

// CurrentFormat is the version of the key layout this build reads and writes.
const CurrentFormat = "v1.0.0"

// CheckFormat stamps an unversioned or garbled store with CurrentFormat and
// refuses a store whose major version is newer than ours.
func CheckFormat(ctx context.Context, gw Gateway) error {
	data, ok, err := gw.Get(ctx, KeyFormatVersion)
	if err != nil {
		return fmt.Errorf("read format version: %w", err)
	}
	stored := string(data)
	if ok && semver.IsValid(stored) {
		if semver.Compare(semver.Major(stored), semver.Major(CurrentFormat)) > 0 {
			return fmt.Errorf("%w: %s (this build understands %s)", ErrFormatTooNew, stored, CurrentFormat)
		}
		if semver.Compare(stored, CurrentFormat) >= 0 {
			return nil
		}
	}
	if err := gw.Set(ctx, KeyFormatVersion, []byte(CurrentFormat)); err != nil {
		return fmt.Errorf("write format version: %w", err)
	}
	return nil
}
