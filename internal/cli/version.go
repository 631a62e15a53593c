package cli

import (
	"encoding/json"
	"fmt"

	"github.com/tacogips/kickstart/internal/version"
)

// printBuildInfo writes build metadata to stdout, as JSON when asJSON is set.
func printBuildInfo(asJSON bool) error {
	info := version.Get()
	if asJSON {
		data, err := json.MarshalIndent(info, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal build info: %w", err)
		}
		fmt.Fprintln(stdout, string(data))
		return nil
	}
	fmt.Fprintln(stdout, info.String())
	return nil
}
