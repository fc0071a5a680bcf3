// Package cache implements the cache inspection command.
package cache

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/andrkelb-school/SW-Situation-1-BauMax/internal/common"
	"github.com/andrkelb-school/SW-Situation-1-BauMax/pkg/caching"
)

// CacheAction prints the entries of the current cache version and
// optionally clears them.
func CacheAction(c *cli.Context) error {
	env, err := common.Setup(c)
	if err != nil {
		return err
	}
	defer env.Close()

	if c.Bool("clear") {
		removed := env.Cache.Clear()
		fmt.Printf("Removed %d cache entries (version %s)\n", removed, caching.Version)
		return nil
	}

	keys := env.Cache.Keys()
	fmt.Printf("Cache version %s, %d entries\n", caching.Version, len(keys))
	for _, key := range keys {
		fmt.Println("  " + key)
	}
	return nil
}
