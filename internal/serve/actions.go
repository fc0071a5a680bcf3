package serve

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/andrkelb-school/SW-Situation-1-BauMax/internal/common"
	"github.com/andrkelb-school/SW-Situation-1-BauMax/pkg/renderer"
)

// ServeAction runs the course viewer server until it fails or is killed.
func ServeAction(c *cli.Context) error {
	env, err := common.Setup(c)
	if err != nil {
		return err
	}
	defer env.Close()

	rend := renderer.New(env.Cfg.Container)
	srv := NewServer(env.Loader, env.Cache, rend, env.Logger, env.Cfg.StripScripts)

	httpServer := &http.Server{
		Addr:        env.Cfg.Listen,
		Handler:     srv,
		ReadTimeout: 30 * time.Second,
		IdleTimeout: 60 * time.Second,
	}

	env.Logger.Info("serving course",
		"course", env.Cfg.CourseID,
		"listen", env.Cfg.Listen,
		"cache_enabled", env.Cfg.CacheIsEnabled(),
	)
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}
