package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"daspub/internal/archive"
	"daspub/internal/config"
	"daspub/internal/logging"
)

type commandContext struct {
	configFlag   *string
	logLevelFlag *string

	configOnce   sync.Once
	config       *config.Config
	configPath   string
	configExists bool
	configErr    error

	loggerOnce sync.Once
	logger     *slog.Logger
	loggerErr  error
}

func newCommandContext(configFlag, logLevelFlag *string) *commandContext {
	return &commandContext{
		configFlag:   configFlag,
		logLevelFlag: logLevelFlag,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, resolved, exists, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if level := c.logLevelOverride(); level != "" {
			cfg.Logging.Level = level
			if err := cfg.Validate(); err != nil {
				c.configErr = err
				return
			}
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
		c.configPath = resolved
		c.configExists = exists
	})
	return c.config, c.configErr
}

func (c *commandContext) logLevelOverride() string {
	if c.logLevelFlag == nil {
		return ""
	}
	return strings.ToLower(strings.TrimSpace(*c.logLevelFlag))
}

// ensureLogger builds the run logger. Console output goes to errOut so
// command output on stdout stays machine readable.
func (c *commandContext) ensureLogger(errOut io.Writer) (*slog.Logger, error) {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.loggerErr = err
			return
		}
		c.logger, c.loggerErr = logging.NewFromConfigWriter(cfg, errOut)
	})
	return c.logger, c.loggerErr
}

func (c *commandContext) layout(cmd *cobra.Command) (*archive.Layout, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	logger, err := c.ensureLogger(cmd.ErrOrStderr())
	if err != nil {
		return nil, err
	}
	return archive.NewLayout(archive.ConventionsFromConfig(cfg), logger), nil
}

// openArchives opens every configured root. Roots that fail are reported on
// stderr; the command fails only when none could be opened.
func (c *commandContext) openArchives(cmd *cobra.Command) ([]*archive.Archive, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	if err := cfg.RequireArchivePaths(); err != nil {
		return nil, err
	}
	layout, err := c.layout(cmd)
	if err != nil {
		return nil, err
	}
	archives, err := archive.OpenArchives(layout, cfg.Archive.Paths)
	if err != nil {
		if len(archives) == 0 {
			return nil, fmt.Errorf("open archives: %w", err)
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v\n", err)
	}
	return archives, nil
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

func requireDirectoryArg(args []string) (string, error) {
	if len(args) != 1 || strings.TrimSpace(args[0]) == "" {
		return "", errors.New("a directory argument is required")
	}
	return config.ExpandPath(strings.TrimSpace(args[0]))
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
