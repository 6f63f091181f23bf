package main

import (
	"log/slog"
	"strings"
	"sync"
	"time"

	"shelf/internal/config"
	"shelf/internal/enrich"
	"shelf/internal/library"
	"shelf/internal/logging"
	"shelf/internal/metadata"
	"shelf/internal/posters"
	"shelf/internal/profile"
)

type commandContext struct {
	configFlag  *string
	profileFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	logOnce sync.Once
	log     *slog.Logger
}

func newCommandContext(configFlag, profileFlag *string) *commandContext {
	return &commandContext{
		configFlag:  configFlag,
		profileFlag: profileFlag,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) logger() *slog.Logger {
	c.logOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.log = slog.Default()
			return
		}
		logger, err := logging.NewFromConfig(cfg)
		if err != nil {
			c.log = slog.Default()
			return
		}
		c.log = logger
	})
	return c.log
}

// session bundles the per-command resources: resolved profile, held lock,
// and open store. Close releases them in reverse order.
type session struct {
	profile *profile.Profile
	store   *library.Store
	unlock  func()
}

func (s *session) Close() {
	if s.store != nil {
		_ = s.store.Close()
	}
	if s.unlock != nil {
		s.unlock()
	}
}

func (c *commandContext) openSession() (*session, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}

	var explicit string
	if c.profileFlag != nil {
		explicit = *c.profileFlag
	}
	prof, err := profile.Resolve(cfg, explicit)
	if err != nil {
		return nil, err
	}

	lock, err := prof.Lock()
	if err != nil {
		return nil, err
	}

	dbPath, err := prof.DBPath()
	if err != nil {
		_ = lock.Unlock()
		return nil, err
	}
	store, err := library.Open(dbPath)
	if err != nil {
		_ = lock.Unlock()
		return nil, err
	}

	return &session{
		profile: prof,
		store:   store,
		unlock:  func() { _ = lock.Unlock() },
	}, nil
}

// withSession runs fn against an open session, closing it afterwards.
func (c *commandContext) withSession(fn func(*session) error) error {
	sess, err := c.openSession()
	if err != nil {
		return err
	}
	defer sess.Close()
	return fn(sess)
}

func (c *commandContext) posterCache(sess *session) (*posters.Cache, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	dir, err := sess.profile.PostersDir()
	if err != nil {
		return nil, err
	}
	return posters.New(
		dir,
		cfg.Posters.TargetWidth,
		cfg.Posters.JPEGQuality,
		time.Duration(cfg.Posters.TimeoutSeconds)*time.Second,
		posters.WithLogger(c.logger()),
	)
}

func (c *commandContext) resolver() (*metadata.Resolver, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	return metadata.NewResolver(cfg, c.logger())
}

func (c *commandContext) pipeline(sess *session) (*enrich.Pipeline, error) {
	resolver, err := c.resolver()
	if err != nil {
		return nil, err
	}
	cache, err := c.posterCache(sess)
	if err != nil {
		return nil, err
	}
	return enrich.New(sess.store, resolver, cache, c.logger()), nil
}
