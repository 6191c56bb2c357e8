package main

import (
	"fmt"
	"os"

	"github.com/questfolio/questfolio/internal/config"
	"github.com/questfolio/questfolio/internal/jokes"
	"github.com/questfolio/questfolio/internal/profile"
	"github.com/questfolio/questfolio/internal/storage"
)

// content is everything loaded from disk before a session starts.
type content struct {
	cfg     config.AppConfig
	profile profile.Profile
	jokes   *jokes.Book
	store   *storage.Store // nil when persistence is disabled or unavailable
}

// loadContent reads config, profile, and jokes, then opens the database.
// Only a bad config is fatal; everything else warns and falls back.
func loadContent() (content, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return content{}, err
	}

	p, err := profile.Load(flagProfile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: using built-in profile: %v\n", err)
	}

	book, err := jokes.Load(flagJokes, flagSeed)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: using built-in jokes: %v\n", err)
	}

	c := content{cfg: cfg, profile: p, jokes: book}

	dbPath := cfg.Storage.Path
	if flagDBPath != "" {
		dbPath = flagDBPath
	}
	if dbPath != "" {
		store, err := storage.Open(dbPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not open database: %v\n", err)
			// Continue without storage - the portfolio still works
		} else {
			c.store = store
		}
	}
	return c, nil
}

// Close releases the database.
func (c content) Close() {
	if c.store != nil {
		c.store.Close()
	}
}
