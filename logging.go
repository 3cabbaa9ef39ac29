// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package qmdd

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

// NewLogger builds a zerolog.Logger writing human-readable output to w,
// matching the console-writer style most of the retrieval pack uses for
// development logging. Pass the result to WithLogger.
func NewLogger(w *os.File) zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{Out: w}).With().Timestamp().Logger()
}

// ConfigFromEnv reads QMDD_NORMALIZATION, QMDD_DECIMALS and QMDD_SEED from
// the process environment, optionally after loading a .env file (ignored
// if absent), and returns the corresponding Option slice. It is meant for
// the example CLI; the engine itself never reads the environment.
func ConfigFromEnv(dotenvPath string) []Option {
	if dotenvPath != "" {
		_ = godotenv.Load(dotenvPath)
	}
	var opts []Option
	switch os.Getenv("QMDD_NORMALIZATION") {
	case "largest-magnitude":
		opts = append(opts, Normalization(RuleLargestMagnitude))
	case "first-nonzero", "":
		// default, nothing to add
	}
	if v := os.Getenv("QMDD_DECIMALS"); v != "" {
		if d, err := strconv.Atoi(v); err == nil {
			opts = append(opts, Decimals(d))
		}
	}
	if v := os.Getenv("QMDD_SEED"); v != "" {
		if s, err := strconv.ParseInt(v, 10, 64); err == nil {
			opts = append(opts, Seed(s))
		}
	}
	return opts
}
