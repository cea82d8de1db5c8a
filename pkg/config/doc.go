// Package config loads typed configuration structs from environment
// variables, with optional dotenv support. Each config type is parsed once
// per process and cached; the storage packages (pg, redis, mongo) define
// their own Config structs and load them through this package.
//
//	var pgCfg pg.Config
//	config.MustLoad(&pgCfg)
//
// Tests that need a clean slate call ResetCache, and LoadEnv points the
// loader at alternate dotenv files.
package config
