// Package config declares the root command line surface of vdtreflex.
package config

import "github.com/vitodtagliente/vdtreflex/internal/cmd"

// LogConfig groups the logging flags shared by every command.
type LogConfig struct {
	Level string `help:"Log level: debug, info, warn or error. Defaults to info, or warn when stdout is not a terminal." env:"VDTREFLEX_LOG_LEVEL"`
	File  string `help:"Optional log file path" env:"VDTREFLEX_LOG_FILE"`
}

// CLI is the kong root: global flags plus the available commands.
type CLI struct {
	ConfigPath string    `name:"config" help:"Path to a configuration file" type:"path"`
	Log        LogConfig `embed:"" prefix:"log."`

	Compile cmd.Compile       `cmd:"" help:"Compile annotated declaration files into reflection sources"`
	Config  cmd.ConfigCommand `cmd:"" help:"Manage configuration files"`
	Version cmd.VersionCmd    `cmd:"" help:"Print the vdtreflex version"`
}
