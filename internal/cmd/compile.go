package cmd

import (
	"log/slog"

	"github.com/google/uuid"

	"github.com/vitodtagliente/vdtreflex/internal/compiler"
	"github.com/vitodtagliente/vdtreflex/internal/log"
)

// Compile runs the reflection pipeline over the given inputs.
type Compile struct {
	Inputs []string `arg:"" name:"input" help:"Declaration files or directories scanned recursively for .h files" type:"path"`
	Output string   `help:"Output directory for the generated sources" default:"." type:"path" env:"VDTREFLEX_OUTPUT"`
	DryRun bool     `help:"Run the pipeline and the output comparison without writing files"`
	Quiet  bool     `help:"Only log warnings and errors"`
}

// Run is called by Kong when the compile command is executed.
func (c *Compile) Run(logger *slog.Logger) error {
	if c.Quiet {
		logger = log.Quiet(logger)
	}
	// The run id only tags diagnostics; generated output stays
	// byte-deterministic.
	logger = logger.With("run", uuid.NewString())

	logger.Info("Starting reflection compilation", "output", c.Output, "inputs", len(c.Inputs), "dryRun", c.DryRun)
	return compiler.New(c.Output, logger, c.DryRun).Run(c.Inputs)
}
