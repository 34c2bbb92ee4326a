package cmd

import "fmt"

// Version is set via ldflags at build time:
// -ldflags "-X github.com/vitodtagliente/vdtreflex/internal/cmd.Version=x.y.z"
var Version = ""

// VersionCmd prints the vdtreflex version.
type VersionCmd struct{}

func (v *VersionCmd) Run() error {
	version := Version
	if version == "" {
		version = "0.0.1-dev"
	}
	fmt.Println("vdtreflex", version)
	return nil
}
