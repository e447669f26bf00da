package cmd

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"

	"github.com/spf13/cobra"
)

// Build information, set at link time, e.g.
//
//	go build -ldflags "-X github.com/oneconcern/gpmodel/cmd/gpmodel/cmd.Version=v0.1.0"
var (
	Version   string
	BuildDate string
	GitCommit string
	GitState  string
)

// VersionInfo describes the build of the CLI
type VersionInfo struct {
	Version   string `json:"version" yaml:"version"`
	BuildDate string `json:"buildDate,omitempty" yaml:"buildDate,omitempty"`
	GitCommit string `json:"gitCommit,omitempty" yaml:"gitCommit,omitempty"`
	GitState  string `json:"gitState,omitempty" yaml:"gitState,omitempty"`
	GoVersion string `json:"goVersion" yaml:"goVersion"`
}

// NewVersionInfo reports the build information.
//
// When not set at link time, the VCS settings recorded by the go tool are used.
func NewVersionInfo() VersionInfo {
	ver := VersionInfo{
		Version:   Version,
		BuildDate: BuildDate,
		GitCommit: GitCommit,
		GitState:  GitState,
		GoVersion: runtime.Version(),
	}
	if info, ok := debug.ReadBuildInfo(); ok {
		for _, setting := range info.Settings {
			switch {
			case setting.Key == "vcs.revision" && ver.GitCommit == "":
				ver.GitCommit = setting.Value
			case setting.Key == "vcs.time" && ver.BuildDate == "":
				ver.BuildDate = setting.Value
			case setting.Key == "vcs.modified" && ver.GitState == "":
				ver.GitState = "clean"
				if setting.Value == "true" {
					ver.GitState = "dirty"
				}
			}
		}
	}
	if ver.Version == "" {
		ver.Version = "dev"
	}
	return ver
}

func (v VersionInfo) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Version: %s\n", v.Version)
	fmt.Fprintf(&b, "Build date: %s\n", v.BuildDate)
	fmt.Fprintf(&b, "Commit: %s\n", v.GitCommit)
	fmt.Fprintf(&b, "Working tree: %s\n", v.GitState)
	fmt.Fprintf(&b, "Go: %s\n", v.GoVersion)
	return b.String()
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version of gpmodel",
	Long: `Print the version of gpmodel:
	* the semver of the release (git describe --tags)
	* the date of the build
	* the git commit the binary was built from
	* the state of the working tree at build time, dirty when there were uncommitted changes
`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ver := NewVersionInfo()
		if gpmodelFlags.root.output == formatTable {
			fmt.Fprint(cmd.OutOrStdout(), ver.String())
			return
		}
		formatter, err := formatterFor(gpmodelFlags.root.output)
		if err != nil {
			wrapFatalln("invalid output", err)
			return
		}
		if err := formatter.Format(cmd.OutOrStdout(), ver); err != nil {
			wrapFatalln("cannot write version", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
