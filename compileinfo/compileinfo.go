// Package compileinfo reports which build of a tool produced a set of OTU
// tables, so results can be traced back to a commit.
package compileinfo

import (
	"fmt"
	"runtime/debug"
)

type CompileInfo struct {
	Package    string
	Version    string
	GoVersion  string
	Commit     string
	CommitTime string
	Modified   bool
}

func (c CompileInfo) String() string {
	mod := ""
	if c.Modified {
		mod = " Files in the repo were modified after that commit."
	}

	version := ""
	if c.Version != "" && c.Version != "(devel)" {
		version = " " + c.Version
	}

	return fmt.Sprintf("%s%s built with %s at commit %v (%v).%s", c.Package, version, c.GoVersion, c.Commit, c.CommitTime, mod)
}

func Get() CompileInfo {
	out := CompileInfo{}

	z, ok := debug.ReadBuildInfo()
	if !ok {
		return out
	}

	out.GoVersion = z.GoVersion
	out.Package = z.Path
	out.Version = z.Main.Version
	for _, s := range z.Settings {
		switch s.Key {
		case "vcs.revision":
			out.Commit = s.Value
		case "vcs.time":
			out.CommitTime = s.Value
		case "vcs.modified":
			out.Modified = s.Value == "true"
		}
	}

	return out
}
