// This file is part of lc3sim.
//
// lc3sim is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// lc3sim is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with lc3sim.  If not, see <https://www.gnu.org/licenses/>.

// Package version reports the version of the program. The version number is
// set at link time:
//
//	go build -ldflags "-X github.com/jetsetilly/lc3sim/version.number=v0.1.0"
//
// Without a version number the build information embedded by the Go toolchain
// is used to describe the build.
package version

import (
	"fmt"
	"runtime/debug"
)

// ApplicationName is the name to use when referring to the application.
const ApplicationName = "lc3sim"

// set by the linker
var number string

// Version returns the version string, the revision string and whether this is
// a numbered release.
//
// The version is "unreleased" when there is no version number but there is
// VCS information, and "local" when there is neither.
func Version() (string, string, bool) {
	var vcs bool
	var revision string
	var modified bool

	if info, ok := debug.ReadBuildInfo(); ok {
		for _, v := range info.Settings {
			switch v.Key {
			case "vcs":
				vcs = true
			case "vcs.revision":
				revision = v.Value
			case "vcs.modified":
				modified = v.Value == "true"
			}
		}
	}

	if revision == "" {
		revision = "no revision information"
	} else if modified {
		revision = fmt.Sprintf("%s+dirty", revision)
	}

	if number != "" {
		return number, revision, true
	}
	if vcs {
		return "unreleased", revision, false
	}
	return "local", revision, false
}
