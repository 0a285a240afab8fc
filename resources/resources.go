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

// Package resources contains functions to prepare paths for lc3sim resources,
// such as the preferences file.
//
// If a directory named ".lc3sim" exists in the current working directory then
// that is the base path for all resources. Otherwise the base path is the
// "lc3sim" directory in the user's configuration directory. On a modern Linux
// system that would be:
//
//	/home/user/.config/lc3sim/
//
// If there is no configuration directory the temporary directory is used.
package resources

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const localResourcePath = ".lc3sim"
const configResourcePath = "lc3sim"

func basePath() (string, error) {
	if fi, err := os.Stat(localResourcePath); err == nil && fi.IsDir() {
		return localResourcePath, nil
	}
	cnf, err := os.UserConfigDir()
	if err != nil {
		// no home directory. this is likely to be a restricted environment
		// such as a build server
		return filepath.Join(os.TempDir(), configResourcePath), nil
	}
	return filepath.Join(cnf, configResourcePath), nil
}

// JoinPath prepends the supplied path with the resource base path.
//
// The function creates all directories necessary to reach the end of the
// sub-path. It does not otherwise touch or create the file.
func JoinPath(path ...string) (string, error) {
	b, err := basePath()
	if err != nil {
		return "", err
	}

	p := filepath.Join(path...)
	if !strings.HasPrefix(p, b) {
		p = filepath.Join(b, p)
	}

	if err := os.MkdirAll(filepath.Dir(p), 0700); err != nil {
		return "", err
	}

	return p, nil
}

// UniqueFilename creates a filename that (assuming a functioning clock) should
// not collide with any existing file. The function does not test for this.
//
// Used for dumps and recordings where the user has not supplied a filename.
func UniqueFilename(prepend string, ext string) string {
	n := time.Now()
	return fmt.Sprintf("%s_%04d%02d%02d_%02d%02d%02d.%s", prepend,
		n.Year(), n.Month(), n.Day(), n.Hour(), n.Minute(), n.Second(),
		strings.TrimPrefix(ext, "."))
}
