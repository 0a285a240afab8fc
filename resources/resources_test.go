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

package resources_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jetsetilly/lc3sim/resources"
	"github.com/jetsetilly/lc3sim/test"
)

func TestLocalPath(t *testing.T) {
	wd, err := os.Getwd()
	test.DemandSuccess(t, err)
	defer os.Chdir(wd)

	test.DemandSuccess(t, os.Chdir(t.TempDir()))
	test.DemandSuccess(t, os.Mkdir(".lc3sim", 0700))

	pth, err := resources.JoinPath("foo", "bar")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, pth, filepath.Join(".lc3sim", "foo", "bar"))

	// intermediate directories have been created
	fi, err := os.Stat(filepath.Join(".lc3sim", "foo"))
	test.ExpectSuccess(t, err)
	test.ExpectSuccess(t, fi.IsDir())

	// base path is not prepended twice
	pth, err = resources.JoinPath(pth)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, pth, filepath.Join(".lc3sim", "foo", "bar"))
}

func TestUniqueFilename(t *testing.T) {
	fn := resources.UniqueFilename("dump", ".dot")
	test.ExpectSuccess(t, strings.HasPrefix(fn, "dump_"))
	test.ExpectSuccess(t, strings.HasSuffix(fn, ".dot"))
}
