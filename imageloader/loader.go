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

package imageloader

import (
	"crypto/sha1"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"strings"

	"github.com/jetsetilly/lc3sim/curated"
)

// Loader is used to specify the image to load into the machine. It also
// permits the caller to specify the format of the image if the filename
// extension is not sufficient.
type Loader struct {
	// filename of the image to load
	Filename string

	// FormatAuto indicates that the format is decided by inspecting the data
	Format Format

	// expected hash of the loaded data. empty string indicates that the hash
	// is unknown and need not be validated. after a load operation the value
	// will be the hash of the loaded data
	Hash string

	// copy of the loaded data
	Data []byte
}

// NewLoader is the preferred method of initialisation for the Loader type.
//
// The format argument will be used to set the Format field, unless the
// argument is either "AUTO" or the empty string. In which case the file
// extension is used to set the field.
func NewLoader(filename string, format string) Loader {
	ld := Loader{
		Filename: filename,
		Format:   FormatAuto,
	}

	format = strings.TrimSpace(strings.ToUpper(format))
	if format != string(FormatAuto) && format != "" {
		ld.Format = Format(format)
		return ld
	}

	switch strings.ToUpper(path.Ext(filename)) {
	case ".OBJ", ".BIN":
		ld.Format = FormatObj
	case ".PAIRS":
		ld.Format = FormatPairs
	case ".TXT", ".HEX":
		ld.Format = FormatText
	}

	return ld
}

// ShortName returns a shortened version of the Loader filename.
func (ld Loader) ShortName() string {
	s := path.Base(ld.Filename)
	return strings.TrimSuffix(s, path.Ext(ld.Filename))
}

// HasLoaded returns true if Load() has been successfully called.
func (ld Loader) HasLoaded() bool {
	return len(ld.Data) > 0
}

// Load the image data. Filenames with a valid scheme will use that method to
// load the data. Currently supported schemes are HTTP and local files.
func (ld *Loader) Load() error {
	if len(ld.Data) > 0 {
		return nil
	}

	scheme := "file"

	u, err := url.Parse(ld.Filename)
	if err == nil {
		scheme = u.Scheme
	}

	switch scheme {
	case "http", "https":
		resp, err := http.Get(ld.Filename)
		if err != nil {
			return curated.Errorf("imageloader: %v", err)
		}
		defer resp.Body.Close()

		ld.Data, err = io.ReadAll(resp.Body)
		if err != nil {
			return curated.Errorf("imageloader: %v", err)
		}

	case "file", "":
		ld.Data, err = os.ReadFile(ld.Filename)
		if err != nil {
			return curated.Errorf("imageloader: %v", err)
		}

	default:
		return curated.Errorf("imageloader: %v", fmt.Sprintf("unsupported URL scheme (%s)", scheme))
	}

	hash := fmt.Sprintf("%x", sha1.Sum(ld.Data))
	if ld.Hash != "" && ld.Hash != hash {
		return curated.Errorf("imageloader: %v", "unexpected hash value")
	}
	ld.Hash = hash

	return nil
}

// Decode loads the data if necessary and decodes it into an Image.
func (ld *Loader) Decode() (*Image, error) {
	if err := ld.Load(); err != nil {
		return nil, err
	}
	return Decode(ld.ShortName(), ld.Format, ld.Data)
}
