// This file is part of DMGopher.
//
// DMGopher is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// DMGopher is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with DMGopher.  If not, see <https://www.gnu.org/licenses/>.

package cartridgeloader

import (
	"crypto/sha1"
	"fmt"
	"io/ioutil"
	"os"
	"path"
	"strings"

	"github.com/dmgopher/dmgopher/curated"
)

// sentinal errors returned by the loader.
const (
	LoadError = "cartridgeloader: %s: %v"
	HashError = "cartridgeloader: %s: unexpected hash value"
)

// Loader is used to specify the cartridge to use when Attach()ing to the
// DMG.
type Loader struct {
	// filename of cartridge to load
	Filename string

	// expected hash of the loaded cartridge. empty string indicates that the
	// hash is unknown and need not be validated. after a load operation the
	// value will be the hash of the loaded data
	Hash string

	// copy of the loaded data. subsequent calls to Load() will return this
	// data rather than reading the file again
	Data []byte
}

// NewLoader is the preferred method of initialisation for the Loader type.
//
// A filename with no extension that does not name an existing file is
// retried with the ".gb" extension appended.
func NewLoader(filename string) Loader {
	if path.Ext(filename) == "" {
		if _, err := os.Stat(filename); err != nil {
			filename = fmt.Sprintf("%s.gb", filename)
		}
	}

	return Loader{
		Filename: filename,
	}
}

// ShortName returns a shortened version of the cartridge filename, with path
// and extension removed.
func (cl Loader) ShortName() string {
	sn := path.Base(cl.Filename)
	return strings.TrimSuffix(sn, path.Ext(sn))
}

// HasLoaded returns true if Load() has been called and the cartridge data
// is in memory.
func (cl Loader) HasLoaded() bool {
	return len(cl.Data) > 0
}

// Load the cartridge data and return it for attachment to the DMG. The data
// is cached so a Loader can be used to reinsert a cartridge without touching
// the file system again.
func (cl *Loader) Load() error {
	if len(cl.Data) > 0 {
		return nil
	}

	f, err := os.Open(cl.Filename)
	if err != nil {
		return curated.Errorf(LoadError, cl.Filename, err)
	}
	defer f.Close()

	cl.Data, err = ioutil.ReadAll(f)
	if err != nil {
		return curated.Errorf(LoadError, cl.Filename, err)
	}

	// generate hash and check for consistency against any expected value
	hash := fmt.Sprintf("%x", sha1.Sum(cl.Data))
	if cl.Hash != "" && cl.Hash != hash {
		return curated.Errorf(HashError, cl.Filename)
	}
	cl.Hash = hash

	return nil
}
