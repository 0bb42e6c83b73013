// This file is part of GopherNES.
//
// GopherNES is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// GopherNES is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with GopherNES.  If not, see <https://www.gnu.org/licenses/>.

package regression

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/jetsetilly/gophernes/paths"
)

// the maximum number of attempts to find an unused filename
const maxUniqueAttempts = 100

// create a unique filename for a cartridge. used when saving scripts into
// the regression scripts directory. calls paths.UniqueFilename() to maintain
// common formatting used in the project.
func uniqueFilename(prepend string, cartFilename string) (string, error) {
	f := paths.UniqueFilename(prepend, cartFilename)

	for i := 0; i < maxUniqueAttempts; i++ {
		n := f
		if i > 0 {
			n = fmt.Sprintf("%s_%d", f, i)
		}

		pth, err := paths.MkdirResourcePath(regressionPath, regressionScripts, n)
		if err != nil {
			return "", err
		}

		_, err = os.Stat(pth)
		if errors.Is(err, fs.ErrNotExist) {
			return pth, nil
		}
	}

	return "", fmt.Errorf("cannot create unique filename for %s", f)
}
