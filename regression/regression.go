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
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jetsetilly/gophernes/curated"
	"github.com/jetsetilly/gophernes/database"
	"github.com/jetsetilly/gophernes/paths"
)

// Failed is returned by RegressRun() if any of the tests did not succeed.
const Failed = "regression: %d tests failed"

// the location of the regression database and scripts in the resource path
const (
	regressionPath    = "regression"
	regressionDBFile  = "db"
	regressionScripts = "scripts"
	regressionFails   = "fails"
)

// Regressor represents the generic entry in the regression database.
type Regressor interface {
	database.Entry

	// perform the regression test for the regression type. the newRegression
	// flag indicates that the result of the test should be stored in the
	// entry. the second return value is a description of any failure
	//
	// message is the string that is to be printed during the regression
	regress(newRegression bool, output io.Writer, message string) (bool, string, error)
}

// when starting a database session we need to register what entries we will
// find in the database
func initDBSession(db *database.Session) error {
	if err := db.RegisterEntryType(videoEntryID, deserialiseVideoEntry); err != nil {
		return err
	}
	if err := db.RegisterEntryType(playbackEntryID, deserialisePlaybackEntry); err != nil {
		return err
	}
	return nil
}

func databasePath() (string, error) {
	return paths.MkdirResourcePath(regressionPath, regressionDBFile)
}

// start a database session. a reading session of a non-existent database is
// not an error. in that case the returned session is nil
func startSession(activity database.Activity) (*database.Session, error) {
	pth, err := databasePath()
	if err != nil {
		return nil, curated.Errorf("regression: %v", err)
	}

	db, err := database.StartSession(pth, activity, initDBSession)
	if err != nil {
		if curated.Is(err, database.NotAvailable) && activity == database.ActivityReading {
			return nil, nil
		}
		return nil, curated.Errorf("regression: %v", err)
	}

	return db, nil
}

// clear the current line of a terminal
const clearLine = "\r\033[2K"

// RegressList displays all entries in the database.
func RegressList(output io.Writer) error {
	db, err := startSession(database.ActivityReading)
	if err != nil {
		return err
	}
	if db == nil {
		_, err := io.WriteString(output, "database is empty\n")
		return err
	}
	defer db.EndSession(false)

	return db.List(output)
}

// RegressAdd adds a new regression handler to the database. The regression
// is run once to generate the values that future runs are compared against.
func RegressAdd(output io.Writer, reg Regressor) error {
	db, err := startSession(database.ActivityCreating)
	if err != nil {
		return err
	}

	msg := fmt.Sprintf("adding: %s", reg)
	ok, fail, err := reg.regress(true, output, msg)
	if err != nil || !ok {
		_ = db.EndSession(false)
		if err == nil {
			err = curated.Errorf("regression: %s", fail)
		}
		_, _ = io.WriteString(output, "\n")
		return err
	}

	if _, err := db.Add(reg); err != nil {
		_ = reg.CleanUp()
		_ = db.EndSession(false)
		return err
	}

	fmt.Fprintf(output, "%sadded: %s\n", clearLine, reg)

	return db.EndSession(true)
}

// RegressDelete removes an entry from the regression database. The user is
// asked to confirm the deletion through the confirmation reader.
func RegressDelete(output io.Writer, confirmation io.Reader, key string) error {
	v, err := strconv.Atoi(key)
	if err != nil {
		return curated.Errorf("regression: invalid key (%s)", key)
	}

	db, err := startSession(database.ActivityModifying)
	if err != nil {
		return err
	}

	ent, err := db.Get(v)
	if err != nil {
		_ = db.EndSession(false)
		return curated.Errorf("regression: %v", err)
	}

	fmt.Fprintf(output, "%s\ndelete? (y/n): ", ent)

	confirm := make([]byte, 32)
	n, err := confirmation.Read(confirm)
	if err != nil && n == 0 {
		_ = db.EndSession(false)
		return curated.Errorf("regression: %v", err)
	}

	if confirm[0] != 'y' && confirm[0] != 'Y' {
		return db.EndSession(false)
	}

	if err := db.Delete(v); err != nil {
		_ = db.EndSession(false)
		return curated.Errorf("regression: %v", err)
	}

	fmt.Fprintf(output, "deleted test #%03d from regression database\n", v)

	return db.EndSession(true)
}

// RegressRun runs the tests in the regression database. The keys argument
// specifies which entries to test. An empty keys list means that every entry
// should be tested. The special key FAILS adds the keys of the tests that
// failed the last time the tests were run.
//
// Returns the Failed error if any test fails or ends with an error. If
// failOnError is true, the run ends as soon as a test ends with an error.
func RegressRun(output io.Writer, verbose bool, failOnError bool, keys []string) error {
	db, err := startSession(database.ActivityReading)
	if err != nil {
		return err
	}
	if db == nil || db.NumEntries() == 0 {
		if db != nil {
			_ = db.EndSession(false)
		}
		_, err := io.WriteString(output, "regression database is empty\n")
		return err
	}
	defer db.EndSession(false)

	keys, err = addFailsToKeys(keys)
	if err != nil {
		if err == errNoPreviousFails {
			_, err := io.WriteString(output, "no previous fails\n")
			return err
		}
		return curated.Errorf("regression: %v", err)
	}

	keysV := make([]int, 0, len(keys))
	for _, k := range keys {
		v, err := strconv.Atoi(k)
		if err != nil {
			return curated.Errorf("regression: invalid key (%s)", k)
		}
		keysV = append(keysV, v)
	}

	var numSucceed, numFail, numError int
	var fails []string

	onSelect := func(key int, ent database.Entry) error {
		// database entry should also satisfy Regressor interface
		reg, ok := ent.(Regressor)
		if !ok {
			return curated.Errorf("regression: database entry does not satisfy Regressor interface")
		}

		msg := fmt.Sprintf("running: %03d %s", key, reg)
		ok, fail, err := reg.regress(false, output, msg)

		_, _ = io.WriteString(output, clearLine)

		if err != nil {
			numError++
			fails = append(fails, fmt.Sprintf("%03d", key))
			fmt.Fprintf(output, "  ERROR: %03d %s\n", key, reg)
			if verbose {
				fmt.Fprintf(output, "  ^^ %v\n", err)
			}
			if failOnError {
				return err
			}
			return nil
		}

		if !ok {
			numFail++
			fails = append(fails, fmt.Sprintf("%03d", key))
			fmt.Fprintf(output, "failure: %03d %s\n", key, reg)
			if verbose && fail != "" {
				fmt.Fprintf(output, "  ^^ %s\n", fail)
			}
			return nil
		}

		numSucceed++
		fmt.Fprintf(output, "succeed: %03d %s\n", key, reg)

		return nil
	}

	_, err = db.SelectKeys(onSelect, keysV...)
	if err != nil && !failOnError {
		return curated.Errorf("regression: %v", err)
	}

	fmt.Fprintf(output, "regression tests: %d succeed, %d fail", numSucceed, numFail)
	if numError > 0 {
		fmt.Fprintf(output, " [with %d errors]", numError)
	}
	_, _ = io.WriteString(output, "\n")

	if err := saveFails(fails); err != nil {
		return curated.Errorf("regression: %v", err)
	}

	if numFail+numError > 0 {
		return curated.Errorf(Failed, numFail+numError)
	}

	return nil
}

// ParseKeys splits a comma separated list of keys.
func ParseKeys(s string) []string {
	var keys []string
	for _, k := range strings.Split(s, ",") {
		k = strings.TrimSpace(k)
		if k != "" {
			keys = append(keys, k)
		}
	}
	return keys
}
