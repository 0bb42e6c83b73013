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

package database

import (
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/jetsetilly/gophernes/curated"
)

// Activity is used to specify the general activity of what will be occurring
// during the database session.
type Activity int

// Valid activities: the "higher level" activities inherit the activity
// abilities of the activity levels lower down the scale.
const (
	ActivityReading Activity = iota

	// Modifying implies Reading
	ActivityModifying

	// Creating implies Modifying (which in turn implies Reading)
	ActivityCreating
)

// Session keeps track of a database session.
type Session struct {
	dbfile   *os.File
	activity Activity

	entries map[int]Entry

	// deserialisers for the different entries that may appear in the database
	entryTypes map[string]Deserialiser
}

// StartSession starts/initialises a new DB session. The init argument is the
// function to call when database has been successfully opened. This function
// should be used to add information about the different entries that are to
// be used in the database (see RegisterEntryType() function).
func StartSession(path string, activity Activity, init func(*Session) error) (*Session, error) {
	var err error

	db := &Session{activity: activity}
	db.entryTypes = make(map[string]Deserialiser)

	var flags int
	switch activity {
	case ActivityReading:
		flags = os.O_RDONLY
	case ActivityModifying:
		flags = os.O_RDWR
	case ActivityCreating:
		flags = os.O_RDWR | os.O_CREATE
	}

	db.dbfile, err = os.OpenFile(path, flags, 0o600)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, curated.Errorf(NotAvailable, path)
		}
		return nil, curated.Errorf("database: %v", err)
	}

	if err := init(db); err != nil {
		_ = db.dbfile.Close()
		return nil, curated.Errorf("database: %v", err)
	}

	if err := db.readDBFile(); err != nil {
		_ = db.dbfile.Close()
		return nil, err
	}

	return db, nil
}

// EndSession closes the database. Changes are written to disk if the commit
// argument is true and the session activity allows it.
func (db *Session) EndSession(commitChanges bool) error {
	if db.dbfile == nil {
		return curated.Errorf("database: no session to end")
	}

	defer func() {
		_ = db.dbfile.Close()
		db.dbfile = nil
	}()

	if !commitChanges || db.activity == ActivityReading {
		return nil
	}

	if err := db.dbfile.Truncate(0); err != nil {
		return curated.Errorf("database: %v", err)
	}
	if _, err := db.dbfile.Seek(0, io.SeekStart); err != nil {
		return curated.Errorf("database: %v", err)
	}

	for _, key := range db.SortedKeyList() {
		ent := db.entries[key]

		ser, err := ent.Serialise()
		if err != nil {
			return curated.Errorf("database: %v", err)
		}

		s := strings.Builder{}
		s.WriteString(recordHeader(key, ent.ID()))
		for _, f := range ser {
			s.WriteString(fieldSep)
			s.WriteString(f)
		}
		s.WriteString(entrySep)

		if _, err := db.dbfile.WriteString(s.String()); err != nil {
			return curated.Errorf("database: %v", err)
		}
	}

	return nil
}

func (db *Session) readDBFile() error {
	db.entries = make(map[int]Entry)

	buffer, err := io.ReadAll(db.dbfile)
	if err != nil {
		return curated.Errorf("database: %v", err)
	}

	lines := strings.Split(string(buffer), entrySep)

	for i, line := range lines {
		line = strings.TrimSpace(line)
		if len(line) == 0 {
			continue
		}

		fields := strings.Split(line, fieldSep)
		if len(fields) < numLeaderFields {
			return curated.Errorf("database: missing fields at line %d", i+1)
		}

		key, err := strconv.Atoi(fields[leaderFieldKey])
		if err != nil {
			return curated.Errorf("database: invalid key (%s) at line %d", fields[leaderFieldKey], i+1)
		}

		if _, ok := db.entries[key]; ok {
			return curated.Errorf("database: duplicate key (%d) at line %d", key, i+1)
		}

		des, ok := db.entryTypes[fields[leaderFieldID]]
		if !ok {
			return curated.Errorf("database: unrecognised entry type (%s) at line %d", fields[leaderFieldID], i+1)
		}

		ent, err := des(SerialisedEntry(fields[numLeaderFields:]))
		if err != nil {
			return curated.Errorf("database: line %d: %v", i+1, err)
		}

		db.entries[key] = ent
	}

	return nil
}

// SortedKeyList returns a sorted list of database keys.
func (db Session) SortedKeyList() []int {
	keyList := make([]int, 0, len(db.entries))
	for k := range db.entries {
		keyList = append(keyList, k)
	}
	sort.Ints(keyList)
	return keyList
}
