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

package database_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jetsetilly/gophernes/curated"
	"github.com/jetsetilly/gophernes/database"
	"github.com/jetsetilly/gophernes/test"
)

type fooEntry struct {
	foo     string
	bar     string
	cleaned *bool
}

func (e fooEntry) ID() string {
	return "foo"
}

func (e fooEntry) String() string {
	return e.foo + " " + e.bar
}

func (e fooEntry) Serialise() (database.SerialisedEntry, error) {
	return database.SerialisedEntry{e.foo, e.bar}, nil
}

func (e fooEntry) CleanUp() error {
	if e.cleaned != nil {
		*e.cleaned = true
	}
	return nil
}

func deserialiseFoo(fields database.SerialisedEntry) (database.Entry, error) {
	if len(fields) != 2 {
		return nil, curated.Errorf("wrong number of fields")
	}
	return fooEntry{foo: fields[0], bar: fields[1]}, nil
}

func initSession(db *database.Session) error {
	return db.RegisterEntryType("foo", deserialiseFoo)
}

func TestNotAvailable(t *testing.T) {
	pth := filepath.Join(t.TempDir(), "db")

	_, err := database.StartSession(pth, database.ActivityReading, initSession)
	test.ExpectSuccess(t, curated.Is(err, database.NotAvailable))

	_, err = database.StartSession(pth, database.ActivityModifying, initSession)
	test.ExpectSuccess(t, curated.Is(err, database.NotAvailable))
}

func TestAddAndDelete(t *testing.T) {
	pth := filepath.Join(t.TempDir(), "db")

	db, err := database.StartSession(pth, database.ActivityCreating, initSession)
	test.DemandSuccess(t, err)

	key, err := db.Add(fooEntry{foo: "a", bar: "b"})
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, key, 0)
	key, err = db.Add(fooEntry{foo: "c", bar: "d"})
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, key, 1)

	// fields cannot contain the field separator
	_, err = db.Add(fooEntry{foo: "e,f", bar: "g"})
	test.ExpectFailure(t, err)

	test.DemandSuccess(t, db.EndSession(true))

	data, err := os.ReadFile(pth)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, string(data), "000,foo,a,b\n001,foo,c,d\n")

	// reopen and delete the first entry
	db, err = database.StartSession(pth, database.ActivityModifying, initSession)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, db.NumEntries(), 2)

	test.ExpectSuccess(t, db.Delete(0))
	test.ExpectFailure(t, db.Delete(0))

	// the spare key is used for the next entry
	key, err = db.Add(fooEntry{foo: "x", bar: "y"})
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, key, 0)

	test.DemandSuccess(t, db.EndSession(true))

	data, err = os.ReadFile(pth)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, string(data), "000,foo,x,y\n001,foo,c,d\n")
}

func TestReadOnly(t *testing.T) {
	pth := filepath.Join(t.TempDir(), "db")
	test.DemandSuccess(t, os.WriteFile(pth, []byte("000,foo,a,b\n"), 0o600))

	db, err := database.StartSession(pth, database.ActivityReading, initSession)
	test.DemandSuccess(t, err)

	_, err = db.Add(fooEntry{foo: "c", bar: "d"})
	test.ExpectFailure(t, err)
	test.ExpectFailure(t, db.Delete(0))

	ent, err := db.Get(0)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, ent.String(), "a b")

	test.DemandSuccess(t, db.EndSession(true))

	// file is unchanged
	data, err := os.ReadFile(pth)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, string(data), "000,foo,a,b\n")
}

func TestBadFile(t *testing.T) {
	pth := filepath.Join(t.TempDir(), "db")

	for _, s := range []string{
		"xxx,foo,a,b\n",
		"000,bar,a,b\n",
		"000,foo,a\n",
		"000,foo,a,b\n000,foo,c,d\n",
	} {
		test.DemandSuccess(t, os.WriteFile(pth, []byte(s), 0o600))
		_, err := database.StartSession(pth, database.ActivityReading, initSession)
		test.ExpectFailure(t, err, strings.TrimSpace(s))
	}
}

func TestSelect(t *testing.T) {
	pth := filepath.Join(t.TempDir(), "db")
	test.DemandSuccess(t, os.WriteFile(pth, []byte("002,foo,e,f\n000,foo,a,b\n001,foo,c,d\n"), 0o600))

	db, err := database.StartSession(pth, database.ActivityReading, initSession)
	test.DemandSuccess(t, err)
	defer db.EndSession(false)

	var keys []int
	ent, err := db.SelectAll(func(key int, _ database.Entry) error {
		keys = append(keys, key)
		return nil
	})
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, ent.String(), "e f")
	test.DemandEquality(t, len(keys), 3)
	test.ExpectEquality(t, keys[0], 0)
	test.ExpectEquality(t, keys[2], 2)

	ent, err = db.SelectKeys(nil, 1)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, ent.String(), "c d")

	_, err = db.SelectKeys(nil, 10)
	test.ExpectFailure(t, err)

	w := &test.CompareWriter{}
	test.ExpectSuccess(t, db.List(w))
	test.ExpectSuccess(t, w.Compare("000 a b\n001 c d\n002 e f\nTotal: 3\n"))
}

func TestCleanUp(t *testing.T) {
	pth := filepath.Join(t.TempDir(), "db")

	db, err := database.StartSession(pth, database.ActivityCreating, initSession)
	test.DemandSuccess(t, err)
	defer db.EndSession(false)

	var cleaned bool
	key, err := db.Add(fooEntry{foo: "a", bar: "b", cleaned: &cleaned})
	test.DemandSuccess(t, err)
	test.ExpectSuccess(t, db.Delete(key))
	test.ExpectSuccess(t, cleaned)
}
