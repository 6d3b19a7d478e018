package database

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	. "github.com/fulldump/biff"
)

type JSON = map[string]any

func openDatabase(t *testing.T, content string, persist bool) (*Database, string) {
	filename := filepath.Join(t.TempDir(), "db.json")
	err := os.WriteFile(filename, []byte(content), 0644)
	if err != nil {
		t.Fatal(err)
	}

	db := NewDatabase(&Config{
		Filename: filename,
		Persist:  persist,
	})
	AssertNil(db.Load())
	AssertEqual(db.GetStatus(), StatusOperating)

	return db, filename
}

func readFile(filename string) JSON {
	data, _ := os.ReadFile(filename)
	result := JSON{}
	json.Unmarshal(data, &result)
	return result
}

func TestCreate(t *testing.T) {

	Alternative("Database with posts", func(a *A) {

		db, filename := openDatabase(t, `{"posts":[{"id":3,"title":"a"},{"id":7,"title":"b"},{"id":5}],"comments":[]}`, true)

		a.Alternative("Max id plus one", func(a *A) {
			record, err := db.Create("posts", Record{"title": "c", "id": 1000})
			AssertNil(err)
			AssertEqual(record["id"], int64(8))
			AssertEqual(record["title"], "c")

			AssertEqualJson(readFile(filename)["posts"], []JSON{
				{"id": 3, "title": "a"},
				{"id": 7, "title": "b"},
				{"id": 5},
				{"id": 8, "title": "c"},
			})
		})

		a.Alternative("Empty collection starts at one", func(a *A) {
			record, err := db.Create("comments", Record{"body": "hi"})
			AssertNil(err)
			AssertEqual(record["id"], int64(1))
		})

		a.Alternative("Id reuse after deleting the highest", func(a *A) {
			first, _ := db.Create("comments", Record{})
			second, _ := db.Create("comments", Record{})
			AssertEqual(first["id"], int64(1))
			AssertEqual(second["id"], int64(2))

			_, err := db.Delete("comments", 2)
			AssertNil(err)

			third, err := db.Create("comments", Record{})
			AssertNil(err)
			AssertEqual(third["id"], int64(2))
		})

		a.Alternative("Unknown collection", func(a *A) {
			_, err := db.Create("users", Record{"name": "x"})
			AssertTrue(errors.Is(err, ErrCollectionNotFound))
			AssertEqual(err.Error(), "Resource users not found")
			AssertEqual(db.Names(), []string{"comments", "posts"})
			AssertEqualJson(readFile(filename), JSON{
				"posts":    []JSON{{"id": 3, "title": "a"}, {"id": 7, "title": "b"}, {"id": 5}},
				"comments": []JSON{},
			})
		})

		a.Alternative("Payload is copied", func(a *A) {
			payload := Record{"title": "mine"}
			db.Create("posts", payload)
			_, hasID := payload["id"]
			AssertFalse(hasID)
		})
	})
}

func TestUpdate(t *testing.T) {

	Alternative("Database with users", func(a *A) {

		db, filename := openDatabase(t, `{"users":[{"id":1,"name":"Alfonso","age":40},{"id":2,"name":"Gerardo"}]}`, true)

		a.Alternative("Total replacement", func(a *A) {
			record, err := db.Update("users", 1, Record{"id": 99, "name": "Pedro"})
			AssertNil(err)
			AssertEqualJson(record, JSON{"id": 1, "name": "Pedro"})

			stored, err := db.Get("users", 1)
			AssertNil(err)
			_, hasAge := stored["age"]
			AssertFalse(hasAge)

			AssertEqualJson(readFile(filename)["users"], []JSON{
				{"id": 1, "name": "Pedro"},
				{"id": 2, "name": "Gerardo"},
			})
		})

		a.Alternative("Unknown id", func(a *A) {
			_, err := db.Update("users", 3, Record{"name": "Nobody"})
			AssertTrue(errors.Is(err, ErrItemNotFound))
			AssertEqual(err.Error(), "Item with ID 3 not found")

			records, _ := db.List("users")
			AssertEqualJson(records, []JSON{
				{"id": 1, "name": "Alfonso", "age": 40},
				{"id": 2, "name": "Gerardo"},
			})
		})

		a.Alternative("Unknown collection", func(a *A) {
			_, err := db.Update("posts", 1, Record{})
			AssertTrue(errors.Is(err, ErrCollectionNotFound))
		})

		a.Alternative("Patch merges fields", func(a *A) {
			record, err := db.Patch("users", 1, Record{"age": 41, "id": 5, "city": "Madrid"})
			AssertNil(err)
			AssertEqualJson(record, JSON{"id": 1, "name": "Alfonso", "age": 41, "city": "Madrid"})
		})
	})
}

func TestDelete(t *testing.T) {

	Alternative("Database with three items", func(a *A) {

		db, filename := openDatabase(t, `{"items":[{"id":1},{"id":2},{"id":3}]}`, true)

		a.Alternative("Remove the middle one", func(a *A) {
			removed, err := db.Delete("items", 2)
			AssertNil(err)
			AssertEqualJson(removed, JSON{"id": 2})

			records, _ := db.List("items")
			AssertEqualJson(records, []JSON{{"id": 1}, {"id": 3}})
			AssertEqualJson(readFile(filename)["items"], []JSON{{"id": 1}, {"id": 3}})

			_, err = db.Get("items", 2)
			AssertTrue(errors.Is(err, ErrItemNotFound))
		})

		a.Alternative("Unknown id", func(a *A) {
			_, err := db.Delete("items", 4)
			AssertTrue(errors.Is(err, ErrItemNotFound))

			records, _ := db.List("items")
			AssertEqual(len(records), 3)
		})
	})
}

func TestDuplicatedIds(t *testing.T) {
	db, _ := openDatabase(t, `{"items":[{"id":1,"n":"a"},{"id":1,"n":"b"}]}`, true)

	removed, err := db.Delete("items", 1)
	AssertNil(err)
	AssertEqual(removed["n"], "a")

	record, err := db.Get("items", 1)
	AssertNil(err)
	AssertEqual(record["n"], "b")
}

func TestOutOfRangeIds(t *testing.T) {
	db, filename := openDatabase(t, `{"posts":[{"id":1e300,"t":"a"},{"id":-1e300},{"id":4}]}`, true)

	record, err := db.Create("posts", Record{"t": "b"})
	AssertNil(err)
	AssertEqual(record["id"], int64(5))

	_, err = db.Get("posts", 1)
	AssertTrue(errors.Is(err, ErrItemNotFound))

	AssertEqual(len(readFile(filename)["posts"].([]any)), 4)
}

func TestRepeatedNames(t *testing.T) {
	db, _ := openDatabase(t, `{"posts":[{"id":1,"title":"first","title":"second"}]}`, true)

	record, err := db.Get("posts", 1)
	AssertNil(err)
	AssertEqual(record["title"], "second")
}

func TestReadOnly(t *testing.T) {
	content := `{"posts":[{"id":1,"title":"first"}]}`
	db, filename := openDatabase(t, content, false)

	record, err := db.Create("posts", Record{"title": "second"})
	AssertNil(err)
	AssertEqual(record["id"], int64(2))

	records, _ := db.List("posts")
	AssertEqual(len(records), 2)

	data, _ := os.ReadFile(filename)
	AssertEqual(string(data), content)

	fresh := NewDatabase(&Config{Filename: filename})
	AssertNil(fresh.Load())
	records, _ = fresh.List("posts")
	AssertEqual(len(records), 1)
}

func TestPersistFailureRollsBack(t *testing.T) {

	Alternative("Backing directory removed", func(a *A) {

		dir := filepath.Join(t.TempDir(), "data")
		os.MkdirAll(dir, 0755)
		filename := filepath.Join(dir, "db.json")
		os.WriteFile(filename, []byte(`{"items":[{"id":1,"v":"a"},{"id":2,"v":"b"}]}`), 0644)

		db := NewDatabase(&Config{Filename: filename, Persist: true})
		AssertNil(db.Load())
		os.RemoveAll(dir)

		a.Alternative("Create", func(a *A) {
			_, err := db.Create("items", Record{"v": "c"})
			AssertTrue(errors.Is(err, ErrPersistence))
			records, _ := db.List("items")
			AssertEqualJson(records, []JSON{{"id": 1, "v": "a"}, {"id": 2, "v": "b"}})

			os.MkdirAll(dir, 0755)
			record, err := db.Create("items", Record{"v": "c"})
			AssertNil(err)
			AssertEqual(record["id"], int64(3))
		})

		a.Alternative("Update", func(a *A) {
			_, err := db.Update("items", 1, Record{"v": "z"})
			AssertTrue(errors.Is(err, ErrPersistence))
			record, _ := db.Get("items", 1)
			AssertEqual(record["v"], "a")
		})

		a.Alternative("Delete", func(a *A) {
			_, err := db.Delete("items", 1)
			AssertTrue(errors.Is(err, ErrPersistence))
			records, _ := db.List("items")
			AssertEqualJson(records, []JSON{{"id": 1, "v": "a"}, {"id": 2, "v": "b"}})
		})
	})
}

func TestOpaqueEntries(t *testing.T) {
	db, filename := openDatabase(t, `{"profile":{"name":"typicode"},"tags":["a","b"],"posts":[]}`, true)

	AssertEqual(db.Names(), []string{"posts"})

	_, err := db.Create("profile", Record{"x": 1})
	AssertTrue(errors.Is(err, ErrCollectionNotFound))

	_, err = db.Create("posts", Record{"title": "hello"})
	AssertNil(err)

	AssertEqualJson(readFile(filename), JSON{
		"profile": JSON{"name": "typicode"},
		"tags":    []string{"a", "b"},
		"posts":   []JSON{{"id": 1, "title": "hello"}},
	})

	value, err := db.Lookup("tags")
	AssertNil(err)
	AssertEqualJson(value, []string{"a", "b"})

	AssertEqualJson(db.Dump(), JSON{
		"profile": JSON{"name": "typicode"},
		"tags":    []string{"a", "b"},
		"posts":   []JSON{{"id": 1, "title": "hello"}},
	})
}

func TestLoadErrors(t *testing.T) {

	Alternative("Load", func(a *A) {

		filename := filepath.Join(t.TempDir(), "db.json")

		a.Alternative("Missing file", func(a *A) {
			db := NewDatabase(&Config{Filename: filename})
			AssertNotNil(db.Load())
			AssertEqual(db.GetStatus(), StatusClosing)
		})

		a.Alternative("Malformed file", func(a *A) {
			os.WriteFile(filename, []byte(`{"posts":[`), 0644)
			db := NewDatabase(&Config{Filename: filename})
			AssertNotNil(db.Load())
			AssertEqual(db.GetStatus(), StatusClosing)
		})
	})
}

func TestCreateConcurrency(t *testing.T) {
	db, filename := openDatabase(t, `{"items":[]}`, true)

	n := 50
	wg := &sync.WaitGroup{}
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			db.Create("items", Record{"hello": "world"})
		}()
	}
	wg.Wait()

	records, _ := db.List("items")
	AssertEqual(len(records), n)

	seen := map[int64]bool{}
	for _, record := range records {
		id, _ := RecordID(record)
		seen[id] = true
	}
	AssertEqual(len(seen), n)

	AssertEqual(len(readFile(filename)["items"].([]any)), n)
}
