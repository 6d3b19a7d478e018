package service

import (
	"strconv"
	"strings"

	"github.com/fulldump/dbjson/database"
)

type Service struct {
	db *database.Database
}

func NewService(db *database.Database) *Service {
	return &Service{
		db: db,
	}
}

// parseID checks the collection before the id so an unknown collection is
// reported first, whatever the id looks like.
func (s *Service) parseID(collection, id string) (int64, error) {

	if !s.db.HasCollection(collection) {
		return 0, database.CollectionNotFound(collection)
	}

	n, err := strconv.ParseInt(strings.TrimSpace(id), 10, 64)
	if err != nil {
		return 0, database.ItemNotFound(id)
	}

	return n, nil
}

func (s *Service) CreateItem(collection string, item Item) (Item, error) {
	return s.db.Create(collection, item)
}

func (s *Service) UpdateItem(collection, id string, item Item) (Item, error) {
	n, err := s.parseID(collection, id)
	if err != nil {
		return nil, err
	}
	return s.db.Update(collection, n, item)
}

func (s *Service) PatchItem(collection, id string, item Item) (Item, error) {
	n, err := s.parseID(collection, id)
	if err != nil {
		return nil, err
	}
	return s.db.Patch(collection, n, item)
}

func (s *Service) DeleteItem(collection, id string) (Item, error) {
	n, err := s.parseID(collection, id)
	if err != nil {
		return nil, err
	}
	return s.db.Delete(collection, n)
}

func (s *Service) GetItem(collection, id string) (Item, error) {
	n, err := s.parseID(collection, id)
	if err != nil {
		return nil, err
	}
	return s.db.Get(collection, n)
}

func (s *Service) ListItems(collection string) ([]Item, error) {
	return s.db.List(collection)
}

func (s *Service) Lookup(name string) (any, error) {
	return s.db.Lookup(name)
}

func (s *Service) ListCollections() []string {
	return s.db.Names()
}

func (s *Service) Dump() map[string]any {
	return s.db.Dump()
}
