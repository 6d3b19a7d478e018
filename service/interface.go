package service

import (
	"github.com/fulldump/dbjson/database"
)

var (
	ErrorCollectionNotFound = database.ErrCollectionNotFound
	ErrorItemNotFound       = database.ErrItemNotFound
)

type Item = database.Record

type Servicer interface { // todo: review naming
	CreateItem(collection string, item Item) (Item, error)
	UpdateItem(collection, id string, item Item) (Item, error)
	PatchItem(collection, id string, item Item) (Item, error)
	DeleteItem(collection, id string) (Item, error)
	GetItem(collection, id string) (Item, error)
	ListItems(collection string) ([]Item, error)
	Lookup(name string) (any, error)
	ListCollections() []string
	Dump() map[string]any
}
