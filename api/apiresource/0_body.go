package apiresource

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"

	"github.com/fulldump/dbjson/service"
)

var ErrInvalidBody = errors.New("invalid body")

var lenient = json.JoinOptions(
	jsontext.AllowDuplicateNames(true),
	jsontext.AllowInvalidUTF8(true),
)

// decodeItem reads a JSON object from body. An empty body or null is an
// empty item.
func decodeItem(body io.Reader) (service.Item, error) {

	data, err := io.ReadAll(body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return service.Item{}, nil
	}

	item := service.Item{}
	err = json.Unmarshal(data, &item, lenient)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidBody, err)
	}
	if item == nil {
		item = service.Item{}
	}

	return item, nil
}
