package targrep

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/Jeffail/gabs"
	"github.com/mitchellh/mapstructure"

	e "github.com/sb25/REST-Web-Services-interaction/models/errors"
)

// Unwrap strips the resource root some repository versions put around
// each record, e.g. {"allele": {...}}. Bare records are returned as is.
func Unwrap(c *gabs.Container, root string) *gabs.Container {
	if c == nil {
		return nil
	}
	if obj, ok := c.Data().(map[string]interface{}); ok && len(obj) == 1 {
		if _, isObj := obj[root].(map[string]interface{}); isObj {
			return c.Search(root)
		}
	}
	return c
}

// Decode unwraps a single record and decodes it into out.
func Decode(c *gabs.Container, root string, out interface{}) error {
	if c == nil {
		return fmt.Errorf("empty %s response", root)
	}
	record := Unwrap(c, root).Data()
	if _, isObj := record.(map[string]interface{}); !isObj {
		return fmt.Errorf("expected a single %s record", root)
	}
	return DecodeValue(record, out)
}

// DecodeList decodes a JSON array of (possibly wrapped) records into out,
// which must point to a slice.
func DecodeList(c *gabs.Container, root string, out interface{}) error {
	if c == nil {
		return DecodeValue([]interface{}{}, out)
	}
	if _, isArray := c.Data().([]interface{}); !isArray {
		return fmt.Errorf("expected a list of %s records", root)
	}

	children, err := c.Children()
	if err != nil {
		return err
	}

	records := make([]interface{}, 0, len(children))
	for _, child := range children {
		records = append(records, Unwrap(child, root).Data())
	}
	return DecodeValue(records, out)
}

// DecodeValue maps a generic JSON (or YAML) value onto a model using its
// json tags. Numbers and strings are converted into each other as needed.
func DecodeValue(input interface{}, out interface{}) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		WeaklyTypedInput: true,
		Squash:           true,
		Result:           out,
	})
	if err != nil {
		return err
	}
	return decoder.Decode(input)
}

// DecodeRecord is Decode for a response of method on path. Any failure
// is reported as a RepositoryCommunicationError.
func (c *Client) DecodeRecord(method string, path string, response *gabs.Container, root string, out interface{}) error {
	if err := Decode(response, root, out); err != nil {
		return c.responseError(method, path, nil, err)
	}
	return nil
}

// DecodeRecords is DecodeList for a response of method on path. Any failure
// is reported as a RepositoryCommunicationError.
func (c *Client) DecodeRecords(method string, path string, params url.Values, response *gabs.Container, root string, out interface{}) error {
	if err := DecodeList(response, root, out); err != nil {
		return c.responseError(method, path, params, err)
	}
	return nil
}

// FindUnique searches a collection by natural key. It returns nil when
// nothing matches and an AmbiguousMatchError when more than one record does.
// Anything but a JSON array, including an empty body, is a
// RepositoryCommunicationError.
func (c *Client) FindUnique(ctx context.Context, path string, params url.Values, root string, key string) (*gabs.Container, error) {
	found, err := c.Get(ctx, path, params)
	if err != nil {
		return nil, err
	}

	if found == nil {
		return nil, c.responseError(http.MethodGet, path, params, fmt.Errorf("expected a list of %s records, got an empty body", root))
	}
	if _, isArray := found.Data().([]interface{}); !isArray {
		return nil, c.responseError(http.MethodGet, path, params, fmt.Errorf("expected a list of %s records", root))
	}

	matches, err := found.Children()
	if err != nil {
		return nil, c.responseError(http.MethodGet, path, params, err)
	}
	switch {
	case len(matches) > 1:
		// the repository enforces uniqueness, but double check
		return nil, &e.AmbiguousMatchError{Resource: root, Key: key, Count: len(matches)}
	case len(matches) == 1:
		return Unwrap(matches[0], root), nil
	default:
		return nil, nil
	}
}

func (c *Client) responseError(method string, path string, params url.Values, err error) error {
	return communicationError(method, c.requestUrl(method, path, params), 0, err)
}
