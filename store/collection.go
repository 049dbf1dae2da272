// Package store holds the object collection a session filters over. The
// collection is ordered and immutable for the session's lifetime: an
// object's position is its identity.
package store

import (
	"bytes"
	"encoding/gob"
	"fmt"

	"github.com/aclements/quickfilter/model"
)

func init() {
	// Register value types that appear inside model.Object
	// (map[string]interface{}) so gob can encode them behind interface{}.
	gob.Register([]interface{}{})
	gob.Register(map[string]interface{}{})
	gob.Register([]string{})
	gob.Register(float64(0))
	gob.Register(false)
}

// Collection is an ordered, fixed set of objects.
type Collection struct {
	Objects []model.Object
}

// NewCollection wraps the given objects. The slice is used as-is; callers
// must not mutate it afterwards.
func NewCollection(objects []model.Object) *Collection {
	return &Collection{Objects: objects}
}

// Len returns the number of objects.
func (c *Collection) Len() int { return len(c.Objects) }

// gobCollectionData mirrors Collection for gob round trips.
type gobCollectionData struct {
	Objects []model.Object
}

// GobEncode implements gob.GobEncoder. Slices of interface values that are
// all strings are narrowed to []string first, matching how JSON input is
// typically shaped.
func (c *Collection) GobEncode() ([]byte, error) {
	storable := make([]model.Object, len(c.Objects))
	for i, obj := range c.Objects {
		storableObj := make(model.Object, len(obj))
		for k, val := range obj {
			if items, ok := val.([]interface{}); ok {
				strs := make([]string, 0, len(items))
				allStrings := true
				for _, item := range items {
					s, isStr := item.(string)
					if !isStr {
						allStrings = false
						break
					}
					strs = append(strs, s)
				}
				if allStrings {
					storableObj[k] = strs
					continue
				}
			}
			storableObj[k] = val
		}
		storable[i] = storableObj
	}

	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(gobCollectionData{Objects: storable}); err != nil {
		return nil, fmt.Errorf("failed to gob encode collection: %w", err)
	}
	return buf.Bytes(), nil
}

// GobDecode implements gob.GobDecoder.
func (c *Collection) GobDecode(data []byte) error {
	var decoded gobCollectionData
	if err := gob.NewDecoder(bytes.NewBuffer(data)).Decode(&decoded); err != nil {
		return fmt.Errorf("failed to gob decode collection: %w", err)
	}
	c.Objects = decoded.Objects
	if c.Objects == nil {
		c.Objects = []model.Object{}
	}
	return nil
}
