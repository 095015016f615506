// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package confignode

import (
	"sort"
	"strings"

	"github.com/juju/errors"
	"gopkg.in/yaml.v3"
)

// ParseYAML reads a snapshot written in the form produced by
// MarshalYAML: mapping keys of the form "key=value" whose values are
// mappings are children, every other key is an attribute. A null value
// is an undefined attribute.
//
//	deployment=app1:
//	  name: app1
//	  runtime-name: app1.war
func ParseYAML(data []byte) (Node, error) {
	var raw map[string]interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return Node{}, errors.Annotate(err, "parsing configuration snapshot")
	}
	return fromMap(raw)
}

func fromMap(raw map[string]interface{}) (Node, error) {
	n := Node{}
	for key, value := range raw {
		if !strings.Contains(key, "=") {
			n = n.WithAttribute(key, value)
			continue
		}
		childType, childName, _ := strings.Cut(key, "=")
		elem := PathElement{Key: childType, Value: childName}
		if err := elem.validate(); err != nil {
			return Node{}, errors.Trace(err)
		}
		var childRaw map[string]interface{}
		switch v := value.(type) {
		case nil:
		case map[string]interface{}:
			childRaw = v
		default:
			return Node{}, errors.NotValidf("child %q with non-mapping value", key)
		}
		child, err := fromMap(childRaw)
		if err != nil {
			return Node{}, errors.Annotatef(err, "child %q", key)
		}
		n = n.WithChild(elem, child)
	}
	return n, nil
}

// MarshalYAML implements yaml.Marshaler.
func (n Node) MarshalYAML() (interface{}, error) {
	return n.toMap(), nil
}

func (n Node) toMap() map[string]interface{} {
	out := make(map[string]interface{}, len(n.attrs)+len(n.children))
	for k, v := range n.attrs {
		out[k] = v
	}
	elems := make([]PathElement, 0, len(n.children))
	for elem := range n.children {
		elems = append(elems, elem)
	}
	sort.Slice(elems, func(i, j int) bool {
		return elems[i].String() < elems[j].String()
	})
	for _, elem := range elems {
		out[elem.String()] = n.children[elem].toMap()
	}
	return out
}
