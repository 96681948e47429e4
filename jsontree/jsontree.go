// Package jsontree decodes FHIR JSON into typed-node trees. It is the
// wire-side producer of the typed-node contract: every element, including
// the direct scalar of primitive-bearing complex nodes, is exposed with
// its name, runtime type (when resolvable through the mapping provider),
// and stable location and display paths.
//
// The decoder is deliberately tolerant: unmapped members decode with an
// unknown runtime type and malformed primitive literals decode as plain
// strings. Enforcement is the materializer's job.
package jsontree

import (
	"strings"

	"github.com/buger/jsonparser"

	em "github.com/gofhir/elementmodel"
	"github.com/gofhir/elementmodel/element"
	"github.com/gofhir/elementmodel/pool"
	"github.com/gofhir/elementmodel/primitive"
	"github.com/gofhir/elementmodel/schema"
)

// Decode parses a resource document into a typed-node tree. The root type
// is taken from the resourceType member; member names, including choice
// suffixes like "valueString", are resolved against the provider's
// descriptors.
func Decode(data []byte, provider schema.Provider) (element.Node, error) {
	resourceType, err := jsonparser.GetString(data, "resourceType")
	if err != nil {
		return nil, em.NewStructuralError(em.KindMalformed, "",
			"document has no resourceType member")
	}
	return decodeResource(data, resourceType, resourceType, resourceType, provider)
}

func decodeResource(data []byte, name, location, shortPath string, provider schema.Provider) (*srcNode, error) {
	resourceType, err := jsonparser.GetString(data, "resourceType")
	if err != nil {
		return nil, em.NewStructuralError(em.KindMalformed, location,
			"nested resource has no resourceType member")
	}
	desc, _ := provider.Descriptor(resourceType) // nil for unknown types

	root := &srcNode{
		name:      name,
		typ:       resourceType,
		location:  location,
		shortPath: shortPath,
	}
	if err := decodeMembers(data, root, desc, provider, true); err != nil {
		return nil, err
	}
	return root, nil
}

// decodeMembers walks an object's members in document order and attaches
// them as children of parent.
func decodeMembers(data []byte, parent *srcNode, desc *schema.Descriptor, provider schema.Provider, isResource bool) error {
	return jsonparser.ObjectEach(data, func(key, value []byte, dataType jsonparser.ValueType, _ int) error {
		k := string(key)
		if isResource && k == "resourceType" {
			return nil
		}

		prop, typeName := resolveMember(desc, k)
		elemName := k
		if prop != nil {
			elemName = prop.Name
		}

		if dataType == jsonparser.Array {
			// Array-shaped members are indexed regardless of the declared
			// cardinality: a non-repeating member wrongly encoded as an
			// array still decodes with unique sibling locations, so the
			// materializer's repeat error can cite an unambiguous element.
			idx := 0
			var itemErr error
			_, err := jsonparser.ArrayEach(value, func(item []byte, itemType jsonparser.ValueType, _ int, _ error) {
				if itemErr != nil {
					return
				}
				itemErr = decodeValue(item, itemType, parent, prop, elemName, typeName, idx, provider)
				idx++
			})
			if err != nil {
				return em.NewStructuralError(em.KindMalformed,
					pool.ChildPath(parent.location, elemName, -1), "malformed array: %v", err)
			}
			return itemErr
		}

		index := -1
		if prop != nil && prop.Repeats {
			// A declared-repeating member encoded as a single value still
			// gets an indexed location.
			index = 0
		}
		return decodeValue(value, dataType, parent, prop, elemName, typeName, index, provider)
	})
}

// resolveMember maps a wire member name to its property and concrete type
// name. Choice suffixes resolve through the descriptor; unknown members
// yield a nil property and an empty type.
func resolveMember(desc *schema.Descriptor, key string) (*schema.Property, string) {
	if desc == nil {
		return nil, ""
	}
	if prop, ok := desc.Lookup(key); ok {
		if len(prop.Types) == 1 {
			return prop, prop.Types[0]
		}
		return prop, ""
	}
	if prop, typeName, ok := desc.ChoiceLookup(key); ok {
		return prop, typeName
	}
	return nil, ""
}

// decodeValue attaches one decoded member value (array item or single) as
// a child of parent.
func decodeValue(value []byte, dataType jsonparser.ValueType, parent *srcNode,
	prop *schema.Property, elemName, typeName string, index int, provider schema.Provider) error {

	location := pool.ChildPath(parent.location, elemName, index)
	shortPath := pool.ChildPath(parent.shortPath, elemName, index)

	switch dataType {
	case jsonparser.Object:
		if prop != nil && prop.Kind == schema.KindResource {
			child, err := decodeResource(value, elemName, location, shortPath, provider)
			if err != nil {
				return err
			}
			parent.children = append(parent.children, child)
			return nil
		}

		child := &srcNode{
			name:      elemName,
			typ:       typeName,
			location:  location,
			shortPath: shortPath,
		}
		childDesc, _ := descriptorFor(provider, typeName)
		parent.children = append(parent.children, child)
		return decodeMembers(value, child, childDesc, provider, false)

	case jsonparser.String:
		s, err := jsonparser.ParseString(value)
		if err != nil {
			return em.NewStructuralError(em.KindMalformed, location, "malformed string: %v", err)
		}
		parent.children = append(parent.children, scalarNode(elemName, typeName, location, shortPath, s))
		return nil

	case jsonparser.Number:
		parent.children = append(parent.children,
			scalarNode(elemName, numericType(typeName, string(value)), location, shortPath, string(value)))
		return nil

	case jsonparser.Boolean:
		b, err := jsonparser.ParseBoolean(value)
		if err != nil {
			return em.NewStructuralError(em.KindMalformed, location, "malformed boolean: %v", err)
		}
		typ := typeName
		if typ == "" {
			typ = "boolean"
		}
		node := &srcNode{name: elemName, typ: typ, location: location, shortPath: shortPath,
			value: primitive.Boolean(b)}
		parent.children = append(parent.children, node)
		return nil

	case jsonparser.Null:
		// JSON nulls carry no content at this layer.
		return nil
	}

	return em.NewStructuralError(em.KindMalformed, location, "unsupported JSON value")
}

// scalarNode builds a primitive-bearing node, coercing the wire literal to
// its domain value. Literals that fail coercion stay as plain strings so
// decoding never rejects what the materializer should diagnose.
func scalarNode(name, typeName, location, shortPath, literal string) *srcNode {
	typ := typeName
	if typ == "" {
		typ = "string"
	}
	v, err := primitive.Coerce(typ, literal)
	if err != nil || v == nil {
		v = primitive.String(literal)
	}
	return &srcNode{name: name, typ: typ, location: location, shortPath: shortPath, value: v}
}

// numericType picks the runtime type of an undeclared numeric literal:
// integral literals are integers, everything else is a decimal.
func numericType(declared, literal string) string {
	if declared != "" {
		return declared
	}
	if strings.ContainsAny(literal, ".eE") {
		return "decimal"
	}
	return "integer"
}

func descriptorFor(provider schema.Provider, typeName string) (*schema.Descriptor, error) {
	if typeName == "" {
		return nil, nil
	}
	return provider.Descriptor(typeName)
}
