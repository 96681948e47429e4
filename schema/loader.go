package schema

import (
	"fmt"

	"github.com/buger/jsonparser"

	"github.com/gofhir/elementmodel/primitive"
)

// LoadDescriptors parses a descriptor document into mapping descriptors.
// The document is a compact projection of StructureDefinition snapshots:
//
//	{
//	  "types": [
//	    {
//	      "name": "Patient",
//	      "properties": [
//	        {"name": "active", "type": "boolean"},
//	        {"name": "gender", "type": "code", "enum": ["male", "female", "other", "unknown"]},
//	        {"name": "name", "type": "HumanName", "repeats": true},
//	        {"name": "deceased", "types": ["boolean", "dateTime"]},
//	        {"name": "contained", "type": "Resource", "repeats": true}
//	      ]
//	    }
//	  ]
//	}
//
// A property's kind is inferred: several types make a choice, the type
// "Resource" makes a resource slot, a lower-case primitive code makes a
// primitive, anything else is complex. "valueSlot": true marks the value
// slot of a primitive-bearing type.
func LoadDescriptors(data []byte) ([]*Descriptor, error) {
	var descriptors []*Descriptor
	var loadErr error

	_, err := jsonparser.ArrayEach(data, func(typeData []byte, dataType jsonparser.ValueType, _ int, _ error) {
		if loadErr != nil {
			return
		}
		d, err := parseType(typeData)
		if err != nil {
			loadErr = err
			return
		}
		descriptors = append(descriptors, d)
	}, "types")
	if err != nil {
		return nil, fmt.Errorf("parsing descriptor document: %w", err)
	}
	if loadErr != nil {
		return nil, loadErr
	}
	return descriptors, nil
}

// LoadInto parses a descriptor document and registers every type.
func LoadInto(r *Registry, data []byte) error {
	descriptors, err := LoadDescriptors(data)
	if err != nil {
		return err
	}
	for _, d := range descriptors {
		r.Register(d)
	}
	return nil
}

func parseType(data []byte) (*Descriptor, error) {
	name, err := jsonparser.GetString(data, "name")
	if err != nil {
		return nil, fmt.Errorf("type entry missing name: %w", err)
	}

	var props []*Property
	var propErr error
	_, err = jsonparser.ArrayEach(data, func(propData []byte, _ jsonparser.ValueType, _ int, _ error) {
		if propErr != nil {
			return
		}
		p, err := parseProperty(name, propData)
		if err != nil {
			propErr = err
			return
		}
		props = append(props, p)
	}, "properties")
	if err != nil && err != jsonparser.KeyPathNotFoundError {
		return nil, fmt.Errorf("type %q: %w", name, err)
	}
	if propErr != nil {
		return nil, propErr
	}
	return NewDescriptor(name, props...), nil
}

func parseProperty(typeName string, data []byte) (*Property, error) {
	name, err := jsonparser.GetString(data, "name")
	if err != nil {
		return nil, fmt.Errorf("type %q: property missing name: %w", typeName, err)
	}

	p := &Property{Name: name}

	if single, err := jsonparser.GetString(data, "type"); err == nil {
		p.Types = []string{single}
	}
	_, _ = jsonparser.ArrayEach(data, func(t []byte, _ jsonparser.ValueType, _ int, _ error) {
		p.Types = append(p.Types, string(t))
	}, "types")
	if len(p.Types) == 0 {
		return nil, fmt.Errorf("type %q: property %q declares no type", typeName, name)
	}

	if v, err := jsonparser.GetBoolean(data, "repeats"); err == nil {
		p.Repeats = v
	}
	if v, err := jsonparser.GetBoolean(data, "valueSlot"); err == nil {
		p.ValueSlot = v
	}
	_, _ = jsonparser.ArrayEach(data, func(v []byte, _ jsonparser.ValueType, _ int, _ error) {
		p.Enum = append(p.Enum, string(v))
	}, "enum")

	p.Kind = classify(p)
	return p, nil
}

func classify(p *Property) Kind {
	switch {
	case len(p.Types) > 1:
		return KindChoice
	case p.Types[0] == "Resource":
		return KindResource
	case primitive.IsPrimitiveType(p.Types[0]):
		return KindPrimitive
	default:
		return KindComplex
	}
}

// RegisterPrimitives registers a minimal descriptor for every FHIR
// primitive type code: a single value slot holding the scalar. Resource
// descriptors reference these for their primitive-typed elements.
func RegisterPrimitives(r *Registry) {
	for code := range fhirPrimitiveCodes {
		r.Register(NewDescriptor(code, &Property{
			Name:      "value",
			Types:     []string{code},
			Kind:      KindPrimitive,
			ValueSlot: true,
		}))
	}
}

// fhirPrimitiveCodes mirrors primitive.IsPrimitiveType's set; kept local so
// registration order and content are explicit.
var fhirPrimitiveCodes = map[string]bool{
	"boolean": true, "integer": true, "integer64": true, "string": true,
	"decimal": true, "uri": true, "url": true, "canonical": true,
	"base64Binary": true, "instant": true, "date": true, "dateTime": true,
	"time": true, "code": true, "oid": true, "id": true, "markdown": true,
	"unsignedInt": true, "positiveInt": true, "uuid": true, "xhtml": true,
}
