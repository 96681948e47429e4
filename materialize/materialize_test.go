package materialize

import (
	"context"
	"errors"
	"iter"
	"testing"

	em "github.com/gofhir/elementmodel"
	"github.com/gofhir/elementmodel/element"
	"github.com/gofhir/elementmodel/primitive"
	"github.com/gofhir/elementmodel/schema"
)

// mockNode is a hand-built typed node for driving the materializer.
type mockNode struct {
	name  string
	typ   string
	loc   string
	short string
	val   primitive.Value
	kids  []*mockNode
}

func (m *mockNode) Name() string { return m.name }

func (m *mockNode) Value() primitive.Value { return m.val }

func (m *mockNode) InstanceType() string { return m.typ }

func (m *mockNode) Location() string { return m.loc }

func (m *mockNode) ShortPath() string { return m.short }

func (m *mockNode) Children(names ...string) iter.Seq[element.Node] {
	return func(yield func(element.Node) bool) {
		for _, k := range m.kids {
			if len(names) > 0 && !matchesAny(k.name, names) {
				continue
			}
			if !yield(k) {
				return
			}
		}
	}
}

func matchesAny(name string, filters []string) bool {
	for _, f := range filters {
		if element.NameMatches(name, f) {
			return true
		}
	}
	return false
}

var _ element.Node = (*mockNode)(nil)

func scalar(name, typ, loc string, v primitive.Value) *mockNode {
	return &mockNode{name: name, typ: typ, loc: loc, short: loc, val: v}
}

func testRegistry() *schema.Registry {
	r := schema.NewRegistry()
	schema.RegisterPrimitives(r)
	r.Register(schema.NewDescriptor("HumanName",
		&schema.Property{Name: "use", Types: []string{"code"}, Kind: schema.KindPrimitive,
			Enum: []string{"usual", "official", "temp", "nickname", "anonymous", "old", "maiden"}},
		&schema.Property{Name: "family", Types: []string{"string"}, Kind: schema.KindPrimitive},
		&schema.Property{Name: "given", Types: []string{"string"}, Kind: schema.KindPrimitive, Repeats: true},
	))
	r.Register(schema.NewDescriptor("Patient",
		&schema.Property{Name: "active", Types: []string{"boolean"}, Kind: schema.KindPrimitive},
		&schema.Property{Name: "gender", Types: []string{"code"}, Kind: schema.KindPrimitive,
			Enum: []string{"male", "female", "other", "unknown"}},
		&schema.Property{Name: "birthDate", Types: []string{"date"}, Kind: schema.KindPrimitive},
		&schema.Property{Name: "name", Types: []string{"HumanName"}, Kind: schema.KindComplex, Repeats: true},
		&schema.Property{Name: "deceased", Types: []string{"boolean", "dateTime"}, Kind: schema.KindChoice},
		&schema.Property{Name: "contained", Types: []string{"Resource"}, Kind: schema.KindResource, Repeats: true},
	))
	return r
}

// patientNode builds the canonical test tree:
//
//	Patient{active: true, gender: "female", name: [{family: "Doe"}]}
func patientNode() *mockNode {
	return &mockNode{
		name: "Patient", typ: "Patient", loc: "Patient", short: "Patient",
		kids: []*mockNode{
			scalar("active", "boolean", "Patient.active", primitive.Boolean(true)),
			scalar("gender", "code", "Patient.gender", primitive.String("female")),
			{
				name: "name", typ: "HumanName", loc: "Patient.name[0]", short: "Patient.name[0]",
				kids: []*mockNode{
					scalar("family", "string", "Patient.name[0].family", primitive.String("Doe")),
				},
			},
		},
	}
}

func TestMaterializePatient(t *testing.T) {
	m := New(testRegistry())

	inst, err := m.Materialize(patientNode())
	if err != nil {
		t.Fatalf("Materialize: %v", err)
	}
	if got := inst.Type(); got != "Patient" {
		t.Fatalf("instance type = %q, want Patient", got)
	}

	active, ok := inst.Child("active")
	if !ok {
		t.Fatal("active not materialized")
	}
	if raw, _ := active.RawValue(); raw != primitive.Boolean(true) {
		t.Errorf("active raw = %v, want Boolean(true)", raw)
	}

	name, ok := inst.Child("name")
	if !ok {
		t.Fatal("name not materialized")
	}
	family, ok := name.Child("family")
	if !ok {
		t.Fatal("family not materialized")
	}
	if raw, _ := family.RawValue(); raw != "Doe" {
		t.Errorf("family raw = %v, want verbatim string \"Doe\"", raw)
	}
}

func TestMaterializeUnknownMember(t *testing.T) {
	root := patientNode()
	root.kids = append(root.kids,
		scalar("petName", "string", "Patient.petName", primitive.String("Rex")))

	_, err := New(testRegistry()).Materialize(root)
	var serr *em.StructuralError
	if !errors.As(err, &serr) {
		t.Fatalf("want StructuralError, got %v", err)
	}
	if serr.Kind != em.KindUnknownMember {
		t.Errorf("kind = %v, want %v", serr.Kind, em.KindUnknownMember)
	}
	if serr.Location != "Patient.petName" {
		t.Errorf("location = %q, want Patient.petName", serr.Location)
	}
}

func TestMaterializeAcceptUnknownMembers(t *testing.T) {
	root := patientNode()
	root.kids = append(root.kids,
		scalar("petName", "string", "Patient.petName", primitive.String("Rex")))

	metrics := em.NewMetrics()
	inst, err := New(testRegistry(),
		em.WithAcceptUnknownMembers(true),
		em.WithMetrics(metrics)).Materialize(root)
	if err != nil {
		t.Fatalf("Materialize: %v", err)
	}
	if inst.Count("petName") != 0 {
		t.Error("unknown member should be skipped, not stored")
	}
	if got := metrics.Snapshot().UnknownMembersSkipped; got != 1 {
		t.Errorf("UnknownMembersSkipped = %d, want 1", got)
	}
}

func TestMaterializeRepeatedSingleton(t *testing.T) {
	root := patientNode()
	root.kids = append(root.kids,
		scalar("active", "boolean", "Patient.active", primitive.Boolean(false)))

	_, err := New(testRegistry()).Materialize(root)
	var serr *em.StructuralError
	if !errors.As(err, &serr) {
		t.Fatalf("want StructuralError, got %v", err)
	}
	if serr.Kind != em.KindRepeatedMember {
		t.Errorf("kind = %v, want %v", serr.Kind, em.KindRepeatedMember)
	}
	if serr.Location != "Patient.active" {
		t.Errorf("location = %q, want Patient.active", serr.Location)
	}
}

func TestMaterializeInvalidEnum(t *testing.T) {
	root := patientNode()
	root.kids[1] = scalar("gender", "code", "Patient.gender", primitive.String("banana"))

	_, err := New(testRegistry()).Materialize(root)
	var serr *em.StructuralError
	if !errors.As(err, &serr) {
		t.Fatalf("want StructuralError, got %v", err)
	}
	if serr.Kind != em.KindInvalidLiteral {
		t.Errorf("kind = %v, want %v", serr.Kind, em.KindInvalidLiteral)
	}
	// Enum violations point at the element carrying the enumerated member.
	if serr.Location != "Patient" {
		t.Errorf("location = %q, want Patient", serr.Location)
	}
}

func TestMaterializeLenientEnum(t *testing.T) {
	root := patientNode()
	root.kids[1] = scalar("gender", "code", "Patient.gender", primitive.String("banana"))

	metrics := em.NewMetrics()
	inst, err := New(testRegistry(),
		em.WithAllowUnrecognizedEnums(true),
		em.WithMetrics(metrics)).Materialize(root)
	if err != nil {
		t.Fatalf("Materialize: %v", err)
	}
	gender, _ := inst.Child("gender")
	if raw, _ := gender.RawValue(); raw != "banana" {
		t.Errorf("tolerated literal should be stored verbatim, got %v", raw)
	}
	if got := metrics.Snapshot().EnumLiteralsTolerated; got != 1 {
		t.Errorf("EnumLiteralsTolerated = %d, want 1", got)
	}
}

func TestMaterializeChoice(t *testing.T) {
	root := patientNode()
	root.kids = append(root.kids,
		scalar("deceased", "boolean", "Patient.deceased", primitive.Boolean(true)))

	inst, err := New(testRegistry()).Materialize(root)
	if err != nil {
		t.Fatalf("Materialize: %v", err)
	}
	deceased, ok := inst.Child("deceased")
	if !ok {
		t.Fatal("deceased not materialized")
	}
	if deceased.Type() != "boolean" {
		t.Errorf("deceased type = %q, want boolean", deceased.Type())
	}
}

func TestMaterializeChoiceDisallowedType(t *testing.T) {
	root := patientNode()
	root.kids = append(root.kids,
		scalar("deceased", "decimal", "Patient.deceased", primitive.Integer(1)))

	_, err := New(testRegistry()).Materialize(root)
	var serr *em.StructuralError
	if !errors.As(err, &serr) {
		t.Fatalf("want StructuralError, got %v", err)
	}
	if serr.Kind != em.KindTypeMismatch {
		t.Errorf("kind = %v, want %v", serr.Kind, em.KindTypeMismatch)
	}
}

func TestMaterializeUnresolvableType(t *testing.T) {
	node := scalar("thing", "", "thing", nil)
	_, err := New(testRegistry()).Materialize(node)
	var serr *em.StructuralError
	if !errors.As(err, &serr) {
		t.Fatalf("want StructuralError, got %v", err)
	}
	if serr.Kind != em.KindUnknownType {
		t.Errorf("kind = %v, want %v", serr.Kind, em.KindUnknownType)
	}
}

func TestMaterializeAs(t *testing.T) {
	// An untyped node materializes once a type is supplied externally.
	node := scalar("family", "", "family", primitive.String("Doe"))
	inst, err := New(testRegistry()).MaterializeAs(node, "string")
	if err != nil {
		t.Fatalf("MaterializeAs: %v", err)
	}
	if raw, _ := inst.RawValue(); raw != "Doe" {
		t.Errorf("raw = %v, want Doe", raw)
	}
}

func TestMaterializeInto(t *testing.T) {
	r := testRegistry()
	m := New(r)

	desc, err := r.Descriptor("Patient")
	if err != nil {
		t.Fatal(err)
	}
	target := schema.NewInstance(desc)
	if err := m.MaterializeInto(patientNode(), target); err != nil {
		t.Fatalf("MaterializeInto: %v", err)
	}
	if target.Count("name") != 1 {
		t.Error("target not populated")
	}
}

func TestMaterializeIntoNil(t *testing.T) {
	var aerr *em.ArgumentError
	err := New(testRegistry()).MaterializeInto(patientNode(), nil)
	if !errors.As(err, &aerr) {
		t.Fatalf("want ArgumentError, got %v", err)
	}
}

func TestMaterializeIntoShapeMismatch(t *testing.T) {
	r := testRegistry()
	desc, err := r.Descriptor("HumanName")
	if err != nil {
		t.Fatal(err)
	}
	target := schema.NewInstance(desc)

	var aerr *em.ArgumentError
	if err := New(r).MaterializeInto(patientNode(), target); !errors.As(err, &aerr) {
		t.Fatalf("want ArgumentError, got %v", err)
	}
	if target.Count("family") != 0 || target.Count("given") != 0 {
		t.Error("mismatched target must not be mutated")
	}
}

func TestMaterializeIntoDivergentDescriptor(t *testing.T) {
	// A target whose descriptor shares the resolved type's name but not its
	// shape passes the up-front check and is rejected at the first store,
	// with a kind that marks the inconsistency rather than the content.
	target := schema.NewInstance(schema.NewDescriptor("Patient"))

	err := New(testRegistry()).MaterializeInto(patientNode(), target)
	var serr *em.StructuralError
	if !errors.As(err, &serr) {
		t.Fatalf("want StructuralError, got %v", err)
	}
	if serr.Kind != em.KindInternal {
		t.Errorf("kind = %v, want %v", serr.Kind, em.KindInternal)
	}
	if serr.Location != "Patient.active" {
		t.Errorf("location = %q, want Patient.active", serr.Location)
	}
}

func TestMaterializeBatch(t *testing.T) {
	m := New(testRegistry())
	roots := []element.Node{
		patientNode(),
		scalar("broken", "Mystery", "broken", nil),
		patientNode(),
	}

	results := m.MaterializeBatch(context.Background(), roots, 2)
	if len(results) != 3 {
		t.Fatalf("got %d results, want 3", len(results))
	}
	for i, res := range results {
		if res.Index != i {
			t.Errorf("result %d carries index %d", i, res.Index)
		}
	}
	if results[0].Err != nil || results[2].Err != nil {
		t.Errorf("healthy roots errored: %v, %v", results[0].Err, results[2].Err)
	}
	if results[1].Err == nil {
		t.Error("broken root should error")
	}
}

func TestMaterializeBatchCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	m := New(testRegistry())
	roots := []element.Node{patientNode(), patientNode(), patientNode(), patientNode()}
	results := m.MaterializeBatch(ctx, roots, 2)
	for i, res := range results {
		if res.Err == nil && res.Instance == nil {
			t.Errorf("result %d has neither instance nor error", i)
		}
		if res.Err != nil && !errors.Is(res.Err, context.Canceled) {
			t.Errorf("result %d error = %v, want context.Canceled", i, res.Err)
		}
	}
}
