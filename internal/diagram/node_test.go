package diagram

import (
	"fmt"
	"testing"

	"github.com/google/uuid"

	"github.com/blake-brooks-88/DataCloudDiscovery-sub001/internal/models"
)

func boolPtr(b bool) *bool { return &b }

func testEntity(name string, fields ...models.Field) models.Entity {
	return models.Entity{ID: uuid.New(), Name: name, Fields: fields}
}

func namedField(name string) models.Field {
	return models.Field{ID: uuid.New(), Name: name, Type: "string"}
}

func TestLayoutNodeFieldOrdering(t *testing.T) {
	pk := namedField("id")
	pk.IsPrimaryKey = true
	fk := namedField("account_id")
	fk.IsForeignKey = true
	hidden := namedField("internal_notes")
	hidden.VisibleInDiagram = boolPtr(false)
	plain := namedField("email")

	e := testEntity("Contact", plain, hidden, fk, pk)
	node := LayoutNode(&e, Point{X: 100, Y: 100}, false, false, false)

	wantOrder := []string{"id", "account_id", "email"}
	if len(node.Rows) != len(wantOrder) {
		t.Fatalf("got %d rows, wanted %d", len(node.Rows), len(wantOrder))
	}
	for i, want := range wantOrder {
		if node.Rows[i].Name != want {
			t.Errorf("row %d: got %q, wanted %q", i, node.Rows[i].Name, want)
		}
	}
	if !node.Rows[0].Primary || !node.Rows[1].Foreign {
		t.Errorf("expected PK/FK markers on the first two rows: %+v", node.Rows)
	}
}

func TestLayoutNodeOverflow(t *testing.T) {
	var fields []models.Field
	for i := 0; i < MaxFieldRows+3; i++ {
		fields = append(fields, namedField(fmt.Sprintf("field_%d", i)))
	}
	e := testEntity("Wide", fields...)

	node := LayoutNode(&e, Point{}, false, false, false)
	if len(node.Rows) != MaxFieldRows {
		t.Errorf("got %d rows, wanted %d", len(node.Rows), MaxFieldRows)
	}
	if node.Overflow != 3 {
		t.Errorf("got overflow %d, wanted 3", node.Overflow)
	}

	_, h := NodeSize(&e)
	want := HeaderHeight + float64(MaxFieldRows+1)*FieldRowHeight
	if h != want {
		t.Errorf("got height %v, wanted %v", h, want)
	}
}

func TestLayoutNodeSensitiveMarker(t *testing.T) {
	f := namedField("ssn")
	f.ContainsSensitiveData = true
	e := testEntity("Person", f)

	node := LayoutNode(&e, Point{}, false, false, false)
	if len(node.Rows) != 1 || !node.Rows[0].Sensitive {
		t.Errorf("expected sensitive marker, got %+v", node.Rows)
	}
}

func TestFieldAnchorY(t *testing.T) {
	hidden := namedField("hidden")
	hidden.VisibleInDiagram = boolPtr(false)
	first := namedField("first")
	second := namedField("second")
	e := testEntity("T", hidden, first, second)

	y, ok := FieldAnchorY(&e, second.ID)
	if !ok {
		t.Fatal("expected anchor for visible field")
	}
	// hidden field does not shift the visible index
	want := HeaderHeight + 1.5*FieldRowHeight
	if y != want {
		t.Errorf("got anchor %v, wanted %v", y, want)
	}

	if _, ok := FieldAnchorY(&e, uuid.New()); ok {
		t.Error("expected no anchor for unknown field")
	}
	if _, ok := FieldAnchorY(&e, hidden.ID); ok {
		t.Error("expected no anchor for hidden field")
	}
}
