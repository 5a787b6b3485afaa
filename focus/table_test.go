package focus

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRouteTableDownMovesFocusedRow(t *testing.T) {
	s := TableState{RowKeys: []string{"r1", "r2", "r3"}, FocusedRowKey: "r1"}
	res := RouteTable(s, ParsedKey{Key: KeyDown})
	require.NotNil(t, res.NextFocusedKey)
	assert.Equal(t, "r2", *res.NextFocusedKey)
}

func TestRouteTableSpaceTogglesSelectionWhenMultiSelect(t *testing.T) {
	s := TableState{RowKeys: []string{"r1", "r2"}, FocusedRowKey: "r1", MultiSelect: true}
	res := RouteTable(s, ParsedKey{Key: KeySpace})
	require.NotNil(t, res.NextSelection)
	assert.Equal(t, []string{"r1"}, res.NextSelection)

	s.Selection = []string{"r1"}
	res = RouteTable(s, ParsedKey{Key: KeySpace})
	assert.Equal(t, []string{}, res.NextSelection, "toggled back off")
}

func TestRouteTableSpaceIgnoredWithoutMultiSelect(t *testing.T) {
	s := TableState{RowKeys: []string{"r1"}, FocusedRowKey: "r1"}
	res := RouteTable(s, ParsedKey{Key: KeySpace})
	assert.False(t, res.Consumed)
}

func TestRouteTableShiftDownExtendsSelectionWhenMultiSelect(t *testing.T) {
	s := TableState{RowKeys: []string{"r1", "r2", "r3"}, FocusedRowKey: "r1", MultiSelect: true}
	res := RouteTable(s, ParsedKey{Key: KeyDown, Mods: ModShift})
	require.NotNil(t, res.NextSelection)
	assert.Equal(t, []string{"r2"}, res.NextSelection)
}

func TestRouteTableEnterActivatesFocusedRow(t *testing.T) {
	s := TableState{RowKeys: []string{"r1"}, FocusedRowKey: "r1"}
	res := RouteTable(s, ParsedKey{Key: KeyEnter})
	require.NotNil(t, res.NodeToActivate)
	assert.Equal(t, "r1", *res.NodeToActivate)
}

func TestRouteTableHomeJumpsToFirstRow(t *testing.T) {
	s := TableState{RowKeys: []string{"r1", "r2", "r3"}, FocusedRowKey: "r3"}
	res := RouteTable(s, ParsedKey{Key: KeyHome})
	require.NotNil(t, res.NextFocusedKey)
	assert.Equal(t, "r1", *res.NextFocusedKey)
}

func TestRouteTableDownAtLastRowIsNotConsumed(t *testing.T) {
	s := TableState{RowKeys: []string{"r1", "r2"}, FocusedRowKey: "r2"}
	res := RouteTable(s, ParsedKey{Key: KeyDown})
	assert.False(t, res.Consumed)
}
