package diagnostic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiagnostics_Error(t *testing.T) {
	var d Diagnostics

	assert.NoError(t, d.Error())
	assert.False(t, d.HasErrors())

	d.AddWarning(CodeMisplaced, "//pallet:version has no effect here", "pallet.go:3:1", "")
	assert.NoError(t, d.Error(), "warnings alone do not fail")

	d.AddError(CodeNoPallet, "no //pallet:pallet struct", "", "")
	d.AddError(CodeErrorGenerics, "error declaration has 2 type parameters, pallet has 1", "pallet.go:9:6", "Error")

	err := d.Error()
	require.Error(t, err)
	assert.Equal(t,
		"[P001] no //pallet:pallet struct; pallet.go:9:6 Error: [P010] error declaration has 2 type parameters, pallet has 1",
		err.Error())
	assert.Equal(t, []string{CodeNoPallet, CodeErrorGenerics}, d.Codes())
}

func TestDiagnosticSeverity_String(t *testing.T) {
	assert.Equal(t, "warning", DiagnosticWarning.String())
	assert.Equal(t, "error", DiagnosticError.String())
	assert.Equal(t, "unknown", DiagnosticSeverity(9).String())
}
