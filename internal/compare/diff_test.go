package compare

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDiff_CaseAndWhitespaceInsensitive(t *testing.T) {
	res := Diff(
		[]string{"Leaky faucet", " leaky   faucet "},
		[]string{"LEAKY FAUCET"},
	)
	assert.Equal(t, []string{"Leaky faucet"}, res.Both)
	assert.Empty(t, res.OnlyA)
	assert.Empty(t, res.OnlyB)
}

func TestDiff_SelfDiff(t *testing.T) {
	a := []string{"Permits included", "permits  included", "Demo hauling"}
	res := Diff(a, a)
	assert.Empty(t, res.OnlyA)
	assert.Empty(t, res.OnlyB)
	assert.Equal(t, []string{"Permits included", "Demo hauling"}, res.Both)
}

func TestDiff_Partition(t *testing.T) {
	a := []string{"Drywall repair", "Paint two coats", "Permit fees"}
	b := []string{"paint two coats", "Dump fees"}
	res := Diff(a, b)
	assert.Equal(t, []string{"Drywall repair", "Permit fees"}, res.OnlyA)
	assert.Equal(t, []string{"Dump fees"}, res.OnlyB)
	assert.Equal(t, []string{"Paint two coats"}, res.Both)
}

// Shared items are the same set regardless of argument order; casing of the
// representative may differ.
func TestDiff_BothSymmetricAsSets(t *testing.T) {
	a := []string{"Rough plumbing", "TILE LABOR", "haul-off"}
	b := []string{"tile labor", "Haul-Off", "final cleanup"}

	toKeys := func(items []string) map[string]bool {
		out := make(map[string]bool, len(items))
		for _, it := range items {
			out[Key(it)] = true
		}
		return out
	}
	assert.Equal(t, toKeys(Diff(a, b).Both), toKeys(Diff(b, a).Both))
}

func TestDiff_EmptyInputs(t *testing.T) {
	res := Diff(nil, nil)
	assert.Empty(t, res.OnlyA)
	assert.Empty(t, res.OnlyB)
	assert.Empty(t, res.Both)

	res = Diff([]string{"x"}, nil)
	assert.Equal(t, []string{"x"}, res.OnlyA)
}

func TestDiff_BlankItemsDropped(t *testing.T) {
	res := Diff([]string{"", "   ", "real"}, []string{"real"})
	assert.Empty(t, res.OnlyA)
	assert.Equal(t, []string{"real"}, res.Both)
}

func TestKey(t *testing.T) {
	assert.Equal(t, Key("  Foo   BAR "), Key("foo bar"))
	assert.Equal(t, "", Key("   "))
}
