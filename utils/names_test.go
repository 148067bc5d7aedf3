// utils/names_test.go
package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"Red", "Blue"}, SplitList("Red, Blue"))
	assert.Equal(t, []string{"Red"}, SplitList(" Red "))
	assert.Equal(t, []string{"Red", "Blue"}, SplitList("Red,,Blue,"))
	assert.Nil(t, SplitList(""))
	assert.Nil(t, SplitList("   "))
}

func TestSameName(t *testing.T) {
	assert.True(t, SameName("Adnan", " adnan "))
	assert.True(t, SameName("", "  "))
	assert.False(t, SameName("Adnan", "Sameer"))
}

func TestContainsName(t *testing.T) {
	names := []string{"Adnan", "Sameer"}
	assert.True(t, ContainsName(names, "SAMEER"))
	assert.False(t, ContainsName(names, "Nobody"))
	assert.False(t, ContainsName(nil, "Adnan"))
}

func TestPadOdometer(t *testing.T) {
	assert.Equal(t, "015000", PadOdometer(15000))
	assert.Equal(t, "000000", PadOdometer(0))
	assert.Equal(t, "1234567", PadOdometer(1234567), "readings past six digits keep all digits")
}
