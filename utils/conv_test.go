package utils

import (
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
)

func TestCellToStr(t *testing.T) {
	assert.Nil(t, CellToStr(""))
	assert.Nil(t, CellToStr("   "))
	assert.Nil(t, CellToStr("\t"))

	v := CellToStr("  19th century ")
	require.NotNil(t, v)
	assert.Equal(t, "19th century", *v)
}

func TestCellToInt(t *testing.T) {
	assert.Nil(t, CellToInt(""))
	assert.Nil(t, CellToInt("abc"))

	v := CellToInt("1024")
	require.NotNil(t, v)
	assert.Equal(t, 1024, *v)

	v = CellToInt("512.0")
	require.NotNil(t, v)
	assert.Equal(t, 512, *v)
}

func TestCellToBool(t *testing.T) {
	assert.Nil(t, CellToBool(""))
	assert.Nil(t, CellToBool("maybe"))

	for _, cell := range []string{"true", "True", "1", "yes", "T"} {
		v := CellToBool(cell)
		require.NotNilf(t, v, "cell=%#v", cell)
		assert.Truef(t, *v, "cell=%#v", cell)
	}

	for _, cell := range []string{"false", "False", "0", "no", "F"} {
		v := CellToBool(cell)
		require.NotNilf(t, v, "cell=%#v", cell)
		assert.Falsef(t, *v, "cell=%#v", cell)
	}
}
