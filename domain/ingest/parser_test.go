package ingest

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDelimiterFor(t *testing.T) {
	for filename, expected := range map[string]rune{
		"data.csv":      ',',
		"data.tsv":      '\t',
		"data.txt":      '\t',
		"DATA.TSV":      '\t',
		"predictions":   ',',
		"weird.name.gz": ',',
	} {
		delimiter, _ := delimiterFor(filename)
		assert.Equalf(t, expected, delimiter, "filename=%s", filename)
	}
}

func TestValidateEmptyFile(t *testing.T) {
	ok, msg := validateTable(nil, "data.csv")
	assert.False(t, ok)
	assert.Equal(t, "CSV file appears to be empty", msg)

	ok, msg = validateTable([]byte(""), "data.tsv")
	assert.False(t, ok)
	assert.Equal(t, "TSV file appears to be empty", msg)
}

func TestValidateNoHeaders(t *testing.T) {
	ok, msg := validateTable([]byte(",,\n"), "data.csv")
	assert.False(t, ok)
	assert.Equal(t, "CSV file has no headers", msg)
}

func TestValidateBlankFirstLine(t *testing.T) {
	// 空白首行不能被跳过而让第二行顶替成表头
	for name, data := range map[string][]byte{
		"newline only": []byte("\nresponse_id,author\nr1,A\n"),
		"crlf":         []byte("\r\nresponse_id,author\nr1,A\n"),
		"spaces":       []byte("   \nresponse_id,author\nr1,A\n"),
	} {
		ok, msg := validateTable(data, "data.csv")
		assert.Falsef(t, ok, "case=%s", name)
		assert.Equalf(t, "CSV file has no headers", msg, "case=%s", name)

		_, err := parseTable(data, "data.csv")
		assert.NotNilf(t, err, "case=%s", name)
	}
}

func TestValidateMissingResponseID(t *testing.T) {
	data := []byte(strings.Join(RecommendedHeaders[1:], ",") + "\n")
	ok, msg := validateTable(data, "data.csv")
	assert.True(t, ok)
	assert.Contains(t, msg, "'response_id' column is missing")
	assert.NotContains(t, msg, "Some recommended columns are missing")
}

func TestValidateMissingRecommendedTruncation(t *testing.T) {
	// 只有 response_id 一列，其余32个推荐列全部缺失
	ok, msg := validateTable([]byte("response_id\nr1\n"), "data.csv")
	assert.True(t, ok)
	assert.Contains(t, msg, "CSV file is valid")
	assert.Contains(t, msg, "Some recommended columns are missing: prompt_id, model_name, model_id, document_id, author")
	assert.Contains(t, msg, "and 27 more")
}

func TestValidateAllColumnsPresent(t *testing.T) {
	data := []byte(strings.Join(RecommendedHeaders, "\t") + "\n")
	ok, msg := validateTable(data, "data.tsv")
	assert.True(t, ok)
	assert.Equal(t, "TSV file is valid", msg)
}

func TestParseTableCells(t *testing.T) {
	data := []byte("response_id,author,title\nr1, Jane Doe ,\nr2,,Some Title\n")
	table, err := parseTable(data, "data.csv")
	require.Nil(t, err)
	require.Len(t, table.rows, 2)

	author := table.cell(table.rows[0], "author")
	require.NotNil(t, author)
	assert.Equal(t, "Jane Doe", *author)

	assert.Nil(t, table.cell(table.rows[0], "title"))
	assert.Nil(t, table.cell(table.rows[1], "author"))
	assert.Nil(t, table.cell(table.rows[0], "no_such_column"))
}
