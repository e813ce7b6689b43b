package ingest

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"llm-assessment-backend/utils"
)

// delimiterFor 按文件扩展名选择分隔符：.tsv/.txt用制表符，其余按逗号处理。
func delimiterFor(filename string) (rune, string) {
	lower := strings.ToLower(filename)
	if strings.HasSuffix(lower, ".tsv") || strings.HasSuffix(lower, ".txt") {
		return '\t', "TSV"
	}
	return ',', "CSV"
}

/*
table 解析后的表格。headers为首行列名，rows为数据行，
index是列名到下标的映射，行内按列名取单元格。
*/
type table struct {
	headers []string
	rows    [][]string
	index   map[string]int
}

func (t *table) hasColumn(name string) bool {
	_, ok := t.index[name]
	return ok
}

// cell 取一行里指定列的单元格，列不存在、行过短或单元格空白时返回nil。
func (t *table) cell(row []string, name string) *string {
	idx, ok := t.index[name]
	if !ok || idx >= len(row) {
		return nil
	}
	return utils.CellToStr(row[idx])
}

// firstLineBlank 探测首个物理行是否为空白。csv.Reader会整行跳过空行，
// 空白首行的文件在它看来首行就是第二行，必须在交给Reader之前单独拦下。
func firstLineBlank(data []byte) bool {
	if len(data) == 0 {
		return false
	}

	end := bytes.IndexByte(data, '\n')
	if end < 0 {
		end = len(data)
	}

	return len(bytes.TrimSpace(data[:end])) == 0
}

func newReader(data []byte, filename string) *csv.Reader {
	delimiter, _ := delimiterFor(filename)

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = delimiter
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	return reader
}

func parseTable(data []byte, filename string) (*table, error) {
	if firstLineBlank(data) {
		return nil, fmt.Errorf("file [%s] has no header line", filename)
	}

	reader := newReader(data, filename)

	lines, err := reader.ReadAll()
	if err != nil {
		return nil, utils.WrapErrorf(err, "read delimited file [%s] fail", filename)
	}

	if len(lines) == 0 {
		return nil, fmt.Errorf("file [%s] has no lines", filename)
	}

	t := &table{
		headers: lines[0],
		rows:    lines[1:],
		index:   make(map[string]int, len(lines[0])),
	}
	for i, header := range t.headers {
		name := strings.TrimSpace(header)
		if name == "" {
			continue
		}
		if _, exists := t.index[name]; !exists {
			t.index[name] = i
		}
	}

	return t, nil
}

/*
validateTable 只读首行校验表格结构，返回成功标志和给用户看的诊断信息。

只有结构性空输入才算失败；缺少 response_id 列或缺少推荐列都只在
成功消息里附带提示，缺少的推荐列最多列出5个，其余以数量一笔带过。
*/
func validateTable(data []byte, filename string) (bool, string) {
	_, fileType := delimiterFor(filename)

	if firstLineBlank(data) {
		return false, fmt.Sprintf("%s file has no headers", fileType)
	}

	reader := newReader(data, filename)

	headers, err := reader.Read()
	if err == io.EOF {
		return false, fmt.Sprintf("%s file appears to be empty", fileType)
	}
	if err != nil {
		return false, fmt.Sprintf("Error validating CSV: %s", err.Error())
	}

	if allBlank(headers) {
		return false, fmt.Sprintf("%s file has no headers", fileType)
	}

	headerSet := make(map[string]struct{}, len(headers))
	for _, header := range headers {
		headerSet[strings.TrimSpace(header)] = struct{}{}
	}

	_, hasResponseID := headerSet["response_id"]

	var otherMissing []string
	for _, recommended := range RecommendedHeaders {
		if recommended == "response_id" {
			continue
		}
		if _, ok := headerSet[recommended]; !ok {
			otherMissing = append(otherMissing, recommended)
		}
	}

	message := fmt.Sprintf("%s file is valid", fileType)

	if !hasResponseID {
		message += ". Note: 'response_id' column is missing; IDs will be auto-generated."
	}

	if len(otherMissing) > 0 {
		shown := otherMissing
		if len(shown) > 5 {
			shown = shown[:5]
		}
		message += fmt.Sprintf(" Some recommended columns are missing: %s", strings.Join(shown, ", "))
		if len(otherMissing) > 5 {
			message += fmt.Sprintf(" and %d more", len(otherMissing)-5)
		}
	}

	return true, message
}

func allBlank(cells []string) bool {
	for _, cell := range cells {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
