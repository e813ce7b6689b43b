package utils

import (
	"strconv"
	"strings"
)

func MustAtoi(integer string) int {
	ret, err := strconv.Atoi(integer)
	if err != nil {
		panic(err)
	}

	return ret
}

func UintToPtr(v uint) *uint {
	return &v
}

func StrToPtr(v string) *string {
	return &v
}

func FloatToPtr(v float64) *float64 {
	return &v
}

/*
CellToStr 将表格单元格转换为可空字符串。空白单元格视为空值，返回nil。
*/
func CellToStr(cell string) *string {
	trimmed := strings.TrimSpace(cell)
	if trimmed == "" {
		return nil
	}

	return &trimmed
}

/*
CellToInt 将表格单元格转换为可空整数。空白或无法解析的单元格返回nil。
*/
func CellToInt(cell string) *int {
	trimmed := strings.TrimSpace(cell)
	if trimmed == "" {
		return nil
	}

	value, err := strconv.Atoi(trimmed)
	if err != nil {
		// 兼容 "123.0" 这样的浮点写法
		f, ferr := strconv.ParseFloat(trimmed, 64)
		if ferr != nil {
			return nil
		}
		value = int(f)
	}

	return &value
}

/*
CellToBool 将表格单元格转换为可空布尔值。接受 true/false、1/0、yes/no、t/f（不区分大小写），其余返回nil。
*/
func CellToBool(cell string) *bool {
	trimmed := strings.ToLower(strings.TrimSpace(cell))

	var value bool
	switch trimmed {
	case "true", "1", "yes", "t", "y":
		value = true
	case "false", "0", "no", "f", "n":
		value = false
	default:
		return nil
	}

	return &value
}
