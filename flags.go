package main

import "github.com/ByLCY/engraver/layout"

// lengthValue 实现 flag.Value，接受带单位的长度，裸数字按 mm 处理。
type lengthValue struct {
	layout.Length
}

func lengthFlag(mm float64) lengthValue {
	return lengthValue{layout.Length{Value: mm, Unit: layout.UnitMM}}
}

func (v *lengthValue) Set(s string) error {
	l, err := layout.ParseLength(s)
	if err != nil {
		return err
	}
	v.Length = l
	return nil
}
