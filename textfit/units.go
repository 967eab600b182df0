package textfit

// Unit 是字号的计量单位。画布按像素标定，渲染后端也可能以点为单位
// 回报字号；缩放循环只做同单位的加减，不做单位换算。
type Unit int

const (
	UnitPX Unit = iota
	UnitPT
)

func (u Unit) String() string {
	switch u {
	case UnitPT:
		return "pt"
	default:
		return "px"
	}
}
