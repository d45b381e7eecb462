package components

// UIState represents the current interaction state of a widget.
type UIState int

const (
	// UINormal indicates the widget is in its default state.
	UINormal UIState = iota
	// UIHovered indicates the pointer is over the widget.
	UIHovered
	// UIClicked indicates the primary button is held on the widget.
	UIClicked
	// UIDisabled indicates the widget ignores input.
	UIDisabled
)

// PositionComponent 控件左上角的屏幕坐标（像素）
type PositionComponent struct {
	X, Y float64
}

// Contains reports whether the point lies inside the w×h box at the position.
func (p *PositionComponent) Contains(x, y, w, h float64) bool {
	return x >= p.X && x <= p.X+w && y >= p.Y && y <= p.Y+h
}

// LabelComponent 静态文字
type LabelComponent struct {
	Text string
	// Color RGBA，零值时使用默认文字颜色
	Color [4]uint8
	// Tooltip 悬停时显示的说明，为空则不显示
	Tooltip string
	Width   float64
	Height  float64
}

// LayerComponent 绘制层级，数值大的后绘制（在上层）
// 没有该组件的实体位于第 0 层
type LayerComponent struct {
	Layer int
}

// 预定义层级
const (
	LayerWidgets      = 0
	LayerPopup        = 10
	LayerContextMenu  = 20
	LayerNotification = 30
	LayerDialog       = 40
)

// PanelComponent 带标题的背景面板（弹出的值编辑器）
type PanelComponent struct {
	Title  string
	Width  float64
	Height float64
}
