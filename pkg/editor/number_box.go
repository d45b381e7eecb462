package editor

import (
	"math"
	"strconv"
	"strings"
)

// 数字框拖动调整的默认参数
const (
	DefaultDragThreshold = 0.02
	DefaultDragScale     = 7.0
	DefaultInputRound    = 6
	DefaultDragRound     = 2
)

// NumberBoxOptions 数字框配置
type NumberBoxOptions struct {
	Min, Max float64
	// Hard 为 true 时输入和拖动都限制在 [Min, Max]
	Hard bool
	// InputRound 文本输入保留的小数位数
	InputRound int
	// DragRound 拖动时保留的小数位数，按住精确键时减半
	DragRound int
	// Default 按 D 恢复的值，nil 表示没有默认值
	Default *float64
	// DragThreshold 拖动生效前需要移动的距离（屏幕宽度比例）
	DragThreshold float64
	// DragScale 每单位拖动距离对应的数值变化
	DragScale float64
}

// NumberBox is a numeric text field that can also be adjusted by dragging
// horizontally with the secondary mouse button.
type NumberBox struct {
	opts    NumberBoxOptions
	text    string
	value   float64
	invalid bool

	dragging     bool
	dragStartX   float64
	valueAtClick float64
	multiplier   float64

	// OnChange is called with the new value after every accepted edit.
	OnChange func(value float64)
}

// NewNumberBox 创建数字框
//
// 参数:
//
//	initial - 初始值（按 InputRound 取整后显示）
//	opts - 配置，零值字段使用默认参数
func NewNumberBox(initial float64, opts NumberBoxOptions) *NumberBox {
	if opts.DragThreshold <= 0 {
		opts.DragThreshold = DefaultDragThreshold
	}
	if opts.DragScale <= 0 {
		opts.DragScale = DefaultDragScale
	}
	if opts.InputRound < 0 {
		opts.InputRound = DefaultInputRound
	}
	if opts.DragRound < 0 {
		opts.DragRound = DefaultDragRound
	}
	if !opts.Hard {
		opts.Min, opts.Max = softBounds(opts.Min)
	}

	b := &NumberBox{opts: opts, multiplier: 1}
	switch opts.InputRound {
	case 1:
		b.multiplier = 10
	case 0:
		b.multiplier = 100
	}
	b.Load(initial)
	return b
}

// softBounds 非强制范围只保留"非负"约束
func softBounds(min float64) (float64, float64) {
	if min == 0 {
		return 0, math.Inf(1)
	}
	return math.Inf(-1), math.Inf(1)
}

// Load sets the displayed value without firing OnChange.
func (b *NumberBox) Load(v float64) {
	b.value = roundTo(v, b.opts.InputRound)
	b.text = formatNumber(b.value)
	b.invalid = false
}

// Text returns the current text.
func (b *NumberBox) Text() string { return b.text }

// Value returns the last accepted value.
func (b *NumberBox) Value() float64 { return b.value }

// Invalid reports whether the current text failed to parse (drawn red).
func (b *NumberBox) Invalid() bool { return b.invalid }

// Dragging reports whether a drag adjustment is in progress.
func (b *NumberBox) Dragging() bool { return b.dragging }

// Options returns the box configuration.
func (b *NumberBox) Options() NumberBoxOptions { return b.opts }

// SetText 处理文本输入
//
// 空文本视为 0；无法解析时进入无效状态且不修改值。
//
// 返回:
//
//	bool - 文本是否被接受
func (b *NumberBox) SetText(s string) bool {
	b.text = s
	trimmed := strings.TrimSpace(s)
	v := 0.0
	if trimmed != "" {
		parsed, err := strconv.ParseFloat(trimmed, 64)
		if err != nil || math.IsNaN(parsed) {
			b.invalid = true
			return false
		}
		v = parsed
	}
	b.invalid = false
	b.accept(roundTo(v, b.opts.InputRound))
	return true
}

func (b *NumberBox) accept(v float64) {
	if b.opts.Hard {
		v = clamp(v, b.opts.Min, b.opts.Max)
	}
	b.value = v
	if b.OnChange != nil {
		b.OnChange(v)
	}
}

// BeginDrag 开始拖动调整
//
// 参数:
//
//	x - 指针的水平位置（屏幕宽度比例）
//
// 返回:
//
//	bool - 当前文本无法解析时返回 false，拖动不会开始
func (b *NumberBox) BeginDrag(x float64) bool {
	if b.invalid {
		return false
	}
	b.dragging = true
	b.dragStartX = x
	b.valueAtClick = b.value
	return true
}

// DragTo updates the value from the horizontal distance travelled since
// BeginDrag. Movement within the threshold restores the value at click.
func (b *NumberBox) DragTo(x float64, precise bool) {
	if !b.dragging {
		return
	}
	value := b.valueAtClick
	dist := math.Abs(x - b.dragStartX)
	if dist > b.opts.DragThreshold {
		dist -= b.opts.DragThreshold
		amount := roundTo(dist*b.opts.DragScale*b.multiplier, b.opts.DragRound)
		if x > b.dragStartX {
			value += amount
		} else {
			value -= amount
		}
		value = clamp(value, b.opts.Min, b.opts.Max)
		if precise {
			value = roundTo(value, b.opts.DragRound/2)
		} else {
			value = roundTo(value, b.opts.DragRound)
		}
	}
	b.text = formatNumber(value)
	b.invalid = false
	b.accept(roundTo(value, b.opts.InputRound))
}

// EndDrag finishes a drag adjustment.
func (b *NumberBox) EndDrag() {
	b.dragging = false
}

// Clear empties the text, which counts as 0.
func (b *NumberBox) Clear() {
	b.SetText("")
}

// ResetDefault 恢复默认值；没有默认值时返回 false
func (b *NumberBox) ResetDefault() bool {
	if b.opts.Default == nil {
		return false
	}
	return b.SetText(formatNumber(*b.opts.Default))
}

// HelpText 返回数字框的操作提示
func (b *NumberBox) HelpText() string {
	help := "Hold RMB and drag horizontally to adjust.\nWhile dragging, hold Ctrl to round to " +
		strconv.Itoa(b.opts.DragRound/2) + "\nPress C to clear the text box."
	if b.opts.Default != nil {
		help = "Original value: " + formatNumber(*b.opts.Default) + " (press D to reset to this)\n\n" + help
	}
	return help
}

func roundTo(v float64, digits int) float64 {
	if digits < 0 || math.IsInf(v, 0) {
		return v
	}
	p := math.Pow(10, float64(digits))
	return math.Round(v*p) / p
}

func clamp(v, min, max float64) float64 {
	return math.Max(min, math.Min(max, v))
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
