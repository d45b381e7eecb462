package components

// ButtonComponent 按钮组件
// 纯数据组件：文字、尺寸、状态和点击回调
type ButtonComponent struct {
	// Text 按钮上显示的文字
	Text string
	// Tooltip 悬停提示
	Tooltip string

	// Width 按钮宽度（像素）
	Width float64
	// Height 按钮高度（像素）
	Height float64

	// State 当前交互状态（Normal/Hover/Clicked/Disabled）
	State UIState
	// Enabled 是否启用（禁用时不响应点击）
	Enabled bool
	// Toggled 开关按钮的按下状态（如单值模式切换）
	Toggled bool

	// OnClick 点击回调函数，在鼠标释放时触发
	OnClick func()
}
