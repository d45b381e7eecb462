package components

// DialogComponent 模态确认对话框
// 显示期间其他控件不响应输入
type DialogComponent struct {
	Title   string         // 对话框标题
	Message string         // 对话框消息，可多行
	Buttons []DialogButton // 按钮列表（从左到右）
	// FocusIndex 按 Enter 时触发的按钮索引
	FocusIndex int
	// CancelIndex 按 Esc 时触发的按钮索引，-1 表示 Esc 无效
	CancelIndex int
	Width       float64
	Height      float64
	IsVisible   bool
}

// DialogButton 对话框按钮，坐标相对对话框左上角
type DialogButton struct {
	Label   string
	OnClick func()
	X       float64
	Y       float64
	Width   float64
	Height  float64
	Hovered bool
}
