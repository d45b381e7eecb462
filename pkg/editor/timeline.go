package editor

import (
	"fmt"
	"log"
	"math"

	"github.com/THDigi/ParticleEditor/internal/keyframe"
)

// TimelineState 时间轴交互状态
type TimelineState int

const (
	StateIdle TimelineState = iota
	StateAiming
	StateDragging
	StateEditing
)

func (s TimelineState) String() string {
	switch s {
	case StateAiming:
		return "Aiming"
	case StateDragging:
		return "Dragging"
	case StateEditing:
		return "Editing"
	}
	return "Idle"
}

// DefaultHitTolerance is the fraction of the axis within which a key counts
// as aimed.
const DefaultHitTolerance = 0.02

// TimelineOptions 创建时间轴时的可选参数
type TimelineOptions struct {
	// Tolerance 命中容差（轴长的比例），<=0 时使用 DefaultHitTolerance
	Tolerance float64
	// DefaultValue 添加关键帧且未提供值时使用的值
	DefaultValue keyframe.Value
	// Colored 为 true 时关键帧按值着色（颜色或强度属性）
	Colored bool
	// OnEdit 进入编辑状态时调用，参数为被编辑的关键帧索引
	OnEdit func(index int)
}

// Timeline 是单个关键帧列表上的交互控件
//
// 状态机：Idle → Aiming（指针在容差内）→ Dragging（按下拖动）或 Editing（弹出编辑）。
// 时间轴只修改列表，从不排序或去重，排序和冲突检查留给应用流程。
type Timeline struct {
	list      *keyframe.List
	clipboard *Clipboard
	notifier  Notifier
	opts      TimelineOptions

	aim     float64
	aimed   int
	moving  int
	offset  float64
	dragPos float64
	editing int
}

// NewTimeline 创建时间轴
//
// 参数:
//
//	list - 被编辑的关键帧列表（与会话快照共享）
//	clipboard - 全局共享剪贴板
//	notifier - 通知输出，nil 时只写日志
//	opts - 可选参数
func NewTimeline(list *keyframe.List, clipboard *Clipboard, notifier Notifier, opts TimelineOptions) *Timeline {
	if notifier == nil {
		notifier = LogNotifier()
	}
	if opts.Tolerance <= 0 {
		opts.Tolerance = DefaultHitTolerance
	}
	if opts.DefaultValue == nil || opts.DefaultValue.Type() != list.Type() {
		opts.DefaultValue = list.Ops().Zero
	}
	return &Timeline{
		list:      list,
		clipboard: clipboard,
		notifier:  notifier,
		opts:      opts,
		aimed:     -1,
		moving:    -1,
		editing:   -1,
	}
}

// List returns the list the timeline edits.
func (t *Timeline) List() *keyframe.List { return t.list }

// SetOnEdit replaces the callback invoked when a key enters editing.
func (t *Timeline) SetOnEdit(fn func(index int)) { t.opts.OnEdit = fn }

// Colored reports whether keys are tinted by value.
func (t *Timeline) Colored() bool { return t.opts.Colored }

// State 返回当前交互状态
func (t *Timeline) State() TimelineState {
	switch {
	case t.editing >= 0:
		return StateEditing
	case t.moving >= 0:
		return StateDragging
	case t.aimed >= 0:
		return StateAiming
	}
	return StateIdle
}

// AimPosition returns the last unclamped pointer position on the axis.
func (t *Timeline) AimPosition() float64 { return t.aim }

// AimedIndex returns the aimed key index or -1.
func (t *Timeline) AimedIndex() int { return t.aimed }

// MovingIndex returns the dragged key index or -1.
func (t *Timeline) MovingIndex() int { return t.moving }

// EditingIndex returns the key being edited or -1.
func (t *Timeline) EditingIndex() int { return t.editing }

// Aim 更新指针在轴上的归一化位置（不限制在 [0,1]）
//
// 拖动或编辑期间不改变瞄准的关键帧。
func (t *Timeline) Aim(pos float64) {
	t.aim = pos
	if t.moving >= 0 || t.editing >= 0 {
		return
	}
	t.aimed = t.hitTest(pos)
}

// Leave clears the aim when the pointer leaves the widget.
func (t *Timeline) Leave() {
	if t.moving < 0 {
		t.aimed = -1
	}
}

func (t *Timeline) hitTest(pos float64) int {
	best := -1
	bestDist := math.Inf(1)
	for i, k := range t.list.Keys() {
		d := math.Abs(k.Time - pos)
		if d <= t.opts.Tolerance && d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}

// Press 处理主键按下
//
// 参数:
//
//	editModifier - 是否按住编辑修饰键（Ctrl），按住时打开编辑而不是拖动
//
// 返回:
//
//	bool - 是否有关键帧被捕获（开始拖动或编辑）
func (t *Timeline) Press(editModifier bool) bool {
	if t.aimed < 0 || t.moving >= 0 || t.editing >= 0 {
		return false
	}
	if editModifier {
		return t.Edit() == nil
	}
	k, err := t.list.Get(t.aimed)
	if err != nil {
		return false
	}
	t.moving = t.aimed
	t.offset = k.Time - t.aim
	t.dragPos = k.Time
	return true
}

// Drag 拖动中的指针移动
//
// 参数:
//
//	pos - 指针在轴上的归一化位置（不限制）
//	precise - 是否按住精确修饰键，按住时时间四舍五入到两位小数
func (t *Timeline) Drag(pos float64, precise bool) {
	t.aim = pos
	if t.moving < 0 {
		return
	}
	p := clamp01(pos + t.offset)
	if precise {
		p = math.Round(p*100) / 100
	}
	t.dragPos = p
}

// DragTime returns the displayed time of the dragged key; ok is false
// when nothing is being dragged.
func (t *Timeline) DragTime() (time float64, ok bool) {
	return t.dragPos, t.moving >= 0
}

// Release commits the dragged key's new time to the list.
func (t *Timeline) Release() {
	if t.moving < 0 {
		return
	}
	idx := t.moving
	t.moving = -1
	k, err := t.list.Get(idx)
	if err != nil {
		log.Printf("[Timeline] 拖动的关键帧已不存在: %v", err)
		return
	}
	if k.Time != t.dragPos {
		if err := t.list.SetTime(idx, t.dragPos); err != nil {
			log.Printf("[Timeline] 提交拖动失败: %v", err)
		}
	}
	t.aimed = t.hitTest(t.aim)
}

// KeyTimes returns the key times as displayed, with the dragged key at its
// in-progress position.
func (t *Timeline) KeyTimes() []float64 {
	times := t.list.Times()
	if t.moving >= 0 && t.moving < len(times) {
		times[t.moving] = t.dragPos
	}
	return times
}

func (t *Timeline) busy() error {
	if t.moving >= 0 || t.editing >= 0 {
		return ErrBusy
	}
	return nil
}

// free 新建关键帧的操作只能在空白位置进行
func (t *Timeline) free() error {
	if err := t.busy(); err != nil {
		return err
	}
	if t.aimed >= 0 {
		return ErrKeyAimed
	}
	return nil
}

func (t *Timeline) fail(err error) error {
	t.notifier.Notify(LevelError, UserMessage(err), DefaultNotifySeconds)
	return err
}

func (t *Timeline) aimedKey() (int, keyframe.Key, error) {
	if t.aimed < 0 {
		return -1, keyframe.Key{}, ErrNoAimedKey
	}
	k, err := t.list.Get(t.aimed)
	if err != nil {
		return -1, keyframe.Key{}, err
	}
	return t.aimed, k, nil
}

// Add 在瞄准位置（限制到 [0,1]）添加关键帧
//
// 参数:
//
//	value - 关键帧值，nil 时使用默认值
//
// 返回:
//
//	int - 新关键帧索引
//	error - 瞄准了关键帧（ErrKeyAimed）、值类型不符或时间轴忙时返回错误
func (t *Timeline) Add(value keyframe.Value) (int, error) {
	if err := t.free(); err != nil {
		return -1, err
	}
	if value == nil {
		value = t.opts.DefaultValue
	}
	idx, err := t.list.Add(keyframe.Key{Time: clamp01(t.aim), Value: value})
	if err != nil {
		return -1, t.fail(err)
	}
	t.aimed = t.hitTest(t.aim)
	return idx, nil
}

// AddInterpolated adds a key at the clamped aim position whose value is
// blended between the nearest key strictly left of it and the nearest key
// at or right of it. Without such a pair no key is created.
func (t *Timeline) AddInterpolated() (int, error) {
	if err := t.free(); err != nil {
		return -1, err
	}
	at := clamp01(t.aim)
	if t.list.Count() < 2 {
		return -1, t.fail(ErrNoStraddlingKeys)
	}
	li, ri, ok := keyframe.Straddling(t.list, at)
	if !ok {
		return -1, t.fail(ErrNoStraddlingKeys)
	}
	left, _ := t.list.Get(li)
	right, _ := t.list.Get(ri)
	value, err := keyframe.Interpolate(at, left, right)
	if err != nil {
		return -1, t.fail(err)
	}
	return t.Add(value)
}

// Copy 将瞄准的关键帧值写入剪贴板
func (t *Timeline) Copy() error {
	idx, k, err := t.aimedKey()
	if err != nil {
		return err
	}
	t.clipboard.Copy(k.Value)
	t.notifier.Notify(LevelInfo, fmt.Sprintf("Copied key #%d's value: %s", idx+1, k.Value), DefaultNotifySeconds)
	return nil
}

// PasteNew adds a key at the aim position with the clipboard value.
// A key must not be aimed.
func (t *Timeline) PasteNew() (int, error) {
	if err := t.free(); err != nil {
		return -1, err
	}
	v, err := t.clipboard.CheckPaste(t.list.Type())
	if err != nil {
		return -1, t.fail(err)
	}
	return t.Add(v)
}

// PasteReplace 用剪贴板值替换瞄准的关键帧，保留其时间
//
// 旧关键帧被移除，新关键帧追加到列表末尾。
func (t *Timeline) PasteReplace() error {
	if err := t.busy(); err != nil {
		return err
	}
	idx, k, err := t.aimedKey()
	if err != nil {
		return err
	}
	v, err := t.clipboard.CheckPaste(t.list.Type())
	if err != nil {
		return t.fail(err)
	}
	if err := t.list.RemoveAt(idx); err != nil {
		return t.fail(err)
	}
	if _, err := t.list.Add(keyframe.Key{Time: k.Time, Value: v, Children: k.Children}); err != nil {
		return t.fail(err)
	}
	t.aimed = t.hitTest(t.aim)
	t.notifier.Notify(LevelInfo, fmt.Sprintf("Replaced value for key #%d with: %s", idx+1, v), DefaultNotifySeconds)
	return nil
}

// Paste 按瞄准状态选择替换或新建，对应 V 键
func (t *Timeline) Paste() error {
	if t.aimed >= 0 && t.moving < 0 {
		return t.PasteReplace()
	}
	_, err := t.PasteNew()
	return err
}

// Edit 打开瞄准关键帧的值编辑器
func (t *Timeline) Edit() error {
	if err := t.busy(); err != nil {
		return err
	}
	idx, _, err := t.aimedKey()
	if err != nil {
		return err
	}
	t.editing = idx
	t.aimed = -1
	if t.opts.OnEdit != nil {
		t.opts.OnEdit(idx)
	}
	return nil
}

// EndEdit closes the value editor and returns to Idle.
func (t *Timeline) EndEdit() {
	t.editing = -1
	t.aimed = t.hitTest(t.aim)
}

// Delete 删除瞄准的关键帧
func (t *Timeline) Delete() error {
	if err := t.busy(); err != nil {
		return err
	}
	idx, _, err := t.aimedKey()
	if err != nil {
		return err
	}
	if err := t.list.RemoveAt(idx); err != nil {
		return t.fail(err)
	}
	t.aimed = -1
	return nil
}

// Tooltip 返回拖动或瞄准中的关键帧提示，没有时返回空字符串
func (t *Timeline) Tooltip() string {
	idx := t.moving
	if idx < 0 {
		idx = t.aimed
	}
	if idx < 0 {
		return ""
	}
	k, err := t.list.Get(idx)
	if err != nil {
		return ""
	}
	pos := k.Time
	if idx == t.moving {
		pos = t.dragPos
	}
	text := fmt.Sprintf("At particle lifetime: %s%%\nValue: %s", formatPercent(pos), k.Value)
	if t.moving >= 0 {
		text += "\n\n(Hold ctrl to round to integer percentages)"
	}
	return text
}

// KeyColor 返回关键帧 i 的填充颜色；未开启着色时 ok 为 false
func (t *Timeline) KeyColor(i int) (tint Tint, ok bool) {
	if !t.opts.Colored {
		return Tint{}, false
	}
	k, err := t.list.Get(i)
	if err != nil {
		return Tint{}, false
	}
	return ValueTint(k.Value), true
}

// MenuAction identifies a timeline context menu entry.
type MenuAction int

const (
	MenuEdit MenuAction = iota
	MenuCopy
	MenuPasteReplace
	MenuDelete
	MenuAdd
	MenuAddInterpolated
	MenuPasteNew
)

// MenuItem is one context menu entry.
type MenuItem struct {
	Action  MenuAction
	Label   string
	Tooltip string
}

// ContextMenu 返回右键菜单项；瞄准关键帧与空白位置的菜单不同
func (t *Timeline) ContextMenu() []MenuItem {
	if t.aimed >= 0 {
		return []MenuItem{
			{Action: MenuEdit, Label: "Edit value  (E or Ctrl+Click)"},
			{Action: MenuCopy, Label: "Copy value  (C)", Tooltip: "Copies value to clipboard"},
			{Action: MenuPasteReplace, Label: "Paste over  (V)"},
			{Action: MenuDelete, Label: "Delete  (D)"},
		}
	}
	clip := "(empty)"
	if v, ok := t.clipboard.Peek(); ok {
		clip = v.String()
	}
	return []MenuItem{
		{Action: MenuAdd, Label: "Add key  (A)", Tooltip: "Creates a new key at the aimed position"},
		{Action: MenuAddInterpolated, Label: "Add interpolated key  (I)",
			Tooltip: "Creates a new key with value interpolated between closest left and right keys."},
		{Action: MenuPasteNew, Label: "Paste new  (V)",
			Tooltip: "Creates a new key with the value from clipboard: " + clip},
	}
}

// Run 执行菜单项对应的操作
func (t *Timeline) Run(action MenuAction) error {
	var err error
	switch action {
	case MenuEdit:
		err = t.Edit()
	case MenuCopy:
		err = t.Copy()
	case MenuPasteReplace:
		err = t.PasteReplace()
	case MenuDelete:
		err = t.Delete()
	case MenuAdd:
		_, err = t.Add(nil)
	case MenuAddInterpolated:
		_, err = t.AddInterpolated()
	case MenuPasteNew:
		_, err = t.PasteNew()
	default:
		err = fmt.Errorf("unknown menu action %d", action)
	}
	return err
}

// formatPercent 百分比保留两位小数
func formatPercent(pos float64) string {
	return keyframe.Scalar(math.Round(pos*10000) / 100).String()
}
