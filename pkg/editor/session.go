package editor

import (
	"errors"
	"fmt"
	"log"
	"math"

	"github.com/THDigi/ParticleEditor/internal/keyframe"
	"github.com/THDigi/ParticleEditor/pkg/config"
)

// 确认对话框文本
const (
	msgCollisionBoth = "WARNING: Time values for both timeline axis have duplicated values!\n" +
		"This will cause some to get deleted!\nDo you really wish to save?"
	msgCollisionVertical = "WARNING: Duplicated time values for the vertical timeline!\n" +
		"The other key(s) will get deleted!\nDo you really wish to save?"
	msgCollisionHorizontal = "WARNING: Duplicated time values for a horizontal timeline!\n" +
		"The other key(s) will get deleted!\nDo you really wish to save?"
	msgCloseWithChanges = "Changes made, apply them before closing?"
)

// ErrSessionClosed is returned by operations on a closed session.
var ErrSessionClosed = errors.New("session is closed")

// Deps 会话依赖的共享服务
type Deps struct {
	Clipboard *Clipboard
	Notifier  Notifier
	// Config 编辑器参数，nil 时使用内置默认值
	Config *config.EditorConfig
}

// Session 是单个属性从打开到应用或取消的编辑过程
//
// 会话持有属性关键帧的工作副本（快照），时间轴和值编辑器只修改快照；
// 只有 Apply 才会写回宿主。
type Session struct {
	host PropertyHost
	info *config.PropertyInfo
	is2D bool
	deps Deps

	name        string
	snapshot    *keyframe.List
	changes     bool
	singleValue map[*keyframe.List]bool // 按内层列表记录，排序后仍跟随所在行
	closed      bool
	revision    int

	// OnClose is called once when the session closes.
	OnClose func()
}

// Open 创建编辑会话，需要调用 FinishSetup 加载数据
//
// 参数:
//
//	host - 属性宿主
//	info - 属性元数据
//	is2D - 属性是否为二维动画
//	deps - 共享服务
func Open(host PropertyHost, info *config.PropertyInfo, is2D bool, deps Deps) *Session {
	if deps.Clipboard == nil {
		deps.Clipboard = NewClipboard(nil)
	}
	if deps.Notifier == nil {
		deps.Notifier = LogNotifier()
	}
	if deps.Config == nil {
		deps.Config = config.DefaultEditorConfig()
	}
	return &Session{
		host:        host,
		info:        info,
		is2D:        is2D,
		deps:        deps,
		name:        info.Name,
		singleValue: make(map[*keyframe.List]bool),
	}
}

// FinishSetup 从宿主加载初始快照
func (s *Session) FinishSetup() error {
	if err := s.reload(); err != nil {
		return fmt.Errorf("failed to load property %s: %w", s.info.ID, err)
	}
	log.Printf("[Session] 打开属性 %s (%s, 2D=%v, %d keys)", s.info.ID, s.info.Type, s.is2D, s.snapshot.Count())
	return nil
}

// reload 用宿主当前数据替换快照
func (s *Session) reload() error {
	data, err := s.host.Serialize()
	if err != nil {
		return err
	}
	list, err := s.listFromData(data)
	if err != nil {
		return err
	}
	if data.Name != "" {
		s.name = data.Name
	}
	s.setSnapshot(list)
	s.changes = false
	return nil
}

func (s *Session) listFromData(data *keyframe.PropertyData) (*keyframe.List, error) {
	if data.Is2D() != s.is2D {
		return nil, fmt.Errorf("property %q: expected 2D=%v but got animation type %s", data.Name, s.is2D, data.AnimationType)
	}
	if data.Type != s.info.Type {
		return nil, fmt.Errorf("property %q: expected type %s but got %s", data.Name, s.info.Type, data.Type)
	}
	return data.ToList()
}

func (s *Session) setSnapshot(list *keyframe.List) {
	s.snapshot = list
	s.snapshot.SetOnChange(s.markChanged)
	s.singleValue = make(map[*keyframe.List]bool)
	s.revision++
}

func (s *Session) markChanged() {
	s.changes = true
}

// Info returns the property metadata.
func (s *Session) Info() *config.PropertyInfo { return s.info }

// Name returns the property name as reported by the host.
func (s *Session) Name() string { return s.name }

// Is2D reports whether the property has an inner axis.
func (s *Session) Is2D() bool { return s.is2D }

// Snapshot returns the working copy. Callers mutate it only through the
// timeline, value editors and session methods.
func (s *Session) Snapshot() *keyframe.List { return s.snapshot }

// ChangesMade reports whether the snapshot differs from what was loaded.
func (s *Session) ChangesMade() bool { return s.changes }

// Closed reports whether the session has been closed.
func (s *Session) Closed() bool { return s.closed }

// Revision 在快照结构变化（重新加载、增删外层关键帧、切换单值模式）时递增，
// 界面据此决定是否重建控件
func (s *Session) Revision() int { return s.revision }

// Clipboard returns the shared clipboard.
func (s *Session) Clipboard() *Clipboard { return s.deps.Clipboard }

// MinKeysText 返回最少关键帧提示
func (s *Session) MinKeysText() string {
	if s.is2D {
		return fmt.Sprintf("Min keys: %d vertical, %d horizontal", s.info.RequiredKeys1D, s.info.RequiredKeys2D)
	}
	return fmt.Sprintf("Min keys: %d horizontal", s.info.RequiredKeys1D)
}

// Validate 检查最少关键帧要求，不修改任何数据
func (s *Session) Validate() error {
	count := s.snapshot.Count()
	if count < s.info.RequiredKeys1D {
		return &ValidationError{
			Axis:     AxisVertical,
			Count:    count,
			Required: s.info.RequiredKeys1D,
			Reason:   reasonOr(s.info.RequiredKeys1DReason),
		}
	}
	if !s.is2D || count == 0 {
		return nil
	}
	min := math.MaxInt
	for _, k := range s.snapshot.Keys() {
		n := 0
		if k.Children != nil {
			n = k.Children.Count()
		}
		if n < min {
			min = n
		}
	}
	if min < s.info.RequiredKeys2D {
		return &ValidationError{
			Axis:     AxisHorizontal,
			Count:    min,
			Required: s.info.RequiredKeys2D,
			Reason:   reasonOr(s.info.RequiredKeys2DReason),
		}
	}
	return nil
}

func reasonOr(r string) string {
	if r == "" {
		return config.DefaultRequiredKeysReason
	}
	return r
}

// sortAndScan 排序外层和所有内层列表，返回各轴是否存在重复时间
func (s *Session) sortAndScan() (vertical, horizontal bool) {
	s.snapshot.SortByTime()
	vertical = s.snapshot.HasCollisions()
	if s.is2D {
		for _, k := range s.snapshot.Keys() {
			if k.Children == nil {
				continue
			}
			k.Children.SortByTime()
			if k.Children.HasCollisions() {
				horizontal = true
			}
		}
	}
	return vertical, horizontal
}

// Apply 执行应用流程
//
// 顺序：最少关键帧校验 → 排序 → 重复时间检测 → （需要时）确认 → 提交。
//
// 返回:
//
//	*Pending - 存在重复时间时返回确认问题，确认后才提交；拒绝不做任何修改
//	error - 校验失败（*ValidationError）或提交失败
func (s *Session) Apply() (*Pending, error) {
	if s.closed {
		return nil, ErrSessionClosed
	}
	if err := s.Validate(); err != nil {
		s.deps.Notifier.Notify(LevelError, err.Error(), 5)
		return nil, err
	}

	vertical, horizontal := s.sortAndScan()
	s.revision++

	var msg string
	switch {
	case vertical && horizontal:
		msg = msgCollisionBoth
	case vertical:
		msg = msgCollisionVertical
	case horizontal:
		msg = msgCollisionHorizontal
	default:
		return nil, s.commit()
	}

	log.Printf("[Session] %s: 重复时间 vertical=%v horizontal=%v，等待确认", s.info.ID, vertical, horizontal)
	return &Pending{
		Title:   "Duplicated times",
		Message: msg,
		FocusNo: true,
		onConfirm: func() (*Pending, error) {
			return nil, s.commit()
		},
	}, nil
}

// commit 写回宿主：先清空再反序列化，然后从宿主重新加载快照
func (s *Session) commit() error {
	data := keyframe.FromList(s.name, s.snapshot, s.is2D)
	if err := data.Validate(); err != nil {
		return s.commitFailed(err)
	}

	backup, err := s.host.Serialize()
	if err != nil {
		return s.commitFailed(fmt.Errorf("failed to back up host data: %w", err))
	}

	s.host.ClearKeys()
	if err := s.host.Deserialize(data); err != nil {
		s.host.ClearKeys()
		if rerr := s.host.Deserialize(backup); rerr != nil {
			log.Printf("[Session] 恢复宿主数据失败: %v", rerr)
		}
		return s.commitFailed(err)
	}

	if err := s.reload(); err != nil {
		return s.commitFailed(fmt.Errorf("failed to reload after apply: %w", err))
	}
	log.Printf("[Session] 已应用 %s (%d keys)", s.info.ID, s.snapshot.Count())
	return nil
}

func (s *Session) commitFailed(err error) error {
	err = fmt.Errorf("apply %s: %w", s.info.ID, err)
	s.deps.Notifier.Notify(LevelError, err.Error(), 5)
	log.Printf("[Session] %v", err)
	return err
}

// Close 关闭会话
//
// 没有修改时直接关闭并返回 nil。有修改时返回确认问题：
// 确认先应用再关闭，应用失败时会话保持打开；拒绝丢弃快照并关闭，宿主保持不变。
func (s *Session) Close() *Pending {
	if s.closed {
		return nil
	}
	if !s.changes {
		s.finishClose()
		return nil
	}
	return &Pending{
		Title:   "Unsaved changes",
		Message: msgCloseWithChanges,
		onConfirm: func() (*Pending, error) {
			next, err := s.Apply()
			if err != nil {
				return nil, err
			}
			if next != nil {
				// 提交失败时会话保持打开，修改不丢失
				inner := next
				return &Pending{
					Title:   inner.Title,
					Message: inner.Message,
					FocusNo: inner.FocusNo,
					onConfirm: func() (*Pending, error) {
						more, err := inner.Confirm()
						if err != nil {
							return nil, err
						}
						s.finishClose()
						return more, nil
					},
					onDecline: func() {
						inner.Decline()
						s.finishClose()
					},
				}, nil
			}
			s.finishClose()
			return nil, nil
		},
		onDecline: s.finishClose,
	}
}

func (s *Session) finishClose() {
	if s.closed {
		return
	}
	s.closed = true
	s.snapshot = nil
	log.Printf("[Session] 关闭属性 %s", s.info.ID)
	if s.OnClose != nil {
		s.OnClose()
	}
}

// IsSingleValue 判断外层关键帧 outer 是否以单值模式显示
//
// 手动切换的结果优先；否则内层恰好 4 个关键帧且值全部相同时为单值模式。
func (s *Session) IsSingleValue(outer int) bool {
	if !s.is2D {
		return false
	}
	children, err := s.snapshot.ChildrenOf(outer)
	if err != nil || children == nil {
		return false
	}
	if mode, ok := s.singleValue[children]; ok {
		return mode
	}
	return detectSingleValue(children)
}

func detectSingleValue(children *keyframe.List) bool {
	return children.Count() == SingleValueKeys && children.AllEqual()
}

// ToggleSingleValue switches outer key's row between the single-value
// editor and the full inner timeline. Switching away keeps the keys as
// they are.
func (s *Session) ToggleSingleValue(outer int) error {
	if !s.is2D {
		return fmt.Errorf("single value mode needs a 2D property")
	}
	children, err := s.innerList(outer)
	if err != nil {
		return err
	}
	if mode, ok := s.singleValue[children]; ok {
		s.singleValue[children] = !mode
	} else {
		s.singleValue[children] = !detectSingleValue(children)
	}
	s.revision++
	return nil
}

// SingleValueTarget 返回外层关键帧 outer 的单值编辑目标
//
// 内层为空时先填入 4 个默认值关键帧。
func (s *Session) SingleValueTarget(outer int) (SingleValueTarget, error) {
	children, err := s.innerList(outer)
	if err != nil {
		return SingleValueTarget{}, err
	}
	def := s.info.DefaultValue()
	if children.Count() == 0 {
		if err := FillSingleValue(children, def); err != nil {
			return SingleValueTarget{}, err
		}
	}
	return SingleValueTarget{List: children, Default: def}, nil
}

// SetSingleValue rewrites the 4 inner keys of outer to v.
func (s *Session) SetSingleValue(outer int, v keyframe.Value) error {
	target, err := s.SingleValueTarget(outer)
	if err != nil {
		return err
	}
	return target.Set(v)
}

// innerList 返回外层关键帧的内层列表，缺失时创建
func (s *Session) innerList(outer int) (*keyframe.List, error) {
	if !s.is2D {
		return nil, fmt.Errorf("inner timeline needs a 2D property")
	}
	children, err := s.snapshot.ChildrenOf(outer)
	if err != nil {
		return nil, err
	}
	if children == nil {
		children = keyframe.MustNewList(s.info.Type)
		if err := s.snapshot.SetChildren(outer, children); err != nil {
			return nil, err
		}
	}
	return children, nil
}

func (s *Session) timelineOptions() TimelineOptions {
	return TimelineOptions{
		Tolerance:    s.deps.Config.Timeline.Tolerance,
		DefaultValue: s.info.DefaultValue(),
		Colored:      s.info.Color,
	}
}

// OuterTimeline 返回一维属性的时间轴
func (s *Session) OuterTimeline() *Timeline {
	return NewTimeline(s.snapshot, s.deps.Clipboard, s.deps.Notifier, s.timelineOptions())
}

// InnerTimeline 返回二维属性外层关键帧 outer 的内层时间轴
func (s *Session) InnerTimeline(outer int) (*Timeline, error) {
	children, err := s.innerList(outer)
	if err != nil {
		return nil, err
	}
	return NewTimeline(children, s.deps.Clipboard, s.deps.Notifier, s.timelineOptions()), nil
}

func (s *Session) valueEditorOptions(tooltip string) ValueEditorOptions {
	return ValueEditorOptions{
		DragThreshold: s.deps.Config.NumberBox.DragThreshold,
		DragScale:     s.deps.Config.NumberBox.DragScale,
		Tooltip:       tooltip,
	}
}

// KeyEditor 为 list 中的关键帧 index 创建值编辑器
func (s *Session) KeyEditor(list *keyframe.List, index int) (*ValueEditor, error) {
	return NewValueEditor(KeyTarget{List: list, Index: index}, s.info, s.valueEditorOptions(""))
}

// SingleValueEditor 为单值模式的行创建值编辑器
func (s *Session) SingleValueEditor(outer int) (*ValueEditor, error) {
	target, err := s.SingleValueTarget(outer)
	if err != nil {
		return nil, err
	}
	return NewValueEditor(target, s.info, s.valueEditorOptions(
		"Reminder that this is originally a timeline (animated 2D), this single value editor will set all 4 keys to the same value."))
}

// TimeBox 创建外层关键帧 outer 的时间输入框（非负，6 位小数，拖动 2 位）
func (s *Session) TimeBox(outer int) (*NumberBox, error) {
	k, err := s.snapshot.Get(outer)
	if err != nil {
		return nil, err
	}
	zero := 0.0
	box := NewNumberBox(k.Time, NumberBoxOptions{
		Min:           0,
		Max:           math.Inf(1),
		Hard:          true,
		InputRound:    6,
		DragRound:     2,
		Default:       &zero,
		DragThreshold: s.deps.Config.NumberBox.DragThreshold,
		DragScale:     s.deps.Config.NumberBox.DragScale,
	})
	box.OnChange = func(v float64) {
		if err := s.SetOuterTime(outer, v); err != nil {
			log.Printf("[Session] 设置时间失败: %v", err)
		}
	}
	return box, nil
}

// AddOuterKey 添加外层关键帧
//
// 时间为现有最大时间加上间隔（默认 5），列表为空时为 0。
// 二维属性的新关键帧带一个空的内层列表。
func (s *Session) AddOuterKey() (int, error) {
	if s.closed {
		return -1, ErrSessionClosed
	}
	time := 0.0
	if max, ok := s.snapshot.MaxTime(); ok {
		time = max + s.deps.Config.NewOuterKeySpacing
	}
	k := keyframe.Key{Time: time, Value: s.info.DefaultValue()}
	if s.is2D {
		k.Children = keyframe.MustNewList(s.info.Type)
	}
	idx, err := s.snapshot.Add(k)
	if err != nil {
		return -1, err
	}
	s.revision++
	return idx, nil
}

// RemoveOuterKey 删除外层关键帧 outer 及其单值模式设置
func (s *Session) RemoveOuterKey(outer int) error {
	if s.closed {
		return ErrSessionClosed
	}
	children, err := s.snapshot.ChildrenOf(outer)
	if err != nil {
		return err
	}
	if err := s.snapshot.RemoveAt(outer); err != nil {
		return err
	}
	delete(s.singleValue, children)
	s.revision++
	return nil
}

// SetOuterTime sets the time of outer key i; negative times become 0.
func (s *Session) SetOuterTime(outer int, t float64) error {
	if s.closed {
		return ErrSessionClosed
	}
	return s.snapshot.SetTime(outer, math.Max(0, t))
}

// RawText 返回快照的 YAML 文本
func (s *Session) RawText() (string, error) {
	if s.closed {
		return "", ErrSessionClosed
	}
	data, err := keyframe.Encode(keyframe.FromList(s.name, s.snapshot, s.is2D))
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// ApplyRawText 用文本替换快照
//
// 解析失败时返回 *DecodeError，快照保持不变。
func (s *Session) ApplyRawText(text string) error {
	if s.closed {
		return ErrSessionClosed
	}
	data, err := keyframe.Decode([]byte(text))
	if err != nil {
		return &DecodeError{Err: err}
	}
	list, err := s.listFromData(data)
	if err != nil {
		return &DecodeError{Err: err}
	}
	s.setSnapshot(list)
	s.changes = true
	return nil
}
