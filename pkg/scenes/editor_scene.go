package scenes

import (
	"errors"
	"fmt"
	"image/color"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/THDigi/ParticleEditor/internal/keyframe"
	"github.com/THDigi/ParticleEditor/pkg/components"
	"github.com/THDigi/ParticleEditor/pkg/config"
	"github.com/THDigi/ParticleEditor/pkg/ecs"
	"github.com/THDigi/ParticleEditor/pkg/editor"
	"github.com/THDigi/ParticleEditor/pkg/entities"
	"github.com/THDigi/ParticleEditor/pkg/game"
	"github.com/THDigi/ParticleEditor/pkg/systems"
)

// 编辑场景布局常量
const (
	editorMargin       = 16.0
	editorToolbarY     = 52.0
	editorContentY     = 90.0
	editorRowGap       = 8.0
	editorToggleWidth  = 40.0
	editorRemoveWidth  = 26.0
	editorPopupHeight  = 84.0
	editorPopupMinW    = 280.0
	editorPopupBottom  = 24.0
	editorToolbarWidth = 90.0
)

var editorBackground = color.RGBA{R: 24, G: 26, B: 30, A: 255}

// TextClipboard 读写系统剪贴板文本，用于复制和粘贴属性的 YAML
type TextClipboard interface {
	WriteText(text string) error
	ReadText() (string, error)
}

// EditorSceneOptions 编辑场景参数
type EditorSceneOptions struct {
	SceneManager *game.SceneManager
	Config       *config.EditorConfig
	// Effect 所属效果名，会话关闭后回到该效果的属性列表
	Effect string
	Host   editor.PropertyHost
	Info   *config.PropertyInfo
	Is2D   bool
	// Clipboard 全局关键帧剪贴板，在多个会话之间共享
	Clipboard *editor.Clipboard
	// Text 系统剪贴板，nil 时不显示 YAML 复制/粘贴按钮
	Text TextClipboard
	// Input 输入源，nil 时使用 systems.DefaultInput
	Input systems.Input
}

// EditorScene 单个属性的关键帧编辑界面
//
// 一维属性显示一条时间轴；二维属性每个外层关键帧一行，
// 每行包含时间输入框、单值模式开关、内层时间轴（或单值编辑器）和删除按钮。
// 会话的结构修改（应用、增删行、切换单值模式）会提升修订号，场景在帧末重建控件。
type EditorScene struct {
	sceneManager *game.SceneManager
	cfg          *config.EditorConfig
	effect       string
	session      *editor.Session
	text         TextClipboard
	input        systems.Input

	width, height float64

	entityManager     *ecs.EntityManager
	tooltip           *components.TooltipComponent
	dialogSystem      *systems.DialogInputSystem
	contextMenuSystem *systems.ContextMenuSystem
	timelineSystem    *systems.TimelineSystem
	numberBoxSystem   *systems.NumberBoxSystem
	buttonSystem      *systems.ButtonSystem
	lifetimeSystem    *systems.LifetimeSystem
	renderSystem      *systems.RenderSystem

	widgets       []ecs.EntityID
	builtRevision int

	// 弹出的关键帧值编辑器
	popup         []ecs.EntityID
	popupTimeline *editor.Timeline

	// exit 窗口关闭请求等待会话关闭时保存的退出函数
	exit func()
}

// NewEditorScene 打开属性编辑会话并创建编辑场景
//
// 返回:
//
//	*EditorScene - 编辑场景
//	error - 宿主数据无法加载时返回错误
func NewEditorScene(opts EditorSceneOptions) (*EditorScene, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultEditorConfig()
	}
	input := opts.Input
	if input == nil {
		input = systems.DefaultInput
	}

	s := &EditorScene{
		sceneManager:  opts.SceneManager,
		cfg:           cfg,
		effect:        opts.Effect,
		text:          opts.Text,
		input:         input,
		width:         float64(cfg.Window.Width),
		height:        float64(cfg.Window.Height),
		entityManager: ecs.NewEntityManager(),
		tooltip:       components.NewTooltipComponent(),
		builtRevision: -1,
	}

	s.dialogSystem = systems.NewDialogInputSystem(s.entityManager, input)
	s.contextMenuSystem = systems.NewContextMenuSystem(s.entityManager, input, s.tooltip)
	s.timelineSystem = systems.NewTimelineSystem(s.entityManager, input, s.tooltip)
	s.numberBoxSystem = systems.NewNumberBoxSystem(s.entityManager, input, s.tooltip, s.width)
	s.buttonSystem = systems.NewButtonSystem(s.entityManager, input, s.tooltip)
	s.lifetimeSystem = systems.NewLifetimeSystem(s.entityManager)
	s.renderSystem = systems.NewRenderSystem(s.entityManager, s.tooltip)

	s.session = editor.Open(opts.Host, opts.Info, opts.Is2D, editor.Deps{
		Clipboard: opts.Clipboard,
		Notifier:  s,
		Config:    cfg,
	})
	s.session.OnClose = s.onSessionClosed
	if err := s.session.FinishSetup(); err != nil {
		return nil, err
	}

	s.rebuild()
	return s, nil
}

// Session returns the editing session shown by the scene.
func (s *EditorScene) Session() *editor.Session { return s.session }

// Update 更新编辑场景
//
// 对话框和右键菜单打开时独占输入，其他控件本帧不更新。
func (s *EditorScene) Update(deltaTime float64) {
	s.tooltip.Hide()

	consumed := s.dialogSystem.Update(deltaTime)
	if !consumed {
		consumed = s.contextMenuSystem.Update(deltaTime)
	}
	if !consumed && !s.session.Closed() {
		s.timelineSystem.Update(deltaTime)
		s.numberBoxSystem.Update(deltaTime)
		s.buttonSystem.Update(deltaTime)
		s.handleShortcuts()
	}

	if !s.session.Closed() && s.session.Revision() != s.builtRevision {
		s.rebuild()
	}

	s.lifetimeSystem.Update(deltaTime)
	s.entityManager.RemoveMarkedEntities()
}

// Draw 绘制编辑场景
func (s *EditorScene) Draw(screen *ebiten.Image) {
	screen.Fill(editorBackground)
	s.renderSystem.Draw(screen)
}

// handleShortcuts 没有输入框获得焦点时，Esc 关闭弹出的值编辑器
func (s *EditorScene) handleShortcuts() {
	if s.popupTimeline == nil || s.anyBoxFocused() {
		return
	}
	if s.input.IsKeyJustPressed(ebiten.KeyEscape) {
		s.closePopup()
	}
}

func (s *EditorScene) anyBoxFocused() bool {
	for _, id := range ecs.GetEntitiesWith1[*components.NumberBoxComponent](s.entityManager) {
		if nb, ok := ecs.GetComponent[*components.NumberBoxComponent](s.entityManager, id); ok && nb.IsFocused {
			return true
		}
	}
	return false
}

// Notify 实现 editor.Notifier，创建右下角的通知实体
//
// seconds <= 0 时使用配置的显示时长；超过最大显示数量时最早的通知先消失。
func (s *EditorScene) Notify(level editor.Level, text string, seconds float64) {
	if seconds <= 0 {
		seconds = s.cfg.Notification.Seconds
	}
	log.Printf("[EditorScene] 通知(level=%d): %s", level, text)
	entities.NewNotification(s.entityManager, level, text, seconds, s.cfg.Notification.FadeSeconds)

	if limit := s.cfg.Notification.MaxVisible; limit > 0 {
		ids := ecs.GetEntitiesWith1[*components.NotificationComponent](s.entityManager)
		for i := 0; i < len(ids)-limit; i++ {
			s.entityManager.DestroyEntity(ids[i])
		}
	}
}

// rebuild 按会话当前快照重建所有控件
func (s *EditorScene) rebuild() {
	s.closePopup()
	for _, id := range s.widgets {
		s.entityManager.DestroyEntity(id)
	}
	s.widgets = s.widgets[:0]
	for _, id := range ecs.GetEntitiesWith1[*components.ContextMenuComponent](s.entityManager) {
		s.entityManager.DestroyEntity(id)
	}

	s.buildHeader()
	s.buildToolbar()
	if s.session.Is2D() {
		s.buildRows()
	} else {
		tl := s.session.OuterTimeline()
		tl.SetOnEdit(s.editHandler(tl))
		s.addWidget(entities.NewTimelineEntity(s.entityManager, editorMargin, editorContentY,
			s.width-2*editorMargin, tl, s.cfg.Timeline))
	}

	s.builtRevision = s.session.Revision()
}

func (s *EditorScene) addWidget(id ecs.EntityID) {
	s.widgets = append(s.widgets, id)
}

func (s *EditorScene) buildHeader() {
	info := s.session.Info()
	dims := "1D"
	if s.session.Is2D() {
		dims = "2D"
	}
	title := fmt.Sprintf("%s / %s  (%s, %s)", s.effect, s.session.Name(), info.Type, dims)
	s.addWidget(entities.NewLabel(s.entityManager, editorMargin, 12, title, info.Tooltip))

	reason := info.RequiredKeys1DReason
	if s.session.Is2D() && info.RequiredKeys2DReason != "" {
		reason = info.RequiredKeys1DReason + "\n" + info.RequiredKeys2DReason
	}
	s.addWidget(entities.NewLabel(s.entityManager, editorMargin, 30, s.session.MinKeysText(), reason))
}

func (s *EditorScene) buildToolbar() {
	x := editorMargin
	add := func(text, tooltip string, onClick func()) {
		s.addWidget(entities.NewButton(s.entityManager, x, editorToolbarY, editorToolbarWidth, text, tooltip, onClick))
		x += editorToolbarWidth + 8
	}

	add("Apply", "Sorts keys, checks them and writes them to the property.", s.onApply)
	add("Close", "Closes the editor, asks to apply if there are changes.", s.onClose)
	if s.session.Is2D() {
		add("Add row", "Adds a vertical key after the last one.", s.onAddRow)
	}
	if s.text != nil {
		add("Copy YAML", "Copies the keys as YAML text to the system clipboard.", s.onCopyText)
		add("Paste YAML", "Replaces the keys with YAML text from the system clipboard.", s.onPasteText)
	}
}

// buildRows 二维属性：每个外层关键帧一行
func (s *EditorScene) buildRows() {
	rowHeight := s.cfg.Timeline.Height + editorRowGap
	count := s.session.Snapshot().Count()
	for i := 0; i < count; i++ {
		outer := i
		y := editorContentY + float64(i)*rowHeight
		boxY := y + (s.cfg.Timeline.Height-entities.NumberBoxHeight)/2
		x := editorMargin

		if box, err := s.session.TimeBox(outer); err == nil {
			s.addWidget(entities.NewNumberBoxEntity(s.entityManager, x, boxY, box, "T",
				"Time of this vertical key.", components.LayerWidgets))
		}
		x += entities.NumberBoxWidth + 8

		s.addWidget(entities.NewToggleButton(s.entityManager, x, boxY, editorToggleWidth, "1v",
			"Toggles editing all 4 horizontal keys as a single value.", s.session.IsSingleValue(outer),
			func() {
				if err := s.session.ToggleSingleValue(outer); err != nil {
					s.Notify(editor.LevelError, editor.UserMessage(err), 0)
				}
			}))
		x += editorToggleWidth + 8

		removeX := s.width - editorMargin - editorRemoveWidth
		if s.session.IsSingleValue(outer) {
			if ve, err := s.session.SingleValueEditor(outer); err == nil {
				ids, _ := entities.NewValueEditorEntities(s.entityManager, x, boxY, ve, components.LayerWidgets)
				for _, id := range ids {
					s.addWidget(id)
				}
			} else {
				s.Notify(editor.LevelError, editor.UserMessage(err), 0)
			}
		} else if tl, err := s.session.InnerTimeline(outer); err == nil {
			tl.SetOnEdit(s.editHandler(tl))
			s.addWidget(entities.NewTimelineEntity(s.entityManager, x, y, removeX-8-x, tl, s.cfg.Timeline))
		}

		s.addWidget(entities.NewButton(s.entityManager, removeX, boxY, editorRemoveWidth, "X",
			"Removes this vertical key and its horizontal keys.", func() {
				if err := s.session.RemoveOuterKey(outer); err != nil {
					s.Notify(editor.LevelError, editor.UserMessage(err), 0)
				}
			}))
	}
}

// editHandler 返回时间轴进入编辑状态时打开值编辑器的回调
func (s *EditorScene) editHandler(tl *editor.Timeline) func(int) {
	return func(index int) {
		s.openPopup(tl, index)
	}
}

// openPopup 在窗口底部弹出关键帧的值编辑器
func (s *EditorScene) openPopup(tl *editor.Timeline, index int) {
	if s.popupTimeline != nil && s.popupTimeline != tl {
		s.closePopup()
	}
	s.destroyPopup()

	key, err := tl.List().Get(index)
	if err != nil {
		tl.EndEdit()
		s.Notify(editor.LevelError, editor.UserMessage(err), 0)
		return
	}
	ve, err := s.session.KeyEditor(tl.List(), index)
	if err != nil {
		tl.EndEdit()
		s.Notify(editor.LevelError, editor.UserMessage(err), 0)
		return
	}

	em := s.entityManager
	panel := entities.NewPanel(em, 0, 0, 0, editorPopupHeight,
		fmt.Sprintf("Key at %s", keyframe.Scalar(key.Time)), components.LayerPopup)
	s.popup = append(s.popup, panel)

	panelY := s.height - editorPopupBottom - editorPopupHeight
	ids, boxesWidth := entities.NewValueEditorEntities(em, 0, panelY+28, ve, components.LayerPopup)
	s.popup = append(s.popup, ids...)

	panelW := max(boxesWidth+editorToolbarWidth+40, editorPopupMinW)
	panelX := s.width/2 - panelW/2
	if pos, ok := ecs.GetComponent[*components.PositionComponent](em, panel); ok {
		pos.X, pos.Y = panelX, panelY
	}
	if p, ok := ecs.GetComponent[*components.PanelComponent](em, panel); ok {
		p.Width = panelW
	}
	for _, id := range ids {
		if pos, ok := ecs.GetComponent[*components.PositionComponent](em, id); ok {
			pos.X += panelX + 12
		}
	}

	closeBtn := entities.NewButton(em, panelX+panelW-editorToolbarWidth-12, panelY+28, editorToolbarWidth,
		"Done", "Closes the value editor (Esc).", s.closePopup)
	ecs.AddComponent(em, closeBtn, &components.LayerComponent{Layer: components.LayerPopup})
	s.popup = append(s.popup, closeBtn)
	s.popupTimeline = tl
}

// closePopup 关闭值编辑器，时间轴回到空闲状态
func (s *EditorScene) closePopup() {
	s.destroyPopup()
	if s.popupTimeline != nil {
		s.popupTimeline.EndEdit()
		s.popupTimeline = nil
	}
}

func (s *EditorScene) destroyPopup() {
	for _, id := range s.popup {
		s.entityManager.DestroyEntity(id)
	}
	s.popup = s.popup[:0]
}

func (s *EditorScene) onApply() {
	pending, err := s.session.Apply()
	if err != nil {
		// 校验和提交失败已经由会话通知
		log.Printf("[EditorScene] 应用失败: %v", err)
		return
	}
	s.ask(pending, func() {
		s.Notify(editor.LevelInfo, "Applied.", 0)
	})
}

func (s *EditorScene) onClose() {
	s.ask(s.session.Close(), nil)
}

func (s *EditorScene) onAddRow() {
	if _, err := s.session.AddOuterKey(); err != nil {
		s.Notify(editor.LevelError, editor.UserMessage(err), 0)
	}
}

func (s *EditorScene) onCopyText() {
	raw, err := s.session.RawText()
	if err == nil {
		err = s.text.WriteText(raw)
	}
	if err != nil {
		s.Notify(editor.LevelError, editor.UserMessage(err), 0)
		return
	}
	s.Notify(editor.LevelInfo, "Copied keys as YAML.", 0)
}

func (s *EditorScene) onPasteText() {
	raw, err := s.text.ReadText()
	if err == nil {
		err = s.session.ApplyRawText(raw)
	}
	var decodeErr *editor.DecodeError
	if errors.As(err, &decodeErr) {
		// 数据无法读取时用需要点击确认的对话框，而不是会消失的通知
		entities.NewDialogEntity(s.entityManager, entities.DialogOptions{
			Title:       "Invalid property data",
			Message:     editor.UserMessage(err),
			Buttons:     []string{"OK"},
			FocusIndex:  0,
			CancelIndex: 0,
		}, s.width, s.height)
		log.Printf("[EditorScene] 粘贴 YAML 失败: %v", err)
		return
	}
	if err != nil {
		s.Notify(editor.LevelError, editor.UserMessage(err), 0)
		return
	}
	s.Notify(editor.LevelInfo, "Replaced keys from YAML, apply to keep them.", 0)
}

// ask 把确认问题显示为 Yes/No 对话框
//
// Yes 可能带来后续问题，继续询问；整个链条确认完成后调用 done。
// 确认分支的错误已经由会话通知，这里只记录日志。
func (s *EditorScene) ask(p *editor.Pending, done func()) {
	if p == nil {
		if done != nil {
			done()
		}
		return
	}
	entities.NewConfirmDialog(s.entityManager, p.Title, p.Message, p.FocusNo,
		func() {
			next, err := p.Confirm()
			if err != nil {
				log.Printf("[EditorScene] 确认失败: %v", err)
				s.exit = nil
				return
			}
			s.ask(next, done)
		},
		func() {
			p.Decline()
			s.exit = nil
		},
		s.width, s.height)
}

// onSessionClosed 会话关闭后退出程序或回到属性列表
func (s *EditorScene) onSessionClosed() {
	s.closePopup()
	if s.exit != nil {
		exit := s.exit
		s.exit = nil
		exit()
		return
	}
	if s.sceneManager != nil {
		s.sceneManager.Open(s.effect, "")
	}
}

// RequestExit 实现 game.ExitGuard
//
// 没有修改时立即允许退出；否则询问是否应用，会话关闭后调用 exit。
func (s *EditorScene) RequestExit(exit func()) bool {
	if s.session.Closed() {
		return true
	}
	if !s.session.ChangesMade() {
		return true
	}
	s.exit = exit
	s.ask(s.session.Close(), nil)
	return false
}
