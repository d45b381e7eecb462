package systems

import (
	"image/color"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"github.com/THDigi/ParticleEditor/pkg/components"
	"github.com/THDigi/ParticleEditor/pkg/ecs"
	"github.com/THDigi/ParticleEditor/pkg/editor"
)

// 行高（像素），basicfont 7x13 加 3 像素行距
const lineHeight = 16

// 界面配色
var (
	colorText        = color.RGBA{R: 220, G: 224, B: 230, A: 255}
	colorTextDim     = color.RGBA{R: 140, G: 146, B: 156, A: 255}
	colorTextInvalid = color.RGBA{R: 255, G: 90, B: 90, A: 255}
	colorPanel       = color.RGBA{R: 36, G: 40, B: 48, A: 245}
	colorBorder      = color.RGBA{R: 90, G: 98, B: 112, A: 255}
	colorWidget      = color.RGBA{R: 24, G: 27, B: 33, A: 255}
	colorHover       = color.RGBA{R: 58, G: 66, B: 82, A: 255}
	colorPressed     = color.RGBA{R: 80, G: 92, B: 118, A: 255}
	colorDisabled    = color.RGBA{R: 40, G: 42, B: 46, A: 255}
	colorAxis        = color.RGBA{R: 70, G: 76, B: 88, A: 255}
	colorKey         = color.RGBA{R: 200, G: 200, B: 200, A: 255}
	colorKeyAimed    = color.RGBA{R: 255, G: 210, B: 80, A: 255}
	colorKeyMoving   = color.RGBA{R: 120, G: 200, B: 255, A: 255}
	colorAimLine     = color.RGBA{R: 255, G: 255, B: 255, A: 80}
	colorOverlay     = color.RGBA{R: 0, G: 0, B: 0, A: 140}
)

// notificationColors 按通知级别的背景色
var notificationColors = map[editor.Level]color.RGBA{
	editor.LevelInfo:    {R: 40, G: 70, B: 110, A: 230},
	editor.LevelWarning: {R: 120, G: 96, B: 20, A: 230},
	editor.LevelError:   {R: 130, G: 34, B: 34, A: 230},
}

// RenderSystem 绘制编辑器界面
//
// 所有带 PositionComponent 的实体按层级（LayerComponent）和创建顺序绘制，
// 通知堆叠在右下角，全局提示框最后绘制。
type RenderSystem struct {
	entityManager *ecs.EntityManager
	tooltip       *components.TooltipComponent
	face          text.Face
}

// NewRenderSystem 创建渲染系统
func NewRenderSystem(em *ecs.EntityManager, tooltip *components.TooltipComponent) *RenderSystem {
	return &RenderSystem{
		entityManager: em,
		tooltip:       tooltip,
		face:          text.NewGoXFace(basicfont.Face7x13),
	}
}

// Draw 绘制所有控件
func (s *RenderSystem) Draw(screen *ebiten.Image) {
	for _, id := range s.drawOrder() {
		s.drawEntity(screen, id)
	}
	s.drawNotifications(screen)
	s.drawTooltip(screen)
}

// drawOrder 返回带位置组件的实体，按层级、创建顺序排序
func (s *RenderSystem) drawOrder() []ecs.EntityID {
	ids := ecs.GetEntitiesWith1[*components.PositionComponent](s.entityManager)
	sort.SliceStable(ids, func(i, j int) bool {
		return s.layerOf(ids[i]) < s.layerOf(ids[j])
	})
	return ids
}

func (s *RenderSystem) layerOf(id ecs.EntityID) int {
	if l, ok := ecs.GetComponent[*components.LayerComponent](s.entityManager, id); ok {
		return l.Layer
	}
	return components.LayerWidgets
}

func (s *RenderSystem) drawEntity(screen *ebiten.Image, id ecs.EntityID) {
	pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)
	em := s.entityManager

	if c, ok := ecs.GetComponent[*components.PanelComponent](em, id); ok {
		s.drawPanel(screen, pos, c)
	}
	if c, ok := ecs.GetComponent[*components.TimelineComponent](em, id); ok {
		s.drawTimeline(screen, pos, c)
	}
	if c, ok := ecs.GetComponent[*components.NumberBoxComponent](em, id); ok {
		s.drawNumberBox(screen, pos, c)
	}
	if c, ok := ecs.GetComponent[*components.ButtonComponent](em, id); ok {
		s.drawButton(screen, pos, c)
	}
	if c, ok := ecs.GetComponent[*components.LabelComponent](em, id); ok {
		s.drawLabel(screen, pos, c)
	}
	if c, ok := ecs.GetComponent[*components.SwatchComponent](em, id); ok {
		s.drawSwatch(screen, pos, c)
	}
	if c, ok := ecs.GetComponent[*components.ContextMenuComponent](em, id); ok {
		s.drawContextMenu(screen, pos, c)
	}
	if c, ok := ecs.GetComponent[*components.DialogComponent](em, id); ok && c.IsVisible {
		s.drawDialog(screen, pos, c)
	}
}

func (s *RenderSystem) drawPanel(screen *ebiten.Image, pos *components.PositionComponent, p *components.PanelComponent) {
	fillRect(screen, pos.X, pos.Y, p.Width, p.Height, colorPanel)
	strokeRect(screen, pos.X, pos.Y, p.Width, p.Height, colorBorder)
	if p.Title != "" {
		s.drawText(screen, p.Title, pos.X+8, pos.Y+4, colorText)
	}
}

// drawTimeline 绘制轴线、瞄准线和关键帧标记
//
// 拖动中的关键帧画在拖动位置；开启着色时关键帧按值填色。
func (s *RenderSystem) drawTimeline(screen *ebiten.Image, pos *components.PositionComponent, c *components.TimelineComponent) {
	tl := c.Timeline
	bg := colorWidget
	if c.Hovered {
		bg = colorHover
	}
	fillRect(screen, pos.X, pos.Y, c.Width, c.Height, bg)
	strokeRect(screen, pos.X, pos.Y, c.Width, c.Height, colorBorder)

	midY := pos.Y + c.Height/2
	x0, x1 := c.KeyX(pos.X, 0), c.KeyX(pos.X, 1)
	vector.StrokeLine(screen, float32(x0), float32(midY), float32(x1), float32(midY), 1, colorAxis, false)
	if tl == nil {
		return
	}

	if c.Hovered && tl.MovingIndex() < 0 {
		ax := c.KeyX(pos.X, clamp01(tl.AimPosition()))
		vector.StrokeLine(screen, float32(ax), float32(pos.Y+2), float32(ax), float32(pos.Y+c.Height-2), 1, colorAimLine, false)
	}

	keyW := c.KeyWidth
	if keyW <= 0 {
		keyW = 6
	}
	for i, t := range tl.KeyTimes() {
		kx := c.KeyX(pos.X, t) - keyW/2
		fill := colorKey
		if tint, ok := tl.KeyColor(i); ok {
			n := tint.RGBA()
			fill = color.RGBA{R: n.R, G: n.G, B: n.B, A: 255}
		}
		fillRect(screen, kx, pos.Y+3, keyW, c.Height-6, fill)

		switch i {
		case tl.MovingIndex():
			strokeRect(screen, kx-1, pos.Y+2, keyW+2, c.Height-4, colorKeyMoving)
		case tl.AimedIndex(), tl.EditingIndex():
			strokeRect(screen, kx-1, pos.Y+2, keyW+2, c.Height-4, colorKeyAimed)
		}
	}
}

func (s *RenderSystem) drawNumberBox(screen *ebiten.Image, pos *components.PositionComponent, c *components.NumberBoxComponent) {
	x := pos.X
	if c.Label != "" {
		s.drawText(screen, c.Label, x, pos.Y+(c.Height-lineHeight)/2, colorTextDim)
		w, _ := text.Measure(c.Label, s.face, lineHeight)
		x += w + 4
	}
	w := c.Width - (x - pos.X)

	bg := colorWidget
	switch {
	case c.IsFocused || c.Box.Dragging():
		bg = colorPressed
	case c.Hovered:
		bg = colorHover
	}
	fillRect(screen, x, pos.Y, w, c.Height, bg)
	strokeRect(screen, x, pos.Y, w, c.Height, colorBorder)

	fg := colorText
	if c.Box.Invalid() {
		fg = colorTextInvalid
	}
	str := c.Box.Text()
	if c.IsFocused && c.CursorVisible {
		str += "|"
	}
	s.drawText(screen, str, x+4, pos.Y+(c.Height-lineHeight)/2, fg)
}

func (s *RenderSystem) drawButton(screen *ebiten.Image, pos *components.PositionComponent, b *components.ButtonComponent) {
	bg := colorWidget
	switch b.State {
	case components.UIHovered:
		bg = colorHover
	case components.UIClicked:
		bg = colorPressed
	case components.UIDisabled:
		bg = colorDisabled
	}
	if b.Toggled && b.State != components.UIDisabled {
		bg = colorPressed
	}
	fillRect(screen, pos.X, pos.Y, b.Width, b.Height, bg)
	strokeRect(screen, pos.X, pos.Y, b.Width, b.Height, colorBorder)

	fg := colorText
	if !b.Enabled {
		fg = colorTextDim
	}
	tw, _ := text.Measure(b.Text, s.face, lineHeight)
	s.drawText(screen, b.Text, pos.X+(b.Width-tw)/2, pos.Y+(b.Height-lineHeight)/2, fg)
}

func (s *RenderSystem) drawLabel(screen *ebiten.Image, pos *components.PositionComponent, l *components.LabelComponent) {
	var fg color.Color = colorText
	if l.Color != ([4]uint8{}) {
		fg = color.RGBA{R: l.Color[0], G: l.Color[1], B: l.Color[2], A: l.Color[3]}
	}
	s.drawText(screen, l.Text, pos.X, pos.Y, fg)
}

func (s *RenderSystem) drawSwatch(screen *ebiten.Image, pos *components.PositionComponent, c *components.SwatchComponent) {
	if c.Editor == nil {
		return
	}
	tint, ok := c.Editor.Swatch()
	if !ok {
		return
	}
	// 棋盘格底色显示透明度
	half := c.Size / 2
	fillRect(screen, pos.X, pos.Y, c.Size, c.Size, color.RGBA{R: 200, G: 200, B: 200, A: 255})
	fillRect(screen, pos.X, pos.Y, half, half, color.RGBA{R: 120, G: 120, B: 120, A: 255})
	fillRect(screen, pos.X+half, pos.Y+half, half, half, color.RGBA{R: 120, G: 120, B: 120, A: 255})
	fillRect(screen, pos.X, pos.Y, c.Size, c.Size, tint.RGBA())
	strokeRect(screen, pos.X, pos.Y, c.Size, c.Size, colorBorder)
}

func (s *RenderSystem) drawContextMenu(screen *ebiten.Image, pos *components.PositionComponent, m *components.ContextMenuComponent) {
	h := m.Height()
	fillRect(screen, pos.X, pos.Y, m.Width, h, colorPanel)
	strokeRect(screen, pos.X, pos.Y, m.Width, h, colorBorder)
	for i, item := range m.Items {
		y := pos.Y + float64(i)*m.ItemHeight
		if i == m.Hovered {
			fillRect(screen, pos.X+1, y, m.Width-2, m.ItemHeight, colorHover)
		}
		s.drawText(screen, item.Label, pos.X+6, y+(m.ItemHeight-lineHeight)/2, colorText)
	}
}

// drawDialog 绘制遮罩、对话框和按钮，焦点按钮加亮边框
func (s *RenderSystem) drawDialog(screen *ebiten.Image, pos *components.PositionComponent, d *components.DialogComponent) {
	b := screen.Bounds()
	fillRect(screen, 0, 0, float64(b.Dx()), float64(b.Dy()), colorOverlay)

	fillRect(screen, pos.X, pos.Y, d.Width, d.Height, colorPanel)
	strokeRect(screen, pos.X, pos.Y, d.Width, d.Height, colorBorder)
	s.drawText(screen, d.Title, pos.X+10, pos.Y+8, colorKeyAimed)
	s.drawText(screen, d.Message, pos.X+10, pos.Y+8+lineHeight*1.5, colorText)

	for i, btn := range d.Buttons {
		bx, by := pos.X+btn.X, pos.Y+btn.Y
		bg := colorWidget
		if btn.Hovered {
			bg = colorHover
		}
		fillRect(screen, bx, by, btn.Width, btn.Height, bg)
		border := colorBorder
		if i == d.FocusIndex {
			border = colorKeyAimed
		}
		strokeRect(screen, bx, by, btn.Width, btn.Height, border)
		tw, _ := text.Measure(btn.Label, s.face, lineHeight)
		s.drawText(screen, btn.Label, bx+(btn.Width-tw)/2, by+(btn.Height-lineHeight)/2, colorText)
	}
}

// drawNotifications 从右下角向上堆叠通知，新的在最下面
func (s *RenderSystem) drawNotifications(screen *ebiten.Image) {
	ids := ecs.GetEntitiesWith2[*components.NotificationComponent, *components.LifetimeComponent](s.entityManager)
	b := screen.Bounds()
	y := float64(b.Dy()) - 8
	for i := len(ids) - 1; i >= 0; i-- {
		n, _ := ecs.GetComponent[*components.NotificationComponent](s.entityManager, ids[i])
		l, _ := ecs.GetComponent[*components.LifetimeComponent](s.entityManager, ids[i])
		alpha := NotificationAlpha(n, l)

		w, h := text.Measure(n.Text, s.face, lineHeight)
		w += 16
		h += 10
		y -= h
		x := float64(b.Dx()) - w - 8

		bg, ok := notificationColors[n.Level]
		if !ok {
			bg = notificationColors[editor.LevelInfo]
		}
		fillRect(screen, x, y, w, h, scaleAlpha(bg, alpha))
		s.drawTextAlpha(screen, n.Text, x+8, y+5, colorText, alpha)
		y -= 4
	}
}

// drawTooltip 提示框绘制在指针右下方，超出屏幕时向左上翻转
func (s *RenderSystem) drawTooltip(screen *ebiten.Image) {
	t := s.tooltip
	if t == nil || !t.IsVisible || t.Text == "" {
		return
	}
	w, h := text.Measure(t.Text, s.face, lineHeight)
	w += t.Padding * 2
	h += t.Padding * 2
	x, y := t.X+14, t.Y+18
	b := screen.Bounds()
	if x+w > float64(b.Dx()) {
		x = t.X - w - 4
	}
	if y+h > float64(b.Dy()) {
		y = t.Y - h - 4
	}
	fillRect(screen, x, y, w, h, t.BackgroundColor)
	strokeRect(screen, x, y, w, h, t.BorderColor)
	s.drawText(screen, t.Text, x+t.Padding, y+t.Padding, t.TextColor)
}

func (s *RenderSystem) drawText(screen *ebiten.Image, str string, x, y float64, clr color.Color) {
	s.drawTextAlpha(screen, str, x, y, clr, 1)
}

func (s *RenderSystem) drawTextAlpha(screen *ebiten.Image, str string, x, y float64, clr color.Color, alpha float64) {
	if str == "" {
		return
	}
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.LineSpacing = lineHeight
	op.ColorScale.ScaleWithColor(clr)
	op.ColorScale.ScaleAlpha(float32(alpha))
	text.Draw(screen, str, s.face, op)
}

func fillRect(screen *ebiten.Image, x, y, w, h float64, clr color.Color) {
	vector.DrawFilledRect(screen, float32(x), float32(y), float32(w), float32(h), clr, false)
}

func strokeRect(screen *ebiten.Image, x, y, w, h float64, clr color.Color) {
	vector.StrokeRect(screen, float32(x), float32(y), float32(w), float32(h), 1, clr, false)
}

func scaleAlpha(c color.RGBA, alpha float64) color.RGBA {
	f := func(v uint8) uint8 { return uint8(float64(v) * alpha) }
	// color.RGBA 是预乘 alpha 的，所有通道一起缩放
	return color.RGBA{R: f(c.R), G: f(c.G), B: f(c.B), A: f(c.A)}
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}

