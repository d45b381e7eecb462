package entities

import (
	"github.com/THDigi/ParticleEditor/pkg/components"
	"github.com/THDigi/ParticleEditor/pkg/config"
	"github.com/THDigi/ParticleEditor/pkg/ecs"
	"github.com/THDigi/ParticleEditor/pkg/editor"
)

// 数字框与色块尺寸
const (
	NumberBoxWidth  = 90.0
	NumberBoxHeight = 20.0
	numberBoxGap    = 8.0
	SwatchSize      = 20.0
)

// NewLabel 创建静态文字实体
func NewLabel(em *ecs.EntityManager, x, y float64, text, tooltip string) ecs.EntityID {
	entity := em.CreateEntity()
	ecs.AddComponent(em, entity, &components.PositionComponent{X: x, Y: y})
	ecs.AddComponent(em, entity, &components.LabelComponent{
		Text:    text,
		Tooltip: tooltip,
		Width:   float64(len([]rune(text))) * dialogCharWidth,
		Height:  dialogLineHeight,
	})
	return entity
}

// NewPanel 创建背景面板实体
//
// 参数：
//   - em: 实体管理器
//   - x, y, width, height: 面板矩形
//   - title: 面板标题，可为空
//   - layer: 绘制层级（弹出面板使用 components.LayerPopup）
func NewPanel(em *ecs.EntityManager, x, y, width, height float64, title string, layer int) ecs.EntityID {
	entity := em.CreateEntity()
	ecs.AddComponent(em, entity, &components.PositionComponent{X: x, Y: y})
	ecs.AddComponent(em, entity, &components.PanelComponent{Title: title, Width: width, Height: height})
	ecs.AddComponent(em, entity, &components.LayerComponent{Layer: layer})
	return entity
}

// NewTimelineEntity 创建时间轴控件实体，高度、留白和关键帧宽度来自编辑器参数
func NewTimelineEntity(em *ecs.EntityManager, x, y, width float64, tl *editor.Timeline, cfg config.TimelineConfig) ecs.EntityID {
	entity := em.CreateEntity()
	ecs.AddComponent(em, entity, &components.PositionComponent{X: x, Y: y})
	ecs.AddComponent(em, entity, &components.TimelineComponent{
		Timeline:     tl,
		Width:        width,
		Height:       cfg.Height,
		InsideOffset: cfg.InsideOffset,
		KeyWidth:     cfg.KeyWidth,
	})
	return entity
}

// NewNumberBoxEntity 创建数字输入框实体
func NewNumberBoxEntity(em *ecs.EntityManager, x, y float64, box *editor.NumberBox, label, tooltip string, layer int) ecs.EntityID {
	entity := em.CreateEntity()
	ecs.AddComponent(em, entity, &components.PositionComponent{X: x, Y: y})
	ecs.AddComponent(em, entity, &components.NumberBoxComponent{
		Box:     box,
		Label:   label,
		Tooltip: tooltip,
		Width:   NumberBoxWidth,
		Height:  NumberBoxHeight,
	})
	ecs.AddComponent(em, entity, &components.LayerComponent{Layer: layer})
	return entity
}

// NewValueEditorEntities 为值编辑器的每个分量创建数字框（分量名画在框内左侧），颜色属性额外带一个色块
//
// 返回：
//   - 创建的实体ID列表
//   - 占用的总宽度
func NewValueEditorEntities(em *ecs.EntityManager, x, y float64, ve *editor.ValueEditor, layer int) ([]ecs.EntityID, float64) {
	ids := make([]ecs.EntityID, 0, len(ve.Boxes)+1)
	cx := x
	for i, box := range ve.Boxes {
		label := ""
		if i < len(ve.Labels) {
			label = ve.Labels[i]
		}
		ids = append(ids, NewNumberBoxEntity(em, cx, y, box, label, ve.Tooltip, layer))
		cx += NumberBoxWidth + numberBoxGap
	}

	if _, ok := ve.Swatch(); ok {
		entity := em.CreateEntity()
		ecs.AddComponent(em, entity, &components.PositionComponent{X: cx, Y: y})
		ecs.AddComponent(em, entity, &components.SwatchComponent{Editor: ve, Size: SwatchSize})
		ecs.AddComponent(em, entity, &components.LayerComponent{Layer: layer})
		ids = append(ids, entity)
		cx += SwatchSize + numberBoxGap
	}
	return ids, cx - x
}

// NewNotification 创建通知实体，seconds 后由 LifetimeSystem 删除
func NewNotification(em *ecs.EntityManager, level editor.Level, text string, seconds, fadeSeconds float64) ecs.EntityID {
	entity := em.CreateEntity()
	ecs.AddComponent(em, entity, &components.NotificationComponent{
		Text:        text,
		Level:       level,
		FadeSeconds: fadeSeconds,
	})
	ecs.AddComponent(em, entity, &components.LifetimeComponent{MaxLifetime: seconds})
	ecs.AddComponent(em, entity, &components.LayerComponent{Layer: components.LayerNotification})
	return entity
}
