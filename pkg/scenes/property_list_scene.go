package scenes

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/THDigi/ParticleEditor/pkg/components"
	"github.com/THDigi/ParticleEditor/pkg/config"
	"github.com/THDigi/ParticleEditor/pkg/ecs"
	"github.com/THDigi/ParticleEditor/pkg/entities"
	"github.com/THDigi/ParticleEditor/pkg/game"
	"github.com/THDigi/ParticleEditor/pkg/systems"
)

// 属性列表布局
const (
	listButtonWidth = 260.0
	listColumnGap   = 12.0
	listRowGap      = 6.0
	listTopY        = 48.0
)

var listBackground = color.RGBA{R: 30, G: 32, B: 38, A: 255}

// PropertyListOptions 属性列表场景参数
type PropertyListOptions struct {
	SceneManager *game.SceneManager
	Config       *config.EditorConfig
	Effect       *game.Effect
	Table        *config.PropertyTable
	// Input 输入源，nil 时使用 systems.DefaultInput
	Input systems.Input
}

// PropertyListScene 列出效果的所有动画属性，点击打开属性编辑场景
type PropertyListScene struct {
	sceneManager *game.SceneManager
	effect       *game.Effect

	entityManager *ecs.EntityManager
	tooltip       *components.TooltipComponent
	buttonSystem  *systems.ButtonSystem
	renderSystem  *systems.RenderSystem
}

// NewPropertyListScene 创建属性列表场景
func NewPropertyListScene(opts PropertyListOptions) *PropertyListScene {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultEditorConfig()
	}

	s := &PropertyListScene{
		sceneManager:  opts.SceneManager,
		effect:        opts.Effect,
		entityManager: ecs.NewEntityManager(),
		tooltip:       components.NewTooltipComponent(),
	}
	s.buttonSystem = systems.NewButtonSystem(s.entityManager, opts.Input, s.tooltip)
	s.renderSystem = systems.NewRenderSystem(s.entityManager, s.tooltip)

	entities.NewLabel(s.entityManager, editorMargin, 16,
		fmt.Sprintf("Effect: %s (%s), pick a property to edit", opts.Effect.Name, opts.Effect.Kind), "")

	width := float64(cfg.Window.Width)
	columns := max(1, int((width-2*editorMargin+listColumnGap)/(listButtonWidth+listColumnGap)))
	for i, name := range opts.Effect.PropertyNames() {
		propName := name
		text, tooltip := name, ""
		if opts.Table != nil {
			if info, ok := opts.Table.Get(opts.Effect.PropertyID(name)); ok {
				text, tooltip = info.Name, info.Tooltip
				if info.Is2D {
					text += "  [2D]"
				}
			}
		}

		col, row := i%columns, i/columns
		x := editorMargin + float64(col)*(listButtonWidth+listColumnGap)
		y := listTopY + float64(row)*(entities.ButtonHeight+listRowGap)
		entities.NewButton(s.entityManager, x, y, listButtonWidth, text, tooltip, func() {
			s.open(propName)
		})
	}
	return s
}

func (s *PropertyListScene) open(property string) {
	if s.sceneManager != nil {
		s.sceneManager.Open(s.effect.Name, property)
	}
}

// Update 更新按钮状态
func (s *PropertyListScene) Update(deltaTime float64) {
	s.tooltip.Hide()
	s.buttonSystem.Update(deltaTime)
	s.entityManager.RemoveMarkedEntities()
}

// Draw 绘制属性列表
func (s *PropertyListScene) Draw(screen *ebiten.Image) {
	screen.Fill(listBackground)
	s.renderSystem.Draw(screen)
}
