package scorm

import (
	"github.com/scormforge/scormforge/internal/model"
	"github.com/scormforge/scormforge/internal/render"
)

// Brand palette baked into every package
const (
	primaryColor   = "#8fbb40"
	secondaryColor = "#241f20"
)

const sidebarWidth = "200px"

// GenerateStyles renders the package stylesheet from the display settings
func (g *Generator) GenerateStyles(course *model.CourseRequest) (string, error) {
	width := sidebarWidth
	if !course.Display.ShowOutlineOrDefault() {
		width = "0px"
	}

	return g.renderer.Render("styles", render.StyleData{
		PrimaryColor:   primaryColor,
		SecondaryColor: secondaryColor,
		SidebarWidth:   width,
		BaseFontSize:   baseFontSize(course.Display.FontSize),
		ShowProgress:   course.Display.ShowProgressOrDefault(),
		ShowOutline:    course.Display.ShowOutlineOrDefault(),
		Printable:      course.Display.Printable,
	})
}

func baseFontSize(size model.FontSize) string {
	switch size {
	case model.FontSmall:
		return "14px"
	case model.FontLarge:
		return "18px"
	default:
		return "16px"
	}
}
