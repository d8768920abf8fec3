package scorm

import (
	"github.com/scormforge/scormforge/internal/model"
	"github.com/scormforge/scormforge/internal/render"
)

// GenerateNavigation renders the client-side navigation script. The
// knowledge-check table marks a topic true only when its check is enabled and
// has at least one question; the gating predicate and the page transition
// ordering live in the template.
func (g *Generator) GenerateNavigation(course *model.CourseRequest) (string, error) {
	topics := make([]render.NavTopic, 0, len(course.Topics))
	for _, t := range course.Topics {
		topics = append(topics, render.NavTopic{
			ID:                t.ID,
			Title:             t.Title,
			HasKnowledgeCheck: t.KnowledgeCheck.Active(),
		})
	}

	return g.renderer.Render("navigation", render.NavigationData{
		HasWelcome:     course.WelcomePage != nil,
		HasObjectives:  course.ObjectivesPage != nil,
		HasAssessment:  course.Assessment != nil,
		PassMark:       course.PassMark,
		NavigationMode: string(course.NavigationMode),
		AllowRetake:    course.AllowRetake,
		Topics:         topics,
	})
}
