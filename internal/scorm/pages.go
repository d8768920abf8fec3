package scorm

import (
	"strings"

	"github.com/scormforge/scormforge/consts"
	"github.com/scormforge/scormforge/internal/model"
	"github.com/scormforge/scormforge/internal/render"
)

// PageArtifact is one rendered page in package order
type PageArtifact struct {
	Path    string
	Content string
}

// GenerateIndex renders the index shell
func (g *Generator) GenerateIndex(course *model.CourseRequest) (string, error) {
	links := make([]render.TopicLink, 0, len(course.Topics))
	for _, t := range course.Topics {
		links = append(links, render.TopicLink{ID: t.ID, Title: t.Title})
	}

	return g.renderer.Render("index", render.IndexData{
		CourseTitle:   course.Title,
		HasWelcome:    course.WelcomePage != nil,
		HasObjectives: course.ObjectivesPage != nil,
		HasAssessment: course.Assessment != nil,
		ShowProgress:  course.Display.ShowProgressOrDefault(),
		ShowOutline:   course.Display.ShowOutlineOrDefault(),
		Topics:        links,
	})
}

// GeneratePages renders every page fragment in package order: welcome,
// objectives, topics, assessment
func (g *Generator) GeneratePages(course *model.CourseRequest) ([]PageArtifact, error) {
	var pages []PageArtifact

	if course.WelcomePage != nil {
		html, err := g.GenerateWelcomePage(course)
		if err != nil {
			return nil, err
		}
		pages = append(pages, PageArtifact{Path: consts.PagesPrefix + "welcome.html", Content: html})
	}

	if course.ObjectivesPage != nil {
		html, err := g.GenerateObjectivesPage(course.ObjectivesPage)
		if err != nil {
			return nil, err
		}
		pages = append(pages, PageArtifact{Path: consts.PagesPrefix + "objectives.html", Content: html})
	}

	for i := range course.Topics {
		html, err := g.GenerateTopicPage(&course.Topics[i])
		if err != nil {
			return nil, err
		}
		pages = append(pages, PageArtifact{Path: consts.PagesPrefix + course.Topics[i].ID + ".html", Content: html})
	}

	if course.Assessment != nil {
		html, err := g.GenerateAssessmentPage(course)
		if err != nil {
			return nil, err
		}
		pages = append(pages, PageArtifact{Path: consts.PagesPrefix + "assessment.html", Content: html})
	}

	return pages, nil
}

// GenerateWelcomePage renders the welcome fragment. Newlines in the welcome
// copy become explicit breaks since the content is plain authored text.
func (g *Generator) GenerateWelcomePage(course *model.CourseRequest) (string, error) {
	w := course.WelcomePage
	audio, caption := narrationPair(w.AudioFile, w.CaptionFile)

	startText := w.StartButtonText
	if startText == "" {
		startText = "Start Course"
	}

	return g.renderer.Render("welcome", render.WelcomeData{
		ID:              "welcome",
		Title:           w.Title,
		Content:         strings.ReplaceAll(w.Content, "\n", "<br>"),
		NextPage:        g.pageAfterWelcome(course),
		StartButtonText: startText,
		AudioFile:       audio,
		CaptionFile:     caption,
		ImageURL:        ensureMediaPath(w.ImageURL),
		Media:           g.mediaViews(w.Media),
	})
}

// pageAfterWelcome picks the start button target: objectives when present,
// else the first topic, else the assessment
func (g *Generator) pageAfterWelcome(course *model.CourseRequest) string {
	switch {
	case course.ObjectivesPage != nil:
		return "objectives"
	case len(course.Topics) > 0:
		return course.Topics[0].ID
	case course.Assessment != nil:
		return "assessment"
	default:
		return "welcome"
	}
}

// GenerateObjectivesPage renders the learning objectives fragment
func (g *Generator) GenerateObjectivesPage(o *model.ObjectivesPage) (string, error) {
	audio, caption := narrationPair(o.AudioFile, o.CaptionFile)

	return g.renderer.Render("objectives", render.ObjectivesData{
		ID:          "objectives",
		Objectives:  o.Objectives,
		AudioFile:   audio,
		CaptionFile: caption,
		Media:       g.mediaViews(o.Media),
	})
}

// GenerateTopicPage renders one topic fragment
func (g *Generator) GenerateTopicPage(topic *model.Topic) (string, error) {
	audio, caption := narrationPair(topic.AudioFile, topic.CaptionFile)

	var questions []render.QuestionView
	if topic.KnowledgeCheck.Active() {
		questions = questionViews(topic.KnowledgeCheck.Questions)
	}

	imageURL := ""
	if usableImageURL(topic.ImageURL) {
		imageURL = ensureMediaPath(topic.ImageURL)
	}

	return g.renderer.Render("topic", render.TopicData{
		ID:                topic.ID,
		Title:             topic.Title,
		Content:           topic.Content,
		HasKnowledgeCheck: len(questions) > 0,
		Questions:         questions,
		AudioFile:         audio,
		CaptionFile:       caption,
		ImageURL:          imageURL,
		Media:             g.mediaViews(topic.Media),
	})
}

// GenerateAssessmentPage renders the assessment fragment
func (g *Generator) GenerateAssessmentPage(course *model.CourseRequest) (string, error) {
	a := course.Assessment
	audio, caption := narrationPair(a.AudioFile, a.CaptionFile)

	return g.renderer.Render("assessment", render.AssessmentData{
		Questions:   questionViews(a.Questions),
		PassMark:    course.PassMark,
		AllowRetake: course.AllowRetake,
		AudioFile:   audio,
		CaptionFile: caption,
		Media:       g.mediaViews(a.Media),
	})
}

// mediaViews normalizes media references into view models, classifying
// external videos once so the templates never re-derive it
func (g *Generator) mediaViews(items []model.MediaItem) []render.MediaView {
	if len(items) == 0 {
		return nil
	}
	views := make([]render.MediaView, 0, len(items))
	for _, item := range items {
		url := ensureMediaPath(item.URL)
		views = append(views, render.MediaView{
			Type:            string(item.Type),
			URL:             url,
			Title:           item.Title,
			EmbedURL:        item.EmbedURL,
			IsExternalVideo: g.renderer.MediaIsExternalVideo(item.IsExternalVideo, url, item.EmbedURL),
		})
	}
	return views
}

// questionViews resolves feedback fallbacks and pins the list index as the
// client-side identity
func questionViews(questions []model.Question) []render.QuestionView {
	views := make([]render.QuestionView, 0, len(questions))
	for i, q := range questions {
		correct := q.CorrectFeedback
		if correct == "" {
			correct = q.Explanation
		}
		if correct == "" {
			correct = "Correct!"
		}
		incorrect := q.IncorrectFeedback
		if incorrect == "" {
			incorrect = "Not quite. Try again!"
		}
		views = append(views, render.QuestionView{
			Index:             i,
			Type:              string(q.Type),
			Text:              q.Text,
			Options:           q.Options,
			CorrectAnswer:     q.CorrectAnswer,
			Explanation:       q.Explanation,
			CorrectFeedback:   correct,
			IncorrectFeedback: incorrect,
		})
	}
	return views
}

// narrationPair returns the normalized audio and caption paths, or nothing
// when either half is missing. A narration block without captions (or the
// reverse) is never rendered.
func narrationPair(audio, caption string) (string, string) {
	if audio == "" || caption == "" {
		return "", ""
	}
	return ensureMediaPath(audio), ensureMediaPath(caption)
}

// ensureMediaPath rewrites relative references under the media prefix.
// Absolute URLs and already-prefixed paths pass through unchanged.
func ensureMediaPath(p string) string {
	if p == "" {
		return ""
	}
	if strings.HasPrefix(p, "http://") || strings.HasPrefix(p, "https://") || strings.HasPrefix(p, "//") {
		return p
	}
	if strings.HasPrefix(p, consts.MediaPrefix) {
		return p
	}
	return consts.MediaPrefix + p
}

// usableImageURL filters out references that look like broken placeholder
// paths: a relative path carrying an image extension points at an asset the
// package cannot resolve, so the image degrades to nothing instead of a
// broken element.
func usableImageURL(url string) bool {
	if url == "" {
		return false
	}
	if strings.HasPrefix(url, "http://") || strings.HasPrefix(url, "https://") {
		return true
	}
	for _, ext := range []string{".jpg", ".jpeg", ".png", ".gif"} {
		if strings.Contains(url, ext) {
			return false
		}
	}
	return true
}
