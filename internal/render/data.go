package render

// View models consumed by the templates. The page generators build these from
// the course model after normalization, so templates never see raw input.

// TopicLink is one sidebar entry in the index shell
type TopicLink struct {
	ID    string
	Title string
}

// IndexData feeds the index shell template
type IndexData struct {
	CourseTitle   string
	HasWelcome    bool
	HasObjectives bool
	HasAssessment bool
	ShowProgress  bool
	ShowOutline   bool
	Topics        []TopicLink
}

// MediaView is one normalized media reference. URL is already archive-relative
// or absolute, and IsExternalVideo comes from the central classifier.
type MediaView struct {
	Type            string
	URL             string
	Title           string
	EmbedURL        string
	IsExternalVideo bool
}

// WelcomeData feeds the welcome page template
type WelcomeData struct {
	ID              string
	Title           string
	Content         string
	NextPage        string
	StartButtonText string
	AudioFile       string
	CaptionFile     string
	ImageURL        string
	Media           []MediaView
}

// ObjectivesData feeds the objectives page template
type ObjectivesData struct {
	ID          string
	Objectives  []string
	AudioFile   string
	CaptionFile string
	Media       []MediaView
}

// QuestionView is one question with feedback fallbacks resolved. Index is the
// position within the owning list and doubles as the client-side identity.
type QuestionView struct {
	Index             int
	Type              string
	Text              string
	Options           []string
	CorrectAnswer     string
	Explanation       string
	CorrectFeedback   string
	IncorrectFeedback string
}

// TopicData feeds the topic page template
type TopicData struct {
	ID                string
	Title             string
	Content           string
	HasKnowledgeCheck bool
	Questions         []QuestionView
	AudioFile         string
	CaptionFile       string
	ImageURL          string
	Media             []MediaView
}

// AssessmentData feeds the assessment page template
type AssessmentData struct {
	Questions   []QuestionView
	PassMark    int
	AllowRetake bool
	AudioFile   string
	CaptionFile string
	Media       []MediaView
}

// NavTopic is one entry in the navigation script's knowledge-check table
type NavTopic struct {
	ID                string
	Title             string
	HasKnowledgeCheck bool
}

// NavigationData feeds the navigation script template
type NavigationData struct {
	HasWelcome     bool
	HasObjectives  bool
	HasAssessment  bool
	PassMark       int
	NavigationMode string
	AllowRetake    bool
	Topics         []NavTopic
}

// StyleData feeds the stylesheet template
type StyleData struct {
	PrimaryColor   string
	SecondaryColor string
	SidebarWidth   string
	BaseFontSize   string
	ShowProgress   bool
	ShowOutline    bool
	Printable      bool
}
