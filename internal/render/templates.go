package render

// Template definitions. The index shell loads page fragments into its content
// container at runtime; welcome/objectives/topic/assessment render as
// fragments. The narration block requires both an audio and a caption file;
// callers guarantee the pairing before setting the fields.

const indexTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{escape .CourseTitle}}</title>
<link rel="stylesheet" href="styles/main.css">
</head>
<body>
<header class="header">
    <h1>{{escape .CourseTitle}}</h1>
{{- if .ShowProgress}}
    <div class="progress-bar"><div class="progress-fill" id="progress-fill"></div></div>
{{- end}}
</header>
<div class="main-area">
{{- if .ShowOutline}}
    <nav class="sidebar">
        <ul class="sidebar-list">
{{- if .HasWelcome}}
            <li><a href="#" class="sidebar-link" data-page="welcome">Welcome</a></li>
{{- end}}
{{- if .HasObjectives}}
            <li><a href="#" class="sidebar-link" data-page="objectives">Learning Objectives</a></li>
{{- end}}
{{- range .Topics}}
            <li><a href="#" class="sidebar-link" data-page="{{.ID}}">{{escape .Title}}</a></li>
{{- end}}
{{- if .HasAssessment}}
            <li><a href="#" class="sidebar-link" data-page="assessment">Assessment</a></li>
{{- end}}
        </ul>
    </nav>
{{- end}}
    <main id="content-container"></main>
</div>
<footer class="footer">
    <button id="prev-button" class="nav-button">Previous</button>
    <div id="scorm-alert-container"></div>
    <button id="next-button" class="nav-button">Next</button>
</footer>
<script src="scripts/navigation.js"></script>
</body>
</html>
`

const audioBlockTemplate = `<div class="audio-block">
        <audio id="audio-player-{{.ID}}" controls preload="none">
            <source src="{{.AudioFile}}">
            <track kind="captions" src="{{.CaptionFile}}" srclang="en" default>
        </audio>
    </div>`

const mediaItemsTemplate = `{{range .}}
    <figure class="media-item">
{{- if .IsExternalVideo}}
        <div class="video-embed">
            <iframe src="{{if .EmbedURL}}{{.EmbedURL}}{{else}}https://www.youtube.com/embed/{{extractExternalVideoID .URL}}{{end}}" title="{{escape .Title}}" frameborder="0" allowfullscreen></iframe>
        </div>
{{- else if eq .Type "video"}}
        <video controls src="{{.URL}}"></video>
{{- else if eq .Type "audio"}}
        <audio controls src="{{.URL}}"></audio>
{{- else}}
        <img src="{{.URL}}" alt="{{escape .Title}}">
{{- end}}
{{- if .Title}}
        <figcaption>{{escape .Title}}</figcaption>
{{- end}}
    </figure>
{{- end}}`

const welcomeTemplate = `<div class="page welcome-page" id="page-{{.ID}}">
    <h2>{{escape .Title}}</h2>
{{- if and .AudioFile .CaptionFile}}
    {{template "audio_block" .}}
{{- end}}
{{- if .ImageURL}}
    <img class="page-image" src="{{.ImageURL}}" alt="{{escape .Title}}">
{{- end}}
    <div class="page-content">{{.Content}}</div>
{{- template "media_items" .Media}}
    <button class="nav-button start-button" onclick="navigateToPage('{{.NextPage}}')">{{escape .StartButtonText}}</button>
</div>
`

const objectivesTemplate = `<div class="page objectives-page" id="page-{{.ID}}">
    <h2>Learning Objectives</h2>
{{- if and .AudioFile .CaptionFile}}
    {{template "audio_block" .}}
{{- end}}
    <ul class="objectives-list">
{{- range .Objectives}}
        <li>{{escape .}}</li>
{{- end}}
    </ul>
{{- template "media_items" .Media}}
</div>
`

const topicTemplate = `<div class="page topic-page" id="page-{{.ID}}">
    <h2>{{escape .Title}}</h2>
{{- if and .AudioFile .CaptionFile}}
    {{template "audio_block" .}}
{{- end}}
{{- if .ImageURL}}
    <img class="page-image" src="{{.ImageURL}}" alt="{{escape .Title}}">
{{- end}}
    <div class="page-content">{{.Content}}</div>
{{- template "media_items" .Media}}
{{- if .HasKnowledgeCheck}}
    <div class="knowledge-check-container">
        <h3>Knowledge Check</h3>
{{- range $q := .Questions}}
        <div class="kc-question-wrapper" id="kc-question-{{$.ID}}-{{$q.Index}}" data-index="{{$q.Index}}" data-type="{{$q.Type}}" data-correct="{{escape $q.CorrectAnswer}}" data-correct-feedback="{{escape $q.CorrectFeedback}}" data-incorrect-feedback="{{escape $q.IncorrectFeedback}}">
            <p class="kc-question-text">{{escape $q.Text}}</p>
{{- if eq $q.Type "fill-in-the-blank"}}
            <input type="text" id="fill-blank-{{$.ID}}-{{$q.Index}}" class="kc-fill-blank" placeholder="Type your answer">
{{- else}}
{{- range $opt := $q.Options}}
            <label class="kc-option"><input type="radio" name="kc-{{$.ID}}-{{$q.Index}}" value="{{escape $opt}}"> {{escape $opt}}</label>
{{- end}}
{{- end}}
            <div class="kc-feedback"></div>
        </div>
{{- end}}
        <button class="nav-button kc-submit" onclick="window.submitAllKnowledgeChecks('{{.ID}}')">Submit Answers</button>
    </div>
{{- end}}
</div>
`

const assessmentTemplate = `<div class="page assessment-page" id="page-assessment">
    <h2>Assessment</h2>
{{- if and .AudioFile .CaptionFile}}
    <div class="audio-block">
        <audio id="audio-player-assessment" controls preload="none">
            <source src="{{.AudioFile}}">
            <track kind="captions" src="{{.CaptionFile}}" srclang="en" default>
        </audio>
    </div>
{{- end}}
    <p class="assessment-intro">Answer every question. You need {{.PassMark}}% to pass.</p>
{{- range $q := .Questions}}
    <div class="assessment-question kc-question-wrapper" id="assessment-question-{{$q.Index}}" data-index="{{$q.Index}}" data-type="{{$q.Type}}" data-correct="{{escape $q.CorrectAnswer}}" data-correct-feedback="{{escape $q.CorrectFeedback}}" data-incorrect-feedback="{{escape $q.IncorrectFeedback}}">
        <p class="kc-question-text">{{add $q.Index 1}}. {{escape $q.Text}}</p>
{{- if eq $q.Type "fill-in-the-blank"}}
        <input type="text" id="assessment-blank-{{$q.Index}}" class="kc-fill-blank" placeholder="Type your answer">
{{- else}}
{{- range $opt := $q.Options}}
        <label class="kc-option"><input type="radio" name="assessment-{{$q.Index}}" value="{{escape $opt}}"> {{escape $opt}}</label>
{{- end}}
{{- end}}
        <div class="kc-feedback"></div>
    </div>
{{- end}}
{{- template "media_items" .Media}}
    <button class="nav-button assessment-submit" onclick="window.submitAssessment()">Submit Assessment</button>
    <div id="assessment-result"></div>
</div>
`

const navigationTemplate = `// Package navigation runtime.

const PAGES_WITH_KNOWLEDGE_CHECKS = {
{{- range .Topics}}
    '{{.ID}}': {{.HasKnowledgeCheck}},
{{- end}}
};

const PASS_MARK = {{.PassMark}};
const NAVIGATION_MODE = '{{.NavigationMode}}';
const ALLOW_RETAKE = {{.AllowRetake}};

const PAGE_ORDER = [
{{- if .HasWelcome}}
    'welcome',
{{- end}}
{{- if .HasObjectives}}
    'objectives',
{{- end}}
{{- range .Topics}}
    '{{.ID}}',
{{- end}}
{{- if .HasAssessment}}
    'assessment',
{{- end}}
];

let currentPageIndex = 0;
let assessmentSubmitted = false;
const completedKnowledgeChecks = {};

function initializeNavigation() {
    document.querySelectorAll('.sidebar-link').forEach(link => {
        link.addEventListener('click', event => {
            event.preventDefault();
            const pageId = link.getAttribute('data-page');
            console.log('[SCORM Navigation] Sidebar click:', pageId);
            if (shouldBlockNavigation() && PAGE_ORDER.indexOf(pageId) > currentPageIndex) {
                showAlert('Complete the knowledge check before moving on.');
                return;
            }
            navigateToPage(pageId);
        });
    });

    document.getElementById('prev-button').addEventListener('click', () => {
        if (currentPageIndex > 0) {
            navigateToPage(PAGE_ORDER[currentPageIndex - 1]);
        }
    });

    document.getElementById('next-button').addEventListener('click', () => {
        if (shouldBlockNavigation()) {
            showAlert('Complete the knowledge check before moving on.');
            return;
        }
        if (currentPageIndex < PAGE_ORDER.length - 1) {
            navigateToPage(PAGE_ORDER[currentPageIndex + 1]);
        }
    });

    if (PAGE_ORDER.length > 0) {
        navigateToPage(PAGE_ORDER[0]);
    } else {
        updateNavigationState();
    }
}

function navigateToPage(pageId) {
    const contentContainer = document.getElementById('content-container');
    fetch('pages/' + pageId + '.html')
        .then(response => response.text())
        .then(html => {
            contentContainer.innerHTML = html;
            currentPageIndex = PAGE_ORDER.indexOf(pageId);
            initializePageAudio(pageId);
            initializeKnowledgeChecks(pageId);
            updateNavigationState();
            updateProgress();
        })
        .catch(err => {
            console.error('[SCORM Navigation] Failed to load page:', pageId, err);
        });
}

function shouldBlockNavigation() {
    if (NAVIGATION_MODE !== 'linear') {
        return false;
    }
    const pageId = PAGE_ORDER[currentPageIndex];
    return Boolean(PAGES_WITH_KNOWLEDGE_CHECKS[pageId]) && !completedKnowledgeChecks[pageId];
}

function updateNavigationState() {
    const prevButton = document.getElementById('prev-button');
    const nextButton = document.getElementById('next-button');
    prevButton.disabled = currentPageIndex <= 0;
    nextButton.disabled = currentPageIndex >= PAGE_ORDER.length - 1 || shouldBlockNavigation();

    document.querySelectorAll('.sidebar-link').forEach(link => {
        link.classList.toggle('active', link.getAttribute('data-page') === PAGE_ORDER[currentPageIndex]);
    });
}

function updateProgress() {
    const fill = document.getElementById('progress-fill');
    if (!fill || PAGE_ORDER.length === 0) {
        return;
    }
    const percent = Math.round(((currentPageIndex + 1) / PAGE_ORDER.length) * 100);
    fill.style.width = percent + '%';
}

function initializePageAudio(pageId) {
    const player = document.getElementById('audio-player-' + pageId);
    if (!player) {
        return;
    }
    player.load();
}

function initializeKnowledgeChecks(pageId) {
    if (!PAGES_WITH_KNOWLEDGE_CHECKS[pageId]) {
        return;
    }
    document.querySelectorAll('#content-container .kc-feedback').forEach(el => {
        el.textContent = '';
        el.className = 'kc-feedback';
    });
}

window.checkMultipleChoice = function (pageId, index) {
    const selected = document.querySelector('input[name="kc-' + pageId + '-' + index + '"]:checked');
    if (!selected) {
        return false;
    }
    const wrapper = document.getElementById('kc-question-' + pageId + '-' + index);
    return selected.value === wrapper.getAttribute('data-correct');
};

window.checkFillInBlank = function (pageId, index) {
    const input = document.getElementById('fill-blank-' + pageId + '-' + index);
    if (!input) {
        return false;
    }
    const wrapper = document.getElementById('kc-question-' + pageId + '-' + index);
    const expected = wrapper.getAttribute('data-correct') || '';
    return input.value.trim().toLowerCase() === expected.trim().toLowerCase();
};

window.submitAllKnowledgeChecks = function (pageId) {
    const wrappers = document.querySelectorAll('#content-container .kc-question-wrapper');
    let correct = 0;
    wrappers.forEach(wrapper => {
        const index = parseInt(wrapper.getAttribute('data-index'), 10);
        const type = wrapper.getAttribute('data-type');
        let passed;
        if (type === 'fill-in-the-blank') {
            passed = window.checkFillInBlank(pageId, index);
        } else {
            passed = window.checkMultipleChoice(pageId, index);
        }
        const feedback = wrapper.querySelector('.kc-feedback');
        if (passed) {
            correct += 1;
            feedback.textContent = wrapper.getAttribute('data-correct-feedback');
            feedback.className = 'kc-feedback kc-feedback-correct';
        } else {
            feedback.textContent = wrapper.getAttribute('data-incorrect-feedback');
            feedback.className = 'kc-feedback kc-feedback-incorrect';
        }
    });
    if (wrappers.length > 0 && correct === wrappers.length) {
        completedKnowledgeChecks[pageId] = true;
    }
    updateNavigationState();
};

window.submitAssessment = function () {
    if (assessmentSubmitted && !ALLOW_RETAKE) {
        showAlert('The assessment has already been submitted.');
        return;
    }
    const wrappers = document.querySelectorAll('#content-container .assessment-question');
    let correct = 0;
    wrappers.forEach(wrapper => {
        const index = parseInt(wrapper.getAttribute('data-index'), 10);
        const type = wrapper.getAttribute('data-type');
        let passed;
        if (type === 'fill-in-the-blank') {
            const input = document.getElementById('assessment-blank-' + index);
            const expected = wrapper.getAttribute('data-correct') || '';
            passed = input && input.value.trim().toLowerCase() === expected.trim().toLowerCase();
        } else {
            const selected = document.querySelector('input[name="assessment-' + index + '"]:checked');
            passed = selected && selected.value === wrapper.getAttribute('data-correct');
        }
        const feedback = wrapper.querySelector('.kc-feedback');
        if (passed) {
            correct += 1;
            feedback.textContent = wrapper.getAttribute('data-correct-feedback');
            feedback.className = 'kc-feedback kc-feedback-correct';
        } else {
            feedback.textContent = wrapper.getAttribute('data-incorrect-feedback');
            feedback.className = 'kc-feedback kc-feedback-incorrect';
        }
    });
    assessmentSubmitted = true;
    const score = wrappers.length > 0 ? Math.round((correct / wrappers.length) * 100) : 0;
    const result = document.getElementById('assessment-result');
    if (result) {
        if (score >= PASS_MARK) {
            result.textContent = 'You scored ' + score + '%. You passed.';
            result.className = 'kc-feedback-correct';
        } else {
            result.textContent = 'You scored ' + score + '%. The pass mark is ' + PASS_MARK + '%.';
            result.className = 'kc-feedback-incorrect';
        }
    }
};

function showAlert(message) {
    const container = document.getElementById('scorm-alert-container');
    if (!container) {
        return;
    }
    container.textContent = message;
    container.classList.add('visible');
    setTimeout(() => container.classList.remove('visible'), 4000);
}

document.addEventListener('DOMContentLoaded', initializeNavigation);
`

const stylesTemplate = `:root {
    --primary-color: {{.PrimaryColor}};
    --secondary-color: {{.SecondaryColor}};
    --sidebar-width: {{.SidebarWidth}};
    --base-font-size: {{.BaseFontSize}};
}

* {
    box-sizing: border-box;
    margin: 0;
    padding: 0;
}

html {
    height: 100%;
}

body {
    height: 100vh;
    display: flex;
    flex-direction: column;
    overflow: hidden;
    font-family: -apple-system, "Segoe UI", Roboto, Helvetica, Arial, sans-serif;
    font-size: var(--base-font-size);
    color: var(--secondary-color);
    background: #fff;
}

.header {
    padding: 12px 24px;
    background: var(--secondary-color);
    color: #fff;
}

.header h1 {
    font-size: 1.25em;
    font-weight: 600;
}

.progress-bar {
    margin-top: 8px;
    height: 6px;
    background: rgba(255, 255, 255, 0.25);
    border-radius: 3px;
    overflow: hidden;
{{- if not .ShowProgress}}
    display: none;
{{- end}}
}

.progress-fill {
    height: 100%;
    width: 0;
    background: var(--primary-color);
    transition: width 0.3s ease;
}

.main-area {
    display: flex;
    flex: 1;
    min-height: 0;
}

.sidebar {
    width: var(--sidebar-width);
    flex-shrink: 0;
    overflow-y: auto;
    border-right: 1px solid #e0e0e0;
    background: #f7f7f7;
{{- if not .ShowOutline}}
    display: none;
{{- end}}
}

.sidebar-list {
    list-style: none;
}

.sidebar-link {
    display: block;
    padding: 10px 16px;
    color: var(--secondary-color);
    text-decoration: none;
    border-left: 3px solid transparent;
}

.sidebar-link:hover {
    background: #eee;
}

.sidebar-link.active {
    border-left-color: var(--primary-color);
    background: #eee;
    font-weight: 600;
}

#content-container {
    flex: 1;
    overflow-y: auto;
    padding: 24px;
}

.page h2 {
    margin-bottom: 16px;
}

.page-content {
    line-height: 1.6;
    margin-bottom: 16px;
}

.page-image {
    max-width: 100%;
    margin-bottom: 16px;
}

.audio-block {
    margin-bottom: 16px;
}

.audio-block audio {
    width: 100%;
}

.media-item {
    margin: 16px 0;
}

.media-item img,
.media-item video {
    max-width: 100%;
}

.video-embed {
    position: relative;
    padding-bottom: 56.25%;
    height: 0;
}

.video-embed iframe {
    position: absolute;
    top: 0;
    left: 0;
    width: 100%;
    height: 100%;
}

.objectives-list {
    padding-left: 24px;
    line-height: 1.8;
}

.footer {
    display: flex;
    justify-content: space-between;
    align-items: center;
    padding: 12px 24px;
    border-top: 1px solid #e0e0e0;
    background: #fff;
}

.nav-button {
    padding: 10px 20px;
    border: none;
    border-radius: 4px;
    background: var(--primary-color);
    color: #fff;
    font-size: var(--base-font-size);
    cursor: pointer;
}

.nav-button:hover {
    filter: brightness(0.95);
}

.nav-button:disabled {
    opacity: 0.5;
    cursor: not-allowed;
}

.knowledge-check-container {
    margin-top: 24px;
    padding: 16px;
    border: 1px solid #e0e0e0;
    border-radius: 6px;
    background: #fafafa;
}

.kc-question-wrapper {
    margin-bottom: 16px;
}

.kc-question-text {
    font-weight: 600;
    margin-bottom: 8px;
}

.kc-option {
    display: block;
    margin-bottom: 6px;
    cursor: pointer;
}

.kc-fill-blank {
    display: block;
    width: 100%;
    max-width: 360px;
    padding: 8px;
    border: 1px solid #ccc;
    border-radius: 4px;
    font-size: var(--base-font-size);
}

.kc-feedback {
    min-height: 1.2em;
    margin-top: 6px;
    font-size: 0.9em;
}

.kc-feedback-correct {
    color: #2e7d32;
}

.kc-feedback-incorrect {
    color: #c62828;
}

#scorm-alert-container {
    flex: 1;
    margin: 0 16px;
    text-align: center;
    color: #c62828;
    opacity: 0;
    transition: opacity 0.2s ease;
}

#scorm-alert-container.visible {
    opacity: 1;
}

#assessment-result {
    margin-top: 16px;
    font-weight: 600;
}
{{- if .Printable}}

@media print {
    body {
        height: auto;
        overflow: visible;
    }

    .header,
    .sidebar,
    .footer {
        display: none;
    }

    #content-container {
        overflow: visible;
        padding: 0;
    }
}
{{- end}}
`
