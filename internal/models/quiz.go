package models

import "time"

// JSON tags on exam/quiz types are camelCase: they must match the static
// data files emitted by the offline pipeline (cmd/mirdata) and the draft
// snapshots persisted by earlier client builds.

type Answer struct {
	Order     int    `json:"order"`
	Text      string `json:"text"`
	IsCorrect bool   `json:"isCorrect"`
}

type Question struct {
	Number             int      `json:"number"`
	Text               string   `json:"text"`
	TextHTML           string   `json:"textHtml"`
	Images             []string `json:"images"`
	Explanation        *string  `json:"explanation"`
	Answers            []Answer `json:"answers"`
	CorrectAnswerIndex int      `json:"correctAnswerIndex"`
}

// CorrectOrder returns the order value of the answer marked correct.
// Exam content comes from the trusted offline pipeline; an out-of-range
// CorrectAnswerIndex is malformed content and will panic.
func (q Question) CorrectOrder() int {
	return q.Answers[q.CorrectAnswerIndex].Order
}

type Exam struct {
	Year           int        `json:"year"`
	TotalQuestions int        `json:"totalQuestions"`
	NumOptions     int        `json:"numOptions"`
	HasImages      bool       `json:"hasImages"`
	Questions      []Question `json:"questions"`
}

type ExamManifestEntry struct {
	Year           int  `json:"year"`
	TotalQuestions int  `json:"totalQuestions"`
	NumOptions     int  `json:"numOptions"`
	HasImages      bool `json:"hasImages"`
	ImageCount     int  `json:"imageCount"`
}

type ExamManifest struct {
	TotalExams     int                 `json:"totalExams"`
	TotalQuestions int                 `json:"totalQuestions"`
	YearRange      string              `json:"yearRange"`
	Exams          []ExamManifestEntry `json:"exams"`
}

type QuizMode string

const (
	ModeExam   QuizMode = "exam"
	ModeReview QuizMode = "review"
)

// QuizState is one exam attempt. Answers maps every question number of the
// exam to the selected answer order, or nil while unselected. Once
// IsSubmitted flips to true the state is terminal: the reducer ignores
// further mutations.
type QuizState struct {
	ExamYear        int          `json:"examYear"`
	CurrentQuestion int          `json:"currentQuestion"`
	Answers         map[int]*int `json:"answers"`
	Mode            QuizMode     `json:"mode"`
	IsSubmitted     bool         `json:"isSubmitted"`
	StartedAt       time.Time    `json:"startedAt"`
	TimerSeconds    *int         `json:"timerSeconds"`
}

// AnsweredCount returns how many questions have a selection.
func (s QuizState) AnsweredCount() int {
	n := 0
	for _, v := range s.Answers {
		if v != nil {
			n++
		}
	}
	return n
}

// QuizResult is the immutable summary derived at submission time.
type QuizResult struct {
	ID             string       `json:"id"`
	ExamYear       int          `json:"examYear"`
	TotalQuestions int          `json:"totalQuestions"`
	Correct        int          `json:"correct"`
	Incorrect      int          `json:"incorrect"`
	Unanswered     int          `json:"unanswered"`
	NetScore       float64      `json:"netScore"`
	NumOptions     int          `json:"numOptions"`
	CompletedAt    time.Time    `json:"completedAt"`
	Answers        map[int]*int `json:"answers"`
}

// ── Request Types ────────────────────────────────────────

type SelectAnswerRequest struct {
	QuestionNumber int `json:"questionNumber"`
	SelectedOrder  int `json:"selectedOrder"`
}

type NavigateRequest struct {
	QuestionNumber int `json:"questionNumber"`
}

// ── Response Types ───────────────────────────────────────

type SessionResponse struct {
	State         QuizState `json:"state"`
	AnsweredCount int       `json:"answeredCount"`
	Restored      bool      `json:"restored"`
}

type ResultListResponse struct {
	Results []QuizResult `json:"results"`
	Total   int          `json:"total"`
}
