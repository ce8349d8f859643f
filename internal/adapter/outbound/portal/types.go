package portal

// Account endpoints.

type loginRequest struct {
	UserID   string `json:"userId"`
	Password string `json:"password"`
}

type loginResponse struct {
	UserToken string `json:"userToken"`
}

type registerRequest struct {
	UserID     string `json:"userId"`
	Password   string `json:"password"`
	Nickname   string `json:"nickname"`
	TrainingID int64  `json:"trainingId"`
}

// dataEnvelope wraps the information endpoints' responses: {"data": [...]}.
type dataEnvelope[T any] struct {
	Data T `json:"data"`
}

// qnaEnvelope wraps the Q&A endpoints' responses:
// {"success": bool, "message": "...", "data": ...}.
type qnaEnvelope[T any] struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    T      `json:"data"`
}

// Institution is a training institution listed on the portal.
type Institution struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
}

// Training is a training course offered by an institution.
type Training struct {
	ID                 int64  `json:"id"`
	Name               string `json:"name"`
	InstitutionID      int64  `json:"institutionId"`
	InstitutionName    string `json:"institutionName"`
	NCSType            string `json:"ncsType"`
	NCSTypeDescription string `json:"ncsTypeDescription"`
	Period             string `json:"period"`
	StartDate          string `json:"startDate"`
	EndDate            string `json:"endDate"`
	CreatedAt          string `json:"createdAt"`
}

// Board is a community board category.
type Board struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Post is a community board post.
type Post struct {
	ID             int64  `json:"id"`
	BoardID        int64  `json:"boardId"`
	Title          string `json:"title"`
	Content        string `json:"content"`
	Category       string `json:"category"`
	AuthorID       string `json:"authorId"`
	AuthorNickname string `json:"authorNickname"`
	ViewCount      int    `json:"viewCount"`
	CreatedAt      string `json:"createdAt"`
}

// NewPost is the payload for creating a board post.
type NewPost struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	Category string `json:"category"`
	BoardID  int64  `json:"boardId"`
}

// Comment is a comment on a board post.
type Comment struct {
	ID        int64  `json:"id"`
	PostID    int64  `json:"postId"`
	Content   string `json:"content"`
	User      string `json:"user"`
	CreatedAt string `json:"createdAt"`
}

// NewComment is the payload for creating a comment.
type NewComment struct {
	PostID  int64  `json:"postId"`
	Content string `json:"content"`
}

// Question is a Q&A question.
type Question struct {
	ID             int64  `json:"id"`
	Title          string `json:"title"`
	Content        string `json:"content"`
	NCSType        string `json:"ncsType"`
	QuestionType   string `json:"questionType"`
	AuthorID       string `json:"authorId"`
	AuthorNickname string `json:"authorNickname"`
	AnswerCount    int    `json:"answerCount"`
	RecommendCount int    `json:"recommendCount"`
	ViewCount      int    `json:"viewCount"`
	CreatedAt      string `json:"createdAt"`
}

// NewQuestion is the payload for creating or updating a question.
type NewQuestion struct {
	Title        string `json:"title"`
	Content      string `json:"content"`
	NCSType      string `json:"ncsType"`
	QuestionType string `json:"questionType"`
}

// Answer is an answer to a Q&A question.
type Answer struct {
	ID             int64  `json:"id"`
	QuestionID     int64  `json:"questionId"`
	Content        string `json:"content"`
	AuthorID       string `json:"authorId"`
	AuthorNickname string `json:"authorNickname"`
	CreatedAt      string `json:"createdAt"`
}
