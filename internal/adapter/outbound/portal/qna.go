package portal

import (
	"context"
	"errors"
	"fmt"
)

// ErrQNARejected is returned when a Q&A endpoint answers 2xx but with
// success=false in the envelope; the server's message is wrapped.
var ErrQNARejected = errors.New("qna request rejected")

// Questions lists the Q&A questions.
func (c *Client) Questions(ctx context.Context) ([]Question, error) {
	var resp qnaEnvelope[[]Question]
	if err := c.get(ctx, "qna/questions", &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// Question fetches a single question.
func (c *Client) Question(ctx context.Context, questionID int64) (*Question, error) {
	var resp qnaEnvelope[*Question]
	if err := c.get(ctx, fmt.Sprintf("qna/questions/%d", questionID), &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// CreateQuestion posts a new question. Requires authentication.
func (c *Client) CreateQuestion(ctx context.Context, q NewQuestion) error {
	var resp qnaEnvelope[*Question]
	if err := c.post(ctx, "qna/questions", q, &resp); err != nil {
		return err
	}
	return qnaStatus(resp.Success, resp.Message)
}

// UpdateQuestion edits an existing question. Requires authentication.
func (c *Client) UpdateQuestion(ctx context.Context, questionID int64, q NewQuestion) error {
	var resp qnaEnvelope[*Question]
	if err := c.put(ctx, fmt.Sprintf("qna/questions/%d", questionID), q, &resp); err != nil {
		return err
	}
	return qnaStatus(resp.Success, resp.Message)
}

// DeleteQuestion removes a question. Requires authentication.
func (c *Client) DeleteQuestion(ctx context.Context, questionID int64) error {
	var resp qnaEnvelope[*Question]
	if err := c.del(ctx, fmt.Sprintf("qna/questions/%d", questionID), &resp); err != nil {
		return err
	}
	return qnaStatus(resp.Success, resp.Message)
}

// Answers lists the answers to a question.
func (c *Client) Answers(ctx context.Context, questionID int64) ([]Answer, error) {
	var resp qnaEnvelope[[]Answer]
	if err := c.get(ctx, fmt.Sprintf("qna/answers/question/%d", questionID), &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// CreateAnswer posts an answer to a question. Requires authentication.
func (c *Client) CreateAnswer(ctx context.Context, questionID int64, content string) error {
	body := map[string]string{"content": content}
	var resp qnaEnvelope[*Answer]
	if err := c.post(ctx, fmt.Sprintf("qna/answers/question/%d", questionID), body, &resp); err != nil {
		return err
	}
	return qnaStatus(resp.Success, resp.Message)
}

// UpdateAnswer edits an answer. Requires authentication.
func (c *Client) UpdateAnswer(ctx context.Context, answerID int64, content string) error {
	body := map[string]string{"content": content}
	var resp qnaEnvelope[*Answer]
	if err := c.put(ctx, fmt.Sprintf("qna/answers/%d", answerID), body, &resp); err != nil {
		return err
	}
	return qnaStatus(resp.Success, resp.Message)
}

// DeleteAnswer removes an answer. Requires authentication.
func (c *Client) DeleteAnswer(ctx context.Context, answerID int64) error {
	var resp qnaEnvelope[*Answer]
	if err := c.del(ctx, fmt.Sprintf("qna/answers/%d", answerID), &resp); err != nil {
		return err
	}
	return qnaStatus(resp.Success, resp.Message)
}

// qnaStatus converts a success=false envelope into an error carrying
// the server's message.
func qnaStatus(success bool, message string) error {
	if success {
		return nil
	}
	if message == "" {
		message = "request rejected"
	}
	return fmt.Errorf("%w: %s", ErrQNARejected, message)
}
