package quizapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/pkg/errors"

	"github.com/darasahq/darasa/core"
	"github.com/darasahq/darasa/core/quiz"
)

// Client talks to the external quiz persistence service. Every call is a
// single attempt; failures are returned to the caller for display.
type Client struct {
	baseURL string
	http    *http.Client
	log     core.Logger
}

var _ quiz.API = (*Client)(nil)

func NewClient(conf *core.Config, log core.Logger) *Client {
	return &Client{
		baseURL: conf.QuizAPIBaseURL,
		http:    &http.Client{Timeout: 30 * time.Second},
		log:     log,
	}
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var buff bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buff).Encode(body); err != nil {
			return errors.Wrap(err, "encoding request body")
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, &buff)
	if err != nil {
		return errors.Wrap(err, "building request")
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := c.http.Do(req)
	if err != nil {
		return errors.Wrap(err, "calling quiz service")
	}
	defer func() { _ = res.Body.Close() }()

	if res.StatusCode == http.StatusNotFound {
		return quiz.ErrNotFound
	}
	if res.StatusCode < 200 || res.StatusCode > 299 {
		return errors.Errorf("quiz service: %s %s: %s", method, path, res.Status)
	}
	if out == nil {
		return nil
	}
	if err = json.NewDecoder(res.Body).Decode(out); err != nil {
		// contract drift must be loud, not defaulted away
		c.log.Error("quiz service returned an undecodable payload", err)
		return errors.Wrap(core.ErrMalformedResponse, err.Error())
	}
	return nil
}

func (c *Client) CreateQuiz(ctx context.Context, nq quiz.NewQuiz) (quiz.Quiz, error) {
	var created quiz.Quiz
	if err := c.do(ctx, http.MethodPost, "/quizzes", nq, &created); err != nil {
		return quiz.Quiz{}, err
	}
	if created.ID == "" {
		c.log.Error("quiz service returned a quiz without an id")
		return quiz.Quiz{}, core.ErrMalformedResponse
	}
	return created, nil
}

func (c *Client) BulkUploadQuestions(ctx context.Context, quizID string, questions []quiz.Question) (int, error) {
	payload := struct {
		Questions []quiz.Question `json:"questions"`
	}{Questions: questions}

	var res struct {
		Uploaded int `json:"uploaded"`
	}
	path := fmt.Sprintf("/quizzes/%s/questions/bulk", quizID)
	if err := c.do(ctx, http.MethodPost, path, payload, &res); err != nil {
		return 0, err
	}
	return res.Uploaded, nil
}

func (c *Client) UpdateQuiz(ctx context.Context, id string, patch quiz.UpdateQuiz) (quiz.Quiz, error) {
	var updated quiz.Quiz
	if err := c.do(ctx, http.MethodPut, "/quizzes/"+id, patch, &updated); err != nil {
		return quiz.Quiz{}, err
	}
	return updated, nil
}
