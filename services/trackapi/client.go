package trackapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/pkg/errors"

	"github.com/darasahq/darasa/core"
	"github.com/darasahq/darasa/core/track"
)

// Client talks to the external progress/attendance service.
type Client struct {
	baseURL string
	http    *http.Client
	log     core.Logger
}

var _ track.API = (*Client)(nil)

func NewClient(conf *core.Config, log core.Logger) *Client {
	return &Client{
		baseURL: conf.TrackAPIBaseURL,
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
		return errors.Wrap(err, "calling track service")
	}
	defer func() { _ = res.Body.Close() }()

	if res.StatusCode == http.StatusNotFound {
		return track.ErrNotFound
	}
	if res.StatusCode < 200 || res.StatusCode > 299 {
		return errors.Errorf("track service: %s %s: %s", method, path, res.Status)
	}
	if out == nil {
		return nil
	}
	if err = json.NewDecoder(res.Body).Decode(out); err != nil {
		c.log.Error("track service returned an undecodable payload", err)
		return errors.Wrap(core.ErrMalformedResponse, err.Error())
	}
	return nil
}

func (c *Client) FetchUserModules(ctx context.Context, userID string) ([]track.Module, error) {
	var res struct {
		Modules []track.Module `json:"modules"`
	}
	if err := c.do(ctx, http.MethodGet, "/users/"+userID+"/modules", nil, &res); err != nil {
		return nil, err
	}
	if res.Modules == nil {
		// an empty list is fine; a missing field is contract drift
		c.log.Warn("track service returned no modules field", map[string]interface{}{"user_id": userID})
		res.Modules = []track.Module{}
	}
	return res.Modules, nil
}

func (c *Client) TrackModuleAccess(ctx context.Context, userID, moduleID string) error {
	payload := map[string]string{"user_id": userID}
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/modules/%s/access", moduleID), payload, nil)
}

func (c *Client) TrackLessonAccess(ctx context.Context, userID, lessonID string) error {
	payload := map[string]string{"user_id": userID}
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/lessons/%s/access", lessonID), payload, nil)
}

func (c *Client) UpdateProgress(ctx context.Context, userID, moduleID, lessonID string) error {
	payload := map[string]string{
		"user_id":   userID,
		"module_id": moduleID,
		"lesson_id": lessonID,
	}
	return c.do(ctx, http.MethodPost, "/progress/update", payload, nil)
}

func (c *Client) GetUserAttendance(ctx context.Context, userID string) (track.AttendanceReport, error) {
	var report track.AttendanceReport
	if err := c.do(ctx, http.MethodGet, "/users/"+userID+"/attendance", nil, &report); err != nil {
		return track.AttendanceReport{}, err
	}
	if report.Attendance == nil {
		report.Attendance = []track.AttendanceRecord{}
	}
	return report, nil
}
